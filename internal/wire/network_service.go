package wire

import (
	"context"

	"google.golang.org/grpc"
)

// NetworkServer is the server-side contract for the Network coordinator
// (spec §4.4, §6).
type NetworkServer interface {
	AddNode(context.Context, *AddNodeRequest) (*AddNodeResponse, error)
	StartNetwork(context.Context, *StartNetworkRequest) (*StartNetworkResponse, error)
	GetTargetGlobalPosition(context.Context, *GetTargetGlobalPositionRequest) (*GetTargetGlobalPositionResponse, error)
}

// UnimplementedNetworkServer can be embedded by a NetworkServer
// implementation to satisfy forward-compatible method sets.
type UnimplementedNetworkServer struct{}

func (UnimplementedNetworkServer) AddNode(context.Context, *AddNodeRequest) (*AddNodeResponse, error) {
	return &AddNodeResponse{Status: NSError}, nil
}

func (UnimplementedNetworkServer) StartNetwork(context.Context, *StartNetworkRequest) (*StartNetworkResponse, error) {
	return &StartNetworkResponse{Status: SSError}, nil
}

func (UnimplementedNetworkServer) GetTargetGlobalPosition(context.Context, *GetTargetGlobalPositionRequest) (*GetTargetGlobalPositionResponse, error) {
	x, y, z := ErrorPosition()
	return &GetTargetGlobalPositionResponse{Status: TSError, X: x, Y: y, Z: z}, nil
}

// NetworkClient is the client-side stub for NetworkServer.
type NetworkClient interface {
	AddNode(ctx context.Context, in *AddNodeRequest, opts ...grpc.CallOption) (*AddNodeResponse, error)
	StartNetwork(ctx context.Context, in *StartNetworkRequest, opts ...grpc.CallOption) (*StartNetworkResponse, error)
	GetTargetGlobalPosition(ctx context.Context, in *GetTargetGlobalPositionRequest, opts ...grpc.CallOption) (*GetTargetGlobalPositionResponse, error)
}

type networkClient struct {
	cc grpc.ClientConnInterface
}

// NewNetworkClient wraps a dialed connection as a NetworkClient.
func NewNetworkClient(cc grpc.ClientConnInterface) NetworkClient {
	return &networkClient{cc: cc}
}

func (c *networkClient) AddNode(ctx context.Context, in *AddNodeRequest, opts ...grpc.CallOption) (*AddNodeResponse, error) {
	out := new(AddNodeResponse)
	if err := c.cc.Invoke(ctx, "/multilat.Network/AddNode", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *networkClient) StartNetwork(ctx context.Context, in *StartNetworkRequest, opts ...grpc.CallOption) (*StartNetworkResponse, error) {
	out := new(StartNetworkResponse)
	if err := c.cc.Invoke(ctx, "/multilat.Network/StartNetwork", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *networkClient) GetTargetGlobalPosition(ctx context.Context, in *GetTargetGlobalPositionRequest, opts ...grpc.CallOption) (*GetTargetGlobalPositionResponse, error) {
	out := new(GetTargetGlobalPositionResponse)
	if err := c.cc.Invoke(ctx, "/multilat.Network/GetTargetGlobalPosition", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func networkAddNodeHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(AddNodeRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(NetworkServer).AddNode(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/multilat.Network/AddNode"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(NetworkServer).AddNode(ctx, req.(*AddNodeRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func networkStartNetworkHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(StartNetworkRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(NetworkServer).StartNetwork(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/multilat.Network/StartNetwork"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(NetworkServer).StartNetwork(ctx, req.(*StartNetworkRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func networkGetTargetGlobalPositionHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GetTargetGlobalPositionRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(NetworkServer).GetTargetGlobalPosition(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/multilat.Network/GetTargetGlobalPosition"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(NetworkServer).GetTargetGlobalPosition(ctx, req.(*GetTargetGlobalPositionRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// NetworkServiceDesc is the hand-authored equivalent of a
// protoc-gen-go-grpc _ServiceDesc for the Network service.
var NetworkServiceDesc = grpc.ServiceDesc{
	ServiceName: "multilat.Network",
	HandlerType: (*NetworkServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "AddNode", Handler: networkAddNodeHandler},
		{MethodName: "StartNetwork", Handler: networkStartNetworkHandler},
		{MethodName: "GetTargetGlobalPosition", Handler: networkGetTargetGlobalPositionHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "multilat/network.proto",
}

// RegisterNetworkServer registers srv on s.
func RegisterNetworkServer(s grpc.ServiceRegistrar, srv NetworkServer) {
	s.RegisterService(&NetworkServiceDesc, srv)
}
