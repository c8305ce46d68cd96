package wire

import (
	"context"

	"google.golang.org/grpc"
)

// TargetServer is the server-side contract for the Target's position-serving
// endpoint (spec §4.6, §6).
type TargetServer interface {
	GetPosition(context.Context, *GetPositionRequest) (*GetPositionResponse, error)
}

// UnimplementedTargetServer can be embedded by a TargetServer implementation
// to satisfy forward-compatible method sets, matching the teacher's
// pb.UnimplementedDaemonServer convention.
type UnimplementedTargetServer struct{}

func (UnimplementedTargetServer) GetPosition(context.Context, *GetPositionRequest) (*GetPositionResponse, error) {
	return &GetPositionResponse{Status: PSError}, nil
}

// TargetClient is the client-side stub for TargetServer.
type TargetClient interface {
	GetPosition(ctx context.Context, in *GetPositionRequest, opts ...grpc.CallOption) (*GetPositionResponse, error)
}

type targetClient struct {
	cc grpc.ClientConnInterface
}

// NewTargetClient wraps a dialed connection as a TargetClient.
func NewTargetClient(cc grpc.ClientConnInterface) TargetClient {
	return &targetClient{cc: cc}
}

func (c *targetClient) GetPosition(ctx context.Context, in *GetPositionRequest, opts ...grpc.CallOption) (*GetPositionResponse, error) {
	out := new(GetPositionResponse)
	if err := c.cc.Invoke(ctx, "/multilat.Target/GetPosition", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func targetGetPositionHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GetPositionRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TargetServer).GetPosition(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/multilat.Target/GetPosition"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(TargetServer).GetPosition(ctx, req.(*GetPositionRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// TargetServiceDesc is the hand-authored equivalent of a protoc-gen-go-grpc
// _ServiceDesc for the Target service (see DESIGN.md: no protoc in this
// exercise's toolchain).
var TargetServiceDesc = grpc.ServiceDesc{
	ServiceName: "multilat.Target",
	HandlerType: (*TargetServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetPosition", Handler: targetGetPositionHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "multilat/target.proto",
}

// RegisterTargetServer registers srv on s.
func RegisterTargetServer(s grpc.ServiceRegistrar, srv TargetServer) {
	s.RegisterService(&TargetServiceDesc, srv)
}
