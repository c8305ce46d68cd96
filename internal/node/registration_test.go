package node

import (
	"context"
	"errors"
	"testing"

	"google.golang.org/grpc"

	"multilat/internal/geometry"
	"multilat/internal/wire"
)

type fakeNetworkClient struct {
	addNodeResp *wire.AddNodeResponse
	addNodeErr  error
	gotReq      *wire.AddNodeRequest
}

func (f *fakeNetworkClient) AddNode(ctx context.Context, in *wire.AddNodeRequest, opts ...grpc.CallOption) (*wire.AddNodeResponse, error) {
	f.gotReq = in
	if f.addNodeErr != nil {
		return nil, f.addNodeErr
	}
	return f.addNodeResp, nil
}

func (f *fakeNetworkClient) StartNetwork(ctx context.Context, in *wire.StartNetworkRequest, opts ...grpc.CallOption) (*wire.StartNetworkResponse, error) {
	return nil, errors.New("fakeNetworkClient: StartNetwork not used by node")
}

func (f *fakeNetworkClient) GetTargetGlobalPosition(ctx context.Context, in *wire.GetTargetGlobalPositionRequest, opts ...grpc.CallOption) (*wire.GetTargetGlobalPositionResponse, error) {
	return nil, errors.New("fakeNetworkClient: GetTargetGlobalPosition not used by node")
}

func TestRegister_Success(t *testing.T) {
	fake := &fakeNetworkClient{addNodeResp: &wire.AddNodeResponse{Status: wire.NSOk}}
	err := Register(context.Background(), fake, 3, geometry.Vector3{X: 1, Y: 2, Z: 3}, "127.0.0.1:9000")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if fake.gotReq.NodeID != 3 || fake.gotReq.BindAddress != "127.0.0.1:9000" {
		t.Errorf("AddNode request = %+v, want node_id=3 bind=127.0.0.1:9000", fake.gotReq)
	}
}

func TestRegister_Rejected(t *testing.T) {
	fake := &fakeNetworkClient{addNodeResp: &wire.AddNodeResponse{Status: wire.NSError}}
	err := Register(context.Background(), fake, 3, geometry.Vector3{}, "127.0.0.1:9000")
	if !errors.Is(err, ErrRegistrationRejected) {
		t.Errorf("Register() err = %v, want ErrRegistrationRejected", err)
	}
}

func TestRegister_RPCFailure(t *testing.T) {
	fake := &fakeNetworkClient{addNodeErr: errors.New("boom")}
	err := Register(context.Background(), fake, 3, geometry.Vector3{}, "127.0.0.1:9000")
	if err == nil {
		t.Fatal("Register(): got nil error for RPC failure")
	}
	if errors.Is(err, ErrRegistrationRejected) {
		t.Error("RPC transport failure should not be reported as ErrRegistrationRejected")
	}
}
