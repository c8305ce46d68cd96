package node

import (
	"context"
	"fmt"

	"multilat/internal/geometry"
	"multilat/internal/wire"
)

// Register performs the one-shot AddNode call at startup (spec §4.5's Node
// registration). On NS_OK the caller should start the router; on
// ErrRegistrationRejected the node must terminate.
func Register(ctx context.Context, client wire.NetworkClient, nodeID int32, position geometry.Vector3, bindAddress string) error {
	resp, err := client.AddNode(ctx, &wire.AddNodeRequest{
		NodeID:      nodeID,
		X:           float32(position.X),
		Y:           float32(position.Y),
		Z:           float32(position.Z),
		BindAddress: bindAddress,
	})
	if err != nil {
		return fmt.Errorf("node: add_node rpc: %w", err)
	}
	if resp.Status != wire.NSOk {
		return ErrRegistrationRejected
	}
	return nil
}
