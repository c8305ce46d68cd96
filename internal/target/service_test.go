package target

import (
	"context"
	"testing"

	"multilat/internal/geometry"
	"multilat/internal/wire"
)

func TestService_GetPosition_ReturnsLatestCachedPosition(t *testing.T) {
	cell := NewPositionCell(geometry.Vector3{X: 1, Y: 2, Z: 3})
	svc := NewService(cell)

	resp, err := svc.GetPosition(context.Background(), &wire.GetPositionRequest{NodeID: 1})
	if err != nil {
		t.Fatalf("GetPosition: %v", err)
	}
	if resp.Status != wire.PSOk {
		t.Errorf("Status = %v, want PS_OK", resp.Status)
	}
	if resp.X != 1 || resp.Y != 2 || resp.Z != 3 {
		t.Errorf("position = (%v, %v, %v), want (1, 2, 3)", resp.X, resp.Y, resp.Z)
	}

	cell.Set(geometry.Vector3{X: 9, Y: 9, Z: 9})
	resp, err = svc.GetPosition(context.Background(), &wire.GetPositionRequest{NodeID: 1})
	if err != nil {
		t.Fatalf("GetPosition: %v", err)
	}
	if resp.X != 9 || resp.Y != 9 || resp.Z != 9 {
		t.Errorf("position after update = (%v, %v, %v), want (9, 9, 9)", resp.X, resp.Y, resp.Z)
	}
}
