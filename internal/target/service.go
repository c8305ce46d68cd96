package target

import (
	"context"

	"multilat/internal/check"
	"multilat/internal/wire"
)

// Service implements wire.TargetServer by serving the latest cached
// position. It never returns PS_ERROR under normal operation — that
// sentinel is reserved for future use (spec §4.6).
type Service struct {
	wire.UnimplementedTargetServer
	cell *PositionCell
}

// NewService returns a Service backed by cell.
func NewService(cell *PositionCell) *Service {
	check.Assert(cell != nil, "target.NewService: cell must not be nil")
	return &Service{cell: cell}
}

// GetPosition returns the Target's latest position (spec §4.6, §6).
func (s *Service) GetPosition(ctx context.Context, req *wire.GetPositionRequest) (*wire.GetPositionResponse, error) {
	pos := s.cell.Get()
	return &wire.GetPositionResponse{
		Status: wire.PSOk,
		X:      float32(pos.X),
		Y:      float32(pos.Y),
		Z:      float32(pos.Z),
	}, nil
}
