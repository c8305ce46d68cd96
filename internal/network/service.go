package network

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/semaphore"

	"multilat/internal/check"
	"multilat/internal/geometry"
	"multilat/internal/multilat"
	"multilat/internal/transport"
	"multilat/internal/wire"
)

// Service implements wire.NetworkServer: AddNode, StartNetwork,
// GetTargetGlobalPosition, each bounded by a worker-pool semaphore so the
// gRPC server never runs more than workers handlers at once (spec §4.4,
// §5's "bounded worker pool").
type Service struct {
	wire.UnimplementedNetworkServer

	store  *Store
	dealer *transport.Dealer
	solver *multilat.Solver
	sem    *semaphore.Weighted
	log    *slog.Logger
}

// NewService wires the store, dealer and solver together behind a
// worker-pool of the given size.
func NewService(store *Store, dealer *transport.Dealer, solver *multilat.Solver, workers int64, log *slog.Logger) *Service {
	check.Assert(store != nil, "network.NewService: store must not be nil")
	check.Assert(dealer != nil, "network.NewService: dealer must not be nil")
	check.Assert(solver != nil, "network.NewService: solver must not be nil")
	return &Service{
		store:  store,
		dealer: dealer,
		solver: solver,
		sem:    semaphore.NewWeighted(workers),
		log:    log,
	}
}

// AddNode implements spec §4.4's AddNode handler.
func (s *Service) AddNode(ctx context.Context, req *wire.AddNodeRequest) (*wire.AddNodeResponse, error) {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer s.sem.Release(1)

	rec := NodeRecord{
		ID:           req.NodeID,
		Position:     geometry.Vector3{X: float64(req.X), Y: float64(req.Y), Z: float64(req.Z)},
		ReplyAddress: req.BindAddress,
	}

	if ok := s.store.AddNode(rec); !ok {
		s.log.Debug("add_node rejected", "node_id", req.NodeID)
		return &wire.AddNodeResponse{Status: wire.NSError}, nil
	}

	s.log.Info("node registered", "node_id", req.NodeID, "addr", req.BindAddress)
	return &wire.AddNodeResponse{Status: wire.NSOk}, nil
}

// StartNetwork implements spec §4.4's StartNetwork handler: n_nodes is
// always reported, connect and set_sensor_positions run under the store's
// activation lock via Store.Activate, and the flag only flips once both
// have completed.
func (s *Service) StartNetwork(ctx context.Context, req *wire.StartNetworkRequest) (*wire.StartNetworkResponse, error) {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer s.sem.Release(1)

	n := int32(len(s.store.NodesInfo()))

	activated, err := s.store.Activate(func(nodes map[int32]NodeRecord) error {
		addrs := make(map[int32]string, len(nodes))
		positions := make(map[int32]geometry.Vector3, len(nodes))
		for id, rec := range nodes {
			addrs[id] = rec.ReplyAddress
			positions[id] = rec.Position
		}
		s.dealer.Connect(addrs)
		s.solver.SetSensorPositions(positions)
		return nil
	})
	if err != nil {
		s.log.Warn("start_network setup failed", "client_id", req.ClientID, "err", err)
		return &wire.StartNetworkResponse{Status: wire.SSError, NNodes: n}, nil
	}
	if !activated {
		return &wire.StartNetworkResponse{Status: wire.SSError, NNodes: n}, nil
	}

	s.log.Info("network activated", "client_id", req.ClientID, "n_nodes", n)
	return &wire.StartNetworkResponse{Status: wire.SSOk, NNodes: n}, nil
}

// GetTargetGlobalPosition implements spec §4.4's GetTargetGlobalPosition
// handler: the TS_ERROR path, including its +Inf sentinel, is taken both
// for "not yet active" and for any solver failure.
func (s *Service) GetTargetGlobalPosition(ctx context.Context, req *wire.GetTargetGlobalPositionRequest) (*wire.GetTargetGlobalPositionResponse, error) {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer s.sem.Release(1)

	if !s.store.IsActive() {
		x, y, z := wire.ErrorPosition()
		return &wire.GetTargetGlobalPositionResponse{Status: wire.TSError, X: x, Y: y, Z: z}, nil
	}

	distances := s.dealer.RequestDistances(ctx)
	if len(distances) == 0 {
		x, y, z := wire.ErrorPosition()
		return &wire.GetTargetGlobalPositionResponse{Status: wire.TSError, X: x, Y: y, Z: z}, nil
	}

	estimate, err := s.solver.EstimatePosition(distances)
	if err != nil {
		if !errors.Is(err, multilat.ErrInsufficientMeasurements) && !errors.Is(err, multilat.ErrSolverDivergence) {
			s.log.Error("solver failure", "client_id", req.ClientID, "err", err)
		} else {
			s.log.Debug("solver could not produce an estimate", "client_id", req.ClientID, "err", err)
		}
		x, y, z := wire.ErrorPosition()
		return &wire.GetTargetGlobalPositionResponse{Status: wire.TSError, X: x, Y: y, Z: z}, nil
	}

	return &wire.GetTargetGlobalPositionResponse{
		Status: wire.TSOk,
		X:      float32(estimate.X),
		Y:      float32(estimate.Y),
		Z:      float32(estimate.Z),
	}, nil
}
