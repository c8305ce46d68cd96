package node

import (
	"context"
	"log/slog"
	"math"
	"time"

	"gonum.org/v1/gonum/stat/distuv"

	"multilat/internal/geometry"
	"multilat/internal/wire"
)

const sensorRPCTimeout = 2 * time.Second

// SensorLoop periodically polls the Target and, on success, stores a noisy
// Euclidean distance from sensorPosition (spec §4.5). On RPC failure the
// stored distance is left untouched.
type SensorLoop struct {
	nodeID         int32
	sensorPosition geometry.Vector3
	target         wire.TargetClient
	cell           *DistanceCell
	freq           float64
	noise          distuv.Normal
	log            *slog.Logger
}

// NewSensorLoop returns a loop sampling at freq Hz with Gaussian
// measurement noise of the given variance (spec §4.5: ε ~ N(0, var)).
func NewSensorLoop(nodeID int32, sensorPosition geometry.Vector3, target wire.TargetClient, cell *DistanceCell, freq, variance float64, log *slog.Logger) *SensorLoop {
	return &SensorLoop{
		nodeID:         nodeID,
		sensorPosition: sensorPosition,
		target:         target,
		cell:           cell,
		freq:           freq,
		noise:          distuv.Normal{Mu: 0, Sigma: math.Sqrt(variance)},
		log:            log,
	}
}

// Run ticks at the configured frequency until ctx is cancelled.
func (l *SensorLoop) Run(ctx context.Context) error {
	period := time.Duration(float64(time.Second) / l.freq)
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			l.tick(ctx)
		}
	}
}

func (l *SensorLoop) tick(ctx context.Context) {
	reqCtx, cancel := context.WithTimeout(ctx, sensorRPCTimeout)
	defer cancel()

	resp, err := l.target.GetPosition(reqCtx, &wire.GetPositionRequest{NodeID: l.nodeID})
	if err != nil {
		l.log.Warn("get_position rpc failed", "err", err)
		return
	}
	if resp.Status != wire.PSOk {
		l.log.Warn("get_position returned non-ok status", "status", resp.Status)
		return
	}

	targetPos := geometry.Vector3{X: float64(resp.X), Y: float64(resp.Y), Z: float64(resp.Z)}
	dist := l.sensorPosition.Distance(targetPos) + l.noise.Rand()
	if dist < 0 {
		dist = 0
	}
	l.cell.Set(dist)
}
