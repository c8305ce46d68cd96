package client

import (
	"context"
	"log/slog"
	"time"

	"multilat/internal/geometry"
	"multilat/internal/kalman"
	"multilat/internal/wire"
)

const clientRPCTimeout = 2 * time.Second

// Loop drives the Client's per-tick cycle: request an estimate, feed the
// Kalman tracker, emit a CSV row (spec §4.7). Ticks run one at a time:
// while a tick's RPC is in flight (up to clientRPCTimeout) the ticker keeps
// at most one pending tick and drops the rest, so a late round delays the
// next tick and the tracker sees a larger dt. Requests never queue up
// against the Network.
type Loop struct {
	clientID int32
	network  wire.NetworkClient
	tracker  *kalman.Tracker
	writer   *CSVWriter
	freq     float64
	log      *slog.Logger
}

// NewLoop returns a tracker loop ticking at freq Hz.
func NewLoop(clientID int32, network wire.NetworkClient, tracker *kalman.Tracker, writer *CSVWriter, freq float64, log *slog.Logger) *Loop {
	return &Loop{clientID: clientID, network: network, tracker: tracker, writer: writer, freq: freq, log: log}
}

// Run ticks at the configured frequency until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
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

func (l *Loop) tick(ctx context.Context) {
	reqCtx, cancel := context.WithTimeout(ctx, clientRPCTimeout)
	defer cancel()

	resp, err := l.network.GetTargetGlobalPosition(reqCtx, &wire.GetTargetGlobalPositionRequest{ClientID: l.clientID})
	if err != nil {
		l.log.Warn("get_target_global_position rpc failed", "err", err)
		return
	}
	if resp.Status != wire.TSOk {
		l.log.Debug("get_target_global_position returned non-ok status", "status", resp.Status)
		return
	}

	measurement := geometry.Vector3{X: float64(resp.X), Y: float64(resp.Y), Z: float64(resp.Z)}
	predicted := l.tracker.Update(measurement, time.Now())

	if err := l.writer.WriteRow(time.Now(), predicted); err != nil {
		l.log.Error("csv write failed", "err", err)
	}
}
