package target

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"multilat/internal/geometry"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewUpdater_SeedsCellWithFirstWaypoint(t *testing.T) {
	waypoints := []geometry.Vector3{{X: 1, Y: 2, Z: 3}, {X: 4, Y: 5, Z: 6}}
	cell := &PositionCell{}

	NewUpdater(waypoints, cell, 100, false, testLogger())

	if got := cell.Get(); got != waypoints[0] {
		t.Errorf("Get() = %v, want %v", got, waypoints[0])
	}
}

func TestUpdater_Run_AdvancesAndHoldsWithoutLoop(t *testing.T) {
	waypoints := []geometry.Vector3{{X: 0}, {X: 1}, {X: 2}}
	cell := &PositionCell{}
	u := NewUpdater(waypoints, cell, 200, false, testLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_ = u.Run(ctx)

	if got := cell.Get(); got.X != 2 {
		t.Errorf("Get().X = %v, want held at last waypoint 2", got.X)
	}
}

func TestUpdater_Run_LoopsWhenConfigured(t *testing.T) {
	waypoints := []geometry.Vector3{{X: 0}, {X: 1}}
	cell := &PositionCell{}
	u := NewUpdater(waypoints, cell, 500, true, testLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	_ = u.Run(ctx)

	got := cell.Get()
	if got.X != 0 && got.X != 1 {
		t.Errorf("Get().X = %v, want one of the two looped waypoints", got.X)
	}
}

func TestUpdater_Run_EmptyWaypointsBlocksUntilCancelled(t *testing.T) {
	cell := &PositionCell{}
	u := NewUpdater(nil, cell, 100, false, testLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := u.Run(ctx)
	if err != context.DeadlineExceeded {
		t.Errorf("Run() = %v, want context.DeadlineExceeded", err)
	}
}
