package target

import (
	"context"
	"log/slog"
	"time"

	"multilat/internal/check"
	"multilat/internal/geometry"
)

// Updater advances a cursor through a fixed list of waypoints at a
// configured frequency f_t, publishing each into a PositionCell (spec
// §4.6's trajectory updater). With loopPath set the cursor wraps to the
// first waypoint after the last; otherwise it holds on the final waypoint.
type Updater struct {
	waypoints []geometry.Vector3
	cell      *PositionCell
	freq      float64
	loopPath  bool
	log       *slog.Logger
}

// NewUpdater returns an updater over waypoints, ticking at freq Hz. The
// cell is seeded with the first waypoint immediately so GetPosition has a
// valid reading before the first tick fires.
func NewUpdater(waypoints []geometry.Vector3, cell *PositionCell, freq float64, loopPath bool, log *slog.Logger) *Updater {
	check.Assert(cell != nil, "target.NewUpdater: cell must not be nil")
	check.Assert(log != nil, "target.NewUpdater: log must not be nil")
	if len(waypoints) > 0 {
		cell.Set(waypoints[0])
	}
	return &Updater{
		waypoints: waypoints,
		cell:      cell,
		freq:      freq,
		loopPath:  loopPath,
		log:       log,
	}
}

// Run ticks at the configured frequency until ctx is cancelled, advancing
// the cursor one waypoint per tick.
func (u *Updater) Run(ctx context.Context) error {
	if len(u.waypoints) == 0 {
		<-ctx.Done()
		return ctx.Err()
	}

	period := time.Duration(float64(time.Second) / u.freq)
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	cursor := 0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			cursor++
			if cursor >= len(u.waypoints) {
				if !u.loopPath {
					cursor = len(u.waypoints) - 1
				} else {
					cursor = 0
				}
			}
			pos := u.waypoints[cursor]
			u.cell.Set(pos)
			u.log.Debug("trajectory advanced", "cursor", cursor, "position", pos)
		}
	}
}
