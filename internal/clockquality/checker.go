// Package clockquality runs a background NTP drift checker. The Client's
// Kalman filter derives dt from wall-clock reads (spec §4.7), so a skewed
// local clock silently degrades tracking; this surfaces that as a logged
// warning, never a fatal condition (SPEC_FULL.md §B).
package clockquality

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/beevik/ntp"

	"multilat/internal/check"
)

const (
	defaultPool      = "pool.ntp.org"
	defaultInterval  = 60 * time.Second
	defaultThreshold = 500 * time.Millisecond
)

// Phase is the checker's last-known health classification.
type Phase uint8

const (
	Unchecked Phase = iota + 1
	Healthy
	UnhealthyOffset
	Error
)

func (p Phase) String() string {
	switch p {
	case Healthy:
		return "healthy"
	case UnhealthyOffset:
		return "unhealthy_offset"
	case Error:
		return "error"
	default:
		return "unchecked"
	}
}

// Status is the checker's most recent observation.
type Status struct {
	Offset    time.Duration
	Phase     Phase
	Err       string
	CheckedAt time.Time
}

// Checker periodically queries pool and logs a warning when the measured
// clock offset exceeds threshold.
type Checker struct {
	mu        sync.RWMutex
	status    Status
	pool      string
	interval  time.Duration
	threshold time.Duration
	log       *slog.Logger

	// queryFunc overrides the NTP query, for tests.
	queryFunc func(string) (*ntp.Response, error)
}

// NewChecker returns a checker using the default pool, interval and
// threshold.
func NewChecker(log *slog.Logger) *Checker {
	check.Assert(log != nil, "clockquality.NewChecker: log must not be nil")
	return &Checker{
		pool:      defaultPool,
		interval:  defaultInterval,
		threshold: defaultThreshold,
		status:    Status{Phase: Unchecked},
		log:       log,
	}
}

// Run checks immediately, then on every interval tick until ctx is
// cancelled.
func (c *Checker) Run(ctx context.Context) error {
	c.check()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			c.check()
		}
	}
}

func (c *Checker) check() {
	query := ntp.Query
	if c.queryFunc != nil {
		query = c.queryFunc
	}

	resp, err := query(c.pool)

	c.mu.Lock()
	now := time.Now()
	if err != nil {
		c.status = Status{Err: err.Error(), Phase: Error, CheckedAt: now}
		c.mu.Unlock()
		c.log.Warn("ntp query failed", "pool", c.pool, "err", err)
		return
	}

	phase := UnhealthyOffset
	if resp.ClockOffset.Abs() < c.threshold {
		phase = Healthy
	}
	c.status = Status{Offset: resp.ClockOffset, Phase: phase, CheckedAt: now}
	c.mu.Unlock()

	if phase == UnhealthyOffset {
		c.log.Warn("local clock drift exceeds threshold", "offset", resp.ClockOffset, "threshold", c.threshold)
	}
}

// Status returns the most recent observation.
func (c *Checker) Status() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.status
}
