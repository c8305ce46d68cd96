// Package node implements the Node collaborator: the single-writer
// many-reader SensorDistance cell, the periodic sensor loop, one-shot
// startup registration, and the router wiring (spec §4.5).
package node

import "sync"

// DistanceCell holds the node's latest sensor distance. The sensor loop is
// its sole writer; the router's request handlers are readers (spec §3's
// SensorDistance, §5).
type DistanceCell struct {
	mu   sync.RWMutex
	dist float64
}

// Set publishes a new distance reading.
func (c *DistanceCell) Set(d float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dist = d
}

// Get returns the latest published distance.
func (c *DistanceCell) Get() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.dist
}
