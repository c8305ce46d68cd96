// Package network implements the Network coordinator: the shared
// NodeRegistry+ActivationFlag store, the distance dealer and solver wiring,
// and the three-operation RPC service (spec §4.1, §4.4).
package network

import (
	"sync"

	"multilat/internal/geometry"
)

// NodeRecord is immutable once inserted (spec §3).
type NodeRecord struct {
	ID           int32
	Position     geometry.Vector3
	ReplyAddress string
}

// Store holds the NodeRegistry and ActivationFlag behind one RWMutex, so the
// two fields can never be observed out of step with one another — the
// linearizability invariant in spec §4.1 falls directly out of sharing a
// single lock rather than one per field.
type Store struct {
	mu     sync.RWMutex
	nodes  map[int32]NodeRecord
	active bool
}

// NewStore returns an empty, inactive store (spec §3 lifecycle).
func NewStore() *Store {
	return &Store{nodes: map[int32]NodeRecord{}}
}

// AddNode registers rec iff its id is unused and the network is still
// inactive; otherwise it returns false without mutating anything (spec
// §4.1's add_node).
func (s *Store) AddNode(rec NodeRecord) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active {
		return false
	}
	if _, exists := s.nodes[rec.ID]; exists {
		return false
	}
	s.nodes[rec.ID] = rec
	return true
}

// NodesInfo returns a snapshot copy safe for concurrent readers (spec
// §4.1's get_nodes_info).
func (s *Store) NodesInfo() map[int32]NodeRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[int32]NodeRecord, len(s.nodes))
	for id, rec := range s.nodes {
		out[id] = rec
	}
	return out
}

// IsActive reports the activation flag (spec §4.1's get_is_active).
func (s *Store) IsActive() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// Activate runs setup (dealer connect + solver sensor-position snapshot)
// while holding the store's write lock and flips the flag only if setup
// succeeds. Running setup under the same lock that guards the flag is what
// makes connect/set_sensor_positions and the flag flip observable together
// (spec §4.4 step 2: "these three steps must complete before the flag flip
// observable to other handlers"). Returns false without mutation if the
// network is already active; the flag stays false if setup errors.
func (s *Store) Activate(setup func(nodes map[int32]NodeRecord) error) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active {
		return false, nil
	}

	snap := make(map[int32]NodeRecord, len(s.nodes))
	for id, rec := range s.nodes {
		snap[id] = rec
	}

	if err := setup(snap); err != nil {
		return false, err
	}
	s.active = true
	return true, nil
}
