// Package target implements the Target collaborator: the JSON waypoint
// loader, the ticker-driven trajectory updater, the RWMutex-guarded
// position cell, and the GetPosition RPC handler (spec §4.6).
package target

import (
	"encoding/json"
	"fmt"
	"os"

	"multilat/internal/geometry"
)

// trajectoryDocument is the on-disk shape: {"waypoints": [[x, y, z], ...]}
// (spec §6's persisted state layout).
type trajectoryDocument struct {
	Waypoints [][]float64 `json:"waypoints"`
}

// LoadTrajectory reads and validates the waypoint document at path. Every
// entry must be a 3-element numeric array; anything else is
// ErrMalformedTrajectory (spec §4.6, §7).
func LoadTrajectory(path string) ([]geometry.Vector3, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("target: read trajectory %s: %w", path, err)
	}

	var doc trajectoryDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: invalid json: %v", ErrMalformedTrajectory, path, err)
	}
	if len(doc.Waypoints) == 0 {
		return nil, fmt.Errorf("%w: %s: no waypoints", ErrMalformedTrajectory, path)
	}

	waypoints := make([]geometry.Vector3, 0, len(doc.Waypoints))
	for i, w := range doc.Waypoints {
		if len(w) != 3 {
			return nil, fmt.Errorf("%w: %s: waypoint %d has %d entries, want 3", ErrMalformedTrajectory, path, i, len(w))
		}
		waypoints = append(waypoints, geometry.Vector3{X: w[0], Y: w[1], Z: w[2]})
	}
	return waypoints, nil
}
