// Package netcfg loads an optional deployment manifest: a named list of
// node id/position/address triples plus the Network and Target addresses
// (SPEC_FULL.md §A). No cmd/* binary loads it; each role takes its
// parameters from its own flags. This is convenience glue around CLI flag
// parsing and never substitutes for the wire contract.
package netcfg

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// NodeEntry describes one node's static deployment parameters.
type NodeEntry struct {
	ID          int32   `yaml:"id"`
	X           float64 `yaml:"x"`
	Y           float64 `yaml:"y"`
	Z           float64 `yaml:"z"`
	BindAddress string  `yaml:"bind_address"`
}

// Manifest is the top-level deployment document.
type Manifest struct {
	Network struct {
		Address string `yaml:"address"`
	} `yaml:"network"`
	Target struct {
		Address string `yaml:"address"`
	} `yaml:"target"`
	Nodes []NodeEntry `yaml:"nodes"`
}

// Load reads and parses the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("netcfg: read manifest %s: %w", path, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("netcfg: parse manifest %s: %w", path, err)
	}
	return &m, nil
}
