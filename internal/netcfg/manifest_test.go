package netcfg

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Valid(t *testing.T) {
	contents := `
network:
  address: 127.0.0.1:7000
target:
  address: 127.0.0.1:7100
nodes:
  - id: 1
    x: 0
    y: 0
    z: 0
    bind_address: 127.0.0.1:8001
  - id: 2
    x: 10
    y: 0
    z: 0
    bind_address: 127.0.0.1:8002
`
	path := filepath.Join(t.TempDir(), "manifest.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write temp manifest: %v", err)
	}

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.Network.Address != "127.0.0.1:7000" {
		t.Errorf("Network.Address = %q, want 127.0.0.1:7000", m.Network.Address)
	}
	if m.Target.Address != "127.0.0.1:7100" {
		t.Errorf("Target.Address = %q, want 127.0.0.1:7100", m.Target.Address)
	}
	if len(m.Nodes) != 2 {
		t.Fatalf("len(Nodes) = %d, want 2", len(m.Nodes))
	}
	if m.Nodes[1].ID != 2 || m.Nodes[1].X != 10 || m.Nodes[1].BindAddress != "127.0.0.1:8002" {
		t.Errorf("Nodes[1] = %+v, want id=2 x=10 bind_address=127.0.0.1:8002", m.Nodes[1])
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.yaml")
	if err := os.WriteFile(path, []byte("not: [valid yaml"), 0o644); err != nil {
		t.Fatalf("write temp manifest: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("Load(malformed yaml): got nil error")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.yaml")
	if _, err := Load(path); err == nil {
		t.Fatal("Load(missing file): got nil error")
	}
}
