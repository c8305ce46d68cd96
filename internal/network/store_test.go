package network

import (
	"errors"
	"sync"
	"testing"

	"multilat/internal/geometry"
)

func TestStore_AddNode_Duplicate(t *testing.T) {
	s := NewStore()
	rec := NodeRecord{ID: 1, Position: geometry.Vector3{X: 1, Y: 2, Z: 3}, ReplyAddress: "a"}

	if ok := s.AddNode(rec); !ok {
		t.Fatal("first AddNode: got false, want true")
	}
	if ok := s.AddNode(rec); ok {
		t.Fatal("duplicate AddNode: got true, want false")
	}

	info := s.NodesInfo()
	if len(info) != 1 {
		t.Fatalf("registry size = %d, want 1", len(info))
	}
}

func TestStore_AddNode_RejectedAfterActivation(t *testing.T) {
	s := NewStore()
	s.AddNode(NodeRecord{ID: 1})

	activated, err := s.Activate(func(map[int32]NodeRecord) error { return nil })
	if err != nil || !activated {
		t.Fatalf("Activate() = (%v, %v), want (true, nil)", activated, err)
	}

	if ok := s.AddNode(NodeRecord{ID: 2}); ok {
		t.Error("AddNode after activation: got true, want false")
	}
	if len(s.NodesInfo()) != 1 {
		t.Error("registry mutated after activation")
	}
}

func TestStore_Activate_OnlyOnce(t *testing.T) {
	s := NewStore()
	calls := 0
	setup := func(map[int32]NodeRecord) error { calls++; return nil }

	first, err := s.Activate(setup)
	if err != nil || !first {
		t.Fatalf("first Activate() = (%v, %v), want (true, nil)", first, err)
	}
	second, err := s.Activate(setup)
	if err != nil || second {
		t.Fatalf("second Activate() = (%v, %v), want (false, nil)", second, err)
	}
	if calls != 1 {
		t.Errorf("setup ran %d times, want 1", calls)
	}
}

func TestStore_Activate_SetupFailureLeavesFlagFalse(t *testing.T) {
	s := NewStore()
	wantErr := errors.New("boom")
	activated, err := s.Activate(func(map[int32]NodeRecord) error { return wantErr })
	if activated {
		t.Fatal("Activate() with failing setup returned true")
	}
	if !errors.Is(err, wantErr) {
		t.Fatalf("Activate() err = %v, want %v", err, wantErr)
	}
	if s.IsActive() {
		t.Error("flag flipped despite setup failure")
	}
}

func TestStore_ConcurrentAddAndRead(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup
	const n = 50

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(id int32) {
			defer wg.Done()
			s.AddNode(NodeRecord{ID: id})
		}(int32(i))
	}
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.IsActive()
			_ = s.NodesInfo()
		}()
	}
	wg.Wait()

	if len(s.NodesInfo()) != n {
		t.Errorf("registry size = %d, want %d", len(s.NodesInfo()), n)
	}
}
