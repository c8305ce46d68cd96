package transport

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestRouterServer(t *testing.T, distance float64) (addr string, closeFn func()) {
	t.Helper()
	r := NewRouter("", func() float64 { return distance }, 2*time.Second, testLogger())
	srv := httptest.NewServer(http.HandlerFunc(r.handle))
	addr = strings.TrimPrefix(srv.URL, "http://")
	return addr, srv.Close
}

func TestDealer_RequestDistances_GathersAllReplies(t *testing.T) {
	addr1, close1 := newTestRouterServer(t, 10)
	defer close1()
	addr2, close2 := newTestRouterServer(t, 20)
	defer close2()

	d := New(500*time.Millisecond, testLogger())
	d.Connect(map[int32]string{1: addr1, 2: addr2})
	defer d.Close()

	got := d.RequestDistances(context.Background())
	if len(got) != 2 {
		t.Fatalf("got %d replies, want 2: %v", len(got), got)
	}
	if got[1] != 10 || got[2] != 20 {
		t.Errorf("got = %v, want {1:10, 2:20}", got)
	}
}

// TestDealer_RequestDistances_PartialGather is spec §8 scenario 5: one node
// never connects (address nothing listens on), the round must still return
// the replies that did arrive instead of blocking or failing entirely.
func TestDealer_RequestDistances_PartialGather(t *testing.T) {
	addr1, close1 := newTestRouterServer(t, 10)
	defer close1()

	unreachable := unusedTCPAddr(t)

	d := New(300*time.Millisecond, testLogger())
	d.Connect(map[int32]string{1: addr1, 2: unreachable})
	defer d.Close()

	got := d.RequestDistances(context.Background())
	if len(got) != 1 {
		t.Fatalf("got %d replies, want 1 (only the reachable node)", len(got))
	}
	if got[1] != 10 {
		t.Errorf("got[1] = %v, want 10", got[1])
	}
	if _, ok := got[2]; ok {
		t.Error("unreachable node 2 should be absent from the gathered results")
	}
}

// unusedTCPAddr binds and immediately closes a listener to obtain an address
// nothing is listening on, for use as a deliberately-unreachable node.
func unusedTCPAddr(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("unusedTCPAddr: %v", err)
	}
	addr := ln.Addr().String()
	ln.Close()
	return addr
}
