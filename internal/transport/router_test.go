package transport

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestRouter_Run_AnswersGetDistance(t *testing.T) {
	addr := unusedTCPAddr(t)
	r := NewRouter(addr, func() float64 { return 7.5 }, 2*time.Second, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errCh := make(chan error, 1)
	go func() { errCh <- r.Run(ctx) }()

	conn := dialRouter(t, addr)
	defer conn.Close()

	payload, _ := json.Marshal(getDistanceFrame{Type: getDistanceType})
	if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		t.Fatalf("WriteMessage: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	var resp distanceFrame
	if err := json.Unmarshal(data, &resp); err != nil {
		t.Fatalf("unmarshal reply: %v", err)
	}
	if resp.Distance != 7.5 {
		t.Errorf("Distance = %v, want 7.5", resp.Distance)
	}

	cancel()
	if err := <-errCh; err != context.Canceled {
		t.Errorf("Run() returned %v, want context.Canceled", err)
	}
}

func TestRouter_Run_DropsUnrecognizedPayload(t *testing.T) {
	addr := unusedTCPAddr(t)
	r := NewRouter(addr, func() float64 { return 1 }, 2*time.Second, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go r.Run(ctx)

	conn := dialRouter(t, addr)
	defer conn.Close()

	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"not_a_real_frame"}`)); err != nil {
		t.Fatalf("WriteMessage: %v", err)
	}
	// Follow up with a real request; if the router had crashed or wedged on
	// the bad frame, this would time out.
	payload, _ := json.Marshal(getDistanceFrame{Type: getDistanceType})
	if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		t.Fatalf("WriteMessage: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	var resp distanceFrame
	if err := json.Unmarshal(data, &resp); err != nil {
		t.Fatalf("unmarshal reply: %v", err)
	}
	if resp.Distance != 1 {
		t.Errorf("Distance = %v, want 1", resp.Distance)
	}
}

// dialRouter waits for the router's listener to come up before dialing;
// Run's net.Listen happens asynchronously relative to the goroutine launch.
func dialRouter(t *testing.T, addr string) *websocket.Conn {
	t.Helper()
	u := "ws://" + addr + "/ws"
	deadline := time.Now().Add(2 * time.Second)
	var lastErr error
	for time.Now().Before(deadline) {
		conn, _, err := websocket.DefaultDialer.Dial(u, nil)
		if err == nil {
			return conn
		}
		lastErr = err
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("dial %s: %v", u, lastErr)
	return nil
}
