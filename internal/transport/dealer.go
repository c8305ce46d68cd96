package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const dealerWriteWait = 2 * time.Second

// Dealer holds the Network's outbound connections to every registered
// node's router and runs the scatter/gather distance round (spec §4.2).
// RequestDistances rounds are serialized by round (non-reentrant); Connect
// runs once, during activation.
type Dealer struct {
	pollTimeout time.Duration
	log         *slog.Logger

	roundMu sync.Mutex // serializes RequestDistances rounds

	connsMu sync.RWMutex
	conns   map[int32]*websocket.Conn
}

// New returns a dealer that gathers replies for up to pollTimeout per
// round.
func New(pollTimeout time.Duration, log *slog.Logger) *Dealer {
	return &Dealer{pollTimeout: pollTimeout, log: log, conns: map[int32]*websocket.Conn{}}
}

// Connect opens outbound connections to every registered node's
// reply_address. A node that cannot be dialed is simply absent from every
// subsequent round rather than failing the whole connect step — one
// unreachable node must not block activation.
func (d *Dealer) Connect(nodeAddrs map[int32]string) {
	conns := make(map[int32]*websocket.Conn, len(nodeAddrs))
	for id, addr := range nodeAddrs {
		u := url.URL{Scheme: "ws", Host: addr, Path: "/ws"}
		conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
		if err != nil {
			d.log.Warn("dealer connect failed", "err", dialErr(id, addr, err))
			continue
		}
		conns[id] = conn
	}

	d.connsMu.Lock()
	d.conns = conns
	d.connsMu.Unlock()
}

// Close releases every outbound connection.
func (d *Dealer) Close() {
	d.connsMu.Lock()
	defer d.connsMu.Unlock()
	for _, conn := range d.conns {
		_ = conn.Close()
	}
	d.conns = map[int32]*websocket.Conn{}
}

// RequestDistances broadcasts GetDistance to every connected node and
// gathers replies until either all expected nodes have answered or the
// poll timeout elapses, whichever comes first (spec §4.2). Partial results
// are returned as-is.
func (d *Dealer) RequestDistances(ctx context.Context) map[int32]float64 {
	d.roundMu.Lock()
	defer d.roundMu.Unlock()

	d.connsMu.RLock()
	conns := make(map[int32]*websocket.Conn, len(d.conns))
	for id, conn := range d.conns {
		conns[id] = conn
	}
	d.connsMu.RUnlock()

	roundCtx, cancel := context.WithTimeout(ctx, d.pollTimeout)
	defer cancel()

	var mu sync.Mutex
	results := make(map[int32]float64, len(conns))
	var wg sync.WaitGroup

	for id, conn := range conns {
		wg.Add(1)
		go func(id int32, conn *websocket.Conn) {
			defer wg.Done()
			if dist, ok := d.roundTrip(roundCtx, conn); ok {
				mu.Lock()
				results[id] = dist
				mu.Unlock()
			}
		}(id, conn)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-roundCtx.Done():
	}

	mu.Lock()
	defer mu.Unlock()
	d.log.Debug("distance round complete", "expected", len(conns), "replied", len(results))
	out := make(map[int32]float64, len(results))
	for id, dist := range results {
		out[id] = dist
	}
	return out
}

func (d *Dealer) roundTrip(ctx context.Context, conn *websocket.Conn) (float64, bool) {
	payload, err := json.Marshal(getDistanceFrame{Type: getDistanceType})
	if err != nil {
		return 0, false
	}
	if err := conn.SetWriteDeadline(time.Now().Add(dealerWriteWait)); err != nil {
		return 0, false
	}
	if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		return 0, false
	}

	deadline := time.Now().Add(d.pollTimeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	if err := conn.SetReadDeadline(deadline); err != nil {
		return 0, false
	}

	_, data, err := conn.ReadMessage()
	if err != nil {
		return 0, false
	}

	var resp distanceFrame
	if err := json.Unmarshal(data, &resp); err != nil {
		return 0, false
	}
	return resp.Distance, true
}

// dialErr wraps a dial failure with the node context it occurred in, for
// Connect's warning log.
func dialErr(nodeID int32, addr string, err error) error {
	return fmt.Errorf("dealer: dial node %d at %s: %w", nodeID, addr, err)
}
