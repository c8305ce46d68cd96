package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	routerWriteWait  = 2 * time.Second
	routerPongWait   = 30 * time.Second
	routerPingPeriod = (routerPongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// DistanceSource supplies the Node's latest sensor reading on demand. It is
// implemented by the Node's single-writer/many-reader SensorDistance cell.
type DistanceSource func() float64

// Router binds a Node's reply_address and answers GetDistance frames with
// the current sensor distance (spec §4.5's "Node router"). Messages with
// an unrecognized payload are dropped silently, per spec.
type Router struct {
	addr     string
	distance DistanceSource
	log      *slog.Logger
	grace    time.Duration

	server *http.Server
}

// NewRouter constructs a router bound to addr, reading distances from src.
// grace bounds how long Run waits for in-flight connections to drain on
// shutdown before forcing them closed (spec §5's "short grace window").
func NewRouter(addr string, src DistanceSource, grace time.Duration, log *slog.Logger) *Router {
	return &Router{addr: addr, distance: src, grace: grace, log: log}
}

// Run binds and serves until ctx is cancelled, then releases the listener.
func (r *Router) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", r.handle)

	ln, err := net.Listen("tcp", r.addr)
	if err != nil {
		return fmt.Errorf("router listen %s: %w", r.addr, err)
	}

	r.server = &http.Server{Handler: mux}

	errCh := make(chan error, 1)
	go func() {
		errCh <- r.server.Serve(ln)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), r.grace)
		defer cancel()
		_ = r.server.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("router serve: %w", err)
	}
}

func (r *Router) handle(w http.ResponseWriter, req *http.Request) {
	conn, err := upgrader.Upgrade(w, req, nil)
	if err != nil {
		r.log.Warn("router upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(routerPongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(routerPongWait))
		return nil
	})

	go r.keepAlive(conn)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var frame getDistanceFrame
		if json.Unmarshal(data, &frame) != nil || frame.Type != getDistanceType {
			continue
		}

		resp := distanceFrame{Distance: r.distance()}
		payload, err := json.Marshal(resp)
		if err != nil {
			r.log.Warn("router marshal reply failed", "err", err)
			continue
		}
		_ = conn.SetWriteDeadline(time.Now().Add(routerWriteWait))
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}
}

func (r *Router) keepAlive(conn *websocket.Conn) {
	ticker := time.NewTicker(routerPingPeriod)
	defer ticker.Stop()
	for range ticker.C {
		_ = conn.SetWriteDeadline(time.Now().Add(routerWriteWait))
		if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
			return
		}
	}
}
