// Package rpcserver is the shared gRPC bring-up/shutdown shape used by the
// Target and Network processes (spec §4.4, §4.6, §5's "grace window"),
// adapted from the teacher's api.Server.ListenAndServe.
package rpcserver

import (
	"context"
	"fmt"
	"net"
	"time"

	"google.golang.org/grpc"

	"multilat/internal/wire"
)

// Serve binds addr, runs register against a fresh *grpc.Server configured
// with the JSON codec and OpenTelemetry stats handler, and blocks until ctx
// is cancelled. On cancellation it attempts a graceful stop, forcing the
// server closed if grace elapses first — the teacher's
// `go func() { <-ctx.Done(); srv.GracefulStop() }()` pattern, extended with
// a hard deadline (SPEC_FULL.md §C's configurable --shutdown-grace).
func Serve(ctx context.Context, addr string, grace time.Duration, register func(*grpc.Server)) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("rpcserver: listen %s: %w", addr, err)
	}

	srv := grpc.NewServer(wire.ServerOptions()...)
	register(srv)

	stopped := make(chan struct{})
	go func() {
		<-ctx.Done()
		done := make(chan struct{})
		go func() {
			srv.GracefulStop()
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(grace):
			srv.Stop()
		}
		close(stopped)
	}()

	if err := srv.Serve(ln); err != nil {
		return fmt.Errorf("rpcserver: serve %s: %w", addr, err)
	}
	<-stopped
	return ctx.Err()
}
