// Command network runs the Network coordinator: the node registry,
// distance dealer, multilateration solver, and the AddNode/StartNetwork/
// GetTargetGlobalPosition RPC service (spec §4.1-§4.4).
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"multilat/internal/logging"
	"multilat/internal/multilat"
	"multilat/internal/network"
	"multilat/internal/rpcserver"
	"multilat/internal/transport"
	"multilat/internal/wire"
)

func main() {
	tp := sdktrace.NewTracerProvider()
	otel.SetTracerProvider(tp)
	defer func() { _ = tp.Shutdown(context.Background()) }()

	cmd := rootCmd()
	cmd.AddCommand(statusCmd())
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		bindAddr      string
		statusAddr    string
		pollTimeout   time.Duration
		workers       int64
		shutdownGrace time.Duration
		verbose       bool
	)

	cmd := &cobra.Command{
		Use:   "network",
		Short: "Run the Network coordinator",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := logging.Configure("network", logging.LevelForVerbose(verbose))
			if err != nil {
				return fmt.Errorf("configure logging: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			store := network.NewStore()
			dealer := transport.New(pollTimeout, log)
			solver := multilat.New()
			svc := network.NewService(store, dealer, solver, workers, log)

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				return rpcserver.Serve(gctx, bindAddr, shutdownGrace, func(s *grpc.Server) {
					wire.RegisterNetworkServer(s, svc)
				})
			})
			if statusAddr != "" {
				g.Go(func() error { return serveStatus(gctx, statusAddr, store) })
			}

			log.Info("network started", "bind_addr", bindAddr, "workers", workers, "poll_timeout", pollTimeout)
			if err := g.Wait(); err != nil && gctx.Err() == nil {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&bindAddr, "bind", "127.0.0.1:7002", "address to serve AddNode/StartNetwork/GetTargetGlobalPosition on")
	cmd.Flags().StringVar(&statusAddr, "status-addr", "127.0.0.1:7092", "address to serve the read-only status endpoint on (empty disables it)")
	cmd.Flags().DurationVar(&pollTimeout, "poll-timeout", 500*time.Millisecond, "dealer gather-phase poll timeout")
	cmd.Flags().Int64Var(&workers, "workers", 16, "bounded worker pool size for the RPC service")
	cmd.Flags().DurationVar(&shutdownGrace, "shutdown-grace", 3*time.Second, "grace window before forcing shutdown")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "enable debug logging")

	return cmd
}

func serveStatus(ctx context.Context, addr string, store *network.Store) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/status", network.StatusHandler(store))
	srv := &http.Server{Addr: addr, Handler: mux}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

func statusCmd() *cobra.Command {
	var statusAddr string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Print the running network's registry size and activation state",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := http.Get(fmt.Sprintf("http://%s/status", statusAddr))
			if err != nil {
				return fmt.Errorf("network status: %w", err)
			}
			defer resp.Body.Close()

			var st network.StatusResponse
			if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
				return fmt.Errorf("network status: decode response: %w", err)
			}

			fmt.Printf("registered nodes: %d\n", st.NNodes)
			fmt.Printf("active:           %t\n", st.Active)
			return nil
		},
	}

	cmd.Flags().StringVar(&statusAddr, "status-addr", "127.0.0.1:7092", "address of a running network's status endpoint")
	return cmd
}
