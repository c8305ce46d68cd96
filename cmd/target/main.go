// Command target runs the Target: it loads an ordered waypoint list,
// advances a position cursor along it at a fixed frequency, and serves
// GetPosition to Nodes (spec §4.6).
package main

import (
	"context"
	"fmt"
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
	"multilat/internal/rpcserver"
	"multilat/internal/target"
	"multilat/internal/wire"
)

func main() {
	tp := sdktrace.NewTracerProvider()
	otel.SetTracerProvider(tp)
	defer func() { _ = tp.Shutdown(context.Background()) }()

	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		bindAddr      string
		trajectory    string
		freq          float64
		loopPath      bool
		shutdownGrace time.Duration
		verbose       bool
	)

	cmd := &cobra.Command{
		Use:   "target",
		Short: "Run the Target trajectory service",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := logging.Configure("target", logging.LevelForVerbose(verbose))
			if err != nil {
				return fmt.Errorf("configure logging: %w", err)
			}

			waypoints, err := target.LoadTrajectory(trajectory)
			if err != nil {
				return fmt.Errorf("load trajectory: %w", err)
			}
			log.Info("trajectory loaded", "waypoints", len(waypoints), "loop_path", loopPath)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cell := target.NewPositionCell(waypoints[0])
			updater := target.NewUpdater(waypoints, cell, freq, loopPath, log)
			svc := target.NewService(cell)

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error { return updater.Run(gctx) })
			g.Go(func() error {
				return rpcserver.Serve(gctx, bindAddr, shutdownGrace, func(s *grpc.Server) {
					wire.RegisterTargetServer(s, svc)
				})
			})

			log.Info("target started", "bind_addr", bindAddr, "freq", freq)
			if err := g.Wait(); err != nil && gctx.Err() == nil {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&bindAddr, "bind", "127.0.0.1:7001", "address to serve GetPosition on")
	cmd.Flags().StringVar(&trajectory, "trajectory", "trajectory.json", "path to the waypoint JSON document")
	cmd.Flags().Float64Var(&freq, "freq", 2, "trajectory update frequency f_t in Hz")
	cmd.Flags().BoolVar(&loopPath, "loop-path", true, "wrap to the first waypoint after the last")
	cmd.Flags().DurationVar(&shutdownGrace, "shutdown-grace", 3*time.Second, "grace window before forcing shutdown")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "enable debug logging")

	return cmd
}
