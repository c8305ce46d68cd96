// Command node runs a single sensor Node: one-shot registration with the
// Network, a periodic sensor loop polling the Target, and a router
// replying to distance queries (spec §4.5).
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

	"multilat/internal/geometry"
	"multilat/internal/logging"
	"multilat/internal/node"
	"multilat/internal/transport"
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
		nodeID        int32
		x, y, z       float64
		bindAddr      string
		networkAddr   string
		targetAddr    string
		freq          float64
		variance      float64
		regTimeout    time.Duration
		shutdownGrace time.Duration
		verbose       bool
	)

	cmd := &cobra.Command{
		Use:   "node",
		Short: "Run a sensor Node",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := logging.Configure("node", logging.LevelForVerbose(verbose))
			if err != nil {
				return fmt.Errorf("configure logging: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			networkConn, err := grpc.NewClient(networkAddr, wire.DialOptions()...)
			if err != nil {
				return fmt.Errorf("dial network %s: %w", networkAddr, err)
			}
			defer networkConn.Close()

			targetConn, err := grpc.NewClient(targetAddr, wire.DialOptions()...)
			if err != nil {
				return fmt.Errorf("dial target %s: %w", targetAddr, err)
			}
			defer targetConn.Close()

			networkClient := wire.NewNetworkClient(networkConn)
			targetClient := wire.NewTargetClient(targetConn)

			position := geometry.Vector3{X: x, Y: y, Z: z}

			regCtx, cancel := context.WithTimeout(ctx, regTimeout)
			err = node.Register(regCtx, networkClient, nodeID, position, bindAddr)
			cancel()
			if err != nil {
				return fmt.Errorf("register node %d: %w", nodeID, err)
			}
			log.Info("node registered", "node_id", nodeID, "position", position)

			cell := &node.DistanceCell{}
			sensorLoop := node.NewSensorLoop(nodeID, position, targetClient, cell, freq, variance, log)
			router := transport.NewRouter(bindAddr, cell.Get, shutdownGrace, log)

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error { return sensorLoop.Run(gctx) })
			g.Go(func() error { return router.Run(gctx) })

			if err := g.Wait(); err != nil && gctx.Err() == nil {
				return err
			}
			return nil
		},
	}

	cmd.Flags().Int32Var(&nodeID, "id", 0, "node id")
	cmd.Flags().Float64Var(&x, "x", 0, "sensor position x")
	cmd.Flags().Float64Var(&y, "y", 0, "sensor position y")
	cmd.Flags().Float64Var(&z, "z", 0, "sensor position z")
	cmd.Flags().StringVar(&bindAddr, "bind", "127.0.0.1:8001", "reply_address: router bind address advertised to the Network")
	cmd.Flags().StringVar(&networkAddr, "network", "127.0.0.1:7002", "Network RPC address")
	cmd.Flags().StringVar(&targetAddr, "target", "127.0.0.1:7001", "Target RPC address")
	cmd.Flags().Float64Var(&freq, "freq", 5, "sensor polling frequency f_s in Hz")
	cmd.Flags().Float64Var(&variance, "variance", 0.01, "Gaussian measurement noise variance")
	cmd.Flags().DurationVar(&regTimeout, "register-timeout", 5*time.Second, "timeout for the one-shot AddNode registration call")
	cmd.Flags().DurationVar(&shutdownGrace, "shutdown-grace", 3*time.Second, "grace window before forcing shutdown")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "enable debug logging")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("bind")

	return cmd
}
