// Command client drives the system end to end: it polls the Network for
// target estimates, smooths them with a Kalman filter, and logs predictions
// to CSV (spec §4.7).
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	clientpkg "multilat/internal/client"
	"multilat/internal/clockquality"
	"multilat/internal/kalman"
	"multilat/internal/logging"
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
		clientID    int32
		networkAddr string
		freq        float64
		outputPath  string
		noiseAX     float64
		noiseAY     float64
		noiseAZ     float64
		checkClock  bool
		verbose     bool
	)

	cmd := &cobra.Command{
		Use:   "client",
		Short: "Track the Target via the Network and emit a CSV of predictions",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := logging.Configure("client", logging.LevelForVerbose(verbose))
			if err != nil {
				return fmt.Errorf("configure logging: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			conn, err := grpc.NewClient(networkAddr, wire.DialOptions()...)
			if err != nil {
				return fmt.Errorf("dial network %s: %w", networkAddr, err)
			}
			defer conn.Close()
			networkClient := wire.NewNetworkClient(conn)

			out, err := os.Create(outputPath)
			if err != nil {
				return fmt.Errorf("create output %s: %w", outputPath, err)
			}
			defer out.Close()

			writer, err := clientpkg.NewCSVWriter(out)
			if err != nil {
				return err
			}

			tracker := kalman.New(kalman.NoiseConfig{NoiseAX: noiseAX, NoiseAY: noiseAY, NoiseAZ: noiseAZ})
			loop := clientpkg.NewLoop(clientID, networkClient, tracker, writer, freq, log)

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error { return loop.Run(gctx) })
			if checkClock {
				checker := clockquality.NewChecker(log)
				g.Go(func() error { return checker.Run(gctx) })
			}

			log.Info("client started", "network_addr", networkAddr, "freq_hz", freq, "output", outputPath)
			if err := g.Wait(); err != nil && gctx.Err() == nil {
				return err
			}
			return nil
		},
	}

	cmd.Flags().Int32Var(&clientID, "id", 1, "client id")
	cmd.Flags().StringVar(&networkAddr, "network", "127.0.0.1:7002", "Network RPC address")
	cmd.Flags().Float64Var(&freq, "freq", 5, "tracker tick frequency f_c in Hz")
	cmd.Flags().StringVar(&outputPath, "output", "predictions.csv", "CSV output path")
	cmd.Flags().Float64Var(&noiseAX, "noise-ax", 1.0, "process noise variance, x acceleration")
	cmd.Flags().Float64Var(&noiseAY, "noise-ay", 1.0, "process noise variance, y acceleration")
	cmd.Flags().Float64Var(&noiseAZ, "noise-az", 1.0, "process noise variance, z acceleration")
	cmd.Flags().BoolVar(&checkClock, "check-clock", true, "run a background NTP drift checker")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "enable debug logging")

	return cmd
}
