package wire

import (
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// ServerOptions returns the grpc.ServerOption set every role's RPC server
// installs: the JSON codec from codec.go plus otelgrpc tracing, matching the
// teacher's cmd/ployz/main.go tracer-provider wiring around its daemon API.
func ServerOptions() []grpc.ServerOption {
	return []grpc.ServerOption{
		grpc.ForceServerCodec(jsonCodec{}),
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
	}
}

// DialOptions returns the grpc.DialOption set every role's RPC client uses
// to reach another role's server.
func DialOptions() []grpc.DialOption {
	return []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.ForceCodec(jsonCodec{})),
		grpc.WithStatsHandler(otelgrpc.NewClientHandler()),
	}
}
