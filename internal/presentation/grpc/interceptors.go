package grpc

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// requestInstruments are the per-RPC OTel instruments exported on /metrics.
type requestInstruments struct {
	requests metric.Int64Counter
	duration metric.Float64Histogram
}

func newRequestInstruments(mp metric.MeterProvider) (*requestInstruments, error) {
	meter := mp.Meter("github.com/bibbank/kyb-service/internal/presentation/grpc")

	requests, err := meter.Int64Counter("kyb.grpc.requests",
		metric.WithDescription("gRPC requests by method and status code"))
	if err != nil {
		return nil, err
	}
	duration, err := meter.Float64Histogram("kyb.grpc.duration",
		metric.WithDescription("gRPC request duration"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}
	return &requestInstruments{requests: requests, duration: duration}, nil
}

// unaryTelemetryInterceptor logs and measures every unary call. It runs
// outside the auth interceptor so rejected calls are counted too.
func unaryTelemetryInterceptor(inst *requestInstruments, logger *slog.Logger) grpclib.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpclib.UnaryServerInfo,
		handler grpclib.UnaryHandler,
	) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		elapsed := time.Since(start)
		code := status.Code(err)

		attrs := metric.WithAttributes(
			attribute.String("rpc.method", info.FullMethod),
			attribute.String("rpc.grpc.status_code", code.String()),
		)
		inst.requests.Add(ctx, 1, attrs)
		inst.duration.Record(ctx, elapsed.Seconds(), attrs)

		logger.DebugContext(ctx, "grpc request",
			slog.String("method", info.FullMethod),
			slog.String("code", code.String()),
			slog.Duration("duration", elapsed),
		)
		return resp, err
	}
}
