package grpc

import (
	"fmt"
	"log/slog"
	"net"

	"go.opentelemetry.io/otel/metric"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/bibbank/kyb-service/pkg/auth"
	"github.com/bibbank/kyb-service/pkg/tlsutil"
)

// ServerConfig holds transport options for the gRPC server.
type ServerConfig struct {
	Address      string
	CertFile     string
	KeyFile      string
	ClientCAFile string
	Reflection   bool
}

// Server wraps the gRPC server with KYB service handlers.
type Server struct {
	address    string
	grpcServer *grpc.Server
	health     *health.Server
	logger     *slog.Logger
}

// NewServer creates a new gRPC server for the KYB service.
func NewServer(
	handler *KYBServiceHandler,
	cfg ServerConfig,
	logger *slog.Logger,
	jwtService *auth.JWTService,
	meterProvider metric.MeterProvider,
) (*Server, error) {
	instruments, err := newRequestInstruments(meterProvider)
	if err != nil {
		return nil, fmt.Errorf("failed to create grpc instruments: %w", err)
	}

	// Health checks skip authentication.
	authInterceptor := auth.UnaryAuthInterceptor(jwtService,
		"/grpc.health.v1.Health/Check",
		"/grpc.health.v1.Health/Watch",
	)

	serverOpts := []grpc.ServerOption{
		grpc.ChainUnaryInterceptor(
			unaryTelemetryInterceptor(instruments, logger),
			authInterceptor,
		),
	}

	tlsFiles := tlsutil.Files{CertFile: cfg.CertFile, KeyFile: cfg.KeyFile, ClientCAFile: cfg.ClientCAFile}
	if tlsFiles.Enabled() {
		creds, err := tlsFiles.ServerCredentials()
		if err != nil {
			return nil, fmt.Errorf("failed to load TLS credentials: %w", err)
		}
		serverOpts = append(serverOpts, grpc.Creds(creds))
		logger.Info("gRPC TLS enabled",
			slog.String("cert", cfg.CertFile),
			slog.Bool("mtls", tlsFiles.MutualTLS()),
		)
	} else {
		logger.Warn("gRPC TLS not configured, running without TLS")
	}

	grpcServer := grpc.NewServer(serverOpts...)

	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus(kybServiceName, healthpb.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	RegisterKYBServiceServer(grpcServer, handler)

	if cfg.Reflection {
		reflection.Register(grpcServer)
	}

	return &Server{
		address:    cfg.Address,
		grpcServer: grpcServer,
		health:     healthServer,
		logger:     logger,
	}, nil
}

// Start begins listening and serving gRPC requests.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.address, err)
	}
	s.logger.Info("gRPC server starting", slog.String("address", s.address))
	return s.grpcServer.Serve(listener)
}

// Stop marks the service as not serving and drains in-flight calls.
func (s *Server) Stop() {
	s.logger.Info("gRPC server shutting down")
	s.health.Shutdown()
	s.grpcServer.GracefulStop()
}
