package grpc

import (
	"context"
	"fmt"
	"sync"

	"github.com/getsentry/sentry-go"
	grpcprom "github.com/grpc-ecosystem/go-grpc-middleware/providers/prometheus"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"

	"github.com/Belphemur/ShowShelf/internal/config"
)

var (
	catalogServerMetrics *grpcprom.ServerMetrics
	registerMetricsOnce  sync.Once
)

// NewGRPCServer creates the catalog gRPC server with Prometheus metrics,
// request logging, panic recovery, health checking and reflection.
func NewGRPCServer(c Catalog) *grpc.Server {
	// Prometheus collectors can only be registered once per process
	registerMetricsOnce.Do(func() {
		catalogServerMetrics = grpcprom.NewServerMetrics(
			grpcprom.WithServerHandlingTimeHistogram(),
		)
		prometheus.MustRegister(catalogServerMetrics)
	})

	logger := config.GetLogger()

	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			catalogServerMetrics.UnaryServerInterceptor(),
			logging.UnaryServerInterceptor(interceptorLogger(logger), logging.WithLogOnEvents(logging.FinishCall)),
			recovery.UnaryServerInterceptor(recovery.WithRecoveryHandler(recoverPanic)),
		),
	)

	RegisterCatalogServer(grpcServer, NewServer(c))

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus(ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)

	// Reflection lets grpcurl list the service
	reflection.Register(grpcServer)

	catalogServerMetrics.InitializeMetrics(grpcServer)

	return grpcServer
}

// interceptorLogger adapts zerolog to the go-grpc-middleware logging interface
func interceptorLogger(l zerolog.Logger) logging.Logger {
	return logging.LoggerFunc(func(ctx context.Context, lvl logging.Level, msg string, fields ...any) {
		l := l.With().Fields(fields).Logger()

		switch lvl {
		case logging.LevelDebug:
			l.Debug().Msg(msg)
		case logging.LevelInfo:
			l.Info().Msg(msg)
		case logging.LevelWarn:
			l.Warn().Msg(msg)
		case logging.LevelError:
			l.Error().Msg(msg)
		default:
			l.Error().Int("level", int(lvl)).Msg(msg)
		}
	})
}

func recoverPanic(p any) error {
	err := fmt.Errorf("panic in catalog handler: %v", p)
	sentry.CaptureException(err)
	config.GetLogger().Error().Err(err).Msg("Recovered from gRPC handler panic")
	return status.Error(codes.Internal, "internal error")
}
