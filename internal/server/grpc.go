package server

import (
	"context"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/fekuna/omnipos-catalog-service/internal/logger"
)

const healthService = "catalog"

type GRPCServer struct {
	Server *grpc.Server
	health *health.Server
	db     Pinger
	logger logger.ZapLogger
}

// NewGRPCServer exposes grpc.health.v1 for the whole server and for the
// "catalog" service, plus reflection.
func NewGRPCServer(db Pinger, log logger.ZapLogger) *GRPCServer {
	s := grpc.NewServer()
	h := health.NewServer()
	healthpb.RegisterHealthServer(s, h)
	reflection.Register(s)

	return &GRPCServer{
		Server: s,
		health: h,
		db:     db,
		logger: log,
	}
}

// Check pings the database once and updates the serving status.
func (g *GRPCServer) Check(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	if err := g.db.PingContext(ctx); err != nil {
		g.logger.Warn("Database ping failed", zap.Error(err))
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	g.health.SetServingStatus("", status)
	g.health.SetServingStatus(healthService, status)
	return status
}

// WatchHealth re-checks the database every interval until ctx is done.
func (g *GRPCServer) WatchHealth(ctx context.Context, interval time.Duration) {
	g.Check(ctx)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			g.Check(ctx)
		}
	}
}

func (g *GRPCServer) GracefulStop() {
	g.health.Shutdown()
	g.Server.GracefulStop()
}
