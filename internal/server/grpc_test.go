package server

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/fekuna/omnipos-catalog-service/internal/logger"
)

func TestGRPCHealthFollowsDatabase(t *testing.T) {
	db := &switchPinger{}
	g := NewGRPCServer(db, logger.NewNop())
	ctx := context.Background()

	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, g.Check(ctx))
	resp, err := g.health.Check(ctx, &healthpb.HealthCheckRequest{Service: healthService})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.Status)

	db.err = errors.New("down")
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, g.Check(ctx))
	resp, err = g.health.Check(ctx, &healthpb.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, resp.Status)
}

func TestWatchHealthStopsOnCancel(t *testing.T) {
	g := NewGRPCServer(&switchPinger{}, logger.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		g.WatchHealth(ctx, time.Minute)
		close(done)
	}()
	<-done
}

type switchPinger struct{ err error }

func (p *switchPinger) PingContext(context.Context) error { return p.err }
