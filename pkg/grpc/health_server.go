package grpc

import (
	"context"
	"fmt"
	"net"
	"sort"
	"time"

	"github.com/example/littlelemon/pkg/config"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// Checker is a dependency whose reachability decides serving status.
type Checker interface {
	Ping(ctx context.Context) error
}

// HealthServer exposes grpc.health.v1 for the API process. Each check is
// reported under its own service name; the empty name and the configured
// server name report the overall status.
type HealthServer struct {
	config *config.GRPCConfig
	checks map[string]Checker
	health *health.Server
	server *grpc.Server
	logger *zap.Logger
}

func NewHealthServer(cfg *config.GRPCConfig, checks map[string]Checker, logger *zap.Logger) *HealthServer {
	srv := grpc.NewServer()
	hs := health.NewServer()
	healthpb.RegisterHealthServer(srv, hs)
	reflection.Register(srv)

	s := &HealthServer{
		config: cfg,
		checks: checks,
		health: hs,
		server: srv,
		logger: logger.Named("health"),
	}
	s.setOverall(healthpb.HealthCheckResponse_NOT_SERVING)
	return s
}

// Refresh pings every check and publishes the result. It reports whether
// all checks passed.
func (s *HealthServer) Refresh(ctx context.Context) bool {
	names := make([]string, 0, len(s.checks))
	for name := range s.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	healthy := true
	for _, name := range names {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := s.checks[name].Ping(pingCtx)
		cancel()

		st := healthpb.HealthCheckResponse_SERVING
		if err != nil {
			healthy = false
			st = healthpb.HealthCheckResponse_NOT_SERVING
			s.logger.Warn("Health check failed", zap.String("check", name), zap.Error(err))
		}
		s.health.SetServingStatus(name, st)
	}

	if healthy {
		s.setOverall(healthpb.HealthCheckResponse_SERVING)
	} else {
		s.setOverall(healthpb.HealthCheckResponse_NOT_SERVING)
	}
	return healthy
}

// Watch refreshes immediately and then every interval until ctx is done.
func (s *HealthServer) Watch(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	s.Refresh(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Refresh(ctx)
		}
	}
}

func (s *HealthServer) Start() error {
	addr := s.config.Addr()
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	s.logger.Info("gRPC health server started", zap.String("address", addr))
	return s.Serve(lis)
}

func (s *HealthServer) Serve(lis net.Listener) error {
	return s.server.Serve(lis)
}

// Stop marks everything NOT_SERVING so watchers see the shutdown, then
// drains in-flight calls.
func (s *HealthServer) Stop() {
	s.health.Shutdown()
	s.server.GracefulStop()
}

func (s *HealthServer) setOverall(st healthpb.HealthCheckResponse_ServingStatus) {
	s.health.SetServingStatus("", st)
	if s.config.Name != "" {
		s.health.SetServingStatus(s.config.Name, st)
	}
}
