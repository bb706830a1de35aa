package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/example/littlelemon/pkg/config"
	"github.com/example/littlelemon/pkg/discovery"
	"github.com/example/littlelemon/pkg/grpc"
	"go.uber.org/zap"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// probe exits 0 when the API reports SERVING and 1 otherwise, so it can
// back container health checks.
func main() {
	configPath := flag.String("config", "config/config.yaml", "path to the YAML config file")
	service := flag.String("service", "", "health service name to check; empty checks the whole server")
	timeout := flag.Duration("timeout", 5*time.Second, "overall timeout")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	logger, err := zap.NewProduction()
	if err != nil {
		panic(fmt.Sprintf("Failed to create logger: %v", err))
	}
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	var resolver grpc.Resolver
	if len(cfg.Etcd.Endpoints) > 0 {
		sd, err := discovery.NewServiceDiscovery(&cfg.Etcd)
		if err != nil {
			logger.Warn("Failed to connect to etcd, using configured address", zap.Error(err))
		} else {
			defer sd.Close()
			resolver = sd
		}
	}

	fallback := fmt.Sprintf("localhost:%d", cfg.GRPC.Port)
	probe := grpc.NewProbe(resolver, fallback, logger)
	defer probe.Close()

	if err := probe.Connect(ctx, cfg.GRPC.Name); err != nil {
		logger.Error("Failed to connect", zap.Error(err))
		os.Exit(1)
	}

	st, err := probe.Check(ctx, *service)
	if err != nil {
		logger.Error("Health check failed", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("Health status", zap.String("service", *service), zap.String("status", st.String()))
	if st != healthpb.HealthCheckResponse_SERVING {
		os.Exit(1)
	}
}
