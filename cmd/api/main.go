package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/littlelemon/api"
	"github.com/example/littlelemon/pkg/auth"
	"github.com/example/littlelemon/pkg/config"
	"github.com/example/littlelemon/pkg/discovery"
	"github.com/example/littlelemon/pkg/events"
	"github.com/example/littlelemon/pkg/grpc"
	"github.com/example/littlelemon/pkg/repository"
	"github.com/example/littlelemon/pkg/service"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	logger, err := cfg.Log.Build()
	if err != nil {
		panic(fmt.Sprintf("Failed to create logger: %v", err))
	}
	defer logger.Sync()

	logger.Info("Starting Little Lemon API",
		zap.String("name", cfg.Server.Name),
		zap.Int("port", cfg.Server.Port),
		zap.String("database", cfg.Database.Driver))

	if err := cfg.Auth.Validate(); err != nil {
		logger.Fatal("Invalid auth configuration", zap.Error(err))
	}

	db, err := repository.OpenDatabase(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to open database", zap.Error(err))
	}
	if err := repository.Migrate(db); err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	checks := map[string]grpc.Checker{"database": repository.NewDatabasePinger(db)}

	var limiter api.Limiter
	if cfg.Redis.Addr != "" {
		redisRepo := repository.NewRedisRepository(&cfg.Redis)
		defer redisRepo.Close()
		if err := redisRepo.Ping(ctx); err != nil {
			logger.Warn("Redis connection failed, throttling fails open", zap.Error(err))
		} else {
			logger.Info("Redis connected successfully")
		}
		limiter = redisRepo
		checks["redis"] = redisRepo
	}

	var (
		sink        events.Sink
		auditReader service.AuditReader
	)
	if cfg.MongoDB.URI != "" {
		mongoRepo, err := repository.NewMongoRepository(&cfg.MongoDB)
		if err != nil {
			logger.Warn("Failed to connect to MongoDB, audit events go to the log only", zap.Error(err))
		} else {
			defer func() {
				closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer closeCancel()
				mongoRepo.Close(closeCtx)
			}()
			if err := mongoRepo.EnsureIndexes(ctx); err != nil {
				logger.Warn("Failed to create audit indexes", zap.Error(err))
			}
			sink = mongoRepo
			auditReader = mongoRepo
		}
	}

	bus, err := events.NewBus(sink, logger)
	if err != nil {
		logger.Fatal("Failed to start audit bus", zap.Error(err))
	}

	roles := service.NewRoleDirectory(db, bus, logger)
	services := api.Services{
		Catalog:  service.NewCatalogService(db, bus, logger),
		Cart:     service.NewCartService(db, logger),
		Orders:   service.NewOrderService(db, bus, logger).WithTxOptions(repository.TxOptions(&cfg.Database)),
		Roles:    roles,
		Ratings:  service.NewRatingService(db, bus, logger),
		Accounts: service.NewAccountService(db, roles, auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL), logger),
		Audit:    service.NewAuditService(auditReader, logger),
	}

	server := api.NewServer(cfg, services, limiter, logger)
	health := grpc.NewHealthServer(&cfg.GRPC, checks, logger)
	go health.Watch(ctx, cfg.GRPC.HealthInterval)

	serverErr := make(chan error, 2)
	go func() {
		if err := server.Start(); err != nil {
			serverErr <- err
		}
	}()
	go func() {
		if err := health.Start(); err != nil {
			serverErr <- err
		}
	}()

	instances := []*discovery.ServiceInstance{
		{Name: cfg.Server.Name, Host: cfg.Server.Host, Port: cfg.Server.Port},
		{Name: cfg.GRPC.Name, Host: cfg.GRPC.Host, Port: cfg.GRPC.Port},
	}
	var sd *discovery.ServiceDiscovery
	if len(cfg.Etcd.Endpoints) > 0 {
		sd, err = discovery.NewServiceDiscovery(&cfg.Etcd)
		if err != nil {
			logger.Warn("Failed to connect to etcd, continuing without service discovery", zap.Error(err))
		} else {
			for _, inst := range instances {
				if err := sd.Register(ctx, inst); err != nil {
					logger.Warn("Failed to register service", zap.String("name", inst.Name), zap.Error(err))
					continue
				}
				logger.Info("Service registered in etcd", zap.String("name", inst.Name), zap.String("address", inst.Addr()))
			}
		}
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigCh:
		logger.Info("Received shutdown signal")
	case err := <-serverErr:
		logger.Error("Server error", zap.Error(err))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if sd != nil {
		for _, inst := range instances {
			if err := sd.Deregister(shutdownCtx, inst); err != nil {
				logger.Error("Failed to deregister service", zap.String("name", inst.Name), zap.Error(err))
			}
		}
		sd.Close()
	}

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP shutdown error", zap.Error(err))
	}
	health.Stop()
	cancel()

	if err := bus.Close(5 * time.Second); err != nil {
		logger.Error("Failed to stop audit bus", zap.Error(err))
	}

	logger.Info("Little Lemon API stopped")
}
