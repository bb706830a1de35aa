package grpc

import (
	"context"
	"fmt"
	"time"

	"github.com/example/littlelemon/pkg/discovery"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Resolver finds registered instances of a service.
type Resolver interface {
	Discover(ctx context.Context, serviceName string) ([]*discovery.ServiceInstance, error)
}

// Probe calls the health service of a running API instance, found through
// the resolver when one is set and at the fallback target otherwise.
type Probe struct {
	resolver Resolver
	fallback string
	dialOpts []grpc.DialOption
	logger   *zap.Logger

	conn   *grpc.ClientConn
	client healthpb.HealthClient
}

func NewProbe(resolver Resolver, fallback string, logger *zap.Logger, opts ...grpc.DialOption) *Probe {
	return &Probe{
		resolver: resolver,
		fallback: fallback,
		dialOpts: opts,
		logger:   logger,
	}
}

// Connect resolves serviceName and opens a client connection to it.
func (p *Probe) Connect(ctx context.Context, serviceName string) error {
	target := p.fallback

	if p.resolver != nil {
		dctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()

		instances, err := p.resolver.Discover(dctx, serviceName)
		if err == nil && len(instances) > 0 {
			// Registered addresses are literal host:port pairs.
			target = "passthrough:///" + instances[0].Addr()
			p.logger.Info("Discovered service", zap.String("service", serviceName), zap.String("address", target))
		} else {
			p.logger.Info("Using default address", zap.String("service", serviceName), zap.String("address", target), zap.Error(err))
		}
	}
	if target == "" {
		return fmt.Errorf("no address for %s", serviceName)
	}

	opts := append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, p.dialOpts...)
	conn, err := grpc.NewClient(target, opts...)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", serviceName, err)
	}

	p.conn = conn
	p.client = healthpb.NewHealthClient(conn)
	return nil
}

// Check asks for the serving status of service; "" means the whole server.
func (p *Probe) Check(ctx context.Context, service string) (healthpb.HealthCheckResponse_ServingStatus, error) {
	if p.client == nil {
		return healthpb.HealthCheckResponse_UNKNOWN, fmt.Errorf("probe is not connected")
	}
	resp, err := p.client.Check(ctx, &healthpb.HealthCheckRequest{Service: service})
	if err != nil {
		return healthpb.HealthCheckResponse_UNKNOWN, err
	}
	return resp.GetStatus(), nil
}

func (p *Probe) Close() error {
	if p.conn == nil {
		return nil
	}
	if err := p.conn.Close(); err != nil {
		return fmt.Errorf("connection close error: %w", err)
	}
	return nil
}
