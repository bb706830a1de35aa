package events

import (
	"context"
	"fmt"
	"time"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/example/littlelemon/pkg/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// Event describes a completed domain mutation.
type Event struct {
	Service  string
	Action   string
	EntityID string
	ActorID  uint
	Data     map[string]interface{}
}

// Publisher accepts events without blocking the caller.
type Publisher interface {
	Publish(evt *Event)
}

// Sink stores audit records. MongoRepository implements it.
type Sink interface {
	CreateAuditLog(ctx context.Context, log *repository.AuditLog) error
}

type discard struct{}

func (discard) Publish(*Event) {}

// Discard drops every event.
var Discard Publisher = discard{}

// auditActor serialises writes to the sink in mailbox order.
type auditActor struct {
	sink    Sink
	logger  *zap.Logger
	timeout time.Duration
}

type flush struct{}

type flushed struct{}

func (a *auditActor) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *Event:
		a.logger.Info("Audit event",
			zap.String("service", msg.Service),
			zap.String("action", msg.Action),
			zap.String("entity_id", msg.EntityID),
			zap.Uint("actor_id", msg.ActorID))

		if a.sink == nil {
			return
		}

		writeCtx, cancel := context.WithTimeout(context.Background(), a.timeout)
		defer cancel()
		err := a.sink.CreateAuditLog(writeCtx, &repository.AuditLog{
			Service:  msg.Service,
			Action:   msg.Action,
			EntityID: msg.EntityID,
			ActorID:  msg.ActorID,
			Data:     bson.M(msg.Data),
		})
		if err != nil {
			a.logger.Error("Failed to write audit log", zap.String("action", msg.Action), zap.Error(err))
		}

	case *flush:
		ctx.Respond(&flushed{})

	case *actor.Started:
		a.logger.Info("Audit actor started")

	case *actor.Stopping:
		a.logger.Info("Audit actor stopping")
	}
}

// Bus owns the actor system and the audit actor.
type Bus struct {
	system *actor.ActorSystem
	pid    *actor.PID
	logger *zap.Logger
}

// NewBus spawns the audit actor. A nil sink keeps events in the log only.
func NewBus(sink Sink, logger *zap.Logger) (*Bus, error) {
	system := actor.NewActorSystem()

	props := actor.PropsFromProducer(func() actor.Actor {
		return &auditActor{
			sink:    sink,
			logger:  logger.Named("audit-actor"),
			timeout: 5 * time.Second,
		}
	})
	pid, err := system.Root.SpawnNamed(props, "audit-actor")
	if err != nil {
		return nil, fmt.Errorf("failed to spawn audit actor: %w", err)
	}

	return &Bus{
		system: system,
		pid:    pid,
		logger: logger,
	}, nil
}

func (b *Bus) Publish(evt *Event) {
	b.system.Root.Send(b.pid, evt)
}

// Flush waits until every event published before the call is handled.
func (b *Bus) Flush(timeout time.Duration) error {
	result, err := b.system.Root.RequestFuture(b.pid, &flush{}, timeout).Result()
	if err != nil {
		return fmt.Errorf("failed to flush audit events: %w", err)
	}
	if _, ok := result.(*flushed); !ok {
		return fmt.Errorf("unexpected flush reply %T", result)
	}
	return nil
}

// Close drains pending events and stops the actor.
func (b *Bus) Close(timeout time.Duration) error {
	if err := b.Flush(timeout); err != nil {
		b.logger.Warn("Audit events not drained before shutdown", zap.Error(err))
	}
	return b.system.Root.PoisonFuture(b.pid).Wait()
}
