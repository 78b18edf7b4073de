package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/taskdeck/apiserver/config"
	"github.com/taskdeck/apiserver/internal/logger"
)

// Event types emitted on the user lifecycle channel.
const (
	UserCreated  = "user.created"
	UserPromoted = "user.promoted"
	UserDeleted  = "user.deleted"
)

// Event is the payload published for a user lifecycle change. Users are
// referenced by public identifier only.
type Event struct {
	Type     string    `json:"type"`
	PublicID string    `json:"public_id"`
	At       time.Time `json:"at"`
}

// Backend defines the broker-agnostic publish operations used by the app.
type Backend interface {
	Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error)
	Close() error
}

// Publisher emits lifecycle events to a single configured channel.
// Publishing is best-effort: failures are logged and never surface to the
// request that triggered them.
type Publisher struct {
	backend Backend
	channel string
	log     *logger.Logger
}

// NewPublisher constructs a Publisher over the provided backend.
func NewPublisher(backend Backend, channel string, log *logger.Logger) *Publisher {
	return &Publisher{
		backend: backend,
		channel: channel,
		log:     log,
	}
}

// UserEvent publishes a lifecycle event for the given user.
func (p *Publisher) UserEvent(ctx context.Context, eventType, publicID string) {
	event := Event{
		Type:     eventType,
		PublicID: publicID,
		At:       time.Now().UTC(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		p.log.Error("marshal event failed", "type", eventType, "error", err)
		return
	}

	attrs := map[string]string{"type": eventType}
	if _, err := p.backend.Publish(ctx, p.channel, data, attrs); err != nil {
		p.log.Error("publish event failed", "type", eventType, "channel", p.channel, "error", err)
	}
}

// Close closes the underlying backend.
func (p *Publisher) Close() error {
	return p.backend.Close()
}

// NewBackend selects a backend from config. An empty backend name disables
// publishing.
func NewBackend(ctx context.Context, cfg config.EventsConfig) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case "":
		return NoopBackend{}, nil
	case "rabbitmq":
		return NewRabbitMQBackend(cfg.RabbitMQ)
	case "pubsub":
		return NewPubSubBackend(ctx, cfg.PubSub)
	default:
		return nil, fmt.Errorf("unknown events backend %q", cfg.Backend)
	}
}

// NoopBackend discards every event. Used when no broker is configured.
type NoopBackend struct{}

func (NoopBackend) Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error) {
	return "", nil
}

func (NoopBackend) Close() error {
	return nil
}
