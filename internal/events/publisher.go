// Package events publishes entity-change notifications over Redis pub/sub.
// Each domain has its own channel, so a subscriber only ever sees its own
// tenant's traffic.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Event kinds, "<entity>.<verb>".
const (
	DeviceCreated  = "device.created"
	DeviceUpdated  = "device.updated"
	DeviceDeleted  = "device.deleted"
	ConfigCreated  = "config.created"
	ConfigUpdated  = "config.updated"
	ConfigDeleted  = "config.deleted"
	ProfileCreated = "profile.created"
	ProfileUpdated = "profile.updated"
	ProfileDeleted = "profile.deleted"
)

// Event is the published payload. Resource is the resource name of the
// entity that changed, in the same form the HTTP API uses.
type Event struct {
	Kind     string    `json:"kind"`
	Resource string    `json:"resource"`
	At       time.Time `json:"at"`
}

// Publisher emits events best-effort: a Redis outage degrades notifications,
// never API requests. Failures are logged and swallowed.
type Publisher struct {
	client *redis.Client
	logger *zap.Logger
}

// NewPublisher builds a publisher from a Redis URL ("redis://host:6379").
func NewPublisher(redisURL string, logger *zap.Logger) (*Publisher, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	return &Publisher{client: redis.NewClient(opts), logger: logger}, nil
}

func (p *Publisher) Close() error {
	return p.client.Close()
}

// Client exposes the underlying connection for subscribers.
func (p *Publisher) Client() *redis.Client {
	return p.client
}

// Channel returns the pub/sub channel for one domain.
func Channel(domainID uuid.UUID) string {
	return "luxgrid:events:" + domainID.String()
}

// Publish sends an event on the domain's channel.
func (p *Publisher) Publish(ctx context.Context, domainID uuid.UUID, kind, resource string) {
	payload, err := json.Marshal(Event{Kind: kind, Resource: resource, At: time.Now().UTC()})
	if err != nil {
		p.logger.Warn("marshal event", zap.String("kind", kind), zap.Error(err))
		return
	}
	if err := p.client.Publish(ctx, Channel(domainID), payload).Err(); err != nil {
		p.logger.Warn("publish event",
			zap.String("kind", kind),
			zap.String("resource", resource),
			zap.Error(err),
		)
	}
}
