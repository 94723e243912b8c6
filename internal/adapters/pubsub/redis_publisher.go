package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/andrescamacho/aeroroute-go/internal/application/routeplan"
	"github.com/andrescamacho/aeroroute-go/internal/infrastructure/config"
)

const (
	DefaultChannel = "aeroroute:plans"
	pingTimeout    = 2 * time.Second
)

// RedisPublisher publishes plan summaries on a redis pub/sub channel
type RedisPublisher struct {
	client  redis.UniversalClient
	channel string
}

var _ routeplan.PlanPublisher = (*RedisPublisher)(nil)

// NewRedisPublisher connects and pings redis; the caller owns Close
func NewRedisPublisher(ctx context.Context, cfg config.RedisConfig) (*RedisPublisher, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return NewRedisPublisherWithClient(client, cfg.Channel), nil
}

// NewRedisPublisherWithClient wraps an existing client
func NewRedisPublisherWithClient(client redis.UniversalClient, channel string) *RedisPublisher {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisPublisher{client: client, channel: channel}
}

// PublishPlan sends the summary as JSON
func (p *RedisPublisher) PublishPlan(ctx context.Context, summary routeplan.PlanSummary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal plan summary: %w", err)
	}
	if err := p.client.Publish(ctx, p.channel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish plan %s: %w", summary.PlanID, err)
	}
	return nil
}

// Channel returns the configured channel name
func (p *RedisPublisher) Channel() string {
	return p.channel
}

// Close closes the underlying client
func (p *RedisPublisher) Close() error {
	return p.client.Close()
}
