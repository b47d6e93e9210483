// Package redis publishes committed employees to a Redis pub/sub channel so
// other processes can follow directory edits.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	goredis "github.com/redis/go-redis/v9"

	"staffdir/internal/seed"
	"staffdir/pkg/domain"
)

// DefaultChannel receives commit events unless STAFFDIR_REDIS_CHANNEL is set.
const DefaultChannel = "staffdir:commits"

// Event is the published payload.
type Event struct {
	Type     string      `json:"type"`
	Employee seed.Record `json:"employee"`
}

// Publisher sends commit events over a Redis client.
type Publisher struct {
	client  *goredis.Client
	channel string
}

// New wraps client. An empty channel selects DefaultChannel.
func New(client *goredis.Client, channel string) *Publisher {
	if channel == "" {
		channel = DefaultChannel
	}
	return &Publisher{client: client, channel: channel}
}

// OpenFromEnv connects using environment variables and verifies the server.
//
//	STAFFDIR_REDIS_ADDR: host:port (default localhost:6379)
//	STAFFDIR_REDIS_CHANNEL: pub/sub channel (default staffdir:commits)
func OpenFromEnv(ctx context.Context) (*Publisher, error) {
	addr := os.Getenv("STAFFDIR_REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	client := goredis.NewClient(&goredis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect redis %s: %w", addr, err)
	}
	return New(client, os.Getenv("STAFFDIR_REDIS_CHANNEL")), nil
}

// Channel returns the channel events are published on.
func (p *Publisher) Channel() string { return p.channel }

// Publish sends e and returns the number of subscribers that received it.
func (p *Publisher) Publish(ctx context.Context, e domain.Employee) (int64, error) {
	payload, err := json.Marshal(Event{Type: "employee.committed", Employee: seed.RecordOf(e)})
	if err != nil {
		return 0, fmt.Errorf("encode event: %w", err)
	}
	n, err := p.client.Publish(ctx, p.channel, payload).Result()
	if err != nil {
		return 0, fmt.Errorf("publish %s: %w", p.channel, err)
	}
	return n, nil
}

// Close releases the client.
func (p *Publisher) Close() error { return p.client.Close() }
