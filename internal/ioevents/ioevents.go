// Package ioevents publishes change events of the card lab to the log
// or to a Redis pub/sub channel.
package ioevents

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/cardlab/cardlab/pkg/config"
	"github.com/cardlab/cardlab/pkg/lab"
	"github.com/go-redis/redis/v8"
)

// New returns a Redis publisher when it is enabled in cfg, otherwise a
// publisher that writes events to the log.
func New(ctx context.Context, cfg config.EventsConfig) (lab.Publisher, error) {
	if !cfg.RedisEnabled {
		return NewLogPublisher(slog.Default()), nil
	}
	return NewRedisPublisher(ctx, cfg)
}

type logPublisher struct {
	log *slog.Logger
}

// NewLogPublisher writes every event as a debug record.
func NewLogPublisher(log *slog.Logger) lab.Publisher {
	return &logPublisher{log: log}
}

func (p *logPublisher) Publish(ctx context.Context, e lab.Event) error {
	p.log.DebugContext(ctx, "Change event",
		"entity", e.Entity,
		"action", e.Action,
		"id", e.ID,
		"version", e.Version,
	)
	return nil
}

func (p *logPublisher) Close() error { return nil }

type redisPublisher struct {
	client  *redis.Client
	channel string
}

// NewRedisPublisher connects to Redis and publishes JSON events to the
// configured channel.
func NewRedisPublisher(
	ctx context.Context,
	cfg config.EventsConfig,
) (lab.Publisher, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, ConnectionError(cfg.RedisAddr, err)
	}

	slog.Info("Publishing change events to Redis",
		"addr", cfg.RedisAddr, "channel", cfg.Channel)
	return &redisPublisher{client: client, channel: cfg.Channel}, nil
}

func (p *redisPublisher) Publish(ctx context.Context, e lab.Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return PublishError(p.channel, err)
	}
	if err = p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		return PublishError(p.channel, err)
	}
	return nil
}

func (p *redisPublisher) Close() error {
	return p.client.Close()
}
