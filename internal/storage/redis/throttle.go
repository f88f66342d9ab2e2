package redis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/go-redis/redis/v8"

	domainErrors "github.com/polkiloo/procurement/internal/domain/errors"
	"github.com/polkiloo/procurement/internal/domain/repository"
)

const keyPrefix = "procurement:cooldown:"

// setter is the subset of the redis client used by Throttle.
type setter interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *goredis.BoolCmd
}

// Throttle is a per-key cooldown kept in Redis.
type Throttle struct {
	client   setter
	cooldown time.Duration
	logger   *slog.Logger
}

var _ repository.Throttle = (*Throttle)(nil)

// NewThrottle creates a throttle that admits one Acquire per key per cooldown.
func NewThrottle(client setter, cooldown time.Duration, logger *slog.Logger) *Throttle {
	return &Throttle{client: client, cooldown: cooldown, logger: logger}
}

// Acquire claims key for the cooldown window. Redis failures are logged and let the call through.
func (t *Throttle) Acquire(ctx context.Context, key string) error {
	ok, err := t.client.SetNX(ctx, keyPrefix+key, time.Now().Unix(), t.cooldown).Result()
	if err != nil {
		t.logger.Warn("throttle unavailable", slog.String("key", key), slog.Any("error", err))
		return nil
	}
	if !ok {
		return domainErrors.ErrTooManyRequests
	}
	return nil
}

// NoopThrottle admits every call.
type NoopThrottle struct{}

func (NoopThrottle) Acquire(context.Context, string) error { return nil }

// Dial parses url and verifies the server answers.
func Dial(ctx context.Context, url string) (*goredis.Client, error) {
	opt, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := goredis.NewClient(opt)
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}
