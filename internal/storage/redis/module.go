package redis

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/procurement/internal/config"
	"github.com/polkiloo/procurement/internal/domain/repository"
)

// Module provides the OTP cooldown throttle.
var Module = fx.Provide(newThrottle)

type throttleParams struct {
	fx.In

	Ctx       context.Context
	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

var dial = Dial

func newThrottle(p throttleParams) (repository.Throttle, error) {
	if p.Config.RedisURL == "" {
		p.Logger.Info("redis url is empty, otp cooldown disabled")
		return NoopThrottle{}, nil
	}
	client, err := dial(p.Ctx, p.Config.RedisURL)
	if err != nil {
		return nil, err
	}
	p.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})
	return NewThrottle(client, p.Config.OTPCooldown, p.Logger), nil
}
