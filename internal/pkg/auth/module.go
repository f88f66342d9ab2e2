package auth

import (
	"go.uber.org/fx"

	"github.com/polkiloo/procurement/internal/config"
)

// Module provides authentication primitives via fx.
var Module = fx.Options(
	fx.Provide(newCodeHasher),
	fx.Provide(newTokenStrategy),
	fx.Provide(newCodeGenerator),
)

func newCodeHasher() CodeHasher {
	return NewBcryptHasher(0)
}

func newCodeGenerator() CodeGenerator {
	return NewRandomCodeGenerator()
}

type strategyParams struct {
	fx.In

	Config *config.Config
}

func newTokenStrategy(p strategyParams) Strategy {
	return NewJWTStrategy(p.Config.JWTSecret, Options{TTL: p.Config.TokenTTL})
}
