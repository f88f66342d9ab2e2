package ids

import (
	"go.uber.org/fx"

	"github.com/polkiloo/procurement/internal/config"
)

// Module provides the identifier generator.
var Module = fx.Provide(newGenerator)

func newGenerator(cfg *config.Config) (Generator, error) {
	return New(cfg.SnowflakeNode)
}
