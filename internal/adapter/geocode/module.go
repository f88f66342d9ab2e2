package geocode

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/procurement/internal/config"
)

// Module exposes the reverse geocoder to fx graph.
var Module = fx.Provide(newGeocoder)

type geocoderParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newGeocoder(p geocoderParams) (Geocoder, error) {
	return NewHTTPClient(p.Config.Geocoder.URL, p.Config.Geocoder.UserAgent, p.Config.Geocoder.Timeout, p.Logger)
}
