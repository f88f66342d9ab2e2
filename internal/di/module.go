package di

import (
	"github.com/polkiloo/procurement/internal/adapter/geocode"
	"github.com/polkiloo/procurement/internal/adapter/sms"
	"github.com/polkiloo/procurement/internal/app"
	"github.com/polkiloo/procurement/internal/config"
	"github.com/polkiloo/procurement/internal/logger"
	"github.com/polkiloo/procurement/internal/pkg/auth"
	"github.com/polkiloo/procurement/internal/pkg/ids"
	"github.com/polkiloo/procurement/internal/server/http/handlers"
	"github.com/polkiloo/procurement/internal/server/http/router"
	"github.com/polkiloo/procurement/internal/storage/postgres"
	"github.com/polkiloo/procurement/internal/storage/redis"
	"github.com/polkiloo/procurement/internal/usecase"
	"go.uber.org/fx"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		ids.Module,
		auth.Module,
		postgres.Module,
		redis.Module,
		sms.Module,
		geocode.Module,
		usecase.Module,
		fx.Provide(func(g geocode.Geocoder) usecase.Geocoder { return g }),
		fx.Provide(func(s sms.Sender) usecase.SMSSender { return s }),
		fx.Provide(func(s *postgres.Storage) app.HealthChecker { return s }),
		fx.Provide(func(f *app.ProcurementFacade) handlers.ProcurementFacade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
