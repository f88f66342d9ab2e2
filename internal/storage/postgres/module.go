package postgres

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/procurement/internal/config"
	"github.com/polkiloo/procurement/internal/domain/repository"
	"github.com/polkiloo/procurement/internal/pkg/ids"
)

// Module wires PostgreSQL storage and repository adapters.
var Module = fx.Options(
	fx.Provide(newStorage),
	fx.Provide(
		func(s *Storage) repository.Factory { return s },
	),
	fx.Provide(
		func(f repository.Factory) repository.UserRepository { return f.Users() },
		func(f repository.Factory) repository.MaterialOrderRepository { return f.MaterialOrders() },
		func(f repository.Factory) repository.FinanceOrderRepository { return f.FinanceOrders() },
		func(f repository.Factory) repository.QualificationOrderRepository { return f.QualificationOrders() },
		func(f repository.Factory) repository.RecourseOrderRepository { return f.RecourseOrders() },
		func(f repository.Factory) repository.ClassificationRepository { return f.Classifications() },
		func(f repository.Factory) repository.MaterialRepository { return f.Materials() },
		func(f repository.Factory) repository.NotificationRepository { return f.Notifications() },
		func(f repository.Factory) repository.OutboxRepository { return f.Outbox() },
		func(f repository.Factory) repository.AnalyticsRepository { return f.Analytics() },
	),
	fx.Invoke(registerLifecycle),
)

type storageParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
	IDs    ids.Generator
}

func newStorage(p storageParams) (*Storage, error) {
	return New(p.Ctx, p.Config.DatabaseURI, p.Logger, p.IDs)
}

func registerLifecycle(lc fx.Lifecycle, storage *Storage) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			storage.Close()
			return nil
		},
	})
}
