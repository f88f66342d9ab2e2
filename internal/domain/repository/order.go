package repository

import (
	"context"

	"github.com/polkiloo/procurement/internal/domain/model"
)

// Order repositories persist the order and its outbox messages atomically.

type MaterialOrderRepository interface {
	Create(ctx context.Context, order *model.MaterialOrder, msgs ...model.OutboxMessage) error
	GetByID(ctx context.Context, id string) (*model.MaterialOrder, error)
	List(ctx context.Context, filter model.OrderFilter) (model.Page[model.MaterialOrder], error)
	UpdateStatus(ctx context.Context, id string, status model.OrderStatus, msgs ...model.OutboxMessage) (*model.MaterialOrder, error)
}

type FinanceOrderRepository interface {
	Create(ctx context.Context, order *model.FinanceOrder, msgs ...model.OutboxMessage) error
	GetByID(ctx context.Context, id string) (*model.FinanceOrder, error)
	List(ctx context.Context, filter model.OrderFilter) (model.Page[model.FinanceOrder], error)
	UpdateStatus(ctx context.Context, id string, status model.OrderStatus, msgs ...model.OutboxMessage) (*model.FinanceOrder, error)
}

type QualificationOrderRepository interface {
	Create(ctx context.Context, order *model.QualificationOrder, msgs ...model.OutboxMessage) error
	GetByID(ctx context.Context, id string) (*model.QualificationOrder, error)
	List(ctx context.Context, filter model.OrderFilter) (model.Page[model.QualificationOrder], error)
	UpdateStatus(ctx context.Context, id string, status model.OrderStatus, msgs ...model.OutboxMessage) (*model.QualificationOrder, error)
}

type RecourseOrderRepository interface {
	Create(ctx context.Context, order *model.RecourseOrder, msgs ...model.OutboxMessage) error
	GetByID(ctx context.Context, id string) (*model.RecourseOrder, error)
	List(ctx context.Context, filter model.OrderFilter) (model.Page[model.RecourseOrder], error)
	UpdateStatus(ctx context.Context, id string, status model.OrderStatus, msgs ...model.OutboxMessage) (*model.RecourseOrder, error)
	AttachBill(ctx context.Context, id string, file model.AttachedFile) (*model.RecourseOrder, error)
}
