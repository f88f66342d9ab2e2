package repository

import (
	"context"

	"github.com/polkiloo/procurement/internal/domain/model"
)

type ClassificationRepository interface {
	CreateFather(ctx context.Context, father *model.ClassFather) error
	UpdateFather(ctx context.Context, father *model.ClassFather) error
	DeleteFather(ctx context.Context, id string) error
	GetFather(ctx context.Context, id string) (*model.ClassFather, error)
	ListFathers(ctx context.Context, filter model.CatalogFilter) (model.Page[model.ClassFather], error)

	CreateSon(ctx context.Context, son *model.ClassSon) error
	UpdateSon(ctx context.Context, son *model.ClassSon) error
	DeleteSon(ctx context.Context, id string) error
	GetSon(ctx context.Context, id string) (*model.ClassSon, error)
	ListSons(ctx context.Context) ([]model.ClassSon, error)
}

type MaterialRepository interface {
	Create(ctx context.Context, material *model.Material) error
	Update(ctx context.Context, material *model.Material) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*model.Material, error)
	ListByIDs(ctx context.Context, ids []string) ([]model.Material, error)
	List(ctx context.Context, filter model.CatalogFilter) (model.Page[model.Material], error)
}
