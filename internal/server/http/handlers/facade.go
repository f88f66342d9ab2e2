package handlers

import (
	"context"

	"github.com/polkiloo/procurement/internal/domain/model"
	"github.com/polkiloo/procurement/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	SendOTP(ctx context.Context, phone string) (*usecase.OTPTicket, error)
	VerifyOTP(ctx context.Context, reference, code string) (*model.User, string, error)
	ParseToken(token string) (model.Identity, error)
	RegisterUser(ctx context.Context, in usecase.UserInput) (*model.User, error)
}

// UserFacade encapsulates account management.
type UserFacade interface {
	CreateUser(ctx context.Context, in usecase.UserInput) (*model.User, error)
	UpdateUser(ctx context.Context, id string, patch usecase.UserPatch) (*model.User, error)
	DeleteUser(ctx context.Context, id string) error
	User(ctx context.Context, caller model.Identity, id string) (*model.User, error)
	Users(ctx context.Context, role model.Role) ([]model.User, error)
}

// OrderService is the lifecycle shared by every order collection.
type OrderService[T, I any] interface {
	Create(ctx context.Context, in I, caller *model.Identity) (*T, error)
	List(ctx context.Context, filter model.OrderFilter, caller model.Identity) (model.Page[T], error)
	ListByContractor(ctx context.Context, userID string, filter model.OrderFilter, caller model.Identity) (model.Page[T], error)
	Get(ctx context.Context, id string) (*T, error)
	UpdateStatus(ctx context.Context, id string, status model.OrderStatus) (*T, error)
}

// RecourseOrderService adds bill attachment to the shared lifecycle.
type RecourseOrderService interface {
	OrderService[model.RecourseOrder, usecase.RecourseOrderInput]
	AttachBill(ctx context.Context, id string, file *model.AttachedFile) (*model.RecourseOrder, error)
}

// OrderFacade exposes the per collection order services.
type OrderFacade interface {
	MaterialOrders() *usecase.MaterialOrderUseCase
	FinanceOrders() *usecase.FinanceOrderUseCase
	QualificationOrders() *usecase.QualificationOrderUseCase
	RecourseOrders() *usecase.RecourseOrderUseCase
}

// CatalogFacade covers classifications and materials.
type CatalogFacade interface {
	CreateFather(ctx context.Context, in usecase.FatherInput) (*model.ClassFather, error)
	UpdateFather(ctx context.Context, id string, in usecase.FatherInput) (*model.ClassFather, error)
	DeleteFather(ctx context.Context, id string) error
	Fathers(ctx context.Context, filter model.CatalogFilter) (model.Page[model.ClassFather], error)
	CreateSon(ctx context.Context, in usecase.SonInput) (*model.ClassSon, error)
	UpdateSon(ctx context.Context, id string, patch usecase.SonPatch) (*model.ClassSon, error)
	DeleteSon(ctx context.Context, id string) error
	Sons(ctx context.Context) ([]model.ClassSon, error)
	CreateMaterial(ctx context.Context, in usecase.MaterialInput) (*model.Material, error)
	UpdateMaterial(ctx context.Context, id string, patch usecase.MaterialPatch) (*model.Material, error)
	DeleteMaterial(ctx context.Context, id string) error
	Materials(ctx context.Context, filter model.CatalogFilter) (model.Page[model.Material], error)
}

// NotificationFacade serves the admin feed.
type NotificationFacade interface {
	CreateNotification(ctx context.Context, text string) (*model.Notification, error)
	Notifications(ctx context.Context) ([]model.Notification, error)
	Notification(ctx context.Context, id string) (*model.Notification, error)
	DeleteNotification(ctx context.Context, id string) error
	MarkNotificationsShown(ctx context.Context) (int64, error)
}

// AnalyticsFacade provides charts and tallies.
type AnalyticsFacade interface {
	RecordVisit(ctx context.Context) error
	Counts(ctx context.Context) (*model.Counts, error)
	OrdersChart(ctx context.Context, q model.ChartQuery) (*model.Chart, error)
	WeeklyVisits(ctx context.Context, weeks int) (*model.Chart, error)
}

// HealthFacade reports backing service health.
type HealthFacade interface {
	Health(ctx context.Context) error
}

// ProcurementFacade aggregates the full set of operations used across handlers.
type ProcurementFacade interface {
	AuthFacade
	UserFacade
	OrderFacade
	CatalogFacade
	NotificationFacade
	AnalyticsFacade
	HealthFacade
}
