package app

import (
	"context"

	"go.uber.org/fx"

	"github.com/polkiloo/procurement/internal/domain/model"
	"github.com/polkiloo/procurement/internal/usecase"
)

// HealthChecker reports whether a backing service is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// UseCases groups the business services the facade delegates to.
type UseCases struct {
	fx.In

	Auth                *usecase.AuthUseCase
	Users               *usecase.UserUseCase
	MaterialOrders      *usecase.MaterialOrderUseCase
	FinanceOrders       *usecase.FinanceOrderUseCase
	QualificationOrders *usecase.QualificationOrderUseCase
	RecourseOrders      *usecase.RecourseOrderUseCase
	Classifications     *usecase.ClassificationUseCase
	Materials           *usecase.MaterialUseCase
	Notifications       *usecase.NotificationUseCase
	Analytics           *usecase.AnalyticsUseCase
	Outbox              *usecase.OutboxUseCase
}

type ProcurementFacade struct {
	uc     UseCases
	health HealthChecker
}

func NewProcurementFacade(uc UseCases, health HealthChecker) *ProcurementFacade {
	return &ProcurementFacade{uc: uc, health: health}
}

func (f *ProcurementFacade) SendOTP(ctx context.Context, phone string) (*usecase.OTPTicket, error) {
	return f.uc.Auth.SendOTP(ctx, phone)
}

func (f *ProcurementFacade) VerifyOTP(ctx context.Context, reference, code string) (*model.User, string, error) {
	return f.uc.Auth.VerifyOTP(ctx, reference, code)
}

func (f *ProcurementFacade) ParseToken(token string) (model.Identity, error) {
	return f.uc.Auth.ParseToken(token)
}

func (f *ProcurementFacade) RegisterUser(ctx context.Context, in usecase.UserInput) (*model.User, error) {
	return f.uc.Users.Register(ctx, in)
}

func (f *ProcurementFacade) CreateUser(ctx context.Context, in usecase.UserInput) (*model.User, error) {
	return f.uc.Users.Create(ctx, in)
}

func (f *ProcurementFacade) UpdateUser(ctx context.Context, id string, patch usecase.UserPatch) (*model.User, error) {
	return f.uc.Users.Update(ctx, id, patch)
}

func (f *ProcurementFacade) DeleteUser(ctx context.Context, id string) error {
	return f.uc.Users.Delete(ctx, id)
}

func (f *ProcurementFacade) User(ctx context.Context, caller model.Identity, id string) (*model.User, error) {
	return f.uc.Users.Get(ctx, caller, id)
}

func (f *ProcurementFacade) Users(ctx context.Context, role model.Role) ([]model.User, error) {
	return f.uc.Users.List(ctx, role)
}

func (f *ProcurementFacade) MaterialOrders() *usecase.MaterialOrderUseCase {
	return f.uc.MaterialOrders
}

func (f *ProcurementFacade) FinanceOrders() *usecase.FinanceOrderUseCase {
	return f.uc.FinanceOrders
}

func (f *ProcurementFacade) QualificationOrders() *usecase.QualificationOrderUseCase {
	return f.uc.QualificationOrders
}

func (f *ProcurementFacade) RecourseOrders() *usecase.RecourseOrderUseCase {
	return f.uc.RecourseOrders
}

func (f *ProcurementFacade) CreateFather(ctx context.Context, in usecase.FatherInput) (*model.ClassFather, error) {
	return f.uc.Classifications.CreateFather(ctx, in)
}

func (f *ProcurementFacade) UpdateFather(ctx context.Context, id string, in usecase.FatherInput) (*model.ClassFather, error) {
	return f.uc.Classifications.UpdateFather(ctx, id, in)
}

func (f *ProcurementFacade) DeleteFather(ctx context.Context, id string) error {
	return f.uc.Classifications.DeleteFather(ctx, id)
}

func (f *ProcurementFacade) Fathers(ctx context.Context, filter model.CatalogFilter) (model.Page[model.ClassFather], error) {
	return f.uc.Classifications.ListFathers(ctx, filter)
}

func (f *ProcurementFacade) CreateSon(ctx context.Context, in usecase.SonInput) (*model.ClassSon, error) {
	return f.uc.Classifications.CreateSon(ctx, in)
}

func (f *ProcurementFacade) UpdateSon(ctx context.Context, id string, patch usecase.SonPatch) (*model.ClassSon, error) {
	return f.uc.Classifications.UpdateSon(ctx, id, patch)
}

func (f *ProcurementFacade) DeleteSon(ctx context.Context, id string) error {
	return f.uc.Classifications.DeleteSon(ctx, id)
}

func (f *ProcurementFacade) Sons(ctx context.Context) ([]model.ClassSon, error) {
	return f.uc.Classifications.ListSons(ctx)
}

func (f *ProcurementFacade) CreateMaterial(ctx context.Context, in usecase.MaterialInput) (*model.Material, error) {
	return f.uc.Materials.Create(ctx, in)
}

func (f *ProcurementFacade) UpdateMaterial(ctx context.Context, id string, patch usecase.MaterialPatch) (*model.Material, error) {
	return f.uc.Materials.Update(ctx, id, patch)
}

func (f *ProcurementFacade) DeleteMaterial(ctx context.Context, id string) error {
	return f.uc.Materials.Delete(ctx, id)
}

func (f *ProcurementFacade) Materials(ctx context.Context, filter model.CatalogFilter) (model.Page[model.Material], error) {
	return f.uc.Materials.List(ctx, filter)
}

func (f *ProcurementFacade) CreateNotification(ctx context.Context, text string) (*model.Notification, error) {
	return f.uc.Notifications.Create(ctx, text)
}

func (f *ProcurementFacade) Notifications(ctx context.Context) ([]model.Notification, error) {
	return f.uc.Notifications.List(ctx)
}

func (f *ProcurementFacade) Notification(ctx context.Context, id string) (*model.Notification, error) {
	return f.uc.Notifications.Get(ctx, id)
}

func (f *ProcurementFacade) DeleteNotification(ctx context.Context, id string) error {
	return f.uc.Notifications.Delete(ctx, id)
}

func (f *ProcurementFacade) MarkNotificationsShown(ctx context.Context) (int64, error) {
	return f.uc.Notifications.MarkAllShown(ctx)
}

func (f *ProcurementFacade) RecordVisit(ctx context.Context) error {
	return f.uc.Analytics.RecordVisit(ctx)
}

func (f *ProcurementFacade) Counts(ctx context.Context) (*model.Counts, error) {
	return f.uc.Analytics.Counts(ctx)
}

func (f *ProcurementFacade) OrdersChart(ctx context.Context, q model.ChartQuery) (*model.Chart, error) {
	return f.uc.Analytics.OrdersChart(ctx, q)
}

func (f *ProcurementFacade) WeeklyVisits(ctx context.Context, weeks int) (*model.Chart, error) {
	return f.uc.Analytics.WeeklyVisits(ctx, weeks)
}

func (f *ProcurementFacade) ClaimOutbox(ctx context.Context, limit int) ([]model.OutboxMessage, error) {
	return f.uc.Outbox.Claim(ctx, limit)
}

func (f *ProcurementFacade) ProcessOutbox(ctx context.Context, msg model.OutboxMessage) error {
	return f.uc.Outbox.Process(ctx, msg)
}

func (f *ProcurementFacade) PurgeOutbox(ctx context.Context) (int64, error) {
	return f.uc.Outbox.Purge(ctx)
}

// Health pings the database.
func (f *ProcurementFacade) Health(ctx context.Context) error {
	if f.health == nil {
		return nil
	}
	return f.health.HealthCheck(ctx)
}
