package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	domainErrors "github.com/polkiloo/procurement/internal/domain/errors"
	"github.com/polkiloo/procurement/internal/domain/model"
	"github.com/polkiloo/procurement/internal/domain/repository"
)

// Geocoder resolves coordinates to a postal address.
type Geocoder interface {
	Reverse(ctx context.Context, point model.GeoPoint) (*model.Address, error)
}

// RecourseOrderInput is the payload of a new recourse order.
type RecourseOrderInput struct {
	RecourseName  string              `json:"recourseName" validate:"required,max=100"`
	RecoursePhone string              `json:"recoursePhone" validate:"required,phone"`
	ClientName    string              `json:"clientName" validate:"required,max=100"`
	ClientPhone   string              `json:"clientPhone" validate:"required,phone"`
	SerialNumber  int64               `json:"serialNumber" validate:"required,gt=0"`
	ProjectName   string              `json:"projectName" validate:"required,max=200"`
	DateOfProject time.Time           `json:"dateOfproject" validate:"required"`
	AttachedFile  *model.AttachedFile `json:"attachedFile"`
	BillFile      *model.AttachedFile `json:"billFile"`
	Materials     []string            `json:"materials" validate:"max=500,dive,required"`
	PaymentCheck  model.PaymentCheck  `json:"paymentCheck" validate:"omitempty,oneof=cash delayed"`
	Advance       string              `json:"advance" validate:"required"`
	UponDelivery  string              `json:"uponDelivry" validate:"required"`
	AfterDelivery string              `json:"afterDelivry" validate:"required"`
	CountryName   string              `json:"countryName" validate:"max=100"`
	Location      *model.GeoPoint     `json:"location"`
}

// RecourseOrderUseCase adds supplier specific rules to the shared order lifecycle.
type RecourseOrderUseCase struct {
	*OrderUseCase[model.RecourseOrder, RecourseOrderInput]

	orders   repository.RecourseOrderRepository
	geocoder Geocoder
	logger   *slog.Logger
}

// NewRecourseOrderUseCase constructs RecourseOrderUseCase.
func NewRecourseOrderUseCase(orders repository.RecourseOrderRepository, users repository.UserRepository, geocoder Geocoder, logger *slog.Logger) *RecourseOrderUseCase {
	u := &RecourseOrderUseCase{orders: orders, geocoder: geocoder, logger: logger}
	u.OrderUseCase = &OrderUseCase[model.RecourseOrder, RecourseOrderInput]{
		kind:   model.OrderKindRecourse,
		orders: orders,
		users:  users,
		hooks: orderHooks[model.RecourseOrder, RecourseOrderInput]{
			build: u.build,
			scope: func(filter *model.OrderFilter, caller model.Identity) {
				if caller.Role == model.RoleRecourse {
					filter.UserID = caller.UserID
				}
			},
		},
	}
	return u
}

func (u *RecourseOrderUseCase) build(ctx context.Context, in RecourseOrderInput, _ *model.Identity) (*model.RecourseOrder, []model.OutboxMessage, error) {
	if err := ValidatePaymentSplit(in.Advance, in.UponDelivery, in.AfterDelivery); err != nil {
		return nil, nil, err
	}

	supplier, err := u.users.GetByPhone(ctx, in.RecoursePhone)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, nil, fmt.Errorf("recourse user with phone %s: %w", in.RecoursePhone, domainErrors.ErrNotFound)
		}
		return nil, nil, err
	}
	if supplier.Role != model.RoleRecourse {
		return nil, nil, fmt.Errorf("user %s is not a recourse supplier: %w", supplier.ID, domainErrors.ErrNotFound)
	}

	materials := in.Materials
	if materials == nil {
		materials = []string{}
	}
	order := &model.RecourseOrder{
		OrderMeta:     newMeta(in.AttachedFile, model.UserStatusEligible, &supplier.ID),
		RecourseName:  in.RecourseName,
		RecoursePhone: in.RecoursePhone,
		ClientName:    in.ClientName,
		ClientPhone:   in.ClientPhone,
		SerialNumber:  in.SerialNumber,
		ProjectName:   in.ProjectName,
		DateOfProject: in.DateOfProject,
		BillFile:      model.NormalizeFile(in.BillFile),
		Materials:     materials,
		PaymentCheck:  in.PaymentCheck,
		Advance:       in.Advance,
		UponDelivery:  in.UponDelivery,
		AfterDelivery: in.AfterDelivery,
		CountryName:   in.CountryName,
	}
	if in.Location != nil && !in.Location.IsZero() {
		order.Location = *in.Location
		u.enrich(ctx, order)
	}
	return order, []model.OutboxMessage{newOrderNotice(model.OrderKindRecourse)}, nil
}

// enrich backfills address fields from reverse geocoding. Failures only log.
func (u *RecourseOrderUseCase) enrich(ctx context.Context, order *model.RecourseOrder) {
	if u.geocoder == nil {
		return
	}
	addr, err := u.geocoder.Reverse(ctx, order.Location)
	if err != nil {
		u.logger.Warn("reverse geocoding skipped",
			slog.Float64("lon", order.Location.Longitude),
			slog.Float64("lat", order.Location.Latitude),
			slog.Any("error", err))
		return
	}
	order.Apply(*addr)
}

// AttachBill stores the bill file reference on order id.
func (u *RecourseOrderUseCase) AttachBill(ctx context.Context, id string, file *model.AttachedFile) (*model.RecourseOrder, error) {
	if file == nil || file.URL == "" {
		return nil, domainErrors.NewValidationError("billFile", "is required")
	}
	return u.orders.AttachBill(ctx, id, *file)
}
