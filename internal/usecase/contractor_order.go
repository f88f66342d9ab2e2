package usecase

import (
	"context"
	"time"

	"github.com/polkiloo/procurement/internal/domain/model"
	"github.com/polkiloo/procurement/internal/domain/repository"
)

// RequesterInput holds the contact fields of contractor submitted orders.
type RequesterInput struct {
	FirstName     string     `json:"firstName" validate:"required,max=100"`
	LastName      string     `json:"lastName" validate:"required,max=100"`
	Phone         string     `json:"phone" validate:"required,phone"`
	Email         string     `json:"email" validate:"omitempty,email"`
	CompanyName   string     `json:"companyName" validate:"max=200"`
	DateOfCompany *time.Time `json:"dateOfCompany"`
}

func (in RequesterInput) requester() model.Requester {
	return model.Requester{
		FirstName:     in.FirstName,
		LastName:      in.LastName,
		Phone:         in.Phone,
		Email:         in.Email,
		CompanyName:   in.CompanyName,
		DateOfCompany: in.DateOfCompany,
	}
}

// MaterialOrderInput is the payload of a new material order.
type MaterialOrderInput struct {
	RequesterInput
	Materials       []string            `json:"materials" validate:"max=500,dive,required"`
	ProjectName     string              `json:"projectName" validate:"max=200"`
	NoteForQuantity string              `json:"noteForQuantity" validate:"max=2000"`
	Description     string              `json:"description" validate:"max=2000"`
	AttachedFile    *model.AttachedFile `json:"attachedFile"`
}

// FinanceOrderInput is the payload of a new finance request.
type FinanceOrderInput struct {
	RequesterInput
	ProjectName     string              `json:"projectName" validate:"required,max=200"`
	LastYearRevenue string              `json:"lastYearRevenue" validate:"required,max=100"`
	RequiredAmount  string              `json:"requiredAmount" validate:"required,max=100"`
	Description     string              `json:"description" validate:"max=2000"`
	AttachedFile    *model.AttachedFile `json:"attachedFile"`
}

// QualificationOrderInput is the payload of a new qualification request.
type QualificationOrderInput struct {
	RequesterInput
	LastYearRevenue string              `json:"lastYearRevenue" validate:"required,max=100"`
	RequiredAmount  string              `json:"requiredAmount" validate:"required,max=100"`
	Description     string              `json:"description" validate:"max=2000"`
	AttachedFile    *model.AttachedFile `json:"attachedFile"`
}

type (
	MaterialOrderUseCase      = OrderUseCase[model.MaterialOrder, MaterialOrderInput]
	FinanceOrderUseCase       = OrderUseCase[model.FinanceOrder, FinanceOrderInput]
	QualificationOrderUseCase = OrderUseCase[model.QualificationOrder, QualificationOrderInput]
)

func newMeta(file *model.AttachedFile, status model.UserStatus, userID *string) model.OrderMeta {
	return model.OrderMeta{
		AttachedFile: model.NormalizeFile(file),
		StatusOrder:  model.OrderStatusPending,
		StatusUser:   status,
		UserID:       userID,
	}
}

// NewMaterialOrderUseCase constructs the material order use case.
func NewMaterialOrderUseCase(orders repository.MaterialOrderRepository, materials repository.MaterialRepository, users repository.UserRepository) *MaterialOrderUseCase {
	return &MaterialOrderUseCase{
		kind:   model.OrderKindMaterial,
		orders: orders,
		users:  users,
		hooks: orderHooks[model.MaterialOrder, MaterialOrderInput]{
			build: func(ctx context.Context, in MaterialOrderInput, caller *model.Identity) (*model.MaterialOrder, []model.OutboxMessage, error) {
				status, userID, err := resolveSubmitter(ctx, users, in.Phone, caller)
				if err != nil {
					return nil, nil, err
				}
				items := in.Materials
				if items == nil {
					items = []string{}
				}
				order := &model.MaterialOrder{
					OrderMeta:       newMeta(in.AttachedFile, status, userID),
					Requester:       in.requester(),
					Materials:       items,
					ProjectName:     in.ProjectName,
					NoteForQuantity: in.NoteForQuantity,
					Description:     in.Description,
				}
				return order, []model.OutboxMessage{newOrderNotice(model.OrderKindMaterial), orderReceivedSMS(in.Phone)}, nil
			},
			expand: func(ctx context.Context, order *model.MaterialOrder) error {
				items, err := materials.ListByIDs(ctx, order.Materials)
				if err != nil {
					return err
				}
				order.MaterialItems = items
				return nil
			},
			onStatus: func(order *model.MaterialOrder, status model.OrderStatus) []model.OutboxMessage {
				return []model.OutboxMessage{statusSMS(model.OrderKindMaterial, order.Phone, order.ProjectName, status)}
			},
		},
	}
}

// NewFinanceOrderUseCase constructs the finance request use case.
func NewFinanceOrderUseCase(orders repository.FinanceOrderRepository, users repository.UserRepository) *FinanceOrderUseCase {
	return &FinanceOrderUseCase{
		kind:   model.OrderKindFinance,
		orders: orders,
		users:  users,
		hooks: orderHooks[model.FinanceOrder, FinanceOrderInput]{
			build: func(ctx context.Context, in FinanceOrderInput, caller *model.Identity) (*model.FinanceOrder, []model.OutboxMessage, error) {
				status, userID, err := resolveSubmitter(ctx, users, in.Phone, caller)
				if err != nil {
					return nil, nil, err
				}
				order := &model.FinanceOrder{
					OrderMeta:       newMeta(in.AttachedFile, status, userID),
					Requester:       in.requester(),
					ProjectName:     in.ProjectName,
					LastYearRevenue: in.LastYearRevenue,
					RequiredAmount:  in.RequiredAmount,
					Description:     in.Description,
				}
				return order, []model.OutboxMessage{newOrderNotice(model.OrderKindFinance)}, nil
			},
		},
	}
}

// NewQualificationOrderUseCase constructs the qualification request use case.
func NewQualificationOrderUseCase(orders repository.QualificationOrderRepository, users repository.UserRepository) *QualificationOrderUseCase {
	return &QualificationOrderUseCase{
		kind:   model.OrderKindQualification,
		orders: orders,
		users:  users,
		hooks: orderHooks[model.QualificationOrder, QualificationOrderInput]{
			build: func(ctx context.Context, in QualificationOrderInput, caller *model.Identity) (*model.QualificationOrder, []model.OutboxMessage, error) {
				status, userID, err := resolveSubmitter(ctx, users, in.Phone, caller)
				if err != nil {
					return nil, nil, err
				}
				order := &model.QualificationOrder{
					OrderMeta:       newMeta(in.AttachedFile, status, userID),
					Requester:       in.requester(),
					LastYearRevenue: in.LastYearRevenue,
					RequiredAmount:  in.RequiredAmount,
					Description:     in.Description,
				}
				return order, []model.OutboxMessage{newOrderNotice(model.OrderKindQualification)}, nil
			},
		},
	}
}
