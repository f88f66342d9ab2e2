package usecase

import (
	"context"
	"errors"

	domainErrors "github.com/polkiloo/procurement/internal/domain/errors"
	"github.com/polkiloo/procurement/internal/domain/model"
	"github.com/polkiloo/procurement/internal/domain/repository"
)

// orderStore is the persistence contract shared by every order kind.
type orderStore[T any] interface {
	Create(ctx context.Context, order *T, msgs ...model.OutboxMessage) error
	GetByID(ctx context.Context, id string) (*T, error)
	List(ctx context.Context, filter model.OrderFilter) (model.Page[T], error)
	UpdateStatus(ctx context.Context, id string, status model.OrderStatus, msgs ...model.OutboxMessage) (*T, error)
}

// orderHooks adapt OrderUseCase to a single order kind. Only build is required.
type orderHooks[T, I any] struct {
	build    func(ctx context.Context, in I, caller *model.Identity) (*T, []model.OutboxMessage, error)
	expand   func(ctx context.Context, order *T) error
	onStatus func(order *T, status model.OrderStatus) []model.OutboxMessage
	scope    func(filter *model.OrderFilter, caller model.Identity)
}

// OrderUseCase encapsulates the lifecycle shared by all order kinds.
type OrderUseCase[T, I any] struct {
	kind   model.OrderKind
	orders orderStore[T]
	users  repository.UserRepository
	hooks  orderHooks[T, I]
}

// Kind reports the collection this use case serves.
func (u *OrderUseCase[T, I]) Kind() model.OrderKind {
	return u.kind
}

// Create validates in, classifies the submitter and stores the order with its side effects.
func (u *OrderUseCase[T, I]) Create(ctx context.Context, in I, caller *model.Identity) (*T, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	order, msgs, err := u.hooks.build(ctx, in, caller)
	if err != nil {
		return nil, err
	}
	if err := u.orders.Create(ctx, order, msgs...); err != nil {
		return nil, translateStoreError(err)
	}
	return order, nil
}

// List returns a page of orders visible to caller.
func (u *OrderUseCase[T, I]) List(ctx context.Context, filter model.OrderFilter, caller model.Identity) (model.Page[T], error) {
	if filter.Status != "" {
		if err := validateStatus(filter.Status); err != nil {
			return model.Page[T]{}, err
		}
	}
	if u.hooks.scope != nil {
		u.hooks.scope(&filter, caller)
	}
	return u.orders.List(ctx, filter)
}

// ListByContractor returns orders bound to userID. Contractors may only read their own.
func (u *OrderUseCase[T, I]) ListByContractor(ctx context.Context, userID string, filter model.OrderFilter, caller model.Identity) (model.Page[T], error) {
	if caller.Role != model.RoleAdmin && caller.UserID != userID {
		return model.Page[T]{}, domainErrors.ErrForbidden
	}
	if filter.Status != "" {
		if err := validateStatus(filter.Status); err != nil {
			return model.Page[T]{}, err
		}
	}
	if _, err := u.users.GetByID(ctx, userID); err != nil {
		return model.Page[T]{}, err
	}
	filter.UserID = userID
	return u.orders.List(ctx, filter)
}

// Get returns a single order.
func (u *OrderUseCase[T, I]) Get(ctx context.Context, id string) (*T, error) {
	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u.hooks.expand != nil {
		if err := u.hooks.expand(ctx, order); err != nil {
			return nil, err
		}
	}
	return order, nil
}

// UpdateStatus overwrites the lifecycle status of order id.
func (u *OrderUseCase[T, I]) UpdateStatus(ctx context.Context, id string, status model.OrderStatus) (*T, error) {
	if err := validateStatus(status); err != nil {
		return nil, err
	}

	var msgs []model.OutboxMessage
	if u.hooks.onStatus != nil {
		current, err := u.orders.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		msgs = u.hooks.onStatus(current, status)
	}
	return u.orders.UpdateStatus(ctx, id, status, msgs...)
}

// resolveSubmitter classifies an order submitter, first by phone and then by session.
func resolveSubmitter(ctx context.Context, users repository.UserRepository, phone string, caller *model.Identity) (model.UserStatus, *string, error) {
	usr, err := users.GetByPhone(ctx, phone)
	switch {
	case err == nil:
		return model.UserStatusEligible, &usr.ID, nil
	case !errors.Is(err, domainErrors.ErrNotFound):
		return "", nil, err
	}

	if caller != nil && caller.UserID != "" {
		usr, err := users.GetByID(ctx, caller.UserID)
		switch {
		case err == nil:
			return model.UserStatusEligible, &usr.ID, nil
		case !errors.Is(err, domainErrors.ErrNotFound):
			return "", nil, err
		}
	}
	return model.UserStatusVisited, nil, nil
}
