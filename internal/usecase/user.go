package usecase

import (
	"context"
	"time"

	domainErrors "github.com/polkiloo/procurement/internal/domain/errors"
	"github.com/polkiloo/procurement/internal/domain/model"
	"github.com/polkiloo/procurement/internal/domain/repository"
)

// UserInput is the payload for creating a user.
type UserInput struct {
	FirstName     string                `json:"firstName" validate:"required,max=100"`
	LastName      string                `json:"lastName" validate:"required,max=100"`
	Phone         string                `json:"phone" validate:"required,phone"`
	Email         string                `json:"email" validate:"omitempty,email"`
	CompanyName   string                `json:"companyName" validate:"max=200"`
	DateOfCompany *time.Time            `json:"dateOfCompany"`
	Role          model.Role            `json:"role" validate:"omitempty,oneof=admin contractor recourse intering"`
	Profile       model.SupplierProfile `json:"profile"`
}

// UserPatch carries the fields of a partial user update.
type UserPatch struct {
	FirstName     *string                `json:"firstName" validate:"omitnil,min=1,max=100"`
	LastName      *string                `json:"lastName" validate:"omitnil,min=1,max=100"`
	Phone         *string                `json:"phone" validate:"omitnil,phone"`
	Email         *string                `json:"email" validate:"omitempty,email"`
	CompanyName   *string                `json:"companyName" validate:"omitnil,max=200"`
	DateOfCompany *time.Time             `json:"dateOfCompany"`
	Role          *model.Role            `json:"role" validate:"omitnil,oneof=admin contractor recourse intering"`
	Profile       *model.SupplierProfile `json:"profile"`
}

// UserUseCase manages platform accounts.
type UserUseCase struct {
	users repository.UserRepository
}

// NewUserUseCase constructs UserUseCase.
func NewUserUseCase(users repository.UserRepository) *UserUseCase {
	return &UserUseCase{users: users}
}

// Create stores a new user. The role defaults to contractor.
func (u *UserUseCase) Create(ctx context.Context, in UserInput) (*model.User, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if in.Role == "" {
		in.Role = model.RoleContractor
	}

	usr := &model.User{
		FirstName:     in.FirstName,
		LastName:      in.LastName,
		Phone:         in.Phone,
		Email:         in.Email,
		CompanyName:   in.CompanyName,
		DateOfCompany: in.DateOfCompany,
		Role:          in.Role,
		Profile:       in.Profile,
	}
	if err := u.users.Create(ctx, usr); err != nil {
		return nil, translateStoreError(err)
	}
	return usr, nil
}

// Register is public self sign-up; the account is always a contractor.
func (u *UserUseCase) Register(ctx context.Context, in UserInput) (*model.User, error) {
	in.Role = model.RoleContractor
	return u.Create(ctx, in)
}

// Update applies patch to the user with id.
func (u *UserUseCase) Update(ctx context.Context, id string, patch UserPatch) (*model.User, error) {
	if err := validateInput(patch); err != nil {
		return nil, err
	}

	usr, err := u.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.FirstName != nil {
		usr.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		usr.LastName = *patch.LastName
	}
	if patch.Phone != nil {
		usr.Phone = *patch.Phone
	}
	if patch.Email != nil {
		usr.Email = *patch.Email
	}
	if patch.CompanyName != nil {
		usr.CompanyName = *patch.CompanyName
	}
	if patch.DateOfCompany != nil {
		usr.DateOfCompany = patch.DateOfCompany
	}
	if patch.Role != nil {
		usr.Role = *patch.Role
	}
	if patch.Profile != nil {
		usr.Profile = *patch.Profile
	}

	if err := u.users.Update(ctx, usr); err != nil {
		return nil, translateStoreError(err)
	}
	return usr, nil
}

// Delete removes the user with id.
func (u *UserUseCase) Delete(ctx context.Context, id string) error {
	return u.users.Delete(ctx, id)
}

// Get returns the profile of id. Only the user themselves or an admin may read it.
func (u *UserUseCase) Get(ctx context.Context, caller model.Identity, id string) (*model.User, error) {
	if caller.Role != model.RoleAdmin && caller.UserID != id {
		return nil, domainErrors.ErrForbidden
	}
	return u.users.GetByID(ctx, id)
}

// List returns users, optionally narrowed to role.
func (u *UserUseCase) List(ctx context.Context, role model.Role) ([]model.User, error) {
	if role != "" && !role.Valid() {
		return nil, domainErrors.NewValidationError("role", "is not a valid role")
	}
	return u.users.List(ctx, model.UserFilter{Role: role})
}
