package repository

import (
	"context"

	"github.com/polkiloo/procurement/internal/domain/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByPhone(ctx context.Context, phone string) (*model.User, error)
	List(ctx context.Context, filter model.UserFilter) ([]model.User, error)

	// SetOTP stores challenge on the user and enqueues msgs in the same transaction.
	SetOTP(ctx context.Context, userID string, challenge model.OTPChallenge, msgs ...model.OutboxMessage) error
	GetByOTPReference(ctx context.Context, reference string) (*model.User, error)
	// RegisterOTPAttempt counts one verification attempt against the challenge and reports whether it is
	// within limit. The attempt past limit clears the challenge.
	RegisterOTPAttempt(ctx context.Context, userID, reference string, limit int) (bool, error)
	// ConsumeOTP clears the challenge identified by reference and reports whether it was still present.
	ConsumeOTP(ctx context.Context, userID, reference string) (bool, error)
}
