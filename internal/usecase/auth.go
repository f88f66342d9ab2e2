package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/polkiloo/procurement/internal/config"
	domainErrors "github.com/polkiloo/procurement/internal/domain/errors"
	"github.com/polkiloo/procurement/internal/domain/model"
	"github.com/polkiloo/procurement/internal/domain/repository"
	pkgAuth "github.com/polkiloo/procurement/internal/pkg/auth"
	"github.com/polkiloo/procurement/internal/pkg/ids"
)

const defaultOTPAttempts = 5

// OTPTicket identifies an issued one-time code without revealing it.
type OTPTicket struct {
	Reference string `json:"reference"`
	UserID    string `json:"userId"`
}

// AuthUseCase handles OTP login and token management.
type AuthUseCase struct {
	users    repository.UserRepository
	hasher   pkgAuth.CodeHasher
	tokens   pkgAuth.Strategy
	codes    pkgAuth.CodeGenerator
	throttle repository.Throttle
	ids      ids.Generator
	otpTTL   time.Duration
	attempts int
	now      func() time.Time
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(
	users repository.UserRepository,
	hasher pkgAuth.CodeHasher,
	strategy pkgAuth.Strategy,
	codes pkgAuth.CodeGenerator,
	throttle repository.Throttle,
	gen ids.Generator,
	cfg *config.Config,
) *AuthUseCase {
	attempts := cfg.OTPMaxAttempts
	if attempts <= 0 {
		attempts = defaultOTPAttempts
	}
	return &AuthUseCase{
		users:    users,
		hasher:   hasher,
		tokens:   strategy,
		codes:    codes,
		throttle: throttle,
		ids:      gen,
		otpTTL:   cfg.OTPTTL,
		attempts: attempts,
		now:      time.Now,
	}
}

type sendOTPInput struct {
	Phone string `json:"phone" validate:"required,phone"`
}

// SendOTP issues a fresh code for the user owning phone and queues it for SMS delivery.
func (u *AuthUseCase) SendOTP(ctx context.Context, phone string) (*OTPTicket, error) {
	if err := validateInput(sendOTPInput{Phone: phone}); err != nil {
		return nil, err
	}
	if err := u.throttle.Acquire(ctx, phone); err != nil {
		return nil, err
	}

	usr, err := u.users.GetByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}

	code, err := u.codes.Generate()
	if err != nil {
		return nil, err
	}
	hash, err := u.hasher.Hash(code)
	if err != nil {
		return nil, err
	}

	challenge := model.OTPChallenge{
		Reference: u.ids.NewID(),
		CodeHash:  hash,
		ExpiresAt: u.now().Add(u.otpTTL),
	}
	if err := u.users.SetOTP(ctx, usr.ID, challenge, model.NewSMSMessage(usr.Phone, otpMessage(code))); err != nil {
		return nil, err
	}

	return &OTPTicket{Reference: challenge.Reference, UserID: usr.ID}, nil
}

// VerifyOTP redeems the code issued under reference and returns a session token.
// Each challenge admits a bounded number of attempts and is discarded once they run out.
func (u *AuthUseCase) VerifyOTP(ctx context.Context, reference, code string) (*model.User, string, error) {
	if reference == "" || code == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	usr, err := u.users.GetByOTPReference(ctx, reference)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}
	if usr.OTP == nil || !u.now().Before(usr.OTP.ExpiresAt) {
		return nil, "", domainErrors.ErrInvalidCredentials
	}
	allowed, err := u.users.RegisterOTPAttempt(ctx, usr.ID, reference, u.attempts)
	if err != nil {
		return nil, "", err
	}
	if !allowed {
		return nil, "", domainErrors.ErrTooManyRequests
	}
	if err := u.hasher.Compare(usr.OTP.CodeHash, code); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	consumed, err := u.users.ConsumeOTP(ctx, usr.ID, reference)
	if err != nil {
		return nil, "", err
	}
	if !consumed {
		return nil, "", domainErrors.ErrInvalidCredentials
	}
	usr.OTP = nil

	token, err := u.tokens.IssueToken(model.Identity{UserID: usr.ID, Role: usr.Role})
	if err != nil {
		return nil, "", err
	}
	return usr, token, nil
}

// ParseToken extracts the identity carried by token.
func (u *AuthUseCase) ParseToken(token string) (model.Identity, error) {
	if token == "" {
		return model.Identity{}, pkgAuth.ErrInvalidToken
	}
	return u.tokens.ParseToken(token)
}
