package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/polkiloo/procurement/internal/config"
	"github.com/polkiloo/procurement/internal/domain/model"
	"github.com/polkiloo/procurement/internal/domain/repository"
)

const (
	outboxLease     = time.Minute
	outboxRetryStep = 10 * time.Second
)

// errPermanent marks messages that can never be delivered.
var errPermanent = errors.New("undeliverable outbox message")

// SMSSender delivers text messages.
type SMSSender interface {
	Send(ctx context.Context, phone, message string) error
}

// OutboxUseCase delivers side effects committed to the outbox.
type OutboxUseCase struct {
	outbox        repository.OutboxRepository
	notifications repository.NotificationRepository
	sms           SMSSender
	maxAttempts   int
	retention     time.Duration
	now           func() time.Time
}

// NewOutboxUseCase constructs OutboxUseCase.
func NewOutboxUseCase(outbox repository.OutboxRepository, notifications repository.NotificationRepository, sms SMSSender, cfg *config.Config) *OutboxUseCase {
	maxAttempts := cfg.Outbox.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 1
	}
	return &OutboxUseCase{
		outbox:        outbox,
		notifications: notifications,
		sms:           sms,
		maxAttempts:   maxAttempts,
		retention:     cfg.Outbox.Retention,
		now:           time.Now,
	}
}

// Claim leases up to limit due messages.
func (u *OutboxUseCase) Claim(ctx context.Context, limit int) ([]model.OutboxMessage, error) {
	return u.outbox.Claim(ctx, limit, outboxLease)
}

// Process delivers msg and records the outcome. The delivery error, if any, is returned after it is recorded.
func (u *OutboxUseCase) Process(ctx context.Context, msg model.OutboxMessage) error {
	deliveryErr := u.deliver(ctx, msg)
	if deliveryErr == nil {
		return u.outbox.MarkDone(ctx, msg.ID)
	}

	attempts := msg.Attempts + 1
	var retryAt *time.Time
	if attempts < u.maxAttempts && !errors.Is(deliveryErr, errPermanent) {
		next := u.now().Add(time.Duration(attempts) * outboxRetryStep)
		retryAt = &next
	}
	if err := u.outbox.MarkFailed(ctx, msg.ID, deliveryErr.Error(), retryAt); err != nil {
		return errors.Join(deliveryErr, err)
	}
	return deliveryErr
}

// Purge deletes delivered messages older than the retention window. A zero window keeps everything.
func (u *OutboxUseCase) Purge(ctx context.Context) (int64, error) {
	if u.retention <= 0 {
		return 0, nil
	}
	return u.outbox.PurgeDone(ctx, u.now().Add(-u.retention))
}

func (u *OutboxUseCase) deliver(ctx context.Context, msg model.OutboxMessage) error {
	switch msg.Kind {
	case model.OutboxNotification:
		var payload model.NotificationPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return fmt.Errorf("%w: %v", errPermanent, err)
		}
		_, err := u.notifications.Create(ctx, payload.Text)
		return err
	case model.OutboxSMS:
		var payload model.SMSPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return fmt.Errorf("%w: %v", errPermanent, err)
		}
		return u.sms.Send(ctx, payload.Phone, payload.Message)
	default:
		return fmt.Errorf("%w: unknown kind %q", errPermanent, msg.Kind)
	}
}
