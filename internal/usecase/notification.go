package usecase

import (
	"context"

	"github.com/polkiloo/procurement/internal/domain/model"
	"github.com/polkiloo/procurement/internal/domain/repository"
)

type notificationInput struct {
	Text string `json:"text" validate:"required,max=1000"`
}

// NotificationUseCase serves the admin notification feed.
type NotificationUseCase struct {
	notifications repository.NotificationRepository
}

// NewNotificationUseCase constructs NotificationUseCase.
func NewNotificationUseCase(notifications repository.NotificationRepository) *NotificationUseCase {
	return &NotificationUseCase{notifications: notifications}
}

func (u *NotificationUseCase) Create(ctx context.Context, text string) (*model.Notification, error) {
	if err := validateInput(notificationInput{Text: text}); err != nil {
		return nil, err
	}
	return u.notifications.Create(ctx, text)
}

func (u *NotificationUseCase) List(ctx context.Context) ([]model.Notification, error) {
	return u.notifications.List(ctx)
}

func (u *NotificationUseCase) Get(ctx context.Context, id string) (*model.Notification, error) {
	return u.notifications.GetByID(ctx, id)
}

func (u *NotificationUseCase) Delete(ctx context.Context, id string) error {
	return u.notifications.Delete(ctx, id)
}

// MarkAllShown flags every unseen notification and reports how many changed.
func (u *NotificationUseCase) MarkAllShown(ctx context.Context) (int64, error) {
	return u.notifications.MarkAllShown(ctx)
}
