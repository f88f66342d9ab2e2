package repository

import (
	"context"
	"time"

	"github.com/polkiloo/procurement/internal/domain/model"
)

type NotificationRepository interface {
	Create(ctx context.Context, text string) (*model.Notification, error)
	GetByID(ctx context.Context, id string) (*model.Notification, error)
	List(ctx context.Context) ([]model.Notification, error)
	Delete(ctx context.Context, id string) error
	MarkAllShown(ctx context.Context) (int64, error)
}

type OutboxRepository interface {
	// Claim leases up to limit due pending messages for lease.
	Claim(ctx context.Context, limit int, lease time.Duration) ([]model.OutboxMessage, error)
	MarkDone(ctx context.Context, id int64) error
	// MarkFailed reschedules the message at retryAt, or fails it permanently when retryAt is nil.
	MarkFailed(ctx context.Context, id int64, cause string, retryAt *time.Time) error
	// PurgeDone deletes delivered messages last touched before the cutoff.
	PurgeDone(ctx context.Context, before time.Time) (int64, error)
}

type AnalyticsRepository interface {
	RecordVisit(ctx context.Context) error
	VisitBuckets(ctx context.Context, group model.Grouping, since time.Time) (model.BucketCounts, error)
	OrderBuckets(ctx context.Context, kind model.OrderKind, group model.Grouping, since time.Time, visitedOnly bool) (model.BucketCounts, error)
	Counts(ctx context.Context) (*model.Counts, error)
}
