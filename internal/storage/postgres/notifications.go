package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/polkiloo/procurement/internal/domain/model"
)

type notificationRepository struct {
	storage *Storage
}

type outboxRepository struct {
	storage *Storage
}

// --- NotificationRepository implementation ---

const notificationColumns = `id, text, shown, created_at, updated_at`

func scanNotification(row pgx.Row) (*model.Notification, error) {
	var n model.Notification
	if err := row.Scan(&n.ID, &n.Text, &n.Shown, &n.CreatedAt, &n.UpdatedAt); err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *notificationRepository) Create(ctx context.Context, text string) (*model.Notification, error) {
	const query = `INSERT INTO notifications (id, text) VALUES ($1, $2) RETURNING ` + notificationColumns
	n, err := scanNotification(r.storage.pool.QueryRow(ctx, query, r.storage.ids.NewID(), text))
	if err != nil {
		return nil, mapWriteError(err)
	}
	return n, nil
}

func (r *notificationRepository) GetByID(ctx context.Context, id string) (*model.Notification, error) {
	n, err := scanNotification(r.storage.pool.QueryRow(ctx, `SELECT `+notificationColumns+` FROM notifications WHERE id=$1`, id))
	if err != nil {
		return nil, mapReadError(err)
	}
	return n, nil
}

func (r *notificationRepository) List(ctx context.Context) ([]model.Notification, error) {
	rows, err := r.storage.pool.Query(ctx, `SELECT `+notificationColumns+` FROM notifications ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []model.Notification{}
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *notificationRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM notifications WHERE id=$1`, id)
	if err != nil {
		return err
	}
	return expectAffected(tag)
}

func (r *notificationRepository) MarkAllShown(ctx context.Context) (int64, error) {
	tag, err := r.storage.pool.Exec(ctx, `UPDATE notifications SET shown=TRUE, updated_at=NOW() WHERE NOT shown`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// --- OutboxRepository implementation ---

// Claim leases due messages. Rows whose processing lease expired are claimed again.
func (r *outboxRepository) Claim(ctx context.Context, limit int, lease time.Duration) ([]model.OutboxMessage, error) {
	const query = `UPDATE outbox_messages
                   SET status='processing', available_at=NOW() + make_interval(secs => $2), updated_at=NOW()
                   WHERE id IN (
                       SELECT id FROM outbox_messages
                       WHERE status IN ('pending', 'processing') AND available_at <= NOW()
                       ORDER BY available_at, id
                       LIMIT $1
                       FOR UPDATE SKIP LOCKED
                   )
                   RETURNING id, kind, payload, status, attempts, last_error, available_at, created_at`

	rows, err := r.storage.pool.Query(ctx, query, limit, lease.Seconds())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.OutboxMessage
	for rows.Next() {
		var (
			m       model.OutboxMessage
			payload []byte
		)
		if err := rows.Scan(&m.ID, &m.Kind, &payload, &m.Status, &m.Attempts, &m.LastError, &m.AvailableAt, &m.CreatedAt); err != nil {
			return nil, err
		}
		m.Payload = payload
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// redactPayload blanks SMS payloads, which carry one-time codes, once a row leaves the queue.
const redactPayload = `payload=CASE WHEN kind='sms.send' THEN '{}'::jsonb ELSE payload END`

func (r *outboxRepository) MarkDone(ctx context.Context, id int64) error {
	const query = `UPDATE outbox_messages SET status='done', last_error='', ` + redactPayload + `, updated_at=NOW() WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	return expectAffected(tag)
}

func (r *outboxRepository) MarkFailed(ctx context.Context, id int64, cause string, retryAt *time.Time) error {
	var (
		tag pgconn.CommandTag
		err error
	)
	if retryAt == nil {
		const query = `UPDATE outbox_messages SET status='failed', attempts=attempts+1, last_error=$2, ` + redactPayload + `, updated_at=NOW() WHERE id=$1`
		tag, err = r.storage.pool.Exec(ctx, query, id, cause)
	} else {
		const query = `UPDATE outbox_messages SET status='pending', attempts=attempts+1, last_error=$2, available_at=$3, updated_at=NOW() WHERE id=$1`
		tag, err = r.storage.pool.Exec(ctx, query, id, cause, *retryAt)
	}
	if err != nil {
		return err
	}
	return expectAffected(tag)
}

func (r *outboxRepository) PurgeDone(ctx context.Context, before time.Time) (int64, error) {
	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM outbox_messages WHERE status='done' AND updated_at < $1`, before)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
