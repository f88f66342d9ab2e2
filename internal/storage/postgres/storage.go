package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/polkiloo/procurement/internal/domain/model"
	"github.com/polkiloo/procurement/internal/domain/repository"
	"github.com/polkiloo/procurement/internal/pkg/ids"
)

type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type pgxPool interface {
	querier
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
	ids    ids.Generator
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger, gen ids.Generator) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger, ids: gen}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) MaterialOrders() repository.MaterialOrderRepository {
	return &materialOrderRepository{storage: s}
}

func (s *Storage) FinanceOrders() repository.FinanceOrderRepository {
	return &financeOrderRepository{storage: s}
}

func (s *Storage) QualificationOrders() repository.QualificationOrderRepository {
	return &qualificationOrderRepository{storage: s}
}

func (s *Storage) RecourseOrders() repository.RecourseOrderRepository {
	return &recourseOrderRepository{storage: s}
}

func (s *Storage) Classifications() repository.ClassificationRepository {
	return &classificationRepository{storage: s}
}

func (s *Storage) Materials() repository.MaterialRepository {
	return &materialRepository{storage: s}
}

func (s *Storage) Notifications() repository.NotificationRepository {
	return &notificationRepository{storage: s}
}

func (s *Storage) Outbox() repository.OutboxRepository {
	return &outboxRepository{storage: s}
}

func (s *Storage) Analytics() repository.AnalyticsRepository {
	return &analyticsRepository{storage: s}
}

var _ repository.Factory = (*Storage)(nil)

func (s *Storage) initSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// enqueue writes outbox messages using q, normally the transaction of the primary write.
func (s *Storage) enqueue(ctx context.Context, q querier, msgs []model.OutboxMessage) error {
	const query = `INSERT INTO outbox_messages (id, kind, payload) VALUES ($1, $2, $3)`
	for i := range msgs {
		msgs[i].ID = s.ids.NextSequence()
		if _, err := q.Exec(ctx, query, msgs[i].ID, string(msgs[i].Kind), []byte(msgs[i].Payload)); err != nil {
			return fmt.Errorf("enqueue %s: %w", msgs[i].Kind, err)
		}
	}
	return nil
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}

func encodeJSON(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode json column: %w", err)
	}
	return raw, nil
}

func decodeJSON(raw []byte, dst any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode json column: %w", err)
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a case-insensitive substring pattern for ILIKE.
func containsPattern(search string) string {
	return "%" + likeEscaper.Replace(search) + "%"
}

// conditions accumulates positional WHERE clauses.
type conditions struct {
	clauses []string
	args    []any
	scoped  int
}

// scope adds a clause that bounds the visible collection, so it also narrows the total.
// Scope clauses must be added before any filter.
func (c *conditions) scope(clause string, arg any) {
	c.add(clause, arg)
	c.scoped = len(c.clauses)
}

func (c *conditions) add(clause string, arg any) {
	c.args = append(c.args, arg)
	c.clauses = append(c.clauses, fmt.Sprintf(clause, len(c.args)))
}

func (c *conditions) where() string {
	return joinClauses(c.clauses)
}

func joinClauses(clauses []string) string {
	if len(clauses) == 0 {
		return "TRUE"
	}
	return strings.Join(clauses, " AND ")
}

// countPage returns the in-scope and filtered row counts of table.
func countPage(ctx context.Context, q querier, table string, cond *conditions) (total, filtered int, err error) {
	query := fmt.Sprintf(`SELECT COUNT(*), COUNT(*) FILTER (WHERE %s) FROM %s WHERE %s`,
		cond.where(), table, joinClauses(cond.clauses[:cond.scoped]))
	if err := q.QueryRow(ctx, query, cond.args...).Scan(&total, &filtered); err != nil {
		return 0, 0, err
	}
	return total, filtered, nil
}

// pageClause returns the newest-first ordering and LIMIT/OFFSET tail for page, with args extended to match.
func pageClause(cond *conditions, orderColumn string, page model.PageRequest) (string, []any) {
	page = page.Normalize()
	args := append(append([]any{}, cond.args...), page.Limit, page.Offset())
	n := len(cond.args)
	return fmt.Sprintf("ORDER BY %s DESC LIMIT $%d OFFSET $%d", orderColumn, n+1, n+2), args
}
