package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/polkiloo/procurement/internal/domain/model"
)

type analyticsRepository struct {
	storage *Storage
}

var orderTables = map[model.OrderKind]string{
	model.OrderKindFinance:       "finance_orders",
	model.OrderKindMaterial:      "material_orders",
	model.OrderKindRecourse:      "recourse_orders",
	model.OrderKindQualification: "qualification_orders",
}

// bucketExpr labels rows with the UTC start of their day or ISO week.
const bucketExpr = `to_char(date_trunc($1, created_at AT TIME ZONE 'UTC'), 'YYYY-MM-DD')`

func (r *analyticsRepository) RecordVisit(ctx context.Context) error {
	_, err := r.storage.pool.Exec(ctx, `INSERT INTO visits (id) VALUES ($1)`, r.storage.ids.NewID())
	return err
}

func (r *analyticsRepository) VisitBuckets(ctx context.Context, group model.Grouping, since time.Time) (model.BucketCounts, error) {
	return r.buckets(ctx, "visits", "", group, since)
}

func (r *analyticsRepository) OrderBuckets(ctx context.Context, kind model.OrderKind, group model.Grouping, since time.Time, visitedOnly bool) (model.BucketCounts, error) {
	table, ok := orderTables[kind]
	if !ok {
		return nil, fmt.Errorf("unknown order kind %q", kind)
	}
	extra := ""
	if visitedOnly {
		extra = fmt.Sprintf(" AND status_user = '%s'", model.UserStatusVisited)
	}
	return r.buckets(ctx, table, extra, group, since)
}

func (r *analyticsRepository) buckets(ctx context.Context, table, extra string, group model.Grouping, since time.Time) (model.BucketCounts, error) {
	query := fmt.Sprintf(`SELECT %s AS bucket, COUNT(*) FROM %s WHERE created_at >= $2%s GROUP BY bucket`, bucketExpr, table, extra)
	rows, err := r.storage.pool.Query(ctx, query, string(group), since.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := model.BucketCounts{}
	for rows.Next() {
		var (
			label string
			n     int
		)
		if err := rows.Scan(&label, &n); err != nil {
			return nil, err
		}
		counts[label] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}

func (r *analyticsRepository) Counts(ctx context.Context) (*model.Counts, error) {
	const query = `SELECT
            (SELECT COUNT(*) FROM finance_orders),
            (SELECT COUNT(*) FROM material_orders),
            (SELECT COUNT(*) FROM recourse_orders),
            (SELECT COUNT(*) FROM qualification_orders),
            (SELECT COUNT(*) FROM materials),
            (SELECT COUNT(*) FROM users WHERE role = $1),
            (SELECT COUNT(*) FROM users WHERE role = $2),
            (SELECT COUNT(*) FROM users WHERE role = $3)`

	var c model.Counts
	err := r.storage.pool.QueryRow(ctx, query, string(model.RoleContractor), string(model.RoleRecourse), string(model.RoleIntering)).
		Scan(&c.FinanceOrder, &c.MaterialOrder, &c.RecourseOrder, &c.RehabilitationOrder, &c.Materials,
			&c.Contractors, &c.Recourses, &c.Interings)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
