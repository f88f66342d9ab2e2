package usecase

import (
	"context"
	"fmt"
	"time"

	domainErrors "github.com/polkiloo/procurement/internal/domain/errors"
	"github.com/polkiloo/procurement/internal/domain/model"
	"github.com/polkiloo/procurement/internal/domain/repository"
	"github.com/polkiloo/procurement/internal/pkg/timebucket"
)

// AnalyticsUseCase builds gap-filled charts and the dashboard tally.
type AnalyticsUseCase struct {
	analytics repository.AnalyticsRepository
	now       func() time.Time
}

// NewAnalyticsUseCase constructs AnalyticsUseCase.
func NewAnalyticsUseCase(analytics repository.AnalyticsRepository) *AnalyticsUseCase {
	return &AnalyticsUseCase{analytics: analytics, now: time.Now}
}

// RecordVisit stores one anonymous pageview.
func (u *AnalyticsUseCase) RecordVisit(ctx context.Context) error {
	return u.analytics.RecordVisit(ctx)
}

// Counts returns the per collection and per role totals.
func (u *AnalyticsUseCase) Counts(ctx context.Context) (*model.Counts, error) {
	return u.analytics.Counts(ctx)
}

func (u *AnalyticsUseCase) window(group model.Grouping, weeks int) (model.Grouping, time.Time, []string, error) {
	switch group {
	case model.GroupByDay:
		since, labels := timebucket.Daily(u.now())
		return group, since, labels, nil
	case model.GroupByWeek, "":
		since, labels := timebucket.Weekly(u.now(), weeks)
		return model.GroupByWeek, since, labels, nil
	default:
		return "", time.Time{}, nil, domainErrors.NewValidationError("group", fmt.Sprintf("must be %s or %s", model.GroupByDay, model.GroupByWeek))
	}
}

// OrdersChart counts orders per bucket for each requested collection.
// With VisitedOnly set, only orders from unregistered submitters count and a per bucket total is added.
func (u *AnalyticsUseCase) OrdersChart(ctx context.Context, q model.ChartQuery) (*model.Chart, error) {
	group, since, labels, err := u.window(q.Group, q.Weeks)
	if err != nil {
		return nil, err
	}

	kinds := model.OrderKinds
	if len(q.Collections) > 0 {
		kinds = make([]model.OrderKind, 0, len(q.Collections))
		seen := make(map[model.OrderKind]struct{}, len(q.Collections))
		for _, kind := range q.Collections {
			if !kind.Valid() {
				return nil, domainErrors.NewValidationError("collections", fmt.Sprintf("unknown collection %q", kind))
			}
			if _, dup := seen[kind]; dup {
				continue
			}
			seen[kind] = struct{}{}
			kinds = append(kinds, kind)
		}
	}

	chart := &model.Chart{Labels: labels, Series: make(map[model.OrderKind][]int, len(kinds))}
	if q.VisitedOnly {
		chart.Total = make([]int, len(labels))
	}
	for _, kind := range kinds {
		counts, err := u.analytics.OrderBuckets(ctx, kind, group, since, q.VisitedOnly)
		if err != nil {
			return nil, err
		}
		series := timebucket.Fill(labels, counts)
		chart.Series[kind] = series
		if chart.Total != nil {
			for i, n := range series {
				chart.Total[i] += n
			}
		}
	}
	return chart, nil
}

// WeeklyVisits counts pageviews per Monday aligned week.
func (u *AnalyticsUseCase) WeeklyVisits(ctx context.Context, weeks int) (*model.Chart, error) {
	since, labels := timebucket.Weekly(u.now(), weeks)
	counts, err := u.analytics.VisitBuckets(ctx, model.GroupByWeek, since)
	if err != nil {
		return nil, err
	}
	return &model.Chart{Labels: labels, Data: timebucket.Fill(labels, counts)}, nil
}
