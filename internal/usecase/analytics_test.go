package usecase

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	domainErrors "github.com/polkiloo/procurement/internal/domain/errors"
	"github.com/polkiloo/procurement/internal/domain/model"
	testhelpers "github.com/polkiloo/procurement/internal/test"
)

// 2024-04-10 is a Wednesday.
var chartNow = time.Date(2024, 4, 10, 15, 30, 0, 0, time.UTC)

func newAnalyticsFixture(repo *testhelpers.AnalyticsRepositoryStub) *AnalyticsUseCase {
	uc := NewAnalyticsUseCase(repo)
	uc.now = func() time.Time { return chartNow }
	return uc
}

func TestAnalyticsOrdersChartWeekly(t *testing.T) {
	repo := &testhelpers.AnalyticsRepositoryStub{Orders: map[model.OrderKind]model.BucketCounts{
		model.OrderKindFinance:  {"2024-04-08": 3, "2024-03-04": 1},
		model.OrderKindMaterial: {"2024-03-25": 2},
	}}
	uc := newAnalyticsFixture(repo)

	chart, err := uc.OrdersChart(context.Background(), model.ChartQuery{})
	if err != nil {
		t.Fatalf("chart: %v", err)
	}
	wantLabels := []string{"2024-03-04", "2024-03-11", "2024-03-18", "2024-03-25", "2024-04-01", "2024-04-08"}
	if !reflect.DeepEqual(chart.Labels, wantLabels) {
		t.Fatalf("unexpected labels %v", chart.Labels)
	}
	if got := chart.Series[model.OrderKindFinance]; !reflect.DeepEqual(got, []int{1, 0, 0, 0, 0, 3}) {
		t.Fatalf("unexpected finance series %v", got)
	}
	if got := chart.Series[model.OrderKindRecourse]; !reflect.DeepEqual(got, []int{0, 0, 0, 0, 0, 0}) {
		t.Fatalf("expected zero filled recourse series, got %v", got)
	}
	if len(chart.Series) != len(model.OrderKinds) || chart.Total != nil {
		t.Fatalf("unexpected chart %+v", chart)
	}
	if len(repo.Calls) != 4 || !repo.Calls[0].Since.Equal(time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected calls %+v", repo.Calls)
	}
}

func TestAnalyticsOrdersChartCustomWindow(t *testing.T) {
	repo := &testhelpers.AnalyticsRepositoryStub{}
	uc := newAnalyticsFixture(repo)

	chart, err := uc.OrdersChart(context.Background(), model.ChartQuery{Weeks: 3, Collections: []model.OrderKind{model.OrderKindMaterial}})
	if err != nil {
		t.Fatalf("chart: %v", err)
	}
	if !reflect.DeepEqual(chart.Labels, []string{"2024-03-25", "2024-04-01", "2024-04-08"}) {
		t.Fatalf("unexpected labels %v", chart.Labels)
	}
	if len(chart.Series) != 1 {
		t.Fatalf("expected a single series, got %v", chart.Series)
	}
}

func TestAnalyticsOrdersChartRepeatedCollection(t *testing.T) {
	repo := &testhelpers.AnalyticsRepositoryStub{Visited: map[model.OrderKind]model.BucketCounts{
		model.OrderKindFinance: {"2024-04-08": 3},
	}}
	uc := newAnalyticsFixture(repo)

	chart, err := uc.OrdersChart(context.Background(), model.ChartQuery{
		Collections: []model.OrderKind{model.OrderKindFinance, model.OrderKindFinance},
		VisitedOnly: true,
	})
	if err != nil {
		t.Fatalf("chart: %v", err)
	}
	if len(repo.Calls) != 1 || len(chart.Series) != 1 {
		t.Fatalf("expected one lookup per collection, got calls=%+v series=%v", repo.Calls, chart.Series)
	}
	if !reflect.DeepEqual(chart.Total, []int{0, 0, 0, 0, 0, 3}) {
		t.Fatalf("unexpected total %v", chart.Total)
	}
}

func TestAnalyticsOrdersChartDailyVisited(t *testing.T) {
	repo := &testhelpers.AnalyticsRepositoryStub{Visited: map[model.OrderKind]model.BucketCounts{
		model.OrderKindFinance:  {"2024-04-10": 2, "2024-04-04": 1},
		model.OrderKindMaterial: {"2024-04-10": 1},
	}}
	uc := newAnalyticsFixture(repo)

	chart, err := uc.OrdersChart(context.Background(), model.ChartQuery{
		Group:       model.GroupByDay,
		Collections: []model.OrderKind{model.OrderKindFinance, model.OrderKindMaterial},
		VisitedOnly: true,
	})
	if err != nil {
		t.Fatalf("chart: %v", err)
	}
	if len(chart.Labels) != 7 || chart.Labels[0] != "2024-04-04" || chart.Labels[6] != "2024-04-10" {
		t.Fatalf("unexpected labels %v", chart.Labels)
	}
	if !reflect.DeepEqual(chart.Total, []int{1, 0, 0, 0, 0, 0, 3}) {
		t.Fatalf("unexpected total %v", chart.Total)
	}
	for _, call := range repo.Calls {
		if !call.VisitedOnly || call.Group != model.GroupByDay {
			t.Fatalf("unexpected call %+v", call)
		}
	}
}

func TestAnalyticsOrdersChartValidation(t *testing.T) {
	uc := newAnalyticsFixture(&testhelpers.AnalyticsRepositoryStub{})
	ctx := context.Background()

	var vErr *domainErrors.ValidationError
	if _, err := uc.OrdersChart(ctx, model.ChartQuery{Group: "month"}); !errors.As(err, &vErr) || vErr.Field != "group" {
		t.Fatalf("expected group validation error, got %v", err)
	}
	if _, err := uc.OrdersChart(ctx, model.ChartQuery{Collections: []model.OrderKind{"orders"}}); !errors.As(err, &vErr) || vErr.Field != "collections" {
		t.Fatalf("expected collections validation error, got %v", err)
	}
}

func TestAnalyticsWeeklyVisits(t *testing.T) {
	repo := &testhelpers.AnalyticsRepositoryStub{VisitCounts: model.BucketCounts{"2024-04-01": 7}}
	uc := newAnalyticsFixture(repo)
	ctx := context.Background()

	if err := uc.RecordVisit(ctx); err != nil || repo.Visits != 1 {
		t.Fatalf("record visit: %v", err)
	}
	chart, err := uc.WeeklyVisits(ctx, 2)
	if err != nil {
		t.Fatalf("visits: %v", err)
	}
	if !reflect.DeepEqual(chart.Labels, []string{"2024-04-01", "2024-04-08"}) || !reflect.DeepEqual(chart.Data, []int{7, 0}) {
		t.Fatalf("unexpected chart %+v", chart)
	}
}

func TestAnalyticsCounts(t *testing.T) {
	repo := &testhelpers.AnalyticsRepositoryStub{Tally: model.Counts{FinanceOrder: 2, Contractors: 5}}
	uc := newAnalyticsFixture(repo)

	counts, err := uc.Counts(context.Background())
	if err != nil || counts.FinanceOrder != 2 || counts.Contractors != 5 {
		t.Fatalf("unexpected counts %+v %v", counts, err)
	}
}
