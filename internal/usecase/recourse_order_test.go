package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	domainErrors "github.com/polkiloo/procurement/internal/domain/errors"
	"github.com/polkiloo/procurement/internal/domain/model"
	testhelpers "github.com/polkiloo/procurement/internal/test"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func recourseInput() RecourseOrderInput {
	return RecourseOrderInput{
		RecourseName:  "Supplier Co",
		RecoursePhone: "0555555555",
		ClientName:    "Client",
		ClientPhone:   "0566666666",
		SerialNumber:  42,
		ProjectName:   "Bridge",
		DateOfProject: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Advance:       "30",
		UponDelivery:  "50",
		AfterDelivery: "20",
	}
}

func newRecourseFixture(geocoder Geocoder) (*RecourseOrderUseCase, *testhelpers.OrderRepositoryStub[model.RecourseOrder]) {
	users := testhelpers.NewUserRepositoryStub(
		model.User{ID: "r1", Phone: "0555555555", Role: model.RoleRecourse},
		model.User{ID: "c1", Phone: "0577777777", Role: model.RoleContractor},
	)
	orders := &testhelpers.OrderRepositoryStub[model.RecourseOrder]{}
	return NewRecourseOrderUseCase(orders, users, geocoder, discardLogger()), orders
}

func TestRecourseOrderUseCaseCreate(t *testing.T) {
	uc, orders := newRecourseFixture(nil)

	order, err := uc.Create(context.Background(), recourseInput(), nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if order.StatusUser != model.UserStatusEligible || order.UserID == nil || *order.UserID != "r1" {
		t.Fatalf("expected order bound to supplier, got %+v", order.OrderMeta)
	}
	if order.BillFile.URL != "" || order.Materials == nil {
		t.Fatalf("unexpected defaults %+v", order)
	}
	if len(orders.Created) != 1 || len(orders.Messages) != 1 {
		t.Fatalf("expected one order with notice, got %d/%d", len(orders.Created), len(orders.Messages))
	}
}

func TestRecourseOrderUseCasePaymentSplit(t *testing.T) {
	cases := []struct {
		name    string
		advance string
		wantErr bool
	}{
		{"sums to 99", "29", true},
		{"sums to 100", "30", false},
		{"sums to 101", "31", true},
		{"percent suffix", "30%", false},
		{"fractional", "29.5", true},
		{"not a number", "abc", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc, orders := newRecourseFixture(nil)
			in := recourseInput()
			in.Advance = tc.advance

			_, err := uc.Create(context.Background(), in, nil)
			if tc.wantErr {
				var vErr *domainErrors.ValidationError
				if !errors.As(err, &vErr) || vErr.Field != "advance" {
					t.Fatalf("expected advance validation error, got %v", err)
				}
				if len(orders.Created) != 0 {
					t.Fatalf("rejected order must not be stored")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestRecourseOrderUseCaseRequiresRecourseUser(t *testing.T) {
	uc, orders := newRecourseFixture(nil)
	ctx := context.Background()

	in := recourseInput()
	in.RecoursePhone = "0599999999"
	if _, err := uc.Create(ctx, in, nil); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found for unknown phone, got %v", err)
	}

	in.RecoursePhone = "0577777777"
	if _, err := uc.Create(ctx, in, nil); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found for contractor phone, got %v", err)
	}
	if len(orders.Created) != 0 {
		t.Fatalf("no order should be stored")
	}
}

func TestRecourseOrderUseCaseEnrichesLocation(t *testing.T) {
	geocoder := &testhelpers.GeocoderStub{Address: &model.Address{
		FullAddress: "King Fahd Rd, Riyadh, Saudi Arabia",
		Street:      "King Fahd Rd",
		Country:     "Saudi Arabia",
	}}
	uc, _ := newRecourseFixture(geocoder)

	in := recourseInput()
	in.Location = &model.GeoPoint{Longitude: 46.67, Latitude: 24.71}
	order, err := uc.Create(context.Background(), in, nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if geocoder.Calls != 1 {
		t.Fatalf("expected one geocoder call, got %d", geocoder.Calls)
	}
	if order.Street != "King Fahd Rd" || order.CountryName != "Saudi Arabia" || order.PostAddress == "" {
		t.Fatalf("address not applied: %+v", order)
	}
}

func TestRecourseOrderUseCaseSkipsEnrichment(t *testing.T) {
	geocoder := &testhelpers.GeocoderStub{Err: errors.New("timeout")}
	uc, orders := newRecourseFixture(geocoder)
	ctx := context.Background()

	in := recourseInput()
	in.CountryName = "KSA"
	in.Location = &model.GeoPoint{Longitude: 46.67, Latitude: 24.71}
	order, err := uc.Create(ctx, in, nil)
	if err != nil {
		t.Fatalf("geocoder failure must not fail create: %v", err)
	}
	if order.CountryName != "KSA" || order.Street != "" {
		t.Fatalf("unexpected address fields %+v", order)
	}

	in.Location = &model.GeoPoint{}
	if _, err := uc.Create(ctx, in, nil); err != nil {
		t.Fatalf("create: %v", err)
	}
	if geocoder.Calls != 1 {
		t.Fatalf("origin placeholder must not be geocoded, got %d calls", geocoder.Calls)
	}
	if len(orders.Created) != 2 {
		t.Fatalf("expected two stored orders, got %d", len(orders.Created))
	}
}

func TestRecourseOrderUseCaseListScope(t *testing.T) {
	uc, orders := newRecourseFixture(nil)
	ctx := context.Background()

	if _, err := uc.List(ctx, model.OrderFilter{}, model.Identity{UserID: "r1", Role: model.RoleRecourse}); err != nil {
		t.Fatalf("list: %v", err)
	}
	if _, err := uc.List(ctx, model.OrderFilter{}, model.Identity{UserID: "a1", Role: model.RoleAdmin}); err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(orders.Filters) != 2 || orders.Filters[0].UserID != "r1" || orders.Filters[1].UserID != "" {
		t.Fatalf("unexpected filters %+v", orders.Filters)
	}
}

func TestRecourseOrderUseCaseAttachBill(t *testing.T) {
	uc, orders := newRecourseFixture(nil)
	orders.AttachBillFn = func(_ context.Context, id string, file model.AttachedFile) (*model.RecourseOrder, error) {
		return &model.RecourseOrder{OrderMeta: model.OrderMeta{ID: id}, BillFile: file}, nil
	}
	ctx := context.Background()

	if _, err := uc.AttachBill(ctx, "o1", nil); !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	order, err := uc.AttachBill(ctx, "o1", &model.AttachedFile{URL: "https://files.example.com/bill.pdf"})
	if err != nil {
		t.Fatalf("attach bill: %v", err)
	}
	if order.BillFile.URL != "https://files.example.com/bill.pdf" || len(orders.Bills) != 1 {
		t.Fatalf("unexpected bill %+v", order.BillFile)
	}
}
