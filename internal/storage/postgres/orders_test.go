package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmockv3 "github.com/pashagolub/pgxmock/v3"

	domainErrors "github.com/polkiloo/procurement/internal/domain/errors"
	"github.com/polkiloo/procurement/internal/domain/model"
)

var (
	metaRowColumns      = []string{"id", "attached_file", "status_order", "status_user", "user_id", "created_at", "updated_at"}
	requesterRowColumns = []string{"first_name", "last_name", "phone", "email", "company_name", "date_of_company"}
)

func materialOrderRows(now time.Time, ids ...string) *pgxmockv3.Rows {
	columns := append(append(append([]string{}, metaRowColumns...), requesterRowColumns...),
		"materials", "project_name", "note_for_quantity", "description")
	rows := pgxmockv3.NewRows(columns)
	for _, id := range ids {
		rows.AddRow(id, []byte(`{"url":"https://files/1.pdf","publicId":null}`), model.OrderStatusPending,
			model.UserStatusVisited, nil, now, now,
			"Ann", "Lee", "0512345678", "", "", nil,
			[]string{"m1", "m2"}, "Tower", "", "")
	}
	return rows
}

func recourseOrderRows(now time.Time, userID string) *pgxmockv3.Rows {
	columns := append(append([]string{}, metaRowColumns...),
		"recourse_name", "recourse_phone", "client_name", "client_phone", "serial_number", "project_name",
		"date_of_project", "bill_file", "materials", "payment_check", "advance", "upon_delivery", "after_delivery",
		"country_name", "longitude", "latitude", "street", "country", "post_address")
	return pgxmockv3.NewRows(columns).AddRow(
		"r1", []byte(`{"url":"","publicId":null}`), model.OrderStatusShipped, model.UserStatusEligible, &userID, now, now,
		"Supplier", "0555555555", "Client", "0566666666", int64(42), "Bridge",
		now, []byte(`{"url":"https://files/bill.pdf","publicId":"bill"}`), []string{}, model.PaymentCash, "30%", "50", "20%",
		"Saudi Arabia", 46.67, 24.71, "King Fahd Rd", "Saudi Arabia", "Riyadh")
}

func TestMaterialOrderRepositoryCreate(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &materialOrderRepository{storage: storage}

	now := time.Now()
	order := &model.MaterialOrder{
		OrderMeta: model.OrderMeta{StatusOrder: model.OrderStatusPending, StatusUser: model.UserStatusVisited},
		Requester: model.Requester{FirstName: "Ann", LastName: "Lee", Phone: "0512345678"},
	}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO material_orders (id, attached_file, status_order, status_user, user_id, first_name")).
		WithArgs(anyArgs(15)...).
		WillReturnRows(pgxmockv3.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	mock.ExpectExec("INSERT INTO outbox_messages").WithArgs(anyArgs(3)...).WillReturnResult(pgxmockv3.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO outbox_messages").WithArgs(anyArgs(3)...).WillReturnResult(pgxmockv3.NewResult("INSERT", 1))
	mock.ExpectCommit()

	err := repo.Create(context.Background(), order,
		model.NewNotificationMessage("new material order"), model.NewSMSMessage("0512345678", "received"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.ID != "doc-1" || !order.CreatedAt.Equal(now) {
		t.Fatalf("unexpected order: %+v", order.OrderMeta)
	}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO material_orders").WithArgs(anyArgs(15)...).WillReturnError(errors.New("insert"))
	mock.ExpectRollback()
	if err := repo.Create(context.Background(), &model.MaterialOrder{}); err == nil {
		t.Fatal("expected error")
	}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO material_orders").WithArgs(anyArgs(15)...).
		WillReturnRows(pgxmockv3.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	mock.ExpectExec("INSERT INTO outbox_messages").WithArgs(anyArgs(3)...).WillReturnError(errors.New("outbox"))
	mock.ExpectRollback()
	if err := repo.Create(context.Background(), &model.MaterialOrder{}, model.NewNotificationMessage("x")); err == nil {
		t.Fatal("expected outbox failure to abort the insert")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestMaterialOrderRepositoryList(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &materialOrderRepository{storage: storage}

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*), COUNT(*) FILTER (WHERE user_id = $1 AND first_name ILIKE $2 AND status_order = $3) FROM material_orders WHERE user_id = $1")).
		WithArgs("u1", "%an%", "pending").
		WillReturnRows(pgxmockv3.NewRows([]string{"count", "count"}).AddRow(12, 2))
	mock.ExpectQuery(regexp.QuoteMeta("FROM material_orders WHERE user_id = $1 AND first_name ILIKE $2 AND status_order = $3 ORDER BY created_at DESC LIMIT $4 OFFSET $5")).
		WithArgs("u1", "%an%", "pending", 10, 0).
		WillReturnRows(materialOrderRows(now, "o1", "o2"))

	page, err := repo.List(context.Background(), model.OrderFilter{
		Search: "an",
		Status: model.OrderStatusPending,
		UserID: "u1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Total != 12 || page.FilterNum != 2 || len(page.Items) != 2 {
		t.Fatalf("unexpected page: total=%d filtered=%d items=%d", page.Total, page.FilterNum, len(page.Items))
	}
	first := page.Items[0]
	if first.AttachedFile.URL != "https://files/1.pdf" || first.AttachedFile.PublicID != nil || len(first.Materials) != 2 {
		t.Fatalf("unexpected item: %+v", first)
	}

	mock.ExpectQuery(regexp.QuoteMeta("FILTER (WHERE TRUE) FROM material_orders WHERE TRUE")).
		WillReturnRows(pgxmockv3.NewRows([]string{"count", "count"}).AddRow(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("FROM material_orders WHERE TRUE ORDER BY created_at DESC LIMIT $1 OFFSET $2")).
		WithArgs(100, 100).
		WillReturnRows(materialOrderRows(now))
	page, err = repo.List(context.Background(), model.OrderFilter{Page: model.PageRequest{Number: 2, Limit: 1000}})
	if err != nil || page.Items == nil || len(page.Items) != 0 {
		t.Fatalf("expected empty non-nil page, got %+v err=%v", page, err)
	}

	mock.ExpectQuery("SELECT COUNT").WillReturnError(errors.New("count"))
	if _, err := repo.List(context.Background(), model.OrderFilter{}); err == nil {
		t.Fatal("expected count error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestMaterialOrderRepositoryGetAndUpdateStatus(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &materialOrderRepository{storage: storage}

	now := time.Now()
	mock.ExpectQuery("FROM material_orders WHERE id=").WithArgs("o1").WillReturnRows(materialOrderRows(now, "o1"))
	order, err := repo.GetByID(context.Background(), "o1")
	if err != nil || order.ID != "o1" || order.FirstName != "Ann" {
		t.Fatalf("unexpected order: %+v err=%v", order, err)
	}

	mock.ExpectQuery("FROM material_orders WHERE id=").WithArgs("missing").WillReturnError(pgx.ErrNoRows)
	if _, err := repo.GetByID(context.Background(), "missing"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE material_orders SET status_order=$2, updated_at=NOW() WHERE id=$1 RETURNING")).
		WithArgs("o1", "shipped").
		WillReturnRows(materialOrderRows(now, "o1"))
	mock.ExpectExec("INSERT INTO outbox_messages").WithArgs(anyArgs(3)...).WillReturnResult(pgxmockv3.NewResult("INSERT", 1))
	mock.ExpectCommit()
	if _, err := repo.UpdateStatus(context.Background(), "o1", model.OrderStatusShipped, model.NewSMSMessage("0512345678", "shipped")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE material_orders SET status_order").WithArgs("missing", "shipped").WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()
	if _, err := repo.UpdateStatus(context.Background(), "missing", model.OrderStatusShipped); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestFinanceAndQualificationRepositories(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	finance := &financeOrderRepository{storage: storage}
	qualification := &qualificationOrderRepository{storage: storage}

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO finance_orders").WithArgs(anyArgs(15)...).
		WillReturnRows(pgxmockv3.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	mock.ExpectExec("INSERT INTO outbox_messages").WithArgs(anyArgs(3)...).WillReturnResult(pgxmockv3.NewResult("INSERT", 1))
	mock.ExpectCommit()
	if err := finance.Create(context.Background(), &model.FinanceOrder{ProjectName: "P"}, model.NewNotificationMessage("n")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	financeColumns := append(append(append([]string{}, metaRowColumns...), requesterRowColumns...),
		"project_name", "last_year_revenue", "required_amount", "description")
	mock.ExpectQuery("FROM finance_orders WHERE id=").WithArgs("f1").WillReturnRows(
		pgxmockv3.NewRows(financeColumns).AddRow("f1", []byte(`{"url":"","publicId":null}`), model.OrderStatusAccepted,
			model.UserStatusVisited, nil, now, now, "Bo", "Li", "0511111111", "", "", nil, "P", "100", "50", ""))
	got, err := finance.GetByID(context.Background(), "f1")
	if err != nil || got.ProjectName != "P" || got.StatusOrder != model.OrderStatusAccepted {
		t.Fatalf("unexpected finance order: %+v err=%v", got, err)
	}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO qualification_orders").WithArgs(anyArgs(14)...).
		WillReturnRows(pgxmockv3.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	mock.ExpectCommit()
	if err := qualification.Create(context.Background(), &model.QualificationOrder{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE qualification_orders SET status_order").WithArgs("q1", "delivered").WillReturnError(errors.New("boom"))
	mock.ExpectRollback()
	if _, err := qualification.UpdateStatus(context.Background(), "q1", model.OrderStatusDelivered); err == nil {
		t.Fatal("expected error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestRecourseOrderRepository(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &recourseOrderRepository{storage: storage}

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO recourse_orders").WithArgs(anyArgs(24)...).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "uq_recourse_serial_number"})
	mock.ExpectRollback()
	err := repo.Create(context.Background(), &model.RecourseOrder{SerialNumber: 42})
	var dup *domainErrors.DuplicateError
	if !errors.As(err, &dup) || dup.Field != "serialNumber" {
		t.Fatalf("expected serial duplicate, got %v", err)
	}

	mock.ExpectQuery(regexp.QuoteMeta("FILTER (WHERE recourse_name ILIKE $1) FROM recourse_orders")).
		WithArgs(`%50\%%`).
		WillReturnRows(pgxmockv3.NewRows([]string{"count", "count"}).AddRow(3, 1))
	mock.ExpectQuery(regexp.QuoteMeta("FROM recourse_orders WHERE recourse_name ILIKE $1 ORDER BY created_at DESC")).
		WithArgs(`%50\%%`, 10, 0).
		WillReturnRows(recourseOrderRows(now, "u9"))
	page, err := repo.List(context.Background(), model.OrderFilter{Search: "50%"})
	if err != nil || len(page.Items) != 1 {
		t.Fatalf("unexpected page: %+v err=%v", page, err)
	}
	item := page.Items[0]
	if item.SerialNumber != 42 || item.Location.Latitude != 24.71 || item.BillFile.URL != "https://files/bill.pdf" {
		t.Fatalf("unexpected recourse order: %+v", item)
	}
	if item.UserID == nil || *item.UserID != "u9" {
		t.Fatalf("unexpected user id: %v", item.UserID)
	}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE recourse_orders SET bill_file=$2")).WithArgs("r1", pgxmockv3.AnyArg()).
		WillReturnRows(recourseOrderRows(now, "u9"))
	mock.ExpectCommit()
	if _, err := repo.AttachBill(context.Background(), "r1", model.AttachedFile{URL: "https://files/bill.pdf"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}
