package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/polkiloo/procurement/internal/domain/model"
)

const (
	orderMetaColumns = `id, attached_file, status_order, status_user, user_id, created_at, updated_at`
	requesterColumns = `first_name, last_name, phone, email, company_name, date_of_company`
)

// orderTable describes how one order collection is stored.
type orderTable[T any] struct {
	name         string
	searchColumn string
	columns      string
	scan         func(pgx.Row) (*T, error)
}

// scanOrder reads the shared meta columns followed by rest.
func scanOrder(row pgx.Row, meta *model.OrderMeta, rest ...any) error {
	var file []byte
	dest := append([]any{&meta.ID, &file, &meta.StatusOrder, &meta.StatusUser, &meta.UserID,
		&meta.CreatedAt, &meta.UpdatedAt}, rest...)
	if err := row.Scan(dest...); err != nil {
		return err
	}
	return decodeJSON(file, &meta.AttachedFile)
}

func requesterDest(r *model.Requester) []any {
	return []any{&r.FirstName, &r.LastName, &r.Phone, &r.Email, &r.CompanyName, &r.DateOfCompany}
}

func requesterArgs(r model.Requester) []any {
	return []any{r.FirstName, r.LastName, r.Phone, r.Email, r.CompanyName, r.DateOfCompany}
}

// insertOrder stores an order row and its outbox messages in one transaction.
func insertOrder(ctx context.Context, s *Storage, table string, columns []string, meta *model.OrderMeta, values []any, msgs []model.OutboxMessage) error {
	file, err := encodeJSON(meta.AttachedFile)
	if err != nil {
		return err
	}

	id := s.ids.NewID()
	cols := append([]string{"id", "attached_file", "status_order", "status_user", "user_id"}, columns...)
	args := append([]any{id, file, string(meta.StatusOrder), string(meta.StatusUser), meta.UserID}, values...)

	placeholders := make([]string, len(args))
	for i := range args {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s) RETURNING created_at, updated_at`,
		table, strings.Join(cols, ", "), strings.Join(placeholders, ", "))

	return s.WithinTransaction(ctx, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, query, args...).Scan(&meta.CreatedAt, &meta.UpdatedAt); err != nil {
			return mapWriteError(err)
		}
		meta.ID = id
		return s.enqueue(ctx, tx, msgs)
	})
}

func getOrder[T any](ctx context.Context, q querier, t orderTable[T], id string) (*T, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id=$1`, t.columns, t.name)
	order, err := t.scan(q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapReadError(err)
	}
	return order, nil
}

func listOrders[T any](ctx context.Context, q querier, t orderTable[T], filter model.OrderFilter) (model.Page[T], error) {
	cond := &conditions{}
	if filter.UserID != "" {
		cond.scope("user_id = $%d", filter.UserID)
	}
	if filter.Search != "" {
		cond.add(t.searchColumn+" ILIKE $%d", containsPattern(filter.Search))
	}
	if filter.Status != "" {
		cond.add("status_order = $%d", string(filter.Status))
	}

	page := model.Page[T]{Items: []T{}}
	var err error
	if page.Total, page.FilterNum, err = countPage(ctx, q, t.name, cond); err != nil {
		return model.Page[T]{}, err
	}

	tail, args := pageClause(cond, "created_at", filter.Page)
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s %s`, t.columns, t.name, cond.where(), tail)
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return model.Page[T]{}, err
	}
	defer rows.Close()

	for rows.Next() {
		order, err := t.scan(rows)
		if err != nil {
			return model.Page[T]{}, err
		}
		page.Items = append(page.Items, *order)
	}
	if err := rows.Err(); err != nil {
		return model.Page[T]{}, err
	}
	return page, nil
}

// updateOrder applies set (a SQL assignment list using $2..) to the order id and enqueues msgs atomically.
func updateOrder[T any](ctx context.Context, s *Storage, t orderTable[T], set string, args []any, msgs []model.OutboxMessage) (*T, error) {
	query := fmt.Sprintf(`UPDATE %s SET %s, updated_at=NOW() WHERE id=$1 RETURNING %s`, t.name, set, t.columns)
	var order *T
	err := s.WithinTransaction(ctx, func(tx pgx.Tx) error {
		var err error
		if order, err = t.scan(tx.QueryRow(ctx, query, args...)); err != nil {
			return mapWriteError(err)
		}
		return s.enqueue(ctx, tx, msgs)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// --- MaterialOrderRepository implementation ---

type materialOrderRepository struct {
	storage *Storage
}

var materialOrders = orderTable[model.MaterialOrder]{
	name:         "material_orders",
	searchColumn: "first_name",
	columns:      orderMetaColumns + ", " + requesterColumns + ", materials, project_name, note_for_quantity, description",
	scan: func(row pgx.Row) (*model.MaterialOrder, error) {
		var o model.MaterialOrder
		rest := append(requesterDest(&o.Requester), &o.Materials, &o.ProjectName, &o.NoteForQuantity, &o.Description)
		if err := scanOrder(row, &o.OrderMeta, rest...); err != nil {
			return nil, err
		}
		return &o, nil
	},
}

func (r *materialOrderRepository) Create(ctx context.Context, order *model.MaterialOrder, msgs ...model.OutboxMessage) error {
	materials := order.Materials
	if materials == nil {
		materials = []string{}
	}
	columns := []string{"first_name", "last_name", "phone", "email", "company_name", "date_of_company",
		"materials", "project_name", "note_for_quantity", "description"}
	values := append(requesterArgs(order.Requester), materials, order.ProjectName, order.NoteForQuantity, order.Description)
	return insertOrder(ctx, r.storage, materialOrders.name, columns, &order.OrderMeta, values, msgs)
}

func (r *materialOrderRepository) GetByID(ctx context.Context, id string) (*model.MaterialOrder, error) {
	return getOrder(ctx, r.storage.pool, materialOrders, id)
}

func (r *materialOrderRepository) List(ctx context.Context, filter model.OrderFilter) (model.Page[model.MaterialOrder], error) {
	return listOrders(ctx, r.storage.pool, materialOrders, filter)
}

func (r *materialOrderRepository) UpdateStatus(ctx context.Context, id string, status model.OrderStatus, msgs ...model.OutboxMessage) (*model.MaterialOrder, error) {
	return updateOrder(ctx, r.storage, materialOrders, "status_order=$2", []any{id, string(status)}, msgs)
}

// --- FinanceOrderRepository implementation ---

type financeOrderRepository struct {
	storage *Storage
}

var financeOrders = orderTable[model.FinanceOrder]{
	name:         "finance_orders",
	searchColumn: "first_name",
	columns:      orderMetaColumns + ", " + requesterColumns + ", project_name, last_year_revenue, required_amount, description",
	scan: func(row pgx.Row) (*model.FinanceOrder, error) {
		var o model.FinanceOrder
		rest := append(requesterDest(&o.Requester), &o.ProjectName, &o.LastYearRevenue, &o.RequiredAmount, &o.Description)
		if err := scanOrder(row, &o.OrderMeta, rest...); err != nil {
			return nil, err
		}
		return &o, nil
	},
}

func (r *financeOrderRepository) Create(ctx context.Context, order *model.FinanceOrder, msgs ...model.OutboxMessage) error {
	columns := []string{"first_name", "last_name", "phone", "email", "company_name", "date_of_company",
		"project_name", "last_year_revenue", "required_amount", "description"}
	values := append(requesterArgs(order.Requester), order.ProjectName, order.LastYearRevenue, order.RequiredAmount, order.Description)
	return insertOrder(ctx, r.storage, financeOrders.name, columns, &order.OrderMeta, values, msgs)
}

func (r *financeOrderRepository) GetByID(ctx context.Context, id string) (*model.FinanceOrder, error) {
	return getOrder(ctx, r.storage.pool, financeOrders, id)
}

func (r *financeOrderRepository) List(ctx context.Context, filter model.OrderFilter) (model.Page[model.FinanceOrder], error) {
	return listOrders(ctx, r.storage.pool, financeOrders, filter)
}

func (r *financeOrderRepository) UpdateStatus(ctx context.Context, id string, status model.OrderStatus, msgs ...model.OutboxMessage) (*model.FinanceOrder, error) {
	return updateOrder(ctx, r.storage, financeOrders, "status_order=$2", []any{id, string(status)}, msgs)
}

// --- QualificationOrderRepository implementation ---

type qualificationOrderRepository struct {
	storage *Storage
}

var qualificationOrders = orderTable[model.QualificationOrder]{
	name:         "qualification_orders",
	searchColumn: "first_name",
	columns:      orderMetaColumns + ", " + requesterColumns + ", last_year_revenue, required_amount, description",
	scan: func(row pgx.Row) (*model.QualificationOrder, error) {
		var o model.QualificationOrder
		rest := append(requesterDest(&o.Requester), &o.LastYearRevenue, &o.RequiredAmount, &o.Description)
		if err := scanOrder(row, &o.OrderMeta, rest...); err != nil {
			return nil, err
		}
		return &o, nil
	},
}

func (r *qualificationOrderRepository) Create(ctx context.Context, order *model.QualificationOrder, msgs ...model.OutboxMessage) error {
	columns := []string{"first_name", "last_name", "phone", "email", "company_name", "date_of_company",
		"last_year_revenue", "required_amount", "description"}
	values := append(requesterArgs(order.Requester), order.LastYearRevenue, order.RequiredAmount, order.Description)
	return insertOrder(ctx, r.storage, qualificationOrders.name, columns, &order.OrderMeta, values, msgs)
}

func (r *qualificationOrderRepository) GetByID(ctx context.Context, id string) (*model.QualificationOrder, error) {
	return getOrder(ctx, r.storage.pool, qualificationOrders, id)
}

func (r *qualificationOrderRepository) List(ctx context.Context, filter model.OrderFilter) (model.Page[model.QualificationOrder], error) {
	return listOrders(ctx, r.storage.pool, qualificationOrders, filter)
}

func (r *qualificationOrderRepository) UpdateStatus(ctx context.Context, id string, status model.OrderStatus, msgs ...model.OutboxMessage) (*model.QualificationOrder, error) {
	return updateOrder(ctx, r.storage, qualificationOrders, "status_order=$2", []any{id, string(status)}, msgs)
}

// --- RecourseOrderRepository implementation ---

type recourseOrderRepository struct {
	storage *Storage
}

var recourseOrders = orderTable[model.RecourseOrder]{
	name:         "recourse_orders",
	searchColumn: "recourse_name",
	columns: orderMetaColumns + `, recourse_name, recourse_phone, client_name, client_phone, serial_number, project_name,
        date_of_project, bill_file, materials, payment_check, advance, upon_delivery, after_delivery, country_name,
        longitude, latitude, street, country, post_address`,
	scan: func(row pgx.Row) (*model.RecourseOrder, error) {
		var (
			o    model.RecourseOrder
			bill []byte
		)
		err := scanOrder(row, &o.OrderMeta, &o.RecourseName, &o.RecoursePhone, &o.ClientName, &o.ClientPhone,
			&o.SerialNumber, &o.ProjectName, &o.DateOfProject, &bill, &o.Materials, &o.PaymentCheck, &o.Advance,
			&o.UponDelivery, &o.AfterDelivery, &o.CountryName, &o.Location.Longitude, &o.Location.Latitude,
			&o.Street, &o.Country, &o.PostAddress)
		if err != nil {
			return nil, err
		}
		if err := decodeJSON(bill, &o.BillFile); err != nil {
			return nil, err
		}
		return &o, nil
	},
}

func (r *recourseOrderRepository) Create(ctx context.Context, order *model.RecourseOrder, msgs ...model.OutboxMessage) error {
	bill, err := encodeJSON(order.BillFile)
	if err != nil {
		return err
	}
	materials := order.Materials
	if materials == nil {
		materials = []string{}
	}
	columns := []string{"recourse_name", "recourse_phone", "client_name", "client_phone", "serial_number",
		"project_name", "date_of_project", "bill_file", "materials", "payment_check", "advance", "upon_delivery",
		"after_delivery", "country_name", "longitude", "latitude", "street", "country", "post_address"}
	values := []any{order.RecourseName, order.RecoursePhone, order.ClientName, order.ClientPhone, order.SerialNumber,
		order.ProjectName, order.DateOfProject, bill, materials, string(order.PaymentCheck), order.Advance,
		order.UponDelivery, order.AfterDelivery, order.CountryName, order.Location.Longitude, order.Location.Latitude,
		order.Street, order.Country, order.PostAddress}
	return insertOrder(ctx, r.storage, recourseOrders.name, columns, &order.OrderMeta, values, msgs)
}

func (r *recourseOrderRepository) GetByID(ctx context.Context, id string) (*model.RecourseOrder, error) {
	return getOrder(ctx, r.storage.pool, recourseOrders, id)
}

func (r *recourseOrderRepository) List(ctx context.Context, filter model.OrderFilter) (model.Page[model.RecourseOrder], error) {
	return listOrders(ctx, r.storage.pool, recourseOrders, filter)
}

func (r *recourseOrderRepository) UpdateStatus(ctx context.Context, id string, status model.OrderStatus, msgs ...model.OutboxMessage) (*model.RecourseOrder, error) {
	return updateOrder(ctx, r.storage, recourseOrders, "status_order=$2", []any{id, string(status)}, msgs)
}

func (r *recourseOrderRepository) AttachBill(ctx context.Context, id string, file model.AttachedFile) (*model.RecourseOrder, error) {
	bill, err := encodeJSON(file)
	if err != nil {
		return nil, err
	}
	return updateOrder(ctx, r.storage, recourseOrders, "bill_file=$2", []any{id, bill}, nil)
}
