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
	fatherRowColumns   = []string{"id", "father_name", "created_at", "updated_at"}
	sonRowColumns      = []string{"id", "father_id", "son_name", "created_at", "updated_at"}
	materialRowColumns = []string{"id", "material_name", "serial_number", "classification_id", "father_name",
		"classification_son_id", "attached_file", "created_at", "updated_at"}
)

func TestClassificationFathers(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &classificationRepository{storage: storage}

	now := time.Now()
	father := &model.ClassFather{FatherName: "Steel"}
	mock.ExpectQuery("INSERT INTO class_fathers").WithArgs("doc-1", "Steel").
		WillReturnRows(pgxmockv3.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	if err := repo.CreateFather(context.Background(), father); err != nil || father.ID != "doc-1" {
		t.Fatalf("unexpected result: %+v err=%v", father, err)
	}

	mock.ExpectQuery("INSERT INTO class_fathers").WithArgs("doc-1", "Steel").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "uq_class_fathers_name"})
	err := repo.CreateFather(context.Background(), &model.ClassFather{FatherName: "Steel"})
	var dup *domainErrors.DuplicateError
	if !errors.As(err, &dup) || dup.Field != "fatherName" {
		t.Fatalf("expected fatherName duplicate, got %v", err)
	}

	mock.ExpectQuery("UPDATE class_fathers SET father_name").WithArgs("f1", "Iron").WillReturnError(pgx.ErrNoRows)
	if err := repo.UpdateFather(context.Background(), &model.ClassFather{ID: "f1", FatherName: "Iron"}); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectExec("DELETE FROM class_fathers").WithArgs("f1").
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "fk_class_sons_father"})
	if err := repo.DeleteFather(context.Background(), "f1"); !errors.Is(err, domainErrors.ErrInUse) {
		t.Fatalf("expected in use, got %v", err)
	}

	mock.ExpectExec("DELETE FROM class_fathers").WithArgs("f2").WillReturnResult(pgxmockv3.NewResult("DELETE", 1))
	if err := repo.DeleteFather(context.Background(), "f2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectQuery("FROM class_fathers WHERE id=").WithArgs("f1").
		WillReturnRows(pgxmockv3.NewRows(fatherRowColumns).AddRow("f1", "Steel", now, now))
	mock.ExpectQuery(regexp.QuoteMeta("FROM class_sons WHERE father_id = ANY($1)")).WithArgs([]string{"f1"}).
		WillReturnRows(pgxmockv3.NewRows(sonRowColumns).AddRow("s1", "f1", "Rebar", now, now))
	got, err := repo.GetFather(context.Background(), "f1")
	if err != nil || len(got.Sons) != 1 || got.Sons[0].SonName != "Rebar" {
		t.Fatalf("unexpected father: %+v err=%v", got, err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestClassificationListFathersEmbedsSons(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &classificationRepository{storage: storage}

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("FILTER (WHERE father_name ILIKE $1) FROM class_fathers")).WithArgs("%st%").
		WillReturnRows(pgxmockv3.NewRows([]string{"count", "count"}).AddRow(5, 2))
	mock.ExpectQuery(regexp.QuoteMeta("FROM class_fathers WHERE father_name ILIKE $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3")).
		WithArgs("%st%", 10, 0).
		WillReturnRows(pgxmockv3.NewRows(fatherRowColumns).
			AddRow("f1", "Steel", now, now).
			AddRow("f2", "Stone", now, now))
	mock.ExpectQuery("FROM class_sons WHERE father_id").WithArgs([]string{"f1", "f2"}).
		WillReturnRows(pgxmockv3.NewRows(sonRowColumns).
			AddRow("s1", "f1", "Rebar", now, now).
			AddRow("s2", "f1", "Beam", now, now))

	page, err := repo.ListFathers(context.Background(), model.CatalogFilter{Search: "st"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Total != 5 || page.FilterNum != 2 || len(page.Items) != 2 {
		t.Fatalf("unexpected page: %+v", page)
	}
	if len(page.Items[0].Sons) != 2 || page.Items[1].Sons == nil || len(page.Items[1].Sons) != 0 {
		t.Fatalf("unexpected sons: %+v / %+v", page.Items[0].Sons, page.Items[1].Sons)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestClassificationSons(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &classificationRepository{storage: storage}

	now := time.Now()
	mock.ExpectQuery("INSERT INTO class_sons").WithArgs("doc-1", "missing", "Rebar").
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "fk_class_sons_father"})
	err := repo.CreateSon(context.Background(), &model.ClassSon{FatherID: "missing", SonName: "Rebar"})
	var ref *domainErrors.ReferenceError
	if !errors.As(err, &ref) || ref.Field != "fatherName" {
		t.Fatalf("expected fatherName reference error, got %v", err)
	}

	mock.ExpectQuery("INSERT INTO class_sons").WithArgs("doc-1", "f1", "Rebar").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "uq_class_sons_name"})
	err = repo.CreateSon(context.Background(), &model.ClassSon{FatherID: "f1", SonName: "Rebar"})
	var dup *domainErrors.DuplicateError
	if !errors.As(err, &dup) || dup.Field != "sonName" {
		t.Fatalf("expected sonName duplicate, got %v", err)
	}

	mock.ExpectQuery("UPDATE class_sons SET father_id").WithArgs("s1", "f1", "Beam").
		WillReturnRows(pgxmockv3.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	if err := repo.UpdateSon(context.Background(), &model.ClassSon{ID: "s1", FatherID: "f1", SonName: "Beam"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectExec("DELETE FROM class_sons").WithArgs("s1").
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "fk_materials_son"})
	if err := repo.DeleteSon(context.Background(), "s1"); !errors.Is(err, domainErrors.ErrInUse) {
		t.Fatalf("expected in use, got %v", err)
	}

	mock.ExpectQuery("FROM class_sons WHERE id=").WithArgs("s9").WillReturnError(pgx.ErrNoRows)
	if _, err := repo.GetSon(context.Background(), "s9"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectQuery("FROM class_sons ORDER BY created_at DESC").
		WillReturnRows(pgxmockv3.NewRows(sonRowColumns).AddRow("s1", "f1", "Beam", now, now))
	sons, err := repo.ListSons(context.Background())
	if err != nil || len(sons) != 1 {
		t.Fatalf("unexpected sons: %v err=%v", sons, err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestMaterialRepository(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &materialRepository{storage: storage}

	now := time.Now()
	son := "s1"
	material := &model.Material{MaterialName: "Rebar 12mm", SerialNumber: "RB-12", ClassificationID: "f1", ClassificationSonID: &son}

	mock.ExpectQuery("INSERT INTO materials").WithArgs(anyArgs(6)...).
		WillReturnRows(pgxmockv3.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	if err := repo.Create(context.Background(), material); err != nil || material.ID != "doc-1" {
		t.Fatalf("unexpected result: %+v err=%v", material, err)
	}

	mock.ExpectQuery("INSERT INTO materials").WithArgs(anyArgs(6)...).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "fk_materials_father"})
	err := repo.Create(context.Background(), &model.Material{ClassificationID: "nope"})
	var ref *domainErrors.ReferenceError
	if !errors.As(err, &ref) || ref.Field != "classification" {
		t.Fatalf("expected classification reference error, got %v", err)
	}

	mock.ExpectQuery("UPDATE materials SET material_name").WithArgs(anyArgs(6)...).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "uq_materials_name"})
	err = repo.Update(context.Background(), &model.Material{ID: "m1"})
	var dup *domainErrors.DuplicateError
	if !errors.As(err, &dup) || dup.Field != "materialName" {
		t.Fatalf("expected materialName duplicate, got %v", err)
	}

	mock.ExpectExec("DELETE FROM materials").WithArgs("m9").WillReturnResult(pgxmockv3.NewResult("DELETE", 0))
	if err := repo.Delete(context.Background(), "m9"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	materialRow := []any{"m1", "Rebar 12mm", "RB-12", "f1", "Steel", &son, []byte(`{"url":"u","publicId":"p"}`), now, now}
	mock.ExpectQuery(regexp.QuoteMeta("LEFT JOIN class_fathers f ON f.id = m.classification_id WHERE m.id=$1")).WithArgs("m1").
		WillReturnRows(pgxmockv3.NewRows(materialRowColumns).AddRow(materialRow...))
	got, err := repo.GetByID(context.Background(), "m1")
	if err != nil || got.ClassificationName != "Steel" || got.AttachedFile.PublicID == nil || *got.AttachedFile.PublicID != "p" {
		t.Fatalf("unexpected material: %+v err=%v", got, err)
	}

	list, err := repo.ListByIDs(context.Background(), nil)
	if err != nil || list == nil || len(list) != 0 {
		t.Fatalf("expected empty list without query, got %v err=%v", list, err)
	}

	mock.ExpectQuery(regexp.QuoteMeta("WHERE m.id = ANY($1)")).WithArgs([]string{"m1"}).
		WillReturnRows(pgxmockv3.NewRows(materialRowColumns).AddRow(materialRow...))
	if list, err := repo.ListByIDs(context.Background(), []string{"m1"}); err != nil || len(list) != 1 {
		t.Fatalf("unexpected list: %v err=%v", list, err)
	}

	mock.ExpectQuery(regexp.QuoteMeta("FILTER (WHERE material_name ILIKE $1) FROM materials")).WithArgs("%bar%").
		WillReturnRows(pgxmockv3.NewRows([]string{"count", "count"}).AddRow(4, 1))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE m.material_name ILIKE $1 ORDER BY m.created_at DESC LIMIT $2 OFFSET $3")).
		WithArgs("%bar%", 10, 0).
		WillReturnRows(pgxmockv3.NewRows(materialRowColumns).AddRow(materialRow...))
	page, err := repo.List(context.Background(), model.CatalogFilter{Search: "bar"})
	if err != nil || page.Total != 4 || page.FilterNum != 1 || len(page.Items) != 1 {
		t.Fatalf("unexpected page: %+v err=%v", page, err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}
