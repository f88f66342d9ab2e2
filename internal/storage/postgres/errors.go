package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	domainErrors "github.com/polkiloo/procurement/internal/domain/errors"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// constraintFields maps named constraints to the request field they guard.
var constraintFields = map[string]string{
	"uq_users_phone":            "phone",
	"uq_users_otp_reference":    "reference",
	"fk_orders_user":            "userId",
	"uq_recourse_serial_number": "serialNumber",
	"uq_class_fathers_name":     "fatherName",
	"uq_class_sons_name":        "sonName",
	"fk_class_sons_father":      "fatherName",
	"uq_materials_name":         "materialName",
	"uq_materials_serial":       "serialNumber",
	"fk_materials_father":       "classification",
	"fk_materials_son":          "classificationSon",
}

func constraintField(pgErr *pgconn.PgError) string {
	if field, ok := constraintFields[pgErr.ConstraintName]; ok {
		return field
	}
	return pgErr.ColumnName
}

// mapWriteError translates insert/update failures into domain errors.
func mapWriteError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domainErrors.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return &domainErrors.DuplicateError{Field: constraintField(pgErr)}
		case codeForeignKeyViolation:
			return &domainErrors.ReferenceError{Field: constraintField(pgErr)}
		}
	}
	return err
}

// mapDeleteError translates delete failures; a foreign key violation means the row is still referenced.
func mapDeleteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == codeForeignKeyViolation {
		return domainErrors.ErrInUse
	}
	return err
}

func mapReadError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domainErrors.ErrNotFound
	}
	return err
}

// expectAffected returns ErrNotFound when a statement touched no rows.
func expectAffected(tag pgconn.CommandTag) error {
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}
