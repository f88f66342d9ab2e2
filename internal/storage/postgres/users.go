package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/polkiloo/procurement/internal/domain/model"
)

type userRepository struct {
	storage *Storage
}

const userColumns = `id, first_name, last_name, phone, email, company_name, date_of_company, role, profile, created_at, updated_at`

func scanUser(row pgx.Row, extra ...any) (*model.User, error) {
	var (
		u       model.User
		profile []byte
	)
	dest := append([]any{&u.ID, &u.FirstName, &u.LastName, &u.Phone, &u.Email, &u.CompanyName,
		&u.DateOfCompany, &u.Role, &profile, &u.CreatedAt, &u.UpdatedAt}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	if err := decodeJSON(profile, &u.Profile); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	profile, err := encodeJSON(user.Profile)
	if err != nil {
		return err
	}

	const query = `INSERT INTO users (id, first_name, last_name, phone, email, company_name, date_of_company, role, profile)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
                   RETURNING created_at, updated_at`
	id := r.storage.ids.NewID()
	err = r.storage.pool.QueryRow(ctx, query, id, user.FirstName, user.LastName, user.Phone, user.Email,
		user.CompanyName, user.DateOfCompany, string(user.Role), profile).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return mapWriteError(err)
	}
	user.ID = id
	return nil
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	profile, err := encodeJSON(user.Profile)
	if err != nil {
		return err
	}

	const query = `UPDATE users SET first_name=$2, last_name=$3, phone=$4, email=$5, company_name=$6,
                   date_of_company=$7, role=$8, profile=$9, updated_at=NOW()
                   WHERE id=$1
                   RETURNING created_at, updated_at`
	err = r.storage.pool.QueryRow(ctx, query, user.ID, user.FirstName, user.LastName, user.Phone, user.Email,
		user.CompanyName, user.DateOfCompany, string(user.Role), profile).Scan(&user.CreatedAt, &user.UpdatedAt)
	return mapWriteError(err)
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM users WHERE id=$1`, id)
	if err != nil {
		return mapDeleteError(err)
	}
	return expectAffected(tag)
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	u, err := scanUser(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapReadError(err)
	}
	return u, nil
}

func (r *userRepository) GetByPhone(ctx context.Context, phone string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE phone=$1`
	u, err := scanUser(r.storage.pool.QueryRow(ctx, query, phone))
	if err != nil {
		return nil, mapReadError(err)
	}
	return u, nil
}

func (r *userRepository) List(ctx context.Context, filter model.UserFilter) ([]model.User, error) {
	cond := &conditions{}
	if filter.Role != "" {
		cond.add("role = $%d", string(filter.Role))
	}
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + cond.where() + ` ORDER BY created_at DESC`

	rows, err := r.storage.pool.Query(ctx, query, cond.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]model.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *userRepository) SetOTP(ctx context.Context, userID string, challenge model.OTPChallenge, msgs ...model.OutboxMessage) error {
	const query = `UPDATE users SET otp_hash=$2, otp_reference=$3, otp_expires_at=$4, otp_attempts=0, updated_at=NOW() WHERE id=$1`
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, query, userID, challenge.CodeHash, challenge.Reference, challenge.ExpiresAt)
		if err != nil {
			return mapWriteError(err)
		}
		if err := expectAffected(tag); err != nil {
			return err
		}
		return r.storage.enqueue(ctx, tx, msgs)
	})
}

func (r *userRepository) GetByOTPReference(ctx context.Context, reference string) (*model.User, error) {
	query := `SELECT ` + userColumns + `, otp_hash, otp_reference, otp_expires_at FROM users WHERE otp_reference=$1`
	var (
		hash, ref *string
		expiresAt *time.Time
	)
	u, err := scanUser(r.storage.pool.QueryRow(ctx, query, reference), &hash, &ref, &expiresAt)
	if err != nil {
		return nil, mapReadError(err)
	}
	if hash != nil && ref != nil && expiresAt != nil {
		u.OTP = &model.OTPChallenge{Reference: *ref, CodeHash: *hash, ExpiresAt: *expiresAt}
	}
	return u, nil
}

func (r *userRepository) ConsumeOTP(ctx context.Context, userID, reference string) (bool, error) {
	const query = `UPDATE users SET otp_hash=NULL, otp_reference=NULL, otp_expires_at=NULL, otp_attempts=0, updated_at=NOW()
                   WHERE id=$1 AND otp_reference=$2`
	tag, err := r.storage.pool.Exec(ctx, query, userID, reference)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *userRepository) RegisterOTPAttempt(ctx context.Context, userID, reference string, limit int) (bool, error) {
	const query = `UPDATE users SET otp_attempts=otp_attempts+1,
                   otp_hash=CASE WHEN otp_attempts >= $3 THEN NULL ELSE otp_hash END,
                   otp_reference=CASE WHEN otp_attempts >= $3 THEN NULL ELSE otp_reference END,
                   otp_expires_at=CASE WHEN otp_attempts >= $3 THEN NULL ELSE otp_expires_at END,
                   updated_at=NOW()
                   WHERE id=$1 AND otp_reference=$2
                   RETURNING otp_attempts`
	var attempts int
	err := r.storage.pool.QueryRow(ctx, query, userID, reference, limit).Scan(&attempts)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return attempts <= limit, nil
}
