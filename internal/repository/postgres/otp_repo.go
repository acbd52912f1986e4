package postgres

import (
	"context"
	"errors"
	"time"

	"myresume-backend/internal/domain"
	"myresume-backend/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type otpRepo struct {
	db *pgxpool.Pool
}

func NewOTPRepository(db *pgxpool.Pool) domain.OTPRepository {
	return &otpRepo{db: db}
}

// Replace removes every code held for the email before inserting the new
// one, keeping at most one live code per email.
func (r *otpRepo) Replace(ctx context.Context, email, code string, expiresAt time.Time) error {
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM otp_codes WHERE email = $1`, email); err != nil {
			return err
		}
		_, err := tx.Exec(ctx,
			`INSERT INTO otp_codes (email, code, expires_at) VALUES ($1, $2, $3)`,
			email, code, expiresAt)
		return err
	})
	if err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (r *otpRepo) Find(ctx context.Context, email, code string) (*domain.OTPCode, error) {
	query := `SELECT id, email, code, expires_at, created_at FROM otp_codes
              WHERE email = $1 AND code = $2`
	var otp domain.OTPCode
	err := r.db.QueryRow(ctx, query, email, code).Scan(
		&otp.ID, &otp.Email, &otp.Code, &otp.ExpiresAt, &otp.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.Internal(err)
	}
	return &otp, nil
}

func (r *otpRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM otp_codes WHERE id = $1`, id); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (r *otpRepo) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM otp_codes WHERE expires_at < now()`)
	if err != nil {
		return 0, apperror.Internal(err)
	}
	return tag.RowsAffected(), nil
}
