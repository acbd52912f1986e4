package postgres

import (
	"context"
	"errors"

	"myresume-backend/internal/domain"
	"myresume-backend/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgreSQL error codes
const (
	pgUniqueViolation = "23505"
)

type userRepo struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) domain.UserRepository {
	return &userRepo{db: db}
}

const userColumns = `id, username, email, password_hash, is_verified, created_at, updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.IsVerified, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (id, username, email, password_hash, is_verified, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.Exec(ctx, query,
		user.ID, user.Username, user.Email, user.PasswordHash, user.IsVerified, user.CreatedAt, user.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return apperror.Conflict("Username or Email already exists")
		}
		return apperror.Internal(err)
	}
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRow(ctx, query, id))
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = LOWER($1)`
	return scanUser(r.db.QueryRow(ctx, query, email))
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(username) = LOWER($1)`
	return scanUser(r.db.QueryRow(ctx, query, username))
}

func (r *userRepo) ExistsByIdentifier(ctx context.Context, identifier string) (bool, error) {
	query := `SELECT EXISTS (
                  SELECT 1 FROM users
                  WHERE LOWER(username) = LOWER($1) OR LOWER(email) = LOWER($1)
              )`
	var exists bool
	if err := r.db.QueryRow(ctx, query, identifier).Scan(&exists); err != nil {
		return false, apperror.Internal(err)
	}
	return exists, nil
}

func (r *userRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	query := `UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id, passwordHash)
	if err != nil {
		return apperror.Internal(err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("User not found")
	}
	return nil
}

func (r *userRepo) MarkEmailVerified(ctx context.Context, email string) (bool, error) {
	query := `UPDATE users SET is_verified = TRUE, updated_at = now() WHERE LOWER(email) = LOWER($1)`
	tag, err := r.db.Exec(ctx, query, email)
	if err != nil {
		return false, apperror.Internal(err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *userRepo) RecordEmailVerification(ctx context.Context, email string) error {
	query := `INSERT INTO email_verifications (email) VALUES (LOWER($1))
              ON CONFLICT (email) DO UPDATE SET verified_at = now()`
	if _, err := r.db.Exec(ctx, query, email); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (r *userRepo) HasVerifiedEmail(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM email_verifications WHERE email = LOWER($1))`
	var exists bool
	if err := r.db.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, apperror.Internal(err)
	}
	return exists, nil
}
