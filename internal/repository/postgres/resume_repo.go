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

type resumeRepo struct {
	db *pgxpool.Pool
}

func NewResumeRepository(db *pgxpool.Pool) domain.ResumeRepository {
	return &resumeRepo{db: db}
}

const resumeColumns = `id, user_id, url, storage_key, original_name, is_active, slug, created_at`

func scanResume(row pgx.Row) (*domain.Resume, error) {
	var res domain.Resume
	err := row.Scan(&res.ID, &res.UserID, &res.URL, &res.StorageKey,
		&res.OriginalName, &res.IsActive, &res.Slug, &res.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &res, nil
}

// Create inserts the resume inside a transaction: the user's first resume is
// auto-activated, later ones stay inactive and copy the active slug. The
// partial unique index on (user_id) WHERE is_active backstops the invariant
// under concurrent first uploads; on that conflict the insert is retried as
// inactive.
func (r *resumeRepo) Create(ctx context.Context, resume *domain.Resume) error {
	insert := `INSERT INTO resumes (id, user_id, url, storage_key, original_name, is_active, slug, created_at)
               VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		var count int
		var activeSlug *string
		query := `SELECT COUNT(*), MIN(slug) FILTER (WHERE is_active) FROM resumes WHERE user_id = $1`
		if err := tx.QueryRow(ctx, query, resume.UserID).Scan(&count, &activeSlug); err != nil {
			return err
		}

		resume.IsActive = count == 0
		if activeSlug != nil {
			resume.Slug = *activeSlug
		} else if resume.Slug == "" {
			resume.Slug = domain.DefaultSlug
		}

		_, err := tx.Exec(ctx, insert, resume.ID, resume.UserID, resume.URL, resume.StorageKey,
			resume.OriginalName, resume.IsActive, resume.Slug, resume.CreatedAt)
		return err
	})
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		// Lost the race for first-upload activation; insert as inactive.
		resume.IsActive = false
		if _, err := r.db.Exec(ctx, insert, resume.ID, resume.UserID, resume.URL, resume.StorageKey,
			resume.OriginalName, resume.IsActive, resume.Slug, resume.CreatedAt); err != nil {
			return apperror.Internal(err)
		}
		return nil
	}
	return apperror.Internal(err)
}

func (r *resumeRepo) GetByIDForUser(ctx context.Context, id, userID string) (*domain.Resume, error) {
	query := `SELECT ` + resumeColumns + ` FROM resumes WHERE id = $1 AND user_id = $2`
	return scanResume(r.db.QueryRow(ctx, query, id, userID))
}

func (r *resumeRepo) ListByUser(ctx context.Context, userID string) ([]domain.Resume, error) {
	query := `SELECT ` + resumeColumns + ` FROM resumes WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	defer rows.Close()

	resumes := []domain.Resume{}
	for rows.Next() {
		var res domain.Resume
		if err := rows.Scan(&res.ID, &res.UserID, &res.URL, &res.StorageKey,
			&res.OriginalName, &res.IsActive, &res.Slug, &res.CreatedAt); err != nil {
			return nil, apperror.Internal(err)
		}
		resumes = append(resumes, res)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Internal(err)
	}
	return resumes, nil
}

func (r *resumeRepo) GetActiveByUser(ctx context.Context, userID string) (*domain.Resume, error) {
	query := `SELECT ` + resumeColumns + ` FROM resumes WHERE user_id = $1 AND is_active`
	return scanResume(r.db.QueryRow(ctx, query, userID))
}

// SetActive deactivates all of the user's resumes and activates the target
// in one transaction, so no interleaving can observe zero or two active
// resumes for the user.
func (r *resumeRepo) SetActive(ctx context.Context, userID, id string) (*domain.Resume, error) {
	var activated *domain.Resume

	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`UPDATE resumes SET is_active = FALSE WHERE user_id = $1 AND is_active`, userID); err != nil {
			return err
		}

		row := tx.QueryRow(ctx,
			`UPDATE resumes SET is_active = TRUE WHERE id = $1 AND user_id = $2 RETURNING `+resumeColumns,
			id, userID)
		res, err := scanResume(row)
		if err != nil {
			return err
		}
		if res == nil {
			return apperror.NotFound("Resume not found")
		}
		activated = res
		return nil
	})
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperror.Internal(err)
	}
	return activated, nil
}

func (r *resumeRepo) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM resumes WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return apperror.Internal(err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("Resume not found")
	}
	return nil
}

func (r *resumeRepo) UpdateSlug(ctx context.Context, userID, slug string) ([]domain.Resume, error) {
	if _, err := r.db.Exec(ctx,
		`UPDATE resumes SET slug = $2 WHERE user_id = $1`, userID, slug); err != nil {
		return nil, apperror.Internal(err)
	}
	return r.ListByUser(ctx, userID)
}

func (r *resumeRepo) SlugExists(ctx context.Context, userID, slug string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM resumes WHERE user_id = $1 AND slug = $2)`
	var exists bool
	if err := r.db.QueryRow(ctx, query, userID, slug).Scan(&exists); err != nil {
		return false, apperror.Internal(err)
	}
	return exists, nil
}
