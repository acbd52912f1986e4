package usecase

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"myresume-backend/internal/domain"
	"myresume-backend/pkg/apperror"
	"myresume-backend/pkg/security"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// MaxResumeSize caps uploads at 5MB.
const MaxResumeSize = 5 << 20

type resumeUsecase struct {
	resumeRepo domain.ResumeRepository
	userRepo   domain.UserRepository
	store      domain.ObjectStore
	validate   *validator.Validate
}

func NewResumeUsecase(resumeRepo domain.ResumeRepository, userRepo domain.UserRepository,
	store domain.ObjectStore, validate *validator.Validate) domain.ResumeUsecase {
	return &resumeUsecase{
		resumeRepo: resumeRepo,
		userRepo:   userRepo,
		store:      store,
		validate:   validate,
	}
}

// Upload validates the file, stores the bytes under a per-user namespace and
// persists the record. The repository decides activation and slug copy
// transactionally.
func (u *resumeUsecase) Upload(ctx context.Context, userID, originalName string, data []byte) (*domain.Resume, error) {
	if len(data) == 0 {
		return nil, apperror.BadRequest("No file uploaded")
	}
	if len(data) > MaxResumeSize {
		return nil, apperror.BadRequest("File exceeds the 5MB limit")
	}

	check := security.ValidateResumeFile(originalName, data)
	if !check.Valid {
		return nil, apperror.BadRequest("Only PDF/DOC/DOCX files are allowed: " + check.Error)
	}

	key := fmt.Sprintf("resumes/%s/%s%s", userID, uuid.NewString(), check.Extension)
	contentType := security.ContentTypeForExtension(check.Extension)

	url, err := u.store.Upload(ctx, key, contentType, bytes.NewReader(data))
	if err != nil {
		return nil, apperror.ExternalService("Upload failed", err)
	}

	resume := &domain.Resume{
		ID:           uuid.NewString(),
		UserID:       userID,
		URL:          url,
		StorageKey:   key,
		OriginalName: filepath.Base(originalName),
		CreatedAt:    time.Now(),
	}
	if err := u.resumeRepo.Create(ctx, resume); err != nil {
		return nil, err
	}
	return resume, nil
}

func (u *resumeUsecase) ListForUser(ctx context.Context, userID string) ([]domain.Resume, error) {
	return u.resumeRepo.ListByUser(ctx, userID)
}

func (u *resumeUsecase) SetActive(ctx context.Context, userID, resumeID string) (*domain.Resume, error) {
	// Ownership is enforced inside the repository's conditional update; ids
	// of other users' resumes come back as NotFound.
	return u.resumeRepo.SetActive(ctx, userID, resumeID)
}

// Delete removes the backing storage object first and aborts the record
// delete when that fails, so no record is left pointing at absent bytes.
func (u *resumeUsecase) Delete(ctx context.Context, userID, resumeID string) error {
	resume, err := u.resumeRepo.GetByIDForUser(ctx, resumeID, userID)
	if err != nil {
		return err
	}
	if resume == nil {
		return apperror.NotFound("Resume not found")
	}

	if err := u.store.Delete(ctx, resume.StorageKey); err != nil {
		return apperror.ExternalService("Failed to delete resume file; please retry", err)
	}
	return u.resumeRepo.Delete(ctx, userID, resumeID)
}

// UpdateSlug applies the slug to all of the user's resumes: the slug is a
// per-user property, stored per row.
func (u *resumeUsecase) UpdateSlug(ctx context.Context, userID, slug string) ([]domain.Resume, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, apperror.BadRequest("Slug is required")
	}
	if err := u.validate.Var(slug, "slug"); err != nil {
		return nil, apperror.BadRequest("Slug may only contain lowercase letters, digits and hyphens")
	}
	return u.resumeRepo.UpdateSlug(ctx, userID, slug)
}

func (u *resumeUsecase) Download(ctx context.Context, userID, resumeID string) (string, error) {
	resume, err := u.resumeRepo.GetByIDForUser(ctx, resumeID, userID)
	if err != nil {
		return "", err
	}
	if resume == nil {
		return "", apperror.NotFound("Resume not found")
	}
	return resume.URL, nil
}

// ResolvePublic translates a username into the owner's active resume in a
// single call; there is no separate existence probe to race against.
func (u *resumeUsecase) ResolvePublic(ctx context.Context, username string) (*domain.PublicResume, error) {
	user, err := u.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("User not found")
	}

	resume, err := u.resumeRepo.GetActiveByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if resume == nil {
		return nil, apperror.NotFound("No active resume")
	}

	return &domain.PublicResume{
		User: domain.PublicUser{
			Username: user.Username,
			Email:    user.Email,
		},
		Resume: resume,
	}, nil
}

// CheckSlugExists reports whether any resume of the user carries the slug;
// the resume does not have to be the active one.
func (u *resumeUsecase) CheckSlugExists(ctx context.Context, username, slug string) (bool, error) {
	user, err := u.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	if user == nil {
		return false, nil
	}
	return u.resumeRepo.SlugExists(ctx, user.ID, slug)
}
