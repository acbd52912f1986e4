package domain

import (
	"context"
	"io"
	"time"
)

// DefaultSlug is assigned to a user's resumes until they pick their own.
const DefaultSlug = "abcd"

type Resume struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	URL          string    `json:"url"`
	StorageKey   string    `json:"storage_key"`
	OriginalName string    `json:"original_name"`
	IsActive     bool      `json:"is_active"`
	Slug         string    `json:"slug"`
	CreatedAt    time.Time `json:"created_at"`
}

// PublicResume pairs a resolved active resume with the owning user's public
// identity, as returned by the public link endpoint.
type PublicResume struct {
	User   PublicUser `json:"user"`
	Resume *Resume    `json:"resume"`
}

type PublicUser struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type ResumeRepository interface {
	// Create inserts the resume, transactionally auto-activating it when it
	// is the user's first and copying the current active slug otherwise.
	Create(ctx context.Context, resume *Resume) error
	GetByIDForUser(ctx context.Context, id, userID string) (*Resume, error)
	ListByUser(ctx context.Context, userID string) ([]Resume, error)
	GetActiveByUser(ctx context.Context, userID string) (*Resume, error)
	// SetActive atomically deactivates all of the user's resumes and
	// activates the target, returning it. NotFound when not owned.
	SetActive(ctx context.Context, userID, id string) (*Resume, error)
	Delete(ctx context.Context, userID, id string) error
	// UpdateSlug applies the slug to all of the user's resumes.
	UpdateSlug(ctx context.Context, userID, slug string) ([]Resume, error)
	SlugExists(ctx context.Context, userID, slug string) (bool, error)
}

// ObjectStore is the external storage collaborator holding resume bytes.
type ObjectStore interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (url string, err error)
	Delete(ctx context.Context, key string) error
}

type ResumeUsecase interface {
	Upload(ctx context.Context, userID, originalName string, data []byte) (*Resume, error)
	ListForUser(ctx context.Context, userID string) ([]Resume, error)
	SetActive(ctx context.Context, userID, resumeID string) (*Resume, error)
	Delete(ctx context.Context, userID, resumeID string) error
	UpdateSlug(ctx context.Context, userID, slug string) ([]Resume, error)
	Download(ctx context.Context, userID, resumeID string) (string, error)
	ResolvePublic(ctx context.Context, username string) (*PublicResume, error)
	CheckSlugExists(ctx context.Context, username, slug string) (bool, error)
}
