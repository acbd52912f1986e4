package domain

import (
	"context"
	"time"
)

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsVerified   bool      `json:"is_verified"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	// ExistsByIdentifier matches username OR email, case-insensitively.
	ExistsByIdentifier(ctx context.Context, identifier string) (bool, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	// MarkEmailVerified flips is_verified for the user owning the email,
	// reporting whether such a user existed.
	MarkEmailVerified(ctx context.Context, email string) (bool, error)
	// RecordEmailVerification remembers that an email passed OTP
	// verification before any account exists for it.
	RecordEmailVerification(ctx context.Context, email string) error
	HasVerifiedEmail(ctx context.Context, email string) (bool, error)
}

type AuthUsecase interface {
	Register(ctx context.Context, username, email, password string) (*User, error)
	Login(ctx context.Context, email, password string) (*User, error)
	GetCurrentUser(ctx context.Context, id string) (*User, error)
	CheckUserExists(ctx context.Context, identifier string) (bool, error)
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
}
