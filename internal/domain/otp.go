package domain

import (
	"context"
	"time"
)

// OTPTTL is how long a one-time code stays valid.
const OTPTTL = 5 * time.Minute

type OTPCode struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Code      string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

type OTPRepository interface {
	// Replace deletes any live codes for the email and persists the new
	// one, so at most one code per email is live by construction.
	Replace(ctx context.Context, email, code string, expiresAt time.Time) error
	// Find returns the exact (email, code) record, or nil when absent.
	Find(ctx context.Context, email, code string) (*OTPCode, error)
	Delete(ctx context.Context, id int64) error
	// DeleteExpired purges codes past their expiry; called opportunistically.
	DeleteExpired(ctx context.Context) (int64, error)
}

// OTPMailer dispatches a one-time code to an email address.
type OTPMailer interface {
	SendOTP(to, code, title string) error
}

type OTPUsecase interface {
	Send(ctx context.Context, email string) error
	Resend(ctx context.Context, email string) error
	Verify(ctx context.Context, email, code string) error
}
