package usecase

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"myresume-backend/internal/domain"
	"myresume-backend/pkg/apperror"
	"myresume-backend/pkg/logger"
)

type otpUsecase struct {
	otpRepo  domain.OTPRepository
	userRepo domain.UserRepository
	mailer   domain.OTPMailer
}

func NewOTPUsecase(otpRepo domain.OTPRepository, userRepo domain.UserRepository, mailer domain.OTPMailer) domain.OTPUsecase {
	return &otpUsecase{
		otpRepo:  otpRepo,
		userRepo: userRepo,
		mailer:   mailer,
	}
}

// generateCode returns a random 6-digit numeric code.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func (u *otpUsecase) issue(ctx context.Context, email, title string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return apperror.BadRequest("Email is required")
	}

	// Opportunistic purge; expiry is otherwise evaluated lazily at verify.
	if _, err := u.otpRepo.DeleteExpired(ctx); err != nil {
		logger.Log.Warn("failed to purge expired codes", "error", err)
	}

	code, err := generateCode()
	if err != nil {
		return apperror.Internal(err)
	}

	expiresAt := time.Now().Add(domain.OTPTTL)
	if err := u.otpRepo.Replace(ctx, email, code, expiresAt); err != nil {
		return err
	}

	// The code stays persisted on dispatch failure; the caller may resend.
	if err := u.mailer.SendOTP(email, code, title); err != nil {
		return apperror.ExternalService("Failed to send OTP email", err)
	}
	return nil
}

func (u *otpUsecase) Send(ctx context.Context, email string) error {
	return u.issue(ctx, email, "Verify Your Email")
}

// Resend is a fresh issuance; any prior code for the email is invalidated.
func (u *otpUsecase) Resend(ctx context.Context, email string) error {
	return u.issue(ctx, email, "Your New OTP Code")
}

// Verify consumes the code. Success also records the email as verified so
// account verification state can catch up (see auth usecase Register).
func (u *otpUsecase) Verify(ctx context.Context, email, code string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || code == "" {
		return apperror.BadRequest("Email and OTP required")
	}

	record, err := u.otpRepo.Find(ctx, email, code)
	if err != nil {
		return err
	}
	if record == nil {
		return apperror.BadRequest("Invalid OTP")
	}

	if time.Now().After(record.ExpiresAt) {
		if err := u.otpRepo.Delete(ctx, record.ID); err != nil {
			return err
		}
		return apperror.BadRequest("OTP expired")
	}

	// Single-use: consume before reporting success.
	if err := u.otpRepo.Delete(ctx, record.ID); err != nil {
		return err
	}

	updated, err := u.userRepo.MarkEmailVerified(ctx, email)
	if err != nil {
		return err
	}
	if !updated {
		// No account yet; remember the verification for registration.
		if err := u.userRepo.RecordEmailVerification(ctx, email); err != nil {
			return err
		}
	}
	return nil
}
