package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"myresume-backend/internal/domain"
	"myresume-backend/internal/usecase"
	"myresume-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestOTPSend(t *testing.T) {
	ctx := context.Background()

	t.Run("Should persist a fresh 6-digit code and email it", func(t *testing.T) {
		otpRepo := new(MockOTPRepo)
		userRepo := new(MockUserRepo)
		mailer := new(MockMailer)
		uc := usecase.NewOTPUsecase(otpRepo, userRepo, mailer)

		var issued string
		otpRepo.On("DeleteExpired", ctx).Return(0, nil)
		otpRepo.On("Replace", ctx, "a@b.c", mock.MatchedBy(func(code string) bool {
			issued = code
			return len(code) == 6
		}), mock.AnythingOfType("time.Time")).Return(nil)
		mailer.On("SendOTP", "a@b.c", mock.MatchedBy(func(code string) bool {
			return code == issued
		}), "Verify Your Email").Return(nil)

		err := uc.Send(ctx, "A@B.c ")
		assert.NoError(t, err)
		otpRepo.AssertExpectations(t)
		mailer.AssertExpectations(t)
	})

	t.Run("Should keep the code when dispatch fails", func(t *testing.T) {
		otpRepo := new(MockOTPRepo)
		userRepo := new(MockUserRepo)
		mailer := new(MockMailer)
		uc := usecase.NewOTPUsecase(otpRepo, userRepo, mailer)

		otpRepo.On("DeleteExpired", ctx).Return(0, nil)
		otpRepo.On("Replace", ctx, "a@b.c", mock.Anything, mock.Anything).Return(nil)
		mailer.On("SendOTP", "a@b.c", mock.Anything, mock.Anything).Return(errors.New("smtp down"))

		err := uc.Send(ctx, "a@b.c")
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, http.StatusInternalServerError, appErr.Code)
		// Replace ran before dispatch, so the code survives for a resend.
		otpRepo.AssertCalled(t, "Replace", ctx, "a@b.c", mock.Anything, mock.Anything)
	})

	t.Run("Should use the resend subject on resend", func(t *testing.T) {
		otpRepo := new(MockOTPRepo)
		userRepo := new(MockUserRepo)
		mailer := new(MockMailer)
		uc := usecase.NewOTPUsecase(otpRepo, userRepo, mailer)

		otpRepo.On("DeleteExpired", ctx).Return(0, nil)
		otpRepo.On("Replace", ctx, "a@b.c", mock.Anything, mock.Anything).Return(nil)
		mailer.On("SendOTP", "a@b.c", mock.Anything, "Your New OTP Code").Return(nil)

		err := uc.Resend(ctx, "a@b.c")
		assert.NoError(t, err)
		mailer.AssertExpectations(t)
	})
}

func TestOTPVerify(t *testing.T) {
	ctx := context.Background()

	t.Run("Should consume the code and mark the account verified", func(t *testing.T) {
		otpRepo := new(MockOTPRepo)
		userRepo := new(MockUserRepo)
		uc := usecase.NewOTPUsecase(otpRepo, userRepo, new(MockMailer))

		record := &domain.OTPCode{ID: 7, Email: "a@b.c", ExpiresAt: time.Now().Add(time.Minute)}
		otpRepo.On("Find", ctx, "a@b.c", "123456").Return(record, nil)
		otpRepo.On("Delete", ctx, int64(7)).Return(nil)
		userRepo.On("MarkEmailVerified", ctx, "a@b.c").Return(true, nil)

		err := uc.Verify(ctx, "a@b.c", "123456")
		assert.NoError(t, err)
		otpRepo.AssertExpectations(t)
		userRepo.AssertNotCalled(t, "RecordEmailVerification")
	})

	t.Run("Should record the verification when no account exists yet", func(t *testing.T) {
		otpRepo := new(MockOTPRepo)
		userRepo := new(MockUserRepo)
		uc := usecase.NewOTPUsecase(otpRepo, userRepo, new(MockMailer))

		record := &domain.OTPCode{ID: 8, Email: "fresh@b.c", ExpiresAt: time.Now().Add(time.Minute)}
		otpRepo.On("Find", ctx, "fresh@b.c", "222222").Return(record, nil)
		otpRepo.On("Delete", ctx, int64(8)).Return(nil)
		userRepo.On("MarkEmailVerified", ctx, "fresh@b.c").Return(false, nil)
		userRepo.On("RecordEmailVerification", ctx, "fresh@b.c").Return(nil)

		err := uc.Verify(ctx, "fresh@b.c", "222222")
		assert.NoError(t, err)
		userRepo.AssertExpectations(t)
	})

	t.Run("Should reject a wrong code", func(t *testing.T) {
		otpRepo := new(MockOTPRepo)
		uc := usecase.NewOTPUsecase(otpRepo, new(MockUserRepo), new(MockMailer))

		otpRepo.On("Find", ctx, "a@b.c", "999999").Return(nil, nil)

		err := uc.Verify(ctx, "a@b.c", "999999")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid OTP")
	})

	t.Run("Should reject and purge an expired code", func(t *testing.T) {
		otpRepo := new(MockOTPRepo)
		uc := usecase.NewOTPUsecase(otpRepo, new(MockUserRepo), new(MockMailer))

		record := &domain.OTPCode{ID: 9, Email: "a@b.c", ExpiresAt: time.Now().Add(-time.Second)}
		otpRepo.On("Find", ctx, "a@b.c", "123456").Return(record, nil)
		otpRepo.On("Delete", ctx, int64(9)).Return(nil)

		err := uc.Verify(ctx, "a@b.c", "123456")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "OTP expired")
		otpRepo.AssertCalled(t, "Delete", ctx, int64(9))
	})

	t.Run("Should be single use", func(t *testing.T) {
		otpRepo := new(MockOTPRepo)
		userRepo := new(MockUserRepo)
		uc := usecase.NewOTPUsecase(otpRepo, userRepo, new(MockMailer))

		record := &domain.OTPCode{ID: 10, Email: "a@b.c", ExpiresAt: time.Now().Add(time.Minute)}
		otpRepo.On("Find", ctx, "a@b.c", "123456").Return(record, nil).Once()
		otpRepo.On("Find", ctx, "a@b.c", "123456").Return(nil, nil)
		otpRepo.On("Delete", ctx, int64(10)).Return(nil)
		userRepo.On("MarkEmailVerified", ctx, "a@b.c").Return(true, nil)

		assert.NoError(t, uc.Verify(ctx, "a@b.c", "123456"))
		assert.Error(t, uc.Verify(ctx, "a@b.c", "123456"))
	})

	t.Run("Should normalize the email before lookup", func(t *testing.T) {
		otpRepo := new(MockOTPRepo)
		userRepo := new(MockUserRepo)
		uc := usecase.NewOTPUsecase(otpRepo, userRepo, new(MockMailer))

		record := &domain.OTPCode{ID: 11, Email: "a@b.c", ExpiresAt: time.Now().Add(time.Minute)}
		otpRepo.On("Find", ctx, "a@b.c", "123456").Return(record, nil)
		otpRepo.On("Delete", ctx, int64(11)).Return(nil)
		userRepo.On("MarkEmailVerified", ctx, "a@b.c").Return(true, nil)

		assert.NoError(t, uc.Verify(ctx, "  A@B.C ", "123456"))
	})
}
