package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"myresume-backend/internal/domain"
	"myresume-backend/internal/usecase"
	"myresume-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hash)
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("Should create an unverified user by default", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(mockRepo)

		mockRepo.On("HasVerifiedEmail", ctx, "new@example.com").Return(false, nil)
		mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil)

		user, err := uc.Register(ctx, "newuser", "new@example.com", "secret123")
		assert.NoError(t, err)
		assert.False(t, user.IsVerified)
		assert.NotEmpty(t, user.ID)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret123")))
		mockRepo.AssertExpectations(t)
	})

	t.Run("Should start verified when the email passed OTP beforehand", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(mockRepo)

		mockRepo.On("HasVerifiedEmail", ctx, "seen@example.com").Return(true, nil)
		mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil)

		user, err := uc.Register(ctx, "seen", "seen@example.com", "secret123")
		assert.NoError(t, err)
		assert.True(t, user.IsVerified)
	})

	t.Run("Should reject missing fields", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(mockRepo)

		_, err := uc.Register(ctx, "  ", "a@b.c", "pw")
		assert.Error(t, err)
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, http.StatusBadRequest, appErr.Code)
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("Should surface duplicate identity as conflict", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(mockRepo)

		mockRepo.On("HasVerifiedEmail", ctx, "dup@example.com").Return(false, nil)
		mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).
			Return(apperror.Conflict("Username or email already taken"))

		_, err := uc.Register(ctx, "dup", "dup@example.com", "secret123")
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, http.StatusConflict, appErr.Code)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("Should return the user on valid credentials", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(mockRepo)

		stored := &domain.User{ID: "u1", Email: "a@b.c", PasswordHash: hashOf(t, "correct")}
		mockRepo.On("GetByEmail", ctx, "a@b.c").Return(stored, nil)

		user, err := uc.Login(ctx, "a@b.c", "correct")
		assert.NoError(t, err)
		assert.Equal(t, "u1", user.ID)
	})

	t.Run("Should report unknown email as not found", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(mockRepo)

		mockRepo.On("GetByEmail", ctx, "ghost@b.c").Return(nil, nil)

		_, err := uc.Login(ctx, "ghost@b.c", "whatever")
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, http.StatusNotFound, appErr.Code)
	})

	t.Run("Should reject a wrong password as unauthorized", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(mockRepo)

		stored := &domain.User{ID: "u1", Email: "a@b.c", PasswordHash: hashOf(t, "correct")}
		mockRepo.On("GetByEmail", ctx, "a@b.c").Return(stored, nil)

		_, err := uc.Login(ctx, "a@b.c", "wrong")
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, http.StatusUnauthorized, appErr.Code)
	})
}

func TestCheckUserExists(t *testing.T) {
	ctx := context.Background()

	t.Run("Should delegate the identifier lookup", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(mockRepo)

		mockRepo.On("ExistsByIdentifier", ctx, "Someone").Return(true, nil)

		exists, err := uc.CheckUserExists(ctx, "Someone")
		assert.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("Should reject a blank query", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(mockRepo)

		_, err := uc.CheckUserExists(ctx, "   ")
		assert.Error(t, err)
		mockRepo.AssertNotCalled(t, "ExistsByIdentifier")
	})
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("Should rehash and persist on correct current password", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(mockRepo)

		stored := &domain.User{ID: "u1", PasswordHash: hashOf(t, "oldpass")}
		mockRepo.On("GetByID", ctx, "u1").Return(stored, nil)
		mockRepo.On("UpdatePassword", ctx, "u1", mock.MatchedBy(func(hash string) bool {
			return bcrypt.CompareHashAndPassword([]byte(hash), []byte("newpass")) == nil
		})).Return(nil)

		err := uc.ChangePassword(ctx, "u1", "oldpass", "newpass")
		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Should reject a wrong current password", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(mockRepo)

		stored := &domain.User{ID: "u1", PasswordHash: hashOf(t, "oldpass")}
		mockRepo.On("GetByID", ctx, "u1").Return(stored, nil)

		err := uc.ChangePassword(ctx, "u1", "wrongpass", "newpass")
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, http.StatusUnauthorized, appErr.Code)
		mockRepo.AssertNotCalled(t, "UpdatePassword")
	})
}
