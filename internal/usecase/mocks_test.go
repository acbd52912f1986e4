package usecase_test

import (
	"context"
	"io"
	"os"
	"sync"
	"testing"
	"time"

	"myresume-backend/internal/domain"
	"myresume-backend/pkg/apperror"
	"myresume-backend/pkg/logger"

	"github.com/stretchr/testify/mock"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

// Mock Repositories

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) ExistsByIdentifier(ctx context.Context, identifier string) (bool, error) {
	args := m.Called(ctx, identifier)
	return args.Bool(0), args.Error(1)
}
func (m *MockUserRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return m.Called(ctx, id, passwordHash).Error(0)
}
func (m *MockUserRepo) MarkEmailVerified(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}
func (m *MockUserRepo) RecordEmailVerification(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}
func (m *MockUserRepo) HasVerifiedEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

type MockResumeRepo struct {
	mock.Mock
}

func (m *MockResumeRepo) Create(ctx context.Context, resume *domain.Resume) error {
	return m.Called(ctx, resume).Error(0)
}
func (m *MockResumeRepo) GetByIDForUser(ctx context.Context, id, userID string) (*domain.Resume, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Resume), args.Error(1)
}
func (m *MockResumeRepo) ListByUser(ctx context.Context, userID string) ([]domain.Resume, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Resume), args.Error(1)
}
func (m *MockResumeRepo) GetActiveByUser(ctx context.Context, userID string) (*domain.Resume, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Resume), args.Error(1)
}
func (m *MockResumeRepo) SetActive(ctx context.Context, userID, id string) (*domain.Resume, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Resume), args.Error(1)
}
func (m *MockResumeRepo) Delete(ctx context.Context, userID, id string) error {
	return m.Called(ctx, userID, id).Error(0)
}
func (m *MockResumeRepo) UpdateSlug(ctx context.Context, userID, slug string) ([]domain.Resume, error) {
	args := m.Called(ctx, userID, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Resume), args.Error(1)
}
func (m *MockResumeRepo) SlugExists(ctx context.Context, userID, slug string) (bool, error) {
	args := m.Called(ctx, userID, slug)
	return args.Bool(0), args.Error(1)
}

type MockOTPRepo struct {
	mock.Mock
}

func (m *MockOTPRepo) Replace(ctx context.Context, email, code string, expiresAt time.Time) error {
	return m.Called(ctx, email, code, expiresAt).Error(0)
}
func (m *MockOTPRepo) Find(ctx context.Context, email, code string) (*domain.OTPCode, error) {
	args := m.Called(ctx, email, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OTPCode), args.Error(1)
}
func (m *MockOTPRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockOTPRepo) DeleteExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return int64(args.Int(0)), args.Error(1)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendOTP(to, code, title string) error {
	return m.Called(to, code, title).Error(0)
}

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	args := m.Called(ctx, key, contentType, body)
	return args.String(0), args.Error(1)
}
func (m *MockStore) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

// fakeResumeRepo is an in-memory ResumeRepository mirroring the transactional
// semantics of the Postgres one, for exercising activation under concurrency.
type fakeResumeRepo struct {
	mu      sync.Mutex
	resumes []*domain.Resume
}

func (f *fakeResumeRepo) Create(ctx context.Context, resume *domain.Resume) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	slug := domain.DefaultSlug
	hasAny := false
	for _, r := range f.resumes {
		if r.UserID == resume.UserID {
			hasAny = true
			slug = r.Slug
			break
		}
	}
	cp := *resume
	cp.IsActive = !hasAny
	cp.Slug = slug
	f.resumes = append(f.resumes, &cp)
	resume.IsActive = cp.IsActive
	resume.Slug = cp.Slug
	return nil
}

func (f *fakeResumeRepo) GetByIDForUser(ctx context.Context, id, userID string) (*domain.Resume, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.resumes {
		if r.ID == id && r.UserID == userID {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeResumeRepo) ListByUser(ctx context.Context, userID string) ([]domain.Resume, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Resume
	for _, r := range f.resumes {
		if r.UserID == userID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeResumeRepo) GetActiveByUser(ctx context.Context, userID string) (*domain.Resume, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.resumes {
		if r.UserID == userID && r.IsActive {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeResumeRepo) SetActive(ctx context.Context, userID, id string) (*domain.Resume, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var target *domain.Resume
	for _, r := range f.resumes {
		if r.ID == id && r.UserID == userID {
			target = r
			break
		}
	}
	if target == nil {
		return nil, apperror.NotFound("Resume not found")
	}
	for _, r := range f.resumes {
		if r.UserID == userID {
			r.IsActive = false
		}
	}
	target.IsActive = true
	cp := *target
	return &cp, nil
}

func (f *fakeResumeRepo) Delete(ctx context.Context, userID, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, r := range f.resumes {
		if r.ID == id && r.UserID == userID {
			f.resumes = append(f.resumes[:i], f.resumes[i+1:]...)
			return nil
		}
	}
	return apperror.NotFound("Resume not found")
}

func (f *fakeResumeRepo) UpdateSlug(ctx context.Context, userID, slug string) ([]domain.Resume, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Resume
	for _, r := range f.resumes {
		if r.UserID == userID {
			r.Slug = slug
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeResumeRepo) SlugExists(ctx context.Context, userID, slug string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.resumes {
		if r.UserID == userID && r.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeResumeRepo) activeCount(userID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, r := range f.resumes {
		if r.UserID == userID && r.IsActive {
			n++
		}
	}
	return n
}
