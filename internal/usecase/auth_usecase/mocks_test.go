package auth

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"medicue/internal/domain/model"
	"medicue/internal/repository"

	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// =====================
// Mock: UserRepository
// =====================

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

var _ repository.UserRepository = (*MockUserRepository)(nil)

// =====================
// Mock: RevokedTokenRepository
// =====================

type MockRevokedTokenRepository struct {
	mock.Mock
}

func (m *MockRevokedTokenRepository) Revoke(ctx context.Context, token *model.RevokedToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockRevokedTokenRepository) IsRevoked(ctx context.Context, jti string) (bool, error) {
	args := m.Called(ctx, jti)
	return args.Bool(0), args.Error(1)
}

func (m *MockRevokedTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

var _ repository.RevokedTokenRepository = (*MockRevokedTokenRepository)(nil)

// =====================
// Mock: AuditLogRepository
// =====================

type MockAuditLogRepository struct {
	mock.Mock
}

func (m *MockAuditLogRepository) Create(ctx context.Context, log model.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockAuditLogRepository) List(ctx context.Context, filter repository.AuditLogFilter) ([]model.AuditLog, error) {
	args := m.Called(ctx, filter)
	logs, _ := args.Get(0).([]model.AuditLog)
	return logs, args.Error(1)
}

// =====================
// Fake: TransactionManager
// =====================

// fnにmockを渡すだけ。commit/rollbackは見ない
type fakeTxManager struct {
	users   *MockUserRepository
	revoked *MockRevokedTokenRepository
	audit   *MockAuditLogRepository
}

func (f *fakeTxManager) WithinTx(ctx context.Context, fn func(r repository.TxRepos) error) error {
	return fn(f)
}

func (f *fakeTxManager) Users() repository.UserRepository                 { return f.users }
func (f *fakeTxManager) RevokedTokens() repository.RevokedTokenRepository { return f.revoked }
func (f *fakeTxManager) AuditLogs() repository.AuditLogRepository         { return f.audit }

// =====================
// Mock: InputValidator
// =====================

type MockInputValidator struct {
	mock.Mock
}

func (m *MockInputValidator) ValidateRegister(ctx context.Context, in RegisterUserInput) error {
	args := m.Called(ctx, in)
	return args.Error(0)
}

func (m *MockInputValidator) ValidateLogin(ctx context.Context, email string, password string) error {
	args := m.Called(ctx, email, password)
	return args.Error(0)
}

// =====================
// Helper
// =====================

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

// jti-1, jti-2 ... を順番に返す
type seqIDGenerator struct {
	mu sync.Mutex
	n  int
}

func (g *seqIDGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("jti-%d", g.n)
}

// 秒未満を持たない基準時刻
var baseTime = time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)

func mustHash(t *testing.T, plain string) string {
	t.Helper()
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt failed: %v", err)
	}
	return string(b)
}

func newTestUser(t *testing.T, password string) *model.User {
	t.Helper()
	return &model.User{
		ID:           1,
		Email:        "a@x.com",
		PasswordHash: mustHash(t, password),
		FirstName:    "A",
		LastName:     "B",
		Gender:       model.GenderOther,
		BirthDate:    time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		CreatedAt:    baseTime,
	}
}
