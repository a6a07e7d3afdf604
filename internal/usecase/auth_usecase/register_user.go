package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"medicue/internal/domain/model"
	"medicue/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// 会員登録の入力
type RegisterUserInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Gender    string
	BirthDate string
}

// 会員登録の出力
type RegisterUserOutput struct {
	User model.UserProfile
}

// 入力チェックの約束（validatorパッケージが実装）
type InputValidator interface {
	ValidateRegister(ctx context.Context, in RegisterUserInput) error
	ValidateLogin(ctx context.Context, email string, password string) error
}

// 平文パスワードからハッシュへ。
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// UUID 等のIDを作る約束
type IDGenerator interface {
	NewID() string
}

// 現在の時間
type Clock interface {
	Now() time.Time
}

// RegisterUserUsecaseは会員登録の処理。
type RegisterUserUsecase struct {
	userRepo  repository.UserRepository
	tx        repository.TransactionManager
	validator InputValidator
	hasher    PasswordHasher
	clock     Clock
}

// DI
func NewRegisterUserUsecase(
	userRepo repository.UserRepository,
	tx repository.TransactionManager,
	validator InputValidator,
	hasher PasswordHasher,
	clock Clock,
) *RegisterUserUsecase {
	return &RegisterUserUsecase{
		userRepo:  userRepo,
		tx:        tx,
		validator: validator,
		hasher:    hasher,
		clock:     clock,
	}
}

// 会員登録実行
func (u *RegisterUserUsecase) Execute(ctx context.Context, in RegisterUserInput) (RegisterUserOutput, error) {
	var out RegisterUserOutput

	//必須・形式チェック
	if err := u.validator.ValidateRegister(ctx, in); err != nil {
		return out, err
	}

	birthDate, err := time.Parse(model.BirthDateLayout, in.BirthDate)
	if err != nil {
		return out, NewValidationError("birth_date must be a date in YYYY-MM-DD format")
	}

	now := u.clock.Now().UTC()
	if birthDate.After(now) {
		return out, NewValidationError("birth_date must not be in the future")
	}

	// email重複チェック（完全一致）
	existing, err := u.userRepo.FindByEmail(ctx, in.Email)
	if err == nil && existing != nil {
		return out, ErrEmailAlreadyExists
	}
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return out, fmt.Errorf("%w: find user by email: %w", ErrStorage, err)
	}

	// パスワードをハッシュ化
	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return out, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:        in.Email,
		PasswordHash: hashed, // ハッシュを保存（平文は保存しない）
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Gender:       model.Gender(in.Gender),
		BirthDate:    birthDate,
		CreatedAt:    now,
	}

	// ユーザー作成と監査ログを同じTxで保存（同時登録はunique違反で弾く）
	err = u.tx.WithinTx(ctx, func(r repository.TxRepos) error {
		if err := r.Users().Create(ctx, user); err != nil {
			return err
		}
		return r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  user.ID,
			Action:       model.AuditActionRegister,
			ResourceType: model.AuditResourceUser,
			ResourceID:   strconv.FormatInt(user.ID, 10),
			CreatedAt:    now,
		})
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return out, ErrEmailAlreadyExists
		}
		return out, fmt.Errorf("%w: create user: %w", ErrStorage, err)
	}

	out.User = user.Profile()
	return out, nil
}

// bcryptハッシュ化
type BcryptPasswordHasher struct {
	cost int
}

// DI
func NewBcryptPasswordHasher(cost int) *BcryptPasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptPasswordHasher{cost}
}

// bcryptでハッシュ化
func (h *BcryptPasswordHasher) Hash(plain string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}

	return string(hashedBytes), nil
}

// bcryptハッシュと平文を比較
type BcryptPasswordVerifier struct{}

// DI
func NewBcryptPasswordVerifier() *BcryptPasswordVerifier {
	return &BcryptPasswordVerifier{}
}

// 平文(plain)をbcryptで比較
func (v *BcryptPasswordVerifier) Verify(plain string, hashed string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
	return err == nil
}
