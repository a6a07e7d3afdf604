package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"medicue/internal/domain/model"
	"medicue/internal/repository"
)

// handlerからusecaseに渡す入力
type LoginInput struct {
	Email    string
	Password string
}

// handlerがJSONにして返す
type LoginOutput struct {
	User        model.UserProfile
	AccessToken string
	ExpiresAt   time.Time
}

// 入力パスワードと保存したハッシュを比べる約束
type PasswordVerifier interface {
	Verify(plain string, hashed string) bool
}

type LoginUsecase struct {
	userRepo  repository.UserRepository
	auditRepo repository.AuditLogRepository
	validator InputValidator
	verifier  PasswordVerifier
	issuer    AccessTokenIssuer
	clock     Clock
}

func NewLoginUsecase(
	userRepo repository.UserRepository,
	auditRepo repository.AuditLogRepository,
	validator InputValidator,
	verifier PasswordVerifier,
	issuer AccessTokenIssuer,
	clock Clock,
) *LoginUsecase {
	return &LoginUsecase{
		userRepo:  userRepo,
		auditRepo: auditRepo,
		validator: validator,
		verifier:  verifier,
		issuer:    issuer,
		clock:     clock,
	}
}

// ログイン処理を実行する
func (u *LoginUsecase) Execute(ctx context.Context, in LoginInput) (LoginOutput, error) {
	var out LoginOutput

	if err := u.validator.ValidateLogin(ctx, in.Email, in.Password); err != nil {
		return out, err
	}

	//emailでユーザー取得
	user, err := u.userRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return out, ErrInvalidCredentials
		}
		return out, fmt.Errorf("%w: find user by email: %w", ErrStorage, err)
	}

	//パスワード照合（ユーザー無しと同じエラー）
	if ok := u.verifier.Verify(in.Password, user.PasswordHash); !ok {
		return out, ErrInvalidCredentials
	}

	//AccessToken発行
	now := u.clock.Now()
	issued, err := u.issuer.Issue(user.ID, now)
	if err != nil {
		return out, fmt.Errorf("issue access token: %w", err)
	}

	// 発行したjtiを残す（トークン本体は残さない）
	if err := u.auditRepo.Create(ctx, model.AuditLog{
		ActorUserID:  user.ID,
		Action:       model.AuditActionLogin,
		ResourceType: model.AuditResourceToken,
		ResourceID:   issued.TokenID,
		CreatedAt:    now.UTC(),
	}); err != nil {
		return out, fmt.Errorf("%w: record login: %w", ErrStorage, err)
	}

	out.User = user.Profile()
	out.AccessToken = issued.Token
	out.ExpiresAt = issued.ExpiresAt.UTC()
	return out, nil
}
