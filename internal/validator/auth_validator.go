package validator

import (
	"context"
	"regexp"
	"strings"
	"time"

	"medicue/internal/domain/model"
	auth "medicue/internal/usecase/auth_usecase"
)

const (
	// パスワード最低文字数
	minPasswordLen = 8
	// bcryptが扱える上限（バイト）
	maxPasswordBytes = 72
)

// 簡易メール形式
var emailLike = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type authValidator struct{}

// Usecaseは interface を依存注入
func NewAuthValidator() auth.InputValidator {
	return &authValidator{}
}

// 会員登録の入力を検証
func (v *authValidator) ValidateRegister(ctx context.Context, in auth.RegisterUserInput) error {
	// 必須チェック
	if isBlank(in.Email) || in.Password == "" || isBlank(in.FirstName) ||
		isBlank(in.LastName) || isBlank(in.Gender) || isBlank(in.BirthDate) {
		return auth.NewValidationError("Email, password, first name, last name, gender and birth date are required")
	}

	// email形式
	if !emailLike.MatchString(in.Email) {
		return auth.NewValidationError("invalid email format")
	}

	if len(in.Password) < minPasswordLen {
		return auth.NewValidationError("password must be at least 8 characters")
	}
	if len(in.Password) > maxPasswordBytes {
		return auth.NewValidationError("password must be at most 72 bytes")
	}

	if !model.Gender(in.Gender).Valid() {
		return auth.NewValidationError("gender must be one of Male, Female, Other")
	}

	if _, err := time.Parse(model.BirthDateLayout, in.BirthDate); err != nil {
		return auth.NewValidationError("birth_date must be a date in YYYY-MM-DD format")
	}

	return nil
}

// ログインの入力を検証（形式までは見ない。違えば401になる）
func (v *authValidator) ValidateLogin(ctx context.Context, email string, password string) error {
	if isBlank(email) || password == "" {
		return auth.NewValidationError("Email and password are required")
	}
	return nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
