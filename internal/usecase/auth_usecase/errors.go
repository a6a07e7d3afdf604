package auth

import "errors"

var (
	//400 入力不足・形式不正
	ErrValidation = errors.New("validation error")
	//409 email重複
	ErrEmailAlreadyExists = errors.New("email already exists")
	//401 メールまたはパスワードが違う（どちらかは教えない）
	ErrInvalidCredentials = errors.New("invalid email or password")
	//401 署名不正・形式不正
	ErrInvalidToken = errors.New("invalid token")
	//401 期限切れ
	ErrExpiredToken = errors.New("token expired")
	//401 ログアウト済み
	ErrRevokedToken = errors.New("token revoked")
	//404
	ErrUserNotFound = errors.New("user not found")
	//500 DBなどの想定外の失敗
	ErrStorage = errors.New("storage error")
)

// 入力エラー。Messageはそのままユーザーに返してよい文言。
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return "validation error: " + e.Message
}

// errors.Is(err, ErrValidation) で判定できるように
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func NewValidationError(msg string) error {
	return &ValidationError{Message: msg}
}

// 401にまとめるトークン系エラーか
func IsTokenError(err error) bool {
	return errors.Is(err, ErrInvalidToken) ||
		errors.Is(err, ErrExpiredToken) ||
		errors.Is(err, ErrRevokedToken)
}
