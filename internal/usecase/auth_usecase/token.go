package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// アクセストークンの有効期限
const DefaultTokenTTL = 24 * time.Hour

// JWTのclaims（sub=user_id, jti=トークン毎のID）
type Claims struct {
	jwt.RegisteredClaims
}

// 発行したトークン
type IssuedToken struct {
	Token     string
	TokenID   string
	ExpiresAt time.Time
}

// 検証済みトークンから取り出した値
type Session struct {
	UserID    int64
	TokenID   string
	ExpiresAt time.Time
}

// JWTを発行する約束
type AccessTokenIssuer interface {
	Issue(userID int64, now time.Time) (IssuedToken, error)
}

// JWTの署名・期限を検証する約束
type AccessTokenParser interface {
	Parse(raw string, now time.Time) (Session, error)
}

// HS256でJWTを発行・検証する
type JWTManager struct {
	secret []byte
	ttl    time.Duration
	idGen  IDGenerator
}

// DI
func NewJWTManager(secret string, ttl time.Duration, idGen IDGenerator) *JWTManager {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &JWTManager{
		secret: []byte(secret),
		ttl:    ttl,
		idGen:  idGen,
	}
}

// iat=now, exp=now+ttl（どちらも秒単位に切り捨て）で発行
func (m *JWTManager) Issue(userID int64, now time.Time) (IssuedToken, error) {
	issuedAt := jwt.NewNumericDate(now)
	expiresAt := jwt.NewNumericDate(issuedAt.Add(m.ttl))

	jti := m.idGen.NewID()
	if jti == "" {
		return IssuedToken{}, errors.New("empty token id")
	}

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  issuedAt,
			ExpiresAt: expiresAt,
			ID:        jti,
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(m.secret)
	if err != nil {
		return IssuedToken{}, fmt.Errorf("sign token: %w", err)
	}

	return IssuedToken{
		Token:     signed,
		TokenID:   jti,
		ExpiresAt: expiresAt.Time,
	}, nil
}

// 署名と期限を検証する。now >= exp なら ErrExpiredToken
func (m *JWTManager) Parse(raw string, now time.Time) (Session, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Session{}, ErrExpiredToken
		}
		return Session{}, ErrInvalidToken
	}
	if token == nil || !token.Valid {
		return Session{}, ErrInvalidToken
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return Session{}, ErrInvalidToken
	}
	if claims.ID == "" {
		return Session{}, ErrInvalidToken
	}

	return Session{
		UserID:    userID,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
