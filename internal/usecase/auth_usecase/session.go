package auth

import (
	"context"
	"fmt"

	"medicue/internal/repository"
)

// 保護ルート毎にトークンを検証する
type SessionValidator struct {
	parser  AccessTokenParser
	revoked repository.RevokedTokenRepository
	clock   Clock
}

func NewSessionValidator(
	parser AccessTokenParser,
	revoked repository.RevokedTokenRepository,
	clock Clock,
) *SessionValidator {
	return &SessionValidator{
		parser:  parser,
		revoked: revoked,
		clock:   clock,
	}
}

// 署名・期限・失効台帳の順に確認する
func (v *SessionValidator) Validate(ctx context.Context, rawToken string) (Session, error) {
	if rawToken == "" {
		return Session{}, ErrInvalidToken
	}

	session, err := v.parser.Parse(rawToken, v.clock.Now())
	if err != nil {
		return Session{}, err
	}

	revoked, err := v.revoked.IsRevoked(ctx, session.TokenID)
	if err != nil {
		return Session{}, fmt.Errorf("%w: lookup revoked token: %w", ErrStorage, err)
	}
	if revoked {
		return Session{}, ErrRevokedToken
	}

	return session, nil
}
