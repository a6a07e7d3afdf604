package middleware

import (
	"context"
	"net/http"
	"strings"

	auth "medicue/internal/usecase/auth_usecase"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

const (
	CtxUserIDKey  = "user_id"  // int64
	CtxTokenIDKey = "token_id" // string（jti）
	CtxSessionKey = "session"  // auth.Session
)

// トークン検証の約束（auth.SessionValidatorが実装）
type SessionAuthenticator interface {
	Validate(ctx context.Context, rawToken string) (auth.Session, error)
}

// bearerAuth用のJWT検証ミドルウェア。
// 署名不正・期限切れ・失効済みはすべて同じ401にする。
func AuthJWT(sessions SessionAuthenticator, logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rawToken, ok := bearerToken(c.Request().Header.Get("Authorization"))
			if !ok {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			session, err := sessions.Validate(c.Request().Context(), rawToken)
			if err != nil {
				if auth.IsTokenError(err) {
					return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
				}
				// 台帳が引けないときは通さない
				logger.Error().Err(err).Str("path", c.Path()).Msg("session validation failed")
				return c.JSON(http.StatusInternalServerError, errorJSON("internal error"))
			}

			//contextへ保存
			c.Set(CtxUserIDKey, session.UserID)
			c.Set(CtxTokenIDKey, session.TokenID)
			c.Set(CtxSessionKey, session)

			return next(c)
		}
	}
}

// AuthJWTが入れたSessionを取り出す
func SessionFrom(c echo.Context) (auth.Session, bool) {
	s, ok := c.Get(CtxSessionKey).(auth.Session)
	if !ok || s.UserID <= 0 || s.TokenID == "" {
		return auth.Session{}, false
	}
	return s, true
}

type errorResponse struct {
	Error string `json:"error"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Error: msg}
}

//Bearer形式か確認してtokenを抜く
func bearerToken(authz string) (string, bool) {
	if authz == "" {
		return "", false
	}
	parts := strings.SplitN(authz, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	raw := strings.TrimSpace(parts[1])
	if raw == "" {
		return "", false
	}
	return raw, true
}
