package repository

import (
	"context"
	"time"

	"medicue/internal/domain/model"
)

// 失効トークン台帳の保存・照会・掃除
type RevokedTokenRepository interface {
	//jtiを台帳に入れる。既にあれば何もしない（エラーにしない）
	Revoke(ctx context.Context, token *model.RevokedToken) error
	//jtiが台帳にあるか
	IsRevoked(ctx context.Context, jti string) (bool, error)
	//自然失効したものを削除して件数を返す
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
