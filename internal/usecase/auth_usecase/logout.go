package auth

import (
	"context"
	"fmt"

	"medicue/internal/domain/model"
	"medicue/internal/repository"
)

// ログアウト（今のトークンのjtiを台帳に入れる）
type LogoutUsecase struct {
	tx    repository.TransactionManager
	clock Clock
}

func NewLogoutUsecase(tx repository.TransactionManager, clock Clock) *LogoutUsecase {
	return &LogoutUsecase{tx: tx, clock: clock}
}

// SessionはSessionValidatorを通過済みのもの。
// 同じjtiで2回呼ばれてもエラーにしない。
func (u *LogoutUsecase) Execute(ctx context.Context, session Session) error {
	if session.TokenID == "" {
		return ErrInvalidToken
	}

	now := u.clock.Now().UTC()
	row := &model.RevokedToken{
		JTI:       session.TokenID,
		UserID:    session.UserID,
		ExpiresAt: session.ExpiresAt.UTC(),
		CreatedAt: now,
	}

	err := u.tx.WithinTx(ctx, func(r repository.TxRepos) error {
		if err := r.RevokedTokens().Revoke(ctx, row); err != nil {
			return err
		}
		return r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  session.UserID,
			Action:       model.AuditActionLogout,
			ResourceType: model.AuditResourceToken,
			ResourceID:   session.TokenID,
			CreatedAt:    now,
		})
	})
	if err != nil {
		return fmt.Errorf("%w: revoke token: %w", ErrStorage, err)
	}
	return nil
}

// 自然失効した台帳の行を掃除する（正しさには不要）
type PruneRevokedUsecase struct {
	revoked repository.RevokedTokenRepository
	clock   Clock
}

func NewPruneRevokedUsecase(revoked repository.RevokedTokenRepository, clock Clock) *PruneRevokedUsecase {
	return &PruneRevokedUsecase{revoked: revoked, clock: clock}
}

func (u *PruneRevokedUsecase) Execute(ctx context.Context) (int64, error) {
	n, err := u.revoked.DeleteExpired(ctx, u.clock.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("%w: delete expired revoked tokens: %w", ErrStorage, err)
	}
	return n, nil
}
