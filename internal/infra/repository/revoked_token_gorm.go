package repository

import (
	"context"
	"time"

	"medicue/internal/domain/model"
	repo "medicue/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type revokedTokenGormRepository struct {
	db *gorm.DB //DB接続（GORM）
}

// GORM実装
func NewRevokedTokenRepository(db *gorm.DB) repo.RevokedTokenRepository {
	return &revokedTokenGormRepository{db: db}
}

// jtiを台帳に保存。同じjtiが既にあれば何もしない。
func (r *revokedTokenGormRepository) Revoke(ctx context.Context, token *model.RevokedToken) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "jti"}},
			DoNothing: true,
		}).
		Create(token).Error
	if err != nil {
		return err
	}
	return nil
}

// jtiで検索（uniqueIndexに乗る）
func (r *revokedTokenGormRepository) IsRevoked(ctx context.Context, jti string) (bool, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Model(&model.RevokedToken{}).
		Where("jti = ?", jti).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// expires_atを過ぎた行を削除します。
func (r *revokedTokenGormRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at <= ?", now).
		Delete(&model.RevokedToken{})

	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
