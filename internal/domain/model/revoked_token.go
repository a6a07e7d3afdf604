package model

import "time"

// ログアウト済みトークン（jti）の台帳。
// 一度入ったjtiは自然失効まで拒否し続ける。
type RevokedToken struct {
	ID     int64  `gorm:"primaryKey;autoIncrement"`
	JTI    string `gorm:"column:jti;type:varchar(36);not null;uniqueIndex"`
	UserID int64  `gorm:"not null;index"`
	//トークン本来の有効期限（掃除用）
	ExpiresAt time.Time `gorm:"not null;index"`
	//失効させた時刻
	CreatedAt time.Time `gorm:"not null"`
}

func (RevokedToken) TableName() string {
	return "revoked_tokens"
}
