package model

import "time"

// 認証まわりの操作
type AuditAction string

const (
	//会員登録
	AuditActionRegister AuditAction = "REGISTER"
	//ログイン成功（トークン発行）
	AuditActionLogin AuditAction = "LOGIN"
	//ログアウト（トークン失効）
	AuditActionLogout AuditAction = "LOGOUT"
)

// 何に対する操作か
type AuditResourceType string

const (
	AuditResourceUser  AuditResourceType = "user"
	AuditResourceToken AuditResourceType = "token"
)

// 監査ログ。「誰が」「何を」「どの対象に」したかを残す。
// パスワードやトークン本体は入れない。
type AuditLog struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	//操作したユーザーのID
	ActorUserID int64 `gorm:"not null;index" json:"actor_user_id"`

	Action AuditAction `gorm:"type:varchar(50);not null;index" json:"action"`

	ResourceType AuditResourceType `gorm:"type:varchar(50);not null" json:"resource_type"`

	//user_id か jti
	ResourceID string `gorm:"type:varchar(64);not null" json:"resource_id"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
