package repository

import "context"

// トランザクション内で使うrepo
type TxRepos interface {
	Users() UserRepository
	RevokedTokens() RevokedTokenRepository
	AuditLogs() AuditLogRepository
}

// UsecaseからTxの開始/commit/rollbackを隠す。
// fnがエラーを返したらrollback。
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}
