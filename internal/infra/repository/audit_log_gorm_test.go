package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"medicue/internal/domain/model"
	domainrepo "medicue/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var auditColumns = []string{"id", "actor_user_id", "action", "resource_type", "resource_id", "created_at"}

func TestAuditLogGorm_Create(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewAuditLogGormRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "audit_logs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := repo.Create(context.Background(), model.AuditLog{
		ActorUserID:  3,
		Action:       model.AuditActionLogin,
		ResourceType: model.AuditResourceToken,
		ResourceID:   "jti-1",
		CreatedAt:    time.Now().UTC(),
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditLogGorm_List_Filtered(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewAuditLogGormRepository(gdb)
	at := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT \* FROM "audit_logs" WHERE actor_user_id = \$1 AND action = \$2 ORDER BY id DESC LIMIT`).
		WillReturnRows(sqlmock.NewRows(auditColumns).
			AddRow(2, 3, "LOGOUT", "token", "jti-1", at.Add(time.Hour)).
			AddRow(1, 3, "LOGOUT", "token", "jti-0", at))

	userID := int64(3)
	action := model.AuditActionLogout
	logs, err := repo.List(context.Background(), domainrepo.AuditLogFilter{
		ActorUserID: &userID,
		Action:      &action,
		Limit:       1000,
	})
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, int64(2), logs[0].ID)
	assert.Equal(t, "jti-1", logs[0].ResourceID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// =====================
// TxManager
// =====================

// usersとaudit_logsを1つのTxで書く
func TestTxManagerGorm_Commit(t *testing.T) {
	gdb, mock := newMockDB(t)
	tm := NewTxManagerGorm(gdb)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(7))
	mock.ExpectQuery(`INSERT INTO "audit_logs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := tm.WithinTx(context.Background(), func(r domainrepo.TxRepos) error {
		u := newUser()
		if err := r.Users().Create(context.Background(), u); err != nil {
			return err
		}
		return r.AuditLogs().Create(context.Background(), model.AuditLog{
			ActorUserID:  u.ID,
			Action:       model.AuditActionRegister,
			ResourceType: model.AuditResourceUser,
			ResourceID:   "7",
			CreatedAt:    u.CreatedAt,
		})
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxManagerGorm_Rollback(t *testing.T) {
	gdb, mock := newMockDB(t)
	tm := NewTxManagerGorm(gdb)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "revoked_tokens"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectRollback()

	boom := errors.New("audit failed")
	err := tm.WithinTx(context.Background(), func(r domainrepo.TxRepos) error {
		if err := r.RevokedTokens().Revoke(context.Background(), newRevokedRow()); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}
