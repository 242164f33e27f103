package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/lshigami/Compass/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/utils/tests"
)

// sqlRecorder keeps every statement gorm traces.
type sqlRecorder struct {
	logger.Interface
	statements []string
}

func (r *sqlRecorder) Trace(_ context.Context, _ time.Time, fc func() (string, int64), _ error) {
	sql, _ := fc()
	r.statements = append(r.statements, sql)
}

func TestLockByIDForUser_SelectsForUpdate(t *testing.T) {
	rec := &sqlRecorder{Interface: logger.Discard}
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{DryRun: true, Logger: rec})
	require.NoError(t, err)
	repo := NewTestAttemptRepository(db)
	userID := uuid.New()

	_, err = repo.LockByIDForUser(context.Background(), 7, userID)
	require.NoError(t, err)
	_, err = repo.FindByIDForUser(context.Background(), 7, userID)
	require.NoError(t, err)

	require.Len(t, rec.statements, 2)
	assert.Contains(t, rec.statements[0], "FOR UPDATE")
	assert.NotContains(t, rec.statements[1], "FOR UPDATE")
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Question{}, &model.TestAttempt{}, &model.Answer{}))
	return db
}

func TestLockByIDForUser_InTransaction(t *testing.T) {
	db := newTestDB(t)
	owner := &model.User{FullName: "Owner", Email: "owner@example.com", PasswordHash: "x", Role: model.RoleUser}
	require.NoError(t, db.Create(owner).Error)
	repo := NewTestAttemptRepository(db)
	attempt := &model.TestAttempt{UserID: owner.ID, TotalQuestions: 2, QuestionIDs: []uint{3, 4}, Status: model.AttemptStatusStarted}
	require.NoError(t, repo.Create(context.Background(), attempt))

	err := db.Transaction(func(tx *gorm.DB) error {
		locked, err := repo.WithTx(tx).LockByIDForUser(context.Background(), attempt.ID, owner.ID)
		if err != nil {
			return err
		}
		assert.Equal(t, []uint{3, 4}, []uint(locked.QuestionIDs))

		_, err = repo.WithTx(tx).LockByIDForUser(context.Background(), attempt.ID, uuid.New())
		assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
		return nil
	})
	require.NoError(t, err)
}
