package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"gotalk/internal/common"
	"gotalk/internal/dbmysql"
)

func setupTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
	}

	return gormDB, mock, cleanup
}

func TestChatRepository_Append(t *testing.T) {
	tests := []struct {
		name        string
		message     *dbmysql.Message
		mockSetup   func(sqlmock.Sqlmock)
		expectError bool
	}{
		{
			name: "successful append assigns id",
			message: &dbmysql.Message{
				FromUserID:  3,
				ToUserID:    7,
				Content:     "hi",
				MessageType: "text",
			},
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta(
					"INSERT INTO `messages` (`from_user_id`,`to_user_id`,`content`,`message_type`,`media_ref`,`created_at`) VALUES (?,?,?,?,?,?)")).
					WithArgs(3, 7, "hi", "text", "", sqlmock.AnyArg()).
					WillReturnResult(sqlmock.NewResult(42, 1))
				mock.ExpectCommit()
			},
			expectError: false,
		},
		{
			name: "database error surfaces as StorageError",
			message: &dbmysql.Message{
				FromUserID:  3,
				ToUserID:    7,
				Content:     "hi",
				MessageType: "text",
			},
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta(
					"INSERT INTO `messages`")).
					WillReturnError(assert.AnError)
				mock.ExpectRollback()
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, cleanup := setupTestDB(t)
			defer cleanup()

			tt.mockSetup(mock)

			repo := NewChatRepository(db)
			saved, err := repo.Append(context.Background(), tt.message)

			if tt.expectError {
				assert.Error(t, err)
				var storageErr *common.StorageError
				assert.ErrorAs(t, err, &storageErr)
				assert.Nil(t, saved)
			} else {
				assert.NoError(t, err)
				require.NotNil(t, saved)
				assert.Equal(t, uint64(42), saved.ID)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestChatRepository_RecentBetween(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "from_user_id", "to_user_id", "content", "message_type", "media_ref", "created_at",
	}).
		AddRow(3, 7, 3, "newest", "text", "", now).
		AddRow(2, 3, 7, "middle", "text", "", now.Add(-time.Minute)).
		AddRow(1, 3, 7, "oldest", "text", "", now.Add(-2*time.Minute))

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT * FROM `messages` WHERE (from_user_id = ? AND to_user_id = ?) OR (from_user_id = ? AND to_user_id = ?) ORDER BY created_at DESC, id DESC")).
		WillReturnRows(rows)

	repo := NewChatRepository(db)
	messages, err := repo.RecentBetween(context.Background(), 3, 7, 0)

	assert.NoError(t, err)
	require.Len(t, messages, 3)

	// Newest first, both directions of the pair included
	assert.Equal(t, "newest", messages[0].Content)
	assert.Equal(t, uint64(7), messages[0].FromUserID)
	assert.Equal(t, "oldest", messages[2].Content)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestChatRepository_RecentBetween_Error(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `messages`")).
		WillReturnError(assert.AnError)

	repo := NewChatRepository(db)
	messages, err := repo.RecentBetween(context.Background(), 3, 7, 10)

	assert.Error(t, err)
	var storageErr *common.StorageError
	assert.ErrorAs(t, err, &storageErr)
	assert.Nil(t, messages)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestChatRepository_Partners(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"user_id", "handle", "created_at"}).
		AddRow(3, "alice", time.Now()).
		AddRow(9, "bob", time.Now())

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT u.user_id, u.handle, u.created_at FROM users u")).
		WithArgs(7, 7, 7).
		WillReturnRows(rows)

	repo := NewChatRepository(db)
	partners, err := repo.Partners(context.Background(), 7)

	assert.NoError(t, err)
	require.Len(t, partners, 2)
	assert.Equal(t, uint64(3), partners[0].UserID)
	assert.Equal(t, "alice", partners[0].Handle)
	assert.Equal(t, "bob", partners[1].Handle)

	assert.NoError(t, mock.ExpectationsWereMet())
}
