package repository

import (
	"context"

	"gorm.io/gorm"

	"gotalk/internal/common"
	"gotalk/internal/dbmysql"
)

// DefaultHistoryLimit caps a history fetch when the caller does not pick one.
const DefaultHistoryLimit = 50

type ChatRepository interface {
	Append(ctx context.Context, msg *dbmysql.Message) (*dbmysql.Message, error)
	RecentBetween(ctx context.Context, userA, userB uint64, limit int) ([]*dbmysql.Message, error)
	Partners(ctx context.Context, userID uint64) ([]*dbmysql.User, error)
}

type chatRepo struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepo{db: db}
}

// Append durably stores msg. MySQL assigns id and created_at; the returned
// record is the canonical stored form.
func (r *chatRepo) Append(ctx context.Context, msg *dbmysql.Message) (*dbmysql.Message, error) {
	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		return nil, &common.StorageError{Op: "append message", Err: err}
	}
	return msg, nil
}

// RecentBetween returns at most limit messages exchanged between the
// unordered pair {userA, userB}, newest first by created_at then id. The id
// tiebreak keeps the order deterministic when two rows share a timestamp.
func (r *chatRepo) RecentBetween(ctx context.Context, userA, userB uint64, limit int) ([]*dbmysql.Message, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	var messages []*dbmysql.Message
	err := r.db.WithContext(ctx).
		Where("(from_user_id = ? AND to_user_id = ?) OR (from_user_id = ? AND to_user_id = ?)",
			userA, userB, userB, userA).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, &common.StorageError{Op: "fetch history", Err: err}
	}
	return messages, nil
}

// Partners returns every user the given user has exchanged at least one
// message with, in either direction, excluding the user itself.
func (r *chatRepo) Partners(ctx context.Context, userID uint64) ([]*dbmysql.User, error) {
	var users []*dbmysql.User
	err := r.db.WithContext(ctx).Raw(
		`SELECT u.user_id, u.handle, u.created_at FROM users u
		WHERE u.user_id <> ?
		AND EXISTS (
			SELECT 1 FROM messages m
			WHERE (m.from_user_id = ? AND m.to_user_id = u.user_id)
			OR (m.from_user_id = u.user_id AND m.to_user_id = ?)
		)`, userID, userID, userID).
		Scan(&users).Error
	if err != nil {
		return nil, &common.StorageError{Op: "fetch partners", Err: err}
	}
	return users, nil
}
