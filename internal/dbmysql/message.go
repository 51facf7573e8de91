package dbmysql

import (
	"time"
)

// Message is append-only. ID and CreatedAt are assigned by MySQL at insert
// time, never by the caller; the auto-increment key also serializes id
// ordering against commit ordering.
type Message struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	FromUserID  uint64    `gorm:"column:from_user_id;index:idx_conversation" json:"from_user_id"`
	ToUserID    uint64    `gorm:"column:to_user_id;index:idx_conversation" json:"to_user_id"`
	Content     string    `gorm:"type:text" json:"content"`
	MessageType string    `gorm:"column:message_type;size:20" json:"message_type"`
	MediaRef    string    `gorm:"column:media_ref;size:500" json:"media_ref,omitempty"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
