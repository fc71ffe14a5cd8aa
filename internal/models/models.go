package models

import (
	"time"

	"gorm.io/gorm"
)

// Role identifies the author of a chat message as persisted. The stored
// values are "user" and "ai"; any provider-specific naming (e.g. "assistant")
// is a request-time translation, never written to the database.
type Role string

const (
	RoleUser Role = "user"
	RoleAI   Role = "ai"
)

// Entry represents a journal entry. Rows are never physically removed:
// deleting sets DeletedAt and listing/context queries skip those rows.
type Entry struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Content   string         `json:"content" gorm:"type:text;not null"`
	Mood      string         `json:"mood,omitempty" gorm:"type:varchar(50)"`
	CreatedAt time.Time      `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`

	// Reserved for a future summarization feature; no operation writes it.
	AISummary string `json:"ai_summary,omitempty" gorm:"type:text"`
}

// TableName specifies the table name for GORM
func (Entry) TableName() string {
	return "entries"
}

// ChatMessage is one turn of the assistant conversation. The log is
// append-only: there is no update operation, and the only delete is the
// full history wipe.
type ChatMessage struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Role      Role      `json:"role" gorm:"type:varchar(20);not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName specifies the table name for GORM
func (ChatMessage) TableName() string {
	return "chat_messages"
}
