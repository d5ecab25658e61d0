package models

import "time"

// Chat message envelope types.
const (
	ChatMessageText  = "text"
	ChatMessageFile  = "file"
	ChatMessageAudio = "audio"
)

// ChatThread is the append-only message log for one community. Threads are
// created lazily on first message; the unique index on CommunityName is what
// keeps concurrent first-posts from creating duplicates.
type ChatThread struct {
	ID            uint          `gorm:"primaryKey" json:"-"`
	CommunityName string        `gorm:"size:120;uniqueIndex;not null" json:"communityName"`
	Messages      []ChatMessage `gorm:"foreignKey:ThreadID" json:"messages"`
	CreatedAt     time.Time     `json:"-"`
}

// ChatMessage is one immutable entry in a community thread. Type selects
// which of the optional payload fields are populated.
type ChatMessage struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	ThreadID  uint           `gorm:"not null;index" json:"-"`
	Sender    SenderSnapshot `gorm:"embedded;embeddedPrefix:sender_" json:"user"`
	Text      string         `gorm:"type:text" json:"text"`
	Type      string         `gorm:"size:12;not null;default:'text'" json:"type"`
	FileURL   string         `json:"fileUrl,omitempty"`
	AudioURL  string         `json:"audioUrl,omitempty"`
	FileType  string         `gorm:"size:120" json:"fileType,omitempty"`
	CreatedAt time.Time      `json:"timestamp"`
}
