package models

import "time"

// Post is a user-authored feed entry. Posts are rows addressable by
// (owner, id); the primary key doubles as the collision-free post id that
// replaced the source system's timestamp-derived ids.
type Post struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"not null;index" json:"-"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
	Content   string     `gorm:"type:text" json:"content"`
	Media     string     `json:"media,omitempty"`
	MediaType string     `gorm:"size:120" json:"mediaType,omitempty"`
	Hashtags  StringList `gorm:"type:text" json:"hashtags"`
	// Likes is a plain counter, not a per-user relation: the same caller may
	// like repeatedly. Decrements clamp at zero.
	Likes     int       `gorm:"not null;default:0" json:"likes"`
	Comments  []Comment `gorm:"foreignKey:PostID" json:"comments"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Comment is an append-only entry on a post. Sender identity is a
// denormalized snapshot; there is no edit or delete operation.
type Comment struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	PostID    uint           `gorm:"not null;index" json:"-"`
	Sender    SenderSnapshot `gorm:"embedded;embeddedPrefix:sender_" json:"user"`
	Text      string         `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time      `json:"timestamp"`
}

// AuthorSnapshot is the shallow author projection attached to feed items.
// Unlike comment/chat snapshots it is taken live at query time.
type AuthorSnapshot struct {
	Email        string     `json:"email,omitempty"`
	FirstName    string     `json:"firstName"`
	LastName     string     `json:"lastName"`
	ProfileImage string     `json:"profileImage"`
	Hobbies      StringList `json:"hobbies,omitempty"`
}

// FeedPost pairs a post with its author snapshot for feed responses.
type FeedPost struct {
	Post
	Author AuthorSnapshot `json:"user"`
}
