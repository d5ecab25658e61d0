// Package models contains data structures for the application's domain models.
package models

import "time"

// User represents an account in the Homiee application. Communities is a
// cached projection of Hobbies against the community catalog; it is always
// recomputed, never hand-edited.
type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	FirstName    string     `gorm:"size:60;not null" json:"firstName"`
	LastName     string     `gorm:"size:60;not null" json:"lastName"`
	UserName     string     `gorm:"size:60;uniqueIndex;not null" json:"userName"`
	Email        string     `gorm:"size:254;uniqueIndex;not null" json:"email"`
	Password     string     `gorm:"not null" json:"-"`
	Hobbies      StringList `gorm:"type:text" json:"hobbies"`
	Description  string     `gorm:"type:text" json:"description"`
	ProfileImage string     `json:"profileImage"`
	Communities  StringList `gorm:"type:text" json:"communities"`
	Posts        []Post     `gorm:"foreignKey:UserID" json:"posts"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// DisplayName is the "First Last" form used in sender snapshots.
func (u *User) DisplayName() string {
	return u.FirstName + " " + u.LastName
}

// Snapshot captures the user's identity for denormalized embedding in
// comments and chat messages.
func (u *User) Snapshot() SenderSnapshot {
	return SenderSnapshot{
		Email:  u.Email,
		Name:   u.DisplayName(),
		Avatar: u.ProfileImage,
	}
}
