package models

import "time"

// Community is a hobby-based grouping from the static catalog. Name is the
// primary matching key; Hobbies is the list of hobby strings the community
// matches against for membership lookups.
type Community struct {
	ID        uint       `gorm:"primaryKey" json:"-"`
	Name      string     `gorm:"size:120;uniqueIndex;not null" json:"name"`
	Icon      string     `gorm:"size:60" json:"icon"`
	Hobbies   StringList `gorm:"type:text" json:"hobbies"`
	CreatedAt time.Time  `json:"-"`
}
