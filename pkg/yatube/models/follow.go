package models

import "time"

// Follow is a directed subscription: User follows Author.
// The (author, user) pair is unique.
type Follow struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	AuthorID  uint      `gorm:"not null;uniqueIndex:idx_unique_follower" json:"author_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_unique_follower;index" json:"user_id"`

	Author User `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author,omitempty"`
	User   User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user,omitempty"`
}
