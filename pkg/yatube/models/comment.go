package models

import "time"

// Comment is a reply to a post
type Comment struct {
	ID       uint      `gorm:"primarykey" json:"id"`
	PostID   uint      `gorm:"not null;index" json:"post_id"`
	AuthorID uint      `gorm:"not null;index" json:"author_id"`
	Text     string    `gorm:"type:text;not null" json:"text"`
	Created  time.Time `gorm:"autoCreateTime;index" json:"created"`

	Author User `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author,omitempty"`
}

// String returns the first 30 characters of the text
func (c Comment) String() string {
	return truncate(c.Text, 30)
}
