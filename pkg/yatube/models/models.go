package models

import "gorm.io/gorm"

// AllModels returns all models for migration
// Note: parents must be migrated before the tables referencing them
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&Group{},
		&Post{},
		&Comment{},
		&Follow{},
	}
}

// AutoMigrate runs GORM auto-migration for all models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}

// Newest orders posts newest first. Every post listing goes through it.
func Newest(db *gorm.DB) *gorm.DB {
	return db.Order("posts.pub_date DESC").Order("posts.id DESC")
}

// NewestComments orders comments newest first
func NewestComments(db *gorm.DB) *gorm.DB {
	return db.Order("comments.created DESC").Order("comments.id DESC")
}

// WithAuthorAndGroup preloads what a post card needs
func WithAuthorAndGroup(db *gorm.DB) *gorm.DB {
	return db.Preload("Author").Preload("Group")
}

// CountPostsByAuthor returns the number of posts written by a user
func CountPostsByAuthor(db *gorm.DB, authorID uint) (int64, error) {
	var count int64
	err := db.Model(&Post{}).Where("author_id = ?", authorID).Count(&count).Error
	return count, err
}

// IsFollowing reports whether user follows author
func IsFollowing(db *gorm.DB, userID, authorID uint) (bool, error) {
	var count int64
	err := db.Model(&Follow{}).Where("user_id = ? AND author_id = ?", userID, authorID).Count(&count).Error
	return count > 0, err
}
