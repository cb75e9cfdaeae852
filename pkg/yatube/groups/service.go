package groups

import (
	"errors"
	"strings"

	"github.com/yatube/yatube/pkg/yatube/database"
	"github.com/yatube/yatube/pkg/yatube/models"
	"gorm.io/gorm"
)

var (
	ErrInvalidSlug  = errors.New("slug may contain only letters, numbers, underscores and hyphens (max 50)")
	ErrSlugTaken    = errors.New("a group with this slug already exists")
	ErrTitleMissing = errors.New("title is required")
	ErrNotFound     = errors.New("group not found")
)

// Service manages groups. Groups have no web editor, the CLI uses this.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) Create(title, slug, description string) (*models.Group, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrTitleMissing
	}
	if !models.ValidSlug(slug) {
		return nil, ErrInvalidSlug
	}
	group := models.Group{Title: title, Slug: slug, Description: description}
	if err := s.db.Create(&group).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrSlugTaken
		}
		return nil, err
	}
	return &group, nil
}

// GroupStat is a group with its number of posts
type GroupStat struct {
	models.Group
	PostCount int64
}

// List returns all groups ordered by title
func (s *Service) List() ([]GroupStat, error) {
	var groups []models.Group
	if err := s.db.Order("title").Find(&groups).Error; err != nil {
		return nil, err
	}
	stats := make([]GroupStat, len(groups))
	for i, g := range groups {
		stats[i].Group = g
		if err := s.db.Model(&models.Post{}).Where("group_id = ?", g.ID).Count(&stats[i].PostCount).Error; err != nil {
			return nil, err
		}
	}
	return stats, nil
}

// Delete removes the group by slug. Its posts are kept without a group.
func (s *Service) Delete(slug string) error {
	var group models.Group
	err := s.db.Where("slug = ?", slug).First(&group).Error
	if database.IsNotFound(err) {
		return ErrNotFound
	} else if err != nil {
		return err
	}
	return models.DeleteGroup(s.db, group.ID)
}
