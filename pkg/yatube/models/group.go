package models

import "regexp"

var slugRegex = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

// Group is a topic posts can be published in.
// Groups are reference data managed from the CLI.
type Group struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	Title       string `gorm:"size:200;not null" json:"title"`
	Slug        string `gorm:"uniqueIndex;size:50;not null" json:"slug"`
	Description string `gorm:"type:text" json:"description"`
}

func (g Group) String() string {
	return g.Title
}

// ValidSlug reports whether slug is URL-safe
func ValidSlug(slug string) bool {
	return slug != "" && len(slug) <= 50 && slugRegex.MatchString(slug)
}
