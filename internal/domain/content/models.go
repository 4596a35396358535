package content

import (
	"time"

	"services-portal/internal/domain/users"
)

// AllowedIcons is the closed set of icon identifiers the service editor
// accepts. Unknown values are rejected at the boundary instead of silently
// falling back to a default glyph.
var AllowedIcons = map[string]bool{
	"web":      true,
	"mobile":   true,
	"cloud":    true,
	"security": true,
	"support":  true,
	"database": true,
	"network":  true,
}

// Service is a public brochure entry for one offering.
type Service struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"not null" json:"name"`
	Slug         string `gorm:"not null;uniqueIndex:idx_services_slug" json:"slug"`
	Summary      string `json:"summary"`
	Body         string `json:"body"`
	Icon         string `gorm:"type:varchar(30)" json:"icon"`
	IsActive     bool   `gorm:"not null;default:true;index" json:"is_active"`
	DisplayOrder int    `gorm:"not null;default:0" json:"display_order"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type BlogPost struct {
	ID       uint       `gorm:"primaryKey" json:"id"`
	AuthorID uint       `gorm:"index" json:"author_id"`
	Author   users.User `gorm:"foreignKey:AuthorID" json:"-"`

	Title   string `gorm:"not null" json:"title"`
	Slug    string `gorm:"not null;uniqueIndex:idx_blog_posts_slug" json:"slug"`
	Excerpt string `json:"excerpt"`
	Body    string `json:"body"`

	PublishedAt *time.Time `gorm:"index" json:"published_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ContactMessage struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"not null" json:"name"`
	Email   string `gorm:"not null" json:"email"`
	Subject string `json:"subject"`
	Message string `gorm:"not null" json:"message"`

	CreatedAt time.Time `json:"created_at"`
}
