package post

import (
	"github.com/folioworks/core/internal/models"
	"github.com/folioworks/core/internal/pkg/fields"
)

// Legacy alias mapping for the family (canonical-first):
//
//	body  ⇐ content, text
//	cover ⇐ coverImage (URL only, no stored public id)

// CreatePostDTO is the request body for creating a blog post.
type CreatePostDTO struct {
	Title      string           `json:"title"    binding:"required,max=200"`
	Slug       string           `json:"slug"     binding:"max=200"`
	Body       string           `json:"body"`
	Content    string           `json:"content"`
	Text       string           `json:"text"`
	Excerpt    string           `json:"excerpt"  binding:"max=1000"`
	Category   string           `json:"category" binding:"max=100"`
	Tags       fields.List      `json:"tags"`
	Cover      *models.MediaRef `json:"cover"`
	CoverImage string           `json:"coverImage"`
	Published  *bool            `json:"published"`
	Featured   *bool            `json:"featured"`
	SortOrder  *int             `json:"sortOrder"`
}

func (d *CreatePostDTO) normalize() {
	d.Title = fields.Trimmed(d.Title)
	d.Slug = fields.Trimmed(d.Slug)
	d.Body = fields.FirstNonEmpty(d.Body, d.Content, d.Text)
	d.Excerpt = fields.Trimmed(d.Excerpt)
	d.Category = fields.Trimmed(d.Category)
	if d.Cover == nil {
		if u := fields.Trimmed(d.CoverImage); u != "" {
			d.Cover = &models.MediaRef{URL: u}
		}
	}
}

// UpdatePostDTO is the request body for updating a post; all fields optional.
type UpdatePostDTO struct {
	Title      *string          `json:"title"    binding:"omitempty,max=200"`
	Slug       *string          `json:"slug"     binding:"omitempty,max=200"`
	Body       *string          `json:"body"`
	Content    *string          `json:"content"`
	Text       *string          `json:"text"`
	Excerpt    *string          `json:"excerpt"  binding:"omitempty,max=1000"`
	Category   *string          `json:"category" binding:"omitempty,max=100"`
	Tags       *fields.List     `json:"tags"`
	Cover      *models.MediaRef `json:"cover"`
	CoverImage *string          `json:"coverImage"`
	Published  *bool            `json:"published"`
	Featured   *bool            `json:"featured"`
	SortOrder  *int             `json:"sortOrder"`
}

func (d *UpdatePostDTO) normalize() {
	if d.Body == nil {
		if d.Content != nil {
			d.Body = d.Content
		} else if d.Text != nil {
			d.Body = d.Text
		}
	}
	if d.Cover == nil && d.CoverImage != nil {
		if u := fields.Trimmed(*d.CoverImage); u != "" {
			d.Cover = &models.MediaRef{URL: u}
		}
	}
}

// ListQuery holds the public list filters.
type ListQuery struct {
	Published *bool   `form:"published"`
	Featured  *bool   `form:"featured"`
	Category  *string `form:"category"`
	Tag       *string `form:"tag"`
}
