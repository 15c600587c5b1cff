package project

import (
	"github.com/folioworks/core/internal/models"
	"github.com/folioworks/core/internal/pkg/fields"
)

// Legacy aliases accepted from older dashboard builds. Resolution is
// canonical-first, then aliases in declared order; this block is the single
// mapping for the family:
//
//	techStack ⇐ technologies, stack
//	image     ⇐ projectImage (URL only: yields a media ref without a stored
//	            public id, the lossy-legacy case)
//
// Unknown body fields are dropped, never persisted.

// CreateProjectDTO is the request body for creating a project.
type CreateProjectDTO struct {
	Title        string           `json:"title"       binding:"required,max=200"`
	Slug         string           `json:"slug"        binding:"max=200"`
	Description  string           `json:"description" binding:"required,max=5000"`
	TechStack    fields.List      `json:"techStack"`
	Technologies fields.List      `json:"technologies"`
	Stack        fields.List      `json:"stack"`
	Image        *models.MediaRef `json:"image"`
	ProjectImage string           `json:"projectImage"`
	RepoURL      string           `json:"repoUrl"     binding:"max=500"`
	LiveURL      string           `json:"liveUrl"     binding:"max=500"`
	Published    *bool            `json:"published"`
	Featured     *bool            `json:"featured"`
	SortOrder    *int             `json:"sortOrder"`
}

// normalize trims free text and collapses legacy aliases.
func (d *CreateProjectDTO) normalize() {
	d.Title = fields.Trimmed(d.Title)
	d.Slug = fields.Trimmed(d.Slug)
	d.Description = fields.Trimmed(d.Description)
	d.RepoURL = fields.Trimmed(d.RepoURL)
	d.LiveURL = fields.Trimmed(d.LiveURL)

	if len(d.TechStack) == 0 {
		if len(d.Technologies) > 0 {
			d.TechStack = d.Technologies
		} else if len(d.Stack) > 0 {
			d.TechStack = d.Stack
		}
	}
	if d.Image == nil {
		if u := fields.Trimmed(d.ProjectImage); u != "" {
			d.Image = &models.MediaRef{URL: u}
		}
	}
}

// UpdateProjectDTO is the request body for updating a project; all fields are
// optional and only provided ones are merged. The alias mapping matches
// CreateProjectDTO.
type UpdateProjectDTO struct {
	Title        *string          `json:"title"       binding:"omitempty,max=200"`
	Slug         *string          `json:"slug"        binding:"omitempty,max=200"`
	Description  *string          `json:"description" binding:"omitempty,max=5000"`
	TechStack    *fields.List     `json:"techStack"`
	Technologies *fields.List     `json:"technologies"`
	Stack        *fields.List     `json:"stack"`
	Image        *models.MediaRef `json:"image"`
	ProjectImage *string          `json:"projectImage"`
	RepoURL      *string          `json:"repoUrl"     binding:"omitempty,max=500"`
	LiveURL      *string          `json:"liveUrl"     binding:"omitempty,max=500"`
	Published    *bool            `json:"published"`
	Featured     *bool            `json:"featured"`
	SortOrder    *int             `json:"sortOrder"`
}

func (d *UpdateProjectDTO) normalize() {
	if d.TechStack == nil {
		if d.Technologies != nil {
			d.TechStack = d.Technologies
		} else if d.Stack != nil {
			d.TechStack = d.Stack
		}
	}
	if d.Image == nil && d.ProjectImage != nil {
		if u := fields.Trimmed(*d.ProjectImage); u != "" {
			d.Image = &models.MediaRef{URL: u}
		}
	}
}

// ListQuery holds the public list filters, applied as equality predicates.
type ListQuery struct {
	Published *bool `form:"published"`
	Featured  *bool `form:"featured"`
}
