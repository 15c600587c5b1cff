package project

import (
	"context"
	"errors"
	"fmt"

	"github.com/folioworks/core/internal/media"
	"github.com/folioworks/core/internal/models"
	"github.com/folioworks/core/internal/pkg/fields"
	"github.com/folioworks/core/internal/pkg/pagination"
	"github.com/folioworks/core/internal/pkg/response"
	"github.com/folioworks/core/internal/pkg/slug"
	"gorm.io/gorm"
)

var (
	ErrSlugConflict = errors.New("slug already exists")
	ErrValidation   = errors.New("validation failed")
)

// Service handles project business logic.
type Service struct {
	db *gorm.DB
	co *media.Coordinator
}

func NewService(db *gorm.DB, co *media.Coordinator) *Service {
	return &Service{db: db, co: co}
}

// List returns projects matching the equality filters, ordered by the
// explicit sort field first, then creation time descending as a stable
// tie-break.
func (s *Service) List(ctx context.Context, q pagination.Query, lq ListQuery) ([]models.ProjectModel, response.Pagination, error) {
	tx := s.db.WithContext(ctx).Model(&models.ProjectModel{}).
		Order("sort_order ASC, created_at DESC")
	if lq.Published != nil {
		tx = tx.Where("published = ?", *lq.Published)
	}
	if lq.Featured != nil {
		tx = tx.Where("featured = ?", *lq.Featured)
	}

	var items []models.ProjectModel
	pag, err := pagination.Paginate(tx, q, &items)
	return items, pag, err
}

// GetByID fetches a single project; (nil, nil) when absent.
func (s *Service) GetByID(ctx context.Context, id string) (*models.ProjectModel, error) {
	var p models.ProjectModel
	if err := s.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// Create inserts a new project, deriving the slug from the title when the
// caller omits one. A slug collision rejects the create.
func (s *Service) Create(ctx context.Context, dto *CreateProjectDTO) (*models.ProjectModel, error) {
	dto.normalize()
	if dto.Title == "" || dto.Description == "" {
		return nil, fmt.Errorf("%w: title and description are required", ErrValidation)
	}

	sl := dto.Slug
	if sl == "" {
		sl = slug.Derive(dto.Title)
	} else {
		sl = slug.Derive(sl)
	}
	if sl == "" {
		return nil, fmt.Errorf("%w: title does not produce a usable slug", ErrValidation)
	}
	if err := s.ensureSlugFree(ctx, sl, ""); err != nil {
		return nil, err
	}

	p := models.ProjectModel{
		Title:       dto.Title,
		Slug:        sl,
		Description: dto.Description,
		TechStack:   models.StringSlice(dto.TechStack),
		RepoURL:     dto.RepoURL,
		LiveURL:     dto.LiveURL,
	}
	if dto.Image != nil {
		p.Image = *dto.Image
	}
	if dto.Published != nil {
		p.Published = *dto.Published
	}
	if dto.Featured != nil {
		p.Featured = *dto.Featured
	}
	if dto.SortOrder != nil {
		p.SortOrder = *dto.SortOrder
	}
	return &p, s.db.WithContext(ctx).Create(&p).Error
}

// Update merges the provided fields into the record, re-running create
// validation. A slug change re-checks uniqueness excluding the record itself.
// When the attachment is swapped, the previous remote asset is released
// best-effort.
func (s *Service) Update(ctx context.Context, id string, dto *UpdateProjectDTO) (*models.ProjectModel, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil || p == nil {
		return p, err
	}

	dto.normalize()
	oldImage := p.Image

	if dto.Title != nil {
		if t := fields.Trimmed(*dto.Title); t == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", ErrValidation)
		} else {
			p.Title = t
		}
	}
	if dto.Description != nil {
		if d := fields.Trimmed(*dto.Description); d == "" {
			return nil, fmt.Errorf("%w: description cannot be empty", ErrValidation)
		} else {
			p.Description = d
		}
	}
	if dto.Slug != nil {
		sl := slug.Derive(fields.Trimmed(*dto.Slug))
		if sl == "" {
			return nil, fmt.Errorf("%w: slug cannot be empty", ErrValidation)
		}
		if sl != p.Slug {
			if err := s.ensureSlugFree(ctx, sl, p.ID); err != nil {
				return nil, err
			}
			p.Slug = sl
		}
	}
	if dto.TechStack != nil {
		p.TechStack = models.StringSlice(*dto.TechStack)
	}
	if dto.Image != nil {
		p.Image = media.MergeRef(p.Image, *dto.Image)
	}
	if dto.RepoURL != nil {
		p.RepoURL = fields.Trimmed(*dto.RepoURL)
	}
	if dto.LiveURL != nil {
		p.LiveURL = fields.Trimmed(*dto.LiveURL)
	}
	if dto.Published != nil {
		p.Published = *dto.Published
	}
	if dto.Featured != nil {
		p.Featured = *dto.Featured
	}
	if dto.SortOrder != nil {
		p.SortOrder = *dto.SortOrder
	}

	if err := s.db.WithContext(ctx).Save(p).Error; err != nil {
		return nil, err
	}
	if dto.Image != nil && s.co != nil {
		s.co.ReplaceIfChanged(ctx, oldImage, p.Image)
	}
	return p, nil
}

// Delete removes the record, then releases its remote asset best-effort. A
// media failure never blocks the delete or the success response.
func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if p == nil {
		return false, nil
	}
	if err := s.db.WithContext(ctx).Delete(&models.ProjectModel{}, "id = ?", id).Error; err != nil {
		return false, err
	}
	if s.co != nil {
		s.co.Release(ctx, p.Image)
	}
	return true, nil
}

func (s *Service) ensureSlugFree(ctx context.Context, sl, excludeID string) error {
	tx := s.db.WithContext(ctx).Model(&models.ProjectModel{}).Where("slug = ?", sl)
	if excludeID != "" {
		tx = tx.Where("id <> ?", excludeID)
	}
	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrSlugConflict
	}
	return nil
}
