package post

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/folioworks/core/internal/media"
	"github.com/folioworks/core/internal/models"
	"github.com/folioworks/core/internal/pkg/fields"
	"github.com/folioworks/core/internal/pkg/pagination"
	"github.com/folioworks/core/internal/pkg/response"
	"github.com/folioworks/core/internal/pkg/slug"
)

var (
	ErrSlugConflict = errors.New("slug already in use")
	ErrValidation   = errors.New("validation failed")
)

type Service struct {
	db *gorm.DB
	co *media.Coordinator
}

func NewService(db *gorm.DB, co *media.Coordinator) *Service {
	return &Service{db: db, co: co}
}

func (s *Service) List(ctx context.Context, q pagination.Query, lq ListQuery) ([]models.PostModel, response.Pagination, error) {
	tx := s.db.WithContext(ctx).Model(&models.PostModel{}).
		Order("sort_order ASC, created_at DESC")
	if lq.Published != nil {
		tx = tx.Where("published = ?", *lq.Published)
	}
	if lq.Featured != nil {
		tx = tx.Where("featured = ?", *lq.Featured)
	}
	if lq.Category != nil && *lq.Category != "" {
		tx = tx.Where("category = ?", *lq.Category)
	}
	if lq.Tag != nil && *lq.Tag != "" {
		// tags are stored as a JSON array; match the quoted element.
		tx = tx.Where("tags LIKE ?", fmt.Sprintf(`%%"%s"%%`, *lq.Tag))
	}

	var items []models.PostModel
	pag, err := pagination.Paginate(tx, q, &items)
	return items, pag, err
}

func (s *Service) GetByID(ctx context.Context, id string) (*models.PostModel, error) {
	var p models.PostModel
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Service) GetBySlug(ctx context.Context, sl string) (*models.PostModel, error) {
	var p models.PostModel
	err := s.db.WithContext(ctx).Where("slug = ?", sl).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Service) Create(ctx context.Context, dto *CreatePostDTO) (*models.PostModel, error) {
	dto.normalize()
	if dto.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}

	sl := dto.Slug
	if sl == "" {
		sl = slug.Derive(dto.Title)
	} else {
		sl = slug.Derive(sl)
	}
	if sl == "" {
		return nil, fmt.Errorf("%w: cannot derive a slug from the title", ErrValidation)
	}
	if err := s.ensureSlugFree(ctx, sl, ""); err != nil {
		return nil, err
	}

	p := &models.PostModel{
		Title:    dto.Title,
		Slug:     sl,
		Body:     dto.Body,
		Excerpt:  dto.Excerpt,
		Category: dto.Category,
		Tags:     models.StringSlice(dto.Tags),
	}
	if dto.Cover != nil {
		p.Cover = *dto.Cover
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
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Update(ctx context.Context, id string, dto *UpdatePostDTO) (*models.PostModel, error) {
	dto.normalize()

	p, err := s.GetByID(ctx, id)
	if err != nil || p == nil {
		return p, err
	}
	oldCover := p.Cover

	if dto.Title != nil {
		t := fields.Trimmed(*dto.Title)
		if t == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", ErrValidation)
		}
		p.Title = t
	}
	if dto.Slug != nil {
		sl := slug.Derive(*dto.Slug)
		if sl == "" {
			return nil, fmt.Errorf("%w: invalid slug", ErrValidation)
		}
		if sl != p.Slug {
			if err := s.ensureSlugFree(ctx, sl, p.ID); err != nil {
				return nil, err
			}
			p.Slug = sl
		}
	}
	if dto.Body != nil {
		p.Body = fields.Trimmed(*dto.Body)
	}
	if dto.Excerpt != nil {
		p.Excerpt = fields.Trimmed(*dto.Excerpt)
	}
	if dto.Category != nil {
		p.Category = fields.Trimmed(*dto.Category)
	}
	if dto.Tags != nil {
		p.Tags = models.StringSlice(*dto.Tags)
	}
	if dto.Cover != nil {
		p.Cover = media.MergeRef(p.Cover, *dto.Cover)
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
	s.co.ReplaceIfChanged(ctx, oldCover, p.Cover)
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil || p == nil {
		return false, err
	}
	if err := s.db.WithContext(ctx).Delete(&models.PostModel{}, "id = ?", id).Error; err != nil {
		return false, err
	}
	s.co.Release(ctx, p.Cover)
	return true, nil
}

func (s *Service) ensureSlugFree(ctx context.Context, sl, excludeID string) error {
	tx := s.db.WithContext(ctx).Model(&models.PostModel{}).Where("slug = ?", sl)
	if excludeID != "" {
		tx = tx.Where("id <> ?", excludeID)
	}
	var n int64
	if err := tx.Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w: %q", ErrSlugConflict, sl)
	}
	return nil
}
