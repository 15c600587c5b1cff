// Package brand manages the client/brand logos on the home page.
package brand

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/folioworks/core/internal/media"
	"github.com/folioworks/core/internal/models"
	"github.com/folioworks/core/internal/pkg/fields"
	"github.com/folioworks/core/internal/pkg/pagination"
	"github.com/folioworks/core/internal/pkg/response"
)

var ErrValidation = errors.New("validation failed")

// Legacy alias mapping for the family:
//
//	websiteUrl ⇐ website, url
//	logo       ⇐ logoUrl (URL only, no stored public id)

type CreateBrandDTO struct {
	Name       string           `json:"name" binding:"required,max=150"`
	WebsiteURL string           `json:"websiteUrl" binding:"omitempty,url"`
	Website    string           `json:"website"    binding:"omitempty,url"`
	URL        string           `json:"url"        binding:"omitempty,url"`
	Logo       *models.MediaRef `json:"logo"`
	LogoURL    string           `json:"logoUrl"`
	SortOrder  *int             `json:"sortOrder"`
}

type UpdateBrandDTO struct {
	Name       *string          `json:"name" binding:"omitempty,max=150"`
	WebsiteURL *string          `json:"websiteUrl" binding:"omitempty,url"`
	Website    *string          `json:"website"    binding:"omitempty,url"`
	URL        *string          `json:"url"        binding:"omitempty,url"`
	Logo       *models.MediaRef `json:"logo"`
	LogoURL    *string          `json:"logoUrl"`
	SortOrder  *int             `json:"sortOrder"`
}

type Service struct {
	db *gorm.DB
	co *media.Coordinator
}

func NewService(db *gorm.DB, co *media.Coordinator) *Service {
	return &Service{db: db, co: co}
}

func (s *Service) List(ctx context.Context, q pagination.Query) ([]models.BrandModel, response.Pagination, error) {
	tx := s.db.WithContext(ctx).Model(&models.BrandModel{}).
		Order("sort_order ASC, created_at DESC")
	var items []models.BrandModel
	pag, err := pagination.Paginate(tx, q, &items)
	return items, pag, err
}

func (s *Service) GetByID(ctx context.Context, id string) (*models.BrandModel, error) {
	var m models.BrandModel
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *Service) Create(ctx context.Context, dto *CreateBrandDTO) (*models.BrandModel, error) {
	name := fields.Trimmed(dto.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}

	m := &models.BrandModel{
		Name:       name,
		WebsiteURL: fields.FirstNonEmpty(dto.WebsiteURL, dto.Website, dto.URL),
	}
	if dto.Logo != nil {
		m.Logo = *dto.Logo
	} else if u := fields.Trimmed(dto.LogoURL); u != "" {
		m.Logo = models.MediaRef{URL: u}
	}
	if dto.SortOrder != nil {
		m.SortOrder = *dto.SortOrder
	}
	if err := s.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) Update(ctx context.Context, id string, dto *UpdateBrandDTO) (*models.BrandModel, error) {
	m, err := s.GetByID(ctx, id)
	if err != nil || m == nil {
		return m, err
	}
	oldLogo := m.Logo

	if dto.WebsiteURL == nil {
		for _, alias := range []*string{dto.Website, dto.URL} {
			if alias != nil {
				dto.WebsiteURL = alias
				break
			}
		}
	}
	if dto.Name != nil {
		n := fields.Trimmed(*dto.Name)
		if n == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrValidation)
		}
		m.Name = n
	}
	if dto.WebsiteURL != nil {
		m.WebsiteURL = fields.Trimmed(*dto.WebsiteURL)
	}
	if dto.Logo != nil {
		m.Logo = media.MergeRef(m.Logo, *dto.Logo)
	} else if dto.LogoURL != nil {
		if u := fields.Trimmed(*dto.LogoURL); u != "" {
			m.Logo = media.MergeRef(m.Logo, models.MediaRef{URL: u})
		}
	}
	if dto.SortOrder != nil {
		m.SortOrder = *dto.SortOrder
	}

	if err := s.db.WithContext(ctx).Save(m).Error; err != nil {
		return nil, err
	}
	s.co.ReplaceIfChanged(ctx, oldLogo, m.Logo)
	return m, nil
}

func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	m, err := s.GetByID(ctx, id)
	if err != nil || m == nil {
		return false, err
	}
	if err := s.db.WithContext(ctx).Delete(&models.BrandModel{}, "id = ?", id).Error; err != nil {
		return false, err
	}
	s.co.Release(ctx, m.Logo)
	return true, nil
}

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/brands")
	{
		g.GET("", h.list)
		g.GET("/:id", h.get)
		g.POST("", authMW, h.create)
		g.PUT("/:id", authMW, h.update)
		g.DELETE("/:id", authMW, h.remove)
	}
}

func (h *Handler) list(c *gin.Context) {
	items, pag, err := h.svc.List(c.Request.Context(), pagination.FromContext(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, items, pag)
}

func (h *Handler) get(c *gin.Context) {
	m, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if m == nil {
		response.NotFound(c, "brand not found")
		return
	}
	response.OK(c, m)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateBrandDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	m, err := h.svc.Create(c.Request.Context(), &dto)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Created(c, m)
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateBrandDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	m, err := h.svc.Update(c.Request.Context(), c.Param("id"), &dto)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if m == nil {
		response.NotFound(c, "brand not found")
		return
	}
	response.OK(c, m)
}

func (h *Handler) remove(c *gin.Context) {
	found, err := h.svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if !found {
		response.NotFound(c, "brand not found")
		return
	}
	response.OK(c, gin.H{"deleted": true})
}

func respondServiceError(c *gin.Context, err error) {
	if errors.Is(err, ErrValidation) {
		response.BadRequest(c, err.Error())
		return
	}
	response.InternalError(c, err)
}
