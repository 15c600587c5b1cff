// Package social manages the footer social links.
package social

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/folioworks/core/internal/models"
	"github.com/folioworks/core/internal/pkg/fields"
	"github.com/folioworks/core/internal/pkg/pagination"
	"github.com/folioworks/core/internal/pkg/response"
)

var ErrValidation = errors.New("validation failed")

// Legacy alias mapping for the family:
//
//	platform ⇐ name
//	url      ⇐ link

type CreateLinkDTO struct {
	Platform  string `json:"platform" binding:"max=100"`
	Name      string `json:"name"     binding:"max=100"`
	URL       string `json:"url"  binding:"omitempty,url"`
	Link      string `json:"link" binding:"omitempty,url"`
	SortOrder *int   `json:"sortOrder"`
}

type UpdateLinkDTO struct {
	Platform  *string `json:"platform" binding:"omitempty,max=100"`
	Name      *string `json:"name"     binding:"omitempty,max=100"`
	URL       *string `json:"url"  binding:"omitempty,url"`
	Link      *string `json:"link" binding:"omitempty,url"`
	SortOrder *int    `json:"sortOrder"`
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) List(ctx context.Context, q pagination.Query) ([]models.SocialLinkModel, response.Pagination, error) {
	tx := s.db.WithContext(ctx).Model(&models.SocialLinkModel{}).
		Order("sort_order ASC, created_at DESC")
	var items []models.SocialLinkModel
	pag, err := pagination.Paginate(tx, q, &items)
	return items, pag, err
}

func (s *Service) GetByID(ctx context.Context, id string) (*models.SocialLinkModel, error) {
	var m models.SocialLinkModel
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *Service) Create(ctx context.Context, dto *CreateLinkDTO) (*models.SocialLinkModel, error) {
	platform := fields.FirstNonEmpty(dto.Platform, dto.Name)
	if platform == "" {
		return nil, fmt.Errorf("%w: platform is required", ErrValidation)
	}
	url := fields.FirstNonEmpty(dto.URL, dto.Link)
	if url == "" {
		return nil, fmt.Errorf("%w: url is required", ErrValidation)
	}

	m := &models.SocialLinkModel{Platform: platform, URL: url}
	if dto.SortOrder != nil {
		m.SortOrder = *dto.SortOrder
	}
	if err := s.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) Update(ctx context.Context, id string, dto *UpdateLinkDTO) (*models.SocialLinkModel, error) {
	m, err := s.GetByID(ctx, id)
	if err != nil || m == nil {
		return m, err
	}

	if dto.Platform == nil && dto.Name != nil {
		dto.Platform = dto.Name
	}
	if dto.URL == nil && dto.Link != nil {
		dto.URL = dto.Link
	}
	if dto.Platform != nil {
		p := fields.Trimmed(*dto.Platform)
		if p == "" {
			return nil, fmt.Errorf("%w: platform cannot be empty", ErrValidation)
		}
		m.Platform = p
	}
	if dto.URL != nil {
		u := fields.Trimmed(*dto.URL)
		if u == "" {
			return nil, fmt.Errorf("%w: url cannot be empty", ErrValidation)
		}
		m.URL = u
	}
	if dto.SortOrder != nil {
		m.SortOrder = *dto.SortOrder
	}

	if err := s.db.WithContext(ctx).Save(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	m, err := s.GetByID(ctx, id)
	if err != nil || m == nil {
		return false, err
	}
	if err := s.db.WithContext(ctx).Delete(&models.SocialLinkModel{}, "id = ?", id).Error; err != nil {
		return false, err
	}
	return true, nil
}

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/socials")
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
		response.NotFound(c, "social link not found")
		return
	}
	response.OK(c, m)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateLinkDTO
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
	var dto UpdateLinkDTO
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
		response.NotFound(c, "social link not found")
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
		response.NotFound(c, "social link not found")
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
