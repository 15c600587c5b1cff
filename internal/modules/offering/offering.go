// Package offering manages the services shown on the site ("what I do" cards).
package offering

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
//	name ⇐ title
//	icon ⇐ iconUrl (URL only, no stored public id)

type CreateServiceDTO struct {
	Name        string           `json:"name"  binding:"max=150"`
	Title       string           `json:"title" binding:"max=150"`
	Description string           `json:"description" binding:"required,max=2000"`
	Icon        *models.MediaRef `json:"icon"`
	IconURL     string           `json:"iconUrl"`
	SortOrder   *int             `json:"sortOrder"`
}

type UpdateServiceDTO struct {
	Name        *string          `json:"name"  binding:"omitempty,max=150"`
	Title       *string          `json:"title" binding:"omitempty,max=150"`
	Description *string          `json:"description" binding:"omitempty,max=2000"`
	Icon        *models.MediaRef `json:"icon"`
	IconURL     *string          `json:"iconUrl"`
	SortOrder   *int             `json:"sortOrder"`
}

type Service struct {
	db *gorm.DB
	co *media.Coordinator
}

func NewService(db *gorm.DB, co *media.Coordinator) *Service {
	return &Service{db: db, co: co}
}

func (s *Service) List(ctx context.Context, q pagination.Query) ([]models.ServiceModel, response.Pagination, error) {
	tx := s.db.WithContext(ctx).Model(&models.ServiceModel{}).
		Order("sort_order ASC, created_at DESC")
	var items []models.ServiceModel
	pag, err := pagination.Paginate(tx, q, &items)
	return items, pag, err
}

func (s *Service) GetByID(ctx context.Context, id string) (*models.ServiceModel, error) {
	var m models.ServiceModel
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *Service) Create(ctx context.Context, dto *CreateServiceDTO) (*models.ServiceModel, error) {
	name := fields.FirstNonEmpty(dto.Name, dto.Title)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	desc := fields.Trimmed(dto.Description)
	if desc == "" {
		return nil, fmt.Errorf("%w: description is required", ErrValidation)
	}

	m := &models.ServiceModel{Name: name, Description: desc}
	if dto.Icon != nil {
		m.Icon = *dto.Icon
	} else if u := fields.Trimmed(dto.IconURL); u != "" {
		m.Icon = models.MediaRef{URL: u}
	}
	if dto.SortOrder != nil {
		m.SortOrder = *dto.SortOrder
	}
	if err := s.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) Update(ctx context.Context, id string, dto *UpdateServiceDTO) (*models.ServiceModel, error) {
	m, err := s.GetByID(ctx, id)
	if err != nil || m == nil {
		return m, err
	}
	oldIcon := m.Icon

	if dto.Name == nil && dto.Title != nil {
		dto.Name = dto.Title
	}
	if dto.Name != nil {
		n := fields.Trimmed(*dto.Name)
		if n == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrValidation)
		}
		m.Name = n
	}
	if dto.Description != nil {
		d := fields.Trimmed(*dto.Description)
		if d == "" {
			return nil, fmt.Errorf("%w: description cannot be empty", ErrValidation)
		}
		m.Description = d
	}
	if dto.Icon != nil {
		m.Icon = media.MergeRef(m.Icon, *dto.Icon)
	} else if dto.IconURL != nil {
		if u := fields.Trimmed(*dto.IconURL); u != "" {
			m.Icon = media.MergeRef(m.Icon, models.MediaRef{URL: u})
		}
	}
	if dto.SortOrder != nil {
		m.SortOrder = *dto.SortOrder
	}

	if err := s.db.WithContext(ctx).Save(m).Error; err != nil {
		return nil, err
	}
	s.co.ReplaceIfChanged(ctx, oldIcon, m.Icon)
	return m, nil
}

func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	m, err := s.GetByID(ctx, id)
	if err != nil || m == nil {
		return false, err
	}
	if err := s.db.WithContext(ctx).Delete(&models.ServiceModel{}, "id = ?", id).Error; err != nil {
		return false, err
	}
	s.co.Release(ctx, m.Icon)
	return true, nil
}

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/services")
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
		response.NotFound(c, "service not found")
		return
	}
	response.OK(c, m)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateServiceDTO
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
	var dto UpdateServiceDTO
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
		response.NotFound(c, "service not found")
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
		response.NotFound(c, "service not found")
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
