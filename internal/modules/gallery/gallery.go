// Package gallery manages the public image gallery.
package gallery

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
//	image ⇐ imageUrl (URL only, no stored public id)

type CreateItemDTO struct {
	Title     string           `json:"title"    binding:"required,max=200"`
	Caption   string           `json:"caption"  binding:"max=2000"`
	Category  string           `json:"category" binding:"max=100"`
	Image     *models.MediaRef `json:"image"`
	ImageURL  string           `json:"imageUrl"`
	Published *bool            `json:"published"`
	SortOrder *int             `json:"sortOrder"`
}

type UpdateItemDTO struct {
	Title     *string          `json:"title"    binding:"omitempty,max=200"`
	Caption   *string          `json:"caption"  binding:"omitempty,max=2000"`
	Category  *string          `json:"category" binding:"omitempty,max=100"`
	Image     *models.MediaRef `json:"image"`
	ImageURL  *string          `json:"imageUrl"`
	Published *bool            `json:"published"`
	SortOrder *int             `json:"sortOrder"`
}

type ListQuery struct {
	Published *bool   `form:"published"`
	Category  *string `form:"category"`
}

type Service struct {
	db *gorm.DB
	co *media.Coordinator
}

func NewService(db *gorm.DB, co *media.Coordinator) *Service {
	return &Service{db: db, co: co}
}

func (s *Service) List(ctx context.Context, q pagination.Query, lq ListQuery) ([]models.GalleryItemModel, response.Pagination, error) {
	tx := s.db.WithContext(ctx).Model(&models.GalleryItemModel{}).
		Order("sort_order ASC, created_at DESC")
	if lq.Published != nil {
		tx = tx.Where("published = ?", *lq.Published)
	}
	if lq.Category != nil && *lq.Category != "" {
		tx = tx.Where("category = ?", *lq.Category)
	}
	var items []models.GalleryItemModel
	pag, err := pagination.Paginate(tx, q, &items)
	return items, pag, err
}

func (s *Service) GetByID(ctx context.Context, id string) (*models.GalleryItemModel, error) {
	var m models.GalleryItemModel
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *Service) Create(ctx context.Context, dto *CreateItemDTO) (*models.GalleryItemModel, error) {
	title := fields.Trimmed(dto.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	img := models.MediaRef{}
	if dto.Image != nil {
		img = *dto.Image
	} else if u := fields.Trimmed(dto.ImageURL); u != "" {
		img = models.MediaRef{URL: u}
	}
	// A gallery entry is meaningless without its image.
	if img.URL == "" {
		return nil, fmt.Errorf("%w: image is required", ErrValidation)
	}

	m := &models.GalleryItemModel{
		Title:    title,
		Caption:  fields.Trimmed(dto.Caption),
		Category: fields.Trimmed(dto.Category),
		Image:    img,
	}
	if dto.Published != nil {
		m.Published = *dto.Published
	}
	if dto.SortOrder != nil {
		m.SortOrder = *dto.SortOrder
	}
	if err := s.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) Update(ctx context.Context, id string, dto *UpdateItemDTO) (*models.GalleryItemModel, error) {
	m, err := s.GetByID(ctx, id)
	if err != nil || m == nil {
		return m, err
	}
	oldImage := m.Image

	if dto.Title != nil {
		t := fields.Trimmed(*dto.Title)
		if t == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", ErrValidation)
		}
		m.Title = t
	}
	if dto.Caption != nil {
		m.Caption = fields.Trimmed(*dto.Caption)
	}
	if dto.Category != nil {
		m.Category = fields.Trimmed(*dto.Category)
	}
	if dto.Image != nil {
		if dto.Image.URL == "" {
			return nil, fmt.Errorf("%w: image cannot be removed", ErrValidation)
		}
		m.Image = media.MergeRef(m.Image, *dto.Image)
	} else if dto.ImageURL != nil {
		if u := fields.Trimmed(*dto.ImageURL); u != "" {
			m.Image = media.MergeRef(m.Image, models.MediaRef{URL: u})
		}
	}
	if dto.Published != nil {
		m.Published = *dto.Published
	}
	if dto.SortOrder != nil {
		m.SortOrder = *dto.SortOrder
	}

	if err := s.db.WithContext(ctx).Save(m).Error; err != nil {
		return nil, err
	}
	s.co.ReplaceIfChanged(ctx, oldImage, m.Image)
	return m, nil
}

func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	m, err := s.GetByID(ctx, id)
	if err != nil || m == nil {
		return false, err
	}
	if err := s.db.WithContext(ctx).Delete(&models.GalleryItemModel{}, "id = ?", id).Error; err != nil {
		return false, err
	}
	s.co.Release(ctx, m.Image)
	return true, nil
}

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/gallery")
	{
		g.GET("", h.list)
		g.GET("/:id", h.get)
		g.POST("", authMW, h.create)
		g.PUT("/:id", authMW, h.update)
		g.DELETE("/:id", authMW, h.remove)
	}
}

func (h *Handler) list(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return
	}
	items, pag, err := h.svc.List(c.Request.Context(), pagination.FromContext(c), q)
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
		response.NotFound(c, "gallery item not found")
		return
	}
	response.OK(c, m)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateItemDTO
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
	var dto UpdateItemDTO
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
		response.NotFound(c, "gallery item not found")
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
		response.NotFound(c, "gallery item not found")
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
