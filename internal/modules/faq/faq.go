// Package faq manages the frequently-asked-questions section.
package faq

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

type CreateFAQDTO struct {
	Question  string `json:"question" binding:"required,max=500"`
	Answer    string `json:"answer"   binding:"required"`
	Published *bool  `json:"published"`
	SortOrder *int   `json:"sortOrder"`
}

type UpdateFAQDTO struct {
	Question  *string `json:"question" binding:"omitempty,max=500"`
	Answer    *string `json:"answer"`
	Published *bool   `json:"published"`
	SortOrder *int    `json:"sortOrder"`
}

type ListQuery struct {
	Published *bool `form:"published"`
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) List(ctx context.Context, q pagination.Query, lq ListQuery) ([]models.FAQModel, response.Pagination, error) {
	tx := s.db.WithContext(ctx).Model(&models.FAQModel{}).
		Order("sort_order ASC, created_at DESC")
	if lq.Published != nil {
		tx = tx.Where("published = ?", *lq.Published)
	}
	var items []models.FAQModel
	pag, err := pagination.Paginate(tx, q, &items)
	return items, pag, err
}

func (s *Service) GetByID(ctx context.Context, id string) (*models.FAQModel, error) {
	var m models.FAQModel
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *Service) Create(ctx context.Context, dto *CreateFAQDTO) (*models.FAQModel, error) {
	question := fields.Trimmed(dto.Question)
	answer := fields.Trimmed(dto.Answer)
	if question == "" || answer == "" {
		return nil, fmt.Errorf("%w: question and answer are required", ErrValidation)
	}

	m := &models.FAQModel{Question: question, Answer: answer}
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

func (s *Service) Update(ctx context.Context, id string, dto *UpdateFAQDTO) (*models.FAQModel, error) {
	m, err := s.GetByID(ctx, id)
	if err != nil || m == nil {
		return m, err
	}

	if dto.Question != nil {
		q := fields.Trimmed(*dto.Question)
		if q == "" {
			return nil, fmt.Errorf("%w: question cannot be empty", ErrValidation)
		}
		m.Question = q
	}
	if dto.Answer != nil {
		a := fields.Trimmed(*dto.Answer)
		if a == "" {
			return nil, fmt.Errorf("%w: answer cannot be empty", ErrValidation)
		}
		m.Answer = a
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
	return m, nil
}

func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	m, err := s.GetByID(ctx, id)
	if err != nil || m == nil {
		return false, err
	}
	if err := s.db.WithContext(ctx).Delete(&models.FAQModel{}, "id = ?", id).Error; err != nil {
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
	g := rg.Group("/faqs")
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
		response.NotFound(c, "faq not found")
		return
	}
	response.OK(c, m)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateFAQDTO
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
	var dto UpdateFAQDTO
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
		response.NotFound(c, "faq not found")
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
		response.NotFound(c, "faq not found")
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
