// Package message handles contact-form submissions. Visitors create
// messages without authentication; everything else is admin-only.
package message

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
//	body ⇐ message, content

type CreateMessageDTO struct {
	Name    string `json:"name"  binding:"required,max=150"`
	Email   string `json:"email" binding:"required,email,max=254"`
	Subject string `json:"subject" binding:"max=200"`
	Body    string `json:"body"`
	Message string `json:"message"`
	Content string `json:"content"`
}

type ListQuery struct {
	Read *bool `form:"read"`
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) List(ctx context.Context, q pagination.Query, lq ListQuery) ([]models.MessageModel, response.Pagination, error) {
	tx := s.db.WithContext(ctx).Model(&models.MessageModel{}).
		Order("created_at DESC")
	if lq.Read != nil {
		tx = tx.Where("`read` = ?", *lq.Read)
	}
	var items []models.MessageModel
	pag, err := pagination.Paginate(tx, q, &items)
	return items, pag, err
}

func (s *Service) GetByID(ctx context.Context, id string) (*models.MessageModel, error) {
	var m models.MessageModel
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *Service) Create(ctx context.Context, dto *CreateMessageDTO) (*models.MessageModel, error) {
	body := fields.FirstNonEmpty(dto.Body, dto.Message, dto.Content)
	if body == "" {
		return nil, fmt.Errorf("%w: message body is required", ErrValidation)
	}

	m := &models.MessageModel{
		Name:    fields.Trimmed(dto.Name),
		Email:   fields.Trimmed(dto.Email),
		Subject: fields.Trimmed(dto.Subject),
		Body:    body,
	}
	if err := s.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) MarkRead(ctx context.Context, id string, read bool) (*models.MessageModel, error) {
	m, err := s.GetByID(ctx, id)
	if err != nil || m == nil {
		return m, err
	}
	if m.Read == read {
		return m, nil
	}
	m.Read = read
	if err := s.db.WithContext(ctx).Model(m).Update("read", read).Error; err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	m, err := s.GetByID(ctx, id)
	if err != nil || m == nil {
		return false, err
	}
	if err := s.db.WithContext(ctx).Delete(&models.MessageModel{}, "id = ?", id).Error; err != nil {
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
	g := rg.Group("/messages")
	{
		g.POST("", h.create)
		g.GET("", authMW, h.list)
		g.GET("/:id", authMW, h.get)
		g.PATCH("/:id/read", authMW, h.markRead)
		g.DELETE("/:id", authMW, h.remove)
	}
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateMessageDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	m, err := h.svc.Create(c.Request.Context(), &dto)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Created(c, m)
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
		response.NotFound(c, "message not found")
		return
	}
	response.OK(c, m)
}

func (h *Handler) markRead(c *gin.Context) {
	var dto struct {
		Read *bool `json:"read"`
	}
	// An empty body means "mark as read".
	_ = c.ShouldBindJSON(&dto)
	read := true
	if dto.Read != nil {
		read = *dto.Read
	}

	m, err := h.svc.MarkRead(c.Request.Context(), c.Param("id"), read)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if m == nil {
		response.NotFound(c, "message not found")
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
		response.NotFound(c, "message not found")
		return
	}
	response.OK(c, gin.H{"deleted": true})
}
