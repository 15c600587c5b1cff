// Package competency manages the core-expertise cards.
package competency

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
//	name ⇐ title, skill

type CreateCompetencyDTO struct {
	Name        string `json:"name"  binding:"max=150"`
	Title       string `json:"title" binding:"max=150"`
	Skill       string `json:"skill" binding:"max=150"`
	Description string `json:"description" binding:"max=2000"`
	SortOrder   *int   `json:"sortOrder"`
}

type UpdateCompetencyDTO struct {
	Name        *string `json:"name"  binding:"omitempty,max=150"`
	Title       *string `json:"title" binding:"omitempty,max=150"`
	Skill       *string `json:"skill" binding:"omitempty,max=150"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	SortOrder   *int    `json:"sortOrder"`
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) List(ctx context.Context, q pagination.Query) ([]models.CompetencyModel, response.Pagination, error) {
	tx := s.db.WithContext(ctx).Model(&models.CompetencyModel{}).
		Order("sort_order ASC, created_at DESC")
	var items []models.CompetencyModel
	pag, err := pagination.Paginate(tx, q, &items)
	return items, pag, err
}

func (s *Service) GetByID(ctx context.Context, id string) (*models.CompetencyModel, error) {
	var m models.CompetencyModel
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *Service) Create(ctx context.Context, dto *CreateCompetencyDTO) (*models.CompetencyModel, error) {
	name := fields.FirstNonEmpty(dto.Name, dto.Title, dto.Skill)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	m := &models.CompetencyModel{
		Name:        name,
		Description: fields.Trimmed(dto.Description),
	}
	if dto.SortOrder != nil {
		m.SortOrder = *dto.SortOrder
	}
	if err := s.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) Update(ctx context.Context, id string, dto *UpdateCompetencyDTO) (*models.CompetencyModel, error) {
	m, err := s.GetByID(ctx, id)
	if err != nil || m == nil {
		return m, err
	}

	if dto.Name == nil {
		for _, alias := range []*string{dto.Title, dto.Skill} {
			if alias != nil {
				dto.Name = alias
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
	if dto.Description != nil {
		m.Description = fields.Trimmed(*dto.Description)
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
	if err := s.db.WithContext(ctx).Delete(&models.CompetencyModel{}, "id = ?", id).Error; err != nil {
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
	g := rg.Group("/competencies")
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
		// The public site renders this section as optional; an empty list
		// degrades better than an error page.
		response.Paged(c, []models.CompetencyModel{}, response.Pagination{CurrentPage: 1, Size: pagination.DefaultSize})
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
		response.NotFound(c, "competency not found")
		return
	}
	response.OK(c, m)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateCompetencyDTO
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
	var dto UpdateCompetencyDTO
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
		response.NotFound(c, "competency not found")
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
		response.NotFound(c, "competency not found")
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
