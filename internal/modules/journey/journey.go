// Package journey manages the academic and professional timeline.
package journey

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
//	institution ⇐ institutionName, company, organization
//	role        ⇐ position, jobTitle

type CreateEntryDTO struct {
	Kind            string `json:"kind" binding:"required"`
	Institution     string `json:"institution"     binding:"max=200"`
	InstitutionName string `json:"institutionName" binding:"max=200"`
	Company         string `json:"company"         binding:"max=200"`
	Organization    string `json:"organization"    binding:"max=200"`
	Role            string `json:"role"     binding:"max=200"`
	Position        string `json:"position" binding:"max=200"`
	JobTitle        string `json:"jobTitle" binding:"max=200"`
	Description     string `json:"description"`
	StartYear       string `json:"startYear" binding:"max=10"`
	EndYear         string `json:"endYear"   binding:"max=10"`
	Current         *bool  `json:"current"`
	SortOrder       *int   `json:"sortOrder"`
}

func (d *CreateEntryDTO) institution() string {
	return fields.FirstNonEmpty(d.Institution, d.InstitutionName, d.Company, d.Organization)
}

func (d *CreateEntryDTO) role() string {
	return fields.FirstNonEmpty(d.Role, d.Position, d.JobTitle)
}

type UpdateEntryDTO struct {
	Kind            *string `json:"kind"`
	Institution     *string `json:"institution"     binding:"omitempty,max=200"`
	InstitutionName *string `json:"institutionName" binding:"omitempty,max=200"`
	Company         *string `json:"company"         binding:"omitempty,max=200"`
	Organization    *string `json:"organization"    binding:"omitempty,max=200"`
	Role            *string `json:"role"     binding:"omitempty,max=200"`
	Position        *string `json:"position" binding:"omitempty,max=200"`
	JobTitle        *string `json:"jobTitle" binding:"omitempty,max=200"`
	Description     *string `json:"description"`
	StartYear       *string `json:"startYear" binding:"omitempty,max=10"`
	EndYear         *string `json:"endYear"   binding:"omitempty,max=10"`
	Current         *bool   `json:"current"`
	SortOrder       *int    `json:"sortOrder"`
}

func (d *UpdateEntryDTO) normalize() {
	if d.Institution == nil {
		for _, alias := range []*string{d.InstitutionName, d.Company, d.Organization} {
			if alias != nil {
				d.Institution = alias
				break
			}
		}
	}
	if d.Role == nil {
		for _, alias := range []*string{d.Position, d.JobTitle} {
			if alias != nil {
				d.Role = alias
				break
			}
		}
	}
}

type ListQuery struct {
	Kind    *string `form:"kind"`
	Current *bool   `form:"current"`
}

func parseKind(v string) (models.JourneyKind, error) {
	switch models.JourneyKind(v) {
	case models.JourneyAcademic, models.JourneyProfessional:
		return models.JourneyKind(v), nil
	}
	return "", fmt.Errorf("%w: kind must be %q or %q", ErrValidation,
		models.JourneyAcademic, models.JourneyProfessional)
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) List(ctx context.Context, q pagination.Query, lq ListQuery) ([]models.JourneyModel, response.Pagination, error) {
	tx := s.db.WithContext(ctx).Model(&models.JourneyModel{}).
		Order("sort_order ASC, created_at DESC")
	if lq.Kind != nil && *lq.Kind != "" {
		kind, err := parseKind(*lq.Kind)
		if err != nil {
			return nil, response.Pagination{}, err
		}
		tx = tx.Where("kind = ?", kind)
	}
	if lq.Current != nil {
		tx = tx.Where("current = ?", *lq.Current)
	}
	var items []models.JourneyModel
	pag, err := pagination.Paginate(tx, q, &items)
	return items, pag, err
}

func (s *Service) GetByID(ctx context.Context, id string) (*models.JourneyModel, error) {
	var m models.JourneyModel
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *Service) Create(ctx context.Context, dto *CreateEntryDTO) (*models.JourneyModel, error) {
	kind, err := parseKind(dto.Kind)
	if err != nil {
		return nil, err
	}
	inst := fields.Trimmed(dto.institution())
	if inst == "" {
		return nil, fmt.Errorf("%w: institution is required", ErrValidation)
	}

	m := &models.JourneyModel{
		Kind:        kind,
		Institution: inst,
		Role:        fields.Trimmed(dto.role()),
		Description: fields.Trimmed(dto.Description),
		StartYear:   fields.Trimmed(dto.StartYear),
		EndYear:     fields.Trimmed(dto.EndYear),
	}
	if dto.Current != nil {
		m.Current = *dto.Current
	}
	if dto.SortOrder != nil {
		m.SortOrder = *dto.SortOrder
	}
	if m.Current {
		m.EndYear = ""
	}
	if err := s.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) Update(ctx context.Context, id string, dto *UpdateEntryDTO) (*models.JourneyModel, error) {
	dto.normalize()

	m, err := s.GetByID(ctx, id)
	if err != nil || m == nil {
		return m, err
	}

	if dto.Kind != nil {
		kind, err := parseKind(*dto.Kind)
		if err != nil {
			return nil, err
		}
		m.Kind = kind
	}
	if dto.Institution != nil {
		inst := fields.Trimmed(*dto.Institution)
		if inst == "" {
			return nil, fmt.Errorf("%w: institution cannot be empty", ErrValidation)
		}
		m.Institution = inst
	}
	if dto.Role != nil {
		m.Role = fields.Trimmed(*dto.Role)
	}
	if dto.Description != nil {
		m.Description = fields.Trimmed(*dto.Description)
	}
	if dto.StartYear != nil {
		m.StartYear = fields.Trimmed(*dto.StartYear)
	}
	if dto.EndYear != nil {
		m.EndYear = fields.Trimmed(*dto.EndYear)
	}
	if dto.Current != nil {
		m.Current = *dto.Current
	}
	if dto.SortOrder != nil {
		m.SortOrder = *dto.SortOrder
	}
	if m.Current {
		m.EndYear = ""
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
	if err := s.db.WithContext(ctx).Delete(&models.JourneyModel{}, "id = ?", id).Error; err != nil {
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
	g := rg.Group("/journey")
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
		respondServiceError(c, err)
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
		response.NotFound(c, "journey entry not found")
		return
	}
	response.OK(c, m)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateEntryDTO
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
	var dto UpdateEntryDTO
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
		response.NotFound(c, "journey entry not found")
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
		response.NotFound(c, "journey entry not found")
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
