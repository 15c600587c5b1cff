// Package storage exposes the admin media endpoints: direct upload,
// presigned client upload, and the orphan audit.
package storage

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/folioworks/core/internal/media"
	"github.com/folioworks/core/internal/models"
	"github.com/folioworks/core/internal/pkg/response"
)

// maxUploadBytes caps direct server-side uploads. Larger files should go
// through the presigned client upload instead.
const maxUploadBytes = 20 << 20

type SignDTO struct {
	Name        string `json:"name"        binding:"required,max=255"`
	ContentType string `json:"contentType" binding:"required,max=255"`
}

type Service struct {
	db    *gorm.DB
	store media.Store
	log   *zap.Logger
}

func NewService(db *gorm.DB, store media.Store, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{db: db, store: store, log: log}
}

// Orphans returns every remote object that no content row references,
// by stored public id or by url-derived fallback.
func (s *Service) Orphans(ctx context.Context) ([]string, error) {
	remote, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	referenced, err := s.referencedIDs(ctx)
	if err != nil {
		return nil, err
	}

	orphans := make([]string, 0)
	for _, id := range remote {
		if _, ok := referenced[id]; !ok {
			orphans = append(orphans, id)
		}
	}
	return orphans, nil
}

// Cleanup deletes the given remote objects, refusing any that a content
// row still references. Returns the ids actually deleted.
func (s *Service) Cleanup(ctx context.Context, ids []string) ([]string, error) {
	referenced, err := s.referencedIDs(ctx)
	if err != nil {
		return nil, err
	}

	deleted := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := referenced[id]; ok {
			s.log.Warn("cleanup skipped referenced asset", zap.String("publicId", id))
			continue
		}
		if err := s.store.Delete(ctx, id); err != nil {
			s.log.Warn("cleanup delete failed (ignored)",
				zap.String("publicId", id), zap.Error(err))
			continue
		}
		deleted = append(deleted, id)
	}
	return deleted, nil
}

// referencedIDs gathers every public id (and url-derived fallback) held by
// any media column across the content tables.
func (s *Service) referencedIDs(ctx context.Context) (map[string]struct{}, error) {
	type source struct {
		model  any
		prefix string
	}
	sources := []source{
		{&models.ProjectModel{}, "image_"},
		{&models.PostModel{}, "cover_"},
		{&models.ServiceModel{}, "icon_"},
		{&models.GalleryItemModel{}, "image_"},
		{&models.BrandModel{}, "logo_"},
	}

	refs := make(map[string]struct{})
	for _, src := range sources {
		var rows []models.MediaRef
		err := s.db.WithContext(ctx).Model(src.model).
			Select(src.prefix + "url AS url, " + src.prefix + "public_id AS public_id").
			Scan(&rows).Error
		if err != nil {
			return nil, err
		}
		for _, r := range rows {
			if r.PublicID != "" {
				refs[r.PublicID] = struct{}{}
			} else if r.URL != "" {
				if id := media.PublicIDFromURL(r.URL); id != "" {
					refs[id] = struct{}{}
				}
			}
		}
	}
	return refs, nil
}

type Handler struct {
	svc   *Service
	store media.Store
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc, store: svc.store}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/media", authMW)
	{
		g.POST("/sign", h.sign)
		g.POST("/upload", h.upload)
		g.GET("/orphans", h.orphans)
		g.POST("/orphans/cleanup", h.cleanup)
	}
}

func (h *Handler) sign(c *gin.Context) {
	var dto SignDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "name and contentType are required")
		return
	}
	signed, err := h.store.PresignUpload(c.Request.Context(), dto.Name, dto.ContentType)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, signed)
}

func (h *Handler) upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.BadRequest(c, "file field is required")
		return
	}
	defer file.Close()

	payload, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if len(payload) > maxUploadBytes {
		c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge,
			response.Envelope{Success: false, Error: "file too large"})
		return
	}

	contentType := header.Header.Get("Content-Type")
	asset, err := h.store.Upload(c.Request.Context(), header.Filename, payload, contentType)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, asset)
}

func (h *Handler) orphans(c *gin.Context) {
	ids, err := h.svc.Orphans(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"orphans": ids, "count": len(ids)})
}

func (h *Handler) cleanup(c *gin.Context) {
	var dto struct {
		PublicIDs []string `json:"publicIds" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "publicIds is required")
		return
	}
	deleted, err := h.svc.Cleanup(c.Request.Context(), dto.PublicIDs)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"deleted": deleted, "count": len(deleted)})
}
