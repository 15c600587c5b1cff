package app

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/folioworks/core/internal/config"
	"github.com/folioworks/core/internal/database"
	"github.com/folioworks/core/internal/media"
	"github.com/folioworks/core/internal/middleware"
	"github.com/folioworks/core/internal/pkg/jwt"
)

// App holds all application dependencies.
type App struct {
	cfg    *config.AppConfig
	router *gin.Engine
	db     *gorm.DB
	store  media.Store
	co     *media.Coordinator
	logger *zap.Logger
}

// New initializes the application: config, database, media host, routes.
func New(logger *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if cfg.JWTSecret != "" {
		jwt.SetSecret(cfg.JWTSecret)
	} else if !cfg.IsDev() {
		return nil, errors.New("jwt_secret is required in production")
	}

	db, err := database.Connect(cfg, true)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	// The media host is optional: without it, records keep their URLs but
	// remote cleanup and uploads are unavailable.
	var store media.Store
	if cfg.Media.Bucket != "" {
		s3, err := media.NewS3Store(cfg.Media)
		if err != nil {
			return nil, fmt.Errorf("media: %w", err)
		}
		store = s3
	} else {
		logger.Warn("media host not configured, uploads and remote cleanup disabled")
	}
	co := media.NewCoordinator(store, logger)

	if cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))

	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}
	if len(cfg.AllowedOrigins) > 0 && !cfg.IsDev() {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowOriginFunc = func(origin string) bool { return true }
	}
	router.Use(cors.New(corsConfig))

	app := &App{cfg: cfg, router: router, db: db, store: store, co: co, logger: logger}
	app.registerRoutes()

	return app, nil
}

// Addr returns the listen address.
func (a *App) Addr() string { return fmt.Sprintf(":%d", a.cfg.Port) }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }
