package app

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/folioworks/core/internal/middleware"
	"github.com/folioworks/core/internal/modules/auth"
	"github.com/folioworks/core/internal/modules/brand"
	"github.com/folioworks/core/internal/modules/competency"
	"github.com/folioworks/core/internal/modules/faq"
	"github.com/folioworks/core/internal/modules/gallery"
	"github.com/folioworks/core/internal/modules/journey"
	"github.com/folioworks/core/internal/modules/message"
	"github.com/folioworks/core/internal/modules/offering"
	"github.com/folioworks/core/internal/modules/post"
	"github.com/folioworks/core/internal/modules/project"
	"github.com/folioworks/core/internal/modules/social"
	"github.com/folioworks/core/internal/modules/storage"
	"github.com/folioworks/core/internal/pkg/response"
)

const (
	loginPath     = "/admin/login"
	dashboardPath = "/admin/dashboard"
)

func (a *App) registerRoutes() {
	r := a.router
	db := a.db
	authMW := middleware.Auth()

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "not found")
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	r.GET("/", func(c *gin.Context) {
		response.OK(c, gin.H{
			"name":    "folio-core",
			"version": "1.0.0",
		})
	})
	r.GET("/healthz", func(c *gin.Context) {
		response.OK(c, gin.H{"status": "ok"})
	})

	// Admin pages. The gate never protects data, only navigation: unauthenticated
	// visitors are bounced to the login page, signed-in admins away from it.
	admin := r.Group("/admin", middleware.PageGate(loginPath, dashboardPath))
	{
		admin.GET("/login", adminPage("Sign in"))
		admin.GET("/dashboard", adminPage("Dashboard"))
		admin.GET("/", func(c *gin.Context) {
			c.Redirect(http.StatusFound, dashboardPath)
		})
	}

	// Versioned API
	api := r.Group("/api/v1")

	auth.NewHandler(auth.NewService(db), !a.cfg.IsDev()).RegisterRoutes(api, authMW)

	project.NewHandler(project.NewService(db, a.co)).RegisterRoutes(api, authMW)
	post.NewHandler(post.NewService(db, a.co)).RegisterRoutes(api, authMW)
	offering.NewHandler(offering.NewService(db, a.co)).RegisterRoutes(api, authMW)
	gallery.NewHandler(gallery.NewService(db, a.co)).RegisterRoutes(api, authMW)
	brand.NewHandler(brand.NewService(db, a.co)).RegisterRoutes(api, authMW)

	journey.NewHandler(journey.NewService(db)).RegisterRoutes(api, authMW)
	competency.NewHandler(competency.NewService(db)).RegisterRoutes(api, authMW)
	social.NewHandler(social.NewService(db)).RegisterRoutes(api, authMW)
	faq.NewHandler(faq.NewService(db)).RegisterRoutes(api, authMW)
	message.NewHandler(message.NewService(db)).RegisterRoutes(api, authMW)

	if a.store != nil {
		storage.NewHandler(storage.NewService(db, a.store, a.logger)).RegisterRoutes(api, authMW)
	}
}

func adminPage(title string) gin.HandlerFunc {
	const page = `<!doctype html>
<html><head><meta charset="utf-8"><title>%s</title></head>
<body><div id="app" data-page="%s"></div></body></html>`
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, page, title, title)
	}
}
