package app

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/folioworks/core/internal/config"
	"github.com/folioworks/core/internal/media"
	"github.com/folioworks/core/internal/testutil"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	a := &App{
		cfg:    &config.AppConfig{Env: "development"},
		router: gin.New(),
		db:     testutil.NewDB(t),
		co:     media.NewCoordinator(nil, nil),
		logger: zap.NewNop(),
	}
	a.registerRoutes()
	return a
}

// Every mutating route of every content family must refuse anonymous
// requests before touching anything. The one deliberate exception is the
// public contact-form submit.
func TestEveryMutatingRouteRequiresAuth(t *testing.T) {
	a := newTestApp(t)

	for _, ri := range a.router.Routes() {
		if ri.Method == http.MethodGet {
			continue
		}
		if !strings.HasPrefix(ri.Path, "/api/v1/") {
			continue
		}
		if ri.Path == "/api/v1/auth/login" || ri.Path == "/api/v1/auth/logout" {
			continue
		}
		if ri.Method == http.MethodPost && ri.Path == "/api/v1/messages" {
			continue
		}

		path := strings.NewReplacer(":id", "some-id", ":slug", "some-slug").Replace(ri.Path)
		req := httptest.NewRequest(ri.Method, path, strings.NewReader("{}"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		a.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code,
			"%s %s must be gated", ri.Method, ri.Path)
	}
}

func TestPublicReadsAndPagesAreReachable(t *testing.T) {
	a := newTestApp(t)

	for _, path := range []string{
		"/healthz",
		"/api/v1/projects",
		"/api/v1/posts",
		"/api/v1/services",
		"/api/v1/gallery",
		"/api/v1/journey",
		"/api/v1/competencies",
		"/api/v1/socials",
		"/api/v1/faqs",
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		a.router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	// Anonymous admin navigation bounces to login.
	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/login", w.Header().Get("Location"))
}
