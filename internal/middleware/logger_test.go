package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func loggedRouter() (*gin.Engine, *observer.ObservedLogs) {
	gin.SetMode(gin.TestMode)
	obs, logs := observer.New(zap.InfoLevel)
	r := gin.New()
	r.Use(OptionalAuth(), Logger(zap.New(obs)))
	r.GET("/things", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	return r, logs
}

func TestLoggerRecordsRequestLine(t *testing.T) {
	r, logs := loggedRouter()

	req := httptest.NewRequest(http.MethodGet, "/things?page=2", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, "/things?page=2", fields["path"])
	assert.EqualValues(t, http.StatusOK, fields["status"])
	_, hasAdmin := fields["admin"]
	assert.False(t, hasAdmin, "anonymous request must not carry an admin id")
}

func TestLoggerAttachesAdminID(t *testing.T) {
	r, logs := loggedRouter()

	req := httptest.NewRequest(http.MethodGet, "/things", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookie, Value: validToken(t)})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "admin-1", entries[0].ContextMap()["admin"])
}
