package message

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/folioworks/core/internal/middleware"
	"github.com/folioworks/core/internal/models"
	"github.com/folioworks/core/internal/testutil"
)

type fixture struct {
	db     *gorm.DB
	router *gin.Engine
	token  string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	admin := testutil.SeedAdmin(t, db, "owner@example.com", "hunter22", true)

	r := gin.New()
	api := r.Group("/api/v1")
	NewHandler(NewService(db)).RegisterRoutes(api, middleware.Auth())

	return &fixture{db: db, router: r, token: testutil.TokenFor(t, admin)}
}

func (f *fixture) do(method, path string, body interface{}, authed bool) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.AddCookie(&http.Cookie{Name: middleware.TokenCookie, Value: f.token})
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestVisitorCanSubmitMessage(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodPost, "/api/v1/messages", gin.H{
		"name":    "Ada",
		"email":   "ada@example.com",
		"subject": "Hello",
		"message": "I would like a website.",
	}, false)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var m models.MessageModel
	require.NoError(t, f.db.First(&m).Error)
	assert.Equal(t, "Ada", m.Name)
	// The legacy "message" field lands in the body column.
	assert.Equal(t, "I would like a website.", m.Body)
	assert.False(t, m.Read)
}

func TestSubmitRejectsMissingBodyAndBadEmail(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodPost, "/api/v1/messages", gin.H{
		"name": "Ada", "email": "ada@example.com",
	}, false)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(http.MethodPost, "/api/v1/messages", gin.H{
		"name": "Ada", "email": "not-an-email", "body": "hi",
	}, false)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var n int64
	require.NoError(t, f.db.Model(&models.MessageModel{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestInboxIsAdminOnly(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, http.StatusUnauthorized, f.do(http.MethodGet, "/api/v1/messages", nil, false).Code)
	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/api/v1/messages", nil, true).Code)
}

func TestMarkReadAndFilter(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodPost, "/api/v1/messages", gin.H{
		"name": "Ada", "email": "ada@example.com", "body": "hi",
	}, false)
	require.Equal(t, http.StatusCreated, w.Code)

	var m models.MessageModel
	require.NoError(t, f.db.First(&m).Error)

	// Empty PATCH body marks as read.
	w = f.do(http.MethodPatch, "/api/v1/messages/"+m.ID+"/read", nil, true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, f.db.First(&m, "id = ?", m.ID).Error)
	assert.True(t, m.Read)

	// An unread filter no longer returns it.
	w = f.do(http.MethodGet, "/api/v1/messages?read=false", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	var env struct {
		Data struct {
			Items []models.MessageModel `json:"items"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Empty(t, env.Data.Items)

	// Explicit read=false flips it back.
	w = f.do(http.MethodPatch, "/api/v1/messages/"+m.ID+"/read", gin.H{"read": false}, true)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, f.db.First(&m, "id = ?", m.ID).Error)
	assert.False(t, m.Read)
}

func TestDeleteMessage(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodPost, "/api/v1/messages", gin.H{
		"name": "Ada", "email": "ada@example.com", "body": "hi",
	}, false)
	require.Equal(t, http.StatusCreated, w.Code)

	var m models.MessageModel
	require.NoError(t, f.db.First(&m).Error)

	assert.Equal(t, http.StatusUnauthorized, f.do(http.MethodDelete, "/api/v1/messages/"+m.ID, nil, false).Code)
	assert.Equal(t, http.StatusOK, f.do(http.MethodDelete, "/api/v1/messages/"+m.ID, nil, true).Code)
	assert.Equal(t, http.StatusNotFound, f.do(http.MethodDelete, "/api/v1/messages/"+m.ID, nil, true).Code)
}
