package project

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/folioworks/core/internal/media"
	"github.com/folioworks/core/internal/middleware"
	"github.com/folioworks/core/internal/models"
	"github.com/folioworks/core/internal/testutil"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type flakyStore struct {
	deleted   []string
	deleteErr error
}

func (f *flakyStore) Upload(ctx context.Context, name string, payload []byte, contentType string) (media.Asset, error) {
	return media.Asset{URL: "https://cdn.example.com/" + name, PublicID: name}, nil
}

func (f *flakyStore) Delete(ctx context.Context, publicID string) error {
	f.deleted = append(f.deleted, publicID)
	return f.deleteErr
}

func (f *flakyStore) PresignUpload(ctx context.Context, name, contentType string) (media.SignedUpload, error) {
	return media.SignedUpload{}, nil
}

func (f *flakyStore) List(ctx context.Context) ([]string, error) { return nil, nil }

type fixture struct {
	db     *gorm.DB
	router *gin.Engine
	store  *flakyStore
	token  string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	admin := testutil.SeedAdmin(t, db, "owner@example.com", "hunter22", true)
	store := &flakyStore{}
	co := media.NewCoordinator(store, nil)

	r := gin.New()
	api := r.Group("/api/v1")
	NewHandler(NewService(db, co)).RegisterRoutes(api, middleware.Auth())

	return &fixture{db: db, router: r, store: store, token: testutil.TokenFor(t, admin)}
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

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var env struct {
		Success bool                   `json:"success"`
		Data    map[string]interface{} `json:"data"`
		Error   string                 `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), "body: %s", w.Body.String())
	return env.Data
}

func listItems(t *testing.T, w *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	data := decodeData(t, w)
	raw, ok := data["items"].([]interface{})
	require.True(t, ok, "no items in %v", data)
	items := make([]map[string]interface{}, len(raw))
	for i, v := range raw {
		items[i] = v.(map[string]interface{})
	}
	return items
}

func TestMutationsRequireAuthAndLeaveNoSideEffect(t *testing.T) {
	f := newFixture(t)

	cases := []struct {
		method, path string
		body         interface{}
	}{
		{http.MethodPost, "/api/v1/projects", gin.H{"title": "X", "description": "Y"}},
		{http.MethodPut, "/api/v1/projects/some-id", gin.H{"title": "X"}},
		{http.MethodDelete, "/api/v1/projects/some-id", nil},
	}
	for _, tc := range cases {
		w := f.do(tc.method, tc.path, tc.body, false)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", tc.method, tc.path)
	}

	var count int64
	require.NoError(t, f.db.Model(&models.ProjectModel{}).Count(&count).Error)
	assert.Zero(t, count, "unauthenticated request must not write")
}

func TestCreateDerivesSlugAndNormalizesTechStack(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodPost, "/api/v1/projects", gin.H{
		"title":       "Hello, World!! 2025",
		"description": "demo project",
		"techStack":   "a, b ,  b",
	}, true)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	data := decodeData(t, w)
	assert.Equal(t, "hello-world-2025", data["slug"])
	assert.Equal(t, []interface{}{"a", "b"}, data["techStack"])
}

func TestCreateRejectsSlugCollision(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodPost, "/api/v1/projects", gin.H{"title": "Demo", "description": "one"}, true)
	require.Equal(t, http.StatusCreated, w.Code)

	// Auto-derived slug collides with the existing record: rejected, not
	// silently suffixed.
	w = f.do(http.MethodPost, "/api/v1/projects", gin.H{"title": "Demo", "description": "two"}, true)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = f.do(http.MethodPost, "/api/v1/projects", gin.H{"title": "Other", "slug": "demo", "description": "three"}, true)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUpdatePreservesUntouchedFields(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodPost, "/api/v1/projects", gin.H{
		"title":       "Keeper",
		"description": "original",
		"techStack":   []string{"Go", "React"},
	}, true)
	require.Equal(t, http.StatusCreated, w.Code)
	id := decodeData(t, w)["id"].(string)

	w = f.do(http.MethodPut, "/api/v1/projects/"+id, gin.H{"description": "new"}, true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	data := decodeData(t, w)
	assert.Equal(t, "new", data["description"])
	assert.Equal(t, "Keeper", data["title"])
	assert.Equal(t, "keeper", data["slug"])
	assert.Equal(t, []interface{}{"Go", "React"}, data["techStack"])
}

func TestUpdateUnknownIDIs404(t *testing.T) {
	f := newFixture(t)
	w := f.do(http.MethodPut, "/api/v1/projects/nope", gin.H{"description": "x"}, true)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteReleasesMediaBestEffort(t *testing.T) {
	f := newFixture(t)
	f.store.deleteErr = errors.New("media host down")

	w := f.do(http.MethodPost, "/api/v1/projects", gin.H{
		"title":       "With Image",
		"description": "d",
		"image":       gin.H{"url": "https://cdn.example.com/uploads/a.png", "publicId": "uploads/a.png"},
	}, true)
	require.Equal(t, http.StatusCreated, w.Code)
	id := decodeData(t, w)["id"].(string)

	w = f.do(http.MethodDelete, "/api/v1/projects/"+id, nil, true)
	assert.Equal(t, http.StatusOK, w.Code, "media failure must not block the delete")
	assert.Equal(t, []string{"uploads/a.png"}, f.store.deleted)

	var count int64
	require.NoError(t, f.db.Model(&models.ProjectModel{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestReplacingImageReleasesOldAsset(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodPost, "/api/v1/projects", gin.H{
		"title":       "Swap",
		"description": "d",
		"image":       gin.H{"url": "https://cdn.example.com/old.png", "publicId": "old.png"},
	}, true)
	require.Equal(t, http.StatusCreated, w.Code)
	id := decodeData(t, w)["id"].(string)

	w = f.do(http.MethodPut, "/api/v1/projects/"+id, gin.H{
		"image": gin.H{"url": "https://cdn.example.com/new.png", "publicId": "new.png"},
	}, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"old.png"}, f.store.deleted)

	data := decodeData(t, w)
	img := data["image"].(map[string]interface{})
	assert.Equal(t, "new.png", img["publicId"])
}

func TestLegacyAliasResubmitKeepsStoredAsset(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodPost, "/api/v1/projects", gin.H{
		"title":       "Sticky",
		"description": "d",
		"image":       gin.H{"url": "https://cdn.example.com/uploads/a.png", "publicId": "uploads/a.png"},
	}, true)
	require.Equal(t, http.StatusCreated, w.Code)
	id := decodeData(t, w)["id"].(string)

	// Old clients echo the current URL through the alias field without a
	// public id. That must not be treated as a replacement.
	w = f.do(http.MethodPut, "/api/v1/projects/"+id, gin.H{
		"projectImage": "https://cdn.example.com/uploads/a.png",
		"description":  "edited",
	}, true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Empty(t, f.store.deleted, "resubmitting the current URL must not delete the asset")

	data := decodeData(t, w)
	assert.Equal(t, "edited", data["description"])
	img := data["image"].(map[string]interface{})
	assert.Equal(t, "uploads/a.png", img["publicId"], "stored public id survives the alias round trip")

	var row models.ProjectModel
	require.NoError(t, f.db.First(&row, "id = ?", id).Error)
	assert.Equal(t, "uploads/a.png", row.Image.PublicID)
}

func TestEndToEndPublishFlow(t *testing.T) {
	f := newFixture(t)

	body := gin.H{
		"title":        "Demo",
		"description":  "a demo project",
		"techStack":    "React",
		"projectImage": "https://cdn.example.com/uploads/demo.png",
	}

	w := f.do(http.MethodPost, "/api/v1/projects", body, false)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = f.do(http.MethodPost, "/api/v1/projects", body, true)
	require.Equal(t, http.StatusCreated, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, "demo", data["slug"])
	assert.Equal(t, false, data["published"], "published defaults to false")
	img := data["image"].(map[string]interface{})
	assert.Equal(t, "https://cdn.example.com/uploads/demo.png", img["url"])
	assert.Equal(t, "", img["publicId"], "legacy alias carries no public id")
	id := data["id"].(string)

	w = f.do(http.MethodGet, "/api/v1/projects?published=true", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, listItems(t, w), "unpublished project must not appear")

	w = f.do(http.MethodPut, "/api/v1/projects/"+id, gin.H{"published": true}, true)
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(http.MethodGet, "/api/v1/projects?published=true", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	items := listItems(t, w)
	require.Len(t, items, 1)
	assert.Equal(t, "Demo", items[0]["title"])
}
