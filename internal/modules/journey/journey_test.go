package journey

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

func newFixture(t *testing.T) (*gin.Engine, *gorm.DB, string) {
	t.Helper()
	db := testutil.NewDB(t)
	admin := testutil.SeedAdmin(t, db, "owner@example.com", "hunter22", true)

	r := gin.New()
	api := r.Group("/api/v1")
	NewHandler(NewService(db)).RegisterRoutes(api, middleware.Auth())
	return r, db, testutil.TokenFor(t, admin)
}

func post(t *testing.T, r *gin.Engine, token string, body gin.H) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/journey", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: middleware.TokenCookie, Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateCollapsesInstitutionAliases(t *testing.T) {
	r, db, token := newFixture(t)

	// "company" and "position" are the professional-era field names; they
	// land in the canonical institution and role columns.
	w := post(t, r, token, gin.H{
		"kind":     "professional",
		"company":  "Initech",
		"position": "Staff Engineer",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var m models.JourneyModel
	require.NoError(t, db.First(&m).Error)
	assert.Equal(t, models.JourneyProfessional, m.Kind)
	assert.Equal(t, "Initech", m.Institution)
	assert.Equal(t, "Staff Engineer", m.Role)
}

func TestCanonicalFieldWinsOverAlias(t *testing.T) {
	r, db, token := newFixture(t)

	w := post(t, r, token, gin.H{
		"kind":            "academic",
		"institution":     "MIT",
		"institutionName": "Somewhere Else",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var m models.JourneyModel
	require.NoError(t, db.First(&m).Error)
	assert.Equal(t, "MIT", m.Institution)
}

func TestDescriptionIsTrimmed(t *testing.T) {
	r, db, token := newFixture(t)

	w := post(t, r, token, gin.H{
		"kind":        "professional",
		"institution": "Initech",
		"description": "  shipped the TPS pipeline  \n",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var m models.JourneyModel
	require.NoError(t, db.First(&m).Error)
	assert.Equal(t, "shipped the TPS pipeline", m.Description)

	raw, err := json.Marshal(gin.H{"description": "\t rewritten \n"})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/journey/"+m.ID, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: middleware.TokenCookie, Value: token})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	require.NoError(t, db.First(&m).Error)
	assert.Equal(t, "rewritten", m.Description)
}

func TestCreateRejectsUnknownKind(t *testing.T) {
	r, db, token := newFixture(t)

	w := post(t, r, token, gin.H{"kind": "hobby", "institution": "Garage"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var n int64
	require.NoError(t, db.Model(&models.JourneyModel{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestCurrentEntryDropsEndYear(t *testing.T) {
	r, db, token := newFixture(t)

	w := post(t, r, token, gin.H{
		"kind":        "professional",
		"institution": "Initech",
		"startYear":   "2022",
		"endYear":     "2024",
		"current":     true,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var m models.JourneyModel
	require.NoError(t, db.First(&m).Error)
	assert.True(t, m.Current)
	assert.Empty(t, m.EndYear)
}

func TestListFiltersByKind(t *testing.T) {
	r, _, token := newFixture(t)

	require.Equal(t, http.StatusCreated, post(t, r, token, gin.H{
		"kind": "academic", "institution": "MIT",
	}).Code)
	require.Equal(t, http.StatusCreated, post(t, r, token, gin.H{
		"kind": "professional", "institution": "Initech",
	}).Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/journey?kind=academic", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var env struct {
		Data struct {
			Items []models.JourneyModel `json:"items"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.Len(t, env.Data.Items, 1)
	assert.Equal(t, "MIT", env.Data.Items[0].Institution)

	// An invalid kind filter is a client error, not an empty list.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/journey?kind=hobby", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
