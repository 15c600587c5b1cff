// Package testutil provides shared fixtures for handler and service tests:
// an isolated in-memory database and seeded administrator identities.
package testutil

import (
	"fmt"
	"testing"

	"github.com/folioworks/core/internal/database"
	"github.com/folioworks/core/internal/models"
	jwtpkg "github.com/folioworks/core/internal/pkg/jwt"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// NewDB opens a fresh in-memory SQLite database with the full schema.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	// A named shared-cache memory database keeps every pooled connection on
	// the same store while isolating tests from each other.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

// SeedAdmin inserts an administrator with the given plaintext password.
func SeedAdmin(t *testing.T, db *gorm.DB, email, password string, active bool) models.AdminModel {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	admin := models.AdminModel{
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
		Active:       active,
	}
	if err := db.Create(&admin).Error; err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	return admin
}

// TokenFor signs a session token for the given administrator.
func TokenFor(t *testing.T, admin models.AdminModel) string {
	t.Helper()
	token, err := jwtpkg.Sign(admin.ID, admin.Email, string(admin.Role), jwtpkg.DefaultTTL)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}
