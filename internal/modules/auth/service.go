package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/folioworks/core/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Service verifies administrator credentials.
type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// Verify locates the administrator by case-insensitive email, checks the
// active flag, and compares the password against the stored hash (bcrypt's
// compare is constant-time). On success it persists the new last-login value
// before returning the public identity.
func (s *Service) Verify(ctx context.Context, email, password string) (*PublicIdentity, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var admin models.AdminModel
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !admin.Active {
		return nil, ErrInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	if err := s.db.WithContext(ctx).Model(&admin).Update("last_login", &now).Error; err != nil {
		return nil, err
	}

	return &PublicIdentity{ID: admin.ID, Email: admin.Email, Role: admin.Role}, nil
}

// HashPassword produces the stored form of a password. Exposed for the
// provisioning CLI; the HTTP service never stores plaintext.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
