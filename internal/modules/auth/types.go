package auth

import (
	"errors"

	"github.com/folioworks/core/internal/models"
)

// LoginDTO is the login exchange request body.
type LoginDTO struct {
	Email    string `json:"email"    binding:"required"`
	Password string `json:"password" binding:"required"`
}

// PublicIdentity is what credential verification returns to callers. The
// password hash is never part of it.
type PublicIdentity struct {
	ID    string           `json:"id"`
	Email string           `json:"email"`
	Role  models.AdminRole `json:"role"`
}

var (
	// ErrInvalidCredentials covers both unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInactive means the administrator exists but is deactivated.
	ErrInactive = errors.New("account is deactivated")
)
