package middleware

import (
	"strings"

	"github.com/folioworks/core/internal/pkg/jwt"
	"github.com/folioworks/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

const (
	// TokenCookie is the HTTP-only cookie carrying the session token.
	TokenCookie = "folio_token"

	contextKeyIdentity = "admin_identity"
)

// Identity is the verified administrator identity for one request. It lives
// only in the request-scoped context; no module-level state ever holds it.
type Identity struct {
	ID    string
	Email string
	Role  string
}

// Auth enforces a valid session token on API routes. Claims are trusted for
// the token lifetime: a deactivated administrator keeps access until expiry.
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := VerifyRequest(c)
		if err != nil {
			response.Unauthorized(c)
			return
		}
		c.Set(contextKeyIdentity, id)
		c.Next()
	}
}

// OptionalAuth sets the identity if a valid token is present, but does not
// block the request.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if id, err := VerifyRequest(c); err == nil {
			c.Set(contextKeyIdentity, id)
		}
		c.Next()
	}
}

// VerifyRequest validates the request's token and returns the identity it
// carries. Handlers that perform their own session check use this directly;
// it agrees with Auth by construction.
func VerifyRequest(c *gin.Context) (Identity, error) {
	claims, err := jwt.Parse(ExtractToken(c))
	if err != nil {
		return Identity{}, err
	}
	return Identity{ID: claims.AdminID, Email: claims.Email, Role: claims.Role}, nil
}

// CurrentIdentity extracts the authenticated identity from the context.
func CurrentIdentity(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(contextKeyIdentity)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}

// IsAuthenticated reports whether the request carries a valid identity.
func IsAuthenticated(c *gin.Context) bool {
	_, ok := CurrentIdentity(c)
	return ok
}

// ExtractToken pulls the raw token from the cookie, Authorization header, or
// token query parameter, in that priority order.
func ExtractToken(c *gin.Context) string {
	if raw, err := c.Cookie(TokenCookie); err == nil {
		if token := NormalizeToken(raw); token != "" {
			return token
		}
	}
	if token := NormalizeToken(c.GetHeader("Authorization")); token != "" {
		return token
	}
	return NormalizeToken(c.Query("token"))
}

// NormalizeToken trims spaces and strips an optional Bearer prefix.
func NormalizeToken(raw string) string {
	token := strings.TrimSpace(raw)
	if token == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		return strings.TrimSpace(token[7:])
	}
	return token
}
