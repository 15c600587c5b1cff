package auth

import (
	"errors"
	"net/http"

	"github.com/folioworks/core/internal/middleware"
	jwtpkg "github.com/folioworks/core/internal/pkg/jwt"
	"github.com/folioworks/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

const (
	loginRedirect = "/admin/dashboard"
	// Failed logins redirect to the public home page, not back to login.
	failureRedirect = "/"
)

type Handler struct {
	svc          *Service
	secureCookie bool
}

func NewHandler(svc *Service, secureCookie bool) *Handler {
	return &Handler{svc: svc, secureCookie: secureCookie}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	a := rg.Group("/auth")
	a.POST("/login", h.login)
	a.POST("/logout", h.logout)
	a.GET("/session", middleware.OptionalAuth(), h.session)
}

// login exchanges credentials for a signed session token carried in an
// HTTP-only, SameSite=Strict cookie. The response shapes (message + redirect
// on failure, admin identity on success) mirror what the dashboard expects.
func (h *Handler) login(c *gin.Context) {
	var dto LoginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "email and password are required")
		return
	}

	identity, err := h.svc.Verify(c.Request.Context(), dto.Email, dto.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success":  false,
				"message":  "invalid email or password",
				"redirect": failureRedirect,
			})
		case errors.Is(err, ErrInactive):
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success":  false,
				"message":  "account is deactivated",
				"redirect": failureRedirect,
			})
		default:
			response.InternalError(c, err)
		}
		return
	}

	token, err := jwtpkg.Sign(identity.ID, identity.Email, string(identity.Role), jwtpkg.DefaultTTL)
	if err != nil {
		response.InternalError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.TokenCookie, token, int(jwtpkg.DefaultTTL.Seconds()), "/", "", h.secureCookie, true)
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"redirect": loginRedirect,
		"admin": gin.H{
			"email": identity.Email,
			"role":  identity.Role,
		},
	})
}

// logout clears the cookie. There is no server-side session to revoke; the
// token itself stays valid until expiry.
func (h *Handler) logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.TokenCookie, "", -1, "/", "", h.secureCookie, true)
	response.OK(c, gin.H{"redirect": "/admin/login"})
}

// session reports the current identity, or null when unauthenticated. This is
// the handler-level session check some dashboard views call directly; it
// agrees with the route gate by sharing its verification.
func (h *Handler) session(c *gin.Context) {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		response.OK(c, nil)
		return
	}
	response.OK(c, gin.H{
		"id":    id.ID,
		"email": id.Email,
		"role":  id.Role,
	})
}
