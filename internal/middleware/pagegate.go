package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// PageGate guards browser navigation under the admin prefix. Unauthenticated
// requests to any admin page are redirected to the login page; an already
// authenticated request to the login page is redirected forward to the
// dashboard instead of rendering login.
func PageGate(loginPath, dashboardPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, err := VerifyRequest(c)
		authed := err == nil

		if c.Request.URL.Path == loginPath {
			if authed {
				c.Redirect(http.StatusFound, dashboardPath)
				c.Abort()
				return
			}
			c.Next()
			return
		}

		if !authed {
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}
		c.Next()
	}
}
