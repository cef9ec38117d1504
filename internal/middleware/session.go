package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/soupclass/soup-backend/internal/response"
)

// SessionChecker reports whether a user still holds a refresh session.
type SessionChecker interface {
	HasSession(ctx context.Context, userID int) (bool, error)
}

// RequireLiveSession rejects access tokens whose user has logged out, reset
// their password or been deactivated since the token was issued.
// Must run after RequireJWT.
func RequireLiveSession(sessions SessionChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		ok, err := sessions.HasSession(c.Request.Context(), claims.UserID)
		if err != nil {
			response.AbortFail(c, http.StatusServiceUnavailable, response.ErrServiceUnavailable)
			return
		}
		if !ok {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
			return
		}
		c.Next()
	}
}
