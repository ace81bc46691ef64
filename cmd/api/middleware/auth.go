package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"autoplay/cmd/api/auth"
	"autoplay/models"
)

const ctxKeyUserID = "user_id"

// TokenParser verifies an access token and returns the user id it carries.
type TokenParser interface {
	ParseAccessToken(token string) (string, error)
}

// UserLoader loads the authenticated user's row.
type UserLoader interface {
	GetUser(ctx context.Context, userID string) (*models.User, error)
}

// RequireAuth verifies the Bearer token and stores the user id on the
// request context. Unauthenticated requests get 401 with a redirect hint to
// the sign-in page.
func RequireAuth(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ExtractBearerToken(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":    err.Error(),
				"redirect": "/sign-in",
			})
			return
		}

		userID, err := parser.ParseAccessToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":    "invalid_token",
				"redirect": "/sign-in",
			})
			return
		}

		c.Set(ctxKeyUserID, userID)
		c.Next()
	}
}

// RequireOnboarded rejects users that have not completed onboarding with
// 403 and a redirect hint to the onboarding page. Must run after RequireAuth.
func RequireOnboarded(users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := UserID(c)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":    "missing_user",
				"redirect": "/sign-in",
			})
			return
		}

		user, err := users.GetUser(c.Request.Context(), userID)
		if err != nil || !user.Onboarded() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":    "onboarding_required",
				"redirect": "/onboarding",
			})
			return
		}

		c.Next()
	}
}

// UserID returns the authenticated user id set by RequireAuth.
func UserID(c *gin.Context) string {
	v, _ := c.Get(ctxKeyUserID)
	id, _ := v.(string)
	return id
}
