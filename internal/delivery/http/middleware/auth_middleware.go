package middleware

import (
	"net/http"
	"strings"

	"myresume-backend/internal/delivery/http/response"
	"myresume-backend/internal/domain"
	"myresume-backend/pkg/token"

	"github.com/gin-gonic/gin"
)

// AuthCookieName is the session cookie set on login/register.
const AuthCookieName = "auth_token"

// AuthMiddleware validates the session token from the Authorization header
// or the auth cookie, confirms the user still exists, and stores identity in
// the request context. Failures are 401, distinguishable from ownership 404s.
func AuthMiddleware(tokens *token.Manager, authUC domain.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string

		// 1. Try the Authorization header
		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		} else {
			// 2. Fall back to the cookie
			if cookie, err := c.Cookie(AuthCookieName); err == nil && cookie != "" {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "Authorization header or auth_token cookie required", nil)
			c.Abort()
			return
		}

		userID, err := tokens.Validate(tokenString)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "Invalid or expired token", nil)
			c.Abort()
			return
		}

		// A valid token for a deleted user is still unauthenticated.
		user, err := authUC.GetCurrentUser(c.Request.Context(), userID)
		if err != nil || user == nil {
			response.Error(c, http.StatusUnauthorized, "User not found", nil)
			c.Abort()
			return
		}

		c.Set(string(domain.KeyUserID), user.ID)
		c.Set(string(domain.KeyUserEmail), user.Email)

		c.Next()
	}
}

// UserID returns the authenticated user id from the request context.
func UserID(c *gin.Context) string {
	id, _ := c.Get(string(domain.KeyUserID))
	s, _ := id.(string)
	return s
}
