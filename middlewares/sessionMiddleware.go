package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mmdatafocus/dashboard_backend/config"
	"github.com/mmdatafocus/dashboard_backend/utils"
)

// SessionMiddleware resolves the "token" cookie into a verified principal on
// the request context. Requests without a cookie pass through anonymously;
// enforcement happens in RequireAuth.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("token")
		if err != nil || token == "" {
			c.Next()
			return
		}

		claims, err := utils.JwtValidate(token)
		if err != nil {
			// Expired or tampered cookie: treat as anonymous rather than
			// failing public reads.
			c.Next()
			return
		}

		// Logout removes the session record, so a valid-looking JWT whose
		// record is gone is treated as anonymous. Skipped when Redis isn't
		// ready: sessions must keep working without it.
		if config.GetRedisDB() != nil {
			_, found, rerr := config.GetRedisValue("Token:" + token)
			if rerr == nil && !found {
				c.Next()
				return
			}
		}

		ctx := utils.SetTokenInContext(c.Request.Context(), token)
		ctx = utils.SetUserIdInContext(ctx, claims.UserId)
		ctx = utils.SetUserEmailInContext(ctx, claims.Email)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireAuth refuses the request before any handler or store call when no
// verified principal is present. Apply it to every mutating route instead of
// repeating the check inside handlers.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := utils.GetUserIdFromContext(c.Request.Context()); !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}
		c.Next()
	}
}
