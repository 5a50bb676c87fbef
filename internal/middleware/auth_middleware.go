package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/eventiapi/eventiapi/internal/helpers"
	"github.com/eventiapi/eventiapi/internal/token"
)

// JWTAuthMiddleware is the authorization gate: it rejects requests without a
// valid bearer token and attaches the validated claims to the request
// context. Role checks are a separate, per-route concern (RoleRequired).
func JWTAuthMiddleware(tokens *token.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Missing authorization header.")
			c.Abort()
			return
		}

		raw, found := strings.CutPrefix(header, "Bearer ")
		if !found {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid authorization header.")
			c.Abort()
			return
		}

		claims, err := tokens.Validate(raw)
		if err != nil {
			// Expired and malformed tokens get the same response but are
			// logged apart.
			if errors.Is(err, token.ErrTokenExpired) {
				log.Debug().Str("path", c.Request.URL.Path).Msg("rejected expired token")
			} else {
				log.Debug().Str("path", c.Request.URL.Path).Msg("rejected invalid token")
			}
			helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid or expired token.")
			c.Abort()
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid or expired token.")
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Set("email", claims.Email)
		c.Set("roles", claims.Roles)
		c.Next()
	}
}

// RoleRequired is the per-route role declaration. It must run after
// JWTAuthMiddleware; a valid identity without the role gets 403, which stays
// distinct from the gate's 401.
func RoleRequired(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		rolesVal, exists := c.Get("roles")
		if !exists {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Missing authorization header.")
			c.Abort()
			return
		}

		roles, ok := rolesVal.([]string)
		if !ok || !containsRole(roles, role) {
			helpers.RespondWithError(c, http.StatusForbidden, "Insufficient permissions.")
			c.Abort()
			return
		}
		c.Next()
	}
}

func containsRole(roles []string, role string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
