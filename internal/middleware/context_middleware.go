package middleware

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/eventiapi/eventiapi/internal/token"
)

func DatabaseMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("db", db)
		c.Next()
	}
}

func TokenServiceMiddleware(tokens *token.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("token_service", tokens)
		c.Next()
	}
}

func GetTokenService(c *gin.Context) *token.Service {
	tokens, exists := c.Get("token_service")
	if !exists {
		return nil
	}
	return tokens.(*token.Service)
}
