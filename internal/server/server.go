package server

import (
	"fmt"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/eventiapi/eventiapi/config"
	"github.com/eventiapi/eventiapi/internal/handlers"
	"github.com/eventiapi/eventiapi/internal/middleware"
	"github.com/eventiapi/eventiapi/internal/models"
	"github.com/eventiapi/eventiapi/internal/token"
)

func Start() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	logger := config.NewLogger(cfg)

	db, err := config.InitDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %v", err)
	}

	tokens := token.NewService(cfg.JWTSecret, cfg.TokenTTL)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	SetupRoutes(r, db, tokens)

	logger.Info().Str("port", cfg.Port).Msg("server listening")
	return r.Run(":" + cfg.Port)
}

// SetupRoutes registers every route with its role requirement declared at
// registration time. Routes without JWTAuthMiddleware are public.
func SetupRoutes(r *gin.Engine, db *gorm.DB, tokens *token.Service) {
	r.Use(middleware.DatabaseMiddleware(db))
	r.Use(middleware.TokenServiceMiddleware(tokens))

	api := r.Group("/api")

	account := api.Group("/account")
	{
		account.POST("/register", handlers.Register)
		account.POST("/login", handlers.Login)
	}

	artists := api.Group("/artisti")
	{
		artists.GET("", handlers.ListArtists)
		artists.GET("/:id", handlers.GetArtist)

		adminOnly := artists.Group("")
		adminOnly.Use(middleware.JWTAuthMiddleware(tokens), middleware.RoleRequired(models.RoleAdmin))
		{
			adminOnly.POST("", handlers.CreateArtist)
			adminOnly.PUT("/:id", handlers.UpdateArtist)
			adminOnly.DELETE("/:id", handlers.DeleteArtist)
		}
	}

	events := api.Group("/eventi")
	{
		events.GET("", handlers.ListEvents)
		events.GET("/:id", handlers.GetEvent)

		adminOnly := events.Group("")
		adminOnly.Use(middleware.JWTAuthMiddleware(tokens), middleware.RoleRequired(models.RoleAdmin))
		{
			adminOnly.POST("", handlers.CreateEvent)
			adminOnly.PUT("/:id", handlers.UpdateEvent)
			adminOnly.DELETE("/:id", handlers.DeleteEvent)
		}
	}

	tickets := api.Group("/biglietti")
	tickets.Use(middleware.JWTAuthMiddleware(tokens))
	{
		userOnly := tickets.Group("")
		userOnly.Use(middleware.RoleRequired(models.RoleUser))
		{
			userOnly.POST("", handlers.PurchaseTicket)
			userOnly.GET("/miei", handlers.ListMyTickets)
		}

		adminOnly := tickets.Group("")
		adminOnly.Use(middleware.RoleRequired(models.RoleAdmin))
		{
			adminOnly.GET("/venduti", handlers.ListSoldTickets)
		}
	}
}
