package http

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/layer-3/ordauth/service"
	"github.com/rs/zerolog"
)

// RouterOptions configures the Gin router
type RouterOptions struct {
	Logger      zerolog.Logger
	CORSOrigins []string
}

// SetupRouter sets up the Gin router
func SetupRouter(authService *service.AuthService, opts RouterOptions) *gin.Engine {
	registerValidators()

	router := gin.New()
	router.Use(RequestLogger(opts.Logger), gin.Recovery())

	if len(opts.CORSOrigins) > 0 {
		corsConfig := cors.DefaultConfig()
		if len(opts.CORSOrigins) == 1 && opts.CORSOrigins[0] == "*" {
			corsConfig.AllowAllOrigins = true
		} else {
			corsConfig.AllowOrigins = opts.CORSOrigins
		}
		corsConfig.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
		corsConfig.AllowHeaders = []string{"Content-Type", "Authorization", "Accept"}
		corsConfig.ExposeHeaders = []string{"Retry-After"}
		router.Use(cors.New(corsConfig))
	}

	// Create handlers
	handlers := NewAuthHandlers(authService)

	router.GET("/healthz", handlers.Health)

	// Auth routes
	auth := router.Group("/auth")
	{
		auth.POST("/challenge", handlers.Challenge)
		auth.POST("/login", handlers.Login)
		auth.POST("/logout", handlers.Logout)
	}

	// Protected API routes
	api := router.Group("/api")
	api.Use(AuthMiddleware(authService))
	{
		api.GET("/me", handlers.Me)
		api.GET("/authorize", handlers.Authorize)
	}

	return router
}
