package middleware

import (
	"time"

	"flashdeals/internal/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORSMiddleware MaxAge is configured in seconds
func CORSMiddleware(cfg *config.CORSConfig) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowMethods:     cfg.AllowedMethods,
		AllowHeaders:     cfg.AllowedHeaders,
		ExposeHeaders:    cfg.ExposedHeaders,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           time.Duration(cfg.MaxAge) * time.Second,
	}

	wildcard := cfg.WildcardOrigins()
	switch {
	case wildcard && !cfg.AllowCredentials:
		corsConfig.AllowAllOrigins = true
	case wildcard:
		// credentialed requests need the caller's origin echoed back, never "*"
		corsConfig.AllowOriginFunc = func(string) bool { return true }
	default:
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	}

	return cors.New(corsConfig)
}
