package routes

import (
	"context"
	"net/http"

	"flashdeals/internal/config"
	"flashdeals/internal/delivery/http/handler"
	domainAccount "flashdeals/internal/domain/account"
	domainOffer "flashdeals/internal/domain/offer"
	domainTicket "flashdeals/internal/domain/ticket"
	domainWishlist "flashdeals/internal/domain/wishlist"
	"flashdeals/internal/events"
	"flashdeals/internal/logger"
	"flashdeals/internal/metrics"
	"flashdeals/internal/middleware"
	"flashdeals/internal/otp"
	"flashdeals/internal/storage"
	"flashdeals/internal/usecase/account"
	"flashdeals/internal/usecase/offer"
	"flashdeals/internal/usecase/session"
	"flashdeals/internal/usecase/ticket"
	"flashdeals/internal/usecase/wishlist"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HealthChecker is satisfied by both storage backends
type HealthChecker interface {
	Health(ctx context.Context) error
}

type Repositories struct {
	Accounts domainAccount.Repository
	Sessions domainAccount.SessionRepository
	Offers   domainOffer.Repository
	Wishlist domainWishlist.Repository
	Tickets  domainTicket.Repository
}

type Dependencies struct {
	Repos       Repositories
	Health      HealthChecker
	Publisher   events.Publisher
	OTP         otp.Provider
	Presigner   storage.Presigner // nil disables /uploads
	RateLimiter *middleware.RateLimiter
}

type Services struct {
	Accounts *account.Service
	Sessions *session.Service
	Offers   *offer.Service
	Wishlist *wishlist.Service
	Tickets  *ticket.Service
}

func NewServices(cfg *config.Config, deps *Dependencies) *Services {
	publisher := deps.Publisher
	if publisher == nil {
		publisher = events.NewNoop()
	}
	otpProvider := deps.OTP
	if otpProvider == nil {
		otpProvider = otp.NewStaticProvider(cfg.OTP.StaticCode)
	}

	sessionService := session.NewService(deps.Repos.Sessions, cfg)
	return &Services{
		Accounts: account.NewService(deps.Repos.Accounts, sessionService, otpProvider, publisher),
		Sessions: sessionService,
		Offers:   offer.NewService(deps.Repos.Offers, deps.Repos.Accounts, publisher),
		Wishlist: wishlist.NewService(deps.Repos.Wishlist, deps.Repos.Offers),
		Tickets:  ticket.NewService(deps.Repos.Tickets, publisher),
	}
}

func SetupRoutes(cfg *config.Config, deps *Dependencies, services *Services) *gin.Engine {
	production := cfg.Server.Environment == "production"
	if production {
		gin.SetMode(gin.ReleaseMode)
	}

	limiter := deps.RateLimiter
	if limiter == nil {
		limiter = middleware.NewRateLimiter(cfg.RateLimit.GeneralRPS, cfg.RateLimit.GeneralBurst)
	}

	router := gin.New()

	// Order: recovery, request ID, logging, metrics, security headers, CORS, request size limit, rate limit
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(metrics.HTTPMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware(production))
	router.Use(middleware.CORSMiddleware(&cfg.CORS))
	router.Use(middleware.RequestSizeLimitMiddleware(middleware.DefaultMaxRequestSize))
	router.Use(middleware.RateLimitMiddleware(limiter))

	router.GET("/health", func(c *gin.Context) {
		if deps.Health != nil {
			if err := deps.Health.Health(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status":  "unhealthy",
					"message": "Database connection failed",
				})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Service is running",
		})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	accountHandler := handler.NewAccountHandler(services.Accounts)
	sessionHandler := handler.NewSessionHandler(services.Sessions)
	offerHandler := handler.NewOfferHandler(services.Offers)
	vendorHandler := handler.NewVendorHandler(services.Accounts, services.Offers)
	wishlistHandler := handler.NewWishlistHandler(services.Wishlist)
	ticketHandler := handler.NewTicketHandler(services.Tickets)
	adminHandler := handler.NewAdminHandler(services.Accounts)

	v1 := router.Group("/api/v1")
	{
		accountHandler.RegisterRoutes(v1)
		offerHandler.RegisterPublicRoutes(v1)
		vendorHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(services.Sessions))
		{
			accountHandler.RegisterProfileRoutes(protected)
			sessionHandler.RegisterRoutes(protected)
			vendorHandler.RegisterRoutes(protected)
			wishlistHandler.RegisterRoutes(protected)
			ticketHandler.RegisterRoutes(protected)

			if deps.Presigner != nil {
				handler.NewUploadHandler(deps.Presigner).RegisterRoutes(protected)
			}

			vendor := protected.Group("")
			vendor.Use(middleware.VendorOnly())
			{
				offerHandler.RegisterVendorRoutes(vendor)
			}

			admin := protected.Group("/admin")
			admin.Use(middleware.AdminOnly())
			{
				ticketHandler.RegisterAdminRoutes(admin)
				adminHandler.RegisterRoutes(admin)
			}
		}
	}

	logger.Info("All routes initialized", zap.Bool("uploads_enabled", deps.Presigner != nil))
	return router
}
