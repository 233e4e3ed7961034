package handlers

import (
	portssvc "github.com/DeveloperWK/product-inventory-api/internal/core/ports/services"
	"github.com/DeveloperWK/product-inventory-api/internal/middleware"
	"github.com/DeveloperWK/product-inventory-api/pkg/config"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	registerAuthRoutes(r, services.User)

	setupAPIV1Routes(r, cfg, services)
}

// registerAuthRoutes wires the public registration and login endpoints.
// Login is rate limited per client IP to slow credential stuffing.
func registerAuthRoutes(r *gin.Engine, userService portssvc.UserSvcFacade) {
	h := newUserHandler(userService)

	rate, _ := limiter.NewRateFromFormatted("5-M")
	ipLimiter := limiter.New(memory.NewStore(), rate)

	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/login", middleware.RateLimit(ipLimiter), h.login)
		auth.POST("/register", h.register)
	}
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerUserRoutes(v1, services.User)
	registerProductRoutes(v1, services.Product)
	registerCategoryRoutes(v1, services.Category)
	registerTransactionRoutes(v1, services.Transaction)
	registerAccountRoutes(v1, services.Account)
	registerOrderRoutes(v1, services.Order)
	registerSupplierRoutes(v1, services.Supplier)
	registerBusinessOrderRoutes(v1, services.BusinessOrder)
	registerReportingRoutes(v1, services.Reporting)
}
