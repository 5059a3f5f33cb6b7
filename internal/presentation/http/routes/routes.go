package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/farmaciasantana/pos-api/internal/config"
	"github.com/farmaciasantana/pos-api/internal/presentation/http/handler"
	"github.com/farmaciasantana/pos-api/internal/presentation/http/middleware"
	"github.com/farmaciasantana/pos-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Product   *handler.ProductHandler
	Client    *handler.ClientHandler
	Cart      *handler.CartHandler
	Sale      *handler.SaleHandler
	Printer   *handler.PrinterHandler
	Dashboard *handler.DashboardHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager *utils.JWTManager
	Cfg        *config.Config
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h)
	}

	return router
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers) {
	// Profile / user management
	protected.GET("/profile", h.Auth.Profile)
	protected.POST("/auth/register", middleware.RequireRole("admin"), h.Auth.Register)

	registerProductRoutes(protected, h)
	registerClientRoutes(protected, h)
	registerCartRoutes(protected, h)
	registerSaleRoutes(protected, h)
	registerPrinterRoutes(protected, h)

	protected.GET("/dashboard", h.Dashboard.GetStats)
}

func registerProductRoutes(protected *gin.RouterGroup, h *Handlers) {
	products := protected.Group("/products")
	{
		products.GET("", h.Product.List)
		products.GET("/low-stock", h.Product.LowStock)
		products.GET("/code/:code", h.Product.GetByCode)
		products.GET("/:id", h.Product.Get)
		products.POST("", middleware.RequireRole("admin"), h.Product.Create)
		products.PUT("/:id", middleware.RequireRole("admin"), h.Product.Update)
		products.DELETE("/:id", middleware.RequireRole("admin"), h.Product.Deactivate)
		products.POST("/:id/stock", middleware.RequireRole("admin"), h.Product.AdjustStock)
	}

	categories := protected.Group("/categories")
	{
		categories.GET("", h.Product.ListCategories)
		categories.POST("", middleware.RequireRole("admin"), h.Product.CreateCategory)
	}
}

func registerClientRoutes(protected *gin.RouterGroup, h *Handlers) {
	clients := protected.Group("/clients")
	{
		clients.GET("", h.Client.List)
		clients.GET("/lookup", h.Client.FindByDocument)
		clients.GET("/:id", h.Client.Get)
		clients.POST("", h.Client.Create)
		clients.PUT("/:id", h.Client.Update)
	}
}

func registerCartRoutes(protected *gin.RouterGroup, h *Handlers) {
	cart := protected.Group("/cart")
	{
		cart.GET("", h.Cart.Get)
		cart.POST("/items", h.Cart.AddItem)
		cart.PUT("/items/:product_id", h.Cart.UpdateItem)
		cart.DELETE("/items/:product_id", h.Cart.RemoveItem)
		cart.DELETE("", h.Cart.Clear)
	}
}

func registerSaleRoutes(protected *gin.RouterGroup, h *Handlers) {
	sales := protected.Group("/sales")
	{
		sales.POST("/checkout", h.Sale.Checkout)
		sales.GET("", h.Sale.List)
		sales.GET("/number/:number", h.Sale.GetByNumber)
		sales.GET("/:id", h.Sale.Get)
	}
}

func registerPrinterRoutes(protected *gin.RouterGroup, h *Handlers) {
	printerGroup := protected.Group("/printer")
	{
		printerGroup.GET("/status", h.Printer.Status)
		printerGroup.GET("/receipt/:id", h.Printer.Receipt)
		printerGroup.POST("/receipt/:id", h.Printer.Print)
	}
}
