package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/modacart/commerce-api/internal/api/handler"
	"github.com/modacart/commerce-api/internal/api/middleware"
	"github.com/modacart/commerce-api/internal/core/ports"
	"github.com/modacart/commerce-api/internal/core/service"
	"github.com/modacart/commerce-api/internal/infrastructure/config"
	mongodb "github.com/modacart/commerce-api/internal/infrastructure/db/mongo"
	redisdb "github.com/modacart/commerce-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *goredis.Client, gateway ports.PaymentGateway, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("commerce"))

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	productRepo := mongodb.NewProductRepository(db)
	couponRepo := mongodb.NewCouponRepository(db)
	orderRepo := mongodb.NewOrderRepository(db)

	tokenStore := redisdb.NewTokenStore(rdb, service.RefreshTokenTTL)
	featuredCache := redisdb.NewProductCache(rdb)

	// --- Services ---
	tokens := service.NewTokenService(cfg.AccessTokenSecret, cfg.RefreshTokenSecret)
	authService := service.NewAuthService(userRepo, tokens, tokenStore, log)
	productService := service.NewProductService(productRepo, featuredCache, log)
	cartService := service.NewCartService(userRepo, productRepo, log)
	couponService := service.NewCouponService(couponRepo, log)
	checkoutService := service.NewCheckoutService(couponRepo, orderRepo, gateway, cfg.ClientURL, log)
	analyticsService := service.NewAnalyticsService(userRepo, productRepo, orderRepo, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService, cfg.IsProduction())
	productHandler := handler.NewProductHandler(productService)
	cartHandler := handler.NewCartHandler(cartService)
	couponHandler := handler.NewCouponHandler(couponService)
	paymentHandler := handler.NewPaymentHandler(checkoutService)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService)

	session := middleware.Session(authService)
	adminOnly := middleware.AdminOnly()

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)
	auth.POST("/refresh", authHandler.Refresh)
	auth.GET("/profile", authHandler.Profile, session)

	// --- Product routes ---
	products := e.Group("/api/products")
	products.GET("", productHandler.List, session, adminOnly)
	products.GET("/featured", productHandler.Featured)
	products.GET("/recommended", productHandler.Recommended)
	products.GET("/category/:category", productHandler.ByCategory)
	products.POST("", productHandler.Create, session, adminOnly)
	products.DELETE("/:id", productHandler.Delete, session, adminOnly)
	products.PATCH("/:id", productHandler.ToggleFeatured, session, adminOnly)

	// --- Cart routes ---
	cart := e.Group("/api/cart", session)
	cart.GET("", cartHandler.Items)
	cart.POST("", cartHandler.Add)
	cart.DELETE("", cartHandler.Remove)
	cart.PUT("/:id", cartHandler.UpdateQuantity)

	// --- Coupon routes ---
	coupons := e.Group("/api/coupons", session)
	coupons.GET("", couponHandler.Active)
	coupons.POST("/validate", couponHandler.Validate)

	// --- Payment routes ---
	payments := e.Group("/api/payments", session)
	payments.POST("/create-checkout-session", paymentHandler.CreateSession)
	payments.POST("/checkout-success", paymentHandler.ConfirmSuccess)

	// --- Analytics routes ---
	e.GET("/api/analytics", analyticsHandler.Overview, session, adminOnly)

	// --- Ops endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
