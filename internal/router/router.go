package router

import (
	"fmt"
	"strings"

	"github.com/libas-next/internal/cache"
	"github.com/libas-next/internal/config"
	"github.com/libas-next/internal/constants"
	adminhandlers "github.com/libas-next/internal/http/handlers/admin"
	publichandlers "github.com/libas-next/internal/http/handlers/public"
	"github.com/libas-next/internal/logger"
	"github.com/libas-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter wires the API routes.
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = constants.RedisPrefixDefault
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		Message:       "too many login attempts",
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))
	r.Use(SessionMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		// Catalog, open to everyone
		api.GET("/products", publicHandler.GetProducts)
		api.GET("/products/:id", publicHandler.GetProduct)
		api.GET("/products/sku/:sku", publicHandler.GetProductBySKU)
		api.GET("/products/:id/reviews", publicHandler.GetProductReviews)
		api.GET("/captcha/image", publicHandler.GetImageCaptcha)

		// Auth
		auth := api.Group("/auth")
		{
			auth.POST("/register", publicHandler.UserRegister)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("identifier")), publicHandler.UserLogin)
		}

		// Cart, shared by guests and users
		cart := api.Group("/cart")
		cart.Use(OptionalUserAuthMiddleware(cfg.UserJWT.SecretKey, c.UserRepo))
		{
			cart.GET("", publicHandler.GetCart)
			cart.POST("/items", publicHandler.AddCartItem)
			cart.PATCH("/items/:id", publicHandler.UpdateCartItem)
			cart.DELETE("/items/:id", publicHandler.DeleteCartItem)
			cart.DELETE("", publicHandler.ClearCart)
		}

		// Checkout, guests allowed
		api.POST("/orders", OptionalUserAuthMiddleware(cfg.UserJWT.SecretKey, c.UserRepo), publicHandler.CreateOrder)

		// Authenticated surface
		user := api.Group("")
		user.Use(UserJWTAuthMiddleware(cfg.UserJWT.SecretKey, c.UserRepo))
		{
			user.POST("/auth/logout", publicHandler.UserLogout)
			user.GET("/me", publicHandler.GetCurrentUser)
			user.PUT("/me/profile", publicHandler.UpdateUserProfile)
			user.PUT("/me/password", publicHandler.ChangeUserPassword)
			user.GET("/orders", publicHandler.ListOrders)
			user.GET("/orders/:id", publicHandler.GetOrder)
			user.GET("/wishlist", publicHandler.GetWishlist)
			user.POST("/wishlist/items", publicHandler.AddWishlistItem)
			user.DELETE("/wishlist/items/:product_id", publicHandler.RemoveWishlistItem)
			user.POST("/products/:id/reviews", publicHandler.CreateProductReview)
		}

		// Back office
		admin := api.Group("/admin")
		admin.Use(AdminAuthMiddleware(cfg.UserJWT.SecretKey, c.UserRepo))
		{
			admin.POST("/products", adminHandler.CreateProduct)
			admin.PUT("/products/:id", adminHandler.UpdateProduct)
			admin.DELETE("/products/:id", adminHandler.DeleteProduct)
			admin.GET("/products/:id/variants", adminHandler.ListVariants)
			admin.POST("/products/:id/variants", adminHandler.CreateVariant)
			admin.POST("/products/:id/images", adminHandler.CreateImage)
			admin.GET("/orders", adminHandler.AdminListOrders)
			admin.GET("/orders/:id", adminHandler.AdminGetOrder)
			admin.PATCH("/orders/:id", adminHandler.AdminUpdateOrderStatus)
		}
	}

	return r
}
