// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/interfaces/http/handlers"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// SetupRoutes wires every API route group under the given router group
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	SetupAuthRoutes(rg, db, cfg)
	SetupUserRoutes(rg, db, cfg)
	SetupProductRoutes(rg, db, cfg)
	SetupCartRoutes(rg, db, cfg)
	SetupOrderRoutes(rg, db, cfg)
	SetupAdminRoutes(rg, db, cfg)
}

// SetupAuthRoutes sets up authentication routes
func SetupAuthRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	authHandler := handlers.NewAuthHandler(db, cfg)

	auth := rg.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.RefreshToken)

		protected := auth.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			protected.POST("/logout", authHandler.Logout)
		}
	}
}

// SetupUserRoutes sets up profile and address book routes
func SetupUserRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	authHandler := handlers.NewAuthHandler(db, cfg)
	addressHandler := handlers.NewAddressHandler(db, cfg)

	users := rg.Group("/users")
	users.Use(middleware.AuthMiddleware(cfg))
	{
		users.GET("/profile", authHandler.GetProfile)
		users.PUT("/profile", authHandler.UpdateProfile)
		users.PUT("/password", authHandler.ChangePassword)

		users.GET("/addresses", addressHandler.GetAddresses)
		users.POST("/addresses", addressHandler.CreateAddress)
		users.PUT("/addresses/:id", addressHandler.UpdateAddress)
		users.DELETE("/addresses/:id", addressHandler.DeleteAddress)
	}
}

// SetupProductRoutes sets up public catalog routes
func SetupProductRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	productHandler := handlers.NewProductHandler(db, cfg)

	products := rg.Group("/products")
	{
		products.GET("", productHandler.GetProducts)
		products.GET("/:id", productHandler.GetProduct)
		products.GET("/slug/:slug", productHandler.GetProductBySlug)
	}
}

// SetupCartRoutes sets up authenticated cart routes
func SetupCartRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	cartHandler := handlers.NewCartHandler(db, cfg)

	cart := rg.Group("/cart")
	cart.Use(middleware.AuthMiddleware(cfg))
	{
		cart.GET("", cartHandler.GetCart)
		cart.DELETE("", cartHandler.ClearCart)
		cart.GET("/count", cartHandler.GetItemCount)
		cart.POST("/items", cartHandler.SetItem)
		cart.DELETE("/items/:id", cartHandler.RemoveItem)
	}
}

// SetupOrderRoutes sets up authenticated order routes
func SetupOrderRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	orderHandler := handlers.NewOrderHandler(db, cfg)
	invoiceHandler := handlers.NewInvoiceHandler(db, cfg)

	orders := rg.Group("/orders")
	orders.Use(middleware.AuthMiddleware(cfg))
	{
		orders.POST("", orderHandler.CreateOrder)
		orders.GET("", orderHandler.GetMyOrders)
		orders.GET("/:id", orderHandler.GetOrder)
		orders.PUT("/:id/pay", orderHandler.MarkPaid)
		orders.GET("/:id/invoice", invoiceHandler.GenerateInvoice)
		orders.GET("/:id/invoice/data", invoiceHandler.GetInvoiceData)
	}
}

// SetupAdminRoutes sets up admin-only routes
func SetupAdminRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	productHandler := handlers.NewProductHandler(db, cfg)
	orderHandler := handlers.NewOrderHandler(db, cfg)

	admin := rg.Group("/admin")
	admin.Use(middleware.AuthMiddleware(cfg))
	admin.Use(middleware.AdminMiddleware())
	{
		admin.POST("/products", productHandler.CreateProduct)
		admin.PUT("/products/:id", productHandler.UpdateProduct)
		admin.DELETE("/products/:id", productHandler.DeleteProduct)

		admin.GET("/orders", orderHandler.GetAllOrders)
		admin.PUT("/orders/:id/deliver", orderHandler.MarkDelivered)
	}
}
