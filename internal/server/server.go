package server

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/yuvakart/backend/config"
	"github.com/yuvakart/backend/internal/handlers"
	"github.com/yuvakart/backend/internal/middleware"
	"gorm.io/gorm"
)

func Start() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %v", err)
	}

	r := gin.Default()

	SetupRoutes(r, db)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	return r.Run(":" + port)
}

func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	r.Use(middleware.DatabaseMiddleware(db))

	public := r.Group("/api")
	{
		auth := public.Group("/auth")
		{
			auth.POST("/register", handlers.Register)
			auth.POST("/login", handlers.Login)
			auth.POST("/password-reset", handlers.PasswordResetRequest)
			auth.POST("/password-reset-confirm", handlers.PasswordResetConfirm)
		}

		categories := public.Group("/categories")
		{
			categories.GET("", handlers.ListCategories)
			categories.GET("/:id", handlers.GetCategory)
		}

		products := public.Group("/products")
		{
			products.GET("", handlers.ListProducts)
			products.GET("/:id", handlers.GetProduct)
		}

		orders := public.Group("/orders")
		{
			orders.POST("", handlers.CreateOrder)
			orders.GET("", handlers.ListOrders)
			orders.GET("/:id", handlers.GetOrder)
			orders.POST("/:id/payment-proof", handlers.UploadPaymentProof)
		}

		upi := public.Group("/upi-settings")
		{
			upi.GET("", handlers.ListActiveUPISettings)
			upi.GET("/qr", handlers.GetUPIQRCode)
		}
	}

	protected := r.Group("/api")
	protected.Use(middleware.JWTAuthMiddleware())
	{
		protected.GET("/auth/profile", handlers.GetProfile)
		protected.PUT("/auth/profile", handlers.UpdateProfile)

		addresses := protected.Group("/addresses")
		{
			addresses.POST("", handlers.CreateAddress)
			addresses.GET("", handlers.ListAddresses)
			addresses.GET("/:id", handlers.GetAddress)
			addresses.PUT("/:id", handlers.UpdateAddress)
			addresses.DELETE("/:id", handlers.DeleteAddress)
		}
	}

	admin := r.Group("/api/admin")
	admin.Use(middleware.JWTAuthMiddleware(), middleware.AdminMiddleware())
	{
		categories := admin.Group("/categories")
		{
			categories.POST("", handlers.CreateCategory)
			categories.GET("", handlers.ListCategories)
			categories.GET("/:id", handlers.GetCategory)
			categories.PUT("/:id", handlers.UpdateCategory)
			categories.DELETE("/:id", handlers.DeleteCategory)
		}

		products := admin.Group("/products")
		{
			products.POST("", handlers.CreateProduct)
			products.GET("", handlers.AdminListProducts)
			products.GET("/:id", handlers.GetProduct)
			products.PUT("/:id", handlers.UpdateProduct)
			products.DELETE("/:id", handlers.DeleteProduct)
		}

		orders := admin.Group("/orders")
		{
			orders.GET("", handlers.ListOrders)
			orders.GET("/:id", handlers.GetOrder)
			orders.PUT("/:id", handlers.UpdateOrderStatus)
			orders.POST("/:id/approve-payment", handlers.ApprovePayment)
			orders.POST("/:id/reject-payment", handlers.RejectPayment)
			orders.GET("/:id/tracking", handlers.GetOrderTracking)
		}

		shipments := admin.Group("/shipments")
		{
			shipments.POST("", handlers.CreateShipment)
			shipments.GET("", handlers.ListShipments)
			shipments.GET("/:id", handlers.GetShipment)
			shipments.PUT("/:id", handlers.UpdateShipment)
			shipments.POST("/:id/delhivery", handlers.CreateDelhiveryShipment)
		}

		upi := admin.Group("/upi-settings")
		{
			upi.POST("", handlers.CreateUPISettings)
			upi.GET("", handlers.ListUPISettings)
			upi.PUT("/:id", handlers.UpdateUPISettings)
			upi.DELETE("/:id", handlers.DeleteUPISettings)
		}

		admin.GET("/dashboard-stats", handlers.DashboardStats)
		admin.POST("/verify-payment", handlers.VerifyRazorpayPayment)
		admin.POST("/create-refund", handlers.CreateRazorpayRefund)
	}
}
