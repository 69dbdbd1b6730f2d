package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yuvakart/backend/config"
	"github.com/yuvakart/backend/internal/middleware"
	"github.com/yuvakart/backend/internal/models"
)

// newTestRouter mirrors the route table in internal/server without importing
// it, which would cycle back into this package.
func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	r := gin.New()
	r.Use(middleware.DatabaseMiddleware(db))

	public := r.Group("/api")
	{
		public.POST("/auth/register", Register)
		public.POST("/auth/login", Login)
		public.POST("/auth/password-reset", PasswordResetRequest)
		public.POST("/auth/password-reset-confirm", PasswordResetConfirm)

		public.GET("/categories", ListCategories)
		public.GET("/categories/:id", GetCategory)
		public.GET("/products", ListProducts)
		public.GET("/products/:id", GetProduct)

		public.POST("/orders", CreateOrder)
		public.GET("/orders", ListOrders)
		public.GET("/orders/:id", GetOrder)
		public.POST("/orders/:id/payment-proof", UploadPaymentProof)

		public.GET("/upi-settings", ListActiveUPISettings)
		public.GET("/upi-settings/qr", GetUPIQRCode)
	}

	protected := r.Group("/api")
	protected.Use(middleware.JWTAuthMiddleware())
	{
		protected.GET("/auth/profile", GetProfile)
		protected.PUT("/auth/profile", UpdateProfile)

		protected.POST("/addresses", CreateAddress)
		protected.GET("/addresses", ListAddresses)
		protected.GET("/addresses/:id", GetAddress)
		protected.PUT("/addresses/:id", UpdateAddress)
		protected.DELETE("/addresses/:id", DeleteAddress)
	}

	admin := r.Group("/api/admin")
	admin.Use(middleware.JWTAuthMiddleware(), middleware.AdminMiddleware())
	{
		admin.POST("/categories", CreateCategory)
		admin.PUT("/categories/:id", UpdateCategory)
		admin.DELETE("/categories/:id", DeleteCategory)

		admin.POST("/products", CreateProduct)
		admin.GET("/products", AdminListProducts)
		admin.PUT("/products/:id", UpdateProduct)
		admin.DELETE("/products/:id", DeleteProduct)

		admin.GET("/orders", ListOrders)
		admin.PUT("/orders/:id", UpdateOrderStatus)
		admin.POST("/orders/:id/approve-payment", ApprovePayment)
		admin.POST("/orders/:id/reject-payment", RejectPayment)
		admin.GET("/orders/:id/tracking", GetOrderTracking)

		admin.POST("/shipments", CreateShipment)
		admin.GET("/shipments", ListShipments)
		admin.GET("/shipments/:id", GetShipment)
		admin.PUT("/shipments/:id", UpdateShipment)
		admin.POST("/shipments/:id/delhivery", CreateDelhiveryShipment)

		admin.POST("/upi-settings", CreateUPISettings)
		admin.GET("/upi-settings", ListUPISettings)
		admin.PUT("/upi-settings/:id", UpdateUPISettings)
		admin.DELETE("/upi-settings/:id", DeleteUPISettings)

		admin.GET("/dashboard-stats", DashboardStats)
		admin.POST("/verify-payment", VerifyRazorpayPayment)
		admin.POST("/create-refund", CreateRazorpayRefund)
	}

	return r, db
}

func createTestUser(t *testing.T, db *gorm.DB, username, email, password string, isStaff bool) *models.User {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)

	user := models.User{
		Username: username,
		Email:    email,
		Password: string(hashed),
		IsStaff:  isStaff,
		IsActive: true,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func authHeader(t *testing.T, user *models.User) string {
	token, err := generateToken(user)
	require.NoError(t, err)
	return "Bearer " + token
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}, auth string) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(payload)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func postJSON(t *testing.T, r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	return doJSON(t, r, http.MethodPost, path, body, "")
}
