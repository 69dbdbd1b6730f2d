package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yuvakart/backend/internal/helpers"
	"github.com/yuvakart/backend/internal/models"
)

const lowStockThreshold = 10

type UpdateOrderStatusRequest struct {
	OrderStatus   string `json:"order_status" binding:"omitempty,oneof=pending payment_verified shipped delivered cancelled"`
	PaymentStatus string `json:"payment_status" binding:"omitempty,oneof=pending verified rejected"`
}

func findOrder(c *gin.Context) (*gorm.DB, *models.Order, bool) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return nil, nil, false
	}
	gormDB := db.(*gorm.DB)

	var order models.Order
	if err := gormDB.Where("id = ?", c.Param("id")).First(&order).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Order not found.")
			return nil, nil, false
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving order.")
		return nil, nil, false
	}

	return gormDB, &order, true
}

func UpdateOrderStatus(c *gin.Context) {
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	gormDB, order, ok := findOrder(c)
	if !ok {
		return
	}

	if req.OrderStatus != "" {
		order.OrderStatus = req.OrderStatus
	}
	if req.PaymentStatus != "" {
		order.PaymentStatus = req.PaymentStatus
	}

	if err := gormDB.Save(order).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update order.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order updated successfully.",
		"order":   order,
	})
}

func ApprovePayment(c *gin.Context) {
	gormDB, order, ok := findOrder(c)
	if !ok {
		return
	}

	order.PaymentStatus = models.PaymentStatusVerified
	order.OrderStatus = models.OrderStatusPaymentVerified

	if err := gormDB.Save(order).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update order.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Payment approved"})
}

func RejectPayment(c *gin.Context) {
	gormDB, order, ok := findOrder(c)
	if !ok {
		return
	}

	order.PaymentStatus = models.PaymentStatusRejected

	if err := gormDB.Save(order).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update order.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Payment rejected"})
}

func GetOrderTracking(c *gin.Context) {
	gormDB, order, ok := findOrder(c)
	if !ok {
		return
	}

	var shipment models.Shipment
	if err := gormDB.Where("order_id = ?", order.ID).First(&shipment).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{"message": "No shipment found"})
		return
	}

	c.JSON(http.StatusOK, shipment)
}

type recentOrder struct {
	ID            string  `json:"id"`
	CustomerName  string  `json:"customer_name"`
	TotalAmount   float64 `json:"total_amount"`
	PaymentStatus string  `json:"payment_status"`
	CreatedAt     string  `json:"created_at"`
}

func DashboardStats(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var totalOrders, pendingPayments, verifiedPayments int64
	if err := gormDB.Model(&models.Order{}).Count(&totalOrders).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error computing order stats.")
		return
	}
	if err := gormDB.Model(&models.Order{}).Where("payment_status = ?", models.PaymentStatusPending).Count(&pendingPayments).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error computing order stats.")
		return
	}
	if err := gormDB.Model(&models.Order{}).Where("payment_status = ?", models.PaymentStatusVerified).Count(&verifiedPayments).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error computing order stats.")
		return
	}

	var totalProducts, lowStockProducts int64
	if err := gormDB.Model(&models.Product{}).Where("is_active = ?", true).Count(&totalProducts).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error computing product stats.")
		return
	}
	if err := gormDB.Model(&models.Product{}).Where("is_active = ? AND stock < ?", true, lowStockThreshold).Count(&lowStockProducts).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error computing product stats.")
		return
	}

	var totalRevenue float64
	if err := gormDB.Model(&models.Order{}).Where("payment_status = ?", models.PaymentStatusVerified).
		Select("COALESCE(SUM(total_amount), 0)").Scan(&totalRevenue).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error computing revenue.")
		return
	}

	var orders []models.Order
	if err := gormDB.Order("created_at DESC").Limit(5).Find(&orders).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving recent orders.")
		return
	}

	recentOrders := make([]recentOrder, 0, len(orders))
	for _, order := range orders {
		recentOrders = append(recentOrders, recentOrder{
			ID:            order.ID.String(),
			CustomerName:  order.CustomerName,
			TotalAmount:   order.TotalAmount,
			PaymentStatus: order.PaymentStatus,
			CreatedAt:     order.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"total_orders":       totalOrders,
		"pending_payments":   pendingPayments,
		"verified_payments":  verifiedPayments,
		"total_products":     totalProducts,
		"low_stock_products": lowStockProducts,
		"total_revenue":      totalRevenue,
		"recent_orders":      recentOrders,
	})
}
