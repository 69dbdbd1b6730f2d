package handlers

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yuvakart/backend/internal/helpers"
	"github.com/yuvakart/backend/internal/models"
)

type OrderItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
	Price     float64   `json:"price" binding:"required,min=0"`
}

type OrderCreateRequest struct {
	CustomerName    string             `json:"customer_name" binding:"required"`
	CustomerPhone   string             `json:"customer_phone" binding:"required"`
	CustomerEmail   string             `json:"customer_email"`
	ShippingAddress string             `json:"shipping_address" binding:"required"`
	TotalAmount     float64            `json:"total_amount" binding:"required"`
	ShippingCharge  float64            `json:"shipping_charge"`
	Items           []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

const totalAmountTolerance = 0.01

func CreateOrder(c *gin.Context) {
	var req OrderCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	calculatedTotal := req.ShippingCharge
	for _, item := range req.Items {
		calculatedTotal += item.Price * float64(item.Quantity)
	}

	if math.Abs(calculatedTotal-req.TotalAmount) > totalAmountTolerance {
		helpers.RespondWithError(c, http.StatusBadRequest, "Total amount mismatch")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	order := models.Order{
		ID:              uuid.New(),
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		CustomerEmail:   req.CustomerEmail,
		ShippingAddress: req.ShippingAddress,
		TotalAmount:     req.TotalAmount,
		ShippingCharge:  req.ShippingCharge,
		OrderStatus:     models.OrderStatusPending,
		PaymentStatus:   models.PaymentStatusPending,
	}

	err := gormDB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		for _, item := range req.Items {
			orderItem := models.OrderItem{
				OrderID:   order.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     item.Price,
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create order.")
		return
	}

	var created models.Order
	if err := gormDB.Preload("Items.Product").Where("id = ?", order.ID).First(&created).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving order.")
		return
	}

	c.JSON(http.StatusCreated, created)
}

func ListOrders(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	page := c.DefaultQuery("page", "1")
	limit := c.DefaultQuery("limit", "10")

	pageNum, err := helpers.StringToInt(page)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid page number.")
		return
	}

	limitNum, err := helpers.StringToInt(limit)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid limit.")
		return
	}

	query := gormDB.Model(&models.Order{})
	if orderStatus := c.Query("order_status"); orderStatus != "" {
		query = query.Where("order_status = ?", orderStatus)
	}
	if paymentStatus := c.Query("payment_status"); paymentStatus != "" {
		query = query.Where("payment_status = ?", paymentStatus)
	}

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error counting orders.")
		return
	}

	var orders []models.Order
	offset := (pageNum - 1) * limitNum
	err = query.Preload("Items.Product").Offset(offset).Limit(limitNum).Order("created_at DESC").Find(&orders).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving orders.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders":      orders,
		"total":       totalCount,
		"page":        pageNum,
		"limit":       limitNum,
		"total_pages": (totalCount + int64(limitNum) - 1) / int64(limitNum),
	})
}

func GetOrder(c *gin.Context) {
	orderID := c.Param("id")

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var order models.Order
	err := gormDB.Preload("Items.Product").Preload("PaymentProof").Preload("Shipment").
		Where("id = ?", orderID).First(&order).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Order not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving order.")
		return
	}

	c.JSON(http.StatusOK, order)
}

func UploadPaymentProof(c *gin.Context) {
	orderID := c.Param("id")

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var order models.Order
	if err := gormDB.Where("id = ?", orderID).First(&order).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Order not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving order.")
		return
	}

	if order.PaymentStatus != models.PaymentStatusPending {
		helpers.RespondWithError(c, http.StatusBadRequest, "Payment already verified")
		return
	}

	imageFile, err := c.FormFile("image")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Payment proof image is required.")
		return
	}

	imagePath, err := helpers.UploadFile(c, imageFile, "payment_proofs")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	proof := models.PaymentProof{
		OrderID:   order.ID,
		ImagePath: imagePath,
		UTRNumber: c.PostForm("utr_number"),
	}

	if err := gormDB.Create(&proof).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to save payment proof.")
		return
	}

	// MVP behavior: no amount check against the proof, the order is
	// marked verified as soon as a proof lands.
	order.PaymentStatus = models.PaymentStatusVerified
	if err := gormDB.Save(&order).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update order.")
		return
	}

	c.JSON(http.StatusCreated, proof)
}
