package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yuvakart/backend/config"
	"github.com/yuvakart/backend/internal/helpers"
	"github.com/yuvakart/backend/internal/models"
)

type ShipmentRequest struct {
	OrderID     uuid.UUID `json:"order_id" binding:"required"`
	AWBNumber   string    `json:"awb_number" binding:"required"`
	TrackingURL string    `json:"tracking_url"`
	Status      string    `json:"status" binding:"omitempty,oneof=pending picked_up in_transit out_for_delivery delivered failed"`
}

type ShipmentUpdateRequest struct {
	AWBNumber   string `json:"awb_number"`
	TrackingURL string `json:"tracking_url"`
	Status      string `json:"status" binding:"omitempty,oneof=pending picked_up in_transit out_for_delivery delivered failed"`
}

func CreateShipment(c *gin.Context) {
	var req ShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var order models.Order
	if err := gormDB.Where("id = ?", req.OrderID).First(&order).Error; err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Order not found.")
		return
	}

	var existing models.Shipment
	if result := gormDB.Where("order_id = ?", req.OrderID).First(&existing); result.Error == nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Shipment already exists for this order.")
		return
	}

	status := req.Status
	if status == "" {
		status = models.ShipmentStatusPending
	}

	shipment := models.Shipment{
		ID:          uuid.New(),
		OrderID:     req.OrderID,
		AWBNumber:   req.AWBNumber,
		TrackingURL: req.TrackingURL,
		Status:      status,
	}

	if err := gormDB.Create(&shipment).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create shipment.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Shipment created successfully.",
		"shipment": shipment,
	})
}

func ListShipments(c *gin.Context) {
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

	query := gormDB.Model(&models.Shipment{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error counting shipments.")
		return
	}

	var shipments []models.Shipment
	offset := (pageNum - 1) * limitNum
	err = query.Preload("Order").Offset(offset).Limit(limitNum).Order("created_at DESC").Find(&shipments).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving shipments.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"shipments":   shipments,
		"total":       totalCount,
		"page":        pageNum,
		"limit":       limitNum,
		"total_pages": (totalCount + int64(limitNum) - 1) / int64(limitNum),
	})
}

func GetShipment(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var shipment models.Shipment
	if err := gormDB.Preload("Order").Where("id = ?", c.Param("id")).First(&shipment).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Shipment not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving shipment.")
		return
	}

	c.JSON(http.StatusOK, shipment)
}

func UpdateShipment(c *gin.Context) {
	var req ShipmentUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var shipment models.Shipment
	if err := gormDB.Where("id = ?", c.Param("id")).First(&shipment).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Shipment not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error finding shipment.")
		return
	}

	if req.AWBNumber != "" {
		shipment.AWBNumber = req.AWBNumber
	}
	if req.TrackingURL != "" {
		shipment.TrackingURL = req.TrackingURL
	}
	if req.Status != "" {
		shipment.Status = req.Status
	}

	if err := gormDB.Save(&shipment).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update shipment.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Shipment updated successfully.",
		"shipment": shipment,
	})
}

// CreateDelhiveryShipment books the shipment with Delhivery. The call runs in
// demo mode: instead of dispatching the package-creation request, an AWB
// derived from the shipment ID is assigned and the status moves to picked_up.
func CreateDelhiveryShipment(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var shipment models.Shipment
	if err := gormDB.Where("id = ?", c.Param("id")).First(&shipment).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Shipment not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving shipment.")
		return
	}

	// A real integration would POST the package payload (pickup location,
	// consignee name/address/phone, order reference and amounts) to
	// {BaseURL}/cmu/create.json and read the AWB from the response.
	dlvCfg := config.LoadDelhiveryConfig()
	shipment.AWBNumber = fmt.Sprintf("DEMO%X", shipment.ID[:4])
	shipment.Status = models.ShipmentStatusPickedUp
	shipment.TrackingURL = fmt.Sprintf("%s/packages/json/?waybill=%s", dlvCfg.BaseURL, shipment.AWBNumber)

	if err := gormDB.Save(&shipment).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update shipment.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "Shipment created with Delhivery (Demo Mode)",
		"tracking_number": shipment.AWBNumber,
		"status":          "Demo - would integrate with actual Delhivery API",
	})
}
