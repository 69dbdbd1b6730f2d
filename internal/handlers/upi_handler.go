package handlers

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
	"gorm.io/gorm"

	"github.com/yuvakart/backend/internal/helpers"
	"github.com/yuvakart/backend/internal/models"
)

type UPISettingsRequest struct {
	MerchantName string `json:"merchant_name" binding:"required"`
	UPIID        string `json:"upi_id" binding:"required"`
	IsActive     *bool  `json:"is_active"`
}

func ListActiveUPISettings(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var settings []models.UPISettings
	if err := gormDB.Where("is_active = ?", true).Find(&settings).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving UPI settings.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"upi_settings": settings})
}

// GetUPIQRCode renders the active merchant UPI ID as a scannable
// upi://pay deep link.
func GetUPIQRCode(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var settings models.UPISettings
	if err := gormDB.Where("is_active = ?", true).First(&settings).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "No active UPI settings found.")
		return
	}

	params := url.Values{}
	params.Set("pa", settings.UPIID)
	params.Set("pn", settings.MerchantName)
	if amount := c.Query("amount"); amount != "" {
		if _, err := helpers.StringToFloat(amount); err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid amount.")
			return
		}
		params.Set("am", amount)
		params.Set("cu", "INR")
	}
	payURI := fmt.Sprintf("upi://pay?%s", params.Encode())

	qrImage, err := qrcode.Encode(payURI, qrcode.Medium, 256)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to generate QR code.")
		return
	}

	c.Data(http.StatusOK, "image/png", qrImage)
}

func ListUPISettings(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var settings []models.UPISettings
	if err := gormDB.Order("created_at DESC").Find(&settings).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving UPI settings.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"upi_settings": settings})
}

func CreateUPISettings(c *gin.Context) {
	var req UPISettingsRequest
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

	settings := models.UPISettings{
		ID:           uuid.New(),
		MerchantName: req.MerchantName,
		UPIID:        req.UPIID,
		IsActive:     true,
	}
	if req.IsActive != nil {
		settings.IsActive = *req.IsActive
	}

	if err := gormDB.Create(&settings).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create UPI settings.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      "UPI settings created successfully.",
		"upi_settings": settings,
	})
}

func UpdateUPISettings(c *gin.Context) {
	settingsID := c.Param("id")

	var req UPISettingsRequest
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

	var settings models.UPISettings
	if err := gormDB.Where("id = ?", settingsID).First(&settings).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "UPI settings not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error finding UPI settings.")
		return
	}

	settings.MerchantName = req.MerchantName
	settings.UPIID = req.UPIID
	if req.IsActive != nil {
		settings.IsActive = *req.IsActive
	}

	if err := gormDB.Save(&settings).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update UPI settings.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "UPI settings updated successfully.",
		"upi_settings": settings,
	})
}

func DeleteUPISettings(c *gin.Context) {
	settingsID := c.Param("id")

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	result := gormDB.Where("id = ?", settingsID).Delete(&models.UPISettings{})
	if result.Error != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete UPI settings.")
		return
	}

	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusNotFound, "UPI settings not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "UPI settings deleted successfully.",
	})
}
