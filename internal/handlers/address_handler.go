package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yuvakart/backend/internal/helpers"
	"github.com/yuvakart/backend/internal/models"
)

type AddressRequest struct {
	AddressType   string `json:"address_type" binding:"omitempty,oneof=home work other"`
	ApartmentFlat string `json:"apartment_flat"`
	Street        string `json:"street"`
	Landmark      string `json:"landmark"`
	Village       string `json:"village"`
	Mandal        string `json:"mandal"`
	District      string `json:"district" binding:"required"`
	State         string `json:"state" binding:"required"`
	Pincode       string `json:"pincode" binding:"required,min=6,max=10"`
	FullAddress   string `json:"full_address"`
	IsDefault     bool   `json:"is_default"`
}

func CreateAddress(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	var req AddressRequest
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

	addressType := req.AddressType
	if addressType == "" {
		addressType = models.AddressTypeHome
	}

	address := models.Address{
		ID:            uuid.New(),
		UserID:        userID.(uuid.UUID),
		AddressType:   addressType,
		ApartmentFlat: req.ApartmentFlat,
		Street:        req.Street,
		Landmark:      req.Landmark,
		Village:       req.Village,
		Mandal:        req.Mandal,
		District:      req.District,
		State:         req.State,
		Pincode:       req.Pincode,
		FullAddress:   req.FullAddress,
		IsDefault:     req.IsDefault,
	}

	if err := gormDB.Create(&address).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create address.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Address created successfully.",
		"address": address,
	})
}

func ListAddresses(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var addresses []models.Address
	err := gormDB.Where("user_id = ?", userID).Order("is_default DESC, created_at DESC").Find(&addresses).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving addresses.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"addresses": addresses})
}

func getOwnedAddress(c *gin.Context) (*gorm.DB, *models.Address, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return nil, nil, false
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return nil, nil, false
	}
	gormDB := db.(*gorm.DB)

	var address models.Address
	err := gormDB.Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&address).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Address not found.")
			return nil, nil, false
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving address.")
		return nil, nil, false
	}

	return gormDB, &address, true
}

func GetAddress(c *gin.Context) {
	_, address, ok := getOwnedAddress(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, address)
}

func UpdateAddress(c *gin.Context) {
	gormDB, address, ok := getOwnedAddress(c)
	if !ok {
		return
	}

	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	if req.AddressType != "" {
		address.AddressType = req.AddressType
	}
	address.ApartmentFlat = req.ApartmentFlat
	address.Street = req.Street
	address.Landmark = req.Landmark
	address.Village = req.Village
	address.Mandal = req.Mandal
	address.District = req.District
	address.State = req.State
	address.Pincode = req.Pincode
	address.FullAddress = req.FullAddress
	address.IsDefault = req.IsDefault

	if err := gormDB.Save(address).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update address.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Address updated successfully.",
		"address": address,
	})
}

func DeleteAddress(c *gin.Context) {
	gormDB, address, ok := getOwnedAddress(c)
	if !ok {
		return
	}

	if err := gormDB.Delete(address).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete address.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Address deleted successfully.",
	})
}
