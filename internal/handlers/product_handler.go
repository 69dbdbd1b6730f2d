package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yuvakart/backend/internal/helpers"
	"github.com/yuvakart/backend/internal/models"
)

func listProducts(c *gin.Context, activeOnly bool) {
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

	query := gormDB.Model(&models.Product{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if categoryID := c.Query("category"); categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error counting products.")
		return
	}

	var products []models.Product
	offset := (pageNum - 1) * limitNum
	err = query.Preload("Category").Offset(offset).Limit(limitNum).Order("created_at DESC").Find(&products).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving products.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products":    products,
		"total":       totalCount,
		"page":        pageNum,
		"limit":       limitNum,
		"total_pages": (totalCount + int64(limitNum) - 1) / int64(limitNum),
	})
}

func ListProducts(c *gin.Context) {
	listProducts(c, true)
}

func AdminListProducts(c *gin.Context) {
	listProducts(c, false)
}

func GetProduct(c *gin.Context) {
	productID := c.Param("id")

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var product models.Product
	if err := gormDB.Preload("Category").Where("id = ?", productID).First(&product).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Product not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving product.")
		return
	}

	c.JSON(http.StatusOK, product)
}

func CreateProduct(c *gin.Context) {
	name := c.PostForm("name")
	description := c.PostForm("description")
	priceStr := c.PostForm("price")
	stockStr := c.PostForm("stock")
	categoryIDStr := c.PostForm("category_id")

	if name == "" || description == "" || priceStr == "" || categoryIDStr == "" {
		helpers.RespondWithError(c, http.StatusBadRequest, "Missing required fields.")
		return
	}

	price, err := helpers.StringToFloat(priceStr)
	if err != nil || price < 0 {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid price.")
		return
	}

	stock := 0
	if stockStr != "" {
		stock, err = helpers.StringToInt(stockStr)
		if err != nil || stock < 0 {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid stock.")
			return
		}
	}

	categoryID, err := uuid.Parse(categoryIDStr)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid category ID.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var category models.Category
	if err := gormDB.Where("id = ?", categoryID).First(&category).Error; err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Category not found.")
		return
	}

	product := models.Product{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		Price:       price,
		Stock:       stock,
		CategoryID:  category.ID,
		IsActive:    true,
	}

	imageFile, err := c.FormFile("image")
	if err == nil {
		imagePath, err := helpers.UploadFile(c, imageFile, "products")
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		product.ImagePath = imagePath
	}

	if err := gormDB.Create(&product).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create product.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Product created successfully.",
		"product": product,
	})
}

func UpdateProduct(c *gin.Context) {
	productID := c.Param("id")

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var product models.Product
	if err := gormDB.Where("id = ?", productID).First(&product).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Product not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error finding product.")
		return
	}

	if name := c.PostForm("name"); name != "" {
		product.Name = name
	}
	if description := c.PostForm("description"); description != "" {
		product.Description = description
	}
	if priceStr := c.PostForm("price"); priceStr != "" {
		price, err := helpers.StringToFloat(priceStr)
		if err != nil || price < 0 {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid price.")
			return
		}
		product.Price = price
	}
	if stockStr := c.PostForm("stock"); stockStr != "" {
		stock, err := helpers.StringToInt(stockStr)
		if err != nil || stock < 0 {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid stock.")
			return
		}
		product.Stock = stock
	}
	if categoryIDStr := c.PostForm("category_id"); categoryIDStr != "" {
		categoryID, err := uuid.Parse(categoryIDStr)
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid category ID.")
			return
		}
		var category models.Category
		if err := gormDB.Where("id = ?", categoryID).First(&category).Error; err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "Category not found.")
			return
		}
		product.CategoryID = category.ID
	}
	if isActiveStr := c.PostForm("is_active"); isActiveStr != "" {
		product.IsActive = isActiveStr == "true"
	}

	imageFile, err := c.FormFile("image")
	if err == nil {
		imagePath, err := helpers.UploadFile(c, imageFile, "products")
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		if product.ImagePath != "" {
			helpers.DeleteFile(product.ImagePath)
		}
		product.ImagePath = imagePath
	}

	if err := gormDB.Save(&product).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update product.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product updated successfully.",
		"product": product,
	})
}

func DeleteProduct(c *gin.Context) {
	productID := c.Param("id")

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	result := gormDB.Where("id = ?", productID).Delete(&models.Product{})
	if result.Error != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete product.")
		return
	}

	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusNotFound, "Product not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product deleted successfully.",
	})
}
