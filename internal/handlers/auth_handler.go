package handlers

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yuvakart/backend/config"
	"github.com/yuvakart/backend/internal/helpers"
	"github.com/yuvakart/backend/internal/models"
)

type RegisterRequest struct {
	Username        string `json:"username" binding:"required,min=3"`
	Email           string `json:"email" binding:"required,email"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Phone           string `json:"phone"`
	Password        string `json:"password" binding:"required,min=6"`
	PasswordConfirm string `json:"password_confirm" binding:"required"`
}

type LoginRequest struct {
	UsernameOrEmail string `json:"username_or_email" binding:"required"`
	Password        string `json:"password" binding:"required"`
}

type PasswordResetRequestBody struct {
	Email string `json:"email" binding:"required,email"`
}

type PasswordResetConfirmBody struct {
	Token              string `json:"token" binding:"required"`
	NewPassword        string `json:"new_password" binding:"required,min=6"`
	NewPasswordConfirm string `json:"new_password_confirm" binding:"required"`
}

func generateToken(user *models.User) (string, error) {
	secret := os.Getenv("JWT_SECRET")
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID.String(),
		"is_staff": user.IsStaff,
		"exp":      time.Now().Add(24 * time.Hour).Unix(),
	})
	return token.SignedString([]byte(secret))
}

func Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	if req.Password != req.PasswordConfirm {
		helpers.RespondWithError(c, http.StatusBadRequest, "Password fields didn't match.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var existingUser models.User
	if result := gormDB.Where("email = ?", req.Email).First(&existingUser); result.Error == nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "A user with this email already exists.")
		return
	}
	if result := gormDB.Where("username = ?", req.Username).First(&existingUser); result.Error == nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "A user with this username already exists.")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to hash the password.")
		return
	}

	user := models.User{
		ID:        uuid.New(),
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Password:  string(hashedPassword),
	}

	if err := gormDB.Create(&user).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create user.")
		return
	}

	tokenString, err := generateToken(&user)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":    user,
		"token":   tokenString,
		"message": "User registered successfully",
	})
}

func Login(c *gin.Context) {
	var req LoginRequest
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

	var user models.User
	err := gormDB.Where("username = ?", req.UsernameOrEmail).First(&user).Error
	if err != nil {
		err = gormDB.Where("email = ?", req.UsernameOrEmail).First(&user).Error
	}
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid credentials")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid credentials")
		return
	}

	if !user.IsActive {
		helpers.RespondWithError(c, http.StatusBadRequest, "User account is disabled")
		return
	}

	tokenString, err := generateToken(&user)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":    user,
		"token":   tokenString,
		"message": "Login successful",
	})
}

func PasswordResetRequest(c *gin.Context) {
	var req PasswordResetRequestBody
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

	var user models.User
	if err := gormDB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "No user found with this email address.")
		return
	}
	if !user.IsActive {
		helpers.RespondWithError(c, http.StatusBadRequest, "This user account is disabled.")
		return
	}

	expiresAt := time.Now().Add(24 * time.Hour)

	var resetToken models.PasswordResetToken
	err := gormDB.Where("user_id = ?", user.ID).First(&resetToken).Error
	if err != nil {
		resetToken = models.PasswordResetToken{
			UserID:    user.ID,
			ExpiresAt: expiresAt,
		}
		if err := gormDB.Create(&resetToken).Error; err != nil {
			helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create reset token.")
			return
		}
	} else {
		resetToken.ExpiresAt = expiresAt
		resetToken.IsUsed = false
		if err := gormDB.Save(&resetToken).Error; err != nil {
			helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to refresh reset token.")
			return
		}
	}

	// Best effort: a failed send must not reveal anything to the caller.
	smtpCfg := config.LoadSMTPConfig()
	_ = helpers.SendPasswordResetEmail(smtpCfg, user.Email, resetToken.Token)

	c.JSON(http.StatusOK, gin.H{
		"message": "Password reset link sent to your email",
	})
}

func PasswordResetConfirm(c *gin.Context) {
	var req PasswordResetConfirmBody
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	if req.NewPassword != req.NewPasswordConfirm {
		helpers.RespondWithError(c, http.StatusBadRequest, "Password fields didn't match.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var resetToken models.PasswordResetToken
	err := gormDB.Where("token = ? AND is_used = ? AND expires_at > ?", req.Token, false, time.Now()).
		First(&resetToken).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid or expired token.")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to hash the password.")
		return
	}

	if err := gormDB.Model(&models.User{}).Where("id = ?", resetToken.UserID).
		Update("password", string(hashedPassword)).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update password.")
		return
	}

	if err := gormDB.Model(&resetToken).Update("is_used", true).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to mark token as used.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Password reset successfully",
	})
}
