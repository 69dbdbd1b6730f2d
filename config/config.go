package config

import (
	"fmt"
	"os"

	"github.com/yuvakart/backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
}

func LoadConfig() (*Config, error) {
	return &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
	}, nil
}

type RazorpayConfig struct {
	KeyID     string
	KeySecret string
	BaseURL   string
}

func LoadRazorpayConfig() *RazorpayConfig {
	baseURL := os.Getenv("RAZORPAY_BASE_URL")
	if baseURL == "" {
		baseURL = "https://api.razorpay.com/v1"
	}
	return &RazorpayConfig{
		KeyID:     os.Getenv("RAZORPAY_KEY_ID"),
		KeySecret: os.Getenv("RAZORPAY_KEY_SECRET"),
		BaseURL:   baseURL,
	}
}

type DelhiveryConfig struct {
	APIKey  string
	BaseURL string
}

func LoadDelhiveryConfig() *DelhiveryConfig {
	baseURL := os.Getenv("DELHIVERY_BASE_URL")
	if baseURL == "" {
		baseURL = "https://track.delhivery.com/api/v1"
	}
	return &DelhiveryConfig{
		APIKey:  os.Getenv("DELHIVERY_API_KEY"),
		BaseURL: baseURL,
	}
}

type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	ResetURL string
}

func LoadSMTPConfig() *SMTPConfig {
	resetURL := os.Getenv("PASSWORD_RESET_URL")
	if resetURL == "" {
		resetURL = "http://localhost:3000/reset-password"
	}
	return &SMTPConfig{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     os.Getenv("SMTP_PORT"),
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     os.Getenv("SMTP_FROM"),
		ResetURL: resetURL,
	}
}

func enableUUIDExtension(db *gorm.DB) error {
	return db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"").Error
}

func InitDatabase(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := enableUUIDExtension(db); err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	seedUPISettings(db)

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.PasswordResetToken{},
		&models.Category{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.PaymentProof{},
		&models.UPISettings{},
		&models.Address{},
		&models.Shipment{},
	)
}

func seedUPISettings(db *gorm.DB) {
	var settings models.UPISettings
	db.Where("is_active = ?", true).FirstOrCreate(&settings, models.UPISettings{
		MerchantName: "YuvaKart",
		UPIID:        "merchant@upi",
		IsActive:     true,
	})
}
