package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UPISettings struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	MerchantName string    `gorm:"size:100;not null;default:'YuvaKart'" json:"merchant_name"`
	UPIID        string    `gorm:"size:100;not null;default:'merchant@upi'" json:"upi_id"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (UPISettings) TableName() string {
	return "upi_settings"
}

func (settings *UPISettings) BeforeCreate(tx *gorm.DB) (err error) {
	if settings.ID == uuid.Nil {
		settings.ID = uuid.New()
	}
	return
}
