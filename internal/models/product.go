package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Product struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name        string         `gorm:"size:200;not null" json:"name"`
	Description string         `gorm:"not null" json:"description"`
	Price       float64        `gorm:"not null;check:price >= 0" json:"price"`
	ImagePath   string         `json:"image"`
	CategoryID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"category_id"`
	Category    *Category      `json:"category,omitempty"`
	Stock       int            `gorm:"not null;default:0;check:stock >= 0" json:"stock"`
	IsActive    bool           `gorm:"not null;default:true" json:"is_active"`
	IsInStock   bool           `gorm:"-" json:"is_in_stock"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (product *Product) BeforeCreate(tx *gorm.DB) (err error) {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	return
}

func (product *Product) AfterFind(tx *gorm.DB) (err error) {
	product.IsInStock = product.Stock > 0
	return
}
