package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	OrderStatusPending         = "pending"
	OrderStatusPaymentVerified = "payment_verified"
	OrderStatusShipped         = "shipped"
	OrderStatusDelivered       = "delivered"
	OrderStatusCancelled       = "cancelled"
)

const (
	PaymentStatusPending  = "pending"
	PaymentStatusVerified = "verified"
	PaymentStatusRejected = "rejected"
)

type Order struct {
	ID              uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	CustomerName    string         `gorm:"size:100;not null" json:"customer_name"`
	CustomerPhone   string         `gorm:"size:15;not null" json:"customer_phone"`
	CustomerEmail   string         `json:"customer_email"`
	ShippingAddress string         `gorm:"not null" json:"shipping_address"`
	TotalAmount     float64        `gorm:"not null" json:"total_amount"`
	ShippingCharge  float64        `gorm:"not null;default:0" json:"shipping_charge"`
	OrderStatus     string         `gorm:"size:20;not null;default:'pending'" json:"order_status"`
	PaymentStatus   string         `gorm:"size:20;not null;default:'pending'" json:"payment_status"`
	Items           []OrderItem    `json:"items"`
	PaymentProof    *PaymentProof  `json:"payment_proof,omitempty"`
	Shipment        *Shipment      `json:"shipment,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (order *Order) BeforeCreate(tx *gorm.DB) (err error) {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	return
}

// OrderItem snapshots the product price at order time, so later catalog
// price changes never touch past orders.
type OrderItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null" json:"product_id"`
	Product   *Product  `json:"product,omitempty"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Price     float64   `gorm:"not null" json:"price"`
	Total     float64   `gorm:"-" json:"total"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (item *OrderItem) BeforeCreate(tx *gorm.DB) (err error) {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	return
}

func (item *OrderItem) AfterFind(tx *gorm.DB) (err error) {
	item.Total = float64(item.Quantity) * item.Price
	return
}
