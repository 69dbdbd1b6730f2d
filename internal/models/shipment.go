package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ShipmentStatusPending        = "pending"
	ShipmentStatusPickedUp       = "picked_up"
	ShipmentStatusInTransit      = "in_transit"
	ShipmentStatusOutForDelivery = "out_for_delivery"
	ShipmentStatusDelivered      = "delivered"
	ShipmentStatusFailed         = "failed"
)

type Shipment struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OrderID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"order_id"`
	Order       *Order    `json:"order,omitempty"`
	AWBNumber   string    `gorm:"size:50;unique" json:"awb_number"`
	TrackingURL string    `json:"tracking_url"`
	Status      string    `gorm:"size:20;not null;default:'pending'" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (shipment *Shipment) BeforeCreate(tx *gorm.DB) (err error) {
	if shipment.ID == uuid.Nil {
		shipment.ID = uuid.New()
	}
	return
}
