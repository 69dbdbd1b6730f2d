package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentProof struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OrderID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"order_id"`
	ImagePath  string    `gorm:"not null" json:"image"`
	UTRNumber  string    `gorm:"size:50" json:"utr_number"`
	UploadedAt time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
}

func (proof *PaymentProof) BeforeCreate(tx *gorm.DB) (err error) {
	if proof.ID == uuid.Nil {
		proof.ID = uuid.New()
	}
	return
}
