package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	AddressTypeHome  = "home"
	AddressTypeWork  = "work"
	AddressTypeOther = "other"
)

type Address struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID           uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User             *User     `json:"-"`
	AddressType      string    `gorm:"size:10;not null;default:'home'" json:"address_type"`
	ApartmentFlat    string    `gorm:"size:100" json:"apartment_flat"`
	Street           string    `gorm:"size:200" json:"street"`
	Landmark         string    `gorm:"size:200" json:"landmark"`
	Village          string    `gorm:"size:100" json:"village"`
	Mandal           string    `gorm:"size:100" json:"mandal"`
	District         string    `gorm:"size:100;not null" json:"district"`
	State            string    `gorm:"size:100;not null" json:"state"`
	Pincode          string    `gorm:"size:10;not null" json:"pincode"`
	FullAddress      string    `gorm:"not null" json:"full_address"`
	FormattedAddress string    `gorm:"-" json:"formatted_address"`
	IsDefault        bool      `gorm:"not null;default:false" json:"is_default"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (address *Address) BeforeCreate(tx *gorm.DB) (err error) {
	if address.ID == uuid.Nil {
		address.ID = uuid.New()
	}
	return
}

// BeforeSave keeps at most one default address per user by clearing the
// flag on every other row.
func (address *Address) BeforeSave(tx *gorm.DB) (err error) {
	if address.FullAddress == "" {
		address.FullAddress = address.Formatted()
	}
	if address.IsDefault {
		return tx.Model(&Address{}).
			Where("user_id = ? AND is_default = ? AND id <> ?", address.UserID, true, address.ID).
			Update("is_default", false).Error
	}
	return nil
}

func (address *Address) AfterFind(tx *gorm.DB) (err error) {
	address.FormattedAddress = address.Formatted()
	return
}

func (address *Address) Formatted() string {
	var parts []string
	if address.ApartmentFlat != "" {
		parts = append(parts, fmt.Sprintf("Flat/Apartment: %s", address.ApartmentFlat))
	}
	if address.Street != "" {
		parts = append(parts, fmt.Sprintf("Street: %s", address.Street))
	}
	if address.Landmark != "" {
		parts = append(parts, fmt.Sprintf("Landmark: %s", address.Landmark))
	}
	if address.Village != "" {
		parts = append(parts, fmt.Sprintf("Village: %s", address.Village))
	}
	if address.Mandal != "" {
		parts = append(parts, fmt.Sprintf("Mandal: %s", address.Mandal))
	}
	parts = append(parts,
		fmt.Sprintf("District: %s", address.District),
		fmt.Sprintf("State: %s", address.State),
		fmt.Sprintf("Pincode: %s", address.Pincode),
	)
	return strings.Join(parts, ", ")
}
