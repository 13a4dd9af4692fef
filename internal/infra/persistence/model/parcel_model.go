package model

import (
	"time"

	"github.com/google/uuid"
)

// ParcelModel is the GORM-specific struct for the 'parcels' table.
// TrackingCode carries the unique index whose violation drives the
// re-issue loop during booking.
type ParcelModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	TrackingCode string    `gorm:"type:varchar(17);uniqueIndex;not null"`
	Size         string    `gorm:"type:varchar(16);not null"`
	Type         string    `gorm:"type:varchar(16);not null"`
	WeightKg     *float64  `gorm:"type:decimal(8,3)"`
	PaymentType  string    `gorm:"type:varchar(16);not null"`
	CODAmount    *float64  `gorm:"type:decimal(12,2)"`
	ShippingCost float64   `gorm:"type:decimal(12,2);not null"`
	Status       string    `gorm:"type:varchar(20);not null;index"`

	CustomerID uuid.UUID  `gorm:"type:uuid;not null;index"`
	AgentID    *uuid.UUID `gorm:"type:uuid;index"`

	PickupAddressID   uuid.UUID     `gorm:"type:uuid;not null"`
	DeliveryAddressID uuid.UUID     `gorm:"type:uuid;not null"`
	PickupAddress     *AddressModel `gorm:"foreignKey:PickupAddressID"`
	DeliveryAddress   *AddressModel `gorm:"foreignKey:DeliveryAddressID"`

	PickupDate       *time.Time
	ExpectedDelivery time.Time `gorm:"not null"`
	DeliveredAt      *time.Time

	QRCode []byte `gorm:"type:bytea"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (ParcelModel) TableName() string {
	return "parcels"
}
