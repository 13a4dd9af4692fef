package model

import (
	"time"

	"github.com/google/uuid"
)

// StatusUpdateModel is the GORM-specific struct for the
// 'parcel_status_updates' table. Rows are append-only.
type StatusUpdateModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	ParcelID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	Status    string     `gorm:"type:varchar(20);not null"`
	Note      string     `gorm:"type:text"`
	AgentID   *uuid.UUID `gorm:"type:uuid"`
	Latitude  *float64   `gorm:"type:decimal(9,6)"`
	Longitude *float64   `gorm:"type:decimal(9,6)"`
	CreatedAt time.Time  `gorm:"index"`
}

// TableName explicitly sets the table name for GORM.
func (StatusUpdateModel) TableName() string {
	return "parcel_status_updates"
}
