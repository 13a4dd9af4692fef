package model

import (
	"time"

	"github.com/google/uuid"
)

// AgentModel is the GORM-specific struct for the 'agents' table. Account
// management writes these rows elsewhere; the lifecycle engine only reads
// them to validate assignments.
type AgentModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Role      string    `gorm:"type:varchar(16);not null"`
	Active    bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (AgentModel) TableName() string {
	return "agents"
}
