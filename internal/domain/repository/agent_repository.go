package repository

import (
	"context"

	"parceltrack/internal/domain/entity"

	"github.com/google/uuid"
)

// AgentRepository reads delivery agent accounts. Account management is
// outside the lifecycle engine, which only validates assignments.
type AgentRepository interface {
	// FindAgentByID retrieves an agent by its unique ID.
	FindAgentByID(ctx context.Context, id uuid.UUID) (*entity.Agent, error)
}
