package postgres

import (
	"context"

	"parceltrack/internal/domain/entity"
	"parceltrack/internal/domain/repository"
	"parceltrack/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// agentRepository implements the repository.AgentRepository interface.
type agentRepository struct {
	db *gorm.DB
}

// NewAgentRepository is the constructor for agentRepository.
func NewAgentRepository(db *gorm.DB) repository.AgentRepository {
	return &agentRepository{
		db: db,
	}
}

// FindAgentByID retrieves an agent account by its unique ID.
func (repo *agentRepository) FindAgentByID(ctx context.Context, id uuid.UUID) (*entity.Agent, error) {
	var agentM model.AgentModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&agentM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAgentNotFound
		}

		return nil, errors.Wrap(err, "failed to find agent by ID")
	}

	return toAgentDomain(&agentM), nil
}

// toAgentDomain converts the GORM model to the domain entity.
func toAgentDomain(data *model.AgentModel) *entity.Agent {
	return &entity.Agent{
		ID:        data.ID,
		Name:      data.Name,
		Email:     data.Email,
		Role:      entity.Role(data.Role),
		Active:    data.Active,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}
