package postgres

import (
	"context"

	"parceltrack/internal/domain/entity"
	domainerrors "parceltrack/internal/domain/errors"
	"parceltrack/internal/domain/repository"
	"parceltrack/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// statusUpdateRepository implements the repository.StatusUpdateRepository interface.
type statusUpdateRepository struct {
	db *gorm.DB
}

// NewStatusUpdateRepository is the constructor for statusUpdateRepository.
func NewStatusUpdateRepository(db *gorm.DB) repository.StatusUpdateRepository {
	return &statusUpdateRepository{
		db: db,
	}
}

// CreateStatusUpdate appends one entry to a parcel's status log.
func (repo *statusUpdateRepository) CreateStatusUpdate(ctx context.Context, update *entity.StatusUpdate) error {
	updateM := fromStatusUpdateDomain(update)

	if err := repo.db.WithContext(ctx).Create(updateM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrParcelNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create status update")
	}

	return nil
}

// ListStatusUpdatesByParcel returns a parcel's status log, newest first.
func (repo *statusUpdateRepository) ListStatusUpdatesByParcel(ctx context.Context, parcelID uuid.UUID) ([]*entity.StatusUpdate, error) {
	var updateModels []*model.StatusUpdateModel

	if err := repo.db.WithContext(ctx).
		Where("parcel_id = ?", parcelID).
		Order("created_at DESC").
		Find(&updateModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list status updates")
	}

	updates := make([]*entity.StatusUpdate, 0, len(updateModels))
	for _, updateM := range updateModels {
		updates = append(updates, toStatusUpdateDomain(updateM))
	}

	return updates, nil
}

// toStatusUpdateDomain converts the GORM model to the domain entity.
func toStatusUpdateDomain(data *model.StatusUpdateModel) *entity.StatusUpdate {
	return &entity.StatusUpdate{
		ID:        data.ID,
		ParcelID:  data.ParcelID,
		Status:    entity.ParcelStatus(data.Status),
		Note:      data.Note,
		AgentID:   data.AgentID,
		Latitude:  data.Latitude,
		Longitude: data.Longitude,
		CreatedAt: data.CreatedAt,
	}
}

// fromStatusUpdateDomain converts the domain entity to the GORM model.
func fromStatusUpdateDomain(data *entity.StatusUpdate) *model.StatusUpdateModel {
	return &model.StatusUpdateModel{
		ID:        data.ID,
		ParcelID:  data.ParcelID,
		Status:    data.Status.String(),
		Note:      data.Note,
		AgentID:   data.AgentID,
		Latitude:  data.Latitude,
		Longitude: data.Longitude,
		CreatedAt: data.CreatedAt,
	}
}
