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
	"gorm.io/gorm/clause"
)

// parcelRepository implements the repository.ParcelRepository interface.
type parcelRepository struct {
	db *gorm.DB
}

// NewParcelRepository is the constructor for parcelRepository.
func NewParcelRepository(db *gorm.DB) repository.ParcelRepository {
	return &parcelRepository{
		db: db,
	}
}

// CreateParcel persists a new parcel. The owned addresses must already be
// persisted; only their IDs are written here.
func (repo *parcelRepository) CreateParcel(ctx context.Context, parcel *entity.Parcel) error {
	parcelM := fromParcelDomain(parcel)

	if err := repo.db.WithContext(ctx).
		Omit("PickupAddress", "DeliveryAddress").
		Create(parcelM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrTrackingCodeConflict
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "invalid customer or address reference")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "missing required parcel information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create parcel")
	}

	return nil
}

// FindParcelByID retrieves a parcel with its addresses by ID.
func (repo *parcelRepository) FindParcelByID(ctx context.Context, id uuid.UUID) (*entity.Parcel, error) {
	return repo.findOne(repo.db.WithContext(ctx), "id = ?", id)
}

// FindParcelByIDForUpdate retrieves a parcel under a row-level lock.
// Callers must be inside a transaction for the lock to outlive the query.
func (repo *parcelRepository) FindParcelByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Parcel, error) {
	return repo.findOne(
		repo.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}),
		"id = ?", id,
	)
}

// FindParcelByTrackingCode retrieves a parcel by its public tracking code.
func (repo *parcelRepository) FindParcelByTrackingCode(ctx context.Context, code string) (*entity.Parcel, error) {
	return repo.findOne(repo.db.WithContext(ctx), "tracking_code = ?", code)
}

func (repo *parcelRepository) findOne(tx *gorm.DB, query string, arg any) (*entity.Parcel, error) {
	var parcelM model.ParcelModel

	if err := tx.
		Preload("PickupAddress").
		Preload("DeliveryAddress").
		Where(query, arg).
		First(&parcelM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrParcelNotFound
		}

		return nil, errors.Wrap(err, "failed to find parcel")
	}

	return toParcelDomain(&parcelM), nil
}

// UpdateParcelStatus persists the mutable lifecycle fields.
func (repo *parcelRepository) UpdateParcelStatus(ctx context.Context, parcel *entity.Parcel) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ParcelModel{}).
		Where("id = ?", parcel.ID).
		Updates(map[string]any{
			"status":       parcel.Status.String(),
			"agent_id":     parcel.AgentID,
			"delivered_at": parcel.DeliveredAt,
			"updated_at":   parcel.UpdatedAt,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update parcel status")
	}
	if result.RowsAffected == 0 {
		return repository.ErrParcelNotFound
	}

	return nil
}

// DeleteParcel removes a parcel together with its status log and owned
// addresses.
func (repo *parcelRepository) DeleteParcel(ctx context.Context, id uuid.UUID) error {
	var parcelM model.ParcelModel
	if err := repo.db.WithContext(ctx).
		Select("id", "pickup_address_id", "delivery_address_id").
		Where("id = ?", id).
		First(&parcelM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return repository.ErrParcelNotFound
		}

		return errors.Wrap(err, "failed to load parcel for deletion")
	}

	if err := repo.db.WithContext(ctx).
		Where("parcel_id = ?", id).
		Delete(&model.StatusUpdateModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete parcel status log")
	}

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.ParcelModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete parcel")
	}

	if err := repo.db.WithContext(ctx).
		Where("id IN ?", []uuid.UUID{parcelM.PickupAddressID, parcelM.DeliveryAddressID}).
		Delete(&model.AddressModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete parcel addresses")
	}

	return nil
}

// ListParcelsByCustomer returns the parcels booked by a customer, newest first.
func (repo *parcelRepository) ListParcelsByCustomer(ctx context.Context, customerID uuid.UUID) ([]*entity.Parcel, error) {
	return repo.findMany(ctx, repo.db.WithContext(ctx).Where("customer_id = ?", customerID))
}

// ListParcelsByAgent returns the parcels currently assigned to an agent, newest first.
func (repo *parcelRepository) ListParcelsByAgent(ctx context.Context, agentID uuid.UUID) ([]*entity.Parcel, error) {
	return repo.findMany(ctx, repo.db.WithContext(ctx).Where("agent_id = ?", agentID))
}

// ListRecentParcels returns the most recently booked parcels.
func (repo *parcelRepository) ListRecentParcels(ctx context.Context, limit int) ([]*entity.Parcel, error) {
	return repo.findMany(ctx, repo.db.WithContext(ctx).Limit(limit))
}

func (repo *parcelRepository) findMany(_ context.Context, tx *gorm.DB) ([]*entity.Parcel, error) {
	var parcelModels []*model.ParcelModel

	if err := tx.
		Preload("PickupAddress").
		Preload("DeliveryAddress").
		Order("created_at DESC").
		Find(&parcelModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list parcels")
	}

	parcels := make([]*entity.Parcel, 0, len(parcelModels))
	for _, parcelM := range parcelModels {
		parcels = append(parcels, toParcelDomain(parcelM))
	}

	return parcels, nil
}

// toParcelDomain converts the GORM model to the domain entity.
func toParcelDomain(data *model.ParcelModel) *entity.Parcel {
	return &entity.Parcel{
		ID:               data.ID,
		TrackingCode:     data.TrackingCode,
		Size:             entity.ParcelSize(data.Size),
		Type:             entity.ParcelType(data.Type),
		WeightKg:         data.WeightKg,
		PaymentType:      entity.PaymentType(data.PaymentType),
		CODAmount:        data.CODAmount,
		ShippingCost:     data.ShippingCost,
		Status:           entity.ParcelStatus(data.Status),
		CustomerID:       data.CustomerID,
		AgentID:          data.AgentID,
		PickupAddress:    toAddressDomain(data.PickupAddress),
		DeliveryAddress:  toAddressDomain(data.DeliveryAddress),
		PickupDate:       data.PickupDate,
		ExpectedDelivery: data.ExpectedDelivery,
		DeliveredAt:      data.DeliveredAt,
		QRCode:           data.QRCode,
		CreatedAt:        data.CreatedAt,
		UpdatedAt:        data.UpdatedAt,
	}
}

// fromParcelDomain converts the domain entity to the GORM model.
func fromParcelDomain(data *entity.Parcel) *model.ParcelModel {
	return &model.ParcelModel{
		ID:                data.ID,
		TrackingCode:      data.TrackingCode,
		Size:              data.Size.String(),
		Type:              data.Type.String(),
		WeightKg:          data.WeightKg,
		PaymentType:       data.PaymentType.String(),
		CODAmount:         data.CODAmount,
		ShippingCost:      data.ShippingCost,
		Status:            data.Status.String(),
		CustomerID:        data.CustomerID,
		AgentID:           data.AgentID,
		PickupAddressID:   data.PickupAddress.ID,
		DeliveryAddressID: data.DeliveryAddress.ID,
		PickupDate:        data.PickupDate,
		ExpectedDelivery:  data.ExpectedDelivery,
		DeliveredAt:       data.DeliveredAt,
		QRCode:            data.QRCode,
		CreatedAt:         data.CreatedAt,
		UpdatedAt:         data.UpdatedAt,
	}
}
