package postgres

import (
	"context"

	"parceltrack/internal/domain/entity"
	domainerrors "parceltrack/internal/domain/errors"
	"parceltrack/internal/domain/repository"
	"parceltrack/internal/infra/persistence/model"

	"gorm.io/gorm"
)

// addressRepository implements the repository.AddressRepository interface.
type addressRepository struct {
	db *gorm.DB
}

// NewAddressRepository is the constructor for addressRepository.
func NewAddressRepository(db *gorm.DB) repository.AddressRepository {
	return &addressRepository{
		db: db,
	}
}

// CreateAddress persists a new address. Addresses are immutable after
// insert, so this is the repository's only write.
func (repo *addressRepository) CreateAddress(ctx context.Context, address *entity.Address) error {
	addressM := fromAddressDomain(address)

	if err := repo.db.WithContext(ctx).Create(addressM).Error; err != nil {
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required address information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create address")
	}

	return nil
}

// toAddressDomain converts the GORM model to the domain entity.
func toAddressDomain(data *model.AddressModel) *entity.Address {
	if data == nil {
		return nil
	}

	return &entity.Address{
		ID:           data.ID,
		Street:       data.Street,
		City:         data.City,
		State:        data.State,
		PostalCode:   data.PostalCode,
		Country:      data.Country,
		Latitude:     data.Latitude,
		Longitude:    data.Longitude,
		ContactPhone: data.ContactPhone,
		CreatedAt:    data.CreatedAt,
	}
}

// fromAddressDomain converts the domain entity to the GORM model.
func fromAddressDomain(data *entity.Address) *model.AddressModel {
	return &model.AddressModel{
		ID:           data.ID,
		Street:       data.Street,
		City:         data.City,
		State:        data.State,
		PostalCode:   data.PostalCode,
		Country:      data.Country,
		Latitude:     data.Latitude,
		Longitude:    data.Longitude,
		ContactPhone: data.ContactPhone,
		CreatedAt:    data.CreatedAt,
	}
}
