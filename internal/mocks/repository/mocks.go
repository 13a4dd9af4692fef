// Package repository provides testify mocks for the domain repository
// interfaces.
package repository

import (
	"context"
	"testing"

	"parceltrack/internal/domain/entity"
	"parceltrack/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockParcelRepository is a mock of repository.ParcelRepository.
type MockParcelRepository struct {
	mock.Mock
}

// NewMockParcelRepository creates a new mock and registers expectation
// assertion as test cleanup.
func NewMockParcelRepository(t *testing.T) *MockParcelRepository {
	m := &MockParcelRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockParcelRepository) CreateParcel(ctx context.Context, parcel *entity.Parcel) error {
	args := m.Called(ctx, parcel)

	return args.Error(0)
}

func (m *MockParcelRepository) FindParcelByID(ctx context.Context, id uuid.UUID) (*entity.Parcel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Parcel), args.Error(1)
}

func (m *MockParcelRepository) FindParcelByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Parcel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Parcel), args.Error(1)
}

func (m *MockParcelRepository) FindParcelByTrackingCode(ctx context.Context, code string) (*entity.Parcel, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Parcel), args.Error(1)
}

func (m *MockParcelRepository) UpdateParcelStatus(ctx context.Context, parcel *entity.Parcel) error {
	args := m.Called(ctx, parcel)

	return args.Error(0)
}

func (m *MockParcelRepository) DeleteParcel(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

func (m *MockParcelRepository) ListParcelsByCustomer(ctx context.Context, customerID uuid.UUID) ([]*entity.Parcel, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Parcel), args.Error(1)
}

func (m *MockParcelRepository) ListParcelsByAgent(ctx context.Context, agentID uuid.UUID) ([]*entity.Parcel, error) {
	args := m.Called(ctx, agentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Parcel), args.Error(1)
}

func (m *MockParcelRepository) ListRecentParcels(ctx context.Context, limit int) ([]*entity.Parcel, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Parcel), args.Error(1)
}

// MockAddressRepository is a mock of repository.AddressRepository.
type MockAddressRepository struct {
	mock.Mock
}

func NewMockAddressRepository(t *testing.T) *MockAddressRepository {
	m := &MockAddressRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockAddressRepository) CreateAddress(ctx context.Context, address *entity.Address) error {
	args := m.Called(ctx, address)

	return args.Error(0)
}

// MockStatusUpdateRepository is a mock of repository.StatusUpdateRepository.
type MockStatusUpdateRepository struct {
	mock.Mock
}

func NewMockStatusUpdateRepository(t *testing.T) *MockStatusUpdateRepository {
	m := &MockStatusUpdateRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockStatusUpdateRepository) CreateStatusUpdate(ctx context.Context, update *entity.StatusUpdate) error {
	args := m.Called(ctx, update)

	return args.Error(0)
}

func (m *MockStatusUpdateRepository) ListStatusUpdatesByParcel(ctx context.Context, parcelID uuid.UUID) ([]*entity.StatusUpdate, error) {
	args := m.Called(ctx, parcelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.StatusUpdate), args.Error(1)
}

// MockAgentRepository is a mock of repository.AgentRepository.
type MockAgentRepository struct {
	mock.Mock
}

func NewMockAgentRepository(t *testing.T) *MockAgentRepository {
	m := &MockAgentRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockAgentRepository) FindAgentByID(ctx context.Context, id uuid.UUID) (*entity.Agent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Agent), args.Error(1)
}

// StubRepositoryFactory hands fixed repositories to transactional code.
type StubRepositoryFactory struct {
	ParcelRepo  repository.ParcelRepository
	AddressRepo repository.AddressRepository
	StatusRepo  repository.StatusUpdateRepository
	AgentRepo   repository.AgentRepository
}

func (f *StubRepositoryFactory) NewParcelRepository() repository.ParcelRepository {
	return f.ParcelRepo
}

func (f *StubRepositoryFactory) NewAddressRepository() repository.AddressRepository {
	return f.AddressRepo
}

func (f *StubRepositoryFactory) NewStatusUpdateRepository() repository.StatusUpdateRepository {
	return f.StatusRepo
}

func (f *StubRepositoryFactory) NewAgentRepository() repository.AgentRepository {
	return f.AgentRepo
}

// StubTransactionManager runs the unit of work directly against the stub
// factory, with no real transaction underneath.
type StubTransactionManager struct {
	Factory *StubRepositoryFactory
}

func (m *StubTransactionManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(m.Factory)
}
