package impl

import (
	"context"
	"testing"
	"time"

	"parceltrack/internal/domain/entity"
	domainerrors "parceltrack/internal/domain/errors"
	"parceltrack/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestParcelService_CreateParcel_Success(t *testing.T) {
	fixture := newParcelServiceFixture(t)
	ctx := context.Background()
	principal := entity.Principal{ID: uuid.New(), Role: entity.RoleCustomer}

	qrPNG := []byte{0x89, 'P', 'N', 'G'}
	fixture.qrService.On("GenerateTrackingQR", "http://localhost:8080/track/PCL20250630000000").
		Return(qrPNG, nil).Once()
	fixture.addressRepo.On("CreateAddress", ctx, mock.AnythingOfType("*entity.Address")).
		Return(nil).Twice()
	fixture.parcelRepo.On("CreateParcel", ctx, mock.AnythingOfType("*entity.Parcel")).
		Return(nil).Once()
	fixture.statusRepo.On("CreateStatusUpdate", ctx, mock.AnythingOfType("*entity.StatusUpdate")).
		Return(nil).Once()
	fixture.publisher.On("PublishStatusEvent", ctx, mock.AnythingOfType("*service.StatusEvent")).
		Return(nil).Once()
	fixture.notifier.On("NotifyParcelCreated", ctx, mock.AnythingOfType("*entity.Parcel")).
		Return(nil).Once()

	parcel, err := fixture.service.CreateParcel(ctx, principal, validCreateInput())
	require.NoError(t, err)

	assert.Equal(t, "PCL20250630000000", parcel.TrackingCode)
	assert.Equal(t, entity.StatusPending, parcel.Status)
	assert.Equal(t, principal.ID, parcel.CustomerID)
	assert.InDelta(t, 80.0, parcel.ShippingCost, 0.001)
	assert.Equal(t, qrPNG, parcel.QRCode)
	assert.Nil(t, parcel.AgentID)
	assert.Nil(t, parcel.DeliveredAt)
	assert.WithinDuration(t, time.Now().Add(5*24*time.Hour), parcel.ExpectedDelivery, time.Minute)

	topics, events := fixture.broadcaster.Published()
	require.Len(t, events, 1)
	assert.Equal(t, []string{"PCL20250630000000"}, topics)
	assert.Equal(t, "PENDING", events[0].Status)
	assert.Equal(t, parcel.ID.String(), events[0].ParcelID)
}

func TestParcelService_CreateParcel_AdminBooksForCustomer(t *testing.T) {
	fixture := newParcelServiceFixture(t)
	ctx := context.Background()
	admin := entity.Principal{ID: uuid.New(), Role: entity.RoleAdmin}
	customerID := uuid.New()

	input := validCreateInput()
	input.CustomerID = &customerID

	fixture.qrService.On("GenerateTrackingQR", mock.AnythingOfType("string")).
		Return([]byte{1}, nil).Once()
	fixture.addressRepo.On("CreateAddress", ctx, mock.AnythingOfType("*entity.Address")).
		Return(nil).Twice()
	fixture.parcelRepo.On("CreateParcel", ctx, mock.AnythingOfType("*entity.Parcel")).
		Return(nil).Once()
	fixture.statusRepo.On("CreateStatusUpdate", ctx, mock.AnythingOfType("*entity.StatusUpdate")).
		Return(nil).Once()
	fixture.publisher.On("PublishStatusEvent", ctx, mock.AnythingOfType("*service.StatusEvent")).
		Return(nil).Once()
	fixture.notifier.On("NotifyParcelCreated", ctx, mock.AnythingOfType("*entity.Parcel")).
		Return(nil).Once()

	parcel, err := fixture.service.CreateParcel(ctx, admin, input)
	require.NoError(t, err)
	assert.Equal(t, customerID, parcel.CustomerID)
}

func TestParcelService_CreateParcel_PickupDateDrivesExpectedDelivery(t *testing.T) {
	fixture := newParcelServiceFixture(t)
	ctx := context.Background()
	principal := entity.Principal{ID: uuid.New(), Role: entity.RoleCustomer}

	pickupDate := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)
	input := validCreateInput()
	input.PickupDate = &pickupDate

	fixture.qrService.On("GenerateTrackingQR", mock.AnythingOfType("string")).
		Return([]byte{1}, nil).Once()
	fixture.addressRepo.On("CreateAddress", ctx, mock.AnythingOfType("*entity.Address")).
		Return(nil).Twice()
	fixture.parcelRepo.On("CreateParcel", ctx, mock.AnythingOfType("*entity.Parcel")).
		Return(nil).Once()
	fixture.statusRepo.On("CreateStatusUpdate", ctx, mock.AnythingOfType("*entity.StatusUpdate")).
		Return(nil).Once()
	fixture.publisher.On("PublishStatusEvent", ctx, mock.AnythingOfType("*service.StatusEvent")).
		Return(nil).Once()
	fixture.notifier.On("NotifyParcelCreated", ctx, mock.AnythingOfType("*entity.Parcel")).
		Return(nil).Once()

	parcel, err := fixture.service.CreateParcel(ctx, principal, input)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 12, 5, 0, 0, 0, 0, time.UTC), parcel.ExpectedDelivery)
}

func TestParcelService_CreateParcel_RetriesOnTrackingCollision(t *testing.T) {
	fixture := newParcelServiceFixture(t)
	ctx := context.Background()
	principal := entity.Principal{ID: uuid.New(), Role: entity.RoleCustomer}

	fixture.qrService.On("GenerateTrackingQR", mock.AnythingOfType("string")).
		Return([]byte{1}, nil).Twice()
	fixture.addressRepo.On("CreateAddress", ctx, mock.AnythingOfType("*entity.Address")).
		Return(nil).Times(4)
	fixture.parcelRepo.On("CreateParcel", ctx, mock.AnythingOfType("*entity.Parcel")).
		Return(domainerrors.ErrTrackingCodeConflict).Once()
	fixture.parcelRepo.On("CreateParcel", ctx, mock.AnythingOfType("*entity.Parcel")).
		Return(nil).Once()
	fixture.statusRepo.On("CreateStatusUpdate", ctx, mock.AnythingOfType("*entity.StatusUpdate")).
		Return(nil).Once()
	fixture.publisher.On("PublishStatusEvent", ctx, mock.AnythingOfType("*service.StatusEvent")).
		Return(nil).Once()
	fixture.notifier.On("NotifyParcelCreated", ctx, mock.AnythingOfType("*entity.Parcel")).
		Return(nil).Once()

	parcel, err := fixture.service.CreateParcel(ctx, principal, validCreateInput())
	require.NoError(t, err)

	// The colliding first code was discarded and a fresh one issued.
	assert.Equal(t, "PCL20250630000001", parcel.TrackingCode)
}

func TestParcelService_CreateParcel_QRFailureDoesNotBlockBooking(t *testing.T) {
	fixture := newParcelServiceFixture(t)
	ctx := context.Background()
	principal := entity.Principal{ID: uuid.New(), Role: entity.RoleCustomer}

	fixture.qrService.On("GenerateTrackingQR", mock.AnythingOfType("string")).
		Return(nil, assert.AnError).Once()
	fixture.addressRepo.On("CreateAddress", ctx, mock.AnythingOfType("*entity.Address")).
		Return(nil).Twice()
	fixture.parcelRepo.On("CreateParcel", ctx, mock.AnythingOfType("*entity.Parcel")).
		Return(nil).Once()
	fixture.statusRepo.On("CreateStatusUpdate", ctx, mock.AnythingOfType("*entity.StatusUpdate")).
		Return(nil).Once()
	fixture.publisher.On("PublishStatusEvent", ctx, mock.AnythingOfType("*service.StatusEvent")).
		Return(nil).Once()
	fixture.notifier.On("NotifyParcelCreated", ctx, mock.AnythingOfType("*entity.Parcel")).
		Return(nil).Once()

	parcel, err := fixture.service.CreateParcel(ctx, principal, validCreateInput())
	require.NoError(t, err)
	assert.Nil(t, parcel.QRCode)
}

func TestParcelService_CreateParcel_NotifierFailureIsNonFatal(t *testing.T) {
	fixture := newParcelServiceFixture(t)
	ctx := context.Background()
	principal := entity.Principal{ID: uuid.New(), Role: entity.RoleCustomer}

	fixture.qrService.On("GenerateTrackingQR", mock.AnythingOfType("string")).
		Return([]byte{1}, nil).Once()
	fixture.addressRepo.On("CreateAddress", ctx, mock.AnythingOfType("*entity.Address")).
		Return(nil).Twice()
	fixture.parcelRepo.On("CreateParcel", ctx, mock.AnythingOfType("*entity.Parcel")).
		Return(nil).Once()
	fixture.statusRepo.On("CreateStatusUpdate", ctx, mock.AnythingOfType("*entity.StatusUpdate")).
		Return(nil).Once()
	fixture.publisher.On("PublishStatusEvent", ctx, mock.AnythingOfType("*service.StatusEvent")).
		Return(assert.AnError).Once()
	fixture.notifier.On("NotifyParcelCreated", ctx, mock.AnythingOfType("*entity.Parcel")).
		Return(assert.AnError).Once()

	_, err := fixture.service.CreateParcel(ctx, principal, validCreateInput())
	require.NoError(t, err)
}

func TestParcelService_ApplyTransition_AdminAssignsAgent(t *testing.T) {
	fixture := newParcelServiceFixture(t)
	ctx := context.Background()
	admin := entity.Principal{ID: uuid.New(), Role: entity.RoleAdmin}
	agentID := uuid.New()

	parcel := &entity.Parcel{
		ID:           uuid.New(),
		TrackingCode: "PCL20250630000042",
		Status:       entity.StatusPending,
		CustomerID:   uuid.New(),
	}
	agent := &entity.Agent{ID: agentID, Role: entity.RoleAgent, Active: true}

	fixture.parcelRepo.On("FindParcelByIDForUpdate", ctx, parcel.ID).Return(parcel, nil).Once()
	fixture.agentRepo.On("FindAgentByID", ctx, agentID).Return(agent, nil).Once()
	fixture.parcelRepo.On("UpdateParcelStatus", ctx, parcel).Return(nil).Once()

	var logged *entity.StatusUpdate
	fixture.statusRepo.On("CreateStatusUpdate", ctx, mock.AnythingOfType("*entity.StatusUpdate")).
		Run(func(args mock.Arguments) {
			logged = args.Get(1).(*entity.StatusUpdate)
		}).
		Return(nil).Once()
	fixture.publisher.On("PublishStatusEvent", ctx, mock.AnythingOfType("*service.StatusEvent")).
		Return(nil).Once()
	fixture.notifier.On("NotifyStatusChanged", ctx, parcel, mock.AnythingOfType("*entity.StatusUpdate")).
		Return(nil).Once()

	updated, err := fixture.service.ApplyTransition(ctx, admin, parcel.ID, &usecase.TransitionInput{
		Target:  "ASSIGNED",
		AgentID: &agentID,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.StatusAssigned, updated.Status)
	require.NotNil(t, updated.AgentID)
	assert.Equal(t, agentID, *updated.AgentID)

	// An admin transition is not attributed to any agent in the log.
	require.NotNil(t, logged)
	assert.Equal(t, entity.StatusAssigned, logged.Status)
	assert.Nil(t, logged.AgentID)
}

func TestParcelService_ApplyTransition_AssignedAgentProgresses(t *testing.T) {
	fixture := newParcelServiceFixture(t)
	ctx := context.Background()
	agentID := uuid.New()
	agent := entity.Principal{ID: agentID, Role: entity.RoleAgent}

	parcel := &entity.Parcel{
		ID:           uuid.New(),
		TrackingCode: "PCL20250630000042",
		Status:       entity.StatusPickedUp,
		CustomerID:   uuid.New(),
		AgentID:      &agentID,
	}

	lat, lon := 6.5244, 3.3792

	fixture.parcelRepo.On("FindParcelByIDForUpdate", ctx, parcel.ID).Return(parcel, nil).Once()
	fixture.parcelRepo.On("UpdateParcelStatus", ctx, parcel).Return(nil).Once()

	var logged *entity.StatusUpdate
	fixture.statusRepo.On("CreateStatusUpdate", ctx, mock.AnythingOfType("*entity.StatusUpdate")).
		Run(func(args mock.Arguments) {
			logged = args.Get(1).(*entity.StatusUpdate)
		}).
		Return(nil).Once()
	fixture.publisher.On("PublishStatusEvent", ctx, mock.AnythingOfType("*service.StatusEvent")).
		Return(nil).Once()
	fixture.notifier.On("NotifyStatusChanged", ctx, parcel, mock.AnythingOfType("*entity.StatusUpdate")).
		Return(nil).Once()

	updated, err := fixture.service.ApplyTransition(ctx, agent, parcel.ID, &usecase.TransitionInput{
		Target:    "IN_TRANSIT",
		Note:      "departed sorting hub",
		Latitude:  &lat,
		Longitude: &lon,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.StatusInTransit, updated.Status)
	require.NotNil(t, logged)
	require.NotNil(t, logged.AgentID)
	assert.Equal(t, agentID, *logged.AgentID)
	assert.Equal(t, "departed sorting hub", logged.Note)
	assert.Equal(t, &lat, logged.Latitude)

	topics, events := fixture.broadcaster.Published()
	require.Len(t, events, 1)
	assert.Equal(t, []string{"PCL20250630000042"}, topics)
	assert.Equal(t, "IN_TRANSIT", events[0].Status)
}

func TestParcelService_ApplyTransition_DeliveredSetsTimestamp(t *testing.T) {
	fixture := newParcelServiceFixture(t)
	ctx := context.Background()
	agentID := uuid.New()
	agent := entity.Principal{ID: agentID, Role: entity.RoleAgent}

	parcel := &entity.Parcel{
		ID:           uuid.New(),
		TrackingCode: "PCL20250630000042",
		Status:       entity.StatusOutForDelivery,
		CustomerID:   uuid.New(),
		AgentID:      &agentID,
	}

	fixture.parcelRepo.On("FindParcelByIDForUpdate", ctx, parcel.ID).Return(parcel, nil).Once()
	fixture.parcelRepo.On("UpdateParcelStatus", ctx, parcel).Return(nil).Once()
	fixture.statusRepo.On("CreateStatusUpdate", ctx, mock.AnythingOfType("*entity.StatusUpdate")).
		Return(nil).Once()
	fixture.publisher.On("PublishStatusEvent", ctx, mock.AnythingOfType("*service.StatusEvent")).
		Return(nil).Once()
	fixture.notifier.On("NotifyStatusChanged", ctx, parcel, mock.AnythingOfType("*entity.StatusUpdate")).
		Return(nil).Once()

	updated, err := fixture.service.ApplyTransition(ctx, agent, parcel.ID, &usecase.TransitionInput{
		Target: "DELIVERED",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.StatusDelivered, updated.Status)
	require.NotNil(t, updated.DeliveredAt)
	assert.WithinDuration(t, time.Now(), *updated.DeliveredAt, time.Minute)
}

func TestParcelService_ApplyTransition_AdminReopensFailedParcel(t *testing.T) {
	fixture := newParcelServiceFixture(t)
	ctx := context.Background()
	admin := entity.Principal{ID: uuid.New(), Role: entity.RoleAdmin}
	agentID := uuid.New()

	parcel := &entity.Parcel{
		ID:           uuid.New(),
		TrackingCode: "PCL20250630000042",
		Status:       entity.StatusFailed,
		CustomerID:   uuid.New(),
	}
	agent := &entity.Agent{ID: agentID, Role: entity.RoleAgent, Active: true}

	fixture.parcelRepo.On("FindParcelByIDForUpdate", ctx, parcel.ID).Return(parcel, nil).Once()
	fixture.agentRepo.On("FindAgentByID", ctx, agentID).Return(agent, nil).Once()
	fixture.parcelRepo.On("UpdateParcelStatus", ctx, parcel).Return(nil).Once()
	fixture.statusRepo.On("CreateStatusUpdate", ctx, mock.AnythingOfType("*entity.StatusUpdate")).
		Return(nil).Once()
	fixture.publisher.On("PublishStatusEvent", ctx, mock.AnythingOfType("*service.StatusEvent")).
		Return(nil).Once()
	fixture.notifier.On("NotifyStatusChanged", ctx, parcel, mock.AnythingOfType("*entity.StatusUpdate")).
		Return(nil).Once()

	updated, err := fixture.service.ApplyTransition(ctx, admin, parcel.ID, &usecase.TransitionInput{
		Target:  "ASSIGNED",
		AgentID: &agentID,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusAssigned, updated.Status)
}

func TestParcelService_GetParcel_CustomerSeesOwnParcel(t *testing.T) {
	fixture := newParcelServiceFixture(t)
	ctx := context.Background()
	principal := entity.Principal{ID: uuid.New(), Role: entity.RoleCustomer}

	parcel := &entity.Parcel{ID: uuid.New(), CustomerID: principal.ID}
	fixture.parcelRepo.On("FindParcelByID", ctx, parcel.ID).Return(parcel, nil).Once()

	found, err := fixture.service.GetParcel(ctx, principal, parcel.ID)
	require.NoError(t, err)
	assert.Equal(t, parcel, found)
}

func TestParcelService_GetParcel_AssignedAgentSeesParcel(t *testing.T) {
	fixture := newParcelServiceFixture(t)
	ctx := context.Background()
	agent := entity.Principal{ID: uuid.New(), Role: entity.RoleAgent}

	parcel := &entity.Parcel{ID: uuid.New(), CustomerID: uuid.New(), AgentID: &agent.ID}
	fixture.parcelRepo.On("FindParcelByID", ctx, parcel.ID).Return(parcel, nil).Once()

	found, err := fixture.service.GetParcel(ctx, agent, parcel.ID)
	require.NoError(t, err)
	assert.Equal(t, parcel, found)
}

func TestParcelService_GetParcel_AdminSeesAnyParcel(t *testing.T) {
	fixture := newParcelServiceFixture(t)
	ctx := context.Background()
	admin := entity.Principal{ID: uuid.New(), Role: entity.RoleAdmin}

	parcel := &entity.Parcel{ID: uuid.New(), CustomerID: uuid.New()}
	fixture.parcelRepo.On("FindParcelByID", ctx, parcel.ID).Return(parcel, nil).Once()

	found, err := fixture.service.GetParcel(ctx, admin, parcel.ID)
	require.NoError(t, err)
	assert.Equal(t, parcel, found)
}

func TestParcelService_ListParcels_PerRole(t *testing.T) {
	fixture := newParcelServiceFixture(t)
	ctx := context.Background()
	parcels := []*entity.Parcel{{ID: uuid.New()}}

	customer := entity.Principal{ID: uuid.New(), Role: entity.RoleCustomer}
	fixture.parcelRepo.On("ListParcelsByCustomer", ctx, customer.ID).Return(parcels, nil).Once()
	got, err := fixture.service.ListParcels(ctx, customer)
	require.NoError(t, err)
	assert.Equal(t, parcels, got)

	agent := entity.Principal{ID: uuid.New(), Role: entity.RoleAgent}
	fixture.parcelRepo.On("ListParcelsByAgent", ctx, agent.ID).Return(parcels, nil).Once()
	got, err = fixture.service.ListParcels(ctx, agent)
	require.NoError(t, err)
	assert.Equal(t, parcels, got)

	admin := entity.Principal{ID: uuid.New(), Role: entity.RoleAdmin}
	fixture.parcelRepo.On("ListRecentParcels", ctx, adminListLimit).Return(parcels, nil).Once()
	got, err = fixture.service.ListParcels(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, parcels, got)
}

func TestParcelService_DeleteParcel_OwnerDeletesPendingParcel(t *testing.T) {
	fixture := newParcelServiceFixture(t)
	ctx := context.Background()
	principal := entity.Principal{ID: uuid.New(), Role: entity.RoleCustomer}

	parcel := &entity.Parcel{ID: uuid.New(), Status: entity.StatusPending, CustomerID: principal.ID}
	fixture.parcelRepo.On("FindParcelByIDForUpdate", ctx, parcel.ID).Return(parcel, nil).Once()
	fixture.parcelRepo.On("DeleteParcel", ctx, parcel.ID).Return(nil).Once()

	require.NoError(t, fixture.service.DeleteParcel(ctx, principal, parcel.ID))
}

func TestParcelService_TrackParcel_ReturnsParcelAndHistory(t *testing.T) {
	fixture := newParcelServiceFixture(t)
	ctx := context.Background()

	parcel := &entity.Parcel{
		ID:           uuid.New(),
		TrackingCode: "PCL20250630000042",
		Status:       entity.StatusInTransit,
	}
	history := []*entity.StatusUpdate{
		{ID: uuid.New(), ParcelID: parcel.ID, Status: entity.StatusInTransit},
		{ID: uuid.New(), ParcelID: parcel.ID, Status: entity.StatusPending},
	}

	fixture.parcelRepo.On("FindParcelByTrackingCode", ctx, parcel.TrackingCode).
		Return(parcel, nil).Once()
	fixture.statusRepo.On("ListStatusUpdatesByParcel", ctx, parcel.ID).
		Return(history, nil).Once()

	result, err := fixture.service.TrackParcel(ctx, parcel.TrackingCode)
	require.NoError(t, err)
	assert.Equal(t, parcel, result.Parcel)
	assert.Equal(t, history, result.History)
}

func TestParcelService_QuoteShipping_ItemizesBreakdown(t *testing.T) {
	fixture := newParcelServiceFixture(t)
	ctx := context.Background()

	weight := 3.0
	input := validCreateInput()

	breakdown, err := fixture.service.QuoteShipping(ctx, &usecase.QuoteInput{
		Size:     "MEDIUM",
		Type:     input.Type,
		WeightKg: &weight,
		Pickup:   input.Pickup,
		Delivery: input.Delivery,
	})
	require.NoError(t, err)

	// 120 base + 2 extra kg at 25, same-city multiplier.
	assert.InDelta(t, 120.0, breakdown.BaseCost, 0.001)
	assert.InDelta(t, 50.0, breakdown.WeightSurcharge, 0.001)
	assert.InDelta(t, 1.0, breakdown.DistanceMultiplier, 0.001)
	assert.InDelta(t, 170.0, breakdown.Total, 0.001)
}
