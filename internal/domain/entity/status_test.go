package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParcelStatus_ForwardGraph(t *testing.T) {
	tests := []struct {
		from    ParcelStatus
		allowed []ParcelStatus
	}{
		{StatusPending, []ParcelStatus{StatusAssigned, StatusCancelled}},
		{StatusAssigned, []ParcelStatus{StatusPickedUp, StatusCancelled}},
		{StatusPickedUp, []ParcelStatus{StatusInTransit, StatusFailed}},
		{StatusInTransit, []ParcelStatus{StatusOutForDelivery, StatusFailed}},
		{StatusOutForDelivery, []ParcelStatus{StatusDelivered, StatusFailed}},
		{StatusDelivered, nil},
		{StatusFailed, nil},
		{StatusCancelled, nil},
	}

	all := []ParcelStatus{
		StatusPending, StatusAssigned, StatusPickedUp, StatusInTransit,
		StatusOutForDelivery, StatusDelivered, StatusFailed, StatusCancelled,
	}

	for _, tt := range tests {
		for _, target := range all {
			want := false
			for _, a := range tt.allowed {
				if a == target {
					want = true
				}
			}
			assert.Equal(t, want, tt.from.CanTransitionTo(target), "%s -> %s", tt.from, target)
		}
	}
}

func TestParcelStatus_DeliveredIsTerminal(t *testing.T) {
	assert.True(t, StatusDelivered.IsTerminal())

	for _, s := range []ParcelStatus{
		StatusPending, StatusAssigned, StatusPickedUp, StatusInTransit,
		StatusOutForDelivery, StatusFailed, StatusCancelled,
	} {
		assert.False(t, s.IsTerminal(), "status %s", s)
	}
}

func TestParcelStatus_AdminOverride(t *testing.T) {
	assert.True(t, StatusFailed.IsAdminOverride(StatusAssigned))

	// The override is exactly one edge; CANCELLED is not reopenable and
	// FAILED cannot jump anywhere else.
	assert.False(t, StatusCancelled.IsAdminOverride(StatusAssigned))
	assert.False(t, StatusFailed.IsAdminOverride(StatusPickedUp))
	assert.False(t, StatusDelivered.IsAdminOverride(StatusAssigned))
}

func TestParcelStatus_Deletable(t *testing.T) {
	assert.True(t, StatusPending.Deletable())
	assert.True(t, StatusAssigned.Deletable())

	for _, s := range []ParcelStatus{
		StatusPickedUp, StatusInTransit, StatusOutForDelivery,
		StatusDelivered, StatusFailed, StatusCancelled,
	} {
		assert.False(t, s.Deletable(), "status %s", s)
	}
}

func TestParcelStatus_IsValid(t *testing.T) {
	assert.True(t, StatusPending.IsValid())
	assert.True(t, StatusOutForDelivery.IsValid())
	assert.False(t, ParcelStatus("SHIPPED").IsValid())
	assert.False(t, ParcelStatus("").IsValid())
}
