// Package entity contains the core business objects of the project.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Address is a physical pickup or delivery location. An address is owned
// exclusively by the parcel that references it and is never mutated or
// shared after creation.
type Address struct {
	ID           uuid.UUID // The Global Unique Identifier (GUID) for the address.
	Street       string    // Street line of the address.
	City         string    // City name.
	State        string    // State or region name.
	PostalCode   string    // Postal or ZIP code.
	Country      string    // Country name.
	Latitude     *float64  // Optional geographic latitude.
	Longitude    *float64  // Optional geographic longitude.
	ContactPhone string    // Phone number of the contact at this location.
	CreatedAt    time.Time // Timestamp of when this address was created.
}

// HasCoordinates reports whether both latitude and longitude are present.
func (a *Address) HasCoordinates() bool {
	return a != nil && a.Latitude != nil && a.Longitude != nil
}

// SameCity reports whether both addresses name the same city,
// case-insensitively.
func (a *Address) SameCity(other *Address) bool {
	if a == nil || other == nil {
		return false
	}

	return strings.EqualFold(a.City, other.City)
}

// SameState reports whether both addresses name the same state or region,
// case-insensitively.
func (a *Address) SameState(other *Address) bool {
	if a == nil || other == nil {
		return false
	}

	return strings.EqualFold(a.State, other.State)
}
