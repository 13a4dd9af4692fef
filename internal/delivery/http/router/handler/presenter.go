package handler

import (
	"time"

	"parceltrack/internal/domain/entity"
)

// AddressResponse is the API shape of an address.
type AddressResponse struct {
	Street       string   `json:"street"`
	City         string   `json:"city"`
	State        string   `json:"state,omitempty"`
	PostalCode   string   `json:"postal_code,omitempty"`
	Country      string   `json:"country"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	ContactPhone string   `json:"contact_phone,omitempty"`
}

// ParcelResponse is the API shape of a parcel for its owner, the
// assigned agent and admins. QRCode serializes as base64 PNG.
type ParcelResponse struct {
	ID               string           `json:"id"`
	TrackingCode     string           `json:"tracking_code"`
	Size             string           `json:"size"`
	Type             string           `json:"type"`
	WeightKg         *float64         `json:"weight_kg,omitempty"`
	PaymentType      string           `json:"payment_type"`
	CODAmount        *float64         `json:"cod_amount,omitempty"`
	ShippingCost     float64          `json:"shipping_cost"`
	Status           string           `json:"status"`
	CustomerID       string           `json:"customer_id"`
	AgentID          *string          `json:"agent_id,omitempty"`
	Pickup           *AddressResponse `json:"pickup,omitempty"`
	Delivery         *AddressResponse `json:"delivery,omitempty"`
	PickupDate       *time.Time       `json:"pickup_date,omitempty"`
	ExpectedDelivery time.Time        `json:"expected_delivery"`
	DeliveredAt      *time.Time       `json:"delivered_at,omitempty"`
	QRCode           []byte           `json:"qr_code,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// StatusUpdateResponse is the API shape of one status log entry.
type StatusUpdateResponse struct {
	Status    string     `json:"status"`
	Note      string     `json:"note,omitempty"`
	Latitude  *float64   `json:"latitude,omitempty"`
	Longitude *float64   `json:"longitude,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// TrackingResponse is the anonymous public view of a parcel. It exposes
// no customer, agent or cost information.
type TrackingResponse struct {
	TrackingCode     string                  `json:"tracking_code"`
	Status           string                  `json:"status"`
	ExpectedDelivery time.Time               `json:"expected_delivery"`
	DeliveredAt      *time.Time              `json:"delivered_at,omitempty"`
	History          []*StatusUpdateResponse `json:"history"`
}

func toAddressResponse(address *entity.Address) *AddressResponse {
	if address == nil {
		return nil
	}

	return &AddressResponse{
		Street:       address.Street,
		City:         address.City,
		State:        address.State,
		PostalCode:   address.PostalCode,
		Country:      address.Country,
		Latitude:     address.Latitude,
		Longitude:    address.Longitude,
		ContactPhone: address.ContactPhone,
	}
}

func toParcelResponse(parcel *entity.Parcel) *ParcelResponse {
	resp := &ParcelResponse{
		ID:               parcel.ID.String(),
		TrackingCode:     parcel.TrackingCode,
		Size:             parcel.Size.String(),
		Type:             parcel.Type.String(),
		WeightKg:         parcel.WeightKg,
		PaymentType:      parcel.PaymentType.String(),
		CODAmount:        parcel.CODAmount,
		ShippingCost:     parcel.ShippingCost,
		Status:           parcel.Status.String(),
		CustomerID:       parcel.CustomerID.String(),
		Pickup:           toAddressResponse(parcel.PickupAddress),
		Delivery:         toAddressResponse(parcel.DeliveryAddress),
		PickupDate:       parcel.PickupDate,
		ExpectedDelivery: parcel.ExpectedDelivery,
		DeliveredAt:      parcel.DeliveredAt,
		QRCode:           parcel.QRCode,
		CreatedAt:        parcel.CreatedAt,
		UpdatedAt:        parcel.UpdatedAt,
	}
	if parcel.AgentID != nil {
		agentID := parcel.AgentID.String()
		resp.AgentID = &agentID
	}

	return resp
}

func toParcelListResponse(parcels []*entity.Parcel) []*ParcelResponse {
	responses := make([]*ParcelResponse, 0, len(parcels))
	for _, parcel := range parcels {
		responses = append(responses, toParcelResponse(parcel))
	}

	return responses
}

func toTrackingResponse(parcel *entity.Parcel, history []*entity.StatusUpdate) *TrackingResponse {
	entries := make([]*StatusUpdateResponse, 0, len(history))
	for _, update := range history {
		entries = append(entries, &StatusUpdateResponse{
			Status:    update.Status.String(),
			Note:      update.Note,
			Latitude:  update.Latitude,
			Longitude: update.Longitude,
			CreatedAt: update.CreatedAt,
		})
	}

	return &TrackingResponse{
		TrackingCode:     parcel.TrackingCode,
		Status:           parcel.Status.String(),
		ExpectedDelivery: parcel.ExpectedDelivery,
		DeliveredAt:      parcel.DeliveredAt,
		History:          entries,
	}
}
