// Package pricing implements the deterministic shipping cost engine.
//
// Quote and Breakdown are pure functions of the parcel attributes and the
// two addresses: no I/O, no clock, no randomness. Breakdown is the single
// source of the arithmetic and Quote simply returns its total, so the two
// can never disagree.
package pricing

import (
	"fmt"
	"math"

	"parceltrack/internal/domain/entity"
)

// Fixed rate table. Values are whole currency units.
const (
	baseSmall      = 80.0
	baseMedium     = 120.0
	baseLarge      = 160.0
	baseExtraLarge = 220.0

	perKgRate = 25.0

	surchargeFragile     = 50.0
	surchargeElectronics = 40.0
	surchargeFood        = 30.0

	roundingStep = 5.0

	earthRadiusKm = 6371.0
)

// Distance multiplier tiers, in kilometers.
const (
	tierLocalKm    = 50.0
	tierRegionalKm = 200.0
	tierLongKm     = 500.0
)

// Engine computes shipping costs from the fixed rate table, floored at a
// configured minimum charge.
type Engine struct {
	minimumCharge float64
}

// NewEngine constructs an Engine with the configured minimum charge.
func NewEngine(minimumCharge float64) *Engine {
	return &Engine{minimumCharge: minimumCharge}
}

// Breakdown itemizes every intermediate quantity of a quote for display
// and audit.
type Breakdown struct {
	BaseCost           float64 `json:"baseCost"`
	WeightSurcharge    float64 `json:"weightSurcharge"`
	DistanceMultiplier float64 `json:"distanceMultiplier"`
	Distance           string  `json:"distance"` // Human-readable description of the distance tier used.
	SpecialSurcharge   float64 `json:"specialSurcharge"`
	Subtotal           float64 `json:"subtotal"`
	Total              float64 `json:"total"`
}

// Quote returns the shipping cost for the given parcel attributes.
func (e *Engine) Quote(size entity.ParcelSize, weightKg *float64, pickup, delivery *entity.Address, parcelType entity.ParcelType) float64 {
	return e.Breakdown(size, weightKg, pickup, delivery, parcelType).Total
}

// Breakdown computes the full itemization behind a quote.
func (e *Engine) Breakdown(size entity.ParcelSize, weightKg *float64, pickup, delivery *entity.Address, parcelType entity.ParcelType) *Breakdown {
	base := baseCost(size)
	weight := weightSurcharge(weightKg)
	multiplier, distance := distanceMultiplier(pickup, delivery)
	special := specialSurcharge(parcelType)

	subtotal := (base+weight)*multiplier + special

	total := math.Ceil(subtotal/roundingStep) * roundingStep
	if total < e.minimumCharge {
		total = e.minimumCharge
	}

	return &Breakdown{
		BaseCost:           base,
		WeightSurcharge:    weight,
		DistanceMultiplier: multiplier,
		Distance:           distance,
		SpecialSurcharge:   special,
		Subtotal:           subtotal,
		Total:              total,
	}
}

// baseCost looks up the size base. Unknown sizes price as MEDIUM.
func baseCost(size entity.ParcelSize) float64 {
	switch size {
	case entity.SizeSmall:
		return baseSmall
	case entity.SizeMedium:
		return baseMedium
	case entity.SizeLarge:
		return baseLarge
	case entity.SizeExtraLarge:
		return baseExtraLarge
	default:
		return baseMedium
	}
}

// weightSurcharge charges per kilogram beyond the first, which is included
// in the base.
func weightSurcharge(weightKg *float64) float64 {
	if weightKg == nil {
		return 0
	}

	return math.Max(0, *weightKg-1) * perKgRate
}

func specialSurcharge(parcelType entity.ParcelType) float64 {
	switch parcelType {
	case entity.TypeFragile:
		return surchargeFragile
	case entity.TypeElectronics:
		return surchargeElectronics
	case entity.TypeFood:
		return surchargeFood
	default:
		return 0
	}
}

// distanceMultiplier picks the tier from the great-circle distance when
// both addresses carry coordinates, otherwise falls back to the
// administrative tier. Missing address objects default to the same-city
// tier.
func distanceMultiplier(pickup, delivery *entity.Address) (float64, string) {
	if pickup.HasCoordinates() && delivery.HasCoordinates() {
		km := haversineKm(*pickup.Latitude, *pickup.Longitude, *delivery.Latitude, *delivery.Longitude)
		label := fmt.Sprintf("%.1f km", km)

		switch {
		case km <= tierLocalKm:
			return 1.0, label
		case km <= tierRegionalKm:
			return 1.3, label
		case km <= tierLongKm:
			return 1.6, label
		default:
			return 2.0, label
		}
	}

	if pickup == nil || delivery == nil {
		return 1.0, "local (address unknown)"
	}

	switch {
	case pickup.SameCity(delivery):
		return 1.0, "same city"
	case pickup.SameState(delivery):
		return 1.5, "same state"
	default:
		return 2.0, "inter-state"
	}
}

// haversineKm computes the great-circle distance between two coordinate
// pairs using the haversine formula with a 6371 km Earth radius.
func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	const degToRad = math.Pi / 180

	dLat := (lat2 - lat1) * degToRad
	dLon := (lon2 - lon1) * degToRad

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*degToRad)*math.Cos(lat2*degToRad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}
