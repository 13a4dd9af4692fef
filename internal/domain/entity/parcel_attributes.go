package entity

// ParcelSize classifies a parcel by its physical dimensions.
type ParcelSize string

const (
	SizeSmall      ParcelSize = "SMALL"
	SizeMedium     ParcelSize = "MEDIUM"
	SizeLarge      ParcelSize = "LARGE"
	SizeExtraLarge ParcelSize = "EXTRA_LARGE"
)

// String returns the string representation of the ParcelSize.
func (s ParcelSize) String() string {
	return string(s)
}

// IsValid checks if the ParcelSize is a valid value.
func (s ParcelSize) IsValid() bool {
	switch s {
	case SizeSmall, SizeMedium, SizeLarge, SizeExtraLarge:
		return true
	default:
		return false
	}
}

// Rank orders sizes from smallest to largest. Unknown sizes rank below SMALL
// so comparisons against them never inflate a price.
func (s ParcelSize) Rank() int {
	switch s {
	case SizeSmall:
		return 1
	case SizeMedium:
		return 2
	case SizeLarge:
		return 3
	case SizeExtraLarge:
		return 4
	default:
		return 0
	}
}

// ParcelType classifies the contents of a parcel.
type ParcelType string

const (
	TypeDocument    ParcelType = "DOCUMENT"
	TypePackage     ParcelType = "PACKAGE"
	TypeFragile     ParcelType = "FRAGILE"
	TypeElectronics ParcelType = "ELECTRONICS"
	TypeClothing    ParcelType = "CLOTHING"
	TypeFood        ParcelType = "FOOD"
	TypeOther       ParcelType = "OTHER"
)

// String returns the string representation of the ParcelType.
func (t ParcelType) String() string {
	return string(t)
}

// IsValid checks if the ParcelType is a valid value.
func (t ParcelType) IsValid() bool {
	switch t {
	case TypeDocument, TypePackage, TypeFragile, TypeElectronics, TypeClothing, TypeFood, TypeOther:
		return true
	default:
		return false
	}
}

// PaymentType distinguishes prepaid parcels from cash-on-delivery ones.
type PaymentType string

const (
	PaymentPrepaid PaymentType = "PREPAID"
	PaymentCOD     PaymentType = "COD"
)

// String returns the string representation of the PaymentType.
func (p PaymentType) String() string {
	return string(p)
}

// IsValid checks if the PaymentType is a valid value.
func (p PaymentType) IsValid() bool {
	switch p {
	case PaymentPrepaid, PaymentCOD:
		return true
	default:
		return false
	}
}
