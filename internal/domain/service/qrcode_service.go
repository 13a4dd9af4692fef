package service

// QRCodeService defines the interface for QR code generation.
type QRCodeService interface {
	// GenerateTrackingQR encodes the public tracking URL into a PNG image.
	GenerateTrackingQR(trackingURL string) ([]byte, error)
}
