// Package delivery defines the contract every transport entry point of
// the service implements.
package delivery

import "context"

// Delivery is a serving surface of the application. Implementations
// block in Serve until the surface shuts down.
type Delivery interface {
	Serve(ctx context.Context) error
}
