// Package ports defines repository and outbound interfaces for the dispatch
// domain. These interfaces establish contracts between the domain layer and
// infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
)

// DeliveryRepository defines the persistence contract for delivery aggregates.
// Updates are version-checked: a lost concurrent write surfaces as a
// retryable conflict instead of silently clobbering the other writer.
type DeliveryRepository interface {
	// Add persists a new delivery aggregate to storage.
	Add(ctx context.Context, aggregate *delivery.Delivery) error

	// Update persists changes to an existing delivery aggregate. Returns a
	// conflict error when the stored version no longer matches.
	Update(ctx context.Context, aggregate *delivery.Delivery) error

	// Get retrieves a delivery aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)

	// GetByRoute retrieves all deliveries of a route ordered by sequence
	// number.
	GetByRoute(ctx context.Context, routeID kernel.UUID) ([]*delivery.Delivery, error)

	// GetSuccessor retrieves the delivery whose predecessor is the given
	// delivery, or nil when the delivery is the last of its route.
	GetSuccessor(ctx context.Context, previousID kernel.UUID) (*delivery.Delivery, error)
}
