package ports

import (
	"context"

	"dispatch/internal/core/domain/model/deviation"
	"dispatch/internal/core/domain/model/kernel"
)

// DeviationRepository defines the persistence contract for route deviation
// records.
type DeviationRepository interface {
	// Add persists a new deviation record.
	Add(ctx context.Context, record *deviation.Record) error

	// Update persists a review outcome on an existing record.
	Update(ctx context.Context, record *deviation.Record) error

	// Get retrieves a deviation record by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*deviation.Record, error)

	// GetByRoute retrieves all deviation records of a route, newest first.
	GetByRoute(ctx context.Context, routeID kernel.UUID) ([]*deviation.Record, error)
}
