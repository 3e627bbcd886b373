package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/route"
)

// RouteRepository defines the persistence contract for route aggregates.
type RouteRepository interface {
	// Add persists a new route aggregate together with its stop list.
	Add(ctx context.Context, aggregate *route.Route) error

	// Update persists changes to an existing route aggregate. Returns a
	// conflict error when the stored version no longer matches.
	Update(ctx context.Context, aggregate *route.Route) error

	// Get retrieves a route aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*route.Route, error)

	// GetActiveByCourier retrieves the courier's route currently in progress,
	// or a not-found error when the courier has none.
	GetActiveByCourier(ctx context.Context, courierID kernel.UUID) (*route.Route, error)

	// GetAllInProgress retrieves every route currently in progress. Used by
	// the deviation monitor sweep.
	GetAllInProgress(ctx context.Context) ([]*route.Route, error)
}
