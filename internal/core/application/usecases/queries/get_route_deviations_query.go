package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetRouteDeviationsQueryIsNotConstructed = errors.New(
	"GetRouteDeviationsQuery must be created via NewGetRouteDeviationsQuery constructor",
)

// GetRouteDeviationsQuery retrieves a route's recorded deviations, newest
// first. Dispatchers use this to review off-corridor movement after the fact.
type GetRouteDeviationsQuery struct { //nolint:recvcheck //using for validation
	routeID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetRouteDeviationsQuery creates a query for a route's deviations.
func NewGetRouteDeviationsQuery(routeID kernel.UUID) (GetRouteDeviationsQuery, error) {
	query := GetRouteDeviationsQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setRouteID(routeID); err != nil {
		return GetRouteDeviationsQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetRouteDeviationsQuery) Validate() error {
	return q.guard.Validate(ErrGetRouteDeviationsQueryIsNotConstructed)
}

// RouteID returns the route whose deviations are requested.
func (q GetRouteDeviationsQuery) RouteID() kernel.UUID { return q.routeID }

func (q *GetRouteDeviationsQuery) setRouteID(routeID kernel.UUID) error {
	if err := routeID.Validate(); err != nil {
		return err
	}

	q.routeID = routeID
	return nil
}

// GetRouteDeviationsQueryResponse is one recorded deviation.
type GetRouteDeviationsQueryResponse struct {
	ID         kernel.UUID
	CourierID  kernel.UUID
	Position   kernel.GeoPoint
	DistanceKm float64
	Severity   string
	ObservedAt time.Time
	Reviewed   bool
	ReviewedAt *time.Time
}
