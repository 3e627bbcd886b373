// Package queries contains read-only operations against the dispatch read
// model. Query handlers bypass the aggregates and read the database directly,
// implementing the query side of the CQRS architecture.
package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetActiveRouteQueryIsNotConstructed = errors.New(
	"GetActiveRouteQuery must be created via NewGetActiveRouteQuery constructor",
)

// GetActiveRouteQuery retrieves a courier's route currently in progress with
// its full stop list. This is the courier app's main screen.
type GetActiveRouteQuery struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetActiveRouteQuery creates a query for the courier's active route.
func NewGetActiveRouteQuery(courierID kernel.UUID) (GetActiveRouteQuery, error) {
	query := GetActiveRouteQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setCourierID(courierID); err != nil {
		return GetActiveRouteQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetActiveRouteQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveRouteQueryIsNotConstructed)
}

// CourierID returns the courier whose route is requested.
func (q GetActiveRouteQuery) CourierID() kernel.UUID { return q.courierID }

func (q *GetActiveRouteQuery) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	q.courierID = courierID
	return nil
}

// ActiveRouteStopResponse is one stop on the active route, in visiting order.
type ActiveRouteStopResponse struct {
	DeliveryID      kernel.UUID
	Code            string
	SequenceNumber  int
	Status          string
	CanProceed      bool
	Destination     kernel.GeoPoint
	PaymentMethod   string
	AmountToCollect float64
	AmountCollected float64
	SkipStatus      string
}

// GetActiveRouteQueryResponse is the courier's in-progress route and its
// stops ordered by sequence number.
type GetActiveRouteQueryResponse struct {
	RouteID          kernel.UUID
	Code             string
	CurrentShopIndex int
	CanSkipShops     bool
	StartedAt        *time.Time
	Stops            []ActiveRouteStopResponse
}
