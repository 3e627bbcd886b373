package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetDeliveryQueryIsNotConstructed = errors.New(
	"GetDeliveryQuery must be created via NewGetDeliveryQuery constructor",
)

// GetDeliveryQuery retrieves one stop's full snapshot: status, payment and
// skip state, proof of delivery and an arrival estimate computed from the
// courier's last reported position.
type GetDeliveryQuery struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetDeliveryQuery creates a query for one stop's snapshot.
func NewGetDeliveryQuery(deliveryID kernel.UUID) (GetDeliveryQuery, error) {
	query := GetDeliveryQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setDeliveryID(deliveryID); err != nil {
		return GetDeliveryQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDeliveryQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryQueryIsNotConstructed)
}

// DeliveryID returns the stop being requested.
func (q GetDeliveryQuery) DeliveryID() kernel.UUID { return q.deliveryID }

func (q *GetDeliveryQuery) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	q.deliveryID = deliveryID
	return nil
}

// GetDeliveryQueryResponse is one stop's read-model snapshot.
// EstimatedArrivalMins is nil once the stop has arrived or when the courier
// has never reported a position.
type GetDeliveryQueryResponse struct {
	ID                   kernel.UUID
	Code                 string
	RouteID              kernel.UUID
	SequenceNumber       int
	Status               string
	CanProceed           bool
	Destination          kernel.GeoPoint
	PaymentMethod        string
	PaymentStatus        string
	AmountToCollect      float64
	AmountCollected      float64
	SkipStatus           string
	RecipientName        string
	ArrivedAt            *time.Time
	CompletedAt          *time.Time
	ActualDurationMins   *int
	EstimatedArrivalMins *int
}
