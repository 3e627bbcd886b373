package ports

import (
	"context"
	"time"
)

// Event kinds emitted by the dispatch engine. delivery.started marks a stop
// becoming the active one, whether at route start or when a resolved
// predecessor releases its successor; admin.shop-unlocked is reserved for
// explicit dispatcher unlocks.
const (
	EventDeliveryStarted   = "delivery.started"
	EventDeliveryArrived   = "delivery.arrived"
	EventDeliveryCompleted = "delivery.completed"
	EventRouteCompleted    = "route.completed"
	EventShopUnlocked      = "admin.shop-unlocked"
	EventSkipRequested     = "rider.skip-request.received"
	EventSkipApproved      = "admin.skip.approved"
	EventSkipRejected      = "admin.skip.rejected"
	EventWalletUpdated     = "wallet.updated"
	EventDeviationAlert    = "route.deviation.alert"
)

// Event audiences. Role events fan out to everyone holding the role; user
// events target one principal.
const (
	AudienceRole = "role"
	AudienceUser = "user"
)

// Event is a flat notification record published when something observable
// happens to a route or stop.
type Event struct {
	Kind       string    `json:"kind"`
	RouteID    string    `json:"routeId,omitempty"`
	DeliveryID string    `json:"deliveryId,omitempty"`
	Audience   string    `json:"audience"`
	Target     string    `json:"target"`
	Message    string    `json:"message"`
	OccurredAt time.Time `json:"occurredAt"`
}

// EventPublisher delivers events to interested parties. Publishing is
// best-effort: implementations log failures and never fail the business
// operation that produced the event.
type EventPublisher interface {
	Publish(ctx context.Context, event Event)
}
