package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrCreateRouteCommandIsNotConstructed = errors.New(
	"CreateRouteCommand must be created via NewCreateRouteCommand constructor",
)

// LineItemDraft carries one order line for a stop being planned.
type LineItemDraft struct {
	ProductID kernel.UUID
	Name      string
	Quantity  int
	UnitPrice float64
}

// StopDraft carries the planning input for one stop: where it is, what is
// owed there and what goods it carries. Sequence numbers are assigned by the
// handler after planning.
type StopDraft struct {
	ShopID          kernel.UUID
	Lon             float64
	Lat             float64
	PaymentMethod   string
	AmountToCollect float64
	Notes           string
	LineItems       []LineItemDraft
}

// CreateRouteCommand plans a route for a courier: the route aggregate, its
// stop list and the chained delivery work items are created together, all in
// pending status.
//
// When optimize is set the stop order is re-planned with the greedy
// nearest-neighbor heuristic starting from the given point; otherwise the
// drafts are taken in the given order.
type CreateRouteCommand struct { //nolint:recvcheck //using for validation
	routeID   kernel.UUID
	code      string
	courierID kernel.UUID
	stops     []StopDraft

	optimize bool
	startLon float64
	startLat float64

	guard guard.ConstructorGuard
}

// NewCreateRouteCommand creates a command to plan a new route.
// Requires a valid route ID, a non-empty code, a valid courier and at least
// one stop draft.
func NewCreateRouteCommand(
	routeID kernel.UUID,
	code string,
	courierID kernel.UUID,
	stops []StopDraft,
	optimize bool,
	startLon float64,
	startLat float64,
) (CreateRouteCommand, error) {
	command := CreateRouteCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setRouteID(routeID),
		command.setCode(code),
		command.setCourierID(courierID),
		command.setStops(stops),
	); err != nil {
		return CreateRouteCommand{}, err
	}

	command.optimize = optimize
	command.startLon = startLon
	command.startLat = startLat
	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateRouteCommand) Validate() error {
	return c.guard.Validate(ErrCreateRouteCommandIsNotConstructed)
}

// RouteID returns the identifier for the route being planned.
func (c CreateRouteCommand) RouteID() kernel.UUID { return c.routeID }

// Code returns the human-facing route code.
func (c CreateRouteCommand) Code() string { return c.code }

// CourierID returns the courier the route is assigned to.
func (c CreateRouteCommand) CourierID() kernel.UUID { return c.courierID }

// Stops returns the stop drafts in submission order.
func (c CreateRouteCommand) Stops() []StopDraft { return c.stops }

// Optimize reports whether the stop order should be re-planned.
func (c CreateRouteCommand) Optimize() bool { return c.optimize }

// StartLon returns the planning start longitude.
func (c CreateRouteCommand) StartLon() float64 { return c.startLon }

// StartLat returns the planning start latitude.
func (c CreateRouteCommand) StartLat() float64 { return c.startLat }

func (c *CreateRouteCommand) setRouteID(routeID kernel.UUID) error {
	if err := routeID.Validate(); err != nil {
		return err
	}

	c.routeID = routeID
	return nil
}

func (c *CreateRouteCommand) setCode(code string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("code")
	}

	c.code = code
	return nil
}

func (c *CreateRouteCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	c.courierID = courierID
	return nil
}

func (c *CreateRouteCommand) setStops(stops []StopDraft) error {
	if len(stops) == 0 {
		return errs.NewValueIsRequiredError("stops")
	}

	for _, draft := range stops {
		if err := draft.ShopID.Validate(); err != nil {
			return err
		}
	}

	c.stops = stops
	return nil
}
