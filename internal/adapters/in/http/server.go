// Package http exposes the dispatch engine over a REST API. Handlers bind
// requests into commands and queries, leaving all business rules to the
// application layer; the only policy enforced here is the actor headers and
// the dispatcher-role gate on admin endpoints.
package http

import (
	"errors"
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Actor headers. Credential verification happens upstream; the engine only
// consumes the identity and role claims.
const (
	HeaderActorID   = "X-Actor-ID"
	HeaderActorRole = "X-Actor-Role"
)

// RoleDispatcher marks back-office principals allowed to resolve skips,
// unlock stops, grant overrides and review deviations.
const RoleDispatcher = "dispatcher"

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createRouteHandler        commands.CreateRouteCommandHandler
	startRouteHandler         commands.StartRouteCommandHandler
	arriveDeliveryHandler     commands.ArriveDeliveryCommandHandler
	recordPaymentHandler      commands.RecordPaymentCommandHandler
	completeDeliveryHandler   commands.CompleteDeliveryCommandHandler
	requestSkipHandler        commands.RequestSkipCommandHandler
	resolveSkipHandler        commands.ResolveSkipCommandHandler
	unlockDeliveryHandler     commands.UnlockDeliveryCommandHandler
	overrideRouteHandler      commands.OverrideRouteCommandHandler
	updateLocationHandler     commands.UpdateCourierLocationCommandHandler
	reviewDeviationHandler    commands.ReviewDeviationCommandHandler
	getActiveRouteHandler     queries.GetActiveRouteQueryHandler
	getDeliveryHandler        queries.GetDeliveryQueryHandler
	getWalletHandler          queries.GetWalletQueryHandler
	getRouteDeviationsHandler queries.GetRouteDeviationsQueryHandler
}

// NewServer creates the HTTP server with the required command and query
// handlers.
func NewServer(
	createRouteHandler commands.CreateRouteCommandHandler,
	startRouteHandler commands.StartRouteCommandHandler,
	arriveDeliveryHandler commands.ArriveDeliveryCommandHandler,
	recordPaymentHandler commands.RecordPaymentCommandHandler,
	completeDeliveryHandler commands.CompleteDeliveryCommandHandler,
	requestSkipHandler commands.RequestSkipCommandHandler,
	resolveSkipHandler commands.ResolveSkipCommandHandler,
	unlockDeliveryHandler commands.UnlockDeliveryCommandHandler,
	overrideRouteHandler commands.OverrideRouteCommandHandler,
	updateLocationHandler commands.UpdateCourierLocationCommandHandler,
	reviewDeviationHandler commands.ReviewDeviationCommandHandler,
	getActiveRouteHandler queries.GetActiveRouteQueryHandler,
	getDeliveryHandler queries.GetDeliveryQueryHandler,
	getWalletHandler queries.GetWalletQueryHandler,
	getRouteDeviationsHandler queries.GetRouteDeviationsQueryHandler,
) *Server {
	return &Server{
		createRouteHandler:        createRouteHandler,
		startRouteHandler:         startRouteHandler,
		arriveDeliveryHandler:     arriveDeliveryHandler,
		recordPaymentHandler:      recordPaymentHandler,
		completeDeliveryHandler:   completeDeliveryHandler,
		requestSkipHandler:        requestSkipHandler,
		resolveSkipHandler:        resolveSkipHandler,
		unlockDeliveryHandler:     unlockDeliveryHandler,
		overrideRouteHandler:      overrideRouteHandler,
		updateLocationHandler:     updateLocationHandler,
		reviewDeviationHandler:    reviewDeviationHandler,
		getActiveRouteHandler:     getActiveRouteHandler,
		getDeliveryHandler:        getDeliveryHandler,
		getWalletHandler:          getWalletHandler,
		getRouteDeviationsHandler: getRouteDeviationsHandler,
	}
}

// RegisterRoutes mounts the API under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	v1 := e.Group("/api/v1")

	v1.POST("/routes", s.CreateRoute)
	v1.POST("/routes/:routeId/start", s.StartRoute)
	v1.POST("/routes/:routeId/override", s.OverrideRoute)
	v1.GET("/routes/:routeId/deviations", s.GetRouteDeviations)
	v1.GET("/routes/rider/:riderId/active", s.GetActiveRoute)

	v1.PATCH("/deliveries/:id/arrive", s.ArriveDelivery)
	v1.POST("/deliveries/:id/payment", s.RecordPayment)
	v1.PATCH("/deliveries/:id/complete", s.CompleteDelivery)
	v1.POST("/deliveries/:id/request-skip", s.RequestSkip)
	v1.POST("/deliveries/:id/resolve-skip", s.ResolveSkip)
	v1.POST("/deliveries/:id/admin-unlock", s.UnlockDelivery)
	v1.GET("/deliveries/:id", s.GetDelivery)

	v1.PATCH("/couriers/:id/location", s.UpdateCourierLocation)
	v1.GET("/couriers/:id/wallet", s.GetWallet)

	v1.POST("/deviations/:id/review", s.ReviewDeviation)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// actorID reads the acting principal's identity header.
func actorID(ctx echo.Context) (kernel.UUID, error) {
	raw := ctx.Request().Header.Get(HeaderActorID)
	if raw == "" {
		return kernel.UUID{}, errs.NewValueIsRequiredError(HeaderActorID)
	}
	return kernel.UUIDFromString(raw)
}

// requireDispatcher reads the actor identity and rejects non-dispatcher
// principals.
func requireDispatcher(ctx echo.Context) (kernel.UUID, error) {
	id, err := actorID(ctx)
	if err != nil {
		return kernel.UUID{}, err
	}

	role := ctx.Request().Header.Get(HeaderActorRole)
	if role != RoleDispatcher {
		return kernel.UUID{}, errs.NewUnauthorizedError(role, ctx.Path())
	}

	return id, nil
}

// pathUUID parses a path parameter as a UUID.
func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param(name))
}

// respondError maps application errors to HTTP statuses.
func respondError(ctx echo.Context, err error) error {
	status := statusFor(err)
	return ctx.JSON(status, ErrorResponse{
		Code:    status,
		Message: err.Error(),
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrVersionIsInvalid):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrAlreadyInTerminalState),
		errors.Is(err, errs.ErrConflictRetry):
		return http.StatusConflict
	case errors.Is(err, errs.ErrSequentialViolation),
		errors.Is(err, errs.ErrPaymentOutstanding),
		errors.Is(err, errs.ErrGeofenceViolation),
		errors.Is(err, errs.ErrAmountMismatch),
		errors.Is(err, errs.ErrExternalPaymentUnconfirmed):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
