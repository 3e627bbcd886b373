package queries

import (
	"context"
	"database/sql"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveRouteQueryHandler reads a courier's in-progress route and its
// stop list straight from the database.
type GetActiveRouteQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveRouteQueryHandler creates a handler for active route queries.
// Requires a GORM database connection for query execution.
func NewGetActiveRouteQueryHandler(db *gorm.DB) GetActiveRouteQueryHandler {
	return GetActiveRouteQueryHandler{db: db}
}

// Handle executes the query. Returns a not-found error when the courier has
// no route in progress.
func (h GetActiveRouteQueryHandler) Handle(
	ctx context.Context,
	query GetActiveRouteQuery,
) (GetActiveRouteQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetActiveRouteQueryResponse{}, err
	}

	var response GetActiveRouteQueryResponse

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			code,
			current_shop_index,
			can_skip_shops,
			started_at
		FROM routes
		WHERE courier_id = ? AND is_in_progress = true AND is_archived = false
		LIMIT 1
	`, query.CourierID().Bytes()).Row()

	var id uuid.UUID
	var startedAt sql.NullTime
	err := row.Scan(
		&id,
		&response.Code,
		&response.CurrentShopIndex,
		&response.CanSkipShops,
		&startedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetActiveRouteQueryResponse{}, errs.NewObjectNotFoundError(
			"courierID", query.CourierID().String())
	}
	if err != nil {
		return GetActiveRouteQueryResponse{}, err
	}

	routeID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetActiveRouteQueryResponse{}, err
	}
	response.RouteID = routeID
	if startedAt.Valid {
		at := startedAt.Time
		response.StartedAt = &at
	}

	stops, err := h.loadStops(ctx, routeID)
	if err != nil {
		return GetActiveRouteQueryResponse{}, err
	}
	response.Stops = stops

	return response, nil
}

func (h GetActiveRouteQueryHandler) loadStops(
	ctx context.Context, routeID kernel.UUID,
) ([]ActiveRouteStopResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			code,
			sequence_number,
			status,
			can_proceed,
			lon,
			lat,
			payment_method,
			amount_to_collect,
			amount_collected,
			skip_status
		FROM deliveries
		WHERE route_id = ?
		ORDER BY sequence_number
	`, routeID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stops := make([]ActiveRouteStopResponse, 0)
	for rows.Next() {
		var stop ActiveRouteStopResponse
		var id uuid.UUID
		var lon, lat float64

		err = rows.Scan(
			&id,
			&stop.Code,
			&stop.SequenceNumber,
			&stop.Status,
			&stop.CanProceed,
			&lon,
			&lat,
			&stop.PaymentMethod,
			&stop.AmountToCollect,
			&stop.AmountCollected,
			&stop.SkipStatus,
		)
		if err != nil {
			return nil, err
		}

		deliveryID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		stop.DeliveryID = deliveryID

		destination, destErr := kernel.NewGeoPoint(lon, lat)
		if destErr != nil {
			return nil, destErr
		}
		stop.Destination = destination

		stops = append(stops, stop)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return stops, nil
}
