package queries

import (
	"context"
	"database/sql"
	"errors"
	"math"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetDeliveryQueryHandler reads one stop's snapshot from the database,
// joining the courier row for the arrival estimate.
type GetDeliveryQueryHandler struct {
	db *gorm.DB
}

// NewGetDeliveryQueryHandler creates a handler for stop snapshot queries.
func NewGetDeliveryQueryHandler(db *gorm.DB) GetDeliveryQueryHandler {
	return GetDeliveryQueryHandler{db: db}
}

// Handle executes the query. Returns a not-found error for an unknown stop.
func (h GetDeliveryQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveryQuery,
) (GetDeliveryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDeliveryQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			d.id,
			d.code,
			d.route_id,
			d.sequence_number,
			d.status,
			d.can_proceed,
			d.lon,
			d.lat,
			d.payment_method,
			d.payment_status,
			d.amount_to_collect,
			d.amount_collected,
			d.skip_status,
			d.recipient_name,
			d.arrived_at,
			d.completed_at,
			d.actual_duration_mins,
			c.avg_speed_kmh,
			c.last_lon,
			c.last_lat
		FROM deliveries d
		JOIN couriers c ON c.id = d.courier_id
		WHERE d.id = ?
	`, query.DeliveryID().Bytes()).Row()

	var response GetDeliveryQueryResponse
	var id, routeID uuid.UUID
	var lon, lat float64
	var arrivedAt, completedAt sql.NullTime
	var actualDurationMins sql.NullInt64
	var avgSpeedKmh float64
	var lastLon, lastLat sql.NullFloat64

	err := row.Scan(
		&id,
		&response.Code,
		&routeID,
		&response.SequenceNumber,
		&response.Status,
		&response.CanProceed,
		&lon,
		&lat,
		&response.PaymentMethod,
		&response.PaymentStatus,
		&response.AmountToCollect,
		&response.AmountCollected,
		&response.SkipStatus,
		&response.RecipientName,
		&arrivedAt,
		&completedAt,
		&actualDurationMins,
		&avgSpeedKmh,
		&lastLon,
		&lastLat,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetDeliveryQueryResponse{}, errs.NewObjectNotFoundError(
			"deliveryID", query.DeliveryID().String())
	}
	if err != nil {
		return GetDeliveryQueryResponse{}, err
	}

	if response.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetDeliveryQueryResponse{}, err
	}
	if response.RouteID, err = kernel.UUIDFromBytes(routeID[:]); err != nil {
		return GetDeliveryQueryResponse{}, err
	}
	if response.Destination, err = kernel.NewGeoPoint(lon, lat); err != nil {
		return GetDeliveryQueryResponse{}, err
	}
	if arrivedAt.Valid {
		at := arrivedAt.Time
		response.ArrivedAt = &at
	}
	if completedAt.Valid {
		at := completedAt.Time
		response.CompletedAt = &at
	}
	if actualDurationMins.Valid {
		mins := int(actualDurationMins.Int64)
		response.ActualDurationMins = &mins
	}

	if !arrivedAt.Valid && lastLon.Valid && lastLat.Valid && avgSpeedKmh > 0 {
		position, posErr := kernel.NewGeoPoint(lastLon.Float64, lastLat.Float64)
		if posErr != nil {
			return GetDeliveryQueryResponse{}, posErr
		}
		distanceKm := services.DistanceKm(position, response.Destination)
		mins := int(math.Round(distanceKm / avgSpeedKmh * 60))
		response.EstimatedArrivalMins = &mins
	}

	return response, nil
}
