package queries

import (
	"context"
	"database/sql"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetRouteDeviationsQueryHandler reads a route's deviation records from the
// database.
type GetRouteDeviationsQueryHandler struct {
	db *gorm.DB
}

// NewGetRouteDeviationsQueryHandler creates a handler for deviation queries.
func NewGetRouteDeviationsQueryHandler(db *gorm.DB) GetRouteDeviationsQueryHandler {
	return GetRouteDeviationsQueryHandler{db: db}
}

// Handle executes the query. An unknown route yields an empty list.
func (h GetRouteDeviationsQueryHandler) Handle(
	ctx context.Context,
	query GetRouteDeviationsQuery,
) ([]GetRouteDeviationsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			courier_id,
			lon,
			lat,
			distance_km,
			severity,
			observed_at,
			reviewed,
			reviewed_at
		FROM deviations
		WHERE route_id = ?
		ORDER BY observed_at DESC
	`, query.RouteID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]GetRouteDeviationsQueryResponse, 0)
	for rows.Next() {
		var record GetRouteDeviationsQueryResponse
		var id, courierID uuid.UUID
		var lon, lat float64
		var reviewedAt sql.NullTime

		err = rows.Scan(
			&id,
			&courierID,
			&lon,
			&lat,
			&record.DistanceKm,
			&record.Severity,
			&record.ObservedAt,
			&record.Reviewed,
			&reviewedAt,
		)
		if err != nil {
			return nil, err
		}

		if record.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if record.CourierID, err = kernel.UUIDFromBytes(courierID[:]); err != nil {
			return nil, err
		}
		if record.Position, err = kernel.NewGeoPoint(lon, lat); err != nil {
			return nil, err
		}
		if reviewedAt.Valid {
			at := reviewedAt.Time
			record.ReviewedAt = &at
		}

		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
