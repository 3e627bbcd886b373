// Package courierrepo provides data transfer objects and mapping functions
// for courier persistence. It implements the repository pattern for the
// courier aggregate, converting between domain entities and database rows.
package courierrepo

import (
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CourierDTO represents the database structure for persisting courier
// aggregates. The last reported position is nullable until the rider's app
// sends its first fix.
type CourierDTO struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name               string    `gorm:"type:varchar(255);not null"`
	Phone              string    `gorm:"type:varchar(64);not null"`
	AvgSpeedKmh        float64   `gorm:"type:double precision;not null"`
	LastLon            *float64  `gorm:"type:double precision"`
	LastLat            *float64  `gorm:"type:double precision"`
	PositionRecordedAt *time.Time
}

// TableName overrides GORM's default naming to use "couriers".
func (CourierDTO) TableName() string {
	return "couriers"
}

func fromDomain(aggregate *courier.Courier) CourierDTO {
	var lastLon, lastLat *float64
	if aggregate.LastPosition() != nil {
		lon := aggregate.LastPosition().Lon()
		lat := aggregate.LastPosition().Lat()
		lastLon = &lon
		lastLat = &lat
	}

	return CourierDTO{
		ID:                 aggregate.ID().Bytes(),
		Name:               aggregate.Name(),
		Phone:              aggregate.Phone(),
		AvgSpeedKmh:        aggregate.AvgSpeedKmh(),
		LastLon:            lastLon,
		LastLat:            lastLat,
		PositionRecordedAt: aggregate.PositionRecordedAt(),
	}
}

func toDomain(dto CourierDTO) (*courier.Courier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var lastPosition *kernel.GeoPoint
	if dto.LastLon != nil && dto.LastLat != nil {
		position, posErr := kernel.NewGeoPoint(*dto.LastLon, *dto.LastLat)
		if posErr != nil {
			return nil, posErr
		}
		lastPosition = &position
	}

	return courier.RestoreCourier(
		id,
		dto.Name,
		dto.Phone,
		dto.AvgSpeedKmh,
		lastPosition,
		dto.PositionRecordedAt,
	)
}
