// Package routerepo provides data transfer objects and mapping functions for
// route persistence. It implements the repository pattern for the route
// aggregate, converting between domain entities and database rows.
package routerepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/route"

	"github.com/google/uuid"
)

// RouteDTO represents the database structure for persisting route aggregates.
type RouteDTO struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code                 string    `gorm:"type:varchar(64);not null;uniqueIndex"`
	CourierID            uuid.UUID `gorm:"type:uuid;not null;index"`
	CurrentShopIndex     int       `gorm:"type:int;not null"`
	IsInProgress         bool      `gorm:"not null;index"`
	IsArchived           bool      `gorm:"not null"`
	StartedAt            *time.Time
	CanSkipShops         bool       `gorm:"not null"`
	OverrideReason       string     `gorm:"type:text"`
	OverrideActor        *uuid.UUID `gorm:"type:uuid"`
	LastDeviationAlertAt *time.Time
	Version              int64    `gorm:"type:bigint;not null"`
	Stops                []StopDTO `gorm:"foreignKey:RouteID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default naming to use "routes".
func (RouteDTO) TableName() string {
	return "routes"
}

// StopDTO represents one planned stop of a route.
type StopDTO struct {
	RouteID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	SequenceNumber int       `gorm:"type:int;primaryKey"`
	ShopID         uuid.UUID `gorm:"type:uuid;not null"`
	Lon            float64   `gorm:"type:double precision;not null"`
	Lat            float64   `gorm:"type:double precision;not null"`
	IsActive       bool      `gorm:"not null"`
	Notes          string    `gorm:"type:text"`
}

// TableName overrides GORM's default naming to use "route_stops".
func (StopDTO) TableName() string {
	return "route_stops"
}

func fromDomain(aggregate *route.Route) RouteDTO {
	id := aggregate.ID().Bytes()

	stops := make([]StopDTO, 0, len(aggregate.Stops()))
	for _, stop := range aggregate.Stops() {
		stops = append(stops, StopDTO{
			RouteID:        id,
			SequenceNumber: stop.SequenceNumber(),
			ShopID:         stop.ShopID().Bytes(),
			Lon:            stop.Destination().Lon(),
			Lat:            stop.Destination().Lat(),
			IsActive:       stop.IsActive(),
			Notes:          stop.Notes(),
		})
	}

	var overrideActor *uuid.UUID
	if aggregate.OverrideActor() != nil {
		raw := aggregate.OverrideActor().Bytes()
		overrideActor = &raw
	}

	return RouteDTO{
		ID:                   id,
		Code:                 aggregate.Code(),
		CourierID:            aggregate.CourierID().Bytes(),
		CurrentShopIndex:     aggregate.CurrentShopIndex(),
		IsInProgress:         aggregate.IsInProgress(),
		IsArchived:           aggregate.IsArchived(),
		StartedAt:            aggregate.StartedAt(),
		CanSkipShops:         aggregate.CanSkipShops(),
		OverrideReason:       aggregate.OverrideReason(),
		OverrideActor:        overrideActor,
		LastDeviationAlertAt: aggregate.LastDeviationAlertAt(),
		Version:              aggregate.Version(),
		Stops:                stops,
	}
}

func toDomain(dto RouteDTO) (*route.Route, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	courierID, err := kernel.UUIDFromBytes(dto.CourierID[:])
	if err != nil {
		return nil, err
	}

	var overrideActor *kernel.UUID
	if dto.OverrideActor != nil {
		actor, actorErr := kernel.UUIDFromBytes((*dto.OverrideActor)[:])
		if actorErr != nil {
			return nil, actorErr
		}
		overrideActor = &actor
	}

	stops := make([]route.Stop, 0, len(dto.Stops))
	for _, stopDTO := range dto.Stops {
		shopID, stopErr := kernel.UUIDFromBytes(stopDTO.ShopID[:])
		if stopErr != nil {
			return nil, stopErr
		}
		destination, stopErr := kernel.NewGeoPoint(stopDTO.Lon, stopDTO.Lat)
		if stopErr != nil {
			return nil, stopErr
		}
		stops = append(stops, route.RestoreStop(
			shopID, destination, stopDTO.SequenceNumber, stopDTO.IsActive, stopDTO.Notes))
	}

	return route.RestoreRoute(
		id,
		dto.Code,
		courierID,
		stops,
		dto.CurrentShopIndex,
		dto.IsInProgress,
		dto.IsArchived,
		dto.StartedAt,
		dto.CanSkipShops,
		dto.OverrideReason,
		overrideActor,
		dto.LastDeviationAlertAt,
		dto.Version,
	)
}
