// Package deviationrepo provides data transfer objects and mapping functions
// for deviation record persistence.
package deviationrepo

import (
	"time"

	"dispatch/internal/core/domain/model/deviation"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// RecordDTO represents the database structure for persisting deviation
// records.
type RecordDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	RouteID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	CourierID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	Lon         float64    `gorm:"type:double precision;not null"`
	Lat         float64    `gorm:"type:double precision;not null"`
	DistanceKm  float64    `gorm:"type:double precision;not null"`
	Severity    string     `gorm:"type:varchar(32);not null"`
	ObservedAt  time.Time  `gorm:"not null"`
	Reviewed    bool       `gorm:"not null"`
	ReviewedBy  *uuid.UUID `gorm:"type:uuid"`
	ReviewNotes string     `gorm:"type:text"`
	ReviewedAt  *time.Time
}

// TableName overrides GORM's default naming to use "deviations".
func (RecordDTO) TableName() string {
	return "deviations"
}

func fromDomain(record *deviation.Record) RecordDTO {
	var reviewedBy *uuid.UUID
	if record.ReviewedBy() != nil {
		raw := record.ReviewedBy().Bytes()
		reviewedBy = &raw
	}

	return RecordDTO{
		ID:          record.ID().Bytes(),
		RouteID:     record.RouteID().Bytes(),
		CourierID:   record.CourierID().Bytes(),
		Lon:         record.Position().Lon(),
		Lat:         record.Position().Lat(),
		DistanceKm:  record.DistanceKm(),
		Severity:    record.Severity().String(),
		ObservedAt:  record.ObservedAt(),
		Reviewed:    record.IsReviewed(),
		ReviewedBy:  reviewedBy,
		ReviewNotes: record.ReviewNotes(),
		ReviewedAt:  record.ReviewedAt(),
	}
}

func toDomain(dto RecordDTO) (*deviation.Record, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	routeID, err := kernel.UUIDFromBytes(dto.RouteID[:])
	if err != nil {
		return nil, err
	}
	courierID, err := kernel.UUIDFromBytes(dto.CourierID[:])
	if err != nil {
		return nil, err
	}
	position, err := kernel.NewGeoPoint(dto.Lon, dto.Lat)
	if err != nil {
		return nil, err
	}

	var reviewedBy *kernel.UUID
	if dto.ReviewedBy != nil {
		reviewer, reviewerErr := kernel.UUIDFromBytes((*dto.ReviewedBy)[:])
		if reviewerErr != nil {
			return nil, reviewerErr
		}
		reviewedBy = &reviewer
	}

	return deviation.RestoreRecord(
		id,
		routeID,
		courierID,
		position,
		dto.DistanceKm,
		deviation.Severity(dto.Severity),
		dto.ObservedAt,
		dto.Reviewed,
		reviewedBy,
		dto.ReviewNotes,
		dto.ReviewedAt,
	)
}
