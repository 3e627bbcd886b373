package deviationrepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/deviation"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormDeviationRepository implements DeviationRepository using GORM.
type GormDeviationRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormDeviationRepository creates a new GORM deviation repository.
func NewGormDeviationRepository(db *gorm.DB, tracker aggregateTracker) *GormDeviationRepository {
	return &GormDeviationRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new deviation record to the database.
func (r *GormDeviationRepository) Add(ctx context.Context, record *deviation.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(record.ID(), record)
	return nil
}

// Update saves a review outcome on an existing record.
func (r *GormDeviationRepository) Update(ctx context.Context, record *deviation.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	result := r.db.WithContext(ctx).
		Model(&RecordDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("id").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("deviation record", record.ID().String())
	}

	r.tracker.TrackAggregate(record.ID(), record)
	return nil
}

// Get retrieves a deviation record by ID.
func (r *GormDeviationRepository) Get(ctx context.Context, id kernel.UUID) (*deviation.Record, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RecordDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("deviation record", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByRoute retrieves all deviation records of a route, newest first.
func (r *GormDeviationRepository) GetByRoute(
	ctx context.Context, routeID kernel.UUID,
) ([]*deviation.Record, error) {
	if err := routeID.Validate(); err != nil {
		return nil, err
	}

	var dtos []RecordDTO
	if err := r.db.WithContext(ctx).
		Order("observed_at DESC").
		Find(&dtos, "route_id = ?", routeID.Bytes()).Error; err != nil {
		return nil, err
	}

	records := make([]*deviation.Record, 0, len(dtos))
	for _, dto := range dtos {
		record, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}
