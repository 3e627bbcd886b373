package deliveryrepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormDeliveryRepository implements DeliveryRepository using GORM.
// Updates are guarded by the aggregate version: a row whose stored version no
// longer matches is not touched and the caller gets a retryable conflict.
type GormDeliveryRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormDeliveryRepository creates a new GORM delivery repository.
func NewGormDeliveryRepository(db *gorm.DB, tracker aggregateTracker) *GormDeliveryRepository {
	return &GormDeliveryRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new delivery to the database together with its line items.
func (r *GormDeliveryRepository) Add(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing delivery to the database. The write only lands
// when the stored version matches the aggregate's; otherwise a conflict
// retry error is returned and nothing changes.
func (r *GormDeliveryRepository) Update(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = aggregate.Version() + 1

	result := r.db.WithContext(ctx).
		Model(&DeliveryDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Select("*").
		Omit("id", "LineItems").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewConflictRetryError("delivery", aggregate.ID().String())
	}

	if err := r.replaceLineItems(ctx, dto); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormDeliveryRepository) replaceLineItems(ctx context.Context, dto DeliveryDTO) error {
	if err := r.db.WithContext(ctx).
		Where("delivery_id = ?", dto.ID).
		Delete(&LineItemDTO{}).Error; err != nil {
		return err
	}

	if len(dto.LineItems) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Create(&dto.LineItems).Error
}

// Get retrieves a delivery by ID.
func (r *GormDeliveryRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryDTO
	if err := r.db.WithContext(ctx).
		Preload("LineItems").
		First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByRoute retrieves all deliveries of a route ordered by sequence number.
func (r *GormDeliveryRepository) GetByRoute(
	ctx context.Context, routeID kernel.UUID,
) ([]*delivery.Delivery, error) {
	if err := routeID.Validate(); err != nil {
		return nil, err
	}

	var dtos []DeliveryDTO
	if err := r.db.WithContext(ctx).
		Preload("LineItems").
		Order("sequence_number").
		Find(&dtos, "route_id = ?", routeID.Bytes()).Error; err != nil {
		return nil, err
	}

	deliveries := make([]*delivery.Delivery, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		deliveries = append(deliveries, aggregate)
	}

	return deliveries, nil
}

// GetSuccessor retrieves the delivery chained after the given one, or nil
// when the delivery is the last stop of its route.
func (r *GormDeliveryRepository) GetSuccessor(
	ctx context.Context, previousID kernel.UUID,
) (*delivery.Delivery, error) {
	if err := previousID.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryDTO
	if err := r.db.WithContext(ctx).
		Preload("LineItems").
		First(&dto, "previous_delivery_id = ?", previousID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return toDomain(dto)
}
