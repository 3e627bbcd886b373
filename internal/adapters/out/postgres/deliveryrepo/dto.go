// Package deliveryrepo provides data transfer objects and mapping functions
// for delivery persistence. It implements the repository pattern for the
// delivery aggregate, converting between domain entities and database rows.
package deliveryrepo

import (
	"time"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DeliveryDTO represents the database structure for persisting delivery
// aggregates. Payment, confirmation, override and skip sub-records are
// flattened into the row; line items live in their own table.
type DeliveryDTO struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Code               string     `gorm:"type:varchar(64);not null;uniqueIndex"`
	RouteID            uuid.UUID  `gorm:"type:uuid;not null;index"`
	CourierID          uuid.UUID  `gorm:"type:uuid;not null;index"`
	ShopID             uuid.UUID  `gorm:"type:uuid;not null;index"`
	SequenceNumber     int        `gorm:"type:int;not null"`
	Status             string     `gorm:"type:varchar(32);not null"`
	CanProceed         bool       `gorm:"not null"`
	PreviousDeliveryID *uuid.UUID `gorm:"type:uuid;index"`

	Lon               float64  `gorm:"type:double precision;not null"`
	Lat               float64  `gorm:"type:double precision;not null"`
	ArrivalLon        *float64 `gorm:"type:double precision"`
	ArrivalLat        *float64 `gorm:"type:double precision"`
	ArrivalDistanceKm *float64 `gorm:"type:double precision"`

	DepartedAt         *time.Time
	ArrivedAt          *time.Time
	CompletedAt        *time.Time
	ActualDurationMins *int `gorm:"type:int"`

	PaymentMethod   string     `gorm:"type:varchar(32);not null"`
	AmountToCollect float64    `gorm:"type:double precision;not null"`
	AmountCollected float64    `gorm:"type:double precision;not null"`
	PaymentStatus   string     `gorm:"type:varchar(32);not null"`
	ExternalRef     string     `gorm:"type:varchar(128)"`
	CollectedAt     *time.Time

	RecipientName     string `gorm:"type:varchar(255)"`
	RecipientPhone    string `gorm:"type:varchar(64)"`
	SignatureURI      string `gorm:"type:varchar(512)"`
	PhotoURI          string `gorm:"type:varchar(512)"`
	ConfirmationNotes string `gorm:"type:text"`
	ConfirmedAt       *time.Time

	IsOverridden   bool       `gorm:"not null"`
	OverrideReason string     `gorm:"type:text"`
	OverrideActor  *uuid.UUID `gorm:"type:uuid"`
	OverriddenAt   *time.Time

	SkipRequested       bool   `gorm:"not null"`
	SkipReason          string `gorm:"type:varchar(32)"`
	SkipNotes           string `gorm:"type:text"`
	SkipPhotoURI        string `gorm:"type:varchar(512)"`
	SkipStatus          string `gorm:"type:varchar(32);not null"`
	SkipResolverID      *uuid.UUID `gorm:"type:uuid"`
	SkipResolvedAt      *time.Time
	SkipResolutionNotes string `gorm:"type:text"`

	Version   int64         `gorm:"type:bigint;not null"`
	LineItems []LineItemDTO `gorm:"foreignKey:DeliveryID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default naming to use "deliveries".
func (DeliveryDTO) TableName() string {
	return "deliveries"
}

// LineItemDTO represents one order line carried by a delivery.
type LineItemDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	DeliveryID uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID  uuid.UUID `gorm:"type:uuid;not null"`
	Name       string    `gorm:"type:varchar(255);not null"`
	Quantity   int       `gorm:"type:int;not null"`
	UnitPrice  float64   `gorm:"type:double precision;not null"`
	Delivered  bool      `gorm:"not null"`
}

// TableName overrides GORM's default naming to use "delivery_line_items".
func (LineItemDTO) TableName() string {
	return "delivery_line_items"
}

func fromDomain(aggregate *delivery.Delivery) DeliveryDTO {
	id := aggregate.ID().Bytes()

	items := make([]LineItemDTO, 0, len(aggregate.LineItems()))
	for _, item := range aggregate.LineItems() {
		items = append(items, LineItemDTO{
			ID:         item.ID().Bytes(),
			DeliveryID: id,
			ProductID:  item.ProductID().Bytes(),
			Name:       item.Name(),
			Quantity:   item.Quantity(),
			UnitPrice:  item.UnitPrice(),
			Delivered:  item.Delivered(),
		})
	}

	var previousID *uuid.UUID
	if aggregate.PreviousDeliveryID() != nil {
		raw := aggregate.PreviousDeliveryID().Bytes()
		previousID = &raw
	}

	var arrivalLon, arrivalLat *float64
	if aggregate.ArrivalPoint() != nil {
		lon := aggregate.ArrivalPoint().Lon()
		lat := aggregate.ArrivalPoint().Lat()
		arrivalLon = &lon
		arrivalLat = &lat
	}

	payment := aggregate.Payment()
	confirmation := aggregate.Confirmation()
	override := aggregate.AdminOverride()
	skip := aggregate.SkipRequest()

	var overrideActor *uuid.UUID
	if override.ActorID() != nil {
		raw := override.ActorID().Bytes()
		overrideActor = &raw
	}

	var skipResolver *uuid.UUID
	if skip.ResolverID() != nil {
		raw := skip.ResolverID().Bytes()
		skipResolver = &raw
	}

	skipReason := ""
	if skip.Requested() {
		skipReason = skip.Reason().String()
	}

	return DeliveryDTO{
		ID:                 id,
		Code:               aggregate.Code(),
		RouteID:            aggregate.RouteID().Bytes(),
		CourierID:          aggregate.CourierID().Bytes(),
		ShopID:             aggregate.ShopID().Bytes(),
		SequenceNumber:     aggregate.SequenceNumber(),
		Status:             aggregate.Status().String(),
		CanProceed:         aggregate.CanProceed(),
		PreviousDeliveryID: previousID,

		Lon:               aggregate.Destination().Lon(),
		Lat:               aggregate.Destination().Lat(),
		ArrivalLon:        arrivalLon,
		ArrivalLat:        arrivalLat,
		ArrivalDistanceKm: aggregate.ArrivalDistanceKm(),

		DepartedAt:         aggregate.DepartedAt(),
		ArrivedAt:          aggregate.ArrivedAt(),
		CompletedAt:        aggregate.CompletedAt(),
		ActualDurationMins: aggregate.ActualDurationMins(),

		PaymentMethod:   payment.Method().String(),
		AmountToCollect: payment.AmountToCollect(),
		AmountCollected: payment.AmountCollected(),
		PaymentStatus:   payment.Status().String(),
		ExternalRef:     payment.ExternalRef(),
		CollectedAt:     payment.CollectedAt(),

		RecipientName:     confirmation.RecipientName(),
		RecipientPhone:    confirmation.RecipientPhone(),
		SignatureURI:      confirmation.SignatureURI(),
		PhotoURI:          confirmation.PhotoURI(),
		ConfirmationNotes: confirmation.Notes(),
		ConfirmedAt:       confirmation.ConfirmedAt(),

		IsOverridden:   override.IsOverridden(),
		OverrideReason: override.Reason(),
		OverrideActor:  overrideActor,
		OverriddenAt:   override.OverriddenAt(),

		SkipRequested:       skip.Requested(),
		SkipReason:          skipReason,
		SkipNotes:           skip.Notes(),
		SkipPhotoURI:        skip.PhotoURI(),
		SkipStatus:          skip.Status().String(),
		SkipResolverID:      skipResolver,
		SkipResolvedAt:      skip.ResolvedAt(),
		SkipResolutionNotes: skip.ResolutionNotes(),

		Version:   aggregate.Version(),
		LineItems: items,
	}
}

//nolint:funlen // straight field mapping
func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
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
	shopID, err := kernel.UUIDFromBytes(dto.ShopID[:])
	if err != nil {
		return nil, err
	}

	var previousID *kernel.UUID
	if dto.PreviousDeliveryID != nil {
		prev, prevErr := kernel.UUIDFromBytes((*dto.PreviousDeliveryID)[:])
		if prevErr != nil {
			return nil, prevErr
		}
		previousID = &prev
	}

	status, err := delivery.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	destination, err := kernel.NewGeoPoint(dto.Lon, dto.Lat)
	if err != nil {
		return nil, err
	}

	var arrivalPoint *kernel.GeoPoint
	if dto.ArrivalLon != nil && dto.ArrivalLat != nil {
		point, pointErr := kernel.NewGeoPoint(*dto.ArrivalLon, *dto.ArrivalLat)
		if pointErr != nil {
			return nil, pointErr
		}
		arrivalPoint = &point
	}

	payment, err := paymentToDomain(dto)
	if err != nil {
		return nil, err
	}

	confirmation := delivery.RestoreConfirmation(
		dto.RecipientName,
		dto.RecipientPhone,
		dto.SignatureURI,
		dto.PhotoURI,
		dto.ConfirmationNotes,
		dto.ConfirmedAt,
	)

	override, err := overrideToDomain(dto)
	if err != nil {
		return nil, err
	}

	skip, err := skipToDomain(dto)
	if err != nil {
		return nil, err
	}

	items := make([]delivery.LineItem, 0, len(dto.LineItems))
	for _, itemDTO := range dto.LineItems {
		item, itemErr := lineItemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return delivery.RestoreDelivery(
		id,
		dto.Code,
		routeID,
		courierID,
		shopID,
		dto.SequenceNumber,
		status,
		dto.CanProceed,
		previousID,
		destination,
		arrivalPoint,
		dto.ArrivalDistanceKm,
		dto.DepartedAt,
		dto.ArrivedAt,
		dto.CompletedAt,
		dto.ActualDurationMins,
		payment,
		confirmation,
		override,
		skip,
		items,
		dto.Version,
	)
}

func paymentToDomain(dto DeliveryDTO) (delivery.Payment, error) {
	method, err := delivery.PaymentMethodFromString(dto.PaymentMethod)
	if err != nil {
		return delivery.Payment{}, err
	}
	status, err := delivery.PaymentStatusFromString(dto.PaymentStatus)
	if err != nil {
		return delivery.Payment{}, err
	}
	return delivery.RestorePayment(
		method, dto.AmountToCollect, dto.AmountCollected, status, dto.ExternalRef, dto.CollectedAt)
}

func overrideToDomain(dto DeliveryDTO) (delivery.AdminOverride, error) {
	var actorID *kernel.UUID
	if dto.OverrideActor != nil {
		actor, err := kernel.UUIDFromBytes((*dto.OverrideActor)[:])
		if err != nil {
			return delivery.AdminOverride{}, err
		}
		actorID = &actor
	}
	return delivery.RestoreAdminOverride(dto.IsOverridden, dto.OverrideReason, actorID, dto.OverriddenAt), nil
}

func skipToDomain(dto DeliveryDTO) (delivery.SkipRequest, error) {
	skipStatus, err := delivery.SkipStatusFromString(dto.SkipStatus)
	if err != nil {
		return delivery.SkipRequest{}, err
	}

	reason := delivery.SkipReasonUnknown
	if dto.SkipRequested {
		reason, err = delivery.SkipReasonFromString(dto.SkipReason)
		if err != nil {
			return delivery.SkipRequest{}, err
		}
	}

	var resolverID *kernel.UUID
	if dto.SkipResolverID != nil {
		resolver, resolverErr := kernel.UUIDFromBytes((*dto.SkipResolverID)[:])
		if resolverErr != nil {
			return delivery.SkipRequest{}, resolverErr
		}
		resolverID = &resolver
	}

	return delivery.RestoreSkipRequest(
		dto.SkipRequested,
		reason,
		dto.SkipNotes,
		dto.SkipPhotoURI,
		skipStatus,
		resolverID,
		dto.SkipResolvedAt,
		dto.SkipResolutionNotes,
	), nil
}

func lineItemToDomain(dto LineItemDTO) (delivery.LineItem, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return delivery.LineItem{}, err
	}
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return delivery.LineItem{}, err
	}
	return delivery.RestoreLineItem(id, productID, dto.Name, dto.Quantity, dto.UnitPrice, dto.Delivered), nil
}
