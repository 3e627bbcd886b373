package ledger

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// StockEntryType classifies a stock movement.
type StockEntryType string

const (
	// StockEntryDeliveredIn records goods received by a shop on completion.
	StockEntryDeliveredIn StockEntryType = "delivered_in"
	// StockEntryReturnedOut records goods taken back from a shop.
	StockEntryReturnedOut StockEntryType = "returned_out"
)

// Validate checks the entry type against the closed set.
func (t StockEntryType) Validate() error {
	switch t {
	case StockEntryDeliveredIn, StockEntryReturnedOut:
		return nil
	}
	return errs.NewValueIsInvalidError("stockEntryType")
}

func (t StockEntryType) String() string { return string(t) }

// StockEntry is one immutable stock movement for a shop, written per line
// item when a stop completes.
type StockEntry struct {
	id         kernel.UUID
	shopID     kernel.UUID
	deliveryID kernel.UUID
	productID  kernel.UUID
	entryType  StockEntryType
	quantity   int
	createdAt  time.Time
}

// NewStockEntry creates an immutable stock movement with a positive quantity.
func NewStockEntry(
	id kernel.UUID,
	shopID kernel.UUID,
	deliveryID kernel.UUID,
	productID kernel.UUID,
	entryType StockEntryType,
	quantity int,
	createdAt time.Time,
) (StockEntry, error) {
	if err := id.Validate(); err != nil {
		return StockEntry{}, err
	}
	if err := shopID.Validate(); err != nil {
		return StockEntry{}, err
	}
	if err := deliveryID.Validate(); err != nil {
		return StockEntry{}, err
	}
	if err := productID.Validate(); err != nil {
		return StockEntry{}, err
	}
	if err := entryType.Validate(); err != nil {
		return StockEntry{}, err
	}
	if quantity < 1 {
		return StockEntry{}, errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}

	return StockEntry{
		id:         id,
		shopID:     shopID,
		deliveryID: deliveryID,
		productID:  productID,
		entryType:  entryType,
		quantity:   quantity,
		createdAt:  createdAt,
	}, nil
}

// RestoreStockEntry reconstructs a stock movement from persistent storage.
func RestoreStockEntry(
	id kernel.UUID,
	shopID kernel.UUID,
	deliveryID kernel.UUID,
	productID kernel.UUID,
	entryType StockEntryType,
	quantity int,
	createdAt time.Time,
) StockEntry {
	return StockEntry{
		id:         id,
		shopID:     shopID,
		deliveryID: deliveryID,
		productID:  productID,
		entryType:  entryType,
		quantity:   quantity,
		createdAt:  createdAt,
	}
}

// ID returns the entry's unique identifier.
func (e StockEntry) ID() kernel.UUID { return e.id }

// ShopID returns the receiving shop's identifier.
func (e StockEntry) ShopID() kernel.UUID { return e.shopID }

// DeliveryID returns the originating stop's identifier.
func (e StockEntry) DeliveryID() kernel.UUID { return e.deliveryID }

// ProductID returns the moved product's identifier.
func (e StockEntry) ProductID() kernel.UUID { return e.productID }

// EntryType returns the movement classification.
func (e StockEntry) EntryType() StockEntryType { return e.entryType }

// Quantity returns the moved quantity.
func (e StockEntry) Quantity() int { return e.quantity }

// CreatedAt returns when the movement was recorded.
func (e StockEntry) CreatedAt() time.Time { return e.createdAt }
