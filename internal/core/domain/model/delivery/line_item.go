package delivery

import (
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// LineItem is one product position of the order carried to a stop.
// Completion marks every line item delivered and posts one stock-ledger
// consumption entry per item.
type LineItem struct {
	id        kernel.UUID
	productID kernel.UUID
	name      string
	quantity  int
	unitPrice float64
	delivered bool
}

// NewLineItem creates a line item for a stop's order.
// Quantity must be positive and unit price non-negative.
func NewLineItem(
	id kernel.UUID, productID kernel.UUID, name string, quantity int, unitPrice float64,
) (LineItem, error) {
	if err := id.Validate(); err != nil {
		return LineItem{}, err
	}
	if err := productID.Validate(); err != nil {
		return LineItem{}, err
	}
	if name == "" {
		return LineItem{}, errs.NewValueIsRequiredError("name")
	}
	if quantity <= 0 {
		return LineItem{}, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	if unitPrice < 0 {
		return LineItem{}, errs.NewValueIsInvalidErrorWithCause("unitPrice",
			fmt.Errorf("%f is negative", unitPrice))
	}

	return LineItem{
		id:        id,
		productID: productID,
		name:      name,
		quantity:  quantity,
		unitPrice: unitPrice,
	}, nil
}

// RestoreLineItem reconstructs a line item from persistent storage.
func RestoreLineItem(
	id kernel.UUID, productID kernel.UUID, name string, quantity int, unitPrice float64, delivered bool,
) LineItem {
	return LineItem{
		id:        id,
		productID: productID,
		name:      name,
		quantity:  quantity,
		unitPrice: unitPrice,
		delivered: delivered,
	}
}

// ID returns the line item's identifier.
func (l LineItem) ID() kernel.UUID { return l.id }

// ProductID returns the delivered product's identifier.
func (l LineItem) ProductID() kernel.UUID { return l.productID }

// Name returns the product name.
func (l LineItem) Name() string { return l.name }

// Quantity returns the ordered quantity.
func (l LineItem) Quantity() int { return l.quantity }

// UnitPrice returns the price per unit.
func (l LineItem) UnitPrice() float64 { return l.unitPrice }

// Delivered reports whether the item was handed over.
func (l LineItem) Delivered() bool { return l.delivered }

// Total returns quantity times unit price.
func (l LineItem) Total() float64 {
	return float64(l.quantity) * l.unitPrice
}
