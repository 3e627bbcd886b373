package ledger

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// WalletEntryType classifies a courier wallet movement.
type WalletEntryType string

const (
	// WalletEntryCredit records cash or mobile money collected at a stop.
	WalletEntryCredit WalletEntryType = "credit"
	// WalletEntryDebit records a settlement or deduction against the courier.
	WalletEntryDebit WalletEntryType = "debit"
	// WalletEntrySkipAdjustment is a zero-amount marker written when a stop is
	// skipped, so the audit trail shows the stop's amount was never collected.
	WalletEntrySkipAdjustment WalletEntryType = "skip_adjustment"
)

// Validate checks the entry type against the closed set.
func (t WalletEntryType) Validate() error {
	switch t {
	case WalletEntryCredit, WalletEntryDebit, WalletEntrySkipAdjustment:
		return nil
	}
	return errs.NewValueIsInvalidError("walletEntryType")
}

func (t WalletEntryType) String() string { return string(t) }

// WalletEntry is one immutable movement on a courier's wallet. BalanceAfter
// snapshots the running balance so the wallet can be read without replaying
// the full history.
type WalletEntry struct {
	id           kernel.UUID
	courierID    kernel.UUID
	deliveryID   *kernel.UUID
	entryType    WalletEntryType
	amount       float64
	balanceAfter float64
	description  string
	createdAt    time.Time
}

// NewWalletEntry creates an immutable wallet movement. Credit and debit
// entries must carry a positive amount; skip adjustments must carry zero.
func NewWalletEntry(
	id kernel.UUID,
	courierID kernel.UUID,
	deliveryID *kernel.UUID,
	entryType WalletEntryType,
	amount float64,
	balanceAfter float64,
	description string,
	createdAt time.Time,
) (WalletEntry, error) {
	if err := id.Validate(); err != nil {
		return WalletEntry{}, err
	}
	if err := courierID.Validate(); err != nil {
		return WalletEntry{}, err
	}
	if err := entryType.Validate(); err != nil {
		return WalletEntry{}, err
	}
	if deliveryID != nil {
		if err := deliveryID.Validate(); err != nil {
			return WalletEntry{}, err
		}
	}

	switch entryType {
	case WalletEntrySkipAdjustment:
		if amount != 0 {
			return WalletEntry{}, errs.NewValueIsInvalidError("skip adjustment amount must be zero")
		}
	default:
		if amount <= 0 {
			return WalletEntry{}, errs.NewValueIsOutOfRangeError("amount", amount, 0, "unbounded")
		}
	}

	return WalletEntry{
		id:           id,
		courierID:    courierID,
		deliveryID:   deliveryID,
		entryType:    entryType,
		amount:       amount,
		balanceAfter: balanceAfter,
		description:  description,
		createdAt:    createdAt,
	}, nil
}

// RestoreWalletEntry reconstructs a wallet movement from persistent storage.
func RestoreWalletEntry(
	id kernel.UUID,
	courierID kernel.UUID,
	deliveryID *kernel.UUID,
	entryType WalletEntryType,
	amount float64,
	balanceAfter float64,
	description string,
	createdAt time.Time,
) WalletEntry {
	return WalletEntry{
		id:           id,
		courierID:    courierID,
		deliveryID:   deliveryID,
		entryType:    entryType,
		amount:       amount,
		balanceAfter: balanceAfter,
		description:  description,
		createdAt:    createdAt,
	}
}

// ID returns the entry's unique identifier.
func (e WalletEntry) ID() kernel.UUID { return e.id }

// CourierID returns the wallet owner's identifier.
func (e WalletEntry) CourierID() kernel.UUID { return e.courierID }

// DeliveryID returns the originating stop's identifier, or nil for manual
// settlements.
func (e WalletEntry) DeliveryID() *kernel.UUID { return e.deliveryID }

// EntryType returns the movement classification.
func (e WalletEntry) EntryType() WalletEntryType { return e.entryType }

// Amount returns the movement's absolute amount.
func (e WalletEntry) Amount() float64 { return e.amount }

// BalanceAfter returns the running balance snapshot after this movement.
func (e WalletEntry) BalanceAfter() float64 { return e.balanceAfter }

// Description returns the free-text audit note.
func (e WalletEntry) Description() string { return e.description }

// CreatedAt returns when the movement was recorded.
func (e WalletEntry) CreatedAt() time.Time { return e.createdAt }
