package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetWalletQueryIsNotConstructed = errors.New(
	"GetWalletQuery must be created via NewGetWalletQuery constructor",
)

// GetWalletQuery retrieves a courier's wallet: the current balance and the
// movement history, newest first. This backs the cash reconciliation view.
type GetWalletQuery struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetWalletQuery creates a query for a courier's wallet.
func NewGetWalletQuery(courierID kernel.UUID) (GetWalletQuery, error) {
	query := GetWalletQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setCourierID(courierID); err != nil {
		return GetWalletQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetWalletQuery) Validate() error {
	return q.guard.Validate(ErrGetWalletQueryIsNotConstructed)
}

// CourierID returns the courier whose wallet is requested.
func (q GetWalletQuery) CourierID() kernel.UUID { return q.courierID }

func (q *GetWalletQuery) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	q.courierID = courierID
	return nil
}

// WalletEntryResponse is one wallet movement.
type WalletEntryResponse struct {
	ID           kernel.UUID
	DeliveryID   *kernel.UUID
	EntryType    string
	Amount       float64
	BalanceAfter float64
	Description  string
	CreatedAt    time.Time
}

// GetWalletQueryResponse is a courier's balance and movement history.
// A courier with no movements has a zero balance and an empty history.
type GetWalletQueryResponse struct {
	CourierID kernel.UUID
	Balance   float64
	Entries   []WalletEntryResponse
}
