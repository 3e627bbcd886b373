package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/ledger"
)

// WalletRepository defines the persistence contract for the append-only
// courier wallet. Entries are immutable once written.
type WalletRepository interface {
	// Add appends a wallet movement.
	Add(ctx context.Context, entry ledger.WalletEntry) error

	// GetBalance returns the courier's current balance, taken from the
	// newest entry's balance snapshot. A courier without entries has a zero
	// balance.
	GetBalance(ctx context.Context, courierID kernel.UUID) (float64, error)

	// GetByCourier retrieves the courier's wallet movements, newest first.
	GetByCourier(ctx context.Context, courierID kernel.UUID) ([]ledger.WalletEntry, error)
}

// StockRepository defines the persistence contract for the append-only stock
// ledger written on stop completion.
type StockRepository interface {
	// Add appends a stock movement.
	Add(ctx context.Context, entry ledger.StockEntry) error

	// GetByShop retrieves a shop's stock movements, newest first.
	GetByShop(ctx context.Context, shopID kernel.UUID) ([]ledger.StockEntry, error)
}
