package ledger_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/ledger"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWalletEntry(t *testing.T) {
	courierID := kernel.NewUUID()
	deliveryID := kernel.NewUUID()

	t.Run("credit with positive amount", func(t *testing.T) {
		entry, err := ledger.NewWalletEntry(
			kernel.NewUUID(), courierID, &deliveryID,
			ledger.WalletEntryCredit, 1250.00, 3250.00, "cash collected at DL-003", time.Now(),
		)

		require.NoError(t, err)
		assert.Equal(t, ledger.WalletEntryCredit, entry.EntryType())
		assert.Equal(t, 1250.00, entry.Amount())
		assert.Equal(t, 3250.00, entry.BalanceAfter())
	})

	t.Run("credit with zero amount is rejected", func(t *testing.T) {
		_, err := ledger.NewWalletEntry(
			kernel.NewUUID(), courierID, &deliveryID,
			ledger.WalletEntryCredit, 0, 0, "", time.Now(),
		)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("skip adjustment must carry zero amount", func(t *testing.T) {
		entry, err := ledger.NewWalletEntry(
			kernel.NewUUID(), courierID, &deliveryID,
			ledger.WalletEntrySkipAdjustment, 0, 2000.00, "stop skipped, amount never collected", time.Now(),
		)

		require.NoError(t, err)
		assert.Equal(t, 0.0, entry.Amount())

		_, err = ledger.NewWalletEntry(
			kernel.NewUUID(), courierID, &deliveryID,
			ledger.WalletEntrySkipAdjustment, 50.0, 2000.00, "", time.Now(),
		)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("unknown entry type is rejected", func(t *testing.T) {
		_, err := ledger.NewWalletEntry(
			kernel.NewUUID(), courierID, nil,
			ledger.WalletEntryType("refund"), 10, 10, "", time.Now(),
		)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestNewStockEntry(t *testing.T) {
	t.Run("delivered-in entry", func(t *testing.T) {
		entry, err := ledger.NewStockEntry(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			ledger.StockEntryDeliveredIn, 12, time.Now(),
		)

		require.NoError(t, err)
		assert.Equal(t, ledger.StockEntryDeliveredIn, entry.EntryType())
		assert.Equal(t, 12, entry.Quantity())
	})

	t.Run("non-positive quantity is rejected", func(t *testing.T) {
		_, err := ledger.NewStockEntry(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			ledger.StockEntryDeliveredIn, 0, time.Now(),
		)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}
