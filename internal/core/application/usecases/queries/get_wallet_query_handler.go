package queries

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetWalletQueryHandler reads a courier's wallet movements from the
// append-only ledger. The balance is the newest entry's snapshot.
type GetWalletQueryHandler struct {
	db *gorm.DB
}

// NewGetWalletQueryHandler creates a handler for wallet queries.
func NewGetWalletQueryHandler(db *gorm.DB) GetWalletQueryHandler {
	return GetWalletQueryHandler{db: db}
}

// Handle executes the query.
func (h GetWalletQueryHandler) Handle(
	ctx context.Context,
	query GetWalletQuery,
) (GetWalletQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetWalletQueryResponse{}, err
	}

	response := GetWalletQueryResponse{
		CourierID: query.CourierID(),
		Entries:   make([]WalletEntryResponse, 0),
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			delivery_id,
			entry_type,
			amount,
			balance_after,
			description,
			created_at
		FROM wallet_entries
		WHERE courier_id = ?
		ORDER BY created_at DESC, id
	`, query.CourierID().Bytes()).Rows()
	if err != nil {
		return GetWalletQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var entry WalletEntryResponse
		var id uuid.UUID
		var deliveryID *uuid.UUID

		err = rows.Scan(
			&id,
			&deliveryID,
			&entry.EntryType,
			&entry.Amount,
			&entry.BalanceAfter,
			&entry.Description,
			&entry.CreatedAt,
		)
		if err != nil {
			return GetWalletQueryResponse{}, err
		}

		if entry.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return GetWalletQueryResponse{}, err
		}
		if deliveryID != nil {
			ref, idErr := kernel.UUIDFromBytes(deliveryID[:])
			if idErr != nil {
				return GetWalletQueryResponse{}, idErr
			}
			entry.DeliveryID = &ref
		}

		response.Entries = append(response.Entries, entry)
	}

	if err = rows.Err(); err != nil {
		return GetWalletQueryResponse{}, err
	}

	if len(response.Entries) > 0 {
		response.Balance = response.Entries[0].BalanceAfter
	}

	return response, nil
}
