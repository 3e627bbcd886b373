// Package ledgerrepo provides data transfer objects and mapping functions for
// the append-only wallet and stock ledgers. Entries are written once on stop
// completion and never updated.
package ledgerrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/ledger"

	"github.com/google/uuid"
)

// WalletEntryDTO represents one courier wallet movement.
type WalletEntryDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CourierID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	DeliveryID   *uuid.UUID `gorm:"type:uuid;index"`
	EntryType    string     `gorm:"type:varchar(32);not null"`
	Amount       float64    `gorm:"type:double precision;not null"`
	BalanceAfter float64    `gorm:"type:double precision;not null"`
	Description  string     `gorm:"type:text"`
	CreatedAt    time.Time  `gorm:"not null;index"`
}

// TableName overrides GORM's default naming to use "wallet_entries".
func (WalletEntryDTO) TableName() string {
	return "wallet_entries"
}

// StockEntryDTO represents one shop stock movement.
type StockEntryDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ShopID     uuid.UUID `gorm:"type:uuid;not null;index"`
	DeliveryID uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID  uuid.UUID `gorm:"type:uuid;not null"`
	EntryType  string    `gorm:"type:varchar(32);not null"`
	Quantity   int       `gorm:"type:int;not null"`
	CreatedAt  time.Time `gorm:"not null;index"`
}

// TableName overrides GORM's default naming to use "stock_entries".
func (StockEntryDTO) TableName() string {
	return "stock_entries"
}

func walletFromDomain(entry ledger.WalletEntry) WalletEntryDTO {
	var deliveryID *uuid.UUID
	if entry.DeliveryID() != nil {
		raw := entry.DeliveryID().Bytes()
		deliveryID = &raw
	}

	return WalletEntryDTO{
		ID:           entry.ID().Bytes(),
		CourierID:    entry.CourierID().Bytes(),
		DeliveryID:   deliveryID,
		EntryType:    entry.EntryType().String(),
		Amount:       entry.Amount(),
		BalanceAfter: entry.BalanceAfter(),
		Description:  entry.Description(),
		CreatedAt:    entry.CreatedAt(),
	}
}

func walletToDomain(dto WalletEntryDTO) (ledger.WalletEntry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ledger.WalletEntry{}, err
	}
	courierID, err := kernel.UUIDFromBytes(dto.CourierID[:])
	if err != nil {
		return ledger.WalletEntry{}, err
	}

	var deliveryID *kernel.UUID
	if dto.DeliveryID != nil {
		delivery, deliveryErr := kernel.UUIDFromBytes((*dto.DeliveryID)[:])
		if deliveryErr != nil {
			return ledger.WalletEntry{}, deliveryErr
		}
		deliveryID = &delivery
	}

	return ledger.RestoreWalletEntry(
		id,
		courierID,
		deliveryID,
		ledger.WalletEntryType(dto.EntryType),
		dto.Amount,
		dto.BalanceAfter,
		dto.Description,
		dto.CreatedAt,
	), nil
}

func stockFromDomain(entry ledger.StockEntry) StockEntryDTO {
	return StockEntryDTO{
		ID:         entry.ID().Bytes(),
		ShopID:     entry.ShopID().Bytes(),
		DeliveryID: entry.DeliveryID().Bytes(),
		ProductID:  entry.ProductID().Bytes(),
		EntryType:  entry.EntryType().String(),
		Quantity:   entry.Quantity(),
		CreatedAt:  entry.CreatedAt(),
	}
}

func stockToDomain(dto StockEntryDTO) (ledger.StockEntry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ledger.StockEntry{}, err
	}
	shopID, err := kernel.UUIDFromBytes(dto.ShopID[:])
	if err != nil {
		return ledger.StockEntry{}, err
	}
	deliveryID, err := kernel.UUIDFromBytes(dto.DeliveryID[:])
	if err != nil {
		return ledger.StockEntry{}, err
	}
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return ledger.StockEntry{}, err
	}

	return ledger.RestoreStockEntry(
		id,
		shopID,
		deliveryID,
		productID,
		ledger.StockEntryType(dto.EntryType),
		dto.Quantity,
		dto.CreatedAt,
	), nil
}
