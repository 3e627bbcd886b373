package ledgerrepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/ledger"

	"gorm.io/gorm"
)

// GormWalletRepository implements WalletRepository using GORM. The wallet is
// append-only; the balance is read off the newest entry's snapshot rather
// than summed.
type GormWalletRepository struct {
	db *gorm.DB
}

// NewGormWalletRepository creates a new GORM wallet repository.
func NewGormWalletRepository(db *gorm.DB) *GormWalletRepository {
	return &GormWalletRepository{db: db}
}

// Add appends a wallet movement.
func (r *GormWalletRepository) Add(ctx context.Context, entry ledger.WalletEntry) error {
	dto := walletFromDomain(entry)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetBalance returns the courier's current balance from the newest entry.
// A courier without entries has a zero balance.
func (r *GormWalletRepository) GetBalance(ctx context.Context, courierID kernel.UUID) (float64, error) {
	if err := courierID.Validate(); err != nil {
		return 0, err
	}

	var dto WalletEntryDTO
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		First(&dto, "courier_id = ?", courierID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}

	return dto.BalanceAfter, nil
}

// GetByCourier retrieves the courier's wallet movements, newest first.
func (r *GormWalletRepository) GetByCourier(
	ctx context.Context, courierID kernel.UUID,
) ([]ledger.WalletEntry, error) {
	if err := courierID.Validate(); err != nil {
		return nil, err
	}

	var dtos []WalletEntryDTO
	if err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&dtos, "courier_id = ?", courierID.Bytes()).Error; err != nil {
		return nil, err
	}

	entries := make([]ledger.WalletEntry, 0, len(dtos))
	for _, dto := range dtos {
		entry, err := walletToDomain(dto)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// GormStockRepository implements StockRepository using GORM.
type GormStockRepository struct {
	db *gorm.DB
}

// NewGormStockRepository creates a new GORM stock repository.
func NewGormStockRepository(db *gorm.DB) *GormStockRepository {
	return &GormStockRepository{db: db}
}

// Add appends a stock movement.
func (r *GormStockRepository) Add(ctx context.Context, entry ledger.StockEntry) error {
	dto := stockFromDomain(entry)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetByShop retrieves a shop's stock movements, newest first.
func (r *GormStockRepository) GetByShop(
	ctx context.Context, shopID kernel.UUID,
) ([]ledger.StockEntry, error) {
	if err := shopID.Validate(); err != nil {
		return nil, err
	}

	var dtos []StockEntryDTO
	if err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&dtos, "shop_id = ?", shopID.Bytes()).Error; err != nil {
		return nil, err
	}

	entries := make([]ledger.StockEntry, 0, len(dtos))
	for _, dto := range dtos {
		entry, err := stockToDomain(dto)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
