package ledgerrepo_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/ledgerrepo"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/ledger"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// LedgerRepositoryIntegrationTestSuite verifies the append-only wallet and
// stock ledgers against a real PostgreSQL instance.
type LedgerRepositoryIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	wallet    *ledgerrepo.GormWalletRepository
	stock     *ledgerrepo.GormStockRepository
}

func (suite *LedgerRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&ledgerrepo.WalletEntryDTO{},
		&ledgerrepo.StockEntryDTO{},
	))
}

func (suite *LedgerRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE wallet_entries, stock_entries").Error)

	suite.wallet = ledgerrepo.NewGormWalletRepository(suite.db)
	suite.stock = ledgerrepo.NewGormStockRepository(suite.db)
}

func (suite *LedgerRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *LedgerRepositoryIntegrationTestSuite) TestGetBalance_NoEntries_ReturnsZero() {
	balance, err := suite.wallet.GetBalance(context.Background(), kernel.NewUUID())
	suite.Require().NoError(err)
	suite.Zero(balance)
}

func (suite *LedgerRepositoryIntegrationTestSuite) TestGetBalance_ReadsNewestSnapshot() {
	ctx := context.Background()
	courierID := kernel.NewUUID()

	base := time.Now().Add(-time.Hour)
	suite.addWalletEntry(ctx, courierID, ledger.WalletEntryCredit, 500, 500, base)
	suite.addWalletEntry(ctx, courierID, ledger.WalletEntryCredit, 750, 1250, base.Add(10*time.Minute))
	suite.addWalletEntry(ctx, courierID, ledger.WalletEntryDebit, 1000, 250, base.Add(20*time.Minute))

	balance, err := suite.wallet.GetBalance(ctx, courierID)
	suite.Require().NoError(err)
	suite.InDelta(250, balance, 1e-9)
}

func (suite *LedgerRepositoryIntegrationTestSuite) TestGetByCourier_NewestFirst_OwnEntriesOnly() {
	ctx := context.Background()
	courierID := kernel.NewUUID()
	otherID := kernel.NewUUID()

	base := time.Now().Add(-time.Hour)
	suite.addWalletEntry(ctx, courierID, ledger.WalletEntryCredit, 500, 500, base)
	suite.addWalletEntry(ctx, courierID, ledger.WalletEntryCredit, 750, 1250, base.Add(10*time.Minute))
	suite.addWalletEntry(ctx, otherID, ledger.WalletEntryCredit, 300, 300, base.Add(5*time.Minute))

	entries, err := suite.wallet.GetByCourier(ctx, courierID)
	suite.Require().NoError(err)

	suite.Require().Len(entries, 2)
	suite.InDelta(750, entries[0].Amount(), 1e-9)
	suite.InDelta(500, entries[1].Amount(), 1e-9)
}

func (suite *LedgerRepositoryIntegrationTestSuite) TestStockGetByShop_NewestFirst() {
	ctx := context.Background()
	shopID := kernel.NewUUID()

	base := time.Now().Add(-time.Hour)
	suite.addStockEntry(ctx, shopID, 2, base)
	suite.addStockEntry(ctx, shopID, 5, base.Add(10*time.Minute))
	suite.addStockEntry(ctx, kernel.NewUUID(), 9, base)

	entries, err := suite.stock.GetByShop(ctx, shopID)
	suite.Require().NoError(err)

	suite.Require().Len(entries, 2)
	suite.Equal(5, entries[0].Quantity())
	suite.Equal(2, entries[1].Quantity())
}

func (suite *LedgerRepositoryIntegrationTestSuite) addWalletEntry(
	ctx context.Context,
	courierID kernel.UUID,
	entryType ledger.WalletEntryType,
	amount, balanceAfter float64,
	createdAt time.Time,
) {
	deliveryID := kernel.NewUUID()
	entry, err := ledger.NewWalletEntry(
		kernel.NewUUID(), courierID, &deliveryID, entryType, amount, balanceAfter,
		"test entry", createdAt)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.wallet.Add(ctx, entry))
}

func (suite *LedgerRepositoryIntegrationTestSuite) addStockEntry(
	ctx context.Context, shopID kernel.UUID, quantity int, createdAt time.Time,
) {
	entry, err := ledger.NewStockEntry(
		kernel.NewUUID(), shopID, kernel.NewUUID(), kernel.NewUUID(),
		ledger.StockEntryDeliveredIn, quantity, createdAt)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.stock.Add(ctx, entry))
}

func TestLedgerRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerRepositoryIntegrationTestSuite))
}
