package loyaltyrepo_test

import (
	"context"
	"testing"

	"ordering/internal/adapters/out/postgres/loyaltyrepo"
	"ordering/internal/adapters/out/postgres/testdb"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/loyalty"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

type LoyaltyRepositoryTestSuite struct {
	suite.Suite
	db         *gorm.DB
	tracker    *MockAggregateTracker
	repository *loyaltyrepo.GormLoyaltyRepository
	memberID   kernel.UUID
}

func (suite *LoyaltyRepositoryTestSuite) SetupTest() {
	suite.db = testdb.SQLite(suite.T())
	suite.tracker = new(MockAggregateTracker)
	suite.repository = loyaltyrepo.NewGormLoyaltyRepository(suite.db, suite.tracker)
	suite.memberID = kernel.NewUUID()
}

func (suite *LoyaltyRepositoryTestSuite) TestGetOrCreateForUpdate_CreatesOnce() {
	ctx := context.Background()

	first, err := suite.repository.GetOrCreateForUpdate(ctx, suite.memberID)
	suite.Require().NoError(err)
	suite.Equal(0, first.Balance())
	suite.Equal(0, first.Version())

	second, err := suite.repository.GetOrCreateForUpdate(ctx, suite.memberID)
	suite.Require().NoError(err)
	suite.Equal(first.ID(), second.ID())

	var count int64
	suite.Require().NoError(suite.db.Model(&loyaltyrepo.AccountDTO{}).Count(&count).Error)
	suite.Equal(int64(1), count)
	suite.tracker.AssertNotCalled(suite.T(), "TrackAggregate", mock.Anything, mock.Anything)
}

func (suite *LoyaltyRepositoryTestSuite) TestSave_WritesTotalsAndLedger() {
	ctx := context.Background()
	orderID := kernel.NewUUID()

	account, err := suite.repository.GetOrCreateForUpdate(ctx, suite.memberID)
	suite.Require().NoError(err)
	_, err = account.Accrue(640, orderID, "Order delivered")
	suite.Require().NoError(err)
	suite.tracker.On("TrackAggregate", account.ID(), account).Once()

	suite.Require().NoError(suite.repository.Save(ctx, account))
	suite.Equal(1, account.Version())
	suite.Empty(account.PendingTransactions())
	suite.tracker.AssertExpectations(suite.T())

	var row loyaltyrepo.AccountDTO
	suite.Require().NoError(suite.db.First(&row, "member_id = ?", suite.memberID.UUID()).Error)
	suite.Equal(640, row.TotalEarned)
	suite.Equal(640, row.CurrentBalance)

	var ledger []loyaltyrepo.TransactionDTO
	suite.Require().NoError(suite.db.Where("account_id = ?", account.ID().UUID()).Find(&ledger).Error)
	suite.Require().Len(ledger, 1)
	suite.Equal(640, ledger[0].Points)
	suite.Equal("accrual", ledger[0].Kind)
	suite.Require().NotNil(ledger[0].OrderID)
	suite.Equal(orderID.UUID(), *ledger[0].OrderID)
}

func (suite *LoyaltyRepositoryTestSuite) TestSave_StaleVersion_ReturnsVersionIsInvalid() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)

	first, err := suite.repository.GetOrCreateForUpdate(ctx, suite.memberID)
	suite.Require().NoError(err)
	second, err := suite.repository.GetOrCreateForUpdate(ctx, suite.memberID)
	suite.Require().NoError(err)

	_, err = first.Accrue(100, kernel.NewUUID(), "Order delivered")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Save(ctx, first))

	_, err = second.Accrue(200, kernel.NewUUID(), "Order delivered")
	suite.Require().NoError(err)
	suite.Require().ErrorIs(suite.repository.Save(ctx, second), errs.ErrVersionIsInvalid)

	reloaded, err := suite.repository.GetOrCreateForUpdate(ctx, suite.memberID)
	suite.Require().NoError(err)
	suite.Equal(100, reloaded.Balance())
}

func (suite *LoyaltyRepositoryTestSuite) TestGifts_ApplyAndRelease() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)

	account, err := suite.repository.GetOrCreateForUpdate(ctx, suite.memberID)
	suite.Require().NoError(err)
	_, err = account.Accrue(1200, kernel.NewUUID(), "Order delivered")
	suite.Require().NoError(err)
	_, _, err = account.ClaimGift(loyalty.FreeDelivery)
	suite.Require().NoError(err)
	_, _, err = account.ClaimGift(loyalty.TeaCups)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Save(ctx, account))

	gift, err := suite.repository.FindUnusedGift(ctx, account.ID(), loyalty.FreeDelivery)
	suite.Require().NoError(err)
	suite.Equal(loyalty.GiftCost, gift.PointsUsed())

	orderID := kernel.NewUUID()
	suite.Require().NoError(gift.ApplyTo(orderID))
	suite.Require().NoError(suite.repository.UpdateGift(ctx, gift))

	_, err = suite.repository.FindUnusedGift(ctx, account.ID(), loyalty.FreeDelivery)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	used, err := suite.repository.FindGiftUsedOnOrder(ctx, orderID)
	suite.Require().NoError(err)
	suite.Equal(gift.ID(), used.ID())

	suite.True(used.Release(orderID))
	suite.Require().NoError(suite.repository.UpdateGift(ctx, used))
	_, err = suite.repository.FindGiftUsedOnOrder(ctx, orderID)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	cups, err := suite.repository.FindUnusedGift(ctx, account.ID(), loyalty.TeaCups)
	suite.Require().NoError(err)
	suite.Nil(cups.UsedOnOrderID())
}

func TestLoyaltyRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(LoyaltyRepositoryTestSuite))
}
