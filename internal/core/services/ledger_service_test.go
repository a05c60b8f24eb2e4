package services_test

import (
	"context"
	"testing"

	"github.com/coopec-dev/coopec_backend/internal/apperrors"
	"github.com/coopec-dev/coopec_backend/internal/core/domain"
	portssvc "github.com/coopec-dev/coopec_backend/internal/core/ports/services"
	"github.com/coopec-dev/coopec_backend/internal/core/services"
	"github.com/coopec-dev/coopec_backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	mockAccounts *MockAccountRepository
	mockLedger   *MockLedgerRepository
	service      portssvc.DepositSvcFacade
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockAccounts = new(MockAccountRepository)
	suite.mockLedger = new(MockLedgerRepository)
	suite.service = services.NewLedgerService(suite.mockAccounts, suite.mockLedger)
}

func (suite *LedgerServiceTestSuite) TestCreateDeposit_Success() {
	ctx := context.Background()
	d := decimal.RequireFromString
	account := &domain.Account{AccountNumber: "M-0042", Kind: domain.KindMember}

	suite.mockAccounts.On("FindAccountByNumber", mock.Anything, "M-0042").Return(account, nil).Once()
	suite.mockLedger.On("SaveEntry", mock.Anything, mock.MatchedBy(func(e domain.LedgerEntry) bool {
		return e.OperationType == domain.Deposit && e.Amount.Equal(d("25000")) && e.Fee.IsZero()
	})).Return(nil).Once()

	entry, err := suite.service.CreateDeposit(ctx, dto.CreateDepositRequest{
		AccountNumber: "M-0042",
		Currency:      "FC",
		Amount:        d("25000"),
	}, "teller-1")

	suite.Require().NoError(err)
	suite.NotEmpty(entry.EntryID)
	suite.Equal(domain.CurrencyFC, entry.Currency)
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestCreateDeposit_UnknownAccount() {
	ctx := context.Background()
	suite.mockAccounts.On("FindAccountByNumber", mock.Anything, "missing").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateDeposit(ctx, dto.CreateDepositRequest{
		AccountNumber: "missing",
		Currency:      "FC",
		Amount:        decimal.RequireFromString("100"),
	}, "teller-1")

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
	suite.mockLedger.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestCreateDeposit_NonPositiveAmount() {
	_, err := suite.service.CreateDeposit(context.Background(), dto.CreateDepositRequest{
		AccountNumber: "M-0042",
		Currency:      "FC",
		Amount:        decimal.Zero,
	}, "teller-1")

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestCreateDeposit_InvalidCurrency() {
	_, err := suite.service.CreateDeposit(context.Background(), dto.CreateDepositRequest{
		AccountNumber: "M-0042",
		Currency:      "EUR",
		Amount:        decimal.RequireFromString("100"),
	}, "teller-1")

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestListEntries_ClampsPagination() {
	ctx := context.Background()
	account := &domain.Account{AccountNumber: "M-0042", Kind: domain.KindMember}
	suite.mockAccounts.On("FindAccountByNumber", mock.Anything, "M-0042").Return(account, nil).Once()
	suite.mockLedger.On("ListEntriesByAccount", mock.Anything, "M-0042", domain.CurrencyFC, 50, 0).Return([]domain.LedgerEntry{}, nil).Once()

	_, err := suite.service.ListEntries(ctx, "M-0042", domain.CurrencyFC, 1000, -5)

	suite.Require().NoError(err)
	suite.mockLedger.AssertExpectations(suite.T())
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
