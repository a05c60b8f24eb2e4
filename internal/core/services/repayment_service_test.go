package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/coopec-dev/coopec_backend/internal/apperrors"
	"github.com/coopec-dev/coopec_backend/internal/core/domain"
	portssvc "github.com/coopec-dev/coopec_backend/internal/core/ports/services"
	"github.com/coopec-dev/coopec_backend/internal/core/services"
	"github.com/coopec-dev/coopec_backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type RepaymentServiceTestSuite struct {
	suite.Suite
	mockAccounts   *MockAccountRepository
	mockCredits    *MockCreditRepository
	mockRepayments *MockRepaymentRepository
	mockLedger     *MockLedgerRepository
	service        portssvc.RepaymentSvcFacade
}

func (suite *RepaymentServiceTestSuite) SetupTest() {
	suite.mockAccounts = new(MockAccountRepository)
	suite.mockCredits = new(MockCreditRepository)
	suite.mockRepayments = new(MockRepaymentRepository)
	suite.mockLedger = new(MockLedgerRepository)
	suite.service = services.NewRepaymentService(suite.mockAccounts, suite.mockCredits, suite.mockRepayments, suite.mockLedger)
}

func (suite *RepaymentServiceTestSuite) activeCredit() *domain.Credit {
	d := decimal.RequireFromString
	return &domain.Credit{
		CreditID:        "credit-1",
		AccountNumber:   "M-0042",
		Principal:       d("1000000"),
		Currency:        domain.CurrencyFC,
		InterestRatePct: d("15"),
		DurationMonths:  12,
		Status:          domain.CreditActive,
		RepaidToDate:    decimal.Zero,
	}
}

func (suite *RepaymentServiceTestSuite) memberAccount() *domain.Account {
	return &domain.Account{
		AccountNumber: "M-0042",
		Kind:          domain.KindMember,
		Section:       "generale",
	}
}

func (suite *RepaymentServiceTestSuite) TestCreateRepayment_AllocatesTenFiveSplit() {
	ctx := context.Background()
	d := decimal.RequireFromString

	suite.mockRepayments.On("Begin", mock.Anything).Return(nil, nil).Once()
	suite.mockRepayments.On("Rollback", mock.Anything, mock.Anything).Return(nil).Maybe()
	suite.mockCredits.On("FindCreditForUpdate", mock.Anything, mock.Anything, "credit-1").Return(suite.activeCredit(), nil).Once()
	suite.mockAccounts.On("FindAccountByNumber", mock.Anything, "M-0042").Return(suite.memberAccount(), nil).Once()

	var savedEntries []domain.LedgerEntry
	var savedRepayment domain.Repayment
	suite.mockRepayments.On("SaveRepaymentInTx", mock.Anything, mock.Anything, mock.MatchedBy(func(r domain.Repayment) bool {
		savedRepayment = r
		return true
	})).Return(nil).Once()
	suite.mockLedger.On("SaveEntriesInTx", mock.Anything, mock.Anything, mock.MatchedBy(func(entries []domain.LedgerEntry) bool {
		savedEntries = entries
		return len(entries) == 3
	})).Return(nil).Once()
	suite.mockRepayments.On("SumRepaymentsByCreditInTx", mock.Anything, mock.Anything, "credit-1").Return(d("115000"), nil).Once()
	suite.mockCredits.On("UpdateCreditProgressInTx", mock.Anything, mock.Anything, "credit-1", d("115000"), domain.CreditActive, "teller-1", mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockRepayments.On("Commit", mock.Anything, mock.Anything).Return(nil).Once()

	date := time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)
	outcome, err := suite.service.CreateRepayment(ctx, dto.CreateRepaymentRequest{
		CreditID: "credit-1",
		Amount:   d("115000"),
		Currency: "FC",
		Date:     &date,
	}, "teller-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(outcome)
	suite.Equal(domain.CreditActive, outcome.Status)
	suite.True(outcome.RepaidToDate.Equal(d("115000")))
	suite.True(outcome.Remaining.Equal(d("1035000")))
	suite.Require().NotNil(outcome.Repayment)
	suite.Equal(savedRepayment.RepaymentID, outcome.Repayment.RepaymentID)

	// 115000 on a 1M credit at 15%: 100000 principal, 10000 institution
	// interest, 5000 member interest.
	suite.Require().Len(savedEntries, 3)
	principal, system, member := savedEntries[0], savedEntries[1], savedEntries[2]
	suite.Equal("COOP-G-2026-0000", principal.AccountNumber)
	suite.True(principal.Amount.Equal(d("100000")))
	suite.Equal("COOP-REVENUE-GLOBAL", system.AccountNumber)
	suite.True(system.Amount.Equal(d("10000")))
	suite.Equal("M-0042", member.AccountNumber)
	suite.True(member.Amount.Equal(d("5000")))
	for _, e := range savedEntries {
		suite.Equal(domain.Deposit, e.OperationType)
		suite.Equal(savedRepayment.RepaymentID, e.RepaymentID)
	}

	suite.mockRepayments.AssertExpectations(suite.T())
	suite.mockCredits.AssertExpectations(suite.T())
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *RepaymentServiceTestSuite) TestCreateRepayment_FullSettlementFlipsToRepaid() {
	ctx := context.Background()
	d := decimal.RequireFromString
	credit := suite.activeCredit()
	credit.RepaidToDate = d("1035000")

	suite.mockRepayments.On("Begin", mock.Anything).Return(nil, nil).Once()
	suite.mockRepayments.On("Rollback", mock.Anything, mock.Anything).Return(nil).Maybe()
	suite.mockCredits.On("FindCreditForUpdate", mock.Anything, mock.Anything, "credit-1").Return(credit, nil).Once()
	suite.mockAccounts.On("FindAccountByNumber", mock.Anything, "M-0042").Return(suite.memberAccount(), nil).Once()
	suite.mockRepayments.On("SaveRepaymentInTx", mock.Anything, mock.Anything, mock.AnythingOfType("domain.Repayment")).Return(nil).Once()
	suite.mockLedger.On("SaveEntriesInTx", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockRepayments.On("SumRepaymentsByCreditInTx", mock.Anything, mock.Anything, "credit-1").Return(d("1150000"), nil).Once()
	suite.mockCredits.On("UpdateCreditProgressInTx", mock.Anything, mock.Anything, "credit-1", d("1150000"), domain.CreditRepaid, "teller-1", mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockRepayments.On("Commit", mock.Anything, mock.Anything).Return(nil).Once()

	outcome, err := suite.service.CreateRepayment(ctx, dto.CreateRepaymentRequest{
		CreditID: "credit-1",
		Amount:   d("115000"),
		Currency: "FC",
	}, "teller-1")

	suite.Require().NoError(err)
	suite.Equal(domain.CreditRepaid, outcome.Status)
	suite.True(outcome.Remaining.IsZero())
}

func (suite *RepaymentServiceTestSuite) TestCreateRepayment_ZeroRateSkipsInterestEntries() {
	ctx := context.Background()
	d := decimal.RequireFromString
	credit := suite.activeCredit()
	credit.InterestRatePct = decimal.Zero

	suite.mockRepayments.On("Begin", mock.Anything).Return(nil, nil).Once()
	suite.mockRepayments.On("Rollback", mock.Anything, mock.Anything).Return(nil).Maybe()
	suite.mockCredits.On("FindCreditForUpdate", mock.Anything, mock.Anything, "credit-1").Return(credit, nil).Once()
	suite.mockAccounts.On("FindAccountByNumber", mock.Anything, "M-0042").Return(suite.memberAccount(), nil).Once()
	suite.mockRepayments.On("SaveRepaymentInTx", mock.Anything, mock.Anything, mock.AnythingOfType("domain.Repayment")).Return(nil).Once()

	var savedEntries []domain.LedgerEntry
	suite.mockLedger.On("SaveEntriesInTx", mock.Anything, mock.Anything, mock.MatchedBy(func(entries []domain.LedgerEntry) bool {
		savedEntries = entries
		return true
	})).Return(nil).Once()
	suite.mockRepayments.On("SumRepaymentsByCreditInTx", mock.Anything, mock.Anything, "credit-1").Return(d("50000"), nil).Once()
	suite.mockCredits.On("UpdateCreditProgressInTx", mock.Anything, mock.Anything, "credit-1", d("50000"), domain.CreditActive, "teller-1", mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockRepayments.On("Commit", mock.Anything, mock.Anything).Return(nil).Once()

	date := time.Date(2026, 5, 11, 0, 0, 0, 0, time.UTC)
	_, err := suite.service.CreateRepayment(ctx, dto.CreateRepaymentRequest{
		CreditID: "credit-1",
		Amount:   d("50000"),
		Currency: "FC",
		Date:     &date,
	}, "teller-1")

	suite.Require().NoError(err)
	suite.Require().Len(savedEntries, 1)
	suite.Equal("COOP-G-2026-0000", savedEntries[0].AccountNumber)
	suite.True(savedEntries[0].Amount.Equal(d("50000")))
}

func (suite *RepaymentServiceTestSuite) TestCreateRepayment_CurrencyMismatch() {
	ctx := context.Background()
	suite.mockRepayments.On("Begin", mock.Anything).Return(nil, nil).Once()
	suite.mockRepayments.On("Rollback", mock.Anything, mock.Anything).Return(nil).Maybe()
	suite.mockCredits.On("FindCreditForUpdate", mock.Anything, mock.Anything, "credit-1").Return(suite.activeCredit(), nil).Once()

	_, err := suite.service.CreateRepayment(ctx, dto.CreateRepaymentRequest{
		CreditID: "credit-1",
		Amount:   decimal.RequireFromString("100"),
		Currency: "USD",
	}, "teller-1")

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepayments.AssertNotCalled(suite.T(), "SaveRepaymentInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RepaymentServiceTestSuite) TestCreateRepayment_AlreadyRepaid() {
	ctx := context.Background()
	credit := suite.activeCredit()
	credit.Status = domain.CreditRepaid

	suite.mockRepayments.On("Begin", mock.Anything).Return(nil, nil).Once()
	suite.mockRepayments.On("Rollback", mock.Anything, mock.Anything).Return(nil).Maybe()
	suite.mockCredits.On("FindCreditForUpdate", mock.Anything, mock.Anything, "credit-1").Return(credit, nil).Once()

	_, err := suite.service.CreateRepayment(ctx, dto.CreateRepaymentRequest{
		CreditID: "credit-1",
		Amount:   decimal.RequireFromString("1000"),
		Currency: "FC",
	}, "teller-1")

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (suite *RepaymentServiceTestSuite) TestDeleteRepayment_RevertsStatusToActive() {
	ctx := context.Background()
	d := decimal.RequireFromString
	credit := suite.activeCredit()
	credit.Status = domain.CreditRepaid
	credit.RepaidToDate = d("1150000")

	repayment := &domain.Repayment{
		RepaymentID: "rep-9",
		CreditID:    "credit-1",
		Amount:      d("115000"),
		Currency:    domain.CurrencyFC,
	}

	suite.mockRepayments.On("FindRepaymentByID", mock.Anything, "rep-9").Return(repayment, nil).Once()
	suite.mockRepayments.On("Begin", mock.Anything).Return(nil, nil).Once()
	suite.mockRepayments.On("Rollback", mock.Anything, mock.Anything).Return(nil).Maybe()
	suite.mockCredits.On("FindCreditForUpdate", mock.Anything, mock.Anything, "credit-1").Return(credit, nil).Once()
	suite.mockLedger.On("DeleteEntriesByRepaymentIDInTx", mock.Anything, mock.Anything, "rep-9").Return(nil).Once()
	suite.mockRepayments.On("DeleteRepaymentInTx", mock.Anything, mock.Anything, "rep-9").Return(nil).Once()
	suite.mockRepayments.On("SumRepaymentsByCreditInTx", mock.Anything, mock.Anything, "credit-1").Return(d("1035000"), nil).Once()
	suite.mockCredits.On("UpdateCreditProgressInTx", mock.Anything, mock.Anything, "credit-1", d("1035000"), domain.CreditActive, "admin-1", mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockRepayments.On("Commit", mock.Anything, mock.Anything).Return(nil).Once()

	outcome, err := suite.service.DeleteRepayment(ctx, "rep-9", "admin-1")

	suite.Require().NoError(err)
	suite.Equal(domain.CreditActive, outcome.Status)
	suite.True(outcome.RepaidToDate.Equal(d("1035000")))
	suite.True(outcome.Remaining.Equal(d("115000")))
	suite.mockRepayments.AssertExpectations(suite.T())
	suite.mockLedger.AssertExpectations(suite.T())
	suite.mockCredits.AssertExpectations(suite.T())
}

func (suite *RepaymentServiceTestSuite) TestDeleteRepayment_NotFound() {
	ctx := context.Background()
	suite.mockRepayments.On("FindRepaymentByID", mock.Anything, "missing").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.DeleteRepayment(ctx, "missing", "admin-1")

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepayments.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func TestRepaymentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RepaymentServiceTestSuite))
}
