package services_test

import (
	"context"
	"encoding/json"
	"time"

	"github.com/coopec-dev/coopec_backend/internal/core/domain"
	portsrepo "github.com/coopec-dev/coopec_backend/internal/core/ports/repositories"
	portssvc "github.com/coopec-dev/coopec_backend/internal/core/ports/services"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	args := m.Called(ctx, accountNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountForUpdate(ctx context.Context, tx pgx.Tx, accountNumber string) (*domain.Account, error) {
	args := m.Called(ctx, tx, accountNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) EnsureAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

// --- Mock LedgerRepository ---

type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) SumAmount(ctx context.Context, accountNumber string, opType domain.OperationType, currency domain.Currency) (decimal.Decimal, error) {
	args := m.Called(ctx, accountNumber, opType, currency)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockLedgerRepository) SumAmountInTx(ctx context.Context, tx pgx.Tx, accountNumber string, opType domain.OperationType, currency domain.Currency) (decimal.Decimal, error) {
	args := m.Called(ctx, tx, accountNumber, opType, currency)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockLedgerRepository) SumAllAmounts(ctx context.Context, opType domain.OperationType, currency domain.Currency) (decimal.Decimal, error) {
	args := m.Called(ctx, opType, currency)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockLedgerRepository) SumAllFees(ctx context.Context, currency domain.Currency) (decimal.Decimal, error) {
	args := m.Called(ctx, currency)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockLedgerRepository) SumFees(ctx context.Context, accountNumber string, currency domain.Currency) (decimal.Decimal, error) {
	args := m.Called(ctx, accountNumber, currency)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockLedgerRepository) SumFeesInTx(ctx context.Context, tx pgx.Tx, accountNumber string, currency domain.Currency) (decimal.Decimal, error) {
	args := m.Called(ctx, tx, accountNumber, currency)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockLedgerRepository) SumWithdrawalsOnInTx(ctx context.Context, tx pgx.Tx, accountNumber string, currency domain.Currency, day time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, tx, accountNumber, currency, day)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockLedgerRepository) ListEntriesByAccount(ctx context.Context, accountNumber string, currency domain.Currency, limit, offset int) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, accountNumber, currency, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) SaveEntry(ctx context.Context, entry domain.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLedgerRepository) SaveEntriesInTx(ctx context.Context, tx pgx.Tx, entries []domain.LedgerEntry) error {
	args := m.Called(ctx, tx, entries)
	return args.Error(0)
}

func (m *MockLedgerRepository) DeleteEntriesByRepaymentIDInTx(ctx context.Context, tx pgx.Tx, repaymentID string) error {
	args := m.Called(ctx, tx, repaymentID)
	return args.Error(0)
}

func (m *MockLedgerRepository) SaveWithdrawalInTx(ctx context.Context, tx pgx.Tx, record domain.WithdrawalRecord) error {
	args := m.Called(ctx, tx, record)
	return args.Error(0)
}

func (m *MockLedgerRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockLedgerRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockLedgerRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

var _ portsrepo.LedgerRepositoryWithTx = (*MockLedgerRepository)(nil)

// --- Mock CreditRepository ---

type MockCreditRepository struct {
	mock.Mock
}

func (m *MockCreditRepository) FindCreditByID(ctx context.Context, creditID string) (*domain.Credit, error) {
	args := m.Called(ctx, creditID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Credit), args.Error(1)
}

func (m *MockCreditRepository) FindCreditForUpdate(ctx context.Context, tx pgx.Tx, creditID string) (*domain.Credit, error) {
	args := m.Called(ctx, tx, creditID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Credit), args.Error(1)
}

func (m *MockCreditRepository) ListCreditsByAccount(ctx context.Context, accountNumber string, limit, offset int) ([]domain.Credit, error) {
	args := m.Called(ctx, accountNumber, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Credit), args.Error(1)
}

func (m *MockCreditRepository) SumOutstanding(ctx context.Context, currency domain.Currency) (decimal.Decimal, error) {
	args := m.Called(ctx, currency)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockCreditRepository) SaveCreditInTx(ctx context.Context, tx pgx.Tx, credit domain.Credit) error {
	args := m.Called(ctx, tx, credit)
	return args.Error(0)
}

func (m *MockCreditRepository) UpdateCreditProgressInTx(ctx context.Context, tx pgx.Tx, creditID string, repaidToDate decimal.Decimal, status domain.CreditStatus, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, tx, creditID, repaidToDate, status, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockCreditRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockCreditRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockCreditRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

var _ portsrepo.CreditRepositoryWithTx = (*MockCreditRepository)(nil)

// --- Mock RepaymentRepository ---

type MockRepaymentRepository struct {
	mock.Mock
}

func (m *MockRepaymentRepository) FindRepaymentByID(ctx context.Context, repaymentID string) (*domain.Repayment, error) {
	args := m.Called(ctx, repaymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Repayment), args.Error(1)
}

func (m *MockRepaymentRepository) ListRepaymentsByCredit(ctx context.Context, creditID string) ([]domain.Repayment, error) {
	args := m.Called(ctx, creditID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Repayment), args.Error(1)
}

func (m *MockRepaymentRepository) SumRepaymentsByCreditInTx(ctx context.Context, tx pgx.Tx, creditID string) (decimal.Decimal, error) {
	args := m.Called(ctx, tx, creditID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockRepaymentRepository) SaveRepaymentInTx(ctx context.Context, tx pgx.Tx, repayment domain.Repayment) error {
	args := m.Called(ctx, tx, repayment)
	return args.Error(0)
}

func (m *MockRepaymentRepository) DeleteRepaymentInTx(ctx context.Context, tx pgx.Tx, repaymentID string) error {
	args := m.Called(ctx, tx, repaymentID)
	return args.Error(0)
}

func (m *MockRepaymentRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockRepaymentRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockRepaymentRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

var _ portsrepo.RepaymentRepositoryWithTx = (*MockRepaymentRepository)(nil)

// --- Mock PolicyRepository ---

type MockPolicyRepository struct {
	mock.Mock
}

func (m *MockPolicyRepository) GetPolicyValues(ctx context.Context) ([]portsrepo.PolicyValue, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]portsrepo.PolicyValue), args.Error(1)
}

func (m *MockPolicyRepository) SeedPolicyValue(ctx context.Context, name string, value json.RawMessage) error {
	args := m.Called(ctx, name, value)
	return args.Error(0)
}

func (m *MockPolicyRepository) UpdatePolicyValue(ctx context.Context, name string, value json.RawMessage) error {
	args := m.Called(ctx, name, value)
	return args.Error(0)
}

var _ portsrepo.PolicyRepositoryFacade = (*MockPolicyRepository)(nil)

// --- Mock PolicyService ---

type MockPolicyService struct {
	mock.Mock
}

func (m *MockPolicyService) Bootstrap(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPolicyService) GetPolicy(ctx context.Context) (*domain.PolicyConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PolicyConfig), args.Error(1)
}

func (m *MockPolicyService) UpdateValue(ctx context.Context, name string, rawValue []byte) (*domain.PolicyConfig, error) {
	args := m.Called(ctx, name, rawValue)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PolicyConfig), args.Error(1)
}

var _ portssvc.PolicySvcFacade = (*MockPolicyService)(nil)
