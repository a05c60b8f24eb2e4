package services

import (
	portsrepo "github.com/coopec-dev/coopec_backend/internal/core/ports/repositories"
	portssvc "github.com/coopec-dev/coopec_backend/internal/core/ports/services"
)

// NewServiceContainer wires every service against the repository provider.
// The policy service is built first because the withdrawal engine reads its
// snapshot on every request.
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	policySvc := NewPolicyService(repos.PolicyRepo)
	return &portssvc.ServiceContainer{
		Account:    NewAccountService(repos.AccountRepo),
		Policy:     policySvc,
		Deposit:    NewLedgerService(repos.AccountRepo, repos.LedgerRepo),
		Withdrawal: NewWithdrawalService(repos.AccountRepo, repos.LedgerRepo, policySvc),
		Balance:    NewBalanceService(repos.AccountRepo, repos.LedgerRepo, repos.CreditRepo),
		Credit:     NewCreditService(repos.AccountRepo, repos.CreditRepo, repos.LedgerRepo),
		Repayment:  NewRepaymentService(repos.AccountRepo, repos.CreditRepo, repos.RepaymentRepo, repos.LedgerRepo),
	}
}
