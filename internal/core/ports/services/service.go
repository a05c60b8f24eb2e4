package services

// ServiceContainer holds all service interfaces needed by the HTTP layer.
type ServiceContainer struct {
	Account    AccountSvcFacade
	Policy     PolicySvcFacade
	Deposit    DepositSvcFacade
	Withdrawal WithdrawalSvcFacade
	Balance    BalanceSvcFacade
	Credit     CreditSvcFacade
	Repayment  RepaymentSvcFacade
}
