package domain

// AccountKind distinguishes member accounts from the reserved accounts the
// cooperative itself owns.
type AccountKind string

const (
	// KindMember is an individual member's savings account.
	KindMember AccountKind = "MEMBER"
	// KindCollective is a section's pooled account, holding funds not yet
	// attributed to an individual member. Its number is derived from the
	// section and year, never generated.
	KindCollective AccountKind = "COLLECTIVE"
	// KindRevenue is the single institutional revenue sink.
	KindRevenue AccountKind = "REVENUE"
)

// Account identifies one set of per-currency balances. Balances are never
// stored on the account; they are always derived from ledger entries.
type Account struct {
	AccountNumber string      `json:"accountNumber"` // Primary key
	Kind          AccountKind `json:"kind"`
	Section       string      `json:"section"`    // Section the account belongs to
	HolderName    string      `json:"holderName"` // Empty for reserved accounts
	IsActive      bool        `json:"isActive"`
	AuditFields
}
