package models

// Account is the database row shape for accounts.
type Account struct {
	AccountNumber string `db:"account_number"`
	Kind          string `db:"kind"`
	Section       string `db:"section"`
	HolderName    string `db:"holder_name"`
	IsActive      bool   `db:"is_active"`
	AuditFields
}
