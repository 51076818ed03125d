package auth

// Employee is a back office operator account.
type Employee struct {
	ID           string
	Username     string
	Name         string
	PasswordHash string
	// CanViewAll grants visibility over every employee's orders and
	// financials, not just the employee's own.
	CanViewAll bool
	Active     bool
}
