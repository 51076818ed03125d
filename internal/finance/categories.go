package finance

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Expense categories carry Arabic free-text labels from the store. Two
// literals get special handling: employee-dues settlements and goods
// purchases. Rows are matched after NFC normalization so that visually
// identical labels with different codepoint sequences compare equal.
const (
	categoryEmployeeDues  = "مستحقات الموظفين"
	categoryGoodsPurchase = "شراء بضاعة"
)

func normalizeCategory(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

func categoryMatches(e Expense, label string) bool {
	want := normalizeCategory(label)
	if normalizeCategory(e.Category) == want {
		return true
	}
	return normalizeCategory(e.RelatedCategory) == want
}

// IsEmployeeDues reports whether the expense settles employee profit shares.
func IsEmployeeDues(e Expense) bool {
	return categoryMatches(e, categoryEmployeeDues)
}

// IsGoodsPurchase reports whether the expense is a stock purchase, tracked
// outside general expenses.
func IsGoodsPurchase(e Expense) bool {
	return categoryMatches(e, categoryGoodsPurchase)
}

// IsGeneral reports whether the expense counts toward general expenses.
func IsGeneral(e Expense) bool {
	if e.Type == ExpenseTypeSystem {
		return false
	}
	return !IsEmployeeDues(e) && !IsGoodsPurchase(e)
}
