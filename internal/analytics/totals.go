// Package analytics computes read-side aggregates over monthly budget
// entries: per-entry totals, timespan filtering, chart series, yearly
// rollups and month-over-month comparisons. Nothing here mutates
// storage.
package analytics

import "budgetplanner/internal/models"

// TotalIncome is salary plus both freelancing slots.
func TotalIncome(e *models.BudgetEntry) float64 {
	return e.Salary + e.FreelancingOne + e.FreelancingTwo
}

// TotalExpenses sums every fixed expense category field.
func TotalExpenses(e *models.BudgetEntry) float64 {
	return e.MobileRecharge + e.Wifi +
		e.EmiOne + e.EmiTwo + e.EmiThree + e.EmiFour +
		e.Food + e.Rent +
		e.CreditcardOne + e.CreditcardTwo +
		e.Shopping + e.Travel + e.OtherExpenses
}

// TotalInvestments sums SIP, both fixed deposits and ETF.
func TotalInvestments(e *models.BudgetEntry) float64 {
	return e.Sip + e.FixedDepositOne + e.FixedDepositTwo + e.Etf
}

// BudgetBalance is the cash left after both spending and investing.
// It is not the same thing as savings.
func BudgetBalance(e *models.BudgetEntry) float64 {
	return TotalIncome(e) - TotalExpenses(e) - TotalInvestments(e)
}

// EmiTotal sums the four EMI slots.
func EmiTotal(e *models.BudgetEntry) float64 {
	return e.EmiOne + e.EmiTwo + e.EmiThree + e.EmiFour
}

// CreditcardTotal sums the two credit card slots.
func CreditcardTotal(e *models.BudgetEntry) float64 {
	return e.CreditcardOne + e.CreditcardTwo
}

// UtilitiesTotal sums mobile recharge and wifi.
func UtilitiesTotal(e *models.BudgetEntry) float64 {
	return e.MobileRecharge + e.Wifi
}

// ExpenseCategory is one slice of the largest-expense comparison.
type ExpenseCategory struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// LargestExpenseCategory picks the biggest of the seven comparable
// expense groups. Ties resolve to the earliest entry in the fixed
// ordering below.
func LargestExpenseCategory(e *models.BudgetEntry) ExpenseCategory {
	categories := []ExpenseCategory{
		{"Rent", e.Rent},
		{"Food", e.Food},
		{"EMIs", EmiTotal(e)},
		{"Credit Cards", CreditcardTotal(e)},
		{"Shopping", e.Shopping},
		{"Travel", e.Travel},
		{"Other", e.OtherExpenses},
	}

	largest := categories[0]
	for _, c := range categories[1:] {
		if c.Amount > largest.Amount {
			largest = c
		}
	}
	return largest
}
