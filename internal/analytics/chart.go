package analytics

import (
	"fmt"

	"budgetplanner/internal/models"
)

// IncomeSeries holds per-month income values, one element per month in
// ChartData.Months.
type IncomeSeries struct {
	Salary         []float64 `json:"salary"`
	FreelancingOne []float64 `json:"freelancing_one"`
	FreelancingTwo []float64 `json:"freelancing_two"`
	Total          []float64 `json:"total"`
}

// ExpenseSeries holds per-month expense values.
type ExpenseSeries struct {
	MobileRecharge []float64 `json:"mobile_recharge"`
	Wifi           []float64 `json:"wifi"`
	EmiOne         []float64 `json:"emi_one"`
	EmiTwo         []float64 `json:"emi_two"`
	EmiThree       []float64 `json:"emi_three"`
	EmiFour        []float64 `json:"emi_four"`
	Food           []float64 `json:"food"`
	Rent           []float64 `json:"rent"`
	CreditcardOne  []float64 `json:"creditcard_one"`
	CreditcardTwo  []float64 `json:"creditcard_two"`
	Shopping       []float64 `json:"shopping"`
	Travel         []float64 `json:"travel"`
	OtherExpenses  []float64 `json:"other_expenses"`
	Total          []float64 `json:"total"`
}

// SavingsSeries holds per-month investment values.
type SavingsSeries struct {
	Sip             []float64 `json:"sip"`
	FixedDepositOne []float64 `json:"fixed_deposit_one"`
	FixedDepositTwo []float64 `json:"fixed_deposit_two"`
	Etf             []float64 `json:"etf"`
	Total           []float64 `json:"total"`
}

// ChartData is the payload behind the dashboard charts. Every series is
// aligned with Months: index i of any slice belongs to Months[i].
type ChartData struct {
	Months   []string      `json:"months"`
	Income   IncomeSeries  `json:"income"`
	Expenses ExpenseSeries `json:"expenses"`
	Savings  SavingsSeries `json:"savings"`
}

// BuildChartData turns budget entries into chronologically ordered chart
// series. Entries are sorted here so callers can pass storage results as-is.
func BuildChartData(entries []models.BudgetEntry) *ChartData {
	sorted := SortByPeriod(entries)

	data := &ChartData{
		Months: make([]string, 0, len(sorted)),
	}
	for i := range sorted {
		e := &sorted[i]
		data.Months = append(data.Months, fmt.Sprintf("%s %d", e.Month, e.Year))

		data.Income.Salary = append(data.Income.Salary, e.Salary)
		data.Income.FreelancingOne = append(data.Income.FreelancingOne, e.FreelancingOne)
		data.Income.FreelancingTwo = append(data.Income.FreelancingTwo, e.FreelancingTwo)
		data.Income.Total = append(data.Income.Total, TotalIncome(e))

		data.Expenses.MobileRecharge = append(data.Expenses.MobileRecharge, e.MobileRecharge)
		data.Expenses.Wifi = append(data.Expenses.Wifi, e.Wifi)
		data.Expenses.EmiOne = append(data.Expenses.EmiOne, e.EmiOne)
		data.Expenses.EmiTwo = append(data.Expenses.EmiTwo, e.EmiTwo)
		data.Expenses.EmiThree = append(data.Expenses.EmiThree, e.EmiThree)
		data.Expenses.EmiFour = append(data.Expenses.EmiFour, e.EmiFour)
		data.Expenses.Food = append(data.Expenses.Food, e.Food)
		data.Expenses.Rent = append(data.Expenses.Rent, e.Rent)
		data.Expenses.CreditcardOne = append(data.Expenses.CreditcardOne, e.CreditcardOne)
		data.Expenses.CreditcardTwo = append(data.Expenses.CreditcardTwo, e.CreditcardTwo)
		data.Expenses.Shopping = append(data.Expenses.Shopping, e.Shopping)
		data.Expenses.Travel = append(data.Expenses.Travel, e.Travel)
		data.Expenses.OtherExpenses = append(data.Expenses.OtherExpenses, e.OtherExpenses)
		data.Expenses.Total = append(data.Expenses.Total, TotalExpenses(e))

		data.Savings.Sip = append(data.Savings.Sip, e.Sip)
		data.Savings.FixedDepositOne = append(data.Savings.FixedDepositOne, e.FixedDepositOne)
		data.Savings.FixedDepositTwo = append(data.Savings.FixedDepositTwo, e.FixedDepositTwo)
		data.Savings.Etf = append(data.Savings.Etf, e.Etf)
		data.Savings.Total = append(data.Savings.Total, TotalInvestments(e))
	}
	return data
}
