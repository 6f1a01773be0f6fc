package analytics

import (
	"budgetplanner/internal/models"
	"budgetplanner/internal/validation"
)

// MonthlyTotals carries one value per month with data, aligned with
// YearlyData.Months.
type MonthlyTotals struct {
	Income        []float64 `json:"income"`
	Expenses      []float64 `json:"expenses"`
	Investments   []float64 `json:"investments"`
	BudgetBalance []float64 `json:"budget_balance"`
}

// IncomeBreakdown splits monthly income by source.
type IncomeBreakdown struct {
	Salary         []float64 `json:"salary"`
	FreelancingOne []float64 `json:"freelancing_one"`
	FreelancingTwo []float64 `json:"freelancing_two"`
}

// ExpenseBreakdown splits monthly expenses by category, with EMIs and credit
// cards collapsed into single series.
type ExpenseBreakdown struct {
	MobileRecharge  []float64 `json:"mobile_recharge"`
	Wifi            []float64 `json:"wifi"`
	EmiTotal        []float64 `json:"emi_total"`
	Food            []float64 `json:"food"`
	Rent            []float64 `json:"rent"`
	CreditcardTotal []float64 `json:"creditcard_total"`
	Shopping        []float64 `json:"shopping"`
	Travel          []float64 `json:"travel"`
	OtherExpenses   []float64 `json:"other_expenses"`
}

// InvestmentBreakdown splits monthly investments by instrument.
type InvestmentBreakdown struct {
	Sip             []float64 `json:"sip"`
	FixedDepositOne []float64 `json:"fixed_deposit_one"`
	FixedDepositTwo []float64 `json:"fixed_deposit_two"`
	Etf             []float64 `json:"etf"`
}

// MonthlyComparison repeats the monthly totals with abbreviated month labels
// for the comparison chart.
type MonthlyComparison struct {
	Months        []string  `json:"months"`
	Income        []float64 `json:"income"`
	Expenses      []float64 `json:"expenses"`
	Investments   []float64 `json:"investments"`
	BudgetBalance []float64 `json:"budget_balance"`
}

// YearSummary aggregates the year. Averages divide by the number of months
// that actually have entries, never by twelve.
type YearSummary struct {
	TotalIncome                 float64 `json:"total_income"`
	TotalExpenses               float64 `json:"total_expenses"`
	TotalInvestments            float64 `json:"total_investments"`
	TotalBudgetBalance          float64 `json:"total_budget_balance"`
	AverageMonthlyIncome        float64 `json:"average_monthly_income"`
	AverageMonthlyExpenses      float64 `json:"average_monthly_expenses"`
	AverageMonthlyInvestments   float64 `json:"average_monthly_investments"`
	AverageMonthlyBudgetBalance float64 `json:"average_monthly_budget_balance"`
	MonthsWithData              int     `json:"months_with_data"`
}

// YearlyData is the payload behind the yearly dashboard. Months without an
// entry are omitted entirely rather than zero-filled.
type YearlyData struct {
	Year                int                 `json:"year"`
	Months              []string            `json:"months"`
	MonthlyTotals       MonthlyTotals       `json:"monthly_totals"`
	IncomeBreakdown     IncomeBreakdown     `json:"income_breakdown"`
	ExpenseBreakdown    ExpenseBreakdown    `json:"expense_breakdown"`
	InvestmentBreakdown InvestmentBreakdown `json:"investment_breakdown"`
	MonthlyComparison   MonthlyComparison   `json:"monthly_comparison"`
	Summary             YearSummary         `json:"summary"`
}

// BuildYearlyData aggregates one calendar year of entries into the yearly
// dashboard payload. Entries for other years are the caller's bug to avoid;
// only the month name is used for placement.
func BuildYearlyData(year int, entries []models.BudgetEntry) *YearlyData {
	byMonth := make(map[string]*models.BudgetEntry, len(entries))
	for i := range entries {
		byMonth[entries[i].Month] = &entries[i]
	}

	data := &YearlyData{Year: year}
	for _, month := range validation.MonthNames {
		e, ok := byMonth[month]
		if !ok {
			continue
		}

		income := TotalIncome(e)
		expenses := TotalExpenses(e)
		investments := TotalInvestments(e)
		balance := income - expenses - investments

		data.Months = append(data.Months, month)

		data.MonthlyTotals.Income = append(data.MonthlyTotals.Income, income)
		data.MonthlyTotals.Expenses = append(data.MonthlyTotals.Expenses, expenses)
		data.MonthlyTotals.Investments = append(data.MonthlyTotals.Investments, investments)
		data.MonthlyTotals.BudgetBalance = append(data.MonthlyTotals.BudgetBalance, balance)

		data.IncomeBreakdown.Salary = append(data.IncomeBreakdown.Salary, e.Salary)
		data.IncomeBreakdown.FreelancingOne = append(data.IncomeBreakdown.FreelancingOne, e.FreelancingOne)
		data.IncomeBreakdown.FreelancingTwo = append(data.IncomeBreakdown.FreelancingTwo, e.FreelancingTwo)

		data.ExpenseBreakdown.MobileRecharge = append(data.ExpenseBreakdown.MobileRecharge, e.MobileRecharge)
		data.ExpenseBreakdown.Wifi = append(data.ExpenseBreakdown.Wifi, e.Wifi)
		data.ExpenseBreakdown.EmiTotal = append(data.ExpenseBreakdown.EmiTotal, EmiTotal(e))
		data.ExpenseBreakdown.Food = append(data.ExpenseBreakdown.Food, e.Food)
		data.ExpenseBreakdown.Rent = append(data.ExpenseBreakdown.Rent, e.Rent)
		data.ExpenseBreakdown.CreditcardTotal = append(data.ExpenseBreakdown.CreditcardTotal, CreditcardTotal(e))
		data.ExpenseBreakdown.Shopping = append(data.ExpenseBreakdown.Shopping, e.Shopping)
		data.ExpenseBreakdown.Travel = append(data.ExpenseBreakdown.Travel, e.Travel)
		data.ExpenseBreakdown.OtherExpenses = append(data.ExpenseBreakdown.OtherExpenses, e.OtherExpenses)

		data.InvestmentBreakdown.Sip = append(data.InvestmentBreakdown.Sip, e.Sip)
		data.InvestmentBreakdown.FixedDepositOne = append(data.InvestmentBreakdown.FixedDepositOne, e.FixedDepositOne)
		data.InvestmentBreakdown.FixedDepositTwo = append(data.InvestmentBreakdown.FixedDepositTwo, e.FixedDepositTwo)
		data.InvestmentBreakdown.Etf = append(data.InvestmentBreakdown.Etf, e.Etf)

		data.MonthlyComparison.Months = append(data.MonthlyComparison.Months, month[:3])
		data.MonthlyComparison.Income = append(data.MonthlyComparison.Income, income)
		data.MonthlyComparison.Expenses = append(data.MonthlyComparison.Expenses, expenses)
		data.MonthlyComparison.Investments = append(data.MonthlyComparison.Investments, investments)
		data.MonthlyComparison.BudgetBalance = append(data.MonthlyComparison.BudgetBalance, balance)
	}

	data.Summary = summarizeYear(&data.MonthlyTotals, len(data.Months))
	return data
}

func summarizeYear(totals *MonthlyTotals, monthsWithData int) YearSummary {
	divisor := float64(monthsWithData)
	if divisor < 1 {
		divisor = 1
	}

	s := YearSummary{MonthsWithData: monthsWithData}
	for _, v := range totals.Income {
		s.TotalIncome += v
	}
	for _, v := range totals.Expenses {
		s.TotalExpenses += v
	}
	for _, v := range totals.Investments {
		s.TotalInvestments += v
	}
	for _, v := range totals.BudgetBalance {
		s.TotalBudgetBalance += v
	}
	s.AverageMonthlyIncome = s.TotalIncome / divisor
	s.AverageMonthlyExpenses = s.TotalExpenses / divisor
	s.AverageMonthlyInvestments = s.TotalInvestments / divisor
	s.AverageMonthlyBudgetBalance = s.TotalBudgetBalance / divisor
	return s
}
