package analytics

import "budgetplanner/internal/models"

// MonthIncome is the income side of a single month.
type MonthIncome struct {
	Salary         float64 `json:"salary"`
	FreelancingOne float64 `json:"freelancing_one"`
	FreelancingTwo float64 `json:"freelancing_two"`
	Total          float64 `json:"total"`
}

// MonthExpenses is the expense side of a single month, including the
// rolled-up EMI, credit card and utility figures the analysis page shows.
type MonthExpenses struct {
	MobileRecharge  float64 `json:"mobile_recharge"`
	Wifi            float64 `json:"wifi"`
	EmiOne          float64 `json:"emi_one"`
	EmiTwo          float64 `json:"emi_two"`
	EmiThree        float64 `json:"emi_three"`
	EmiFour         float64 `json:"emi_four"`
	Food            float64 `json:"food"`
	Rent            float64 `json:"rent"`
	CreditcardOne   float64 `json:"creditcard_one"`
	CreditcardTwo   float64 `json:"creditcard_two"`
	Shopping        float64 `json:"shopping"`
	Travel          float64 `json:"travel"`
	OtherExpenses   float64 `json:"other_expenses"`
	Total           float64 `json:"total"`
	EmiTotal        float64 `json:"emi_total"`
	CreditcardTotal float64 `json:"creditcard_total"`
	UtilitiesTotal  float64 `json:"utilities_total"`
}

// MonthInvestments is the investment side of a single month.
type MonthInvestments struct {
	Sip             float64 `json:"sip"`
	FixedDepositOne float64 `json:"fixed_deposit_one"`
	FixedDepositTwo float64 `json:"fixed_deposit_two"`
	Etf             float64 `json:"etf"`
	Total           float64 `json:"total"`
}

// CurrentMonth is the full breakdown of the month under analysis.
type CurrentMonth struct {
	Income        MonthIncome      `json:"income"`
	Expenses      MonthExpenses    `json:"expenses"`
	Investments   MonthInvestments `json:"investments"`
	BudgetBalance float64          `json:"budget_balance"`
}

// PreviousMonth carries the prior period's totals. All figures are zero when
// HasData is false.
type PreviousMonth struct {
	Month         string  `json:"month"`
	Year          int     `json:"year"`
	Income        float64 `json:"income"`
	Expenses      float64 `json:"expenses"`
	Investments   float64 `json:"investments"`
	BudgetBalance float64 `json:"budget_balance"`
	HasData       bool    `json:"has_data"`
}

// YearToDate accumulates every entry of the analysed year. Averages divide by
// the number of entries, never less than one.
type YearToDate struct {
	Income                float64 `json:"income"`
	Expenses              float64 `json:"expenses"`
	Investments           float64 `json:"investments"`
	BudgetBalance         float64 `json:"budget_balance"`
	MonthsCount           int     `json:"months_count"`
	AvgMonthlyIncome      float64 `json:"avg_monthly_income"`
	AvgMonthlyExpenses    float64 `json:"avg_monthly_expenses"`
	AvgMonthlyInvestments float64 `json:"avg_monthly_investments"`
}

// Comparisons holds month-over-month deltas. Percent deltas collapse to zero
// when the base month is absent or its figure would make the ratio
// meaningless; the balance delta is reported in absolute terms only.
type Comparisons struct {
	IncomeChange             float64 `json:"income_change"`
	IncomeChangePercent      float64 `json:"income_change_percent"`
	ExpensesChange           float64 `json:"expenses_change"`
	ExpensesChangePercent    float64 `json:"expenses_change_percent"`
	InvestmentsChange        float64 `json:"investments_change"`
	InvestmentsChangePercent float64 `json:"investments_change_percent"`
	BudgetBalanceChange      float64 `json:"budget_balance_change"`
}

// HealthIndicators derives spending ratios and the dominant expense category
// for the analysed month.
type HealthIndicators struct {
	ExpenseToIncomeRatio   float64         `json:"expense_to_income_ratio"`
	InvestmentRate         float64         `json:"investment_rate"`
	LargestExpenseCategory ExpenseCategory `json:"largest_expense_category"`
}

// MonthlyAnalysis is the payload behind the monthly analysis page.
type MonthlyAnalysis struct {
	Month       string           `json:"month"`
	Year        int              `json:"year"`
	Current     CurrentMonth     `json:"current"`
	Previous    PreviousMonth    `json:"previous"`
	YearToDate  YearToDate       `json:"year_to_date"`
	Comparisons Comparisons      `json:"comparisons"`
	Analytics   HealthIndicators `json:"analytics"`
}

// BuildMonthlyAnalysis compares the given entry against the previous calendar
// month and the year so far. prev may be nil when the prior month has no
// entry; ytdEntries should hold every entry of entry.Year including the
// analysed one.
func BuildMonthlyAnalysis(entry, prev *models.BudgetEntry, ytdEntries []models.BudgetEntry) *MonthlyAnalysis {
	income := TotalIncome(entry)
	expenses := TotalExpenses(entry)
	investments := TotalInvestments(entry)
	balance := income - expenses - investments

	prevMonth, prevYear := PreviousPeriod(entry.Month, entry.Year)

	a := &MonthlyAnalysis{
		Month: entry.Month,
		Year:  entry.Year,
		Current: CurrentMonth{
			Income: MonthIncome{
				Salary:         entry.Salary,
				FreelancingOne: entry.FreelancingOne,
				FreelancingTwo: entry.FreelancingTwo,
				Total:          income,
			},
			Expenses: MonthExpenses{
				MobileRecharge:  entry.MobileRecharge,
				Wifi:            entry.Wifi,
				EmiOne:          entry.EmiOne,
				EmiTwo:          entry.EmiTwo,
				EmiThree:        entry.EmiThree,
				EmiFour:         entry.EmiFour,
				Food:            entry.Food,
				Rent:            entry.Rent,
				CreditcardOne:   entry.CreditcardOne,
				CreditcardTwo:   entry.CreditcardTwo,
				Shopping:        entry.Shopping,
				Travel:          entry.Travel,
				OtherExpenses:   entry.OtherExpenses,
				Total:           expenses,
				EmiTotal:        EmiTotal(entry),
				CreditcardTotal: CreditcardTotal(entry),
				UtilitiesTotal:  UtilitiesTotal(entry),
			},
			Investments: MonthInvestments{
				Sip:             entry.Sip,
				FixedDepositOne: entry.FixedDepositOne,
				FixedDepositTwo: entry.FixedDepositTwo,
				Etf:             entry.Etf,
				Total:           investments,
			},
			BudgetBalance: balance,
		},
		Previous: PreviousMonth{Month: prevMonth, Year: prevYear},
	}

	if prev != nil {
		a.Previous.Income = TotalIncome(prev)
		a.Previous.Expenses = TotalExpenses(prev)
		a.Previous.Investments = TotalInvestments(prev)
		a.Previous.BudgetBalance = a.Previous.Income - a.Previous.Expenses - a.Previous.Investments
		a.Previous.HasData = true
	}

	for i := range ytdEntries {
		e := &ytdEntries[i]
		a.YearToDate.Income += TotalIncome(e)
		a.YearToDate.Expenses += TotalExpenses(e)
		a.YearToDate.Investments += TotalInvestments(e)
	}
	a.YearToDate.BudgetBalance = a.YearToDate.Income - a.YearToDate.Expenses - a.YearToDate.Investments
	a.YearToDate.MonthsCount = len(ytdEntries)
	ytdDivisor := float64(len(ytdEntries))
	if ytdDivisor < 1 {
		ytdDivisor = 1
	}
	a.YearToDate.AvgMonthlyIncome = a.YearToDate.Income / ytdDivisor
	a.YearToDate.AvgMonthlyExpenses = a.YearToDate.Expenses / ytdDivisor
	a.YearToDate.AvgMonthlyInvestments = a.YearToDate.Investments / ytdDivisor

	if prev != nil {
		a.Comparisons.IncomeChange = income - a.Previous.Income
		if a.Previous.Income > 0 {
			a.Comparisons.IncomeChangePercent = a.Comparisons.IncomeChange / a.Previous.Income * 100
		}
		a.Comparisons.ExpensesChange = expenses - a.Previous.Expenses
		if a.Previous.Expenses > 0 {
			a.Comparisons.ExpensesChangePercent = a.Comparisons.ExpensesChange / a.Previous.Expenses * 100
		}
		a.Comparisons.InvestmentsChange = investments - a.Previous.Investments
		if a.Previous.Investments != 0 {
			a.Comparisons.InvestmentsChangePercent = a.Comparisons.InvestmentsChange / a.Previous.Investments * 100
		}
		a.Comparisons.BudgetBalanceChange = balance - a.Previous.BudgetBalance
	}

	if income > 0 {
		a.Analytics.ExpenseToIncomeRatio = expenses / income * 100
		a.Analytics.InvestmentRate = investments / income * 100
	}
	a.Analytics.LargestExpenseCategory = LargestExpenseCategory(entry)

	return a
}
