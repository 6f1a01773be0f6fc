package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"budgetplanner/internal/models"
)

func TestBuildChartData(t *testing.T) {
	entries := []models.BudgetEntry{
		{Month: "February", Year: 2024, Salary: 40000, Rent: 12000, Sip: 4000},
		{Month: "December", Year: 2023, Salary: 38000, Rent: 12000, Sip: 4000},
	}

	data := BuildChartData(entries)

	require.Equal(t, []string{"December 2023", "February 2024"}, data.Months)

	require.Len(t, data.Income.Total, 2)
	assert.InDelta(t, 38000.0, data.Income.Total[0], 0.001)
	assert.InDelta(t, 40000.0, data.Income.Total[1], 0.001)

	assert.InDelta(t, 12000.0, data.Expenses.Rent[0], 0.001)
	assert.InDelta(t, 12000.0, data.Expenses.Total[0], 0.001)
	assert.InDelta(t, 4000.0, data.Savings.Total[1], 0.001)
}

func TestBuildChartDataEmpty(t *testing.T) {
	data := BuildChartData(nil)

	assert.Empty(t, data.Months)
	assert.Empty(t, data.Income.Total)
	assert.Empty(t, data.Expenses.Total)
	assert.Empty(t, data.Savings.Total)
}
