package analytics

import (
	"sort"
	"time"

	"budgetplanner/internal/models"
	"budgetplanner/internal/validation"
)

// Timespan selects which calendar window of entries to aggregate.
type Timespan string

// Recognized timespan selectors. Anything else is treated as TimespanAll.
const (
	TimespanAll          Timespan = "all"
	TimespanCurrentMonth Timespan = "current_month"
	TimespanQuarter      Timespan = "quarter"
	TimespanHalfYear     Timespan = "half_year"
	TimespanCurrentYear  Timespan = "current_year"
)

// FilterByTimespan restricts entries to the window containing now.
// quarter is the 3-month block of the current year holding the current
// month; half_year is Jan-Jun or Jul-Dec of the current year.
func FilterByTimespan(entries []models.BudgetEntry, ts Timespan, now time.Time) []models.BudgetEntry {
	year := now.Year()
	month := int(now.Month())

	var keep func(e *models.BudgetEntry) bool

	switch ts {
	case TimespanCurrentMonth:
		name := now.Month().String()
		keep = func(e *models.BudgetEntry) bool {
			return e.Year == year && e.Month == name
		}
	case TimespanQuarter:
		quarterStart := ((month-1)/3)*3 + 1
		keep = func(e *models.BudgetEntry) bool {
			idx := validation.MonthIndex(e.Month)
			return e.Year == year && idx >= quarterStart && idx < quarterStart+3
		}
	case TimespanHalfYear:
		lo, hi := 1, 6
		if month > 6 {
			lo, hi = 7, 12
		}
		keep = func(e *models.BudgetEntry) bool {
			idx := validation.MonthIndex(e.Month)
			return e.Year == year && idx >= lo && idx <= hi
		}
	case TimespanCurrentYear:
		keep = func(e *models.BudgetEntry) bool {
			return e.Year == year
		}
	default:
		return entries
	}

	var filtered []models.BudgetEntry
	for i := range entries {
		if keep(&entries[i]) {
			filtered = append(filtered, entries[i])
		}
	}
	return filtered
}

// SortByPeriod orders entries chronologically by (year, month).
func SortByPeriod(entries []models.BudgetEntry) []models.BudgetEntry {
	sorted := make([]models.BudgetEntry, len(entries))
	copy(sorted, entries)

	sort.SliceStable(sorted, func(i, j int) bool {
		return periodLess(&sorted[i], &sorted[j])
	})
	return sorted
}

func periodLess(a, b *models.BudgetEntry) bool {
	if a.Year != b.Year {
		return a.Year < b.Year
	}
	return validation.MonthIndex(a.Month) < validation.MonthIndex(b.Month)
}

// PreviousPeriod returns the calendar month immediately before
// (month, year), wrapping to December of the prior year for January.
func PreviousPeriod(month string, year int) (string, int) {
	idx := validation.MonthIndex(month)
	if idx <= 1 {
		return "December", year - 1
	}
	return validation.MonthNames[idx-2], year
}
