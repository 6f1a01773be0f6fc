package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"budgetplanner/internal/analytics"
	"budgetplanner/internal/models"
	"budgetplanner/internal/storage"
	"budgetplanner/internal/validation"
)

// ChartsHandler serves the analytics pages and their JSON APIs.
type ChartsHandler struct {
	logger  *slog.Logger
	budgets storage.BudgetStorage
	render  *Renderer
}

// NewChartsHandler creates a new handler for charts and analysis.
func NewChartsHandler(logger *slog.Logger, budgets storage.BudgetStorage, render *Renderer) *ChartsHandler {
	return &ChartsHandler{
		logger:  logger,
		budgets: budgets,
		render:  render,
	}
}

// ChartData handles GET /api/chart-data?timespan=. An unknown
// timespan value falls back to the full history.
func (h *ChartsHandler) ChartData(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := UserFromContext(ctx)

	entries, err := h.budgets.ListBudgetEntries(ctx, user.ID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list budget entries", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	timespan := analytics.Timespan(r.URL.Query().Get("timespan"))
	if timespan == "" {
		timespan = analytics.TimespanAll
	}

	filtered := analytics.FilterByTimespan(entries, timespan, time.Now())
	sendJSON(h.logger, w, analytics.BuildChartData(filtered), http.StatusOK)
}

// YearlyChartData handles GET /api/yearly-chart-data/{year}.
func (h *ChartsHandler) YearlyChartData(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := UserFromContext(ctx)

	year, err := strconv.Atoi(r.PathValue("year"))
	if err != nil {
		sendError(h.logger, w, "invalid year", http.StatusBadRequest)
		return
	}

	entries, err := h.budgets.ListBudgetEntriesByYear(ctx, user.ID, year)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list budget entries",
			slog.Int("year", year), slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, analytics.BuildYearlyData(year, entries), http.StatusOK)
}

// MonthlyAnalysisData handles GET /api/monthly-analysis-data/{year}/{month}.
// A month without an entry returns an error payload, not a 404, so the
// page script can show its own empty state.
func (h *ChartsHandler) MonthlyAnalysisData(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := UserFromContext(ctx)

	year, err := strconv.Atoi(r.PathValue("year"))
	if err != nil {
		sendError(h.logger, w, "invalid year", http.StatusBadRequest)
		return
	}
	month := r.PathValue("month")
	if err := validation.ValidateMonth(month); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}

	entry, err := h.budgets.GetBudgetEntryByPeriod(ctx, user.ID, month, year)
	if err != nil {
		if errors.Is(err, storage.ErrEntryNotFound) {
			sendJSON(h.logger, w, map[string]string{"error": "No data found for the specified month"}, http.StatusOK)
			return
		}
		h.logger.ErrorContext(ctx, "failed to load budget entry", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	prevMonth, prevYear := analytics.PreviousPeriod(month, year)
	prev, err := h.budgets.GetBudgetEntryByPeriod(ctx, user.ID, prevMonth, prevYear)
	if err != nil && !errors.Is(err, storage.ErrEntryNotFound) {
		h.logger.ErrorContext(ctx, "failed to load previous entry", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	ytd, err := h.budgets.ListBudgetEntriesByYear(ctx, user.ID, year)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list year entries", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, analytics.BuildMonthlyAnalysis(entry, prev, ytd), http.StatusOK)
}

// yearlyChartsView holds data for the yearly charts page.
type yearlyChartsView struct {
	User           *models.User
	AvailableYears []int
}

// YearlyPage handles GET /yearly-charts.
func (h *ChartsHandler) YearlyPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := UserFromContext(ctx)

	entries, err := h.budgets.ListBudgetEntries(ctx, user.ID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list budget entries", slog.Any("error", err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	years := availableYears(entries)
	if len(years) == 0 {
		years = []int{time.Now().Year()}
	}

	h.render.Render(w, "yearly_charts.html", yearlyChartsView{User: user, AvailableYears: years})
}

// periodOption is one selectable (month, year) pair.
type periodOption struct {
	Month   string
	Year    int
	Display string
}

// monthlyAnalysisView holds data for the monthly analysis page.
type monthlyAnalysisView struct {
	User             *models.User
	AvailablePeriods []periodOption
}

// MonthlyPage handles GET /monthly-analysis.
func (h *ChartsHandler) MonthlyPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := UserFromContext(ctx)

	entries, err := h.budgets.ListBudgetEntries(ctx, user.ID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list budget entries", slog.Any("error", err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var periods []periodOption
	for _, e := range analytics.SortByPeriod(entries) {
		periods = append(periods, periodOption{
			Month:   e.Month,
			Year:    e.Year,
			Display: fmt.Sprintf("%s %d", e.Month, e.Year),
		})
	}
	if len(periods) == 0 {
		now := time.Now()
		periods = []periodOption{{
			Month:   now.Month().String(),
			Year:    now.Year(),
			Display: fmt.Sprintf("%s %d", now.Month().String(), now.Year()),
		}}
	}

	h.render.Render(w, "monthly_analysis.html", monthlyAnalysisView{User: user, AvailablePeriods: periods})
}

// savingsView holds data for the savings dashboard page.
type savingsView struct {
	User           *models.User
	CurrentMonth   string
	EntriesCount   int
	SavingsEntries int
}

// SavingsPage handles GET /savings-dashboard.
func (h *ChartsHandler) SavingsPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := UserFromContext(ctx)

	entries, err := h.budgets.ListBudgetEntries(ctx, user.ID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list budget entries", slog.Any("error", err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	view := savingsView{
		User:         user,
		CurrentMonth: time.Now().Format("January 2006"),
		EntriesCount: len(entries),
	}
	for i := range entries {
		if analytics.TotalInvestments(&entries[i]) > 0 {
			view.SavingsEntries++
		}
	}

	h.render.Render(w, "savings_dashboard.html", view)
}

// availableYears returns the distinct years present, newest first.
// Entries arrive newest first already, so order falls out for free.
func availableYears(entries []models.BudgetEntry) []int {
	seen := make(map[int]bool)
	var years []int
	for _, e := range entries {
		if !seen[e.Year] {
			seen[e.Year] = true
			years = append(years, e.Year)
		}
	}
	return years
}
