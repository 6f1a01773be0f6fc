package handlers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"budgetplanner/internal/analytics"
	"budgetplanner/internal/models"
	"budgetplanner/internal/storage"
)

// ExportHandler serves CSV downloads of the user's data.
type ExportHandler struct {
	logger    *slog.Logger
	budgets   storage.BudgetStorage
	variables storage.VariableStorage
	buckets   storage.BucketStorage
	render    *Renderer
}

// NewExportHandler creates a new handler for data exports.
func NewExportHandler(logger *slog.Logger, budgets storage.BudgetStorage, variables storage.VariableStorage, buckets storage.BucketStorage, render *Renderer) *ExportHandler {
	return &ExportHandler{
		logger:    logger,
		budgets:   budgets,
		variables: variables,
		buckets:   buckets,
		render:    render,
	}
}

// exportView holds data for the export page.
type exportView struct {
	User *models.User
}

// Page handles GET /export/budget.
func (h *ExportHandler) Page(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, "export_data.html", exportView{User: UserFromContext(r.Context())})
}

// DownloadBudget handles GET /download/budget. Optional month and
// year query parameters narrow the export; month is only honored
// together with year.
func (h *ExportHandler) DownloadBudget(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := UserFromContext(ctx)

	month := r.URL.Query().Get("month")
	year, _ := strconv.Atoi(r.URL.Query().Get("year"))

	var entries []models.BudgetEntry
	var err error
	switch {
	case month != "" && year != 0:
		var entry *models.BudgetEntry
		entry, err = h.budgets.GetBudgetEntryByPeriod(ctx, user.ID, month, year)
		if entry != nil {
			entries = []models.BudgetEntry{*entry}
		}
		if err != nil && errors.Is(err, storage.ErrEntryNotFound) {
			err = nil
		}
	case year != 0:
		entries, err = h.budgets.ListBudgetEntriesByYear(ctx, user.ID, year)
	default:
		entries, err = h.budgets.ListBudgetEntries(ctx, user.ID)
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to load entries for export", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	if len(entries) == 0 {
		sendError(h.logger, w, "no data found for the specified criteria", http.StatusNotFound)
		return
	}

	filename := "budget_data_all"
	switch {
	case month != "" && year != 0:
		filename = fmt.Sprintf("budget_data_%s_%d", month, year)
	case year != 0:
		filename = fmt.Sprintf("budget_data_%d", year)
	}

	cw := beginCSV(w, filename)
	defer cw.Flush()

	header := []string{
		"Month", "Year",
		"Salary", "Freelancing_1", "Freelancing_2",
		"Mobile_Recharge", "WiFi", "Food", "Rent",
		"EMI_1", "EMI_2", "EMI_3", "EMI_4",
		"Credit_Card_1", "Credit_Card_2",
		"Shopping", "Travel", "Other_Expenses",
		"Total_Income", "Total_Expenses", "Net_Savings",
		"Created_At",
	}
	if err := cw.Write(header); err != nil {
		h.logger.ErrorContext(ctx, "failed to write CSV header", slog.Any("error", err))
		return
	}

	for i := range entries {
		e := &entries[i]
		totalIncome := analytics.TotalIncome(e)
		totalExpenses := analytics.TotalExpenses(e)

		row := []string{
			e.Month, strconv.Itoa(e.Year),
			csvFloat(e.Salary), csvFloat(e.FreelancingOne), csvFloat(e.FreelancingTwo),
			csvFloat(e.MobileRecharge), csvFloat(e.Wifi), csvFloat(e.Food), csvFloat(e.Rent),
			csvFloat(e.EmiOne), csvFloat(e.EmiTwo), csvFloat(e.EmiThree), csvFloat(e.EmiFour),
			csvFloat(e.CreditcardOne), csvFloat(e.CreditcardTwo),
			csvFloat(e.Shopping), csvFloat(e.Travel), csvFloat(e.OtherExpenses),
			csvFloat(totalIncome), csvFloat(totalExpenses), csvFloat(totalIncome - totalExpenses),
			csvTime(e.CreatedAt),
		}
		if err := cw.Write(row); err != nil {
			h.logger.ErrorContext(ctx, "failed to write CSV row", slog.Any("error", err))
			return
		}
	}
}

// DownloadVariableExpenses handles GET /download/variable-expenses
// with the same optional month/year narrowing as the budget export.
func (h *ExportHandler) DownloadVariableExpenses(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := UserFromContext(ctx)

	month := r.URL.Query().Get("month")
	year, _ := strconv.Atoi(r.URL.Query().Get("year"))
	if year == 0 {
		now := time.Now()
		month = now.Month().String()
		year = now.Year()
	}

	expenses, err := h.variables.ListVariableEntries(ctx, user.ID, month, year)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to load variable expenses for export", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	if len(expenses) == 0 {
		sendError(h.logger, w, "no variable expenses found for the specified criteria", http.StatusNotFound)
		return
	}

	cw := beginCSV(w, fmt.Sprintf("variable_expenses_%s_%d", month, year))
	defer cw.Flush()

	if err := cw.Write([]string{"Month", "Year", "Description", "Amount", "Category", "Date_Added", "Is_Finalized"}); err != nil {
		h.logger.ErrorContext(ctx, "failed to write CSV header", slog.Any("error", err))
		return
	}

	for _, e := range expenses {
		row := []string{
			e.Month, strconv.Itoa(e.Year),
			e.Description, csvFloat(e.Amount), e.Category,
			csvTime(e.CreatedAt), strconv.FormatBool(e.Finalized),
		}
		if err := cw.Write(row); err != nil {
			h.logger.ErrorContext(ctx, "failed to write CSV row", slog.Any("error", err))
			return
		}
	}
}

// DownloadBucketList handles GET /download/bucket-list.
func (h *ExportHandler) DownloadBucketList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := UserFromContext(ctx)

	items, err := h.buckets.ListBucketItems(ctx, user.ID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to load bucket items for export", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	if len(items) == 0 {
		sendError(h.logger, w, "no bucket list items found", http.StatusNotFound)
		return
	}

	cw := beginCSV(w, "bucket_list_data")
	defer cw.Flush()

	if err := cw.Write([]string{"Name", "Category", "Description", "Price", "Priority", "Status", "Target_Date", "Created_At", "Completed_At"}); err != nil {
		h.logger.ErrorContext(ctx, "failed to write CSV header", slog.Any("error", err))
		return
	}

	for _, item := range items {
		status := "Pending"
		completedAt := ""
		if item.Completed {
			status = "Completed"
			if item.CompletedAt != nil {
				completedAt = csvTime(*item.CompletedAt)
			}
		}
		row := []string{
			item.Name, item.Category, item.Description,
			csvFloat(item.Price), item.Priority, status,
			item.TargetDate, csvTime(item.CreatedAt), completedAt,
		}
		if err := cw.Write(row); err != nil {
			h.logger.ErrorContext(ctx, "failed to write CSV row", slog.Any("error", err))
			return
		}
	}
}

func beginCSV(w http.ResponseWriter, filename string) *csv.Writer {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", filename))
	return csv.NewWriter(w)
}

func csvFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func csvTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}
