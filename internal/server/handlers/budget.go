package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"budgetplanner/internal/analytics"
	"budgetplanner/internal/models"
	"budgetplanner/internal/storage"
)

// BudgetHandler serves the dashboard and the monthly budget pages.
type BudgetHandler struct {
	logger  *slog.Logger
	budgets storage.BudgetStorage
	buckets storage.BucketStorage
	render  *Renderer
}

// NewBudgetHandler creates a new handler for budget entry pages.
func NewBudgetHandler(logger *slog.Logger, budgets storage.BudgetStorage, buckets storage.BucketStorage, render *Renderer) *BudgetHandler {
	return &BudgetHandler{
		logger:  logger,
		budgets: budgets,
		buckets: buckets,
		render:  render,
	}
}

// dashboardView holds data for the dashboard page.
type dashboardView struct {
	User                 *models.User
	LatestEntry          *models.BudgetEntry
	Entries              []models.BudgetEntry
	LatestIncome         float64
	LatestExpenses       float64
	LatestInvestments    float64
	LatestBalance        float64
	TotalBucketItems     int
	CompletedBucketItems int
}

// Home handles GET /. It shows the latest entry and bucket list
// progress.
func (h *BudgetHandler) Home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := UserFromContext(ctx)

	entries, err := h.budgets.ListBudgetEntries(ctx, user.ID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list budget entries", slog.Any("error", err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	items, err := h.buckets.ListBucketItems(ctx, user.ID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list bucket items", slog.Any("error", err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	view := dashboardView{
		User:             user,
		Entries:          entries,
		TotalBucketItems: len(items),
	}
	// Entries come back newest first.
	if len(entries) > 0 {
		view.LatestEntry = &entries[0]
		view.LatestIncome = analytics.TotalIncome(view.LatestEntry)
		view.LatestExpenses = analytics.TotalExpenses(view.LatestEntry)
		view.LatestInvestments = analytics.TotalInvestments(view.LatestEntry)
		view.LatestBalance = analytics.BudgetBalance(view.LatestEntry)
	}
	for i := range items {
		if items[i].Completed {
			view.CompletedBucketItems++
		}
	}

	h.render.Render(w, "dashboard.html", view)
}

// budgetView holds data for the budget list page, including the
// overwrite confirmation state.
type budgetView struct {
	User          *models.User
	Entries       []models.BudgetEntry
	ExistingEntry *models.BudgetEntry
	ShowWarning   bool
	FormData      *models.BudgetEntry
}

// Page handles GET /budget.
func (h *BudgetHandler) Page(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := UserFromContext(ctx)

	entries, err := h.budgets.ListBudgetEntries(ctx, user.ID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list budget entries", slog.Any("error", err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.render.Render(w, "budget.html", budgetView{User: user, Entries: entries})
}

// Save handles POST /budget. The entry always targets the current
// calendar month. When an entry for the period already exists the page
// is re-rendered with a warning and the submitted values preserved;
// resubmitting with confirm_overwrite=yes replaces the stored amounts.
func (h *BudgetHandler) Save(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := UserFromContext(ctx)

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	now := time.Now()
	entry := parseBudgetForm(r)
	entry.UserID = user.ID
	entry.Month = now.Month().String()
	entry.Year = now.Year()

	existing, err := h.budgets.GetBudgetEntryByPeriod(ctx, user.ID, entry.Month, entry.Year)
	if err != nil && !errors.Is(err, storage.ErrEntryNotFound) {
		h.logger.ErrorContext(ctx, "failed to check existing entry", slog.Any("error", err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if existing != nil && r.FormValue("confirm_overwrite") != "yes" {
		entries, err := h.budgets.ListBudgetEntries(ctx, user.ID)
		if err != nil {
			h.logger.ErrorContext(ctx, "failed to list budget entries", slog.Any("error", err))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		h.render.Render(w, "budget.html", budgetView{
			User:          user,
			Entries:       entries,
			ExistingEntry: existing,
			ShowWarning:   true,
			FormData:      entry,
		})
		return
	}

	if existing != nil {
		entry.ID = existing.ID
		err = h.budgets.UpdateBudgetEntry(ctx, entry)
	} else {
		entry.CreatedAt = now
		err = h.budgets.CreateBudgetEntry(ctx, entry)
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to save budget entry",
			slog.String("month", entry.Month), slog.Int("year", entry.Year), slog.Any("error", err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "budget entry saved",
		slog.Int64("user_id", user.ID),
		slog.String("month", entry.Month),
		slog.Int("year", entry.Year))

	http.Redirect(w, r, "/budget", http.StatusFound)
}

// editView holds data for the budget edit page.
type editView struct {
	User    *models.User
	Entry   *models.BudgetEntry
	Entries []models.BudgetEntry
}

// EditPage handles GET /budget/edit/{id}.
func (h *BudgetHandler) EditPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := UserFromContext(ctx)

	entryID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	entry, err := h.budgets.GetBudgetEntry(ctx, user.ID, entryID)
	if err != nil {
		if errors.Is(err, storage.ErrEntryNotFound) {
			http.NotFound(w, r)
			return
		}
		h.logger.ErrorContext(ctx, "failed to load budget entry", slog.Any("error", err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	entries, err := h.budgets.ListBudgetEntries(ctx, user.ID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list budget entries", slog.Any("error", err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.render.Render(w, "budget_edit.html", editView{User: user, Entry: entry, Entries: entries})
}

// Update handles POST /budget/update/{id}. Unlike Save it keeps the
// entry's original period and only replaces the amounts.
func (h *BudgetHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := UserFromContext(ctx)

	entryID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	existing, err := h.budgets.GetBudgetEntry(ctx, user.ID, entryID)
	if err != nil {
		if errors.Is(err, storage.ErrEntryNotFound) {
			http.NotFound(w, r)
			return
		}
		h.logger.ErrorContext(ctx, "failed to load budget entry", slog.Any("error", err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	entry := parseBudgetForm(r)
	entry.ID = existing.ID
	entry.UserID = user.ID
	entry.Month = existing.Month
	entry.Year = existing.Year

	if err := h.budgets.UpdateBudgetEntry(ctx, entry); err != nil {
		h.logger.ErrorContext(ctx, "failed to update budget entry", slog.Any("error", err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/budget", http.StatusFound)
}

// Delete handles POST /budget/delete/{id}.
func (h *BudgetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := UserFromContext(ctx)

	entryID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := h.budgets.DeleteBudgetEntry(ctx, user.ID, entryID); err != nil {
		if errors.Is(err, storage.ErrEntryNotFound) {
			http.NotFound(w, r)
			return
		}
		h.logger.ErrorContext(ctx, "failed to delete budget entry", slog.Any("error", err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/budget", http.StatusFound)
}

// parseBudgetForm reads the twenty amount fields from the submitted
// form. Absent or malformed values default to zero.
func parseBudgetForm(r *http.Request) *models.BudgetEntry {
	return &models.BudgetEntry{
		Salary:         formFloat(r, "salary"),
		FreelancingOne: formFloat(r, "freelancing_one"),
		FreelancingTwo: formFloat(r, "freelancing_two"),

		MobileRecharge: formFloat(r, "mobile_recharge"),
		Wifi:           formFloat(r, "wifi"),
		EmiOne:         formFloat(r, "emi_one"),
		EmiTwo:         formFloat(r, "emi_two"),
		EmiThree:       formFloat(r, "emi_three"),
		EmiFour:        formFloat(r, "emi_four"),
		Food:           formFloat(r, "food"),
		Rent:           formFloat(r, "rent"),
		CreditcardOne:  formFloat(r, "creditcard_one"),
		CreditcardTwo:  formFloat(r, "creditcard_two"),
		Shopping:       formFloat(r, "shopping"),
		Travel:         formFloat(r, "travel"),
		OtherExpenses:  formFloat(r, "other_expenses"),

		Sip:             formFloat(r, "sip"),
		FixedDepositOne: formFloat(r, "fixed_deposit_one"),
		FixedDepositTwo: formFloat(r, "fixed_deposit_two"),
		Etf:             formFloat(r, "etf"),
	}
}

func formFloat(r *http.Request, name string) float64 {
	v, err := strconv.ParseFloat(r.FormValue(name), 64)
	if err != nil {
		return 0
	}
	return v
}
