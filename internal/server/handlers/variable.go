package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"budgetplanner/internal/models"
	"budgetplanner/internal/storage"
	"budgetplanner/internal/validation"
)

// VariableHandler serves the variable expense buffer: ad-hoc draft
// expenses collected during the month and folded into the monthly
// budget on finalize.
type VariableHandler struct {
	logger    *slog.Logger
	variables storage.VariableStorage
	render    *Renderer
}

// NewVariableHandler creates a new handler for variable expenses.
func NewVariableHandler(logger *slog.Logger, variables storage.VariableStorage, render *Renderer) *VariableHandler {
	return &VariableHandler{
		logger:    logger,
		variables: variables,
		render:    render,
	}
}

// variableView holds data for the variable budget page. Entries are
// grouped by category; totals cover drafts only since finalized rows
// are already part of the monthly budget.
type variableView struct {
	User           *models.User
	GroupedEntries map[string][]models.VariableEntry
	CategoryTotals map[string]float64
	Categories     []string
	CurrentMonth   string
	CurrentYear    int
	Error          string
}

// Page handles GET /variable-budget for the current calendar month.
func (h *VariableHandler) Page(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, "")
}

func (h *VariableHandler) renderPage(w http.ResponseWriter, r *http.Request, errMsg string) {
	ctx := r.Context()
	user := UserFromContext(ctx)

	now := time.Now()
	month := now.Month().String()
	year := now.Year()

	entries, err := h.variables.ListVariableEntries(ctx, user.ID, month, year)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list variable entries", slog.Any("error", err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	grouped := make(map[string][]models.VariableEntry)
	totals := make(map[string]float64)
	for _, e := range entries {
		grouped[e.Category] = append(grouped[e.Category], e)
		if !e.Finalized {
			totals[e.Category] += e.Amount
		}
	}

	h.render.Render(w, "variable_budget.html", variableView{
		User:           user,
		GroupedEntries: grouped,
		CategoryTotals: totals,
		Categories:     validation.VariableCategories,
		CurrentMonth:   month,
		CurrentYear:    year,
		Error:          errMsg,
	})
}

// Add handles POST /variable-budget. The entry is stamped with the
// current calendar month; the category must be one of the four
// recognized values.
func (h *VariableHandler) Add(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := UserFromContext(ctx)

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	category := r.FormValue("category")
	description := strings.TrimSpace(r.FormValue("description"))
	amount := formFloat(r, "amount")

	if err := validation.ValidateVariableCategory(category); err != nil {
		h.renderPage(w, r, err.Error())
		return
	}
	if description == "" {
		h.renderPage(w, r, "description is required")
		return
	}

	now := time.Now()
	entry := &models.VariableEntry{
		UserID:      user.ID,
		Month:       now.Month().String(),
		Year:        now.Year(),
		Category:    category,
		Description: description,
		Amount:      amount,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := h.variables.CreateVariableEntry(ctx, entry); err != nil {
		h.logger.ErrorContext(ctx, "failed to create variable entry", slog.Any("error", err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/variable-budget", http.StatusFound)
}

// Update handles POST /variable-budget/update/{id}. Only draft
// entries can change; finalized rows 404.
func (h *VariableHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	description := strings.TrimSpace(r.FormValue("description"))
	amount := formFloat(r, "amount")

	if err := h.variables.UpdateVariableEntry(ctx, user.ID, entryID, description, amount); err != nil {
		if errors.Is(err, storage.ErrEntryNotFound) {
			http.NotFound(w, r)
			return
		}
		h.logger.ErrorContext(ctx, "failed to update variable entry", slog.Any("error", err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/variable-budget", http.StatusFound)
}

// Delete handles POST /variable-budget/delete/{id}. Finalized rows
// are immutable and 404.
func (h *VariableHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := UserFromContext(ctx)

	entryID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := h.variables.DeleteVariableEntry(ctx, user.ID, entryID); err != nil {
		if errors.Is(err, storage.ErrEntryNotFound) {
			http.NotFound(w, r)
			return
		}
		h.logger.ErrorContext(ctx, "failed to delete variable entry", slog.Any("error", err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/variable-budget", http.StatusFound)
}

// Finalize handles POST /variable-budget/finalize. All current-month
// drafts are folded into the month's budget entry in one transaction
// and become read-only. With no drafts this is a no-op redirect.
func (h *VariableHandler) Finalize(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := UserFromContext(ctx)

	now := time.Now()
	month := now.Month().String()
	year := now.Year()

	totals, err := h.variables.FinalizeVariableEntries(ctx, user.ID, month, year)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to finalize variable entries",
			slog.String("month", month), slog.Int("year", year), slog.Any("error", err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if len(totals) == 0 {
		http.Redirect(w, r, "/variable-budget", http.StatusFound)
		return
	}

	h.logger.InfoContext(ctx, "variable expenses finalized",
		slog.Int64("user_id", user.ID),
		slog.String("month", month),
		slog.Int("year", year),
		slog.Int("categories", len(totals)))

	http.Redirect(w, r, "/budget", http.StatusFound)
}
