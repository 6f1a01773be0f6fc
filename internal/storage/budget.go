package storage

import (
	"context"

	"budgetplanner/internal/models"
)

// BudgetStorage defines interface for monthly budget entry persistence.
// Every operation is scoped to a user id; rows belonging to other
// users behave as if they do not exist.
type BudgetStorage interface {
	// CreateBudgetEntry inserts a new monthly entry and fills in its
	// generated ID. Returns ErrEntryExists if a row for the
	// (user, month, year) period is already present.
	CreateBudgetEntry(ctx context.Context, entry *models.BudgetEntry) error

	// UpdateBudgetEntry overwrites an existing entry's amounts.
	// Returns ErrEntryNotFound if the row is absent for the user.
	UpdateBudgetEntry(ctx context.Context, entry *models.BudgetEntry) error

	// GetBudgetEntry retrieves an entry by id for the user.
	GetBudgetEntry(ctx context.Context, userID, entryID int64) (*models.BudgetEntry, error)

	// GetBudgetEntryByPeriod retrieves the entry for (month, year).
	// Returns ErrEntryNotFound when the period has no entry.
	GetBudgetEntryByPeriod(ctx context.Context, userID int64, month string, year int) (*models.BudgetEntry, error)

	// ListBudgetEntries returns all of the user's entries, newest first.
	ListBudgetEntries(ctx context.Context, userID int64) ([]models.BudgetEntry, error)

	// ListBudgetEntriesByYear returns the user's entries for one year
	// in calendar month order.
	ListBudgetEntriesByYear(ctx context.Context, userID int64, year int) ([]models.BudgetEntry, error)

	// DeleteBudgetEntry removes an entry by id for the user.
	// Returns ErrEntryNotFound if the row is absent.
	DeleteBudgetEntry(ctx context.Context, userID, entryID int64) error
}

// VariableStorage defines interface for ad-hoc variable expense
// persistence and the finalize rollup.
type VariableStorage interface {
	// CreateVariableEntry inserts a new draft entry and fills in its
	// generated ID.
	CreateVariableEntry(ctx context.Context, entry *models.VariableEntry) error

	// UpdateVariableEntry updates description and amount of a draft
	// entry. Returns ErrEntryNotFound if the row is absent, belongs
	// to another user, or is already finalized.
	UpdateVariableEntry(ctx context.Context, userID, entryID int64, description string, amount float64) error

	// DeleteVariableEntry removes a draft entry. Finalized rows are
	// immutable and reported as ErrEntryNotFound.
	DeleteVariableEntry(ctx context.Context, userID, entryID int64) error

	// ListVariableEntries returns the user's entries for a period,
	// newest first, drafts and finalized alike.
	ListVariableEntries(ctx context.Context, userID int64, month string, year int) ([]models.VariableEntry, error)

	// FinalizeVariableEntries folds all draft entries for the period
	// into the period's budget entry (creating it when absent), marks
	// them finalized and returns the per-category sums applied. The
	// whole operation runs in a single transaction. No drafts is a
	// successful no-op returning an empty map.
	FinalizeVariableEntries(ctx context.Context, userID int64, month string, year int) (map[string]float64, error)
}

// BucketStorage defines interface for wish-list item persistence.
type BucketStorage interface {
	// CreateBucketItem inserts a new item and fills in its generated ID.
	CreateBucketItem(ctx context.Context, item *models.BucketItem) error

	// UpdateBucketItem overwrites an item's editable fields.
	UpdateBucketItem(ctx context.Context, item *models.BucketItem) error

	// CompleteBucketItem marks an item completed with a timestamp.
	CompleteBucketItem(ctx context.Context, userID, itemID int64) error

	// DeleteBucketItem removes an item for the user.
	DeleteBucketItem(ctx context.Context, userID, itemID int64) error

	// ListBucketItems returns all of the user's items, newest first.
	ListBucketItems(ctx context.Context, userID int64) ([]models.BucketItem, error)
}
