package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"budgetplanner/internal/models"
	"budgetplanner/internal/storage"
)

// CreateVariableEntry inserts a new draft entry
func (s *Storage) CreateVariableEntry(ctx context.Context, entry *models.VariableEntry) error {
	query := `
		INSERT INTO variable_entries (user_id, month, year, category, description, amount, finalized, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := s.db.ExecContext(ctx, query,
		entry.UserID,
		entry.Month,
		entry.Year,
		entry.Category,
		entry.Description,
		entry.Amount,
		entry.Finalized,
		entry.CreatedAt,
		entry.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to insert variable entry: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted entry id: %w", err)
	}
	entry.ID = id

	return nil
}

// UpdateVariableEntry updates description and amount of a draft entry.
// Finalized rows are immutable and reported as ErrEntryNotFound.
func (s *Storage) UpdateVariableEntry(ctx context.Context, userID, entryID int64, description string, amount float64) error {
	query := `
		UPDATE variable_entries
		SET description = ?, amount = ?, updated_at = ?
		WHERE id = ? AND user_id = ? AND finalized = 0
	`

	result, err := s.db.ExecContext(ctx, query, description, amount, time.Now(), entryID, userID)
	if err != nil {
		return fmt.Errorf("failed to update variable entry: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrEntryNotFound
	}

	return nil
}

// DeleteVariableEntry removes a draft entry
func (s *Storage) DeleteVariableEntry(ctx context.Context, userID, entryID int64) error {
	query := `DELETE FROM variable_entries WHERE id = ? AND user_id = ? AND finalized = 0`

	result, err := s.db.ExecContext(ctx, query, entryID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete variable entry: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrEntryNotFound
	}

	return nil
}

// ListVariableEntries returns the user's entries for a period, newest first
func (s *Storage) ListVariableEntries(ctx context.Context, userID int64, month string, year int) ([]models.VariableEntry, error) {
	query := `
		SELECT id, user_id, month, year, category, description, amount, finalized, created_at, updated_at
		FROM variable_entries
		WHERE user_id = ? AND month = ? AND year = ?
		ORDER BY created_at DESC, id DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query variable entries: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var entries []models.VariableEntry

	for rows.Next() {
		var e models.VariableEntry
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.Month, &e.Year,
			&e.Category, &e.Description, &e.Amount, &e.Finalized,
			&e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan variable entry: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return entries, nil
}

// FinalizeVariableEntries folds all draft entries for the period into
// the period's budget entry, creating it when absent, and marks the
// drafts finalized. The read, the rollup and the flag update share one
// transaction so concurrent finalize calls cannot double-count.
func (s *Storage) FinalizeVariableEntries(ctx context.Context, userID int64, month string, year int) (map[string]float64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	rows, err := tx.QueryContext(ctx, `
		SELECT category, amount
		FROM variable_entries
		WHERE user_id = ? AND month = ? AND year = ? AND finalized = 0
	`, userID, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query draft entries: %w", err)
	}

	totals := make(map[string]float64)
	drafts := 0
	for rows.Next() {
		var category string
		var amount float64
		if err := rows.Scan(&category, &amount); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("failed to scan draft entry: %w", err)
		}
		totals[category] += amount
		drafts++
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	_ = rows.Close()

	if drafts == 0 {
		return totals, nil
	}

	entry, err := s.getBudgetEntryByPeriod(ctx, tx, userID, month, year)
	if err != nil {
		if !errors.Is(err, storage.ErrEntryNotFound) {
			return nil, err
		}
		entry = &models.BudgetEntry{
			UserID:    userID,
			Month:     month,
			Year:      year,
			CreatedAt: time.Now(),
		}
		if err := s.createBudgetEntry(ctx, tx, entry); err != nil {
			return nil, err
		}
	}

	for category, total := range totals {
		switch category {
		case "food":
			entry.Food += total
		case "travel":
			entry.Travel += total
		case "shopping":
			entry.Shopping += total
		case "other":
			entry.OtherExpenses += total
		}
	}

	if err := s.updateBudgetEntry(ctx, tx, entry); err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE variable_entries
		SET finalized = 1, updated_at = ?
		WHERE user_id = ? AND month = ? AND year = ? AND finalized = 0
	`, time.Now(), userID, month, year); err != nil {
		return nil, fmt.Errorf("failed to mark entries finalized: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit finalize: %w", err)
	}

	return totals, nil
}
