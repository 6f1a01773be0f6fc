package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"budgetplanner/internal/models"
	"budgetplanner/internal/storage"
)

const budgetColumns = `
	id, user_id, month, year,
	salary, freelancing_one, freelancing_two,
	mobile_recharge, wifi, emi_one, emi_two, emi_three, emi_four,
	food, rent, creditcard_one, creditcard_two, shopping, travel, other_expenses,
	sip, fixed_deposit_one, fixed_deposit_two, etf,
	created_at`

// scanner abstracts *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

func scanBudgetEntry(row scanner, e *models.BudgetEntry) error {
	return row.Scan(
		&e.ID, &e.UserID, &e.Month, &e.Year,
		&e.Salary, &e.FreelancingOne, &e.FreelancingTwo,
		&e.MobileRecharge, &e.Wifi, &e.EmiOne, &e.EmiTwo, &e.EmiThree, &e.EmiFour,
		&e.Food, &e.Rent, &e.CreditcardOne, &e.CreditcardTwo, &e.Shopping, &e.Travel, &e.OtherExpenses,
		&e.Sip, &e.FixedDepositOne, &e.FixedDepositTwo, &e.Etf,
		&e.CreatedAt,
	)
}

// CreateBudgetEntry inserts a new monthly entry
func (s *Storage) CreateBudgetEntry(ctx context.Context, entry *models.BudgetEntry) error {
	return s.createBudgetEntry(ctx, s.db, entry)
}

// execer abstracts *sql.DB and *sql.Tx so finalize can reuse the same
// statements inside its transaction.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *Storage) createBudgetEntry(ctx context.Context, db execer, entry *models.BudgetEntry) error {
	query := `
		INSERT INTO budget_entries (
			user_id, month, year,
			salary, freelancing_one, freelancing_two,
			mobile_recharge, wifi, emi_one, emi_two, emi_three, emi_four,
			food, rent, creditcard_one, creditcard_two, shopping, travel, other_expenses,
			sip, fixed_deposit_one, fixed_deposit_two, etf,
			created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := db.ExecContext(ctx, query,
		entry.UserID, entry.Month, entry.Year,
		entry.Salary, entry.FreelancingOne, entry.FreelancingTwo,
		entry.MobileRecharge, entry.Wifi, entry.EmiOne, entry.EmiTwo, entry.EmiThree, entry.EmiFour,
		entry.Food, entry.Rent, entry.CreditcardOne, entry.CreditcardTwo, entry.Shopping, entry.Travel, entry.OtherExpenses,
		entry.Sip, entry.FixedDepositOne, entry.FixedDepositTwo, entry.Etf,
		entry.CreatedAt,
	)

	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return storage.ErrEntryExists
		}
		return fmt.Errorf("failed to insert budget entry: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted entry id: %w", err)
	}
	entry.ID = id

	return nil
}

// UpdateBudgetEntry overwrites an existing entry's amounts
func (s *Storage) UpdateBudgetEntry(ctx context.Context, entry *models.BudgetEntry) error {
	return s.updateBudgetEntry(ctx, s.db, entry)
}

func (s *Storage) updateBudgetEntry(ctx context.Context, db execer, entry *models.BudgetEntry) error {
	query := `
		UPDATE budget_entries SET
			salary = ?, freelancing_one = ?, freelancing_two = ?,
			mobile_recharge = ?, wifi = ?, emi_one = ?, emi_two = ?, emi_three = ?, emi_four = ?,
			food = ?, rent = ?, creditcard_one = ?, creditcard_two = ?, shopping = ?, travel = ?, other_expenses = ?,
			sip = ?, fixed_deposit_one = ?, fixed_deposit_two = ?, etf = ?
		WHERE id = ? AND user_id = ?
	`

	result, err := db.ExecContext(ctx, query,
		entry.Salary, entry.FreelancingOne, entry.FreelancingTwo,
		entry.MobileRecharge, entry.Wifi, entry.EmiOne, entry.EmiTwo, entry.EmiThree, entry.EmiFour,
		entry.Food, entry.Rent, entry.CreditcardOne, entry.CreditcardTwo, entry.Shopping, entry.Travel, entry.OtherExpenses,
		entry.Sip, entry.FixedDepositOne, entry.FixedDepositTwo, entry.Etf,
		entry.ID, entry.UserID,
	)

	if err != nil {
		return fmt.Errorf("failed to update budget entry: %w", err)
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

// GetBudgetEntry retrieves an entry by id scoped to the user
func (s *Storage) GetBudgetEntry(ctx context.Context, userID, entryID int64) (*models.BudgetEntry, error) {
	query := `SELECT ` + budgetColumns + ` FROM budget_entries WHERE id = ? AND user_id = ?`

	entry := &models.BudgetEntry{}
	err := scanBudgetEntry(s.db.QueryRowContext(ctx, query, entryID, userID), entry)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrEntryNotFound
		}
		return nil, fmt.Errorf("failed to get budget entry: %w", err)
	}

	return entry, nil
}

// GetBudgetEntryByPeriod retrieves the entry for (month, year)
func (s *Storage) GetBudgetEntryByPeriod(ctx context.Context, userID int64, month string, year int) (*models.BudgetEntry, error) {
	return s.getBudgetEntryByPeriod(ctx, s.db, userID, month, year)
}

func (s *Storage) getBudgetEntryByPeriod(ctx context.Context, db execer, userID int64, month string, year int) (*models.BudgetEntry, error) {
	query := `SELECT ` + budgetColumns + ` FROM budget_entries WHERE user_id = ? AND month = ? AND year = ?`

	entry := &models.BudgetEntry{}
	err := scanBudgetEntry(db.QueryRowContext(ctx, query, userID, month, year), entry)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrEntryNotFound
		}
		return nil, fmt.Errorf("failed to get budget entry by period: %w", err)
	}

	return entry, nil
}

// ListBudgetEntries returns all of the user's entries, newest first
func (s *Storage) ListBudgetEntries(ctx context.Context, userID int64) ([]models.BudgetEntry, error) {
	query := `SELECT ` + budgetColumns + ` FROM budget_entries WHERE user_id = ? ORDER BY year DESC, created_at DESC`

	return s.queryBudgetEntries(ctx, query, userID)
}

// ListBudgetEntriesByYear returns the user's entries for one year in
// calendar month order.
func (s *Storage) ListBudgetEntriesByYear(ctx context.Context, userID int64, year int) ([]models.BudgetEntry, error) {
	// Month is stored as a name, so order by its calendar position.
	query := `SELECT ` + budgetColumns + ` FROM budget_entries WHERE user_id = ? AND year = ?
		ORDER BY CASE month
			WHEN 'January' THEN 1 WHEN 'February' THEN 2 WHEN 'March' THEN 3
			WHEN 'April' THEN 4 WHEN 'May' THEN 5 WHEN 'June' THEN 6
			WHEN 'July' THEN 7 WHEN 'August' THEN 8 WHEN 'September' THEN 9
			WHEN 'October' THEN 10 WHEN 'November' THEN 11 WHEN 'December' THEN 12
		END`

	return s.queryBudgetEntries(ctx, query, userID, year)
}

func (s *Storage) queryBudgetEntries(ctx context.Context, query string, args ...any) ([]models.BudgetEntry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query budget entries: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var entries []models.BudgetEntry

	for rows.Next() {
		var e models.BudgetEntry
		if err := scanBudgetEntry(rows, &e); err != nil {
			return nil, fmt.Errorf("failed to scan budget entry: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return entries, nil
}

// DeleteBudgetEntry removes an entry by id scoped to the user
func (s *Storage) DeleteBudgetEntry(ctx context.Context, userID, entryID int64) error {
	query := `DELETE FROM budget_entries WHERE id = ? AND user_id = ?`

	result, err := s.db.ExecContext(ctx, query, entryID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete budget entry: %w", err)
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
