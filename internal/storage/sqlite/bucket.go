package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"budgetplanner/internal/models"
	"budgetplanner/internal/storage"
)

// CreateBucketItem inserts a new wish-list item
func (s *Storage) CreateBucketItem(ctx context.Context, item *models.BucketItem) error {
	query := `
		INSERT INTO bucket_items (user_id, name, category, price, description, priority, target_date, completed, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := s.db.ExecContext(ctx, query,
		item.UserID,
		item.Name,
		item.Category,
		item.Price,
		item.Description,
		item.Priority,
		item.TargetDate,
		item.Completed,
		item.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to insert bucket item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted item id: %w", err)
	}
	item.ID = id

	return nil
}

// UpdateBucketItem overwrites an item's editable fields
func (s *Storage) UpdateBucketItem(ctx context.Context, item *models.BucketItem) error {
	query := `
		UPDATE bucket_items
		SET name = ?, category = ?, price = ?, description = ?, priority = ?, target_date = ?
		WHERE id = ? AND user_id = ?
	`

	result, err := s.db.ExecContext(ctx, query,
		item.Name,
		item.Category,
		item.Price,
		item.Description,
		item.Priority,
		item.TargetDate,
		item.ID,
		item.UserID,
	)

	if err != nil {
		return fmt.Errorf("failed to update bucket item: %w", err)
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

// CompleteBucketItem marks an item completed with a timestamp
func (s *Storage) CompleteBucketItem(ctx context.Context, userID, itemID int64) error {
	query := `UPDATE bucket_items SET completed = 1, completed_at = ? WHERE id = ? AND user_id = ?`

	result, err := s.db.ExecContext(ctx, query, time.Now(), itemID, userID)
	if err != nil {
		return fmt.Errorf("failed to complete bucket item: %w", err)
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

// DeleteBucketItem removes an item scoped to the user
func (s *Storage) DeleteBucketItem(ctx context.Context, userID, itemID int64) error {
	query := `DELETE FROM bucket_items WHERE id = ? AND user_id = ?`

	result, err := s.db.ExecContext(ctx, query, itemID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete bucket item: %w", err)
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

// ListBucketItems returns all of the user's items, newest first
func (s *Storage) ListBucketItems(ctx context.Context, userID int64) ([]models.BucketItem, error) {
	query := `
		SELECT id, user_id, name, category, price, description, priority, target_date, completed, created_at, completed_at
		FROM bucket_items
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query bucket items: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var items []models.BucketItem

	for rows.Next() {
		var item models.BucketItem
		var completedAt sql.NullTime
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.Name, &item.Category, &item.Price,
			&item.Description, &item.Priority, &item.TargetDate, &item.Completed,
			&item.CreatedAt, &completedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan bucket item: %w", err)
		}
		if completedAt.Valid {
			item.CompletedAt = &completedAt.Time
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return items, nil
}
