package sqlite

import (
	"context"
	"fmt"

	"github.com/sakif/trivia-api/internal/model"
)

// CreateCategory inserts c. A zero c.ID lets SQLite pick the next id;
// a non-zero c.ID is inserted as given (seeding, tests).
func (db *DB) CreateCategory(ctx context.Context, c *model.Category) error {
	if c.ID != 0 {
		if _, err := db.conn.ExecContext(ctx,
			`INSERT INTO categories (id, type) VALUES (?, ?)`, c.ID, c.Type,
		); err != nil {
			return fmt.Errorf("sqlite: creating category %d: %w", c.ID, err)
		}
		return nil
	}

	result, err := db.conn.ExecContext(ctx, `INSERT INTO categories (type) VALUES (?)`, c.Type)
	if err != nil {
		return fmt.Errorf("sqlite: creating category: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading new category id: %w", err)
	}
	c.ID = id
	return nil
}

// ListCategories returns every category ordered by id.
func (db *DB) ListCategories(ctx context.Context) ([]model.Category, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT id, type FROM categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing categories: %w", err)
	}
	defer rows.Close()

	categories := make([]model.Category, 0)
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Type); err != nil {
			return nil, fmt.Errorf("sqlite: scanning category row: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating categories: %w", err)
	}

	return categories, nil
}
