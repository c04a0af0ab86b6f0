package postgres

import (
	"context"
	"fmt"

	"github.com/sakif/trivia-api/internal/model"
)

// CreateCategory inserts c. With an explicit c.ID the identity sequence is moved
// past it so later inserts without an id do not collide.
func (db *DB) CreateCategory(ctx context.Context, c *model.Category) error {
	if c.ID == 0 {
		err := db.pool.QueryRow(ctx,
			`INSERT INTO categories (type) VALUES ($1) RETURNING id`, c.Type,
		).Scan(&c.ID)
		if err != nil {
			return fmt.Errorf("postgres: creating category: %w", err)
		}
		return nil
	}

	if _, err := db.pool.Exec(ctx,
		`INSERT INTO categories (id, type) VALUES ($1, $2)`, c.ID, c.Type,
	); err != nil {
		return fmt.Errorf("postgres: creating category %d: %w", c.ID, err)
	}
	if _, err := db.pool.Exec(ctx,
		`SELECT setval(pg_get_serial_sequence('categories', 'id'), (SELECT MAX(id) FROM categories))`,
	); err != nil {
		return fmt.Errorf("postgres: advancing category sequence: %w", err)
	}
	return nil
}

// ListCategories returns every category ordered by id.
func (db *DB) ListCategories(ctx context.Context) ([]model.Category, error) {
	rows, err := db.pool.Query(ctx, `SELECT id, type FROM categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("postgres: listing categories: %w", err)
	}
	defer rows.Close()

	categories := make([]model.Category, 0)
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Type); err != nil {
			return nil, fmt.Errorf("postgres: scanning category row: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: iterating categories: %w", err)
	}
	return categories, nil
}
