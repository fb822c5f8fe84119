// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"linkshelf/internal/models"
)

// ErrNotFound is returned by mutating operations when the target row does
// not exist. Read operations return (nil, nil) instead — an absent category
// or page is a normal outcome for them, not a failure.
var ErrNotFound = errors.New("store: not found")

// CategoryStore handles all category-related database operations.
type CategoryStore struct {
	db *sql.DB
}

// NewCategoryStore creates a new CategoryStore with the given database connection.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

const categoryColumns = `id, name, description, likes, created_at, updated_at`

// scanCategory reads one category row from a row scanner.
func scanCategory(row interface{ Scan(...any) error }, c *models.Category) error {
	return row.Scan(&c.ID, &c.Name, &c.Description, &c.Likes, &c.CreatedAt, &c.UpdatedAt)
}

// ListTop returns up to n categories ordered by descending like count.
// Ties keep insertion order so repeated listings are reproducible.
func (s *CategoryStore) ListTop(n int) ([]models.Category, error) {
	rows, err := s.db.Query(`
		SELECT `+categoryColumns+`
		FROM categories
		ORDER BY likes DESC, created_at ASC, id ASC
		LIMIT $1
	`, n)
	if err != nil {
		return nil, fmt.Errorf("list top categories: %w", err)
	}
	defer rows.Close()
	return collectCategories(rows)
}

// List returns all categories in insertion order.
func (s *CategoryStore) List() ([]models.Category, error) {
	rows, err := s.db.Query(`
		SELECT ` + categoryColumns + `
		FROM categories
		ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	return collectCategories(rows)
}

// ListByPrefix returns categories whose name starts with prefix,
// case-insensitively, in insertion order. When limit > 0 the result is
// truncated to the first limit matches; no relevance ranking is applied.
func (s *CategoryStore) ListByPrefix(prefix string, limit int) ([]models.Category, error) {
	q := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE name ILIKE $1 ESCAPE '\'
		ORDER BY created_at ASC, id ASC
	`
	args := []any{escapeLike(prefix) + "%"}
	if limit > 0 {
		q += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("list categories by prefix: %w", err)
	}
	defer rows.Close()
	return collectCategories(rows)
}

// FindByName retrieves a category by exact name, case-insensitively.
// Returns nil if not found.
func (s *CategoryStore) FindByName(name string) (*models.Category, error) {
	c := &models.Category{}
	err := scanCategory(s.db.QueryRow(`
		SELECT `+categoryColumns+`
		FROM categories WHERE LOWER(name) = LOWER($1)
	`, name), c)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by name: %w", err)
	}
	return c, nil
}

// FindByID retrieves a category by its UUID. Returns nil if not found.
func (s *CategoryStore) FindByID(id uuid.UUID) (*models.Category, error) {
	c := &models.Category{}
	err := scanCategory(s.db.QueryRow(`
		SELECT `+categoryColumns+`
		FROM categories WHERE id = $1
	`, id), c)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by id: %w", err)
	}
	return c, nil
}

// Create inserts a new category and returns it with the generated ID.
// The unique index on LOWER(name) rejects case-insensitive duplicates.
func (s *CategoryStore) Create(name string, description *string) (*models.Category, error) {
	c := &models.Category{}
	err := scanCategory(s.db.QueryRow(`
		INSERT INTO categories (name, description)
		VALUES ($1, $2)
		RETURNING `+categoryColumns+`
	`, name, description), c)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return c, nil
}

// IncrementLikes atomically bumps the like counter and returns the new
// value. The single UPDATE statement is the serialization point: N
// concurrent calls against the same row always advance it by exactly N.
// Returns ErrNotFound if the id does not resolve.
func (s *CategoryStore) IncrementLikes(id uuid.UUID) (int, error) {
	var likes int
	err := s.db.QueryRow(`
		UPDATE categories SET likes = likes + 1, updated_at = NOW()
		WHERE id = $1
		RETURNING likes
	`, id).Scan(&likes)
	if err == sql.ErrNoRows {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("increment likes: %w", err)
	}
	return likes, nil
}

// collectCategories drains a result set into a slice.
func collectCategories(rows *sql.Rows) ([]models.Category, error) {
	var cats []models.Category
	for rows.Next() {
		var c models.Category
		if err := scanCategory(rows, &c); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

// escapeLike escapes LIKE metacharacters so user input matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
