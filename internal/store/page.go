// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"linkshelf/internal/models"
)

// PageStore handles all page-related database operations.
type PageStore struct {
	db *sql.DB
}

// NewPageStore creates a new PageStore with the given database connection.
func NewPageStore(db *sql.DB) *PageStore {
	return &PageStore{db: db}
}

const pageColumns = `id, category_id, title, url, views, created_at, updated_at`

func scanPage(row interface{ Scan(...any) error }, p *models.Page) error {
	return row.Scan(&p.ID, &p.CategoryID, &p.Title, &p.URL, &p.Views, &p.CreatedAt, &p.UpdatedAt)
}

// ListByCategory returns a category's pages ordered by descending view
// count, ties in insertion order.
func (s *PageStore) ListByCategory(categoryID uuid.UUID) ([]models.Page, error) {
	rows, err := s.db.Query(`
		SELECT `+pageColumns+`
		FROM pages
		WHERE category_id = $1
		ORDER BY views DESC, created_at ASC, id ASC
	`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list pages by category: %w", err)
	}
	defer rows.Close()

	var pages []models.Page
	for rows.Next() {
		var p models.Page
		if err := scanPage(rows, &p); err != nil {
			return nil, fmt.Errorf("scan page: %w", err)
		}
		pages = append(pages, p)
	}
	return pages, rows.Err()
}

// ListTop returns up to n pages across all categories ordered by descending
// view count. Used for the home page listing.
func (s *PageStore) ListTop(n int) ([]models.Page, error) {
	rows, err := s.db.Query(`
		SELECT `+pageColumns+`
		FROM pages
		ORDER BY views DESC, created_at ASC, id ASC
		LIMIT $1
	`, n)
	if err != nil {
		return nil, fmt.Errorf("list top pages: %w", err)
	}
	defer rows.Close()

	var pages []models.Page
	for rows.Next() {
		var p models.Page
		if err := scanPage(rows, &p); err != nil {
			return nil, fmt.Errorf("scan page: %w", err)
		}
		pages = append(pages, p)
	}
	return pages, rows.Err()
}

// FindByID retrieves a page by its UUID. Returns nil if not found.
func (s *PageStore) FindByID(id uuid.UUID) (*models.Page, error) {
	p := &models.Page{}
	err := scanPage(s.db.QueryRow(`
		SELECT `+pageColumns+`
		FROM pages WHERE id = $1
	`, id), p)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find page by id: %w", err)
	}
	return p, nil
}

// Create inserts a new page with zero views and returns it.
func (s *PageStore) Create(categoryID uuid.UUID, title, url string) (*models.Page, error) {
	p := &models.Page{}
	err := scanPage(s.db.QueryRow(`
		INSERT INTO pages (category_id, title, url)
		VALUES ($1, $2, $3)
		RETURNING `+pageColumns+`
	`, categoryID, title, url), p)
	if err != nil {
		return nil, fmt.Errorf("create page: %w", err)
	}
	return p, nil
}

// GetOrCreate returns the existing page with the given category, title and
// url, or inserts it if absent. Used by the auto-add endpoint, which may be
// called repeatedly with the same link.
func (s *PageStore) GetOrCreate(categoryID uuid.UUID, title, url string) (*models.Page, error) {
	p := &models.Page{}
	err := scanPage(s.db.QueryRow(`
		SELECT `+pageColumns+`
		FROM pages
		WHERE category_id = $1 AND title = $2 AND url = $3
		ORDER BY created_at ASC, id ASC
		LIMIT 1
	`, categoryID, title, url), p)
	if err == nil {
		return p, nil
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("get or create page: %w", err)
	}
	return s.Create(categoryID, title, url)
}

// IncrementViews atomically bumps the view counter and returns the page's
// stored external URL for redirection. Same single-statement atomicity
// guarantee as CategoryStore.IncrementLikes. Returns ErrNotFound (and
// mutates nothing) if the id does not resolve.
func (s *PageStore) IncrementViews(id uuid.UUID) (string, error) {
	var url string
	err := s.db.QueryRow(`
		UPDATE pages SET views = views + 1, updated_at = NOW()
		WHERE id = $1
		RETURNING url
	`, id).Scan(&url)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("increment views: %w", err)
	}
	return url, nil
}
