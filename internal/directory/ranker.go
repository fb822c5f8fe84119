// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package directory

import (
	"github.com/google/uuid"

	"linkshelf/internal/models"
)

// PageStore is the subset of store.PageStore the ranker needs.
type PageStore interface {
	ListByCategory(categoryID uuid.UUID) ([]models.Page, error)
	ListTop(n int) ([]models.Page, error)
	IncrementViews(id uuid.UUID) (string, error)
}

// Ranker orders a category's pages by popularity and records click-throughs.
type Ranker struct {
	pages PageStore
}

// NewRanker creates a Ranker over the given page store.
func NewRanker(pages PageStore) *Ranker {
	return &Ranker{pages: pages}
}

// PagesFor returns all pages in the category ordered by descending view
// count, ties in insertion order.
func (r *Ranker) PagesFor(categoryID uuid.UUID) ([]models.Page, error) {
	return r.pages.ListByCategory(categoryID)
}

// TopPages returns the n most viewed pages across all categories.
func (r *Ranker) TopPages(n int) ([]models.Page, error) {
	return r.pages.ListTop(n)
}

// RecordView atomically increments a page's view counter and returns its
// stored external URL for redirection. Fails with store.ErrNotFound — and
// records nothing — when the id does not resolve.
func (r *Ranker) RecordView(id uuid.UUID) (string, error) {
	return r.pages.IncrementViews(id)
}
