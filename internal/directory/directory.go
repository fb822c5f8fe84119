// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package directory is the read-oriented lookup layer over the category and
// page stores. It annotates every listed category with its slug — recomputed
// on each listing, since slugs are derived from names and never stored — and
// resolves inbound URL tokens through a case-insensitive name match.
package directory

import (
	"github.com/google/uuid"

	"linkshelf/internal/models"
	"linkshelf/internal/slug"
)

// CategoryStore is the subset of store.CategoryStore the directory needs.
type CategoryStore interface {
	ListTop(n int) ([]models.Category, error)
	List() ([]models.Category, error)
	ListByPrefix(prefix string, limit int) ([]models.Category, error)
	FindByName(name string) (*models.Category, error)
	IncrementLikes(id uuid.UUID) (int, error)
}

// Directory provides slug-annotated category listings and lookups.
type Directory struct {
	categories CategoryStore
}

// New creates a Directory over the given category store.
func New(categories CategoryStore) *Directory {
	return &Directory{categories: categories}
}

// ListTop returns up to n categories by descending like count, slugs
// annotated.
func (d *Directory) ListTop(n int) ([]models.Category, error) {
	cats, err := d.categories.ListTop(n)
	if err != nil {
		return nil, err
	}
	return annotate(cats), nil
}

// ListAll returns every category in insertion order, slugs annotated.
func (d *Directory) ListAll() ([]models.Category, error) {
	cats, err := d.categories.List()
	if err != nil {
		return nil, err
	}
	return annotate(cats), nil
}

// ListByPrefix returns categories whose name case-insensitively starts with
// prefix, truncated to limit when limit > 0. An empty match is an empty
// slice, never an error.
func (d *Directory) ListByPrefix(prefix string, limit int) ([]models.Category, error) {
	cats, err := d.categories.ListByPrefix(prefix, limit)
	if err != nil {
		return nil, err
	}
	return annotate(cats), nil
}

// FindExact resolves a category by name, case-insensitively. A nil result
// with nil error means not found; callers render a "no such category" state.
func (d *Directory) FindExact(name string) (*models.Category, error) {
	c, err := d.categories.FindByName(name)
	if err != nil || c == nil {
		return nil, err
	}
	c.Slug = slug.ToSlug(c.Name)
	return c, nil
}

// FindBySlug resolves an inbound URL token. The token is expanded with
// slug.SearchKey and matched case-insensitively, which absorbs the codec's
// lossiness for any name the token could have been derived from.
func (d *Directory) FindBySlug(token string) (*models.Category, error) {
	return d.FindExact(slug.SearchKey(token))
}

// Like atomically increments a category's like counter and returns the new
// value. Fails with store.ErrNotFound when the id does not resolve.
func (d *Directory) Like(id uuid.UUID) (int, error) {
	return d.categories.IncrementLikes(id)
}

// annotate recomputes the slug for every category in the listing.
func annotate(cats []models.Category) []models.Category {
	for i := range cats {
		cats[i].Slug = slug.ToSlug(cats[i].Name)
	}
	return cats
}
