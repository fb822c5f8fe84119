// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package search provides the external web-search collaborator used by the
// in-category search form. The handler layer depends only on the Searcher
// interface; the shipped implementation talks to a Bing-compatible HTTP API.
package search

import "context"

// Result is one hit returned by the search collaborator.
type Result struct {
	Title   string
	URL     string
	Summary string
}

// Searcher runs a free-text query against an external search service.
type Searcher interface {
	Search(ctx context.Context, query string) ([]Result, error)
}

// Config holds the credentials and settings for the web search client.
type Config struct {
	APIKey  string
	BaseURL string
}
