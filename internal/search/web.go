// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// maxResults caps how many hits one query returns.
const maxResults = 10

// webSearcher implements Searcher against a Bing-compatible web search API
// (GET /v7.0/search with an Ocp-Apim-Subscription-Key header).
type webSearcher struct {
	config Config
	client *http.Client
}

// New creates a web search client. Returns nil when no API key is
// configured, so callers can treat the collaborator as absent.
func New(cfg Config) Searcher {
	if cfg.APIKey == "" {
		return nil
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.bing.microsoft.com"
	}
	return &webSearcher{
		config: cfg,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// webSearchResponse mirrors the subset of the API response we consume.
type webSearchResponse struct {
	WebPages struct {
		Value []struct {
			Name    string `json:"name"`
			URL     string `json:"url"`
			Snippet string `json:"snippet"`
		} `json:"value"`
	} `json:"webPages"`
}

// Search runs a query and returns up to maxResults hits.
func (s *webSearcher) Search(ctx context.Context, query string) ([]Result, error) {
	endpoint := fmt.Sprintf("%s/v7.0/search?q=%s&count=%d",
		s.config.BaseURL, url.QueryEscape(query), maxResults)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", s.config.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search call: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("search read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search API status %d: %s", resp.StatusCode, body)
	}

	var parsed webSearchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("search parse response: %w", err)
	}

	results := make([]Result, 0, len(parsed.WebPages.Value))
	for _, v := range parsed.WebPages.Value {
		results = append(results, Result{
			Title:   v.Name,
			URL:     v.URL,
			Summary: v.Snippet,
		})
	}
	return results, nil
}
