// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"linkshelf/internal/cache"
	"linkshelf/internal/directory"
	"linkshelf/internal/markdown"
	"linkshelf/internal/render"
	"linkshelf/internal/search"
	"linkshelf/internal/session"
)

const (
	// topListSize is how many categories and pages the home page shows.
	topListSize = 5

	// suggestLimit caps the typeahead fragment.
	suggestLimit = 8

	// visitWindow is the minimum gap between counted home page visits.
	visitWindow = 5 * time.Second
)

// Public groups the handlers anyone can reach: browsing, searching,
// click tracking, and the typeahead endpoint. searcher and suggestCache
// may be nil when the collaborating services are not configured.
type Public struct {
	renderer     *render.Renderer
	sessions     *session.Store
	dir          *directory.Directory
	ranker       *directory.Ranker
	searcher     search.Searcher
	suggestCache *cache.SuggestCache
}

// NewPublic creates a new Public handler group.
func NewPublic(renderer *render.Renderer, sessions *session.Store, dir *directory.Directory, ranker *directory.Ranker, searcher search.Searcher, suggestCache *cache.SuggestCache) *Public {
	return &Public{
		renderer:     renderer,
		sessions:     sessions,
		dir:          dir,
		ranker:       ranker,
		searcher:     searcher,
		suggestCache: suggestCache,
	}
}

// Home shows the most liked categories and most viewed pages, and bumps
// the per-session visit counter at most once per visitWindow.
func (p *Public) Home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sess, err := p.sessions.Get(ctx, r)
	if err != nil {
		slog.Error("home session load failed", "error", err)
	}
	now := time.Now()
	if sess == nil {
		sess = &session.Data{Visits: 1, LastVisit: now}
		if _, err := p.sessions.Create(ctx, w, sess); err != nil {
			slog.Error("home session create failed", "error", err)
		}
	} else if now.Sub(sess.LastVisit) > visitWindow {
		sess.Visits++
		sess.LastVisit = now
		if err := p.sessions.Update(ctx, r, sess); err != nil {
			slog.Error("home session update failed", "error", err)
		}
	}

	categories, err := p.dir.ListTop(topListSize)
	if err != nil {
		slog.Error("list top categories failed", "error", err)
	}
	pages, err := p.ranker.TopPages(topListSize)
	if err != nil {
		slog.Error("list top pages failed", "error", err)
	}

	p.renderer.Page(w, r, "index", &render.PageData{
		Title:   "Home",
		Session: sess,
		Data: map[string]any{
			"Categories": categories,
			"Pages":      pages,
			"Visits":     sess.Visits,
		},
	})
}

// About shows the about page and counts every view in the session.
func (p *Public) About(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sess, err := p.sessions.Get(ctx, r)
	if err != nil {
		slog.Error("about session load failed", "error", err)
	}
	if sess == nil {
		sess = &session.Data{VisitCount: 1}
		if _, err := p.sessions.Create(ctx, w, sess); err != nil {
			slog.Error("about session create failed", "error", err)
		}
	} else {
		sess.VisitCount++
		if err := p.sessions.Update(ctx, r, sess); err != nil {
			slog.Error("about session update failed", "error", err)
		}
	}

	p.renderer.Page(w, r, "about", &render.PageData{
		Title:   "About",
		Session: sess,
		Data:    map[string]any{"VisitCount": sess.VisitCount},
	})
}

// Category shows one category with its pages ranked by views. An unknown
// slug renders the placeholder branch of the template, not a 404 page.
// POST runs the web search form; an empty query never calls the search
// collaborator.
func (p *Public) Category(w http.ResponseWriter, r *http.Request) {
	slugToken := chi.URLParam(r, "slug")

	cat, err := p.dir.FindBySlug(slugToken)
	if err != nil {
		slog.Error("category lookup failed", "slug", slugToken, "error", err)
	}

	data := map[string]any{}
	if cat != nil {
		data["Category"] = cat

		pages, err := p.ranker.PagesFor(cat.ID)
		if err != nil {
			slog.Error("category pages failed", "category_id", cat.ID, "error", err)
		}
		data["Pages"] = pages

		if cat.Description != nil {
			html, err := markdown.ToHTML(*cat.Description)
			if err != nil {
				slog.Warn("description render failed", "category_id", cat.ID, "error", err)
			} else {
				data["DescriptionHTML"] = html
			}
		}

		if r.Method == http.MethodPost {
			query := strings.TrimSpace(r.FormValue("query"))
			data["Query"] = query
			if query != "" && p.searcher != nil {
				results, err := p.searcher.Search(r.Context(), query)
				if err != nil {
					slog.Error("web search failed", "query", query, "error", err)
					data["SearchError"] = true
				} else {
					data["Results"] = results
				}
			}
		}
	}

	title := "Unknown Category"
	if cat != nil {
		title = cat.Name
	}
	p.renderer.Page(w, r, "category", &render.PageData{Title: title, Data: data})
}

// TrackClick records a view on a page and redirects the visitor to the
// page's external URL. Anything invalid redirects home instead.
func (p *Public) TrackClick(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.URL.Query().Get("page_id"))
	if err != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	url, err := p.ranker.RecordView(id)
	if err != nil {
		slog.Warn("click tracking failed", "page_id", id, "error", err)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, url, http.StatusSeeOther)
}

// Suggest returns the typeahead fragment for a category name prefix.
// Results are cached in Valkey for a short TTL keyed by the normalized
// prefix. An empty prefix renders the empty fragment without a lookup.
func (p *Public) Suggest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	prefix := strings.TrimSpace(r.URL.Query().Get("suggestion"))

	if prefix == "" {
		p.renderer.Fragment(w, "suggestions", nil)
		return
	}

	key := cache.Key(prefix)
	if p.suggestCache != nil {
		if html, ok := p.suggestCache.Get(ctx, key); ok {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.Write(html)
			return
		}
	}

	categories, err := p.dir.ListByPrefix(prefix, suggestLimit)
	if err != nil {
		slog.Error("suggest lookup failed", "prefix", prefix, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	html, err := p.renderer.FragmentBytes("suggestions", categories)
	if err != nil {
		slog.Error("suggest render failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if p.suggestCache != nil {
		p.suggestCache.Set(ctx, key, html)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(html)
}

// Health reports liveness for load balancers.
func (p *Public) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}
