// Package router sets up all HTTP routes and middleware chains for the
// Linkshelf site. Browsing is open; mutating routes sit behind the
// session auth guard, and form routes carry CSRF protection.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"linkshelf/internal/handlers"
	"linkshelf/internal/middleware"
	"linkshelf/internal/session"
	"linkshelf/web"
)

// suggestRateLimit caps typeahead requests per client IP.
const (
	suggestRateLimit  = 30
	suggestRateWindow = 10 * time.Second
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up. The returned limiter must be stopped on
// shutdown.
func New(sessionStore *session.Store, public *handlers.Public, auth *handlers.Auth, member *handlers.Member) (chi.Router, *middleware.RateLimiter) {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadSession(sessionStore))

	// Health check — no auth, no CSRF.
	r.Get("/health", public.Health)

	// Static assets.
	r.Handle("/static/*", http.FileServer(http.FS(web.StaticFS)))

	// Typeahead — GET only, rate limited per client IP.
	limiter := middleware.NewRateLimiter(suggestRateLimit, suggestRateWindow)
	r.Group(func(r chi.Router) {
		r.Use(limiter.Middleware)
		r.Get("/suggest", public.Suggest)
	})

	// Browsing and forms.
	r.Group(func(r chi.Router) {
		r.Use(middleware.CSRF)

		r.Get("/", public.Home)
		r.Get("/about", public.About)
		r.Get("/category/{slug}", public.Category)
		r.Post("/category/{slug}", public.Category)
		r.Get("/goto", public.TrackClick)

		r.Get("/register", auth.RegisterPage)
		r.Post("/register", auth.RegisterSubmit)
		r.Get("/login", auth.LoginPage)
		r.Post("/login", auth.LoginSubmit)

		// Two-factor verification — needs a half-open session, not full auth.
		r.Get("/login/verify", auth.VerifyPage)
		r.Post("/login/verify", auth.VerifySubmit)

		// Members only.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)

			r.Post("/logout", auth.Logout)
			r.Get("/restricted", member.Restricted)

			r.Get("/add_category", member.AddCategoryPage)
			r.Post("/add_category", member.AddCategorySubmit)
			r.Get("/category/{slug}/add_page", member.AddPagePage)
			r.Post("/category/{slug}/add_page", member.AddPageSubmit)
			r.Get("/auto_add_page", member.AutoAddPage)
			r.Get("/like", member.Like)

			r.Get("/profile", member.ProfilePage)
			r.Post("/profile", member.ProfileSubmit)
			r.Post("/profile/2fa/setup", member.TOTPSetup)
			r.Post("/profile/2fa/verify", member.TOTPVerify)
			r.Post("/profile/2fa/disable", member.TOTPDisable)
		})
	})

	return r, limiter
}
