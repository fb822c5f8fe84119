package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"linkshelf/internal/session"
)

// ctxWithSession returns a context carrying the given session data using
// the same context key the middleware uses. This allows tests to simulate
// the state after LoadSession has run without needing a real Valkey store.
func ctxWithSession(ctx context.Context, data *session.Data) context.Context {
	return context.WithValue(ctx, SessionKey, data)
}

// okHandler is a simple handler that records whether it was invoked.
func okHandler() (http.Handler, *bool) {
	var called bool
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})
	return h, &called
}

func TestSessionFromCtx(t *testing.T) {
	t.Run("returns session when present", func(t *testing.T) {
		sess := &session.Data{UserID: uuid.New(), Username: "leifos", TwoFADone: true}
		got := SessionFromCtx(ctxWithSession(context.Background(), sess))
		if got == nil {
			t.Fatal("expected non-nil session, got nil")
		}
		if got.Username != "leifos" {
			t.Errorf("Username: got %q, want %q", got.Username, "leifos")
		}
	})

	t.Run("returns nil when not present", func(t *testing.T) {
		if got := SessionFromCtx(context.Background()); got != nil {
			t.Errorf("expected nil session, got %+v", got)
		}
	})

	t.Run("returns nil for wrong type in context", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), SessionKey, "not-a-session")
		if got := SessionFromCtx(ctx); got != nil {
			t.Errorf("expected nil for wrong type, got %+v", got)
		}
	})
}

// TestRequireAuth pins the guard contract: without an authenticated session
// the wrapped handler never executes — so it can never mutate state — and
// the client is redirected to the login page.
func TestRequireAuth(t *testing.T) {
	guardedPaths := []string{"/add_category", "/like", "/profile", "/logout", "/restricted"}

	t.Run("no session redirects to login", func(t *testing.T) {
		for _, path := range guardedPaths {
			inner, called := okHandler()
			handler := RequireAuth(inner)

			req := httptest.NewRequest(http.MethodGet, path, nil)
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if *called {
				t.Errorf("%s: guarded handler ran without a session", path)
			}
			if rr.Code != http.StatusSeeOther {
				t.Errorf("%s: status %d, want %d", path, rr.Code, http.StatusSeeOther)
			}
			if loc := rr.Header().Get("Location"); loc != "/login" {
				t.Errorf("%s: redirect to %q, want /login", path, loc)
			}
		}
	})

	t.Run("anonymous visit session redirects to login", func(t *testing.T) {
		inner, called := okHandler()
		handler := RequireAuth(inner)

		// Sessions exist for anonymous visitors (visit counters); they
		// must not pass the auth guard.
		req := httptest.NewRequest(http.MethodGet, "/add_category", nil)
		req = req.WithContext(ctxWithSession(req.Context(), &session.Data{Visits: 2}))
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if *called {
			t.Error("guarded handler ran for anonymous session")
		}
		if rr.Code != http.StatusSeeOther {
			t.Errorf("status: got %d, want %d", rr.Code, http.StatusSeeOther)
		}
	})

	t.Run("unverified 2FA session redirects to login", func(t *testing.T) {
		inner, called := okHandler()
		handler := RequireAuth(inner)

		req := httptest.NewRequest(http.MethodGet, "/restricted", nil)
		req = req.WithContext(ctxWithSession(req.Context(), &session.Data{
			UserID:    uuid.New(),
			Username:  "leifos",
			TwoFADone: false,
		}))
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if *called {
			t.Error("guarded handler ran before 2FA verification")
		}
	})

	t.Run("authenticated session passes through", func(t *testing.T) {
		inner, called := okHandler()
		handler := RequireAuth(inner)

		req := httptest.NewRequest(http.MethodGet, "/profile", nil)
		req = req.WithContext(ctxWithSession(req.Context(), &session.Data{
			UserID:    uuid.New(),
			Username:  "leifos",
			TwoFADone: true,
		}))
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if !*called {
			t.Error("handler should have been called")
		}
		if rr.Code != http.StatusOK {
			t.Errorf("status: got %d, want 200", rr.Code)
		}
	})
}
