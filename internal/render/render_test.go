package render

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"linkshelf/internal/middleware"
	"linkshelf/internal/models"
	"linkshelf/internal/session"
)

// helperSession returns a session suitable for rendering member pages.
func helperSession() *session.Data {
	return &session.Data{
		UserID:    uuid.New(),
		Username:  "shelf",
		TwoFADone: true,
	}
}

// helperRequest builds a request whose context carries a session, the way
// the LoadSession middleware would.
func helperRequest(sess *session.Data) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if sess != nil {
		ctx := context.WithValue(req.Context(), middleware.SessionKey, sess)
		req = req.WithContext(ctx)
	}
	return req
}

func TestNew(t *testing.T) {
	for _, devMode := range []bool{true, false} {
		rn, err := New(devMode)
		if err != nil {
			t.Fatalf("New(devMode=%v): %v", devMode, err)
		}
		if rn == nil {
			t.Fatal("New() returned nil renderer")
		}
	}
}

func TestPageRendersAllTemplates(t *testing.T) {
	rn, err := New(true)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	cat := models.Category{ID: uuid.New(), Name: "Python", Likes: 64, Slug: "python"}
	pages := []models.Page{{ID: uuid.New(), Title: "Official Tutorial", Views: 17}}

	tests := []struct {
		name string
		data map[string]any
		want string
	}{
		{"index", map[string]any{"Categories": []models.Category{cat}, "Pages": pages, "Visits": 3}, "Python"},
		{"about", map[string]any{"VisitCount": 2}, "visited this page 2 times"},
		{"category", map[string]any{"Category": &cat, "Pages": pages}, "Official Tutorial"},
		{"category", map[string]any{}, "category does not exist"},
		{"add_category", map[string]any{"Errors": map[string]string{}}, "Add a Category"},
		{"add_page", map[string]any{"Category": &cat, "Errors": map[string]string{}}, "Add a Page to Python"},
		{"restricted", map[string]any{}, "logged in"},
		{"profile", map[string]any{"Website": "https://example.com", "Errors": map[string]string{}}, "Your Profile"},
		{"login", map[string]any{"BadDetails": true}, "Invalid login details"},
		{"login_verify", map[string]any{}, "6-digit code"},
		{"register", map[string]any{"Errors": map[string]string{}}, "Register for Linkshelf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			rn.Page(rec, helperRequest(helperSession()), tt.name, &PageData{
				Title: tt.name,
				Data:  tt.data,
			})
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
			}
			if !strings.Contains(rec.Body.String(), tt.want) {
				t.Errorf("body missing %q:\n%s", tt.want, rec.Body.String())
			}
		})
	}
}

func TestPageWithoutSession(t *testing.T) {
	rn, err := New(true)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	rec := httptest.NewRecorder()
	rn.Page(rec, helperRequest(nil), "index", &PageData{
		Title: "Home",
		Data:  map[string]any{"Visits": 1},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Log in") {
		t.Error("anonymous page should offer a login link")
	}
}

func TestPageUnknownTemplate(t *testing.T) {
	rn, err := New(true)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	rec := httptest.NewRecorder()
	rn.Page(rec, helperRequest(nil), "no_such_page", &PageData{})
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestFragments(t *testing.T) {
	rn, err := New(true)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	t.Run("suggestions", func(t *testing.T) {
		rec := httptest.NewRecorder()
		rn.Fragment(rec, "suggestions", []models.Category{
			{Name: "Django", Slug: "django"},
		})
		if !strings.Contains(rec.Body.String(), `/category/django`) {
			t.Errorf("fragment missing link: %s", rec.Body.String())
		}
	})

	t.Run("suggestions empty", func(t *testing.T) {
		rec := httptest.NewRecorder()
		rn.Fragment(rec, "suggestions", nil)
		if !strings.Contains(rec.Body.String(), "No categories found") {
			t.Errorf("empty fragment wrong: %s", rec.Body.String())
		}
	})

	t.Run("page_list", func(t *testing.T) {
		rec := httptest.NewRecorder()
		rn.Fragment(rec, "page_list", []models.Page{
			{ID: uuid.New(), Title: "Flask Docs", Views: 5},
		})
		if !strings.Contains(rec.Body.String(), "Flask Docs") {
			t.Errorf("fragment missing page: %s", rec.Body.String())
		}
	})
}
