package handlers

import (
	"strings"
	"testing"
)

func TestValidateCategoryForm(t *testing.T) {
	tests := []struct {
		name        string
		catName     string
		description string
		wantField   string // "" means valid
	}{
		{"valid", "Python", "", ""},
		{"valid with description", "Python", "A language.", ""},
		{"empty name", "", "", "name"},
		{"whitespace name", "   ", "", "name"},
		{"name too long", strings.Repeat("x", 129), "", "name"},
		{"description too long", "Python", strings.Repeat("x", 2001), "description"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := validateCategoryForm(tt.catName, tt.description)
			if tt.wantField == "" {
				if len(errs) != 0 {
					t.Errorf("expected valid, got %v", errs)
				}
			} else if _, ok := errs[tt.wantField]; !ok {
				t.Errorf("expected error on %q, got %v", tt.wantField, errs)
			}
		})
	}
}

func TestValidatePageForm(t *testing.T) {
	tests := []struct {
		name      string
		title     string
		url       string
		wantField string
	}{
		{"valid", "Docs", "https://example.com/docs", ""},
		{"empty title", "", "https://example.com", "title"},
		{"title too long", strings.Repeat("x", 129), "https://example.com", "title"},
		{"empty url", "Docs", "", "url"},
		{"url too long", "Docs", "https://example.com/" + strings.Repeat("x", 200), "url"},
		{"bad scheme", "Docs", "ftp://example.com", "url"},
		{"no host", "Docs", "https://", "url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := validatePageForm(tt.title, tt.url)
			if tt.wantField == "" {
				if len(errs) != 0 {
					t.Errorf("expected valid, got %v", errs)
				}
			} else if _, ok := errs[tt.wantField]; !ok {
				t.Errorf("expected error on %q, got %v", tt.wantField, errs)
			}
		})
	}
}

func TestValidateRegisterForm(t *testing.T) {
	tests := []struct {
		name      string
		username  string
		password  string
		wantField string
	}{
		{"valid", "shelf", "longenough", ""},
		{"empty username", "", "longenough", "username"},
		{"username with space", "bad name", "longenough", "username"},
		{"username too long", strings.Repeat("u", 65), "longenough", "username"},
		{"short password", "shelf", "short", "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := validateRegisterForm(tt.username, tt.password)
			if tt.wantField == "" {
				if len(errs) != 0 {
					t.Errorf("expected valid, got %v", errs)
				}
			} else if _, ok := errs[tt.wantField]; !ok {
				t.Errorf("expected error on %q, got %v", tt.wantField, errs)
			}
		})
	}
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"www.example.com", "http://www.example.com"},
		{"http://example.com", "http://example.com"},
		{"https://example.com", "https://example.com"},
		{"  example.com  ", "http://example.com"},
	}

	for _, tt := range tests {
		if got := normalizeURL(tt.in); got != tt.want {
			t.Errorf("normalizeURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
