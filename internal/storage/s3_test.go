package storage

import "testing"

func TestNewUnconfigured(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		access   string
		secret   string
	}{
		{"all empty", "", "", ""},
		{"no credentials", "https://objects.example.com", "", ""},
		{"no endpoint", "", "ak", "sk"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.endpoint, "us-east-1", tt.access, tt.secret, "bucket", "")
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if c != nil {
				t.Error("expected nil client when unconfigured")
			}
		})
	}
}

func TestFileURL(t *testing.T) {
	c, err := New("https://objects.example.com/", "us-east-1", "ak", "sk", "linkshelf-media", "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	got := c.FileURL("avatars/abc.jpg")
	want := "https://objects.example.com/linkshelf-media/avatars/abc.jpg"
	if got != want {
		t.Errorf("FileURL = %q, want %q", got, want)
	}
}

func TestFileURLWithPublicURL(t *testing.T) {
	c, err := New("https://objects.example.com", "us-east-1", "ak", "sk", "linkshelf-media", "https://cdn.example.com/")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	got := c.FileURL("avatars/abc.jpg")
	want := "https://cdn.example.com/avatars/abc.jpg"
	if got != want {
		t.Errorf("FileURL = %q, want %q", got, want)
	}
}

func TestExtractKey(t *testing.T) {
	c, err := New("https://objects.example.com", "us-east-1", "ak", "sk", "linkshelf-media", "https://cdn.example.com")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	tests := []struct {
		url     string
		wantKey string
		wantOK  bool
	}{
		{"https://cdn.example.com/avatars/abc.jpg", "avatars/abc.jpg", true},
		{"https://objects.example.com/linkshelf-media/avatars/abc.jpg", "avatars/abc.jpg", true},
		{"https://elsewhere.example.com/avatars/abc.jpg", "", false},
	}

	for _, tt := range tests {
		key, ok := c.ExtractKey(tt.url)
		if key != tt.wantKey || ok != tt.wantOK {
			t.Errorf("ExtractKey(%q) = (%q, %v), want (%q, %v)", tt.url, key, ok, tt.wantKey, tt.wantOK)
		}
	}
}
