// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package config

import (
	"strings"
	"testing"
)

// configEnvVars lists every environment variable Load reads.
var configEnvVars = []string{
	"APP_HOST", "APP_PORT", "APP_ENV",
	"POSTGRES_HOST", "POSTGRES_PORT", "POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_DB",
	"VALKEY_HOST", "VALKEY_PORT", "VALKEY_PASSWORD",
	"SEARCH_API_KEY", "SEARCH_BASE_URL",
	"S3_ENDPOINT", "S3_REGION", "S3_ACCESS_KEY", "S3_SECRET_KEY", "S3_BUCKET", "S3_PUBLIC_URL",
}

// clearConfigEnv blanks every config variable; envOrDefault treats empty
// the same as unset, and t.Setenv restores the originals afterwards.
func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnvVars {
		t.Setenv(key, "")
	}
}

// TestLoad_Defaults verifies that Load returns sensible development defaults
// when no environment variables are set.
func TestLoad_Defaults(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	check := func(field, got, want string) {
		t.Helper()
		if got != want {
			t.Errorf("%s = %q, want %q", field, got, want)
		}
	}

	check("Host", cfg.Host, "0.0.0.0")
	check("Port", cfg.Port, "8080")
	check("Env", cfg.Env, "development")
	check("DBHost", cfg.DBHost, "localhost")
	check("DBPort", cfg.DBPort, "5432")
	check("DBUser", cfg.DBUser, "linkshelf")
	check("DBPassword", cfg.DBPassword, "changeme")
	check("DBName", cfg.DBName, "linkshelf")
	check("ValkeyHost", cfg.ValkeyHost, "localhost")
	check("ValkeyPort", cfg.ValkeyPort, "6379")
	check("ValkeyPassword", cfg.ValkeyPassword, "")
	check("SearchAPIKey", cfg.SearchAPIKey, "")
	check("S3Region", cfg.S3Region, "us-east-1")
	check("S3Bucket", cfg.S3Bucket, "linkshelf-media")

	if !cfg.IsDev() {
		t.Error("IsDev() should be true for the default environment")
	}
}

// TestLoad_EnvOverrides verifies that environment variables override defaults.
func TestLoad_EnvOverrides(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("APP_HOST", "127.0.0.1")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("APP_ENV", "testing")
	t.Setenv("POSTGRES_HOST", "db.example.com")
	t.Setenv("POSTGRES_PASSWORD", "sekrit")
	t.Setenv("SEARCH_API_KEY", "abc123")
	t.Setenv("S3_ENDPOINT", "https://objects.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.Host != "127.0.0.1" || cfg.Port != "9090" {
		t.Errorf("server overrides ignored: %s:%s", cfg.Host, cfg.Port)
	}
	if cfg.Env != "testing" || cfg.IsDev() {
		t.Errorf("env override ignored: %q", cfg.Env)
	}
	if cfg.DBHost != "db.example.com" || cfg.DBPassword != "sekrit" {
		t.Errorf("postgres overrides ignored: %s / %s", cfg.DBHost, cfg.DBPassword)
	}
	if cfg.SearchAPIKey != "abc123" {
		t.Errorf("SearchAPIKey = %q, want %q", cfg.SearchAPIKey, "abc123")
	}
	if cfg.S3Endpoint != "https://objects.example.com" {
		t.Errorf("S3Endpoint = %q", cfg.S3Endpoint)
	}
}

// TestLoad_ProductionGuard verifies that production refuses the default
// database password.
func TestLoad_ProductionGuard(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("APP_ENV", "production")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for default POSTGRES_PASSWORD in production")
	} else if !strings.Contains(err.Error(), "POSTGRES_PASSWORD") {
		t.Errorf("error should name POSTGRES_PASSWORD, got: %v", err)
	}

	t.Setenv("POSTGRES_PASSWORD", "real-secret")
	if _, err := Load(); err != nil {
		t.Fatalf("Load() with real password errored: %v", err)
	}
}

// TestDSNAndAddr verifies the connection string helpers.
func TestDSNAndAddr(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("POSTGRES_USER", "u")
	t.Setenv("POSTGRES_PASSWORD", "p")
	t.Setenv("POSTGRES_HOST", "h")
	t.Setenv("POSTGRES_PORT", "5499")
	t.Setenv("POSTGRES_DB", "d")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	wantDSN := "postgres://u:p@h:5499/d?sslmode=disable"
	if got := cfg.DSN(); got != wantDSN {
		t.Errorf("DSN() = %q, want %q", got, wantDSN)
	}
	if got := cfg.Addr(); got != "0.0.0.0:8080" {
		t.Errorf("Addr() = %q, want %q", got, "0.0.0.0:8080")
	}
}
