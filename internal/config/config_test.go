package config

import (
	"strings"
	"testing"
	"time"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestParse_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Addr() != ":8080" {
		t.Errorf("expected :8080, got %s", cfg.Addr())
	}
	if cfg.CVBucket != "cvs" || cfg.AttachmentBucket != "contact-attachments" {
		t.Errorf("unexpected buckets %q %q", cfg.CVBucket, cfg.AttachmentBucket)
	}
	if cfg.MaxUploadBytes != 10<<20 {
		t.Errorf("expected 10 MiB upload limit, got %d", cfg.MaxUploadBytes)
	}
	if cfg.ShutdownTimeout != 5*time.Second {
		t.Errorf("expected 5s shutdown timeout, got %v", cfg.ShutdownTimeout)
	}
	if cfg.BootstrapSecretHash != "" {
		t.Error("expected bootstrap disabled by default")
	}
}

func TestParse_NotifyToList(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("NOTIFY_TO", "a@example.com,b@example.com")

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.NotifyTo) != 2 || cfg.NotifyTo[1] != "b@example.com" {
		t.Errorf("unexpected recipients %v", cfg.NotifyTo)
	}
}

func TestParse_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Parse()
	if err == nil || !strings.Contains(err.Error(), "JWT_SECRET is required") {
		t.Fatalf("expected JWT_SECRET error, got %v", err)
	}
}

func TestParse_BadValue(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("MAX_UPLOAD_BYTES", "lots")

	_, err := Parse()
	if err == nil || !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env error, got %v", err)
	}
}

func TestValidate_CollectsAll(t *testing.T) {
	cfg := Config{
		JWTSecret:        "short",
		LogFormat:        "xml",
		MaxUploadBytes:   0,
		CVBucket:         "same",
		AttachmentBucket: "same",
	}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"at least 32 bytes", "LOG_FORMAT", "MAX_UPLOAD_BYTES", "must differ"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected %q in %v", want, err)
		}
	}
}

func TestMigrateURL(t *testing.T) {
	tests := map[string]string{
		"postgres://u:p@h:5432/db?sslmode=disable": "pgx5://u:p@h:5432/db?sslmode=disable",
		"postgresql://u@h/db":                      "pgx5://u@h/db",
		"pgx5://u@h/db":                            "pgx5://u@h/db",
	}
	for in, want := range tests {
		if got := MigrateURL(in); got != want {
			t.Errorf("MigrateURL(%q) = %q, want %q", in, got, want)
		}
	}
}
