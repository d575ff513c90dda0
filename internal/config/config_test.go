package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIURL != "http://localhost:5000/api" {
		t.Errorf("APIURL = %q", cfg.APIURL)
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("RequestTimeout = %v, want 30s", cfg.RequestTimeout)
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mfdash.toml")
	content := `
api_url = "https://file.example/api/"
user_id = "42"
request_timeout = "5s"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("USER_ID", "7")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIURL != "https://file.example/api" {
		t.Errorf("APIURL = %q, want trailing slash trimmed", cfg.APIURL)
	}
	if cfg.UserID != "7" {
		t.Errorf("UserID = %q, want env override 7", cfg.UserID)
	}
	if cfg.RequestTimeout != 5*time.Second {
		t.Errorf("RequestTimeout = %v, want 5s", cfg.RequestTimeout)
	}
}

func TestLoadRejectsBadTimeout(t *testing.T) {
	t.Setenv("REQUEST_TIMEOUT", "soon")
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for unparsable timeout")
	}
}

func TestLoadRequiresAPIURL(t *testing.T) {
	t.Setenv("API_URL", "")
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for empty API_URL")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
