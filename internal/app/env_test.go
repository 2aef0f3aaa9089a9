package app

import (
	"os"
	"path/filepath"
	"testing"
)

// LoadEnvFiles reads KEY=VALUE pairs and populates os.Environ.
func TestLoadEnvFiles_LoadsKeyValues(t *testing.T) {
	t.Setenv("NOTION_TOKEN", "")
	t.Setenv("REPORTGUARD_MIN_BRANDS", "")

	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env.test")
	content := "\n# sample dotenv file\nNOTION_TOKEN=secret_abc\nREPORTGUARD_MIN_BRANDS=\"6\"\n"
	if err := os.WriteFile(envPath, []byte(content), 0o600); err != nil {
		t.Fatalf("write dotenv: %v", err)
	}

	if err := LoadEnvFiles(envPath, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("LoadEnvFiles error: %v", err)
	}

	if got := os.Getenv("NOTION_TOKEN"); got != "secret_abc" {
		t.Fatalf("NOTION_TOKEN=%q, want secret_abc", got)
	}
	if got := os.Getenv("REPORTGUARD_MIN_BRANDS"); got != "6" {
		t.Fatalf("REPORTGUARD_MIN_BRANDS=%q, want 6", got)
	}
}

// Later files override earlier ones when loading multiple dotenv files.
func TestLoadEnvFiles_OverrideOrder(t *testing.T) {
	t.Setenv("K", "")
	dir := t.TempDir()
	a := filepath.Join(dir, ".env.a")
	b := filepath.Join(dir, ".env.b")
	if err := os.WriteFile(a, []byte("K=first\n"), 0o600); err != nil {
		t.Fatalf("write a: %v", err)
	}
	if err := os.WriteFile(b, []byte("K=second\n"), 0o600); err != nil {
		t.Fatalf("write b: %v", err)
	}

	if err := LoadEnvFiles(a, b); err != nil {
		t.Fatalf("LoadEnvFiles error: %v", err)
	}
	if got := os.Getenv("K"); got != "second" {
		t.Fatalf("override order failed: got %q, want second", got)
	}
}

// ApplyEnvOverrides reads thresholds, brand lists and the Notion token.
func TestApplyEnvOverrides_FromEnv(t *testing.T) {
	t.Setenv("REPORTGUARD_EXPECTED_DATE", "2026-01-24")
	t.Setenv("REPORTGUARD_MIN_BRANDS", "5")
	t.Setenv("REPORTGUARD_MIN_RANKED", "not-a-number")
	t.Setenv("REPORTGUARD_WORD_LIMIT", "8")
	t.Setenv("REPORTGUARD_REQUIRED_BRANDS", "노어, 지재,")
	t.Setenv("NOTION_TOKEN", "secret_xyz")
	t.Setenv("VERBOSE", "yes")

	cfg := Defaults()
	ApplyEnvOverrides(&cfg)
	if cfg.ExpectedDate != "2026-01-24" {
		t.Fatalf("ExpectedDate=%q", cfg.ExpectedDate)
	}
	if cfg.MinBrands != 5 || cfg.WordLimit != 8 {
		t.Fatalf("MinBrands=%d WordLimit=%d, want 5 and 8", cfg.MinBrands, cfg.WordLimit)
	}
	if cfg.MinRanked != 8 {
		t.Fatalf("unparsable REPORTGUARD_MIN_RANKED should keep default, got %d", cfg.MinRanked)
	}
	if len(cfg.RequiredBrands) != 2 || cfg.RequiredBrands[1] != "지재" {
		t.Fatalf("RequiredBrands=%v", cfg.RequiredBrands)
	}
	if cfg.NotionToken != "secret_xyz" || !cfg.Verbose {
		t.Fatalf("NotionToken=%q Verbose=%v", cfg.NotionToken, cfg.Verbose)
	}
}
