package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigFile_YAMLOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reportguard.yaml")
	content := `inputs:
  source: mcp.json
  longForm: notion.md
expected:
  day: 토요일
min:
  brands: 6
brands:
  optional: [퀸즈셀렉션]
lookup:
  provider: file
  file: pages.json
  timeout: 5s
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	fc, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}
	cfg := Defaults()
	ApplyFileConfig(&cfg, fc)
	if cfg.SourcePath != "mcp.json" || cfg.LongFormPath != "notion.md" {
		t.Fatalf("inputs not applied: %+v", cfg)
	}
	if cfg.MinBrands != 6 || cfg.MinRanked != 8 {
		t.Fatalf("MinBrands=%d MinRanked=%d, want 6 and default 8", cfg.MinBrands, cfg.MinRanked)
	}
	if cfg.ExpectedDay != "토요일" || len(cfg.OptionalBrands) != 1 {
		t.Fatalf("ExpectedDay=%q OptionalBrands=%v", cfg.ExpectedDay, cfg.OptionalBrands)
	}
	if cfg.LookupProvider != "file" || cfg.LookupFile != "pages.json" || cfg.LookupTimeout != 5*time.Second {
		t.Fatalf("lookup not applied: %+v", cfg)
	}
}

func TestLoadConfigFile_JSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reportguard.json")
	if err := os.WriteFile(path, []byte(`{"wordLimit": 7, "criteria": ["message_brevity"]}`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	fc, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}
	cfg := Defaults()
	ApplyFileConfig(&cfg, fc)
	if cfg.WordLimit != 7 || len(cfg.Criteria) != 1 {
		t.Fatalf("WordLimit=%d Criteria=%v", cfg.WordLimit, cfg.Criteria)
	}
}

func TestValidateConfig(t *testing.T) {
	cfg := Defaults()
	if err := ValidateConfig(cfg, false); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if err := ValidateConfig(cfg, true); err == nil {
		t.Fatalf("notion lookup without token should fail")
	}
	cfg.NotionToken = "secret"
	if err := ValidateConfig(cfg, true); err != nil {
		t.Fatalf("notion lookup with token: %v", err)
	}
	cfg.MinBrands = -1
	if err := ValidateConfig(cfg, false); err == nil {
		t.Fatalf("negative threshold should fail")
	}
}
