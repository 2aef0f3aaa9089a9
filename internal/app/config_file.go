package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig represents the single-file configuration schema.
// Nested sections map naturally to flags/env.
type FileConfig struct {
	Inputs struct {
		Source   string `yaml:"source" json:"source"`
		LongForm string `yaml:"longForm" json:"longForm"`
		Message  string `yaml:"message" json:"message"`
	} `yaml:"inputs" json:"inputs"`

	Expected struct {
		Date     string `yaml:"date" json:"date"`
		Day      string `yaml:"day" json:"day"`
		Timezone string `yaml:"timezone" json:"timezone"`
	} `yaml:"expected" json:"expected"`

	Min struct {
		Brands int `yaml:"brands" json:"brands"`
		Ranked int `yaml:"ranked" json:"ranked"`
	} `yaml:"min" json:"min"`

	WordLimit int `yaml:"wordLimit" json:"wordLimit"`
	Window    int `yaml:"window" json:"window"`

	Brands struct {
		Required []string `yaml:"required" json:"required"`
		Optional []string `yaml:"optional" json:"optional"`
	} `yaml:"brands" json:"brands"`

	Criteria []string `yaml:"criteria" json:"criteria"`

	Lookup struct {
		Provider string        `yaml:"provider" json:"provider"`
		File     string        `yaml:"file" json:"file"`
		Timeout  time.Duration `yaml:"timeout" json:"timeout"`
		Notion   struct {
			Token string `yaml:"token" json:"token"`
			URL   string `yaml:"url" json:"url"`
		} `yaml:"notion" json:"notion"`
	} `yaml:"lookup" json:"lookup"`

	JSON    bool `yaml:"json" json:"json"`
	Verbose bool `yaml:"verbose" json:"verbose"`
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		// Try YAML then JSON
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// ApplyFileConfig overlays every value set in fc onto cfg. cfg should hold the
// built-in defaults; env and explicit flags are applied afterwards.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	setString := func(dst *string, v string) {
		if strings.TrimSpace(v) != "" {
			*dst = v
		}
	}
	setInt := func(dst *int, v int) {
		if v != 0 {
			*dst = v
		}
	}

	setString(&cfg.SourcePath, fc.Inputs.Source)
	setString(&cfg.LongFormPath, fc.Inputs.LongForm)
	setString(&cfg.MessagePath, fc.Inputs.Message)

	setString(&cfg.ExpectedDate, fc.Expected.Date)
	setString(&cfg.ExpectedDay, fc.Expected.Day)
	setString(&cfg.Timezone, fc.Expected.Timezone)

	setInt(&cfg.MinBrands, fc.Min.Brands)
	setInt(&cfg.MinRanked, fc.Min.Ranked)
	setInt(&cfg.WordLimit, fc.WordLimit)
	setInt(&cfg.Window, fc.Window)

	if len(fc.Brands.Required) > 0 {
		cfg.RequiredBrands = append([]string{}, fc.Brands.Required...)
	}
	if len(fc.Brands.Optional) > 0 {
		cfg.OptionalBrands = append([]string{}, fc.Brands.Optional...)
	}
	if len(fc.Criteria) > 0 {
		cfg.Criteria = append([]string{}, fc.Criteria...)
	}

	setString(&cfg.LookupProvider, fc.Lookup.Provider)
	setString(&cfg.LookupFile, fc.Lookup.File)
	setString(&cfg.NotionToken, fc.Lookup.Notion.Token)
	setString(&cfg.NotionURL, fc.Lookup.Notion.URL)
	if fc.Lookup.Timeout > 0 {
		cfg.LookupTimeout = fc.Lookup.Timeout
	}

	if fc.JSON {
		cfg.JSON = true
	}
	if fc.Verbose {
		cfg.Verbose = true
	}
}

// ValidateConfig performs minimal schema validation for required settings.
// needLookup enables the checks for the duplicate lookup.
func ValidateConfig(cfg Config, needLookup bool) error {
	if cfg.MinBrands < 0 || cfg.MinRanked < 0 || cfg.WordLimit < 0 || cfg.Window < 0 {
		return errors.New("config: negative thresholds are not allowed")
	}
	if !needLookup {
		return nil
	}
	switch cfg.LookupProvider {
	case "notion":
		if strings.TrimSpace(cfg.NotionToken) == "" {
			return errors.New("config: lookup.notion.token is required (or set NOTION_TOKEN)")
		}
	case "file":
		if strings.TrimSpace(cfg.LookupFile) == "" {
			return errors.New("config: lookup.file is required for the file provider")
		}
	default:
		return fmt.Errorf("config: unknown lookup provider %q", cfg.LookupProvider)
	}
	return nil
}
