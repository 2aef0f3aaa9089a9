package app

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// ApplyEnvOverrides forcefully overrides cfg fields with environment variables
// when the corresponding env vars are set. Env takes precedence over values
// coming from a config file while flags remain highest precedence.
func ApplyEnvOverrides(cfg *Config) {
	if cfg == nil {
		return
	}

	if v := os.Getenv("REPORTGUARD_EXPECTED_DATE"); v != "" {
		cfg.ExpectedDate = v
	}
	if v := os.Getenv("REPORTGUARD_EXPECTED_DAY"); v != "" {
		cfg.ExpectedDay = v
	}
	if v := os.Getenv("REPORTGUARD_TIMEZONE"); v != "" {
		cfg.Timezone = v
	}

	setInt := func(dst *int, envKey string) {
		if s := strings.TrimSpace(os.Getenv(envKey)); s != "" {
			if n, err := strconv.Atoi(s); err == nil {
				*dst = n
			}
		}
	}
	setInt(&cfg.MinBrands, "REPORTGUARD_MIN_BRANDS")
	setInt(&cfg.MinRanked, "REPORTGUARD_MIN_RANKED")
	setInt(&cfg.WordLimit, "REPORTGUARD_WORD_LIMIT")
	setInt(&cfg.Window, "REPORTGUARD_WINDOW")

	// Brand lists are comma-separated
	if v := strings.TrimSpace(os.Getenv("REPORTGUARD_REQUIRED_BRANDS")); v != "" {
		cfg.RequiredBrands = SplitList(v)
	}
	if v := strings.TrimSpace(os.Getenv("REPORTGUARD_OPTIONAL_BRANDS")); v != "" {
		cfg.OptionalBrands = SplitList(v)
	}

	if v := os.Getenv("REPORTGUARD_LOOKUP"); v != "" {
		cfg.LookupProvider = v
	}
	if v := os.Getenv("REPORTGUARD_LOOKUP_FILE"); v != "" {
		cfg.LookupFile = v
	}
	if v := os.Getenv("NOTION_TOKEN"); v != "" {
		cfg.NotionToken = v
	}
	if v := os.Getenv("NOTION_API_URL"); v != "" {
		cfg.NotionURL = v
	}
	if s := os.Getenv("REPORTGUARD_LOOKUP_TIMEOUT"); s != "" {
		if d, err := time.ParseDuration(s); err == nil {
			cfg.LookupTimeout = d
		}
	}

	// Booleans override when env present and truthy/falsey
	setBool := func(dst *bool, envKey string) {
		if s := strings.ToLower(strings.TrimSpace(os.Getenv(envKey))); s != "" {
			switch s {
			case "1", "true", "yes", "on":
				*dst = true
			case "0", "false", "no", "off":
				*dst = false
			}
		}
	}
	setBool(&cfg.Verbose, "VERBOSE")
	setBool(&cfg.JSON, "REPORTGUARD_JSON")
}

// SplitList splits a comma-separated list, dropping blanks.
func SplitList(s string) []string {
	parts := strings.Split(s, ",")
	list := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			list = append(list, v)
		}
	}
	return list
}
