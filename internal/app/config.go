package app

import "time"

// Config holds runtime configuration for the application.
type Config struct {
	// Inputs
	SourcePath   string
	LongFormPath string
	MessagePath  string

	// Expectations. ExpectedDate empty means yesterday in Timezone.
	ExpectedDate string
	ExpectedDay  string
	Timezone     string

	// Thresholds
	MinBrands int
	MinRanked int
	WordLimit int
	Window    int

	// Brand allow-list; empty keeps the built-in lists.
	RequiredBrands []string
	OptionalBrands []string

	// Criteria restricts the checks to run; empty runs all applicable.
	Criteria []string

	// Duplicate lookup
	LookupProvider string // "notion" or "file"
	LookupFile     string
	NotionToken    string
	NotionURL      string
	LookupTimeout  time.Duration

	// Behavior
	JSON    bool
	Verbose bool
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Timezone:       "Asia/Seoul",
		MinBrands:      7,
		MinRanked:      8,
		WordLimit:      6,
		Window:         200,
		LookupProvider: "notion",
		LookupTimeout:  60 * time.Second,
	}
}
