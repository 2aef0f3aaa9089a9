package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/reportguard/internal/dates"
	"github.com/hyperifyio/reportguard/internal/document"
	"github.com/hyperifyio/reportguard/internal/envelope"
	"github.com/hyperifyio/reportguard/internal/lookup"
	"github.com/hyperifyio/reportguard/internal/taxonomy"
	"github.com/hyperifyio/reportguard/internal/validate"
)

// ErrConfig marks an unusable configuration.
var ErrConfig = errors.New("invalid configuration")

// Criteria sets used by the CLI subcommands when none are configured.
var (
	ReportCriteria = []validate.Criterion{
		validate.CriterionCompleteness,
		validate.CriterionDates,
		validate.CriterionRanked,
		validate.CriterionEntities,
	}
	MessageCriteria = []validate.Criterion{
		validate.CriterionUnits,
		validate.CriterionBrevity,
		validate.CriterionMessageElements,
	}
	DateCriteria  = []validate.Criterion{validate.CriterionDates}
	UnitsCriteria = []validate.Criterion{validate.CriterionUnits}
)

// App wires configuration, document loading and the validator together.
type App struct {
	cfg       Config
	clock     Clock
	loc       *time.Location
	validator *validate.Validator
	provider  lookup.Provider
}

// New builds an App from cfg. A nil clock selects SystemClock.
func New(cfg Config, clock Clock) (*App, error) {
	if err := ValidateConfig(cfg, false); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	if clock == nil {
		clock = SystemClock
	}
	loc := time.Local
	if tz := strings.TrimSpace(cfg.Timezone); tz != "" {
		l, err := time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("%w: timezone %q: %v", ErrConfig, tz, err)
		}
		loc = l
	}
	tax := taxonomy.Default()
	if len(cfg.RequiredBrands) > 0 || len(cfg.OptionalBrands) > 0 {
		req := cfg.RequiredBrands
		if len(req) == 0 {
			req = taxonomy.DefaultRequiredBrands
		}
		opt := cfg.OptionalBrands
		if len(opt) == 0 {
			opt = taxonomy.DefaultOptionalBrands
		}
		tax = tax.WithBrands(taxonomy.BrandsFromNames(req, opt))
	}
	return &App{cfg: cfg, clock: clock, loc: loc, validator: validate.New(tax)}, nil
}

// Config returns the effective configuration.
func (a *App) Config() Config { return a.cfg }

// Today is the current calendar date in the configured timezone.
func (a *App) Today() dates.Date {
	return dates.FromTime(a.clock().In(a.loc))
}

// ExpectedDate is the configured date, or yesterday when none is set.
func (a *App) ExpectedDate() (dates.Date, error) {
	if strings.TrimSpace(a.cfg.ExpectedDate) == "" {
		return a.Today().AddDays(-1), nil
	}
	return dates.Parse(a.cfg.ExpectedDate)
}

// Context assembles the validation context from configuration and clock.
func (a *App) Context() (validate.Context, error) {
	exp, err := a.ExpectedDate()
	if err != nil {
		return validate.Context{}, err
	}
	return validate.Context{
		Expected:    exp,
		ExpectedDay: a.cfg.ExpectedDay,
		Today:       a.Today(),
		MinBrands:   a.cfg.MinBrands,
		MinRanked:   a.cfg.MinRanked,
		WordLimit:   a.cfg.WordLimit,
		Window:      a.cfg.Window,
	}, nil
}

func (a *App) load(path string, kind taxonomy.Kind) (document.Document, error) {
	if strings.TrimSpace(path) == "" {
		return document.Document{}, nil
	}
	l, err := document.ReadFile(path, kind)
	if err != nil {
		return document.Document{}, err
	}
	log.Debug().Str("path", l.Document.Origin).Str("kind", string(kind)).Str("strategy", l.Strategy).Int("chars", len(l.Document.Text())).Msg("loaded document")
	if l.Document.Empty() {
		log.Warn().Str("path", l.Document.Origin).Msg("document is empty")
	}
	return l.Document, nil
}

// criteria resolves configured criteria, falling back to defaults.
func (a *App) criteria(defaults []validate.Criterion) ([]validate.Criterion, error) {
	if len(a.cfg.Criteria) == 0 {
		return defaults, nil
	}
	out := make([]validate.Criterion, 0, len(a.cfg.Criteria))
	for _, s := range a.cfg.Criteria {
		c, err := validate.ParseCriterion(s)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// Validate loads the configured documents and evaluates the criteria.
// defaults applies when the configuration names no criteria.
func (a *App) Validate(defaults []validate.Criterion) (validate.Verdict, error) {
	crit, err := a.criteria(defaults)
	if err != nil {
		return validate.Verdict{}, err
	}
	vctx, err := a.Context()
	if err != nil {
		return validate.Verdict{}, err
	}
	req := validate.Request{Criteria: crit, Context: vctx}
	if req.Source, err = a.load(a.cfg.SourcePath, taxonomy.KindSource); err != nil {
		return validate.Verdict{}, err
	}
	if req.LongForm, err = a.load(a.cfg.LongFormPath, taxonomy.KindLongForm); err != nil {
		return validate.Verdict{}, err
	}
	if req.Message, err = a.load(a.cfg.MessagePath, taxonomy.KindMessage); err != nil {
		return validate.Verdict{}, err
	}

	start := time.Now()
	vd, err := a.validator.Validate(req)
	if err != nil {
		return vd, err
	}
	log.Info().
		Str("expected", vctx.Expected.String()).
		Bool("pass", vd.Pass).
		Strs("failed", criteriaStrings(vd.Failed())).
		Int("warnings", len(vd.Warnings)).
		Dur("elapsed", time.Since(start)).
		Msg("validation complete")
	return vd, nil
}

func criteriaStrings(cs []validate.Criterion) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = string(c)
	}
	return out
}

// Provider returns the configured page lookup provider.
func (a *App) Provider() (lookup.Provider, error) {
	if a.provider != nil {
		return a.provider, nil
	}
	if err := ValidateConfig(a.cfg, true); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	switch a.cfg.LookupProvider {
	case "file":
		a.provider = &lookup.FileProvider{Path: a.cfg.LookupFile}
	default:
		a.provider = &lookup.Notion{
			BaseURL:    a.cfg.NotionURL,
			Token:      a.cfg.NotionToken,
			HTTPClient: newLookupHTTPClient(a.cfg.LookupTimeout),
			UserAgent:  UserAgent(),
		}
	}
	return a.provider, nil
}

// WithProvider overrides the lookup provider.
func (a *App) WithProvider(p lookup.Provider) *App {
	a.provider = p
	return a
}

// Duplicate checks whether a report for the expected date already exists.
// title defaults to the canonical report title.
func (a *App) Duplicate(ctx context.Context, title string) (lookup.Duplicate, error) {
	exp, err := a.ExpectedDate()
	if err != nil {
		return lookup.Duplicate{}, err
	}
	p, err := a.Provider()
	if err != nil {
		return lookup.Duplicate{}, err
	}
	if strings.TrimSpace(title) == "" {
		title = ReportTitle(exp)
	}
	if a.cfg.LookupTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.cfg.LookupTimeout)
		defer cancel()
	}
	log.Info().Str("date", exp.String()).Str("provider", p.Name()).Msg("searching for existing report")
	return lookup.CheckDuplicate(ctx, p, exp.String(), title)
}

// Envelope checks the publishing agent's result wrapper.
func (a *App) Envelope(raw []byte) envelope.Result {
	res := envelope.Check(raw)
	ev := log.Debug()
	if !res.OK {
		ev = log.Warn()
	}
	ev.Int("status", res.Status).Str("reason", res.Reason).Msg("envelope checked")
	return res
}
