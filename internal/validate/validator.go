// Package validate compares a source report with its renderings and builds a
// verdict with one result per criterion.
package validate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hyperifyio/reportguard/internal/brevity"
	"github.com/hyperifyio/reportguard/internal/dates"
	"github.com/hyperifyio/reportguard/internal/document"
	"github.com/hyperifyio/reportguard/internal/entities"
	"github.com/hyperifyio/reportguard/internal/sections"
	"github.com/hyperifyio/reportguard/internal/taxonomy"
	"github.com/hyperifyio/reportguard/internal/units"
)

// ErrMissingContext marks a request lacking a document or context value a
// requested criterion needs.
var ErrMissingContext = errors.New("missing validation context")

// Criterion names one independently evaluated check.
type Criterion string

const (
	CriterionCompleteness    Criterion = "completeness"
	CriterionDates           Criterion = "date_consistency"
	CriterionEntities        Criterion = "entity_coverage"
	CriterionRanked          Criterion = "ranked_list_completeness"
	CriterionUnits           Criterion = "unit_correctness"
	CriterionBrevity         Criterion = "message_brevity"
	CriterionMessageElements Criterion = "message_elements"
)

// AllCriteria lists every criterion in evaluation order.
var AllCriteria = []Criterion{
	CriterionCompleteness,
	CriterionDates,
	CriterionRanked,
	CriterionEntities,
	CriterionUnits,
	CriterionBrevity,
	CriterionMessageElements,
}

// ParseCriterion resolves a criterion name.
func ParseCriterion(s string) (Criterion, error) {
	for _, c := range AllCriteria {
		if string(c) == strings.TrimSpace(s) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: unknown criterion %q", ErrMissingContext, s)
}

// Context holds the explicit inputs that are not documents.
type Context struct {
	Expected    dates.Date
	ExpectedDay string
	Today       dates.Date
	// MinBrands is the sufficient_brands threshold; 0 selects the default.
	MinBrands int
	// MinRanked is the ranked-list minimum; 0 selects the default.
	MinRanked int
	// WordLimit is the brevity limit; 0 selects the default.
	WordLimit int
	// Window is the brand/quantity adjacency window in runes; 0 selects the
	// default.
	Window int
}

// Request is one validation call. Documents left as zero values are absent.
type Request struct {
	Source   document.Document
	LongForm document.Document
	Message  document.Document
	// Criteria selects the checks to run. Empty runs every criterion whose
	// documents are present.
	Criteria []Criterion
	Context  Context
}

// Validator runs criteria against a fixed taxonomy. It holds no mutable state
// and is safe for concurrent use.
type Validator struct {
	tax *taxonomy.Taxonomy
}

// New returns a Validator for tax. A nil tax selects taxonomy.Default().
func New(tax *taxonomy.Taxonomy) *Validator {
	if tax == nil {
		tax = taxonomy.Default()
	}
	return &Validator{tax: tax}
}

// Taxonomy returns the rule set in use.
func (v *Validator) Taxonomy() *taxonomy.Taxonomy { return v.tax }

func present(d document.Document) bool { return d.Kind != "" }

// needs fails with ErrMissingContext when req lacks a document or value c
// requires.
func needs(req Request, c Criterion) error {
	var missing []string
	switch c {
	case CriterionCompleteness, CriterionEntities, CriterionRanked:
		if !present(req.Source) {
			missing = append(missing, "source")
		}
		if !present(req.LongForm) {
			missing = append(missing, "long-form rendering")
		}
	case CriterionDates:
		if !present(req.Source) && !present(req.LongForm) && !present(req.Message) {
			missing = append(missing, "document")
		}
		if req.Context.Expected.IsZero() {
			missing = append(missing, "expected date")
		}
	case CriterionUnits, CriterionBrevity, CriterionMessageElements:
		if !present(req.Message) {
			missing = append(missing, "short message")
		}
	default:
		return fmt.Errorf("%w: unknown criterion %q", ErrMissingContext, c)
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s needs %s", ErrMissingContext, c, strings.Join(missing, ", "))
	}
	return nil
}

func (req Request) criteria() []Criterion {
	if len(req.Criteria) > 0 {
		return req.Criteria
	}
	var out []Criterion
	for _, c := range AllCriteria {
		if needs(req, c) == nil {
			out = append(out, c)
		}
	}
	return out
}

// Validate evaluates every requested criterion. The error is non-nil only
// when the request itself is unusable; validation failures live in the
// verdict.
func (v *Validator) Validate(req Request) (Verdict, error) {
	crit := req.criteria()
	if len(crit) == 0 {
		return Verdict{}, fmt.Errorf("%w: no documents to validate", ErrMissingContext)
	}
	for _, c := range crit {
		if err := needs(req, c); err != nil {
			return Verdict{}, err
		}
	}

	ctx := req.Context
	vd := Verdict{Expected: ctx.Expected}
	for _, c := range crit {
		switch c {
		case CriterionCompleteness:
			src := sections.Extract(req.Source, v.tax, ctx.MinBrands)
			ren := sections.Extract(req.LongForm, v.tax, ctx.MinBrands)
			comp := CompareSections(src.Sections, ren.Sections, v.tax.Critical)
			vd.Completeness = &comp
			vd.add(CriterionResult{
				Criterion: c,
				Passed:    comp.IsComplete,
				Missing:   ids(comp.MissingCritical),
				Extra:     ids(comp.Extra),
				Details:   fmt.Sprintf("score %.1f%% (%d/%d sections)", comp.Score, comp.RenderedCount, comp.SourceCount),
			})
			if opt := optionalMissing(comp); len(opt) > 0 {
				vd.Warnings = append(vd.Warnings, "non-critical sections missing: "+strings.Join(opt, ", "))
			}

		case CriterionDates:
			var subjects []dates.Subject
			for _, d := range []document.Document{req.Source, req.LongForm, req.Message} {
				if present(d) {
					subjects = append(subjects, dates.Subject{Name: subjectName(d.Kind), Found: dates.Extract(d.Text(), v.tax, ctx.Expected.Year)})
				}
			}
			res := dates.Check(dates.Options{Expected: ctx.Expected, ExpectedDay: ctx.ExpectedDay, Today: ctx.Today}, subjects...)
			vd.Dates = &res
			vd.add(CriterionResult{
				Criterion: c,
				Passed:    res.Consistent,
				Missing:   res.Failures,
				Details:   strings.Join(res.Messages, "; "),
			})

		case CriterionRanked:
			src := entities.FindRanked(req.Source, v.tax)
			ren := entities.FindRanked(req.LongForm, v.tax)
			cov := entities.CompareRanked(src, ren, ctx.MinRanked)
			vd.Ranked = &cov
			vd.add(CriterionResult{
				Criterion: c,
				Passed:    cov.Complete,
				Missing:   cov.MissingLabels,
				Details:   fmt.Sprintf("source %d, rendered %d, minimum %d", cov.SourceCount, cov.RenderedCount, cov.Minimum),
			})

		case CriterionEntities:
			src := entities.FindBrands(req.Source, v.tax, ctx.Window)
			ren := entities.FindBrands(req.LongForm, v.tax, ctx.Window)
			cov := entities.CompareBrands(src, ren, v.tax.Brands)
			vd.Brands = &cov
			vd.add(CriterionResult{
				Criterion: c,
				Passed:    cov.Complete,
				Missing:   cov.MissingRequired,
				Extra:     cov.NotInSource,
				Details:   fmt.Sprintf("required %d/%d, optional %d", len(cov.RequiredFound), len(cov.RequiredFound)+len(cov.MissingRequired), len(cov.OptionalFound)),
			})

		case CriterionUnits:
			res := units.Check(req.Message.Text(), v.tax)
			vd.Units = &res
			vd.Warnings = append(vd.Warnings, res.Warnings...)
			passed := res.Valid
			errs := append([]string(nil), res.Errors...)
			if present(req.Source) {
				conv := units.CheckConversions(
					entities.FindBrands(req.Source, v.tax, ctx.Window),
					entities.FindBrands(req.Message, v.tax, ctx.Window),
				)
				vd.Conversions = &conv
				passed = passed && conv.Valid
				errs = append(errs, conv.Errors...)
			}
			vd.add(CriterionResult{Criterion: c, Passed: passed, Missing: errs})

		case CriterionBrevity, CriterionMessageElements:
			if vd.Brevity == nil {
				res := brevity.Check(req.Message.Text(), v.tax, ctx.WordLimit)
				vd.Brevity = &res
			}
			res := vd.Brevity
			if c == CriterionBrevity {
				var over []string
				for _, viol := range res.Violations {
					over = append(over, fmt.Sprintf("%q (%d words)", viol.Statement, viol.Words))
				}
				vd.add(CriterionResult{Criterion: c, Passed: res.WithinLimit, Missing: over, Details: fmt.Sprintf("limit %d words", res.Limit)})
			} else {
				vd.add(CriterionResult{Criterion: c, Passed: res.ElementsPresent, Missing: res.MissingElements})
			}
		}
	}
	vd.Pass = true
	for _, r := range vd.Results {
		if !r.Passed {
			vd.Pass = false
			vd.Diagnostics = append(vd.Diagnostics, fmt.Sprintf("%s failed: %s", r.Criterion, strings.Join(r.Missing, ", ")))
		}
	}
	return vd, nil
}

func subjectName(k taxonomy.Kind) string {
	switch k {
	case taxonomy.KindLongForm:
		return "long-form"
	case taxonomy.KindMessage:
		return "message"
	default:
		return "source"
	}
}

func ids(in []taxonomy.SectionID) []string {
	out := make([]string, len(in))
	for i, id := range in {
		out[i] = string(id)
	}
	return out
}

func optionalMissing(c Completeness) []string {
	var out []string
	for _, id := range c.Missing {
		critical := false
		for _, cr := range c.MissingCritical {
			if id == cr {
				critical = true
				break
			}
		}
		if !critical {
			out = append(out, string(id))
		}
	}
	return out
}
