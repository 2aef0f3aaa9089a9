package app

import (
	"errors"

	"github.com/hyperifyio/reportguard/internal/dates"
	"github.com/hyperifyio/reportguard/internal/document"
	"github.com/hyperifyio/reportguard/internal/lookup"
	"github.com/hyperifyio/reportguard/internal/validate"
)

// Process exit codes for outcomes that are not validation verdicts. Verdict
// codes come from validate.Verdict.Status and envelope.Result.Status.
const (
	ExitOK         = 0
	ExitUsage      = 1
	ExitMalformed  = 10
	ExitUnreadable = 11
	ExitDuplicate  = 20
	ExitLookup     = 21
)

// ExitCode maps an error returned by App to its process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, document.ErrUnreadable):
		return ExitUnreadable
	case errors.Is(err, document.ErrMalformed),
		errors.Is(err, dates.ErrUnparsable),
		errors.Is(err, validate.ErrMissingContext):
		return ExitMalformed
	case errors.Is(err, lookup.ErrLookup):
		return ExitLookup
	default:
		return ExitUsage
	}
}

// DuplicateExitCode maps a duplicate lookup outcome to its exit code.
func DuplicateExitCode(d lookup.Duplicate, err error) int {
	if err != nil {
		if errors.Is(err, ErrConfig) {
			return ExitUsage
		}
		if code := ExitCode(err); code != ExitUsage {
			return code
		}
		return ExitLookup
	}
	if d.HasDuplicate {
		return ExitDuplicate
	}
	return ExitOK
}
