package model

import (
	"fmt"

	"github.com/rotisserie/eris"
)

// Phase identifies one of the five pipeline components for error
// reporting and progress events.
type Phase string

const (
	PhaseSeedResolution Phase = "seed_resolution"
	PhaseDiscovery       Phase = "discovery"
	PhaseSelection       Phase = "selection"
	PhaseExtraction      Phase = "extraction"
	PhaseDistillation    Phase = "distillation"
)

// SeedResolutionFailed reports that C1 could not turn the supplied seed
// into a base URL: the seed was empty, its URL had no host, no name
// resolver was configured, or the name lookup failed or found nothing.
type SeedResolutionFailed struct {
	Err error
}

func (e *SeedResolutionFailed) Error() string {
	return fmt.Sprintf("resolve seed: %v", e.Err)
}

func (e *SeedResolutionFailed) Unwrap() error { return e.Err }

// NewSeedResolutionFailed wraps cause with eris context and returns a
// SeedResolutionFailed.
func NewSeedResolutionFailed(cause error, msg string) *SeedResolutionFailed {
	return &SeedResolutionFailed{Err: eris.Wrap(cause, msg)}
}

// DiscoveryFailed reports that C2 surfaced zero paths from all three
// sub-sources (robots, sitemap, navigation).
type DiscoveryFailed struct {
	Err error
}

func (e *DiscoveryFailed) Error() string {
	return fmt.Sprintf("discover paths: %v", e.Err)
}

func (e *DiscoveryFailed) Unwrap() error { return e.Err }

func NewDiscoveryFailed(cause error, msg string) *DiscoveryFailed {
	return &DiscoveryFailed{Err: eris.Wrap(cause, msg)}
}

// FailureCause classifies why one of C3/C5's single chat-completions
// call failed, per spec.md §7.
type FailureCause string

const (
	CauseNetwork          FailureCause = "network"
	CauseHTTPStatus       FailureCause = "http_status"
	CauseParse            FailureCause = "parse"
	CauseEmptyResult      FailureCause = "empty_result"
	CauseSchemaUnderfilled FailureCause = "schema_underfilled"
)

// SelectionFailed reports that C3's chat-completions call or the
// resulting JSON contract could not be satisfied.
type SelectionFailed struct {
	Cause FailureCause
	Err   error
}

func (e *SelectionFailed) Error() string {
	return fmt.Sprintf("select paths (%s): %v", e.Cause, e.Err)
}

func (e *SelectionFailed) Unwrap() error { return e.Err }

func NewSelectionFailed(cause FailureCause, err error, msg string) *SelectionFailed {
	return &SelectionFailed{Cause: cause, Err: eris.Wrap(err, msg)}
}

// ExtractionFailed reports that C4 landed zero successful pages out of
// the selected set.
type ExtractionFailed struct {
	Err error
}

func (e *ExtractionFailed) Error() string {
	return fmt.Sprintf("extract pages: %v", e.Err)
}

func (e *ExtractionFailed) Unwrap() error { return e.Err }

func NewExtractionFailed(cause error, msg string) *ExtractionFailed {
	return &ExtractionFailed{Err: eris.Wrap(cause, msg)}
}

// DistillationFailed reports that C5's chat-completions call or the
// resulting JSON contract could not be satisfied, or that fewer than
// the minimum number of fields were filled.
type DistillationFailed struct {
	Cause FailureCause
	Err   error
}

func (e *DistillationFailed) Error() string {
	return fmt.Sprintf("distill fields (%s): %v", e.Cause, e.Err)
}

func (e *DistillationFailed) Unwrap() error { return e.Err }

func NewDistillationFailed(cause FailureCause, err error, msg string) *DistillationFailed {
	return &DistillationFailed{Cause: cause, Err: eris.Wrap(err, msg)}
}

// Cancelled reports that the caller's context was cancelled while the
// given phase was in flight.
type Cancelled struct {
	ReachedPhase Phase
	Err          error
}

func (e *Cancelled) Error() string {
	return fmt.Sprintf("cancelled during %s: %v", e.ReachedPhase, e.Err)
}

func (e *Cancelled) Unwrap() error { return e.Err }

func NewCancelled(phase Phase, err error) *Cancelled {
	return &Cancelled{ReachedPhase: phase, Err: err}
}

// Timeout reports that a phase exceeded its configured time budget.
type Timeout struct {
	Phase Phase
	Err   error
}

func (e *Timeout) Error() string {
	return fmt.Sprintf("timeout during %s: %v", e.Phase, e.Err)
}

func (e *Timeout) Unwrap() error { return e.Err }

func NewTimeout(phase Phase, err error) *Timeout {
	return &Timeout{Phase: phase, Err: err}
}
