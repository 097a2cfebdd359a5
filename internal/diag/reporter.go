package diag

import "rill/internal/source"

// Reporter is the minimal contract for receiving diagnostics from the
// reporting pass. Implementations: BagReporter (collects into a Bag),
// DedupReporter (suppresses duplicates), test recorders.
type Reporter interface {
	Report(d Diagnostic)
}

// Outcome records what happened to a built diagnostic. Suppression is a
// result, not a side effect, so callers and tests can observe it.
type Outcome uint8

const (
	// OutcomePending means the builder has neither emitted nor cancelled.
	OutcomePending Outcome = iota
	// OutcomeEmitted means the diagnostic was sent to the Reporter.
	OutcomeEmitted
	// OutcomeSuppressed means the diagnostic was cancelled and never shown.
	OutcomeSuppressed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeEmitted:
		return "emitted"
	case OutcomeSuppressed:
		return "suppressed"
	}
	return "pending"
}

// ReportBuilder accumulates diagnostic details before emitting to a
// Reporter. A builder is resolved exactly once: either Emit or Cancel.
type ReportBuilder struct {
	reporter Reporter
	diag     Diagnostic
	outcome  Outcome
}

// NewReportBuilder constructs a builder bound to the Reporter.
func NewReportBuilder(r Reporter, sev Severity, code Code, primary source.Span, msg string) *ReportBuilder {
	return &ReportBuilder{
		reporter: r,
		diag: Diagnostic{
			Severity: sev,
			Code:     code,
			Message:  msg,
			Primary:  primary,
		},
	}
}

// ReportError is a shortcut for SevError diagnostics.
func ReportError(r Reporter, code Code, primary source.Span, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevError, code, primary, msg)
}

// ReportWarning is a shortcut for SevWarning diagnostics.
func ReportWarning(r Reporter, code Code, primary source.Span, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevWarning, code, primary, msg)
}

// WithNote appends a located note.
func (b *ReportBuilder) WithNote(sp source.Span, msg string) *ReportBuilder {
	if b == nil {
		return nil
	}
	b.diag.Notes = append(b.diag.Notes, Note{Span: sp, Msg: msg})
	return b
}

// WithBareNote appends a note without a source location.
func (b *ReportBuilder) WithBareNote(msg string) *ReportBuilder {
	if b == nil {
		return nil
	}
	b.diag.Notes = append(b.diag.Notes, Note{Msg: msg})
	return b
}

// WithLabel appends an inline span label.
func (b *ReportBuilder) WithLabel(sp source.Span, msg string) *ReportBuilder {
	if b == nil {
		return nil
	}
	b.diag.Labels = append(b.diag.Labels, Label{Span: sp, Msg: msg})
	return b
}

// WithHelp appends a help line.
func (b *ReportBuilder) WithHelp(msg string) *ReportBuilder {
	if b == nil {
		return nil
	}
	b.diag.Helps = append(b.diag.Helps, msg)
	return b
}

// Emit sends the diagnostic to the underlying reporter. Calling Emit on an
// already-resolved builder is a no-op and returns the earlier outcome.
func (b *ReportBuilder) Emit() Outcome {
	if b == nil {
		return OutcomeSuppressed
	}
	if b.outcome != OutcomePending {
		return b.outcome
	}
	if b.reporter != nil {
		b.reporter.Report(b.diag)
	}
	b.outcome = OutcomeEmitted
	return b.outcome
}

// Cancel discards the diagnostic without showing it. Used for derived
// errors that would only repeat an earlier failure.
func (b *ReportBuilder) Cancel() Outcome {
	if b == nil {
		return OutcomeSuppressed
	}
	if b.outcome != OutcomePending {
		return b.outcome
	}
	b.outcome = OutcomeSuppressed
	return b.outcome
}

// Outcome returns the builder's resolution state.
func (b *ReportBuilder) Outcome() Outcome {
	if b == nil {
		return OutcomeSuppressed
	}
	return b.outcome
}

// Diagnostic returns the accumulated diagnostic without emitting.
func (b *ReportBuilder) Diagnostic() Diagnostic {
	if b == nil {
		return Diagnostic{}
	}
	return b.diag
}

// BagReporter writes into a *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(d Diagnostic) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(d)
}
