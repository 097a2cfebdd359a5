package infer

import (
	"fmt"

	"rill/internal/diag"
	"rill/internal/types"
)

// ReportAndExplainTypeError builds the report for a failed type
// comparison. The builder is cancelled (never shown) when either side
// still references an earlier type error, since the user already saw the
// real problem.
func (ctx *Context) ReportAndExplainTypeError(trace TypeTrace, terr TypeError) *diag.ReportBuilder {
	span := trace.Cause.Span
	code := diag.TckTypeMismatch
	switch trace.Cause.Code {
	case CauseIfExpressionWithNoElse:
		code = diag.TckIfMissingElse
	case CauseMainFunctionType:
		code = diag.TckMainFunctionType
	}
	b := diag.ReportError(ctx.Sink, code, span, trace.Cause.FailureStr())
	values := &trace.Values
	if values.Expected == types.NoTypeID && values.Found == types.NoTypeID {
		values = nil
	}
	ctx.NoteTypeError(b, trace.Cause, values, terr)
	return b
}

// NoteTypeError attaches the expected/found detail, the primary label,
// the cause-specific note, and the version-skew hint to the builder.
// values may be nil when the comparison has no printable sides.
func (ctx *Context) NoteTypeError(b *diag.ReportBuilder, cause ObligationCause, values *ValuePairs, terr TypeError) {
	if values != nil {
		expected, found, ok := ctx.valuesStr(*values)
		if !ok {
			b.Cancel()
			return
		}

		// A plain sorts mismatch between primitives reads fine from the
		// label alone; spelling out expected/found again would repeat it.
		simple := terr.Kind == TypeErrSorts &&
			ctx.Types.IsPrimitive(values.Expected) && ctx.Types.IsPrimitive(values.Found)
		switch {
		case simple:
		case expected == found && terr.Kind == TypeErrSorts:
			// Identical prints for different types: disambiguate by sort.
			b.WithBareNote(fmt.Sprintf("expected %s (%s), found %s (%s)",
				expected, ctx.Types.SortString(values.Expected),
				found, ctx.Types.SortString(values.Found)))
		default:
			b.WithBareNote(fmt.Sprintf("expected %s, found %s", expected, found))
		}
	}

	b.WithLabel(cause.Span, terr.Render(ctx.Types))
	ctx.noteErrorOrigin(b, cause)
	ctx.noteConflictingUnits(b, cause, terr)
}

// valuesStr prints both sides of a comparison. ok is false when either
// side carries an earlier error and the report should be suppressed.
func (ctx *Context) valuesStr(values ValuePairs) (expected, found string, ok bool) {
	if ctx.Types.ReferencesError(values.Expected) || ctx.Types.ReferencesError(values.Found) {
		return "", "", false
	}
	switch values.Kind {
	case PairsContractRefs, PairsPolyContractRefs:
		return fmt.Sprintf("contract `%s`", ctx.Types.Display(values.Expected)),
			fmt.Sprintf("contract `%s`", ctx.Types.Display(values.Found)),
			true
	}
	return fmt.Sprintf("type `%s`", ctx.Types.Display(values.Expected)),
		fmt.Sprintf("type `%s`", ctx.Types.Display(values.Found)),
		true
}

// noteErrorOrigin points at the earlier code that fixed the expectation.
func (ctx *Context) noteErrorOrigin(b *diag.ReportBuilder, cause ObligationCause) {
	if cause.Code != CauseMatchExpressionArm {
		return
	}
	if cause.Source == MatchIfLetDesugar {
		b.WithNote(cause.ArmSpan, "`if let` arm with an incompatible type")
		return
	}
	b.WithNote(cause.ArmSpan, "match arm with an incompatible type")
}

// noteConflictingUnits adds a hint when the two sides are same-named
// nominal types out of different copies of one external unit.
func (ctx *Context) noteConflictingUnits(b *diag.ReportBuilder, cause ObligationCause, terr TypeError) {
	if terr.Kind != TypeErrSorts && terr.Kind != TypeErrContracts {
		return
	}
	expPath, expUnit, ok := ctx.Types.NominalPath(terr.Expected)
	if !ok {
		return
	}
	foundPath, foundUnit, ok := ctx.Types.NominalPath(terr.Found)
	if !ok {
		return
	}
	if expUnit == types.LocalUnit || foundUnit == types.LocalUnit {
		return
	}
	if expUnit == foundUnit || expPath != foundPath {
		return
	}
	b.WithNote(cause.Span, fmt.Sprintf(
		"perhaps two different versions of unit `%s` are being used?",
		ctx.Types.UnitName(expUnit)))
}
