package infer

import (
	"fmt"

	"rill/internal/diag"
	"rill/internal/regions"
)

// ReportRegionErrors is the entry point of the reporting pass: it groups
// the batch, then emits one diagnostic (or one merged diagnostic) per
// surviving record.
func (ctx *Context) ReportRegionErrors(errs []ConflictRecord) error {
	processed, ok, err := ctx.Group(errs)
	if err != nil {
		return err
	}
	if ok {
		errs = processed
	}
	for i := range errs {
		ctx.reportOne(errs[i])
	}
	return nil
}

func (ctx *Context) reportOne(e ConflictRecord) {
	switch e.Kind {
	case ConflictConcrete:
		ctx.reportConcreteFailure(e.Origin, e.Sub, e.Sup).Emit()
	case ConflictGenericBound:
		ctx.reportGenericBoundFailure(e.Origin, e.BoundKind, e.Region)
	case ConflictSubSup:
		ctx.reportSubSupConflict(e.VarOrigin, e.SubOrigin, e.Sub, e.SupOrigin, e.Sup)
	case ConflictGrouped:
		if len(e.Clusters) > 0 {
			ctx.reportProcessedErrors(e.Origins)
		}
	}
}

// reportConcreteFailure builds (without emitting) the diagnostic for a
// failed outlives check between two known regions.
func (ctx *Context) reportConcreteFailure(origin SubregionOrigin, sub, sup regions.Region) *diag.ReportBuilder {
	switch origin.Kind {
	case OriginSubtype:
		// The region conflict surfaced through subtyping; report it as
		// the type error it prevented.
		trace := TypeTrace{Cause: NewCause(CauseMisc, origin.Span)}
		if origin.Trace != nil {
			trace = *origin.Trace
		}
		terr := RegionsError(sup, sub)
		b := ctx.ReportAndExplainTypeError(trace, terr)
		ctx.NoteAndExplainRegion(b, "", sup, "...")
		ctx.NoteAndExplainRegion(b, "...does not necessarily outlive ", sub, "")
		return b

	case OriginCompareImplMethod:
		cmp := origin.Compare
		if cmp == nil {
			cmp = &CompareImplMethod{Span: origin.Span}
		}
		// The extra-obligation report carries the whole story; no
		// region explanation follows it.
		requirement := fmt.Sprintf("`%s: %s`", ctx.regionString(sup), ctx.regionString(sub))
		return ctx.reportExtraImplObligation(*cmp, requirement)
	}

	entry, ok := concreteRegistry[origin.Kind]
	if !ok {
		// Unclassified origin: still say something actionable.
		b := diag.ReportError(ctx.Sink, diag.LftReborrow, origin.Span,
			"lifetime error")
		ctx.NoteAndExplainRegion(b, "the reference is valid for ", sub, "")
		ctx.NoteAndExplainRegion(b, "but the referenced data is only valid for ", sup, "")
		return b
	}
	b := diag.ReportError(ctx.Sink, entry.code, origin.Span,
		ctx.expandPlan(entry.message, origin))
	for _, n := range entry.notes {
		r := sub
		if n.side == noteSup {
			r = sup
		}
		ctx.NoteAndExplainRegion(b, ctx.expandPlan(n.prefix, origin), r,
			ctx.expandPlan(n.suffix, origin))
	}
	return b
}

// reportGenericBoundFailure reports that a generic (type parameter or
// projection) could not be shown to outlive the required region, with a
// bound suggestion when one exists.
func (ctx *Context) reportGenericBoundFailure(origin SubregionOrigin, kind regions.GenericKind, sub regions.Region) {
	if origin.Kind == OriginCompareImplMethod && origin.Compare != nil {
		// The impl method is the one imposing the extra requirement;
		// the report stands alone, without a region explanation.
		requirement := fmt.Sprintf("`%s: %s`",
			ctx.genericString(kind), ctx.regionString(sub))
		ctx.reportExtraImplObligation(*origin.Compare, requirement).Emit()
		return
	}

	labeled := ctx.labeledGenericString(kind)
	var b *diag.ReportBuilder
	switch {
	case sub.Kind == regions.RegionFree && sub.Bound.Kind == regions.BoundNamed:
		b = diag.ReportError(ctx.Sink, diag.LftBoundNamed, origin.Span,
			fmt.Sprintf("%s may not live long enough", labeled))
		b.WithHelp(fmt.Sprintf(
			"consider adding an explicit lifetime bound `%s: %s`...",
			ctx.genericString(kind), ctx.regionString(sub)))

	case sub.Kind == regions.RegionStatic:
		b = diag.ReportError(ctx.Sink, diag.LftBoundStatic, origin.Span,
			fmt.Sprintf("%s may not live long enough", labeled))
		b.WithHelp(fmt.Sprintf(
			"consider adding an explicit lifetime bound `%s: 'static`...",
			ctx.genericString(kind)))

	default:
		b = diag.ReportError(ctx.Sink, diag.LftBoundGeneric, origin.Span,
			fmt.Sprintf("%s may not live long enough", labeled))
		b.WithHelp(fmt.Sprintf(
			"consider adding an explicit lifetime bound for `%s`",
			ctx.genericString(kind)))
		ctx.NoteAndExplainRegion(b,
			fmt.Sprintf("%s must be valid for ", labeled), sub, "...")
	}
	ctx.noteRegionOrigin(b, origin)
	b.Emit()
}

// reportSubSupConflict reports contradictory bounds on a region inference
// variable: the two requirements, each with its provenance.
func (ctx *Context) reportSubSupConflict(
	varOrigin RegionVariableOrigin,
	subOrigin SubregionOrigin, sub regions.Region,
	supOrigin SubregionOrigin, sup regions.Region,
) {
	b := ctx.reportInferenceFailure(varOrigin)
	ctx.NoteAndExplainRegion(b, "first, the lifetime cannot outlive ", sup, "...")
	ctx.noteRegionOrigin(b, supOrigin)
	ctx.NoteAndExplainRegion(b, "but, the lifetime must be valid for ", sub, "...")
	ctx.noteRegionOrigin(b, subOrigin)
	b.Emit()
}

// reportProcessedErrors emits the per-error reports of a merged cluster.
func (ctx *Context) reportProcessedErrors(origins []ProcessedErrorOrigin) {
	for _, o := range origins {
		switch o.Kind {
		case ProcessedVariable:
			ctx.reportInferenceFailure(o.VarOrigin).Emit()
		case ProcessedConcrete:
			ctx.reportConcreteFailure(o.Origin, o.Sub, o.Sup).Emit()
		}
	}
}

// reportInferenceFailure builds the "cannot infer an appropriate
// lifetime" headline for a region variable.
func (ctx *Context) reportInferenceFailure(varOrigin RegionVariableOrigin) *diag.ReportBuilder {
	desc := ctx.varOriginDescription(varOrigin)
	if desc != "" {
		desc = " " + desc
	}
	return diag.ReportError(ctx.Sink, diag.LftInferenceConflict, varOrigin.Span,
		fmt.Sprintf("cannot infer an appropriate lifetime%s due to conflicting requirements", desc))
}

func (ctx *Context) varOriginDescription(o RegionVariableOrigin) string {
	switch o.Kind {
	case VarOriginMisc:
		return ""
	case VarOriginPatternRegion:
		return "for pattern"
	case VarOriginAddrOfRegion:
		return "for borrow expression"
	case VarOriginAutoref:
		return "for autoref"
	case VarOriginCoercion:
		return "for automatic coercion"
	case VarOriginLateBoundRegion:
		br := o.Bound.Display(ctx.Names)
		if br != "" {
			br += " "
		}
		switch o.Site {
		case SiteFnCall:
			return fmt.Sprintf("for lifetime parameter %sin function call", br)
		case SiteHigherRankedType:
			return fmt.Sprintf("for lifetime parameter %sin generic type", br)
		case SiteAssocTypeProjection:
			name, _ := ctx.Names.Lookup(o.Name)
			return fmt.Sprintf("for lifetime parameter %sin contract containing associated type `%s`", br, name)
		}
	case VarOriginEarlyBoundRegion:
		name, _ := ctx.Names.Lookup(o.Name)
		return fmt.Sprintf("for lifetime parameter `%s`", name)
	case VarOriginUpvarRegion:
		name, _ := ctx.Names.Lookup(o.Var)
		return fmt.Sprintf("for capture of `%s` by closure", name)
	case VarOriginBoundRegionInCoherence:
		name, _ := ctx.Names.Lookup(o.Name)
		return fmt.Sprintf("for lifetime parameter `%s` in coherence check", name)
	}
	return ""
}

// noteRegionOrigin appends the provenance note saying why a requirement
// exists.
func (ctx *Context) noteRegionOrigin(b *diag.ReportBuilder, origin SubregionOrigin) {
	if origin.Kind == OriginSubtype {
		req := "types are compatible"
		span := origin.Span
		if origin.Trace != nil {
			req = origin.Trace.Cause.RequirementStr()
			span = origin.Trace.Cause.Span
			if expected, found, ok := ctx.valuesStr(origin.Trace.Values); ok {
				b.WithNote(span, fmt.Sprintf("...so that %s (expected %s, found %s)",
					req, expected, found))
				return
			}
		}
		b.WithNote(span, "...so that "+req)
		return
	}
	if msg, ok := originNoteRegistry[origin.Kind]; ok {
		b.WithNote(origin.Span, ctx.expandPlan(msg, origin))
	}
}

// reportExtraImplObligation builds the "impl has stricter requirements
// than contract" report shared by the conformance-check paths.
func (ctx *Context) reportExtraImplObligation(cmp CompareImplMethod, requirement string) *diag.ReportBuilder {
	sev := diag.SevError
	if cmp.Lint {
		sev = diag.SevWarning
	}
	b := diag.NewReportBuilder(ctx.Sink, sev, diag.TckExtraImplObligation, cmp.Span,
		"impl has stricter requirements than contract")
	if span, ok := ctx.Index.NodeSpan(cmp.ContractItem); ok {
		name, _ := ctx.Names.Lookup(cmp.ItemName)
		b.WithLabel(span, fmt.Sprintf("definition of `%s` from contract", name))
	}
	b.WithLabel(cmp.Span, fmt.Sprintf("impl has extra requirement %s", requirement))
	return b
}

// ReportHigherRankedReturnWarning flags a lifetime parameter that appears
// only in the return type of a function, where upcoming scoping rules
// change its meaning.
func (ctx *Context) ReportHigherRankedReturnWarning(o RegionVariableOrigin, fnPath string) {
	name := ctx.regionString(regions.Region{Kind: regions.RegionLateBound, Bound: o.Bound})
	diag.ReportWarning(ctx.Sink, diag.TckHigherRankedReturn, o.Span,
		fmt.Sprintf("lifetime parameter `%s` declared on fn `%s` appears only in the return type",
			name, fnPath)).
		WithBareNote("this is accepted for now, but the meaning of the binding will change").
		Emit()
}

func (ctx *Context) genericString(kind regions.GenericKind) string {
	return ctx.Types.Display(kind.Type)
}

func (ctx *Context) labeledGenericString(kind regions.GenericKind) string {
	switch kind.Tag {
	case regions.GenericProjection:
		return fmt.Sprintf("the associated type `%s`", ctx.genericString(kind))
	}
	return fmt.Sprintf("the parameter type `%s`", ctx.genericString(kind))
}
