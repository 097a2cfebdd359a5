package infer

import (
	"strings"
	"testing"

	"rill/internal/diag"
	"rill/internal/regions"
	"rill/internal/source"
	"rill/internal/types"
)

func TestTypeErrorPrimitiveSuppression(t *testing.T) {
	w := newTestWorld()
	intT := w.types.Builtins().Int
	uintT := w.types.Builtins().Uint
	trace := NewTypeTrace(NewCause(CauseExprAssignable, w.span(12, 26)), intT, uintT)

	b := w.ctx.ReportAndExplainTypeError(trace, SortsError(intT, uintT))
	if got := b.Emit(); got != diag.OutcomeEmitted {
		t.Fatalf("outcome = %s, want emitted", got)
	}
	d := w.bag.Items()[0]
	if d.Code != diag.TckTypeMismatch {
		t.Errorf("code = %s", d.Code.ID())
	}
	if d.Message != "mismatched types" {
		t.Errorf("message = %q", d.Message)
	}
	for _, n := range d.Notes {
		if strings.Contains(n.Msg, "expected") {
			t.Errorf("primitive pair should have no expected/found note, got %q", n.Msg)
		}
	}
	if len(d.Labels) != 1 || d.Labels[0].Msg != "expected int, found uint" {
		t.Errorf("labels = %v", d.Labels)
	}
}

func TestTypeErrorExpectedFoundNote(t *testing.T) {
	w := newTestWorld()
	intT := w.types.Builtins().Int
	reader := w.types.RegisterNominal("river::Reader", types.NominalStruct, types.LocalUnit, source.Span{})
	trace := NewTypeTrace(NewCause(CauseExprAssignable, w.span(12, 26)), reader, intT)

	w.ctx.ReportAndExplainTypeError(trace, SortsError(reader, intT)).Emit()
	d := w.bag.Items()[0]
	want := "expected type `river::Reader`, found type `int`"
	if len(d.Notes) == 0 || d.Notes[0].Msg != want {
		t.Fatalf("notes = %v, want first %q", d.Notes, want)
	}
}

func TestTypeErrorIdenticalPrintsDisambiguated(t *testing.T) {
	w := newTestWorld()
	unitA := w.types.RegisterUnit("river-1.0")
	unitB := w.types.RegisterUnit("river-2.0")
	readerA := w.types.RegisterNominal("river::Reader", types.NominalStruct, unitA, source.Span{})
	readerB := w.types.RegisterNominal("river::Reader", types.NominalStruct, unitB, source.Span{})
	trace := NewTypeTrace(NewCause(CauseExprAssignable, w.span(12, 26)), readerA, readerB)

	w.ctx.ReportAndExplainTypeError(trace, SortsError(readerA, readerB)).Emit()
	d := w.bag.Items()[0]
	if len(d.Notes) < 2 {
		t.Fatalf("want disambiguation and version-skew notes, got %v", d.Notes)
	}
	wantFirst := "expected type `river::Reader` (struct `river::Reader` from unit `river-1.0`), " +
		"found type `river::Reader` (struct `river::Reader` from unit `river-2.0`)"
	if d.Notes[0].Msg != wantFirst {
		t.Errorf("note[0] = %q, want %q", d.Notes[0].Msg, wantFirst)
	}
	wantSkew := "perhaps two different versions of unit `river-1.0` are being used?"
	if d.Notes[1].Msg != wantSkew {
		t.Errorf("note[1] = %q, want %q", d.Notes[1].Msg, wantSkew)
	}
}

func TestTypeErrorNoVersionSkewNoteForLocalType(t *testing.T) {
	w := newTestWorld()
	unitA := w.types.RegisterUnit("river-1.0")
	external := w.types.RegisterNominal("river::Reader", types.NominalStruct, unitA, source.Span{})
	local := w.types.RegisterNominal("river::Reader", types.NominalStruct, types.LocalUnit, source.Span{})
	trace := NewTypeTrace(NewCause(CauseExprAssignable, w.span(12, 26)), external, local)

	w.ctx.ReportAndExplainTypeError(trace, SortsError(external, local)).Emit()
	d := w.bag.Items()[0]
	for _, n := range d.Notes {
		if strings.Contains(n.Msg, "two different versions") {
			t.Errorf("unexpected version-skew note: %q", n.Msg)
		}
	}
}

func TestTypeErrorUnresolvedTypeCancels(t *testing.T) {
	w := newTestWorld()
	intT := w.types.Builtins().Int
	infT := w.types.InferVar(0)
	trace := NewTypeTrace(NewCause(CauseExprAssignable, w.span(12, 26)), intT, infT)

	b := w.ctx.ReportAndExplainTypeError(trace, SortsError(intT, infT))
	if got := b.Outcome(); got != diag.OutcomeSuppressed {
		t.Fatalf("outcome = %s, want suppressed", got)
	}
	if got := b.Emit(); got != diag.OutcomeSuppressed {
		t.Fatalf("Emit after cancel = %s, want suppressed", got)
	}
	if w.bag.Len() != 0 {
		t.Fatalf("cancelled diagnostic reached the sink: %d items", w.bag.Len())
	}
}

func TestTypeErrorIfLetArmNote(t *testing.T) {
	w := newTestWorld()
	intT := w.types.Builtins().Int
	strT := w.types.Builtins().String
	cause := NewMatchArmCause(w.span(12, 26), w.span(27, 41), MatchIfLetDesugar)
	trace := NewTypeTrace(cause, intT, strT)

	w.ctx.ReportAndExplainTypeError(trace, SortsError(intT, strT)).Emit()
	d := w.bag.Items()[0]
	if d.Message != "`if let` arms have incompatible types" {
		t.Errorf("message = %q", d.Message)
	}
	found := false
	for _, n := range d.Notes {
		if n.Msg == "`if let` arm with an incompatible type" && n.Span == w.span(27, 41) {
			found = true
		}
	}
	if !found {
		t.Errorf("missing if-let arm note, notes = %v", d.Notes)
	}
}

func TestTypeErrorCodeSelection(t *testing.T) {
	tests := []struct {
		name string
		code CauseCode
		want diag.Code
	}{
		{"plain mismatch", CauseExprAssignable, diag.TckTypeMismatch},
		{"missing else", CauseIfExpressionWithNoElse, diag.TckIfMissingElse},
		{"main type", CauseMainFunctionType, diag.TckMainFunctionType},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := newTestWorld()
			intT := w.types.Builtins().Int
			uintT := w.types.Builtins().Uint
			trace := NewTypeTrace(NewCause(tc.code, w.span(12, 26)), intT, uintT)
			w.ctx.ReportAndExplainTypeError(trace, SortsError(intT, uintT)).Emit()
			if got := w.bag.Items()[0].Code; got != tc.want {
				t.Errorf("code = %s, want %s", got.ID(), tc.want.ID())
			}
		})
	}
}

func TestSubtypeOriginReportsAsTypeError(t *testing.T) {
	w := newTestWorld()
	intT := w.types.Builtins().Int
	trace := NewTypeTrace(NewCause(CauseExprAssignable, w.span(12, 26)), intT, intT)
	origin := NewSubtypeOrigin(trace)

	if err := w.ctx.ReportRegionErrors([]ConflictRecord{
		ConcreteFailure(origin,
			regions.NewScope(w.stmtScope),
			regions.NewScope(w.bodyScope)),
	}); err != nil {
		t.Fatalf("ReportRegionErrors: %v", err)
	}
	items := w.bag.Items()
	if len(items) != 1 {
		t.Fatalf("want one diagnostic, got %d", len(items))
	}
	d := items[0]
	if d.Code != diag.TckTypeMismatch {
		t.Errorf("code = %s", d.Code.ID())
	}
	if len(d.Labels) == 0 || d.Labels[0].Msg != "lifetime mismatch" {
		t.Errorf("labels = %v", d.Labels)
	}
	var last2 []string
	for _, n := range d.Notes[max(0, len(d.Notes)-2):] {
		last2 = append(last2, n.Msg)
	}
	if len(last2) != 2 ||
		last2[0] != "the block at 1:11..." ||
		last2[1] != "...does not necessarily outlive the statement at 2:1" {
		t.Errorf("region notes = %v", last2)
	}
}
