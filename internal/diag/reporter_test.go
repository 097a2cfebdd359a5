package diag

import (
	"testing"

	"rill/internal/source"
)

func TestReportBuilderEmit(t *testing.T) {
	bag := NewBag(10)
	r := BagReporter{Bag: bag}

	sp := source.Span{File: 0, Start: 3, End: 7}
	b := ReportError(r, LftReborrow, sp, "lifetime of reference outlives lifetime of borrowed content...")
	b.WithNote(sp, "...the reference is valid for the block at 1:1...")
	b.WithBareNote("...but the borrowed content is only valid for the static lifetime")

	if got := b.Emit(); got != OutcomeEmitted {
		t.Fatalf("Emit() = %v, want emitted", got)
	}
	if bag.Len() != 1 {
		t.Fatalf("bag has %d items, want 1", bag.Len())
	}

	d := bag.Items()[0]
	if d.Code != LftReborrow || d.Severity != SevError {
		t.Errorf("unexpected diagnostic header: %+v", d)
	}
	if len(d.Notes) != 2 {
		t.Fatalf("expected 2 notes, got %d", len(d.Notes))
	}
	if d.Notes[0].HasSpan() == false {
		t.Error("first note should carry a span")
	}
	if d.Notes[1].HasSpan() {
		t.Error("bare note should not carry a span")
	}

	// Emitting twice must not duplicate.
	if got := b.Emit(); got != OutcomeEmitted {
		t.Errorf("second Emit() = %v", got)
	}
	if bag.Len() != 1 {
		t.Errorf("double emit duplicated the diagnostic")
	}
}

func TestReportBuilderCancel(t *testing.T) {
	bag := NewBag(10)
	b := ReportError(BagReporter{Bag: bag}, TckTypeMismatch, source.Span{}, "mismatched types")

	if got := b.Cancel(); got != OutcomeSuppressed {
		t.Fatalf("Cancel() = %v", got)
	}
	if bag.Len() != 0 {
		t.Error("cancelled diagnostic reached the bag")
	}

	// A resolved builder stays resolved.
	if got := b.Emit(); got != OutcomeSuppressed {
		t.Errorf("Emit() after Cancel() = %v, want suppressed", got)
	}
	if bag.Len() != 0 {
		t.Error("Emit after Cancel leaked the diagnostic")
	}
}

func TestNilBuilderIsSafe(t *testing.T) {
	var b *ReportBuilder
	b = b.WithNote(source.Span{}, "x").WithHelp("y")
	if got := b.Emit(); got != OutcomeSuppressed {
		t.Errorf("nil builder Emit() = %v", got)
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(10)
	dedup := NewDedupReporter(BagReporter{Bag: bag})

	d := NewError(LftInvokeClosure, source.Span{File: 1, Start: 0, End: 4}, "cannot invoke closure outside of its lifetime")
	dedup.Report(d)
	dedup.Report(d)

	other := d
	other.Message = "different"
	dedup.Report(other)

	if bag.Len() != 2 {
		t.Errorf("bag has %d items, want 2", bag.Len())
	}
}
