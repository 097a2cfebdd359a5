package diag

import (
	"testing"

	"rill/internal/source"
)

func TestBagLimit(t *testing.T) {
	bag := NewBag(2)
	d := NewError(LftReborrow, source.Span{}, "x")

	if !bag.Add(d) || !bag.Add(d) {
		t.Fatal("first two Adds should succeed")
	}
	if bag.Add(d) {
		t.Error("third Add should be rejected")
	}
	if bag.Len() != 2 {
		t.Errorf("Len = %d, want 2", bag.Len())
	}
}

func TestBagSortDeterministic(t *testing.T) {
	mk := func(file source.FileID, start uint32, code Code) Diagnostic {
		return NewError(code, source.Span{File: file, Start: start, End: start + 1}, "m")
	}

	build := func() *Bag {
		bag := NewBag(10)
		bag.Add(mk(1, 5, LftCallArgument))
		bag.Add(mk(0, 9, LftReborrow))
		bag.Add(mk(1, 5, LftAddrOf))
		bag.Add(mk(0, 2, LftInvokeClosure))
		bag.Sort()
		return bag
	}

	first := build()
	second := build()

	for i := range first.Items() {
		if first.Items()[i].Code != second.Items()[i].Code {
			t.Fatalf("sort is not deterministic at %d", i)
		}
	}

	items := first.Items()
	if items[0].Primary.File != 0 || items[0].Primary.Start != 2 {
		t.Errorf("expected file 0 offset 2 first, got %v", items[0].Primary)
	}
	if items[2].Code != LftCallArgument || items[3].Code != LftAddrOf {
		// same span: ordered by code
		t.Errorf("expected LftCallArgument before LftAddrOf, got %v, %v",
			items[2].Code, items[3].Code)
	}
}

func TestBagDedup(t *testing.T) {
	bag := NewBag(10)
	d := NewError(LftOperand, source.Span{File: 0, Start: 1, End: 2}, "same")
	bag.Add(d)
	bag.Add(d)
	bag.Add(NewError(LftOperand, source.Span{File: 0, Start: 1, End: 2}, "other"))
	bag.Dedup()

	if bag.Len() != 2 {
		t.Errorf("Dedup left %d items, want 2", bag.Len())
	}
}

func TestBagMergeAndSeverity(t *testing.T) {
	a := NewBag(1)
	a.Add(New(SevWarning, TckHigherRankedReturn, source.Span{}, "w"))

	b := NewBag(1)
	b.Add(NewError(LftReborrow, source.Span{}, "e"))

	a.Merge(b)
	if a.Len() != 2 {
		t.Fatalf("merged Len = %d", a.Len())
	}
	if !a.HasErrors() || !a.HasWarnings() {
		t.Error("severity queries wrong after merge")
	}
}
