package regions

import (
	"testing"

	"rill/internal/source"
)

func TestBoundRegionComparability(t *testing.T) {
	names := source.NewInterner()
	a := names.Intern("'a")

	if NamedBound(a) != NamedBound(a) {
		t.Error("equal named bound regions must compare equal")
	}
	if AnonymousBound(0) == AnonymousBound(1) {
		t.Error("anonymous bound regions with different indexes must differ")
	}
	if NamedBound(a) == FreshBound(uint32(a)) {
		t.Error("kinds must participate in equality")
	}
}

func TestBoundRegionDisplay(t *testing.T) {
	names := source.NewInterner()
	a := names.Intern("'buf")

	if got := NamedBound(a).Display(names); got != "'buf" {
		t.Errorf("named Display = %q", got)
	}
	if got := AnonymousBound(2).Display(names); got != "" {
		t.Errorf("anonymous Display = %q, want empty", got)
	}
}

func TestRegionConstructors(t *testing.T) {
	r := NewFree(ScopeID(4), AnonymousBound(1))
	if r.Kind != RegionFree || r.Scope != 4 || !r.IsFree() {
		t.Errorf("NewFree built %+v", r)
	}
	if NewScope(2).IsFree() {
		t.Error("scope region must not be free")
	}
	if Static().Kind != RegionStatic || Empty().Kind != RegionEmpty {
		t.Error("fixed-region constructors broken")
	}
}

func TestScopeIDValidity(t *testing.T) {
	if NoScopeID.IsValid() {
		t.Error("NoScopeID must be invalid")
	}
	if !ScopeID(1).IsValid() {
		t.Error("ScopeID(1) must be valid")
	}
}
