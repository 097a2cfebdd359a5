package types

import (
	"testing"

	"rill/internal/source"
)

func TestInternStructuralSharing(t *testing.T) {
	in := NewInterner(nil)

	r1 := in.Reference(in.Builtins().Int)
	r2 := in.Reference(in.Builtins().Int)
	if r1 != r2 {
		t.Errorf("identical references interned twice: %d != %d", r1, r2)
	}

	r3 := in.Reference(in.Builtins().Bool)
	if r3 == r1 {
		t.Error("references to distinct types must not share an ID")
	}
}

func TestNominalTypesStayDistinct(t *testing.T) {
	in := NewInterner(nil)

	a := in.RegisterNominal("river::Reader", NominalStruct, LocalUnit, source.Span{})
	b := in.RegisterNominal("river::Reader", NominalStruct, LocalUnit, source.Span{})
	if a == b {
		t.Error("two declarations with the same path must remain distinct types")
	}
	if in.Display(a) != in.Display(b) {
		t.Error("same path must print identically")
	}
}

func TestDisplay(t *testing.T) {
	in := NewInterner(nil)
	named := in.RegisterNominal("pond::Frame", NominalStruct, LocalUnit, source.Span{})
	contract := in.RegisterNominal("pond::Iter", NominalContract, LocalUnit, source.Span{})
	proj := in.RegisterProjection(named, contract, "Item")

	tests := []struct {
		name string
		id   TypeID
		want string
	}{
		{"int", in.Builtins().Int, "int"},
		{"unit", in.Builtins().Unit, "()"},
		{"reference", in.Reference(in.Builtins().String), "&string"},
		{"named", named, "pond::Frame"},
		{"contract", contract, "pond::Iter"},
		{"projection", proj, "<pond::Frame as pond::Iter>::Item"},
		{"param", in.Param("T"), "T"},
		{"error", in.Builtins().Error, "{error}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := in.Display(tt.id); got != tt.want {
				t.Errorf("Display = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSortStringNamesUnit(t *testing.T) {
	in := NewInterner(nil)
	ext := in.RegisterUnit("river-1.0")
	foreign := in.RegisterNominal("river::Reader", NominalStruct, ext, source.Span{})
	local := in.RegisterNominal("river::Reader", NominalStruct, LocalUnit, source.Span{})

	if got := in.SortString(foreign); got != "struct `river::Reader` from unit `river-1.0`" {
		t.Errorf("foreign SortString = %q", got)
	}
	if got := in.SortString(local); got != "struct `river::Reader`" {
		t.Errorf("local SortString = %q", got)
	}
}

func TestReferencesError(t *testing.T) {
	in := NewInterner(nil)

	if in.ReferencesError(in.Builtins().Int) {
		t.Error("int must not reference error")
	}
	if !in.ReferencesError(in.Builtins().Error) {
		t.Error("error type must reference error")
	}
	if !in.ReferencesError(in.InferVar(3)) {
		t.Error("inference variable counts as unresolved")
	}
	if !in.ReferencesError(in.Reference(in.Builtins().Error)) {
		t.Error("reference to error must propagate")
	}
}

func TestIsLocal(t *testing.T) {
	in := NewInterner(nil)
	ext := in.RegisterUnit("delta-2.1")

	local := in.RegisterNominal("a::B", NominalEnum, LocalUnit, source.Span{})
	foreign := in.RegisterNominal("a::B", NominalEnum, ext, source.Span{})

	if !in.IsLocal(local) {
		t.Error("local nominal reported as foreign")
	}
	if in.IsLocal(foreign) {
		t.Error("foreign nominal reported as local")
	}
	if !in.IsLocal(in.Builtins().Int) {
		t.Error("primitives count as local")
	}
}
