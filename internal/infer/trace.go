package infer

import (
	"fmt"

	"rill/internal/regions"
	"rill/internal/types"
)

// PairsKind says what kind of values a trace compared.
type PairsKind uint8

const (
	// PairsTypes: two ordinary types.
	PairsTypes PairsKind = iota
	// PairsContractRefs: two contract references.
	PairsContractRefs
	// PairsPolyContractRefs: two contract references under a binder.
	PairsPolyContractRefs
)

// ValuePairs holds the expected and found sides of a comparison.
type ValuePairs struct {
	Kind     PairsKind
	Expected types.TypeID
	Found    types.TypeID
}

// TypeTrace records where a type comparison came from and what it
// compared. Every subtyping obligation carries one so the failure can be
// reported at the point the requirement arose.
type TypeTrace struct {
	Cause  ObligationCause
	Values ValuePairs
}

// NewTypeTrace builds a trace for an expected/found type comparison.
func NewTypeTrace(cause ObligationCause, expected, found types.TypeID) TypeTrace {
	return TypeTrace{
		Cause:  cause,
		Values: ValuePairs{Kind: PairsTypes, Expected: expected, Found: found},
	}
}

// TypeErrorKind discriminates TypeError.
type TypeErrorKind uint8

const (
	// TypeErrSorts: the two types are of different sorts outright.
	TypeErrSorts TypeErrorKind = iota
	// TypeErrContracts: two different contract references.
	TypeErrContracts
	// TypeErrRegions: the types agree except for lifetimes; Sub must
	// outlive Sup but does not.
	TypeErrRegions
	// TypeErrFixed: the unifier pre-rendered the detail (arity, mutability
	// and similar structural mismatches).
	TypeErrFixed
)

// TypeError is the unifier's verdict on why two values differ. Kind
// selects the payload:
//
//	TypeErrSorts, TypeErrContracts: Expected, Found
//	TypeErrRegions:                 Sub, Sup
//	TypeErrFixed:                   Msg
type TypeError struct {
	Kind     TypeErrorKind
	Expected types.TypeID
	Found    types.TypeID
	Sub      regions.Region
	Sup      regions.Region
	Msg      string
}

// SortsError reports two types of different sorts.
func SortsError(expected, found types.TypeID) TypeError {
	return TypeError{Kind: TypeErrSorts, Expected: expected, Found: found}
}

// ContractsError reports two different contract references.
func ContractsError(expected, found types.TypeID) TypeError {
	return TypeError{Kind: TypeErrContracts, Expected: expected, Found: found}
}

// RegionsError reports that sub was required to outlive sup but does not.
func RegionsError(sub, sup regions.Region) TypeError {
	return TypeError{Kind: TypeErrRegions, Sub: sub, Sup: sup}
}

// FixedError wraps a pre-rendered structural mismatch.
func FixedError(msg string) TypeError {
	return TypeError{Kind: TypeErrFixed, Msg: msg}
}

// Render produces the short form used as the primary span label.
func (e TypeError) Render(tt TypeTable) string {
	switch e.Kind {
	case TypeErrSorts:
		return fmt.Sprintf("expected %s, found %s",
			tt.Display(e.Expected), tt.Display(e.Found))
	case TypeErrContracts:
		return fmt.Sprintf("expected contract `%s`, found contract `%s`",
			tt.Display(e.Expected), tt.Display(e.Found))
	case TypeErrRegions:
		return "lifetime mismatch"
	case TypeErrFixed:
		return e.Msg
	}
	return "type mismatch"
}
