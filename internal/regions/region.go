// Package regions defines the data model for lifetimes as the constraint
// solver sees them: lexical scopes, free regions bound on function
// signatures, and the various placeholder forms that occur during
// inference.
package regions

import (
	"fmt"

	"rill/internal/source"
)

// ScopeID identifies a lexical scope in the scope tree.
type ScopeID uint32

// NoScopeID marks the absence of a scope.
const NoScopeID ScopeID = 0

// IsValid reports whether the ID refers to a real scope.
func (id ScopeID) IsValid() bool { return id != NoScopeID }

// RegionKind discriminates the Region sum type.
type RegionKind uint8

const (
	// RegionScope is a region tied to a lexical extent.
	RegionScope RegionKind = iota
	// RegionFree is a lifetime bound on a function signature.
	RegionFree
	// RegionStatic is the whole-program lifetime.
	RegionStatic
	// RegionEmpty is the empty lifetime.
	RegionEmpty
	// RegionEarlyBound is a named early-bound lifetime parameter.
	RegionEarlyBound
	// RegionLateBound is a late-bound lifetime at a given binder depth.
	RegionLateBound
	// RegionSkolemized is a placeholder from higher-ranked comparison.
	RegionSkolemized
	// RegionVar is an unresolved inference variable.
	RegionVar
	// RegionErased carries no information (post-typeck).
	RegionErased
)

// Region is a tagged union; Kind selects which payload fields are active.
//
//	RegionScope:      Scope
//	RegionFree:       Scope, Bound
//	RegionEarlyBound: Name
//	RegionLateBound:  Depth, Bound
//	RegionSkolemized: ID, Bound
//	RegionVar:        ID
type Region struct {
	Kind  RegionKind
	Scope ScopeID
	Bound BoundRegion
	Name  source.StringID
	Depth uint32
	ID    uint32
}

// NewScope returns a region tied to the lexical scope.
func NewScope(scope ScopeID) Region {
	return Region{Kind: RegionScope, Scope: scope}
}

// NewFree returns a free region: a lifetime bound on the function whose
// body is scope.
func NewFree(scope ScopeID, bound BoundRegion) Region {
	return Region{Kind: RegionFree, Scope: scope, Bound: bound}
}

// Static returns the static lifetime.
func Static() Region {
	return Region{Kind: RegionStatic}
}

// Empty returns the empty lifetime.
func Empty() Region {
	return Region{Kind: RegionEmpty}
}

// NewEarlyBound returns a named early-bound lifetime parameter.
func NewEarlyBound(name source.StringID) Region {
	return Region{Kind: RegionEarlyBound, Name: name}
}

// NewLateBound returns a late-bound lifetime at the given binder depth.
func NewLateBound(depth uint32, bound BoundRegion) Region {
	return Region{Kind: RegionLateBound, Depth: depth, Bound: bound}
}

// NewSkolemized returns a skolemized placeholder region.
func NewSkolemized(id uint32, bound BoundRegion) Region {
	return Region{Kind: RegionSkolemized, ID: id, Bound: bound}
}

// NewVar returns an unresolved region inference variable.
func NewVar(id uint32) Region {
	return Region{Kind: RegionVar, ID: id}
}

// Erased returns the erased region.
func Erased() Region {
	return Region{Kind: RegionErased}
}

// IsFree reports whether the region is a signature-bound free region.
func (r Region) IsFree() bool { return r.Kind == RegionFree }

// DebugString renders the region for internal fallback messages only; user
// phrasing is produced by the scope explainer.
func (r Region) DebugString() string {
	switch r.Kind {
	case RegionScope:
		return fmt.Sprintf("ReScope(%d)", r.Scope)
	case RegionFree:
		return fmt.Sprintf("ReFree(%d, %s)", r.Scope, r.Bound.DebugString())
	case RegionStatic:
		return "ReStatic"
	case RegionEmpty:
		return "ReEmpty"
	case RegionEarlyBound:
		return fmt.Sprintf("ReEarlyBound(%d)", r.Name)
	case RegionLateBound:
		return fmt.Sprintf("ReLateBound(%d, %s)", r.Depth, r.Bound.DebugString())
	case RegionSkolemized:
		return fmt.Sprintf("ReSkolemized(%d, %s)", r.ID, r.Bound.DebugString())
	case RegionVar:
		return fmt.Sprintf("ReVar(%d)", r.ID)
	case RegionErased:
		return "ReErased"
	}
	return "ReInvalid"
}
