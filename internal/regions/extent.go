package regions

import "rill/internal/types"

// ExtentKind classifies what part of the syntax a scope's extent covers.
type ExtentKind uint8

const (
	// ExtentPlain is an ordinary lexical extent.
	ExtentPlain ExtentKind = iota
	// ExtentCallSite covers the call-site scope of a function.
	ExtentCallSite
	// ExtentParameter covers the parameter scope of a function body.
	ExtentParameter
	// ExtentDestruction wraps an extent for destructor ordering.
	ExtentDestruction
	// ExtentRemainder is a block suffix starting after a statement.
	ExtentRemainder
)

// Extent carries the extent kind plus, for ExtentRemainder, the index of
// the first statement included in the suffix.
type Extent struct {
	Kind      ExtentKind
	FirstStmt uint32
}

// GenericKindTag discriminates GenericKind.
type GenericKindTag uint8

const (
	// GenericParam is a type parameter such as `T`.
	GenericParam GenericKindTag = iota
	// GenericProjection is an associated-type projection.
	GenericProjection
)

// GenericKind names the generic the solver required a bound for.
type GenericKind struct {
	Tag  GenericKindTag
	Type types.TypeID
}
