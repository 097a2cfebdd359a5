package types

import "rill/internal/source"

// TypeID uniquely identifies a type inside the interner.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// Kind enumerates all supported kinds of types.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindUnit
	KindBool
	KindInt
	KindUint
	KindFloat
	KindString
	KindReference
	KindNamed
	KindContract
	KindProjection
	KindParam
	KindInfer
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindUnit:
		return "unit"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindReference:
		return "reference"
	case KindNamed:
		return "named"
	case KindContract:
		return "contract"
	case KindProjection:
		return "projection"
	case KindParam:
		return "type parameter"
	case KindInfer:
		return "inference variable"
	case KindError:
		return "error"
	}
	return "unknown"
}

// Type is a structural descriptor. Elem is used by references, Payload is a
// kind-specific slot index (nominal info, projection info) or variable
// index, Name is used by type parameters.
type Type struct {
	Kind    Kind
	Elem    TypeID
	Payload uint32
	Name    source.StringID
}

// IsPrimitive reports whether the kind needs no elaboration when shown in
// an expected/found pair.
func (k Kind) IsPrimitive() bool {
	switch k {
	case KindUnit, KindBool, KindInt, KindUint, KindFloat, KindString:
		return true
	}
	return false
}
