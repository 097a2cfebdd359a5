package types

import (
	"fmt"

	"fortio.org/safecast"

	"rill/internal/source"
)

// UnitID identifies the compilation unit a nominal type originates from.
// LocalUnit is the unit currently being checked.
type UnitID uint32

// LocalUnit is the compilation unit under analysis.
const LocalUnit UnitID = 0

// NominalKind classifies a named declaration.
type NominalKind uint8

const (
	NominalStruct NominalKind = iota
	NominalEnum
	NominalUnion
	NominalContract
)

func (k NominalKind) String() string {
	switch k {
	case NominalStruct:
		return "struct"
	case NominalEnum:
		return "enum"
	case NominalUnion:
		return "union"
	case NominalContract:
		return "contract"
	}
	return "item"
}

// NominalInfo stores metadata for a named type: its printed path, the kind
// of declaration, and the unit it came from.
type NominalInfo struct {
	Path source.StringID // fully qualified display path, e.g. "river::Reader"
	Kind NominalKind
	Unit UnitID
	Decl source.Span
}

// ProjectionInfo stores metadata for an associated-type projection such as
// "<T as Reader>::Item".
type ProjectionInfo struct {
	Base     TypeID
	Contract TypeID
	Assoc    source.StringID
}

// Builtins stores TypeIDs for common primitive types.
type Builtins struct {
	Invalid TypeID
	Unit    TypeID
	Bool    TypeID
	Int     TypeID
	Uint    TypeID
	Float   TypeID
	String  TypeID
	Error   TypeID
}

// Interner provides stable TypeIDs by hashing structural descriptors.
// Nominal and projection types get a fresh slot per registration, so two
// declarations with the same printed path remain distinct types.
type Interner struct {
	types       []Type
	index       map[typeKey]TypeID
	builtins    Builtins
	nominals    []NominalInfo
	projections []ProjectionInfo
	names       *source.Interner
	unitNames   []string // indexed by UnitID; [0] is the local unit
}

// NewInterner constructs an interner seeded with built-in primitives.
func NewInterner(names *source.Interner) *Interner {
	if names == nil {
		names = source.NewInterner()
	}
	in := &Interner{
		index:     make(map[typeKey]TypeID, 64),
		names:     names,
		unitNames: []string{""},
	}
	in.nominals = append(in.nominals, NominalInfo{}) // reserve 0 as invalid sentinel
	in.projections = append(in.projections, ProjectionInfo{})
	in.builtins.Invalid = in.internRaw(Type{Kind: KindInvalid})
	in.builtins.Unit = in.Intern(Type{Kind: KindUnit})
	in.builtins.Bool = in.Intern(Type{Kind: KindBool})
	in.builtins.Int = in.Intern(Type{Kind: KindInt})
	in.builtins.Uint = in.Intern(Type{Kind: KindUint})
	in.builtins.Float = in.Intern(Type{Kind: KindFloat})
	in.builtins.String = in.Intern(Type{Kind: KindString})
	in.builtins.Error = in.Intern(Type{Kind: KindError})
	return in
}

// Builtins returns TypeIDs for primitive types.
func (in *Interner) Builtins() Builtins {
	return in.builtins
}

// Names returns the string interner shared with the rest of the pipeline.
func (in *Interner) Names() *source.Interner {
	return in.names
}

// Intern ensures the provided descriptor has a stable TypeID.
func (in *Interner) Intern(t Type) TypeID {
	if t.Kind == KindInvalid {
		return NoTypeID
	}
	key := typeKey(t)
	if id, ok := in.index[key]; ok {
		return id
	}
	return in.internRaw(t)
}

func (in *Interner) internRaw(t Type) TypeID {
	lenTypes, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("len(types) overflow: %w", err))
	}
	id := TypeID(lenTypes)
	in.types = append(in.types, t)
	in.index[typeKey(t)] = id
	return id
}

// Lookup returns the descriptor for a TypeID.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics when id is invalid.
func (in *Interner) MustLookup(id TypeID) Type {
	tt, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return tt
}

// Reference interns a reference to elem.
func (in *Interner) Reference(elem TypeID) TypeID {
	return in.Intern(Type{Kind: KindReference, Elem: elem})
}

// Param interns a generic type parameter with the given name.
func (in *Interner) Param(name string) TypeID {
	return in.Intern(Type{Kind: KindParam, Name: in.names.Intern(name)})
}

// InferVar interns a fresh inference placeholder with the given index.
func (in *Interner) InferVar(idx uint32) TypeID {
	return in.Intern(Type{Kind: KindInfer, Payload: idx})
}

// RegisterUnit records a compilation unit display name and returns its ID.
func (in *Interner) RegisterUnit(name string) UnitID {
	slot, err := safecast.Conv[uint32](len(in.unitNames))
	if err != nil {
		panic(fmt.Errorf("unit table overflow: %w", err))
	}
	in.unitNames = append(in.unitNames, name)
	return UnitID(slot)
}

// RegisterNominal allocates a named-type slot and returns its TypeID.
// kind NominalContract produces a contract (interface) type.
func (in *Interner) RegisterNominal(path string, kind NominalKind, unit UnitID, decl source.Span) TypeID {
	in.nominals = append(in.nominals, NominalInfo{
		Path: in.names.Intern(path),
		Kind: kind,
		Unit: unit,
		Decl: decl,
	})
	slot, err := safecast.Conv[uint32](len(in.nominals) - 1)
	if err != nil {
		panic(fmt.Errorf("nominal info overflow: %w", err))
	}
	typeKind := KindNamed
	if kind == NominalContract {
		typeKind = KindContract
	}
	return in.internRaw(Type{Kind: typeKind, Payload: slot})
}

// RegisterProjection allocates an associated-type projection slot.
func (in *Interner) RegisterProjection(base, contract TypeID, assoc string) TypeID {
	in.projections = append(in.projections, ProjectionInfo{
		Base:     base,
		Contract: contract,
		Assoc:    in.names.Intern(assoc),
	})
	slot, err := safecast.Conv[uint32](len(in.projections) - 1)
	if err != nil {
		panic(fmt.Errorf("projection info overflow: %w", err))
	}
	return in.internRaw(Type{Kind: KindProjection, Payload: slot})
}

// NominalInfo returns metadata for a named or contract TypeID.
func (in *Interner) NominalInfo(id TypeID) (*NominalInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || (tt.Kind != KindNamed && tt.Kind != KindContract) {
		return nil, false
	}
	if tt.Payload == 0 || int(tt.Payload) >= len(in.nominals) {
		return nil, false
	}
	return &in.nominals[tt.Payload], true
}

// ProjectionInfo returns metadata for a projection TypeID.
func (in *Interner) ProjectionInfo(id TypeID) (*ProjectionInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindProjection {
		return nil, false
	}
	if tt.Payload == 0 || int(tt.Payload) >= len(in.projections) {
		return nil, false
	}
	return &in.projections[tt.Payload], true
}

// UnitName returns the display name for a unit. The local unit has no name.
func (in *Interner) UnitName(unit UnitID) string {
	if int(unit) >= len(in.unitNames) {
		return ""
	}
	return in.unitNames[unit]
}

// IsLocal reports whether the nominal type was declared in the unit under
// analysis. Non-nominal types count as local.
func (in *Interner) IsLocal(id TypeID) bool {
	info, ok := in.NominalInfo(id)
	if !ok {
		return true
	}
	return info.Unit == LocalUnit
}

type typeKey struct {
	Kind    Kind
	Elem    TypeID
	Payload uint32
	Name    source.StringID
}
