// Package batch reads solver exchange files: everything the reporting
// pass needs for one compilation unit (sources, program index, type
// table, conflict records), serialized by the constraint solver. Files
// use msgpack with a schema version for safe invalidation.
package batch

// SchemaVersion is bumped whenever the wire layout changes; readers
// reject mismatched files instead of guessing.
const SchemaVersion uint16 = 1

// FileExt is the conventional extension of solver batch files.
const FileExt = ".rlb"

// Wire structs. Indexes are table positions inside the same batch:
// name fields index Names, type fields index Types, file fields index
// Files, node fields are 1-based positions into Nodes (0 = none).

type spanWire struct {
	File  uint32
	Start uint32
	End   uint32
}

type fileWire struct {
	Path    string
	Content []byte
}

type nodeWire struct {
	Kind   uint8
	Parent uint32
	Span   spanWire
}

type scopeWire struct {
	Scope     uint32
	Node      uint32
	Extent    uint8
	FirstStmt uint32
}

type typeWire struct {
	Kind     uint8
	Elem     uint32 // reference element (type index)
	Name     uint32 // param name
	Path     uint32 // nominal path
	Nominal  uint8  // nominal kind
	Unit     uint32 // unit table index, 0 = local
	Base     uint32 // projection base (type index)
	Contract uint32 // projection contract (type index)
	Assoc    uint32 // projection item name
	Infer    uint32 // inference variable index
}

type regionWire struct {
	Kind       uint8
	Scope      uint32
	BoundKind  uint8
	BoundName  uint32
	BoundIndex uint32
	BoundID    uint32
	Name       uint32
	Depth      uint32
	ID         uint32
}

type causeWire struct {
	Code    uint8
	Span    spanWire
	ArmSpan spanWire
	Source  uint8
}

type compareWire struct {
	Span         spanWire
	Item         uint32
	ImplItem     uint32
	ContractItem uint32
	Lint         bool
}

type originWire struct {
	Kind     uint8
	Span     spanWire
	Type     uint32
	Var      uint32
	HasTrace bool
	Cause    causeWire
	Pairs    uint8
	Expected uint32
	Found    uint32
	Compare  *compareWire
}

type varOriginWire struct {
	Kind       uint8
	Span       spanWire
	Site       uint8
	BoundKind  uint8
	BoundName  uint32
	BoundIndex uint32
	BoundID    uint32
	Name       uint32
	Var        uint32
}

type errorWire struct {
	Kind      uint8 // mirrors infer.ConflictKind; Grouped is invalid on the wire
	Origin    originWire
	Sub       regionWire
	Sup       regionWire
	SubOrigin originWire
	SupOrigin originWire
	VarOrigin varOriginWire
	BoundTag  uint8
	BoundType uint32
	Region    regionWire
}

type batchWire struct {
	Schema uint16
	Unit   string
	Names  []string
	Units  []string
	Files  []fileWire
	Nodes  []nodeWire
	Scopes []scopeWire
	Types  []typeWire
	Errors []errorWire
}
