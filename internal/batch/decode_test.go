package batch

import (
	"bytes"
	"errors"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"rill/internal/infer"
	"rill/internal/regions"
	"rill/internal/scopes"
	"rill/internal/testkit"
	"rill/internal/types"
)

const fixtureSource = "fn main() {\n    let x = 1;\n    let y = 2;\n}\n"

// fixtureWire builds a small, internally consistent batch: one file, a
// function with a body block and one statement scope, a handful of
// types, and a single reborrow failure between the two scopes.
func fixtureWire() batchWire {
	return batchWire{
		Unit:  "app",
		Names: []string{"a", "river::Reader"},
		Units: []string{"river-1.0"},
		Files: []fileWire{{Path: "main.rl", Content: []byte(fixtureSource)}},
		Nodes: []nodeWire{
			{Kind: uint8(scopes.NodeItemFn), Parent: 0, Span: spanWire{File: 1, Start: 0, End: 43}},
			{Kind: uint8(scopes.NodeBlock), Parent: 1, Span: spanWire{File: 1, Start: 10, End: 43}},
			{Kind: uint8(scopes.NodeStmt), Parent: 2, Span: spanWire{File: 1, Start: 12, End: 26}},
		},
		Scopes: []scopeWire{
			{Scope: 1, Node: 2, Extent: uint8(regions.ExtentPlain)},
			{Scope: 2, Node: 3, Extent: uint8(regions.ExtentPlain)},
		},
		Types: []typeWire{
			{Kind: uint8(types.KindInt)},
			{Kind: uint8(types.KindReference), Elem: 1},
			{Kind: uint8(types.KindNamed), Path: 2, Unit: 1},
		},
		Errors: []errorWire{{
			Kind:   uint8(infer.ConflictConcrete),
			Origin: originWire{Kind: uint8(infer.OriginReborrow), Span: spanWire{File: 1, Start: 16, End: 25}},
			Sub:    regionWire{Kind: uint8(regions.RegionScope), Scope: 2},
			Sup: regionWire{
				Kind:      uint8(regions.RegionFree),
				Scope:     1,
				BoundKind: uint8(regions.BoundNamed),
				BoundName: 1,
			},
		}},
	}
}

func decodeWire(t *testing.T, w batchWire) *Unit {
	t.Helper()
	var buf bytes.Buffer
	if err := encode(&buf, &w); err != nil {
		t.Fatalf("encode: %v", err)
	}
	u, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return u
}

func TestDecodeRoundTrip(t *testing.T) {
	u := decodeWire(t, fixtureWire())

	if u.Name != "app" {
		t.Errorf("unit name = %q, want %q", u.Name, "app")
	}
	if u.Files.Len() != 1 {
		t.Fatalf("files = %d, want 1", u.Files.Len())
	}
	if u.Tree.Len() != 3 {
		t.Errorf("nodes = %d, want 3", u.Tree.Len())
	}
	if len(u.Errors) != 1 {
		t.Fatalf("errors = %d, want 1", len(u.Errors))
	}

	rec := u.Errors[0]
	if rec.Kind != infer.ConflictConcrete {
		t.Fatalf("conflict kind = %v, want concrete", rec.Kind)
	}
	if rec.Origin.Kind != infer.OriginReborrow {
		t.Errorf("origin kind = %v, want reborrow", rec.Origin.Kind)
	}
	if rec.Sub.Kind != regions.RegionScope || rec.Sub.Scope != 2 {
		t.Errorf("sub region = %+v, want scope region of scope 2", rec.Sub)
	}
	if rec.Sup.Kind != regions.RegionFree || rec.Sup.Bound.Kind != regions.BoundNamed {
		t.Fatalf("sup region = %+v, want named free region", rec.Sup)
	}
	if got := u.Names.MustLookup(rec.Sup.Bound.Name); got != "a" {
		t.Errorf("sup bound name = %q, want %q", got, "a")
	}
}

func TestDecodeTypes(t *testing.T) {
	w := fixtureWire()
	w.Errors[0].Origin.Type = 2
	u := decodeWire(t, w)

	id := u.Errors[0].Origin.Type
	if got := u.Types.Display(id); got != "&int" {
		t.Errorf("Display = %q, want %q", got, "&int")
	}
}

func TestDecodeNominalUnit(t *testing.T) {
	w := fixtureWire()
	w.Errors[0].Origin.Type = 3
	u := decodeWire(t, w)

	id := u.Errors[0].Origin.Type
	if got := u.Types.Display(id); got != "river::Reader" {
		t.Errorf("Display = %q, want %q", got, "river::Reader")
	}
	want := "struct `river::Reader` from unit `river-1.0`"
	if got := u.Types.SortString(id); got != want {
		t.Errorf("SortString = %q, want %q", got, want)
	}
	if u.Types.IsLocal(id) {
		t.Error("nominal registered to an external unit reported as local")
	}
}

func TestDecodeScopeBindings(t *testing.T) {
	u := decodeWire(t, fixtureWire())

	span, ok := u.Tree.ScopeSpan(2)
	if !ok {
		t.Fatal("scope 2 has no span")
	}
	if span.Start != 12 || span.End != 26 {
		t.Errorf("scope 2 span = %v, want 12..26", span)
	}
	node := u.Tree.ScopeNode(1)
	if parent := u.Tree.Parent(node); parent == scopes.NoNodeID {
		t.Error("block scope node has no parent")
	}
}

func TestDecodeSubSupConflict(t *testing.T) {
	w := fixtureWire()
	w.Errors = []errorWire{{
		Kind: uint8(infer.ConflictSubSup),
		VarOrigin: varOriginWire{
			Kind: uint8(infer.VarOriginAddrOfRegion),
			Span: spanWire{File: 1, Start: 16, End: 25},
		},
		SubOrigin: originWire{Kind: uint8(infer.OriginInvokeClosure), Span: spanWire{File: 1, Start: 12, End: 26}},
		SupOrigin: originWire{Kind: uint8(infer.OriginDerefPointer), Span: spanWire{File: 1, Start: 28, End: 42}},
		Sub:       regionWire{Kind: uint8(regions.RegionScope), Scope: 2},
		Sup:       regionWire{Kind: uint8(regions.RegionScope), Scope: 1},
	}}
	u := decodeWire(t, w)

	rec := u.Errors[0]
	if rec.Kind != infer.ConflictSubSup {
		t.Fatalf("conflict kind = %v, want sub/sup", rec.Kind)
	}
	if rec.VarOrigin.Kind != infer.VarOriginAddrOfRegion {
		t.Errorf("var origin = %v, want addr-of", rec.VarOrigin.Kind)
	}
	if rec.SubOrigin.Kind != infer.OriginInvokeClosure || rec.SupOrigin.Kind != infer.OriginDerefPointer {
		t.Errorf("bound origins = %v / %v", rec.SubOrigin.Kind, rec.SupOrigin.Kind)
	}
}

func TestDecodeTraceAndCompare(t *testing.T) {
	w := fixtureWire()
	w.Errors[0].Origin = originWire{
		Kind:     uint8(infer.OriginSubtype),
		Span:     spanWire{File: 1, Start: 16, End: 25},
		HasTrace: true,
		Cause:    causeWire{Code: uint8(infer.CauseIfExpression), Span: spanWire{File: 1, Start: 0, End: 43}},
		Pairs:    uint8(infer.PairsTypes),
		Expected: 1,
		Found:    2,
		Compare: &compareWire{
			Span:         spanWire{File: 1, Start: 0, End: 43},
			Item:         1,
			ImplItem:     2,
			ContractItem: 1,
			Lint:         true,
		},
	}
	u := decodeWire(t, w)

	origin := u.Errors[0].Origin
	if origin.Trace == nil {
		t.Fatal("trace not decoded")
	}
	if origin.Trace.Cause.Code != infer.CauseIfExpression {
		t.Errorf("cause = %v, want if-expression", origin.Trace.Cause.Code)
	}
	if got := u.Types.Display(origin.Trace.Values.Expected); got != "int" {
		t.Errorf("expected side = %q, want int", got)
	}
	if got := u.Types.Display(origin.Trace.Values.Found); got != "&int" {
		t.Errorf("found side = %q, want &int", got)
	}
	if origin.Compare == nil {
		t.Fatal("compare payload not decoded")
	}
	if !origin.Compare.Lint {
		t.Error("compare lint flag lost")
	}
	if got := u.Names.MustLookup(origin.Compare.ItemName); got != "a" {
		t.Errorf("compare item = %q, want a", got)
	}
}

func TestDecodeRejectsSchemaMismatch(t *testing.T) {
	w := fixtureWire()
	w.Schema = SchemaVersion + 1
	var buf bytes.Buffer
	if err := msgpack.NewEncoder(&buf).Encode(&w); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := Decode(&buf); !errors.Is(err, ErrSchema) {
		t.Fatalf("err = %v, want ErrSchema", err)
	}
}

func TestDecodeRejectsGroupedOnWire(t *testing.T) {
	w := fixtureWire()
	w.Errors[0].Kind = uint8(infer.ConflictGrouped)
	var buf bytes.Buffer
	if err := encode(&buf, &w); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := Decode(&buf); !errors.Is(err, ErrMalformed) {
		t.Fatalf("err = %v, want ErrMalformed", err)
	}
}

func TestDecodeRejectsDanglingReferences(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(w *batchWire)
	}{
		{"span file out of range", func(w *batchWire) {
			w.Errors[0].Origin.Span.File = 9
		}},
		{"node parent forward reference", func(w *batchWire) {
			w.Nodes[0].Parent = 3
		}},
		{"type element forward reference", func(w *batchWire) {
			w.Types[1].Elem = 3
		}},
		{"name index out of range", func(w *batchWire) {
			w.Errors[0].Sup.BoundName = 42
		}},
		{"type index out of range", func(w *batchWire) {
			w.Errors[0].Origin.Type = 42
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := fixtureWire()
			tc.mutate(&w)
			var buf bytes.Buffer
			if err := encode(&buf, &w); err != nil {
				t.Fatalf("encode: %v", err)
			}
			if _, err := Decode(&buf); !errors.Is(err, ErrMalformed) {
				t.Fatalf("err = %v, want ErrMalformed", err)
			}
		})
	}
}

func TestDecodedUnitSatisfiesTreeInvariants(t *testing.T) {
	w := fixtureWire()
	unit := decodeWire(t, w)

	if err := testkit.CheckTreeInvariants(unit.Files, unit.Tree); err != nil {
		t.Fatalf("tree invariants: %v", err)
	}
	if err := testkit.CheckScopeInvariants(unit.Tree, []regions.ScopeID{1, 2}); err != nil {
		t.Fatalf("scope invariants: %v", err)
	}
	if err := testkit.CheckScopeInvariants(unit.Tree, []regions.ScopeID{7}); err == nil {
		t.Fatalf("expected unbound scope to fail the check")
	}
}
