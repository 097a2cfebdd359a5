package scopes

import (
	"testing"

	"rill/internal/regions"
	"rill/internal/source"
)

func TestTreeLookups(t *testing.T) {
	tree := NewTree()

	fn := tree.AddNode(NodeItemFn, NoNodeID, source.Span{File: 0, Start: 0, End: 50})
	body := tree.AddNode(NodeBlock, fn, source.Span{File: 0, Start: 10, End: 50})
	call := tree.AddNode(NodeCall, body, source.Span{File: 0, Start: 20, End: 30})

	bodyScope := regions.ScopeID(1)
	callScope := regions.ScopeID(2)
	tree.BindScope(bodyScope, body, regions.Extent{Kind: regions.ExtentParameter})
	tree.BindScope(callScope, call, regions.Extent{})

	if got := tree.Parent(call); got != body {
		t.Errorf("Parent(call) = %d, want %d", got, body)
	}
	if got := tree.Parent(fn); got != NoNodeID {
		t.Errorf("Parent(root) = %d", got)
	}

	sp, ok := tree.ScopeSpan(bodyScope)
	if !ok || sp.Start != 10 {
		t.Errorf("ScopeSpan = %v, %v", sp, ok)
	}

	if _, ok := tree.ScopeSpan(regions.ScopeID(99)); ok {
		t.Error("unknown scope must not resolve")
	}

	if tree.Extent(bodyScope).Kind != regions.ExtentParameter {
		t.Error("extent kind lost")
	}

	n, ok := tree.Find(call)
	if !ok || n.Kind != NodeCall {
		t.Errorf("Find(call) = %+v, %v", n, ok)
	}
	if _, ok := tree.Find(NodeID(42)); ok {
		t.Error("out-of-range node must not resolve")
	}

	if tree.Len() != 3 {
		t.Errorf("Len = %d, want 3", tree.Len())
	}
}

func TestNodeKindClassification(t *testing.T) {
	items := []NodeKind{
		NodeItemImpl, NodeItemStruct, NodeItemUnion, NodeItemEnum,
		NodeItemContract, NodeItemFn, NodeItemOther,
		NodeContractMethod, NodeImplMethod, NodeAssocItem,
	}
	for _, k := range items {
		if !k.IsItem() {
			t.Errorf("%s should be an item", k)
		}
	}
	code := []NodeKind{NodeBlock, NodeCall, NodeMatch, NodeExpr, NodeStmt}
	for _, k := range code {
		if k.IsItem() {
			t.Errorf("%s should not be an item", k)
		}
	}
}
