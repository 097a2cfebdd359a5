package scopes

import (
	"fmt"

	"fortio.org/safecast"

	"rill/internal/regions"
	"rill/internal/source"
)

// Node is one entry of the program index.
type Node struct {
	ID     NodeID
	Kind   NodeKind
	Parent NodeID
	Span   source.Span
}

type scopeEntry struct {
	node   NodeID
	extent regions.Extent
	known  bool
}

// Tree is the in-memory scope tree and program index. Index 0 of both
// tables is the invalid sentinel.
type Tree struct {
	nodes  []Node
	scopes map[regions.ScopeID]scopeEntry
}

// NewTree returns an empty tree.
func NewTree() *Tree {
	return &Tree{
		nodes:  []Node{{}},
		scopes: make(map[regions.ScopeID]scopeEntry),
	}
}

// AddNode appends a node and returns its ID. Parent may be NoNodeID for
// roots.
func (t *Tree) AddNode(kind NodeKind, parent NodeID, span source.Span) NodeID {
	lenNodes, err := safecast.Conv[uint32](len(t.nodes))
	if err != nil {
		panic(fmt.Errorf("node table overflow: %w", err))
	}
	id := NodeID(lenNodes)
	t.nodes = append(t.nodes, Node{ID: id, Kind: kind, Parent: parent, Span: span})
	return id
}

// BindScope associates a scope identifier with its node and extent kind.
func (t *Tree) BindScope(scope regions.ScopeID, node NodeID, extent regions.Extent) {
	if !scope.IsValid() {
		return
	}
	t.scopes[scope] = scopeEntry{node: node, extent: extent, known: true}
}

// Find returns the classified node, when it exists.
func (t *Tree) Find(id NodeID) (Node, bool) {
	if !id.IsValid() || int(id) >= len(t.nodes) {
		return Node{}, false
	}
	return t.nodes[id], true
}

// Parent returns the parent of the node, or NoNodeID.
func (t *Tree) Parent(id NodeID) NodeID {
	n, ok := t.Find(id)
	if !ok {
		return NoNodeID
	}
	return n.Parent
}

// NodeSpan returns the span of the node.
func (t *Tree) NodeSpan(id NodeID) (source.Span, bool) {
	n, ok := t.Find(id)
	if !ok {
		return source.Span{}, false
	}
	return n.Span, true
}

// ScopeNode returns the syntax node a scope identifier points at.
func (t *Tree) ScopeNode(scope regions.ScopeID) NodeID {
	e, ok := t.scopes[scope]
	if !ok {
		return NoNodeID
	}
	return e.node
}

// ScopeSpan returns the span of the scope's node. The second result is
// false for unknown scopes; callers degrade to a generic phrase then.
func (t *Tree) ScopeSpan(scope regions.ScopeID) (source.Span, bool) {
	e, ok := t.scopes[scope]
	if !ok || !e.known {
		return source.Span{}, false
	}
	return t.NodeSpan(e.node)
}

// Extent returns the extent kind recorded for the scope.
func (t *Tree) Extent(scope regions.ScopeID) regions.Extent {
	e, ok := t.scopes[scope]
	if !ok {
		return regions.Extent{}
	}
	return e.extent
}

// NodeString renders a short description for fallback messages.
func (t *Tree) NodeString(id NodeID) string {
	n, ok := t.Find(id)
	if !ok {
		return fmt.Sprintf("node #%d", id)
	}
	return fmt.Sprintf("%s #%d", n.Kind, id)
}

// Len returns the number of real nodes.
func (t *Tree) Len() int {
	return len(t.nodes) - 1
}
