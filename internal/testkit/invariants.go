package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"rill/internal/regions"
	"rill/internal/scopes"
	"rill/internal/source"
)

// CheckTreeInvariants runs a minimal set of structural invariants on a
// decoded program index:
//  1. every node span stays within its file's content bounds
//  2. parents precede their children in the node table
//  3. a child span nests inside its parent's span when both carry spans
//     of the same file
func CheckTreeInvariants(fs *source.FileSet, tree *scopes.Tree) error {
	if fs == nil || tree == nil {
		return fmt.Errorf("nil file set or tree")
	}

	for i := 1; i <= tree.Len(); i++ {
		id := scopes.NodeID(i)
		n, ok := tree.Find(id)
		if !ok {
			return fmt.Errorf("node #%d missing from table", i)
		}

		if !n.Span.Empty() {
			sf := fs.Get(n.Span.File)
			if sf == nil {
				return fmt.Errorf("node #%d span points at unknown file %d", i, n.Span.File)
			}
			lenContent, err := safecast.Conv[uint32](len(sf.Content))
			if err != nil {
				return fmt.Errorf("len content overflow: %w", err)
			}
			if n.Span.End > lenContent {
				return fmt.Errorf("node #%d span end beyond content: %d > %d", i, n.Span.End, lenContent)
			}
			if n.Span.End < n.Span.Start {
				return fmt.Errorf("node #%d span is inverted: %v", i, n.Span)
			}
		}

		if !n.Parent.IsValid() {
			continue
		}
		if n.Parent >= id {
			return fmt.Errorf("node #%d has forward parent #%d", i, n.Parent)
		}
		parent, ok := tree.Find(n.Parent)
		if !ok {
			return fmt.Errorf("node #%d parent #%d missing from table", i, n.Parent)
		}
		if n.Span.Empty() || parent.Span.Empty() || n.Span.File != parent.Span.File {
			continue
		}
		if n.Span.Start < parent.Span.Start || n.Span.End > parent.Span.End {
			return fmt.Errorf("node #%d span %v escapes parent span %v", i, n.Span, parent.Span)
		}
	}
	return nil
}

// CheckScopeInvariants verifies that every listed scope resolves to a
// real node of the tree.
func CheckScopeInvariants(tree *scopes.Tree, ids []regions.ScopeID) error {
	if tree == nil {
		return fmt.Errorf("nil tree")
	}
	for _, scope := range ids {
		node := tree.ScopeNode(scope)
		if !node.IsValid() {
			return fmt.Errorf("scope %d is not bound", scope)
		}
		if _, ok := tree.Find(node); !ok {
			return fmt.Errorf("scope %d points at missing node #%d", scope, node)
		}
	}
	return nil
}
