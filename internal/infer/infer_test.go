package infer

import (
	"rill/internal/diag"
	"rill/internal/regions"
	"rill/internal/scopes"
	"rill/internal/source"
	"rill/internal/types"
)

// testWorld is the hand-built program every test in this package runs
// against: one file with a single function, its body block bound to
// bodyScope, and one statement bound to stmtScope.
type testWorld struct {
	ctx       *Context
	bag       *diag.Bag
	names     *source.Interner
	types     *types.Interner
	tree      *scopes.Tree
	file      source.FileID
	fnNode    scopes.NodeID
	bodyNode  scopes.NodeID
	stmtNode  scopes.NodeID
	bodyScope regions.ScopeID
	stmtScope regions.ScopeID
}

func newTestWorld() *testWorld {
	files := source.NewFileSet()
	file := files.AddVirtual("lib.rl", []byte("fn main() {\n    let x = 1;\n    let y = 2;\n}\n"))

	names := source.NewInterner()
	tt := types.NewInterner(names)
	tree := scopes.NewTree()

	fnNode := tree.AddNode(scopes.NodeItemFn, scopes.NoNodeID, source.Span{File: file, Start: 0, End: 43})
	bodyNode := tree.AddNode(scopes.NodeBlock, fnNode, source.Span{File: file, Start: 10, End: 43})
	stmtNode := tree.AddNode(scopes.NodeStmt, bodyNode, source.Span{File: file, Start: 12, End: 26})

	const (
		bodyScope regions.ScopeID = 1
		stmtScope regions.ScopeID = 2
	)
	tree.BindScope(bodyScope, bodyNode, regions.Extent{Kind: regions.ExtentPlain})
	tree.BindScope(stmtScope, stmtNode, regions.Extent{Kind: regions.ExtentPlain})

	bag := diag.NewBag(64)
	ctx := NewContext(files, names, tt, tree, diag.BagReporter{Bag: bag})
	return &testWorld{
		ctx:       ctx,
		bag:       bag,
		names:     names,
		types:     tt,
		tree:      tree,
		file:      file,
		fnNode:    fnNode,
		bodyNode:  bodyNode,
		stmtNode:  stmtNode,
		bodyScope: bodyScope,
		stmtScope: stmtScope,
	}
}

func (w *testWorld) span(start, end uint32) source.Span {
	return source.Span{File: w.file, Start: start, End: end}
}

// freeRegion returns a named lifetime parameter bound on the test
// function's body scope.
func (w *testWorld) freeRegion(name string) regions.Region {
	return regions.NewFree(w.bodyScope, regions.NamedBound(w.names.Intern(name)))
}
