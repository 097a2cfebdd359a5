// Package infer turns raw region constraint failures into user
// diagnostics: it groups related errors, explains regions in terms of the
// code they cover, and synthesizes the final messages.
package infer

import (
	"errors"

	"rill/internal/diag"
	"rill/internal/regions"
	"rill/internal/scopes"
	"rill/internal/source"
	"rill/internal/types"
)

// ErrInternal wraps conditions that indicate a bug in the compiler rather
// than in the program under analysis.
var ErrInternal = errors.New("internal error")

// Index is the view of the scope tree the reporter needs. *scopes.Tree
// implements it.
type Index interface {
	Find(id scopes.NodeID) (scopes.Node, bool)
	Parent(id scopes.NodeID) scopes.NodeID
	NodeSpan(id scopes.NodeID) (source.Span, bool)
	NodeString(id scopes.NodeID) string
	ScopeNode(scope regions.ScopeID) scopes.NodeID
	ScopeSpan(scope regions.ScopeID) (source.Span, bool)
	Extent(scope regions.ScopeID) regions.Extent
}

// TypeTable is the view of the type interner the reporter needs.
// *types.Interner implements it.
type TypeTable interface {
	Display(id types.TypeID) string
	SortString(id types.TypeID) string
	IsPrimitive(id types.TypeID) bool
	ReferencesError(id types.TypeID) bool
	IsLocal(id types.TypeID) bool
	NominalPath(id types.TypeID) (path string, unit types.UnitID, ok bool)
	UnitName(unit types.UnitID) string
}

// Context wires the collaborators together for one reporting run.
type Context struct {
	Files *source.FileSet
	Names *source.Interner
	Types TypeTable
	Index Index
	Sink  diag.Reporter
}

// NewContext builds a reporting context. Any nil collaborator is replaced
// with an empty one so lookups degrade instead of panicking.
func NewContext(files *source.FileSet, names *source.Interner, tt TypeTable, index Index, sink diag.Reporter) *Context {
	if files == nil {
		files = source.NewFileSet()
	}
	if names == nil {
		names = source.NewInterner()
	}
	if tt == nil {
		tt = types.NewInterner(names)
	}
	if index == nil {
		index = scopes.NewTree()
	}
	return &Context{Files: files, Names: names, Types: tt, Index: index, Sink: sink}
}

// regionString renders a region for inline use inside suggestions and
// requirement strings, where the full explainer sentence would not fit.
func (ctx *Context) regionString(r regions.Region) string {
	switch r.Kind {
	case regions.RegionStatic:
		return "'static"
	case regions.RegionEarlyBound:
		if s, ok := ctx.Names.Lookup(r.Name); ok {
			return s
		}
	case regions.RegionFree, regions.RegionLateBound, regions.RegionSkolemized:
		if s := r.Bound.Display(ctx.Names); s != "" {
			return s
		}
	}
	return r.DebugString()
}
