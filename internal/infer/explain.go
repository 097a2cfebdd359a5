package infer

import (
	"fmt"

	"rill/internal/diag"
	"rill/internal/regions"
	"rill/internal/scopes"
	"rill/internal/source"
)

// NoteAndExplainRegion appends a note of the form "<prefix><region
// description><suffix>" to the builder, pointing at the region's code when
// a location is known. Malformed scope references degrade to a
// bug-reporting note instead of failing.
func (ctx *Context) NoteAndExplainRegion(b *diag.ReportBuilder, prefix string, r regions.Region, suffix string) {
	desc, span, hasSpan := ctx.explainRegion(r)
	msg := prefix + desc + suffix
	if hasSpan {
		b.WithNote(span, msg)
		return
	}
	b.WithBareNote(msg)
}

func (ctx *Context) explainRegion(r regions.Region) (string, source.Span, bool) {
	switch r.Kind {
	case regions.RegionScope:
		return ctx.explainScope(r.Scope)
	case regions.RegionFree:
		return ctx.explainFree(r)
	case regions.RegionStatic:
		return "the static lifetime", source.Span{}, false
	case regions.RegionEmpty:
		return "the empty lifetime", source.Span{}, false
	case regions.RegionEarlyBound:
		if s, ok := ctx.Names.Lookup(r.Name); ok {
			return s, source.Span{}, false
		}
	}
	// Inference artifacts should have been resolved before reporting;
	// fall back to the debug form rather than invent a description.
	return "lifetime " + r.DebugString(), source.Span{}, false
}

func (ctx *Context) explainScope(scope regions.ScopeID) (string, source.Span, bool) {
	span, ok := ctx.Index.ScopeSpan(scope)
	if !ok {
		msg := fmt.Sprintf("unknown scope: %d.  Please report a bug.", scope)
		return msg, source.Span{}, false
	}
	node, ok := ctx.Index.Find(ctx.Index.ScopeNode(scope))
	if !ok {
		msg := fmt.Sprintf("unknown node for scope %d.  Please report a bug.", scope)
		return msg, span, true
	}
	tag := scopeTag(node.Kind)
	decorated := tag
	switch ext := ctx.Index.Extent(scope); ext.Kind {
	case regions.ExtentCallSite:
		decorated = "scope of call-site for function"
	case regions.ExtentParameter:
		decorated = "scope of function body"
	case regions.ExtentDestruction:
		decorated = "destruction scope surrounding " + tag
	case regions.ExtentRemainder:
		decorated = fmt.Sprintf("block suffix following statement %d", ext.FirstStmt)
	}
	return ctx.explainSpan(decorated, span), span, true
}

func (ctx *Context) explainFree(r regions.Region) (string, source.Span, bool) {
	var intro string
	switch r.Bound.Kind {
	case regions.BoundAnonymous:
		intro = fmt.Sprintf("the anonymous lifetime #%d defined on", r.Bound.Index+1)
	case regions.BoundFresh:
		intro = "an anonymous lifetime defined on"
	default:
		intro = fmt.Sprintf("the lifetime %s as defined on", r.Bound.Display(ctx.Names))
	}

	nodeID := ctx.Index.ScopeNode(r.Scope)
	node, ok := ctx.Index.Find(nodeID)
	if !ok {
		msg := fmt.Sprintf("%s unknown node for scope %d.  Please report a bug.", intro, r.Scope)
		return msg, source.Span{}, false
	}
	var tag string
	switch {
	case node.Kind.IsItem():
		tag = itemScopeTag(node.Kind)
	case node.Kind != scopes.NodeInvalid:
		tag = "body"
	default:
		msg := fmt.Sprintf("%s unexpected node (%s) for scope %d.  Please report a bug.",
			intro, ctx.Index.NodeString(nodeID), r.Scope)
		return msg, source.Span{}, false
	}
	span, ok := ctx.Index.NodeSpan(nodeID)
	if !ok {
		return intro + " " + tag, source.Span{}, false
	}
	return intro + " " + ctx.explainSpan(tag, span), span, true
}

// explainSpan anchors a described piece of code at its start position.
func (ctx *Context) explainSpan(heading string, span source.Span) string {
	start, _ := ctx.Files.Resolve(span)
	return fmt.Sprintf("the %s at %d:%d", heading, start.Line, start.Col)
}

func scopeTag(kind scopes.NodeKind) string {
	switch kind {
	case scopes.NodeBlock:
		return "block"
	case scopes.NodeCall:
		return "call"
	case scopes.NodeMethodCall:
		return "method call"
	case scopes.NodeIfLet:
		return "if let"
	case scopes.NodeWhileLet:
		return "while let"
	case scopes.NodeFor:
		return "for"
	case scopes.NodeMatch:
		return "match"
	case scopes.NodeStmt:
		return "statement"
	case scopes.NodeExpr:
		return "expression"
	}
	if kind.IsItem() {
		return itemScopeTag(kind)
	}
	return "unknown scope"
}

func itemScopeTag(kind scopes.NodeKind) string {
	switch kind {
	case scopes.NodeItemImpl:
		return "impl"
	case scopes.NodeItemStruct:
		return "struct"
	case scopes.NodeItemUnion:
		return "union"
	case scopes.NodeItemEnum:
		return "enum"
	case scopes.NodeItemContract:
		return "contract"
	case scopes.NodeItemFn:
		return "function body"
	case scopes.NodeContractMethod, scopes.NodeImplMethod:
		return "method body"
	case scopes.NodeAssocItem:
		return "associated item"
	}
	return "item"
}
