// Package scopes provides the scope tree and program index consumed by the
// region-error reporting pass: a mapping from opaque scope identifiers to
// lexical extents and from node identifiers to classified syntax nodes.
//
// The reporting pass only touches the narrow lookup surface (span, parent,
// classification, extent kind), so the tree can be built by hand in tests
// or decoded from a solver batch.
package scopes

// NodeID identifies a syntax node in the program index.
type NodeID uint32

// NoNodeID marks the absence of a node.
const NoNodeID NodeID = 0

// IsValid reports whether the ID refers to a real node.
func (id NodeID) IsValid() bool { return id != NoNodeID }

// NodeKind classifies a syntax node the way the explainer needs it.
type NodeKind uint8

const (
	NodeInvalid NodeKind = iota

	// Statements and expressions.
	NodeBlock
	NodeCall
	NodeMethodCall
	NodeIfLet
	NodeWhileLet
	NodeFor
	NodeMatch
	NodeExpr
	NodeStmt

	// Declarations.
	NodeItemImpl
	NodeItemStruct
	NodeItemUnion
	NodeItemEnum
	NodeItemContract
	NodeItemFn
	NodeItemOther
	NodeContractMethod
	NodeImplMethod
	NodeAssocItem
)

func (k NodeKind) String() string {
	switch k {
	case NodeBlock:
		return "block"
	case NodeCall:
		return "call"
	case NodeMethodCall:
		return "method call"
	case NodeIfLet:
		return "if let"
	case NodeWhileLet:
		return "while let"
	case NodeFor:
		return "for"
	case NodeMatch:
		return "match"
	case NodeExpr:
		return "expression"
	case NodeStmt:
		return "statement"
	case NodeItemImpl:
		return "impl"
	case NodeItemStruct:
		return "struct"
	case NodeItemUnion:
		return "union"
	case NodeItemEnum:
		return "enum"
	case NodeItemContract:
		return "contract"
	case NodeItemFn:
		return "function"
	case NodeItemOther:
		return "item"
	case NodeContractMethod:
		return "contract method"
	case NodeImplMethod:
		return "impl method"
	case NodeAssocItem:
		return "associated item"
	}
	return "invalid"
}

// IsItem reports whether the node is a declaration rather than code.
func (k NodeKind) IsItem() bool {
	switch k {
	case NodeItemImpl, NodeItemStruct, NodeItemUnion, NodeItemEnum,
		NodeItemContract, NodeItemFn, NodeItemOther,
		NodeContractMethod, NodeImplMethod, NodeAssocItem:
		return true
	}
	return false
}
