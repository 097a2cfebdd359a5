package infer

import (
	"rill/internal/regions"
	"rill/internal/scopes"
	"rill/internal/source"
	"rill/internal/types"
)

// OriginKind discriminates SubregionOrigin: why the solver required one
// region to outlive another.
type OriginKind uint8

const (
	// OriginSubtype is a subtyping obligation; carries a TypeTrace.
	OriginSubtype OriginKind = iota
	// OriginInfStackClosure: a stack closure must not outlive its frame.
	OriginInfStackClosure
	// OriginInvokeClosure: a closure is invoked and must still be alive.
	OriginInvokeClosure
	// OriginDerefPointer: dereference of a reference.
	OriginDerefPointer
	// OriginFreeVariable: closure capture of a variable by reference.
	OriginFreeVariable
	// OriginIndexSlice: indexing into a slice.
	OriginIndexSlice
	// OriginRelateObjectBound: source pointer vs object lifetime bound.
	OriginRelateObjectBound
	// OriginRelateParamBound: a type must fulfill a lifetime bound.
	OriginRelateParamBound
	// OriginRelateRegionParamBound: lifetime parameter vs its bound.
	OriginRelateRegionParamBound
	// OriginRelateDefaultParamBound: defaulted type parameter bound.
	OriginRelateDefaultParamBound
	// OriginReborrow: creating a reference out of an existing reference.
	OriginReborrow
	// OriginReborrowUpvar: reborrow of a captured variable.
	OriginReborrowUpvar
	// OriginDataBorrowed: data must outlive the borrow of it.
	OriginDataBorrowed
	// OriginReferenceOutlivesReferent: `&'a T` requires T to outlive 'a.
	OriginReferenceOutlivesReferent
	// OriginParameterInScope: a generic parameter used at this point.
	OriginParameterInScope
	// OriginCallReceiver: method receiver must outlive the call.
	OriginCallReceiver
	// OriginCallArgument: function argument must outlive the call.
	OriginCallArgument
	// OriginCallReturn: return value must outlive the call.
	OriginCallReturn
	// OriginOperand: operand of an operator expression.
	OriginOperand
	// OriginAddrOf: a borrow expression.
	OriginAddrOf
	// OriginAutoBorrow: an adjustment-inserted borrow.
	OriginAutoBorrow
	// OriginSafeDestructor: destructor safety check.
	OriginSafeDestructor
	// OriginBindingTypeIsNotValidAtDecl: binding type vs declaration site.
	OriginBindingTypeIsNotValidAtDecl
	// OriginExprTypeIsNotInScope: expression type contains dead references.
	OriginExprTypeIsNotInScope
	// OriginCompareImplMethod: impl method checked against its contract
	// method; carries a CompareImplMethod payload and is never grouped.
	OriginCompareImplMethod
)

func (k OriginKind) String() string {
	switch k {
	case OriginSubtype:
		return "Subtype"
	case OriginInfStackClosure:
		return "InfStackClosure"
	case OriginInvokeClosure:
		return "InvokeClosure"
	case OriginDerefPointer:
		return "DerefPointer"
	case OriginFreeVariable:
		return "FreeVariable"
	case OriginIndexSlice:
		return "IndexSlice"
	case OriginRelateObjectBound:
		return "RelateObjectBound"
	case OriginRelateParamBound:
		return "RelateParamBound"
	case OriginRelateRegionParamBound:
		return "RelateRegionParamBound"
	case OriginRelateDefaultParamBound:
		return "RelateDefaultParamBound"
	case OriginReborrow:
		return "Reborrow"
	case OriginReborrowUpvar:
		return "ReborrowUpvar"
	case OriginDataBorrowed:
		return "DataBorrowed"
	case OriginReferenceOutlivesReferent:
		return "ReferenceOutlivesReferent"
	case OriginParameterInScope:
		return "ParameterInScope"
	case OriginCallReceiver:
		return "CallReceiver"
	case OriginCallArgument:
		return "CallArgument"
	case OriginCallReturn:
		return "CallReturn"
	case OriginOperand:
		return "Operand"
	case OriginAddrOf:
		return "AddrOf"
	case OriginAutoBorrow:
		return "AutoBorrow"
	case OriginSafeDestructor:
		return "SafeDestructor"
	case OriginBindingTypeIsNotValidAtDecl:
		return "BindingTypeIsNotValidAtDecl"
	case OriginExprTypeIsNotInScope:
		return "ExprTypeIsNotInScope"
	case OriginCompareImplMethod:
		return "CompareImplMethod"
	}
	return "Invalid"
}

// CompareImplMethod is the payload of OriginCompareImplMethod: the impl
// method being checked against the contract method it implements. Lint
// downgrades the report to a warning for obligations that predate the
// stricter check.
type CompareImplMethod struct {
	Span         source.Span
	ItemName     source.StringID
	ImplItem     scopes.NodeID
	ContractItem scopes.NodeID
	Lint         bool
}

// SubregionOrigin records why the solver required sub <= sup. Kind selects
// which payload fields are active:
//
//	OriginSubtype:                   Trace
//	OriginReborrowUpvar:             Var
//	OriginFreeVariable:              Var
//	OriginRelateParamBound:          Type
//	OriginRelateDefaultParamBound:   Type
//	OriginExprTypeIsNotInScope:      Type
//	OriginDataBorrowed:              Type
//	OriginReferenceOutlivesReferent: Type
//	OriginCompareImplMethod:         Compare
type SubregionOrigin struct {
	Kind    OriginKind
	Span    source.Span
	Type    types.TypeID
	Var     source.StringID
	Trace   *TypeTrace
	Compare *CompareImplMethod
}

// NewOrigin returns an origin with no payload beyond the span.
func NewOrigin(kind OriginKind, span source.Span) SubregionOrigin {
	return SubregionOrigin{Kind: kind, Span: span}
}

// NewTypedOrigin returns an origin whose message mentions a type.
func NewTypedOrigin(kind OriginKind, span source.Span, ty types.TypeID) SubregionOrigin {
	return SubregionOrigin{Kind: kind, Span: span, Type: ty}
}

// NewVarOrigin returns an origin whose message mentions a variable.
func NewVarOrigin(kind OriginKind, span source.Span, name source.StringID) SubregionOrigin {
	return SubregionOrigin{Kind: kind, Span: span, Var: name}
}

// NewSubtypeOrigin returns a subtyping origin carrying its trace.
func NewSubtypeOrigin(trace TypeTrace) SubregionOrigin {
	return SubregionOrigin{Kind: OriginSubtype, Span: trace.Cause.Span, Trace: &trace}
}

// NewCompareImplMethodOrigin returns the contract-conformance origin.
func NewCompareImplMethodOrigin(cmp CompareImplMethod) SubregionOrigin {
	return SubregionOrigin{Kind: OriginCompareImplMethod, Span: cmp.Span, Compare: &cmp}
}

// VarOriginKind discriminates RegionVariableOrigin: why a region inference
// variable was created.
type VarOriginKind uint8

const (
	// VarOriginMisc covers variables with no better description.
	VarOriginMisc VarOriginKind = iota
	// VarOriginPatternRegion: region for a binding pattern.
	VarOriginPatternRegion
	// VarOriginAddrOfRegion: region for a borrow expression.
	VarOriginAddrOfRegion
	// VarOriginAutoref: region for an adjustment-inserted borrow.
	VarOriginAutoref
	// VarOriginCoercion: region created while coercing a value.
	VarOriginCoercion
	// VarOriginEarlyBoundRegion: instantiation of an early-bound parameter.
	VarOriginEarlyBoundRegion
	// VarOriginLateBoundRegion: instantiation of a late-bound parameter;
	// Site says where the binder was opened.
	VarOriginLateBoundRegion
	// VarOriginUpvarRegion: region for a closure capture.
	VarOriginUpvarRegion
	// VarOriginBoundRegionInCoherence: fresh region during coherence.
	VarOriginBoundRegionInCoherence
)

// LateBoundSite says which construct opened the binder a late-bound region
// variable came from.
type LateBoundSite uint8

const (
	// SiteFnCall: binder opened while checking a function call.
	SiteFnCall LateBoundSite = iota
	// SiteHigherRankedType: binder of a higher-ranked function type.
	SiteHigherRankedType
	// SiteAssocTypeProjection: binder of a projection bound; Name on the
	// variable origin holds the associated item.
	SiteAssocTypeProjection
)

// RegionVariableOrigin records the provenance of a region inference
// variable. Kind selects the payload:
//
//	VarOriginEarlyBoundRegion:       Name
//	VarOriginBoundRegionInCoherence: Name
//	VarOriginLateBoundRegion:        Bound, Site, Name (projection item)
//	VarOriginUpvarRegion:            Var
type RegionVariableOrigin struct {
	Kind  VarOriginKind
	Span  source.Span
	Bound regions.BoundRegion
	Site  LateBoundSite
	Name  source.StringID
	Var   source.StringID
}
