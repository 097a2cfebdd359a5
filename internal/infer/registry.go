package infer

import (
	"strings"

	"rill/internal/diag"
)

// noteSide selects which of the two conflicting regions a planned note
// explains.
type noteSide uint8

const (
	noteSub noteSide = iota
	noteSup
)

// notePlan is one "...the X is valid for <region>..." note. Prefix and
// suffix may contain the placeholders {var} and {type}, filled from the
// origin payload when the note is rendered.
type notePlan struct {
	side   noteSide
	prefix string
	suffix string
}

// registryEntry fixes, per origin kind, the diagnostic code, headline
// message, and the ordered region notes of a concrete failure report.
type registryEntry struct {
	code    diag.Code
	message string
	notes   []notePlan
}

// concreteRegistry drives reportConcreteFailure. OriginSubtype and
// OriginCompareImplMethod are absent: both take dedicated paths.
var concreteRegistry = map[OriginKind]registryEntry{
	OriginReborrow: {
		code:    diag.LftReborrow,
		message: "lifetime of reference outlives lifetime of borrowed content...",
		notes: []notePlan{
			{noteSub, "...the reference is valid for ", "..."},
			{noteSup, "...but the borrowed content is only valid for ", ""},
		},
	},
	OriginReborrowUpvar: {
		code:    diag.LftReborrowUpvar,
		message: "lifetime of borrowed pointer outlives lifetime of captured variable `{var}`...",
		notes: []notePlan{
			{noteSub, "...the borrowed pointer is valid for ", "..."},
			{noteSup, "...but `{var}` is only valid for ", ""},
		},
	},
	OriginInfStackClosure: {
		code:    diag.LftClosureStackFrame,
		message: "closure outlives stack frame",
		notes: []notePlan{
			{noteSub, "...the closure must be valid for ", "..."},
			{noteSup, "...but the closure's stack frame is only valid for ", ""},
		},
	},
	OriginInvokeClosure: {
		code:    diag.LftInvokeClosure,
		message: "cannot invoke closure outside of its lifetime",
		notes: []notePlan{
			{noteSup, "the closure is only valid for ", ""},
		},
	},
	OriginDerefPointer: {
		code:    diag.LftDerefPointer,
		message: "dereference of reference outside its lifetime",
		notes: []notePlan{
			{noteSup, "the reference is only valid for ", ""},
		},
	},
	OriginFreeVariable: {
		code:    diag.LftFreeVariable,
		message: "captured variable `{var}` does not outlive the enclosing closure",
		notes: []notePlan{
			{noteSup, "captured variable is valid for ", ""},
			{noteSub, "closure is valid for ", ""},
		},
	},
	OriginIndexSlice: {
		code:    diag.LftIndexSlice,
		message: "index of slice outside its lifetime",
		notes: []notePlan{
			{noteSup, "the slice is only valid for ", ""},
		},
	},
	OriginRelateObjectBound: {
		code:    diag.LftObjectBound,
		message: "lifetime of the source pointer does not outlive lifetime bound of the object type",
		notes: []notePlan{
			{noteSub, "object type is valid for ", ""},
			{noteSup, "source pointer is only valid for ", ""},
		},
	},
	OriginRelateParamBound: {
		code:    diag.LftParamBound,
		message: "the type `{type}` does not fulfill the required lifetime",
		notes: []notePlan{
			{noteSub, "type must outlive ", ""},
		},
	},
	OriginRelateRegionParamBound: {
		code:    diag.LftRegionParamBound,
		message: "lifetime bound not satisfied",
		notes: []notePlan{
			{noteSup, "lifetime parameter instantiated with ", ""},
			{noteSub, "but lifetime parameter must outlive ", ""},
		},
	},
	OriginRelateDefaultParamBound: {
		code:    diag.LftDefaultParamBound,
		message: "the type `{type}` (provided as the value of a type parameter) is not valid at this point",
		notes: []notePlan{
			{noteSub, "type must outlive ", ""},
		},
	},
	OriginCallReceiver: {
		code:    diag.LftCallReceiver,
		message: "lifetime of method receiver does not outlive the method call",
		notes: []notePlan{
			{noteSup, "the receiver is only valid for ", ""},
		},
	},
	OriginCallArgument: {
		code:    diag.LftCallArgument,
		message: "lifetime of function argument does not outlive the function call",
		notes: []notePlan{
			{noteSup, "the function argument is only valid for ", ""},
		},
	},
	OriginCallReturn: {
		code:    diag.LftCallReturn,
		message: "lifetime of return value does not outlive the function call",
		notes: []notePlan{
			{noteSup, "the return value is only valid for ", ""},
		},
	},
	OriginOperand: {
		code:    diag.LftOperand,
		message: "lifetime of operand does not outlive the operation",
		notes: []notePlan{
			{noteSup, "the operand is only valid for ", ""},
		},
	},
	OriginAddrOf: {
		code:    diag.LftAddrOf,
		message: "reference is not valid at the time of borrow",
		notes: []notePlan{
			{noteSup, "the borrow is only valid for ", ""},
		},
	},
	OriginAutoBorrow: {
		code:    diag.LftAutoBorrow,
		message: "automatically reference is not valid at the time of borrow",
		notes: []notePlan{
			{noteSup, "the automatic borrow is only valid for ", ""},
		},
	},
	OriginExprTypeIsNotInScope: {
		code:    diag.LftExprTypeNotInScope,
		message: "type of expression contains references that are not valid during the expression: `{type}`",
		notes: []notePlan{
			{noteSup, "type is only valid for ", ""},
		},
	},
	OriginSafeDestructor: {
		code:    diag.LftSafeDestructor,
		message: "unsafe use of destructor: destructor might be called while references are dead",
		notes: []notePlan{
			{noteSup, "superregion: ", ""},
			{noteSub, "subregion: ", ""},
		},
	},
	OriginBindingTypeIsNotValidAtDecl: {
		code:    diag.LftBindingDeclaration,
		message: "lifetime of variable does not enclose its declaration",
		notes: []notePlan{
			{noteSup, "the variable is only valid for ", ""},
		},
	},
	OriginParameterInScope: {
		code:    diag.LftParameterInScope,
		message: "type/lifetime parameter not in scope here",
		notes: []notePlan{
			{noteSub, "the parameter is only valid for ", ""},
		},
	},
	OriginDataBorrowed: {
		code:    diag.LftDataBorrowed,
		message: "a value of type `{type}` is borrowed for too long",
		notes: []notePlan{
			{noteSub, "the type is valid for ", ""},
			{noteSup, "but the borrow lasts for ", ""},
		},
	},
	OriginReferenceOutlivesReferent: {
		code:    diag.LftReferenceOutlives,
		message: "in type `{type}`, reference has a longer lifetime than the data it references",
		notes: []notePlan{
			{noteSub, "the pointer is valid for ", ""},
			{noteSup, "but the referenced data is only valid for ", ""},
		},
	},
}

// originNoteRegistry drives noteRegionOrigin: the "...so that ..." style
// provenance note attached after a region explanation. OriginSubtype is
// absent; its note is built from the trace's requirement string.
var originNoteRegistry = map[OriginKind]string{
	OriginReborrow:                    "...so that reference does not outlive borrowed content",
	OriginReborrowUpvar:               "...so that closure can access `{var}`",
	OriginInfStackClosure:             "...so that closure does not outlive its stack frame",
	OriginInvokeClosure:               "...so that closure is not invoked outside its lifetime",
	OriginDerefPointer:                "...so that pointer is not dereferenced outside its lifetime",
	OriginFreeVariable:                "...so that captured variable `{var}` does not outlive the enclosing closure",
	OriginIndexSlice:                  "...so that slice is not indexed outside the lifetime",
	OriginRelateObjectBound:           "...so that it can be closed over into an object",
	OriginRelateParamBound:            "...so that the type `{type}` will meet its required lifetime bounds",
	OriginRelateRegionParamBound:      "...so that the declared lifetime parameter bounds are satisfied",
	OriginRelateDefaultParamBound:     "...so that type parameter instantiated with `{type}`, will meet its declared lifetime bounds",
	OriginCallReceiver:                "...so that method receiver is valid for the method call",
	OriginCallArgument:                "...so that argument is valid for the call",
	OriginCallReturn:                  "...so that return value is valid for the call",
	OriginOperand:                     "...so that operand is valid for operation",
	OriginAddrOf:                      "...so that borrowed value is valid at the time of borrow",
	OriginAutoBorrow:                  "...so that auto-reference is valid at the time of borrow",
	OriginExprTypeIsNotInScope:        "...so type `{type}` of expression is valid during the expression",
	OriginSafeDestructor:              "...so that references are valid when the destructor runs",
	OriginBindingTypeIsNotValidAtDecl: "...so that variable is valid at time of its declaration",
	OriginParameterInScope:            "...so that a type/lifetime parameter is in scope here",
	OriginDataBorrowed:                "...so that the type `{type}` is not borrowed for too long",
	OriginReferenceOutlivesReferent:   "...so that the reference type `{type}` does not outlive the data it points at",
	OriginCompareImplMethod:           "...so that the definition in impl matches the definition from the contract",
}

// expandPlan substitutes the origin payload into a message template.
func (ctx *Context) expandPlan(s string, o SubregionOrigin) string {
	if strings.Contains(s, "{var}") {
		name, _ := ctx.Names.Lookup(o.Var)
		s = strings.ReplaceAll(s, "{var}", name)
	}
	if strings.Contains(s, "{type}") {
		s = strings.ReplaceAll(s, "{type}", ctx.Types.Display(o.Type))
	}
	return s
}
