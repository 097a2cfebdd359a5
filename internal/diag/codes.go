package diag

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Code is a compact numeric diagnostic identifier with a stable string form.
// Codes are published to downstream tooling (editors, documentation
// cross-reference) and must never be reassigned to a different case.
type Code uint16

const (
	// UnknownCode is the zero value; real diagnostics never carry it.
	UnknownCode Code = 0

	// Type-check failures (3000-3999). Numbering is sparse on purpose:
	// each constant keeps the number it was first published under.
	TckExtraImplObligation Code = 3276 // impl has stricter requirements than contract
	TckTypeMismatch        Code = 3308 // mismatched types
	TckIfMissingElse       Code = 3317 // if may be missing an else clause
	TckHigherRankedReturn  Code = 3330 // late-bound lifetime appears only in return type
	TckMainFunctionType    Code = 3580 // main function has wrong type

	// Lifetime and region failures (4000-4999).
	LftBoundNamed           Code = 4309 // may not live long enough, named bound suggested
	LftBoundStatic          Code = 4310 // may not live long enough, 'static bound suggested
	LftBoundGeneric         Code = 4311 // may not live long enough, generic bound suggested
	LftReborrow             Code = 4312 // reference outlives borrowed content
	LftReborrowUpvar        Code = 4313 // borrowed pointer outlives captured variable
	LftClosureStackFrame    Code = 4314 // closure outlives stack frame
	LftInvokeClosure        Code = 4315 // closure invoked outside its lifetime
	LftDerefPointer         Code = 4473 // dereference outside the reference lifetime
	LftFreeVariable         Code = 4474 // captured variable outlived by closure
	LftIndexSlice           Code = 4475 // slice indexed outside its lifetime
	LftObjectBound          Code = 4476 // source pointer vs object type lifetime bound
	LftParamBound           Code = 4477 // type does not fulfill the required lifetime
	LftRegionParamBound     Code = 4478 // lifetime bound not satisfied
	LftDefaultParamBound    Code = 4479 // default type parameter value not valid here
	LftCallReceiver         Code = 4480 // method receiver outlived by call
	LftCallArgument         Code = 4481 // argument outlived by call
	LftCallReturn           Code = 4482 // return value outlived by call
	LftOperand              Code = 4483 // operand outlived by operation
	LftAddrOf               Code = 4484 // reference not valid at time of borrow
	LftAutoBorrow           Code = 4485 // auto-reference not valid at time of borrow
	LftExprTypeNotInScope   Code = 4486 // expression type contains dead references
	LftSafeDestructor       Code = 4487 // destructor might run while references are dead
	LftBindingDeclaration   Code = 4488 // variable lifetime does not enclose declaration
	LftParameterInScope     Code = 4489 // type/lifetime parameter not in scope
	LftDataBorrowed         Code = 4490 // value borrowed for too long
	LftReferenceOutlives    Code = 4491 // reference outlives referent inside a type
	LftInferenceConflict    Code = 4495 // cannot infer lifetime, conflicting requirements
)

var codeDescription = map[Code]string{
	UnknownCode: "Unknown diagnostic",

	TckExtraImplObligation: "Impl method has stricter requirements than its contract",
	TckTypeMismatch:        "Mismatched types",
	TckIfMissingElse:       "If may be missing an else clause",
	TckHigherRankedReturn:  "Lifetime parameter appears only in the return type",
	TckMainFunctionType:    "Main function has wrong type",

	LftBoundNamed:         "Parameter type may not live long enough",
	LftBoundStatic:        "Parameter type may not live long enough",
	LftBoundGeneric:       "Parameter type may not live long enough",
	LftReborrow:           "Lifetime of reference outlives lifetime of borrowed content",
	LftReborrowUpvar:      "Lifetime of borrowed pointer outlives captured variable",
	LftClosureStackFrame:  "Closure outlives stack frame",
	LftInvokeClosure:      "Closure invoked outside of its lifetime",
	LftDerefPointer:       "Dereference of reference outside its lifetime",
	LftFreeVariable:       "Captured variable does not outlive the enclosing closure",
	LftIndexSlice:         "Index of slice outside its lifetime",
	LftObjectBound:        "Source pointer does not outlive object type lifetime bound",
	LftParamBound:         "Type does not fulfill the required lifetime",
	LftRegionParamBound:   "Lifetime bound not satisfied",
	LftDefaultParamBound:  "Default type parameter value not valid at this point",
	LftCallReceiver:       "Method receiver does not outlive the method call",
	LftCallArgument:       "Function argument does not outlive the function call",
	LftCallReturn:         "Return value does not outlive the function call",
	LftOperand:            "Operand does not outlive the operation",
	LftAddrOf:             "Reference is not valid at the time of borrow",
	LftAutoBorrow:         "Automatic reference is not valid at the time of borrow",
	LftExprTypeNotInScope: "Expression type contains references that are not valid during the expression",
	LftSafeDestructor:     "Unsafe use of destructor",
	LftBindingDeclaration: "Lifetime of variable does not enclose its declaration",
	LftParameterInScope:   "Type or lifetime parameter not in scope",
	LftDataBorrowed:       "Value is borrowed for too long",
	LftReferenceOutlives:  "Reference has a longer lifetime than the data it references",
	LftInferenceConflict:  "Cannot infer an appropriate lifetime",
}

// ID returns the stable external identifier, e.g. "LFT4312".
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("TCK%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("LFT%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// ParseID resolves a stable identifier like "LFT4312" back to its code.
// The prefix is optional: "4312" works too. Unknown identifiers return
// (UnknownCode, false).
func ParseID(s string) (Code, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.TrimPrefix(strings.TrimPrefix(s, "TCK"), "LFT")
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 || n > int(^uint16(0)) {
		return UnknownCode, false
	}
	c := Code(n)
	if _, ok := codeDescription[c]; !ok || c == UnknownCode {
		return UnknownCode, false
	}
	return c, true
}

// Published lists every assigned code in ascending numeric order.
func Published() []Code {
	out := make([]Code, 0, len(codeDescription))
	for c := range codeDescription {
		if c == UnknownCode {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
