package infer

import "rill/internal/source"

// CauseCode classifies the obligation that forced a type comparison.
type CauseCode uint8

const (
	// CauseMisc covers obligations with no better description.
	CauseMisc CauseCode = iota
	// CauseExprAssignable: an expression assignable to an expected type.
	CauseExprAssignable
	// CauseMatchExpressionArm: arms of a match must agree; ArmSpan and
	// Source on the cause are active.
	CauseMatchExpressionArm
	// CauseIfExpression: the two branches of an if must agree.
	CauseIfExpression
	// CauseIfExpressionWithNoElse: an else-less if used as a value.
	CauseIfExpressionWithNoElse
	// CauseEquatePredicate: a where-clause equality predicate.
	CauseEquatePredicate
	// CauseMainFunctionType: the declared type of `main`.
	CauseMainFunctionType
	// CauseStartFunctionType: the declared type of the start function.
	CauseStartFunctionType
	// CauseIntrinsicType: the declared type of an intrinsic.
	CauseIntrinsicType
	// CauseMethodReceiver: the receiver of a method call.
	CauseMethodReceiver
	// CauseCompareImplMethod: impl method type vs contract method type.
	CauseCompareImplMethod
)

// MatchSource distinguishes real match expressions from the loops and
// conditionals that desugar into one.
type MatchSource uint8

const (
	MatchNormal MatchSource = iota
	MatchIfLetDesugar
	MatchWhileLetDesugar
	MatchForLoopDesugar
)

// ObligationCause ties a type obligation to the code that produced it.
// ArmSpan and Source are active only for CauseMatchExpressionArm.
type ObligationCause struct {
	Span    source.Span
	Code    CauseCode
	ArmSpan source.Span
	Source  MatchSource
}

// NewCause returns a cause with no match payload.
func NewCause(code CauseCode, span source.Span) ObligationCause {
	return ObligationCause{Span: span, Code: code}
}

// NewMatchArmCause returns the cause for a match arm obligation.
func NewMatchArmCause(span, armSpan source.Span, src MatchSource) ObligationCause {
	return ObligationCause{
		Span:    span,
		Code:    CauseMatchExpressionArm,
		ArmSpan: armSpan,
		Source:  src,
	}
}

// FailureStr is the headline message used when the obligation cannot be
// met, before any expected/found detail.
func (c ObligationCause) FailureStr() string {
	switch c.Code {
	case CauseExprAssignable:
		return "mismatched types"
	case CauseMatchExpressionArm:
		if c.Source == MatchIfLetDesugar {
			return "`if let` arms have incompatible types"
		}
		return "match arms have incompatible types"
	case CauseIfExpression:
		return "if and else have incompatible types"
	case CauseIfExpressionWithNoElse:
		return "if may be missing an else clause"
	case CauseEquatePredicate:
		return "equality predicate not satisfied"
	case CauseMainFunctionType:
		return "main function has wrong type"
	case CauseStartFunctionType:
		return "start function has wrong type"
	case CauseIntrinsicType:
		return "intrinsic has wrong type"
	case CauseMethodReceiver:
		return "mismatched method receiver"
	}
	return "mismatched types"
}

// RequirementStr names the obligation for "...so that <requirement>" notes.
func (c ObligationCause) RequirementStr() string {
	switch c.Code {
	case CauseExprAssignable:
		return "expression is assignable"
	case CauseMatchExpressionArm:
		return "match arms have compatible types"
	case CauseIfExpression:
		return "if and else have compatible types"
	case CauseIfExpressionWithNoElse:
		return "if missing an else returns ()"
	case CauseEquatePredicate:
		return "equality where clause is satisfied"
	case CauseMainFunctionType:
		return "`main` function has the correct type"
	case CauseStartFunctionType:
		return "start function has the correct type"
	case CauseIntrinsicType:
		return "intrinsic has the correct type"
	case CauseMethodReceiver:
		return "method receiver has the correct type"
	}
	return "types are compatible"
}
