package diag

import (
	"testing"
)

// Published code IDs are load-bearing for downstream tooling. This table is
// append-only: changing any existing pair is a breaking change.
func TestCodeIDsAreStable(t *testing.T) {
	published := map[Code]string{
		TckExtraImplObligation: "TCK3276",
		TckTypeMismatch:        "TCK3308",
		TckIfMissingElse:       "TCK3317",
		TckHigherRankedReturn:  "TCK3330",
		TckMainFunctionType:    "TCK3580",

		LftBoundNamed:         "LFT4309",
		LftBoundStatic:        "LFT4310",
		LftBoundGeneric:       "LFT4311",
		LftReborrow:           "LFT4312",
		LftReborrowUpvar:      "LFT4313",
		LftClosureStackFrame:  "LFT4314",
		LftInvokeClosure:      "LFT4315",
		LftDerefPointer:       "LFT4473",
		LftFreeVariable:       "LFT4474",
		LftIndexSlice:         "LFT4475",
		LftObjectBound:        "LFT4476",
		LftParamBound:         "LFT4477",
		LftRegionParamBound:   "LFT4478",
		LftDefaultParamBound:  "LFT4479",
		LftCallReceiver:       "LFT4480",
		LftCallArgument:       "LFT4481",
		LftCallReturn:         "LFT4482",
		LftOperand:            "LFT4483",
		LftAddrOf:             "LFT4484",
		LftAutoBorrow:         "LFT4485",
		LftExprTypeNotInScope: "LFT4486",
		LftSafeDestructor:     "LFT4487",
		LftBindingDeclaration: "LFT4488",
		LftParameterInScope:   "LFT4489",
		LftDataBorrowed:       "LFT4490",
		LftReferenceOutlives:  "LFT4491",
		LftInferenceConflict:  "LFT4495",
	}

	for code, wantID := range published {
		if got := code.ID(); got != wantID {
			t.Errorf("Code %d ID() = %q, want %q", code, got, wantID)
		}
	}
}

func TestCodeTitleFallback(t *testing.T) {
	if got := Code(9999).Title(); got != codeDescription[UnknownCode] {
		t.Errorf("unknown code Title() = %q", got)
	}
	if got := Code(9999).ID(); got != "E0000" {
		t.Errorf("out-of-family code ID() = %q", got)
	}
}

func TestEveryCodeHasDescription(t *testing.T) {
	codes := []Code{
		TckExtraImplObligation, TckTypeMismatch, TckIfMissingElse,
		TckHigherRankedReturn, TckMainFunctionType,
		LftBoundNamed, LftBoundStatic, LftBoundGeneric, LftReborrow,
		LftReborrowUpvar, LftClosureStackFrame, LftInvokeClosure,
		LftDerefPointer, LftFreeVariable, LftIndexSlice, LftObjectBound,
		LftParamBound, LftRegionParamBound, LftDefaultParamBound,
		LftCallReceiver, LftCallArgument, LftCallReturn, LftOperand,
		LftAddrOf, LftAutoBorrow, LftExprTypeNotInScope, LftSafeDestructor,
		LftBindingDeclaration, LftParameterInScope, LftDataBorrowed,
		LftReferenceOutlives, LftInferenceConflict,
	}
	for _, c := range codes {
		if _, ok := codeDescription[c]; !ok {
			t.Errorf("code %s has no description", c.ID())
		}
	}
}

func TestParseID(t *testing.T) {
	tests := []struct {
		in   string
		want Code
		ok   bool
	}{
		{"LFT4312", LftReborrow, true},
		{"lft4312", LftReborrow, true},
		{"TCK3308", TckTypeMismatch, true},
		{"4495", LftInferenceConflict, true},
		{" LFT4309 ", LftBoundNamed, true},
		{"LFT9999", UnknownCode, false},
		{"garbage", UnknownCode, false},
		{"", UnknownCode, false},
	}
	for _, tc := range tests {
		got, ok := ParseID(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("ParseID(%q) = %v, %v; want %v, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestPublishedSortedAndRoundTrips(t *testing.T) {
	codes := Published()
	if len(codes) == 0 {
		t.Fatal("no published codes")
	}
	for i, c := range codes {
		if i > 0 && codes[i-1] >= c {
			t.Fatalf("codes out of order at %d: %v >= %v", i, codes[i-1], c)
		}
		back, ok := ParseID(c.ID())
		if !ok || back != c {
			t.Errorf("ParseID(%q) = %v, %v; want %v", c.ID(), back, ok, c)
		}
	}
}
