package diagfmt

import (
	"strings"
	"testing"

	"rill/internal/diag"
	"rill/internal/source"
)

func testBag() (*diag.Bag, *source.FileSet, source.FileID) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("lib.rl", []byte("fn main() {\n    let x = 1;\n}\n"))
	bag := diag.NewBag(16)

	d := diag.NewError(diag.LftReborrow,
		source.Span{File: id, Start: 16, End: 25},
		"lifetime of reference outlives lifetime of borrowed content...").
		WithLabel(source.Span{File: id, Start: 16, End: 25}, "borrow occurs here").
		WithNote(source.Span{File: id, Start: 0, End: 11},
			"...the reference is valid for the block at 1:11...").
		WithBareNote("...but the borrowed content is only valid for the statement at 2:5").
		WithHelp("consider using a longer-lived binding")
	bag.Add(d)
	return bag, fs, id
}

func TestPrettyPlain(t *testing.T) {
	bag, fs, _ := testBag()
	var sb strings.Builder
	Pretty(&sb, bag, fs, PrettyOpts{ShowNotes: true, ShowHelps: true, PathMode: PathModeBasename})
	out := sb.String()

	wantFragments := []string{
		"lib.rl:2:5: ERROR LFT4312: lifetime of reference outlives lifetime of borrowed content...",
		"    let x = 1;",
		"^~~~~~~~~ borrow occurs here",
		"lib.rl:1:1: note: ...the reference is valid for the block at 1:11...",
		"note: ...but the borrowed content is only valid for the statement at 2:5",
		"help: consider using a longer-lived binding",
	}
	for _, frag := range wantFragments {
		if !strings.Contains(out, frag) {
			t.Errorf("output missing %q\n---\n%s", frag, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("color escapes present without Color option")
	}
}

func TestPrettyCaretColumn(t *testing.T) {
	bag, fs, _ := testBag()
	var sb strings.Builder
	Pretty(&sb, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	out := sb.String()

	// The caret line must start under column 5 of "    let x = 1;".
	var caretLine string
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "^") {
			caretLine = line
			break
		}
	}
	if caretLine == "" {
		t.Fatalf("no caret line in output:\n%s", out)
	}
	idx := strings.Index(caretLine, "^")
	bar := strings.Index(caretLine, "|")
	if idx-bar-2 != 4 {
		t.Errorf("caret at offset %d after gutter, want 4:\n%q", idx-bar-2, caretLine)
	}
}

func TestPrettyColorEscapes(t *testing.T) {
	bag, fs, _ := testBag()
	var sb strings.Builder
	Pretty(&sb, bag, fs, PrettyOpts{Color: true, PathMode: PathModeBasename})
	if !strings.Contains(sb.String(), "\x1b[") {
		t.Error("no color escapes with Color enabled")
	}
}

func TestPrettyContextLines(t *testing.T) {
	bag, fs, _ := testBag()
	var sb strings.Builder
	Pretty(&sb, bag, fs, PrettyOpts{Context: 1, PathMode: PathModeBasename})
	out := sb.String()
	if !strings.Contains(out, "fn main() {") {
		t.Errorf("context line missing:\n%s", out)
	}
}
