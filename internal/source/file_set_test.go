package source

import (
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("unit.rl", []byte("hello world"), 0)
	if id1 != 0 {
		t.Errorf("expected first FileID to be 0, got %d", id1)
	}

	latestID, exists := fs.GetLatest("unit.rl")
	if !exists {
		t.Error("expected file to exist after Add")
	}
	if latestID != id1 {
		t.Errorf("expected latest ID %d, got %d", id1, latestID)
	}

	// Re-adding the same path makes a new version; the old one stays reachable.
	id2 := fs.Add("unit.rl", []byte("hello universe"), 0)
	if id2 != 1 {
		t.Errorf("expected second FileID to be 1, got %d", id2)
	}
	latestID, _ = fs.GetLatest("unit.rl")
	if latestID != id2 {
		t.Errorf("expected latest ID %d, got %d", id2, latestID)
	}
	if string(fs.Get(id1).Content) != "hello world" {
		t.Errorf("old version content changed: %q", fs.Get(id1).Content)
	}
}

func TestSetBaseDirAnchorsRelativePaths(t *testing.T) {
	fs := NewFileSet()
	id := fs.Add("/work/src/main.rl", []byte("fn main() {}\n"), 0)

	fs.SetBaseDir("/work")
	if got := fs.BaseDir(); got != "/work" {
		t.Errorf("BaseDir = %q, want %q", got, "/work")
	}
	if got := fs.Get(id).FormatPath("relative", fs.BaseDir()); got != "src/main.rl" {
		t.Errorf("relative path = %q, want %q", got, "src/main.rl")
	}
}

func TestAddVirtualLineIdx(t *testing.T) {
	fs := NewFileSet()

	id := fs.AddVirtual("a.rl", []byte("a\nb\n"))
	file := fs.Get(id)

	expected := []uint32{1, 3} // newline offsets
	if len(file.LineIdx) != len(expected) {
		t.Fatalf("expected LineIdx length %d, got %d", len(expected), len(file.LineIdx))
	}
	for i, val := range expected {
		if file.LineIdx[i] != val {
			t.Errorf("expected LineIdx[%d] = %d, got %d", i, val, file.LineIdx[i])
		}
	}
	if file.Flags&FileVirtual == 0 {
		t.Error("expected FileVirtual flag to be set")
	}
}

func TestResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("r.rl", []byte("fn main() {\n    let x = 1;\n}\n"))

	tests := []struct {
		name  string
		span  Span
		start LineCol
	}{
		{"start of file", Span{File: id, Start: 0, End: 2}, LineCol{Line: 1, Col: 1}},
		{"second line", Span{File: id, Start: 16, End: 19}, LineCol{Line: 2, Col: 5}},
		{"closing brace", Span{File: id, Start: 27, End: 28}, LineCol{Line: 3, Col: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, _ := fs.Resolve(tt.span)
			if start != tt.start {
				t.Errorf("Resolve() start = %v, want %v", start, tt.start)
			}
		})
	}
}

func TestResolveUTF8(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("u.rl", []byte("α\n"))

	start, end := fs.Resolve(Span{File: id, Start: 0, End: 1})
	if (start != LineCol{Line: 1, Col: 1}) {
		t.Errorf("start = %v", start)
	}
	if (end != LineCol{Line: 1, Col: 2}) {
		t.Errorf("end = %v", end)
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("l.rl", []byte("one\ntwo\nthree"))
	f := fs.Get(id)

	tests := []struct {
		line uint32
		want string
	}{
		{0, ""},
		{1, "one"},
		{2, "two"},
		{3, "three"},
		{4, ""},
	}
	for _, tt := range tests {
		if got := f.GetLine(tt.line); got != tt.want {
			t.Errorf("GetLine(%d) = %q, want %q", tt.line, got, tt.want)
		}
	}
}
