package source

import (
	"testing"
)

func TestNormalizeCRLF(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		changed bool
	}{
		{"no carriage returns", "a\nb\n", "a\nb\n", false},
		{"crlf pairs replaced", "a\r\nb\r\n", "a\nb\n", true},
		{"lone cr untouched", "a\rb", "a\rb", false},
		{"mixed", "a\r\nb\rc\n", "a\nb\rc\n", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed := normalizeCRLF([]byte(tt.in))
			if string(got) != tt.want || changed != tt.changed {
				t.Errorf("normalizeCRLF(%q) = %q, %v; want %q, %v",
					tt.in, got, changed, tt.want, tt.changed)
			}
		})
	}
}

func TestRemoveBOM(t *testing.T) {
	withBOM := []byte{0xEF, 0xBB, 0xBF, 'x'}
	got, had := removeBOM(withBOM)
	if !had || string(got) != "x" {
		t.Errorf("removeBOM = %q, %v", got, had)
	}

	plain := []byte("xy")
	got, had = removeBOM(plain)
	if had || string(got) != "xy" {
		t.Errorf("removeBOM(plain) = %q, %v", got, had)
	}
}

func TestToLineCol(t *testing.T) {
	// content "a\nbb\nccc" -> lineIdx [1 4]
	lineIdx := []uint32{1, 4}
	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{Line: 1, Col: 1}},
		{1, LineCol{Line: 1, Col: 2}}, // the newline ends line 1
		{2, LineCol{Line: 2, Col: 1}},
		{3, LineCol{Line: 2, Col: 2}},
		{5, LineCol{Line: 3, Col: 1}},
		{7, LineCol{Line: 3, Col: 3}},
	}
	for _, tt := range tests {
		if got := toLineCol(lineIdx, tt.off); got != tt.want {
			t.Errorf("toLineCol(%d) = %v, want %v", tt.off, got, tt.want)
		}
	}

	if got := toLineCol(nil, 7); got != (LineCol{Line: 1, Col: 8}) {
		t.Errorf("toLineCol(no newlines) = %v", got)
	}
}
