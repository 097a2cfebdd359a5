package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/unicode/norm"

	"rill/internal/diag"
	"rill/internal/source"
)

// Pretty formats diagnostics for humans. Walks bag.Items() (the caller is
// expected to Sort() first). Per diagnostic:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//	   <line> | <source text>
//	          | <caret underline> <label>
//
// then notes and helps in the same location format. Color is opt-in.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := prettyPrinter{w: w, fs: fs, opts: opts}
	for _, d := range bag.Items() {
		p.print(d)
	}
}

type prettyPrinter struct {
	w    io.Writer
	fs   *source.FileSet
	opts PrettyOpts
}

func (p *prettyPrinter) print(d diag.Diagnostic) {
	sev := p.paint(severityAttrs(d.Severity), d.Severity.String())
	code := p.paint([]color.Attribute{color.Bold}, d.Code.ID())
	fmt.Fprintf(p.w, "%s: %s %s: %s\n",
		p.location(d.Primary), sev, code, d.Message)

	p.printSpanContext(d.Primary, "")
	for _, l := range d.Labels {
		p.printSpanContext(l.Span, l.Msg)
	}

	if p.opts.ShowNotes {
		for _, n := range d.Notes {
			if n.HasSpan() {
				fmt.Fprintf(p.w, "%s: note: %s\n", p.location(n.Span), n.Msg)
				continue
			}
			fmt.Fprintf(p.w, "note: %s\n", n.Msg)
		}
	}
	if p.opts.ShowHelps {
		for _, h := range d.Helps {
			fmt.Fprintf(p.w, "help: %s\n", h)
		}
	}
}

// printSpanContext prints the source line of the span with a caret
// underline, optionally followed by a label message.
func (p *prettyPrinter) printSpanContext(span source.Span, label string) {
	file := p.fs.Get(span.File)
	if file == nil {
		return
	}
	start, end := p.fs.Resolve(span)

	firstLine := start.Line
	if p.opts.Context > 0 {
		ctx := uint32(p.opts.Context)
		if firstLine > ctx {
			firstLine -= ctx
		} else {
			firstLine = 1
		}
	}
	gutter := len(fmt.Sprintf("%d", start.Line))
	for line := firstLine; line < start.Line; line++ {
		fmt.Fprintf(p.w, " %*d | %s\n", gutter, line, file.GetLine(line))
	}

	text := file.GetLine(start.Line)
	fmt.Fprintf(p.w, " %*d | %s\n", gutter, start.Line, text)

	// Underline in display cells, not bytes: tabs and wide runes shift
	// the caret otherwise.
	pre := displayWidth(sliceCols(text, 0, start.Col-1))
	width := 1
	if end.Line == start.Line && end.Col > start.Col {
		width = displayWidth(sliceCols(text, start.Col-1, end.Col-1))
	} else if end.Line > start.Line {
		width = displayWidth(sliceCols(text, start.Col-1, uint32(len(text))))
	}
	if width < 1 {
		width = 1
	}
	underline := "^" + strings.Repeat("~", width-1)
	underline = p.paint(severityAttrs(diag.SevError), underline)
	if label != "" {
		underline += " " + label
	}
	fmt.Fprintf(p.w, " %*s | %s%s\n", gutter, "", strings.Repeat(" ", pre), underline)
}

func (p *prettyPrinter) location(span source.Span) string {
	start, _ := p.fs.Resolve(span)
	return fmt.Sprintf("%s:%d:%d", formatPath(p.fs, span.File, p.opts.PathMode), start.Line, start.Col)
}

func (p *prettyPrinter) paint(attrs []color.Attribute, s string) string {
	c := color.New(attrs...)
	if p.opts.Color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.Sprint(s)
}

func severityAttrs(sev diag.Severity) []color.Attribute {
	switch sev {
	case diag.SevError:
		return []color.Attribute{color.FgRed, color.Bold}
	case diag.SevWarning:
		return []color.Attribute{color.FgYellow, color.Bold}
	}
	return []color.Attribute{color.FgCyan}
}

// sliceCols cuts a line between two 0-based byte columns, clamped.
// Columns out of Resolve are byte offsets within the line.
func sliceCols(text string, from, to uint32) string {
	if from > uint32(len(text)) {
		from = uint32(len(text))
	}
	if to > uint32(len(text)) {
		to = uint32(len(text))
	}
	if to < from {
		to = from
	}
	return text[from:to]
}

// displayWidth measures terminal cells after NFC normalization, so
// combining sequences are not over-counted.
func displayWidth(s string) int {
	return runewidth.StringWidth(norm.NFC.String(s))
}

func formatPath(fs *source.FileSet, id source.FileID, mode PathMode) string {
	f := fs.Get(id)
	if f == nil {
		return "<unknown>"
	}
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		return f.FormatPath("basename", "")
	default:
		return f.FormatPath("auto", "")
	}
}
