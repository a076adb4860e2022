package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"fortio.org/safecast"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/rwiggins1/adequate-c/internal/diag"
	"github.com/rwiggins1/adequate-c/internal/source"
)

const tabWidth = 4

type palette struct {
	err, warn, info, code, gutter, caret, note *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		code:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgGreen, color.Bold),
		note:   color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.gutter, p.caret, p.note} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид, в порядке bag.Items():
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//	  12 | int = 3;
//	     |     ^
//
// Колонка каретки считается по ширине символов (go-runewidth), табы раскрываются.
// Без fs печатается только заголовок.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	if bag == nil {
		return nil
	}
	pal := newPalette(opts.Color)
	items := bag.Items()
	if opts.Max > 0 && opts.Max < len(items) {
		items = items[:opts.Max]
	}

	var sb strings.Builder
	for i := range items {
		d := &items[i]
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "%s:%d:%d: %s %s: %s\n",
			diagnosticPath(d, fs, opts.PathMode), d.Line, d.Column,
			pal.severity(d.Severity).Sprint(d.Severity.String()),
			pal.code.Sprint(d.Code.ID()),
			d.Message)

		if file := fileOf(fs, d.Primary); file != nil {
			writeSnippet(&sb, pal, file, d.Line, d.Column, d.Primary, opts.Context)
		}

		if opts.ShowNotes {
			for _, note := range d.Notes {
				loc := ""
				if file := fileOf(fs, note.Span); file != nil {
					pos := file.Position(note.Span.Start)
					loc = fmt.Sprintf("%s:%d:%d: ", formatPath(file, fs, opts.PathMode), pos.Line, pos.Col)
				}
				fmt.Fprintf(&sb, "  %s %s%s\n", pal.note.Sprint("note:"), loc, note.Msg)
			}
		}
	}

	if summary := diag.Summary(bag); summary != "" {
		sb.WriteByte('\n')
		sb.WriteString(summary)
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeSnippet(sb *strings.Builder, pal palette, file *source.File, line, col uint32, span source.Span, context int8) {
	if line == 0 {
		return
	}
	ctx := uint32(max(context, 0))
	first := uint32(1)
	if line > ctx {
		first = line - ctx
	}
	lines, err := safecast.Conv[uint32](len(file.LineIdx) + 1)
	if err != nil {
		panic(fmt.Errorf("line count overflow: %w", err))
	}
	last := min(line+ctx, lines)
	gutterWidth := len(strconv.FormatUint(uint64(last), 10))
	blank := strings.Repeat(" ", gutterWidth)

	for n := first; n <= last; n++ {
		text := file.GetLine(n)
		num := strconv.FormatUint(uint64(n), 10)
		fmt.Fprintf(sb, " %s%s %s %s\n", strings.Repeat(" ", gutterWidth-len(num)), pal.gutter.Sprint(num), pal.gutter.Sprint("|"), expandTabs(text))
		if n != line {
			continue
		}
		pad, width := caretGeometry(text, col, span)
		fmt.Fprintf(sb, " %s %s %s%s\n", blank, pal.gutter.Sprint("|"), strings.Repeat(" ", pad), pal.caret.Sprint("^"+strings.Repeat("~", width-1)))
	}
}

// caretGeometry: отступ до каретки и длина подчёркивания в колонках экрана.
// Span, уходящий за конец строки, подчёркивается до конца строки; минимум один символ.
func caretGeometry(text string, col uint32, span source.Span) (pad, width int) {
	startByte := min(int(col)-1, len(text))
	if startByte < 0 {
		startByte = 0
	}
	pad = runewidth.StringWidth(expandTabs(text[:startByte]))

	spanLen := int(span.End) - int(span.Start)
	endByte := min(startByte+max(spanLen, 0), len(text))
	width = runewidth.StringWidth(expandTabs(text[startByte:endByte]))
	return pad, max(width, 1)
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

// fileOf returns the file a span points into, nil when fs cannot resolve it.
func fileOf(fs *source.FileSet, sp source.Span) *source.File {
	if fs == nil || int(sp.File) >= fs.Len() {
		return nil
	}
	return fs.Get(sp.File)
}

func diagnosticPath(d *diag.Diagnostic, fs *source.FileSet, mode PathMode) string {
	if file := fileOf(fs, d.Primary); file != nil {
		return formatPath(file, fs, mode)
	}
	return d.Filename
}

func formatPath(f *source.File, fs *source.FileSet, mode PathMode) string {
	switch mode {
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	default:
		return f.FormatPath(mode.String(), "")
	}
}
