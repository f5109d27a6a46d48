// Package diag implements the diagnostics model: severities, reports with
// primary spans and ordered remarks, snippets, and the caret-underline
// renderer that prints them against a FileMap through a pluggable style
// sink. No package in this tree couples diag to a particular terminal
// library; that wiring happens in the CLI glue layer.
package diag

import (
	"fmt"
	"io"

	"github.com/corvidlang/javafront/source"
)

// Severity classifies a Report or Remark.
type Severity int

const (
	Error Severity = iota
	Warning
	Note
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Note:
		return "note"
	default:
		return "unknown"
	}
}

// StyleClass names the visual treatment a StyleSink should apply; sinks
// that don't support color (a non-TTY, a plain io.Writer) are free to
// ignore it.
type StyleClass int

const (
	StyleError StyleClass = iota
	StyleWarning
	StyleNote
	StyleBold
)

func (s Severity) styleClass() StyleClass {
	switch s {
	case Error:
		return StyleError
	case Warning:
		return StyleWarning
	default:
		return StyleNote
	}
}

// StyleSink is the narrow capability Diagnostics rendering depends on: a
// begin/write/end bracket around styled text, with no assumption about
// what backs it (ANSI escapes, an IDE's markup protocol, or nothing at
// all). §4.4 requires the core carry no dependency on a specific terminal
// library; this interface is that boundary.
type StyleSink interface {
	BeginStyle(class StyleClass)
	Write(text string)
	EndStyle()
}

// PlainSink is a StyleSink that ignores styling entirely and writes raw
// text to an io.Writer; the tests render through it.
type PlainSink struct {
	W io.Writer
}

func (p PlainSink) BeginStyle(StyleClass) {}
func (p PlainSink) Write(text string)     { io.WriteString(p.W, text) }
func (p PlainSink) EndStyle()             {}

// SnippetKind discriminates the two Snippet variants.
type SnippetKind int

const (
	SnippetHighlight SnippetKind = iota
	SnippetReplace
)

// Snippet is attached to a Remark: either a plain caret-underline of a
// span, or a suggested replacement text for that span.
type Snippet struct {
	Kind    SnippetKind
	Span    source.Span
	Replace string // meaningful when Kind == SnippetReplace
}

// RemarkKind discriminates Note vs. Help remarks.
type RemarkKind int

const (
	RemarkNote RemarkKind = iota
	RemarkHelp
)

// Remark is a secondary annotation attached to a Report, e.g. pointing back
// at an earlier token a duplicate conflicts with.
type Remark struct {
	Kind     RemarkKind
	Message  string
	Snippet  Snippet
	Severity Severity
}

// Report is a single diagnostic: a severity, a message, the span it
// primarily concerns, and zero or more ordered remarks.
type Report struct {
	Severity    Severity
	Message     string
	PrimarySpan source.Span
	Remarks     []Remark
}

// Note attaches a Note remark highlighting span with message, returning the
// Report for chaining (mirrors the Rust original's span_note builder used
// throughout the parser's modifier-conflict diagnostics).
func (r *Report) Note(span source.Span, message string) *Report {
	r.Remarks = append(r.Remarks, Remark{
		Kind:     RemarkNote,
		Message:  message,
		Snippet:  Snippet{Kind: SnippetHighlight, Span: span},
		Severity: Note,
	})
	return r
}

// Collector accumulates reports in emission order, the shape both the
// tokenizer and the parser hold by reference while they run.
type Collector struct {
	Reports []*Report
}

// Emit appends a new Report with the given severity/message/span and
// returns it so callers can attach remarks before rendering.
func (c *Collector) Emit(sev Severity, span source.Span, message string) *Report {
	r := &Report{Severity: sev, Message: message, PrimarySpan: span}
	c.Reports = append(c.Reports, r)
	return r
}

// Emitf is Emit with fmt.Sprintf-style formatting.
func (c *Collector) Emitf(sev Severity, span source.Span, format string, args ...any) *Report {
	return c.Emit(sev, span, fmt.Sprintf(format, args...))
}

// HasErrors reports whether any collected report is Error severity.
func (c *Collector) HasErrors() bool {
	for _, r := range c.Reports {
		if r.Severity == Error {
			return true
		}
	}
	return false
}

// Render prints every report in order to sink, resolving spans against fm.
// This is the algorithm described by original_source/src/diagnostics.rs's
// mark_line/error_span: a blank line, a "file:startLine:startCol ..
// endLine:endCol: <severity>: <message>" header, the source line(s) the
// span covers, and for single-line spans a caret-underline beneath it.
func Render(sink StyleSink, fm *source.FileMap, reports []*Report) {
	for _, r := range reports {
		renderOne(sink, fm, r.Severity, r.Message, r.PrimarySpan)
		for _, rem := range r.Remarks {
			renderOne(sink, fm, rem.Severity, rem.Message, rem.Snippet.Span)
		}
	}
}

func renderOne(sink StyleSink, fm *source.FileMap, sev Severity, message string, span source.Span) {
	start := fm.LocationOf(span.Lo)
	end := fm.LocationOf(span.Hi)

	sink.Write("\n")
	sink.Write(fmt.Sprintf("%s:%d:%d .. %d:%d: ", fm.Filename, start.Line+1, start.Col+1, end.Line+1, end.Col+1))

	sink.BeginStyle(sev.styleClass())
	sink.Write(sev.String() + ": ")
	sink.EndStyle()

	sink.BeginStyle(StyleBold)
	sink.Write(message)
	sink.EndStyle()
	sink.Write("\n")

	for line := start.Line; line <= end.Line; line++ {
		sink.Write(fmt.Sprintf("%s:%d: %s\n", fm.Filename, line+1, fm.LineText(line)))
	}

	if start.Line == end.Line {
		width := end.Col - start.Col + 1
		if width < 1 {
			width = 1
		}
		sink.Write(fmt.Sprintf("%s:%d: ", fm.Filename, start.Line+1))
		pad(sink, start.Col)
		sink.BeginStyle(sev.styleClass())
		sink.Write("^")
		if width > 1 {
			sink.Write(repeat('-', width-1))
		}
		sink.EndStyle()
		sink.Write("\n")
	}
}

func pad(sink StyleSink, n int) {
	if n > 0 {
		sink.Write(repeat(' ', n))
	}
}

func repeat(c byte, n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = c
	}
	return string(b)
}
