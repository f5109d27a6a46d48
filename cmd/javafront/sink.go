package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/corvidlang/javafront/diag"
)

// colorSink is the CLI layer's StyleSink backend: it maps diag's style
// classes onto fatih/color attributes and writes to w; fatih/color turns
// coloring off when stdout is not a terminal, so redirected output
// degrades to plain text automatically.
type colorSink struct {
	w      io.Writer
	active *color.Color
}

func newColorSink(w io.Writer) *colorSink {
	return &colorSink{w: w}
}

func styleFor(class diag.StyleClass) *color.Color {
	switch class {
	case diag.StyleError:
		return color.New(color.FgRed, color.Bold)
	case diag.StyleWarning:
		return color.New(color.FgYellow, color.Bold)
	case diag.StyleNote:
		return color.New(color.FgGreen)
	case diag.StyleBold:
		return color.New(color.Bold)
	default:
		return color.New()
	}
}

func (s *colorSink) BeginStyle(class diag.StyleClass) {
	s.active = styleFor(class)
}

func (s *colorSink) Write(text string) {
	if s.active != nil {
		s.active.Fprint(s.w, text)
		return
	}
	fmt.Fprint(s.w, text)
}

func (s *colorSink) EndStyle() {
	s.active = nil
}
