// Package source holds the file/span model: the immutable source text of a
// compilation unit, the line-start index the tokenizer builds while scanning
// it, and the half-open byte spans and resolved line/column positions that
// diagnostics anchor to.
package source

import (
	"sort"

	"github.com/sasha-s/go-deadlock"
)

// Span is a half-open byte range [Lo, Hi) into a FileMap's source string.
// Hi >= Lo always holds; a span with Hi == Lo denotes a point.
type Span struct {
	Lo int
	Hi int
}

// Len reports the number of bytes the span covers.
func (s Span) Len() int {
	return s.Hi - s.Lo
}

// Loc is a resolved (line, column) position, both zero-based.
type Loc struct {
	Line int
	Col  int
}

// FileMap pairs a filename with its source text and records the byte offset
// of the start of every line as the tokenizer discovers line breaks. The
// offset list always begins with 0 and is strictly increasing; it is
// mutated only by AddLine, called from the tokenizer's single forward pass.
type FileMap struct {
	Filename string
	Src      string

	mu    deadlock.RWMutex
	lines []int
}

// New creates a FileMap over src, seeded with the mandatory line-0 start.
func New(filename, src string) *FileMap {
	return &FileMap{
		Filename: filename,
		Src:      src,
		lines:    []int{0},
	}
}

// AddLine records offset as the byte position at which a new line begins.
// The tokenizer calls this after advancing past a character that completes
// a line terminator (\n, \r, or \r\n counted once); offset is the position
// of the first byte of the line that follows.
func (fm *FileMap) AddLine(offset int) {
	fm.mu.Lock()
	defer fm.mu.Unlock()
	fm.lines = append(fm.lines, offset)
}

// NumLines reports how many lines have been recorded, including the
// implicit line 0.
func (fm *FileMap) NumLines() int {
	fm.mu.RLock()
	defer fm.mu.RUnlock()
	return len(fm.lines)
}

// LocationOf resolves a byte offset to a (lineIndex, column) pair: the
// greatest recorded line whose start is <= offset, and the distance from
// that line's start to offset. It never panics, including for an offset
// past end-of-source.
func (fm *FileMap) LocationOf(offset int) Loc {
	fm.mu.RLock()
	defer fm.mu.RUnlock()

	// sort.Search finds the first index for which lines[i] > offset; the
	// line containing offset is the one just before it.
	i := sort.Search(len(fm.lines), func(i int) bool {
		return fm.lines[i] > offset
	})
	lineIdx := i - 1
	if lineIdx < 0 {
		lineIdx = 0
	}
	return Loc{Line: lineIdx, Col: offset - fm.lines[lineIdx]}
}

// LineText returns the substring of Src running from the start of lineIdx
// to the next line terminator or end of source, exclusive of the
// terminator itself.
func (fm *FileMap) LineText(lineIdx int) string {
	fm.mu.RLock()
	start, ok := fm.lineStart(lineIdx)
	fm.mu.RUnlock()
	if !ok {
		return ""
	}

	end := len(fm.Src)
	for i := start; i < len(fm.Src); i++ {
		c := fm.Src[i]
		if c == '\n' || c == '\r' {
			end = i
			break
		}
	}
	return fm.Src[start:end]
}

func (fm *FileMap) lineStart(lineIdx int) (int, bool) {
	if lineIdx < 0 || lineIdx >= len(fm.lines) {
		return 0, false
	}
	return fm.lines[lineIdx], true
}

// Slice returns the source text covered by span, clamped to the bounds of
// Src so a malformed span cannot panic the renderer.
func (fm *FileMap) Slice(span Span) string {
	lo, hi := span.Lo, span.Hi
	if lo < 0 {
		lo = 0
	}
	if hi > len(fm.Src) {
		hi = len(fm.Src)
	}
	if lo > hi {
		return ""
	}
	return fm.Src[lo:hi]
}
