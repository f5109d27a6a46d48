package source

import "testing"

func TestFileMapLocationOfLineStarts(t *testing.T) {
	fm := New("Test.java", "ab\ncd\nef")
	fm.AddLine(3)
	fm.AddLine(6)

	tests := []struct {
		offset   int
		wantLine int
		wantCol  int
	}{
		{0, 0, 0},
		{2, 0, 2},
		{3, 1, 0},
		{5, 1, 2},
		{6, 2, 0},
		{7, 2, 1},
	}
	for _, tt := range tests {
		got := fm.LocationOf(tt.offset)
		if got.Line != tt.wantLine || got.Col != tt.wantCol {
			t.Errorf("LocationOf(%d) = %+v, want {Line:%d Col:%d}", tt.offset, got, tt.wantLine, tt.wantCol)
		}
	}
}

func TestFileMapLocationOfPastEnd(t *testing.T) {
	fm := New("Test.java", "ab")
	got := fm.LocationOf(1000)
	if got.Line != 0 {
		t.Errorf("LocationOf(past end) = %+v, want Line 0", got)
	}
}

func TestFileMapLineText(t *testing.T) {
	fm := New("Test.java", "ab\ncd\r\nef")
	fm.AddLine(3)
	fm.AddLine(7)

	tests := []struct {
		line int
		want string
	}{
		{0, "ab"},
		{1, "cd"},
		{2, "ef"},
	}
	for _, tt := range tests {
		if got := fm.LineText(tt.line); got != tt.want {
			t.Errorf("LineText(%d) = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestFileMapNumLines(t *testing.T) {
	fm := New("Test.java", "a\nb\nc")
	fm.AddLine(2)
	fm.AddLine(4)
	if got := fm.NumLines(); got != 3 {
		t.Errorf("NumLines() = %d, want 3", got)
	}
}

func TestFileMapSliceClamps(t *testing.T) {
	fm := New("Test.java", "abcdef")
	if got := fm.Slice(Span{Lo: 1, Hi: 3}); got != "bc" {
		t.Errorf("Slice = %q, want %q", got, "bc")
	}
	if got := fm.Slice(Span{Lo: 4, Hi: 1000}); got != "ef" {
		t.Errorf("Slice past end = %q, want %q", got, "ef")
	}
	if got := fm.Slice(Span{Lo: 3, Hi: 2}); got != "" {
		t.Errorf("Slice with Hi<Lo = %q, want empty", got)
	}
}
