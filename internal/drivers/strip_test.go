package drivers

import "testing"

func TestStripPreservesNewlinesAndLength(t *testing.T) {
	src := "a // comment\nb /* block\ncomment */ c\n\"string\\\"escaped\" d\n"
	got := Strip(src, false)
	if len(got) != len(src) {
		t.Fatalf("length changed: got %d want %d", len(got), len(src))
	}
	wantNewlines := 0
	for _, c := range src {
		if c == '\n' {
			wantNewlines++
		}
	}
	gotNewlines := 0
	for _, c := range got {
		if c == '\n' {
			gotNewlines++
		}
	}
	if gotNewlines != wantNewlines {
		t.Errorf("newline count changed: got %d want %d", gotNewlines, wantNewlines)
	}
}

func TestStripRemovesLineComment(t *testing.T) {
	got := Strip("code // secret\nmore", false)
	if contains(got, "secret") {
		t.Errorf("line comment not stripped: %q", got)
	}
	if !contains(got, "code") || !contains(got, "more") {
		t.Errorf("code content lost: %q", got)
	}
}

func TestStripRemovesBlockComment(t *testing.T) {
	got := Strip("a/* hidden\nstuff */b", false)
	if contains(got, "hidden") || contains(got, "stuff") {
		t.Errorf("block comment not stripped: %q", got)
	}
}

func TestStripSingleQuoteModeDiffers(t *testing.T) {
	src := "x = 'literal'"
	codeMode := Strip(src, false)
	cssMode := Strip(src, true)
	if !contains(codeMode, "literal") {
		t.Errorf("typed-family mode should not treat single quotes as strings: %q", codeMode)
	}
	if contains(cssMode, "literal") {
		t.Errorf("markup/stylesheet mode should strip single-quoted strings: %q", cssMode)
	}
}

func TestStripEscapeConsumesNextCharUnconditionally(t *testing.T) {
	// The escaped quote must not terminate the string early.
	src := `"a\"b"tail`
	got := Strip(src, false)
	if !contains(got, "tail") {
		t.Errorf("expected tail to survive outside the string: %q", got)
	}
}

func contains(s, substr string) bool {
	return len(substr) == 0 || indexOf(s, substr) >= 0
}

func indexOf(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return i
		}
	}
	return -1
}
