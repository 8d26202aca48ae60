package structural

import "testing"

const goSample = `package sample

import "fmt"

func Greet(name string) string {
	if name == "" {
		name = "world"
	}
	return fmt.Sprintf("hello, %s", name)
}
`

func TestAnalyzeGoFile(t *testing.T) {
	d := New()
	metrics := d.Analyze("sample.go", []byte(goSample), nil)

	if metrics.LOC == 0 {
		t.Fatalf("expected loc > 0 for non-blank file")
	}
	if metrics.LogicCount == 0 {
		t.Errorf("expected at least one logic node for the if statement")
	}
	if metrics.ExternalCalls == 0 {
		t.Errorf("expected at least one import to be recorded as an external call")
	}
	found := false
	for _, dep := range metrics.Dependencies {
		if dep == "fmt" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected dependency %q in %v", "fmt", metrics.Dependencies)
	}
}

func TestAnalyzeUnsupportedExtensionFallsBackToLineCount(t *testing.T) {
	d := New()
	metrics := d.Analyze("notes.txt", []byte("line one\nline two\n"), nil)
	if metrics.LOC != 2 {
		t.Errorf("expected fallback loc of 2, got %d", metrics.LOC)
	}
	if metrics.LogicCount != 0 {
		t.Errorf("expected no structural metrics for unsupported extension")
	}
}

func TestSupportsKnownExtensions(t *testing.T) {
	d := New()
	for _, ext := range []string{".go", ".ts", ".tsx", ".cs", ".java", ".rs", ".cpp", ".hpp", ".cc", ".zig"} {
		if !d.Supports(ext) {
			t.Errorf("expected driver to support %s", ext)
		}
	}
	if d.Supports(".py") {
		t.Errorf("python is not part of the structural family binding")
	}
}
