package stylesheet

import (
	"strings"
	"testing"
)

const scssSample = `
@import "base/reset";
@import url(./vendor/normalize.css);

.card {
  color: red;

  .card__title {
    font-weight: bold;
  }
}
`

func TestAnalyzeCountsBraces(t *testing.T) {
	metrics := Analyze("sample.scss", []byte(scssSample), nil)
	if metrics.LOC == 0 {
		t.Fatalf("expected non-zero loc")
	}
	if metrics.LogicCount != 2 {
		t.Errorf("expected logic_count of 2 (two '{'), got %d", metrics.LogicCount)
	}
	if metrics.MaxNesting != 2 {
		t.Errorf("expected max nesting of 2, got %d", metrics.MaxNesting)
	}
}

func TestAnalyzeExtractsImports(t *testing.T) {
	metrics := Analyze("sample.scss", []byte(scssSample), nil)
	joined := strings.Join(metrics.Dependencies, ",")
	if !strings.Contains(joined, "base/reset") {
		t.Errorf("expected 'base/reset' from quoted @import, got %v", metrics.Dependencies)
	}
	if !strings.Contains(joined, "./vendor/normalize.css") {
		t.Errorf("expected './vendor/normalize.css' from url(...) form, got %v", metrics.Dependencies)
	}
}

func TestExtensions(t *testing.T) {
	exts := Extensions()
	for _, want := range []string{".css", ".scss", ".less"} {
		found := false
		for _, ext := range exts {
			if ext == want {
				found = true
			}
		}
		if !found {
			t.Errorf("expected %s in Extensions()", want)
		}
	}
}
