package markup

import (
	"strings"
	"testing"
)

const vueSample = `
<template>
  <div>
    <span>{{ count }}</span>
  </div>
</template>

<script>
import { ref } from "vue"
import Widget from './Widget.vue'

export default {
  setup() {
    const count = ref(0)
    return { count }
  }
}
</script>
`

func TestAnalyzeCountsOpeningTags(t *testing.T) {
	metrics := Analyze("sample.vue", []byte(vueSample), nil)
	if metrics.LOC == 0 {
		t.Fatalf("expected non-zero loc")
	}
	if metrics.LogicCount == 0 {
		t.Errorf("expected opening tags to be counted")
	}
}

func TestAnalyzeNestingFromIndentation(t *testing.T) {
	metrics := Analyze("sample.vue", []byte(vueSample), nil)
	if metrics.MaxNesting == 0 {
		t.Errorf("expected nesting from leading whitespace")
	}
}

func TestAnalyzeExtractsImportFromForms(t *testing.T) {
	metrics := Analyze("sample.vue", []byte(vueSample), nil)
	joined := strings.Join(metrics.Dependencies, ",")
	if !strings.Contains(joined, "vue") {
		t.Errorf("expected 'vue' from import-from form, got %v", metrics.Dependencies)
	}
	if !strings.Contains(joined, "./Widget.vue") {
		t.Errorf("expected './Widget.vue' from single-quoted import-from form, got %v", metrics.Dependencies)
	}
}

func TestAnalyzeRequireForm(t *testing.T) {
	src := `<script>
const widget = require("./widget")
</script>`
	metrics := Analyze("sample.html", []byte(src), nil)
	joined := strings.Join(metrics.Dependencies, ",")
	if !strings.Contains(joined, "./widget") {
		t.Errorf("expected './widget' from require form, got %v", metrics.Dependencies)
	}
}

func TestExtensions(t *testing.T) {
	exts := Extensions()
	for _, want := range []string{".html", ".htm", ".xml", ".svelte", ".vue"} {
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
