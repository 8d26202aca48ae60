package configfile

import "testing"

func TestAnalyzeJSONTopLevelKeys(t *testing.T) {
	src := `{"a": 1, "b": {"c": 2}, "d": [1,2,3]}`
	metrics := Analyze("sample.json", []byte(src), nil)
	if metrics.LogicCount != 3 {
		t.Errorf("expected 3 top-level keys, got %d", metrics.LogicCount)
	}
}

func TestAnalyzeYAMLTopLevelKeys(t *testing.T) {
	src := "a: 1\nb:\n  c: 2\nd: [1, 2, 3]\n"
	metrics := Analyze("sample.yaml", []byte(src), nil)
	if metrics.LogicCount != 3 {
		t.Errorf("expected 3 top-level keys, got %d", metrics.LogicCount)
	}
}

func TestAnalyzeTOMLTopLevelKeys(t *testing.T) {
	src := "name = \"x\"\nversion = \"1\"\n\n[dependencies]\nfoo = \"1.0\"\n"
	metrics := Analyze("Cargo.toml", []byte(src), nil)
	if metrics.LogicCount != 3 {
		t.Errorf("expected 3 top-level keys, got %d", metrics.LogicCount)
	}
}

func TestAnalyzeKDLTopLevelNodes(t *testing.T) {
	src := "project {\n  root \".\"\n}\nindex {\n  max_file_size 100\n}\n"
	metrics := Analyze("sample.kdl", []byte(src), nil)
	if metrics.LogicCount != 2 {
		t.Errorf("expected 2 top-level nodes, got %d", metrics.LogicCount)
	}
}

func TestAnalyzeMalformedJSONFallsBackToZero(t *testing.T) {
	metrics := Analyze("broken.json", []byte("{not json"), nil)
	if metrics.LogicCount != 0 {
		t.Errorf("expected 0 for malformed json, got %d", metrics.LogicCount)
	}
	if metrics.LOC == 0 {
		t.Errorf("expected loc to still be populated")
	}
}

func TestExtensions(t *testing.T) {
	exts := Extensions()
	for _, want := range []string{".json", ".yaml", ".yml", ".toml", ".kdl"} {
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
