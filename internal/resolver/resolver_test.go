package resolver

import (
	"reflect"
	"testing"
)

func TestResolveDottedNotation(t *testing.T) {
	r := New(map[string][]string{"TeaserRecorder": {"src/TeaserRecorder.res"}})
	got := r.Resolve("TeaserRecorder.Recorder")
	want := []string{"src/TeaserRecorder.res"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestResolveColonNotationLastSegment(t *testing.T) {
	r := New(map[string][]string{"Logic": {"src/logic.rs"}})
	got := r.Resolve("Generic::System::Logic")
	want := []string{"src/logic.rs"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestResolveColonNotationFallsBackToParent(t *testing.T) {
	r := New(map[string][]string{"Auth": {"src/auth.rs"}})
	got := r.Resolve("Auth::Service")
	want := []string{"src/auth.rs"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestResolveDirectStemMatch(t *testing.T) {
	r := New(map[string][]string{"fmt": {"vendor/fmt/print.go"}})
	got := r.Resolve("fmt")
	want := []string{"vendor/fmt/print.go"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestResolvePathStemMatch(t *testing.T) {
	r := New(map[string][]string{"MyHelper": {"utils/MyHelper.ts"}})
	got := r.Resolve("./utils/MyHelper")
	want := []string{"utils/MyHelper.ts"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestResolveAmbiguousHitsPreservedSorted(t *testing.T) {
	r := New(map[string][]string{"Logic": {"b/Logic.go", "a/Logic.go"}})
	got := r.Resolve("Logic")
	want := []string{"a/Logic.go", "b/Logic.go"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestResolveNoMatch(t *testing.T) {
	r := New(map[string][]string{})
	got := r.Resolve("Nonexistent")
	if got != nil {
		t.Errorf("expected nil for no match, got %v", got)
	}
}

func TestResolveAccumulatesStrategiesOneAndTwo(t *testing.T) {
	r := New(map[string][]string{
		"Module": {"src/Module.res"},
		"Foo":    {"src/foo.rs"},
	})
	got := r.Resolve("Module.Member::Foo")
	want := []string{"src/Module.res", "src/foo.rs"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected both strategy-1 and strategy-2 hits accumulated, got %v want %v", got, want)
	}
}
