package cluster

import (
	"reflect"
	"testing"

	"github.com/standardbeagle/codehealth/internal/types"
)

func TestDetectEmitsSingleClusterWhenWholeGroupFits(t *testing.T) {
	files := []FileInput{
		{Path: "pkg/a.go", LOC: 50, Drag: 1.0, Platform: types.PlatformBackend, Extension: ".go"},
		{Path: "pkg/b.go", LOC: 50, Drag: 1.2, Platform: types.PlatformBackend, Extension: ".go"},
	}
	got := Detect(files, 500)
	if len(got) != 1 {
		t.Fatalf("expected 1 cluster, got %d: %+v", len(got), got)
	}
	c := got[0]
	if c.Root != "pkg" {
		t.Errorf("root = %q, want pkg", c.Root)
	}
	if c.TotalLOC != 100 {
		t.Errorf("total loc = %d, want 100", c.TotalLOC)
	}
	if c.MaxDrag != 1.2 {
		t.Errorf("max drag = %v, want 1.2", c.MaxDrag)
	}
	want := []string{"pkg/a.go", "pkg/b.go"}
	if !reflect.DeepEqual(c.Files, want) {
		t.Errorf("files = %v, want %v", c.Files, want)
	}
}

func TestDetectSkipsSingleFileDirectories(t *testing.T) {
	files := []FileInput{
		{Path: "pkg/a.go", LOC: 50, Drag: 1.0, Platform: types.PlatformBackend, Extension: ".go"},
	}
	got := Detect(files, 500)
	if len(got) != 0 {
		t.Fatalf("expected no clusters for a lone file, got %+v", got)
	}
}

func TestDetectParentSupersedesFittingChildren(t *testing.T) {
	files := []FileInput{
		{Path: "pkg/sub/a.go", LOC: 40, Drag: 1.0, Platform: types.PlatformBackend, Extension: ".go"},
		{Path: "pkg/sub/b.go", LOC: 40, Drag: 1.0, Platform: types.PlatformBackend, Extension: ".go"},
		{Path: "pkg/c.go", LOC: 40, Drag: 1.0, Platform: types.PlatformBackend, Extension: ".go"},
	}
	got := Detect(files, 500)
	if len(got) != 1 {
		t.Fatalf("expected the parent to supersede the child, got %d clusters: %+v", len(got), got)
	}
	if got[0].Root != "pkg" {
		t.Errorf("root = %q, want pkg", got[0].Root)
	}
	if len(got[0].Files) != 3 {
		t.Errorf("expected all 3 files folded into the parent cluster, got %v", got[0].Files)
	}
}

func TestDetectCommitsChildWhenParentExceedsBudget(t *testing.T) {
	files := []FileInput{
		{Path: "pkg/sub/a.go", LOC: 40, Drag: 1.0, Platform: types.PlatformBackend, Extension: ".go"},
		{Path: "pkg/sub/b.go", LOC: 40, Drag: 1.0, Platform: types.PlatformBackend, Extension: ".go"},
		{Path: "pkg/big.go", LOC: 10000, Drag: 1.0, Platform: types.PlatformBackend, Extension: ".go"},
	}
	got := Detect(files, 100)
	if len(got) != 1 {
		t.Fatalf("expected exactly the child subtree to be committed, got %d: %+v", len(got), got)
	}
	if got[0].Root != "pkg/sub" {
		t.Errorf("root = %q, want pkg/sub", got[0].Root)
	}
	if got[0].TotalLOC != 80 {
		t.Errorf("total loc = %d, want 80", got[0].TotalLOC)
	}
}

func TestDetectPartitionsByPlatformAndExtension(t *testing.T) {
	files := []FileInput{
		{Path: "pkg/a.go", LOC: 50, Drag: 1.0, Platform: types.PlatformBackend, Extension: ".go"},
		{Path: "pkg/b.go", LOC: 50, Drag: 1.0, Platform: types.PlatformBackend, Extension: ".go"},
		{Path: "pkg/a.ts", LOC: 50, Drag: 1.0, Platform: types.PlatformFrontend, Extension: ".ts"},
		{Path: "pkg/b.ts", LOC: 50, Drag: 1.0, Platform: types.PlatformFrontend, Extension: ".ts"},
	}
	got := Detect(files, 500)
	if len(got) != 2 {
		t.Fatalf("expected one cluster per (platform,extension) partition, got %d: %+v", len(got), got)
	}
}
