// Package cluster implements the trie-based greedy cluster detector
// (spec.md §4.4): group files by directory prefix, then emit the
// deepest maximal subtree that still fits a context budget, without
// overlapping clusters. No third-party library — spec.md fully
// specifies the trie shape and greedy rule, and this is a bespoke
// in-memory tree over path segments, not a general-purpose trie
// (SPEC_FULL.md §9 design note).
package cluster

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/standardbeagle/codehealth/internal/types"
)

// FileInput is one file's contribution to cluster detection: its path,
// loc, and drag (spec.md §4.5's drag, computed by the caller so this
// package stays decoupled from the synthesizer's formula inputs).
type FileInput struct {
	Path      string
	LOC       int
	Drag      float64
	Platform  types.Platform
	Extension string
}

type node struct {
	path     string
	children map[string]*node
	files    []FileInput
}

func newNode(path string) *node {
	return &node{path: path, children: make(map[string]*node)}
}

// Detect partitions files by (platform, extension) — spec.md §4.5's
// "grouped by (platform, extension)" — builds one trie per partition,
// and returns every emitted cluster across all partitions, sorted by
// root for determinism.
func Detect(files []FileInput, maxLOC int) []types.Cluster {
	type key struct {
		platform types.Platform
		ext      string
	}
	groups := make(map[key][]FileInput)
	for _, f := range files {
		k := key{f.Platform, f.Extension}
		groups[k] = append(groups[k], f)
	}

	var clusters []types.Cluster
	for _, group := range groups {
		clusters = append(clusters, detectGroup(group, maxLOC)...)
	}

	sort.Slice(clusters, func(i, j int) bool { return clusters[i].Root < clusters[j].Root })
	return clusters
}

func detectGroup(files []FileInput, maxLOC int) []types.Cluster {
	root := newNode("")
	for _, f := range files {
		dir := filepath.ToSlash(filepath.Dir(f.Path))
		segments := splitSegments(dir)
		cur := root
		pathSoFar := ""
		for _, seg := range segments {
			if pathSoFar == "" {
				pathSoFar = seg
			} else {
				pathSoFar = pathSoFar + "/" + seg
			}
			child, ok := cur.children[seg]
			if !ok {
				child = newNode(pathSoFar)
				cur.children[seg] = child
			}
			cur = child
		}
		cur.files = append(cur.files, f)
	}

	// Start the walk at the deepest common directory: ancestors that hold
	// no files and a single child add nothing, but would otherwise fit
	// whenever their only child fits and supersede it.
	for len(root.files) == 0 && len(root.children) == 1 {
		for _, child := range root.children {
			root = child
		}
	}

	var committed []types.Cluster
	_, _, _, candidate := walk(root, maxLOC, &committed)
	if candidate != nil {
		committed = append(committed, *candidate)
	}
	return committed
}

func splitSegments(dir string) []string {
	dir = strings.Trim(dir, "/")
	if dir == "" || dir == "." {
		return nil
	}
	return strings.Split(dir, "/")
}

// walk post-order traverses node, returning its subtree's aggregate
// (total loc, member files, max drag) and, if the subtree itself
// qualifies as a cluster, a candidate for the parent to either
// supersede-and-discard (if the parent also fits) or commit (if not).
func walk(n *node, maxLOC int, committed *[]types.Cluster) (int, []FileInput, float64, *types.Cluster) {
	totalLOC := 0
	var allFiles []FileInput
	maxDrag := 0.0
	for _, f := range n.files {
		totalLOC += f.LOC
		allFiles = append(allFiles, f)
		if f.Drag > maxDrag {
			maxDrag = f.Drag
		}
	}

	childNames := make([]string, 0, len(n.children))
	for name := range n.children {
		childNames = append(childNames, name)
	}
	sort.Strings(childNames)

	var childCandidates []types.Cluster
	for _, name := range childNames {
		child := n.children[name]
		cLOC, cFiles, cMaxDrag, cCandidate := walk(child, maxLOC, committed)
		totalLOC += cLOC
		allFiles = append(allFiles, cFiles...)
		if cMaxDrag > maxDrag {
			maxDrag = cMaxDrag
		}
		if cCandidate != nil {
			childCandidates = append(childCandidates, *cCandidate)
		}
	}

	if totalLOC <= maxLOC && len(allFiles) > 1 {
		paths := make([]string, len(allFiles))
		for i, f := range allFiles {
			paths[i] = f.Path
		}
		sort.Strings(paths)
		return totalLOC, allFiles, maxDrag, &types.Cluster{
			Root:     n.path,
			Files:    paths,
			TotalLOC: totalLOC,
			MaxDrag:  maxDrag,
		}
	}

	*committed = append(*committed, childCandidates...)
	return totalLOC, allFiles, maxDrag, nil
}
