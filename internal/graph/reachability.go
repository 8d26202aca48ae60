package graph

import (
	"sort"

	"github.com/standardbeagle/codehealth/internal/types"
)

// DeadFiles returns every path in allFiles unreachable by BFS from
// entryPoints, per spec.md §4.3: "BFS from the entry-point set
// intersected with the known file set; return the complement." Named
// for what it returns (the original's `find_dead_code` body returns
// `all − visited` under the caller-side name `reachable_files` — spec.md
// §9 open question (b) keeps the behaviour, renames the identifier).
func DeadFiles(g *types.DependencyGraph, allFiles []string, entryPoints []string) []string {
	known := make(map[string]bool, len(allFiles))
	for _, f := range allFiles {
		known[f] = true
	}

	visited := make(map[string]bool)
	var queue []string
	for _, e := range entryPoints {
		if known[e] && !visited[e] {
			visited[e] = true
			queue = append(queue, e)
		}
	}

	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		for _, target := range g.Targets(node) {
			if !known[target] || visited[target] {
				continue
			}
			visited[target] = true
			queue = append(queue, target)
		}
	}

	var dead []string
	for _, f := range allFiles {
		if !visited[f] {
			dead = append(dead, f)
		}
	}
	sort.Strings(dead)
	return dead
}

// FindCycles runs a standard DFS with a recursion set over g and
// returns every detected cycle, captured as the suffix of the current
// path from the back-edge target (spec.md §4.3). Present for
// diagnostics only — spec.md is explicit that the core synthesizer must
// never consume this output.
func FindCycles(g *types.DependencyGraph, allFiles []string) [][]string {
	const (
		unvisited = 0
		visiting  = 1
		done      = 2
	)
	state := make(map[string]int, len(allFiles))
	var path []string
	var cycles [][]string

	var visit func(node string)
	visit = func(node string) {
		state[node] = visiting
		path = append(path, node)

		for _, target := range g.Targets(node) {
			switch state[target] {
			case unvisited:
				visit(target)
			case visiting:
				if idx := indexOf(path, target); idx != -1 {
					cycle := append([]string(nil), path[idx:]...)
					cycles = append(cycles, cycle)
				}
			}
		}

		path = path[:len(path)-1]
		state[node] = done
	}

	sorted := append([]string(nil), allFiles...)
	sort.Strings(sorted)
	for _, f := range sorted {
		if state[f] == unvisited {
			visit(f)
		}
	}
	return cycles
}

func indexOf(path []string, target string) int {
	for i, p := range path {
		if p == target {
			return i
		}
	}
	return -1
}
