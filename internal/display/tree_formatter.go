// Package display renders cluster pods as human-readable text, used by
// the --clusters CLI mode. Adapted from the teacher's internal/display/tree_formatter.go:
// same recursive prefix/branch tree-drawing idiom, applied to cluster
// pods instead of function call trees.
package display

import (
	"fmt"
	"sort"
	"strings"

	"github.com/standardbeagle/codehealth/internal/types"
)

// ClusterFormatter renders cluster-detector output as an indented tree.
type ClusterFormatter struct {
	ShowLOC  bool
	ShowDrag bool
}

// NewClusterFormatter returns a formatter with sane text-mode defaults.
func NewClusterFormatter() *ClusterFormatter {
	return &ClusterFormatter{ShowLOC: true, ShowDrag: true}
}

// Format renders clusters sorted by root path, one tree section each.
func (f *ClusterFormatter) Format(clusters []types.Cluster) string {
	if len(clusters) == 0 {
		return "No clusters detected.\n"
	}

	sorted := make([]types.Cluster, len(clusters))
	copy(sorted, clusters)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Root < sorted[j].Root })

	var sb strings.Builder
	for _, c := range sorted {
		f.formatOne(&sb, c)
	}
	return sb.String()
}

func (f *ClusterFormatter) formatOne(sb *strings.Builder, c types.Cluster) {
	sb.WriteString(fmt.Sprintf("%s (%d files", c.Root, len(c.Files)))
	if f.ShowLOC {
		sb.WriteString(fmt.Sprintf(", %d loc", c.TotalLOC))
	}
	if f.ShowDrag {
		sb.WriteString(fmt.Sprintf(", max drag %.2f", c.MaxDrag))
	}
	sb.WriteString(")\n")

	files := make([]string, len(c.Files))
	copy(files, c.Files)
	sort.Strings(files)

	for i, file := range files {
		isLast := i == len(files)-1
		branch := "├─ "
		if isLast {
			branch = "└─ "
		}
		sb.WriteString("  " + branch + file + "\n")
	}
}
