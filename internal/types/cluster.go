package types

// Cluster is a contiguous directory subtree selected by the cluster
// detector as a maximal pod that fits the context budget (spec.md §3, §4.4).
type Cluster struct {
	Root      string
	Files     []string
	TotalLOC  int
	MaxDrag   float64
}
