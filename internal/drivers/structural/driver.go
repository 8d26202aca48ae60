package structural

import (
	"path/filepath"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/standardbeagle/codehealth/internal/drivers"
	"github.com/standardbeagle/codehealth/internal/types"
)

// Driver parses the typed-language family with tree-sitter and produces
// CommonMetrics per spec.md §4.1.1. It owns one *tree_sitter.Parser per
// extension, created lazily and reused (same rationale as the teacher's
// parser pool: tree-sitter parser construction is not free).
type Driver struct {
	parsers map[string]*tree_sitter.Parser
	entries map[string]langEntry
}

// New returns a Driver ready to analyze any extension in Extensions().
func New() *Driver {
	return &Driver{
		parsers: make(map[string]*tree_sitter.Parser),
		entries: extensions(),
	}
}

// Extensions lists the file extensions this driver claims.
func Extensions() []string {
	exts := make([]string, 0, len(extensions()))
	for ext := range extensions() {
		exts = append(exts, ext)
	}
	return exts
}

// Supports reports whether ext is handled by this driver.
func (d *Driver) Supports(ext string) bool {
	_, ok := d.entries[ext]
	return ok
}

func (d *Driver) parserFor(ext string) (*tree_sitter.Parser, langEntry, bool) {
	entry, ok := d.entries[ext]
	if !ok {
		return nil, langEntry{}, false
	}
	if p, ok := d.parsers[ext]; ok {
		return p, entry, true
	}
	p := tree_sitter.NewParser()
	if err := p.SetLanguage(entry.lang); err != nil {
		return nil, entry, false
	}
	d.parsers[ext] = p
	return p, entry, true
}

// Analyze produces CommonMetrics for a single file's content. A parse
// failure fails soft: the file still gets loc from a line count and a
// complexity_penalty from the pattern dictionary, just no structural
// metrics (spec.md §4.1.1, §7).
func (d *Driver) Analyze(path string, content []byte, dictionary map[string]float64) types.CommonMetrics {
	stripped := drivers.Strip(string(content), false)
	metrics := types.CommonMetrics{
		LOC:               drivers.CountNonBlankLines(stripped),
		ComplexityPenalty: drivers.ScorePenalty(stripped, dictionary),
	}

	ext := filepath.Ext(path)
	parser, entry, ok := d.parserFor(ext)
	if !ok {
		return metrics
	}

	tree := parser.Parse(content, nil)
	if tree == nil {
		return metrics
	}
	defer tree.Close()

	w := &walker{content: content, class: entry.class}
	w.walk(tree.RootNode(), 0)

	metrics.LogicCount = w.logicCount
	metrics.MaxNesting = w.maxNesting
	metrics.ExternalCalls = w.externalCalls
	metrics.StateCount = w.stateCount
	metrics.Dependencies = w.dependencies

	return metrics
}

type walker struct {
	content []byte
	class   nodeClass

	logicCount    int
	maxNesting    int
	externalCalls int
	stateCount    int
	dependencies  []string
}

func (w *walker) walk(n *tree_sitter.Node, depth int) {
	if n == nil {
		return
	}
	kind := n.Kind()

	nextDepth := depth
	if w.class.isBlock(kind) {
		nextDepth++
		if nextDepth > w.maxNesting {
			w.maxNesting = nextDepth
		}
	}

	if w.class.isLogic(kind) {
		w.logicCount++
	}
	if w.class.isMutable(kind) {
		w.stateCount++
	}
	if w.class.isImport(kind) {
		w.externalCalls++
		if dep := w.importPath(n); dep != "" {
			w.dependencies = append(w.dependencies, dep)
		}
	}

	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		w.walk(n.Child(uint(i)), nextDepth)
	}
}

// importPath finds the first string-literal descendant of an import
// node and returns its content with quotes stripped.
func (w *walker) importPath(n *tree_sitter.Node) string {
	var found string
	var search func(*tree_sitter.Node)
	search = func(node *tree_sitter.Node) {
		if node == nil || found != "" {
			return
		}
		switch node.Kind() {
		case "interpreted_string_literal", "string_literal", "string", "raw_string_literal":
			text := string(w.content[node.StartByte():node.EndByte()])
			found = strings.Trim(text, "\"'`")
			return
		}
		count := int(node.ChildCount())
		for i := 0; i < count; i++ {
			search(node.Child(uint(i)))
			if found != "" {
				return
			}
		}
	}
	search(n)
	return found
}
