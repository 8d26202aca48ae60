// Package structural drives the typed-language family (spec.md §4.1.1):
// .go, .ts/.tsx, .cs, .java, .rs, .cpp/.hpp/.cc, .zig. Grounded on the
// teacher's internal/parser package, which registers one tree-sitter
// grammar per extension and walks the resulting tree; this driver keeps
// that registration idiom but walks for CommonMetrics instead of symbols.
package structural

import (
	tree_sitter_zig "github.com/tree-sitter-grammars/tree-sitter-zig/bindings/go"
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_csharp "github.com/tree-sitter/tree-sitter-c-sharp/bindings/go"
	tree_sitter_cpp "github.com/tree-sitter/tree-sitter-cpp/bindings/go"
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"
	tree_sitter_java "github.com/tree-sitter/tree-sitter-java/bindings/go"
	tree_sitter_rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// nodeClass classifies a language's node kinds for the metrics walk.
// Every set membership test is by exact node-kind string, matching the
// vocabulary each grammar actually emits.
type nodeClass struct {
	// logic is every conditional, loop, and pattern-match node kind;
	// each occurrence increments logic_count (spec.md §4.1.1).
	logic map[string]bool
	// importKinds are import/use declaration node kinds; each becomes an
	// external call recording its textual path.
	importKinds map[string]bool
	// mutableKinds are nodes that introduce or reassign a mutable
	// binding; each increments state_count.
	mutableKinds map[string]bool
	// blockKinds are nodes that open a new nesting level for max_nesting
	// tracking (braces or their grammar's equivalent).
	blockKinds map[string]bool
}

func (nc nodeClass) isLogic(kind string) bool    { return nc.logic[kind] }
func (nc nodeClass) isImport(kind string) bool    { return nc.importKinds[kind] }
func (nc nodeClass) isMutable(kind string) bool   { return nc.mutableKinds[kind] }
func (nc nodeClass) isBlock(kind string) bool     { return nc.blockKinds[kind] }

func sset(kinds ...string) map[string]bool {
	m := make(map[string]bool, len(kinds))
	for _, k := range kinds {
		m[k] = true
	}
	return m
}

var goClass = nodeClass{
	logic: sset("if_statement", "for_statement", "expression_switch_statement",
		"type_switch_statement", "select_statement", "communication_case",
		"expression_case", "type_case", "default_case"),
	importKinds:  sset("import_spec"),
	mutableKinds: sset("short_var_declaration", "var_declaration", "assignment_statement"),
	blockKinds:   sset("block"),
}

var typescriptClass = nodeClass{
	logic: sset("if_statement", "for_statement", "for_in_statement", "while_statement",
		"do_statement", "switch_statement", "switch_case", "catch_clause", "ternary_expression"),
	importKinds:  sset("import_statement"),
	mutableKinds: sset("lexical_declaration", "variable_declaration", "assignment_expression"),
	blockKinds:   sset("statement_block"),
}

var csharpClass = nodeClass{
	logic: sset("if_statement", "for_statement", "foreach_statement", "while_statement",
		"do_statement", "switch_statement", "switch_section", "catch_clause"),
	importKinds:  sset("using_directive"),
	mutableKinds: sset("variable_declaration", "assignment_expression"),
	blockKinds:   sset("block"),
}

var javaClass = nodeClass{
	logic: sset("if_statement", "for_statement", "enhanced_for_statement", "while_statement",
		"do_statement", "switch_expression", "switch_label", "catch_clause"),
	importKinds:  sset("import_declaration"),
	mutableKinds: sset("local_variable_declaration", "assignment_expression"),
	blockKinds:   sset("block"),
}

var rustClass = nodeClass{
	logic: sset("if_expression", "match_expression", "match_arm", "for_expression",
		"while_expression", "loop_expression"),
	importKinds:  sset("use_declaration"),
	mutableKinds: sset("let_declaration", "assignment_expression"),
	blockKinds:   sset("block"),
}

var cppClass = nodeClass{
	logic: sset("if_statement", "for_statement", "while_statement", "do_statement",
		"switch_statement", "case_statement", "catch_clause"),
	importKinds:  sset("preproc_include", "using_declaration"),
	mutableKinds: sset("declaration", "assignment_expression"),
	blockKinds:   sset("compound_statement"),
}

var zigClass = nodeClass{
	logic:        sset("if_expression", "for_expression", "while_expression", "switch_expression"),
	importKinds:  sset("import_expression"),
	mutableKinds: sset("variable_declaration", "assign_expression"),
	blockKinds:   sset("block"),
}

// langEntry binds an extension to its tree-sitter language and node
// classification.
type langEntry struct {
	lang  *tree_sitter.Language
	class nodeClass
}

// extensions is the authoritative extension -> language table for the
// structural driver (SPEC_FULL.md §7's driver-family binding).
func extensions() map[string]langEntry {
	return map[string]langEntry{
		".go":  {lang: tree_sitter.NewLanguage(tree_sitter_go.Language()), class: goClass},
		".ts":  {lang: tree_sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript()), class: typescriptClass},
		".tsx": {lang: tree_sitter.NewLanguage(tree_sitter_typescript.LanguageTSX()), class: typescriptClass},
		".cs":  {lang: tree_sitter.NewLanguage(tree_sitter_csharp.Language()), class: csharpClass},
		".java": {lang: tree_sitter.NewLanguage(tree_sitter_java.Language()), class: javaClass},
		".rs":  {lang: tree_sitter.NewLanguage(tree_sitter_rust.Language()), class: rustClass},
		".cpp": {lang: tree_sitter.NewLanguage(tree_sitter_cpp.Language()), class: cppClass},
		".hpp": {lang: tree_sitter.NewLanguage(tree_sitter_cpp.Language()), class: cppClass},
		".cc":  {lang: tree_sitter.NewLanguage(tree_sitter_cpp.Language()), class: cppClass},
		".zig": {lang: tree_sitter.NewLanguage(tree_sitter_zig.Language()), class: zigClass},
	}
}
