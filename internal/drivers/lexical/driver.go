// Package lexical drives the whitespace-sensitive functional family
// (spec.md §4.1.2): .ml, .mli, .re, .rei, .res. Unlike structural, there
// is no tree-sitter grammar in the example pack for this family, and
// spec.md fully specifies a char-by-char state machine, so this driver
// is a hand-rolled scanner in the teacher's manual-classification idiom
// (internal/analysis/javascript_analyzer.go's approach, generalized from
// regex-per-construct to an explicit state machine).
package lexical

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/standardbeagle/codehealth/internal/drivers"
	"github.com/standardbeagle/codehealth/internal/types"
)

// Extensions lists the file extensions this driver claims.
func Extensions() []string {
	return []string{".ml", ".mli", ".re", ".rei", ".res"}
}

// stateTokens introduce state (spec.md §4.1.2: "mutable", "ref", or a
// use-of-state-hook name).
var stateTokens = []string{"mutable", "ref", "useState", "useRef", "useReducer"}

// denyList suppresses built-in capitalised names that are not real
// dependencies (e.g. standard module aliases used in examples/prose).
var denyList = map[string]bool{
	"None": true, "Some": true, "Array": true, "List": true, "String": true,
	"Option": true, "Result": true, "Unit": true, "Bool": true, "Int": true,
	"Float": true, "Js": true, "React": true,
}

// scope is one entry in the lexical scope stack: a pending name captured
// from a preceding "let name =" and the complexity accrued within it.
type scope struct {
	name       string
	complexity float64
	startLine  int
}

// Analyze scans src and produces CommonMetrics, including the hotspot
// scope (highest accumulated complexity) and its dependency extraction.
func Analyze(path string, content []byte, dictionary map[string]float64) types.CommonMetrics {
	stripped := drivers.Strip(string(content), false)

	metrics := types.CommonMetrics{
		LOC:               drivers.CountNonBlankLines(stripped),
		ComplexityPenalty: drivers.ScorePenalty(stripped, dictionary),
	}

	s := newScanner(stripped)
	s.run()

	metrics.LogicCount = s.logicCount
	metrics.StateCount = s.stateCount
	metrics.MaxNesting = s.maxDepth
	metrics.Dependencies = extractDependencies(stripped)
	metrics.ExternalCalls = len(metrics.Dependencies)

	if hotspot := s.hotspot(); hotspot != nil {
		metrics.HotspotStartLine = hotspot.startLine
		metrics.HotspotSymbol = hotspot.name
		metrics.HotspotReason = hotspotReason(hotspot.complexity)
	}

	return metrics
}

func hotspotReason(complexity float64) string {
	return fmt.Sprintf("highest accumulated complexity in scope: %.2f", complexity)
}

type scanner struct {
	src   string
	pos   int
	line  int
	stack []*scope
	depth int

	logicCount int
	stateCount int
	maxDepth   int
	completed  []*scope
}

func newScanner(src string) *scanner {
	return &scanner{src: src, line: 1}
}

func (s *scanner) run() {
	// Seed an implicit top-level scope so complexity accrued outside any
	// named binding still has somewhere to land.
	top := &scope{name: "", startLine: 1}
	s.stack = append(s.stack, top)

	for s.pos < len(s.src) {
		c := s.src[s.pos]

		switch c {
		case '\n':
			s.line++
			s.pos++
			continue

		case '{':
			pending := s.capturePendingName()
			sc := &scope{name: pending, startLine: s.line}
			s.stack = append(s.stack, sc)
			s.depth++
			if s.depth > s.maxDepth {
				s.maxDepth = s.depth
			}
			s.pos++
			continue

		case '}':
			if len(s.stack) > 1 {
				child := s.stack[len(s.stack)-1]
				s.stack = s.stack[:len(s.stack)-1]
				s.completed = append(s.completed, child)
				parent := s.stack[len(s.stack)-1]
				parent.complexity += child.complexity * 0.5
				s.depth--
			}
			s.pos++
			continue
		}

		if s.consumeOperator("=>") {
			s.addComplexity(1.0)
			s.logicCount++
			continue
		}
		if s.consumeOperator("->") {
			s.addComplexity(0.5)
			s.logicCount++
			continue
		}

		if word, ok := s.peekWord(); ok {
			switch word {
			case "switch":
				s.addComplexity(2.0)
				s.logicCount++
				s.advanceWord(word)
				continue
			case "if", "else":
				s.addComplexity(1.0)
				s.logicCount++
				s.advanceWord(word)
				continue
			case "for", "while":
				s.addComplexity(3.0)
				s.logicCount++
				s.advanceWord(word)
				continue
			}
			for _, tok := range stateTokens {
				if word == tok {
					s.addComplexity(5.0)
					s.stateCount++
					s.advanceWord(word)
					goto nextIter
				}
			}
			s.advanceWord(word)
			continue
		}

		s.pos++
	nextIter:
	}

	s.completed = append(s.completed, s.stack...)
}

func (s *scanner) addComplexity(delta float64) {
	s.stack[len(s.stack)-1].complexity += delta
}

// capturePendingName looks backward from the current '{' for a
// "let name =" pattern immediately preceding it (spec.md §4.1.2). The
// lookback stops at the nearest statement terminator so an unrelated
// binding closed by a ";" before the current block can't be mistaken
// for its name.
func (s *scanner) capturePendingName() string {
	window := s.src[:s.pos]
	window = window[lastStatementBoundary(window):]

	idx := strings.LastIndex(window, "let ")
	if idx == -1 {
		return ""
	}
	rest := window[idx+len("let "):]
	eq := strings.Index(rest, "=")
	if eq == -1 || eq > 64 {
		return ""
	}
	name := strings.TrimSpace(rest[:eq])
	if name == "" || strings.ContainsAny(name, " \n\t{}") {
		return ""
	}
	return name
}

// lastStatementBoundary returns the index just past the nearest
// statement terminator (";" or a blank line) in window, or 0 if none
// exists — bounding capturePendingName's backward scan to the current
// statement.
func lastStatementBoundary(window string) int {
	boundary := -1
	if semi := strings.LastIndex(window, ";"); semi != -1 {
		boundary = semi + 1
	}
	if blank := strings.LastIndex(window, "\n\n"); blank != -1 && blank+2 > boundary {
		boundary = blank + 2
	}
	if boundary == -1 {
		return 0
	}
	return boundary
}

func (s *scanner) consumeOperator(op string) bool {
	if strings.HasPrefix(s.src[s.pos:], op) {
		s.pos += len(op)
		return true
	}
	return false
}

func (s *scanner) peekWord() (string, bool) {
	c := rune(s.src[s.pos])
	if !unicode.IsLetter(c) && c != '_' {
		return "", false
	}
	end := s.pos
	for end < len(s.src) {
		r := rune(s.src[end])
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			break
		}
		end++
	}
	return s.src[s.pos:end], true
}

func (s *scanner) advanceWord(word string) {
	s.pos += len(word)
}

// hotspot returns the named scope with the highest accumulated
// complexity; unnamed scopes, the implicit top level included, are
// skipped.
func (s *scanner) hotspot() *scope {
	var best *scope
	for _, sc := range s.completed {
		if sc.name == "" {
			continue
		}
		if best == nil || sc.complexity > best.complexity {
			best = sc
		}
	}
	return best
}

// extractDependencies recognises, per spec.md §4.1.2, over stripped
// line-oriented text: a leading "open X"/"include X", "module X = Y"
// (Y is the dependency), any capitalised "A.B.C..." chain (every
// capitalised prefix segment is a candidate), and capitalised markup
// component tags (the leading identifier before '.' or whitespace).
func extractDependencies(stripped string) []string {
	var deps []string
	for _, line := range strings.Split(stripped, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		fields := strings.Fields(trimmed)
		if len(fields) >= 2 && (fields[0] == "open" || fields[0] == "include") {
			deps = append(deps, fields[1])
			continue
		}
		if len(fields) >= 4 && fields[0] == "module" && fields[2] == "=" {
			deps = append(deps, fields[3])
			continue
		}

		for _, word := range fields {
			word = strings.Trim(word, ".,;()[]<>")
			if word == "" || !unicode.IsUpper(rune(word[0])) {
				continue
			}
			segments := strings.Split(word, ".")
			for _, seg := range segments {
				if seg == "" || !unicode.IsUpper(rune(seg[0])) {
					break
				}
				if denyList[seg] {
					continue
				}
				deps = append(deps, seg)
			}
		}
	}
	return deps
}
