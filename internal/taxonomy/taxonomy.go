// Package taxonomy assigns each file a TaxonomyRole from its header
// pragma or, failing that, a path heuristic (spec.md §6, glossary
// "Role / taxonomy"). Grounded on the teacher's internal/semantic
// fuzzy-matching idiom (fuzzy_matcher.go, stemmer.go): a "did you mean"
// diagnostic is produced, by Porter2-stemming then Jaro-Winkler
// comparing, whenever a pragma tag is close to but not exactly a
// configured role.
package taxonomy

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/hbollon/go-edlib"
	"github.com/surgebase/porter2"

	"github.com/standardbeagle/codehealth/internal/types"
)

// suggestionThreshold is the minimum Jaro-Winkler similarity at which an
// unrecognised tag is worth suggesting a correction for.
const suggestionThreshold = 0.82

var pragmaPattern = regexp.MustCompile(`@efficiency(?:-role)?:?\s+([A-Za-z0-9_-]+)`)

// Assignment is the result of classifying one file: the adopted role
// name and, if the pragma tag looked like a typo of a configured role,
// a diagnostic suggestion (never applied — spec.md §6's literal-adopt
// rule for the tag is preserved).
type Assignment struct {
	Role       string
	Ignored    bool
	Suggestion string
}

// Assigner classifies files against a configured set of taxonomy roles.
type Assigner struct {
	roles []string
}

// NewAssigner builds an Assigner from the configured taxonomy map's keys.
func NewAssigner(taxonomy map[string]types.TaxonomyRole) *Assigner {
	roles := make([]string, 0, len(taxonomy))
	for name := range taxonomy {
		roles = append(roles, name)
	}
	return &Assigner{roles: roles}
}

// Assign classifies path/content per spec.md §6: a recognised header
// pragma wins outright; "ignore"/"ignored" excludes the file;
// "singleton" maps to orchestrator; any other tag is adopted verbatim.
// With no pragma, a path heuristic picks a role; with no heuristic
// match, the role is "unknown".
func (a *Assigner) Assign(path, content string) Assignment {
	if tag, ok := findPragma(content); ok {
		if assignment := a.assignFromPragma(tag); assignment.Role != "" {
			return assignment
		}
	}
	return Assignment{Role: a.assignFromPath(path)}
}

func findPragma(content string) (string, bool) {
	// Pragmas live in file headers; scanning the whole file is simpler
	// and no less correct than bounding to the first N lines, since
	// spec.md places no line-count limit on where the pragma may appear.
	m := pragmaPattern.FindStringSubmatch(content)
	if m == nil {
		return "", false
	}
	return strings.ToLower(m[1]), true
}

func (a *Assigner) assignFromPragma(tag string) Assignment {
	switch tag {
	case "ignore", "ignored":
		return Assignment{Role: types.RoleIgnored, Ignored: true}
	case "singleton":
		return Assignment{Role: types.RoleOrchestrator}
	case "strict":
		// "strict" is a flag, not a role name (spec.md §6); a file
		// tagged only "strict" falls back to the path heuristic.
		return Assignment{}
	}

	assignment := Assignment{Role: tag}
	if !a.isKnownRole(tag) {
		if suggestion, ok := a.suggest(tag); ok {
			assignment.Suggestion = suggestion
		}
	}
	return assignment
}

func (a *Assigner) isKnownRole(tag string) bool {
	for _, r := range a.roles {
		if r == tag {
			return true
		}
	}
	return false
}

// suggest finds the configured role whose stemmed form is most similar
// to tag's stemmed form, above suggestionThreshold.
func (a *Assigner) suggest(tag string) (string, bool) {
	stemmedTag := porter2.Stem(tag)
	best := ""
	bestScore := 0.0
	for _, role := range a.roles {
		stemmedRole := porter2.Stem(strings.ReplaceAll(role, "-", ""))
		score, err := edlib.StringsSimilarity(stemmedTag, stemmedRole, edlib.JaroWinkler)
		if err != nil {
			continue
		}
		if float64(score) > bestScore {
			bestScore = float64(score)
			best = role
		}
	}
	if best == "" || bestScore < suggestionThreshold {
		return "", false
	}
	return best, true
}

// pathHeuristics maps a lowercase substring of a path to the role it
// implies, checked in order (first match wins). Grounded on spec.md's
// named role vocabulary; this ordering is an Open Question decision
// (DESIGN.md) since spec.md leaves the heuristic itself unspecified.
var pathHeuristics = []struct {
	substr string
	role   string
}{
	{"cmd" + string(filepath.Separator), types.RoleOrchestrator},
	{"main.go", types.RoleOrchestrator},
	{"__main__", types.RoleOrchestrator},
	{"service", types.RoleServiceOrchestrator},
	{"orchestrat", types.RoleServiceOrchestrator},
	{"component", types.RoleUIComponent},
	{"view", types.RoleUIComponent},
	{"widget", types.RoleUIComponent},
	{".vue", types.RoleUIComponent},
	{".svelte", types.RoleUIComponent},
	{"model", types.RoleDataModel},
	{"schema", types.RoleDataModel},
	{"entity", types.RoleDataModel},
	{"reducer", types.RoleStateReducer},
	{"store", types.RoleStateReducer},
	{"adapter", types.RoleInfraAdapter},
	{"client", types.RoleInfraAdapter},
	{"driver", types.RoleInfraAdapter},
	{"config", types.RoleInfraConfig},
	{"settings", types.RoleInfraConfig},
	{"util", types.RoleUtilPure},
	{"helpers", types.RoleUtilPure},
	{"lib" + string(filepath.Separator), types.RoleUtilPure},
}

func (a *Assigner) assignFromPath(path string) string {
	lower := strings.ToLower(path)
	for _, h := range pathHeuristics {
		if strings.Contains(lower, h.substr) {
			return h.role
		}
	}
	return types.RoleUnknown
}
