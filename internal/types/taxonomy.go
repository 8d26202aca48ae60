package types

// TaxonomyRole is a named semantic bucket assigned to a file, carrying a
// multiplier applied to that file's dynamic size budget (spec.md §3).
type TaxonomyRole struct {
	Name       string
	Multiplier float64
	Desc       string
}

// Well-known role names. Any other alphanumeric pragma tag is adopted
// verbatim as a role name (spec.md §6); these are only the ones the
// reachability/synthesis logic treats specially.
const (
	RoleOrchestrator        = "orchestrator"
	RoleServiceOrchestrator = "service-orchestrator"
	RoleDomainLogic         = "domain-logic"
	RoleUIComponent         = "ui-component"
	RoleDataModel           = "data-model"
	RoleInfraAdapter        = "infra-adapter"
	RoleUtilPure            = "util-pure"
	RoleStateReducer        = "state-reducer"
	RoleInfraConfig         = "infra-config"
	RoleIgnored             = "ignored"
	RoleUnknown             = "unknown"
)

// IsOrchestratorRole reports whether role seeds reachability as an
// orchestrator entry point (spec.md §4.3).
func IsOrchestratorRole(role string) bool {
	return role == RoleOrchestrator || role == RoleServiceOrchestrator
}
