package selection

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vk/premerge/internal/strset"
)

// Output keys, in the order the CI workflow expects them to be emitted.
const (
	KeyProjectsToBuild      = "projects_to_build"
	KeyProjectCheckTargets  = "project_check_targets"
	KeyRuntimesToBuild      = "runtimes_to_build"
	KeyRuntimeCheckTargets  = "runtimes_check_targets"
	KeyRuntimeCheckReconfig = "runtimes_check_targets_needs_reconfig"
	KeyEnableCIR            = "enable_cir"
)

// EnvKeys is the fixed emission order for Lines.
var EnvKeys = []string{
	KeyProjectsToBuild,
	KeyProjectCheckTargets,
	KeyRuntimesToBuild,
	KeyRuntimeCheckTargets,
	KeyRuntimeCheckReconfig,
	KeyEnableCIR,
}

// Env renders the result into the six fixed environment values. Project
// sets are joined by ";" in ascending lexical order; check targets are
// looked up for each tested project, sorted, and joined by spaces. For a
// fixed input the output is byte-identical across invocations.
func (r *Resolver) Env(result *Result) map[string]string {
	cir := "OFF"
	if result.CIREnabled {
		cir = "ON"
	}
	return map[string]string{
		KeyProjectsToBuild:      strings.Join(result.ProjectsToBuild.Sorted(), ";"),
		KeyProjectCheckTargets:  r.checkTargets(result.ProjectsToTest),
		KeyRuntimesToBuild:      strings.Join(result.RuntimesToBuild.Sorted(), ";"),
		KeyRuntimeCheckTargets:  r.checkTargets(result.RuntimesToTest),
		KeyRuntimeCheckReconfig: r.checkTargets(result.RuntimesToTestReconfig),
		KeyEnableCIR:            cir,
	}
}

// Lines renders the environment mapping as key='value' lines for shell
// consumption, in the fixed EnvKeys order.
func (r *Resolver) Lines(result *Result) []string {
	env := r.Env(result)
	lines := make([]string, 0, len(EnvKeys))
	for _, key := range EnvKeys {
		lines = append(lines, fmt.Sprintf("%s='%s'", key, env[key]))
	}
	return lines
}

// checkTargets maps the set members through the check-target table, skipping
// members without an entry, and joins the target names sorted ascending.
func (r *Resolver) checkTargets(projects strset.Set) string {
	targets := make([]string, 0, projects.Len())
	for project := range projects {
		if target, ok := r.cfg.CheckTargets[project]; ok {
			targets = append(targets, target)
		}
	}
	sort.Strings(targets)
	return strings.Join(targets, " ")
}
