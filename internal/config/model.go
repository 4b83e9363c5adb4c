package config

import "github.com/vk/premerge/internal/strset"

// Platform identifies one of the supported CI platforms. The canonical
// values mirror Python's platform.system() strings, which is what the
// surrounding CI passes around.
type Platform string

const (
	Linux   Platform = "Linux"
	Windows Platform = "Windows"
	Darwin  Platform = "Darwin"
)

// Platforms lists the recognized platforms in a fixed order.
var Platforms = []Platform{Linux, Windows, Darwin}

// Wildcard is the meta-project pattern segment that matches any path segment.
const Wildcard = "*"

// MetaProject redirects files under an unusual path to a project name that
// differs from their top-level directory. The pattern is a prefix match: a
// file matches when it has at least as many segments as the pattern and each
// pattern segment equals the corresponding file segment or is Wildcard.
type MetaProject struct {
	Pattern []string
	Project string
}

// Config is the full configuration model for the resolver. All sets and maps
// are read-only after load.
type Config struct {
	// Projects is the universe of recognized project names, including
	// pseudo-projects such as ".ci" that only exist as table keys.
	Projects strset.Set

	// Runtimes classifies a subset of projects as runtimes. A modified
	// runtime never enters the projects-to-test derivation directly; it is
	// picked up through the runtime tables instead.
	Runtimes strset.Set

	// Dependencies maps a project to the projects it needs at build time.
	// Not guaranteed acyclic, so closure computation is a fixed point.
	Dependencies map[string]strset.Set

	// Dependents maps a project to the projects whose test targets must run
	// when it changes. Distinct from the inverse of Dependencies.
	Dependents map[string]strset.Set

	// RuntimesToTest maps a modified project to the runtimes whose tests
	// must run.
	RuntimesToTest map[string]strset.Set

	// RuntimesToTestReconfig is the same shape as RuntimesToTest for
	// runtimes whose test invocation requires a separate build
	// reconfiguration step. Tracked separately so CI can branch.
	RuntimesToTestReconfig map[string]strset.Set

	// RuntimesToBuild maps a modified project to runtimes that must be
	// built, but not tested, on its behalf.
	RuntimesToBuild map[string]strset.Set

	// CheckTargets maps a project to its test invocation target. Projects
	// without an entry have no test target.
	CheckTargets map[string]string

	// Exclusions holds one set of excluded project names per platform.
	// Resolving against an unlisted platform behaves as the empty set.
	Exclusions map[Platform]strset.Set

	// ExcludeDependentsWindows is removed from every dependents set before
	// inclusion on Windows. It models toolchain-specific test instability,
	// not a general exclusion.
	ExcludeDependentsWindows strset.Set

	// MetaProjects is the ordered path-alias table consulted for every
	// changed file. All matching entries contribute.
	MetaProjects []MetaProject

	// SkipProjects are meta-project targets that absorb a file entirely:
	// a file matching one resolves to no projects at all.
	SkipProjects strset.Set

	// SkipBuildProjects never appear in the rendered explicit-build list,
	// even when the dependency closure reaches them.
	SkipBuildProjects strset.Set

	// SentinelProject is the project whose presence in the build closure
	// flips the enable_cir output to ON. It is evaluated before the
	// SkipBuildProjects discard, since the sentinel itself is skipped.
	SentinelProject string
}
