package selection

import (
	"fmt"

	"github.com/vk/premerge/internal/config"
	"github.com/vk/premerge/internal/strset"
)

// Resolver computes build and test selections against a fixed configuration.
// The configuration is validated once at construction; Resolve itself has no
// failure modes.
type Resolver struct {
	cfg *config.Config
}

// NewResolver validates cfg and returns a Resolver bound to it.
func NewResolver(cfg *config.Config) (*Resolver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("selection: %w", err)
	}
	return &Resolver{cfg: cfg}, nil
}

// Result holds the outcome of one resolution. The check-target outputs are
// derived from the test sets at render time.
type Result struct {
	ProjectsToBuild        strset.Set
	ProjectsToTest         strset.Set
	RuntimesToBuild        strset.Set
	RuntimesToTest         strset.Set
	RuntimesToTestReconfig strset.Set
	CIREnabled             bool
}

// Resolve maps changed file paths and a platform onto the full selection.
// An unrecognized platform behaves as having no exclusions.
func (r *Resolver) Resolve(files []string, platform config.Platform) *Result {
	modified := r.ModifiedProjects(files)

	projectsToTest := r.projectsToTest(modified, platform)
	runtimesToTest := r.runtimesFrom(r.cfg.RuntimesToTest, modified, platform)
	runtimesToTestReconfig := r.runtimesFrom(r.cfg.RuntimesToTestReconfig, modified, platform)
	runtimesToBuild := r.runtimesToBuild(runtimesToTest.Union(runtimesToTestReconfig), modified, platform)

	projectsToBuild := r.buildClosure(projectsToTest, runtimesToBuild)

	// The sentinel is itself in the explicit-build skip set, so the flag has
	// to be read off the closure before the discard below.
	cirEnabled := r.cfg.SentinelProject != "" && projectsToBuild.Has(r.cfg.SentinelProject)

	for _, project := range r.cfg.SkipBuildProjects.Sorted() {
		projectsToBuild.Discard(project)
	}

	return &Result{
		ProjectsToBuild:        projectsToBuild,
		ProjectsToTest:         projectsToTest,
		RuntimesToBuild:        runtimesToBuild,
		RuntimesToTest:         runtimesToTest,
		RuntimesToTestReconfig: runtimesToTestReconfig,
		CIREnabled:             cirEnabled,
	}
}

// projectsToTest derives the non-runtime projects whose tests must run: a
// modified project with a check target is tested itself, and its dependents
// are tested with it. On Windows the unstable dependents subset is removed
// before inclusion.
func (r *Resolver) projectsToTest(modified strset.Set, platform config.Platform) strset.Set {
	out := strset.New()
	for project := range modified {
		if r.cfg.Runtimes.Has(project) {
			continue
		}
		if _, ok := r.cfg.CheckTargets[project]; ok {
			out.Add(project)
		}
		dependents, ok := r.cfg.Dependents[project]
		if !ok {
			continue
		}
		if platform == config.Windows {
			dependents = dependents.Subtract(r.cfg.ExcludeDependentsWindows)
		}
		out.Update(dependents)
	}
	return r.excludePlatform(out, platform)
}

// runtimesFrom unions the entries of a runtime-dependents table over the
// modified projects and applies the platform exclusion.
func (r *Resolver) runtimesFrom(table map[string]strset.Set, modified strset.Set, platform config.Platform) strset.Set {
	out := strset.New()
	for project := range modified {
		if runtimes, ok := table[project]; ok {
			out.Update(runtimes)
		}
	}
	return r.excludePlatform(out, platform)
}

// runtimesToBuild starts from the runtimes under test and adds every runtime
// declared as a build-only dependency of a modified project.
func (r *Resolver) runtimesToBuild(runtimesToTest strset.Set, modified strset.Set, platform config.Platform) strset.Set {
	out := runtimesToTest.Clone()
	for project := range modified {
		if runtimes, ok := r.cfg.RuntimesToBuild[project]; ok {
			out.Update(runtimes)
		}
	}
	return r.excludePlatform(out, platform)
}

// buildClosure expands projectsToTest to its transitive closure under the
// dependency graph using a worklist, then unions in the direct dependencies
// of the runtimes in a single extra pass. Runtimes contribute their
// dependencies but are not expanded transitively themselves.
func (r *Resolver) buildClosure(projectsToTest, runtimesToBuild strset.Set) strset.Set {
	closed := projectsToTest.Clone()

	frontier := make([]string, 0, closed.Len())
	for project := range closed {
		frontier = append(frontier, project)
	}
	for len(frontier) > 0 {
		project := frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]
		for dependency := range r.cfg.Dependencies[project] {
			if closed.Has(dependency) {
				continue
			}
			closed.Add(dependency)
			frontier = append(frontier, dependency)
		}
	}

	for runtime := range runtimesToBuild {
		if dependencies, ok := r.cfg.Dependencies[runtime]; ok {
			closed.Update(dependencies)
		}
	}

	return closed
}

// excludePlatform removes the platform's excluded projects from the set. An
// unrecognized platform has no exclusions.
func (r *Resolver) excludePlatform(projects strset.Set, platform config.Platform) strset.Set {
	excluded, ok := r.cfg.Exclusions[platform]
	if !ok {
		return projects
	}
	return projects.Subtract(excluded)
}
