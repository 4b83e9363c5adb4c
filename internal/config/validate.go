package config

import (
	"fmt"

	"github.com/vk/premerge/internal/strset"
)

// Validate checks the referential integrity of the tables: every project
// name appearing as a key, a set member, a check-target key, an exclusion,
// or a meta-project target must belong to the declared universe. A violation
// is a configuration error and the resolver refuses to run with it; per-call
// inputs are never validated (unknown names simply match nothing).
func (c *Config) Validate() error {
	if c.Projects.Len() == 0 {
		return fmt.Errorf("config: project universe is empty")
	}

	if err := c.checkMembers("runtimes", c.Runtimes); err != nil {
		return err
	}

	for table, entries := range map[string]map[string]strset.Set{
		"dependencies":              c.Dependencies,
		"dependents":                c.Dependents,
		"runtimes_to_test":          c.RuntimesToTest,
		"runtimes_to_test_reconfig": c.RuntimesToTestReconfig,
		"runtimes_to_build":         c.RuntimesToBuild,
	} {
		for key, members := range entries {
			if !c.Projects.Has(key) {
				return fmt.Errorf("config: %s key %q is not in the project universe", table, key)
			}
			if err := c.checkMembers(fmt.Sprintf("%s[%s]", table, key), members); err != nil {
				return err
			}
		}
	}

	for project, target := range c.CheckTargets {
		if !c.Projects.Has(project) {
			return fmt.Errorf("config: check target %q is keyed by unknown project %q", target, project)
		}
		if target == "" {
			return fmt.Errorf("config: project %q has an empty check target", project)
		}
	}

	for platform, excluded := range c.Exclusions {
		if err := c.checkMembers(fmt.Sprintf("exclusions[%s]", platform), excluded); err != nil {
			return err
		}
	}
	if err := c.checkMembers("exclude_dependents_windows", c.ExcludeDependentsWindows); err != nil {
		return err
	}

	for i, meta := range c.MetaProjects {
		if len(meta.Pattern) == 0 {
			return fmt.Errorf("config: meta project %d has an empty pattern", i)
		}
		if !c.Projects.Has(meta.Project) {
			return fmt.Errorf("config: meta project pattern %v targets unknown project %q", meta.Pattern, meta.Project)
		}
	}

	if err := c.checkMembers("skip_projects", c.SkipProjects); err != nil {
		return err
	}
	if err := c.checkMembers("skip_build_projects", c.SkipBuildProjects); err != nil {
		return err
	}

	if c.SentinelProject != "" && !c.Projects.Has(c.SentinelProject) {
		return fmt.Errorf("config: sentinel project %q is not in the project universe", c.SentinelProject)
	}

	return nil
}

// checkMembers verifies that every member of the set belongs to the universe.
func (c *Config) checkMembers(table string, members strset.Set) error {
	for _, member := range members.Sorted() {
		if !c.Projects.Has(member) {
			return fmt.Errorf("config: %s references unknown project %q", table, member)
		}
	}
	return nil
}
