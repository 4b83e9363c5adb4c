package config

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/premerge/internal/ctxlog"
	"github.com/vk/premerge/internal/strset"
)

// fileRoot is the top-level HCL schema for an overlay file.
type fileRoot struct {
	Sentinel     *string          `hcl:"sentinel,optional"`
	Projects     []*projectBlock  `hcl:"project,block"`
	Platforms    []*platformBlock `hcl:"platform,block"`
	MetaProjects []*metaBlock     `hcl:"meta_project,block"`
	Skip         *skipBlock       `hcl:"skip,block"`
}

// projectBlock declares or amends a single project. Absent attributes leave
// the corresponding default table entry untouched; present attributes
// replace it wholesale.
type projectBlock struct {
	Name                 string   `hcl:"name,label"`
	Runtime              *bool    `hcl:"runtime,optional"`
	CheckTarget          *string  `hcl:"check_target,optional"`
	Dependencies         []string `hcl:"dependencies,optional"`
	Dependents           []string `hcl:"dependents,optional"`
	TestRuntimes         []string `hcl:"test_runtimes,optional"`
	TestRuntimesReconfig []string `hcl:"test_runtimes_reconfig,optional"`
	BuildRuntimes        []string `hcl:"build_runtimes,optional"`
}

type platformBlock struct {
	Name              string   `hcl:"name,label"`
	Exclude           []string `hcl:"exclude"`
	ExcludeDependents []string `hcl:"exclude_dependents,optional"`
}

// metaBlock keeps pattern as a raw expression so wildcard segments can be
// checked value by value during translation.
type metaBlock struct {
	Pattern hcl.Expression `hcl:"pattern"`
	Project string         `hcl:"project"`
}

type skipBlock struct {
	Projects []string `hcl:"projects,optional"`
	Build    []string `hcl:"build,optional"`
}

// Load parses the HCL overlay at path and applies it on top of the built-in
// defaults. The merged configuration is validated before it is returned.
func Load(ctx context.Context, path string) (*Config, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Config overlay loading started.", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config overlay %s: %w", path, diags)
	}

	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode config overlay %s: %w", path, diags)
	}

	cfg := Default()
	if err := applyOverlay(cfg, &root); err != nil {
		return nil, fmt.Errorf("config overlay %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config overlay %s: %w", path, err)
	}

	logger.Debug("Config overlay applied.",
		"projects", len(root.Projects),
		"platforms", len(root.Platforms),
		"meta_projects", len(root.MetaProjects))
	return cfg, nil
}

// applyOverlay merges the decoded overlay into cfg.
func applyOverlay(cfg *Config, root *fileRoot) error {
	for _, block := range root.Projects {
		cfg.Projects.Add(block.Name)
		if block.Runtime != nil {
			if *block.Runtime {
				cfg.Runtimes.Add(block.Name)
			} else {
				cfg.Runtimes.Discard(block.Name)
			}
		}
		if block.CheckTarget != nil {
			if *block.CheckTarget == "" {
				delete(cfg.CheckTargets, block.Name)
			} else {
				cfg.CheckTargets[block.Name] = *block.CheckTarget
			}
		}
		applyTableEntry(cfg.Dependencies, block.Name, block.Dependencies)
		applyTableEntry(cfg.Dependents, block.Name, block.Dependents)
		applyTableEntry(cfg.RuntimesToTest, block.Name, block.TestRuntimes)
		applyTableEntry(cfg.RuntimesToTestReconfig, block.Name, block.TestRuntimesReconfig)
		applyTableEntry(cfg.RuntimesToBuild, block.Name, block.BuildRuntimes)
	}

	for _, block := range root.Platforms {
		platform := Platform(block.Name)
		switch platform {
		case Linux, Windows, Darwin:
			// recognized
		default:
			return fmt.Errorf("unknown platform %q", block.Name)
		}
		cfg.Exclusions[platform] = strset.New(block.Exclude...)
		if block.ExcludeDependents != nil {
			if platform != Windows {
				return fmt.Errorf("exclude_dependents is only supported for Windows, got %q", block.Name)
			}
			cfg.ExcludeDependentsWindows = strset.New(block.ExcludeDependents...)
		}
	}

	for _, block := range root.MetaProjects {
		pattern, err := patternSegments(block.Pattern)
		if err != nil {
			return err
		}
		cfg.MetaProjects = append(cfg.MetaProjects, MetaProject{
			Pattern: pattern,
			Project: block.Project,
		})
	}

	if root.Skip != nil {
		if root.Skip.Projects != nil {
			cfg.SkipProjects = strset.New(root.Skip.Projects...)
		}
		if root.Skip.Build != nil {
			cfg.SkipBuildProjects = strset.New(root.Skip.Build...)
		}
	}

	if root.Sentinel != nil {
		cfg.SentinelProject = *root.Sentinel
	}

	return nil
}

// applyTableEntry replaces table[key] with the given members, or removes the
// entry entirely when an explicitly empty list is given. A nil slice means
// the attribute was absent and the default entry is kept.
func applyTableEntry(table map[string]strset.Set, key string, members []string) {
	if members == nil {
		return
	}
	if len(members) == 0 {
		delete(table, key)
		return
	}
	table[key] = strset.New(members...)
}

// patternSegments evaluates a meta-project pattern expression into its
// segments. Each segment must be a non-empty string; the wildcard segment is
// an ordinary "*" string.
func patternSegments(expr hcl.Expression) ([]string, error) {
	value, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to evaluate meta_project pattern: %w", diags)
	}
	if !value.CanIterateElements() {
		return nil, fmt.Errorf("meta_project pattern must be a list of strings, got %s", value.Type().FriendlyName())
	}

	var segments []string
	for _, element := range value.AsValueSlice() {
		if element.Type() != cty.String || element.IsNull() {
			return nil, fmt.Errorf("meta_project pattern segments must be strings, got %s", element.Type().FriendlyName())
		}
		segment := element.AsString()
		if segment == "" {
			return nil, fmt.Errorf("meta_project pattern segments must not be empty")
		}
		segments = append(segments, segment)
	}
	if len(segments) == 0 {
		return nil, fmt.Errorf("meta_project pattern must not be empty")
	}
	return segments, nil
}
