package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/premerge/internal/strset"
)

func TestDefaultValidates(t *testing.T) {
	t.Parallel()

	require.NoError(t, Default().Validate())
}

func TestDefaultClassifications(t *testing.T) {
	t.Parallel()

	cfg := Default()
	assert.True(t, cfg.Runtimes.Has("libcxx"))
	assert.False(t, cfg.Runtimes.Has("clang"))
	assert.Equal(t, "check-clang-cir", cfg.CheckTargets["CIR"])
	assert.Equal(t, "CIR", cfg.SentinelProject)
	assert.True(t, cfg.SkipProjects.Has("docs"))
	assert.True(t, cfg.SkipBuildProjects.Has("lit"))
}

func TestValidateRejectsUnknownReferences(t *testing.T) {
	t.Parallel()

	t.Run("dependency member", func(t *testing.T) {
		cfg := Default()
		cfg.Dependencies["clang"].Add("no-such-project")
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no-such-project")
	})

	t.Run("table key", func(t *testing.T) {
		cfg := Default()
		cfg.Dependents["no-such-project"] = strset.New("clang")
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no-such-project")
	})

	t.Run("exclusion member", func(t *testing.T) {
		cfg := Default()
		cfg.Exclusions[Windows].Add("no-such-project")
		require.Error(t, cfg.Validate())
	})

	t.Run("meta project target", func(t *testing.T) {
		cfg := Default()
		cfg.MetaProjects = append(cfg.MetaProjects, MetaProject{
			Pattern: []string{"tools"},
			Project: "no-such-project",
		})
		require.Error(t, cfg.Validate())
	})

	t.Run("sentinel", func(t *testing.T) {
		cfg := Default()
		cfg.SentinelProject = "no-such-project"
		require.Error(t, cfg.Validate())
	})

	t.Run("empty universe", func(t *testing.T) {
		cfg := &Config{Projects: strset.New()}
		require.Error(t, cfg.Validate())
	})
}

func writeOverlay(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "overlay.hcl")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoadOverlay(t *testing.T) {
	t.Parallel()

	path := writeOverlay(t, `
project "pstl" {
  runtime      = true
  check_target = "check-pstl"
}

project "clang" {
  dependents = ["clang-tools-extra"]
}

platform "Windows" {
  exclude            = ["bolt"]
  exclude_dependents = ["flang", "lldb"]
}

meta_project {
  pattern = ["llvm", "utils", "*", "docs"]
  project = "docs"
}
`)

	cfg, err := Load(context.Background(), path)
	require.NoError(t, err)

	assert.True(t, cfg.Projects.Has("pstl"))
	assert.True(t, cfg.Runtimes.Has("pstl"))
	assert.Equal(t, "check-pstl", cfg.CheckTargets["pstl"])

	// Replaced wholesale, not merged.
	assert.Equal(t, []string{"clang-tools-extra"}, cfg.Dependents["clang"].Sorted())
	assert.Equal(t, []string{"bolt"}, cfg.Exclusions[Windows].Sorted())
	assert.Equal(t, []string{"flang", "lldb"}, cfg.ExcludeDependentsWindows.Sorted())

	// Untouched defaults survive.
	assert.Equal(t, "check-llvm", cfg.CheckTargets["llvm"])
	require.NotEmpty(t, cfg.MetaProjects)
	last := cfg.MetaProjects[len(cfg.MetaProjects)-1]
	assert.Equal(t, []string{"llvm", "utils", "*", "docs"}, last.Pattern)
	assert.Equal(t, "docs", last.Project)
}

func TestLoadOverlayErrors(t *testing.T) {
	t.Parallel()

	t.Run("syntax error", func(t *testing.T) {
		path := writeOverlay(t, `project "clang" {`)
		_, err := Load(context.Background(), path)
		require.Error(t, err)
	})

	t.Run("unknown platform", func(t *testing.T) {
		path := writeOverlay(t, `
platform "Plan9" {
  exclude = []
}
`)
		_, err := Load(context.Background(), path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Plan9")
	})

	t.Run("exclude_dependents outside Windows", func(t *testing.T) {
		path := writeOverlay(t, `
platform "Linux" {
  exclude            = []
  exclude_dependents = ["flang"]
}
`)
		_, err := Load(context.Background(), path)
		require.Error(t, err)
	})

	t.Run("overlay breaking integrity", func(t *testing.T) {
		path := writeOverlay(t, `
project "clang" {
  dependencies = ["not-a-project"]
}
`)
		_, err := Load(context.Background(), path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not-a-project")
	})

	t.Run("non-string pattern segment", func(t *testing.T) {
		path := writeOverlay(t, `
meta_project {
  pattern = ["llvm", 42]
  project = "docs"
}
`)
		_, err := Load(context.Background(), path)
		require.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(context.Background(), filepath.Join(t.TempDir(), "absent.hcl"))
		require.Error(t, err)
	})
}
