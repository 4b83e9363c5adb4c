package selection

import (
	"strings"

	"github.com/vk/premerge/internal/config"
	"github.com/vk/premerge/internal/strset"
)

// ModifiedProjects resolves every changed file to its owning projects and
// returns the union.
func (r *Resolver) ModifiedProjects(files []string) strset.Set {
	modified := strset.New()
	for _, file := range files {
		modified.Update(r.projectsForFile(file))
	}
	return modified
}

// projectsForFile attributes a single changed file. Every matching
// meta-project rule contributes, and the file's first path segment is always
// added as the default attribution, even when meta rules already matched.
// A file matching a skip-entirely meta project resolves to nothing at all,
// with no fallback to the default rule.
func (r *Resolver) projectsForFile(file string) strset.Set {
	projects := strset.New()
	segments := splitPath(file)
	if len(segments) == 0 {
		return projects
	}

	for _, meta := range r.cfg.MetaProjects {
		if !patternMatches(meta.Pattern, segments) {
			continue
		}
		if r.cfg.SkipProjects.Has(meta.Project) {
			return strset.New()
		}
		projects.Add(meta.Project)
	}

	projects.Add(segments[0])
	return projects
}

// patternMatches reports whether the file path segments match the pattern as
// a prefix: the path must have at least as many segments as the pattern, and
// each pattern segment must equal the corresponding path segment or be the
// wildcard.
func patternMatches(pattern, segments []string) bool {
	if len(segments) < len(pattern) {
		return false
	}
	for i, part := range pattern {
		if part != config.Wildcard && part != segments[i] {
			return false
		}
	}
	return true
}

// splitPath breaks a platform-agnostic relative path into its segments,
// dropping empties produced by leading, trailing, or doubled separators.
func splitPath(file string) []string {
	var segments []string
	for _, segment := range strings.Split(file, "/") {
		if segment != "" {
			segments = append(segments, segment)
		}
	}
	return segments
}
