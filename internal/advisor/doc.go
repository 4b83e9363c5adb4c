// Package advisor reports build and test failures to the premerge advisor
// service so later runs can distinguish pre-existing breakage from new
// regressions.
package advisor
