// Package selection is the core of the premerge resolver. It maps a set of
// changed file paths plus a target platform onto the projects, runtimes, and
// check targets that a CI run must build and exercise, given the tables in
// the config package.
//
// The computation is pure and synchronous: every derivation is set algebra
// over read-only configuration, working state is local to one Resolve call,
// and a Resolver is safe for concurrent use. Unknown project names match no
// table and contribute nothing, so arbitrary per-call input degrades to
// "nothing to build" rather than erroring.
package selection
