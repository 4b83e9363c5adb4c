// Package config holds the declarative tables that drive target resolution:
// the project universe, the build-dependency graph, the test-dependents
// tables, runtime classification, per-platform exclusions, meta-project path
// aliases, and the skip sets. The tables are immutable once loaded; the
// resolver never mutates them.
//
// Default returns the built-in tables for the LLVM monorepo. An optional HCL
// overlay file can replace or extend individual entries, loaded with the
// same hclparse/gohcl stack used for the rest of the configuration surface.
package config
