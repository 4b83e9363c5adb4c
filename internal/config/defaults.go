package config

import "github.com/vk/premerge/internal/strset"

// Default returns the built-in tables for the LLVM monorepo premerge
// pipeline. The returned Config validates cleanly; callers that apply
// overlays must re-run Validate themselves.
func Default() *Config {
	return &Config{
		Projects: strset.New(
			".ci",
			"CIR",
			"bolt",
			"clang",
			"clang-tools-extra",
			"compiler-rt",
			"cross-project-tests",
			"docs",
			"flang",
			"flang-rt",
			"gn",
			"libc",
			"libclc",
			"libcxx",
			"libcxxabi",
			"libunwind",
			"lit",
			"lld",
			"lldb",
			"llvm",
			"mlir",
			"openmp",
			"polly",
		),

		Runtimes: strset.New(
			"compiler-rt",
			"flang-rt",
			"libc",
			"libcxx",
			"libcxxabi",
			"libunwind",
		),

		Dependencies: map[string]strset.Set{
			"CIR":               strset.New("clang", "mlir"),
			"bolt":              strset.New("clang", "lld", "llvm"),
			"clang":             strset.New("llvm"),
			"clang-tools-extra": strset.New("clang", "llvm"),
			"compiler-rt":       strset.New("clang", "lld"),
			"flang":             strset.New("clang", "llvm"),
			"flang-rt":          strset.New("flang"),
			"libc":              strset.New("clang", "lld"),
			"libclc":            strset.New("clang", "llvm"),
			"lld":               strset.New("llvm"),
			"lldb":              strset.New("clang", "llvm"),
			"mlir":              strset.New("llvm"),
			"openmp":            strset.New("clang", "lld"),
			"polly":             strset.New("llvm"),
		},

		Dependents: map[string]strset.Set{
			"llvm": strset.New(
				"bolt", "clang", "clang-tools-extra", "flang", "lld",
				"lldb", "mlir", "polly",
			),
			"clang": strset.New("clang-tools-extra", "cross-project-tests", "lldb"),
			"lld":   strset.New("bolt", "cross-project-tests"),
			"mlir":  strset.New("flang"),
			// A change to the CI scripts themselves retests everything.
			".ci": strset.New(
				"CIR", "bolt", "clang", "clang-tools-extra", "flang",
				"libclc", "lld", "lldb", "llvm", "mlir", "polly",
			),
		},

		RuntimesToTest: map[string]strset.Set{
			"clang":             strset.New("compiler-rt"),
			"clang-tools-extra": strset.New("libc"),
			"compiler-rt":       strset.New("compiler-rt"),
			"flang":             strset.New("flang-rt"),
			"libc":              strset.New("libc"),
			".ci":               strset.New("compiler-rt", "flang-rt", "libc"),
		},

		RuntimesToTestReconfig: map[string]strset.Set{
			"llvm":  strset.New("libcxx", "libcxxabi", "libunwind"),
			"clang": strset.New("libcxx", "libcxxabi", "libunwind"),
			".ci":   strset.New("libcxx", "libcxxabi", "libunwind"),
		},

		RuntimesToBuild: map[string]strset.Set{
			// LLDB links the runtimes into its test binaries but does not
			// run their check targets.
			"lldb": strset.New("libcxx", "libcxxabi", "libunwind"),
		},

		CheckTargets: map[string]string{
			"CIR":                 "check-clang-cir",
			"bolt":                "check-bolt",
			"clang":               "check-clang",
			"clang-tools-extra":   "check-clang-tools",
			"compiler-rt":         "check-compiler-rt",
			"cross-project-tests": "check-cross-project-tests",
			"flang":               "check-flang",
			"flang-rt":            "check-flang-rt",
			"libc":                "check-libc",
			"libcxx":              "check-cxx",
			"libcxxabi":           "check-cxxabi",
			"libunwind":           "check-unwind",
			"lit":                 "check-lit",
			"lld":                 "check-lld",
			"lldb":                "check-lldb",
			"llvm":                "check-llvm",
			"mlir":                "check-mlir",
			"openmp":              "check-openmp",
			"polly":               "check-polly",
		},

		Exclusions: map[Platform]strset.Set{
			Linux: strset.New("cross-project-tests", "openmp"),
			Windows: strset.New(
				"bolt", "cross-project-tests", "flang-rt", "libc",
				"libcxx", "libcxxabi", "libunwind", "lldb", "openmp",
			),
			Darwin: strset.New(
				"bolt", "compiler-rt", "cross-project-tests", "flang",
				"flang-rt", "libc", "libcxx", "libcxxabi", "libunwind",
				"lldb", "openmp", "polly",
			),
		},

		// Flang tests are unstable under the Windows toolchain, so flang is
		// dropped from dependents there while remaining buildable.
		ExcludeDependentsWindows: strset.New("flang"),

		MetaProjects: []MetaProject{
			{Pattern: []string{"clang", "lib", "CIR"}, Project: "CIR"},
			{Pattern: []string{"clang", "test", "CIR"}, Project: "CIR"},
			{Pattern: []string{"clang", "include", "clang", "CIR"}, Project: "CIR"},
			{Pattern: []string{"llvm", "docs"}, Project: "docs"},
			{Pattern: []string{"llvm", "utils", "gn"}, Project: "gn"},
			{Pattern: []string{"llvm", "utils", "lit"}, Project: "lit"},
			{Pattern: []string{".github", "workflows", "premerge.yaml"}, Project: ".ci"},
			{Pattern: []string{"third-party"}, Project: ".ci"},
		},

		SkipProjects: strset.New("docs", "gn"),

		// CIR is built as part of clang, and lit needs no build step at all.
		SkipBuildProjects: strset.New("CIR", "docs", "gn", "lit"),

		SentinelProject: "CIR",
	}
}
