package testreport

import (
	"fmt"
	"strings"
)

const (
	seeBuildFileStr = "Download the build's log file to see the details."

	unrelatedFailuresStr = "If these failures are unrelated to your changes (for example " +
		"tests are broken or flaky at HEAD), please open an issue at " +
		"https://github.com/llvm/llvm-project/issues and add the " +
		"`infrastructure` label."

	// DefaultSizeLimit is the largest report the CI comment surface accepts.
	DefaultSizeLimit = 1024 * 1024
)

// FailureExplanation is the advisor's verdict on one known failure.
type FailureExplanation struct {
	Name      string `json:"name"`
	Explained bool   `json:"explained"`
	Reason    string `json:"reason,omitempty"`
}

// TestFailure is one failing test case.
type TestFailure struct {
	ID     string
	Output string
}

// SuiteFailures groups the failing cases of one suite, preserving input
// order so report output is deterministic.
type SuiteFailures struct {
	Suite    string
	Failures []TestFailure
}

// GetTestFailures collects the failing cases of every suite.
func GetTestFailures(suites []TestSuite) []SuiteFailures {
	var grouped []SuiteFailures
	for _, suite := range suites {
		var failures []TestFailure
		for _, testCase := range suite.Cases {
			if testCase.Failure == nil {
				continue
			}
			failures = append(failures, TestFailure{
				ID:     testCase.ID(),
				Output: testCase.Failure.Text,
			})
		}
		if len(failures) > 0 {
			grouped = append(grouped, SuiteFailures{Suite: suite.Name, Failures: failures})
		}
	}
	return grouped
}

// Options tunes report generation. The zero value means the default size
// limit, listed failures, and no explanations.
type Options struct {
	SizeLimit    int
	Explanations []FailureExplanation
}

// Generate renders the markdown report for one build.
func Generate(title string, returnCode int, suites []TestSuite, ninjaLogs [][]string, opts Options) string {
	if opts.SizeLimit == 0 {
		opts.SizeLimit = DefaultSizeLimit
	}

	explained := make(map[string]FailureExplanation, len(opts.Explanations))
	for _, explanation := range opts.Explanations {
		if explanation.Explained {
			explained[explanation.Name] = explanation
		}
	}

	report := generate(title, returnCode, suites, ninjaLogs, explained, true)
	if len(report) > opts.SizeLimit {
		// Retry with the failure bodies elided.
		report = generate(title, returnCode, suites, ninjaLogs, explained, false)
	}
	return report
}

func generate(title string, returnCode int, suites []TestSuite, ninjaLogs [][]string, explained map[string]FailureExplanation, listFailures bool) string {
	var testsRun, testsSkipped, testsFailed int
	for _, suite := range suites {
		testsRun += suite.Tests
		testsSkipped += suite.Skipped
		testsFailed += suite.Failures
	}

	report := []string{"# " + title, ""}

	if testsRun == 0 {
		if returnCode == 0 {
			report = append(report,
				"The build succeeded and no tests ran. This is expected in some build configurations.")
		} else {
			failures := FindNinjaFailures(ninjaLogs)
			if len(failures) == 0 {
				report = append(report,
					"The build failed before running any tests. Detailed "+
						"information about the build failure could not be automatically obtained.",
					"",
					seeBuildFileStr,
					"",
					unrelatedFailuresStr,
				)
			} else {
				report = append(report,
					"The build failed before running any tests. Click on a failure below to see the details.",
					"",
				)
				report = append(report, ninjaFailuresSection(failures, explained)...)
				report = append(report, "", unrelatedFailuresStr)
			}
		}
		return strings.Join(report, "\n")
	}

	report = append(report, summarySection(testsRun, testsSkipped, testsFailed)...)

	testFailures := GetTestFailures(suites)

	switch {
	case !listFailures:
		report = append(report,
			"",
			"Failed tests and their output was too large to report. "+seeBuildFileStr,
		)
	case len(testFailures) > 0:
		report = append(report, failuresSection(testFailures, explained)...)
	case returnCode != 0:
		// Every test passed but some other build step failed.
		failures := FindNinjaFailures(ninjaLogs)
		if len(failures) == 0 {
			report = append(report,
				"",
				"All tests passed but another part of the build **failed**. "+
					"Information about the build failure could not be automatically obtained.",
				"",
				seeBuildFileStr,
			)
		} else {
			report = append(report,
				"",
				"All tests passed but another part of the build **failed**. "+
					"Click on a failure below to see the details.",
				"",
			)
			report = append(report, ninjaFailuresSection(failures, explained)...)
		}
	}

	if len(testFailures) > 0 || returnCode != 0 {
		report = append(report, "", unrelatedFailuresStr)
	}

	return strings.Join(report, "\n")
}

func summarySection(testsRun, testsSkipped, testsFailed int) []string {
	plural := func(count int) string {
		if count == 1 {
			return "test"
		}
		return "tests"
	}

	var summary []string
	if passed := testsRun - testsSkipped - testsFailed; passed > 0 {
		summary = append(summary, fmt.Sprintf("* %d %s passed", passed, plural(passed)))
	}
	if testsSkipped > 0 {
		summary = append(summary, fmt.Sprintf("* %d %s skipped", testsSkipped, plural(testsSkipped)))
	}
	if testsFailed > 0 {
		summary = append(summary, fmt.Sprintf("* %d %s failed", testsFailed, plural(testsFailed)))
	}
	return summary
}

func failuresSection(grouped []SuiteFailures, explained map[string]FailureExplanation) []string {
	section := []string{"", "## Failed Tests", "(click on a test name to see its output)"}
	for _, suite := range grouped {
		section = append(section, "", "### "+suite.Suite)
		for _, failure := range suite.Failures {
			section = append(section, failureDetails(failure.ID, failure.Output, explained)...)
		}
	}
	return section
}

func ninjaFailuresSection(failures []BuildFailure, explained map[string]FailureExplanation) []string {
	var section []string
	for _, failure := range failures {
		section = append(section, failureDetails(failure.Action, failure.Output, explained)...)
	}
	return section
}

// failureDetails renders one collapsible failure block, annotated when the
// advisor already knows the failure from HEAD.
func failureDetails(name, output string, explained map[string]FailureExplanation) []string {
	details := []string{"<details>"}
	if explanation, ok := explained[name]; ok {
		details = append(details,
			fmt.Sprintf("<summary>%s (Likely Already Failing)</summary>", name),
			"",
			explanation.Reason,
			"",
		)
	} else {
		details = append(details, fmt.Sprintf("<summary>%s</summary>", name), "")
	}
	details = append(details,
		"```",
		output,
		"```",
		"</details>",
	)
	return details
}
