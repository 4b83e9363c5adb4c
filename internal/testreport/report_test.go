package testreport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func joinLines(lines ...string) string {
	return strings.Join(lines, "\n")
}

func TestGenerateTitleOnlySuccess(t *testing.T) {
	t.Parallel()

	report := Generate("Foo", 0, nil, nil, Options{})
	assert.Equal(t, joinLines(
		"# Foo",
		"",
		"The build succeeded and no tests ran. This is expected in some build configurations.",
	), report)
}

func TestGenerateTitleOnlyFailure(t *testing.T) {
	t.Parallel()

	report := Generate("Foo", 1, nil, nil, Options{})
	assert.Equal(t, joinLines(
		"# Foo",
		"",
		"The build failed before running any tests. Detailed information "+
			"about the build failure could not be automatically obtained.",
		"",
		seeBuildFileStr,
		"",
		unrelatedFailuresStr,
	), report)
}

func TestGenerateBuildFailureWithNinjaLog(t *testing.T) {
	t.Parallel()

	ninjaLogs := [][]string{
		{
			"[1/5] test/1.stamp",
			"[4/5] test/4.stamp",
			"FAILED: touch test/4.stamp",
			"Wow! This system is really broken!",
		},
	}

	report := Generate("Foo", 1, nil, ninjaLogs, Options{})
	assert.Equal(t, joinLines(
		"# Foo",
		"",
		"The build failed before running any tests. Click on a failure below to see the details.",
		"",
		"<details>",
		"<summary>touch test/4.stamp</summary>",
		"",
		"```",
		"FAILED: touch test/4.stamp\nWow! This system is really broken!",
		"```",
		"</details>",
		"",
		unrelatedFailuresStr,
	), report)
}

func TestGeneratePassingTests(t *testing.T) {
	t.Parallel()

	suites := []TestSuite{
		{
			Name:  "Bar",
			Tests: 2,
			Cases: []TestCase{
				{Name: "test_1", ClassName: "Bar"},
				{Name: "test_2", ClassName: "Bar"},
			},
		},
	}

	report := Generate("Foo", 0, suites, nil, Options{})
	assert.Equal(t, joinLines(
		"# Foo",
		"",
		"* 2 tests passed",
	), report)
}

func TestGeneratePassingAndSkippedTests(t *testing.T) {
	t.Parallel()

	suites := []TestSuite{
		{
			Name:    "Bar",
			Tests:   2,
			Skipped: 1,
			Cases: []TestCase{
				{Name: "test_1", ClassName: "Bar"},
				{Name: "test_2", ClassName: "Bar", Skipped: &CaseSkipped{Message: "Skipping this test"}},
			},
		},
	}

	report := Generate("Foo", 0, suites, nil, Options{})
	assert.Equal(t, joinLines(
		"# Foo",
		"",
		"* 1 test passed",
		"* 1 test skipped",
	), report)
}

func TestGenerateFailingTests(t *testing.T) {
	t.Parallel()

	suites := []TestSuite{
		{
			Name:     "Bar",
			Tests:    2,
			Failures: 1,
			Cases: []TestCase{
				{Name: "test_1", ClassName: "Bar"},
				{
					Name:      "test_2",
					ClassName: "Bar",
					Failure:   &CaseFailure{Text: "Output goes here"},
				},
			},
		},
	}

	report := Generate("Foo", 1, suites, nil, Options{})
	assert.Equal(t, joinLines(
		"# Foo",
		"",
		"* 1 test passed",
		"* 1 test failed",
		"",
		"## Failed Tests",
		"(click on a test name to see its output)",
		"",
		"### Bar",
		"<details>",
		"<summary>Bar/test_2</summary>",
		"",
		"```",
		"Output goes here",
		"```",
		"</details>",
		"",
		unrelatedFailuresStr,
	), report)
}

func TestGenerateTestsPassedBuildFailed(t *testing.T) {
	t.Parallel()

	suites := []TestSuite{
		{
			Name:  "Bar",
			Tests: 1,
			Cases: []TestCase{{Name: "test_1", ClassName: "Bar"}},
		},
	}

	report := Generate("Foo", 1, suites, nil, Options{})
	assert.Equal(t, joinLines(
		"# Foo",
		"",
		"* 1 test passed",
		"",
		"All tests passed but another part of the build **failed**. "+
			"Information about the build failure could not be automatically obtained.",
		"",
		seeBuildFileStr,
		"",
		unrelatedFailuresStr,
	), report)
}

func TestGenerateTestsPassedBuildFailedWithNinjaLog(t *testing.T) {
	t.Parallel()

	suites := []TestSuite{
		{
			Name:  "Bar",
			Tests: 1,
			Cases: []TestCase{{Name: "test_1", ClassName: "Bar"}},
		},
	}
	ninjaLogs := [][]string{
		{
			"FAILED: touch test/4.stamp",
			"Wow! This system is really broken!",
		},
	}

	report := Generate("Foo", 1, suites, ninjaLogs, Options{})
	assert.Contains(t, report, "* 1 test passed")
	assert.Contains(t, report,
		"All tests passed but another part of the build **failed**. "+
			"Click on a failure below to see the details.")
	assert.Contains(t, report, "<summary>touch test/4.stamp</summary>")
	assert.Contains(t, report, unrelatedFailuresStr)
}

func TestGenerateSizeLimit(t *testing.T) {
	t.Parallel()

	suites := []TestSuite{
		{
			Name:     "Bar",
			Tests:    1,
			Failures: 1,
			Cases: []TestCase{
				{
					Name:      "test_1",
					ClassName: "Bar",
					Failure:   &CaseFailure{Text: strings.Repeat("f", 1000)},
				},
			},
		},
	}

	report := Generate("Foo", 1, suites, nil, Options{SizeLimit: 512})
	assert.Equal(t, joinLines(
		"# Foo",
		"",
		"* 1 test failed",
		"",
		"Failed tests and their output was too large to report. "+seeBuildFileStr,
		"",
		unrelatedFailuresStr,
	), report)
}

func TestGenerateExplainedFailure(t *testing.T) {
	t.Parallel()

	suites := []TestSuite{
		{
			Name:     "Bar",
			Tests:    2,
			Failures: 2,
			Cases: []TestCase{
				{
					Name:      "test_1",
					ClassName: "Bar",
					Failure:   &CaseFailure{Text: "Output goes here"},
				},
				{
					Name:      "test_2",
					ClassName: "Bar",
					Failure:   &CaseFailure{Text: "Other output"},
				},
			},
		},
	}
	explanations := []FailureExplanation{
		{Name: "Bar/test_1", Explained: true, Reason: "This is a known issue"},
		{Name: "Bar/test_2", Explained: false, Reason: "ignored because unexplained"},
	}

	report := Generate("Foo", 1, suites, nil, Options{Explanations: explanations})
	assert.Contains(t, report, "<summary>Bar/test_1 (Likely Already Failing)</summary>")
	assert.Contains(t, report, "This is a known issue")
	assert.Contains(t, report, "<summary>Bar/test_2</summary>")
	assert.NotContains(t, report, "Bar/test_2 (Likely Already Failing)")
	assert.NotContains(t, report, "ignored because unexplained")
}

func TestGetTestFailures(t *testing.T) {
	t.Parallel()

	suites := []TestSuite{
		{
			Name:  "Passing",
			Tests: 1,
			Cases: []TestCase{{Name: "ok", ClassName: "Passing"}},
		},
		{
			Name:     "Bar",
			Tests:    2,
			Failures: 1,
			Cases: []TestCase{
				{Name: "test_1", ClassName: "Bar"},
				{Name: "test_2", ClassName: "Bar", Failure: &CaseFailure{Text: "boom"}},
			},
		},
	}

	grouped := GetTestFailures(suites)
	require.Len(t, grouped, 1)
	assert.Equal(t, "Bar", grouped[0].Suite)
	require.Len(t, grouped[0].Failures, 1)
	assert.Equal(t, "Bar/test_2", grouped[0].Failures[0].ID)
	assert.Equal(t, "boom", grouped[0].Failures[0].Output)
}

func TestLoadFilesEndToEnd(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	junitPath := filepath.Join(dir, "results.xml")
	require.NoError(t, os.WriteFile(junitPath, []byte(`<?xml version="1.0" encoding="UTF-8"?>
<testsuites time="0.00">
<testsuite name="Bar" tests="2" failures="1" skipped="0" time="0.00">
<testcase classname="Bar" name="test_1" time="0.01"/>
<testcase classname="Bar" name="test_2" time="0.01">
<failure message="failed"><![CDATA[Output goes here]]></failure>
</testcase>
</testsuite>
</testsuites>
`), 0o644))

	ninjaPath := filepath.Join(dir, "build.log")
	require.NoError(t, os.WriteFile(ninjaPath, []byte(
		"[1/2] touch test/1.stamp\nFAILED: touch test/2.stamp\nbroken\n"), 0o644))

	suites, ninjaLogs, err := LoadFiles([]string{junitPath, ninjaPath, filepath.Join(dir, "ignored.txt")})
	require.NoError(t, err)

	require.Len(t, suites, 1)
	assert.Equal(t, "Bar", suites[0].Name)
	assert.Equal(t, 2, suites[0].Tests)
	assert.Equal(t, 1, suites[0].Failures)

	require.Len(t, ninjaLogs, 1)
	assert.Contains(t, ninjaLogs[0], "FAILED: touch test/2.stamp")

	report := Generate("Foo", 1, suites, ninjaLogs, Options{})
	assert.Contains(t, report, "* 1 test passed")
	assert.Contains(t, report, "* 1 test failed")
	assert.Contains(t, report, "<summary>Bar/test_2</summary>")
	assert.Contains(t, report, "Output goes here")
}

func TestParseJUnitBareSuite(t *testing.T) {
	t.Parallel()

	suites, err := ParseJUnit([]byte(`<testsuite name="Solo" tests="1" failures="0" skipped="0">
<testcase classname="Solo" name="only"/>
</testsuite>`))
	require.NoError(t, err)
	require.Len(t, suites, 1)
	assert.Equal(t, "Solo", suites[0].Name)
}

func TestPlatformTitle(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ":penguin: Linux x64 Test Results", platformTitle("linux", "amd64"))
	assert.Equal(t, ":window: Windows x64 Test Results", platformTitle("windows", "amd64"))
	assert.Equal(t, ":penguin: Linux arm64 Test Results", platformTitle("linux", "arm64"))
}
