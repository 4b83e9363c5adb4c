package testreport

import (
	"encoding/xml"
	"fmt"
	"os"
	"strings"
)

// TestSuites is the root element of a JUnit XML file.
type TestSuites struct {
	XMLName xml.Name    `xml:"testsuites"`
	Suites  []TestSuite `xml:"testsuite"`
}

// TestSuite carries the aggregate counters lit writes plus the individual
// cases.
type TestSuite struct {
	Name     string     `xml:"name,attr"`
	Tests    int        `xml:"tests,attr"`
	Failures int        `xml:"failures,attr"`
	Skipped  int        `xml:"skipped,attr"`
	Cases    []TestCase `xml:"testcase"`
}

// TestCase is a single test invocation.
type TestCase struct {
	Name      string       `xml:"name,attr"`
	ClassName string       `xml:"classname,attr"`
	Failure   *CaseFailure `xml:"failure"`
	Skipped   *CaseSkipped `xml:"skipped"`
}

// ID returns the classname/name identifier used in reports and advisor
// payloads.
func (c TestCase) ID() string {
	return c.ClassName + "/" + c.Name
}

// CaseFailure holds the failure output of one test case.
type CaseFailure struct {
	Message string `xml:"message,attr"`
	Text    string `xml:",chardata"`
}

// CaseSkipped marks a skipped test case.
type CaseSkipped struct {
	Message string `xml:"message,attr"`
}

// ParseJUnit decodes one JUnit XML document. Both a <testsuites> root and a
// bare <testsuite> root are accepted.
func ParseJUnit(data []byte) ([]TestSuite, error) {
	var root TestSuites
	if err := xml.Unmarshal(data, &root); err == nil {
		return root.Suites, nil
	}

	var suite TestSuite
	if err := xml.Unmarshal(data, &suite); err != nil {
		return nil, fmt.Errorf("testreport: parse junit xml: %w", err)
	}
	return []TestSuite{suite}, nil
}

// LoadFiles splits the build log file list by extension and loads both
// kinds: .xml files parse as JUnit results, .log files load as
// whitespace-trimmed ninja log lines. Other extensions are ignored.
func LoadFiles(paths []string) ([]TestSuite, [][]string, error) {
	var suites []TestSuite
	var ninjaLogs [][]string

	for _, path := range paths {
		switch {
		case strings.HasSuffix(path, ".xml"):
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, nil, fmt.Errorf("testreport: read %s: %w", path, err)
			}
			parsed, err := ParseJUnit(data)
			if err != nil {
				return nil, nil, fmt.Errorf("testreport: %s: %w", path, err)
			}
			suites = append(suites, parsed...)
		case strings.HasSuffix(path, ".log"):
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, nil, fmt.Errorf("testreport: read %s: %w", path, err)
			}
			lines := strings.Split(string(data), "\n")
			for i, line := range lines {
				lines[i] = strings.TrimSpace(line)
			}
			ninjaLogs = append(ninjaLogs, lines)
		}
	}

	return suites, ninjaLogs, nil
}
