package testreport

import "strings"

// ninjaLogSizeThreshold caps the number of lines kept for a single failing
// action so one pathological compile error cannot swamp the report.
const ninjaLogSizeThreshold = 500

// BuildFailure is one failing ninja action together with its captured
// output.
type BuildFailure struct {
	Action string
	Output string
}

// FindNinjaFailures extracts the failing actions from a batch of ninja logs.
func FindNinjaFailures(logs [][]string) []BuildFailure {
	var failures []BuildFailure
	for _, log := range logs {
		failures = append(failures, parseNinjaLog(log)...)
	}
	return failures
}

// parseNinjaLog scans a single log. An action's output runs from its
// FAILED: line up to the next progress line ("[") or a "ninja: build
// stopped:" marker. Failures reported by a sub-ninja appear twice, so the
// echo directly after a build-stopped line is dropped.
func parseNinjaLog(log []string) []BuildFailure {
	var failures []BuildFailure
	index := 0

	for index < len(log) {
		for index < len(log) && !strings.HasPrefix(log[index], "FAILED:") {
			index++
		}
		if index >= len(log) {
			break
		}

		if index > 0 && strings.HasPrefix(log[index-1], "ninja: build stopped:") {
			index++
			continue
		}

		parts := strings.SplitN(log[index], "FAILED: ", 2)
		if len(parts) < 2 {
			index++
			continue
		}
		action := parts[1]

		var output []string
		for index < len(log) &&
			!strings.HasPrefix(log[index], "[") &&
			!strings.HasPrefix(log[index], "ninja: build stopped:") &&
			len(output) < ninjaLogSizeThreshold {
			output = append(output, log[index])
			index++
		}

		failures = append(failures, BuildFailure{
			Action: action,
			Output: strings.Join(output, "\n"),
		})
	}

	return failures
}
