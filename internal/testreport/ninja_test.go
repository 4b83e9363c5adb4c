package testreport

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindNinjaFailuresSingle(t *testing.T) {
	t.Parallel()

	failures := FindNinjaFailures([][]string{
		{
			"[1/5] test/1.stamp",
			"[2/5] test/2.stamp",
			"[3/5] test/3.stamp",
			"[4/5] test/4.stamp",
			"FAILED: touch test/4.stamp",
			"Wow! This system is really broken!",
			"[5/5] test/5.stamp",
		},
	})

	require.Len(t, failures, 1)
	assert.Equal(t, "touch test/4.stamp", failures[0].Action)
	assert.Equal(t, "FAILED: touch test/4.stamp\nWow! This system is really broken!", failures[0].Output)
}

func TestFindNinjaFailuresNone(t *testing.T) {
	t.Parallel()

	failures := FindNinjaFailures([][]string{
		{
			"[1/3] test/1.stamp",
			"[2/3] test/2.stamp",
			"[3/3] test/3.stamp",
		},
	})
	assert.Empty(t, failures)
}

func TestFindNinjaFailuresMultiple(t *testing.T) {
	t.Parallel()

	failures := FindNinjaFailures([][]string{
		{
			"[1/5] test/1.stamp",
			"[2/5] test/2.stamp",
			"FAILED: touch test/2.stamp",
			"First failure!",
			"[3/5] test/3.stamp",
			"[4/5] test/4.stamp",
			"FAILED: touch test/4.stamp",
			"Second failure!",
			"[5/5] test/5.stamp",
		},
	})

	require.Len(t, failures, 2)
	assert.Equal(t, "touch test/2.stamp", failures[0].Action)
	assert.Equal(t, "touch test/4.stamp", failures[1].Action)
}

func TestFindNinjaFailuresSkipsSubNinjaEcho(t *testing.T) {
	t.Parallel()

	failures := FindNinjaFailures([][]string{
		{
			"[1/2] build foo",
			"FAILED: foo.o",
			"real compiler error",
			"ninja: build stopped: subcommand failed.",
			"FAILED: foo.o",
			"echoed by outer ninja",
		},
	})

	require.Len(t, failures, 1)
	assert.Equal(t, "foo.o", failures[0].Action)
	assert.Contains(t, failures[0].Output, "real compiler error")
}

func TestFindNinjaFailuresCapsOutput(t *testing.T) {
	t.Parallel()

	log := []string{"FAILED: huge.o"}
	for i := 0; i < 2*ninjaLogSizeThreshold; i++ {
		log = append(log, fmt.Sprintf("error line %d", i))
	}

	failures := FindNinjaFailures([][]string{log})
	require.Len(t, failures, 1)
	// The FAILED line itself counts against the cap.
	assert.Contains(t, failures[0].Output, "error line 0")
	assert.NotContains(t, failures[0].Output, fmt.Sprintf("error line %d", ninjaLogSizeThreshold))
}
