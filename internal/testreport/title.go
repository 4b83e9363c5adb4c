package testreport

import (
	"fmt"
	"runtime"
	"strings"
)

// PlatformTitle renders the report heading for the host platform.
func PlatformTitle() string {
	return platformTitle(runtime.GOOS, runtime.GOARCH)
}

func platformTitle(goos, goarch string) string {
	logo := ":penguin:"
	if goos == "windows" {
		logo = ":window:"
	}

	system := strings.ToUpper(goos[:1]) + goos[1:]

	arch := goarch
	if arch == "amd64" {
		arch = "x64"
	}

	return fmt.Sprintf("%s %s %s Test Results", logo, system, arch)
}
