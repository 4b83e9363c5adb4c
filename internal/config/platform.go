package config

import (
	"fmt"
	"runtime"
	"strings"
)

// ParsePlatform canonicalizes a platform name. Lowercase GOOS-style names
// are accepted alongside the canonical forms.
func ParsePlatform(name string) (Platform, error) {
	for _, platform := range Platforms {
		if strings.EqualFold(name, string(platform)) {
			return platform, nil
		}
	}
	return "", fmt.Errorf("config: unknown platform %q, expected one of Linux, Windows, Darwin", name)
}

// HostPlatform maps the host OS to its canonical platform name. Unrecognized
// hosts resolve as Linux.
func HostPlatform() Platform {
	switch runtime.GOOS {
	case "windows":
		return Windows
	case "darwin":
		return Darwin
	default:
		return Linux
	}
}
