package app

import (
	"errors"

	"github.com/vk/premerge/internal/config"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// Platform selects the per-platform exclusion set.
	Platform config.Platform

	// OverlayPath optionally points at an HCL file overriding the built-in
	// tables. Empty means built-ins only.
	OverlayPath string

	LogFormat string
	LogLevel  string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.Platform == "" {
		return nil, errors.New("Platform is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}
