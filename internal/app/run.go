package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/vk/premerge/internal/config"
	"github.com/vk/premerge/internal/ctxlog"
	"github.com/vk/premerge/internal/selection"
)

// App computes the build and test environment for a change list. Results go
// to outW; logs go to errW so stdout stays machine-readable.
type App struct {
	outW io.Writer
	errW io.Writer
	cfg  *Config
}

// NewApp creates a new App instance.
func NewApp(outW, errW io.Writer, cfg *Config) *App {
	return &App{outW: outW, errW: errW, cfg: cfg}
}

// Run reads changed file paths from inR, one per line, resolves them for the
// configured platform, and writes the key='value' environment lines to outW.
func (a *App) Run(ctx context.Context, inR io.Reader) error {
	logger := newLogger(a.cfg.LogLevel, a.cfg.LogFormat, a.errW)
	ctx = ctxlog.WithLogger(ctx, logger)

	tables := config.Default()
	if a.cfg.OverlayPath != "" {
		var err error
		tables, err = config.Load(ctx, a.cfg.OverlayPath)
		if err != nil {
			return err
		}
		logger.Debug("Loaded configuration overlay.", "path", a.cfg.OverlayPath)
	}

	resolver, err := selection.NewResolver(tables)
	if err != nil {
		return err
	}

	files, err := readChangedFiles(inR)
	if err != nil {
		return err
	}
	logger.Debug("Read changed file list.", "count", len(files), "platform", a.cfg.Platform)

	result := resolver.Resolve(files, a.cfg.Platform)
	for _, line := range resolver.Lines(result) {
		if _, err := fmt.Fprintln(a.outW, line); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	return nil
}

// readChangedFiles reads one path per line, trimming whitespace and dropping
// blank lines.
func readChangedFiles(inR io.Reader) ([]string, error) {
	var files []string
	scanner := bufio.NewScanner(inR)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		files = append(files, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read changed files: %w", err)
	}
	return files, nil
}
