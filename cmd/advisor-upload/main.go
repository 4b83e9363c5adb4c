package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/vk/premerge/internal/advisor"
	"github.com/vk/premerge/internal/cli"
	"github.com/vk/premerge/internal/ctxlog"
	"github.com/vk/premerge/internal/testreport"
)

// main is the entrypoint for the advisor-upload command.
func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := run(os.Stdout, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(outW io.Writer, args []string) error {
	flagSet := flag.NewFlagSet("advisor-upload", flag.ContinueOnError)
	flagSet.SetOutput(outW)

	flagSet.Usage = func() {
		fmt.Fprint(outW, `
advisor-upload - Report build and test failures to the premerge advisor.

Usage:
  advisor-upload [options] <commit_sha> <workflow_run_number> [build_log_files...]

Options:
`)
		flagSet.PrintDefaults()
	}

	urlsFlag := flagSet.String("urls", "",
		"Comma-separated advisor endpoints. Defaults to the production instances.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return &cli.ExitError{Code: 2, Message: err.Error()}
	}
	if flagSet.NArg() < 2 {
		flagSet.Usage()
		return &cli.ExitError{Code: 1, Message: "expected a commit SHA and a workflow run number"}
	}
	commitSHA := flagSet.Arg(0)
	runNumber := flagSet.Arg(1)
	logFiles := flagSet.Args()[2:]

	if advisor.SkipHost() {
		slog.Info("Skipping advisor upload on this architecture.")
		return nil
	}

	// A .env file is optional; the real CI injects the variables directly.
	_ = godotenv.Load()

	suites, ninjaLogs, err := testreport.LoadFiles(logFiles)
	if err != nil {
		return err
	}

	var urls []string
	if *urlsFlag != "" {
		urls = strings.Split(*urlsFlag, ",")
	}

	ctx := ctxlog.WithLogger(context.Background(), slog.Default())
	payload := advisor.BuildPayload(commitSHA, runNumber, suites, ninjaLogs)
	return advisor.NewClient(urls).Upload(ctx, payload)
}
