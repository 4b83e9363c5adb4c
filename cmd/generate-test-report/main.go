package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/vk/premerge/internal/cli"
	"github.com/vk/premerge/internal/testreport"
)

// main is the entrypoint for the generate-test-report command.
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
	flagSet := flag.NewFlagSet("generate-test-report", flag.ContinueOnError)
	flagSet.SetOutput(outW)

	flagSet.Usage = func() {
		fmt.Fprint(outW, `
generate-test-report - Render a markdown build report from JUnit results and ninja logs.

Usage:
  generate-test-report [options] <return_code> [build_test_logs...]

Options:
`)
		flagSet.PrintDefaults()
	}

	explanationsFlag := flagSet.String("explanations", "",
		"Path to a JSON file of advisor failure explanations.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return &cli.ExitError{Code: 2, Message: err.Error()}
	}
	if flagSet.NArg() < 1 {
		flagSet.Usage()
		return &cli.ExitError{Code: 1, Message: "expected the build's return code as the first argument"}
	}

	returnCode, err := strconv.Atoi(flagSet.Arg(0))
	if err != nil {
		return &cli.ExitError{Code: 1, Message: fmt.Sprintf("invalid return code %q", flagSet.Arg(0))}
	}

	suites, ninjaLogs, err := testreport.LoadFiles(flagSet.Args()[1:])
	if err != nil {
		return err
	}

	var opts testreport.Options
	if *explanationsFlag != "" {
		data, err := os.ReadFile(*explanationsFlag)
		if err != nil {
			return fmt.Errorf("read explanations: %w", err)
		}
		if err := json.Unmarshal(data, &opts.Explanations); err != nil {
			return fmt.Errorf("parse explanations: %w", err)
		}
	}

	report := testreport.Generate(testreport.PlatformTitle(), returnCode, suites, ninjaLogs, opts)
	_, err = fmt.Fprintln(outW, report)
	return err
}
