package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/vk/premerge/internal/cli"
	"github.com/vk/premerge/internal/ctxlog"
	"github.com/vk/premerge/internal/timingcache"
)

// main is the entrypoint for the cache-timing-files command.
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
	flagSet := flag.NewFlagSet("cache-timing-files", flag.ContinueOnError)
	flagSet.SetOutput(outW)

	flagSet.Usage = func() {
		fmt.Fprint(outW, `
cache-timing-files - Cache lit timing files between premerge invocations.

Usage:
  cache-timing-files [options] <upload|download>

Options:
`)
		flagSet.PrintDefaults()
	}

	rootFlag := flagSet.String("root", ".", "Directory searched for timing files on upload and written to on download.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return &cli.ExitError{Code: 2, Message: err.Error()}
	}
	if flagSet.NArg() != 1 {
		flagSet.Usage()
		return &cli.ExitError{Code: 1, Message: "expected exactly one action: 'upload' or 'download'"}
	}
	action := flagSet.Arg(0)

	// A .env file is optional; the real CI injects the variables directly.
	_ = godotenv.Load()

	cache, err := timingcache.New(timingcache.Options{
		Endpoint:  os.Getenv("CACHE_S3_ENDPOINT"),
		AccessKey: os.Getenv("CACHE_S3_ACCESS_KEY"),
		SecretKey: os.Getenv("CACHE_S3_SECRET_KEY"),
		Region:    os.Getenv("CACHE_S3_REGION"),
		Bucket:    os.Getenv("CACHE_BUCKET"),
		UseSSL:    os.Getenv("CACHE_S3_USE_SSL") == "true",
	})
	if err != nil {
		return err
	}

	ctx := ctxlog.WithLogger(context.Background(), slog.Default())

	switch action {
	case "upload":
		return cache.Upload(ctx, *rootFlag)
	case "download":
		return cache.Download(ctx, *rootFlag)
	default:
		return &cli.ExitError{Code: 1, Message: fmt.Sprintf("invalid action %q, use 'upload' or 'download'", action)}
	}
}
