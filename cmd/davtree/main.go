package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/desertwitch/davtree/internal/configuration"
	"github.com/desertwitch/davtree/internal/tree"
	"github.com/dustin/go-humanize"
	"github.com/lmittmann/tint"
)

//nolint:gochecknoglobals
var (
	ExitCode = 0
	Version  string
)

// setupLogging installs the default logger and returns a function releasing
// the log file, if one was requested.
func setupLogging(debug bool, logFile string) (func(), error) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	handlers := []slog.Handler{
		tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		}),
	}
	closer := func() {}

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644) //nolint:mnd
		if err != nil {
			return closer, fmt.Errorf("(main) failed to open logfile: %w", err)
		}
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level}))
		closer = func() { f.Close() }
	}

	slog.SetDefault(slog.New(newFanoutHandler(handlers...)))

	return closer, nil
}

func setupSignalHandlers(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		<-sigChan
		cancel()
	}()
}

func main() {
	defer func() {
		os.Exit(ExitCode)
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	flags, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			ExitCode = 2
		}

		return
	}

	closeLog, err := setupLogging(flags.debug, flags.logFile)
	defer closeLog()
	if err != nil {
		slog.Error("Failed to set up logging.", "err", err)
		ExitCode = 1

		return
	}
	setupSignalHandlers(cancel)

	configProvider := &configuration.ConfigProviderImpl{
		GenericConfigReader: &configuration.GodotenvProvider{},
	}

	config, err := flags.configure(configProvider)
	if err != nil {
		slog.Error("Failed to establish the configuration.", "err", err)
		ExitCode = 2

		return
	}

	slog.Debug("Configuration established:",
		"version", Version,
		"root", config.Root,
		"minFree", humanize.IBytes(config.MinFree),
		"verifyHash", config.VerifyHash,
		"preserveOwner", config.PreserveOwner,
	)

	tr, err := tree.New(config.Root, config.TreeOptions())
	if err != nil {
		slog.Error("Failed to establish the tree.", "err", err)
		ExitCode = 1

		return
	}

	app := NewApp(tr, os.Stdout)

	if err := app.Run(ctx, flags.args); err != nil {
		slog.Error("Operation failed.", "err", err)
		ExitCode = 1

		if errors.Is(err, ErrUsage) || errors.Is(err, ErrUnknownCommand) {
			ExitCode = 2
		}
	}
}
