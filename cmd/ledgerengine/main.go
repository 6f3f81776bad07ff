// Command ledgerengine replays a client-scoped transaction stream and
// prints the resulting per-client wallet snapshots, per spec.md §6.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	goerrors "github.com/go-errors/errors"
	flags "github.com/jessevdk/go-flags"

	"github.com/decred/ledgerengine"
	"github.com/decred/ledgerengine/engine"
	"github.com/decred/ledgerengine/internal/build"
	"github.com/decred/ledgerengine/internal/config"
	"github.com/decred/ledgerengine/ioadapter"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "ledgerengine: "+err.Error())
		os.Exit(1)
	}
}

func run() (err error) {
	defer func() {
		if r := recover(); r != nil {
			wrapped := goerrors.Wrap(r, 1)
			fmt.Fprintln(os.Stderr, wrapped.ErrorStack())
			err = fmt.Errorf("internal invariant violation: %v", r)
		}
	}()

	cfg := &config.Config{}
	parser := flags.NewParser(cfg, flags.Default)
	parser.Name = "ledgerengine"
	parser.Usage = "[OPTIONS] INPUT-FILE"

	args, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			return nil
		}
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("expected exactly one positional argument (the input file), got %d", len(args))
	}
	cfg.InputFile = args[0]

	if err := cfg.Normalize(); err != nil {
		return err
	}

	rootLogger := build.NewRotatingLogWriter()
	if cfg.LogDir != "" {
		logFile := filepath.Join(cfg.LogDir, "ledgerengine.log")
		if err := rootLogger.InitLogRotator(logFile, 10*1024, 3); err != nil {
			return err
		}
	}
	ledgerengine.SetupLoggers(rootLogger)
	if err := build.ParseAndSetDebugLevels(rootLogger, cfg.DebugLevel); err != nil {
		return err
	}

	inputFile, err := os.Open(cfg.InputFile)
	if err != nil {
		return fmt.Errorf("opening input file: %w", err)
	}
	defer inputFile.Close()

	dispatcher := engine.NewDispatcher(engine.Config{
		ShardCount:      cfg.ShardCount,
		QueueCapacity:   cfg.QueueCapacity,
		StrictAvailable: cfg.StrictAvailable,
	})

	// On SIGINT, stop feeding new events and flush what was processed so
	// far rather than losing all output to a half-read file.
	interrupted := make(chan os.Signal, 1)
	signal.Notify(interrupted, os.Interrupt)
	defer signal.Stop(interrupted)

	reader := ioadapter.NewReader(inputFile)
readLoop:
	for {
		select {
		case <-interrupted:
			break readLoop
		default:
		}

		ev, ok, readErr := reader.Next()
		if readErr != nil {
			return fmt.Errorf("reading input: %w", readErr)
		}
		if !ok {
			break
		}
		dispatcher.Submit(ev)
	}

	snapshots := dispatcher.Shutdown()

	writer := ioadapter.NewWriter(os.Stdout)
	if err := writer.WriteAll(snapshots); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	return nil
}
