package ledgerengine

import (
	"github.com/decred/slog"

	"github.com/decred/ledgerengine/engine"
	"github.com/decred/ledgerengine/internal/build"
	"github.com/decred/ledgerengine/ioadapter"
	"github.com/decred/ledgerengine/ledger"
	"github.com/decred/ledgerengine/money"
)

// replaceableLogger is a thin wrapper around a logger that is used so the
// logger can be replaced easily once the real root logger exists, without
// some black pointer magic.
type replaceableLogger struct {
	slog.Logger
	subsystem string
}

var (
	// pkgLoggers lists every root-package logger so SetupLoggers can
	// replace them once the rotating root logger is ready.
	pkgLoggers []*replaceableLogger

	addPkgLogger = func(subsystem string) *replaceableLogger {
		l := &replaceableLogger{
			Logger:    build.NewSubLogger(subsystem, nil),
			subsystem: subsystem,
		}
		pkgLoggers = append(pkgLoggers, l)
		return l
	}

	log = addPkgLogger("LEDG")
)

// SetupLoggers wires root into every subsystem logger this module
// declares. It must be called once, after flags are parsed and the log
// file (if any) is open, and before any engine activity begins.
func SetupLoggers(root *build.RotatingLogWriter) {
	for _, l := range pkgLoggers {
		l.Logger = build.NewSubLogger(l.subsystem, root.GenSubLogger)
		root.RegisterSubLogger(l.subsystem, l.Logger)
	}

	addSubLogger(root, "MNEY", money.UseLogger)
	addSubLogger(root, "WLET", ledger.UseLogger)
	addSubLogger(root, "ENGN", engine.UseLogger)
	addSubLogger(root, "IOAD", ioadapter.UseLogger)
}

func addSubLogger(root *build.RotatingLogWriter, subsystem string, useLogger func(slog.Logger)) {
	logger := build.NewSubLogger(subsystem, root.GenSubLogger)
	root.RegisterSubLogger(subsystem, logger)
	useLogger(logger)
}
