// Command ledgerenginecli is a small diagnostic companion to
// cmd/ledgerengine: it can dry-run the input-file parser without running
// the engine, and report the build version.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"

	"github.com/decred/ledgerengine/internal/build"
	"github.com/decred/ledgerengine/ioadapter"
)

func main() {
	app := cli.NewApp()
	app.Name = "ledgerenginecli"
	app.Usage = "diagnostic tools for the ledgerengine input format"
	app.Commands = []cli.Command{
		validateCommand,
		versionCommand,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// actionDecorator wraps a command's Action so the caller's underlying
// error is returned as-is to urfave/cli's own error handling, matching
// dcrlncli's cmd_query_probability.go convention of a plain
// func(*cli.Context) error per command.
func actionDecorator(f func(*cli.Context) error) func(*cli.Context) error {
	return func(ctx *cli.Context) error {
		return f(ctx)
	}
}

var validateCommand = cli.Command{
	Name:      "validate",
	Category:  "Diagnostics",
	Usage:     "Dry-run the input-file parser without running the engine.",
	ArgsUsage: "file",
	Action:    actionDecorator(validate),
}

func validate(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return cli.ShowCommandHelp(ctx, "validate")
	}

	path := ctx.Args().Get(0)
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	reader := ioadapter.NewReader(f)
	for {
		_, ok, err := reader.Next()
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		if !ok {
			break
		}
	}

	fmt.Printf("%s: %d rows parsed, %d rows dropped as malformed\n",
		path, reader.Parsed(), reader.Dropped())
	return nil
}

var versionCommand = cli.Command{
	Name:     "version",
	Category: "Diagnostics",
	Usage:    "Print the build version.",
	Action:   actionDecorator(printVersion),
}

func printVersion(ctx *cli.Context) error {
	fmt.Println(build.Version())
	return nil
}
