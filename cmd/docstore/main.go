/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Command docstore runs bulk writes, listings and existence checks against a
// configured document store.
//
//	docstore [-config docstore.yaml] [-env .env] <command> [flags]
//
// Commands:
//
//	version
//	exists <database> [container]
//	list [-db database] [-container container] [-limit n]
//	bulk -op create|upsert|update -db database -container container -file records.json [-pk value] [-keys PK={id}]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/suparena/docstore"
	"github.com/suparena/docstore/internal/config"
	"github.com/suparena/docstore/internal/logging"
)

var errUsage = errors.New("usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("docstore", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "YAML configuration file")
	envFile := fs.String("env", ".env", "dotenv file loaded before the environment")
	fs.Usage = func() { usage(stderr) }
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		usage(stderr)
		return 2
	}

	command, rest := fs.Arg(0), fs.Args()[1:]
	if command == "version" {
		fmt.Fprintln(stdout, docstore.GetVersionInfo())
		return 0
	}

	cfg, err := config.Load(*configPath, *envFile)
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 1
	}
	logCfg := cfg.Logging()
	logCfg.Output = stderr
	logging.Setup(logCfg)
	logger := logging.NewLogger("cli").With().Str("backend", cfg.Backend).Logger()

	b, err := openBackend(ctx, cfg)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to open backend")
		return 1
	}
	defer b.close(context.WithoutCancel(ctx))

	cmd := &commands{backend: b, logger: logger, stdout: stdout, stderr: stderr}
	switch command {
	case "exists":
		err = cmd.exists(ctx, rest)
	case "list":
		err = cmd.list(ctx, rest)
	case "bulk":
		err = cmd.bulk(ctx, rest)
	default:
		err = fmt.Errorf("%w: unknown command %q", errUsage, command)
	}

	switch {
	case err == nil:
		return 0
	case errors.Is(err, errUsage):
		fmt.Fprintln(stderr, err)
		usage(stderr)
		return 2
	case errors.Is(err, errFailedWrites):
		return 1
	default:
		logger.Error().Err(err).Str("command", command).Msg("Command failed")
		return 1
	}
}

func usage(w io.Writer) {
	fmt.Fprint(w, `usage: docstore [-config file] [-env file] <command> [flags]

commands:
  version                          print version information
  exists <database> [container]    check that a database or container exists
  list [-db d] [-container c]      list databases, containers or records
  bulk -op op -db d -container c -file f [-pk v] [-keys k]
                                   write a JSON array of records concurrently
`)
}

type commands struct {
	backend *backend
	logger  zerolog.Logger
	stdout  io.Writer
	stderr  io.Writer
}
