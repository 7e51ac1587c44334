// Package main provides the CLI entrypoint for the scorecard lookup tool.
// It wires the root command, loads configuration, initializes logging and
// turns every failure into a diagnostic on stderr plus a non-zero exit code.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"scorecard/internal/lookup"
	"scorecard/pkg/logger"
	"syscall"
)

// run executes the root command with args and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := rootCommand(stdout)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	logger.Sync()
	if err == nil {
		return 0
	}

	// the domain is only needed for the not-found diagnostic; positional
	// arguments are whatever cobra left after flag parsing.
	domainName := ""
	if rest := cmd.Flags().Args(); len(rest) == 1 {
		domainName = lookup.NormalizeDomain(rest[0])
	}
	report(stderr, domainName, err)

	return 1
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code) //nolint: gocritic
}
