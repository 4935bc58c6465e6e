package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/vk/webstage/internal/app"
	"github.com/vk/webstage/internal/cli"
	"github.com/vk/webstage/internal/diag"
)

// main is the entrypoint for the webstage harness binary.
func main() {
	// Use a minimal logger until the full one is configured.
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

// run encapsulates the main application logic for easier testing and error
// handling.
func run(outW io.Writer, args []string) error {
	config, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	harness := app.New(outW, config)
	if err := harness.Start(ctx); err != nil {
		return err
	}

	url, err := harness.URL()
	if err != nil {
		return err
	}
	color.New(color.FgGreen, color.Bold).Fprintf(outW, "✔ harness ready: %s\n", url)
	printDiagnostics(outW, harness.Diagnostics())

	// Serve until interrupted.
	<-ctx.Done()
	return harness.Stop(context.Background())
}

// printDiagnostics summarizes startup diagnostics for the operator.
func printDiagnostics(outW io.Writer, events []diag.Event) {
	if len(events) == 0 {
		return
	}
	warn := color.New(color.FgYellow)
	warn.Fprintf(outW, "⚠ %d startup diagnostic(s):\n", len(events))
	for _, ev := range events {
		warn.Fprintf(outW, "  [%s] %s: %s\n", ev.Kind, ev.Name, ev.Detail)
	}
}
