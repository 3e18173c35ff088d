package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/SscSPs/buddy_tix_tracker/internal/platform/config"
	"github.com/alecthomas/kong"
)

var (
	// Version contains the application version number. It's set via ldflags
	// when building.
	Version = "dev"

	cli struct {
		Version kong.VersionFlag `help:"Show version information"`
		Verbose bool             `help:"Log storage activity to stderr." short:"v"`

		Import  ImportCmd  `cmd:"" help:"Replace the stored ledger with a JSON export."`
		Export  ExportCmd  `cmd:"" help:"Write the stored ledger as JSON."`
		Summary SummaryCmd `cmd:"" help:"Print the balance and the most recent transactions."`
	}
)

func main() {
	kctx := kong.Parse(&cli,
		kong.Vars{
			"version": Version,
		},
		kong.Name("tix_import"),
		kong.Description("Moves buddy ticket ledgers in and out of the configured store."),
		kong.UsageOnError(),
	)

	cfg, err := config.LoadConfig()
	kctx.FatalIfErrorf(err)

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	kctx.BindTo(ctx, (*context.Context)(nil))
	kctx.Bind(cfg, logger)

	err = kctx.Run()
	kctx.FatalIfErrorf(err)
}

func printLine(w io.Writer, format string, args ...interface{}) {
	_, _ = fmt.Fprintf(w, format+"\n", args...)
}
