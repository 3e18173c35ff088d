package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	portsrepo "github.com/SscSPs/buddy_tix_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/buddy_tix_tracker/internal/core/ports/services"
	"github.com/SscSPs/buddy_tix_tracker/internal/core/services"
	"github.com/SscSPs/buddy_tix_tracker/internal/platform/config"
	"github.com/SscSPs/buddy_tix_tracker/internal/repositories"
	"github.com/SscSPs/buddy_tix_tracker/internal/repositories/codec"
	"github.com/SscSPs/buddy_tix_tracker/internal/utils"
	"github.com/alecthomas/kong"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

var (
	successSymbol = "✓"
	infoSymbol    = "→"

	successStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#00D787", Dark: "#00D787"})
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#5FAFFF", Dark: "#5FAFFF"})
	creditStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#00AF5F", Dark: "#00D787"})
	debitStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#D7005F", Dark: "#FF5F87"})
)

// errNotConfirmed stops an import that would overwrite an existing ledger.
var errNotConfirmed = errors.New("stored ledger is not empty; rerun with --yes to replace it")

type ImportCmd struct {
	File []byte `help:"JSON ledger export to import." arg:"" type:"filecontent"`
	Yes  bool   `help:"Replace a non-empty stored ledger without asking." short:"y"`
}

func (cmd *ImportCmd) Run(ctx context.Context, kctx *kong.Context, cfg *config.Config, logger *slog.Logger) error {
	repos, closeRepos, err := repositories.Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeRepos()

	confirm := func(existing int) (bool, error) {
		if cmd.Yes {
			return true, nil
		}
		return promptYesNo(fmt.Sprintf("Replace %d stored transactions?", existing))
	}
	return importLedger(ctx, kctx.Stdout, repos.LedgerRepo, cmd.File, confirm)
}

// importLedger validates blob completely before anything is written.
func importLedger(ctx context.Context, w io.Writer, repo portsrepo.LedgerRepositoryFacade, blob []byte, confirm func(existing int) (bool, error)) error {
	txns, err := codec.Decode(blob)
	if err != nil {
		return fmt.Errorf("read import: %w", err)
	}

	existing, err := repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("load stored ledger: %w", err)
	}
	if len(existing) > 0 {
		ok, err := confirm(len(existing))
		if err != nil {
			return err
		}
		if !ok {
			return errNotConfirmed
		}
	}

	if err := repo.Save(ctx, txns); err != nil {
		return fmt.Errorf("save ledger: %w", err)
	}
	printLine(w, "%s Imported %d transactions", successStyle.Render(successSymbol), len(txns))
	return nil
}

type ExportCmd struct {
	Output string `help:"Write to this file instead of stdout." short:"o" type:"path"`
}

func (cmd *ExportCmd) Run(ctx context.Context, kctx *kong.Context, cfg *config.Config, logger *slog.Logger) error {
	repos, closeRepos, err := repositories.Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeRepos()

	if cmd.Output == "" {
		return exportLedger(ctx, kctx.Stdout, repos.LedgerRepo)
	}

	f, err := os.Create(cmd.Output)
	if err != nil {
		return err
	}
	if err := exportLedger(ctx, f, repos.LedgerRepo); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	printLine(kctx.Stderr, "%s Exported to %s", successStyle.Render(successSymbol), cmd.Output)
	return nil
}

func exportLedger(ctx context.Context, w io.Writer, repo portsrepo.LedgerReader) error {
	txns, err := repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("load stored ledger: %w", err)
	}
	blob, err := codec.Encode(txns)
	if err != nil {
		return err
	}
	if _, err := w.Write(append(blob, '\n')); err != nil {
		return err
	}
	return nil
}

type SummaryCmd struct {
	Recent int `help:"How many recent transactions to list (0 uses RECENT_LIMIT)." short:"n" default:"0"`
}

func (cmd *SummaryCmd) Run(ctx context.Context, kctx *kong.Context, cfg *config.Config, logger *slog.Logger) error {
	repos, closeRepos, err := repositories.Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeRepos()

	// The summary never writes, so there is nothing to publish.
	container, err := services.NewServiceContainer(ctx, cfg, repos, nil)
	if err != nil {
		return err
	}
	printSummary(ctx, kctx.Stdout, container.Ledger, cmd.Recent)
	return nil
}

func printSummary(ctx context.Context, w io.Writer, svc portssvc.LedgerReaderSvc, n int) {
	direction, display := utils.DescribeBalance(svc.Balance(ctx))
	printLine(w, "%s %s: %s", infoStyle.Render(infoSymbol), direction, display)

	recent := svc.RecentTransactions(ctx, n)
	if len(recent) == 0 {
		printLine(w, "No transactions yet")
		return
	}
	for _, txn := range recent {
		amount := utils.FormatAmount(txn.SignedAmount())
		style := creditStyle
		if txn.SignedAmount().IsNegative() {
			style = debitStyle
		}
		printLine(w, "  %s  %-7s %10s", txn.Date, txn.Kind, style.Render(amount))
	}
}

// promptYesNo asks a yes/no question. It answers no when stdin is not a terminal.
func promptYesNo(question string) (bool, error) {
	if !isTerminal() {
		return false, nil
	}

	var confirm bool
	form := huh.NewConfirm().
		Title(question).
		WithButtonAlignment(lipgloss.Left).
		Value(&confirm)
	if err := form.Run(); err != nil {
		return false, fmt.Errorf("failed to read response: %w", err)
	}
	return confirm, nil
}

func isTerminal() bool {
	fileInfo, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
