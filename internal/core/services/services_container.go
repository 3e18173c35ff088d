package services

import (
	"context"

	"github.com/SscSPs/buddy_tix_tracker/internal/core/ports/events"
	portsrepo "github.com/SscSPs/buddy_tix_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/buddy_tix_tracker/internal/core/ports/services"
	"github.com/SscSPs/buddy_tix_tracker/internal/core/ledger"
	"github.com/SscSPs/buddy_tix_tracker/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// It loads the persisted ledger, so a storage failure here must stop the process.
func NewServiceContainer(ctx context.Context, cfg *config.Config, repos portsrepo.RepositoryProvider, publisher events.Publisher) (*portssvc.ServiceContainer, error) {
	container := &portssvc.ServiceContainer{}

	ledgerSvc, err := NewLedgerService(ctx, repos.LedgerRepo,
		WithTicketPrice(cfg.TicketPrice),
		WithRecentLimit(cfg.RecentLimit),
		WithPublisher(publisher),
		WithLedgerOptions(ledger.WithLocation(cfg.Location)),
	)
	if err != nil {
		return nil, err
	}
	container.Ledger = ledgerSvc

	return container, nil
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.LedgerSvcFacade = (*ledgerService)(nil)
)
