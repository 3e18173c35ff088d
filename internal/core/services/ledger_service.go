package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/buddy_tix_tracker/internal/apperrors"
	"github.com/SscSPs/buddy_tix_tracker/internal/core/domain"
	"github.com/SscSPs/buddy_tix_tracker/internal/core/ledger"
	"github.com/SscSPs/buddy_tix_tracker/internal/core/ports/events"
	portsrepo "github.com/SscSPs/buddy_tix_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/buddy_tix_tracker/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// snapshot is one ledger value plus its lazily built balance index.
type snapshot struct {
	ledger    ledger.Ledger
	indexOnce sync.Once
	index     *ledger.Index
}

func newSnapshot(l ledger.Ledger) *snapshot {
	return &snapshot{ledger: l}
}

func (s *snapshot) Index() *ledger.Index {
	s.indexOnce.Do(func() { s.index = s.ledger.Index() })
	return s.index
}

// ledgerService owns the single current ledger value. Writes are serialized and
// follow validate, compute, save, swap, publish. Reads work on a consistent snapshot.
type ledgerService struct {
	BaseService
	repo        portsrepo.LedgerRepositoryFacade
	publisher   events.Publisher
	ticketPrice decimal.Decimal
	recentLimit int
	ledgerOpts  []ledger.Option
	now         func() time.Time

	writeMu sync.Mutex
	mu      sync.RWMutex
	current *snapshot
}

// LedgerServiceOption is a functional option for configuring the ledger service
type LedgerServiceOption func(*ledgerService)

// WithTicketPrice sets the unit price used when a ticket request names none.
func WithTicketPrice(price decimal.Decimal) LedgerServiceOption {
	return func(s *ledgerService) {
		if price.IsPositive() {
			s.ticketPrice = price
		}
	}
}

// WithRecentLimit sets how many entries the recency view returns by default.
func WithRecentLimit(n int) LedgerServiceOption {
	return func(s *ledgerService) {
		if n > 0 {
			s.recentLimit = n
		}
	}
}

// WithPublisher adds an event publisher notified after every persisted change.
func WithPublisher(p events.Publisher) LedgerServiceOption {
	return func(s *ledgerService) {
		s.publisher = p
	}
}

// WithLedgerOptions passes clock, id and location options through to the engine.
func WithLedgerOptions(opts ...ledger.Option) LedgerServiceOption {
	return func(s *ledgerService) {
		s.ledgerOpts = append(s.ledgerOpts, opts...)
	}
}

// NewLedgerService loads the persisted ledger and returns a ready service.
// A load failure is returned as is: callers must not continue with an empty ledger.
func NewLedgerService(ctx context.Context, repo portsrepo.LedgerRepositoryFacade, options ...LedgerServiceOption) (portssvc.LedgerSvcFacade, error) {
	svc := &ledgerService{
		repo:        repo,
		ticketPrice: ledger.DefaultTicketPrice,
		recentLimit: ledger.DefaultRecentLimit,
		now:         time.Now,
	}
	for _, option := range options {
		option(svc)
	}

	txns, err := repo.Load(ctx)
	if err != nil {
		svc.LogError(ctx, err, "Failed to load ledger")
		return nil, fmt.Errorf("load ledger: %w", err)
	}
	seen := make(map[string]struct{}, len(txns))
	for i, txn := range txns {
		if err := txn.Validate(); err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", apperrors.ErrStorageCorrupt, i, err)
		}
		if _, dup := seen[txn.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", apperrors.ErrStorageCorrupt, txn.ID)
		}
		seen[txn.ID] = struct{}{}
	}

	svc.current = newSnapshot(ledger.New(txns, svc.ledgerOpts...))
	svc.LogInfo(ctx, "Ledger loaded", slog.Int("transactions", len(txns)))
	return svc, nil
}

func (s *ledgerService) snapshot() *snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *ledgerService) Balance(ctx context.Context) decimal.Decimal {
	return s.snapshot().ledger.Balance()
}

func (s *ledgerService) ListTransactions(ctx context.Context) []domain.Transaction {
	return s.snapshot().ledger.Transactions()
}

func (s *ledgerService) RecentTransactions(ctx context.Context, n int) []domain.Transaction {
	if n <= 0 {
		n = s.recentLimit
	}
	return s.snapshot().ledger.Recent(n)
}

func (s *ledgerService) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	txn, ok := s.snapshot().ledger.Find(id)
	if !ok {
		return nil, fmt.Errorf("transaction %q: %w", id, apperrors.ErrNotFound)
	}
	return &txn, nil
}

func (s *ledgerService) Day(ctx context.Context, date domain.Date) portssvc.DayDetail {
	snap := s.snapshot()
	return portssvc.DayDetail{
		Aggregate:      snap.ledger.DayAggregate(date),
		Transactions:   snap.ledger.OnDay(date),
		RunningBalance: snap.Index().BalanceAsOf(date),
	}
}

func (s *ledgerService) RunningBalanceAsOf(ctx context.Context, date domain.Date) decimal.Decimal {
	return s.snapshot().Index().BalanceAsOf(date)
}

func (s *ledgerService) Month(ctx context.Context, month domain.Month) ledger.Calendar {
	snap := s.snapshot()
	return snap.ledger.Calendar(month, snap.Index())
}

func (s *ledgerService) AddTickets(ctx context.Context, units int, unitPrice *decimal.Decimal) (*portssvc.MutationResult, error) {
	price := s.ticketPrice
	if unitPrice != nil {
		price = *unitPrice
	}
	return s.mutate(ctx, events.OpTicketsAdded, func(l ledger.Ledger) (ledger.Ledger, domain.Transaction, bool, error) {
		next, txn, err := l.CreateCreditBatch(units, price)
		return next, txn, err == nil, err
	})
}

func (s *ledgerService) AddPayment(ctx context.Context, amount decimal.Decimal) (*portssvc.MutationResult, error) {
	return s.mutate(ctx, events.OpPaymentAdded, func(l ledger.Ledger) (ledger.Ledger, domain.Transaction, bool, error) {
		next, txn, err := l.CreateDebit(amount)
		return next, txn, err == nil, err
	})
}

func (s *ledgerService) EditAmount(ctx context.Context, id string, amount decimal.Decimal) (*portssvc.MutationResult, error) {
	return s.mutate(ctx, events.OpAmountEdited, func(l ledger.Ledger) (ledger.Ledger, domain.Transaction, bool, error) {
		next, changed, err := l.EditAmount(id, amount)
		if err != nil || !changed {
			return l, domain.Transaction{}, false, err
		}
		txn, _ := next.Find(id)
		return next, txn, true, nil
	})
}

func (s *ledgerService) DeleteTransaction(ctx context.Context, id string) (*portssvc.MutationResult, error) {
	return s.mutate(ctx, events.OpTransactionDeleted, func(l ledger.Ledger) (ledger.Ledger, domain.Transaction, bool, error) {
		txn, ok := l.Find(id)
		if !ok {
			return l, domain.Transaction{}, false, nil
		}
		next, _ := l.Delete(id)
		return next, txn, true, nil
	})
}

type mutation func(ledger.Ledger) (next ledger.Ledger, affected domain.Transaction, changed bool, err error)

func (s *ledgerService) mutate(ctx context.Context, op string, apply mutation) (*portssvc.MutationResult, error) {
	s.writeMu.Lock()
	current := s.snapshot()

	next, txn, changed, err := apply(current.ledger)
	if err != nil {
		s.writeMu.Unlock()
		s.LogWarn(ctx, "Rejected ledger change", slog.String("operation", op), slog.String("error", err.Error()))
		return nil, err
	}
	if !changed {
		s.writeMu.Unlock()
		s.LogInfo(ctx, "Ledger change matched no transaction", slog.String("operation", op))
		return &portssvc.MutationResult{Changed: false, Balance: current.ledger.Balance()}, nil
	}

	if err := s.repo.Save(ctx, next.Transactions()); err != nil {
		s.writeMu.Unlock()
		s.LogError(ctx, err, "Failed to persist ledger", slog.String("operation", op))
		return nil, fmt.Errorf("save ledger: %w", err)
	}

	s.mu.Lock()
	s.current = newSnapshot(next)
	s.mu.Unlock()
	s.writeMu.Unlock()

	balance := next.Balance()
	s.LogInfo(ctx, "Ledger updated",
		slog.String("operation", op),
		slog.String("transaction_id", txn.ID),
		slog.String("balance", balance.StringFixed(domain.AmountPlaces)))

	s.publish(ctx, events.LedgerChanged{
		Operation:     op,
		TransactionID: txn.ID,
		Balance:       balance,
		Count:         next.Len(),
		OccurredAt:    s.now().UTC(),
	})

	return &portssvc.MutationResult{Transaction: txn, Changed: true, Balance: balance}, nil
}

// publish never fails the caller: the change is already persisted.
func (s *ledgerService) publish(ctx context.Context, evt events.LedgerChanged) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishLedgerChanged(ctx, evt); err != nil {
		s.LogError(ctx, err, "Failed to publish ledger event",
			slog.String("operation", evt.Operation),
			slog.String("transaction_id", evt.TransactionID))
	}
}
