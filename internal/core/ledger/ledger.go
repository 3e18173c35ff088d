// Package ledger is the ticket/payment ledger engine.
//
// A Ledger is a value: every mutating method returns a new Ledger and leaves the
// receiver untouched, so callers can hold on to an old value safely. The package
// performs no I/O; loading and saving the transaction list is the caller's job.
package ledger

import (
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/buddy_tix_tracker/internal/apperrors"
	"github.com/SscSPs/buddy_tix_tracker/internal/core/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultRecentLimit is how many transactions the recency view shows by default.
const DefaultRecentLimit = 5

// DefaultTicketPrice is the price of one ticket in currency units.
var DefaultTicketPrice = decimal.NewFromInt(20)

type env struct {
	now   func() time.Time
	newID func() string
	loc   *time.Location
}

// Option customizes how a Ledger stamps new transactions.
type Option func(*env)

// WithClock sets the source of "now" used for CreatedAt and for today's date.
func WithClock(now func() time.Time) Option {
	return func(e *env) { e.now = now }
}

// WithIDGenerator sets the function used to mint transaction ids.
func WithIDGenerator(newID func() string) Option {
	return func(e *env) { e.newID = newID }
}

// WithLocation sets the time zone in which "today" is determined.
func WithLocation(loc *time.Location) Option {
	return func(e *env) {
		if loc != nil {
			e.loc = loc
		}
	}
}

// Ledger is an ordered list of transactions plus the stamping environment.
type Ledger struct {
	txns []domain.Transaction
	env  env
}

// New builds a ledger from txns. The slice is copied.
func New(txns []domain.Transaction, opts ...Option) Ledger {
	e := env{
		now:   time.Now,
		newID: uuid.NewString,
		loc:   time.UTC,
	}
	for _, opt := range opts {
		opt(&e)
	}
	copied := make([]domain.Transaction, len(txns))
	copy(copied, txns)
	return Ledger{txns: copied, env: e}
}

// Transactions returns a copy of the list in stored order.
func (l Ledger) Transactions() []domain.Transaction {
	out := make([]domain.Transaction, len(l.txns))
	copy(out, l.txns)
	return out
}

// Len is the number of transactions.
func (l Ledger) Len() int { return len(l.txns) }

// Find looks a transaction up by id.
func (l Ledger) Find(id string) (domain.Transaction, bool) {
	if i := l.indexOf(id); i >= 0 {
		return l.txns[i], true
	}
	return domain.Transaction{}, false
}

// Today is the current calendar day in the ledger's location.
func (l Ledger) Today() domain.Date {
	return domain.DateOf(l.env.now(), l.env.loc)
}

// ComputeBalance folds txns into tickets minus payments. The result does not
// depend on the order of txns.
func ComputeBalance(txns []domain.Transaction) decimal.Decimal {
	sum := decimal.Zero
	for _, txn := range txns {
		sum = sum.Add(txn.SignedAmount())
	}
	return sum
}

// Balance is ComputeBalance over the whole ledger.
func (l Ledger) Balance() decimal.Decimal {
	return ComputeBalance(l.txns)
}

// CreateCreditBatch appends one ticket transaction worth units*unitPrice, dated today.
func (l Ledger) CreateCreditBatch(units int, unitPrice decimal.Decimal) (Ledger, domain.Transaction, error) {
	if units <= 0 {
		return l, domain.Transaction{}, fmt.Errorf("%w: got %d", apperrors.ErrInvalidUnitCount, units)
	}
	if err := domain.ValidateAmount(unitPrice); err != nil {
		return l, domain.Transaction{}, fmt.Errorf("unit price: %w", err)
	}
	amount := unitPrice.Mul(decimal.NewFromInt(int64(units)))
	return l.appendNew(domain.Ticket, amount)
}

// CreateDebit appends one payment transaction, dated today.
func (l Ledger) CreateDebit(amount decimal.Decimal) (Ledger, domain.Transaction, error) {
	return l.appendNew(domain.Payment, amount)
}

func (l Ledger) appendNew(kind domain.TransactionKind, amount decimal.Decimal) (Ledger, domain.Transaction, error) {
	amount = domain.RoundAmount(amount)
	if err := domain.ValidateAmount(amount); err != nil {
		return l, domain.Transaction{}, err
	}
	now := l.env.now()
	txn := domain.Transaction{
		ID:     l.env.newID(),
		Date:   domain.DateOf(now, l.env.loc),
		Kind:   kind,
		Amount: amount,
		// Millisecond resolution survives the storage round trip.
		CreatedAt: now.UTC().Truncate(time.Millisecond),
	}

	next := make([]domain.Transaction, len(l.txns), len(l.txns)+1)
	copy(next, l.txns)
	next = append(next, txn)
	return Ledger{txns: next, env: l.env}, txn, nil
}

// EditAmount replaces the amount of transaction id. Kind, date, id and
// CreatedAt are kept. The bool is false, and the ledger unchanged, when id is unknown.
func (l Ledger) EditAmount(id string, amount decimal.Decimal) (Ledger, bool, error) {
	amount = domain.RoundAmount(amount)
	if err := domain.ValidateAmount(amount); err != nil {
		return l, false, err
	}
	i := l.indexOf(id)
	if i < 0 {
		return l, false, nil
	}
	next := l.Transactions()
	next[i].Amount = amount
	return Ledger{txns: next, env: l.env}, true, nil
}

// Delete removes the transaction with the given id. At most one entry is removed.
func (l Ledger) Delete(id string) (Ledger, bool) {
	i := l.indexOf(id)
	if i < 0 {
		return l, false
	}
	next := make([]domain.Transaction, 0, len(l.txns)-1)
	next = append(next, l.txns[:i]...)
	next = append(next, l.txns[i+1:]...)
	return Ledger{txns: next, env: l.env}, true
}

func (l Ledger) indexOf(id string) int {
	for i, txn := range l.txns {
		if txn.ID == id {
			return i
		}
	}
	return -1
}

// Recent returns up to n transactions, most recently created first.
// Equal CreatedAt values fall back to list position, later entries first.
func (l Ledger) Recent(n int) []domain.Transaction {
	if n <= 0 {
		return []domain.Transaction{}
	}
	order := make([]int, len(l.txns))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ta, tb := l.txns[order[a]].CreatedAt, l.txns[order[b]].CreatedAt
		if !ta.Equal(tb) {
			return ta.After(tb)
		}
		return order[a] > order[b]
	})
	if n > len(order) {
		n = len(order)
	}
	out := make([]domain.Transaction, n)
	for i := 0; i < n; i++ {
		out[i] = l.txns[order[i]]
	}
	return out
}

// OnDay returns the transactions dated exactly d, in stored order.
func (l Ledger) OnDay(d domain.Date) []domain.Transaction {
	out := []domain.Transaction{}
	for _, txn := range l.txns {
		if txn.Date.Equal(d) {
			out = append(out, txn)
		}
	}
	return out
}

// DayAggregate sums the transactions of one calendar day.
type DayAggregate struct {
	Date    domain.Date
	Credits decimal.Decimal
	Debits  decimal.Decimal
	Net     decimal.Decimal
	Count   int
}

func (a *DayAggregate) add(txn domain.Transaction) {
	switch txn.Kind {
	case domain.Ticket:
		a.Credits = a.Credits.Add(txn.Amount)
	case domain.Payment:
		a.Debits = a.Debits.Add(txn.Amount)
	}
	a.Net = a.Credits.Sub(a.Debits)
	a.Count++
}

func newDayAggregate(d domain.Date) DayAggregate {
	return DayAggregate{Date: d, Credits: decimal.Zero, Debits: decimal.Zero, Net: decimal.Zero}
}

// DayAggregate returns gross credits, gross debits and net for day d.
func (l Ledger) DayAggregate(d domain.Date) DayAggregate {
	agg := newDayAggregate(d)
	for _, txn := range l.txns {
		if txn.Date.Equal(d) {
			agg.add(txn)
		}
	}
	return agg
}

// RunningBalanceAsOf is the balance over transactions dated on or before d,
// folded in date order. It scans the whole ledger; see Index for repeated queries.
func (l Ledger) RunningBalanceAsOf(d domain.Date) decimal.Decimal {
	upTo := make([]domain.Transaction, 0, len(l.txns))
	for _, txn := range l.txns {
		if !txn.Date.After(d) {
			upTo = append(upTo, txn)
		}
	}
	sort.SliceStable(upTo, func(i, j int) bool {
		return upTo[i].Date.Before(upTo[j].Date)
	})
	return ComputeBalance(upTo)
}

// MonthTransactionCount counts transactions dated within m.
func (l Ledger) MonthTransactionCount(m domain.Month) int {
	first, last := m.FirstDay(), m.LastDay()
	count := 0
	for _, txn := range l.txns {
		if !txn.Date.Before(first) && !txn.Date.After(last) {
			count++
		}
	}
	return count
}

// StepAmount applies one increment or decrement to a draft payment amount.
// The result never drops below zero.
func StepAmount(current, delta decimal.Decimal) decimal.Decimal {
	next := current.Add(delta)
	if next.IsNegative() {
		return decimal.Zero
	}
	return next
}
