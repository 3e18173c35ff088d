package ledger

import (
	"sort"

	"github.com/SscSPs/buddy_tix_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Window is the set of days a month grid shows.
type Window struct {
	Month domain.Month
	// LeadingOffset is the weekday of the 1st (Sunday = 0): how many blank
	// cells precede it in a week-aligned grid.
	LeadingOffset int
	Days          []domain.Date
}

// MonthWindow enumerates every day of m from the 1st to the last day.
func MonthWindow(m domain.Month) Window {
	first := m.FirstDay()
	days := make([]domain.Date, m.DaysIn())
	for i := range days {
		days[i] = first.AddDays(i)
	}
	return Window{
		Month:         m,
		LeadingOffset: int(first.Weekday()),
		Days:          days,
	}
}

// CalendarDay is one rendered cell of the month view.
type CalendarDay struct {
	DayAggregate
	RunningBalance decimal.Decimal
}

// Calendar is a month window with per-day figures filled in.
type Calendar struct {
	Window
	Cells            []CalendarDay
	TransactionCount int
	Prev             domain.Month
	Next             domain.Month
}

// Calendar computes the month view of m. Running balances come from the
// prefix-sum index, so the cost is one pass over the ledger plus a binary
// search per day.
func (l Ledger) Calendar(m domain.Month, ix *Index) Calendar {
	if ix == nil {
		ix = NewIndex(l.txns)
	}
	win := MonthWindow(m)

	byDay := make(map[domain.Date]*DayAggregate, len(win.Days))
	cells := make([]CalendarDay, len(win.Days))
	for i, d := range win.Days {
		cells[i] = CalendarDay{DayAggregate: newDayAggregate(d)}
		byDay[d] = &cells[i].DayAggregate
	}

	count := 0
	for _, txn := range l.txns {
		if agg, ok := byDay[txn.Date]; ok {
			agg.add(txn)
			count++
		}
	}
	for i := range cells {
		cells[i].RunningBalance = ix.BalanceAsOf(cells[i].Date)
	}

	return Calendar{
		Window:           win,
		Cells:            cells,
		TransactionCount: count,
		Prev:             m.Prev(),
		Next:             m.Next(),
	}
}

// Index is a date-sorted prefix-sum view of a ledger. It is immutable and
// must be rebuilt after the ledger changes.
type Index struct {
	dates      []domain.Date
	cumulative []decimal.Decimal
}

// NewIndex builds the index in O(n log n).
func NewIndex(txns []domain.Transaction) *Index {
	perDay := make(map[domain.Date]decimal.Decimal)
	for _, txn := range txns {
		sum, ok := perDay[txn.Date]
		if !ok {
			sum = decimal.Zero
		}
		perDay[txn.Date] = sum.Add(txn.SignedAmount())
	}

	dates := make([]domain.Date, 0, len(perDay))
	for d := range perDay {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	cumulative := make([]decimal.Decimal, len(dates))
	running := decimal.Zero
	for i, d := range dates {
		running = running.Add(perDay[d])
		cumulative[i] = running
	}
	return &Index{dates: dates, cumulative: cumulative}
}

// Index builds a prefix-sum index over the ledger.
func (l Ledger) Index() *Index {
	return NewIndex(l.txns)
}

// BalanceAsOf equals Ledger.RunningBalanceAsOf(d) for the indexed ledger.
func (ix *Index) BalanceAsOf(d domain.Date) decimal.Decimal {
	// first date strictly after d
	i := sort.Search(len(ix.dates), func(i int) bool { return ix.dates[i].After(d) })
	if i == 0 {
		return decimal.Zero
	}
	return ix.cumulative[i-1]
}
