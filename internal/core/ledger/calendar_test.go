package ledger_test

import (
	"testing"
	"time"

	"github.com/SscSPs/buddy_tix_tracker/internal/core/domain"
	"github.com/SscSPs/buddy_tix_tracker/internal/core/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func calendarFixture() ledger.Ledger {
	t0 := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	return newTestLedger([]domain.Transaction{
		txn("a", day(2024, 1, 5), domain.Ticket, "20", t0),
		txn("b", day(2024, 1, 20), domain.Payment, "15", t0.Add(time.Hour)),
		txn("c", day(2024, 1, 20), domain.Ticket, "40", t0.Add(2*time.Hour)),
		txn("d", day(2023, 12, 31), domain.Ticket, "60", t0.Add(3*time.Hour)),
		txn("e", day(2024, 2, 1), domain.Payment, "10", t0.Add(4*time.Hour)),
	}, t0)
}

func TestRunningBalanceAsOf(t *testing.T) {
	t0 := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	l := newTestLedger([]domain.Transaction{
		txn("b", day(2024, 1, 20), domain.Payment, "15", t0),
		txn("a", day(2024, 1, 5), domain.Ticket, "20", t0),
	}, t0)

	assertDecimal(t, "0", l.RunningBalanceAsOf(day(2024, 1, 4)))
	assertDecimal(t, "20", l.RunningBalanceAsOf(day(2024, 1, 5)), "inclusive of the day itself")
	assertDecimal(t, "20", l.RunningBalanceAsOf(day(2024, 1, 10)))
	assertDecimal(t, "5", l.RunningBalanceAsOf(day(2024, 1, 25)))
}

func TestRunningBalanceAsOf_MatchesBalanceAfterLastDate(t *testing.T) {
	l := calendarFixture()
	assertDecimal(t, l.Balance().String(), l.RunningBalanceAsOf(day(2030, 1, 1)))
}

func TestIndex_AgreesWithScan(t *testing.T) {
	l := calendarFixture()
	ix := l.Index()

	for d := day(2023, 12, 25); !d.After(day(2024, 2, 5)); d = d.AddDays(1) {
		assertDecimal(t, l.RunningBalanceAsOf(d).String(), ix.BalanceAsOf(d), d.String())
	}

	empty := ledger.NewIndex(nil)
	assertDecimal(t, "0", empty.BalanceAsOf(day(2024, 1, 1)))
}

func TestOnDayAndDayAggregate(t *testing.T) {
	l := calendarFixture()

	onDay := l.OnDay(day(2024, 1, 20))
	require.Len(t, onDay, 2)
	assert.Equal(t, "b", onDay[0].ID)
	assert.Equal(t, "c", onDay[1].ID)

	agg := l.DayAggregate(day(2024, 1, 20))
	assertDecimal(t, "40", agg.Credits)
	assertDecimal(t, "15", agg.Debits)
	assertDecimal(t, "25", agg.Net)
	assert.Equal(t, 2, agg.Count)

	again := l.DayAggregate(day(2024, 1, 20))
	assert.True(t, agg.Net.Equal(again.Net), "aggregation is idempotent")
	assert.Equal(t, agg.Count, again.Count)

	quiet := l.DayAggregate(day(2024, 1, 21))
	assertDecimal(t, "0", quiet.Net)
	assert.Zero(t, quiet.Count)
	assert.Empty(t, l.OnDay(day(2024, 1, 21)))
}

func TestMonthWindow(t *testing.T) {
	tests := []struct {
		month      domain.Month
		days       int
		offset     int
		firstLabel string
		lastLabel  string
	}{
		// 2024-02-01 is a Thursday.
		{domain.NewMonth(2024, time.February), 29, 4, "2024-02-01", "2024-02-29"},
		// 2023-02-01 is a Wednesday.
		{domain.NewMonth(2023, time.February), 28, 3, "2023-02-01", "2023-02-28"},
		// 2024-09-01 is a Sunday.
		{domain.NewMonth(2024, time.September), 30, 0, "2024-09-01", "2024-09-30"},
	}

	for _, tt := range tests {
		t.Run(tt.month.String(), func(t *testing.T) {
			w := ledger.MonthWindow(tt.month)
			require.Len(t, w.Days, tt.days)
			assert.Equal(t, tt.offset, w.LeadingOffset)
			assert.Equal(t, int(w.Days[0].Weekday()), w.LeadingOffset)
			assert.Equal(t, tt.firstLabel, w.Days[0].String())
			assert.Equal(t, tt.lastLabel, w.Days[len(w.Days)-1].String())
			for i := 1; i < len(w.Days); i++ {
				assert.Equal(t, w.Days[i-1].AddDays(1), w.Days[i])
			}
		})
	}
}

func TestMonthTransactionCount(t *testing.T) {
	l := calendarFixture()
	assert.Equal(t, 3, l.MonthTransactionCount(domain.NewMonth(2024, time.January)))
	assert.Equal(t, 1, l.MonthTransactionCount(domain.NewMonth(2023, time.December)))
	assert.Equal(t, 1, l.MonthTransactionCount(domain.NewMonth(2024, time.February)))
	assert.Equal(t, 0, l.MonthTransactionCount(domain.NewMonth(2024, time.March)))
}

func TestCalendar(t *testing.T) {
	l := calendarFixture()
	jan := domain.NewMonth(2024, time.January)

	cal := l.Calendar(jan, nil)

	assert.Equal(t, jan, cal.Month)
	assert.Equal(t, domain.NewMonth(2023, time.December), cal.Prev)
	assert.Equal(t, domain.NewMonth(2024, time.February), cal.Next)
	assert.Equal(t, 1, cal.LeadingOffset, "2024-01-01 is a Monday")
	assert.Equal(t, 3, cal.TransactionCount)
	require.Len(t, cal.Cells, 31)

	first := cal.Cells[0]
	assert.Equal(t, day(2024, 1, 1), first.Date)
	assert.Zero(t, first.Count)
	assertDecimal(t, "60", first.RunningBalance, "carries December's ticket")

	fifth := cal.Cells[4]
	assert.Equal(t, 1, fifth.Count)
	assertDecimal(t, "20", fifth.Credits)
	assertDecimal(t, "80", fifth.RunningBalance)

	twentieth := cal.Cells[19]
	assert.Equal(t, 2, twentieth.Count)
	assertDecimal(t, "25", twentieth.Net)
	assertDecimal(t, "105", twentieth.RunningBalance)

	last := cal.Cells[30]
	assertDecimal(t, "105", last.RunningBalance)

	withIndex := l.Calendar(jan, l.Index())
	assert.Equal(t, len(cal.Cells), len(withIndex.Cells))
	for i := range cal.Cells {
		assert.True(t, cal.Cells[i].RunningBalance.Equal(withIndex.Cells[i].RunningBalance))
	}
}
