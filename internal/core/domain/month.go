package domain

import (
	"fmt"
	"time"
)

// MonthLayout is the text form of a month anchor.
const MonthLayout = "2006-01"

// Month anchors a calendar month, used for month navigation and windows.
type Month struct {
	Year  int
	Month time.Month
}

// NewMonth normalizes year/month the same way time.Date does (month 13 is January of the next year).
func NewMonth(year int, month time.Month) Month {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return Month{Year: t.Year(), Month: t.Month()}
}

// MonthOf returns the month containing d.
func MonthOf(d Date) Month {
	return Month{Year: d.Year(), Month: d.Month()}
}

// ParseMonth parses a YYYY-MM string.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse(MonthLayout, s)
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q: %w", s, err)
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

// Next steps forward exactly one calendar month.
func (m Month) Next() Month { return NewMonth(m.Year, m.Month+1) }

// Prev steps back exactly one calendar month.
func (m Month) Prev() Month { return NewMonth(m.Year, m.Month-1) }

// FirstDay is the 1st of the month.
func (m Month) FirstDay() Date { return NewDate(m.Year, m.Month, 1) }

// LastDay is the last calendar day of the month (day 0 of the following month).
func (m Month) LastDay() Date { return NewDate(m.Year, m.Month+1, 0) }

// DaysIn is the number of calendar days in the month.
func (m Month) DaysIn() int { return m.LastDay().Day() }

// Contains reports whether d lies within [FirstDay, LastDay].
func (m Month) Contains(d Date) bool {
	return d.Year() == m.Year && d.Month() == m.Month
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// MarshalText implements encoding.TextMarshaler ("YYYY-MM").
func (m Month) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Month) UnmarshalText(text []byte) error {
	parsed, err := ParseMonth(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
