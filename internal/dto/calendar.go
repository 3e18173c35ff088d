package dto

import (
	"github.com/SscSPs/buddy_tix_tracker/internal/core/ledger"
	portssvc "github.com/SscSPs/buddy_tix_tracker/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// DayURI binds the :date path parameter.
type DayURI struct {
	Date string `uri:"date" binding:"required,civildate"`
}

// MonthURI binds the :month path parameter.
type MonthURI struct {
	Month string `uri:"month" binding:"required,yearmonth"`
}

// RunningBalanceQuery binds the asOf query parameter.
type RunningBalanceQuery struct {
	AsOf string `form:"asOf" binding:"required,civildate"`
}

// DayTotalsResponse holds the figures of one calendar day.
type DayTotalsResponse struct {
	Date           string          `json:"date"`
	Credits        decimal.Decimal `json:"credits"`
	Debits         decimal.Decimal `json:"debits"`
	Net            decimal.Decimal `json:"net"`
	Count          int             `json:"count"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// DayResponse is the detail view of one day.
type DayResponse struct {
	DayTotalsResponse
	Transactions []TransactionResponse `json:"transactions"`
}

// ToDayResponse converts a service day detail.
func ToDayResponse(day portssvc.DayDetail) DayResponse {
	return DayResponse{
		DayTotalsResponse: toDayTotals(day.Aggregate, day.RunningBalance),
		Transactions:      ToListTransactionResponse(day.Transactions),
	}
}

func toDayTotals(agg ledger.DayAggregate, running decimal.Decimal) DayTotalsResponse {
	return DayTotalsResponse{
		Date:           agg.Date.String(),
		Credits:        agg.Credits,
		Debits:         agg.Debits,
		Net:            agg.Net,
		Count:          agg.Count,
		RunningBalance: running,
	}
}

// RunningBalanceResponse is the balance at the end of a day.
type RunningBalanceResponse struct {
	AsOf    string          `json:"asOf"`
	Balance decimal.Decimal `json:"balance"`
}

// MonthResponse is the month grid.
type MonthResponse struct {
	Month            string              `json:"month"`
	LeadingOffset    int                 `json:"leadingOffset"`
	DaysInMonth      int                 `json:"daysInMonth"`
	TransactionCount int                 `json:"transactionCount"`
	Prev             string              `json:"prev"`
	Next             string              `json:"next"`
	Days             []DayTotalsResponse `json:"days"`
}

// ToMonthResponse converts a computed calendar.
func ToMonthResponse(cal ledger.Calendar) MonthResponse {
	days := make([]DayTotalsResponse, len(cal.Cells))
	for i, cell := range cal.Cells {
		days[i] = toDayTotals(cell.DayAggregate, cell.RunningBalance)
	}
	return MonthResponse{
		Month:            cal.Month.String(),
		LeadingOffset:    cal.LeadingOffset,
		DaysInMonth:      len(cal.Days),
		TransactionCount: cal.TransactionCount,
		Prev:             cal.Prev.String(),
		Next:             cal.Next.String(),
		Days:             days,
	}
}
