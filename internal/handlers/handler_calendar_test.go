package handlers_test

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/SscSPs/buddy_tix_tracker/internal/core/domain"
	"github.com/SscSPs/buddy_tix_tracker/internal/core/ledger"
	portssvc "github.com/SscSPs/buddy_tix_tracker/internal/core/ports/services"
	"github.com/SscSPs/buddy_tix_tracker/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func (suite *LedgerHandlerTestSuite) TestGetDay() {
	date := domain.NewDate(2024, time.March, 2)
	l := ledger.New([]domain.Transaction{
		sampleTxn("a", domain.Ticket, "40"),
		sampleTxn("b", domain.Payment, "15"),
	})
	detail := portssvc.DayDetail{
		Aggregate:      l.DayAggregate(date),
		Transactions:   l.OnDay(date),
		RunningBalance: decimal.NewFromInt(25),
	}
	suite.mockService.On("Day", mock.Anything, date).Return(detail).Once()

	w := suite.do(http.MethodGet, "/api/v1/calendar/days/2024-03-02", "")
	suite.Equal(http.StatusOK, w.Code)

	var resp dto.DayResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("2024-03-02", resp.Date)
	suite.True(decimal.NewFromInt(40).Equal(resp.Credits))
	suite.True(decimal.NewFromInt(15).Equal(resp.Debits))
	suite.True(decimal.NewFromInt(25).Equal(resp.Net))
	suite.Equal(2, resp.Count)
	suite.True(decimal.NewFromInt(25).Equal(resp.RunningBalance))
	suite.Len(resp.Transactions, 2)
}

func (suite *LedgerHandlerTestSuite) TestGetDay_InvalidDate() {
	for _, d := range []string{"2024-02-30", "2024-3-2", "yesterday"} {
		w := suite.do(http.MethodGet, "/api/v1/calendar/days/"+d, "")
		suite.Equal(http.StatusBadRequest, w.Code, d)
	}
	suite.mockService.AssertNotCalled(suite.T(), "Day", mock.Anything, mock.Anything)
}

func (suite *LedgerHandlerTestSuite) TestGetRunningBalance() {
	asOf := domain.NewDate(2024, time.January, 19)
	suite.mockService.On("RunningBalanceAsOf", mock.Anything, asOf).Return(decimal.NewFromInt(20)).Once()

	w := suite.do(http.MethodGet, "/api/v1/calendar/running-balance?asOf=2024-01-19", "")
	suite.Equal(http.StatusOK, w.Code)

	var resp dto.RunningBalanceResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("2024-01-19", resp.AsOf)
	suite.True(decimal.NewFromInt(20).Equal(resp.Balance))
}

func (suite *LedgerHandlerTestSuite) TestGetRunningBalance_MissingAsOf() {
	w := suite.do(http.MethodGet, "/api/v1/calendar/running-balance", "")
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestGetMonth() {
	month := domain.NewMonth(2024, time.February)
	l := ledger.New([]domain.Transaction{
		{ID: "a", Date: domain.NewDate(2024, time.February, 10), Kind: domain.Ticket, Amount: decimal.NewFromInt(20), CreatedAt: time.Unix(1, 0).UTC()},
		{ID: "b", Date: domain.NewDate(2024, time.March, 1), Kind: domain.Payment, Amount: decimal.NewFromInt(5), CreatedAt: time.Unix(2, 0).UTC()},
	})
	suite.mockService.On("Month", mock.Anything, month).Return(l.Calendar(month, nil)).Once()

	w := suite.do(http.MethodGet, "/api/v1/calendar/months/2024-02", "")
	suite.Equal(http.StatusOK, w.Code)

	var resp dto.MonthResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("2024-02", resp.Month)
	suite.Equal(4, resp.LeadingOffset)
	suite.Equal(29, resp.DaysInMonth)
	suite.Equal(1, resp.TransactionCount)
	suite.Equal("2024-01", resp.Prev)
	suite.Equal("2024-03", resp.Next)
	suite.Require().Len(resp.Days, 29)
	suite.True(decimal.Zero.Equal(resp.Days[8].RunningBalance))
	suite.True(decimal.NewFromInt(20).Equal(resp.Days[9].RunningBalance))
	suite.True(decimal.NewFromInt(20).Equal(resp.Days[28].RunningBalance))
}

func (suite *LedgerHandlerTestSuite) TestGetMonth_InvalidMonth() {
	for _, m := range []string{"2024-13", "2024-2", "feb"} {
		w := suite.do(http.MethodGet, "/api/v1/calendar/months/"+m, "")
		suite.Equal(http.StatusBadRequest, w.Code, m)
	}
}
