package handlers

import (
	"net/http"

	"github.com/SscSPs/buddy_tix_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/buddy_tix_tracker/internal/core/ports/services"
	"github.com/SscSPs/buddy_tix_tracker/internal/dto"
	"github.com/SscSPs/buddy_tix_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

// calendarHandler serves the day and month views.
type calendarHandler struct {
	calendarService portssvc.LedgerCalendarSvc
}

// RegisterCalendarRoutes registers the calendar routes.
func RegisterCalendarRoutes(rg *gin.RouterGroup, calendarService portssvc.LedgerCalendarSvc) {
	h := &calendarHandler{calendarService: calendarService}

	calendar := rg.Group("/calendar")
	{
		calendar.GET("/days/:date", h.getDay)
		calendar.GET("/running-balance", h.getRunningBalance)
		calendar.GET("/months/:month", h.getMonth)
	}
}

// getDay godoc
// @Summary Get one calendar day
// @Description Transactions dated that day, their totals and the balance at the end of the day
// @Tags calendar
// @Produce  json
// @Param   date path string true "Day (YYYY-MM-DD)"
// @Success 200 {object} dto.DayResponse
// @Failure 400 {object} map[string]string "Invalid date"
// @Router /calendar/days/{date} [get]
func (h *calendarHandler) getDay(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var uri dto.DayURI
	if err := c.ShouldBindUri(&uri); err != nil {
		badRequest(c, logger, err)
		return
	}
	// validated by the civildate binding
	date, _ := domain.ParseDate(uri.Date)

	day := h.calendarService.Day(c.Request.Context(), date)
	c.JSON(http.StatusOK, dto.ToDayResponse(day))
}

// getRunningBalance godoc
// @Summary Get the balance as of a day
// @Description Sum over every transaction dated on or before asOf
// @Tags calendar
// @Produce  json
// @Param   asOf query string true "Day (YYYY-MM-DD)"
// @Success 200 {object} dto.RunningBalanceResponse
// @Failure 400 {object} map[string]string "Invalid date"
// @Router /calendar/running-balance [get]
func (h *calendarHandler) getRunningBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var q dto.RunningBalanceQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, logger, err)
		return
	}
	asOf, _ := domain.ParseDate(q.AsOf)

	balance := h.calendarService.RunningBalanceAsOf(c.Request.Context(), asOf)
	c.JSON(http.StatusOK, dto.RunningBalanceResponse{AsOf: asOf.String(), Balance: balance})
}

// getMonth godoc
// @Summary Get a month grid
// @Description Every day of the month with totals and running balance, plus navigation anchors
// @Tags calendar
// @Produce  json
// @Param   month path string true "Month (YYYY-MM)"
// @Success 200 {object} dto.MonthResponse
// @Failure 400 {object} map[string]string "Invalid month"
// @Router /calendar/months/{month} [get]
func (h *calendarHandler) getMonth(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var uri dto.MonthURI
	if err := c.ShouldBindUri(&uri); err != nil {
		badRequest(c, logger, err)
		return
	}
	month, _ := domain.ParseMonth(uri.Month)

	cal := h.calendarService.Month(c.Request.Context(), month)
	c.JSON(http.StatusOK, dto.ToMonthResponse(cal))
}
