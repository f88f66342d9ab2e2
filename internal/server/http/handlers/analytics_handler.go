package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/procurement/internal/domain/model"
)

// AnalyticsHandler serves dashboard counters and charts.
type AnalyticsHandler struct {
	facade AnalyticsFacade
}

// NewAnalyticsHandler constructs AnalyticsHandler.
func NewAnalyticsHandler(facade AnalyticsFacade) *AnalyticsHandler {
	return &AnalyticsHandler{facade: facade}
}

// Counts handles GET /api/orders.
func (h *AnalyticsHandler) Counts(c *gin.Context) {
	counts, err := h.facade.Counts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, counts)
}

// WeeklyOrders handles GET /api/orders/chart/weekly.
func (h *AnalyticsHandler) WeeklyOrders(c *gin.Context) {
	h.chart(c, false)
}

// VisitedOrders handles GET /api/orders/chart/visits.
func (h *AnalyticsHandler) VisitedOrders(c *gin.Context) {
	h.chart(c, true)
}

func (h *AnalyticsHandler) chart(c *gin.Context, visitedOnly bool) {
	q, err := chartQuery(c)
	if err != nil {
		respondError(c, err)
		return
	}
	q.VisitedOnly = visitedOnly

	chart, err := h.facade.OrdersChart(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, chart)
}

// RecordVisit handles POST /api/analytics/visit.
func (h *AnalyticsHandler) RecordVisit(c *gin.Context) {
	if err := h.facade.RecordVisit(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UniqueWeekly handles GET /api/analytics/unique-weekly.
func (h *AnalyticsHandler) UniqueWeekly(c *gin.Context) {
	weeks, err := queryInt(c, "weeks")
	if err != nil {
		respondError(c, err)
		return
	}
	chart, err := h.facade.WeeklyVisits(c.Request.Context(), weeks)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, chart)
}

func chartQuery(c *gin.Context) (model.ChartQuery, error) {
	weeks, err := queryInt(c, "weeks")
	if err != nil {
		return model.ChartQuery{}, err
	}
	q := model.ChartQuery{Group: model.Grouping(strings.TrimSpace(c.Query("group"))), Weeks: weeks}
	for _, raw := range strings.Split(c.Query("collections"), ",") {
		if kind := strings.TrimSpace(raw); kind != "" {
			q.Collections = append(q.Collections, model.OrderKind(kind))
		}
	}
	return q, nil
}
