// README: Stats handler exposing the aggregated dashboard report.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"getdriven/internal/http/middleware"
	"getdriven/internal/modules/stats"
)

type StatsHandler struct {
	stats *stats.Service
}

func NewStatsHandler(svc *stats.Service) *StatsHandler {
	return &StatsHandler{stats: svc}
}

func (h *StatsHandler) Report(c *gin.Context) {
	f := stats.Filter{
		Month:      c.Query("month"),
		ClientName: c.Query("client_name"),
		CarBrand:   c.Query("car_brand"),
		DateFrom:   c.Query("date_from"),
		DateTo:     c.Query("date_to"),
	}
	report, err := h.stats.Report(c.Request.Context(), middleware.CallerID(c), f)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, report)
}
