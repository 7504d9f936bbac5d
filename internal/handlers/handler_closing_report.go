package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/caixafacil/pos_closing_app/internal/apperrors"
	portssvc "github.com/caixafacil/pos_closing_app/internal/core/ports/services"
	"github.com/caixafacil/pos_closing_app/internal/dto"
	"github.com/caixafacil/pos_closing_app/internal/middleware"
	"github.com/caixafacil/pos_closing_app/internal/utils"
	"github.com/gin-gonic/gin"
)

// closingReportHandler serves the derived closing report.
type closingReportHandler struct {
	reportService portssvc.ClosingReportSvc
	formatter     *utils.CurrencyFormatter
}

// newClosingReportHandler creates a new closingReportHandler.
func newClosingReportHandler(rs portssvc.ClosingReportSvc, formatter *utils.CurrencyFormatter) *closingReportHandler {
	return &closingReportHandler{
		reportService: rs,
		formatter:     formatter,
	}
}

// RegisterClosingReportRoutes registers the report route under a closing.
func RegisterClosingReportRoutes(rg *gin.RouterGroup, reportService portssvc.ClosingReportSvc, formatter *utils.CurrencyFormatter) {
	h := newClosingReportHandler(reportService, formatter)
	rg.GET("/companies/:company_id/closings/:closing_id/report", h.getReport)
}

// getReport godoc
// @Summary Get the closing report
// @Description Recomputes all aggregates from the session's raw records and returns grouped payment totals, drawer reconciliation and sales totals
// @Tags closings
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   closing_id path string true "Closing ID"
// @Success 200 {object} dto.ClosingReportResponse
// @Failure 400 {object} map[string]string "Session window parameters incomplete"
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 500 {object} map[string]string "Failed to derive report"
// @Router /companies/{company_id}/closings/{closing_id}/report [get]
func (h *closingReportHandler) getReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	closingID := c.Param("closing_id")

	report, err := h.reportService.BuildReport(c.Request.Context(), companyID, closingID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Closing session not found"})
		case errors.Is(err, apperrors.ErrIncompleteParams):
			logger.Warn("Report requested with incomplete session window", slog.String("closing_id", closingID))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Closing session window parameters are incomplete"})
		default:
			logger.Error("Failed to derive closing report", slog.String("error", err.Error()), slog.String("closing_id", closingID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to derive closing report"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToClosingReportResponse(report, h.formatter))
}
