package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/caixafacil/pos_closing_app/internal/apperrors"
	"github.com/caixafacil/pos_closing_app/internal/core/domain"
	portssvc "github.com/caixafacil/pos_closing_app/internal/core/ports/services"
	"github.com/caixafacil/pos_closing_app/internal/dto"
	"github.com/caixafacil/pos_closing_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// closingHandler handles HTTP requests for closing session lifecycle and
// record ingestion.
type closingHandler struct {
	closingService portssvc.ClosingSvcFacade
}

// newClosingHandler creates a new closingHandler.
func newClosingHandler(cs portssvc.ClosingSvcFacade) *closingHandler {
	return &closingHandler{
		closingService: cs,
	}
}

// RegisterClosingRoutes registers closing session routes under a company.
func RegisterClosingRoutes(rg *gin.RouterGroup, closingService portssvc.ClosingSvcFacade) {
	h := newClosingHandler(closingService)

	closings := rg.Group("/companies/:company_id/closings")
	{
		closings.POST("", h.openClosing)
		closings.GET("", h.listClosings)
		closings.GET("/:closing_id", h.getClosing)
		closings.POST("/:closing_id/close", h.closeClosing)
		closings.POST("/:closing_id/records", h.appendRecords)
	}
}

// openClosing godoc
// @Summary Open a closing session
// @Description Starts a new cash-drawer session for a company register
// @Tags closings
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   closing body dto.OpenClosingRequest true "Session details"
// @Success 201 {object} dto.ClosingResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Company not found"
// @Failure 500 {object} map[string]string "Failed to open session"
// @Router /companies/{company_id}/closings [post]
func (h *closingHandler) openClosing(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	var req dto.OpenClosingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for OpenClosing", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	operatorID, _ := middleware.GetOperatorIDFromContext(c)

	closing, err := h.closingService.OpenClosing(c.Request.Context(), companyID, req, operatorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Company not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to open closing session", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open closing session"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToClosingResponse(closing))
}

// listClosings godoc
// @Summary List closing sessions
// @Description Pages through a company's sessions, newest first
// @Tags closings
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   limit query int false "Page size" default(20)
// @Param   next_token query string false "Cursor from the previous page"
// @Success 200 {object} dto.ListClosingsResponse
// @Failure 400 {object} map[string]string "Invalid page token"
// @Failure 500 {object} map[string]string "Failed to list sessions"
// @Router /companies/{company_id}/closings [get]
func (h *closingHandler) listClosings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	nextToken := c.Query("next_token")

	closings, newToken, err := h.closingService.ListClosings(c.Request.Context(), companyID, limit, nextToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid page token"})
		} else {
			logger.Error("Failed to list closings", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list closing sessions"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToListClosingsResponse(closings, newToken))
}

// getClosing godoc
// @Summary Get a closing session
// @Tags closings
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   closing_id path string true "Closing ID"
// @Success 200 {object} dto.ClosingResponse
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 500 {object} map[string]string "Failed to retrieve session"
// @Router /companies/{company_id}/closings/{closing_id} [get]
func (h *closingHandler) getClosing(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	closingID := c.Param("closing_id")

	closing, err := h.closingService.GetClosing(c.Request.Context(), companyID, closingID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Closing session not found"})
		} else {
			logger.Error("Failed to get closing", slog.String("error", err.Error()), slog.String("closing_id", closingID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve closing session"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToClosingResponse(closing))
}

// closeClosing godoc
// @Summary Finalize a closing session
// @Description Records the close time and freezes the session's record set
// @Tags closings
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   closing_id path string true "Closing ID"
// @Param   close body dto.CloseClosingRequest true "Close time"
// @Success 200 {object} dto.ClosingResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 409 {object} map[string]string "Session already closed"
// @Failure 500 {object} map[string]string "Failed to finalize session"
// @Router /companies/{company_id}/closings/{closing_id}/close [post]
func (h *closingHandler) closeClosing(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	closingID := c.Param("closing_id")

	var req dto.CloseClosingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CloseClosing", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	operatorID, _ := middleware.GetOperatorIDFromContext(c)

	closing, err := h.closingService.CloseClosing(c.Request.Context(), companyID, closingID, req, operatorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Closing session not found"})
		case errors.Is(err, apperrors.ErrClosingClosed):
			c.JSON(http.StatusConflict, gin.H{"error": "Closing session is already finalized"})
		default:
			logger.Error("Failed to finalize closing", slog.String("error", err.Error()), slog.String("closing_id", closingID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to finalize closing session"})
		}
		return
	}

	logger.Info("Closing session finalized", slog.String("closing_id", closingID))
	c.JSON(http.StatusOK, dto.ToClosingResponse(closing))
}

// appendRecords godoc
// @Summary Append records to an open session
// @Description Adds a batch of payment, supply, withdrawal, installment, budget, devolution and discount records
// @Tags closings
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   closing_id path string true "Closing ID"
// @Param   records body dto.AppendRecordsRequest true "Record batch"
// @Success 200 {object} dto.AppendRecordsResponse
// @Failure 400 {object} map[string]string "Invalid input or malformed amount"
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 409 {object} map[string]string "Session already closed"
// @Failure 500 {object} map[string]string "Failed to append records"
// @Router /companies/{company_id}/closings/{closing_id}/records [post]
func (h *closingHandler) appendRecords(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	closingID := c.Param("closing_id")

	var req dto.AppendRecordsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AppendRecords", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	if req.Count() == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Record batch is empty"})
		return
	}

	operatorID, _ := middleware.GetOperatorIDFromContext(c)

	appended, err := h.closingService.AppendRecords(c.Request.Context(), companyID, closingID, req, operatorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Closing session not found"})
		case errors.Is(err, apperrors.ErrClosingClosed):
			c.JSON(http.StatusConflict, gin.H{"error": "Closing session no longer accepts records"})
		case domain.IsMalformedAmount(err):
			logger.Warn("Rejected record batch with malformed amount", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to append records", slog.String("error", err.Error()), slog.String("closing_id", closingID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to append records"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.AppendRecordsResponse{Appended: appended})
}
