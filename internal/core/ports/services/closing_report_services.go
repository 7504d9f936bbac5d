package services

import (
	"context"

	"github.com/caixafacil/pos_closing_app/internal/core/domain"
)

// ClosingReportSvc derives the financial closing report for a session.
type ClosingReportSvc interface {
	// BuildReport recomputes every aggregate for the session from its raw
	// records and returns the assembled report. It fails with
	// apperrors.ErrIncompleteParams when the session window cannot be
	// established.
	BuildReport(ctx context.Context, companyID, closingID string) (*domain.ClosingReport, error)
}
