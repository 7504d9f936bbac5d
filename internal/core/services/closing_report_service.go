package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/caixafacil/pos_closing_app/internal/apperrors"
	"github.com/caixafacil/pos_closing_app/internal/core/domain"
	portsrepo "github.com/caixafacil/pos_closing_app/internal/core/ports/repositories"
	portssvc "github.com/caixafacil/pos_closing_app/internal/core/ports/services"
	"github.com/caixafacil/pos_closing_app/internal/utils/closingcalc"
	"github.com/shopspring/decimal"
)

// closingReportService implements the ClosingReportSvc interface
type closingReportService struct {
	BaseService
	closingRepo portsrepo.ClosingRepositoryFacade
	recordsRepo portsrepo.ClosingRecordsRepositoryFacade
}

// NewClosingReportService creates a new report service
func NewClosingReportService(closingRepo portsrepo.ClosingRepositoryFacade, recordsRepo portsrepo.ClosingRecordsRepositoryFacade) portssvc.ClosingReportSvc {
	return &closingReportService{
		closingRepo: closingRepo,
		recordsRepo: recordsRepo,
	}
}

var _ portssvc.ClosingReportSvc = (*closingReportService)(nil)

func (s *closingReportService) BuildReport(ctx context.Context, companyID, closingID string) (*domain.ClosingReport, error) {
	closing, err := s.closingRepo.FindClosingByID(ctx, companyID, closingID)
	if err != nil {
		return nil, fmt.Errorf("failed to get closing %s: %w", closingID, err)
	}

	query := domain.ClosingQuery{
		ClosingID: closing.ClosingID,
		CompanyID: closing.CompanyID,
		OpenDate:  closing.OpenDate,
		OpenTime:  closing.OpenTime,
		CloseTime: closing.CloseTime,
	}
	if !query.Complete() {
		s.LogError(ctx, apperrors.ErrIncompleteParams, "Closing window parameters incomplete",
			slog.String("closing_id", closingID))
		return nil, fmt.Errorf("closing %s: %w", closingID, apperrors.ErrIncompleteParams)
	}

	records, aggregates, err := s.recordsRepo.FetchRecordSet(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch records for closing %s: %w", closingID, err)
	}

	report := closingcalc.DeriveReport(*closing, records)
	s.crossCheckAggregates(ctx, closingID, &report, aggregates)

	s.LogInfo(ctx, "Closing report derived",
		slog.String("closing_id", closingID),
		slog.Int("group_count", len(report.Groups)),
		slog.String("grand_total", report.GrandTotal.String()))
	return &report, nil
}

// crossCheckAggregates compares the recomputed totals against the sums the
// data collaborator sent alongside the raw records. The recomputed values are
// authoritative; any divergence is logged so the upstream discrepancy can be
// chased, never substituted in.
func (s *closingReportService) crossCheckAggregates(ctx context.Context, closingID string, report *domain.ClosingReport, agg domain.CollaboratorAggregates) {
	groupedTotal := decimal.Zero
	for _, g := range report.Groups {
		groupedTotal = groupedTotal.Add(g.Total)
	}

	checks := []struct {
		name     string
		computed decimal.Decimal
		reported decimal.Decimal
	}{
		{"payments_cash", report.CashGroupTotal(), agg.PaymentsCashAmount},
		{"grouped_payments", groupedTotal, agg.GroupedPaymentsTotal},
		{"supply", report.SupplyTotal, agg.SupplyAmount},
		{"sangria", report.WithdrawalTotal, agg.SangriaAmount},
		{"installments", report.InstallmentsTotal, agg.InstallmentsAmount},
		{"budget", report.BudgetTotal, agg.BudgetAmount},
		{"devolution", report.DevolutionTotal, agg.DevolutionAmount},
		{"devolution_cash", report.CashDevolutionTotal, agg.DevolutionCashAmount},
		{"discount", report.DiscountTotal, agg.DiscountAmount},
	}

	for _, c := range checks {
		if !c.computed.Equal(c.reported) {
			s.LogWarn(ctx, "Collaborator aggregate disagrees with recomputed total",
				slog.String("closing_id", closingID),
				slog.String("aggregate", c.name),
				slog.String("computed", c.computed.String()),
				slog.String("reported", c.reported.String()))
		}
	}
}
