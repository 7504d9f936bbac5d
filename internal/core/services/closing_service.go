package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/caixafacil/pos_closing_app/internal/apperrors"
	"github.com/caixafacil/pos_closing_app/internal/core/domain"
	portsrepo "github.com/caixafacil/pos_closing_app/internal/core/ports/repositories"
	portssvc "github.com/caixafacil/pos_closing_app/internal/core/ports/services"
	"github.com/caixafacil/pos_closing_app/internal/dto"
	"github.com/caixafacil/pos_closing_app/internal/utils/pagination"
	"github.com/google/uuid"
)

const defaultClosingPageSize = 20

// closingService implements the ClosingSvcFacade interface
type closingService struct {
	BaseService
	closingRepo portsrepo.ClosingRepositoryFacade
	companyRepo portsrepo.CompanyRepositoryFacade
}

// ClosingOption is a functional option for configuring the closing service
type ClosingOption func(*closingService)

// WithCompanyRepository adds the company repository used to validate that the
// target company exists before opening a session.
func WithCompanyRepository(repo portsrepo.CompanyRepositoryFacade) ClosingOption {
	return func(s *closingService) {
		s.companyRepo = repo
	}
}

// NewClosingService creates a new closing session service with the provided options
func NewClosingService(closingRepo portsrepo.ClosingRepositoryFacade, options ...ClosingOption) portssvc.ClosingSvcFacade {
	svc := &closingService{closingRepo: closingRepo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ClosingSvcFacade = (*closingService)(nil)

func (s *closingService) OpenClosing(ctx context.Context, companyID string, req dto.OpenClosingRequest, creatorOperatorID string) (*domain.ClosingSession, error) {
	if s.companyRepo != nil {
		if _, err := s.companyRepo.FindCompanyByID(ctx, companyID); err != nil {
			s.LogError(ctx, err, "Company lookup failed while opening closing",
				slog.String("company_id", companyID))
			return nil, fmt.Errorf("invalid company: %w", err)
		}
	}

	openDate, err := time.Parse("2006-01-02", req.OpenDate)
	if err != nil {
		return nil, fmt.Errorf("invalid open date %q: %w", req.OpenDate, apperrors.ErrValidation)
	}

	now := time.Now()
	closing := domain.ClosingSession{
		ClosingID:   uuid.NewString(),
		CompanyID:   companyID,
		Register:    req.Register,
		OpenDate:    openDate,
		OpenTime:    req.OpenTime,
		OpeningNote: req.OpeningNote,
		Status:      domain.ClosingOpen,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorOperatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorOperatorID,
		},
	}

	if err := s.closingRepo.SaveClosing(ctx, closing); err != nil {
		s.LogError(ctx, err, "Failed to save closing session",
			slog.String("company_id", companyID),
			slog.String("register", req.Register))
		return nil, fmt.Errorf("failed to open closing session: %w", err)
	}

	s.LogInfo(ctx, "Closing session opened",
		slog.String("closing_id", closing.ClosingID),
		slog.String("register", closing.Register))
	return &closing, nil
}

func (s *closingService) GetClosing(ctx context.Context, companyID, closingID string) (*domain.ClosingSession, error) {
	closing, err := s.closingRepo.FindClosingByID(ctx, companyID, closingID)
	if err != nil {
		return nil, fmt.Errorf("failed to get closing %s: %w", closingID, err)
	}
	return closing, nil
}

func (s *closingService) ListClosings(ctx context.Context, companyID string, limit int, nextToken string) ([]domain.ClosingSession, string, error) {
	if limit <= 0 {
		limit = defaultClosingPageSize
	}

	var cursorOpenedAt *time.Time
	var cursorID string
	if nextToken != "" {
		openedAt, id, err := pagination.DecodeClosingCursor(nextToken)
		if err != nil {
			return nil, "", fmt.Errorf("invalid page token: %w", apperrors.ErrValidation)
		}
		cursorOpenedAt = &openedAt
		cursorID = id
	}

	// Fetch one extra row to know whether another page exists.
	closings, err := s.closingRepo.ListClosings(ctx, companyID, limit+1, cursorOpenedAt, cursorID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list closings: %w", err)
	}

	var newToken string
	if len(closings) > limit {
		closings = closings[:limit]
		last := closings[limit-1]
		newToken = pagination.EncodeClosingCursor(last.CreatedAt, last.ClosingID)
	}
	return closings, newToken, nil
}

func (s *closingService) CloseClosing(ctx context.Context, companyID, closingID string, req dto.CloseClosingRequest, operatorID string) (*domain.ClosingSession, error) {
	closing, err := s.closingRepo.FindClosingByID(ctx, companyID, closingID)
	if err != nil {
		return nil, fmt.Errorf("failed to get closing %s: %w", closingID, err)
	}
	if !closing.IsOpen() {
		return nil, fmt.Errorf("closing %s is already finalized: %w", closingID, apperrors.ErrClosingClosed)
	}

	if err := s.closingRepo.MarkClosed(ctx, companyID, closingID, req.CloseTime, operatorID); err != nil {
		s.LogError(ctx, err, "Failed to finalize closing session",
			slog.String("closing_id", closingID))
		return nil, fmt.Errorf("failed to close session %s: %w", closingID, err)
	}

	closing.Status = domain.ClosingClosed
	closing.CloseTime = &req.CloseTime
	closing.LastUpdatedAt = time.Now()
	closing.LastUpdatedBy = operatorID

	s.LogInfo(ctx, "Closing session finalized",
		slog.String("closing_id", closingID),
		slog.String("close_time", req.CloseTime))
	return closing, nil
}

func (s *closingService) AppendRecords(ctx context.Context, companyID, closingID string, req dto.AppendRecordsRequest, operatorID string) (int, error) {
	closing, err := s.closingRepo.FindClosingByID(ctx, companyID, closingID)
	if err != nil {
		return 0, fmt.Errorf("failed to get closing %s: %w", closingID, err)
	}
	if !closing.IsOpen() {
		return 0, fmt.Errorf("closing %s no longer accepts records: %w", closingID, apperrors.ErrClosingClosed)
	}

	records, err := s.buildRecordSet(closingID, req, operatorID)
	if err != nil {
		return 0, err
	}

	if err := s.closingRepo.AppendRecords(ctx, closingID, records); err != nil {
		s.LogError(ctx, err, "Failed to append records",
			slog.String("closing_id", closingID),
			slog.Int("count", req.Count()))
		return 0, fmt.Errorf("failed to append records to closing %s: %w", closingID, err)
	}

	s.LogInfo(ctx, "Records appended",
		slog.String("closing_id", closingID),
		slog.Int("count", req.Count()))
	return req.Count(), nil
}

// buildRecordSet converts the request batch into domain records. Every amount
// is parsed strictly; a single malformed value rejects the whole batch.
func (s *closingService) buildRecordSet(closingID string, req dto.AppendRecordsRequest, operatorID string) (domain.RecordSet, error) {
	now := time.Now()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     operatorID,
		LastUpdatedAt: now,
		LastUpdatedBy: operatorID,
	}

	var set domain.RecordSet

	for _, p := range req.Payments {
		amount, err := domain.ParseAmount(p.Amount)
		if err != nil {
			return domain.RecordSet{}, fmt.Errorf("payment record: %w", err)
		}
		set.Payments = append(set.Payments, domain.PaymentRecord{
			RecordID:    uuid.NewString(),
			ClosingID:   closingID,
			TypeCode:    domain.PaymentTypeCode(p.TypeCode),
			Description: p.Description,
			Amount:      amount,
			AuditFields: audit,
		})
	}

	for _, sp := range req.Supplies {
		amount, err := domain.ParseAmount(sp.Amount)
		if err != nil {
			return domain.RecordSet{}, fmt.Errorf("supply record: %w", err)
		}
		set.Supplies = append(set.Supplies, domain.SupplyRecord{
			RecordID:    uuid.NewString(),
			ClosingID:   closingID,
			Amount:      amount,
			ReceivedAt:  sp.ReceivedAt,
			Note:        sp.Note,
			AuditFields: audit,
		})
	}

	for _, w := range req.Withdrawals {
		amount, err := domain.ParseAmount(w.Amount)
		if err != nil {
			return domain.RecordSet{}, fmt.Errorf("withdrawal record: %w", err)
		}
		set.Withdrawals = append(set.Withdrawals, domain.WithdrawalRecord{
			RecordID:    uuid.NewString(),
			ClosingID:   closingID,
			Amount:      amount,
			PaidAt:      w.PaidAt,
			Note:        w.Note,
			AuditFields: audit,
		})
	}

	for _, i := range req.Installments {
		amount, err := domain.ParseAmount(i.Amount)
		if err != nil {
			return domain.RecordSet{}, fmt.Errorf("installment record: %w", err)
		}
		set.Installments = append(set.Installments, domain.InstallmentSaleRecord{
			RecordID:     uuid.NewString(),
			ClosingID:    closingID,
			Amount:       amount,
			CustomerName: i.CustomerName,
			ExitTime:     i.ExitTime,
			AuditFields:  audit,
		})
	}

	for _, b := range req.Budgets {
		amount, err := domain.ParseAmount(b.Amount)
		if err != nil {
			return domain.RecordSet{}, fmt.Errorf("budget record: %w", err)
		}
		set.Budgets = append(set.Budgets, domain.BudgetInProgressRecord{
			RecordID:    uuid.NewString(),
			ClosingID:   closingID,
			Amount:      amount,
			SellerName:  b.SellerName,
			AuditFields: audit,
		})
	}

	for _, d := range req.Devolutions {
		amount, err := domain.ParseAmount(d.Amount)
		if err != nil {
			return domain.RecordSet{}, fmt.Errorf("devolution record: %w", err)
		}
		set.Devolutions = append(set.Devolutions, domain.DevolutionRecord{
			RecordID:    uuid.NewString(),
			ClosingID:   closingID,
			TypeCode:    domain.PaymentTypeCode(d.TypeCode),
			Amount:      amount,
			Reason:      d.Reason,
			ExitTime:    d.ExitTime,
			AuditFields: audit,
		})
	}

	for _, d := range req.Discounts {
		amount, err := domain.ParseAmount(d.Amount)
		if err != nil {
			return domain.RecordSet{}, fmt.Errorf("discount record: %w", err)
		}
		set.Discounts = append(set.Discounts, domain.DiscountRecord{
			RecordID:    uuid.NewString(),
			ClosingID:   closingID,
			Amount:      amount,
			ExitTime:    d.ExitTime,
			SellerName:  d.SellerName,
			AuditFields: audit,
		})
	}

	return set, nil
}
