package services

import (
	"context"

	"github.com/caixafacil/pos_closing_app/internal/core/domain"
	"github.com/caixafacil/pos_closing_app/internal/dto"
)

// ClosingReaderSvc defines read operations for closing sessions
type ClosingReaderSvc interface {
	// GetClosing retrieves a specific closing session within a company.
	GetClosing(ctx context.Context, companyID, closingID string) (*domain.ClosingSession, error)

	// ListClosings retrieves a page of closing sessions for a company, newest
	// first. nextToken paginates; an empty returned token means the last page.
	ListClosings(ctx context.Context, companyID string, limit int, nextToken string) ([]domain.ClosingSession, string, error)
}

// ClosingWriterSvc defines write operations for closing sessions
type ClosingWriterSvc interface {
	// OpenClosing starts a new closing session for a company register.
	OpenClosing(ctx context.Context, companyID string, req dto.OpenClosingRequest, creatorOperatorID string) (*domain.ClosingSession, error)

	// CloseClosing finalizes an open session. Once closed its record set is
	// immutable.
	CloseClosing(ctx context.Context, companyID, closingID string, req dto.CloseClosingRequest, operatorID string) (*domain.ClosingSession, error)

	// AppendRecords adds a batch of records to an open session. Appending to
	// a closed session fails with a conflict error.
	AppendRecords(ctx context.Context, companyID, closingID string, req dto.AppendRecordsRequest, operatorID string) (int, error)
}

// ClosingSvcFacade combines all closing-session service interfaces
type ClosingSvcFacade interface {
	ClosingReaderSvc
	ClosingWriterSvc
}
