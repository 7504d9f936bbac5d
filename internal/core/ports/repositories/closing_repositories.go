package repositories

import (
	"context"
	"time"

	"github.com/caixafacil/pos_closing_app/internal/core/domain"
)

// ClosingRepositoryFacade defines persistence operations for closing
// sessions themselves (lifecycle, listing).
type ClosingRepositoryFacade interface {
	SaveClosing(ctx context.Context, closing domain.ClosingSession) error
	FindClosingByID(ctx context.Context, companyID, closingID string) (*domain.ClosingSession, error)

	// ListClosings returns up to limit sessions for the company, newest
	// first. When cursorOpenedAt/cursorID are set, listing resumes strictly
	// after that position.
	ListClosings(ctx context.Context, companyID string, limit int, cursorOpenedAt *time.Time, cursorID string) ([]domain.ClosingSession, error)

	// MarkClosed finalizes the session, recording the close time. Once
	// closed, the session's record set is immutable.
	MarkClosed(ctx context.Context, companyID, closingID, closeTime, updatedBy string) error

	// AppendRecords persists a batch of records for an open session in one
	// transaction.
	AppendRecords(ctx context.Context, closingID string, records domain.RecordSet) error
}

// ClosingRecordsRepositoryFacade is the query side: the external data
// collaborator that returns the full raw record set for a closing window.
type ClosingRecordsRepositoryFacade interface {
	// FetchRecordSet returns the raw records for the window plus the
	// collaborator's own convenience aggregates. Callers recompute totals
	// from the raw records; the aggregates serve only as a cross-check.
	FetchRecordSet(ctx context.Context, query domain.ClosingQuery) (domain.RecordSet, domain.CollaboratorAggregates, error)
}
