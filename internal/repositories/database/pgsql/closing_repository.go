package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/caixafacil/pos_closing_app/internal/apperrors"
	"github.com/caixafacil/pos_closing_app/internal/core/domain"
	portsrepo "github.com/caixafacil/pos_closing_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxClosingRepository struct {
	BaseRepository
}

// newPgxClosingRepository creates a new repository for closing sessions.
func newPgxClosingRepository(pool *pgxpool.Pool) portsrepo.ClosingRepositoryFacade {
	return &PgxClosingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ClosingRepositoryFacade = (*PgxClosingRepository)(nil)

func (r *PgxClosingRepository) SaveClosing(ctx context.Context, closing domain.ClosingSession) error {
	query := `
		INSERT INTO closings (closing_id, company_id, register, open_date, open_time, close_time, opening_note, status, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`

	_, err := r.Pool.Exec(ctx, query,
		closing.ClosingID,
		closing.CompanyID,
		closing.Register,
		closing.OpenDate,
		closing.OpenTime,
		closing.CloseTime,
		closing.OpeningNote,
		closing.Status,
		closing.CreatedAt,
		closing.CreatedBy,
		closing.LastUpdatedAt,
		closing.LastUpdatedBy,
	)

	if err != nil {
		if mapped := mapConstraintError(err); mapped != err {
			return fmt.Errorf("failed to save closing %s: %w", closing.ClosingID, mapped)
		}
		return fmt.Errorf("failed to save closing %s: %w", closing.ClosingID, err)
	}
	return nil
}

func (r *PgxClosingRepository) FindClosingByID(ctx context.Context, companyID, closingID string) (*domain.ClosingSession, error) {
	query := `
		SELECT closing_id, company_id, register, open_date, open_time, close_time, opening_note, status, created_at, created_by, last_updated_at, last_updated_by
		FROM closings
		WHERE company_id = $1 AND closing_id = $2;
	`
	var closing domain.ClosingSession
	err := r.Pool.QueryRow(ctx, query, companyID, closingID).Scan(
		&closing.ClosingID,
		&closing.CompanyID,
		&closing.Register,
		&closing.OpenDate,
		&closing.OpenTime,
		&closing.CloseTime,
		&closing.OpeningNote,
		&closing.Status,
		&closing.CreatedAt,
		&closing.CreatedBy,
		&closing.LastUpdatedAt,
		&closing.LastUpdatedBy,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find closing %s: %w", closingID, err)
	}

	return &closing, nil
}

// ListClosings pages through a company's sessions newest first. The cursor is
// the (created_at, closing_id) pair of the last row of the previous page;
// closing_id breaks ties between sessions opened at the same instant.
func (r *PgxClosingRepository) ListClosings(ctx context.Context, companyID string, limit int, cursorOpenedAt *time.Time, cursorID string) ([]domain.ClosingSession, error) {
	query := `
		SELECT closing_id, company_id, register, open_date, open_time, close_time, opening_note, status, created_at, created_by, last_updated_at, last_updated_by
		FROM closings
		WHERE company_id = $1
		  AND ($2::timestamptz IS NULL OR (created_at, closing_id) < ($2, $3))
		ORDER BY created_at DESC, closing_id DESC
		LIMIT $4;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, cursorOpenedAt, cursorID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query closings for company %s: %w", companyID, err)
	}
	defer rows.Close()

	closings, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.ClosingSession, error) {
		var closing domain.ClosingSession
		err := row.Scan(
			&closing.ClosingID,
			&closing.CompanyID,
			&closing.Register,
			&closing.OpenDate,
			&closing.OpenTime,
			&closing.CloseTime,
			&closing.OpeningNote,
			&closing.Status,
			&closing.CreatedAt,
			&closing.CreatedBy,
			&closing.LastUpdatedAt,
			&closing.LastUpdatedBy,
		)
		return closing, err
	})

	if err != nil {
		return nil, fmt.Errorf("failed to scan closings: %w", err)
	}
	if closings == nil {
		return []domain.ClosingSession{}, nil
	}
	return closings, nil
}

// MarkClosed finalizes an open session. The status guard in the WHERE clause
// makes finalization idempotent-safe under concurrent close requests: the
// second request affects zero rows and gets a conflict.
func (r *PgxClosingRepository) MarkClosed(ctx context.Context, companyID, closingID, closeTime, updatedBy string) error {
	query := `
		UPDATE closings
		SET status = $1, close_time = $2, last_updated_at = $3, last_updated_by = $4
		WHERE company_id = $5 AND closing_id = $6 AND status = $7;
	`
	tag, err := r.Pool.Exec(ctx, query,
		domain.ClosingClosed,
		closeTime,
		time.Now(),
		updatedBy,
		companyID,
		closingID,
		domain.ClosingOpen,
	)
	if err != nil {
		return fmt.Errorf("failed to mark closing %s closed: %w", closingID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("closing %s is not open: %w", closingID, apperrors.ErrClosingClosed)
	}
	return nil
}

// AppendRecords persists the whole batch in one transaction; a failure on any
// record rolls back every insert.
func (r *PgxClosingRepository) AppendRecords(ctx context.Context, closingID string, records domain.RecordSet) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	for _, p := range records.Payments {
		_, err := tx.Exec(ctx, `
			INSERT INTO closing_payments (record_id, closing_id, type_code, description, amount, created_at, created_by, last_updated_at, last_updated_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`,
			p.RecordID, closingID, p.TypeCode, p.Description, p.Amount,
			p.CreatedAt, p.CreatedBy, p.LastUpdatedAt, p.LastUpdatedBy,
		)
		if err != nil {
			return fmt.Errorf("failed to insert payment record: %w", mapConstraintError(err))
		}
	}

	for _, s := range records.Supplies {
		_, err := tx.Exec(ctx, `
			INSERT INTO closing_supplies (record_id, closing_id, amount, received_at, note, created_at, created_by, last_updated_at, last_updated_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`,
			s.RecordID, closingID, s.Amount, s.ReceivedAt, s.Note,
			s.CreatedAt, s.CreatedBy, s.LastUpdatedAt, s.LastUpdatedBy,
		)
		if err != nil {
			return fmt.Errorf("failed to insert supply record: %w", mapConstraintError(err))
		}
	}

	for _, w := range records.Withdrawals {
		_, err := tx.Exec(ctx, `
			INSERT INTO closing_withdrawals (record_id, closing_id, amount, paid_at, note, created_at, created_by, last_updated_at, last_updated_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`,
			w.RecordID, closingID, w.Amount, w.PaidAt, w.Note,
			w.CreatedAt, w.CreatedBy, w.LastUpdatedAt, w.LastUpdatedBy,
		)
		if err != nil {
			return fmt.Errorf("failed to insert withdrawal record: %w", mapConstraintError(err))
		}
	}

	for _, i := range records.Installments {
		_, err := tx.Exec(ctx, `
			INSERT INTO closing_installments (record_id, closing_id, amount, customer_name, exit_time, created_at, created_by, last_updated_at, last_updated_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`,
			i.RecordID, closingID, i.Amount, i.CustomerName, i.ExitTime,
			i.CreatedAt, i.CreatedBy, i.LastUpdatedAt, i.LastUpdatedBy,
		)
		if err != nil {
			return fmt.Errorf("failed to insert installment record: %w", mapConstraintError(err))
		}
	}

	for _, b := range records.Budgets {
		_, err := tx.Exec(ctx, `
			INSERT INTO closing_budgets (record_id, closing_id, amount, seller_name, created_at, created_by, last_updated_at, last_updated_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`,
			b.RecordID, closingID, b.Amount, b.SellerName,
			b.CreatedAt, b.CreatedBy, b.LastUpdatedAt, b.LastUpdatedBy,
		)
		if err != nil {
			return fmt.Errorf("failed to insert budget record: %w", mapConstraintError(err))
		}
	}

	for _, d := range records.Devolutions {
		_, err := tx.Exec(ctx, `
			INSERT INTO closing_devolutions (record_id, closing_id, type_code, amount, reason, exit_time, created_at, created_by, last_updated_at, last_updated_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);`,
			d.RecordID, closingID, d.TypeCode, d.Amount, d.Reason, d.ExitTime,
			d.CreatedAt, d.CreatedBy, d.LastUpdatedAt, d.LastUpdatedBy,
		)
		if err != nil {
			return fmt.Errorf("failed to insert devolution record: %w", mapConstraintError(err))
		}
	}

	for _, d := range records.Discounts {
		_, err := tx.Exec(ctx, `
			INSERT INTO closing_discounts (record_id, closing_id, amount, exit_time, seller_name, created_at, created_by, last_updated_at, last_updated_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`,
			d.RecordID, closingID, d.Amount, d.ExitTime, d.SellerName,
			d.CreatedAt, d.CreatedBy, d.LastUpdatedAt, d.LastUpdatedBy,
		)
		if err != nil {
			return fmt.Errorf("failed to insert discount record: %w", mapConstraintError(err))
		}
	}

	return r.Commit(ctx, tx)
}
