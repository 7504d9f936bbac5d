package pgsql

import (
	"context"
	"fmt"

	"github.com/caixafacil/pos_closing_app/internal/apperrors"
	"github.com/caixafacil/pos_closing_app/internal/core/domain"
	portsrepo "github.com/caixafacil/pos_closing_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxClosingRecordsRepository is the read side of the record store: it plays
// the role of the point-of-sale data collaborator, returning the raw record
// set for a closing window together with SQL-side convenience sums.
type PgxClosingRecordsRepository struct {
	BaseRepository
}

// newPgxClosingRecordsRepository creates a new record-set reader.
func newPgxClosingRecordsRepository(pool *pgxpool.Pool) portsrepo.ClosingRecordsRepositoryFacade {
	return &PgxClosingRecordsRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ClosingRecordsRepositoryFacade = (*PgxClosingRecordsRepository)(nil)

func (r *PgxClosingRecordsRepository) FetchRecordSet(ctx context.Context, query domain.ClosingQuery) (domain.RecordSet, domain.CollaboratorAggregates, error) {
	if !query.Complete() {
		return domain.RecordSet{}, domain.CollaboratorAggregates{}, apperrors.ErrIncompleteParams
	}

	var set domain.RecordSet
	var err error

	if set.Payments, err = r.fetchPayments(ctx, query.ClosingID); err != nil {
		return domain.RecordSet{}, domain.CollaboratorAggregates{}, err
	}
	if set.Supplies, err = r.fetchSupplies(ctx, query.ClosingID); err != nil {
		return domain.RecordSet{}, domain.CollaboratorAggregates{}, err
	}
	if set.Withdrawals, err = r.fetchWithdrawals(ctx, query.ClosingID); err != nil {
		return domain.RecordSet{}, domain.CollaboratorAggregates{}, err
	}
	if set.Installments, err = r.fetchInstallments(ctx, query.ClosingID); err != nil {
		return domain.RecordSet{}, domain.CollaboratorAggregates{}, err
	}
	if set.Budgets, err = r.fetchBudgets(ctx, query.ClosingID); err != nil {
		return domain.RecordSet{}, domain.CollaboratorAggregates{}, err
	}
	if set.Devolutions, err = r.fetchDevolutions(ctx, query.ClosingID); err != nil {
		return domain.RecordSet{}, domain.CollaboratorAggregates{}, err
	}
	if set.Discounts, err = r.fetchDiscounts(ctx, query.ClosingID); err != nil {
		return domain.RecordSet{}, domain.CollaboratorAggregates{}, err
	}

	aggregates, err := r.fetchAggregates(ctx, query.ClosingID)
	if err != nil {
		return domain.RecordSet{}, domain.CollaboratorAggregates{}, err
	}

	return set, aggregates, nil
}

func (r *PgxClosingRecordsRepository) fetchPayments(ctx context.Context, closingID string) ([]domain.PaymentRecord, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT record_id, closing_id, type_code, description, amount, created_at, created_by, last_updated_at, last_updated_by
		FROM closing_payments
		WHERE closing_id = $1
		ORDER BY created_at, record_id;`, closingID)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}
	defer rows.Close()

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.PaymentRecord, error) {
		var p domain.PaymentRecord
		err := row.Scan(&p.RecordID, &p.ClosingID, &p.TypeCode, &p.Description, &p.Amount,
			&p.CreatedAt, &p.CreatedBy, &p.LastUpdatedAt, &p.LastUpdatedBy)
		return p, err
	})
}

func (r *PgxClosingRecordsRepository) fetchSupplies(ctx context.Context, closingID string) ([]domain.SupplyRecord, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT record_id, closing_id, amount, received_at, note, created_at, created_by, last_updated_at, last_updated_by
		FROM closing_supplies
		WHERE closing_id = $1
		ORDER BY received_at, record_id;`, closingID)
	if err != nil {
		return nil, fmt.Errorf("failed to query supplies: %w", err)
	}
	defer rows.Close()

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.SupplyRecord, error) {
		var s domain.SupplyRecord
		err := row.Scan(&s.RecordID, &s.ClosingID, &s.Amount, &s.ReceivedAt, &s.Note,
			&s.CreatedAt, &s.CreatedBy, &s.LastUpdatedAt, &s.LastUpdatedBy)
		return s, err
	})
}

func (r *PgxClosingRecordsRepository) fetchWithdrawals(ctx context.Context, closingID string) ([]domain.WithdrawalRecord, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT record_id, closing_id, amount, paid_at, note, created_at, created_by, last_updated_at, last_updated_by
		FROM closing_withdrawals
		WHERE closing_id = $1
		ORDER BY paid_at, record_id;`, closingID)
	if err != nil {
		return nil, fmt.Errorf("failed to query withdrawals: %w", err)
	}
	defer rows.Close()

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.WithdrawalRecord, error) {
		var w domain.WithdrawalRecord
		err := row.Scan(&w.RecordID, &w.ClosingID, &w.Amount, &w.PaidAt, &w.Note,
			&w.CreatedAt, &w.CreatedBy, &w.LastUpdatedAt, &w.LastUpdatedBy)
		return w, err
	})
}

func (r *PgxClosingRecordsRepository) fetchInstallments(ctx context.Context, closingID string) ([]domain.InstallmentSaleRecord, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT record_id, closing_id, amount, customer_name, exit_time, created_at, created_by, last_updated_at, last_updated_by
		FROM closing_installments
		WHERE closing_id = $1
		ORDER BY exit_time, record_id;`, closingID)
	if err != nil {
		return nil, fmt.Errorf("failed to query installments: %w", err)
	}
	defer rows.Close()

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.InstallmentSaleRecord, error) {
		var i domain.InstallmentSaleRecord
		err := row.Scan(&i.RecordID, &i.ClosingID, &i.Amount, &i.CustomerName, &i.ExitTime,
			&i.CreatedAt, &i.CreatedBy, &i.LastUpdatedAt, &i.LastUpdatedBy)
		return i, err
	})
}

func (r *PgxClosingRecordsRepository) fetchBudgets(ctx context.Context, closingID string) ([]domain.BudgetInProgressRecord, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT record_id, closing_id, amount, seller_name, created_at, created_by, last_updated_at, last_updated_by
		FROM closing_budgets
		WHERE closing_id = $1
		ORDER BY record_id;`, closingID)
	if err != nil {
		return nil, fmt.Errorf("failed to query budgets: %w", err)
	}
	defer rows.Close()

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.BudgetInProgressRecord, error) {
		var b domain.BudgetInProgressRecord
		err := row.Scan(&b.RecordID, &b.ClosingID, &b.Amount, &b.SellerName,
			&b.CreatedAt, &b.CreatedBy, &b.LastUpdatedAt, &b.LastUpdatedBy)
		return b, err
	})
}

func (r *PgxClosingRecordsRepository) fetchDevolutions(ctx context.Context, closingID string) ([]domain.DevolutionRecord, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT record_id, closing_id, type_code, amount, reason, exit_time, created_at, created_by, last_updated_at, last_updated_by
		FROM closing_devolutions
		WHERE closing_id = $1
		ORDER BY exit_time, record_id;`, closingID)
	if err != nil {
		return nil, fmt.Errorf("failed to query devolutions: %w", err)
	}
	defer rows.Close()

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.DevolutionRecord, error) {
		var d domain.DevolutionRecord
		err := row.Scan(&d.RecordID, &d.ClosingID, &d.TypeCode, &d.Amount, &d.Reason, &d.ExitTime,
			&d.CreatedAt, &d.CreatedBy, &d.LastUpdatedAt, &d.LastUpdatedBy)
		return d, err
	})
}

func (r *PgxClosingRecordsRepository) fetchDiscounts(ctx context.Context, closingID string) ([]domain.DiscountRecord, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT record_id, closing_id, amount, exit_time, seller_name, created_at, created_by, last_updated_at, last_updated_by
		FROM closing_discounts
		WHERE closing_id = $1
		ORDER BY exit_time, record_id;`, closingID)
	if err != nil {
		return nil, fmt.Errorf("failed to query discounts: %w", err)
	}
	defer rows.Close()

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.DiscountRecord, error) {
		var d domain.DiscountRecord
		err := row.Scan(&d.RecordID, &d.ClosingID, &d.Amount, &d.ExitTime, &d.SellerName,
			&d.CreatedAt, &d.CreatedBy, &d.LastUpdatedAt, &d.LastUpdatedBy)
		return d, err
	})
}

// fetchAggregates computes the convenience sums on the SQL side. These mirror
// what the upstream point-of-sale system ships alongside its record payloads;
// the report service recomputes everything from raw records and uses these
// only to flag divergence.
func (r *PgxClosingRecordsRepository) fetchAggregates(ctx context.Context, closingID string) (domain.CollaboratorAggregates, error) {
	query := `
		SELECT
			COALESCE((SELECT SUM(amount) FROM closing_payments WHERE closing_id = $1 AND type_code = 'cash'), 0),
			COALESCE((SELECT SUM(amount) FROM closing_payments WHERE closing_id = $1 AND type_code <> ''), 0),
			COALESCE((SELECT SUM(amount) FROM closing_supplies WHERE closing_id = $1), 0),
			COALESCE((SELECT SUM(amount) FROM closing_withdrawals WHERE closing_id = $1), 0),
			COALESCE((SELECT SUM(amount) FROM closing_installments WHERE closing_id = $1), 0),
			COALESCE((SELECT SUM(amount) FROM closing_budgets WHERE closing_id = $1), 0),
			COALESCE((SELECT SUM(amount) FROM closing_devolutions WHERE closing_id = $1), 0),
			COALESCE((SELECT SUM(amount) FROM closing_devolutions WHERE closing_id = $1 AND type_code = 'cash'), 0),
			COALESCE((SELECT SUM(amount) FROM closing_discounts WHERE closing_id = $1), 0);
	`
	var agg domain.CollaboratorAggregates
	err := r.Pool.QueryRow(ctx, query, closingID).Scan(
		&agg.PaymentsCashAmount,
		&agg.GroupedPaymentsTotal,
		&agg.SupplyAmount,
		&agg.SangriaAmount,
		&agg.InstallmentsAmount,
		&agg.BudgetAmount,
		&agg.DevolutionAmount,
		&agg.DevolutionCashAmount,
		&agg.DiscountAmount,
	)
	if err != nil {
		return domain.CollaboratorAggregates{}, fmt.Errorf("failed to compute closing aggregates: %w", err)
	}
	return agg, nil
}
