package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/caixafacil/pos_closing_app/internal/apperrors"
	"github.com/caixafacil/pos_closing_app/internal/core/domain"
	portsrepo "github.com/caixafacil/pos_closing_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCompanyRepository struct {
	BaseRepository
}

// newPgxCompanyRepository creates a new repository for company data.
func newPgxCompanyRepository(pool *pgxpool.Pool) portsrepo.CompanyRepositoryFacade {
	return &PgxCompanyRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.CompanyRepositoryFacade = (*PgxCompanyRepository)(nil)

// SaveCompany inserts a new company. Document numbers are unique; a repeat
// insert surfaces as a duplicate error.
func (r *PgxCompanyRepository) SaveCompany(ctx context.Context, company domain.Company) error {
	query := `
		INSERT INTO companies (company_id, name, trade_name, document, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`

	_, err := r.Pool.Exec(ctx, query,
		company.CompanyID,
		company.Name,
		company.TradeName,
		company.Document,
		company.IsActive,
		company.CreatedAt,
		company.CreatedBy,
		company.LastUpdatedAt,
		company.LastUpdatedBy,
	)

	if err != nil {
		if mapped := mapConstraintError(err); mapped != err {
			return fmt.Errorf("company document %s already registered: %w", company.Document, mapped)
		}
		return fmt.Errorf("failed to save company %s: %w", company.CompanyID, err)
	}
	return nil
}

// FindCompanyByID retrieves a company by its ID.
func (r *PgxCompanyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	query := `
		SELECT company_id, name, trade_name, document, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM companies
		WHERE company_id = $1;
	`
	var company domain.Company
	err := r.Pool.QueryRow(ctx, query, companyID).Scan(
		&company.CompanyID,
		&company.Name,
		&company.TradeName,
		&company.Document,
		&company.IsActive,
		&company.CreatedAt,
		&company.CreatedBy,
		&company.LastUpdatedAt,
		&company.LastUpdatedBy,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find company by id %s: %w", companyID, err)
	}

	return &company, nil
}

// ListCompanies retrieves companies, optionally including deactivated ones.
func (r *PgxCompanyRepository) ListCompanies(ctx context.Context, includeInactive bool) ([]domain.Company, error) {
	query := `
		SELECT company_id, name, trade_name, document, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM companies
		WHERE is_active OR $1
		ORDER BY name;
	`
	rows, err := r.Pool.Query(ctx, query, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("failed to query companies: %w", err)
	}
	defer rows.Close()

	companies, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Company, error) {
		var company domain.Company
		err := row.Scan(
			&company.CompanyID,
			&company.Name,
			&company.TradeName,
			&company.Document,
			&company.IsActive,
			&company.CreatedAt,
			&company.CreatedBy,
			&company.LastUpdatedAt,
			&company.LastUpdatedBy,
		)
		return company, err
	})

	if err != nil {
		return nil, fmt.Errorf("failed to scan companies: %w", err)
	}
	if companies == nil {
		return []domain.Company{}, nil
	}
	return companies, nil
}
