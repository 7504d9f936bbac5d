package repositories

import (
	"context"

	"github.com/caixafacil/pos_closing_app/internal/core/domain"
)

// CompanyRepositoryFacade defines persistence operations for companies.
type CompanyRepositoryFacade interface {
	SaveCompany(ctx context.Context, company domain.Company) error
	FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error)
	ListCompanies(ctx context.Context, includeInactive bool) ([]domain.Company, error)
}
