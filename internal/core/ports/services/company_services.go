package services

import (
	"context"

	"github.com/caixafacil/pos_closing_app/internal/core/domain"
	"github.com/caixafacil/pos_closing_app/internal/dto"
)

// CompanyReaderSvc defines read operations for company data
type CompanyReaderSvc interface {
	// GetCompanyByID retrieves a specific company by its ID.
	GetCompanyByID(ctx context.Context, companyID string) (*domain.Company, error)

	// ListCompanies retrieves all active companies.
	ListCompanies(ctx context.Context) ([]domain.Company, error)
}

// CompanyWriterSvc defines write operations for company data
type CompanyWriterSvc interface {
	// CreateCompany persists a new company.
	CreateCompany(ctx context.Context, req dto.CreateCompanyRequest, creatorOperatorID string) (*domain.Company, error)
}

// CompanySvcFacade combines all company-related service interfaces
type CompanySvcFacade interface {
	CompanyReaderSvc
	CompanyWriterSvc
}
