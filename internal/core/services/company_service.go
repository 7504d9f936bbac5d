package services

import (
	"context"
	"fmt"
	"time"

	"github.com/caixafacil/pos_closing_app/internal/core/domain"
	portsrepo "github.com/caixafacil/pos_closing_app/internal/core/ports/repositories"
	portssvc "github.com/caixafacil/pos_closing_app/internal/core/ports/services"
	"github.com/caixafacil/pos_closing_app/internal/dto"
	"github.com/google/uuid"
)

type companyService struct {
	BaseService
	companyRepo portsrepo.CompanyRepositoryFacade
}

// NewCompanyService creates a new company service
func NewCompanyService(companyRepo portsrepo.CompanyRepositoryFacade) portssvc.CompanySvcFacade {
	return &companyService{companyRepo: companyRepo}
}

var _ portssvc.CompanySvcFacade = (*companyService)(nil)

func (s *companyService) CreateCompany(ctx context.Context, req dto.CreateCompanyRequest, creatorOperatorID string) (*domain.Company, error) {
	now := time.Now()

	company := domain.Company{
		CompanyID: uuid.NewString(),
		Name:      req.Name,
		TradeName: req.TradeName,
		Document:  req.Document,
		IsActive:  true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorOperatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorOperatorID,
		},
	}

	if err := s.companyRepo.SaveCompany(ctx, company); err != nil {
		s.LogError(ctx, err, "Failed to save company", "document", req.Document)
		return nil, fmt.Errorf("failed to create company: %w", err)
	}

	s.LogInfo(ctx, "Company created", "company_id", company.CompanyID)
	return &company, nil
}

func (s *companyService) GetCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get company %s: %w", companyID, err)
	}
	return company, nil
}

func (s *companyService) ListCompanies(ctx context.Context) ([]domain.Company, error) {
	companies, err := s.companyRepo.ListCompanies(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	if companies == nil {
		return []domain.Company{}, nil
	}
	return companies, nil
}
