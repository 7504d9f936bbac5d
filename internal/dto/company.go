package dto

import "github.com/caixafacil/pos_closing_app/internal/core/domain"

// CreateCompanyRequest defines the payload for creating a company.
type CreateCompanyRequest struct {
	Name      string `json:"name" binding:"required"`
	TradeName string `json:"tradeName"`
	Document  string `json:"document" binding:"required,document"`
}

// CompanyResponse defines the company representation returned by the API.
type CompanyResponse struct {
	CompanyID string `json:"companyID"`
	Name      string `json:"name"`
	TradeName string `json:"tradeName"`
	Document  string `json:"document"`
	IsActive  bool   `json:"isActive"`
}

// ListCompaniesResponse wraps a list of companies.
type ListCompaniesResponse struct {
	Companies []CompanyResponse `json:"companies"`
}

// ToCompanyResponse converts a domain company to its API representation.
func ToCompanyResponse(company *domain.Company) CompanyResponse {
	return CompanyResponse{
		CompanyID: company.CompanyID,
		Name:      company.Name,
		TradeName: company.TradeName,
		Document:  company.Document,
		IsActive:  company.IsActive,
	}
}

// ToListCompaniesResponse converts a slice of domain companies.
func ToListCompaniesResponse(companies []domain.Company) ListCompaniesResponse {
	resp := ListCompaniesResponse{Companies: make([]CompanyResponse, len(companies))}
	for i := range companies {
		resp.Companies[i] = ToCompanyResponse(&companies[i])
	}
	return resp
}
