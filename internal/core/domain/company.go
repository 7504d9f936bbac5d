package domain

// Company represents a tenant: one retail company whose point-of-sale
// closings are managed by this service. All closings and their records are
// scoped by CompanyID.
type Company struct {
	CompanyID string `json:"companyID"`
	Name      string `json:"name"`
	TradeName string `json:"tradeName"`
	Document  string `json:"document"` // CNPJ or equivalent registration number
	IsActive  bool   `json:"isActive"`
	AuditFields
}
