package services

import (
	portsrepo "github.com/caixafacil/pos_closing_app/internal/core/ports/repositories"
	portssvc "github.com/caixafacil/pos_closing_app/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Company = NewCompanyService(repos.CompanyRepo)
	container.Closing = NewClosingService(
		repos.ClosingRepo,
		WithCompanyRepository(repos.CompanyRepo),
	)
	container.Report = NewClosingReportService(repos.ClosingRepo, repos.RecordsRepo)

	return container
}
