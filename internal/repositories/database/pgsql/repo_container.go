package pgsql

import (
	portsrepo "github.com/caixafacil/pos_closing_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CompanyRepo: newPgxCompanyRepository(dbPool),
		ClosingRepo: newPgxClosingRepository(dbPool),
		RecordsRepo: newPgxClosingRecordsRepository(dbPool),
	}
}
