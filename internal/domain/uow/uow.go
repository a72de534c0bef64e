package uow

import (
	"context"

	"librarium-backend/internal/domain/catalog"
	"librarium-backend/internal/domain/loan"
)

type Repos struct {
	Loans     loan.Repository
	Copies    catalog.CopyRepository
	Materials catalog.MaterialRepository
}

// UnitOfWork scopes a set of repository calls to one store transaction.
// Everything inside fn commits together or not at all.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the loan first, then pass it in
	WithinLoanTx(ctx context.Context, loanID string, fn func(r Repos, l *loan.Loan) error) error
}
