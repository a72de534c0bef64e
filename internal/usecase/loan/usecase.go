package loan

import (
	"context"
	"errors"
	"fmt"
	"time"

	"librarium-backend/internal/domain/catalog"
	domainLoan "librarium-backend/internal/domain/loan"
	"librarium-backend/internal/domain/uow"
	"librarium-backend/pkg/id"

	"gorm.io/gorm"
)

// Usecase drives the loan lifecycle:
//
//	requested --approve--> active --return--> returned
//	requested --reject---> rejected
//
// Reject and Return free the assigned copy and bump the material's
// availability counter in the same transaction as the status change, so
// a copy can never be simultaneously "on loan" and "available". The
// status precondition is re-checked on a locked row inside the
// transaction; a lost race surfaces as ErrInvalidState.
type Usecase struct {
	loans      domainLoan.Repository
	materials  catalog.MaterialRepository
	copies     catalog.CopyRepository
	uow        uow.UnitOfWork
	loanPeriod time.Duration
}

func NewUsecase(loans domainLoan.Repository, materials catalog.MaterialRepository, copies catalog.CopyRepository, tx uow.UnitOfWork, loanPeriod time.Duration) *Usecase {
	return &Usecase{loans: loans, materials: materials, copies: copies, uow: tx, loanPeriod: loanPeriod}
}

// Request creates a loan in the requested status: it assigns an
// available copy, marks it on loan and decrements the material's
// availability, all in one transaction.
func (u *Usecase) Request(ctx context.Context, in RequestLoanInput) (*LoanDTO, error) {
	if in.MaterialID == 0 {
		return nil, errors.New("invalid input: material_id is required")
	}
	if in.BorrowerID == "" && (in.GuestName == "" || in.GuestEmail == "") {
		return nil, errors.New("invalid input: borrower_id or guest name and email required")
	}
	if in.BorrowerID != "" && len(in.BorrowerID) != 32 {
		return nil, errors.New("invalid input: borrower_id must be a 32-char id")
	}

	var dto *LoanDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		m, err := r.Materials.GetByIDForUpdate(ctx, in.MaterialID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return catalog.ErrNotFound
			}
			return err
		}
		if m.Quantity <= 0 {
			return catalog.ErrNoAvailableCopy
		}

		cp, err := r.Copies.GetAvailableByMaterialIDForUpdate(ctx, m.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// quantity said yes but no copy row agrees; the
				// counter drifted, refuse rather than over-lend
				return catalog.ErrNoAvailableCopy
			}
			return err
		}

		now := time.Now().UTC()
		due := in.DueDate
		if due.IsZero() {
			due = now.Add(u.loanPeriod)
		}
		if due.Before(now) {
			return fmt.Errorf("invalid input: due date %s is in the past", due.Format(time.RFC3339))
		}

		l := &domainLoan.Loan{
			LoanID:     id.NewID32(),
			MaterialID: m.ID,
			CopyID:     &cp.ID,
			BorrowerID: in.BorrowerID,
			GuestName:  in.GuestName,
			GuestEmail: in.GuestEmail,
			Status:     domainLoan.StatusRequested,
			LoanDate:   now,
			DueDate:    due,
		}
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}
		if err := r.Copies.UpdateStatus(ctx, cp.ID, catalog.CopyOnLoan); err != nil {
			return err
		}
		if err := r.Materials.IncrementQuantity(ctx, m.ID, -1); err != nil {
			return err
		}

		cp.Status = catalog.CopyOnLoan
		m.Quantity--
		dto = toDTO(l, m, cp)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Approve moves a requested loan to active. The copy was already taken
// out of circulation when the request was created, so no copy or
// material bookkeeping happens here.
func (u *Usecase) Approve(ctx context.Context, loanID string) (*LoanDTO, error) {
	var dto *LoanDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domainLoan.Loan) error {
		if l.Status != domainLoan.StatusRequested {
			return domainLoan.ErrInvalidState
		}
		if l.CopyID == nil {
			return domainLoan.ErrNoCopyAssigned
		}

		l.Status = domainLoan.StatusActive
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}

		var err error
		dto, err = u.describe(ctx, r, l)
		return err
	})
	if err != nil {
		return nil, mapLoanErr(err)
	}
	return dto, nil
}

// Reject closes a requested loan and puts its copy back in circulation.
func (u *Usecase) Reject(ctx context.Context, loanID string) (*LoanDTO, error) {
	return u.release(ctx, loanID, domainLoan.StatusRejected, func(l *domainLoan.Loan) error {
		if l.Status != domainLoan.StatusRequested {
			return domainLoan.ErrInvalidState
		}
		return nil
	})
}

// Return closes a loan and puts its copy back in circulation. Returning
// an already-closed loan fails with ErrInvalidState rather than
// succeeding idempotently: a second success would increment the
// material's availability twice.
func (u *Usecase) Return(ctx context.Context, loanID string) (*LoanDTO, error) {
	return u.release(ctx, loanID, domainLoan.StatusReturned, func(l *domainLoan.Loan) error {
		if l.Status.Terminal() {
			return domainLoan.ErrInvalidState
		}
		return nil
	})
}

// release is the shared terminal transition: loan closed, return date
// stamped, copy freed and material quantity bumped in one transaction.
func (u *Usecase) release(ctx context.Context, loanID string, target domainLoan.Status, precondition func(*domainLoan.Loan) error) (*LoanDTO, error) {
	var dto *LoanDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domainLoan.Loan) error {
		if err := precondition(l); err != nil {
			return err
		}
		if l.CopyID == nil {
			return domainLoan.ErrNoCopyAssigned
		}

		now := time.Now().UTC()
		l.Status = target
		l.ReturnDate = &now
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		if err := r.Copies.UpdateStatus(ctx, *l.CopyID, catalog.CopyAvailable); err != nil {
			return err
		}
		if err := r.Materials.IncrementQuantity(ctx, l.MaterialID, +1); err != nil {
			return err
		}

		var err error
		dto, err = u.describe(ctx, r, l)
		return err
	})
	if err != nil {
		return nil, mapLoanErr(err)
	}
	return dto, nil
}

// mapLoanErr narrows a missing row to ErrNotFound; store failures pass
// through untouched so the HTTP layer reports them as such instead of
// a false 404.
func mapLoanErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainLoan.ErrNotFound
	}
	return err
}

func (u *Usecase) Get(ctx context.Context, loanID string) (*LoanDTO, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, mapLoanErr(err)
	}
	return u.describe(ctx, uow.Repos{Loans: u.loans, Copies: u.copies, Materials: u.materials}, l)
}

func (u *Usecase) ListByBorrower(ctx context.Context, borrowerID string) ([]LoanDTO, error) {
	loans, err := u.loans.ListByBorrowerID(ctx, borrowerID)
	if err != nil {
		return nil, err
	}
	out := make([]LoanDTO, 0, len(loans))
	for i := range loans {
		dto, err := u.describe(ctx, uow.Repos{Loans: u.loans, Copies: u.copies, Materials: u.materials}, &loans[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *dto)
	}
	return out, nil
}

// describe loads the material and copy relations and builds the DTO.
func (u *Usecase) describe(ctx context.Context, r uow.Repos, l *domainLoan.Loan) (*LoanDTO, error) {
	m, err := r.Materials.GetByID(ctx, l.MaterialID)
	if err != nil {
		return nil, err
	}
	var cp *catalog.Copy
	if l.CopyID != nil {
		cp, err = r.Copies.GetByID(ctx, *l.CopyID)
		if err != nil {
			return nil, err
		}
	}
	return toDTO(l, m, cp), nil
}

func toDTO(l *domainLoan.Loan, m *catalog.Material, cp *catalog.Copy) *LoanDTO {
	dto := &LoanDTO{
		LoanID:     l.LoanID,
		Status:     string(l.Status),
		BorrowerID: l.BorrowerID,
		GuestName:  l.GuestName,
		GuestEmail: l.GuestEmail,
		LoanDate:   l.LoanDate,
		DueDate:    l.DueDate,
		ReturnDate: l.ReturnDate,
	}
	if m != nil {
		dto.Material = &MaterialSummary{ID: m.ID, Title: m.Title, Author: m.Author, ISBN: m.ISBN, Quantity: m.Quantity}
	}
	if cp != nil {
		dto.Copy = &CopySummary{RegistrationNumber: cp.RegistrationNumber, Status: string(cp.Status)}
	}
	return dto
}
