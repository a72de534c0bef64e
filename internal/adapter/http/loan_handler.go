package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"librarium-backend/internal/adapter/middleware"
	"librarium-backend/internal/domain/user"
	"librarium-backend/internal/usecase/loan"
)

type LoanHandler struct{ uc *loan.Usecase }

func NewLoanHandler(uc *loan.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type requestLoanReq struct {
	MaterialID uint64 `json:"material_id" validate:"required"`
	BorrowerID string `json:"borrower_id" validate:"omitempty,hex32"`
	GuestName  string `json:"guest_name"  validate:"omitempty,max=120"`
	GuestEmail string `json:"guest_email" validate:"omitempty,email"`
	// Canonical date `YYYY-MM-DD`; defaults to the configured loan period.
	DueDate string `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
}

func (h *LoanHandler) RequestLoan(c echo.Context) error {
	var req requestLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	in := loan.RequestLoanInput{
		MaterialID: req.MaterialID,
		BorrowerID: req.BorrowerID,
		GuestName:  req.GuestName,
		GuestEmail: req.GuestEmail,
	}
	// Members requesting for themselves don't repeat their id in the body.
	if in.BorrowerID == "" {
		if claims := middleware.ClaimsFrom(c); claims != nil {
			in.BorrowerID = claims.UserID
		}
	}
	if req.DueDate != "" {
		due, err := time.Parse("2006-01-02", req.DueDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid due_date"})
		}
		in.DueDate = due.UTC()
	}

	dto, err := h.uc.Request(c.Request().Context(), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) ApproveLoan(c echo.Context) error {
	loanID := c.Param("loan_id")
	if loanID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing loan_id path param"})
	}
	dto, err := h.uc.Approve(c.Request().Context(), loanID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) RejectLoan(c echo.Context) error {
	loanID := c.Param("loan_id")
	if loanID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing loan_id path param"})
	}
	dto, err := h.uc.Reject(c.Request().Context(), loanID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) ReturnLoan(c echo.Context) error {
	loanID := c.Param("loan_id")
	if loanID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing loan_id path param"})
	}
	dto, err := h.uc.Return(c.Request().Context(), loanID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// ListLoans returns the caller's own loans; librarians may list any
// borrower's via ?borrower_id=.
func (h *LoanHandler) ListLoans(c echo.Context) error {
	claims := middleware.ClaimsFrom(c)
	if claims == nil {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}
	borrowerID := claims.UserID
	if q := c.QueryParam("borrower_id"); q != "" {
		if claims.Role != user.RoleLibrarian && claims.Role != user.RoleAdmin {
			return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		}
		borrowerID = q
	}
	out, err := h.uc.ListByBorrower(c.Request().Context(), borrowerID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
