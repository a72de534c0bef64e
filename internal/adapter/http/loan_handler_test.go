package http

import (
	"bytes"
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	catalogDomain "librarium-backend/internal/domain/catalog"
	domain "librarium-backend/internal/domain/loan"
	"librarium-backend/internal/domain/uow"
	"librarium-backend/internal/testutil/catalogmock"
	"librarium-backend/internal/testutil/loanmock"
	"librarium-backend/internal/testutil/uowmock"
	uc "librarium-backend/internal/usecase/loan"
)

// -------- helpers --------

func newEchoWithValidator() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func mustJSON(v any) *bytes.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

// newHandler wires a LoanHandler over function-backed repos holding one
// stored loan (nil for an empty store).
func newHandler(stored *domain.Loan) *LoanHandler {
	loans := &loanmock.Repo{
		GetByLoanIDForUpdateFn: func(ctx context.Context, loanID string) (*domain.Loan, error) {
			if stored == nil || stored.LoanID != loanID {
				return nil, gorm.ErrRecordNotFound
			}
			cp := *stored
			return &cp, nil
		},
		GetByLoanIDFn: func(ctx context.Context, loanID string) (*domain.Loan, error) {
			if stored == nil || stored.LoanID != loanID {
				return nil, gorm.ErrRecordNotFound
			}
			cp := *stored
			return &cp, nil
		},
	}
	materials := &catalogmock.MaterialRepo{
		GetByIDFn: func(ctx context.Context, id uint64) (*catalogDomain.Material, error) {
			return &catalogDomain.Material{ID: id, Title: "The Go Programming Language", Quantity: 1}, nil
		},
		GetByIDForUpdateFn: func(ctx context.Context, id uint64) (*catalogDomain.Material, error) {
			return &catalogDomain.Material{ID: id, Title: "The Go Programming Language", Quantity: 1}, nil
		},
	}
	copies := &catalogmock.CopyRepo{
		GetByIDFn: func(ctx context.Context, id uint64) (*catalogDomain.Copy, error) {
			return &catalogDomain.Copy{ID: id, RegistrationNumber: "REG-000042", Status: catalogDomain.CopyOnLoan}, nil
		},
		GetAvailableByMaterialIDForUpdateFn: func(ctx context.Context, materialID uint64) (*catalogDomain.Copy, error) {
			return &catalogDomain.Copy{ID: 7, MaterialID: materialID, RegistrationNumber: "REG-000042", Status: catalogDomain.CopyAvailable}, nil
		},
	}
	tx := uowmock.Passthrough(uow.Repos{Loans: loans, Copies: copies, Materials: materials})
	return NewLoanHandler(uc.NewUsecase(loans, materials, copies, tx, 14*24*time.Hour))
}

func requestedLoan() *domain.Loan {
	copyID := uint64(7)
	return &domain.Loan{
		ID:         1,
		LoanID:     strings.Repeat("a", 32),
		MaterialID: 42,
		CopyID:     &copyID,
		BorrowerID: strings.Repeat("b", 32),
		Status:     domain.StatusRequested,
		LoanDate:   time.Now().UTC(),
		DueDate:    time.Now().UTC().Add(14 * 24 * time.Hour),
	}
}

// -------- tests --------

func TestRequestLoan_Success(t *testing.T) {
	e := newEchoWithValidator()
	h := newHandler(nil)

	reqBody := map[string]any{
		"material_id": 42,
		"borrower_id": strings.Repeat("b", 32),
	}
	req := httptest.NewRequest(stdhttp.MethodPost, "/api/loans", mustJSON(reqBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.RequestLoan(c); err != nil {
		t.Fatalf("RequestLoan error: %v", err)
	}
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", rec.Code, rec.Body.String())
	}
	var got uc.LoanDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if got.Status != string(domain.StatusRequested) {
		t.Fatalf("status = %s, want requested", got.Status)
	}
	if got.Copy == nil || got.Copy.RegistrationNumber != "REG-000042" {
		t.Fatalf("copy not populated: %+v", got)
	}
}

func TestRequestLoan_BindError(t *testing.T) {
	e := newEchoWithValidator()
	h := newHandler(nil)

	req := httptest.NewRequest(stdhttp.MethodPost, "/api/loans", strings.NewReader(`{"material_id":`)) // broken JSON
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.RequestLoan(c); err != nil {
		t.Fatalf("RequestLoan error: %v", err)
	}
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestRequestLoan_ValidationFailure(t *testing.T) {
	e := newEchoWithValidator()
	h := newHandler(nil)

	reqBody := map[string]any{
		"material_id": 42,
		"borrower_id": "WAY-TOO-SHORT",
	}
	req := httptest.NewRequest(stdhttp.MethodPost, "/api/loans", mustJSON(reqBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.RequestLoan(c); err != nil {
		t.Fatalf("RequestLoan error: %v", err)
	}
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	var er ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &er); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if !containsFieldMsg(er.Details, "BorrowerID", "hex") {
		t.Fatalf("expected hex32 field error, got %+v", er.Details)
	}
}

func transitionContext(e *echo.Echo, loanID string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(stdhttp.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("loan_id")
	c.SetParamValues(loanID)
	return c, rec
}

func TestApproveLoan_Success(t *testing.T) {
	e := newEchoWithValidator()
	stored := requestedLoan()
	h := newHandler(stored)

	c, rec := transitionContext(e, stored.LoanID)
	if err := h.ApproveLoan(c); err != nil {
		t.Fatalf("ApproveLoan error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	var got uc.LoanDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if got.Status != string(domain.StatusActive) {
		t.Fatalf("status = %s, want active", got.Status)
	}
}

func TestApproveLoan_NotFound(t *testing.T) {
	e := newEchoWithValidator()
	h := newHandler(nil)

	c, rec := transitionContext(e, strings.Repeat("e", 32))
	if err := h.ApproveLoan(c); err != nil {
		t.Fatalf("ApproveLoan error: %v", err)
	}
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestApproveLoan_InvalidState(t *testing.T) {
	e := newEchoWithValidator()
	stored := requestedLoan()
	stored.Status = domain.StatusActive
	h := newHandler(stored)

	c, rec := transitionContext(e, stored.LoanID)
	if err := h.ApproveLoan(c); err != nil {
		t.Fatalf("ApproveLoan error: %v", err)
	}
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestReturnLoan_Success(t *testing.T) {
	e := newEchoWithValidator()
	stored := requestedLoan()
	stored.Status = domain.StatusActive
	h := newHandler(stored)

	c, rec := transitionContext(e, stored.LoanID)
	if err := h.ReturnLoan(c); err != nil {
		t.Fatalf("ReturnLoan error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	var got uc.LoanDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if got.Status != string(domain.StatusReturned) || got.ReturnDate == nil {
		t.Fatalf("dto = %+v, want returned with return date", got)
	}
}

func TestReturnLoan_AlreadyReturned(t *testing.T) {
	e := newEchoWithValidator()
	stored := requestedLoan()
	stored.Status = domain.StatusReturned
	h := newHandler(stored)

	c, rec := transitionContext(e, stored.LoanID)
	if err := h.ReturnLoan(c); err != nil {
		t.Fatalf("ReturnLoan error: %v", err)
	}
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestRejectLoan_MissingCopy(t *testing.T) {
	e := newEchoWithValidator()
	stored := requestedLoan()
	stored.CopyID = nil
	h := newHandler(stored)

	c, rec := transitionContext(e, stored.LoanID)
	if err := h.RejectLoan(c); err != nil {
		t.Fatalf("RejectLoan error: %v", err)
	}
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
}

func TestGetLoan_NotFound(t *testing.T) {
	e := newEchoWithValidator()
	h := newHandler(nil)

	req := httptest.NewRequest(stdhttp.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("loan_id")
	c.SetParamValues(strings.Repeat("f", 32))

	if err := h.GetLoan(c); err != nil {
		t.Fatalf("GetLoan error: %v", err)
	}
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
