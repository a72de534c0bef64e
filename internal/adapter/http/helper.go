package http

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	catalogDomain "librarium-backend/internal/domain/catalog"
	loanDomain "librarium-backend/internal/domain/loan"
)

// writeDomainError maps the error taxonomy onto status codes:
// not-found → 404, invalid transition → 400, violated preconditions →
// 422, everything else → 500 with a generic body (store internals are
// logged, never surfaced).
func writeDomainError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, loanDomain.ErrNotFound),
		errors.Is(err, catalogDomain.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	case errors.Is(err, loanDomain.ErrInvalidState):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, loanDomain.ErrNoCopyAssigned),
		errors.Is(err, catalogDomain.ErrNoAvailableCopy):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	case strings.HasPrefix(err.Error(), "invalid input"):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		log.Printf("%s %s: %v", c.Request().Method, c.Path(), err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
