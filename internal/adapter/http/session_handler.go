package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"librarium-backend/internal/adapter/middleware"
	"librarium-backend/internal/usecase/session"
)

type SessionHandler struct {
	uc  *session.Usecase
	ttl time.Duration
}

func NewSessionHandler(uc *session.Usecase, ttl time.Duration) *SessionHandler {
	return &SessionHandler{uc: uc, ttl: ttl}
}

type loginReq struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login issues the session token the guard validates, both as JSON (for
// API clients) and as the session cookie (for the browser flow).
func (h *SessionHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	dto, err := h.uc.Login(c.Request().Context(), session.LoginInput(req))
	if err != nil {
		if errors.Is(err, session.ErrBadCredentials) {
			return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: err.Error()})
		}
		return writeDomainError(c, err)
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    dto.Token,
		Path:     "/",
		Expires:  time.Now().Add(h.ttl),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return c.JSON(http.StatusOK, dto)
}

// Logout clears the session cookie.
func (h *SessionHandler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	return c.NoContent(http.StatusNoContent)
}
