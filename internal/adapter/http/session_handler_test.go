package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"librarium-backend/internal/adapter/middleware"
	"librarium-backend/internal/domain/user"
	"librarium-backend/internal/security"
	sessionUC "librarium-backend/internal/usecase/session"
)

type userRepoStub struct {
	byEmail func(ctx context.Context, email string) (*user.User, error)
}

func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return s.byEmail(ctx, email)
}

func (s *userRepoStub) GetByUserID(ctx context.Context, userID string) (*user.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func newSessionHandler(t *testing.T) *SessionHandler {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("opensesame"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	acct := &user.User{
		UserID:       "dddddddddddddddddddddddddddddddd",
		Name:         "Head Librarian",
		Email:        "librarian@example.com",
		PasswordHash: string(hash),
		Role:         user.RoleLibrarian,
	}
	repo := &userRepoStub{byEmail: func(ctx context.Context, email string) (*user.User, error) {
		if email != acct.Email {
			return nil, gorm.ErrRecordNotFound
		}
		return acct, nil
	}}
	tokens := security.NewTokenManager("test-secret", time.Hour)
	return NewSessionHandler(sessionUC.NewUsecase(repo, tokens), time.Hour)
}

func loginRequest(body string) (*stdhttp.Request, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(stdhttp.MethodPost, "/api/sessions", mustJSON(json.RawMessage(body)))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req, httptest.NewRecorder()
}

func TestLogin_SetsSessionCookie(t *testing.T) {
	e := newEchoWithValidator()
	h := newSessionHandler(t)

	req, rec := loginRequest(`{"email":"librarian@example.com","password":"opensesame"}`)
	if err := h.Login(e.NewContext(req, rec)); err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}

	var dto sessionUC.SessionDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &dto); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if dto.Token == "" || dto.Role != user.RoleLibrarian {
		t.Fatalf("dto = %+v", dto)
	}

	var found *stdhttp.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == middleware.SessionCookie {
			found = ck
		}
	}
	if found == nil {
		t.Fatal("session cookie not set")
	}
	if found.Value != dto.Token || !found.HttpOnly {
		t.Fatalf("cookie = %+v, want HttpOnly with the issued token", found)
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	e := newEchoWithValidator()
	h := newSessionHandler(t)

	req, rec := loginRequest(`{"email":"librarian@example.com","password":"guess"}`)
	if err := h.Login(e.NewContext(req, rec)); err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if rec.Code != stdhttp.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatal("no cookie expected on failed login")
	}
}

func TestLogout_ClearsSessionCookie(t *testing.T) {
	e := newEchoWithValidator()
	h := newSessionHandler(t)

	req := httptest.NewRequest(stdhttp.MethodDelete, "/api/sessions", nil)
	rec := httptest.NewRecorder()
	if err := h.Logout(e.NewContext(req, rec)); err != nil {
		t.Fatalf("Logout error: %v", err)
	}
	if rec.Code != stdhttp.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != middleware.SessionCookie || cookies[0].MaxAge >= 0 {
		t.Fatalf("cookies = %+v, want expired session cookie", cookies)
	}
}
