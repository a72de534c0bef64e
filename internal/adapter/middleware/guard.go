package middleware

import (
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/labstack/echo/v4"

	"librarium-backend/internal/domain/user"
	"librarium-backend/internal/security"
)

// ClaimsKey is where the guard stashes validated session claims for
// downstream handlers.
const ClaimsKey = "session-claims"

// SessionCookie is the cookie the browser flow carries the token in; API
// clients use an Authorization bearer header instead.
const SessionCookie = "session"

type DecisionKind int

const (
	Allow DecisionKind = iota
	Redirect
	Reject
)

type Decision struct {
	Kind     DecisionKind
	Location string // set when Kind == Redirect
}

// Route tables. The classification below evaluates them in a fixed
// order; the order is load-bearing (the public check must run before the
// auth redirects, or authenticated librarians get bounced off public
// pages).
var (
	publicRoutes     = []string{"/", "/about", "/materials"}
	reMaterialDetail = regexp.MustCompile(`^/materials/[^/]+$`)
	authPages        = []string{"/login", "/register"}

	librarianPrefixes = []string{"/dashboard"}
	memberPrefixes    = []string{"/profile", "/loans"}
)

const apiPrefix = "/api/"

// Guard classifies every request before any business logic runs and
// decides allow / redirect / reject.
type Guard struct {
	tokens security.TokenManager
}

func NewGuard(tokens security.TokenManager) *Guard { return &Guard{tokens: tokens} }

// Classify decides what to do with a request to path carrying claims
// (nil when no valid token was presented). Rules run in order:
//
//  1. public allowlist (exact or material-detail pattern) → allow
//  2. API namespace → allow, handlers re-check for themselves
//  3. auth pages with a live session → role landing page
//  4. no session anywhere else → login with callback
//  5. librarian-only area without the librarian role → profile
//  6. member area → allow (a session is guaranteed by rule 4)
//  7. everything else → allow
func (g *Guard) Classify(path string, claims *security.Claims) Decision {
	if isPublic(path) {
		return Decision{Kind: Allow}
	}
	if strings.HasPrefix(path, apiPrefix) {
		return Decision{Kind: Allow}
	}
	if isAuthPage(path) {
		if claims != nil {
			return Decision{Kind: Redirect, Location: landingFor(claims.Role)}
		}
		return Decision{Kind: Allow}
	}
	if claims == nil {
		return Decision{Kind: Redirect, Location: loginRedirect(path)}
	}
	if hasAnyPrefix(path, librarianPrefixes) && claims.Role != user.RoleLibrarian {
		return Decision{Kind: Redirect, Location: "/profile"}
	}
	if hasAnyPrefix(path, memberPrefixes) {
		return Decision{Kind: Allow}
	}
	return Decision{Kind: Allow}
}

// Middleware validates the session token, classifies the request and
// either short-circuits or hands validated claims to the handler.
func (g *Guard) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := g.claimsFrom(c.Request())

			switch d := g.Classify(c.Request().URL.Path, claims); d.Kind {
			case Redirect:
				return c.Redirect(http.StatusFound, d.Location)
			case Reject:
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			}

			if claims != nil {
				c.Set(ClaimsKey, claims)
			}
			return next(c)
		}
	}
}

// ClaimsFrom returns the claims the guard attached, or nil.
func ClaimsFrom(c echo.Context) *security.Claims {
	claims, _ := c.Get(ClaimsKey).(*security.Claims)
	return claims
}

// RequireRole gates a single route on a role, for API handlers that must
// re-check authorization themselves (the guard waves the whole /api
// namespace through).
func RequireRole(roles ...user.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := ClaimsFrom(c)
			if claims == nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			}
			for _, r := range roles {
				if claims.Role == r {
					return next(c)
				}
			}
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		}
	}
}

func (g *Guard) claimsFrom(req *http.Request) *security.Claims {
	raw := ""
	if cookie, err := req.Cookie(SessionCookie); err == nil {
		raw = cookie.Value
	}
	if raw == "" {
		if h := req.Header.Get(echo.HeaderAuthorization); strings.HasPrefix(h, "Bearer ") {
			raw = strings.TrimPrefix(h, "Bearer ")
		}
	}
	if raw == "" {
		return nil
	}
	claims, err := g.tokens.Validate(raw)
	if err != nil {
		return nil
	}
	return claims
}

func isPublic(path string) bool {
	for _, p := range publicRoutes {
		if path == p {
			return true
		}
	}
	return reMaterialDetail.MatchString(path)
}

func isAuthPage(path string) bool {
	for _, p := range authPages {
		if path == p {
			return true
		}
	}
	return false
}

func hasAnyPrefix(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}

func landingFor(role user.Role) string {
	if role == user.RoleLibrarian {
		return "/dashboard"
	}
	return "/profile"
}

func loginRedirect(original string) string {
	return "/login?callbackUrl=" + url.QueryEscape(original)
}
