package httpapi

import (
	"net/http"

	"github.com/Berkcanaskin/stellar/internal/common"
	"github.com/labstack/echo/v4"
)

// SessionCookieName is the cookie carrying the opaque user session token.
const SessionCookieName = "__nf_user"

const usernameContextKey = "username"

// requireUser resolves the session cookie and stashes the username in the
// request context. The acting identity always comes from here, never from
// the request body.
func (s *Server) requireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(SessionCookieName)
		if err != nil {
			return s.writeError(c, common.ErrorUnauthorized)
		}
		username, err := s.sessions.Resolve(cookie.Value)
		if err != nil {
			return s.writeError(c, err)
		}
		c.Set(usernameContextKey, username)
		return next(c)
	}
}

func (s *Server) username(c echo.Context) string {
	u, _ := c.Get(usernameContextKey).(string)
	return u
}

// requireAdmin applies the authorization gate: the shared admin secret or a
// valid admin session cookie both pass.
func (s *Server) requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := s.gate.Authorize(c.Request()); err != nil {
			return s.writeError(c, err)
		}
		return next(c)
	}
}

// rateLimited throttles credential-guessing endpoints.
func (s *Server) rateLimited(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !s.limiter.Allow() {
			return c.JSON(http.StatusTooManyRequests, map[string]string{"error": "too many requests"})
		}
		return next(c)
	}
}

func (s *Server) setSessionCookie(c echo.Context, name, token string, maxAge int) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) clearSessionCookie(c echo.Context, name string) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
