package httpapi

import (
	"crypto/subtle"
	"fmt"
	"net/http"

	"github.com/Berkcanaskin/stellar/internal/common"
	"github.com/Berkcanaskin/stellar/internal/server/auth"
	"github.com/labstack/echo/v4"
)

func (s *Server) handleAdminLogin(c echo.Context) error {
	var req struct {
		User string `json:"user"`
		Pass string `json:"pass"`
	}
	if err := c.Bind(&req); err != nil {
		return s.writeError(c, fmt.Errorf("malformed request body: %w", common.ErrorValidation))
	}

	userOK := subtle.ConstantTimeCompare([]byte(req.User), []byte(s.cfg.AdminUser)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(req.Pass), []byte(s.cfg.AdminPass)) == 1
	if !userOK || !passOK {
		return s.writeError(c, common.ErrorUnauthorized)
	}

	token, err := auth.GenerateAdminToken([]byte(s.cfg.SessionSigningKey), s.cfg.AdminSessionTTL)
	if err != nil {
		return s.writeError(c, err)
	}
	s.setSessionCookie(c, auth.AdminCookieName, token, int(s.cfg.AdminSessionTTL.Seconds()))

	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleAdminCheck(c echo.Context) error {
	if err := s.gate.Authorize(c.Request()); err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleAdminLogout(c echo.Context) error {
	s.clearSessionCookie(c, auth.AdminCookieName)
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}
