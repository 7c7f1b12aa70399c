package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Berkcanaskin/stellar/internal/common"
	"github.com/Berkcanaskin/stellar/internal/server/models"
	"github.com/labstack/echo/v4"
)

type profileResponse struct {
	Username  string                `json:"username"`
	Wallets   []models.WalletRecord `json:"wallets"`
	CreatedAt time.Time             `json:"createdAt"`
}

func toProfile(u *models.User) profileResponse {
	wallets := u.Wallets
	if wallets == nil {
		wallets = []models.WalletRecord{}
	}
	return profileResponse{Username: u.UserName, Wallets: wallets, CreatedAt: u.CreatedAt}
}

func (s *Server) handleRegister(c echo.Context) error {
	var req struct {
		Username  string `json:"username"`
		Password  string `json:"password"`
		Password2 string `json:"password2"`
	}
	if err := c.Bind(&req); err != nil {
		return s.writeError(c, fmt.Errorf("malformed request body: %w", common.ErrorValidation))
	}
	if req.Password != req.Password2 {
		return s.writeError(c, fmt.Errorf("passwords do not match: %w", common.ErrorValidation))
	}

	user, err := s.users.Register(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return s.writeError(c, err)
	}

	token := s.sessions.Issue(user.UserName)
	s.setSessionCookie(c, SessionCookieName, token, int(s.cfg.SessionTTL.Seconds()))

	return c.JSON(http.StatusOK, toProfile(user))
}

func (s *Server) handleLogin(c echo.Context) error {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return s.writeError(c, fmt.Errorf("malformed request body: %w", common.ErrorValidation))
	}

	user, err := s.users.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return s.writeError(c, err)
	}

	token := s.sessions.Issue(user.UserName)
	s.setSessionCookie(c, SessionCookieName, token, int(s.cfg.SessionTTL.Seconds()))

	return c.JSON(http.StatusOK, toProfile(user))
}

func (s *Server) handleLogout(c echo.Context) error {
	if cookie, err := c.Cookie(SessionCookieName); err == nil {
		s.sessions.Revoke(cookie.Value)
	}
	s.clearSessionCookie(c, SessionCookieName)
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleMe(c echo.Context) error {
	user, err := s.users.Get(c.Request().Context(), s.username(c))
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, toProfile(user))
}

func (s *Server) handleAddWallet(c echo.Context) error {
	var req struct {
		Secret    string `json:"secret"`
		PublicKey string `json:"publicKey"`
		Name      string `json:"name"`
	}
	if err := c.Bind(&req); err != nil {
		return s.writeError(c, fmt.Errorf("malformed request body: %w", common.ErrorValidation))
	}

	w, err := s.wallets.Add(c.Request().Context(), s.username(c), req.Secret, req.PublicKey, req.Name)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, w)
}

func (s *Server) handleListWallets(c echo.Context) error {
	views, err := s.wallets.List(c.Request().Context(), s.username(c))
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, views)
}

func (s *Server) handleRemoveWallet(c echo.Context) error {
	var req struct {
		PublicKey string `json:"publicKey"`
	}
	if err := c.Bind(&req); err != nil {
		return s.writeError(c, fmt.Errorf("malformed request body: %w", common.ErrorValidation))
	}
	if req.PublicKey == "" {
		return s.writeError(c, fmt.Errorf("publicKey is required: %w", common.ErrorValidation))
	}

	if err := s.wallets.Remove(c.Request().Context(), s.username(c), req.PublicKey); err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}

// handleDonate spends from one of the session user's custodial wallets. The
// secret never appears in the request; it is fetched from the vault by the
// wallet's public key.
func (s *Server) handleDonate(c echo.Context) error {
	var req struct {
		PublicKey      string `json:"publicKey"`
		To             string `json:"to"`
		Amount         string `json:"amount"`
		IdempotencyKey string `json:"idempotencyKey"`
	}
	if err := c.Bind(&req); err != nil {
		return s.writeError(c, fmt.Errorf("malformed request body: %w", common.ErrorValidation))
	}

	ctx := c.Request().Context()
	secret, err := s.wallets.Secret(ctx, s.username(c), req.PublicKey)
	if err != nil {
		return s.writeError(c, err)
	}

	receipt, err := s.payments.Pay(ctx, secret, req.To, req.Amount, req.IdempotencyKey)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, receipt)
}
