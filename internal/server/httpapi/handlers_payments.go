package httpapi

import (
	"fmt"
	"net/http"

	"github.com/Berkcanaskin/stellar/internal/common"
	"github.com/Berkcanaskin/stellar/internal/ledger"
	"github.com/labstack/echo/v4"
)

type accountResponse struct {
	PublicKey string           `json:"publicKey"`
	Balance   float64          `json:"balance"`
	Balances  []ledger.Balance `json:"balances"`
}

func (s *Server) handleAccount(c echo.Context) error {
	acct, err := s.payments.Balance(c.Request().Context(), c.Param("pk"))
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, accountResponse{
		PublicKey: acct.ID,
		Balance:   acct.NativeBalance(),
		Balances:  acct.Balances,
	})
}

// handleBalance resolves the account behind a raw secret. It exists for
// scripted use; browsers go through the wallet endpoints.
func (s *Server) handleBalance(c echo.Context) error {
	var req struct {
		Secret string `json:"secret"`
	}
	if err := c.Bind(&req); err != nil {
		return s.writeError(c, fmt.Errorf("malformed request body: %w", common.ErrorValidation))
	}

	kp, err := ledger.ParseSecret(req.Secret)
	if err != nil {
		return s.writeError(c, err)
	}

	acct, err := s.payments.Balance(c.Request().Context(), kp.Address())
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, accountResponse{
		PublicKey: acct.ID,
		Balance:   acct.NativeBalance(),
		Balances:  acct.Balances,
	})
}

func (s *Server) handlePay(c echo.Context) error {
	var req struct {
		Secret         string `json:"secret"`
		To             string `json:"to"`
		Amount         string `json:"amount"`
		IdempotencyKey string `json:"idempotencyKey"`
	}
	if err := c.Bind(&req); err != nil {
		return s.writeError(c, fmt.Errorf("malformed request body: %w", common.ErrorValidation))
	}

	receipt, err := s.payments.Pay(c.Request().Context(), req.Secret, req.To, req.Amount, req.IdempotencyKey)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, receipt)
}
