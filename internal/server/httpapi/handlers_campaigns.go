package httpapi

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/Berkcanaskin/stellar/internal/common"
	"github.com/labstack/echo/v4"
)

func campaignID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("campaign id must be a number: %w", common.ErrorValidation)
	}
	return id, nil
}

func (s *Server) handleCreateCampaign(c echo.Context) error {
	var req struct {
		Title     string  `json:"title"`
		Goal      float64 `json:"goal"`
		PublicKey string  `json:"publicKey"`
	}
	if err := c.Bind(&req); err != nil {
		return s.writeError(c, fmt.Errorf("malformed request body: %w", common.ErrorValidation))
	}

	campaign, err := s.camps.Create(c.Request().Context(), req.Title, req.Goal, req.PublicKey)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, campaign)
}

func (s *Server) handleListCampaigns(c echo.Context) error {
	views, err := s.camps.List(c.Request().Context())
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, views)
}

func (s *Server) handleDeleteCampaign(c echo.Context) error {
	id, err := campaignID(c)
	if err != nil {
		return s.writeError(c, err)
	}
	if err := s.camps.Delete(c.Request().Context(), id); err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleCampaignTxs(c echo.Context) error {
	id, err := campaignID(c)
	if err != nil {
		return s.writeError(c, err)
	}
	ops, err := s.camps.Operations(c.Request().Context(), id)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, ops)
}

func (s *Server) handleStats(c echo.Context) error {
	force := c.QueryParam("refresh") == "1" || c.QueryParam("force") == "1"

	result, err := s.stats.Totals(c.Request().Context(), force)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}
