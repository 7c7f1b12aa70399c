// Package httpapi exposes the platform over JSON HTTP. Handlers stay thin:
// decode, call a service, map the error, encode.
package httpapi

import (
	"time"

	"github.com/Berkcanaskin/stellar/internal/logging"
	"github.com/Berkcanaskin/stellar/internal/server/auth"
	"github.com/Berkcanaskin/stellar/internal/server/config"
	"github.com/Berkcanaskin/stellar/internal/server/services"
	"github.com/Berkcanaskin/stellar/internal/server/sessions"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// loginBurst caps how many login attempts may land at once before the
// per-second refill applies.
const loginBurst = 10

type Server struct {
	cfg      *config.Config
	logger   logging.Logger
	users    *services.UserService
	wallets  *services.WalletService
	payments *services.PaymentService
	camps    *services.CampaignService
	stats    *services.StatsService
	sessions *sessions.Registry
	gate     *auth.Gate
	limiter  *rate.Limiter
}

func NewServer(
	cfg *config.Config,
	logger logging.Logger,
	users *services.UserService,
	wallets *services.WalletService,
	payments *services.PaymentService,
	camps *services.CampaignService,
	stats *services.StatsService,
	registry *sessions.Registry,
) *Server {
	return &Server{
		cfg:      cfg,
		logger:   logger.With("module", "httpapi"),
		users:    users,
		wallets:  wallets,
		payments: payments,
		camps:    camps,
		stats:    stats,
		sessions: registry,
		gate: auth.NewGate(
			&auth.SharedSecretGrant{Token: cfg.AdminToken},
			&auth.SessionCookieGrant{SigningKey: []byte(cfg.SessionSigningKey)},
		),
		limiter: rate.NewLimiter(rate.Every(time.Second), loginBurst),
	}
}

// Routes builds the echo instance with all endpoints registered.
func (s *Server) Routes() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	api := e.Group("/api")

	users := api.Group("/users")
	users.POST("/register", s.handleRegister, s.rateLimited)
	users.POST("/login", s.handleLogin, s.rateLimited)
	users.POST("/logout", s.handleLogout)
	users.GET("/me", s.handleMe, s.requireUser)
	users.POST("/wallets", s.handleAddWallet, s.requireUser)
	users.GET("/wallets", s.handleListWallets, s.requireUser)
	users.DELETE("/wallets", s.handleRemoveWallet, s.requireUser)
	users.POST("/donate", s.handleDonate, s.requireUser)

	api.GET("/account/:pk", s.handleAccount)
	api.POST("/balance", s.handleBalance)
	api.POST("/pay", s.handlePay)

	api.POST("/campaigns", s.handleCreateCampaign, s.requireAdmin)
	api.GET("/campaigns", s.handleListCampaigns)
	api.DELETE("/campaigns/:id", s.handleDeleteCampaign, s.requireAdmin)
	api.GET("/campaigns/:id/txs", s.handleCampaignTxs)

	api.GET("/stats/per-key", s.handleStats)

	admin := api.Group("/admin")
	admin.POST("/login", s.handleAdminLogin, s.rateLimited)
	admin.GET("/check", s.handleAdminCheck)
	admin.POST("/logout", s.handleAdminLogout)

	return e
}
