// Package server initializes and runs the donation platform server.
// It selects a storage backend, wires services to the HTTP surface, and
// handles graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/Berkcanaskin/stellar/internal/ledger"
	"github.com/Berkcanaskin/stellar/internal/logging"
	"github.com/Berkcanaskin/stellar/internal/netx"
	"github.com/Berkcanaskin/stellar/internal/server/config"
	"github.com/Berkcanaskin/stellar/internal/server/httpapi"
	"github.com/Berkcanaskin/stellar/internal/server/repositories/repomanager"
	"github.com/Berkcanaskin/stellar/internal/server/services"
	"github.com/Berkcanaskin/stellar/internal/server/sessions"
)

const shutdownTimeout = 10 * time.Second

// portProbeTries bounds the fallback search when the configured port is
// already taken.
const portProbeTries = 50

type App struct {
	config  *config.Config
	logger  logging.Logger
	manager repomanager.RepositoryManager
	api     *httpapi.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	var manager repomanager.RepositoryManager
	var err error
	if cfg.DatabaseDSN != "" {
		manager, err = repomanager.NewPostgresRepositoryManager(ctx, cfg.DatabaseDSN)
	} else {
		manager, err = repomanager.NewJSONRepositoryManager(cfg.DataDir)
	}
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	lc := ledger.NewClient(cfg.HorizonURL, cfg.FriendbotURL)
	registry := sessions.NewRegistry(cfg.SessionTTL)

	api := httpapi.NewServer(cfg, logger,
		services.NewUserService(manager.Users()),
		services.NewWalletService(manager.Vault(), lc, logger),
		services.NewPaymentService(lc, cfg.NetworkPassphrase, logger),
		services.NewCampaignService(manager.Campaigns(), lc, logger),
		services.NewStatsService(manager.Campaigns(), lc, cfg.StatsCacheTTL, logger),
		registry,
	)

	return &App{config: cfg, logger: logger, manager: manager, api: api}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// listenAddr returns the configured bind address, probing upward from the
// configured port when it is occupied.
func (app *App) listenAddr(ctx context.Context) (string, error) {
	host, portStr, err := net.SplitHostPort(app.config.EndpointAddr)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint address %q: %w", app.config.EndpointAddr, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint port %q: %w", portStr, err)
	}

	free, err := netx.FindFreePort(port, portProbeTries)
	if err != nil {
		return "", err
	}
	if free != port {
		app.logger.Warn(ctx, "configured port busy, using next free one", "configured", port, "chosen", free)
	}
	return net.JoinHostPort(host, strconv.Itoa(free)), nil
}

func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.initSignalHandler(cancelFunc)

	addr, err := app.listenAddr(ctx)
	if err != nil {
		return err
	}

	e := app.api.Routes()

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "starting server", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	app.logger.Info(ctx, "shutting down")

	shutdownCtx, release := context.WithTimeout(context.Background(), shutdownTimeout)
	defer release()

	if err := e.Shutdown(shutdownCtx); err != nil {
		app.logger.Error(shutdownCtx, "shutdown error", "error", err)
	}
	if err := app.manager.Close(); err != nil {
		app.logger.Error(shutdownCtx, "storage close error", "error", err)
	}
	return nil
}
