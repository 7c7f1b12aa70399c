package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/Berkcanaskin/stellar/internal/common"
	"github.com/Berkcanaskin/stellar/internal/ledger"
	"github.com/Berkcanaskin/stellar/internal/logging"
	"github.com/Berkcanaskin/stellar/internal/server/models"
	"github.com/Berkcanaskin/stellar/internal/server/repositories/users"
)

// WalletView is a wallet as reported to its owner: the stored record plus
// the live native balance. Balance is 0 when the account is unfunded or
// the ledger could not be reached.
type WalletView struct {
	PublicKey string  `json:"publicKey"`
	Name      string  `json:"name,omitempty"`
	Balance   float64 `json:"balance"`
	Funded    bool    `json:"funded"`
}

// WalletService manages custodial wallets. It is the only service holding
// the Vault capability besides PaymentService's secret lookups.
type WalletService struct {
	vault  users.Vault
	ledger Ledger
	logger logging.Logger
}

func NewWalletService(vault users.Vault, l Ledger, logger logging.Logger) *WalletService {
	return &WalletService{vault: vault, ledger: l, logger: logger}
}

// Add stores a wallet for the user. With a secret the public key is derived
// from it; without one the wallet is a watch-only reference and publicKey
// must be a valid address.
func (s *WalletService) Add(ctx context.Context, username, secret, publicKey, name string) (*models.WalletRecord, error) {

	w := models.WalletRecord{Name: name}

	if secret != "" {
		kp, err := ledger.ParseSecret(secret)
		if err != nil {
			return nil, err
		}
		w.PublicKey = kp.Address()
		w.Secret = secret
	} else {
		if !ledger.IsValidAddress(publicKey) {
			return nil, fmt.Errorf("public key is not a valid address: %w", common.ErrorValidation)
		}
		w.PublicKey = publicKey
	}

	if err := s.vault.AddWallet(ctx, username, w); err != nil {
		return nil, err
	}

	redacted := w.Redacted()
	return &redacted, nil
}

// List returns the user's wallets with live balances fetched concurrently.
// A wallet whose account lookup fails is reported unfunded rather than
// failing the whole listing.
func (s *WalletService) List(ctx context.Context, username string) ([]WalletView, error) {

	wallets, err := s.vault.ListWallets(ctx, username)
	if err != nil {
		return nil, err
	}

	views := make([]WalletView, len(wallets))
	var wg sync.WaitGroup
	for i, w := range wallets {
		views[i] = WalletView{PublicKey: w.PublicKey, Name: w.Name}

		wg.Add(1)
		go func(i int, publicKey string) {
			defer wg.Done()
			acct, err := s.ledger.LoadAccount(ctx, publicKey)
			if err != nil {
				s.logger.Debug(ctx, "balance lookup failed", "publicKey", publicKey, "error", err)
				return
			}
			views[i].Balance = acct.NativeBalance()
			views[i].Funded = true
		}(i, w.PublicKey)
	}
	wg.Wait()

	return views, nil
}

// Remove drops the wallet. Removing an absent key succeeds.
func (s *WalletService) Remove(ctx context.Context, username, publicKey string) error {
	return s.vault.RemoveWallet(ctx, username, publicKey)
}

// Secret returns the spending key for one of the user's wallets.
func (s *WalletService) Secret(ctx context.Context, username, publicKey string) (string, error) {
	return s.vault.Secret(ctx, username, publicKey)
}
