// Package users persists registered users and their custodial wallets.
//
// Access is split across two interfaces: Repository serves profile reads and
// registration and never exposes wallet secrets; Vault is the capability-
// scoped custody accessor that code paths spending or storing key material
// must hold. The split is enforced by the type boundary, not convention, so
// a component wired with only the Repository cannot reach a secret.
package users

import (
	"context"

	"github.com/Berkcanaskin/stellar/internal/server/models"
)

// Repository is the profile-facing store. Wallet records in returned users
// are always redacted.
type Repository interface {
	// Create stores a new user. Returns common.ErrorAlreadyExists when the
	// username is taken (case-sensitive exact match).
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByUsername returns the user with secrets stripped, or
	// common.ErrorNotFound.
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	// Update applies a partial update to the stored profile. Nil patch
	// fields are left untouched (merge semantics). Returns
	// common.ErrorNotFound for an unknown user.
	Update(ctx context.Context, username string, patch models.UserPatch) error
}

// Vault is the custody accessor for wallet key material.
type Vault interface {
	// AddWallet appends a wallet record (which may carry a secret) to the
	// user's list. Returns common.ErrorAlreadyExists when the user already
	// holds that public key, common.ErrorNotFound for an unknown user.
	AddWallet(ctx context.Context, username string, w models.WalletRecord) error

	// RemoveWallet drops the wallet with the given public key. Removing an
	// absent key is a no-op, not an error.
	RemoveWallet(ctx context.Context, username, publicKey string) error

	// ListWallets returns the user's full wallet records, secrets included.
	ListWallets(ctx context.Context, username string) ([]models.WalletRecord, error)

	// Secret returns the stored secret for the given public key. Returns
	// common.ErrorNotFound when the wallet is absent or holds no secret.
	Secret(ctx context.Context, username, publicKey string) (string, error)
}
