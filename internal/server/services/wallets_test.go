package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/Berkcanaskin/stellar/internal/common"
	"github.com/Berkcanaskin/stellar/internal/ledger"
	"github.com/Berkcanaskin/stellar/internal/server/models"
	"github.com/Berkcanaskin/stellar/internal/server/repositories/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVault(t *testing.T) *users.JSONRepository {
	t.Helper()
	repo := users.NewJSONRepository(filepath.Join(t.TempDir(), "users.json"))
	_, err := repo.Create(context.Background(), &models.User{
		UserName:  "alice",
		PassSalt:  []byte("salt"),
		PassHash:  []byte("hash"),
		CreatedAt: time.Now().UTC(),
	})
	require.NoError(t, err)
	return repo
}

func TestWalletService_AddWithSecret(t *testing.T) {
	vault := newVault(t)
	svc := NewWalletService(vault, &fakeLedger{}, testLogger())
	ctx := context.Background()

	kp, err := ledger.NewRandomKeypair()
	require.NoError(t, err)

	w, err := svc.Add(ctx, "alice", kp.Seed(), "", "main")
	require.NoError(t, err)

	// returned record derives the address and never echoes the secret
	assert.Equal(t, kp.Address(), w.PublicKey)
	assert.Empty(t, w.Secret)
	assert.Equal(t, "main", w.Name)

	secret, err := vault.Secret(ctx, "alice", kp.Address())
	require.NoError(t, err)
	assert.Equal(t, kp.Seed(), secret)
}

func TestWalletService_AddWatchOnly(t *testing.T) {
	vault := newVault(t)
	svc := NewWalletService(vault, &fakeLedger{}, testLogger())
	ctx := context.Background()

	kp, err := ledger.NewRandomKeypair()
	require.NoError(t, err)

	w, err := svc.Add(ctx, "alice", "", kp.Address(), "")
	require.NoError(t, err)
	assert.Equal(t, kp.Address(), w.PublicKey)

	// watch-only wallets hold no spending key
	_, err = vault.Secret(ctx, "alice", kp.Address())
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestWalletService_AddInvalid(t *testing.T) {
	vault := newVault(t)
	svc := NewWalletService(vault, &fakeLedger{}, testLogger())
	ctx := context.Background()

	_, err := svc.Add(ctx, "alice", "SINVALID", "", "")
	assert.ErrorIs(t, err, common.ErrorInvalidSecret)

	_, err = svc.Add(ctx, "alice", "", "GINVALID", "")
	assert.ErrorIs(t, err, common.ErrorValidation)
}

func TestWalletService_ListWithBalances(t *testing.T) {
	vault := newVault(t)
	ctx := context.Background()

	kp1, err := ledger.NewRandomKeypair()
	require.NoError(t, err)
	kp2, err := ledger.NewRandomKeypair()
	require.NoError(t, err)

	require.NoError(t, vault.AddWallet(ctx, "alice", models.WalletRecord{PublicKey: kp1.Address(), Secret: kp1.Seed()}))
	require.NoError(t, vault.AddWallet(ctx, "alice", models.WalletRecord{PublicKey: kp2.Address()}))

	lc := &fakeLedger{
		loadAccountFunc: func(ctx context.Context, publicKey string) (*ledger.Account, error) {
			if publicKey == kp1.Address() {
				return &ledger.Account{
					ID:       publicKey,
					Balances: []ledger.Balance{{Balance: "150.5000000", Type: "native"}},
				}, nil
			}
			return nil, ledger.ErrAccountNotFound
		},
	}
	svc := NewWalletService(vault, lc, testLogger())

	views, err := svc.List(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, views, 2)

	assert.Equal(t, 150.5, views[0].Balance)
	assert.True(t, views[0].Funded)

	// an unfunded account does not fail the listing
	assert.Equal(t, 0.0, views[1].Balance)
	assert.False(t, views[1].Funded)
}

func TestWalletService_Remove(t *testing.T) {
	vault := newVault(t)
	svc := NewWalletService(vault, &fakeLedger{}, testLogger())
	ctx := context.Background()

	kp, err := ledger.NewRandomKeypair()
	require.NoError(t, err)
	_, err = svc.Add(ctx, "alice", kp.Seed(), "", "")
	require.NoError(t, err)

	require.NoError(t, svc.Remove(ctx, "alice", kp.Address()))
	// removing again is still fine
	require.NoError(t, svc.Remove(ctx, "alice", kp.Address()))

	views, err := svc.List(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestWalletService_ListUnknownUser(t *testing.T) {
	vault := newVault(t)
	svc := NewWalletService(vault, &fakeLedger{}, testLogger())

	_, err := svc.List(context.Background(), "ghost")
	assert.True(t, errors.Is(err, common.ErrorNotFound))
}
