package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/Berkcanaskin/stellar/internal/ledger"
	"github.com/Berkcanaskin/stellar/internal/server/models"
	"github.com/Berkcanaskin/stellar/internal/server/repositories/campaigns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statsFixture(t *testing.T) (*campaigns.JSONRepository, *ledger.Keypair, *ledger.Keypair) {
	t.Helper()
	repo := campaigns.NewJSONRepository(filepath.Join(t.TempDir(), "campaigns.json"))
	ctx := context.Background()

	kp1, err := ledger.NewRandomKeypair()
	require.NoError(t, err)
	kp2, err := ledger.NewRandomKeypair()
	require.NoError(t, err)

	_, err = repo.Create(ctx, &models.Campaign{Title: "One", Goal: 100, PublicKey: kp1.Address()})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &models.Campaign{Title: "Two", Goal: 100, PublicKey: kp2.Address()})
	require.NoError(t, err)

	return repo, kp1, kp2
}

func TestStatsService_Totals(t *testing.T) {
	repo, kp1, kp2 := statsFixture(t)

	lc := &fakeLedger{
		paymentsFunc: func(ctx context.Context, publicKey string, limit int, order string) ([]ledger.PaymentRecord, error) {
			assert.Equal(t, 200, limit)
			assert.Equal(t, "desc", order)
			if publicKey == kp1.Address() {
				return []ledger.PaymentRecord{
					{Type: "payment", To: publicKey, Amount: "10.5000000"},
					{Type: "payment", To: publicKey, Amount: "4.5000000"},
					// outgoing and non-payment records are ignored
					{Type: "payment", To: "GELSEWHERE", From: publicKey, Amount: "99.0000000"},
					{Type: "create_account", To: publicKey, Amount: "1.0000000"},
				}, nil
			}
			return nil, nil
		},
	}
	svc := NewStatsService(repo, lc, time.Minute, testLogger())

	result, err := svc.Totals(context.Background(), false)
	require.NoError(t, err)

	assert.False(t, result.Cached)
	assert.Zero(t, result.AgeMs)
	assert.Equal(t, 15.0, result.Totals[kp1.Address()])
	assert.Equal(t, 0.0, result.Totals[kp2.Address()])
}

func TestStatsService_TotalsCached(t *testing.T) {
	repo, kp1, _ := statsFixture(t)

	lc := &fakeLedger{
		paymentsFunc: func(ctx context.Context, publicKey string, limit int, order string) ([]ledger.PaymentRecord, error) {
			return []ledger.PaymentRecord{{Type: "payment", To: publicKey, Amount: "1.0000000"}}, nil
		},
	}
	svc := NewStatsService(repo, lc, time.Minute, testLogger())
	ctx := context.Background()

	_, err := svc.Totals(ctx, false)
	require.NoError(t, err)
	fetchedOnce := lc.paymentsCalls

	result, err := svc.Totals(ctx, false)
	require.NoError(t, err)

	// second read is the cached snapshot, no ledger traffic
	assert.True(t, result.Cached)
	assert.Equal(t, fetchedOnce, lc.paymentsCalls)
	assert.Equal(t, 1.0, result.Totals[kp1.Address()])

	// force recomputes every key
	result, err = svc.Totals(ctx, true)
	require.NoError(t, err)
	assert.False(t, result.Cached)
	assert.Greater(t, lc.paymentsCalls, fetchedOnce)
}

func TestStatsService_TotalsAge(t *testing.T) {
	repo, _, _ := statsFixture(t)

	lc := &fakeLedger{
		paymentsFunc: func(ctx context.Context, publicKey string, limit int, order string) ([]ledger.PaymentRecord, error) {
			return nil, nil
		},
	}
	svc := NewStatsService(repo, lc, time.Minute, testLogger())

	current := time.Now()
	svc.now = func() time.Time { return current }
	ctx := context.Background()

	_, err := svc.Totals(ctx, false)
	require.NoError(t, err)

	current = current.Add(1500 * time.Millisecond)
	result, err := svc.Totals(ctx, false)
	require.NoError(t, err)

	assert.True(t, result.Cached)
	assert.Equal(t, int64(1500), result.AgeMs)
}

func TestStatsService_TotalsPerKeyIsolation(t *testing.T) {
	repo, kp1, kp2 := statsFixture(t)

	lc := &fakeLedger{
		paymentsFunc: func(ctx context.Context, publicKey string, limit int, order string) ([]ledger.PaymentRecord, error) {
			if publicKey == kp2.Address() {
				return nil, errors.New("rate limited")
			}
			return []ledger.PaymentRecord{{Type: "payment", To: publicKey, Amount: "7.0000000"}}, nil
		},
	}
	svc := NewStatsService(repo, lc, time.Minute, testLogger())

	result, err := svc.Totals(context.Background(), false)
	require.NoError(t, err)

	// the failing key reports zero, the healthy one its real total
	assert.Equal(t, 7.0, result.Totals[kp1.Address()])
	assert.Equal(t, 0.0, result.Totals[kp2.Address()])
}
