package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/Berkcanaskin/stellar/internal/ledger"
	"github.com/Berkcanaskin/stellar/internal/logging"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

var errFakeNotConfigured = errors.New("fake not configured")

// fakeLedger implements Ledger with overridable call hooks and counters.
// Services fan out to it from multiple goroutines, so the counters are
// guarded by a mutex.
type fakeLedger struct {
	loadAccountFunc func(ctx context.Context, publicKey string) (*ledger.Account, error)
	baseFeeFunc     func(ctx context.Context) (int64, error)
	submitFunc      func(ctx context.Context, envelopeXDR string) (*ledger.SubmitResponse, error)
	paymentsFunc    func(ctx context.Context, publicKey string, limit int, order string) ([]ledger.PaymentRecord, error)
	operationsFunc  func(ctx context.Context, publicKey string, limit int, order string) ([]ledger.OperationRecord, error)

	mu               sync.Mutex
	loadAccountCalls int
	submitCalls      int
	paymentsCalls    int
}

func (f *fakeLedger) incr(counter *int) {
	f.mu.Lock()
	*counter++
	f.mu.Unlock()
}

func (f *fakeLedger) LoadAccount(ctx context.Context, publicKey string) (*ledger.Account, error) {
	f.incr(&f.loadAccountCalls)
	if f.loadAccountFunc == nil {
		return nil, errFakeNotConfigured
	}
	return f.loadAccountFunc(ctx, publicKey)
}

func (f *fakeLedger) FetchBaseFee(ctx context.Context) (int64, error) {
	if f.baseFeeFunc == nil {
		return ledger.DefaultBaseFee, nil
	}
	return f.baseFeeFunc(ctx)
}

func (f *fakeLedger) SubmitTransaction(ctx context.Context, envelopeXDR string) (*ledger.SubmitResponse, error) {
	f.incr(&f.submitCalls)
	if f.submitFunc == nil {
		return nil, errFakeNotConfigured
	}
	return f.submitFunc(ctx, envelopeXDR)
}

func (f *fakeLedger) Payments(ctx context.Context, publicKey string, limit int, order string) ([]ledger.PaymentRecord, error) {
	f.incr(&f.paymentsCalls)
	if f.paymentsFunc == nil {
		return nil, errFakeNotConfigured
	}
	return f.paymentsFunc(ctx, publicKey, limit, order)
}

func (f *fakeLedger) Operations(ctx context.Context, publicKey string, limit int, order string) ([]ledger.OperationRecord, error) {
	if f.operationsFunc == nil {
		return nil, errFakeNotConfigured
	}
	return f.operationsFunc(ctx, publicKey, limit, order)
}
