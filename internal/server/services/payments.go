package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Berkcanaskin/stellar/internal/common"
	"github.com/Berkcanaskin/stellar/internal/ledger"
	"github.com/Berkcanaskin/stellar/internal/logging"
	"github.com/google/uuid"
	"github.com/rif/cache2go"
)

// paymentWindow bounds how long a signed envelope stays valid. Horizon
// refuses it after the window passes, so a retry can never double-spend
// an old envelope.
const paymentWindow = 5 * time.Minute

// Receipts only need to outlive the envelope validity window: after it
// passes a retry builds a fresh envelope anyway.
const receiptCacheEntries = 1000

// Receipt is the outcome of a submitted payment.
type Receipt struct {
	IdempotencyKey string  `json:"idempotencyKey"`
	Hash           string  `json:"hash"`
	Ledger         int64   `json:"ledger"`
	Successful     bool    `json:"successful"`
	From           string  `json:"from"`
	To             string  `json:"to"`
	Amount         float64 `json:"amount"`
}

// PaymentService signs and submits native payments. Validation happens
// before any network call, so a malformed request never consumes a
// sequence number.
type PaymentService struct {
	ledger            Ledger
	networkPassphrase string
	logger            logging.Logger

	// mu covers the check-and-reserve on pending together with the
	// receipt lookup, so one idempotency key submits at most once.
	mu       sync.Mutex
	receipts *cache2go.Cache
	pending  map[string]struct{}

	now func() time.Time
}

func NewPaymentService(l Ledger, networkPassphrase string, logger logging.Logger) *PaymentService {
	return &PaymentService{
		ledger:            l,
		networkPassphrase: networkPassphrase,
		logger:            logger,
		receipts:          cache2go.New(receiptCacheEntries, paymentWindow),
		pending:           make(map[string]struct{}),
		now:               time.Now,
	}
}

// Pay sends amount (decimal units, e.g. "12.5") from the account behind
// secret to destination. When idempotencyKey matches a receipt stored
// within the envelope validity window the receipt is returned and nothing
// hits the network; a key whose first submission is still in flight is
// refused. An empty key gets a generated one.
func (s *PaymentService) Pay(ctx context.Context, secret, destination, amount, idempotencyKey string) (*Receipt, error) {

	kp, err := ledger.ParseSecret(secret)
	if err != nil {
		return nil, err
	}
	if !ledger.IsValidAddress(destination) {
		return nil, fmt.Errorf("destination %q: %w", destination, common.ErrorInvalidDestination)
	}
	stroops, err := ledger.ParseAmount(amount)
	if err != nil {
		return nil, err
	}

	if idempotencyKey == "" {
		idempotencyKey = uuid.NewString()
	}

	s.mu.Lock()
	if cached, ok := s.receipts.Get(idempotencyKey); ok {
		s.mu.Unlock()
		return cached.(*Receipt), nil
	}
	if _, inflight := s.pending[idempotencyKey]; inflight {
		s.mu.Unlock()
		return nil, fmt.Errorf("payment with key %q is already in flight: %w",
			idempotencyKey, common.ErrorAlreadyExists)
	}
	s.pending[idempotencyKey] = struct{}{}
	s.mu.Unlock()

	// a failed attempt releases the key so the caller may retry
	defer func() {
		s.mu.Lock()
		delete(s.pending, idempotencyKey)
		s.mu.Unlock()
	}()

	acct, err := s.ledger.LoadAccount(ctx, kp.Address())
	if err != nil {
		return nil, mapLedgerError("load source account", err)
	}

	fee, err := s.ledger.FetchBaseFee(ctx)
	if err != nil {
		s.logger.Warn(ctx, "base fee lookup failed, using default", "error", err)
		fee = ledger.DefaultBaseFee
	}

	bounds := ledger.TimeBounds{Min: 0, Max: uint64(s.now().Add(paymentWindow).Unix())}
	tx, err := ledger.BuildPayment(kp, acct.Sequence+1, fee, destination, stroops, s.networkPassphrase, bounds)
	if err != nil {
		return nil, err
	}

	resp, err := s.ledger.SubmitTransaction(ctx, tx.EnvelopeXDR)
	if err != nil {
		return nil, mapLedgerError("submit transaction", err)
	}

	receipt := &Receipt{
		IdempotencyKey: idempotencyKey,
		Hash:           resp.Hash,
		Ledger:         resp.Ledger,
		Successful:     resp.Successful,
		From:           kp.Address(),
		To:             destination,
		Amount:         float64(stroops) / ledger.StroopsPerUnit,
	}

	s.mu.Lock()
	s.receipts.Set(idempotencyKey, receipt)
	s.mu.Unlock()

	s.logger.Info(ctx, "payment submitted",
		"hash", resp.Hash, "from", kp.Address(), "to", destination, "amount", amount)

	return receipt, nil
}

// Balance returns the account's native balance and full asset positions.
func (s *PaymentService) Balance(ctx context.Context, publicKey string) (*ledger.Account, error) {
	if !ledger.IsValidAddress(publicKey) {
		return nil, fmt.Errorf("public key %q: %w", publicKey, common.ErrorValidation)
	}
	acct, err := s.ledger.LoadAccount(ctx, publicKey)
	if err != nil {
		if errors.Is(err, ledger.ErrAccountNotFound) {
			return nil, fmt.Errorf("account %s: %w", publicKey, common.ErrorNotFound)
		}
		return nil, mapLedgerError("load account", err)
	}
	return acct, nil
}

// mapLedgerError folds Horizon failures into the two sentinel classes the
// HTTP layer distinguishes: a structured refusal keeps its result codes
// under ErrorLedgerRejected, anything else is ErrorLedgerUnavailable.
func mapLedgerError(op string, err error) error {
	if errors.Is(err, ledger.ErrAccountNotFound) {
		return fmt.Errorf("%s: account does not exist: %w", op, common.ErrorLedgerRejected)
	}
	var herr *ledger.Error
	if errors.As(err, &herr) {
		return fmt.Errorf("%s: %s: %w", op, herr.Error(), common.ErrorLedgerRejected)
	}
	return fmt.Errorf("%s: %v: %w", op, err, common.ErrorLedgerUnavailable)
}
