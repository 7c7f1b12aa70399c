// Package services implements the application logic between the HTTP
// surface and the repositories and ledger client.
package services

import (
	"context"

	"github.com/Berkcanaskin/stellar/internal/ledger"
)

// Ledger is the subset of the Horizon client the services depend on.
type Ledger interface {
	LoadAccount(ctx context.Context, publicKey string) (*ledger.Account, error)
	FetchBaseFee(ctx context.Context) (int64, error)
	SubmitTransaction(ctx context.Context, envelopeXDR string) (*ledger.SubmitResponse, error)
	Payments(ctx context.Context, publicKey string, limit int, order string) ([]ledger.PaymentRecord, error)
	Operations(ctx context.Context, publicKey string, limit int, order string) ([]ledger.OperationRecord, error)
}
