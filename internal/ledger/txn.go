package ledger

import (
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"fmt"

	"github.com/Berkcanaskin/stellar/internal/common"
)

// XDR constants for the envelope subset this client emits: a v1 transaction
// with a time-bounds precondition, no memo, and a single native payment.
const (
	xdrEnvelopeTypeTx   uint32 = 2
	xdrKeyTypeEd25519   uint32 = 0
	xdrPrecondTime      uint32 = 1
	xdrMemoNone         uint32 = 0
	xdrOperationPayment uint32 = 1
	xdrAssetNative      uint32 = 0
)

// TimeBounds is the validity window of a transaction, in Unix seconds.
// Max = 0 means no upper bound.
type TimeBounds struct {
	Min uint64
	Max uint64
}

// Transaction is a signed, submit-ready payment envelope.
type Transaction struct {
	Hash        [32]byte
	EnvelopeXDR string
}

type xdrWriter struct {
	buf bytes.Buffer
}

func (w *xdrWriter) u32(v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	w.buf.Write(b[:])
}

func (w *xdrWriter) u64(v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	w.buf.Write(b[:])
}

func (w *xdrWriter) i64(v int64) {
	w.u64(uint64(v))
}

// fixed writes a fixed-length opaque value (no length prefix).
func (w *xdrWriter) fixed(b []byte) {
	w.buf.Write(b)
}

// opaque writes a variable-length opaque value: length prefix plus data,
// padded to a four-byte boundary.
func (w *xdrWriter) opaque(b []byte) {
	w.u32(uint32(len(b)))
	w.buf.Write(b)
	if pad := len(b) % 4; pad != 0 {
		w.buf.Write(make([]byte, 4-pad))
	}
}

func (w *xdrWriter) accountID(raw []byte) {
	w.u32(xdrKeyTypeEd25519)
	w.fixed(raw)
}

// writeTx emits the Transaction body (everything the signature covers,
// minus the network prefix).
func writeTx(w *xdrWriter, sourceKey []byte, fee uint32, seq int64, bounds TimeBounds, destKey []byte, stroops int64) {
	w.accountID(sourceKey) // sourceAccount
	w.u32(fee)
	w.i64(seq)
	w.u32(xdrPrecondTime) // cond: time bounds
	w.u64(bounds.Min)
	w.u64(bounds.Max)
	w.u32(xdrMemoNone)

	w.u32(1)              // one operation
	w.u32(0)              // op source account absent
	w.u32(xdrOperationPayment)
	w.accountID(destKey)  // destination
	w.u32(xdrAssetNative) // asset
	w.i64(stroops)        // amount

	w.u32(0) // ext
}

// BuildPayment constructs and signs a single native-asset payment of the
// given stroops from kp to destination. seq must be the source account's
// current sequence number plus one, and fee is the per-operation fee in
// stroops. The signature is scoped to networkPassphrase, so an envelope
// built for the testnet cannot be replayed on the public network.
func BuildPayment(kp *Keypair, seq int64, fee int64, destination string, stroops int64, networkPassphrase string, bounds TimeBounds) (*Transaction, error) {
	destKey, err := DecodeAccountID(destination)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInvalidDestination, err)
	}
	if stroops <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", common.ErrorInvalidAmount)
	}
	if fee <= 0 || fee > 0xFFFFFFFF {
		return nil, fmt.Errorf("invalid fee %d", fee)
	}

	var tx xdrWriter
	writeTx(&tx, kp.PublicKey(), uint32(fee), seq, bounds, destKey, stroops)

	// signature payload: network id, envelope type, then the tx body
	networkID := sha256.Sum256([]byte(networkPassphrase))
	var payload xdrWriter
	payload.fixed(networkID[:])
	payload.u32(xdrEnvelopeTypeTx)
	payload.fixed(tx.buf.Bytes())

	hash := sha256.Sum256(payload.buf.Bytes())
	sig := kp.Sign(hash[:])
	hint := kp.Hint()

	var env xdrWriter
	env.u32(xdrEnvelopeTypeTx)
	env.fixed(tx.buf.Bytes())
	env.u32(1) // one decorated signature
	env.fixed(hint[:])
	env.opaque(sig)

	return &Transaction{
		Hash:        hash,
		EnvelopeXDR: base64.StdEncoding.EncodeToString(env.buf.Bytes()),
	}, nil
}
