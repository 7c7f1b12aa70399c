package ledger

import (
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"testing"

	"github.com/Berkcanaskin/stellar/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKeypair(t *testing.T) *Keypair {
	t.Helper()
	kp, err := NewRandomKeypair()
	require.NoError(t, err)
	return kp
}

func TestBuildPayment_EnvelopeStructure(t *testing.T) {
	kp := testKeypair(t)
	dest := testKeypair(t)

	tx, err := BuildPayment(kp, 42, 100, dest.Address(), 5_000_000, TestnetPassphrase, TimeBounds{Min: 0, Max: 1700000030})
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(tx.EnvelopeXDR)
	require.NoError(t, err)

	// envelope discriminant: ENVELOPE_TYPE_TX
	assert.Equal(t, uint32(2), binary.BigEndian.Uint32(raw[0:4]))
	// source account: key type ed25519 followed by the raw public key
	assert.Equal(t, uint32(0), binary.BigEndian.Uint32(raw[4:8]))
	assert.Equal(t, []byte(kp.PublicKey()), raw[8:40])
	// fee and sequence number
	assert.Equal(t, uint32(100), binary.BigEndian.Uint32(raw[40:44]))
	assert.Equal(t, uint64(42), binary.BigEndian.Uint64(raw[44:52]))

	// envelope ends with one decorated signature: count, 4-byte hint, 64-byte sig
	sig := raw[len(raw)-64:]
	hint := raw[len(raw)-72 : len(raw)-68]
	pub := kp.PublicKey()
	assert.Equal(t, pub[28:32], hint)

	// signature must verify over network id + envelope type + tx body
	body := raw[4 : len(raw)-76] // strip discriminant and signature block
	networkID := sha256.Sum256([]byte(TestnetPassphrase))
	payload := append(append([]byte{}, networkID[:]...), 0, 0, 0, 2)
	payload = append(payload, body...)
	hash := sha256.Sum256(payload)

	assert.Equal(t, hash, tx.Hash)
	assert.True(t, ed25519.Verify(ed25519.PublicKey(pub), hash[:], sig))
}

func TestBuildPayment_NetworkScopesSignature(t *testing.T) {
	kp := testKeypair(t)
	dest := testKeypair(t)

	bounds := TimeBounds{Max: 1700000030}
	testTx, err := BuildPayment(kp, 1, 100, dest.Address(), 1, TestnetPassphrase, bounds)
	require.NoError(t, err)
	pubTx, err := BuildPayment(kp, 1, 100, dest.Address(), 1, "Public Global Stellar Network ; September 2015", bounds)
	require.NoError(t, err)

	assert.NotEqual(t, testTx.Hash, pubTx.Hash)
}

func TestBuildPayment_Validation(t *testing.T) {
	kp := testKeypair(t)
	dest := testKeypair(t)

	_, err := BuildPayment(kp, 1, 100, "not-an-address", 1, TestnetPassphrase, TimeBounds{})
	assert.ErrorIs(t, err, common.ErrorInvalidDestination)

	_, err = BuildPayment(kp, 1, 100, dest.Address(), 0, TestnetPassphrase, TimeBounds{})
	assert.ErrorIs(t, err, common.ErrorInvalidAmount)

	_, err = BuildPayment(kp, 1, 100, dest.Seed(), 1, TestnetPassphrase, TimeBounds{})
	assert.ErrorIs(t, err, common.ErrorInvalidDestination, "a seed is not a destination")
}
