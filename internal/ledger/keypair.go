package ledger

import (
	"crypto/ed25519"
	"crypto/rand"
	"fmt"

	"github.com/Berkcanaskin/stellar/internal/common"
)

// Keypair is an ed25519 signing keypair in the ledger's key format.
type Keypair struct {
	pub  ed25519.PublicKey
	priv ed25519.PrivateKey
}

// ParseSecret builds a Keypair from an S... secret seed. The derived public
// key is the only valid source address for payments signed with this secret.
func ParseSecret(secret string) (*Keypair, error) {
	raw, err := DecodeSeed(secret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInvalidSecret, err)
	}
	priv := ed25519.NewKeyFromSeed(raw)
	return &Keypair{
		pub:  priv.Public().(ed25519.PublicKey),
		priv: priv,
	}, nil
}

// NewRandomKeypair generates a fresh keypair. Used by the bootstrap tooling;
// the server itself never creates accounts.
func NewRandomKeypair() (*Keypair, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, err
	}
	return &Keypair{pub: pub, priv: priv}, nil
}

// Address returns the G... account id.
func (kp *Keypair) Address() string {
	return EncodeAccountID(kp.pub)
}

// Seed returns the S... secret seed.
func (kp *Keypair) Seed() string {
	return EncodeSeed(kp.priv.Seed())
}

// PublicKey returns the raw 32-byte ed25519 public key.
func (kp *Keypair) PublicKey() []byte {
	return kp.pub
}

// Sign signs msg with the secret key.
func (kp *Keypair) Sign(msg []byte) []byte {
	return ed25519.Sign(kp.priv, msg)
}

// Hint returns the last four bytes of the public key, used to tag
// signatures in a transaction envelope.
func (kp *Keypair) Hint() [4]byte {
	var hint [4]byte
	copy(hint[:], kp.pub[len(kp.pub)-4:])
	return hint
}
