// Package models holds the persisted entity shapes shared by the
// repositories and services.
package models

import "time"

// WalletRecord is one custodial keypair stored for a user. Secret may be
// empty, in which case the record is a public-key-only reference and cannot
// be spent from. Possession of the secret is the sole spending authority,
// so it must never leave the custody code paths.
type WalletRecord struct {
	PublicKey string `json:"publicKey"`
	Secret    string `json:"secret,omitempty"`
	Name      string `json:"name,omitempty"`
}

// HasSecret reports whether the record can be used to sign payments.
func (w WalletRecord) HasSecret() bool {
	return w.Secret != ""
}

// Redacted returns a copy safe for profile reads: the secret is stripped.
func (w WalletRecord) Redacted() WalletRecord {
	w.Secret = ""
	return w
}

// User is one registered account. Wallets returned through the profile
// repository are always redacted; only the custody vault hands out secrets.
type User struct {
	UserName  string         `json:"username"`
	PassSalt  []byte         `json:"passSalt"`
	PassHash  []byte         `json:"passHash"`
	Wallets   []WalletRecord `json:"wallets"`
	CreatedAt time.Time      `json:"createdAt"`
}

// UserPatch is a partial profile update. Nil fields keep their stored value.
type UserPatch struct {
	PassSalt []byte
	PassHash []byte
}
