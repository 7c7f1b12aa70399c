// Package ledger is the client side of the external Stellar network: strkey
// and amount codecs, ed25519 keypairs, payment transaction envelopes, and a
// Horizon REST client. Nothing in here holds application state; the network
// is the source of truth for accounts and payments.
package ledger

import (
	"encoding/base32"
	"errors"
	"fmt"
)

// Strkey version bytes. The high 5 bits select the leading base32 character:
// 'G' for account ids, 'S' for seeds.
const (
	versionAccountID byte = 6 << 3
	versionSeed      byte = 18 << 3
)

const rawKeySize = 32

var b32 = base32.StdEncoding.WithPadding(base32.NoPadding)

var errChecksum = errors.New("invalid strkey checksum")

// crc16 computes CRC16-XModem (poly 0x1021, init 0) over data.
func crc16(data []byte) uint16 {
	var crc uint16
	for _, b := range data {
		crc ^= uint16(b) << 8
		for i := 0; i < 8; i++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}

func encodeStrkey(version byte, payload []byte) string {
	data := make([]byte, 0, 1+len(payload)+2)
	data = append(data, version)
	data = append(data, payload...)
	crc := crc16(data)
	data = append(data, byte(crc), byte(crc>>8)) // little-endian
	return b32.EncodeToString(data)
}

func decodeStrkey(version byte, s string) ([]byte, error) {
	data, err := b32.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid strkey: %w", err)
	}
	if len(data) != 1+rawKeySize+2 {
		return nil, fmt.Errorf("invalid strkey length %d", len(data))
	}
	if data[0] != version {
		return nil, fmt.Errorf("unexpected strkey version byte 0x%02x", data[0])
	}

	body, checksum := data[:len(data)-2], data[len(data)-2:]
	crc := crc16(body)
	if checksum[0] != byte(crc) || checksum[1] != byte(crc>>8) {
		return nil, errChecksum
	}

	return body[1:], nil
}

// EncodeAccountID encodes a raw ed25519 public key as a G... address.
func EncodeAccountID(pub []byte) string {
	return encodeStrkey(versionAccountID, pub)
}

// DecodeAccountID decodes a G... address into the raw 32-byte public key.
func DecodeAccountID(address string) ([]byte, error) {
	return decodeStrkey(versionAccountID, address)
}

// EncodeSeed encodes a raw ed25519 seed as an S... secret.
func EncodeSeed(seed []byte) string {
	return encodeStrkey(versionSeed, seed)
}

// DecodeSeed decodes an S... secret into the raw 32-byte seed.
func DecodeSeed(secret string) ([]byte, error) {
	return decodeStrkey(versionSeed, secret)
}

// IsValidAddress reports whether address is a well-formed account id.
func IsValidAddress(address string) bool {
	_, err := DecodeAccountID(address)
	return err == nil
}
