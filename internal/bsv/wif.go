package bsv

import (
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// WIF version bytes.
const (
	MainnetWIF byte = 0x80
	TestnetWIF byte = 0xef
)

const compressedMarker = 0x01

// ErrInvalidWIF is returned when a private key cannot be decoded.
var ErrInvalidWIF = errors.New("invalid WIF private key")

// WIF is a private key in wallet import format.
type WIF struct {
	Key        *secp256k1.PrivateKey
	Compressed bool
	Testnet    bool
}

// DecodeWIF decodes a base58check wallet-import-format private key.
func DecodeWIF(s string) (WIF, error) {
	payload, version, err := base58.CheckDecode(strings.TrimSpace(s))
	if err != nil {
		return WIF{}, fmt.Errorf("%w: %v", ErrInvalidWIF, err)
	}
	if version != MainnetWIF && version != TestnetWIF {
		return WIF{}, fmt.Errorf("%w: unsupported version 0x%02x", ErrInvalidWIF, version)
	}

	w := WIF{Testnet: version == TestnetWIF}
	switch {
	case len(payload) == 33 && payload[32] == compressedMarker:
		w.Compressed = true
		payload = payload[:32]
	case len(payload) != 32:
		return WIF{}, fmt.Errorf("%w: payload is %d bytes", ErrInvalidWIF, len(payload))
	}

	w.Key = secp256k1.PrivKeyFromBytes(payload)
	if w.Key.Key.IsZero() {
		return WIF{}, fmt.Errorf("%w: zero key", ErrInvalidWIF)
	}
	return w, nil
}

// NewWIF generates a fresh compressed key.
func NewWIF(testnet bool) (WIF, error) {
	key, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return WIF{}, fmt.Errorf("failed to generate key: %w", err)
	}
	return WIF{Key: key, Compressed: true, Testnet: testnet}, nil
}

// String encodes the key in wallet import format.
func (w WIF) String() string {
	payload := w.Key.Serialize()
	if w.Compressed {
		payload = append(payload, compressedMarker)
	}
	version := MainnetWIF
	if w.Testnet {
		version = TestnetWIF
	}
	return base58.CheckEncode(payload, version)
}

// PubKey returns the serialised public key in the key's compression form.
func (w WIF) PubKey() []byte {
	if w.Compressed {
		return w.Key.PubKey().SerializeCompressed()
	}
	return w.Key.PubKey().SerializeUncompressed()
}

// Address returns the P2PKH address controlled by the key.
func (w WIF) Address() Address {
	version := MainnetP2PKH
	if w.Testnet {
		version = TestnetP2PKH
	}
	return AddressFromPubKey(w.PubKey(), version)
}

// Sign signs message with the key.
func (w WIF) Sign(message string) Signature {
	return SignMessage(w.Key, message, w.Compressed)
}
