package bsv

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/base58"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // hash160 is defined over RIPEMD-160
)

// P2PKH address version bytes.
const (
	MainnetP2PKH byte = 0x00
	TestnetP2PKH byte = 0x6f
)

// ErrInvalidAddress is returned for anything that is not a base58check P2PKH address.
var ErrInvalidAddress = errors.New("invalid address")

var uriSchemes = []string{"bitcoin-sv:", "bitcoin:", "bsv:"}

// Address is a decoded pay-to-public-key-hash address. Two addresses are
// equal when both the version byte and the key hash match.
type Address struct {
	Version byte
	Hash160 [20]byte
}

// ParseAddress normalises and decodes a claimed address. Surrounding
// whitespace and a payment URI scheme (with any query string) are removed;
// the remainder must be a base58check P2PKH address for mainnet or testnet.
func ParseAddress(s string) (Address, error) {
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)
	for _, scheme := range uriSchemes {
		if strings.HasPrefix(lower, scheme) {
			s = s[len(scheme):]
			break
		}
	}
	if i := strings.IndexByte(s, '?'); i >= 0 {
		s = s[:i]
	}
	if s == "" {
		return Address{}, fmt.Errorf("%w: empty", ErrInvalidAddress)
	}

	payload, version, err := base58.CheckDecode(s)
	if err != nil {
		return Address{}, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	if version != MainnetP2PKH && version != TestnetP2PKH {
		return Address{}, fmt.Errorf("%w: unsupported version 0x%02x", ErrInvalidAddress, version)
	}
	if len(payload) != 20 {
		return Address{}, fmt.Errorf("%w: payload is %d bytes", ErrInvalidAddress, len(payload))
	}

	addr := Address{Version: version}
	copy(addr.Hash160[:], payload)
	return addr, nil
}

// AddressFromPubKey derives the P2PKH address of a serialised public key.
func AddressFromPubKey(pubKey []byte, version byte) Address {
	return Address{Version: version, Hash160: Hash160(pubKey)}
}

// Hash160 returns RIPEMD-160(SHA-256(b)).
func Hash160(b []byte) [20]byte {
	sum := sha256.Sum256(b)
	h := ripemd160.New()
	h.Write(sum[:])

	var out [20]byte
	copy(out[:], h.Sum(nil))
	return out
}

// Testnet reports whether the address belongs to the test network.
func (a Address) Testnet() bool {
	return a.Version == TestnetP2PKH
}

// String returns the canonical base58check encoding.
func (a Address) String() string {
	return base58.CheckEncode(a.Hash160[:], a.Version)
}
