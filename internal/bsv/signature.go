package bsv

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// SignatureLength is the size of a compact recoverable signature:
// one header byte followed by 32-byte r and 32-byte s.
const SignatureLength = 65

const (
	headerMin = 27 // recid 0, uncompressed
	headerMax = 42 // BIP137 native segwit, recid 3
)

// ErrMalformedSignature is returned when a signature cannot be decoded.
var ErrMalformedSignature = errors.New("malformed signature")

// Signature is a decoded compact signature.
type Signature [SignatureLength]byte

// DecodeSignature decodes a signature from its transport encoding. Base64
// is tried first, then hex (with or without a 0x prefix).
func DecodeSignature(s string) (Signature, error) {
	var sig Signature

	s = strings.TrimSpace(s)
	if s == "" {
		return sig, fmt.Errorf("%w: empty", ErrMalformedSignature)
	}

	raw, err := decodeTransport(s)
	if err != nil {
		return sig, err
	}
	if len(raw) != SignatureLength {
		return sig, fmt.Errorf("%w: decoded %d bytes, want %d", ErrMalformedSignature, len(raw), SignatureLength)
	}
	if raw[0] < headerMin || raw[0] > headerMax {
		return sig, fmt.Errorf("%w: header byte %d out of range", ErrMalformedSignature, raw[0])
	}

	copy(sig[:], raw)
	return sig, nil
}

func decodeTransport(s string) ([]byte, error) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		raw, err := hexutil.Decode("0x" + s[2:])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedSignature, err)
		}
		return raw, nil
	}

	if raw, err := base64.StdEncoding.DecodeString(s); err == nil && len(raw) == SignatureLength {
		return raw, nil
	}
	if raw, err := base64.RawStdEncoding.DecodeString(s); err == nil && len(raw) == SignatureLength {
		return raw, nil
	}
	if raw, err := hex.DecodeString(s); err == nil {
		return raw, nil
	}
	if raw, err := base64.StdEncoding.DecodeString(s); err == nil {
		return raw, nil
	}

	return nil, fmt.Errorf("%w: neither base64 nor hex", ErrMalformedSignature)
}

// RecoverPublicKey recovers the public key for the given recovery id
// (0..3). The recovery id and compression bits of the header byte are
// ignored.
func (sig Signature) RecoverPublicKey(digest [32]byte, recoveryID byte) (*secp256k1.PublicKey, error) {
	if recoveryID > 3 {
		return nil, fmt.Errorf("recovery id %d out of range", recoveryID)
	}

	var compact [SignatureLength]byte
	compact[0] = headerMin + recoveryID
	copy(compact[1:], sig[1:])

	pub, _, err := ecdsa.RecoverCompact(compact[:], digest[:])
	if err != nil {
		return nil, err
	}
	return pub, nil
}

// Base64 returns the standard base64 encoding used by wallets.
func (sig Signature) Base64() string {
	return base64.StdEncoding.EncodeToString(sig[:])
}

// VerifyMessage reports whether sig is a signature over message by the key
// behind addr. Every recovery id is tried, and each recovered key is checked
// in both compressed and uncompressed form.
func VerifyMessage(addr Address, message string, sig Signature) bool {
	digest := MagicHash(message)

	for recoveryID := byte(0); recoveryID < 4; recoveryID++ {
		pub, err := sig.RecoverPublicKey(digest, recoveryID)
		if err != nil {
			continue
		}
		if AddressFromPubKey(pub.SerializeCompressed(), addr.Version) == addr {
			return true
		}
		if AddressFromPubKey(pub.SerializeUncompressed(), addr.Version) == addr {
			return true
		}
	}

	return false
}

// SignMessage signs message with key in the standard signed-message format.
func SignMessage(key *secp256k1.PrivateKey, message string, compressed bool) Signature {
	digest := MagicHash(message)

	var sig Signature
	copy(sig[:], ecdsa.SignCompact(key, digest[:], compressed))
	return sig
}
