package bsv

import "crypto/sha256"

// MagicPrefix is the fixed prefix of the standard signed-message format.
// Wallets such as ElectrumSV, Yours and HandCash sign over it.
const MagicPrefix = "Bitcoin Signed Message:\n"

// SignedMessage builds the canonical byte sequence that wallets sign:
// varint(len(prefix)) || prefix || varint(len(message)) || message.
func SignedMessage(message string) []byte {
	size := VarIntSize(uint64(len(MagicPrefix))) + len(MagicPrefix) +
		VarIntSize(uint64(len(message))) + len(message)

	buf := make([]byte, 0, size)
	buf = AppendVarInt(buf, uint64(len(MagicPrefix)))
	buf = append(buf, MagicPrefix...)
	buf = AppendVarInt(buf, uint64(len(message)))
	return append(buf, message...)
}

// MagicHash returns the double SHA-256 digest of the canonical signed message.
func MagicHash(message string) [32]byte {
	first := sha256.Sum256(SignedMessage(message))
	return sha256.Sum256(first[:])
}
