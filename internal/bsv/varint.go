package bsv

import "encoding/binary"

// AppendVarInt appends n to dst using the chain's variable-length integer
// encoding (CompactSize).
func AppendVarInt(dst []byte, n uint64) []byte {
	switch {
	case n < 0xfd:
		return append(dst, byte(n))
	case n <= 0xffff:
		dst = append(dst, 0xfd)
		return binary.LittleEndian.AppendUint16(dst, uint16(n))
	case n <= 0xffffffff:
		dst = append(dst, 0xfe)
		return binary.LittleEndian.AppendUint32(dst, uint32(n))
	default:
		// 8 bytes, low half first
		dst = append(dst, 0xff)
		dst = binary.LittleEndian.AppendUint32(dst, uint32(n))
		return binary.LittleEndian.AppendUint32(dst, uint32(n>>32))
	}
}

// VarIntSize returns the encoded length of n.
func VarIntSize(n uint64) int {
	switch {
	case n < 0xfd:
		return 1
	case n <= 0xffff:
		return 3
	case n <= 0xffffffff:
		return 5
	default:
		return 9
	}
}
