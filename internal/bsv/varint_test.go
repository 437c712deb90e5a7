package bsv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppendVarInt(t *testing.T) {
	tests := []struct {
		name string
		n    uint64
		want []byte
	}{
		{"zero", 0, []byte{0x00}},
		{"single byte max", 0xfc, []byte{0xfc}},
		{"uint16 min", 0xfd, []byte{0xfd, 0xfd, 0x00}},
		{"uint16 max", 0xffff, []byte{0xfd, 0xff, 0xff}},
		{"uint32 min", 0x10000, []byte{0xfe, 0x00, 0x00, 0x01, 0x00}},
		{"uint32 max", 0xffffffff, []byte{0xfe, 0xff, 0xff, 0xff, 0xff}},
		{"uint64 min", 0x100000000, []byte{0xff, 0x00, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00}},
		{"uint64 halves", 0x0102030405060708, []byte{0xff, 0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AppendVarInt(nil, tt.n)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, len(tt.want), VarIntSize(tt.n))
		})
	}
}

func TestAppendVarIntKeepsPrefix(t *testing.T) {
	got := AppendVarInt([]byte{0xaa}, 1)
	assert.Equal(t, []byte{0xaa, 0x01}, got)
}
