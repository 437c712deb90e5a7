package signer

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/layer-3/ordauth/internal/bsv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const message = "ORDINALRAINBOWS_AUTH_1700000000000_00112233445566778899aabbccddeeff"

func TestKeySignerProducesVerifiableSignature(t *testing.T) {
	ks, err := ParseKeySigner("KwDiBf89QgGbjEhKnhXJuH7LrciVrZi3qYjgd9M7rFU73sVHnoWn")
	require.NoError(t, err)
	assert.Equal(t, "1BgGZ9tcN4rm9KBzDn7KprQz87SZ26SAMH", ks.Address())

	encoded, err := ks.SignMessage(context.Background(), message)
	require.NoError(t, err)

	sig, err := bsv.DecodeSignature(encoded)
	require.NoError(t, err)
	addr, err := bsv.ParseAddress(ks.Address())
	require.NoError(t, err)
	assert.True(t, bsv.VerifyMessage(addr, message, sig))
}

func TestKeySignerHonoursContext(t *testing.T) {
	w, err := bsv.NewWIF(true)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = NewKeySigner(w).SignMessage(ctx, message)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseKeySignerRejectsGarbage(t *testing.T) {
	_, err := ParseKeySigner("TEST")
	assert.ErrorIs(t, err, bsv.ErrInvalidWIF)
}

func TestManualSignerReadsPastedSignature(t *testing.T) {
	var out strings.Builder
	ms := NewManualSigner("1abc", strings.NewReader("  H+abc==  \n"), &out)

	sig, err := ms.SignMessage(context.Background(), message)
	require.NoError(t, err)
	assert.Equal(t, "H+abc==", sig)
	assert.Contains(t, out.String(), message)
	assert.Contains(t, out.String(), "1abc")
	assert.Equal(t, "1abc", ms.Address())
}

func TestManualSignerAcceptsLastLineWithoutNewline(t *testing.T) {
	ms := NewManualSigner("1abc", strings.NewReader("deadbeef"), io.Discard)

	sig, err := ms.SignMessage(context.Background(), message)
	require.NoError(t, err)
	assert.Equal(t, "deadbeef", sig)
}

func TestManualSignerRejectsEmptyInput(t *testing.T) {
	for _, input := range []string{"", "\n", "   \n"} {
		ms := NewManualSigner("1abc", strings.NewReader(input), io.Discard)
		_, err := ms.SignMessage(context.Background(), message)
		assert.ErrorIs(t, err, ErrNoSignature, "input %q", input)
	}
}

func TestManualSignerCancelledWhileWaiting(t *testing.T) {
	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })

	ms := NewManualSigner("1abc", pr, io.Discard)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := ms.SignMessage(ctx, message)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestManualSignerKeepsInputAfterCancel(t *testing.T) {
	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })

	ms := NewManualSigner("1abc", pr, io.Discard)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := ms.SignMessage(ctx, message)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	go func() {
		_, _ = io.WriteString(pw, "SIG-ONE\n")
		_, _ = io.WriteString(pw, "SIG-TWO\n")
	}()

	sig, err := ms.SignMessage(context.Background(), message)
	require.NoError(t, err)
	assert.Equal(t, "SIG-ONE", sig)

	sig, err = ms.SignMessage(context.Background(), message)
	require.NoError(t, err)
	assert.Equal(t, "SIG-TWO", sig)
}

func TestManualSignerAfterInputEnds(t *testing.T) {
	ms := NewManualSigner("1abc", strings.NewReader("sig\n"), io.Discard)

	sig, err := ms.SignMessage(context.Background(), message)
	require.NoError(t, err)
	assert.Equal(t, "sig", sig)

	_, err = ms.SignMessage(context.Background(), message)
	assert.Error(t, err)
}
