package signer

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/layer-3/ordauth/ports"
)

// ErrNoSignature is returned when the user submits nothing
var ErrNoSignature = errors.New("no signature entered: sign the message in your wallet and paste the result")

// ManualSigner asks a human to sign the challenge in an external wallet and
// paste the signature back. One goroutine reads the input for the lifetime
// of the signer, so a line typed after a cancelled prompt is handed to the
// next SignMessage call.
type ManualSigner struct {
	address string
	out     io.Writer
	in      *bufio.Reader

	start sync.Once
	lines chan lineResult
}

var _ ports.SigningProvider = (*ManualSigner)(nil)

// NewManualSigner creates a signer that prints to out and reads from in
func NewManualSigner(address string, in io.Reader, out io.Writer) *ManualSigner {
	return &ManualSigner{
		address: address,
		out:     out,
		in:      bufio.NewReader(in),
		lines:   make(chan lineResult),
	}
}

// Address returns the address the user claims to control
func (m *ManualSigner) Address() string {
	return m.address
}

type lineResult struct {
	line string
	err  error
}

// readLines feeds m.lines until the input fails or ends.
func (m *ManualSigner) readLines() {
	defer close(m.lines)
	for {
		line, err := m.in.ReadString('\n')
		m.lines <- lineResult{line: line, err: err}
		if err != nil {
			return
		}
	}
}

// SignMessage prints the message and waits for one line of input. If ctx
// ends first ctx.Err() is returned and the line stays queued.
func (m *ManualSigner) SignMessage(ctx context.Context, message string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	_, err := fmt.Fprintf(m.out,
		"Sign this exact message with the key of %s:\n\n%s\n\nPaste the signature (base64 or hex) and press Enter:\n",
		m.address, message)
	if err != nil {
		return "", fmt.Errorf("failed to print instructions: %w", err)
	}

	m.start.Do(func() { go m.readLines() })

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res, ok := <-m.lines:
		if !ok {
			return "", fmt.Errorf("failed to read signature: %w", io.EOF)
		}
		sig := strings.TrimSpace(res.line)
		if res.err != nil && !errors.Is(res.err, io.EOF) {
			return "", fmt.Errorf("failed to read signature: %w", res.err)
		}
		if sig == "" {
			return "", ErrNoSignature
		}
		return sig, nil
	}
}
