package ports

import "context"

// SigningProvider is anything that can sign a message with the private key
// of one address: a browser wallet bridge, a hardware wallet, a local key
// or a human pasting a signature.
type SigningProvider interface {
	// Address returns the address whose key signs.
	Address() string
	// SignMessage returns the signature over message in the standard
	// signed-message format, base64 or hex encoded.
	SignMessage(ctx context.Context, message string) (string, error)
}
