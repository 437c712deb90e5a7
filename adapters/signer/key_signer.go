package signer

import (
	"context"
	"fmt"

	"github.com/layer-3/ordauth/internal/bsv"
	"github.com/layer-3/ordauth/ports"
)

// KeySigner signs with a private key held in process
type KeySigner struct {
	wif bsv.WIF
}

var _ ports.SigningProvider = (*KeySigner)(nil)

// NewKeySigner wraps an already decoded key
func NewKeySigner(wif bsv.WIF) *KeySigner {
	return &KeySigner{wif: wif}
}

// ParseKeySigner decodes a WIF private key
func ParseKeySigner(wif string) (*KeySigner, error) {
	key, err := bsv.DecodeWIF(wif)
	if err != nil {
		return nil, fmt.Errorf("failed to load signing key: %w", err)
	}
	return NewKeySigner(key), nil
}

// Address returns the P2PKH address of the key
func (k *KeySigner) Address() string {
	return k.wif.Address().String()
}

// SignMessage returns a base64 compact signature over message
func (k *KeySigner) SignMessage(ctx context.Context, message string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return k.wif.Sign(message).Base64(), nil
}
