package util

import (
	"crypto/sha256"
	"errors"
	"io"

	"golang.org/x/crypto/hkdf"
)

const derivedKeySize = 32

// DeriveKey expands secret into an independent key for purpose.
func DeriveKey(secret, purpose string) ([]byte, error) {
	if secret == "" {
		return nil, errors.New("empty secret")
	}
	key := make([]byte, derivedKeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(purpose)), key); err != nil {
		return nil, err
	}
	return key, nil
}
