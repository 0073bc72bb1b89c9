// Package id generates opaque identifiers for rendered elements and requests.
package id

import (
	"encoding/base32"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// shortIDBytes is the number of random UUID bytes kept by NewShortID. Ten
// bytes encode to sixteen base32 characters without padding.
const shortIDBytes = 10

var encoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// Generator returns a new identifier on every call.
type Generator func() (string, error)

// NewID returns a lowercase, unpadded base32 encoding of a random UUIDv4.
func NewID() (string, error) {
	raw, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return strings.ToLower(encoding.EncodeToString(raw[:])), nil
}

// NewShortID returns a short, non-sequential, URL-safe identifier suitable
// for HTML element ids and CSS id selectors.
//
// The version and variant nibbles of the underlying UUID are skipped so every
// character carries randomness. The top bit of the first byte is cleared so
// the first character is always a letter (a-p).
func NewShortID() (string, error) {
	raw, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate short id: %w", err)
	}
	buf := make([]byte, 0, shortIDBytes)
	buf = append(buf, raw[0:6]...)
	buf = append(buf, raw[9:13]...)
	buf[0] &= 0x7f
	return strings.ToLower(encoding.EncodeToString(buf)), nil
}
