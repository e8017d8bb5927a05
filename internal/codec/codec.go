// Package codec turns build artifacts into the text payload embedded in
// generated loaders, and decodes it back the same way those loaders do.
//
// Encoding is standard base64 (A-Z a-z 0-9 + /, '=' padding, no line
// wrapping) applied to the whole artifact at once, so padding can only ever
// appear at the end of the payload.
package codec

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// Alphabet is the 64-symbol alphabet in value order
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

// Encode returns the payload text for an artifact. It never fails.
func Encode(artifact []byte) string {
	return base64.StdEncoding.EncodeToString(artifact)
}

// EncodedLen returns the payload length for an artifact of n bytes
func EncodedLen(n int) int {
	return 4 * ((n + 2) / 3)
}

// Table returns the 256-entry lookup table used by the generated decoders.
// Entries for bytes outside the alphabet are zero and never read for a
// well-formed payload.
func Table() [256]byte {
	var table [256]byte
	for i := 0; i < len(Alphabet); i++ {
		table[Alphabet[i]] = byte(i)
	}

	return table
}

// Decode reverses Encode using the same group-of-four table decoding the
// generated loaders perform, then trims one byte per trailing '='.
func Decode(payload string) ([]byte, error) {
	if len(payload)%4 != 0 {
		return nil, fmt.Errorf("payload length %d is not a multiple of 4", len(payload))
	}

	table := Table()
	out := make([]byte, 0, len(payload)/4*3)

	for i := 0; i < len(payload); i += 4 {
		v0 := table[payload[i]]
		v1 := table[payload[i+1]]
		v2 := table[payload[i+2]]
		v3 := table[payload[i+3]]
		out = append(out, v0<<2|v1>>4, v1<<4|v2>>2, v2<<6|v3)
	}

	switch {
	case strings.HasSuffix(payload, "=="):
		out = out[:len(out)-2]
	case strings.HasSuffix(payload, "="):
		out = out[:len(out)-1]
	}

	return out, nil
}
