// Package crypt implements the versioned cipher envelopes wrapping Chromium
// cookie values, and the key derivation that produces the symmetric key they
// are opened with.
package crypt

import "fmt"

// Envelope is the decoded view over an encrypted cookie blob. Exactly one of
// V10, V11 or Legacy is produced per blob by Classify; Decryptor.Open consumes
// the variants exhaustively so an unknown layout can never silently fall
// through to the wrong cipher.
type Envelope interface {
	envelope()
}

// V10 is the AES-CBC generation: a "v10" marker followed by ciphertext.
// The IV is sixteen ASCII spaces on every platform that writes this layout.
type V10 struct {
	Ciphertext []byte
}

// V11 is the AES-GCM generation: "v11", a 12-byte nonce, the ciphertext and a
// trailing 16-byte authentication tag.
type V11 struct {
	Nonce      []byte
	Ciphertext []byte
	Tag        []byte
}

// Legacy is any blob without a recognized version marker. Depending on the
// platform it is either OS-protected (DPAPI) or already plaintext.
type Legacy struct {
	Raw []byte
}

func (V10) envelope()    {}
func (V11) envelope()    {}
func (Legacy) envelope() {}

// v11Overhead is marker + nonce + tag: the minimum length of a valid v11 blob.
const v11Overhead = 3 + 12 + 16

// Classify inspects the leading bytes of an encrypted blob and returns the
// matching envelope variant. It fails only when a recognized marker is present
// but the blob is too short to contain the advertised layout.
func Classify(blob []byte) (Envelope, error) {
	switch {
	case hasMarker(blob, "v10"):
		return V10{Ciphertext: blob[3:]}, nil
	case hasMarker(blob, "v11"):
		if len(blob) < v11Overhead {
			return nil, fmt.Errorf("v11 envelope too short: %d bytes", len(blob))
		}
		return V11{
			Nonce:      blob[3:15],
			Ciphertext: blob[15 : len(blob)-16],
			Tag:        blob[len(blob)-16:],
		}, nil
	default:
		return Legacy{Raw: blob}, nil
	}
}

func hasMarker(blob []byte, marker string) bool {
	return len(blob) >= len(marker) && string(blob[:len(marker)]) == marker
}
