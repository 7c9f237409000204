package crypt

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
	"strings"

	"github.com/warpdl/cookex/internal/platform"
)

// v10 plaintext carries a 32-byte authentication/metadata prefix added by the
// browser before the cookie value proper.
const v10PrefixLen = 32

// cbcIV is the fixed initialization vector for the v10 generation.
var cbcIV = []byte("                ")

// UnprotectFunc hands a blob to the platform-native protection API (DPAPI on
// Windows). It is nil on platforms without one.
type UnprotectFunc func(data []byte) ([]byte, error)

// Decryptor opens cipher envelopes for one browser profile. Key is the
// profile's derived key; Unprotect, when set, handles Legacy envelopes.
// A Decryptor never reads ambient state: platform behavior is fixed at
// construction.
type Decryptor struct {
	Key       []byte
	Platform  platform.Platform
	Unprotect UnprotectFunc
}

// Open decrypts an encrypted cookie blob into its plaintext value.
//
// Callers decide the failure policy: a non-nil error means this one value is
// unrecoverable (bad padding geometry, authentication failure, foreign
// protection scope) and is expected to be downgraded to an empty value rather
// than aborting the batch.
func (d *Decryptor) Open(blob []byte) (string, error) {
	env, err := Classify(blob)
	if err != nil {
		return "", err
	}
	switch e := env.(type) {
	case V10:
		return d.openV10(e)
	case V11:
		return d.openV11(e)
	case Legacy:
		return d.openLegacy(e)
	default:
		return "", fmt.Errorf("unhandled envelope %T", env)
	}
}

func (d *Decryptor) openV10(e V10) (string, error) {
	block, err := aes.NewCipher(d.Key)
	if err != nil {
		return "", err
	}
	if len(e.Ciphertext) == 0 || len(e.Ciphertext)%aes.BlockSize != 0 {
		return "", fmt.Errorf("v10 ciphertext length %d is not a block multiple", len(e.Ciphertext))
	}
	plain := make([]byte, len(e.Ciphertext))
	cipher.NewCBCDecrypter(block, cbcIV).CryptBlocks(plain, e.Ciphertext)

	// Strip PKCS#7 padding only when the final byte is a plausible length.
	// An implausible value leaves the padding in place instead of failing;
	// real stores rely on this leniency.
	if pad := int(plain[len(plain)-1]); pad < aes.BlockSize && pad <= len(plain) {
		plain = plain[:len(plain)-pad]
	}
	if len(plain) > v10PrefixLen {
		plain = plain[v10PrefixLen:]
	}
	return lossyString(plain), nil
}

func (d *Decryptor) openV11(e V11) (string, error) {
	block, err := aes.NewCipher(d.Key)
	if err != nil {
		return "", err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}
	sealed := make([]byte, 0, len(e.Ciphertext)+len(e.Tag))
	sealed = append(sealed, e.Ciphertext...)
	sealed = append(sealed, e.Tag...)
	plain, err := gcm.Open(nil, e.Nonce, sealed, nil)
	if err != nil {
		return "", fmt.Errorf("v11 authentication failed: %w", err)
	}
	return lossyString(plain), nil
}

func (d *Decryptor) openLegacy(e Legacy) (string, error) {
	if d.Unprotect != nil {
		plain, err := d.Unprotect(e.Raw)
		if err == nil {
			return lossyString(plain), nil
		}
		// Fall through: blobs predating the protection API are plaintext.
	}
	return lossyString(e.Raw), nil
}

// lossyString decodes bytes as UTF-8, substituting the replacement character
// for invalid sequences instead of failing.
func lossyString(b []byte) string {
	return strings.ToValidUTF8(string(b), "�")
}
