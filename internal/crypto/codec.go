// Package crypto implements the symmetric envelope shared by the
// identity and products services. A payload is serialized to JSON,
// encrypted with AES-256-GCM under a passphrase-derived key and carried
// on the wire as "ivHex:authTagHex:cipherHex". Issuer and verifier must
// derive identical keys, so the derivation is preserved byte-for-byte
// even though it is not a standard KDF.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const (
	ivSize  = 12
	tagSize = 16
)

// ErrDecryptFailed covers every decryption failure: empty input,
// malformed envelope, bad hex, wrong key, tampered tag, invalid JSON.
// Callers get no further detail.
var ErrDecryptFailed = errors.New("crypto: decrypt failed")

// KeyHex derives the symmetric key from a passphrase: repeat the
// passphrase until it reaches 32 characters, truncate to 32, hex-encode
// the UTF-8 bytes and right-pad with '0' to 64 hex characters. Same
// passphrase always yields the same key.
func KeyHex(passphrase string) string {
	runes := []rune(passphrase)
	if len(runes) == 0 {
		return strings.Repeat("0", 64)
	}

	repeated := runes
	for len(repeated) < 32 {
		repeated = append(repeated, runes...)
	}
	hexKey := hex.EncodeToString([]byte(string(repeated[:32])))

	if len(hexKey) < 64 {
		hexKey += strings.Repeat("0", 64-len(hexKey))
	}
	return hexKey
}

// Encrypt serializes item to JSON and seals it under the passphrase with
// a fresh random 12-byte IV, returning the iv:tag:cipher hex envelope.
func Encrypt(item any, passphrase string) (string, error) {
	plaintext, err := json.Marshal(item)
	if err != nil {
		return "", fmt.Errorf("crypto: marshal payload: %w", err)
	}

	gcm, err := newGCM(passphrase)
	if err != nil {
		return "", err
	}

	iv := make([]byte, ivSize)
	if _, err := rand.Read(iv); err != nil {
		return "", fmt.Errorf("crypto: generate iv: %w", err)
	}

	sealed := gcm.Seal(nil, iv, plaintext, nil)
	ciphertext := sealed[:len(sealed)-tagSize]
	tag := sealed[len(sealed)-tagSize:]

	return hex.EncodeToString(iv) + ":" + hex.EncodeToString(tag) + ":" + hex.EncodeToString(ciphertext), nil
}

// Decrypt opens an envelope produced by Encrypt and unmarshals the
// plaintext into out. The ciphertext segment may itself contain ':'
// characters, so only the first two splits are consumed as iv and tag.
// Any failure yields ErrDecryptFailed; Decrypt never panics.
func Decrypt(envelope, passphrase string, out any) error {
	if envelope == "" {
		return ErrDecryptFailed
	}

	parts := strings.Split(envelope, ":")
	if len(parts) < 3 {
		return ErrDecryptFailed
	}

	iv, err := hex.DecodeString(parts[0])
	if err != nil || len(iv) != ivSize {
		return ErrDecryptFailed
	}
	tag, err := hex.DecodeString(parts[1])
	if err != nil || len(tag) != tagSize {
		return ErrDecryptFailed
	}
	ciphertext, err := hex.DecodeString(strings.Join(parts[2:], ":"))
	if err != nil {
		return ErrDecryptFailed
	}

	gcm, err := newGCM(passphrase)
	if err != nil {
		return ErrDecryptFailed
	}

	plaintext, err := gcm.Open(nil, iv, append(ciphertext, tag...), nil)
	if err != nil {
		return ErrDecryptFailed
	}

	if err := json.Unmarshal(plaintext, out); err != nil {
		return ErrDecryptFailed
	}
	return nil
}

func newGCM(passphrase string) (cipher.AEAD, error) {
	key, err := hex.DecodeString(KeyHex(passphrase))
	if err != nil {
		return nil, fmt.Errorf("crypto: decode key: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("crypto: init cipher: %w", err)
	}

	return cipher.NewGCMWithNonceSize(block, ivSize)
}
