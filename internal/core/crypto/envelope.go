// Package crypto implements envelope encryption for stored secrets using
// AES-256-GCM with a process-wide master key. An envelope is the base64
// encoding of nonce || tag || ciphertext, stored as one opaque string.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
)

// ErrDecryptFailed covers every malformed input: wrong key, truncated or
// tampered envelope, broken encoding. Always recoverable by the caller.
var ErrDecryptFailed = errors.New("decryption failed")

const keySize = 32

type Engine struct {
	aead cipher.AEAD
}

// New builds an engine from a 32-byte key. The key is fixed for the process
// lifetime; rotating it requires a restart and re-encryption of stored data.
func New(key []byte) (*Engine, error) {
	if len(key) != keySize {
		return nil, fmt.Errorf("master key must be %d bytes, got %d", keySize, len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &Engine{aead: aead}, nil
}

// NewFromHex builds an engine from a hex-encoded key, the form the key takes
// in configuration.
func NewFromHex(hexKey string) (*Engine, error) {
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("master key is not valid hex: %w", err)
	}
	return New(key)
}

// Encrypt seals plaintext under a fresh random nonce. Nonce reuse under the
// same key breaks GCM, so callers never supply one.
func (e *Engine) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, e.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}

	// Seal appends the tag to the ciphertext; the envelope layout wants it
	// up front, right after the nonce.
	sealed := e.aead.Seal(nil, nonce, []byte(plaintext), nil)
	tagAt := len(sealed) - e.aead.Overhead()

	env := make([]byte, 0, len(nonce)+len(sealed))
	env = append(env, nonce...)
	env = append(env, sealed[tagAt:]...)
	env = append(env, sealed[:tagAt]...)
	return base64.StdEncoding.EncodeToString(env), nil
}

// Decrypt opens an envelope produced by Encrypt. Any failure is reported as
// ErrDecryptFailed; a tag mismatch never yields wrong plaintext.
func (e *Engine) Decrypt(envelope string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(envelope)
	if err != nil {
		return "", ErrDecryptFailed
	}
	ns, overhead := e.aead.NonceSize(), e.aead.Overhead()
	if len(data) < ns+overhead {
		return "", ErrDecryptFailed
	}
	nonce := data[:ns]
	tag := data[ns : ns+overhead]
	body := data[ns+overhead:]

	sealed := make([]byte, 0, len(body)+len(tag))
	sealed = append(sealed, body...)
	sealed = append(sealed, tag...)

	plaintext, err := e.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", ErrDecryptFailed
	}
	return string(plaintext), nil
}
