// Package secrets encrypts tenant marketplace credentials at rest.
// Values are sealed with AES-256-GCM under a key derived from the
// configured master key via HKDF, and stored base64-encoded with the
// nonce prepended to the ciphertext.
package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"io"

	"golang.org/x/crypto/hkdf"
)

var (
	// ErrInvalidCiphertext is returned when a stored value cannot be decoded or authenticated
	ErrInvalidCiphertext = errors.New("secrets: invalid ciphertext")

	// ErrEmptyMasterKey is returned when no master key is configured
	ErrEmptyMasterKey = errors.New("secrets: master key is empty")
)

// hkdfInfo binds derived keys to this use so the same master key can
// safely serve other purposes later.
var hkdfInfo = []byte("catsync/credential-encryption/v1")

// Cipher seals and opens credential strings
type Cipher struct {
	aead cipher.AEAD
}

// NewCipher derives an AES-256 key from the master key and prepares the AEAD
func NewCipher(masterKey string) (*Cipher, error) {
	if masterKey == "" {
		return nil, ErrEmptyMasterKey
	}

	kdf := hkdf.New(sha256.New, []byte(masterKey), nil, hkdfInfo)
	key := make([]byte, 32)
	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	return &Cipher{aead: aead}, nil
}

// Encrypt seals a plaintext value and returns the base64 form for storage
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt opens a stored base64 value and returns the plaintext
func (c *Cipher) Decrypt(encoded string) (string, error) {
	sealed, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", ErrInvalidCiphertext
	}

	nonceSize := c.aead.NonceSize()
	if len(sealed) < nonceSize {
		return "", ErrInvalidCiphertext
	}

	nonce, ciphertext := sealed[:nonceSize], sealed[nonceSize:]
	plaintext, err := c.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", ErrInvalidCiphertext
	}

	return string(plaintext), nil
}
