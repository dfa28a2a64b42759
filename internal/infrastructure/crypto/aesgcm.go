// Package crypto cifra o payload das configurações de filtro salvas.
// AES-256-GCM com nonce aleatório prefixado ao ciphertext.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// AESGCM cifrador simétrico para payloads pequenos.
type AESGCM struct {
	aead cipher.AEAD
}

// NewAESGCM constrói o cifrador a partir da chave em hex (32 bytes = 64 chars).
func NewAESGCM(hexKey string) (*AESGCM, error) {
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("chave de filtro inválida: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("chave de filtro deve ter 32 bytes, tem %d", len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &AESGCM{aead: aead}, nil
}

// Encrypt cifra o payload; o nonce vai prefixado no resultado.
func (c *AESGCM) Encrypt(plain []byte) ([]byte, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	return c.aead.Seal(nonce, nonce, plain, nil), nil
}

// Decrypt decifra um payload produzido por Encrypt.
func (c *AESGCM) Decrypt(data []byte) ([]byte, error) {
	ns := c.aead.NonceSize()
	if len(data) < ns {
		return nil, fmt.Errorf("payload curto demais")
	}
	return c.aead.Open(nil, data[:ns], data[ns:], nil)
}
