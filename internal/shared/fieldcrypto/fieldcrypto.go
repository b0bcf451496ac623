// Package fieldcrypto encrypts individual PII columns before they reach a
// database. The scheme is AES-256-CBC with a process-wide IV, so equal
// plaintexts always produce equal ciphertexts. That determinism is load-
// bearing: duplicate checks and admin-by-email lookups compare ciphertext
// columns directly. The trade-off is that equal values are distinguishable
// in the ciphertext domain; callers must not use this for anything that
// needs semantic security.
package fieldcrypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"encoding/hex"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/Bhavesh2823/Empora/internal/shared/apperror"
)

const (
	keySize = 32
	ivSize  = aes.BlockSize
)

var (
	ErrKeyMaterial = apperror.New(
		apperror.CodeCryptoFailure,
		"encryption key material is missing or malformed",
		http.StatusInternalServerError,
	)
	ErrCiphertext = apperror.New(
		apperror.CodeCryptoFailure,
		"ciphertext is not valid for the configured cipher",
		http.StatusInternalServerError,
	)
)

type Codec struct {
	key    []byte
	iv     []byte
	logger *zap.Logger
}

// New builds a codec from hex-encoded key material. The key must decode to
// 32 bytes and the IV to 16; anything else is a configuration error, not
// something to limp along with.
func New(keyHex, ivHex string, logger *zap.Logger) (*Codec, error) {
	if keyHex == "" || ivHex == "" {
		return nil, apperror.Wrap(
			fmt.Errorf("ENCRYPTION_KEY or IV is not set"),
			apperror.CodeCryptoFailure,
			ErrKeyMaterial.Message,
			http.StatusInternalServerError,
		)
	}

	key, err := hex.DecodeString(keyHex)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeCryptoFailure, ErrKeyMaterial.Message, http.StatusInternalServerError)
	}
	iv, err := hex.DecodeString(ivHex)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeCryptoFailure, ErrKeyMaterial.Message, http.StatusInternalServerError)
	}

	if len(key) != keySize {
		return nil, apperror.Wrap(
			fmt.Errorf("ENCRYPTION_KEY must be %d bytes, got %d", keySize, len(key)),
			apperror.CodeCryptoFailure,
			ErrKeyMaterial.Message,
			http.StatusInternalServerError,
		)
	}
	if len(iv) != ivSize {
		return nil, apperror.Wrap(
			fmt.Errorf("IV must be %d bytes, got %d", ivSize, len(iv)),
			apperror.CodeCryptoFailure,
			ErrKeyMaterial.Message,
			http.StatusInternalServerError,
		)
	}

	if logger == nil {
		logger = zap.L()
	}

	return &Codec{key: key, iv: iv, logger: logger.Named("fieldcrypto")}, nil
}

// Encrypt returns the hex ciphertext of plaintext. Empty input stays empty:
// an absent value encrypts to an absent value, never to a ciphertext blob.
func (c *Codec) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}

	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", apperror.Wrap(err, apperror.CodeCryptoFailure, ErrKeyMaterial.Message, http.StatusInternalServerError)
	}

	padded := pkcs7Pad([]byte(plaintext), aes.BlockSize)
	out := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, c.iv).CryptBlocks(out, padded)

	return hex.EncodeToString(out), nil
}

// Decrypt reverses Encrypt. Empty input stays empty.
func (c *Codec) Decrypt(ciphertext string) (string, error) {
	if ciphertext == "" {
		return "", nil
	}

	raw, err := hex.DecodeString(ciphertext)
	if err != nil {
		return "", apperror.Wrap(err, apperror.CodeCryptoFailure, ErrCiphertext.Message, http.StatusInternalServerError)
	}
	if len(raw) == 0 || len(raw)%aes.BlockSize != 0 {
		return "", ErrCiphertext
	}

	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", apperror.Wrap(err, apperror.CodeCryptoFailure, ErrKeyMaterial.Message, http.StatusInternalServerError)
	}

	out := make([]byte, len(raw))
	cipher.NewCBCDecrypter(block, c.iv).CryptBlocks(out, raw)

	unpadded, err := pkcs7Unpad(out, aes.BlockSize)
	if err != nil {
		return "", apperror.Wrap(err, apperror.CodeCryptoFailure, ErrCiphertext.Message, http.StatusInternalServerError)
	}

	return string(unpadded), nil
}

// SafeEncrypt never fails: on error it logs and returns "". Display-only
// paths use this so one bad field cannot abort a whole listing. Values that
// feed back into query predicates must use Encrypt.
func (c *Codec) SafeEncrypt(plaintext string) string {
	out, err := c.Encrypt(plaintext)
	if err != nil {
		c.logger.Error("field encryption failed", zap.Error(err))
		return ""
	}
	return out
}

// SafeDecrypt is the decrypt counterpart of SafeEncrypt.
func (c *Codec) SafeDecrypt(ciphertext string) string {
	out, err := c.Decrypt(ciphertext)
	if err != nil {
		c.logger.Error("field decryption failed", zap.Error(err))
		return ""
	}
	return out
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(n)}, n)...)
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, fmt.Errorf("invalid padded length %d", len(data))
	}
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize {
		return nil, fmt.Errorf("invalid padding byte %d", n)
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, fmt.Errorf("inconsistent padding")
		}
	}
	return data[:len(data)-n], nil
}
