package fieldcrypto_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/Bhavesh2823/Empora/internal/shared/fieldcrypto"
)

const (
	testKeyHex = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"
	testIVHex  = "0f0e0d0c0b0a09080706050403020100"
)

func newTestCodec(t *testing.T) *fieldcrypto.Codec {
	t.Helper()
	codec, err := fieldcrypto.New(testKeyHex, testIVHex, zap.NewNop())
	assert.NoError(t, err)
	return codec
}

func TestCodec_RoundTrip(t *testing.T) {
	codec := newTestCodec(t)

	cases := []string{
		"a@acme.test",
		"Acme Pvt Ltd",
		"+91 98765 43210",
		"exactly sixteen!", // one full block
		strings.Repeat("long address line ", 20),
		"unicode: асме 会社 ✓",
	}

	for _, plaintext := range cases {
		ct, err := codec.Encrypt(plaintext)
		assert.NoError(t, err)
		assert.NotEqual(t, plaintext, ct)

		got, err := codec.Decrypt(ct)
		assert.NoError(t, err)
		assert.Equal(t, plaintext, got)
	}
}

func TestCodec_Deterministic(t *testing.T) {
	codec := newTestCodec(t)

	// Same plaintext must yield the same ciphertext: equality lookups on
	// ciphertext columns depend on this.
	first, err := codec.Encrypt("a@acme.test")
	assert.NoError(t, err)
	second, err := codec.Encrypt("a@acme.test")
	assert.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCodec_EmptyInput(t *testing.T) {
	codec := newTestCodec(t)

	ct, err := codec.Encrypt("")
	assert.NoError(t, err)
	assert.Empty(t, ct)

	pt, err := codec.Decrypt("")
	assert.NoError(t, err)
	assert.Empty(t, pt)
}

func TestNew_BadKeyMaterial(t *testing.T) {
	t.Run("missing key", func(t *testing.T) {
		_, err := fieldcrypto.New("", testIVHex, zap.NewNop())
		assert.Error(t, err)
	})

	t.Run("missing iv", func(t *testing.T) {
		_, err := fieldcrypto.New(testKeyHex, "", zap.NewNop())
		assert.Error(t, err)
	})

	t.Run("short key", func(t *testing.T) {
		_, err := fieldcrypto.New("aabbcc", testIVHex, zap.NewNop())
		assert.Error(t, err)
	})

	t.Run("short iv", func(t *testing.T) {
		_, err := fieldcrypto.New(testKeyHex, "aabbcc", zap.NewNop())
		assert.Error(t, err)
	})

	t.Run("not hex", func(t *testing.T) {
		_, err := fieldcrypto.New(strings.Repeat("zz", 32), testIVHex, zap.NewNop())
		assert.Error(t, err)
	})
}

func TestCodec_BadCiphertext(t *testing.T) {
	codec := newTestCodec(t)

	t.Run("not hex", func(t *testing.T) {
		_, err := codec.Decrypt("not-hex-at-all")
		assert.Error(t, err)
	})

	t.Run("wrong block length", func(t *testing.T) {
		_, err := codec.Decrypt("aabbcc")
		assert.Error(t, err)
	})
}

func TestCodec_SafeVariants(t *testing.T) {
	codec := newTestCodec(t)

	// Safe variants swallow failures and return the absent value.
	assert.Empty(t, codec.SafeDecrypt("not-hex-at-all"))
	assert.Empty(t, codec.SafeDecrypt(""))

	ct := codec.SafeEncrypt("a@acme.test")
	assert.NotEmpty(t, ct)
	assert.Equal(t, "a@acme.test", codec.SafeDecrypt(ct))
}
