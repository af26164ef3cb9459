package crypto

import (
	"errors"
	"strings"
	"testing"

	"github.com/MKhiriev/go-pass-keeper-vault/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy exhausted") }

func TestEncrypt_Format(t *testing.T) {
	c := NewFieldCipher()
	key := makeKey(t, 0x2A)

	field, err := c.Encrypt("My Bank", key)
	require.NoError(t, err)

	parts := strings.Split(string(field), ":")
	require.Len(t, parts, 3)
	assert.Len(t, parts[0], IVSize*2)
	assert.Len(t, parts[1], TagSize*2)
	assert.Len(t, parts[2], len("My Bank")*2)
	assert.Equal(t, strings.ToLower(string(field)), string(field), "hex must be lowercase")
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	c := NewFieldCipher()
	key := makeKey(t, 0x2A)

	for _, p := range []string{
		"a",
		"My Bank",
		"p@ss:word:with:colons",
		"пароль 密码 🔐",
		strings.Repeat("x", 4096),
	} {
		field, err := c.Encrypt(p, key)
		require.NoError(t, err)

		got, err := c.Decrypt(field, key)
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
}

func TestEncrypt_FreshIVEveryCall(t *testing.T) {
	c := NewFieldCipher()
	key := makeKey(t, 0x2A)

	f1, err := c.Encrypt("same plaintext", key)
	require.NoError(t, err)
	f2, err := c.Encrypt("same plaintext", key)
	require.NoError(t, err)

	assert.NotEqual(t, f1, f2)

	p1, err := ParseField(f1)
	require.NoError(t, err)
	p2, err := ParseField(f2)
	require.NoError(t, err)
	assert.NotEqual(t, p1.IV, p2.IV)

	for _, f := range []models.CipheredField{f1, f2} {
		got, err := c.Decrypt(f, key)
		require.NoError(t, err)
		assert.Equal(t, "same plaintext", got)
	}
}

func TestEncrypt_Errors(t *testing.T) {
	c := NewFieldCipher()
	key := makeKey(t, 0x2A)

	_, err := c.Encrypt("", key)
	assert.ErrorIs(t, err, ErrEmptyPlaintext)

	_, err = c.Encrypt("x", nil)
	assert.ErrorIs(t, err, ErrMissingKey)

	wiped := makeKey(t, 0x2A)
	wiped.Wipe()
	_, err = c.Encrypt("x", wiped)
	assert.ErrorIs(t, err, ErrMissingKey)

	broken := &fieldCipher{random: failingReader{}}
	_, err = broken.Encrypt("x", key)
	assert.ErrorIs(t, err, ErrRandomSource)
}

func TestEncryptOptional_SkipsEmpty(t *testing.T) {
	c := NewFieldCipher()
	key := makeKey(t, 0x2A)

	field, err := c.EncryptOptional("", key)
	require.NoError(t, err)
	assert.True(t, field.IsEmpty())

	field, err = c.EncryptOptional("https://bank.example", key)
	require.NoError(t, err)
	assert.False(t, field.IsEmpty())
}

func TestDecryptOptional(t *testing.T) {
	c := NewFieldCipher()
	key := makeKey(t, 0x2A)

	got, err := c.DecryptOptional("", key)
	require.NoError(t, err)
	assert.Empty(t, got)

	field, err := c.Encrypt("notes", key)
	require.NoError(t, err)
	got, err = c.DecryptOptional(field, key)
	require.NoError(t, err)
	assert.Equal(t, "notes", got)

	_, err = c.DecryptOptional("garbage", key)
	assert.ErrorIs(t, err, ErrMalformedField)
}

func TestDecrypt_WrongKey(t *testing.T) {
	c := NewFieldCipher()
	k1 := makeKey(t, 0x01)
	k2 := makeKey(t, 0x02)

	field, err := c.Encrypt("secret", k1)
	require.NoError(t, err)

	got, err := c.Decrypt(field, k2)
	assert.Empty(t, got)
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
	assert.True(t, IsDecryptFailure(err))
}

func TestDecrypt_MissingKey(t *testing.T) {
	c := NewFieldCipher()
	key := makeKey(t, 0x01)
	field, err := c.Encrypt("secret", key)
	require.NoError(t, err)

	_, err = c.Decrypt(field, nil)
	assert.ErrorIs(t, err, ErrMissingKey)
	assert.False(t, IsDecryptFailure(err), "a missing key is not a field failure")
}

func TestDecrypt_TamperDetection(t *testing.T) {
	c := NewFieldCipher()
	key := makeKey(t, 0x2A)

	field, err := c.Encrypt("tamper me", key)
	require.NoError(t, err)
	s := string(field)

	// Flip every hex character of the tag and ciphertext segments.
	start := IVSize*2 + 1
	for i := start; i < len(s); i++ {
		if s[i] == ':' {
			continue
		}
		flipped := []byte(s)
		if flipped[i] == '0' {
			flipped[i] = '1'
		} else {
			flipped[i] = '0'
		}

		got, err := c.Decrypt(models.CipheredField(flipped), key)
		assert.Empty(t, got, "position %d", i)
		assert.True(t, IsDecryptFailure(err), "position %d: %v", i, err)
	}
}

func TestDecrypt_Malformed(t *testing.T) {
	c := NewFieldCipher()
	key := makeKey(t, 0x2A)

	valid, err := c.Encrypt("x", key)
	require.NoError(t, err)
	parts := strings.Split(string(valid), ":")

	tests := map[string]string{
		"empty":              "",
		"one segment":        "abcdef",
		"two segments":       parts[0] + ":" + parts[1],
		"four segments":      string(valid) + ":00",
		"missing iv":         ":" + parts[1] + ":" + parts[2],
		"missing tag":        parts[0] + "::" + parts[2],
		"missing ciphertext": parts[0] + ":" + parts[1] + ":",
		"invalid hex":        parts[0] + ":" + parts[1] + ":zz",
		"odd hex length":     parts[0] + ":" + parts[1] + ":abc",
		"uppercase hex":      strings.ToUpper(parts[0]) + ":" + parts[1] + ":" + parts[2],
		"short iv":           parts[0][:22] + ":" + parts[1] + ":" + parts[2],
		"short tag":          parts[0] + ":" + parts[1][:30] + ":" + parts[2],
	}

	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := c.Decrypt(models.CipheredField(in), key)
			assert.Empty(t, got)
			assert.ErrorIs(t, err, ErrMalformedField)
			assert.ErrorIs(t, err, ErrDecryptFailed)
		})
	}
}

func TestParseFormatField_RoundTrip(t *testing.T) {
	f := Field{
		IV:         []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11},
		Tag:        []byte{0xde, 0xad, 0xbe, 0xef, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0xff},
		Ciphertext: []byte{0xca, 0xfe},
	}

	s := FormatField(f)
	assert.Equal(t, models.CipheredField("000102030405060708090a0b:deadbeef0000000000000000000000ff:cafe"), s)

	back, err := ParseField(s)
	require.NoError(t, err)
	assert.Equal(t, f, back)
}

// TestVault_EndToEnd walks the documented scenario with the production
// Argon2id parameters.
func TestVault_EndToEnd(t *testing.T) {
	if testing.Short() {
		t.Skip("uses production Argon2id parameters")
	}

	d := NewKeyDeriver()
	c := NewFieldCipher()

	k, err := d.Derive("correct-horse", "user-42", "pepper-v1")
	require.NoError(t, err)

	f, err := c.Encrypt("My Bank", k)
	require.NoError(t, err)

	got, err := c.Decrypt(f, k)
	require.NoError(t, err)
	assert.Equal(t, "My Bank", got)

	wrong, err := d.Derive("wrong-pw", "user-42", "pepper-v1")
	require.NoError(t, err)

	got, err = c.Decrypt(f, wrong)
	assert.Empty(t, got)
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}
