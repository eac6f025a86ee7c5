package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(ttl time.Duration) Config {
	return Config{
		Secret: []byte("0123456789abcdef0123456789abcdef"),
		TTL:    ttl,
	}
}

func TestGenerate_ValidateRoundtrip(t *testing.T) {
	cfg := testConfig(30 * time.Minute)

	tokenString, expiresIn, err := Generate(cfg, "a@x.com")
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)
	assert.Equal(t, int64(1800), expiresIn)

	claims, err := Validate(cfg, tokenString)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", claims.Subject)
	assert.Equal(t, "bazaar", claims.Issuer)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), claims.ExpiresAt.Time, 5*time.Second)
}

func TestValidate_ZeroTTLExpiredImmediately(t *testing.T) {
	cfg := testConfig(0)

	tokenString, _, err := Generate(cfg, "a@x.com")
	require.NoError(t, err)

	_, err = Validate(cfg, tokenString)
	assert.Error(t, err)
}

func TestValidate_Expired(t *testing.T) {
	cfg := testConfig(-time.Minute)

	tokenString, _, err := Generate(cfg, "a@x.com")
	require.NoError(t, err)

	_, err = Validate(cfg, tokenString)
	assert.Error(t, err)
}

func TestValidate_TamperedSignature(t *testing.T) {
	cfg := testConfig(time.Hour)

	tokenString, _, err := Generate(cfg, "a@x.com")
	require.NoError(t, err)

	// Flip the last signature character.
	last := tokenString[len(tokenString)-1]
	flipped := byte('A')
	if last == 'A' {
		flipped = 'B'
	}
	tampered := tokenString[:len(tokenString)-1] + string(flipped)

	_, err = Validate(cfg, tampered)
	assert.Error(t, err)
}

func TestValidate_WrongSecret(t *testing.T) {
	tokenString, _, err := Generate(testConfig(time.Hour), "a@x.com")
	require.NoError(t, err)

	other := Config{
		Secret: []byte("ffffffffffffffffffffffffffffffff"),
		TTL:    time.Hour,
	}
	_, err = Validate(other, tokenString)
	assert.Error(t, err)
}

func TestValidate_Malformed(t *testing.T) {
	cfg := testConfig(time.Hour)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "garbage", token: "not-a-token"},
		{name: "two segments", token: "aaaa.bbbb"},
		{name: "bad base64", token: "a!.b!.c!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Validate(cfg, tt.token)
			assert.Error(t, err)
		})
	}
}

func TestValidate_MissingSubject(t *testing.T) {
	cfg := testConfig(time.Hour)

	tokenString, _, err := Generate(cfg, "")
	require.NoError(t, err)

	_, err = Validate(cfg, tokenString)
	assert.Error(t, err)
}
