// Package token issues and validates the signed bearer tokens that carry
// session state. The token is the complete session: the server keeps no
// record of issued tokens.
package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is the access token lifetime applied by the configuration
// layer when no explicit lifetime is set.
const DefaultTTL = 30 * time.Minute

const issuer = "bazaar"

// Config holds the signing secret and token lifetime. It is built once at
// startup from configuration; the secret must never be a compiled-in
// constant.
type Config struct {
	Secret []byte
	TTL    time.Duration
}

// Claims is the payload embedded in an access token. Subject is the
// account email.
type Claims struct {
	jwt.RegisteredClaims
}

// Generate creates a signed HS256 token for the given account email and
// returns the token together with its lifetime in seconds. The configured
// TTL is used verbatim: a zero TTL produces a token that is already
// expired on the next validation.
func Generate(cfg Config, email string) (string, int64, error) {
	ttl := cfg.TTL

	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(cfg.Secret)
	if err != nil {
		return "", 0, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, int64(ttl.Seconds()), nil
}

// Validate parses and verifies a token string. Malformed structure, a bad
// signature, an unexpected algorithm, a past expiry and a missing subject
// all collapse into a plain error so that callers reject them uniformly.
func Validate(cfg Config, tokenString string) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return cfg.Secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("token has no subject")
	}

	return claims, nil
}
