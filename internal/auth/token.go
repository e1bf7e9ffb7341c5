// Package auth mints and verifies the API keys that protect mutating
// endpoints. Raw tokens are shown once at creation; only a bcrypt hash
// and a short lookup prefix are persisted in the config.
package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	// KeyIDPrefix is the prefix for API key IDs
	KeyIDPrefix = "eco_key_"

	// TokenPrefix is the prefix for API tokens (secret keys)
	TokenPrefix = "eco_sk_"

	// PrefixLength is the number of hex characters stored for key lookup
	PrefixLength = 8

	keyIDBytes = 8
	tokenBytes = 32

	bcryptCost = 12
)

// Credential is a freshly minted API key. Token is the raw secret handed
// to the caller exactly once; KeyID, Prefix, and Hash are what gets
// stored.
type Credential struct {
	KeyID  string
	Token  string
	Prefix string
	Hash   string
}

// NewCredential generates a key ID, a random token, and its bcrypt hash.
func NewCredential() (*Credential, error) {
	idBytes := make([]byte, keyIDBytes)
	if _, err := rand.Read(idBytes); err != nil {
		return nil, fmt.Errorf("generate key ID: %w", err)
	}

	secretBytes := make([]byte, tokenBytes)
	if _, err := rand.Read(secretBytes); err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	secret := hex.EncodeToString(secretBytes)
	token := TokenPrefix + secret

	hash, err := HashToken(token)
	if err != nil {
		return nil, err
	}

	return &Credential{
		KeyID:  KeyIDPrefix + hex.EncodeToString(idBytes),
		Token:  token,
		Prefix: secret[:PrefixLength],
		Hash:   hash,
	}, nil
}

// HashToken creates a bcrypt hash of a token. The display prefix is
// stripped first so only the secret part is hashed.
func HashToken(token string) (string, error) {
	secret := strings.TrimPrefix(token, TokenPrefix)
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash token: %w", err)
	}
	return string(hash), nil
}

// VerifyToken checks if a token matches a stored hash.
func VerifyToken(token, hash string) bool {
	secret := strings.TrimPrefix(token, TokenPrefix)
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}

// TokenPrefixOf extracts the lookup prefix from a full token.
func TokenPrefixOf(token string) string {
	secret := strings.TrimPrefix(token, TokenPrefix)
	if len(secret) < PrefixLength {
		return secret
	}
	return secret[:PrefixLength]
}

// ValidTokenFormat reports whether a token looks like one we issued:
// the eco_sk_ prefix followed by the expected run of hex.
func ValidTokenFormat(token string) bool {
	if !strings.HasPrefix(token, TokenPrefix) {
		return false
	}
	secret := strings.TrimPrefix(token, TokenPrefix)
	if len(secret) != tokenBytes*2 {
		return false
	}
	_, err := hex.DecodeString(secret)
	return err == nil
}

// MaskToken returns a display-safe form of a token, keeping only the
// prefix characters. Example: eco_sk_a1b2c3d4****
func MaskToken(token string) string {
	keep := len(TokenPrefix) + PrefixLength
	if len(token) < keep {
		return "****"
	}
	return token[:keep] + "****"
}
