package util

import (
	"crypto/ecdsa"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the session token claims issued by the identity provider.
// Role lives in custom session metadata.
type Claims struct {
	Email          string         `json:"email,omitempty"`
	Metadata       map[string]any `json:"metadata,omitempty"`
	PublicMetadata map[string]any `json:"public_metadata,omitempty"`
	jwt.RegisteredClaims
}

// Role returns metadata.role, falling back to public_metadata.role.
func (c *Claims) Role() string {
	for _, md := range []map[string]any{c.Metadata, c.PublicMetadata} {
		if role, ok := md["role"].(string); ok && role != "" {
			return role
		}
	}
	return ""
}

var (
	hmacMethods  = []string{"HS256", "HS384", "HS512"}
	rsaMethods   = []string{"RS256", "RS384", "RS512"}
	ecdsaMethods = []string{"ES256", "ES384", "ES512"}
)

// VerificationKey resolves keyMaterial into the key used to check signatures
// and the only algorithms that key may verify. A PEM public key admits RS* or
// ES* tokens; anything else is an HMAC secret and admits HS* tokens.
func VerificationKey(keyMaterial string) (any, []string, error) {
	if strings.TrimSpace(keyMaterial) == "" {
		return nil, nil, errors.New("empty verification key")
	}
	if !strings.Contains(keyMaterial, "-----BEGIN") {
		return []byte(keyMaterial), hmacMethods, nil
	}
	pub, err := parsePublicKey(keyMaterial)
	if err != nil {
		return nil, nil, err
	}
	switch key := pub.(type) {
	case *rsa.PublicKey:
		return key, rsaMethods, nil
	case *ecdsa.PublicKey:
		return key, ecdsaMethods, nil
	default:
		return nil, nil, fmt.Errorf("unsupported public key type %T", pub)
	}
}

func parsePublicKey(pemKey string) (any, error) {
	// Keys passed through env vars often carry literal "\n".
	pemKey = strings.ReplaceAll(pemKey, `\n`, "\n")
	block, _ := pem.Decode([]byte(pemKey))
	if block == nil {
		return nil, errors.New("failed to decode PEM block containing public key")
	}
	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse public key: %w", err)
	}
	return pub, nil
}

// ValidateJWT verifies a token against keyMaterial. The accepted algorithms
// follow from the key, never from the token header.
func ValidateJWT(tokenString string, keyMaterial string) (*Claims, error) {
	key, methods, err := VerificationKey(keyMaterial)
	if err != nil {
		return nil, fmt.Errorf("failed to load verification key: %w", err)
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if !slices.Contains(methods, token.Method.Alg()) {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return key, nil
	}, jwt.WithValidMethods(methods), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("failed to validate token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}
	return claims, nil
}
