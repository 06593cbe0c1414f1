package main

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"encoding/pem"
	"errors"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"os"
	"time"
)

// Prints the PEM public key for CLERK_JWT_KEY from a Clerk JWKS endpoint,
// e.g. https://<instance>.clerk.accounts.dev/.well-known/jwks.json.

type JWKS struct {
	Keys []JWK `json:"keys"`
}

type JWK struct {
	Kid string `json:"kid"`
	Kty string `json:"kty"`
	Alg string `json:"alg"`
	Use string `json:"use"`
	N   string `json:"n"`
	E   string `json:"e"`
}

func main() {
	url := os.Getenv("CLERK_JWKS_URL")
	if len(os.Args) > 1 {
		url = os.Args[1]
	}
	if url == "" {
		fmt.Fprintln(os.Stderr, "usage: jwks-to-pem <jwks-url> (or set CLERK_JWKS_URL)")
		os.Exit(2)
	}

	jwks, err := fetch(url)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching JWKS: %v\n", err)
		os.Exit(1)
	}
	if len(jwks.Keys) == 0 {
		fmt.Fprintf(os.Stderr, "No keys found in JWKS\n")
		os.Exit(1)
	}

	key := jwks.Keys[0]
	pemBytes, err := toPEM(key)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error converting key %s: %v\n", key.Kid, err)
		os.Exit(1)
	}
	fmt.Print(string(pemBytes))
}

func fetch(url string) (*JWKS, error) {
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var jwks JWKS
	if err := json.Unmarshal(body, &jwks); err != nil {
		return nil, err
	}
	return &jwks, nil
}

// toPEM encodes an RSA JWK as a PKIX public key.
func toPEM(key JWK) ([]byte, error) {
	if key.Kty != "RSA" {
		return nil, fmt.Errorf("expected RSA key, got %s/%s", key.Kty, key.Alg)
	}
	nBytes, err := base64.RawURLEncoding.DecodeString(key.N)
	if err != nil {
		return nil, fmt.Errorf("decoding modulus: %w", err)
	}
	eBytes, err := base64.RawURLEncoding.DecodeString(key.E)
	if err != nil {
		return nil, fmt.Errorf("decoding exponent: %w", err)
	}
	e := new(big.Int).SetBytes(eBytes)
	if !e.IsInt64() || e.Int64() > int64(^uint32(0)>>1) || e.Sign() == 0 {
		return nil, errors.New("invalid exponent")
	}

	publicKey := &rsa.PublicKey{N: new(big.Int).SetBytes(nBytes), E: int(e.Int64())}
	derBytes, err := x509.MarshalPKIXPublicKey(publicKey)
	if err != nil {
		return nil, fmt.Errorf("marshaling public key: %w", err)
	}
	return pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: derBytes}), nil
}
