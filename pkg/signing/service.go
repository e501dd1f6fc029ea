// Package signing provides Ed25519 document signing backed by the key slots
// in the embedded store. Keys are generated in the browser, never leave the
// local database, and travel through the JS boundary only as opaque base64
// strings.
package signing

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/kittclouds/lexkitt/internal/store"
)

// ErrNoKeyPair is returned when signing is attempted before key generation.
var ErrNoKeyPair = errors.New("signing: no key pair in store")

// KeyPair carries the base64-encoded public half for display. The private
// half stays in the store.
type KeyPair struct {
	PublicKey string `json:"publicKey"`
}

// Service signs and verifies documents with a persistent Ed25519 key pair.
type Service struct {
	store store.Storer
}

// NewService creates a signing service over the given store.
func NewService(st store.Storer) *Service {
	return &Service{store: st}
}

// GenerateKeyPair creates a fresh Ed25519 key pair and persists both halves,
// replacing any existing pair. Returns the public half.
func (s *Service) GenerateKeyPair() (*KeyPair, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("signing: key generation failed: %w", err)
	}

	if err := s.store.PutKey(store.SlotPublicKey, base64.StdEncoding.EncodeToString(pub)); err != nil {
		return nil, fmt.Errorf("signing: failed to store public key: %w", err)
	}
	if err := s.store.PutKey(store.SlotPrivateKey, base64.StdEncoding.EncodeToString(priv)); err != nil {
		return nil, fmt.Errorf("signing: failed to store private key: %w", err)
	}

	return &KeyPair{PublicKey: base64.StdEncoding.EncodeToString(pub)}, nil
}

// EnsureKeyPair returns the stored public key, generating a pair on first use.
func (s *Service) EnsureKeyPair() (*KeyPair, error) {
	pub, err := s.store.GetKey(store.SlotPublicKey)
	if err != nil {
		return nil, fmt.Errorf("signing: failed to read public key: %w", err)
	}
	if pub != "" {
		return &KeyPair{PublicKey: pub}, nil
	}
	return s.GenerateKeyPair()
}

// PublicKey returns the stored public key, or "" when no pair exists.
func (s *Service) PublicKey() (string, error) {
	return s.store.GetKey(store.SlotPublicKey)
}

// Sign signs data with the stored private key and returns a base64 signature.
func (s *Service) Sign(data []byte) (string, error) {
	encoded, err := s.store.GetKey(store.SlotPrivateKey)
	if err != nil {
		return "", fmt.Errorf("signing: failed to read private key: %w", err)
	}
	if encoded == "" {
		return "", ErrNoKeyPair
	}

	priv, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("signing: corrupt private key: %w", err)
	}
	if len(priv) != ed25519.PrivateKeySize {
		return "", fmt.Errorf("signing: private key has wrong size %d", len(priv))
	}

	sig := ed25519.Sign(ed25519.PrivateKey(priv), data)
	return base64.StdEncoding.EncodeToString(sig), nil
}

// Verify checks a base64 signature against data using a base64 public key.
// An empty publicKey falls back to the stored one.
func (s *Service) Verify(data []byte, signature, publicKey string) (bool, error) {
	if publicKey == "" {
		stored, err := s.store.GetKey(store.SlotPublicKey)
		if err != nil {
			return false, fmt.Errorf("signing: failed to read public key: %w", err)
		}
		if stored == "" {
			return false, ErrNoKeyPair
		}
		publicKey = stored
	}

	pub, err := base64.StdEncoding.DecodeString(publicKey)
	if err != nil {
		return false, fmt.Errorf("signing: corrupt public key: %w", err)
	}
	if len(pub) != ed25519.PublicKeySize {
		return false, fmt.Errorf("signing: public key has wrong size %d", len(pub))
	}

	sig, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return false, fmt.Errorf("signing: corrupt signature: %w", err)
	}

	return ed25519.Verify(ed25519.PublicKey(pub), data, sig), nil
}

// Hash returns the hex SHA-256 digest of data, used as a document fingerprint
// alongside the signature.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// ClearKeys removes both key halves from the store.
func (s *Service) ClearKeys() error {
	return s.store.ClearKeys()
}
