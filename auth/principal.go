// Package auth - signed request authorization for post creation
package auth

import (
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/alwitt/scribe/models"
)

// Principal an author identity; the hex encoded ed25519 public key of the author
type Principal string

// PrincipalFromPublicKey derive the principal of an ed25519 public key
func PrincipalFromPublicKey(pub ed25519.PublicKey) Principal {
	return Principal(hex.EncodeToString(pub))
}

/*
ParsePrincipal parse a principal from its string form

	@param raw string - the hex encoded public key
	@returns the principal
*/
func ParsePrincipal(raw string) (Principal, error) {
	if !models.IsLowerHex(raw, models.PrincipalIDLength) {
		return "", fmt.Errorf("'%s' is not a principal ID", raw)
	}
	return Principal(raw), nil
}

// PublicKey the ed25519 public key of the principal
func (p Principal) PublicKey() (ed25519.PublicKey, error) {
	raw, err := hex.DecodeString(string(p))
	if err != nil {
		return nil, fmt.Errorf("principal '%s' is not hex encoded [%w]", p, err)
	}
	if len(raw) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("principal '%s' is not an ed25519 public key", p)
	}
	return ed25519.PublicKey(raw), nil
}

// String implements fmt.Stringer
func (p Principal) String() string {
	return string(p)
}

// PostIntent the post an author consents to create
type PostIntent struct {
	Identity string
	Topic    string
	Content  string
}

// Digest SHA-256 over the length prefixed identity, topic and content, hex encoded.
//
// Length prefixes keep ("ab", "c") and ("a", "bc") apart.
func (i PostIntent) Digest() string {
	h := sha256.New()
	for _, field := range []string{i.Identity, i.Topic, i.Content} {
		var prefix [8]byte
		binary.BigEndian.PutUint64(prefix[:], uint64(len(field)))
		_, _ = h.Write(prefix[:])
		_, _ = h.Write([]byte(field))
	}
	return hex.EncodeToString(h.Sum(nil))
}
