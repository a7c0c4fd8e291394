package auth

import (
	"crypto/ed25519"
	"fmt"
	"io"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CreatePostAudience JWT audience of post creation authorizations
const CreatePostAudience = "scribe/create-post"

// DefaultTokenLifetime validity window of an issued authorization
const DefaultTokenLifetime = time.Minute * 5

// Claims post creation authorization claims
type Claims struct {
	jwt.RegisteredClaims
	// Digest the PostIntent digest the author consents to
	Digest string `json:"digest"`
}

// Signer issues authorizations on behalf of one principal
type Signer struct {
	privateKey ed25519.PrivateKey
	lifetime   time.Duration
}

/*
NewSigner define a signer from an existing ed25519 private key

	@param privateKey ed25519.PrivateKey - the principal's private key
	@returns signer
*/
func NewSigner(privateKey ed25519.PrivateKey) (*Signer, error) {
	if len(privateKey) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("not an ed25519 private key")
	}
	return &Signer{privateKey: privateKey, lifetime: DefaultTokenLifetime}, nil
}

/*
GenerateSigner define a signer for a newly generated principal

	@param rng io.Reader - random source for key generation
	@returns signer
*/
func GenerateSigner(rng io.Reader) (*Signer, error) {
	_, priv, err := ed25519.GenerateKey(rng)
	if err != nil {
		return nil, fmt.Errorf("failed to generate ed25519 key pair [%w]", err)
	}
	return NewSigner(priv)
}

// Principal the principal the signer acts for
func (s *Signer) Principal() Principal {
	return PrincipalFromPublicKey(s.privateKey.Public().(ed25519.PublicKey))
}

// PrivateKey the principal's private key
func (s *Signer) PrivateKey() ed25519.PrivateKey {
	return s.privateKey
}

/*
AuthorizeCreatePost issue a token authorizing exactly one post

	@param intent PostIntent - the post being authorized
	@param issuedAt time.Time - token issue time
	@returns the compact signed token
*/
func (s *Signer) AuthorizeCreatePost(intent PostIntent, issuedAt time.Time) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.Principal().String(),
			Audience:  jwt.ClaimStrings{CreatePostAudience},
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.lifetime)),
		},
		Digest: intent.Digest(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims).SignedString(s.privateKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign post authorization [%w]", err)
	}
	return token, nil
}
