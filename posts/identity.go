package posts

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/alwitt/scribe/models"
)

// IdentityGenerator produces fresh 256-bit post identities
type IdentityGenerator struct {
	rng io.Reader
}

/*
NewIdentityGenerator define new identity generator

	@param rng io.Reader - cryptographically secure random source
	@returns generator
*/
func NewIdentityGenerator(rng io.Reader) *IdentityGenerator {
	return &IdentityGenerator{rng: rng}
}

// Next generate a new post identity
func (g *IdentityGenerator) Next() (string, error) {
	raw := make([]byte, models.PostIdentityLength/2)
	if _, err := io.ReadFull(g.rng, raw); err != nil {
		return "", fmt.Errorf("failed to read random source [%w]", err)
	}
	return hex.EncodeToString(raw), nil
}
