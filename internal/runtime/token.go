package runtime

import "github.com/google/uuid"

// TokenGenerator produces correlation tokens stamped on spawned tasks so
// their log lines can be tied back to the update cycle that created them.
// Implemented by UUIDGenerator in production and testutil.FixedTokens in
// tests.
type TokenGenerator interface {
	Generate() string
}

// UUIDGenerator issues random UUID tokens.
type UUIDGenerator struct{}

func (UUIDGenerator) Generate() string {
	return uuid.NewString()
}
