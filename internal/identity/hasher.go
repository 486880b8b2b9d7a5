// Package identity computes content-addressed identities for subscription
// recipes.
//
// A recipe's identity is derived from its type tag plus the sequence of its
// semantically relevant field values, never from the address of the instance.
// Two structurally equal recipes therefore always hash to the same 64-bit id,
// which is what lets the tracker recognize "a new occurrence of an old
// subscription" as the original continuing.
package identity

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"hash"
	"time"
)

// domain is the separation prefix fed to every hasher before recipe data.
// The version suffix enables future algorithm migration.
const domain = "glint/recipe/v1"

// sep delimits the domain prefix and every written field. The null byte
// prevents boundary ambiguity between adjacent variable-length values.
const sep = 0x00

// Hasher accumulates a recipe identity.
//
// Recipes write their type tag first, then each identity-relevant field in a
// fixed order. Hash collisions between distinct recipes are an accepted risk;
// the digest is not a cryptographic commitment.
type Hasher struct {
	h hash.Hash
}

// NewHasher creates a Hasher seeded with the recipe identity domain.
func NewHasher() *Hasher {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{sep})
	return &Hasher{h: h}
}

// WriteString feeds a string field.
func (h *Hasher) WriteString(s string) {
	h.h.Write([]byte(s))
	h.h.Write([]byte{sep})
}

// WriteBytes feeds a raw byte field.
func (h *Hasher) WriteBytes(b []byte) {
	h.h.Write(b)
	h.h.Write([]byte{sep})
}

// WriteUint64 feeds an unsigned integer field.
func (h *Hasher) WriteUint64(v uint64) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	h.h.Write(buf[:])
	h.h.Write([]byte{sep})
}

// WriteInt feeds a signed integer field.
func (h *Hasher) WriteInt(v int64) {
	h.WriteUint64(uint64(v))
}

// WriteBool feeds a boolean field.
func (h *Hasher) WriteBool(v bool) {
	if v {
		h.WriteUint64(1)
	} else {
		h.WriteUint64(0)
	}
}

// WriteDuration feeds a duration field.
func (h *Hasher) WriteDuration(d time.Duration) {
	h.WriteInt(int64(d))
}

// WriteValue feeds a field of dynamic type. Common scalar kinds are hashed
// through their typed writers; anything else falls back to its %#v rendering,
// which is deterministic for plain value types.
func (h *Hasher) WriteValue(v any) {
	switch v := v.(type) {
	case string:
		h.WriteString(v)
	case []byte:
		h.WriteBytes(v)
	case bool:
		h.WriteBool(v)
	case int:
		h.WriteInt(int64(v))
	case int32:
		h.WriteInt(int64(v))
	case int64:
		h.WriteInt(v)
	case uint:
		h.WriteUint64(uint64(v))
	case uint32:
		h.WriteUint64(uint64(v))
	case uint64:
		h.WriteUint64(v)
	case time.Duration:
		h.WriteDuration(v)
	default:
		h.WriteString(fmt.Sprintf("%T:%#v", v, v))
	}
}

// Sum64 finishes the digest and returns the 64-bit recipe id.
// The id is the big-endian prefix of the underlying SHA-256 sum.
func (h *Hasher) Sum64() uint64 {
	sum := h.h.Sum(nil)
	return binary.BigEndian.Uint64(sum[:8])
}
