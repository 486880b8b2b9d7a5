package identity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHasher_Deterministic(t *testing.T) {
	a := NewHasher()
	a.WriteString("time.Every")
	a.WriteDuration(time.Second)

	b := NewHasher()
	b.WriteString("time.Every")
	b.WriteDuration(time.Second)

	assert.Equal(t, a.Sum64(), b.Sum64(), "equal writes should yield equal ids")
}

func TestHasher_DistinctFields(t *testing.T) {
	a := NewHasher()
	a.WriteString("time.Every")
	a.WriteDuration(time.Second)

	b := NewHasher()
	b.WriteString("time.Every")
	b.WriteDuration(2 * time.Second)

	assert.NotEqual(t, a.Sum64(), b.Sum64(), "distinct field values should yield distinct ids")
}

func TestHasher_DistinctTypeTags(t *testing.T) {
	a := NewHasher()
	a.WriteString("time.Every")

	b := NewHasher()
	b.WriteString("subscription.Events")

	assert.NotEqual(t, a.Sum64(), b.Sum64())
}

func TestHasher_FieldBoundaries(t *testing.T) {
	// "ab" + "c" must not collide with "a" + "bc".
	a := NewHasher()
	a.WriteString("ab")
	a.WriteString("c")

	b := NewHasher()
	b.WriteString("a")
	b.WriteString("bc")

	assert.NotEqual(t, a.Sum64(), b.Sum64())
}

func TestHasher_WriteValueScalars(t *testing.T) {
	a := NewHasher()
	a.WriteValue("listen")
	a.WriteValue(42)
	a.WriteValue(true)

	b := NewHasher()
	b.WriteString("listen")
	b.WriteInt(42)
	b.WriteBool(true)

	assert.Equal(t, a.Sum64(), b.Sum64(), "WriteValue should route scalars to typed writers")
}

func TestHasher_WriteValueFallback(t *testing.T) {
	type key struct{ Host string }

	a := NewHasher()
	a.WriteValue(key{Host: "a"})

	b := NewHasher()
	b.WriteValue(key{Host: "a"})

	c := NewHasher()
	c.WriteValue(key{Host: "b"})

	assert.Equal(t, a.Sum64(), b.Sum64())
	assert.NotEqual(t, a.Sum64(), c.Sum64())
}
