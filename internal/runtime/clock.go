package runtime

import "sync/atomic"

// Clock is a monotonic logical clock. Every message processed by the loop
// is stamped with a strictly increasing seq, which keeps log lines and
// harness transcripts ordered without wall-clock races.
//
// Thread-safe, though the single-writer loop is normally the only caller
// of Next.
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a clock starting at 0; the first Next returns 1.
func NewClock() *Clock {
	return &Clock{}
}

// Next returns the next sequence number.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the latest issued sequence number.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}
