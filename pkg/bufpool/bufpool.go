// Package bufpool pools the per-leg body buffer described in §3's "Body
// buffer" and §4.9's buffer pooling addendum: a forwarder checks one out
// before reading a body, hands it to the filter, and returns it once the
// (possibly rewritten) bytes have been written downstream.
package bufpool

import "github.com/valyala/bytebufferpool"

// Pool wraps bytebufferpool.Pool, which self-calibrates its size classes
// from observed Get/Put traffic rather than the fixed 2KB/4KB/.../64KB
// tiers a hand-rolled pool would need. It is safe for concurrent use, so
// a single Pool can serve every connection.
type Pool struct {
	pool bytebufferpool.Pool
}

// New returns an empty Pool.
func New() *Pool {
	return &Pool{}
}

// Get checks out a buffer, reset to zero length but retaining whatever
// capacity the pool last observed for this traffic shape.
func (p *Pool) Get() *bytebufferpool.ByteBuffer {
	return p.pool.Get()
}

// Put returns buf to the pool. buf must not be used again afterward.
func (p *Pool) Put(buf *bytebufferpool.ByteBuffer) {
	p.pool.Put(buf)
}
