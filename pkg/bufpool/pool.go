package bufpool

import (
	"sync"
)

// maxRetainFactor bounds how far a returned buffer may have grown past the
// pool size before it is dropped instead of recycled.
const maxRetainFactor = 4

// Pool provides []byte reuse for a single size class.
type Pool struct {
	size int
	pool *sync.Pool
}

// New creates a pool handing out buffers with capacity size.
func New(size int) *Pool {
	if size <= 0 {
		size = 1
	}

	return &Pool{
		size: size,
		pool: &sync.Pool{
			New: func() any {
				return make([]byte, 0, size)
			},
		},
	}
}

// Size returns the capacity of freshly allocated buffers.
func (p *Pool) Size() int {
	return p.size
}

// Get returns an empty buffer with at least Size capacity.
func (p *Pool) Get() []byte {
	buf := p.pool.Get().([]byte)
	return buf[:0]
}

// Put returns a buffer to the pool. The caller must not touch buf afterwards.
func (p *Pool) Put(buf []byte) {
	if buf == nil || cap(buf) < p.size || cap(buf) > p.size*maxRetainFactor {
		return
	}

	buf = buf[:0]
	p.pool.Put(buf)
}
