// Package pool provides sync.Pool-backed scratch buffers for the container
// builder, keeping per-call allocations down during hot-path blob encoding.
package pool

import "sync"

// Buffer default/max sizes. Containers are typically small (a handful of
// properties), but object and array nesting from deeply-keyed property
// graphs can grow a builder's scratch buffer well past the default.
const (
	BufferDefaultSize  = 1024 * 4   // 4KiB
	BufferMaxThreshold = 1024 * 256 // 256KiB
)

// ByteBuffer is a growable byte slice with pool-friendly Reset/Grow
// semantics, used by container.Builder to accumulate entry tables and
// payload bytes before the final contiguous copy.
type ByteBuffer struct {
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the given starting capacity.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{B: make([]byte, 0, defaultSize)}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte { return bb.B }

// Reset empties the buffer while retaining its backing array.
func (bb *ByteBuffer) Reset() { bb.B = bb.B[:0] }

// Len returns the number of bytes currently written.
func (bb *ByteBuffer) Len() int { return len(bb.B) }

// Write appends data, growing the backing array if necessary.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// WriteByte appends a single byte.
func (bb *ByteBuffer) WriteByte(b byte) error {
	bb.B = append(bb.B, b)
	return nil
}

// Pad appends n zero bytes, used for the codec's 4-byte alignment padding.
func (bb *ByteBuffer) Pad(n int) {
	for range n {
		bb.B = append(bb.B, 0)
	}
}

// ByteBufferPool pools ByteBuffers, discarding ones that grew past
// maxThreshold rather than returning them to the pool.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a pool of buffers pre-sized to defaultSize.
func NewByteBufferPool(defaultSize, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any { return NewByteBuffer(defaultSize) },
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a buffer from the pool.
func (p *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := p.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a buffer to the pool for reuse.
func (p *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if p.maxThreshold > 0 && cap(bb.B) > p.maxThreshold {
		return
	}

	bb.Reset()
	p.pool.Put(bb)
}

var defaultPool = NewByteBufferPool(BufferDefaultSize, BufferMaxThreshold)

// Get retrieves a ByteBuffer from the package-default pool.
func Get() *ByteBuffer { return defaultPool.Get() }

// Put returns a ByteBuffer to the package-default pool.
func Put(bb *ByteBuffer) { defaultPool.Put(bb) }
