// Package ram provides a fixed-size block of general purpose RAM.
package ram

// RAM is a fixed-size, zero-initialized block of memory addressed
// relative to its own base.
type RAM struct {
	data []uint8
}

// New returns a new RAM block of the given size in bytes.
func New(size int) *RAM {
	return &RAM{data: make([]uint8, size)}
}

// Read returns the byte at the given offset.
func (r *RAM) Read(offset uint16) uint8 {
	return r.data[int(offset)%len(r.data)]
}

// Write sets the byte at the given offset.
func (r *RAM) Write(offset uint16, value uint8) {
	r.data[int(offset)%len(r.data)] = value
}

// Len returns the size of the block in bytes.
func (r *RAM) Len() int {
	return len(r.data)
}
