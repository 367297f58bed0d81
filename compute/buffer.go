package compute

import (
	"unsafe"

	"github.com/xuyanwen2012/splinetree-substrate/vkapi"
)

// Buffer owns a device allocation and a persistent host mapping. The
// mapping pointer is stable for the whole lifetime of the Buffer.
type Buffer struct {
	alloc    *Allocator
	handle   vkapi.Buffer
	memory   vkapi.DeviceMemory
	size     vkapi.DeviceSize
	usage    vkapi.BufferUsageFlags
	mapping  []byte
	released bool
}

// DefaultBufferUsage is the usage flag set new buffers get unless the
// caller overrides it: storage buffer, the only descriptor type this
// repository's compute pipelines bind.
const DefaultBufferUsage = vkapi.BufferUsageStorageBufferBit

// NewBuffer allocates sizeBytes of shared host-visible, host-coherent
// memory with usage (default DefaultBufferUsage if zero) and returns a
// persistently-mapped handle to it.
func (a *Allocator) NewBuffer(sizeBytes int, usage vkapi.BufferUsageFlags) (*Buffer, error) {
	if usage == 0 {
		usage = DefaultBufferUsage
	}
	handle, memory, mapping, err := a.allocate(vkapi.DeviceSize(sizeBytes), usage)
	if err != nil {
		return nil, err
	}
	return &Buffer{
		alloc:   a,
		handle:  handle,
		memory:  memory,
		size:    vkapi.DeviceSize(sizeBytes),
		usage:   usage,
		mapping: mapping,
	}, nil
}

// Handle returns the underlying Vulkan buffer handle.
func (b *Buffer) Handle() vkapi.Buffer { return b.handle }

// Size returns the buffer size in bytes.
func (b *Buffer) Size() int { return int(b.size) }

// DescriptorInfo returns the {handle, 0, whole-range} descriptor binding
// info for this buffer.
func (b *Buffer) DescriptorInfo() vkapi.DescriptorBufferInfo {
	return vkapi.DescriptorBufferInfo{Buffer: b.handle, Offset: 0, Range: b.size}
}

// AsBytes returns the buffer's persistent host mapping.
func (b *Buffer) AsBytes() []byte { return b.mapping }

// Fill writes v into every byte of the mapping.
func (b *Buffer) Fill(v byte) {
	for i := range b.mapping {
		b.mapping[i] = v
	}
}

// Zeros zeroes every byte of the mapping.
func (b *Buffer) Zeros() { b.Fill(0) }

// Ones sets every byte of the mapping to 0xFF.
func (b *Buffer) Ones() { b.Fill(0xFF) }

// Close unmaps and frees the underlying allocation. Calling it again is a
// no-op.
func (b *Buffer) Close() {
	if b.released {
		return
	}
	b.alloc.release(b.handle, b.memory)
	b.released = true
}

// TypedBuffer is a Buffer viewed as a contiguous array of n fixed-size
// elements, with size_bytes == n * elemSize.
type TypedBuffer[T any] struct {
	*Buffer
	n int
}

// elemSizeOf returns sizeof(T) the way the C++ original's
// TypedBuffer<T> derives it, via unsafe.Sizeof on a zero value.
func elemSizeOf[T any]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

// NewTypedBufferOf allocates a buffer sized for exactly n elements of T
// and returns a typed view over it. Named distinctly from Go's
// unparameterizable methods (Go methods cannot add their own type
// parameters beyond the receiver's).
func NewTypedBufferOf[T any](a *Allocator, n int, usage vkapi.BufferUsageFlags) (*TypedBuffer[T], error) {
	buf, err := a.NewBuffer(n*elemSizeOf[T](), usage)
	if err != nil {
		return nil, err
	}
	return &TypedBuffer[T]{Buffer: buf, n: n}, nil
}

// Len returns the element count.
func (t *TypedBuffer[T]) Len() int { return t.n }

// View returns the buffer's mapping reinterpreted as a []T of length n.
// The caller must not resize or reallocate the returned slice.
func (t *TypedBuffer[T]) View() []T {
	if t.n == 0 {
		return nil
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&t.mapping[0])), t.n)
}

// At returns element i.
func (t *TypedBuffer[T]) At(i int) T { return t.View()[i] }

// Set writes v into element i.
func (t *TypedBuffer[T]) Set(i int, v T) { t.View()[i] = v }
