package compute

import (
	"fmt"
	"unsafe"
)

var errOutOfMemory = fmt.Errorf("no suitable host-visible memory type")

// unsafeBytes reinterprets a raw persistently-mapped Vulkan pointer as a
// Go byte slice of length n, valid for as long as the underlying memory
// stays mapped. Vulkan guarantees stability of the mapped pointer for the
// lifetime of the mapping, which Buffer/Allocator already enforce.
func unsafeBytes(ptr unsafe.Pointer, n int) []byte {
	return unsafe.Slice((*byte)(ptr), n)
}
