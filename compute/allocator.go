package compute

import (
	"github.com/rs/zerolog"

	"github.com/xuyanwen2012/splinetree-substrate/vkapi"
)

// Allocator is bound to one DeviceContext; each Engine creates its own. It
// allocates shared host-visible, host-coherent, persistently-mapped
// memory: every Buffer it returns exposes a valid CPU pointer for its
// whole lifetime. It stands in for a general-purpose VMA allocator but
// only ever hands out the one memory type this compute-only engine needs,
// never images or device-local-only allocations.
type Allocator struct {
	log  zerolog.Logger
	dc   *DeviceContext
	live int
}

// NewAllocator binds a fresh Allocator to dc. Must be created after the
// device and destroyed before it.
func NewAllocator(dc *DeviceContext, log zerolog.Logger) *Allocator {
	return &Allocator{
		log: log.With().Str("component", "allocator").Logger(),
		dc:  dc,
	}
}

// LiveAllocations reports the number of allocations not yet freed. Tests
// use this to check that the allocator reports zero outstanding
// allocations once Engine.Close has destroyed every tracked Buffer.
func (a *Allocator) LiveAllocations() int { return a.live }

func (a *Allocator) findHostVisibleMemoryType(requirements vkapi.MemoryRequirements) (uint32, error) {
	memProps := vkapi.GetPhysicalDeviceMemoryProperties(a.dc.PhysicalDevice())
	want := vkapi.MemoryPropertyHostVisibleBit | vkapi.MemoryPropertyHostCoherentBit
	if idx, ok := vkapi.FindMemoryType(memProps, requirements.MemoryTypeBits, want); ok {
		return idx, nil
	}
	return 0, newError("find_memory_type", KindOutOfMemory, errOutOfMemory)
}

// allocate creates a buffer of size bytes with the given usage, binds a
// fresh host-visible host-coherent allocation to it, and returns a
// persistent mapping of the whole range.
func (a *Allocator) allocate(size vkapi.DeviceSize, usage vkapi.BufferUsageFlags) (vkapi.Buffer, vkapi.DeviceMemory, []byte, error) {
	buf, err := vkapi.CreateBuffer(a.dc.Device(), &vkapi.BufferCreateInfo{
		Size:        size,
		Usage:       usage,
		SharingMode: vkapi.SharingModeExclusive,
	})
	if err != nil {
		return nil, nil, nil, newError("create_buffer", KindVulkanError, err)
	}

	requirements := vkapi.GetBufferMemoryRequirements(a.dc.Device(), buf)
	typeIndex, err := a.findHostVisibleMemoryType(requirements)
	if err != nil {
		vkapi.DestroyBuffer(a.dc.Device(), buf)
		return nil, nil, nil, err
	}

	memory, err := vkapi.AllocateMemory(a.dc.Device(), &vkapi.MemoryAllocateInfo{
		AllocationSize:  requirements.Size,
		MemoryTypeIndex: typeIndex,
	})
	if err != nil {
		vkapi.DestroyBuffer(a.dc.Device(), buf)
		return nil, nil, nil, newError("allocate_memory", KindOutOfMemory, err)
	}

	if err := vkapi.BindBufferMemory(a.dc.Device(), buf, memory, 0); err != nil {
		vkapi.FreeMemory(a.dc.Device(), memory)
		vkapi.DestroyBuffer(a.dc.Device(), buf)
		return nil, nil, nil, newError("bind_buffer_memory", KindVulkanError, err)
	}

	ptr, err := vkapi.MapMemory(a.dc.Device(), memory, 0, requirements.Size, 0)
	if err != nil {
		vkapi.FreeMemory(a.dc.Device(), memory)
		vkapi.DestroyBuffer(a.dc.Device(), buf)
		return nil, nil, nil, newError("map_memory", KindVulkanError, err)
	}

	a.live++
	return buf, memory, unsafeBytes(ptr, int(size)), nil
}

func (a *Allocator) release(buf vkapi.Buffer, memory vkapi.DeviceMemory) {
	vkapi.UnmapMemory(a.dc.Device(), memory)
	vkapi.DestroyBuffer(a.dc.Device(), buf)
	vkapi.FreeMemory(a.dc.Device(), memory)
	a.live--
}
