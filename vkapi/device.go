package vkapi

/*
#cgo pkg-config: vulkan
#include <vulkan/vulkan.h>
#include <stdlib.h>
#include <string.h>
*/
import "C"

// DeviceQueueCreateInfo contains device queue creation information
type DeviceQueueCreateInfo struct {
	QueueFamilyIndex uint32
	QueuePriorities  []float32
}

// DeviceCreateInfo contains device creation information. Physical device
// feature toggling beyond what CreateDeviceWithExtendedFeatures already
// requests is not exposed here: this binding has no graphics pipeline to
// drive the other ~50 VkPhysicalDeviceFeatures bits.
type DeviceCreateInfo struct {
	QueueCreateInfos      []DeviceQueueCreateInfo
	EnabledLayerNames     []string
	EnabledExtensionNames []string
}

// PhysicalDeviceMemoryProperties contains memory properties
type PhysicalDeviceMemoryProperties struct {
	MemoryTypeCount uint32
	MemoryTypes     [MaxMemoryTypes]MemoryType
	MemoryHeapCount uint32
	MemoryHeaps     [MaxMemoryHeaps]MemoryHeap
}

// MemoryType contains memory type information
type MemoryType struct {
	PropertyFlags MemoryPropertyFlags
	HeapIndex     uint32
}

// MemoryHeap contains memory heap information
type MemoryHeap struct {
	Size  DeviceSize
	Flags MemoryHeapFlags
}

// MemoryPropertyFlags represents memory property flags. The allocator only
// ever asks for host-visible, host-coherent memory, but VkMemoryType.propertyFlags
// is a driver-reported bitmask that may set the other bits here too, so the
// full set this binding recognizes is kept rather than just the two it searches for.
type MemoryPropertyFlags uint32

const (
	MemoryPropertyDeviceLocalBit  MemoryPropertyFlags = C.VK_MEMORY_PROPERTY_DEVICE_LOCAL_BIT
	MemoryPropertyHostVisibleBit  MemoryPropertyFlags = C.VK_MEMORY_PROPERTY_HOST_VISIBLE_BIT
	MemoryPropertyHostCoherentBit MemoryPropertyFlags = C.VK_MEMORY_PROPERTY_HOST_COHERENT_BIT
	MemoryPropertyHostCachedBit   MemoryPropertyFlags = C.VK_MEMORY_PROPERTY_HOST_CACHED_BIT
)

// MemoryHeapFlags represents memory heap flags
type MemoryHeapFlags uint32

const (
	MemoryHeapDeviceLocalBit   MemoryHeapFlags = C.VK_MEMORY_HEAP_DEVICE_LOCAL_BIT
	MemoryHeapMultiInstanceBit MemoryHeapFlags = C.VK_MEMORY_HEAP_MULTI_INSTANCE_BIT
)

// DestroyDevice destroys a logical device
func DestroyDevice(device Device) {
	C.vkDestroyDevice(C.VkDevice(device), nil)
}

// GetDeviceQueue gets a device queue
func GetDeviceQueue(device Device, queueFamilyIndex, queueIndex uint32) Queue {
	var queue C.VkQueue
	C.vkGetDeviceQueue(C.VkDevice(device), C.uint32_t(queueFamilyIndex), C.uint32_t(queueIndex), &queue)
	return Queue(queue)
}

// DeviceWaitIdle waits for a device to become idle
func DeviceWaitIdle(device Device) error {
	result := Result(C.vkDeviceWaitIdle(C.VkDevice(device)))
	if result != Success {
		return result
	}
	return nil
}

// GetPhysicalDeviceMemoryProperties gets physical device memory properties
func GetPhysicalDeviceMemoryProperties(physicalDevice PhysicalDevice) PhysicalDeviceMemoryProperties {
	var cProps C.VkPhysicalDeviceMemoryProperties
	C.vkGetPhysicalDeviceMemoryProperties(C.VkPhysicalDevice(physicalDevice), &cProps)

	props := PhysicalDeviceMemoryProperties{
		MemoryTypeCount: uint32(cProps.memoryTypeCount),
		MemoryHeapCount: uint32(cProps.memoryHeapCount),
	}

	for i := uint32(0); i < props.MemoryTypeCount; i++ {
		props.MemoryTypes[i] = MemoryType{
			PropertyFlags: MemoryPropertyFlags(cProps.memoryTypes[i].propertyFlags),
			HeapIndex:     uint32(cProps.memoryTypes[i].heapIndex),
		}
	}

	for i := uint32(0); i < props.MemoryHeapCount; i++ {
		props.MemoryHeaps[i] = MemoryHeap{
			Size:  DeviceSize(cProps.memoryHeaps[i].size),
			Flags: MemoryHeapFlags(cProps.memoryHeaps[i].flags),
		}
	}

	return props
}

// Helper function to convert Go bool to VkBool32
func boolToVkBool32(b bool) C.VkBool32 {
	if b {
		return C.VK_TRUE
	}
	return C.VK_FALSE
}
