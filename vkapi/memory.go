package vkapi

/*
#cgo pkg-config: vulkan
#include <vulkan/vulkan.h>
#include <stdlib.h>
#include <string.h>
*/
import "C"
import (
	"unsafe"
)

// BufferCreateInfo contains buffer creation information
type BufferCreateInfo struct {
	Size        DeviceSize
	Usage       BufferUsageFlags
	SharingMode SharingMode
}

// BufferUsageFlags represents buffer usage flags
type BufferUsageFlags uint32

const (
	BufferUsageTransferSrcBit         BufferUsageFlags = C.VK_BUFFER_USAGE_TRANSFER_SRC_BIT
	BufferUsageTransferDstBit         BufferUsageFlags = C.VK_BUFFER_USAGE_TRANSFER_DST_BIT
	BufferUsageUniformTexelBufferBit  BufferUsageFlags = C.VK_BUFFER_USAGE_UNIFORM_TEXEL_BUFFER_BIT
	BufferUsageStorageTexelBufferBit  BufferUsageFlags = C.VK_BUFFER_USAGE_STORAGE_TEXEL_BUFFER_BIT
	BufferUsageUniformBufferBit       BufferUsageFlags = C.VK_BUFFER_USAGE_UNIFORM_BUFFER_BIT
	BufferUsageStorageBufferBit       BufferUsageFlags = C.VK_BUFFER_USAGE_STORAGE_BUFFER_BIT
	BufferUsageIndexBufferBit         BufferUsageFlags = C.VK_BUFFER_USAGE_INDEX_BUFFER_BIT
	BufferUsageVertexBufferBit        BufferUsageFlags = C.VK_BUFFER_USAGE_VERTEX_BUFFER_BIT
	BufferUsageIndirectBufferBit      BufferUsageFlags = C.VK_BUFFER_USAGE_INDIRECT_BUFFER_BIT
	BufferUsageShaderDeviceAddressBit BufferUsageFlags = C.VK_BUFFER_USAGE_SHADER_DEVICE_ADDRESS_BIT
)

// SharingMode represents resource sharing mode
type SharingMode int32

const (
	SharingModeExclusive  SharingMode = C.VK_SHARING_MODE_EXCLUSIVE
	SharingModeConcurrent SharingMode = C.VK_SHARING_MODE_CONCURRENT
)

// MemoryAllocateInfo contains memory allocation information
type MemoryAllocateInfo struct {
	AllocationSize  DeviceSize
	MemoryTypeIndex uint32
}

// MemoryRequirements contains memory requirements
type MemoryRequirements struct {
	Size           DeviceSize
	Alignment      DeviceSize
	MemoryTypeBits uint32
}

// CreateBuffer creates a buffer
func CreateBuffer(device Device, createInfo *BufferCreateInfo) (Buffer, error) {
	var cCreateInfo C.VkBufferCreateInfo
	cCreateInfo.sType = C.VK_STRUCTURE_TYPE_BUFFER_CREATE_INFO
	cCreateInfo.pNext = nil
	cCreateInfo.flags = 0
	cCreateInfo.size = C.VkDeviceSize(createInfo.Size)
	cCreateInfo.usage = C.VkBufferUsageFlags(createInfo.Usage)
	cCreateInfo.sharingMode = C.VkSharingMode(createInfo.SharingMode)
	cCreateInfo.queueFamilyIndexCount = 0
	cCreateInfo.pQueueFamilyIndices = nil

	var buffer C.VkBuffer
	result := Result(C.vkCreateBuffer(C.VkDevice(device), &cCreateInfo, nil, &buffer))
	if result != Success {
		return nil, result
	}

	return Buffer(buffer), nil
}

// DestroyBuffer destroys a buffer
func DestroyBuffer(device Device, buffer Buffer) {
	C.vkDestroyBuffer(C.VkDevice(device), C.VkBuffer(buffer), nil)
}

// GetBufferMemoryRequirements gets buffer memory requirements
func GetBufferMemoryRequirements(device Device, buffer Buffer) MemoryRequirements {
	var cReqs C.VkMemoryRequirements
	C.vkGetBufferMemoryRequirements(C.VkDevice(device), C.VkBuffer(buffer), &cReqs)
	
	return MemoryRequirements{
		Size:           DeviceSize(cReqs.size),
		Alignment:      DeviceSize(cReqs.alignment),
		MemoryTypeBits: uint32(cReqs.memoryTypeBits),
	}
}

// AllocateMemory allocates device memory
func AllocateMemory(device Device, allocateInfo *MemoryAllocateInfo) (DeviceMemory, error) {
	var cAllocateInfo C.VkMemoryAllocateInfo
	cAllocateInfo.sType = C.VK_STRUCTURE_TYPE_MEMORY_ALLOCATE_INFO
	cAllocateInfo.pNext = nil
	cAllocateInfo.allocationSize = C.VkDeviceSize(allocateInfo.AllocationSize)
	cAllocateInfo.memoryTypeIndex = C.uint32_t(allocateInfo.MemoryTypeIndex)

	var memory C.VkDeviceMemory
	result := Result(C.vkAllocateMemory(C.VkDevice(device), &cAllocateInfo, nil, &memory))
	if result != Success {
		return nil, result
	}

	return DeviceMemory(memory), nil
}

// FreeMemory frees device memory
func FreeMemory(device Device, memory DeviceMemory) {
	C.vkFreeMemory(C.VkDevice(device), C.VkDeviceMemory(memory), nil)
}

// BindBufferMemory binds buffer memory
func BindBufferMemory(device Device, buffer Buffer, memory DeviceMemory, memoryOffset DeviceSize) error {
	result := Result(C.vkBindBufferMemory(C.VkDevice(device), C.VkBuffer(buffer), C.VkDeviceMemory(memory), C.VkDeviceSize(memoryOffset)))
	if result != Success {
		return result
	}
	return nil
}

// MapMemory maps device memory
func MapMemory(device Device, memory DeviceMemory, offset, size DeviceSize, flags uint32) (unsafe.Pointer, error) {
	var data unsafe.Pointer
	result := Result(C.vkMapMemory(C.VkDevice(device), C.VkDeviceMemory(memory), C.VkDeviceSize(offset), C.VkDeviceSize(size), C.VkMemoryMapFlags(flags), &data))
	if result != Success {
		return nil, result
	}
	return data, nil
}

// UnmapMemory unmaps device memory
func UnmapMemory(device Device, memory DeviceMemory) {
	C.vkUnmapMemory(C.VkDevice(device), C.VkDeviceMemory(memory))
}

// FindMemoryType finds a suitable memory type
func FindMemoryType(memProperties PhysicalDeviceMemoryProperties, typeFilter uint32, properties MemoryPropertyFlags) (uint32, bool) {
	for i := uint32(0); i < memProperties.MemoryTypeCount; i++ {
		if (typeFilter&(1<<i)) != 0 && (memProperties.MemoryTypes[i].PropertyFlags&properties) == properties {
			return i, true
		}
	}
	return 0, false
}