package vkapi

/*
#include <vulkan/vulkan.h>
#include <stdlib.h>
*/
import "C"

// DescriptorSetLayoutCreateInfo contains descriptor set layout creation information
type DescriptorSetLayoutCreateInfo struct {
	Bindings []DescriptorSetLayoutBinding
}

// DescriptorSetLayoutBinding describes a descriptor set layout binding
type DescriptorSetLayoutBinding struct {
	Binding         uint32
	DescriptorType  DescriptorType
	DescriptorCount uint32
	StageFlags      ShaderStageFlags
}

// DescriptorType represents descriptor types
type DescriptorType int32

const (
	DescriptorTypeUniformBuffer        DescriptorType = C.VK_DESCRIPTOR_TYPE_UNIFORM_BUFFER
	DescriptorTypeStorageBuffer        DescriptorType = C.VK_DESCRIPTOR_TYPE_STORAGE_BUFFER
	DescriptorTypeUniformBufferDynamic DescriptorType = C.VK_DESCRIPTOR_TYPE_UNIFORM_BUFFER_DYNAMIC
	DescriptorTypeStorageBufferDynamic DescriptorType = C.VK_DESCRIPTOR_TYPE_STORAGE_BUFFER_DYNAMIC
)

// DescriptorPoolCreateInfo contains descriptor pool creation information
type DescriptorPoolCreateInfo struct {
	MaxSets   uint32
	PoolSizes []DescriptorPoolSize
}

// DescriptorPoolSize describes a descriptor pool size
type DescriptorPoolSize struct {
	Type            DescriptorType
	DescriptorCount uint32
}

// DescriptorSetAllocateInfo contains descriptor set allocation information
type DescriptorSetAllocateInfo struct {
	DescriptorPool DescriptorPool
	SetLayouts     []DescriptorSetLayout
}

// DescriptorBufferInfo describes a buffer bound to a descriptor
type DescriptorBufferInfo struct {
	Buffer Buffer
	Offset DeviceSize
	Range  DeviceSize
}

// WriteDescriptorSet describes a single descriptor update
type WriteDescriptorSet struct {
	DstSet          DescriptorSet
	DstBinding      uint32
	DstArrayElement uint32
	DescriptorType  DescriptorType
	BufferInfo      []DescriptorBufferInfo
}

// CreateDescriptorSetLayout creates a descriptor set layout
func CreateDescriptorSetLayout(device Device, createInfo *DescriptorSetLayoutCreateInfo) (DescriptorSetLayout, error) {
	var cCreateInfo C.VkDescriptorSetLayoutCreateInfo
	cCreateInfo.sType = C.VK_STRUCTURE_TYPE_DESCRIPTOR_SET_LAYOUT_CREATE_INFO
	cCreateInfo.pNext = nil
	cCreateInfo.flags = 0

	var cBindings []C.VkDescriptorSetLayoutBinding
	if len(createInfo.Bindings) > 0 {
		cBindings = make([]C.VkDescriptorSetLayoutBinding, len(createInfo.Bindings))
		for i, binding := range createInfo.Bindings {
			cBindings[i].binding = C.uint32_t(binding.Binding)
			cBindings[i].descriptorType = C.VkDescriptorType(binding.DescriptorType)
			cBindings[i].descriptorCount = C.uint32_t(binding.DescriptorCount)
			cBindings[i].stageFlags = C.VkShaderStageFlags(binding.StageFlags)
			cBindings[i].pImmutableSamplers = nil
		}
		cCreateInfo.bindingCount = C.uint32_t(len(cBindings))
		cCreateInfo.pBindings = &cBindings[0]
	}

	var layout C.VkDescriptorSetLayout
	result := Result(C.vkCreateDescriptorSetLayout(C.VkDevice(device), &cCreateInfo, nil, &layout))
	if result != Success {
		return nil, result
	}

	return DescriptorSetLayout(layout), nil
}

// DestroyDescriptorSetLayout destroys a descriptor set layout
func DestroyDescriptorSetLayout(device Device, layout DescriptorSetLayout) {
	C.vkDestroyDescriptorSetLayout(C.VkDevice(device), C.VkDescriptorSetLayout(layout), nil)
}

// CreateDescriptorPool creates a descriptor pool
func CreateDescriptorPool(device Device, createInfo *DescriptorPoolCreateInfo) (DescriptorPool, error) {
	var cCreateInfo C.VkDescriptorPoolCreateInfo
	cCreateInfo.sType = C.VK_STRUCTURE_TYPE_DESCRIPTOR_POOL_CREATE_INFO
	cCreateInfo.pNext = nil
	cCreateInfo.flags = 0
	cCreateInfo.maxSets = C.uint32_t(createInfo.MaxSets)

	var cPoolSizes []C.VkDescriptorPoolSize
	if len(createInfo.PoolSizes) > 0 {
		cPoolSizes = make([]C.VkDescriptorPoolSize, len(createInfo.PoolSizes))
		for i, poolSize := range createInfo.PoolSizes {
			cPoolSizes[i]._type = C.VkDescriptorType(poolSize.Type)
			cPoolSizes[i].descriptorCount = C.uint32_t(poolSize.DescriptorCount)
		}
		cCreateInfo.poolSizeCount = C.uint32_t(len(cPoolSizes))
		cCreateInfo.pPoolSizes = &cPoolSizes[0]
	}

	var pool C.VkDescriptorPool
	result := Result(C.vkCreateDescriptorPool(C.VkDevice(device), &cCreateInfo, nil, &pool))
	if result != Success {
		return nil, result
	}

	return DescriptorPool(pool), nil
}

// DestroyDescriptorPool destroys a descriptor pool
func DestroyDescriptorPool(device Device, pool DescriptorPool) {
	C.vkDestroyDescriptorPool(C.VkDevice(device), C.VkDescriptorPool(pool), nil)
}

// ResetDescriptorPool returns every set allocated from pool back to the pool
func ResetDescriptorPool(device Device, pool DescriptorPool) error {
	result := Result(C.vkResetDescriptorPool(C.VkDevice(device), C.VkDescriptorPool(pool), 0))
	if result != Success {
		return result
	}
	return nil
}

// AllocateDescriptorSets allocates one descriptor set per entry in SetLayouts
func AllocateDescriptorSets(device Device, allocateInfo *DescriptorSetAllocateInfo) ([]DescriptorSet, error) {
	cLayouts := make([]C.VkDescriptorSetLayout, len(allocateInfo.SetLayouts))
	for i, l := range allocateInfo.SetLayouts {
		cLayouts[i] = C.VkDescriptorSetLayout(l)
	}

	var cAllocInfo C.VkDescriptorSetAllocateInfo
	cAllocInfo.sType = C.VK_STRUCTURE_TYPE_DESCRIPTOR_SET_ALLOCATE_INFO
	cAllocInfo.pNext = nil
	cAllocInfo.descriptorPool = C.VkDescriptorPool(allocateInfo.DescriptorPool)
	cAllocInfo.descriptorSetCount = C.uint32_t(len(cLayouts))
	if len(cLayouts) > 0 {
		cAllocInfo.pSetLayouts = &cLayouts[0]
	}

	sets := make([]C.VkDescriptorSet, len(cLayouts))
	var pSets *C.VkDescriptorSet
	if len(sets) > 0 {
		pSets = &sets[0]
	}

	result := Result(C.vkAllocateDescriptorSets(C.VkDevice(device), &cAllocInfo, pSets))
	if result != Success {
		return nil, result
	}

	out := make([]DescriptorSet, len(sets))
	for i, s := range sets {
		out[i] = DescriptorSet(s)
	}
	return out, nil
}

// UpdateDescriptorSets writes buffer bindings into descriptor sets
func UpdateDescriptorSets(device Device, writes []WriteDescriptorSet) {
	if len(writes) == 0 {
		return
	}

	cWrites := make([]C.VkWriteDescriptorSet, len(writes))
	// bufferInfos must outlive the vkUpdateDescriptorSets call below, one slice per write
	bufferInfos := make([][]C.VkDescriptorBufferInfo, len(writes))

	for i, w := range writes {
		cWrites[i].sType = C.VK_STRUCTURE_TYPE_WRITE_DESCRIPTOR_SET
		cWrites[i].pNext = nil
		cWrites[i].dstSet = C.VkDescriptorSet(w.DstSet)
		cWrites[i].dstBinding = C.uint32_t(w.DstBinding)
		cWrites[i].dstArrayElement = C.uint32_t(w.DstArrayElement)
		cWrites[i].descriptorType = C.VkDescriptorType(w.DescriptorType)
		cWrites[i].descriptorCount = C.uint32_t(len(w.BufferInfo))

		infos := make([]C.VkDescriptorBufferInfo, len(w.BufferInfo))
		for j, bi := range w.BufferInfo {
			infos[j].buffer = C.VkBuffer(bi.Buffer)
			infos[j].offset = C.VkDeviceSize(bi.Offset)
			infos[j]._range = C.VkDeviceSize(bi.Range)
		}
		bufferInfos[i] = infos
		if len(infos) > 0 {
			cWrites[i].pBufferInfo = &infos[0]
		}
	}

	C.vkUpdateDescriptorSets(C.VkDevice(device), C.uint32_t(len(cWrites)), &cWrites[0], 0, nil)
}
