package vkapi

/*
#cgo pkg-config: vulkan
#include <vulkan/vulkan.h>
*/
import "C"

import "unsafe"

// CmdBindPipeline binds a pipeline
func CmdBindPipeline(commandBuffer CommandBuffer, pipelineBindPoint PipelineBindPoint, pipeline Pipeline) {
	C.vkCmdBindPipeline(C.VkCommandBuffer(commandBuffer), C.VkPipelineBindPoint(pipelineBindPoint), C.VkPipeline(pipeline))
}

// BufferCopy describes a buffer copy region
type BufferCopy struct {
	SrcOffset DeviceSize
	DstOffset DeviceSize
	Size      DeviceSize
}

// CmdCopyBuffer copies data between buffers
func CmdCopyBuffer(commandBuffer CommandBuffer, srcBuffer, dstBuffer Buffer, regions []BufferCopy) {
	if len(regions) == 0 {
		return
	}

	cRegions := make([]C.VkBufferCopy, len(regions))
	for i, region := range regions {
		cRegions[i].srcOffset = C.VkDeviceSize(region.SrcOffset)
		cRegions[i].dstOffset = C.VkDeviceSize(region.DstOffset)
		cRegions[i].size = C.VkDeviceSize(region.Size)
	}

	C.vkCmdCopyBuffer(C.VkCommandBuffer(commandBuffer), C.VkBuffer(srcBuffer), C.VkBuffer(dstBuffer), C.uint32_t(len(cRegions)), &cRegions[0])
}

// BufferMemoryBarrier describes a buffer-scoped memory dependency
type BufferMemoryBarrier struct {
	SrcAccessMask AccessFlags
	DstAccessMask AccessFlags
	Buffer        Buffer
	Offset        DeviceSize
	Size          DeviceSize
}

// CmdPipelineBarrier inserts a pipeline barrier, optionally scoped to specific buffers
func CmdPipelineBarrier(commandBuffer CommandBuffer, srcStageMask, dstStageMask PipelineStageFlags, dependencyFlags uint32, bufferBarriers []BufferMemoryBarrier) {
	var cBarriers []C.VkBufferMemoryBarrier
	if len(bufferBarriers) > 0 {
		cBarriers = make([]C.VkBufferMemoryBarrier, len(bufferBarriers))
		for i, b := range bufferBarriers {
			cBarriers[i].sType = C.VK_STRUCTURE_TYPE_BUFFER_MEMORY_BARRIER
			cBarriers[i].pNext = nil
			cBarriers[i].srcAccessMask = C.VkAccessFlags(b.SrcAccessMask)
			cBarriers[i].dstAccessMask = C.VkAccessFlags(b.DstAccessMask)
			cBarriers[i].srcQueueFamilyIndex = C.VK_QUEUE_FAMILY_IGNORED
			cBarriers[i].dstQueueFamilyIndex = C.VK_QUEUE_FAMILY_IGNORED
			cBarriers[i].buffer = C.VkBuffer(b.Buffer)
			cBarriers[i].offset = C.VkDeviceSize(b.Offset)
			cBarriers[i].size = C.VkDeviceSize(b.Size)
		}
	}

	var pBarriers *C.VkBufferMemoryBarrier
	if len(cBarriers) > 0 {
		pBarriers = &cBarriers[0]
	}

	C.vkCmdPipelineBarrier(
		C.VkCommandBuffer(commandBuffer),
		C.VkPipelineStageFlags(srcStageMask),
		C.VkPipelineStageFlags(dstStageMask),
		C.VkDependencyFlags(dependencyFlags),
		0, nil,
		C.uint32_t(len(cBarriers)), pBarriers,
		0, nil,
	)
}

// Compute dispatch commands

// CmdDispatch dispatches compute work
func CmdDispatch(commandBuffer CommandBuffer, groupCountX, groupCountY, groupCountZ uint32) {
	C.vkCmdDispatch(C.VkCommandBuffer(commandBuffer), C.uint32_t(groupCountX), C.uint32_t(groupCountY), C.uint32_t(groupCountZ))
}

// CmdDispatchIndirect dispatches compute work with parameters from a buffer
func CmdDispatchIndirect(commandBuffer CommandBuffer, buffer Buffer, offset DeviceSize) {
	C.vkCmdDispatchIndirect(C.VkCommandBuffer(commandBuffer), C.VkBuffer(buffer), C.VkDeviceSize(offset))
}

// CmdBindDescriptorSets binds descriptor sets to a command buffer
func CmdBindDescriptorSets(commandBuffer CommandBuffer, pipelineBindPoint PipelineBindPoint, layout PipelineLayout, firstSet uint32, descriptorSets []DescriptorSet, dynamicOffsets []uint32) {
	if len(descriptorSets) == 0 {
		return
	}

	cDescriptorSets := make([]C.VkDescriptorSet, len(descriptorSets))
	for i, set := range descriptorSets {
		cDescriptorSets[i] = C.VkDescriptorSet(set)
	}

	var cDynamicOffsets []C.uint32_t
	if len(dynamicOffsets) > 0 {
		cDynamicOffsets = make([]C.uint32_t, len(dynamicOffsets))
		for i, offset := range dynamicOffsets {
			cDynamicOffsets[i] = C.uint32_t(offset)
		}
	}

	var pDynamicOffsets *C.uint32_t
	if len(cDynamicOffsets) > 0 {
		pDynamicOffsets = &cDynamicOffsets[0]
	}

	C.vkCmdBindDescriptorSets(
		C.VkCommandBuffer(commandBuffer),
		C.VkPipelineBindPoint(pipelineBindPoint),
		C.VkPipelineLayout(layout),
		C.uint32_t(firstSet),
		C.uint32_t(len(cDescriptorSets)),
		&cDescriptorSets[0],
		C.uint32_t(len(cDynamicOffsets)),
		pDynamicOffsets,
	)
}

// CmdPushConstants records a push constant update into the command buffer
func CmdPushConstants(commandBuffer CommandBuffer, layout PipelineLayout, stageFlags ShaderStageFlags, offset uint32, data []byte) {
	if len(data) == 0 {
		return
	}
	C.vkCmdPushConstants(
		C.VkCommandBuffer(commandBuffer),
		C.VkPipelineLayout(layout),
		C.VkShaderStageFlags(stageFlags),
		C.uint32_t(offset),
		C.uint32_t(len(data)),
		unsafe.Pointer(&data[0]),
	)
}
