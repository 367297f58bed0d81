package vkapi

/*
#cgo pkg-config: vulkan
#include <vulkan/vulkan.h>
#include <stdlib.h>
*/
import "C"

// CommandPoolCreateInfo contains command pool creation information
type CommandPoolCreateInfo struct {
	Flags            CommandPoolCreateFlags
	QueueFamilyIndex uint32
}

// CommandPoolCreateFlags represents command pool creation flags
type CommandPoolCreateFlags uint32

const (
	CommandPoolCreateResetCommandBufferBit CommandPoolCreateFlags = C.VK_COMMAND_POOL_CREATE_RESET_COMMAND_BUFFER_BIT
)

// CommandBufferAllocateInfo contains command buffer allocation information
type CommandBufferAllocateInfo struct {
	CommandPool        CommandPool
	Level              CommandBufferLevel
	CommandBufferCount uint32
}

// CommandBufferLevel represents command buffer levels
type CommandBufferLevel int32

const (
	CommandBufferLevelPrimary CommandBufferLevel = C.VK_COMMAND_BUFFER_LEVEL_PRIMARY
)

// CommandBufferBeginInfo contains command buffer begin information
type CommandBufferBeginInfo struct {
	Flags CommandBufferUsageFlags
}

// CommandBufferUsageFlags represents command buffer usage flags
type CommandBufferUsageFlags uint32

const (
	CommandBufferUsageOneTimeSubmitBit CommandBufferUsageFlags = C.VK_COMMAND_BUFFER_USAGE_ONE_TIME_SUBMIT_BIT
)

// SubmitInfo contains queue submit information. This binding never
// coordinates submissions across semaphores: a Sequence owns one command
// buffer and one fence, and CPU-side ordering between sequences is the
// caller's job, so only the command buffer list is exposed.
type SubmitInfo struct {
	CommandBuffers []CommandBuffer
}

// FenceCreateInfo contains fence creation information
type FenceCreateInfo struct {
	Flags FenceCreateFlags
}

// FenceCreateFlags represents fence creation flags
type FenceCreateFlags uint32

// CreateCommandPool creates a command pool
func CreateCommandPool(device Device, createInfo *CommandPoolCreateInfo) (CommandPool, error) {
	var cCreateInfo C.VkCommandPoolCreateInfo
	cCreateInfo.sType = C.VK_STRUCTURE_TYPE_COMMAND_POOL_CREATE_INFO
	cCreateInfo.pNext = nil
	cCreateInfo.flags = C.VkCommandPoolCreateFlags(createInfo.Flags)
	cCreateInfo.queueFamilyIndex = C.uint32_t(createInfo.QueueFamilyIndex)

	var commandPool C.VkCommandPool
	result := Result(C.vkCreateCommandPool(C.VkDevice(device), &cCreateInfo, nil, &commandPool))
	if result != Success {
		return nil, result
	}

	return CommandPool(commandPool), nil
}

// DestroyCommandPool destroys a command pool
func DestroyCommandPool(device Device, commandPool CommandPool) {
	C.vkDestroyCommandPool(C.VkDevice(device), C.VkCommandPool(commandPool), nil)
}

// AllocateCommandBuffers allocates command buffers
func AllocateCommandBuffers(device Device, allocateInfo *CommandBufferAllocateInfo) ([]CommandBuffer, error) {
	var cAllocateInfo C.VkCommandBufferAllocateInfo
	cAllocateInfo.sType = C.VK_STRUCTURE_TYPE_COMMAND_BUFFER_ALLOCATE_INFO
	cAllocateInfo.pNext = nil
	cAllocateInfo.commandPool = C.VkCommandPool(allocateInfo.CommandPool)
	cAllocateInfo.level = C.VkCommandBufferLevel(allocateInfo.Level)
	cAllocateInfo.commandBufferCount = C.uint32_t(allocateInfo.CommandBufferCount)

	cCommandBuffers := make([]C.VkCommandBuffer, allocateInfo.CommandBufferCount)
	result := Result(C.vkAllocateCommandBuffers(C.VkDevice(device), &cAllocateInfo, &cCommandBuffers[0]))
	if result != Success {
		return nil, result
	}

	commandBuffers := make([]CommandBuffer, allocateInfo.CommandBufferCount)
	for i := range commandBuffers {
		commandBuffers[i] = CommandBuffer(cCommandBuffers[i])
	}

	return commandBuffers, nil
}

// BeginCommandBuffer begins recording a command buffer
func BeginCommandBuffer(commandBuffer CommandBuffer, beginInfo *CommandBufferBeginInfo) error {
	var cBeginInfo C.VkCommandBufferBeginInfo
	cBeginInfo.sType = C.VK_STRUCTURE_TYPE_COMMAND_BUFFER_BEGIN_INFO
	cBeginInfo.pNext = nil
	cBeginInfo.flags = C.VkCommandBufferUsageFlags(beginInfo.Flags)
	cBeginInfo.pInheritanceInfo = nil

	result := Result(C.vkBeginCommandBuffer(C.VkCommandBuffer(commandBuffer), &cBeginInfo))
	if result != Success {
		return result
	}
	return nil
}

// EndCommandBuffer ends recording a command buffer
func EndCommandBuffer(commandBuffer CommandBuffer) error {
	result := Result(C.vkEndCommandBuffer(C.VkCommandBuffer(commandBuffer)))
	if result != Success {
		return result
	}
	return nil
}

// QueueSubmit submits command buffers to a queue
func QueueSubmit(queue Queue, submitInfos []SubmitInfo, fence Fence) error {
	if len(submitInfos) == 0 {
		result := Result(C.vkQueueSubmit(C.VkQueue(queue), 0, nil, C.VkFence(fence)))
		if result != Success {
			return result
		}
		return nil
	}

	cSubmitInfos := make([]C.VkSubmitInfo, len(submitInfos))
	var allCommandBuffers [][]C.VkCommandBuffer

	for i, si := range submitInfos {
		cSubmitInfos[i].sType = C.VK_STRUCTURE_TYPE_SUBMIT_INFO
		cSubmitInfos[i].pNext = nil

		if len(si.CommandBuffers) > 0 {
			cmdBufs := make([]C.VkCommandBuffer, len(si.CommandBuffers))
			for j, cb := range si.CommandBuffers {
				cmdBufs[j] = C.VkCommandBuffer(cb)
			}
			allCommandBuffers = append(allCommandBuffers, cmdBufs)
			cSubmitInfos[i].commandBufferCount = C.uint32_t(len(cmdBufs))
			cSubmitInfos[i].pCommandBuffers = &cmdBufs[0]
		}
	}

	result := Result(C.vkQueueSubmit(C.VkQueue(queue), C.uint32_t(len(cSubmitInfos)), &cSubmitInfos[0], C.VkFence(fence)))
	if result != Success {
		return result
	}
	return nil
}

// CreateFence creates a fence
func CreateFence(device Device, createInfo *FenceCreateInfo) (Fence, error) {
	var cCreateInfo C.VkFenceCreateInfo
	cCreateInfo.sType = C.VK_STRUCTURE_TYPE_FENCE_CREATE_INFO
	cCreateInfo.pNext = nil
	cCreateInfo.flags = C.VkFenceCreateFlags(createInfo.Flags)

	var fence C.VkFence
	result := Result(C.vkCreateFence(C.VkDevice(device), &cCreateInfo, nil, &fence))
	if result != Success {
		return nil, result
	}

	return Fence(fence), nil
}

// DestroyFence destroys a fence
func DestroyFence(device Device, fence Fence) {
	C.vkDestroyFence(C.VkDevice(device), C.VkFence(fence), nil)
}

// WaitForFences waits for fences to be signaled
func WaitForFences(device Device, fences []Fence, waitAll bool, timeout uint64) error {
	if len(fences) == 0 {
		return nil
	}

	cFences := make([]C.VkFence, len(fences))
	for i, fence := range fences {
		cFences[i] = C.VkFence(fence)
	}

	var cWaitAll C.VkBool32
	if waitAll {
		cWaitAll = C.VK_TRUE
	} else {
		cWaitAll = C.VK_FALSE
	}

	result := Result(C.vkWaitForFences(C.VkDevice(device), C.uint32_t(len(cFences)), &cFences[0], cWaitAll, C.uint64_t(timeout)))
	if result != Success {
		return result
	}
	return nil
}

// ResetFences resets fences
func ResetFences(device Device, fences []Fence) error {
	if len(fences) == 0 {
		return nil
	}

	cFences := make([]C.VkFence, len(fences))
	for i, fence := range fences {
		cFences[i] = C.VkFence(fence)
	}

	result := Result(C.vkResetFences(C.VkDevice(device), C.uint32_t(len(cFences)), &cFences[0]))
	if result != Success {
		return result
	}
	return nil
}
