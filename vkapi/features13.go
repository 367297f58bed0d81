package vkapi

/*
#cgo pkg-config: vulkan
#include <vulkan/vulkan.h>
#include <stdlib.h>
*/
import "C"

import "unsafe"

// ExtendedDeviceFeatures groups the Vulkan 1.2/1.3 feature bits a compute
// engine built around this binding needs to request explicitly, since they
// live outside the core VkPhysicalDeviceFeatures struct.
type ExtendedDeviceFeatures struct {
	StorageBuffer8BitAccess bool
	ShaderInt8              bool
	BufferDeviceAddress     bool
}

// CreateDeviceWithExtendedFeatures creates a logical device from
// createInfo's queues, layers and extensions, chaining a
// VkPhysicalDeviceVulkan12Features struct onto pNext so 8-bit storage,
// shaderInt8 and buffer device address can be requested without widening
// DeviceCreateInfo for every caller.
func CreateDeviceWithExtendedFeatures(physicalDevice PhysicalDevice, createInfo *DeviceCreateInfo, extended *ExtendedDeviceFeatures) (Device, error) {
	var cCreateInfo C.VkDeviceCreateInfo
	cCreateInfo.sType = C.VK_STRUCTURE_TYPE_DEVICE_CREATE_INFO
	cCreateInfo.flags = 0

	var cQueueCreateInfos []C.VkDeviceQueueCreateInfo
	var cPriorities [][]C.float
	if len(createInfo.QueueCreateInfos) > 0 {
		cQueueCreateInfos = make([]C.VkDeviceQueueCreateInfo, len(createInfo.QueueCreateInfos))
		cPriorities = make([][]C.float, len(createInfo.QueueCreateInfos))
		for i, qci := range createInfo.QueueCreateInfos {
			cQueueCreateInfos[i].sType = C.VK_STRUCTURE_TYPE_DEVICE_QUEUE_CREATE_INFO
			cQueueCreateInfos[i].queueFamilyIndex = C.uint32_t(qci.QueueFamilyIndex)
			cQueueCreateInfos[i].queueCount = C.uint32_t(len(qci.QueuePriorities))
			if len(qci.QueuePriorities) > 0 {
				cPriorities[i] = make([]C.float, len(qci.QueuePriorities))
				for j, priority := range qci.QueuePriorities {
					cPriorities[i][j] = C.float(priority)
				}
				cQueueCreateInfos[i].pQueuePriorities = &cPriorities[i][0]
			}
		}
		cCreateInfo.queueCreateInfoCount = C.uint32_t(len(cQueueCreateInfos))
		cCreateInfo.pQueueCreateInfos = &cQueueCreateInfos[0]
	}

	var cLayers **C.char
	if len(createInfo.EnabledLayerNames) > 0 {
		cLayers = stringSliceToCharArray(createInfo.EnabledLayerNames)
		defer freeStringArray(cLayers, len(createInfo.EnabledLayerNames))
		cCreateInfo.enabledLayerCount = C.uint32_t(len(createInfo.EnabledLayerNames))
		cCreateInfo.ppEnabledLayerNames = cLayers
	}

	var cExtensions **C.char
	if len(createInfo.EnabledExtensionNames) > 0 {
		cExtensions = stringSliceToCharArray(createInfo.EnabledExtensionNames)
		defer freeStringArray(cExtensions, len(createInfo.EnabledExtensionNames))
		cCreateInfo.enabledExtensionCount = C.uint32_t(len(createInfo.EnabledExtensionNames))
		cCreateInfo.ppEnabledExtensionNames = cExtensions
	}

	var vk12Features C.VkPhysicalDeviceVulkan12Features
	if extended != nil {
		vk12Features.sType = C.VK_STRUCTURE_TYPE_PHYSICAL_DEVICE_VULKAN_1_2_FEATURES
		vk12Features.pNext = nil
		vk12Features.storageBuffer8BitAccess = boolToVkBool32(extended.StorageBuffer8BitAccess)
		vk12Features.shaderInt8 = boolToVkBool32(extended.ShaderInt8)
		vk12Features.bufferDeviceAddress = boolToVkBool32(extended.BufferDeviceAddress)
		cCreateInfo.pNext = unsafe.Pointer(&vk12Features)
	}

	var device C.VkDevice
	result := Result(C.vkCreateDevice(C.VkPhysicalDevice(physicalDevice), &cCreateInfo, nil, &device))
	if result != Success {
		return nil, result
	}
	return Device(device), nil
}
