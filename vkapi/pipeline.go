package vkapi

/*
#cgo pkg-config: vulkan
#include <vulkan/vulkan.h>
#include <stdlib.h>
*/
import "C"

import "unsafe"

// ShaderModuleCreateInfo contains shader module creation information
type ShaderModuleCreateInfo struct {
	CodeSize uint32
	Code     []uint32
}

// PipelineShaderStageCreateInfo contains pipeline shader stage creation information
type PipelineShaderStageCreateInfo struct {
	Stage  ShaderStageFlags
	Module ShaderModule
	Name   string
}

// ShaderStageFlags represents shader stage flags
type ShaderStageFlags uint32

const (
	ShaderStageVertexBit                 ShaderStageFlags = C.VK_SHADER_STAGE_VERTEX_BIT
	ShaderStageTessellationControlBit    ShaderStageFlags = C.VK_SHADER_STAGE_TESSELLATION_CONTROL_BIT
	ShaderStageTessellationEvaluationBit ShaderStageFlags = C.VK_SHADER_STAGE_TESSELLATION_EVALUATION_BIT
	ShaderStageGeometryBit               ShaderStageFlags = C.VK_SHADER_STAGE_GEOMETRY_BIT
	ShaderStageFragmentBit               ShaderStageFlags = C.VK_SHADER_STAGE_FRAGMENT_BIT
	ShaderStageComputeBit                ShaderStageFlags = C.VK_SHADER_STAGE_COMPUTE_BIT
	ShaderStageAllGraphics               ShaderStageFlags = C.VK_SHADER_STAGE_ALL_GRAPHICS
	ShaderStageAll                       ShaderStageFlags = C.VK_SHADER_STAGE_ALL
)

// PipelineLayoutCreateInfo contains pipeline layout creation information
type PipelineLayoutCreateInfo struct {
	SetLayouts    []DescriptorSetLayout
	PushConstants []PushConstantRange
}

// PushConstantRange represents a push constant range
type PushConstantRange struct {
	StageFlags ShaderStageFlags
	Offset     uint32
	Size       uint32
}

// PipelineBindPoint represents pipeline bind points
type PipelineBindPoint int32

const (
	PipelineBindPointGraphics PipelineBindPoint = C.VK_PIPELINE_BIND_POINT_GRAPHICS
	PipelineBindPointCompute  PipelineBindPoint = C.VK_PIPELINE_BIND_POINT_COMPUTE
)

// AccessFlags represents memory access flags
type AccessFlags uint32

const (
	AccessIndirectCommandReadBit AccessFlags = C.VK_ACCESS_INDIRECT_COMMAND_READ_BIT
	AccessShaderReadBit          AccessFlags = C.VK_ACCESS_SHADER_READ_BIT
	AccessShaderWriteBit         AccessFlags = C.VK_ACCESS_SHADER_WRITE_BIT
	AccessTransferReadBit        AccessFlags = C.VK_ACCESS_TRANSFER_READ_BIT
	AccessTransferWriteBit       AccessFlags = C.VK_ACCESS_TRANSFER_WRITE_BIT
	AccessHostReadBit            AccessFlags = C.VK_ACCESS_HOST_READ_BIT
	AccessHostWriteBit           AccessFlags = C.VK_ACCESS_HOST_WRITE_BIT
	AccessMemoryReadBit          AccessFlags = C.VK_ACCESS_MEMORY_READ_BIT
	AccessMemoryWriteBit         AccessFlags = C.VK_ACCESS_MEMORY_WRITE_BIT
)

// CreateShaderModule creates a shader module from a SPIR-V binary
func CreateShaderModule(device Device, createInfo *ShaderModuleCreateInfo) (ShaderModule, error) {
	var cCreateInfo C.VkShaderModuleCreateInfo
	cCreateInfo.sType = C.VK_STRUCTURE_TYPE_SHADER_MODULE_CREATE_INFO
	cCreateInfo.pNext = nil
	cCreateInfo.flags = 0
	cCreateInfo.codeSize = C.size_t(createInfo.CodeSize)
	if len(createInfo.Code) > 0 {
		cCreateInfo.pCode = (*C.uint32_t)(&createInfo.Code[0])
	}

	var shaderModule C.VkShaderModule
	result := Result(C.vkCreateShaderModule(C.VkDevice(device), &cCreateInfo, nil, &shaderModule))
	if result != Success {
		return nil, result
	}

	return ShaderModule(shaderModule), nil
}

// DestroyShaderModule destroys a shader module
func DestroyShaderModule(device Device, shaderModule ShaderModule) {
	C.vkDestroyShaderModule(C.VkDevice(device), C.VkShaderModule(shaderModule), nil)
}

// CreatePipelineLayout creates a pipeline layout
func CreatePipelineLayout(device Device, createInfo *PipelineLayoutCreateInfo) (PipelineLayout, error) {
	var cCreateInfo C.VkPipelineLayoutCreateInfo
	cCreateInfo.sType = C.VK_STRUCTURE_TYPE_PIPELINE_LAYOUT_CREATE_INFO
	cCreateInfo.pNext = nil
	cCreateInfo.flags = 0

	var cSetLayouts []C.VkDescriptorSetLayout
	if len(createInfo.SetLayouts) > 0 {
		cSetLayouts = make([]C.VkDescriptorSetLayout, len(createInfo.SetLayouts))
		for i, layout := range createInfo.SetLayouts {
			cSetLayouts[i] = C.VkDescriptorSetLayout(layout)
		}
		cCreateInfo.setLayoutCount = C.uint32_t(len(cSetLayouts))
		cCreateInfo.pSetLayouts = &cSetLayouts[0]
	}

	var cPushConstants []C.VkPushConstantRange
	if len(createInfo.PushConstants) > 0 {
		cPushConstants = make([]C.VkPushConstantRange, len(createInfo.PushConstants))
		for i, pc := range createInfo.PushConstants {
			cPushConstants[i].stageFlags = C.VkShaderStageFlags(pc.StageFlags)
			cPushConstants[i].offset = C.uint32_t(pc.Offset)
			cPushConstants[i].size = C.uint32_t(pc.Size)
		}
		cCreateInfo.pushConstantRangeCount = C.uint32_t(len(cPushConstants))
		cCreateInfo.pPushConstantRanges = &cPushConstants[0]
	}

	var pipelineLayout C.VkPipelineLayout
	result := Result(C.vkCreatePipelineLayout(C.VkDevice(device), &cCreateInfo, nil, &pipelineLayout))
	if result != Success {
		return nil, result
	}

	return PipelineLayout(pipelineLayout), nil
}

// DestroyPipelineLayout destroys a pipeline layout
func DestroyPipelineLayout(device Device, pipelineLayout PipelineLayout) {
	C.vkDestroyPipelineLayout(C.VkDevice(device), C.VkPipelineLayout(pipelineLayout), nil)
}

// PipelineCacheCreateInfo contains pipeline cache creation information
type PipelineCacheCreateInfo struct {
	InitialData []byte
}

// CreatePipelineCache creates a pipeline cache, optionally seeded with prior data
func CreatePipelineCache(device Device, createInfo *PipelineCacheCreateInfo) (PipelineCache, error) {
	var cCreateInfo C.VkPipelineCacheCreateInfo
	cCreateInfo.sType = C.VK_STRUCTURE_TYPE_PIPELINE_CACHE_CREATE_INFO
	cCreateInfo.pNext = nil
	cCreateInfo.flags = 0
	if len(createInfo.InitialData) > 0 {
		cCreateInfo.initialDataSize = C.size_t(len(createInfo.InitialData))
		cCreateInfo.pInitialData = unsafe.Pointer(&createInfo.InitialData[0])
	}

	var cache C.VkPipelineCache
	result := Result(C.vkCreatePipelineCache(C.VkDevice(device), &cCreateInfo, nil, &cache))
	if result != Success {
		return nil, result
	}

	return PipelineCache(cache), nil
}

// DestroyPipelineCache destroys a pipeline cache
func DestroyPipelineCache(device Device, cache PipelineCache) {
	C.vkDestroyPipelineCache(C.VkDevice(device), C.VkPipelineCache(cache), nil)
}

// ComputePipelineCreateInfo contains compute pipeline creation information
type ComputePipelineCreateInfo struct {
	Stage  PipelineShaderStageCreateInfo
	Layout PipelineLayout
}

// CreateComputePipelines creates one or more compute pipelines in a single driver call
func CreateComputePipelines(device Device, cache PipelineCache, createInfos []ComputePipelineCreateInfo) ([]Pipeline, error) {
	cCreateInfos := make([]C.VkComputePipelineCreateInfo, len(createInfos))
	cNames := make([]*C.char, len(createInfos))
	for i, info := range createInfos {
		cNames[i] = C.CString(info.Stage.Name)
		cCreateInfos[i].sType = C.VK_STRUCTURE_TYPE_COMPUTE_PIPELINE_CREATE_INFO
		cCreateInfos[i].pNext = nil
		cCreateInfos[i].flags = 0
		cCreateInfos[i].stage.sType = C.VK_STRUCTURE_TYPE_PIPELINE_SHADER_STAGE_CREATE_INFO
		cCreateInfos[i].stage.stage = C.VkShaderStageFlagBits(info.Stage.Stage)
		cCreateInfos[i].stage.module = C.VkShaderModule(info.Stage.Module)
		cCreateInfos[i].stage.pName = cNames[i]
		cCreateInfos[i].layout = C.VkPipelineLayout(info.Layout)
		cCreateInfos[i].basePipelineHandle = nil
		cCreateInfos[i].basePipelineIndex = -1
	}
	defer func() {
		for _, n := range cNames {
			C.free(unsafe.Pointer(n))
		}
	}()

	pipelines := make([]C.VkPipeline, len(createInfos))
	var pCreateInfos *C.VkComputePipelineCreateInfo
	if len(cCreateInfos) > 0 {
		pCreateInfos = &cCreateInfos[0]
	}
	var pPipelines *C.VkPipeline
	if len(pipelines) > 0 {
		pPipelines = &pipelines[0]
	}

	result := Result(C.vkCreateComputePipelines(C.VkDevice(device), C.VkPipelineCache(cache), C.uint32_t(len(createInfos)), pCreateInfos, nil, pPipelines))
	if result != Success && result != PipelineCompileRequiredEXT {
		return nil, result
	}

	out := make([]Pipeline, len(pipelines))
	for i, p := range pipelines {
		out[i] = Pipeline(p)
	}
	return out, nil
}

// DestroyPipeline destroys a pipeline
func DestroyPipeline(device Device, pipeline Pipeline) {
	C.vkDestroyPipeline(C.VkDevice(device), C.VkPipeline(pipeline), nil)
}

// IsLayerSupported checks if a layer is supported
func IsLayerSupported(layerName string, availableLayers []LayerProperties) bool {
	for _, layer := range availableLayers {
		if layer.LayerName == layerName {
			return true
		}
	}
	return false
}
