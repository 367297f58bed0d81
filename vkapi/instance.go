package vkapi

/*
#cgo pkg-config: vulkan
#include <vulkan/vulkan.h>
#include <stdlib.h>
#include <string.h>

char** makeCharArray(int size) {
    return calloc(sizeof(char*), size);
}

void setArrayString(char **a, char *s, int n) {
    a[n] = s;
}

void freeCharArray(char **a, int size) {
    for (int i = 0; i < size; i++) {
        free(a[i]);
    }
    free(a);
}
*/
import "C"

import (
	"unsafe"
)

// ApplicationInfo contains application information
type ApplicationInfo struct {
	ApplicationName    string
	ApplicationVersion Version
	EngineName         string
	EngineVersion      Version
	APIVersion         Version
}

// InstanceCreateInfo contains instance creation information
type InstanceCreateInfo struct {
	ApplicationInfo       *ApplicationInfo
	EnabledLayerNames     []string
	EnabledExtensionNames []string
}

// LayerProperties contains layer information
type LayerProperties struct {
	LayerName             string
	SpecVersion           Version
	ImplementationVersion Version
	Description           string
}

// PhysicalDeviceType represents the type of physical device. The full
// Vulkan enum is kept even though only the integrated-GPU case drives a
// decision in this repository, since GetPhysicalDeviceProperties always
// reports one of these five values regardless of which this binding cares
// about.
type PhysicalDeviceType int32

const (
	PhysicalDeviceTypeOther         PhysicalDeviceType = C.VK_PHYSICAL_DEVICE_TYPE_OTHER
	PhysicalDeviceTypeIntegratedGPU PhysicalDeviceType = C.VK_PHYSICAL_DEVICE_TYPE_INTEGRATED_GPU
	PhysicalDeviceTypeDiscreteGPU   PhysicalDeviceType = C.VK_PHYSICAL_DEVICE_TYPE_DISCRETE_GPU
	PhysicalDeviceTypeVirtualGPU    PhysicalDeviceType = C.VK_PHYSICAL_DEVICE_TYPE_VIRTUAL_GPU
	PhysicalDeviceTypeCPU           PhysicalDeviceType = C.VK_PHYSICAL_DEVICE_TYPE_CPU
)

// PhysicalDeviceProperties contains the subset of VkPhysicalDeviceProperties
// a compute-only device selector needs: identity and version data.
// The VkPhysicalDeviceLimits and VkPhysicalDeviceSparseProperties blocks
// Vulkan also returns here are graphics/sparse-residency limits this
// binding has no pipeline stage to bump against, so they are not surfaced.
type PhysicalDeviceProperties struct {
	APIVersion    Version
	DriverVersion Version
	VendorID      uint32
	DeviceID      uint32
	DeviceType    PhysicalDeviceType
	DeviceName    string
}

// QueueFamilyProperties contains queue family properties
type QueueFamilyProperties struct {
	QueueFlags                  QueueFlags
	QueueCount                  uint32
	TimestampValidBits          uint32
	MinImageTransferGranularity Extent3D
}

// QueueFlags represents queue capability flags. Only the compute bit gates
// a decision in selectComputeQueueFamily; the rest of the enum is kept
// because VkQueueFamilyProperties.queueFlags is a driver-reported bitmask
// that may legitimately carry them alongside compute.
type QueueFlags uint32

const (
	QueueGraphicsBit       QueueFlags = C.VK_QUEUE_GRAPHICS_BIT
	QueueComputeBit        QueueFlags = C.VK_QUEUE_COMPUTE_BIT
	QueueTransferBit       QueueFlags = C.VK_QUEUE_TRANSFER_BIT
	QueueSparseBindingBit  QueueFlags = C.VK_QUEUE_SPARSE_BINDING_BIT
	QueueProtectedBit      QueueFlags = C.VK_QUEUE_PROTECTED_BIT
	QueueVideoDecodeBitKHR QueueFlags = C.VK_QUEUE_VIDEO_DECODE_BIT_KHR
	QueueVideoEncodeBitKHR QueueFlags = C.VK_QUEUE_VIDEO_ENCODE_BIT_KHR
)

// Extent3D represents a 3D extent
type Extent3D struct {
	Width  uint32
	Height uint32
	Depth  uint32
}

// stringSliceToCharArray converts Go string slice to C char**
func stringSliceToCharArray(strs []string) **C.char {
	if len(strs) == 0 {
		return nil
	}

	cArray := C.makeCharArray(C.int(len(strs)))
	for i, str := range strs {
		cStr := C.CString(str)
		C.setArrayString(cArray, cStr, C.int(i))
	}
	return cArray
}

// freeStringArray frees a C char** array
func freeStringArray(cArray **C.char, size int) {
	if cArray != nil {
		C.freeCharArray(cArray, C.int(size))
	}
}

// CreateInstance creates a Vulkan instance
func CreateInstance(createInfo *InstanceCreateInfo) (Instance, error) {
	var cCreateInfo C.VkInstanceCreateInfo
	cCreateInfo.sType = C.VK_STRUCTURE_TYPE_INSTANCE_CREATE_INFO
	cCreateInfo.pNext = nil
	cCreateInfo.flags = 0

	var cAppInfo *C.VkApplicationInfo
	var appNamePtr, engineNamePtr *C.char
	if createInfo.ApplicationInfo != nil {
		cAppInfo = (*C.VkApplicationInfo)(C.malloc(C.size_t(unsafe.Sizeof(C.VkApplicationInfo{}))))
		cAppInfo.sType = C.VK_STRUCTURE_TYPE_APPLICATION_INFO
		cAppInfo.pNext = nil
		cAppInfo.pApplicationName = nil
		cAppInfo.pEngineName = nil

		if createInfo.ApplicationInfo.ApplicationName != "" {
			appNamePtr = C.CString(createInfo.ApplicationInfo.ApplicationName)
			cAppInfo.pApplicationName = appNamePtr
		}
		cAppInfo.applicationVersion = C.uint32_t(createInfo.ApplicationInfo.ApplicationVersion)

		if createInfo.ApplicationInfo.EngineName != "" {
			engineNamePtr = C.CString(createInfo.ApplicationInfo.EngineName)
			cAppInfo.pEngineName = engineNamePtr
		}
		cAppInfo.engineVersion = C.uint32_t(createInfo.ApplicationInfo.EngineVersion)
		cAppInfo.apiVersion = C.uint32_t(createInfo.ApplicationInfo.APIVersion)

		cCreateInfo.pApplicationInfo = cAppInfo
	}

	var cLayers **C.char
	if len(createInfo.EnabledLayerNames) > 0 {
		cLayers = stringSliceToCharArray(createInfo.EnabledLayerNames)
		cCreateInfo.enabledLayerCount = C.uint32_t(len(createInfo.EnabledLayerNames))
		cCreateInfo.ppEnabledLayerNames = cLayers
	}

	var cExtensions **C.char
	if len(createInfo.EnabledExtensionNames) > 0 {
		cExtensions = stringSliceToCharArray(createInfo.EnabledExtensionNames)
		cCreateInfo.enabledExtensionCount = C.uint32_t(len(createInfo.EnabledExtensionNames))
		cCreateInfo.ppEnabledExtensionNames = cExtensions
	}

	var instance C.VkInstance
	result := Result(C.vkCreateInstance(&cCreateInfo, nil, &instance))

	if appNamePtr != nil {
		C.free(unsafe.Pointer(appNamePtr))
	}
	if engineNamePtr != nil {
		C.free(unsafe.Pointer(engineNamePtr))
	}
	if cAppInfo != nil {
		C.free(unsafe.Pointer(cAppInfo))
	}
	if cLayers != nil {
		freeStringArray(cLayers, len(createInfo.EnabledLayerNames))
	}
	if cExtensions != nil {
		freeStringArray(cExtensions, len(createInfo.EnabledExtensionNames))
	}

	if result != Success {
		return nil, result
	}

	return Instance(instance), nil
}

// DestroyInstance destroys a Vulkan instance
func DestroyInstance(instance Instance) {
	C.vkDestroyInstance(C.VkInstance(instance), nil)
}

// EnumerateInstanceLayerProperties enumerates available instance layers
func EnumerateInstanceLayerProperties() ([]LayerProperties, error) {
	var propertyCount C.uint32_t
	result := Result(C.vkEnumerateInstanceLayerProperties(&propertyCount, nil))
	if result != Success {
		return nil, result
	}

	if propertyCount == 0 {
		return nil, nil
	}

	cProperties := make([]C.VkLayerProperties, propertyCount)
	result = Result(C.vkEnumerateInstanceLayerProperties(&propertyCount, &cProperties[0]))
	if result != Success {
		return nil, result
	}

	properties := make([]LayerProperties, propertyCount)
	for i := range properties {
		properties[i].LayerName = C.GoString(&cProperties[i].layerName[0])
		properties[i].SpecVersion = Version(cProperties[i].specVersion)
		properties[i].ImplementationVersion = Version(cProperties[i].implementationVersion)
		properties[i].Description = C.GoString(&cProperties[i].description[0])
	}

	return properties, nil
}

// EnumeratePhysicalDevices enumerates physical devices
func EnumeratePhysicalDevices(instance Instance) ([]PhysicalDevice, error) {
	var deviceCount C.uint32_t
	result := Result(C.vkEnumeratePhysicalDevices(C.VkInstance(instance), &deviceCount, nil))
	if result != Success {
		return nil, result
	}

	if deviceCount == 0 {
		return nil, nil
	}

	cDevices := make([]C.VkPhysicalDevice, deviceCount)
	result = Result(C.vkEnumeratePhysicalDevices(C.VkInstance(instance), &deviceCount, &cDevices[0]))
	if result != Success {
		return nil, result
	}

	devices := make([]PhysicalDevice, deviceCount)
	for i := range devices {
		devices[i] = PhysicalDevice(cDevices[i])
	}

	return devices, nil
}

// GetPhysicalDeviceProperties gets the identity and version fields of a
// physical device's properties
func GetPhysicalDeviceProperties(physicalDevice PhysicalDevice) PhysicalDeviceProperties {
	var cProperties C.VkPhysicalDeviceProperties
	C.vkGetPhysicalDeviceProperties(C.VkPhysicalDevice(physicalDevice), &cProperties)

	return PhysicalDeviceProperties{
		APIVersion:    Version(cProperties.apiVersion),
		DriverVersion: Version(cProperties.driverVersion),
		VendorID:      uint32(cProperties.vendorID),
		DeviceID:      uint32(cProperties.deviceID),
		DeviceType:    PhysicalDeviceType(cProperties.deviceType),
		DeviceName:    C.GoString(&cProperties.deviceName[0]),
	}
}

// GetPhysicalDeviceQueueFamilyProperties gets queue family properties
func GetPhysicalDeviceQueueFamilyProperties(physicalDevice PhysicalDevice) []QueueFamilyProperties {
	var queueFamilyCount C.uint32_t
	C.vkGetPhysicalDeviceQueueFamilyProperties(C.VkPhysicalDevice(physicalDevice), &queueFamilyCount, nil)

	if queueFamilyCount == 0 {
		return nil
	}

	cProperties := make([]C.VkQueueFamilyProperties, queueFamilyCount)
	C.vkGetPhysicalDeviceQueueFamilyProperties(C.VkPhysicalDevice(physicalDevice), &queueFamilyCount, &cProperties[0])

	properties := make([]QueueFamilyProperties, queueFamilyCount)
	for i := range properties {
		properties[i] = QueueFamilyProperties{
			QueueFlags:         QueueFlags(cProperties[i].queueFlags),
			QueueCount:         uint32(cProperties[i].queueCount),
			TimestampValidBits: uint32(cProperties[i].timestampValidBits),
			MinImageTransferGranularity: Extent3D{
				Width:  uint32(cProperties[i].minImageTransferGranularity.width),
				Height: uint32(cProperties[i].minImageTransferGranularity.height),
				Depth:  uint32(cProperties[i].minImageTransferGranularity.depth),
			},
		}
	}

	return properties
}
