//go:build windows

package vkapi

/*
#cgo CFLAGS: -I${SRCDIR}
// Vulkan SDK installed in a standard location is assumed; override with:
// #cgo CFLAGS: -I"C:/VulkanSDK/1.3.290.0/Include"
// #cgo LDFLAGS: -L"C:/VulkanSDK/1.3.290.0/Lib" -lvulkan-1
#cgo LDFLAGS: -lvulkan-1
#include <vulkan/vulkan.h>
*/
import "C"
