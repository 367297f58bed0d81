//go:build darwin

package vkapi

/*
#cgo pkg-config: vulkan
#include <vulkan/vulkan.h>
*/
import "C"
