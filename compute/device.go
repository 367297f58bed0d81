// Package compute implements the Vulkan 1.3 compute engine: device and
// allocator lifetimes, storage buffers, SPIR-V algorithms, and recorded
// command sequences, built atop the vkapi cgo binding.
package compute

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/xuyanwen2012/splinetree-substrate/vkapi"
)

// Kind categorizes compute-package failures; callers reach it through
// errors.As on *Error.
type Kind int

const (
	KindNoComputeQueue Kind = iota
	KindVulkanError
	KindInvalidSpirv
	KindShaderNotFound
	KindOutOfMemory
)

// Error wraps every failure this package returns to a caller.
type Error struct {
	Op   string
	Kind Kind
	Err  error
}

func (e *Error) Error() string { return fmt.Sprintf("compute: %s: %v", e.Op, e.Err) }
func (e *Error) Unwrap() error { return e.Err }

// newError builds an *Error for op. When kind is KindVulkanError and err is
// a raw vkapi.Result (as returned directly by a failed vkapi call), it is
// folded into a vkapi.VulkanError first so callers that errors.As into
// *vkapi.VulkanError see the operation name alongside the result code.
func newError(op string, kind Kind, err error) *Error {
	if kind == KindVulkanError {
		if result, ok := err.(vkapi.Result); ok {
			err = vkapi.NewVulkanError(result, op, "")
		}
	}
	return &Error{Op: op, Kind: kind, Err: err}
}

var (
	// ErrNoComputeQueue is wrapped by Error when no queue family on the
	// selected physical device advertises compute support.
	ErrNoComputeQueue = fmt.Errorf("no compute-capable queue family")
)

const applicationName = "splinetree-substrate"

// DeviceContext exclusively owns one Vulkan instance, one selected
// physical device (integrated GPU preferred), one logical device, one
// compute queue, and the queue family index that queue was created from.
type DeviceContext struct {
	log zerolog.Logger

	instance             vkapi.Instance
	physicalDevice       vkapi.PhysicalDevice
	device               vkapi.Device
	queue                vkapi.Queue
	computeQueueFamily   uint32
	validationLayerFound bool
}

const validationLayerName = "VK_LAYER_KHRONOS_validation"

// NewDeviceContext performs, in order: instance creation at API 1.3 with
// the Khronos validation layer enabled if present; integrated-GPU
// selection (warning and falling back to the first device if none is
// integrated); compute queue family selection; and logical device
// creation with 8-bit storage, 8-bit shader integer, and
// buffer-device-address enabled.
func NewDeviceContext(log zerolog.Logger) (*DeviceContext, error) {
	dc := &DeviceContext{log: log.With().Str("component", "device").Logger()}

	layers, err := vkapi.EnumerateInstanceLayerProperties()
	if err != nil {
		return nil, newError("enumerate_layers", KindVulkanError, err)
	}
	var enabledLayers []string
	if vkapi.IsLayerSupported(validationLayerName, layers) {
		enabledLayers = append(enabledLayers, validationLayerName)
		dc.validationLayerFound = true
	} else {
		dc.log.Warn().Str("layer", validationLayerName).Msg("validation layer not present, continuing without it")
	}

	instance, err := vkapi.CreateInstance(&vkapi.InstanceCreateInfo{
		ApplicationInfo: &vkapi.ApplicationInfo{
			ApplicationName:    applicationName,
			ApplicationVersion: vkapi.MakeVersion(1, 0, 0),
			EngineName:         applicationName,
			EngineVersion:      vkapi.MakeVersion(1, 0, 0),
			APIVersion:         vkapi.Version13,
		},
		EnabledLayerNames: enabledLayers,
	})
	if err != nil {
		return nil, newError("create_instance", KindVulkanError, err)
	}
	dc.instance = instance

	physicalDevice, err := dc.selectPhysicalDevice()
	if err != nil {
		vkapi.DestroyInstance(dc.instance)
		return nil, err
	}
	dc.physicalDevice = physicalDevice

	queueFamily, err := selectComputeQueueFamily(physicalDevice)
	if err != nil {
		vkapi.DestroyInstance(dc.instance)
		return nil, err
	}
	dc.computeQueueFamily = queueFamily

	device, err := vkapi.CreateDeviceWithExtendedFeatures(physicalDevice, &vkapi.DeviceCreateInfo{
		QueueCreateInfos: []vkapi.DeviceQueueCreateInfo{
			{QueueFamilyIndex: queueFamily, QueuePriorities: []float32{1.0}},
		},
		EnabledLayerNames: enabledLayers,
	}, &vkapi.ExtendedDeviceFeatures{
		StorageBuffer8BitAccess: true,
		ShaderInt8:              true,
		BufferDeviceAddress:     true,
	})
	if err != nil {
		vkapi.DestroyInstance(dc.instance)
		return nil, newError("create_device", KindVulkanError, err)
	}
	dc.device = device
	dc.queue = vkapi.GetDeviceQueue(device, queueFamily, 0)

	dc.log.Info().
		Uint32("queue_family", queueFamily).
		Bool("validation_layer", dc.validationLayerFound).
		Msg("device context ready")
	return dc, nil
}

func (dc *DeviceContext) selectPhysicalDevice() (vkapi.PhysicalDevice, error) {
	devices, err := vkapi.EnumeratePhysicalDevices(dc.instance)
	if err != nil {
		return nil, newError("enumerate_physical_devices", KindVulkanError, err)
	}
	if len(devices) == 0 {
		return nil, newError("enumerate_physical_devices", KindVulkanError, fmt.Errorf("no physical devices found"))
	}

	for _, d := range devices {
		props := vkapi.GetPhysicalDeviceProperties(d)
		if props.DeviceType == vkapi.PhysicalDeviceTypeIntegratedGPU {
			dc.log.Info().Str("device", props.DeviceName).Msg("selected integrated GPU")
			return d, nil
		}
	}

	dc.log.Warn().Msg("no integrated GPU found, falling back to first physical device")
	return devices[0], nil
}

func selectComputeQueueFamily(physicalDevice vkapi.PhysicalDevice) (uint32, error) {
	families := vkapi.GetPhysicalDeviceQueueFamilyProperties(physicalDevice)
	for i, f := range families {
		if f.QueueFlags&vkapi.QueueComputeBit != 0 {
			return uint32(i), nil
		}
	}
	return 0, newError("select_queue_family", KindNoComputeQueue, ErrNoComputeQueue)
}

// Device returns the underlying logical device handle.
func (dc *DeviceContext) Device() vkapi.Device { return dc.device }

// PhysicalDevice returns the selected physical device handle.
func (dc *DeviceContext) PhysicalDevice() vkapi.PhysicalDevice { return dc.physicalDevice }

// Queue returns the single compute queue.
func (dc *DeviceContext) Queue() vkapi.Queue { return dc.queue }

// QueueFamilyIndex returns the queue family the compute queue was created
// from.
func (dc *DeviceContext) QueueFamilyIndex() uint32 { return dc.computeQueueFamily }

// Close destroys the logical device then the instance, in that order. The
// caller must ensure every resource built atop this context (Allocator,
// Buffers, Algorithms, Sequences) has already been destroyed.
func (dc *DeviceContext) Close() {
	if dc.device != nil {
		vkapi.DeviceWaitIdle(dc.device)
		vkapi.DestroyDevice(dc.device)
		dc.device = nil
	}
	if dc.instance != nil {
		vkapi.DestroyInstance(dc.instance)
		dc.instance = nil
	}
	dc.log.Info().Msg("device context closed")
}
