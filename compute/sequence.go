package compute

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/xuyanwen2012/splinetree-substrate/vkapi"
)

// State is a Sequence's position in its record/submit/sync state machine.
type State int

const (
	StateFresh State = iota
	StateRecording
	StateRecorded
	StateInFlight
)

func (s State) String() string {
	switch s {
	case StateFresh:
		return "Fresh"
	case StateRecording:
		return "Recording"
	case StateRecorded:
		return "Recorded"
	case StateInFlight:
		return "InFlight"
	default:
		return "Unknown"
	}
}

// Sequence owns one command pool, one primary command buffer, and one
// fence, and walks the state machine Fresh -> Recording -> Recorded ->
// InFlight -> Recorded. A Vulkan failure while beginning or ending
// recording, or while submitting, marks the Sequence poisoned (see
// Poisoned); later calls are not refused once it is poisoned. A call made
// in the wrong state fails and leaves the Sequence unchanged.
type Sequence struct {
	log zerolog.Logger
	dc  *DeviceContext

	commandPool   vkapi.CommandPool
	commandBuffer vkapi.CommandBuffer
	fence         vkapi.Fence
	state         State
	poisoned      bool
}

// NewSequence creates a reset-capable command pool on the compute queue
// family, allocates one primary command buffer, and creates an
// unsignaled fence.
func NewSequence(dc *DeviceContext, log zerolog.Logger) (*Sequence, error) {
	pool, err := vkapi.CreateCommandPool(dc.Device(), &vkapi.CommandPoolCreateInfo{
		Flags:            vkapi.CommandPoolCreateResetCommandBufferBit,
		QueueFamilyIndex: dc.QueueFamilyIndex(),
	})
	if err != nil {
		return nil, newError("create_command_pool", KindVulkanError, err)
	}

	buffers, err := vkapi.AllocateCommandBuffers(dc.Device(), &vkapi.CommandBufferAllocateInfo{
		CommandPool:        pool,
		Level:              vkapi.CommandBufferLevelPrimary,
		CommandBufferCount: 1,
	})
	if err != nil {
		vkapi.DestroyCommandPool(dc.Device(), pool)
		return nil, newError("allocate_command_buffers", KindVulkanError, err)
	}

	fence, err := vkapi.CreateFence(dc.Device(), &vkapi.FenceCreateInfo{})
	if err != nil {
		vkapi.DestroyCommandPool(dc.Device(), pool)
		return nil, newError("create_fence", KindVulkanError, err)
	}

	return &Sequence{
		log:           log.With().Str("component", "sequence").Logger(),
		dc:            dc,
		commandPool:   pool,
		commandBuffer: buffers[0],
		fence:         fence,
		state:         StateFresh,
	}, nil
}

func (s *Sequence) transitionError(op string, want State) error {
	return newError(op, KindVulkanError, fmt.Errorf("invalid state %s, want %s", s.state, want))
}

// CmdBegin transitions Fresh or Recorded -> Recording and begins
// one-time-submit recording.
func (s *Sequence) CmdBegin() error {
	if s.state != StateFresh && s.state != StateRecorded {
		return s.transitionError("cmd_begin", StateFresh)
	}
	if err := vkapi.BeginCommandBuffer(s.commandBuffer, &vkapi.CommandBufferBeginInfo{
		Flags: vkapi.CommandBufferUsageOneTimeSubmitBit,
	}); err != nil {
		s.poisoned = true
		return newError("cmd_begin", KindVulkanError, err)
	}
	s.state = StateRecording
	return nil
}

// CmdEnd transitions Recording -> Recorded.
func (s *Sequence) CmdEnd() error {
	if s.state != StateRecording {
		return s.transitionError("cmd_end", StateRecording)
	}
	if err := vkapi.EndCommandBuffer(s.commandBuffer); err != nil {
		s.poisoned = true
		return newError("cmd_end", KindVulkanError, err)
	}
	s.state = StateRecorded
	return nil
}

// CommandBuffer exposes the underlying command buffer for Algorithm's
// record_bind/record_push/record_dispatch calls, valid only while the
// Sequence is in StateRecording.
func (s *Sequence) CommandBuffer() vkapi.CommandBuffer { return s.commandBuffer }

// RecordWithBlocks performs cmd_begin -> algo.RecordBind -> algo.RecordPush
// -> algo.RecordDispatch(nBlocks) -> cmd_end as one convenience operation.
func (s *Sequence) RecordWithBlocks(algo *Algorithm, nBlocks uint32) error {
	if err := s.CmdBegin(); err != nil {
		return err
	}
	algo.RecordBind(s.commandBuffer)
	algo.RecordPush(s.commandBuffer)
	algo.RecordDispatch(s.commandBuffer, nBlocks)
	return s.CmdEnd()
}

// LaunchAsync transitions Recorded -> InFlight: submits the command
// buffer to the compute queue and signals the fence on completion. Does
// not block.
func (s *Sequence) LaunchAsync() error {
	if s.state != StateRecorded {
		return s.transitionError("launch_async", StateRecorded)
	}
	if err := vkapi.ResetFences(s.dc.Device(), []vkapi.Fence{s.fence}); err != nil {
		return newError("launch_async", KindVulkanError, err)
	}
	if err := vkapi.QueueSubmit(s.dc.Queue(), []vkapi.SubmitInfo{
		{CommandBuffers: []vkapi.CommandBuffer{s.commandBuffer}},
	}, s.fence); err != nil {
		s.poisoned = true
		return newError("launch_async", KindVulkanError, err)
	}
	s.state = StateInFlight
	return nil
}

// Sync transitions InFlight -> Recorded: blocks on the fence with an
// unbounded timeout, then resets it.
func (s *Sequence) Sync() error {
	if s.state != StateInFlight {
		return s.transitionError("sync", StateInFlight)
	}
	if err := vkapi.WaitForFences(s.dc.Device(), []vkapi.Fence{s.fence}, true, ^uint64(0)); err != nil {
		return newError("sync", KindVulkanError, err)
	}
	if err := vkapi.ResetFences(s.dc.Device(), []vkapi.Fence{s.fence}); err != nil {
		return newError("sync", KindVulkanError, err)
	}
	s.state = StateRecorded
	return nil
}

// Poisoned reports whether a prior operation failed and left the
// underlying command buffer unusable.
func (s *Sequence) Poisoned() bool { return s.poisoned }

// Close frees the command pool (which implicitly frees its command
// buffer) and the fence.
func (s *Sequence) Close() {
	vkapi.DestroyFence(s.dc.Device(), s.fence)
	vkapi.DestroyCommandPool(s.dc.Device(), s.commandPool)
	s.log.Debug().Msg("sequence destroyed")
}
