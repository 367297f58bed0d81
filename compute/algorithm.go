package compute

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/xuyanwen2012/splinetree-substrate/vkapi"
)

// Algorithm owns one shader module, one descriptor set layout, one
// descriptor pool, one descriptor set, one pipeline layout, one pipeline
// cache, and one compute pipeline. It holds non-owning references to its
// current input/output buffers; their lifetime is the caller's (or
// Engine's) responsibility.
type Algorithm struct {
	log zerolog.Logger
	dc  *DeviceContext

	shaderModule  vkapi.ShaderModule
	setLayout     vkapi.DescriptorSetLayout
	pool          vkapi.DescriptorPool
	set           vkapi.DescriptorSet
	layout        vkapi.PipelineLayout
	cache         vkapi.PipelineCache
	pipeline      vkapi.Pipeline
	pushConstants []byte
	numBuffers    int
}

// NewAlgorithm loads spirvName from loader, validates it, and builds the
// full descriptor-set/pipeline chain bound to buffers in binding order
// 0..len(buffers)-1. pushConstantSize may be 0 for kernels with no push
// constants.
func NewAlgorithm(dc *DeviceContext, loader *ShaderLoader, spirvName string, buffers []*Buffer, pushConstantSize int, log zerolog.Logger) (*Algorithm, error) {
	code, err := loader.Load(spirvName)
	if err != nil {
		return nil, err
	}

	module, err := vkapi.CreateShaderModule(dc.Device(), &vkapi.ShaderModuleCreateInfo{
		CodeSize: uint32(len(code) * 4),
		Code:     code,
	})
	if err != nil {
		return nil, newError("create_shader_module", KindVulkanError, err)
	}

	a := &Algorithm{
		log:          log.With().Str("component", "algorithm").Str("shader", spirvName).Logger(),
		dc:           dc,
		shaderModule: module,
		numBuffers:   len(buffers),
	}

	if err := a.buildDescriptorSet(buffers); err != nil {
		a.destroyPartial()
		return nil, err
	}

	if err := a.buildPipeline(pushConstantSize); err != nil {
		a.destroyPartial()
		return nil, err
	}

	if pushConstantSize > 0 {
		a.pushConstants = make([]byte, pushConstantSize)
	}

	a.log.Debug().Int("buffers", len(buffers)).Int("push_bytes", pushConstantSize).Msg("algorithm ready")
	return a, nil
}

func (a *Algorithm) buildDescriptorSet(buffers []*Buffer) error {
	bindings := make([]vkapi.DescriptorSetLayoutBinding, len(buffers))
	for i := range buffers {
		bindings[i] = vkapi.DescriptorSetLayoutBinding{
			Binding:         uint32(i),
			DescriptorType:  vkapi.DescriptorTypeStorageBuffer,
			DescriptorCount: 1,
			StageFlags:      vkapi.ShaderStageComputeBit,
		}
	}

	setLayout, err := vkapi.CreateDescriptorSetLayout(a.dc.Device(), &vkapi.DescriptorSetLayoutCreateInfo{Bindings: bindings})
	if err != nil {
		return newError("create_descriptor_set_layout", KindVulkanError, err)
	}
	a.setLayout = setLayout

	pool, err := vkapi.CreateDescriptorPool(a.dc.Device(), &vkapi.DescriptorPoolCreateInfo{
		MaxSets: 1,
		PoolSizes: []vkapi.DescriptorPoolSize{
			{Type: vkapi.DescriptorTypeStorageBuffer, DescriptorCount: uint32(len(buffers))},
		},
	})
	if err != nil {
		return newError("create_descriptor_pool", KindVulkanError, err)
	}
	a.pool = pool

	sets, err := vkapi.AllocateDescriptorSets(a.dc.Device(), &vkapi.DescriptorSetAllocateInfo{
		DescriptorPool: pool,
		SetLayouts:     []vkapi.DescriptorSetLayout{setLayout},
	})
	if err != nil {
		return newError("allocate_descriptor_sets", KindVulkanError, err)
	}
	a.set = sets[0]

	return a.writeBufferBindings(buffers)
}

func (a *Algorithm) writeBufferBindings(buffers []*Buffer) error {
	writes := make([]vkapi.WriteDescriptorSet, len(buffers))
	for i, b := range buffers {
		writes[i] = vkapi.WriteDescriptorSet{
			DstSet:         a.set,
			DstBinding:     uint32(i),
			DescriptorType: vkapi.DescriptorTypeStorageBuffer,
			BufferInfo:     []vkapi.DescriptorBufferInfo{b.DescriptorInfo()},
		}
	}
	vkapi.UpdateDescriptorSets(a.dc.Device(), writes)
	return nil
}

func (a *Algorithm) buildPipeline(pushConstantSize int) error {
	var pushRanges []vkapi.PushConstantRange
	if pushConstantSize > 0 {
		pushRanges = []vkapi.PushConstantRange{
			{StageFlags: vkapi.ShaderStageComputeBit, Offset: 0, Size: uint32(pushConstantSize)},
		}
	}

	layout, err := vkapi.CreatePipelineLayout(a.dc.Device(), &vkapi.PipelineLayoutCreateInfo{
		SetLayouts:    []vkapi.DescriptorSetLayout{a.setLayout},
		PushConstants: pushRanges,
	})
	if err != nil {
		return newError("create_pipeline_layout", KindVulkanError, err)
	}
	a.layout = layout

	cache, err := vkapi.CreatePipelineCache(a.dc.Device(), &vkapi.PipelineCacheCreateInfo{})
	if err != nil {
		return newError("create_pipeline_cache", KindVulkanError, err)
	}
	a.cache = cache

	pipelines, err := vkapi.CreateComputePipelines(a.dc.Device(), cache, []vkapi.ComputePipelineCreateInfo{
		{
			Stage: vkapi.PipelineShaderStageCreateInfo{
				Stage:  vkapi.ShaderStageComputeBit,
				Module: a.shaderModule,
				Name:   "main",
			},
			Layout: layout,
		},
	})
	if err != nil {
		return newError("create_compute_pipelines", KindVulkanError, err)
	}
	a.pipeline = pipelines[0]
	return nil
}

// SetPushConstants copies data into the algorithm's owned push-constant
// blob. len(data) must equal the size declared at construction.
func (a *Algorithm) SetPushConstants(data []byte) error {
	if len(data) != len(a.pushConstants) {
		return newError("set_push_constants", KindInvalidSpirv, vkapi.NewValidationError("data",
			fmt.Sprintf("push constant size mismatch: got %d want %d", len(data), len(a.pushConstants))))
	}
	copy(a.pushConstants, data)
	return nil
}

// RebindBuffers updates the already-allocated descriptor set with a new
// buffer list of the same length, so producer/consumer buffers can swap
// between iterations without recreating the pipeline.
func (a *Algorithm) RebindBuffers(buffers []*Buffer) error {
	if len(buffers) != a.numBuffers {
		return newError("rebind_buffers", KindInvalidSpirv, vkapi.NewValidationError("buffers",
			fmt.Sprintf("buffer count mismatch: got %d want %d", len(buffers), a.numBuffers)))
	}
	return a.writeBufferBindings(buffers)
}

// RecordBind emits bind-pipeline and bind-descriptor-set into cmd.
func (a *Algorithm) RecordBind(cmd vkapi.CommandBuffer) {
	vkapi.CmdBindPipeline(cmd, vkapi.PipelineBindPointCompute, a.pipeline)
	vkapi.CmdBindDescriptorSets(cmd, vkapi.PipelineBindPointCompute, a.layout, 0, []vkapi.DescriptorSet{a.set}, nil)
}

// RecordPush emits a push-constants update into cmd if the algorithm
// declared a non-zero push size.
func (a *Algorithm) RecordPush(cmd vkapi.CommandBuffer) {
	if len(a.pushConstants) == 0 {
		return
	}
	vkapi.CmdPushConstants(cmd, a.layout, vkapi.ShaderStageComputeBit, 0, a.pushConstants)
}

// RecordDispatch emits dispatch(nBlocks, 1, 1) into cmd.
func (a *Algorithm) RecordDispatch(cmd vkapi.CommandBuffer, nBlocks uint32) {
	vkapi.CmdDispatch(cmd, nBlocks, 1, 1)
}

func (a *Algorithm) destroyPartial() {
	dev := a.dc.Device()
	if a.pipeline != nil {
		vkapi.DestroyPipeline(dev, a.pipeline)
	}
	if a.cache != nil {
		vkapi.DestroyPipelineCache(dev, a.cache)
	}
	if a.layout != nil {
		vkapi.DestroyPipelineLayout(dev, a.layout)
	}
	if a.pool != nil {
		vkapi.DestroyDescriptorPool(dev, a.pool)
	}
	if a.setLayout != nil {
		vkapi.DestroyDescriptorSetLayout(dev, a.setLayout)
	}
	if a.shaderModule != nil {
		vkapi.DestroyShaderModule(dev, a.shaderModule)
	}
}

// Close frees every Vulkan object the Algorithm owns.
func (a *Algorithm) Close() {
	a.destroyPartial()
	a.log.Debug().Msg("algorithm destroyed")
}
