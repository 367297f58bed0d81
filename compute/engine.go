package compute

import (
	"github.com/rs/zerolog"

	"github.com/xuyanwen2012/splinetree-substrate/vkapi"
)

// EngineOption configures a new Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	manageResources bool
}

// WithUnmanagedResources opts an Engine out of resource tracking:
// resources it hands out must be torn down by the caller, not Engine.
func WithUnmanagedResources() EngineOption {
	return func(o *engineOptions) { o.manageResources = false }
}

// trackable is anything Engine can force-close during teardown.
type trackable interface {
	Close()
}

// Engine is a factory over DeviceContext/Allocator that exclusively owns
// both, and keeps a reference to every Buffer/Algorithm/Sequence it hands
// out so it can force deterministic teardown in reverse creation order
// even if the caller drops handles out of order.
type Engine struct {
	log   zerolog.Logger
	dc    *DeviceContext
	alloc *Allocator

	shaderLoader *ShaderLoader

	opts engineOptions

	buffers    []trackable
	algorithms []trackable
	sequences  []trackable
}

// NewEngine builds a fresh DeviceContext and Allocator and returns an
// Engine bound to them.
func NewEngine(log zerolog.Logger, shaderLoader *ShaderLoader, opts ...EngineOption) (*Engine, error) {
	o := engineOptions{manageResources: true}
	for _, opt := range opts {
		opt(&o)
	}

	dc, err := NewDeviceContext(log)
	if err != nil {
		return nil, err
	}
	alloc := NewAllocator(dc, log)

	return &Engine{
		log:          log.With().Str("component", "engine").Logger(),
		dc:           dc,
		alloc:        alloc,
		shaderLoader: shaderLoader,
		opts:         o,
	}, nil
}

// Buffer allocates a DefaultBufferUsage storage buffer of size bytes.
func (e *Engine) Buffer(size int) (*Buffer, error) {
	b, err := e.alloc.NewBuffer(size, DefaultBufferUsage)
	if err != nil {
		return nil, err
	}
	if e.opts.manageResources {
		e.buffers = append(e.buffers, b)
	}
	return b, nil
}

// EngineTypedBuffer allocates a storage buffer sized for n elements of T.
func EngineTypedBuffer[T any](e *Engine, n int) (*TypedBuffer[T], error) {
	b, err := NewTypedBufferOf[T](e.alloc, n, DefaultBufferUsage)
	if err != nil {
		return nil, err
	}
	if e.opts.manageResources {
		e.buffers = append(e.buffers, b)
	}
	return b, nil
}

// Algorithm builds an Algorithm bound to buffers, loading spirvName
// through the engine's shader loader.
func (e *Engine) Algorithm(spirvName string, buffers []*Buffer, pushConstantSize int) (*Algorithm, error) {
	a, err := NewAlgorithm(e.dc, e.shaderLoader, spirvName, buffers, pushConstantSize, e.log)
	if err != nil {
		return nil, err
	}
	if e.opts.manageResources {
		e.algorithms = append(e.algorithms, a)
	}
	return a, nil
}

// Sequence builds a fresh command-pool/command-buffer/fence triple.
func (e *Engine) Sequence() (*Sequence, error) {
	s, err := NewSequence(e.dc, e.log)
	if err != nil {
		return nil, err
	}
	if e.opts.manageResources {
		e.sequences = append(e.sequences, s)
	}
	return s, nil
}

// Allocator exposes the engine's allocator, primarily so tests can assert
// LiveAllocations after Close.
func (e *Engine) Allocator() *Allocator { return e.alloc }

// DeviceContext exposes the engine's device context.
func (e *Engine) DeviceContext() *DeviceContext { return e.dc }

// Close tears down every still-live tracked resource — sequences first,
// then algorithms, then buffers, each in reverse creation order — then
// destroys the DeviceContext. The Allocator owns no Vulkan object of its
// own, so it has nothing further to destroy. Vulkan forbids
// destroying the device before its child objects; this order enforces
// that regardless of what order user code dropped its handles in.
func (e *Engine) Close() {
	closeAllReverse(e.sequences)
	closeAllReverse(e.algorithms)
	closeAllReverse(e.buffers)
	e.sequences, e.algorithms, e.buffers = nil, nil, nil

	vkapi.DeviceWaitIdle(e.dc.Device())
	e.dc.Close()
	e.log.Info().Msg("engine torn down")
}

func closeAllReverse(items []trackable) {
	for i := len(items) - 1; i >= 0; i-- {
		items[i].Close()
	}
}
