package compute

import "fmt"

// Registry holds named, shared buffers consumed by both the
// CPU block-range path and GPU kernels — the keys successive pipeline
// stages pass between each other (u_points, u_morton, u_edge_counts,
// ...). Every consumer sees the same physical memory via
// either the host byte view or the Vulkan descriptor the Buffer exposes.
type Registry struct {
	buffers map[string]*Buffer
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{buffers: make(map[string]*Buffer)}
}

// Put registers buf under key, replacing anything already registered
// there.
func (r *Registry) Put(key string, buf *Buffer) {
	r.buffers[key] = buf
}

// Get looks up the buffer registered under key.
func (r *Registry) Get(key string) (*Buffer, error) {
	b, ok := r.buffers[key]
	if !ok {
		return nil, fmt.Errorf("pipe registry: key %q not found", key)
	}
	return b, nil
}

// Keys returns every registered key.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.buffers))
	for k := range r.buffers {
		keys = append(keys, k)
	}
	return keys
}
