//go:build !android

package compute

// DefaultShaderSearchPath is the configurable base directory used
// outside Android.
const DefaultShaderSearchPath = "./shaders"
