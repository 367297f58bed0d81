//go:build android

package compute

// DefaultShaderSearchPath is the shader search root on Android.
const DefaultShaderSearchPath = "/data/local/tmp"
