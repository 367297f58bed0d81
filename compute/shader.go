package compute

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuyanwen2012/splinetree-substrate/vkapi"
)

// spirvMagic is the required first 32-bit little-endian word of a SPIR-V
// module.
const spirvMagic = 0x07230203

// ShaderLoader resolves SPIR-V filenames under a search path and
// validates their magic number before an Algorithm is built from them.
type ShaderLoader struct {
	baseDir string
}

// NewShaderLoader returns a loader rooted at baseDir.
func NewShaderLoader(baseDir string) *ShaderLoader {
	return &ShaderLoader{baseDir: baseDir}
}

// Path resolves name (e.g. "morton.spv") under the loader's search path.
func (l *ShaderLoader) Path(name string) string {
	return filepath.Join(l.baseDir, name)
}

// Load reads a SPIR-V module from name under the search path, validates
// its magic number and 4-byte alignment, and returns it as a slice of
// 32-bit words ready for vkapi.ShaderModuleCreateInfo.
func (l *ShaderLoader) Load(name string) ([]uint32, error) {
	path := l.Path(name)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, newError("load_spirv", KindShaderNotFound, fmt.Errorf("%s: %w", path, err))
	}
	if len(data)%4 != 0 {
		return nil, newError("load_spirv", KindInvalidSpirv, vkapi.NewValidationError("name",
			fmt.Sprintf("%s: size %d not 4-byte aligned", path, len(data))))
	}
	if len(data) < 4 {
		return nil, newError("load_spirv", KindInvalidSpirv, vkapi.NewValidationError("name", fmt.Sprintf("%s: file too small", path)))
	}
	if binary.LittleEndian.Uint32(data[:4]) != spirvMagic {
		return nil, newError("load_spirv", KindInvalidSpirv, vkapi.NewValidationError("name", fmt.Sprintf("%s: bad SPIR-V magic", path)))
	}

	words := make([]uint32, len(data)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(data[i*4 : i*4+4])
	}
	return words, nil
}
