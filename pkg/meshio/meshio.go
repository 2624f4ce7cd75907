// Package meshio loads pickable entities from model files.
package meshio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/philipparndt/gopick/pkg/scene"
)

// ErrUnsupportedFormat is returned for files with an unknown extension
var ErrUnsupportedFormat = errors.New("unsupported model format")

// Format identifies a model file format
type Format int

const (
	FormatMeshJSON Format = iota
	FormatSTL
	FormatGLTF
)

func (f Format) String() string {
	switch f {
	case FormatSTL:
		return "stl"
	case FormatGLTF:
		return "gltf"
	default:
		return "mesh-json"
	}
}

// DetectFormat picks the format from the file extension
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".mesh", ".txt":
		return FormatMeshJSON, nil
	case ".stl":
		return FormatSTL, nil
	case ".gltf", ".glb":
		return FormatGLTF, nil
	default:
		return 0, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
}

// Load reads all entities from a model file
func Load(path string) ([]scene.EntityData, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatSTL:
		return LoadSTL(path)
	case FormatGLTF:
		return LoadGLTF(path)
	default:
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open file: %w", err)
		}
		defer f.Close()
		return DecodeMeshes(f)
	}
}

// uniqueID returns base, or base with a numeric suffix when it is taken
func uniqueID(base string, taken map[string]bool) string {
	id := base
	for n := 2; taken[id]; n++ {
		id = fmt.Sprintf("%s-%d", base, n)
	}
	taken[id] = true
	return id
}
