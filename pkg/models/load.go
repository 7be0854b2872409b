package models

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Load reads a mesh file, choosing the loader by extension.
func Load(path string) (*Mesh, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".obj":
		return LoadOBJ(path)
	case ".glb", ".gltf":
		return LoadGLB(path)
	default:
		return nil, fmt.Errorf("unsupported model format %q (use .obj, .glb or .gltf)", ext)
	}
}
