package models

import (
	"encoding/binary"
	"math"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
)

func TestLoadGLBInvalidPath(t *testing.T) {
	_, err := LoadGLB("/nonexistent/path.glb")
	if err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestGLTFLoaderCreation(t *testing.T) {
	loader := NewGLTFLoader()
	if loader == nil {
		t.Fatal("NewGLTFLoader returned nil")
	}
	if loader.ReverseWinding {
		t.Error("ReverseWinding should default to false")
	}
}

// writeQuadGLB writes a unit quad made of two indexed triangles.
func writeQuadGLB(t *testing.T) string {
	t.Helper()
	return writeGLB(t, quadDocument())
}

func writeGLB(t *testing.T, doc *gltf.Document) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "model.glb")
	if err := gltf.SaveBinary(doc, path); err != nil {
		t.Fatalf("SaveBinary: %v", err)
	}
	return path
}

func quadDocument() *gltf.Document {
	positions := [][3]float32{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}
	indices := []uint16{0, 1, 2, 0, 2, 3}

	var data []byte
	for _, p := range positions {
		for _, c := range p {
			data = binary.LittleEndian.AppendUint32(data, math.Float32bits(c))
		}
	}
	posLen := len(data)
	for _, i := range indices {
		data = binary.LittleEndian.AppendUint16(data, i)
	}

	doc := gltf.NewDocument()
	doc.Buffers = []*gltf.Buffer{{ByteLength: len(data), Data: data}}
	doc.BufferViews = []*gltf.BufferView{
		{Buffer: 0, ByteOffset: 0, ByteLength: posLen},
		{Buffer: 0, ByteOffset: posLen, ByteLength: len(data) - posLen},
	}
	doc.Accessors = []*gltf.Accessor{
		{BufferView: gltf.Index(0), Count: len(positions), Type: gltf.AccessorVec3, ComponentType: gltf.ComponentFloat},
		{BufferView: gltf.Index(1), Count: len(indices), Type: gltf.AccessorScalar, ComponentType: gltf.ComponentUshort},
	}
	doc.Meshes = []*gltf.Mesh{{
		Name: "quad",
		Primitives: []*gltf.Primitive{{
			Attributes: map[string]int{gltf.POSITION: 0},
			Indices:    gltf.Index(1),
		}},
	}}
	return doc
}

func TestLoadGLBQuad(t *testing.T) {
	path := writeQuadGLB(t)

	mesh, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if mesh.VertexCount() != 4 {
		t.Errorf("VertexCount = %d, want 4", mesh.VertexCount())
	}
	if mesh.TriangleCount() != 2 {
		t.Fatalf("TriangleCount = %d, want 2", mesh.TriangleCount())
	}
	if got := mesh.GetFace(1); got != [3]int{0, 2, 3} {
		t.Errorf("face 1 = %v, want [0 2 3]", got)
	}
	// CCW in the XY plane: normals point towards +Z.
	for i, v := range mesh.Vertices {
		if math.Abs(v.Normal.Z-1) > 1e-9 {
			t.Errorf("vertex %d normal = %+v, want +Z", i, v.Normal)
		}
	}
}

func TestLoadGLBReverseWinding(t *testing.T) {
	path := writeQuadGLB(t)

	loader := &GLTFLoader{ReverseWinding: true}
	mesh, err := loader.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := mesh.GetFace(0); got != [3]int{0, 2, 1} {
		t.Errorf("face 0 = %v, want [0 2 1]", got)
	}
	if mesh.Vertices[0].Normal.Z > -0.99 {
		t.Errorf("reversed normal = %+v, want -Z", mesh.Vertices[0].Normal)
	}
}

func TestLoadUnsupportedExtension(t *testing.T) {
	if _, err := Load("model.stl"); err == nil {
		t.Error("expected error for .stl")
	}
}

func TestLoadGLBBadReferences(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(doc *gltf.Document)
	}{
		{"buffer view out of range", func(doc *gltf.Document) {
			doc.Accessors[0].BufferView = gltf.Index(5)
		}},
		{"index buffer view out of range", func(doc *gltf.Document) {
			doc.Accessors[1].BufferView = gltf.Index(2)
		}},
		{"buffer out of range", func(doc *gltf.Document) {
			doc.BufferViews[1].Buffer = 3
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			doc := quadDocument()
			tc.mutate(doc)
			path := writeGLB(t, doc)

			if _, err := LoadGLB(path); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}
