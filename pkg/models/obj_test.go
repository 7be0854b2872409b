package models

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const tetraOBJ = `# tetrahedron
v 0 0 0
v 1 0 0
v 0 1 0
v 0 0 1
vn 0 0 1
f 1 3 2
f 1/1 2/2 4/4
f 1//1 4//1 3//1
f 2/1/1 3/1/1 4/1/1
`

func TestParseOBJ(t *testing.T) {
	mesh, err := ParseOBJ(strings.NewReader(tetraOBJ), "tetra")
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	if mesh.VertexCount() != 4 || mesh.TriangleCount() != 4 {
		t.Fatalf("got %d vertices, %d faces; want 4, 4", mesh.VertexCount(), mesh.TriangleCount())
	}
	if got := mesh.GetFace(0); got != [3]int{0, 2, 1} {
		t.Errorf("face 0 = %v, want [0 2 1]", got)
	}
	for i, v := range mesh.Vertices {
		if math.Abs(v.Normal.Len()-1) > 1e-9 {
			t.Errorf("vertex %d normal length = %v", i, v.Normal.Len())
		}
	}
}

func TestParseOBJSkipsNonTriangles(t *testing.T) {
	src := `v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
f 1 2 3 4
f 1 2
f 1 1 2
f 1 2 3
`
	mesh, err := ParseOBJ(strings.NewReader(src), "quad")
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	if mesh.TriangleCount() != 1 {
		t.Errorf("TriangleCount = %d, want 1", mesh.TriangleCount())
	}
	if mesh.Skipped != 3 {
		t.Errorf("Skipped = %d, want 3", mesh.Skipped)
	}
}

func TestParseOBJNegativeIndices(t *testing.T) {
	src := `v 0 0 0
v 1 0 0
v 0 1 0
f -3 -2 -1
v 5 5 5
f -4 -1 -2
`
	mesh, err := ParseOBJ(strings.NewReader(src), "neg")
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	want := [][3]int{{0, 1, 2}, {0, 3, 2}}
	for i, w := range want {
		if got := mesh.GetFace(i); got != w {
			t.Errorf("face %d = %v, want %v", i, got, w)
		}
	}
}

func TestParseOBJErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"out of range", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 4\n"},
		{"zero index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n"},
		{"bad number", "v 0 x 0\n"},
		{"short vertex", "v 0 0\n"},
		{"no faces", "v 0 0 0\nv 1 0 0\nv 0 1 0\n"},
		{"only quads", "v 0 0 0\nv 1 0 0\nv 1 1 0\nv 0 1 0\nf 1 2 3 4\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseOBJ(strings.NewReader(tt.src), tt.name); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadOBJFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tetra.obj")
	if err := os.WriteFile(path, []byte(tetraOBJ), 0o644); err != nil {
		t.Fatal(err)
	}

	mesh, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if mesh.Name != "tetra.obj" {
		t.Errorf("Name = %q", mesh.Name)
	}
	if _, err := LoadOBJ(filepath.Join(t.TempDir(), "missing.obj")); err == nil {
		t.Error("expected error for missing file")
	}
}
