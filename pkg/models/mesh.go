// Package models provides mesh loading and representation for turntable.
package models

import (
	"errors"
	"fmt"

	"github.com/taigrr/turntable/pkg/math3d"
)

// ErrEmptyMesh is returned when a loaded model has no drawable triangles.
var ErrEmptyMesh = errors.New("mesh has no triangles")

// Mesh is an indexed triangle mesh. It is read-only once loaded.
type Mesh struct {
	Name     string
	Vertices []MeshVertex
	Faces    []Face

	// Skipped counts faces dropped while loading: polygons that are not
	// triangles and triangles that repeat a vertex index.
	Skipped int

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// MeshVertex holds the attributes of one vertex.
type MeshVertex struct {
	Position math3d.Vec3
	Normal   math3d.Vec3
}

// Face is a triangle referencing three distinct vertices.
type Face struct {
	V [3]int // Indices into Mesh.Vertices
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:     name,
		Vertices: make([]MeshVertex, 0),
		Faces:    make([]Face, 0),
	}
}

// AddVertex appends a vertex and returns its index.
func (m *Mesh) AddVertex(pos math3d.Vec3) int {
	m.Vertices = append(m.Vertices, MeshVertex{Position: pos})
	return len(m.Vertices) - 1
}

// AddFace appends a triangle. Polygons with any other number of indices and
// triangles with a repeated index are skipped, never triangulated; the
// return value reports whether the face was kept.
func (m *Mesh) AddFace(indices ...int) bool {
	if len(indices) != 3 {
		m.Skipped++
		return false
	}
	a, b, c := indices[0], indices[1], indices[2]
	if a == b || b == c || a == c {
		m.Skipped++
		return false
	}
	m.Faces = append(m.Faces, Face{V: [3]int{a, b, c}})
	return true
}

// Validate checks that the mesh has triangles and that every face index
// refers to an existing vertex.
func (m *Mesh) Validate() error {
	if len(m.Faces) == 0 {
		return ErrEmptyMesh
	}
	n := len(m.Vertices)
	for i, f := range m.Faces {
		for _, idx := range f.V {
			if idx < 0 || idx >= n {
				return fmt.Errorf("face %d: vertex index %d out of range [0,%d)", i, idx, n)
			}
		}
	}
	return nil
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		return
	}

	m.BoundsMin = m.Vertices[0].Position
	m.BoundsMax = m.Vertices[0].Position

	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v.Position)
		m.BoundsMax = m.BoundsMax.Max(v.Position)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// Positions returns a copy of the vertex positions.
func (m *Mesh) Positions() []math3d.Vec3 {
	out := make([]math3d.Vec3, len(m.Vertices))
	for i, v := range m.Vertices {
		out[i] = v.Position
	}
	return out
}

// CalculateSmoothNormals replaces every vertex normal with the normalized
// sum of the unnormalized normals of its adjacent faces.
func (m *Mesh) CalculateSmoothNormals() {
	normals := EstimateNormals(m.Positions(), m.Faces)
	for i := range m.Vertices {
		m.Vertices[i].Normal = normals[i]
	}
}

// Fit centers the bounding box on the origin and scales the mesh uniformly
// so its largest extent equals size. It returns the scale factor applied.
// A mesh without extent is only centered.
func (m *Mesh) Fit(size float64) float64 {
	m.CalculateBounds()
	center := m.Center()
	scale := 1.0
	if extent := m.Size().MaxComponent(); extent > 0 && size > 0 {
		scale = size / extent
	}
	m.Transform(math3d.ScaleUniform(scale).Mul(math3d.Translate(center.Negate())))
	return scale
}

// Transform applies a transformation matrix to all vertices.
// Normals use the linear part only, which is exact for rotations and
// uniform scales.
func (m *Mesh) Transform(mat math3d.Mat4) {
	for i := range m.Vertices {
		m.Vertices[i].Position = mat.MulVec3(m.Vertices[i].Position)
		m.Vertices[i].Normal = mat.MulVec3Dir(m.Vertices[i].Normal).Normalize()
	}
	m.CalculateBounds()
}

// Clone creates a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	clone := &Mesh{
		Name:      m.Name,
		Vertices:  make([]MeshVertex, len(m.Vertices)),
		Faces:     make([]Face, len(m.Faces)),
		Skipped:   m.Skipped,
		BoundsMin: m.BoundsMin,
		BoundsMax: m.BoundsMax,
	}
	copy(clone.Vertices, m.Vertices)
	copy(clone.Faces, m.Faces)
	return clone
}

// GetVertex returns the position and normal for vertex i.
// Implements render.MeshRenderer interface.
func (m *Mesh) GetVertex(i int) (pos, normal math3d.Vec3) {
	v := m.Vertices[i]
	return v.Position, v.Normal
}

// GetFace returns the vertex indices for face i.
// Implements render.MeshRenderer interface.
func (m *Mesh) GetFace(i int) [3]int {
	return m.Faces[i].V
}
