package models

import (
	"fmt"
	"math"
	"strings"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/taigrr/turntable/pkg/math3d"
)

// Primitives lists the names accepted by Primitive.
var Primitives = []string{"sphere", "box", "cylinder"}

// DefaultCells is the marching cubes resolution along the longest axis.
const DefaultCells = 48

// Primitive builds a procedural mesh by polygonising a signed distance
// function. Coincident marching-cubes vertices are welded so that the
// estimated normals come out smooth.
func Primitive(name string, cells int) (*Mesh, error) {
	if cells <= 0 {
		cells = DefaultCells
	}

	s, err := primitiveSDF(strings.ToLower(name))
	if err != nil {
		return nil, fmt.Errorf("primitive %q: %w", name, err)
	}

	tris := render.ToTriangles(s, render.NewMarchingCubesUniform(cells))

	mesh := NewMesh(name)
	index := make(map[[3]int64]int)
	for _, tri := range tris {
		var ids [3]int
		for j := range 3 {
			p := tri[j]
			key := weldKey(p)
			id, ok := index[key]
			if !ok {
				id = mesh.AddVertex(math3d.V3(p.X, p.Y, p.Z))
				index[key] = id
			}
			ids[j] = id
		}
		mesh.AddFace(ids[:]...)
	}

	if err := mesh.Validate(); err != nil {
		return nil, fmt.Errorf("primitive %q: %w", name, err)
	}

	mesh.CalculateSmoothNormals()
	mesh.CalculateBounds()
	return mesh, nil
}

// weldKey snaps a position to a fine grid so that vertices computed
// separately by neighbouring cubes compare equal.
func weldKey(p v3.Vec) [3]int64 {
	const q = 1e9
	return [3]int64{
		int64(math.Round(p.X * q)),
		int64(math.Round(p.Y * q)),
		int64(math.Round(p.Z * q)),
	}
}

func primitiveSDF(name string) (sdf.SDF3, error) {
	switch name {
	case "sphere":
		return sdf.Sphere3D(1)
	case "box":
		return sdf.Box3D(v3.Vec{X: 2, Y: 2, Z: 2}, 0.1)
	case "cylinder":
		return sdf.Cylinder3D(2, 1, 0.1)
	default:
		return nil, fmt.Errorf("unknown primitive (want one of %s)", strings.Join(Primitives, ", "))
	}
}
