package models

import "github.com/taigrr/turntable/pkg/math3d"

// EstimateNormals derives per-vertex normals from triangle geometry.
//
// Each face contributes its unnormalized normal (v1-v0)×(v2-v0), so larger
// faces weigh more and the direction follows the vertex winding. The sums
// are normalized at the end; a vertex whose sum is exactly zero (unused or
// only touching degenerate faces) gets the zero vector.
func EstimateNormals(positions []math3d.Vec3, faces []Face) []math3d.Vec3 {
	acc := make([]math3d.Vec3, len(positions))

	for _, f := range faces {
		v0 := positions[f.V[0]]
		v1 := positions[f.V[1]]
		v2 := positions[f.V[2]]

		n := v1.Sub(v0).Cross(v2.Sub(v0))
		for _, idx := range f.V {
			acc[idx] = acc[idx].Add(n)
		}
	}

	for i := range acc {
		acc[i] = acc[i].Normalize()
	}
	return acc
}
