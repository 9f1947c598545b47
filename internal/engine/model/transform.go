package model

import "github.com/Faultbox/objview/pkg/math"

// ApplyTransform projects every vertex position through mvp in place,
// dividing by the resulting w. A vertex whose w comes out exactly 0 cannot be
// projected and keeps its position; the number of such vertices is returned.
func ApplyTransform(m *Mesh, mvp math.Mat4) (skipped int) {
	for i := range m.Vertices {
		p := mvp.MulVec4(math.Point(math.Vec3FromArray(m.Vertices[i].Position)))
		if p[3] == 0 {
			skipped++
			continue
		}
		inv := 1 / p[3]
		m.Vertices[i].Position = [3]float32{p[0] * inv, p[1] * inv, p[2] * inv}
	}
	return skipped
}
