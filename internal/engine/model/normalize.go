package model

import (
	"fmt"
	gomath "math"
)

// Normalize moves the mesh so its bounding box is centered at the origin and
// scales it uniformly so the largest axis extent becomes 1.
//
// An empty mesh or one whose positions all coincide has no extent to scale
// by; Normalize then returns ErrDegenerateExtent and leaves the mesh as is.
func Normalize(m *Mesh) error {
	b, ok := ComputeBounds(m.Vertices)
	if !ok {
		return fmt.Errorf("%w: mesh has no vertices", ErrDegenerateExtent)
	}

	extent := b.Size().MaxComponent()
	if !(extent > 0) || gomath.IsInf(float64(extent), 0) {
		return fmt.Errorf("%w: maximal extent is %v", ErrDegenerateExtent, extent)
	}

	center := b.Center()
	scale := 1 / extent

	for i := range m.Vertices {
		p := m.Vertices[i].Position
		m.Vertices[i].Position = [3]float32{
			(p[0] - center.X) * scale,
			(p[1] - center.Y) * scale,
			(p[2] - center.Z) * scale,
		}
	}

	m.Bounds = b
	m.Center = center
	m.Normalized = true
	return nil
}
