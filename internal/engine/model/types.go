// Package model builds indexed triangle meshes from OBJ geometry and prepares
// them for upload: vertex deduplication, normalization into a unit cube and
// CPU-side projection.
package model

import (
	"errors"

	"github.com/Faultbox/objview/pkg/math"
)

// Mesh errors. ErrCannotOpen is fatal to a load; the others are recorded as
// warnings on the Mesh.
var (
	ErrCannotOpen       = errors.New("cannot open mesh file")
	ErrIndexOutOfRange  = errors.New("face index out of range")
	ErrDegenerateExtent = errors.New("degenerate bounding box")
)

// Vertex is the unit of rendering. The layout is uploaded as-is:
// 3 floats position, 2 floats texcoord, 3 floats normal (32 bytes).
type Vertex struct {
	Position [3]float32
	TexCoord [2]float32
	Normal   [3]float32
}

// VertexKey identifies a unique combination of 0-based attribute indices.
// Two face corners with equal keys share one emitted vertex.
type VertexKey struct {
	Pos    int
	UV     int
	Normal int
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Center returns the midpoint of the box.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the per-axis extent.
func (b Bounds) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// Mesh holds deduplicated vertices and a triangle index list.
//
// Invariants: every index is < NumVertices() and len(Indices) is a multiple
// of three.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32

	// Bounds and Center describe the positions as loaded, before any
	// normalization or transform.
	Bounds Bounds
	Center math.Vec3

	// Normalized is set once Normalize has rescaled the positions.
	Normalized bool

	// Warnings collects every recoverable problem met while loading.
	Warnings []error
}

// NumVertices returns the number of unique vertices.
func (m *Mesh) NumVertices() int {
	return len(m.Vertices)
}

// NumTriangles returns the number of triangles.
func (m *Mesh) NumTriangles() int {
	return len(m.Indices) / 3
}

// NumIndices returns the length of the triangle index list.
func (m *Mesh) NumIndices() int {
	return len(m.Indices)
}

// Clone returns a copy whose vertex data can be transformed without
// touching m. Indices and warnings are shared.
func (m *Mesh) Clone() *Mesh {
	c := *m
	c.Vertices = append([]Vertex(nil), m.Vertices...)
	return &c
}

// LoadOptions controls Load.
type LoadOptions struct {
	// Normalize centers the mesh at the origin and scales its largest
	// extent to 1.
	Normalize bool
}
