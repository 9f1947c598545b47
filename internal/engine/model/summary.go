package model

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Summarize returns a human-readable report of the mesh counts and center.
func Summarize(m *Mesh) string {
	var sb strings.Builder
	sb.WriteString("[*] Mesh Information:\n")
	fmt.Fprintf(&sb, "# Vertices: %d\n", m.NumVertices())
	fmt.Fprintf(&sb, "# Triangles: %d\n", m.NumTriangles())
	fmt.Fprintf(&sb, "Center: (%g , %g , %g)\n", m.Center.X, m.Center.Y, m.Center.Z)
	return sb.String()
}

// LogFields returns the summary as structured log fields.
func (m *Mesh) LogFields() []zap.Field {
	return []zap.Field{
		zap.Int("vertices", m.NumVertices()),
		zap.Int("triangles", m.NumTriangles()),
		zap.Float32s("center", []float32{m.Center.X, m.Center.Y, m.Center.Z}),
		zap.Bool("normalized", m.Normalized),
		zap.Int("warnings", len(m.Warnings)),
	}
}
