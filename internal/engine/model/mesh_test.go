package model

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/Faultbox/objview/pkg/formats"
)

const triangleOBJ = `v 0 0 0
v 1 0 0
v 0 1 0
vt 0 0
vt 1 0
vt 0 1
vn 0 0 1
f 1/1/1 2/2/1 3/3/1
`

// buildFromString parses src and builds a mesh, failing the test on a read error.
func buildFromString(t *testing.T, src string) *Mesh {
	t.Helper()
	obj, err := formats.ParseOBJ(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}
	return BuildMesh(obj)
}

// checkInvariants verifies the index list is well formed.
func checkInvariants(t *testing.T, m *Mesh) {
	t.Helper()
	if len(m.Indices)%3 != 0 {
		t.Errorf("index count %d is not a multiple of 3", len(m.Indices))
	}
	if m.NumTriangles() != len(m.Indices)/3 {
		t.Errorf("NumTriangles() = %d, want %d", m.NumTriangles(), len(m.Indices)/3)
	}
	for i, idx := range m.Indices {
		if int(idx) >= m.NumVertices() {
			t.Errorf("index %d = %d out of range (%d vertices)", i, idx, m.NumVertices())
		}
	}
}

func TestBuildMesh_Triangle(t *testing.T) {
	m := buildFromString(t, triangleOBJ)
	checkInvariants(t, m)

	if m.NumVertices() != 3 {
		t.Errorf("expected 3 vertices, got %d", m.NumVertices())
	}
	if m.NumTriangles() != 1 {
		t.Errorf("expected 1 triangle, got %d", m.NumTriangles())
	}
	want := []uint32{0, 1, 2}
	for i := range want {
		if m.Indices[i] != want[i] {
			t.Errorf("indices: got %v, want %v", m.Indices, want)
			break
		}
	}

	v := m.Vertices[1]
	if v.Position != [3]float32{1, 0, 0} || v.TexCoord != [2]float32{1, 0} || v.Normal != [3]float32{0, 0, 1} {
		t.Errorf("vertex 1 materialized wrong: %+v", v)
	}
}

func TestBuildMesh_QuadDeduplication(t *testing.T) {
	src := `v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 1
f 1/1/1 2/2/1 3/3/1 4/4/1
`
	m := buildFromString(t, src)
	checkInvariants(t, m)

	// Fan triangulation of 4 corners uses each corner key once; corner 0
	// and 2 are shared between the two triangles.
	if m.NumVertices() != 4 {
		t.Errorf("expected 4 unique vertices, got %d", m.NumVertices())
	}
	if m.NumTriangles() != 2 {
		t.Errorf("expected 2 triangles, got %d", m.NumTriangles())
	}

	want := []uint32{0, 1, 2, 0, 2, 3}
	if fmt.Sprint(m.Indices) != fmt.Sprint(want) {
		t.Errorf("indices: got %v, want %v", m.Indices, want)
	}
}

func TestBuildMesh_SharedKeysAcrossFaces(t *testing.T) {
	src := `v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vn 0 0 1
vn 0 0 -1
f 1/1/1 2/1/1 3/1/1
f 1/1/1 3/1/1 4/1/1
f 1/1/2 2/1/2 3/1/2
`
	m := buildFromString(t, src)
	checkInvariants(t, m)

	// Faces 1 and 2 share keys (0,0,0) and (2,0,0); face 3 uses a different
	// normal and therefore three new vertices.
	if m.NumVertices() != 4+3 {
		t.Errorf("expected 7 unique vertices, got %d", m.NumVertices())
	}
	want := []uint32{0, 1, 2, 0, 2, 3, 4, 5, 6}
	if fmt.Sprint(m.Indices) != fmt.Sprint(want) {
		t.Errorf("indices: got %v, want %v", m.Indices, want)
	}
}

func TestBuildMesh_KeysDoNotCollide(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 12; i++ {
		fmt.Fprintf(&sb, "v %d 0 0\n", i)
		fmt.Fprintf(&sb, "vt %d 0\n", i)
	}
	sb.WriteString("vn 0 0 1\n")
	// 0-based keys (1,11,0) and (11,1,0) concatenate to "1110" and "1110".
	sb.WriteString("f 2/12/1 12/2/1 1/1/1\n")

	m := buildFromString(t, sb.String())
	checkInvariants(t, m)

	if m.NumVertices() != 3 {
		t.Fatalf("expected 3 distinct vertices, got %d", m.NumVertices())
	}
	if m.Vertices[0].Position[0] != 1 || m.Vertices[1].Position[0] != 11 {
		t.Errorf("colliding keys merged: %+v", m.Vertices[:2])
	}
}

func TestBuildMesh_FanTriangulation(t *testing.T) {
	for corners := 3; corners <= 8; corners++ {
		t.Run(fmt.Sprintf("%d-gon", corners), func(t *testing.T) {
			var sb strings.Builder
			for i := 0; i < corners; i++ {
				fmt.Fprintf(&sb, "v %d %d 0\n", i, i*i)
			}
			sb.WriteString("vt 0 0\nvn 0 0 1\nf")
			for i := 1; i <= corners; i++ {
				fmt.Fprintf(&sb, " %d/1/1", i)
			}
			sb.WriteString("\n")

			m := buildFromString(t, sb.String())
			checkInvariants(t, m)

			if m.NumTriangles() != corners-2 {
				t.Fatalf("expected %d triangles, got %d", corners-2, m.NumTriangles())
			}
			if m.NumVertices() != corners {
				t.Errorf("expected %d vertices, got %d", corners, m.NumVertices())
			}
			for tri := 0; tri < m.NumTriangles(); tri++ {
				a, b, c := m.Indices[tri*3], m.Indices[tri*3+1], m.Indices[tri*3+2]
				if a != 0 {
					t.Errorf("triangle %d does not start at corner 0: %d", tri, a)
				}
				if b != uint32(tri+1) || c != uint32(tri+2) {
					t.Errorf("triangle %d: got (%d,%d,%d), want (0,%d,%d)", tri, a, b, c, tri+1, tri+2)
				}
			}
		})
	}
}

func TestBuildMesh_IndexOutOfRange(t *testing.T) {
	tests := []struct {
		name string
		face string
	}{
		{"position", "f 1/1/1 2/1/1 9/1/1"},
		{"texcoord", "f 1/1/1 2/5/1 3/1/1"},
		{"normal", "f 1/1/1 2/1/1 3/1/4"},
		{"last corner of quad", "f 1/1/1 2/1/1 3/1/1 7/1/1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := "v 0 0 0\nv 1 0 0\nv 0 1 0\nvt 0 0\nvn 0 0 1\n" + tt.face + "\nf 1/1/1 2/1/1 3/1/1\n"
			m := buildFromString(t, src)
			checkInvariants(t, m)

			// The bad face contributes nothing, the good one still loads.
			if m.NumTriangles() != 1 || m.NumVertices() != 3 {
				t.Errorf("expected 1 triangle and 3 vertices, got %d and %d", m.NumTriangles(), m.NumVertices())
			}
			if len(m.Warnings) != 1 {
				t.Fatalf("expected 1 warning, got %v", m.Warnings)
			}
			if !errors.Is(m.Warnings[0], ErrIndexOutOfRange) {
				t.Errorf("expected ErrIndexOutOfRange, got %v", m.Warnings[0])
			}
			var le *formats.LineError
			if !errors.As(m.Warnings[0], &le) || le.Line != 6 {
				t.Errorf("expected warning on line 6, got %v", m.Warnings[0])
			}
		})
	}
}

func TestBuildMesh_WarningsInLineOrder(t *testing.T) {
	src := `v 0 0 0
v 1 0 0
v 0 1 0
vt 0 0
vn 0 0 1
f 1/1/1 2/1/1 5/1/1
v bad
f 1 2 3
f 1/1/1 2/1/1 3/1/1
`
	m := buildFromString(t, src)

	if len(m.Warnings) != 3 {
		t.Fatalf("expected 3 warnings, got %v", m.Warnings)
	}
	wantLines := []int{6, 7, 8}
	for i, w := range m.Warnings {
		var le *formats.LineError
		if !errors.As(w, &le) {
			t.Fatalf("warning %d is not a LineError: %v", i, w)
		}
		if le.Line != wantLines[i] {
			t.Errorf("warning %d: got line %d, want %d", i, le.Line, wantLines[i])
		}
	}
	if m.NumTriangles() != 1 {
		t.Errorf("expected 1 triangle, got %d", m.NumTriangles())
	}
}

func TestBuildMesh_Empty(t *testing.T) {
	m := buildFromString(t, "# nothing here\n")
	checkInvariants(t, m)

	if m.NumVertices() != 0 || m.NumTriangles() != 0 {
		t.Errorf("expected empty mesh, got %d vertices, %d triangles", m.NumVertices(), m.NumTriangles())
	}
}

func TestBuildMesh_BoundsAndCenter(t *testing.T) {
	m := buildFromString(t, triangleOBJ)

	if m.Bounds.Min.X != 0 || m.Bounds.Max.X != 1 || m.Bounds.Max.Y != 1 || m.Bounds.Max.Z != 0 {
		t.Errorf("unexpected bounds %+v", m.Bounds)
	}
	if m.Center.X != 0.5 || m.Center.Y != 0.5 || m.Center.Z != 0 {
		t.Errorf("unexpected center %+v", m.Center)
	}
	if m.Normalized {
		t.Error("BuildMesh should not normalize")
	}
}

func TestComputeBounds(t *testing.T) {
	if _, ok := ComputeBounds(nil); ok {
		t.Error("expected no bounds for empty slice")
	}

	verts := []Vertex{
		{Position: [3]float32{1, -2, 3}},
		{Position: [3]float32{-1, 5, 0}},
		{Position: [3]float32{0, 0, 9}},
	}
	b, ok := ComputeBounds(verts)
	if !ok {
		t.Fatal("expected bounds")
	}
	if b.Min.X != -1 || b.Min.Y != -2 || b.Min.Z != 0 {
		t.Errorf("min: got %+v", b.Min)
	}
	if b.Max.X != 1 || b.Max.Y != 5 || b.Max.Z != 9 {
		t.Errorf("max: got %+v", b.Max)
	}
}
