package model

import (
	"errors"
	"fmt"
	"sort"

	"github.com/Faultbox/objview/pkg/formats"
	"github.com/Faultbox/objview/pkg/math"
)

// BuildMesh fan-triangulates every face of obj and merges face corners into
// a deduplicated vertex list. A face that references a missing attribute is
// skipped as a whole and reported in Mesh.Warnings together with the
// parser's own warnings.
func BuildMesh(obj *formats.OBJ) *Mesh {
	ix := newIndexer(obj)

	var warnings []error
	warnings = append(warnings, obj.Warnings...)

	for _, face := range obj.Faces {
		if err := ix.checkFace(face); err != nil {
			warnings = append(warnings, err)
			continue
		}

		// Fan from corner 0: (0, i, i+1).
		for i := 1; i < len(face.Corners)-1; i++ {
			ix.emit(face.Corners[0])
			ix.emit(face.Corners[i])
			ix.emit(face.Corners[i+1])
		}
	}

	sortByLine(warnings)

	mesh := ix.mesh
	mesh.Warnings = warnings
	if b, ok := ComputeBounds(mesh.Vertices); ok {
		mesh.Bounds = b
		mesh.Center = b.Center()
	}
	return mesh
}

// indexer maps vertex keys to emitted vertex slots.
type indexer struct {
	obj   *formats.OBJ
	slots map[VertexKey]uint32
	mesh  *Mesh
}

func newIndexer(obj *formats.OBJ) *indexer {
	corners := 3 * obj.TriangleCount()
	return &indexer{
		obj:   obj,
		slots: make(map[VertexKey]uint32, corners/2),
		mesh: &Mesh{
			Indices: make([]uint32, 0, corners),
		},
	}
}

// checkFace bounds-checks every corner before anything of the face is emitted.
func (ix *indexer) checkFace(face formats.OBJFace) error {
	for i, c := range face.Corners {
		var err error
		switch {
		case c.Pos > len(ix.obj.Positions):
			err = fmt.Errorf("%w: corner %d: position %d of %d", ErrIndexOutOfRange, i, c.Pos, len(ix.obj.Positions))
		case c.UV > len(ix.obj.TexCoords):
			err = fmt.Errorf("%w: corner %d: texcoord %d of %d", ErrIndexOutOfRange, i, c.UV, len(ix.obj.TexCoords))
		case c.Normal > len(ix.obj.Normals):
			err = fmt.Errorf("%w: corner %d: normal %d of %d", ErrIndexOutOfRange, i, c.Normal, len(ix.obj.Normals))
		}
		if err != nil {
			return &formats.LineError{Line: face.Line, Err: err}
		}
	}
	return nil
}

// emit appends the slot of corner c to the index list, materializing a new
// vertex the first time its key is seen.
func (ix *indexer) emit(c formats.OBJCorner) {
	key := VertexKey{Pos: c.Pos - 1, UV: c.UV - 1, Normal: c.Normal - 1}

	slot, ok := ix.slots[key]
	if !ok {
		slot = uint32(len(ix.mesh.Vertices))
		ix.slots[key] = slot
		ix.mesh.Vertices = append(ix.mesh.Vertices, Vertex{
			Position: ix.obj.Positions[key.Pos],
			TexCoord: ix.obj.TexCoords[key.UV],
			Normal:   ix.obj.Normals[key.Normal],
		})
	}
	ix.mesh.Indices = append(ix.mesh.Indices, slot)
}

// ComputeBounds returns the bounding box of all vertex positions.
// ok is false for an empty slice.
func ComputeBounds(vertices []Vertex) (b Bounds, ok bool) {
	if len(vertices) == 0 {
		return Bounds{}, false
	}

	b.Min = math.Vec3FromArray(vertices[0].Position)
	b.Max = b.Min
	for i := 1; i < len(vertices); i++ {
		p := math.Vec3FromArray(vertices[i].Position)
		b.Min = b.Min.Min(p)
		b.Max = b.Max.Max(p)
	}
	return b, true
}

// sortByLine orders line-tagged warnings by source line, keeping the relative
// order of everything else.
func sortByLine(warnings []error) {
	line := func(err error) int {
		var le *formats.LineError
		if errors.As(err, &le) {
			return le.Line
		}
		return 0
	}
	sort.SliceStable(warnings, func(i, j int) bool {
		return line(warnings[i]) < line(warnings[j])
	})
}
