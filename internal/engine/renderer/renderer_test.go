package renderer

import (
	"testing"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/objview/internal/config"
	"github.com/Faultbox/objview/internal/engine/model"
)

func TestVertexLayout(t *testing.T) {
	if vertexStride != 32 {
		t.Errorf("vertex stride = %d, want 32 tightly packed bytes", vertexStride)
	}

	want := []vertexAttribute{
		{0, 3, 0},
		{1, 2, 12},
		{2, 3, 20},
	}
	if len(vertexAttributes) != len(want) {
		t.Fatalf("expected %d attributes, got %d", len(want), len(vertexAttributes))
	}
	for i, a := range vertexAttributes {
		if a != want[i] {
			t.Errorf("attribute %d: got %+v, want %+v", i, a, want[i])
		}
	}

	last := vertexAttributes[len(vertexAttributes)-1]
	if end := last.offset + uintptr(last.size)*unsafe.Sizeof(float32(0)); end != uintptr(vertexStride) {
		t.Errorf("attributes end at %d, stride is %d", end, vertexStride)
	}
}

func TestPolygonMode(t *testing.T) {
	tests := []struct {
		mode    string
		want    uint32
		wantErr bool
	}{
		{config.PolygonPoint, gl.POINT, false},
		{config.PolygonLine, gl.LINE, false},
		{config.PolygonFill, gl.FILL, false},
		{"wire", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := polygonMode(tt.mode)
		if (err != nil) != tt.wantErr {
			t.Errorf("polygonMode(%q) error = %v, wantErr %v", tt.mode, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("polygonMode(%q) = %#x, want %#x", tt.mode, got, tt.want)
		}
	}
}

func TestUploadRejectsEmptyMesh(t *testing.T) {
	r := &Renderer{}
	for _, m := range []*model.Mesh{nil, {}, {Vertices: make([]model.Vertex, 3)}} {
		if _, err := r.Upload(m); err != ErrEmptyMesh {
			t.Errorf("Upload(%+v) error = %v, want ErrEmptyMesh", m, err)
		}
	}
}

func TestReleaseZeroMesh(t *testing.T) {
	// A mesh with no GL names must not touch the GL API.
	m := &GPUMesh{}
	m.Release()
	m.Release()
	if m.IndexCount() != 0 {
		t.Errorf("expected 0 indices, got %d", m.IndexCount())
	}
}
