// Package renderer draws indexed triangle meshes with OpenGL.
package renderer

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/objview/internal/config"
	"github.com/Faultbox/objview/internal/engine/model"
	"github.com/Faultbox/objview/internal/engine/shader"
	"github.com/Faultbox/objview/internal/logger"
)

// ErrEmptyMesh is returned when uploading a mesh without triangles.
var ErrEmptyMesh = errors.New("mesh has no triangles")

// Config holds renderer configuration.
type Config struct {
	Width       int
	Height      int
	ClearColor  [4]float32
	MeshColor   [4]float32
	PolygonMode string // config.PolygonPoint, PolygonLine or PolygonFill
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config  Config
	program *shader.Program
}

// New creates a new renderer.
// Must be called after the OpenGL context is created.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{config: cfg}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	c := cfg.ClearColor
	gl.ClearColor(c[0], c[1], c[2], c[3])

	var err error
	r.program, err = shader.NewMeshProgram()
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}
	logger.Debug("shader program created", zap.Uint32("program", r.program.ID))

	if err := r.SetPolygonMode(cfg.PolygonMode); err != nil {
		r.program.Delete()
		return nil, err
	}
	r.Resize(cfg.Width, cfg.Height)

	return r, nil
}

// Close cleans up renderer resources. Meshes must be released separately.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	r.program.Delete()
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// SetPolygonMode switches between point, line and fill rasterization.
func (r *Renderer) SetPolygonMode(mode string) error {
	glMode, err := polygonMode(mode)
	if err != nil {
		return err
	}
	gl.PolygonMode(gl.FRONT_AND_BACK, glMode)
	r.config.PolygonMode = mode
	logger.Debug("polygon mode set", zap.String("mode", mode))
	return nil
}

// PolygonMode returns the active rasterization mode name.
func (r *Renderer) PolygonMode() string {
	return r.config.PolygonMode
}

func polygonMode(mode string) (uint32, error) {
	switch mode {
	case config.PolygonPoint:
		return gl.POINT, nil
	case config.PolygonLine:
		return gl.LINE, nil
	case config.PolygonFill:
		return gl.FILL, nil
	default:
		return 0, fmt.Errorf("unknown polygon mode %q", mode)
	}
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Draw issues one indexed draw call for m. A released mesh draws nothing.
func (r *Renderer) Draw(m *GPUMesh) {
	if m == nil || m.vao == 0 {
		return
	}
	r.program.Use()
	r.program.SetVec4("uColor", r.config.MeshColor)
	gl.BindVertexArray(m.vao)
	gl.DrawElements(gl.TRIANGLES, m.indexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

// ReadPixels returns the current framebuffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	if w <= 0 || h <= 0 {
		return nil, 0, 0
	}
	pixels := make([]byte, w*h*4)
	// Events are handled after the swap, so the last frame is in front.
	gl.ReadBuffer(gl.FRONT)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	gl.ReadBuffer(gl.BACK)
	return pixels, w, h
}

// GPUMesh owns the GL buffers of one uploaded mesh.
type GPUMesh struct {
	vao, vbo, ebo uint32
	indexCount    int32
}

// IndexCount returns the number of indices drawn per frame.
func (m *GPUMesh) IndexCount() int {
	return int(m.indexCount)
}

// Upload copies the mesh vertices and indices into new GL buffers.
func (r *Renderer) Upload(mesh *model.Mesh) (*GPUMesh, error) {
	if mesh == nil || len(mesh.Indices) == 0 || len(mesh.Vertices) == 0 {
		return nil, ErrEmptyMesh
	}

	m := &GPUMesh{indexCount: int32(len(mesh.Indices))}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(mesh.Vertices)*int(vertexStride), unsafe.Pointer(&mesh.Vertices[0]), gl.STATIC_DRAW)

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*4, unsafe.Pointer(&mesh.Indices[0]), gl.STATIC_DRAW)

	for _, a := range vertexAttributes {
		gl.VertexAttribPointerWithOffset(a.location, a.size, gl.FLOAT, false, vertexStride, a.offset)
		gl.EnableVertexAttribArray(a.location)
	}

	gl.BindVertexArray(0)

	logger.Debug("mesh uploaded",
		zap.Uint32("vao", m.vao),
		zap.Int("vertices", len(mesh.Vertices)),
		zap.Int("indices", len(mesh.Indices)),
	)
	return m, nil
}

// Release deletes the GL buffers. Calling it again is a no-op.
func (m *GPUMesh) Release() {
	if m.vao == 0 && m.vbo == 0 && m.ebo == 0 {
		return
	}
	logger.Debug("mesh released", zap.Uint32("vao", m.vao))
	if m.ebo != 0 {
		gl.DeleteBuffers(1, &m.ebo)
		m.ebo = 0
	}
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
		m.vbo = 0
	}
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
		m.vao = 0
	}
	m.indexCount = 0
}

type vertexAttribute struct {
	location uint32
	size     int32
	offset   uintptr
}

const vertexStride = int32(unsafe.Sizeof(model.Vertex{}))

// Locations match the layout qualifiers in the mesh vertex shader.
var vertexAttributes = []vertexAttribute{
	{0, 3, unsafe.Offsetof(model.Vertex{}.Position)},
	{1, 2, unsafe.Offsetof(model.Vertex{}.TexCoord)},
	{2, 3, unsafe.Offsetof(model.Vertex{}.Normal)},
}
