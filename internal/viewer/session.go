// Package viewer owns the single live mesh and reacts to viewer commands.
package viewer

import (
	"errors"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/objview/internal/engine/model"
	"github.com/Faultbox/objview/internal/logger"
	"github.com/Faultbox/objview/pkg/math"
)

var (
	ErrNoPath        = errors.New("no path given")
	ErrAlreadyLoaded = errors.New("already rendered, please enter new one")
	ErrEmptyMesh     = errors.New("mesh has no triangles")
)

// Handle is a GPU-side copy of a mesh.
type Handle interface {
	Release()
}

// Uploader creates GPU copies of meshes.
type Uploader interface {
	Upload(m *model.Mesh) (Handle, error)
}

// Session holds at most one loaded mesh together with its GPU handle.
// The source mesh is kept untransformed so a new transform can be applied
// without reading the file again.
type Session struct {
	uploader Uploader
	opts     model.LoadOptions
	mvp      math.Mat4

	path   string
	source *model.Mesh
	mesh   *model.Mesh
	gpu    Handle
}

// NewSession returns an empty session uploading through up.
func NewSession(up Uploader, opts model.LoadOptions, mvp math.Mat4) *Session {
	return &Session{uploader: up, opts: opts, mvp: mvp}
}

// Open loads path, transforms it and replaces the live mesh.
// If loading fails, or the file yields no triangles, the previous mesh
// stays live.
func (s *Session) Open(path string) error {
	if path == "" {
		return ErrNoPath
	}
	path = filepath.Clean(path)
	if s.gpu != nil && path == s.path {
		return ErrAlreadyLoaded
	}

	source, err := model.Load(path, s.opts)
	if err != nil {
		return err
	}
	if source.NumTriangles() == 0 {
		return fmt.Errorf("%w: %s", ErrEmptyMesh, path)
	}

	if err := s.install(path, source); err != nil {
		return err
	}
	logger.Info("mesh opened", zap.String("path", path))
	return nil
}

// SetTransform changes the model-view-projection matrix and re-uploads the
// live mesh with it, e.g. after the window aspect changed.
func (s *Session) SetTransform(mvp math.Mat4) error {
	s.mvp = mvp
	if s.source == nil {
		return nil
	}
	return s.install(s.path, s.source)
}

// install transforms a copy of source and swaps it in as the live mesh.
func (s *Session) install(path string, source *model.Mesh) error {
	mesh := source.Clone()
	if skipped := model.ApplyTransform(mesh, s.mvp); skipped > 0 {
		logger.Warn("vertices on the camera plane left untransformed",
			zap.String("path", path),
			zap.Int("count", skipped),
		)
	}

	s.release()

	gpu, err := s.uploader.Upload(mesh)
	if err != nil {
		return fmt.Errorf("uploading %s: %w", path, err)
	}

	s.path = path
	s.source = source
	s.mesh = mesh
	s.gpu = gpu
	return nil
}

func (s *Session) release() {
	if s.gpu != nil {
		s.gpu.Release()
	}
	s.path = ""
	s.source = nil
	s.mesh = nil
	s.gpu = nil
}

// Close releases the live mesh. The session can be reused afterwards.
func (s *Session) Close() {
	if s.gpu != nil {
		logger.Debug("releasing mesh", zap.String("path", s.path))
	}
	s.release()
}

// Path returns the path of the live mesh, or "" if none is loaded.
func (s *Session) Path() string {
	return s.path
}

// Mesh returns the live, transformed mesh.
func (s *Session) Mesh() *model.Mesh {
	return s.mesh
}

// Source returns the live mesh before the camera transform.
func (s *Session) Source() *model.Mesh {
	return s.source
}

// GPU returns the handle of the live mesh.
func (s *Session) GPU() Handle {
	return s.gpu
}

// Loaded reports whether a mesh is live.
func (s *Session) Loaded() bool {
	return s.gpu != nil
}
