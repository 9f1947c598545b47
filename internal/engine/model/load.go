package model

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/objview/internal/logger"
	"github.com/Faultbox/objview/pkg/formats"
)

// Load reads an OBJ file and builds an indexed mesh from it.
//
// Only a file that cannot be opened or read fails the load (ErrCannotOpen).
// Malformed lines, unsupported faces, out-of-range indices and a degenerate
// bounding box are skipped and recorded in Mesh.Warnings.
func Load(path string, opts LoadOptions) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCannotOpen, err)
	}
	defer f.Close()

	mesh, err := Decode(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCannotOpen, path, err)
	}

	logger.Info("mesh loaded", append([]zap.Field{zap.String("path", path)}, mesh.LogFields()...)...)
	for _, w := range mesh.Warnings {
		logger.Warn("mesh warning", zap.String("path", path), zap.Error(w))
	}
	logger.Sugar.Debugf("\n%s", Summarize(mesh))

	return mesh, nil
}

// Decode builds a mesh from an OBJ stream. It fails only if r does.
func Decode(r io.Reader, opts LoadOptions) (*Mesh, error) {
	obj, err := formats.ParseOBJ(r)
	if err != nil {
		return nil, err
	}

	mesh := BuildMesh(obj)

	if opts.Normalize {
		if err := Normalize(mesh); err != nil {
			mesh.Warnings = append(mesh.Warnings, err)
		}
	}

	return mesh, nil
}
