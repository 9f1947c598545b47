package formats

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	gomath "math"
	"strconv"
	"strings"
)

// OBJ format errors. Both are recoverable: the offending line is skipped and
// reported through a LineError.
var (
	ErrMalformedAttribute  = errors.New("malformed attribute line")
	ErrUnsupportedFaceForm = errors.New("unsupported face form")
	ErrLineTooLong         = errors.New("line too long")
)

// maxOBJLine bounds the bytes kept for a single OBJ line. Longer lines are
// read to their end and reported with ErrLineTooLong.
const maxOBJLine = 1 << 20

// LineError reports a problem with a single line of an OBJ file.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// OBJCorner is one face corner as written in the file: 1-based indices into
// the position, texcoord and normal arrays.
type OBJCorner struct {
	Pos    int
	UV     int
	Normal int
}

// OBJFace is a polygon with at least three corners.
type OBJFace struct {
	Line    int
	Corners []OBJCorner
}

// OBJ represents the geometry subset of a Wavefront OBJ file.
// Only v, vt, vn and f lines are read; everything else is ignored.
type OBJ struct {
	Positions [][3]float32
	TexCoords [][2]float32
	Normals   [][3]float32
	Faces     []OBJFace

	// Warnings holds one *LineError per skipped line, in file order.
	Warnings []error

	// Lines is the number of lines read.
	Lines int
}

// TriangleCount returns the number of triangles a fan triangulation of all
// faces yields.
func (o *OBJ) TriangleCount() int {
	n := 0
	for _, f := range o.Faces {
		n += len(f.Corners) - 2
	}
	return n
}

// ParseOBJ reads an OBJ text stream. Lines are processed independently; a bad
// line is skipped and recorded in Warnings. Only a read failure is returned
// as an error.
func ParseOBJ(r io.Reader) (*OBJ, error) {
	obj := &OBJ{}

	br := bufio.NewReaderSize(r, 64*1024)
	var buf []byte
	for {
		line, tooLong, err := readLine(br, buf[:0])
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("reading obj after line %d: %w", obj.Lines, err)
		}
		if err == io.EOF && len(line) == 0 && !tooLong {
			break
		}
		buf = line

		obj.Lines++
		if tooLong {
			obj.Warnings = append(obj.Warnings, &LineError{Line: obj.Lines, Err: ErrLineTooLong})
		} else if perr := obj.parseLine(string(line)); perr != nil {
			obj.Warnings = append(obj.Warnings, &LineError{Line: obj.Lines, Err: perr})
		}

		if err == io.EOF {
			break
		}
	}

	return obj, nil
}

// readLine appends the next line, without its end-of-line marker, to buf.
// A line longer than maxOBJLine is consumed completely but not kept; tooLong
// reports it. io.EOF may come with the final unterminated line.
func readLine(br *bufio.Reader, buf []byte) (line []byte, tooLong bool, err error) {
	for {
		chunk, isPrefix, err := br.ReadLine()
		if err != nil {
			return buf, tooLong, err
		}
		if !tooLong {
			if len(buf)+len(chunk) > maxOBJLine {
				tooLong = true
				buf = buf[:0]
			} else {
				buf = append(buf, chunk...)
			}
		}
		if !isPrefix {
			return buf, tooLong, nil
		}
	}
}

func (o *OBJ) parseLine(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	switch fields[0] {
	case "v":
		v, err := parseFloats(fields[1:], 3)
		if err != nil {
			return fmt.Errorf("%w: v: %v", ErrMalformedAttribute, err)
		}
		o.Positions = append(o.Positions, [3]float32{v[0], v[1], v[2]})

	case "vt":
		v, err := parseFloats(fields[1:], 2)
		if err != nil {
			return fmt.Errorf("%w: vt: %v", ErrMalformedAttribute, err)
		}
		o.TexCoords = append(o.TexCoords, [2]float32{v[0], v[1]})

	case "vn":
		v, err := parseFloats(fields[1:], 3)
		if err != nil {
			return fmt.Errorf("%w: vn: %v", ErrMalformedAttribute, err)
		}
		o.Normals = append(o.Normals, [3]float32{v[0], v[1], v[2]})

	case "f":
		face, err := parseFace(fields[1:])
		if err != nil {
			return err
		}
		face.Line = o.Lines
		o.Faces = append(o.Faces, face)
	}

	return nil
}

// parseFloats parses the first n fields. Extra fields (such as the optional
// w of a position) are ignored.
func parseFloats(fields []string, n int) ([3]float32, error) {
	var out [3]float32
	if len(fields) < n {
		return out, fmt.Errorf("expected %d components, got %d", n, len(fields))
	}
	for i := 0; i < n; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return out, fmt.Errorf("component %d: %q is not a number", i, fields[i])
		}
		if gomath.IsNaN(f) || gomath.IsInf(f, 0) {
			return out, fmt.Errorf("component %d: %q is not finite", i, fields[i])
		}
		out[i] = float32(f)
	}
	return out, nil
}

func parseFace(fields []string) (OBJFace, error) {
	if len(fields) < 3 {
		return OBJFace{}, fmt.Errorf("%w: face needs at least 3 corners, got %d", ErrUnsupportedFaceForm, len(fields))
	}

	face := OBJFace{Corners: make([]OBJCorner, len(fields))}
	for i, field := range fields {
		c, err := parseCorner(field)
		if err != nil {
			return OBJFace{}, fmt.Errorf("%w: corner %d %q: %v", ErrUnsupportedFaceForm, i, field, err)
		}
		face.Corners[i] = c
	}
	return face, nil
}

// parseCorner accepts only the full pos/uv/normal form.
func parseCorner(s string) (OBJCorner, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return OBJCorner{}, fmt.Errorf("want pos/uv/normal, got %d part(s)", len(parts))
	}

	var idx [3]int
	for i, p := range parts {
		if p == "" {
			return OBJCorner{}, fmt.Errorf("index %d is empty", i)
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return OBJCorner{}, fmt.Errorf("index %d: %q is not an integer", i, p)
		}
		if n < 1 {
			return OBJCorner{}, fmt.Errorf("index %d: %d is not a positive index", i, n)
		}
		idx[i] = n
	}

	return OBJCorner{Pos: idx[0], UV: idx[1], Normal: idx[2]}, nil
}
