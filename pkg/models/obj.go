package models

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/taigrr/turntable/pkg/math3d"
)

// LoadOBJ loads a Wavefront OBJ file.
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()

	mesh, err := ParseOBJ(f, filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return mesh, nil
}

// ParseOBJ reads the geometry records of an OBJ stream.
//
// Only "v" and "f" records are used. Face tokens may be "i", "i/t",
// "i//n" or "i/t/n"; only the vertex index is read. Indices are 1-based,
// negative indices count back from the last vertex seen so far. Faces that
// are not triangles are skipped and counted in Mesh.Skipped.
func ParseOBJ(r io.Reader, name string) (*Mesh, error) {
	mesh := NewMesh(name)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: vertex needs 3 coordinates", lineNo)
			}
			var xyz [3]float64
			for i := range 3 {
				val, err := strconv.ParseFloat(fields[i+1], 64)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				xyz[i] = val
			}
			mesh.AddVertex(math3d.V3(xyz[0], xyz[1], xyz[2]))

		case "f":
			indices := make([]int, 0, len(fields)-1)
			for _, tok := range fields[1:] {
				idx, err := parseFaceIndex(tok, len(mesh.Vertices))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				indices = append(indices, idx)
			}
			mesh.AddFace(indices...)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read obj: %w", err)
	}

	if err := mesh.Validate(); err != nil {
		return nil, err
	}

	mesh.CalculateSmoothNormals()
	mesh.CalculateBounds()

	return mesh, nil
}

// parseFaceIndex converts one face token to a 0-based vertex index.
func parseFaceIndex(tok string, nverts int) (int, error) {
	if i := strings.IndexByte(tok, '/'); i >= 0 {
		tok = tok[:i]
	}
	idx, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("bad face index %q", tok)
	}
	switch {
	case idx > 0:
		idx--
	case idx < 0:
		idx += nverts
	default:
		return 0, fmt.Errorf("face index 0 is invalid")
	}
	if idx < 0 || idx >= nverts {
		return 0, fmt.Errorf("face index %s out of range (%d vertices)", tok, nverts)
	}
	return idx, nil
}
