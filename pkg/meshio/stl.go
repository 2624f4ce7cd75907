package meshio

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/philipparndt/gopick/pkg/geometry"
	"github.com/philipparndt/gopick/pkg/scene"
)

const (
	stlHeaderSize   = 80
	stlTriangleSize = 50
)

// LoadSTL reads an ASCII or binary STL file. Every solid of an ASCII file
// becomes one entity; a binary file is a single entity. Entities are named
// after their solid, falling back to the file name.
func LoadSTL(path string) ([]scene.EntityData, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	fallback := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return ParseSTL(file, info.Size(), fallback)
}

// ParseSTL reads STL data of the given size from r
func ParseSTL(r io.ReadSeeker, size int64, fallbackName string) ([]scene.EntityData, error) {
	header := make([]byte, stlHeaderSize+4)
	n, err := io.ReadFull(r, header)
	if err != nil && err != io.ErrUnexpectedEOF {
		return nil, fmt.Errorf("failed to read file header: %w", err)
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to reset file pointer: %w", err)
	}

	// Binary files may also start with "solid", so trust the size first.
	if n == len(header) {
		count := binary.LittleEndian.Uint32(header[stlHeaderSize:])
		if int64(stlHeaderSize+4)+int64(count)*stlTriangleSize == size {
			return parseBinarySTL(r, fallbackName)
		}
	}
	if strings.HasPrefix(strings.TrimSpace(string(header[:n])), "solid") {
		return parseASCIISTL(r, fallbackName)
	}
	return parseBinarySTL(r, fallbackName)
}

func parseASCIISTL(reader io.Reader, fallbackName string) ([]scene.EntityData, error) {
	scanner := bufio.NewScanner(reader)
	taken := map[string]bool{}

	var (
		entities []scene.EntityData
		current  *scene.EntityData
		facet    []geometry.Vector3
	)
	finish := func() {
		if current != nil && len(current.Vertices) > 0 {
			current.Center = geometry.BoundingBoxOf(current.Vertices).Center()
			entities = append(entities, *current)
		}
		current = nil
	}

	for line := 1; scanner.Scan(); line++ {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "solid":
			finish()
			name := fallbackName
			if len(fields) > 1 {
				name = strings.Join(fields[1:], " ")
			}
			current = &scene.EntityData{ID: uniqueID(name, taken)}

		case "vertex":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: vertex needs 3 coordinates", line)
			}
			v, err := parseCoords(fields[1:4])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			facet = append(facet, v)

		case "endfacet":
			if len(facet) == 3 {
				if current == nil {
					current = &scene.EntityData{ID: uniqueID(fallbackName, taken)}
				}
				current.Vertices = append(current.Vertices, facet...)
			}
			facet = facet[:0]

		case "endsolid":
			finish()
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading ASCII STL: %w", err)
	}
	finish()

	return entities, nil
}

func parseCoords(fields []string) (geometry.Vector3, error) {
	var c [3]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return geometry.Vector3{}, fmt.Errorf("invalid coordinate %q: %w", f, err)
		}
		c[i] = v
	}
	return geometry.NewVector3(c[0], c[1], c[2]), nil
}

func parseBinarySTL(reader io.Reader, fallbackName string) ([]scene.EntityData, error) {
	header := make([]byte, stlHeaderSize)
	if _, err := io.ReadFull(reader, header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	name := strings.TrimSpace(string(bytes.TrimRight(header, "\x00")))
	name = strings.TrimSpace(strings.TrimPrefix(name, "solid"))
	if name == "" {
		name = fallbackName
	}

	var count uint32
	if err := binary.Read(reader, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("failed to read triangle count: %w", err)
	}

	data := scene.EntityData{ID: name, Vertices: make([]geometry.Vector3, 0, 3*int(count))}
	var facet struct {
		Normal    [3]float32
		Vertices  [3][3]float32
		Attribute uint16
	}
	for i := uint32(0); i < count; i++ {
		if err := binary.Read(reader, binary.LittleEndian, &facet); err != nil {
			return nil, fmt.Errorf("failed to read triangle %d: %w", i, err)
		}
		for _, v := range facet.Vertices {
			data.Vertices = append(data.Vertices, geometry.NewVector3(float64(v[0]), float64(v[1]), float64(v[2])))
		}
	}
	if len(data.Vertices) == 0 {
		return nil, nil
	}
	data.Center = geometry.BoundingBoxOf(data.Vertices).Center()
	return []scene.EntityData{data}, nil
}
