package meshio

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/philipparndt/gopick/pkg/geometry"
	"github.com/philipparndt/gopick/pkg/scene"
)

// MeshData is one entity as delivered by the model service. Vertices and
// normals are indexed per facet corner.
type MeshData struct {
	FacetCount    int       `json:"FacetCount"`
	VertexCount   int       `json:"VertexCount"`
	VertexCoords  []float64 `json:"VertexCoords"`
	VertexIndices []int     `json:"VertexIndices"`
	Normals       []float64 `json:"Normals"`
	NormalIndices []int     `json:"NormalIndices"`
	Center        []float64 `json:"Center"`
	// Color holds packed 0xRRGGBBAA values as signed 32-bit integers.
	Color []int64 `json:"Color"`
	ID    string  `json:"Id"`
}

// Entity expands the indexed mesh into a triangle soup
func (m MeshData) Entity() (scene.EntityData, error) {
	data := scene.EntityData{ID: m.ID}

	coords := len(m.VertexCoords) / 3
	data.Vertices = make([]geometry.Vector3, 0, len(m.VertexIndices))
	for i, idx := range m.VertexIndices {
		if idx < 0 || idx >= coords {
			return scene.EntityData{}, fmt.Errorf("entity %q: vertex index %d at %d out of range [0,%d)", m.ID, idx, i, coords)
		}
		data.Vertices = append(data.Vertices, geometry.NewVector3(
			m.VertexCoords[3*idx], m.VertexCoords[3*idx+1], m.VertexCoords[3*idx+2]))
	}

	if len(m.Center) >= 3 {
		data.Center = geometry.NewVector3(m.Center[0], m.Center[1], m.Center[2])
	}
	for _, c := range m.Color {
		data.Colors = append(data.Colors, scene.UnpackColor(uint32(int32(c))))
	}
	return data, nil
}

// MetadataElement is one named property of an entity
type MetadataElement struct {
	Name     string `json:"Name" yaml:"name"`
	Category string `json:"Category" yaml:"category"`
	Value    any    `json:"Value" yaml:"value"`
}

// Metadata holds the properties of one entity
type Metadata struct {
	ID       string            `json:"Id" yaml:"id"`
	Elements []MetadataElement `json:"Elements" yaml:"elements"`
}

// DecodeMeshes reads a mesh payload: a JSON array of MeshData (or a single
// object), optionally wrapped in the compressed envelope, either bare or as a
// JSON string.
func DecodeMeshes(r io.Reader) ([]scene.EntityData, error) {
	raw, err := readPayload(r)
	if err != nil {
		return nil, err
	}

	var meshes []MeshData
	if bytes.HasPrefix(raw, []byte("{")) {
		var one MeshData
		if err := json.Unmarshal(raw, &one); err != nil {
			return nil, fmt.Errorf("failed to decode mesh payload: %w", err)
		}
		meshes = []MeshData{one}
	} else if err := json.Unmarshal(raw, &meshes); err != nil {
		return nil, fmt.Errorf("failed to decode mesh payload: %w", err)
	}

	entities := make([]scene.EntityData, 0, len(meshes))
	for _, m := range meshes {
		e, err := m.Entity()
		if err != nil {
			return nil, err
		}
		entities = append(entities, e)
	}
	return entities, nil
}

// DecodeMetadata reads a metadata payload, plain or compressed
func DecodeMetadata(r io.Reader) (*Metadata, error) {
	raw, err := readPayload(r)
	if err != nil {
		return nil, err
	}
	var md Metadata
	if err := json.Unmarshal(raw, &md); err != nil {
		return nil, fmt.Errorf("failed to decode metadata: %w", err)
	}
	return &md, nil
}

// LoadMetadata reads a metadata file. .yaml and .yml files are read as YAML,
// anything else as a (possibly compressed) JSON payload.
func LoadMetadata(path string) (*Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open metadata: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var md Metadata
		if err := yaml.NewDecoder(f).Decode(&md); err != nil {
			return nil, fmt.Errorf("failed to decode metadata %s: %w", path, err)
		}
		return &md, nil
	default:
		return DecodeMetadata(f)
	}
}

// readPayload returns the JSON document in r, unwrapping the compressed
// envelope when r does not start with a JSON array or object.
func readPayload(r io.Reader) ([]byte, error) {
	raw, err := io.ReadAll(bufio.NewReader(r))
	if err != nil {
		return nil, fmt.Errorf("failed to read payload: %w", err)
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, errors.New("empty payload")
	}

	switch raw[0] {
	case '[', '{':
		return raw, nil
	case '"':
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return nil, fmt.Errorf("failed to decode payload string: %w", err)
		}
		if t := strings.TrimSpace(text); strings.HasPrefix(t, "[") || strings.HasPrefix(t, "{") {
			return []byte(t), nil
		}
		return Decompress(text)
	default:
		return Decompress(string(raw))
	}
}

// Decompress unwraps the compressed envelope: base64 of a 4-byte
// little-endian length followed by a gzip stream.
func Decompress(text string) ([]byte, error) {
	buf, err := base64.StdEncoding.DecodeString(strings.TrimSpace(text))
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64: %w", err)
	}
	if len(buf) < 4 {
		return nil, errors.New("compressed payload too short")
	}
	size := binary.LittleEndian.Uint32(buf[:4])

	zr, err := gzip.NewReader(bytes.NewReader(buf[4:]))
	if err != nil {
		return nil, fmt.Errorf("failed to open gzip stream: %w", err)
	}
	defer zr.Close()

	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress payload: %w", err)
	}
	if uint32(len(out)) != size {
		return nil, fmt.Errorf("decompressed %d bytes, envelope announced %d", len(out), size)
	}
	return out, nil
}

// Compress wraps data in the envelope read by Decompress
func Compress(data []byte) (string, error) {
	var buf bytes.Buffer
	var size [4]byte
	binary.LittleEndian.PutUint32(size[:], uint32(len(data)))
	buf.Write(size[:])

	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		return "", fmt.Errorf("failed to compress payload: %w", err)
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("failed to compress payload: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
