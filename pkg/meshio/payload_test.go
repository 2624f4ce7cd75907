package meshio

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/philipparndt/gopick/pkg/geometry"
	"github.com/philipparndt/gopick/pkg/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoMeshes = `[
  {
    "facetCount": 1, "vertexCount": 3,
    "vertexCoords": [0,0,0, 1,0,0, 0,1,0],
    "vertexIndices": [0,1,2],
    "normals": [0,0,1], "normalIndices": [0,0,0],
    "center": [0.5,0.5,0],
    "color": [-16776961, 255, 255, 255],
    "id": "first"
  },
  {
    "FacetCount": 2, "VertexCount": 4,
    "VertexCoords": [0,0,1, 1,0,1, 1,1,1, 0,1,1],
    "VertexIndices": [0,1,2, 2,3,0],
    "Center": [0.5,0.5,1],
    "Color": [8235263],
    "Id": "second"
  }
]`

func TestDecodeMeshesPlain(t *testing.T) {
	entities, err := DecodeMeshes(strings.NewReader(twoMeshes))
	require.NoError(t, err)
	require.Len(t, entities, 2)

	first := entities[0]
	assert.Equal(t, "first", first.ID)
	assert.Len(t, first.Vertices, 3)
	assert.Equal(t, geometry.NewVector3(0.5, 0.5, 0), first.Center)
	require.Len(t, first.Colors, 4)
	// -16776961 is 0xFF0000FF
	assert.InDelta(t, 1.0, first.Colors[0].R, 1e-12)
	assert.InDelta(t, 0.0, first.Colors[0].G, 1e-12)
	assert.InDelta(t, 1.0, first.Colors[0].A, 1e-12)

	second := entities[1]
	assert.Len(t, second.Vertices, 6)
	assert.Equal(t, geometry.NewVector3(0, 1, 1), second.Vertices[4])

	_, err = scene.NewScene(entities)
	assert.NoError(t, err)
}

func TestDecodeMeshesCompressed(t *testing.T) {
	packed, err := Compress([]byte(twoMeshes))
	require.NoError(t, err)

	entities, err := DecodeMeshes(strings.NewReader(packed))
	require.NoError(t, err)
	assert.Len(t, entities, 2)

	quoted, err := json.Marshal(packed)
	require.NoError(t, err)
	entities, err = DecodeMeshes(strings.NewReader(string(quoted)))
	require.NoError(t, err)
	assert.Len(t, entities, 2)
}

func TestDecodeMeshesSingleObject(t *testing.T) {
	one := `{"VertexCoords":[0,0,0,1,0,0,0,1,0],"VertexIndices":[0,1,2],"Id":"solo"}`
	entities, err := DecodeMeshes(strings.NewReader(one))
	require.NoError(t, err)
	require.Len(t, entities, 1)
	assert.Equal(t, "solo", entities[0].ID)
}

func TestDecodeMeshesErrors(t *testing.T) {
	_, err := DecodeMeshes(strings.NewReader(`[{"VertexCoords":[0,0,0],"VertexIndices":[0,1,2],"Id":"x"}]`))
	assert.ErrorContains(t, err, "out of range")

	_, err = DecodeMeshes(strings.NewReader("   "))
	assert.Error(t, err)

	_, err = DecodeMeshes(strings.NewReader("not base64!"))
	assert.Error(t, err)
}

func TestDecompressLengthMismatch(t *testing.T) {
	packed, err := Compress([]byte("hello"))
	require.NoError(t, err)

	out, err := Decompress(packed)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(out))

	_, err = Decompress("AAAA")
	assert.Error(t, err)
}

func TestDecodeMetadata(t *testing.T) {
	doc := `{"id":"first","elements":[{"name":"Material","category":"Physical","value":"Steel"},{"name":"Mass","category":"Physical","value":1.5}]}`
	md, err := DecodeMetadata(strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, "first", md.ID)
	require.Len(t, md.Elements, 2)
	assert.Equal(t, "Steel", md.Elements[0].Value)
	assert.Equal(t, 1.5, md.Elements[1].Value)
}

func TestLoadMetadataYAMLAndJSON(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "first.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(`id: first
elements:
  - name: Material
    category: Physical
    value: Steel
  - name: Mass
    category: Physical
    value: 1.5
`), 0o644))

	md, err := LoadMetadata(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, "first", md.ID)
	require.Len(t, md.Elements, 2)
	assert.Equal(t, "Material", md.Elements[0].Name)
	assert.Equal(t, "Steel", md.Elements[0].Value)
	assert.Equal(t, 1.5, md.Elements[1].Value)

	jsonPath := filepath.Join(dir, "first.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"Id":"first","Elements":[{"Name":"Mass","Category":"Physical","Value":2}]}`), 0o644))
	md, err = LoadMetadata(jsonPath)
	require.NoError(t, err)
	require.Len(t, md.Elements, 1)
	assert.Equal(t, 2.0, md.Elements[0].Value)

	_, err = LoadMetadata(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
