package meshio

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/philipparndt/gopick/pkg/geometry"
	"github.com/philipparndt/gopick/pkg/scene"
)

// LoadGLTF reads a .gltf or .glb file. Every triangle primitive instanced by
// a node becomes one entity with node transforms applied; its colour is the
// material base colour.
func LoadGLTF(path string) ([]scene.EntityData, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open glTF %q: %w", path, err)
	}
	return convertGLTF(doc)
}

type gltfLoader struct {
	doc      *gltf.Document
	taken    map[string]bool
	entities []scene.EntityData
}

func convertGLTF(doc *gltf.Document) ([]scene.EntityData, error) {
	l := &gltfLoader{doc: doc, taken: map[string]bool{}}

	if len(doc.Nodes) == 0 {
		for mi := range doc.Meshes {
			if err := l.mesh(mi, fmt.Sprintf("mesh-%d", mi), mgl64.Ident4()); err != nil {
				return nil, err
			}
		}
		return l.entities, nil
	}

	for _, root := range gltfRoots(doc) {
		if err := l.node(root, mgl64.Ident4(), 0); err != nil {
			return nil, err
		}
	}
	return l.entities, nil
}

// gltfRoots returns the nodes of the default scene, or every node without a parent.
func gltfRoots(doc *gltf.Document) []int {
	if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
		return doc.Scenes[*doc.Scene].Nodes
	}
	hasParent := make([]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			if c < len(hasParent) {
				hasParent[c] = true
			}
		}
	}
	var roots []int
	for i := range doc.Nodes {
		if !hasParent[i] {
			roots = append(roots, i)
		}
	}
	return roots
}

func (l *gltfLoader) node(idx int, parent mgl64.Mat4, depth int) error {
	if idx < 0 || idx >= len(l.doc.Nodes) || depth > len(l.doc.Nodes) {
		return nil
	}
	n := l.doc.Nodes[idx]
	world := parent.Mul4(localTransform(n))

	if n.Mesh != nil {
		name := n.Name
		if name == "" && *n.Mesh < len(l.doc.Meshes) {
			name = l.doc.Meshes[*n.Mesh].Name
		}
		if name == "" {
			name = fmt.Sprintf("node-%d", idx)
		}
		if err := l.mesh(*n.Mesh, name, world); err != nil {
			return err
		}
	}
	for _, c := range n.Children {
		if err := l.node(c, world, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func localTransform(n *gltf.Node) mgl64.Mat4 {
	if m := mgl64.Mat4(n.MatrixOrDefault()); m != mgl64.Ident4() {
		return m
	}
	t := n.TranslationOrDefault()
	r := n.RotationOrDefault()
	s := n.ScaleOrDefault()
	rot := mgl64.Quat{W: r[3], V: mgl64.Vec3{r[0], r[1], r[2]}}
	return mgl64.Translate3D(t[0], t[1], t[2]).
		Mul4(rot.Mat4()).
		Mul4(mgl64.Scale3D(s[0], s[1], s[2]))
}

func (l *gltfLoader) mesh(idx int, name string, world mgl64.Mat4) error {
	if idx < 0 || idx >= len(l.doc.Meshes) {
		return nil
	}
	gm := l.doc.Meshes[idx]

	for pi, prim := range gm.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			slog.Warn("skipping non-triangle glTF primitive", "mesh", name, "primitive", pi)
			continue
		}
		vertices, err := l.primitive(prim, world)
		if err != nil {
			return fmt.Errorf("mesh %q primitive %d: %w", name, pi, err)
		}
		if len(vertices) == 0 {
			continue
		}

		id := name
		if len(gm.Primitives) > 1 {
			id = fmt.Sprintf("%s#%d", name, pi)
		}
		l.entities = append(l.entities, scene.EntityData{
			ID:       uniqueID(id, l.taken),
			Vertices: vertices,
			Center:   geometry.BoundingBoxOf(vertices).Center(),
			Colors:   l.colors(prim),
		})
	}
	return nil
}

func (l *gltfLoader) primitive(prim *gltf.Primitive, world mgl64.Mat4) ([]geometry.Vector3, error) {
	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		return nil, fmt.Errorf("no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(l.doc, l.doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, fmt.Errorf("failed to read positions: %w", err)
	}

	var indices []uint32
	if prim.Indices != nil {
		indices, err = modeler.ReadIndices(l.doc, l.doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return nil, fmt.Errorf("failed to read indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	out := make([]geometry.Vector3, 0, len(indices)-len(indices)%3)
	for _, i := range indices[:len(indices)-len(indices)%3] {
		if int(i) >= len(positions) {
			return nil, fmt.Errorf("index %d out of range", i)
		}
		p := positions[i]
		w := mgl64.TransformCoordinate(mgl64.Vec3{float64(p[0]), float64(p[1]), float64(p[2])}, world)
		out = append(out, geometry.NewVector3(w[0], w[1], w[2]))
	}
	return out, nil
}

func (l *gltfLoader) colors(prim *gltf.Primitive) []scene.Color {
	if prim.Material == nil || *prim.Material >= len(l.doc.Materials) {
		return nil
	}
	pbr := l.doc.Materials[*prim.Material].PBRMetallicRoughness
	if pbr == nil {
		return nil
	}
	c := pbr.BaseColorFactorOrDefault()
	base := scene.Color{R: c[0], G: c[1], B: c[2], A: c[3]}
	return []scene.Color{base, base, {A: 1}, {A: 1}}
}
