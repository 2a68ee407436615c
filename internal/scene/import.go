package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// RootName is the synthetic node parenting every imported root.
const RootName = "__root__"

// Import reads a .gltf/.glb file into a flat mesh list. The list starts
// with a synthetic root and follows the node hierarchy depth first. It
// touches no GPU state and may run off the main thread.
func Import(path string) ([]*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", path, err)
	}
	return fromDocument(doc)
}

func fromDocument(doc *gltf.Document) ([]*Mesh, error) {
	roots := sceneRoots(doc)
	if len(roots) == 0 {
		return nil, ErrEmptyScene
	}

	geometries := make(map[int]*Geometry)
	root := NewMesh(RootName, nil)
	out := []*Mesh{root}

	var visit func(idx int, parent *Mesh) error
	visit = func(idx int, parent *Mesh) error {
		if idx < 0 || idx >= len(doc.Nodes) {
			return fmt.Errorf("node %d out of range", idx)
		}
		n := doc.Nodes[idx]
		m := NewMesh(n.Name, nil)
		if m.Name == "" {
			m.Name = fmt.Sprintf("node%d", idx)
		}
		m.Parent = parent
		setTransform(m, n.Translation, n.Rotation, n.Scale)

		if n.Mesh != nil {
			g, ok := geometries[*n.Mesh]
			if !ok {
				var err error
				if g, err = readGeometry(doc, *n.Mesh); err != nil {
					return fmt.Errorf("node %q: %w", m.Name, err)
				}
				geometries[*n.Mesh] = g
			}
			m.Geometry = g
		}
		out = append(out, m)

		for _, c := range n.Children {
			if err := visit(c, m); err != nil {
				return err
			}
		}
		return nil
	}

	for _, r := range roots {
		if err := visit(r, root); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func sceneRoots(doc *gltf.Document) []int {
	if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
		return doc.Scenes[*doc.Scene].Nodes
	}
	if len(doc.Scenes) > 0 {
		return doc.Scenes[0].Nodes
	}
	// no scene: every node that is nobody's child
	child := make(map[int]bool)
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			child[c] = true
		}
	}
	var roots []int
	for i := range doc.Nodes {
		if !child[i] {
			roots = append(roots, i)
		}
	}
	return roots
}

type float interface{ ~float32 | ~float64 }

// setTransform copies TRS, treating zero rotation/scale as unset.
func setTransform[T float](m *Mesh, t [3]T, r [4]T, s [3]T) {
	m.Position = mgl32.Vec3{float32(t[0]), float32(t[1]), float32(t[2])}
	if r != [4]T{} {
		m.Rotation = mgl32.Quat{W: float32(r[3]), V: mgl32.Vec3{float32(r[0]), float32(r[1]), float32(r[2])}}
	}
	if s != [3]T{} {
		m.Scale = mgl32.Vec3{float32(s[0]), float32(s[1]), float32(s[2])}
	}
}

// readGeometry merges the triangle primitives of a glTF mesh.
func readGeometry(doc *gltf.Document, meshIdx int) (*Geometry, error) {
	if meshIdx < 0 || meshIdx >= len(doc.Meshes) {
		return nil, fmt.Errorf("mesh %d out of range", meshIdx)
	}
	g := &Geometry{}
	missingNormals := false
	for _, prim := range doc.Meshes[meshIdx].Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			continue
		}
		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		pos, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
		if err != nil {
			return nil, fmt.Errorf("read positions: %w", err)
		}

		var normals [][3]float32
		if nIdx, ok := prim.Attributes[gltf.NORMAL]; ok {
			if normals, err = modeler.ReadNormal(doc, doc.Accessors[nIdx], nil); err != nil {
				return nil, fmt.Errorf("read normals: %w", err)
			}
		}
		if len(normals) != len(pos) {
			missingNormals = true
			normals = make([][3]float32, len(pos))
		}

		var indices []uint32
		if prim.Indices != nil {
			if indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil); err != nil {
				return nil, fmt.Errorf("read indices: %w", err)
			}
		} else {
			indices = make([]uint32, len(pos))
			for i := range indices {
				indices[i] = uint32(i)
			}
		}

		base := uint32(len(g.Positions))
		g.Positions = append(g.Positions, pos...)
		g.Normals = append(g.Normals, normals...)
		for _, i := range indices {
			g.Indices = append(g.Indices, base+i)
		}
	}
	if missingNormals {
		g.computeNormals()
	}
	return g, nil
}
