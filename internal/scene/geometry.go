package scene

import "github.com/go-gl/mathgl/mgl32"

// Geometry is an indexed triangle list in local space.
type Geometry struct {
	Positions [][3]float32
	Normals   [][3]float32
	Indices   []uint32
}

// Box is an axis-aligned box of the given full size centred on the
// origin, with per-face normals.
func Box(width, height, depth float32) *Geometry {
	hx, hy, hz := width/2, height/2, depth/2
	faces := []struct {
		n       [3]float32
		corners [4][3]float32
	}{
		{[3]float32{0, 0, 1}, [4][3]float32{{-hx, -hy, hz}, {hx, -hy, hz}, {hx, hy, hz}, {-hx, hy, hz}}},
		{[3]float32{0, 0, -1}, [4][3]float32{{hx, -hy, -hz}, {-hx, -hy, -hz}, {-hx, hy, -hz}, {hx, hy, -hz}}},
		{[3]float32{-1, 0, 0}, [4][3]float32{{-hx, -hy, -hz}, {-hx, -hy, hz}, {-hx, hy, hz}, {-hx, hy, -hz}}},
		{[3]float32{1, 0, 0}, [4][3]float32{{hx, -hy, hz}, {hx, -hy, -hz}, {hx, hy, -hz}, {hx, hy, hz}}},
		{[3]float32{0, 1, 0}, [4][3]float32{{-hx, hy, hz}, {hx, hy, hz}, {hx, hy, -hz}, {-hx, hy, -hz}}},
		{[3]float32{0, -1, 0}, [4][3]float32{{-hx, -hy, -hz}, {hx, -hy, -hz}, {hx, -hy, hz}, {-hx, -hy, hz}}},
	}
	g := &Geometry{}
	for _, f := range faces {
		base := uint32(len(g.Positions))
		for _, c := range f.corners {
			g.Positions = append(g.Positions, c)
			g.Normals = append(g.Normals, f.n)
		}
		g.Indices = append(g.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return g
}

// Plane is a size x size quad in the XZ plane facing +Y.
func Plane(size float32) *Geometry {
	h := size / 2
	up := [3]float32{0, 1, 0}
	return &Geometry{
		Positions: [][3]float32{{-h, 0, h}, {h, 0, h}, {h, 0, -h}, {-h, 0, -h}},
		Normals:   [][3]float32{up, up, up, up},
		Indices:   []uint32{0, 1, 2, 0, 2, 3},
	}
}

// Bounds is the local-space box around the positions.
func (g *Geometry) Bounds() (lo, hi mgl32.Vec3, ok bool) {
	for i, p := range g.Positions {
		v := mgl32.Vec3(p)
		if i == 0 {
			lo, hi = v, v
			continue
		}
		for k := 0; k < 3; k++ {
			lo[k] = min(lo[k], v[k])
			hi[k] = max(hi[k], v[k])
		}
	}
	return lo, hi, len(g.Positions) > 0
}

// TransformBounds is the axis-aligned box around the eight corners of
// lo/hi after m.
func TransformBounds(lo, hi mgl32.Vec3, m mgl32.Mat4) (mgl32.Vec3, mgl32.Vec3) {
	var outLo, outHi mgl32.Vec3
	for i := 0; i < 8; i++ {
		c := lo
		if i&1 != 0 {
			c[0] = hi[0]
		}
		if i&2 != 0 {
			c[1] = hi[1]
		}
		if i&4 != 0 {
			c[2] = hi[2]
		}
		v := mgl32.TransformCoordinate(c, m)
		if i == 0 {
			outLo, outHi = v, v
			continue
		}
		for k := 0; k < 3; k++ {
			outLo[k] = min(outLo[k], v[k])
			outHi[k] = max(outHi[k], v[k])
		}
	}
	return outLo, outHi
}

// Interleaved packs position and normal per vertex, 6 floats each.
func (g *Geometry) Interleaved() []float32 {
	out := make([]float32, 0, len(g.Positions)*6)
	for i, p := range g.Positions {
		var n [3]float32
		if i < len(g.Normals) {
			n = g.Normals[i]
		}
		out = append(out, p[0], p[1], p[2], n[0], n[1], n[2])
	}
	return out
}

// computeNormals fills smooth vertex normals from the triangle list.
func (g *Geometry) computeNormals() {
	acc := make([]mgl32.Vec3, len(g.Positions))
	for i := 0; i+2 < len(g.Indices); i += 3 {
		a, b, c := g.Indices[i], g.Indices[i+1], g.Indices[i+2]
		pa, pb, pc := mgl32.Vec3(g.Positions[a]), mgl32.Vec3(g.Positions[b]), mgl32.Vec3(g.Positions[c])
		n := pb.Sub(pa).Cross(pc.Sub(pa))
		acc[a] = acc[a].Add(n)
		acc[b] = acc[b].Add(n)
		acc[c] = acc[c].Add(n)
	}
	g.Normals = make([][3]float32, len(acc))
	for i, n := range acc {
		if n.Dot(n) > 0 {
			n = n.Normalize()
		}
		g.Normals[i] = n
	}
}
