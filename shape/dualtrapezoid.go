// Copyright 2026 The SensorShape Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import (
	"fmt"
	"math"

	"cogentcore.org/core/math32"
	"gonum.org/v1/gonum/spatial/r3"
)

// DualTrapezoid is a SAR-style sensor volume: two independent
// trapezoidal pyramid lobes sharing the apex at the origin, the right
// lobe toward +x and the left toward -x, each governed by its own
// (min angle, max angle, width) triple. A lobe with nonpositive width
// is omitted; negative widths are clamped to zero first (documented
// leniency, not an error). Lobe sizes are fixed, so total buffer
// sizes are a per-lobe block times the number of active lobes,
// computed before allocation.
type DualTrapezoid struct {
	// Length is the depth of the volume along the z axis.
	Length float64

	// Left lobe: angular span in radians from the z axis toward -x,
	// and beam width along y at depth Length.
	LeftMinAngle float64
	LeftMaxAngle float64
	LeftWidth    float64

	// Right lobe, toward +x.
	RightMinAngle float64
	RightMaxAngle float64
	RightWidth    float64

	Format VertexFormat
	Offset OffsetAttribute
}

// NewDualTrapezoid returns dual trapezoid options with defaults:
// position + normal format, offset unset.
func NewDualTrapezoid() *DualTrapezoid {
	return &DualTrapezoid{Format: PositionNormal, Offset: OffsetUnset}
}

// DualTrapezoidPackedLen is the packed length of DualTrapezoid options.
const DualTrapezoidPackedLen = 9

// Per-lobe block sizes. The solid block is 4 side triangles with
// fully duplicated vertices (flat shading) plus a 4-vertex base quad;
// the outline block is apex spokes, split base edges and midpoint
// spokes through the base center.
const (
	lobeSolidVertex   = 16
	lobeSolidIndex    = 18
	lobeOutlineVertex = 10
	lobeOutlineSegs   = 16
)

// PackedLen returns DualTrapezoidPackedLen.
func (o *DualTrapezoid) PackedLen() int { return DualTrapezoidPackedLen }

// Pack writes the options as 9 floats at start, in field order:
// length, left min/max/width, right min/max/width, offset, vertex format.
func (o *DualTrapezoid) Pack(dst []float64, start int) []float64 {
	dst = packEnsure(dst, start, DualTrapezoidPackedLen)
	dst[start] = o.Length
	dst[start+1] = o.LeftMinAngle
	dst[start+2] = o.LeftMaxAngle
	dst[start+3] = o.LeftWidth
	dst[start+4] = o.RightMinAngle
	dst[start+5] = o.RightMaxAngle
	dst[start+6] = o.RightWidth
	dst[start+7] = packOffset(o.Offset)
	dst[start+8] = float64(o.Format)
	return dst
}

// UnpackDualTrapezoid is the exact inverse of [DualTrapezoid.Pack].
func UnpackDualTrapezoid(src []float64, start int) (*DualTrapezoid, error) {
	if err := unpackCheck(src, start, DualTrapezoidPackedLen, "dual trapezoid"); err != nil {
		return nil, err
	}
	return &DualTrapezoid{
		Length:        src[start],
		LeftMinAngle:  src[start+1],
		LeftMaxAngle:  src[start+2],
		LeftWidth:     src[start+3],
		RightMinAngle: src[start+4],
		RightMaxAngle: src[start+5],
		RightWidth:    src[start+6],
		Offset:        unpackOffset(src[start+7]),
		Format:        VertexFormat(src[start+8]),
	}, nil
}

// lobe is the resolved per-lobe parameter set. side is +1 (right,
// toward +x) or -1 (left, toward -x).
type lobe struct {
	side     float64
	min, max float64
	width    float64
}

// activeLobes clamps negative widths to zero and returns the lobes
// with positive width.
func (o *DualTrapezoid) activeLobes() []lobe {
	ls := make([]lobe, 0, 2)
	if w := math.Max(o.LeftWidth, 0); w > 0 {
		ls = append(ls, lobe{side: -1, min: o.LeftMinAngle, max: o.LeftMaxAngle, width: w})
	}
	if w := math.Max(o.RightWidth, 0); w > 0 {
		ls = append(ls, lobe{side: 1, min: o.RightMinAngle, max: o.RightMaxAngle, width: w})
	}
	return ls
}

func (o *DualTrapezoid) validate(ls []lobe) error {
	for _, l := range ls {
		if l.min >= l.max {
			return fmt.Errorf("%w: lobe min angle %v must be below max angle %v",
				ErrInvalidOptions, l.min, l.max)
		}
		if l.max >= math.Pi/2 || l.min < 0 {
			return fmt.Errorf("%w: lobe angles [%v, %v] must lie in [0, π/2)",
				ErrInvalidOptions, l.min, l.max)
		}
	}
	return nil
}

// baseCorners returns the lobe's base rectangle corners at z=Length,
// counter clockwise viewed from +z for the right lobe: near -y,
// far -y, far +y, near +y, where near/far are the min/max angle edges.
func (l lobe) baseCorners(length float64) [4][2]float64 {
	xn := l.side * length * math.Tan(l.min)
	xf := l.side * length * math.Tan(l.max)
	h := l.width / 2
	return [4][2]float64{{xn, -h}, {xf, -h}, {xf, h}, {xn, h}}
}

// sideNormals returns the outward flat normal of side face i, where
// face i spans base corner i to corner i+1. Faces 0 and 2 are the
// ±y width faces, tilted by atan2(length, width/2); faces 1 and 3 are
// the max- and min-angle slant faces. The same side index order is
// used for texture coordinate assignment.
func (l lobe) sideNormals(length float64) [4]math32.Vector3 {
	aw := math.Atan2(length, l.width/2)
	sw, cw := math.Sin(aw), math.Cos(aw)
	s := l.side
	return [4]math32.Vector3{
		math32.Vec3(0, float32(-sw), float32(-cw)),
		math32.Vec3(float32(s*math.Cos(l.max)), 0, float32(-math.Sin(l.max))),
		math32.Vec3(0, float32(sw), float32(-cw)),
		math32.Vec3(float32(-s*math.Cos(l.min)), 0, float32(math.Sin(l.min))),
	}
}

func (o *DualTrapezoid) bounds(ls []lobe) BoundingSphere {
	rmax := 0.0
	for _, l := range ls {
		for _, c := range l.baseCorners(o.Length) {
			rmax = math.Max(rmax, math.Hypot(c[0], c[1]))
		}
	}
	return BoundingSphere{
		Center: r3.Vec{Z: o.Length / 2},
		Radius: math.Hypot(o.Length, rmax),
	}
}

// Build tessellates the active lobes. Each lobe contributes a fixed
// 16-vertex, 18-index block: 4 flat-shaded side triangles with fully
// duplicated vertices, then the base quad.
func (o *DualTrapezoid) Build() (*MeshData, error) {
	vf := o.Format
	if !vf.Has(Position) {
		return nil, fmt.Errorf("%w: vertex format must include position", ErrInvalidOptions)
	}
	ls := o.activeLobes()
	if err := o.validate(ls); err != nil {
		return nil, err
	}
	if o.Length <= 0 || len(ls) == 0 {
		return nil, nil
	}

	m := newMeshData(len(ls)*lobeSolidVertex, len(ls)*lobeSolidIndex, vf, Triangles, o.Offset)
	vw := vertexWriter{m: m}
	iw := indexWriter{m: m}

	for _, l := range ls {
		o.emitLobe(&vw, &iw, l)
	}

	m.Bounds = o.bounds(ls)
	return m, nil
}

func (o *DualTrapezoid) emitLobe(vw *vertexWriter, iw *indexWriter, l lobe) {
	cs := l.baseCorners(o.Length)
	ns := l.sideNormals(o.Length)
	xTan := math32.Vec3(1, 0, 0)

	start := uint32(vw.vtx)
	for i := 0; i < 4; i++ {
		j := (i + 1) % 4
		n := ns[i]
		u := float32(i) / 4
		vw.add(0, 0, 0, n, xTan, u+0.125, 0)
		vw.add(cs[i][0], cs[i][1], o.Length, n, xTan, u, 1)
		vw.add(cs[j][0], cs[j][1], o.Length, n, xTan, u+0.25, 1)
		iw.tri(start+uint32(i*3), start+uint32(i*3+1), start+uint32(i*3+2))
	}

	baseNorm := math32.Vec3(0, 0, 1)
	baseUV := [4][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	base := uint32(vw.vtx)
	for i, c := range cs {
		vw.add(c[0], c[1], o.Length, baseNorm, xTan, baseUV[i][0], baseUV[i][1])
	}
	iw.quad(base, base+1, base+2, base+3)
}

// DualTrapezoidOutline is the line-segment outline of a
// [DualTrapezoid]. Each active lobe contributes a fixed 10-vertex,
// 16-segment block; positions only.
type DualTrapezoidOutline struct {
	Length        float64
	LeftMinAngle  float64
	LeftMaxAngle  float64
	LeftWidth     float64
	RightMinAngle float64
	RightMaxAngle float64
	RightWidth    float64
	Offset        OffsetAttribute
}

// NewDualTrapezoidOutline returns outline options with offset unset.
func NewDualTrapezoidOutline() *DualTrapezoidOutline {
	return &DualTrapezoidOutline{Offset: OffsetUnset}
}

// DualTrapezoidOutlinePackedLen is the packed length of the outline
// options (no vertex format).
const DualTrapezoidOutlinePackedLen = 8

// PackedLen returns DualTrapezoidOutlinePackedLen.
func (o *DualTrapezoidOutline) PackedLen() int { return DualTrapezoidOutlinePackedLen }

// Pack writes the options as 8 floats at start, in the same field
// order as the solid variant minus the vertex format.
func (o *DualTrapezoidOutline) Pack(dst []float64, start int) []float64 {
	dst = packEnsure(dst, start, DualTrapezoidOutlinePackedLen)
	dst[start] = o.Length
	dst[start+1] = o.LeftMinAngle
	dst[start+2] = o.LeftMaxAngle
	dst[start+3] = o.LeftWidth
	dst[start+4] = o.RightMinAngle
	dst[start+5] = o.RightMaxAngle
	dst[start+6] = o.RightWidth
	dst[start+7] = packOffset(o.Offset)
	return dst
}

// UnpackDualTrapezoidOutline is the exact inverse of [DualTrapezoidOutline.Pack].
func UnpackDualTrapezoidOutline(src []float64, start int) (*DualTrapezoidOutline, error) {
	if err := unpackCheck(src, start, DualTrapezoidOutlinePackedLen, "dual trapezoid outline"); err != nil {
		return nil, err
	}
	return &DualTrapezoidOutline{
		Length:        src[start],
		LeftMinAngle:  src[start+1],
		LeftMaxAngle:  src[start+2],
		LeftWidth:     src[start+3],
		RightMinAngle: src[start+4],
		RightMaxAngle: src[start+5],
		RightWidth:    src[start+6],
		Offset:        unpackOffset(src[start+7]),
	}, nil
}

// Build emits the outline blocks for the active lobes. Per lobe:
// apex, 4 base corners, 4 base edge midpoints, base center; segments
// are the 4 apex spokes, the 8 half edges of the base rectangle, and
// the 4 midpoint spokes through the center.
func (o *DualTrapezoidOutline) Build() (*MeshData, error) {
	solid := DualTrapezoid{
		Length:        o.Length,
		LeftMinAngle:  o.LeftMinAngle,
		LeftMaxAngle:  o.LeftMaxAngle,
		LeftWidth:     o.LeftWidth,
		RightMinAngle: o.RightMinAngle,
		RightMaxAngle: o.RightMaxAngle,
		RightWidth:    o.RightWidth,
	}
	ls := solid.activeLobes()
	if err := solid.validate(ls); err != nil {
		return nil, err
	}
	if o.Length <= 0 || len(ls) == 0 {
		return nil, nil
	}

	m := newMeshData(len(ls)*lobeOutlineVertex, len(ls)*lobeOutlineSegs*2, Position, Lines, o.Offset)
	vw := vertexWriter{m: m}
	iw := indexWriter{m: m}

	var zero math32.Vector3
	for _, l := range ls {
		cs := l.baseCorners(o.Length)
		start := uint32(vw.vtx)
		vw.add(0, 0, 0, zero, zero, 0, 0)
		cx, cy := 0.0, 0.0
		for _, c := range cs {
			vw.add(c[0], c[1], o.Length, zero, zero, 0, 0)
			cx += c[0] / 4
			cy += c[1] / 4
		}
		for i := range cs {
			j := (i + 1) % 4
			vw.add((cs[i][0]+cs[j][0])/2, (cs[i][1]+cs[j][1])/2, o.Length, zero, zero, 0, 0)
		}
		vw.add(cx, cy, o.Length, zero, zero, 0, 0)

		apex, corner, mid, center := start, start+1, start+5, start+9
		for i := uint32(0); i < 4; i++ {
			iw.line(apex, corner+i)
			iw.line(corner+i, mid+i)
			iw.line(mid+i, corner+(i+1)%4)
			iw.line(mid+i, center)
		}
	}

	m.Bounds = solid.bounds(ls)
	return m, nil
}
