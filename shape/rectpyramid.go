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

// RectPyramid is a rectangular pyramid sensor volume bounded by four
// half-angles from an apex at the origin to a base rectangle at
// z=Length. There is nothing to subdivide, so unlike the conic shapes
// it has no segment parameters: the topology is fixed at 10 vertices
// and 18 indices (4 flat-shaded side faces plus the base quad).
type RectPyramid struct {
	// Length is the depth of the volume along the z axis.
	Length float64

	// Half-angles in radians from the z axis to each side plane;
	// all must be positive and below π/2.
	LeftHalfAngle  float64
	RightHalfAngle float64
	FrontHalfAngle float64
	BackHalfAngle  float64

	Format VertexFormat
	Offset OffsetAttribute
}

// NewRectPyramid returns rect pyramid options with defaults:
// position + normal format, offset unset.
func NewRectPyramid() *RectPyramid {
	return &RectPyramid{Format: PositionNormal, Offset: OffsetUnset}
}

// RectPyramidPackedLen is the packed length of RectPyramid options.
const RectPyramidPackedLen = 7

// PackedLen returns RectPyramidPackedLen.
func (o *RectPyramid) PackedLen() int { return RectPyramidPackedLen }

// Pack writes the options as 7 floats at start, in field order:
// length, left, right, front, back half-angles, offset, vertex format.
func (o *RectPyramid) Pack(dst []float64, start int) []float64 {
	dst = packEnsure(dst, start, RectPyramidPackedLen)
	dst[start] = o.Length
	dst[start+1] = o.LeftHalfAngle
	dst[start+2] = o.RightHalfAngle
	dst[start+3] = o.FrontHalfAngle
	dst[start+4] = o.BackHalfAngle
	dst[start+5] = packOffset(o.Offset)
	dst[start+6] = float64(o.Format)
	return dst
}

// UnpackRectPyramid is the exact inverse of [RectPyramid.Pack].
func UnpackRectPyramid(src []float64, start int) (*RectPyramid, error) {
	if err := unpackCheck(src, start, RectPyramidPackedLen, "rect pyramid"); err != nil {
		return nil, err
	}
	return &RectPyramid{
		Length:         src[start],
		LeftHalfAngle:  src[start+1],
		RightHalfAngle: src[start+2],
		FrontHalfAngle: src[start+3],
		BackHalfAngle:  src[start+4],
		Offset:         unpackOffset(src[start+5]),
		Format:         VertexFormat(src[start+6]),
	}, nil
}

func (o *RectPyramid) validate() error {
	for _, a := range [4]float64{o.LeftHalfAngle, o.RightHalfAngle, o.FrontHalfAngle, o.BackHalfAngle} {
		if a >= math.Pi/2 {
			return fmt.Errorf("%w: half-angle %v must be below π/2", ErrInvalidOptions, a)
		}
	}
	return nil
}

func (o *RectPyramid) degenerate() bool {
	return o.Length <= 0 ||
		o.LeftHalfAngle <= 0 || o.RightHalfAngle <= 0 ||
		o.FrontHalfAngle <= 0 || o.BackHalfAngle <= 0
}

// corners returns the base rectangle corners at z=Length, counter
// clockwise viewed from +z, starting at (+x, -y).
func (o *RectPyramid) corners() [4][2]float64 {
	xr := o.Length * math.Tan(o.RightHalfAngle)
	xl := -o.Length * math.Tan(o.LeftHalfAngle)
	yf := o.Length * math.Tan(o.FrontHalfAngle)
	yb := -o.Length * math.Tan(o.BackHalfAngle)
	return [4][2]float64{{xr, yb}, {xr, yf}, {xl, yf}, {xl, yb}}
}

func (o *RectPyramid) bounds() BoundingSphere {
	rmax := 0.0
	for _, c := range o.corners() {
		rmax = math.Max(rmax, math.Hypot(c[0], c[1]))
	}
	return BoundingSphere{
		Center: r3.Vec{Z: o.Length / 2},
		Radius: math.Hypot(o.Length, rmax),
	}
}

// sideNormals returns the outward flat-face normal per side face i,
// where face i spans corner i to corner i+1: right, front, left, back.
func (o *RectPyramid) sideNormals() [4]math32.Vector3 {
	r, f := o.RightHalfAngle, o.FrontHalfAngle
	l, b := o.LeftHalfAngle, o.BackHalfAngle
	return [4]math32.Vector3{
		math32.Vec3(float32(math.Cos(r)), 0, float32(-math.Sin(r))),
		math32.Vec3(0, float32(math.Cos(f)), float32(-math.Sin(f))),
		math32.Vec3(float32(-math.Cos(l)), 0, float32(-math.Sin(l))),
		math32.Vec3(0, float32(-math.Cos(b)), float32(-math.Sin(b))),
	}
}

// Build tessellates the pyramid. Vertex layout: apex, then the four
// side-ring corners plus a wrap duplicate of the first (each ring
// vertex carries the normal of the face it leads), then the four base
// corners. Faces: 4 side triangles and the base quad.
func (o *RectPyramid) Build() (*MeshData, error) {
	vf := o.Format
	if !vf.Has(Position) {
		return nil, fmt.Errorf("%w: vertex format must include position", ErrInvalidOptions)
	}
	if err := o.validate(); err != nil {
		return nil, err
	}
	if o.degenerate() {
		return nil, nil
	}

	const numVertex = 10
	const numIndex = 18
	m := newMeshData(numVertex, numIndex, vf, Triangles, o.Offset)
	vw := vertexWriter{m: m}
	iw := indexWriter{m: m}

	cs := o.corners()
	ns := o.sideNormals()
	apexNorm := math32.Vec3(0, 0, -1)
	xTan := math32.Vec3(1, 0, 0)

	vw.add(0, 0, 0, apexNorm, xTan, 0.5, 0)
	for i := 0; i < 5; i++ {
		c := cs[i%4]
		n := ns[min(i, 3)]
		vw.add(c[0], c[1], o.Length, n, xTan, float32(i)/4, 1)
	}
	baseNorm := math32.Vec3(0, 0, 1)
	baseUV := [4][2]float32{{1, 0}, {1, 1}, {0, 1}, {0, 0}}
	for i, c := range cs {
		vw.add(c[0], c[1], o.Length, baseNorm, xTan, baseUV[i][0], baseUV[i][1])
	}

	for i := uint32(0); i < 4; i++ {
		iw.tri(0, 1+i, 2+i)
	}
	iw.quad(6, 7, 8, 9)

	m.Bounds = o.bounds()
	return m, nil
}

// RectPyramidOutline is the line-segment outline of a [RectPyramid]:
// apex edges, base rectangle, and the two diagonals connecting the
// midpoints of opposite base edges. Fixed 9-vertex, 10-segment
// topology; positions only.
type RectPyramidOutline struct {
	Length         float64
	LeftHalfAngle  float64
	RightHalfAngle float64
	FrontHalfAngle float64
	BackHalfAngle  float64
	Offset         OffsetAttribute
}

// NewRectPyramidOutline returns outline options with offset unset.
func NewRectPyramidOutline() *RectPyramidOutline {
	return &RectPyramidOutline{Offset: OffsetUnset}
}

// RectPyramidOutlinePackedLen is the packed length of the outline
// options (no vertex format).
const RectPyramidOutlinePackedLen = 6

// PackedLen returns RectPyramidOutlinePackedLen.
func (o *RectPyramidOutline) PackedLen() int { return RectPyramidOutlinePackedLen }

// Pack writes the options as 6 floats at start, in the same field
// order as the solid variant minus the vertex format.
func (o *RectPyramidOutline) Pack(dst []float64, start int) []float64 {
	dst = packEnsure(dst, start, RectPyramidOutlinePackedLen)
	dst[start] = o.Length
	dst[start+1] = o.LeftHalfAngle
	dst[start+2] = o.RightHalfAngle
	dst[start+3] = o.FrontHalfAngle
	dst[start+4] = o.BackHalfAngle
	dst[start+5] = packOffset(o.Offset)
	return dst
}

// UnpackRectPyramidOutline is the exact inverse of [RectPyramidOutline.Pack].
func UnpackRectPyramidOutline(src []float64, start int) (*RectPyramidOutline, error) {
	if err := unpackCheck(src, start, RectPyramidOutlinePackedLen, "rect pyramid outline"); err != nil {
		return nil, err
	}
	return &RectPyramidOutline{
		Length:         src[start],
		LeftHalfAngle:  src[start+1],
		RightHalfAngle: src[start+2],
		FrontHalfAngle: src[start+3],
		BackHalfAngle:  src[start+4],
		Offset:         unpackOffset(src[start+5]),
	}, nil
}

// Build emits the outline.
func (o *RectPyramidOutline) Build() (*MeshData, error) {
	solid := RectPyramid{
		Length:         o.Length,
		LeftHalfAngle:  o.LeftHalfAngle,
		RightHalfAngle: o.RightHalfAngle,
		FrontHalfAngle: o.FrontHalfAngle,
		BackHalfAngle:  o.BackHalfAngle,
	}
	if err := solid.validate(); err != nil {
		return nil, err
	}
	if solid.degenerate() {
		return nil, nil
	}

	const numVertex = 9
	const numSegs = 10
	m := newMeshData(numVertex, numSegs*2, Position, Lines, o.Offset)
	vw := vertexWriter{m: m}
	iw := indexWriter{m: m}

	cs := solid.corners()
	var zero math32.Vector3
	vw.add(0, 0, 0, zero, zero, 0, 0)
	for _, c := range cs {
		vw.add(c[0], c[1], solid.Length, zero, zero, 0, 0)
	}
	for i := range cs {
		j := (i + 1) % 4
		vw.add((cs[i][0]+cs[j][0])/2, (cs[i][1]+cs[j][1])/2, solid.Length, zero, zero, 0, 0)
	}

	for i := uint32(1); i <= 4; i++ {
		iw.line(0, i) // apex edges
	}
	for i := uint32(0); i < 4; i++ {
		iw.line(1+i, 1+(i+1)%4) // base rectangle
	}
	iw.line(5, 7) // midpoint diagonals
	iw.line(6, 8)

	m.Bounds = solid.bounds()
	return m, nil
}
