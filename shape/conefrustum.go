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

// ConeFrustum is a truncated-cone sensor volume, optionally hollow:
// an annular bottom disc at z=0, an annular top disc at z=Length, and
// inner and outer lateral walls between them, swept over
// [ThetaStart, ThetaStart+ThetaLength). Set the inner radii to 0 for
// a solid frustum.
type ConeFrustum struct {
	// Length is the height of the frustum along the z axis.
	Length float64

	// TopInnerRadius and TopOuterRadius bound the top annulus at z=Length.
	TopInnerRadius float64
	TopOuterRadius float64

	// BottomInnerRadius and BottomOuterRadius bound the bottom annulus
	// at z=0. BottomOuterRadius is the one required nonzero extent.
	BottomInnerRadius float64
	BottomOuterRadius float64

	// ThetaSegments is the angular subdivision count (minimum 3).
	ThetaSegments int

	// PhiSegments is the radial subdivision count of the discs (minimum 1).
	PhiSegments int

	// ThetaStart and ThetaLength give the swept angular range in
	// radians; a sweep of 2π closes the shape.
	ThetaStart  float64
	ThetaLength float64

	Format VertexFormat
	Offset OffsetAttribute
}

// NewConeFrustum returns cone frustum options with canonical defaults:
// 32 theta segments, 1 phi segment, full circle, position + normal.
func NewConeFrustum() *ConeFrustum {
	return &ConeFrustum{
		ThetaSegments: 32,
		PhiSegments:   1,
		ThetaLength:   2 * math.Pi,
		Format:        PositionNormal,
		Offset:        OffsetUnset,
	}
}

// ConeFrustumPackedLen is the packed length of ConeFrustum options.
const ConeFrustumPackedLen = 11

// PackedLen returns ConeFrustumPackedLen.
func (o *ConeFrustum) PackedLen() int { return ConeFrustumPackedLen }

// Pack writes the options as 11 floats at start, in field order:
// length, top inner/outer radius, bottom inner/outer radius, theta
// segments, phi segments, theta start, theta length, offset (-1 when
// unset), vertex format.
func (o *ConeFrustum) Pack(dst []float64, start int) []float64 {
	dst = packEnsure(dst, start, ConeFrustumPackedLen)
	dst[start] = o.Length
	dst[start+1] = o.TopInnerRadius
	dst[start+2] = o.TopOuterRadius
	dst[start+3] = o.BottomInnerRadius
	dst[start+4] = o.BottomOuterRadius
	dst[start+5] = float64(o.ThetaSegments)
	dst[start+6] = float64(o.PhiSegments)
	dst[start+7] = o.ThetaStart
	dst[start+8] = o.ThetaLength
	dst[start+9] = packOffset(o.Offset)
	dst[start+10] = float64(o.Format)
	return dst
}

// UnpackConeFrustum is the exact inverse of [ConeFrustum.Pack].
func UnpackConeFrustum(src []float64, start int) (*ConeFrustum, error) {
	if err := unpackCheck(src, start, ConeFrustumPackedLen, "cone frustum"); err != nil {
		return nil, err
	}
	return &ConeFrustum{
		Length:            src[start],
		TopInnerRadius:    src[start+1],
		TopOuterRadius:    src[start+2],
		BottomInnerRadius: src[start+3],
		BottomOuterRadius: src[start+4],
		ThetaSegments:     int(src[start+5]),
		PhiSegments:       int(src[start+6]),
		ThetaStart:        src[start+7],
		ThetaLength:       src[start+8],
		Offset:            unpackOffset(src[start+9]),
		Format:            VertexFormat(src[start+10]),
	}, nil
}

func (o *ConeFrustum) validate() error {
	if o.ThetaSegments < 3 {
		return fmt.Errorf("%w: theta segments must be >= 3, got %d", ErrInvalidOptions, o.ThetaSegments)
	}
	if o.PhiSegments < 1 {
		return fmt.Errorf("%w: phi segments must be >= 1, got %d", ErrInvalidOptions, o.PhiSegments)
	}
	if o.TopInnerRadius > o.TopOuterRadius {
		return fmt.Errorf("%w: top inner radius %v exceeds top outer radius %v",
			ErrInvalidOptions, o.TopInnerRadius, o.TopOuterRadius)
	}
	if o.BottomInnerRadius > o.BottomOuterRadius {
		return fmt.Errorf("%w: bottom inner radius %v exceeds bottom outer radius %v",
			ErrInvalidOptions, o.BottomInnerRadius, o.BottomOuterRadius)
	}
	return nil
}

// degenerate reports a zero-extent frustum with nothing to draw.
func (o *ConeFrustum) degenerate() bool {
	return o.Length <= 0 || o.ThetaLength <= 0 ||
		o.TopInnerRadius < 0 || o.TopOuterRadius < 0 ||
		o.BottomInnerRadius < 0 || o.BottomOuterRadius == 0
}

func (o *ConeFrustum) bounds() BoundingSphere {
	rmax := math.Max(o.TopOuterRadius, o.BottomOuterRadius)
	return BoundingSphere{
		Center: r3.Vec{Z: o.Length / 2},
		Radius: math.Hypot(o.Length, rmax),
	}
}

// Build tessellates the frustum as four independently gridded ruled
// surfaces: top disc, bottom disc, inner wall, outer wall. If the
// sweep is not a full circle, two closing quads stitch the open edge
// between the walls.
func (o *ConeFrustum) Build() (*MeshData, error) {
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

	theta, phi := o.ThetaSegments, o.PhiSegments
	cols := theta + 1
	full := o.ThetaLength >= 2*math.Pi-fullCircleEps

	numVertex := 2*(phi+1)*cols + 4*cols
	numQuads := 2*phi*theta + 2*theta
	if !full {
		numVertex += 8
		numQuads += 2
	}

	m := newMeshData(numVertex, numQuads*6, vf, Triangles, o.Offset)
	vw := vertexWriter{m: m}
	iw := indexWriter{m: m}

	o.emitDisc(&vw, &iw, o.Length, o.TopInnerRadius, o.TopOuterRadius, 1)
	o.emitDisc(&vw, &iw, 0, o.BottomInnerRadius, o.BottomOuterRadius, -1)
	o.emitWall(&vw, &iw, o.BottomOuterRadius, o.TopOuterRadius, false)
	o.emitWall(&vw, &iw, o.BottomInnerRadius, o.TopInnerRadius, true)
	if !full {
		o.emitClosingQuad(&vw, &iw, o.ThetaStart, false)
		o.emitClosingQuad(&vw, &iw, o.ThetaStart+o.ThetaLength, true)
	}

	m.Bounds = o.bounds()
	return m, nil
}

// angleAt returns the swept angle at column t.
func (o *ConeFrustum) angleAt(t int) float64 {
	return o.ThetaStart + o.ThetaLength*float64(t)/float64(o.ThetaSegments)
}

// emitDisc fills one annular disc grid of (phi+1) x (theta+1)
// vertices at height z, with normal (0,0,nz).
func (o *ConeFrustum) emitDisc(vw *vertexWriter, iw *indexWriter, z, rin, rout float64, nz float32) {
	theta, phi := o.ThetaSegments, o.PhiSegments
	cols := theta + 1
	start := uint32(vw.vtx)
	norm := math32.Vec3(0, 0, nz)
	for p := 0; p <= phi; p++ {
		r := rin + (rout-rin)*float64(p)/float64(phi)
		for t := 0; t <= theta; t++ {
			a := o.angleAt(t)
			ca, sa := math.Cos(a), math.Sin(a)
			tan := math32.Vec3(float32(-sa), float32(ca), 0)
			vw.add(r*ca, r*sa, z, norm, tan,
				float32(t)/float32(theta), float32(p)/float32(phi))
		}
	}
	for p := 1; p <= phi; p++ {
		for t := 1; t <= theta; t++ {
			a := start + uint32(cols*p+t-1)
			b := start + uint32(cols*(p-1)+t-1)
			c := start + uint32(cols*(p-1)+t)
			d := start + uint32(cols*p+t)
			iw.quad(a, b, c, d)
		}
	}
}

// emitWall fills one lateral wall as a 2 x (theta+1) grid from the
// bottom rim (z=0, rBottom) to the top rim (z=Length, rTop). The wall
// normal is analytic from the half-angle between the radius delta and
// the length, so per-vertex normals stay consistent with the cone
// surface rather than with any one triangle.
func (o *ConeFrustum) emitWall(vw *vertexWriter, iw *indexWriter, rBottom, rTop float64, inner bool) {
	theta := o.ThetaSegments
	cols := theta + 1
	start := uint32(vw.vtx)

	slope := math.Atan2(rBottom-rTop, o.Length)
	radial, axial := math.Cos(slope), math.Sin(slope)
	if inner {
		// The inner wall faces the cavity: the whole cone normal flips,
		// axial component included.
		radial, axial = -radial, -axial
	}

	zs := [2]float64{0, o.Length}
	rs := [2]float64{rBottom, rTop}
	for row := 0; row < 2; row++ {
		for t := 0; t <= theta; t++ {
			a := o.angleAt(t)
			ca, sa := math.Cos(a), math.Sin(a)
			norm := math32.Vec3(float32(radial*ca), float32(radial*sa), float32(axial))
			tan := math32.Vec3(float32(-sa), float32(ca), 0)
			vw.add(rs[row]*ca, rs[row]*sa, zs[row], norm, tan,
				float32(t)/float32(theta), float32(row))
		}
	}
	for t := 1; t <= theta; t++ {
		a := start + uint32(cols+t-1)
		b := start + uint32(t-1)
		c := start + uint32(t)
		d := start + uint32(cols+t)
		iw.quad(a, b, c, d)
	}
}

// emitClosingQuad stitches the open edge between inner and outer
// walls at the given end angle of a partial sweep.
func (o *ConeFrustum) emitClosingQuad(vw *vertexWriter, iw *indexWriter, ang float64, atEnd bool) {
	ca, sa := math.Cos(ang), math.Sin(ang)
	norm := math32.Vec3(float32(sa), float32(-ca), 0)
	if atEnd {
		norm = math32.Vec3(float32(-sa), float32(ca), 0)
	}
	tan := math32.Vec3(float32(ca), float32(sa), 0)

	start := uint32(vw.vtx)
	vw.add(o.BottomInnerRadius*ca, o.BottomInnerRadius*sa, 0, norm, tan, 0, 0)
	vw.add(o.BottomOuterRadius*ca, o.BottomOuterRadius*sa, 0, norm, tan, 1, 0)
	vw.add(o.TopOuterRadius*ca, o.TopOuterRadius*sa, o.Length, norm, tan, 1, 1)
	vw.add(o.TopInnerRadius*ca, o.TopInnerRadius*sa, o.Length, norm, tan, 0, 1)
	iw.quad(start, start+1, start+2, start+3)
}

// ConeFrustumOutline is the line-segment outline of a [ConeFrustum]:
// rim circles plus a fixed number of vertical connectors. Outlines
// carry positions only, so there is no vertex format option.
type ConeFrustumOutline struct {
	Length            float64
	TopInnerRadius    float64
	TopOuterRadius    float64
	BottomInnerRadius float64
	BottomOuterRadius float64
	ThetaSegments     int
	PhiSegments       int
	ThetaStart        float64
	ThetaLength       float64
	Offset            OffsetAttribute
}

// NewConeFrustumOutline returns outline options with canonical defaults.
func NewConeFrustumOutline() *ConeFrustumOutline {
	return &ConeFrustumOutline{
		ThetaSegments: 32,
		PhiSegments:   1,
		ThetaLength:   2 * math.Pi,
		Offset:        OffsetUnset,
	}
}

// ConeFrustumOutlinePackedLen is the packed length of the outline
// options: one float shorter than the solid variant, which also packs
// its vertex format.
const ConeFrustumOutlinePackedLen = 10

// outlineVerticals is the fixed number of vertical connector segments
// on the outer wall of the outline.
const outlineVerticals = 4

// PackedLen returns ConeFrustumOutlinePackedLen.
func (o *ConeFrustumOutline) PackedLen() int { return ConeFrustumOutlinePackedLen }

// Pack writes the options as 10 floats at start, in the same field
// order as the solid variant minus the vertex format.
func (o *ConeFrustumOutline) Pack(dst []float64, start int) []float64 {
	dst = packEnsure(dst, start, ConeFrustumOutlinePackedLen)
	dst[start] = o.Length
	dst[start+1] = o.TopInnerRadius
	dst[start+2] = o.TopOuterRadius
	dst[start+3] = o.BottomInnerRadius
	dst[start+4] = o.BottomOuterRadius
	dst[start+5] = float64(o.ThetaSegments)
	dst[start+6] = float64(o.PhiSegments)
	dst[start+7] = o.ThetaStart
	dst[start+8] = o.ThetaLength
	dst[start+9] = packOffset(o.Offset)
	return dst
}

// UnpackConeFrustumOutline is the exact inverse of [ConeFrustumOutline.Pack].
func UnpackConeFrustumOutline(src []float64, start int) (*ConeFrustumOutline, error) {
	if err := unpackCheck(src, start, ConeFrustumOutlinePackedLen, "cone frustum outline"); err != nil {
		return nil, err
	}
	return &ConeFrustumOutline{
		Length:            src[start],
		TopInnerRadius:    src[start+1],
		TopOuterRadius:    src[start+2],
		BottomInnerRadius: src[start+3],
		BottomOuterRadius: src[start+4],
		ThetaSegments:     int(src[start+5]),
		PhiSegments:       int(src[start+6]),
		ThetaStart:        src[start+7],
		ThetaLength:       src[start+8],
		Offset:            unpackOffset(src[start+9]),
	}, nil
}

// Build emits the outline: outer rim circles at top and bottom, inner
// rim circles when an inner radius is nonzero, four vertical
// connectors reusing rim vertices, and, for a partial sweep with
// inner rims, radial edges joining inner to outer at both ends.
func (o *ConeFrustumOutline) Build() (*MeshData, error) {
	solid := ConeFrustum{
		Length:            o.Length,
		TopInnerRadius:    o.TopInnerRadius,
		TopOuterRadius:    o.TopOuterRadius,
		BottomInnerRadius: o.BottomInnerRadius,
		BottomOuterRadius: o.BottomOuterRadius,
		ThetaSegments:     o.ThetaSegments,
		PhiSegments:       o.PhiSegments,
		ThetaStart:        o.ThetaStart,
		ThetaLength:       o.ThetaLength,
	}
	if err := solid.validate(); err != nil {
		return nil, err
	}
	if solid.degenerate() {
		return nil, nil
	}

	theta := o.ThetaSegments
	cols := theta + 1
	full := o.ThetaLength >= 2*math.Pi-fullCircleEps
	hasInner := o.TopInnerRadius > 0 || o.BottomInnerRadius > 0

	// Circles in fixed order: bottom outer, top outer, then the inner
	// pair when present. Verticals and end edges index into them.
	circles := [][2]float64{
		{0, o.BottomOuterRadius},
		{o.Length, o.TopOuterRadius},
	}
	if hasInner {
		circles = append(circles,
			[2]float64{0, o.BottomInnerRadius},
			[2]float64{o.Length, o.TopInnerRadius})
	}

	numVertex := len(circles) * cols
	numSegs := len(circles)*theta + outlineVerticals
	if !full && hasInner {
		numSegs += 4
	}

	m := newMeshData(numVertex, numSegs*2, Position, Lines, o.Offset)
	vw := vertexWriter{m: m}
	iw := indexWriter{m: m}

	var zero math32.Vector3
	for _, c := range circles {
		z, r := c[0], c[1]
		for t := 0; t <= theta; t++ {
			a := solid.angleAt(t)
			vw.add(r*math.Cos(a), r*math.Sin(a), z, zero, zero, 0, 0)
		}
	}
	for c := range circles {
		base := uint32(c * cols)
		for t := 0; t < theta; t++ {
			iw.line(base+uint32(t), base+uint32(t)+1)
		}
	}
	for k := 0; k < outlineVerticals; k++ {
		t := uint32(k * theta / outlineVerticals)
		iw.line(t, uint32(cols)+t)
	}
	if !full && hasInner {
		for _, t := range [2]uint32{0, uint32(theta)} {
			// Radial edges from outer rim to inner rim, bottom then top.
			iw.line(t, uint32(2*cols)+t)
			iw.line(uint32(cols)+t, uint32(3*cols)+t)
		}
	}

	m.Bounds = solid.bounds()
	return m, nil
}
