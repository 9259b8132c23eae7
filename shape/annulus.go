// Copyright 2026 The SensorShape Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import (
	"fmt"
	"math"

	"cogentcore.org/core/math32"
)

// Annulus is a flat ring (or ring sector) in the z=0 plane, swept
// radially from InnerRadius to OuterRadius and angularly over
// [ThetaStart, ThetaStart+ThetaLength). The radius ordering is a
// caller-supplied geometric invariant, so violating it fails fast
// instead of silently skipping.
type Annulus struct {
	InnerRadius float64
	OuterRadius float64

	// ThetaSegments is the angular subdivision count (minimum 3).
	ThetaSegments int

	// PhiSegments is the radial subdivision count (minimum 1).
	PhiSegments int

	ThetaStart  float64
	ThetaLength float64

	Format VertexFormat
	Offset OffsetAttribute
}

// NewAnnulus returns annulus options with defaults: 32 theta
// segments, 1 phi segment, full circle, position + normal.
func NewAnnulus() *Annulus {
	return &Annulus{
		ThetaSegments: 32,
		PhiSegments:   1,
		ThetaLength:   2 * math.Pi,
		Format:        PositionNormal,
		Offset:        OffsetUnset,
	}
}

// AnnulusPackedLen is the packed length of Annulus options.
const AnnulusPackedLen = 8

// PackedLen returns AnnulusPackedLen.
func (o *Annulus) PackedLen() int { return AnnulusPackedLen }

// Pack writes the options as 8 floats at start, in field order:
// inner radius, outer radius, theta segments, phi segments, theta
// start, theta length, offset, vertex format.
func (o *Annulus) Pack(dst []float64, start int) []float64 {
	dst = packEnsure(dst, start, AnnulusPackedLen)
	dst[start] = o.InnerRadius
	dst[start+1] = o.OuterRadius
	dst[start+2] = float64(o.ThetaSegments)
	dst[start+3] = float64(o.PhiSegments)
	dst[start+4] = o.ThetaStart
	dst[start+5] = o.ThetaLength
	dst[start+6] = packOffset(o.Offset)
	dst[start+7] = float64(o.Format)
	return dst
}

// UnpackAnnulus is the exact inverse of [Annulus.Pack].
func UnpackAnnulus(src []float64, start int) (*Annulus, error) {
	if err := unpackCheck(src, start, AnnulusPackedLen, "annulus"); err != nil {
		return nil, err
	}
	return &Annulus{
		InnerRadius:   src[start],
		OuterRadius:   src[start+1],
		ThetaSegments: int(src[start+2]),
		PhiSegments:   int(src[start+3]),
		ThetaStart:    src[start+4],
		ThetaLength:   src[start+5],
		Offset:        unpackOffset(src[start+6]),
		Format:        VertexFormat(src[start+7]),
	}, nil
}

func (o *Annulus) validate() error {
	if o.InnerRadius < 0 {
		return fmt.Errorf("%w: inner radius %v must be >= 0", ErrInvalidOptions, o.InnerRadius)
	}
	if o.OuterRadius < o.InnerRadius {
		return fmt.Errorf("%w: outer radius %v must be >= inner radius %v",
			ErrInvalidOptions, o.OuterRadius, o.InnerRadius)
	}
	if o.ThetaSegments < 3 {
		return fmt.Errorf("%w: theta segments must be >= 3, got %d", ErrInvalidOptions, o.ThetaSegments)
	}
	if o.PhiSegments < 1 {
		return fmt.Errorf("%w: phi segments must be >= 1, got %d", ErrInvalidOptions, o.PhiSegments)
	}
	return nil
}

func (o *Annulus) degenerate() bool {
	return o.OuterRadius == 0 || o.ThetaLength <= 0
}

// emitGrid fills the (phi+1) x (theta+1) planar polar grid and
// returns the base vertex index. The plane normal is +z; texture
// coordinates map the disc onto the unit square, as for a disc
// sector.
func (o *Annulus) emitGrid(vw *vertexWriter) uint32 {
	theta, phi := o.ThetaSegments, o.PhiSegments
	start := uint32(vw.vtx)
	norm := math32.Vec3(0, 0, 1)
	tan := math32.Vec3(1, 0, 0)
	for p := 0; p <= phi; p++ {
		r := o.InnerRadius + (o.OuterRadius-o.InnerRadius)*float64(p)/float64(phi)
		for t := 0; t <= theta; t++ {
			a := o.ThetaStart + o.ThetaLength*float64(t)/float64(theta)
			x, y := r*math.Cos(a), r*math.Sin(a)
			vw.add(x, y, 0, norm, tan,
				float32((x/o.OuterRadius+1)/2), float32((y/o.OuterRadius+1)/2))
		}
	}
	return start
}

func (o *Annulus) bounds() BoundingSphere {
	return BoundingSphere{Radius: o.OuterRadius}
}

// Build tessellates the ring grid; phi*theta quads, two triangles each.
func (o *Annulus) Build() (*MeshData, error) {
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
	numVertex := (phi + 1) * cols
	numIndex := phi * theta * 6

	m := newMeshData(numVertex, numIndex, vf, Triangles, o.Offset)
	vw := vertexWriter{m: m}
	iw := indexWriter{m: m}

	start := o.emitGrid(&vw)
	for p := 1; p <= phi; p++ {
		for t := 1; t <= theta; t++ {
			a := start + uint32(cols*p+t-1)
			b := start + uint32(cols*(p-1)+t-1)
			c := start + uint32(cols*(p-1)+t)
			d := start + uint32(cols*p+t)
			iw.quad(a, b, c, d)
		}
	}

	m.Bounds = o.bounds()
	return m, nil
}

// AnnulusOutline is the line-segment outline of an [Annulus]: every
// grid-cell boundary, both the angular arcs of each radial ring and
// the radial spokes at each angular column, not just the silhouette.
// Positions only.
type AnnulusOutline struct {
	InnerRadius   float64
	OuterRadius   float64
	ThetaSegments int
	PhiSegments   int
	ThetaStart    float64
	ThetaLength   float64
	Offset        OffsetAttribute
}

// NewAnnulusOutline returns outline options with canonical defaults.
func NewAnnulusOutline() *AnnulusOutline {
	return &AnnulusOutline{
		ThetaSegments: 32,
		PhiSegments:   1,
		ThetaLength:   2 * math.Pi,
		Offset:        OffsetUnset,
	}
}

// AnnulusOutlinePackedLen is the packed length of the outline options
// (no vertex format).
const AnnulusOutlinePackedLen = 7

// PackedLen returns AnnulusOutlinePackedLen.
func (o *AnnulusOutline) PackedLen() int { return AnnulusOutlinePackedLen }

// Pack writes the options as 7 floats at start, in the same field
// order as the solid variant minus the vertex format.
func (o *AnnulusOutline) Pack(dst []float64, start int) []float64 {
	dst = packEnsure(dst, start, AnnulusOutlinePackedLen)
	dst[start] = o.InnerRadius
	dst[start+1] = o.OuterRadius
	dst[start+2] = float64(o.ThetaSegments)
	dst[start+3] = float64(o.PhiSegments)
	dst[start+4] = o.ThetaStart
	dst[start+5] = o.ThetaLength
	dst[start+6] = packOffset(o.Offset)
	return dst
}

// UnpackAnnulusOutline is the exact inverse of [AnnulusOutline.Pack].
func UnpackAnnulusOutline(src []float64, start int) (*AnnulusOutline, error) {
	if err := unpackCheck(src, start, AnnulusOutlinePackedLen, "annulus outline"); err != nil {
		return nil, err
	}
	return &AnnulusOutline{
		InnerRadius:   src[start],
		OuterRadius:   src[start+1],
		ThetaSegments: int(src[start+2]),
		PhiSegments:   int(src[start+3]),
		ThetaStart:    src[start+4],
		ThetaLength:   src[start+5],
		Offset:        unpackOffset(src[start+6]),
	}, nil
}

// Build emits the grid-edge outline: (phi+1)*theta angular segments
// plus (theta+1)*phi radial segments over the same vertex grid as the
// solid variant.
func (o *AnnulusOutline) Build() (*MeshData, error) {
	solid := Annulus{
		InnerRadius:   o.InnerRadius,
		OuterRadius:   o.OuterRadius,
		ThetaSegments: o.ThetaSegments,
		PhiSegments:   o.PhiSegments,
		ThetaStart:    o.ThetaStart,
		ThetaLength:   o.ThetaLength,
		Format:        Position,
	}
	if err := solid.validate(); err != nil {
		return nil, err
	}
	if solid.degenerate() {
		return nil, nil
	}

	theta, phi := o.ThetaSegments, o.PhiSegments
	cols := theta + 1
	numVertex := (phi + 1) * cols
	numSegs := (phi+1)*theta + cols*phi

	m := newMeshData(numVertex, numSegs*2, Position, Lines, o.Offset)
	vw := vertexWriter{m: m}
	iw := indexWriter{m: m}

	start := solid.emitGrid(&vw)
	for p := 0; p <= phi; p++ {
		for t := 0; t < theta; t++ {
			i := start + uint32(cols*p+t)
			iw.line(i, i+1)
		}
	}
	for t := 0; t <= theta; t++ {
		for p := 0; p < phi; p++ {
			i := start + uint32(cols*p+t)
			iw.line(i, i+uint32(cols))
		}
	}

	m.Bounds = solid.bounds()
	return m, nil
}
