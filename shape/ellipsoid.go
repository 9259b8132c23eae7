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

// EllipsoidShell is a full or partial ellipsoid surface, optionally
// hollow: when InnerRadii differs from Radii a second inward-facing
// surface is added, and cap quads stitch the two surfaces wherever
// the shell is open at a cone boundary or along the clock range.
//
// The surface is a latitude/longitude grid of (StackPartitions+1)
// rows by (SlicePartitions+1) columns; the seam column and the
// per-column pole vertices are duplicated so discontinuous attributes
// stay per-face. All triangle counts, including the caps, come from
// the closed-form formula used to size the buffers; nothing is grown
// dynamically.
type EllipsoidShell struct {
	// Radii are the outer semi-axes; all components must be positive.
	Radii r3.Vec

	// InnerRadii are the inner semi-axes; equal to Radii for a
	// non-hollow shell.
	InnerRadii r3.Vec

	// StackPartitions and SlicePartitions subdivide the cone and
	// clock ranges (minimum 3 each).
	StackPartitions int
	SlicePartitions int

	// MinimumClock and MaximumClock bound the longitude sweep in
	// radians (full range 0 to 2π).
	MinimumClock float64
	MaximumClock float64

	// MinimumCone and MaximumCone bound the latitude sweep in radians
	// measured from the +z pole (full range 0 to π).
	MinimumCone float64
	MaximumCone float64

	Format VertexFormat
	Offset OffsetAttribute
}

// NewEllipsoidShell returns ellipsoid options for a closed unit
// sphere shell: 64 partitions each way, full clock and cone ranges,
// position + normal.
func NewEllipsoidShell() *EllipsoidShell {
	one := r3.Vec{X: 1, Y: 1, Z: 1}
	return &EllipsoidShell{
		Radii:           one,
		InnerRadii:      one,
		StackPartitions: 64,
		SlicePartitions: 64,
		MaximumClock:    2 * math.Pi,
		MaximumCone:     math.Pi,
		Format:          PositionNormal,
		Offset:          OffsetUnset,
	}
}

// EllipsoidShellPackedLen is the packed length of EllipsoidShell options.
const EllipsoidShellPackedLen = 14

// PackedLen returns EllipsoidShellPackedLen.
func (o *EllipsoidShell) PackedLen() int { return EllipsoidShellPackedLen }

// Pack writes the options as 14 floats at start, in field order:
// radii xyz, inner radii xyz, stack and slice partitions, min/max
// clock, min/max cone, offset, vertex format.
func (o *EllipsoidShell) Pack(dst []float64, start int) []float64 {
	dst = packEnsure(dst, start, EllipsoidShellPackedLen)
	dst[start] = o.Radii.X
	dst[start+1] = o.Radii.Y
	dst[start+2] = o.Radii.Z
	dst[start+3] = o.InnerRadii.X
	dst[start+4] = o.InnerRadii.Y
	dst[start+5] = o.InnerRadii.Z
	dst[start+6] = float64(o.StackPartitions)
	dst[start+7] = float64(o.SlicePartitions)
	dst[start+8] = o.MinimumClock
	dst[start+9] = o.MaximumClock
	dst[start+10] = o.MinimumCone
	dst[start+11] = o.MaximumCone
	dst[start+12] = packOffset(o.Offset)
	dst[start+13] = float64(o.Format)
	return dst
}

// UnpackEllipsoidShell is the exact inverse of [EllipsoidShell.Pack].
func UnpackEllipsoidShell(src []float64, start int) (*EllipsoidShell, error) {
	if err := unpackCheck(src, start, EllipsoidShellPackedLen, "ellipsoid shell"); err != nil {
		return nil, err
	}
	return &EllipsoidShell{
		Radii:           r3.Vec{X: src[start], Y: src[start+1], Z: src[start+2]},
		InnerRadii:      r3.Vec{X: src[start+3], Y: src[start+4], Z: src[start+5]},
		StackPartitions: int(src[start+6]),
		SlicePartitions: int(src[start+7]),
		MinimumClock:    src[start+8],
		MaximumClock:    src[start+9],
		MinimumCone:     src[start+10],
		MaximumCone:     src[start+11],
		Offset:          unpackOffset(src[start+12]),
		Format:          VertexFormat(src[start+13]),
	}, nil
}

func (o *EllipsoidShell) validate() error {
	if o.StackPartitions < 3 {
		return fmt.Errorf("%w: stack partitions must be >= 3, got %d", ErrInvalidOptions, o.StackPartitions)
	}
	if o.SlicePartitions < 3 {
		return fmt.Errorf("%w: slice partitions must be >= 3, got %d", ErrInvalidOptions, o.SlicePartitions)
	}
	if o.InnerRadii.X > o.Radii.X || o.InnerRadii.Y > o.Radii.Y || o.InnerRadii.Z > o.Radii.Z {
		return fmt.Errorf("%w: inner radii %v exceed radii %v", ErrInvalidOptions, o.InnerRadii, o.Radii)
	}
	if o.MinimumCone < 0 || o.MaximumCone > math.Pi {
		return fmt.Errorf("%w: cone range [%v, %v] must lie in [0, π]",
			ErrInvalidOptions, o.MinimumCone, o.MaximumCone)
	}
	return nil
}

func (o *EllipsoidShell) degenerate() bool {
	return o.Radii.X <= 0 || o.Radii.Y <= 0 || o.Radii.Z <= 0 ||
		o.InnerRadii.X <= 0 || o.InnerRadii.Y <= 0 || o.InnerRadii.Z <= 0 ||
		o.MaximumClock-o.MinimumClock <= 0 || o.MaximumCone-o.MinimumCone <= 0
}

// geodeticNormal returns the analytic surface normal of the ellipsoid
// with the given semi-axes at point (x,y,z): the gradient direction
// (x/a², y/b², z/c²) normalized. Exact at the poles.
func geodeticNormal(radii r3.Vec, x, y, z float64) math32.Vector3 {
	nx := x / (radii.X * radii.X)
	ny := y / (radii.Y * radii.Y)
	nz := z / (radii.Z * radii.Z)
	l := math.Sqrt(nx*nx + ny*ny + nz*nz)
	return math32.Vec3(float32(nx/l), float32(ny/l), float32(nz/l))
}

// emitSurface fills one full lat/long grid for the given semi-axes.
// inward negates the normals except at vertices on a closed pole row,
// where the inner and outer surfaces meet and the normal must stay
// continuous; that exception is tracked per vertex while generating.
func (o *EllipsoidShell) emitSurface(vw *vertexWriter, radii r3.Vec, inward, openTop, openBot bool) {
	stack, slice := o.StackPartitions, o.SlicePartitions
	coneLen := o.MaximumCone - o.MinimumCone
	clockLen := o.MaximumClock - o.MinimumClock

	for i := 0; i <= stack; i++ {
		cone := o.MinimumCone + coneLen*float64(i)/float64(stack)
		sinCone, cosCone := math.Sin(cone), math.Cos(cone)
		sharedPole := (i == 0 && !openTop) || (i == stack && !openBot)
		for j := 0; j <= slice; j++ {
			clock := o.MinimumClock + clockLen*float64(j)/float64(slice)
			sinClock, cosClock := math.Sin(clock), math.Cos(clock)

			x := radii.X * sinCone * cosClock
			y := radii.Y * sinCone * sinClock
			z := radii.Z * cosCone

			norm := geodeticNormal(radii, x, y, z)
			if inward && !sharedPole {
				norm = norm.Negate()
			}
			tan := math32.Vec3(float32(-sinClock), float32(cosClock), 0)
			vw.add(x, y, z, norm, tan,
				float32(j)/float32(slice), float32(i)/float32(stack))
		}
	}
}

func (o *EllipsoidShell) bounds() BoundingSphere {
	return BoundingSphere{Radius: math.Max(o.Radii.X, math.Max(o.Radii.Y, o.Radii.Z))}
}

// Build tessellates the shell.
func (o *EllipsoidShell) Build() (*MeshData, error) {
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

	stack, slice := o.StackPartitions, o.SlicePartitions
	rows, cols := stack+1, slice+1
	hollow := o.InnerRadii != o.Radii
	openTop := o.MinimumCone > fullCircleEps
	openBot := o.MaximumCone < math.Pi-fullCircleEps
	openClock := o.MaximumClock-o.MinimumClock < 2*math.Pi-fullCircleEps

	surf := rows * cols
	numVertex := surf
	quads := stack * slice
	if hollow {
		numVertex *= 2
		quads *= 2
		if openTop {
			quads += slice
		}
		if openBot {
			quads += slice
		}
		if openClock {
			quads += 2 * stack
		}
	}

	m := newMeshData(numVertex, quads*6, vf, Triangles, o.Offset)
	vw := vertexWriter{m: m}
	iw := indexWriter{m: m}

	o.emitSurface(&vw, o.Radii, false, openTop, openBot)
	if hollow {
		o.emitSurface(&vw, o.InnerRadii, true, openTop, openBot)
	}

	at := func(base, i, j int) uint32 { return uint32(base + i*cols + j) }

	for i := 1; i <= stack; i++ {
		for j := 1; j <= slice; j++ {
			a := at(0, i, j-1)
			b := at(0, i-1, j-1)
			c := at(0, i-1, j)
			d := at(0, i, j)
			iw.quad(a, b, c, d)
		}
	}
	if hollow {
		// Inner surface reverses winding to face inward.
		for i := 1; i <= stack; i++ {
			for j := 1; j <= slice; j++ {
				a := at(surf, i, j-1)
				b := at(surf, i-1, j-1)
				c := at(surf, i-1, j)
				d := at(surf, i, j)
				iw.quad(d, c, b, a)
			}
		}
		if openTop {
			for j := 0; j < slice; j++ {
				iw.quad(at(0, 0, j), at(0, 0, j+1), at(surf, 0, j+1), at(surf, 0, j))
			}
		}
		if openBot {
			for j := 0; j < slice; j++ {
				iw.quad(at(surf, stack, j), at(surf, stack, j+1), at(0, stack, j+1), at(0, stack, j))
			}
		}
		if openClock {
			for i := 0; i < stack; i++ {
				iw.quad(at(surf, i, 0), at(surf, i+1, 0), at(0, i+1, 0), at(0, i, 0))
				iw.quad(at(0, i, slice), at(0, i+1, slice), at(surf, i+1, slice), at(surf, i, slice))
			}
		}
	}

	m.Bounds = o.bounds()
	return m, nil
}
