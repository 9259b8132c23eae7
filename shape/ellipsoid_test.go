// Copyright 2026 The SensorShape Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestEllipsoidShellPackRoundTrip(t *testing.T) {
	o := NewEllipsoidShell()
	o.Radii = r3.Vec{X: 2, Y: 3, Z: 4}
	o.InnerRadii = r3.Vec{X: 1, Y: 2, Z: 3}
	o.StackPartitions = 8
	o.SlicePartitions = 12
	o.MinimumClock = 0.1
	o.MaximumClock = 3
	o.MinimumCone = 0.2
	o.MaximumCone = 2.5
	o.Offset = OffsetAll
	o.Format = AllChannels

	packed := o.Pack(nil, 0)
	require.Len(t, packed, EllipsoidShellPackedLen)
	got, err := UnpackEllipsoidShell(packed, 0)
	require.NoError(t, err)
	assert.Equal(t, o, got)
}

func TestEllipsoidShellClosedSphere(t *testing.T) {
	o := NewEllipsoidShell()
	o.StackPartitions = 4
	o.SlicePartitions = 4

	m, err := o.Build()
	require.NoError(t, err)
	checkMesh(t, m, 5*5, 4*4*6)
	checkUnitNormals(t, m)
	assert.Equal(t, 1.0, m.Bounds.Radius)

	// Unit sphere: position and normal coincide.
	for i := 0; i < m.NumVertex(); i++ {
		assert.InDelta(t, m.Positions[i*3], float64(m.Normals[i*3]), 1e-6)
		assert.InDelta(t, m.Positions[i*3+1], float64(m.Normals[i*3+1]), 1e-6)
		assert.InDelta(t, m.Positions[i*3+2], float64(m.Normals[i*3+2]), 1e-6)
	}
}

func TestEllipsoidShellHollowClosed(t *testing.T) {
	o := NewEllipsoidShell()
	o.StackPartitions = 4
	o.SlicePartitions = 4
	o.InnerRadii = r3.Vec{X: 0.5, Y: 0.5, Z: 0.5}

	m, err := o.Build()
	require.NoError(t, err)
	// Both surfaces, no caps anywhere on a closed shell.
	checkMesh(t, m, 2*25, 2*4*4*6)
	checkUnitNormals(t, m)

	// An inner vertex away from the poles faces inward.
	inner := 25 + 2*5 + 1 // inner surface, middle row
	dot := m.Positions[inner*3]*float64(m.Normals[inner*3]) +
		m.Positions[inner*3+1]*float64(m.Normals[inner*3+1]) +
		m.Positions[inner*3+2]*float64(m.Normals[inner*3+2])
	assert.Negative(t, dot)

	// Closed-pole inner vertices keep the outward normal.
	pole := 25
	assert.Positive(t, float64(m.Normals[pole*3+2]))
}

func TestEllipsoidShellHollowOpenCones(t *testing.T) {
	o := NewEllipsoidShell()
	o.StackPartitions = 4
	o.SlicePartitions = 4
	o.InnerRadii = r3.Vec{X: 0.5, Y: 0.5, Z: 0.5}
	o.MinimumCone = 0.1
	o.MaximumCone = math.Pi - 0.1

	m, err := o.Build()
	require.NoError(t, err)
	// Top and bottom cap rings stitch inner to outer, reusing the
	// existing ring vertices.
	checkMesh(t, m, 2*25, (2*4*4+4+4)*6)
	checkUnitNormals(t, m)
}

func TestEllipsoidShellHollowOpenClock(t *testing.T) {
	o := NewEllipsoidShell()
	o.StackPartitions = 4
	o.SlicePartitions = 4
	o.InnerRadii = r3.Vec{X: 0.5, Y: 0.5, Z: 0.5}
	o.MaximumClock = math.Pi

	m, err := o.Build()
	require.NoError(t, err)
	checkMesh(t, m, 2*25, (2*4*4+2*4)*6)
	checkUnitNormals(t, m)
}

func TestEllipsoidShellGeodeticNormals(t *testing.T) {
	o := NewEllipsoidShell()
	o.StackPartitions = 8
	o.SlicePartitions = 8
	o.Radii = r3.Vec{X: 2, Y: 1, Z: 1}

	m, err := o.Build()
	require.NoError(t, err)
	checkUnitNormals(t, m)
	assert.Equal(t, 2.0, m.Bounds.Radius)

	// On a non-spherical ellipsoid the geodetic normal differs from
	// the normalized position except on the axes; check it satisfies
	// the gradient direction at every vertex.
	for i := 0; i < m.NumVertex(); i++ {
		x, y, z := m.Positions[i*3], m.Positions[i*3+1], m.Positions[i*3+2]
		g := r3.Unit(r3.Vec{X: x / 4, Y: y, Z: z})
		assert.InDelta(t, g.X, float64(m.Normals[i*3]), 1e-5)
		assert.InDelta(t, g.Y, float64(m.Normals[i*3+1]), 1e-5)
		assert.InDelta(t, g.Z, float64(m.Normals[i*3+2]), 1e-5)
	}
}

func TestEllipsoidShellDegenerate(t *testing.T) {
	for name, mut := range map[string]func(*EllipsoidShell){
		"zero radius":       func(o *EllipsoidShell) { o.Radii.Y = 0 },
		"zero inner radius": func(o *EllipsoidShell) { o.InnerRadii.Z = 0 },
		"empty clock sweep": func(o *EllipsoidShell) { o.MaximumClock = 0 },
		"empty cone sweep":  func(o *EllipsoidShell) { o.MaximumCone = 0 },
	} {
		t.Run(name, func(t *testing.T) {
			o := NewEllipsoidShell()
			mut(o)
			m, err := o.Build()
			assert.NoError(t, err)
			assert.Nil(t, m)
		})
	}
}

func TestEllipsoidShellInvalid(t *testing.T) {
	for name, mut := range map[string]func(*EllipsoidShell){
		"stack too small":   func(o *EllipsoidShell) { o.StackPartitions = 2 },
		"slice too small":   func(o *EllipsoidShell) { o.SlicePartitions = 2 },
		"inner above outer": func(o *EllipsoidShell) { o.InnerRadii.X = 2 },
		"cone out of range": func(o *EllipsoidShell) { o.MinimumCone = -0.1 },
		"cone above pi":     func(o *EllipsoidShell) { o.MaximumCone = 4 },
	} {
		t.Run(name, func(t *testing.T) {
			o := NewEllipsoidShell()
			mut(o)
			m, err := o.Build()
			assert.ErrorIs(t, err, ErrInvalidOptions)
			assert.Nil(t, m)
		})
	}
}
