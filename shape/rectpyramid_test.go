// Copyright 2026 The SensorShape Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRectPyramidPackRoundTrip(t *testing.T) {
	o := NewRectPyramid()
	o.Length = 7
	o.LeftHalfAngle = 0.2
	o.RightHalfAngle = 0.3
	o.FrontHalfAngle = 0.4
	o.BackHalfAngle = 0.5
	o.Offset = OffsetNone
	o.Format = Position | Normal | TexCoord

	packed := o.Pack(nil, 0)
	require.Len(t, packed, RectPyramidPackedLen)
	got, err := UnpackRectPyramid(packed, 0)
	require.NoError(t, err)
	assert.Equal(t, o, got)
}

func TestRectPyramidFixedTopology(t *testing.T) {
	o := NewRectPyramid()
	o.Length = 4
	o.LeftHalfAngle = math.Pi / 6
	o.RightHalfAngle = math.Pi / 6
	o.FrontHalfAngle = math.Pi / 4
	o.BackHalfAngle = math.Pi / 4
	o.Format = AllChannels
	o.Offset = OffsetAll

	m, err := o.Build()
	require.NoError(t, err)
	checkMesh(t, m, 10, 18)
	checkUnitNormals(t, m)
	assert.Equal(t, Triangles, m.Topology)

	// Apex at the origin.
	assert.Equal(t, 0.0, m.Positions[0])
	assert.Equal(t, 0.0, m.Positions[2])
	// Base corners at z=Length with the half-angle extents.
	xr := 4 * math.Tan(math.Pi/6)
	yf := 4 * math.Tan(math.Pi/4)
	assert.InDelta(t, xr, m.Positions[1*3], 1e-12)
	assert.InDelta(t, -yf, m.Positions[1*3+1], 1e-12)
	assert.InDelta(t, 4.0, m.Positions[1*3+2], 1e-12)
}

func TestRectPyramidSideNormalsFaceOutward(t *testing.T) {
	o := NewRectPyramid()
	o.Length = 3
	o.LeftHalfAngle = 0.5
	o.RightHalfAngle = 0.5
	o.FrontHalfAngle = 0.5
	o.BackHalfAngle = 0.5

	m, err := o.Build()
	require.NoError(t, err)
	checkUnitNormals(t, m)

	// Ring vertex 1 leads the right face: normal points toward +x,
	// tilted back toward the apex.
	assert.InDelta(t, math.Cos(0.5), float64(m.Normals[1*3]), 1e-6)
	assert.InDelta(t, 0.0, float64(m.Normals[1*3+1]), 1e-6)
	assert.InDelta(t, -math.Sin(0.5), float64(m.Normals[1*3+2]), 1e-6)
	// Base vertices carry +z.
	assert.InDelta(t, 1.0, float64(m.Normals[6*3+2]), 1e-6)
}

func TestRectPyramidBounds(t *testing.T) {
	o := NewRectPyramid()
	o.Length = 6
	o.LeftHalfAngle = 0.3
	o.RightHalfAngle = 0.6
	o.FrontHalfAngle = 0.2
	o.BackHalfAngle = 0.4

	m, err := o.Build()
	require.NoError(t, err)
	assert.Equal(t, 3.0, m.Bounds.Center.Z)
	rmax := math.Hypot(6*math.Tan(0.6), 6*math.Tan(0.4))
	assert.InDelta(t, math.Hypot(6, rmax), m.Bounds.Radius, 1e-12)
}

func TestRectPyramidDegenerate(t *testing.T) {
	for name, mut := range map[string]func(*RectPyramid){
		"zero length":     func(o *RectPyramid) { o.Length = 0 },
		"zero half angle": func(o *RectPyramid) { o.FrontHalfAngle = 0 },
		"negative angle":  func(o *RectPyramid) { o.LeftHalfAngle = -0.1 },
	} {
		t.Run(name, func(t *testing.T) {
			o := NewRectPyramid()
			o.Length = 5
			o.LeftHalfAngle = 0.3
			o.RightHalfAngle = 0.3
			o.FrontHalfAngle = 0.3
			o.BackHalfAngle = 0.3
			mut(o)
			m, err := o.Build()
			assert.NoError(t, err)
			assert.Nil(t, m)
		})
	}
}

func TestRectPyramidInvalidHalfAngle(t *testing.T) {
	o := NewRectPyramid()
	o.Length = 5
	o.LeftHalfAngle = 0.3
	o.RightHalfAngle = math.Pi / 2
	o.FrontHalfAngle = 0.3
	o.BackHalfAngle = 0.3
	m, err := o.Build()
	assert.ErrorIs(t, err, ErrInvalidOptions)
	assert.Nil(t, m)
}

func TestRectPyramidOutline(t *testing.T) {
	o := NewRectPyramidOutline()
	o.Length = 5
	o.LeftHalfAngle = 0.3
	o.RightHalfAngle = 0.3
	o.FrontHalfAngle = 0.3
	o.BackHalfAngle = 0.3

	packed := o.Pack(nil, 0)
	require.Len(t, packed, RectPyramidOutlinePackedLen)
	got, err := UnpackRectPyramidOutline(packed, 0)
	require.NoError(t, err)
	assert.Equal(t, o, got)

	m, err := o.Build()
	require.NoError(t, err)
	checkMesh(t, m, 9, 20)
	assert.Equal(t, Lines, m.Topology)
	assert.Nil(t, m.Normals)

	o.Length = 0
	m, err = o.Build()
	assert.NoError(t, err)
	assert.Nil(t, m)
}
