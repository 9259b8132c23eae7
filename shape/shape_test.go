// Copyright 2026 The SensorShape Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import (
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// checkMesh verifies the structural invariants every built mesh must
// hold: channel lengths consistent with the vertex count, every index
// in range, and the index count matching the topology stride.
func checkMesh(t *testing.T, m *MeshData, wantVertex, wantIndex int) {
	t.Helper()
	require.NotNil(t, m)
	assert.Equal(t, wantVertex, m.NumVertex())
	assert.Equal(t, wantIndex, m.Indices.Len())
	assert.Len(t, m.Positions, wantVertex*3)
	if m.Normals != nil {
		assert.Len(t, []float32(m.Normals), wantVertex*3)
	}
	if m.Tangents != nil {
		assert.Len(t, []float32(m.Tangents), wantVertex*3)
	}
	if m.Bitangents != nil {
		assert.Len(t, []float32(m.Bitangents), wantVertex*3)
	}
	if m.TexCoords != nil {
		assert.Len(t, []float32(m.TexCoords), wantVertex*2)
	}
	if m.ApplyOffset != nil {
		assert.Len(t, m.ApplyOffset, wantVertex)
	}
	stride := 3
	if m.Topology == Lines {
		stride = 2
	}
	assert.Zero(t, m.Indices.Len()%stride)
	for i := 0; i < m.Indices.Len(); i++ {
		assert.Less(t, int(m.Indices.At(i)), wantVertex, "index %d out of range", i)
	}
}

// checkUnitNormals verifies every normal has unit length.
func checkUnitNormals(t *testing.T, m *MeshData) {
	t.Helper()
	require.NotNil(t, m.Normals)
	for i := 0; i < m.NumVertex(); i++ {
		n := math32.Vec3(m.Normals[i*3], m.Normals[i*3+1], m.Normals[i*3+2])
		assert.InDelta(t, 1.0, n.Length(), 1e-5, "normal %d", i)
	}
}

func TestIndexArrayWidth(t *testing.T) {
	small := NewIndexArray(6, 100)
	assert.True(t, small.Is16())
	small.Set(0, 1, 2, 3)
	small.Set(3, 70000%65536, 4, 5)
	assert.Equal(t, uint32(1), small.At(0))
	assert.Equal(t, 6, small.Len())
	assert.NotNil(t, small.U16())
	assert.Nil(t, small.U32())

	big := NewIndexArray(3, 1<<16)
	assert.False(t, big.Is16())
	big.Set(0, 1<<17, 2, 3)
	assert.Equal(t, uint32(1<<17), big.At(0))
	assert.NotNil(t, big.U32())
}

func TestVertexFormatHas(t *testing.T) {
	assert.True(t, PositionNormal.Has(Position))
	assert.True(t, PositionNormal.Has(Normal))
	assert.False(t, PositionNormal.Has(TexCoord))
	assert.True(t, AllChannels.Has(PositionNormal|Tangent|Bitangent|TexCoord))
}

func TestOffsetAttributeChannels(t *testing.T) {
	m := newMeshData(4, 6, Position, Triangles, OffsetAll)
	require.Len(t, m.ApplyOffset, 4)
	for _, v := range m.ApplyOffset {
		assert.Equal(t, uint8(1), v)
	}

	m = newMeshData(4, 6, Position, Triangles, OffsetNone)
	require.Len(t, m.ApplyOffset, 4)
	for _, v := range m.ApplyOffset {
		assert.Equal(t, uint8(0), v)
	}

	m = newMeshData(4, 6, Position, Triangles, OffsetUnset)
	assert.Nil(t, m.ApplyOffset)
}

func TestPackOffsetSentinel(t *testing.T) {
	assert.Equal(t, PackedAbsent, packOffset(OffsetUnset))
	assert.Equal(t, 0.0, packOffset(OffsetNone))
	assert.Equal(t, 1.0, packOffset(OffsetAll))
	assert.Equal(t, OffsetUnset, unpackOffset(PackedAbsent))
	assert.Equal(t, OffsetNone, unpackOffset(0))
	assert.Equal(t, OffsetAll, unpackOffset(1))
}

func TestPackGrowsDst(t *testing.T) {
	o := NewConeFrustum()
	packed := o.Pack(nil, 0)
	assert.Len(t, packed, ConeFrustumPackedLen)

	// Packing at an offset into a shared buffer.
	buf := make([]float64, 2)
	packed = o.Pack(buf, 2)
	assert.Len(t, packed, 2+ConeFrustumPackedLen)
	got, err := UnpackConeFrustum(packed, 2)
	require.NoError(t, err)
	assert.Equal(t, o, got)
}

func TestUnpackShortArray(t *testing.T) {
	_, err := UnpackConeFrustum(make([]float64, 5), 0)
	assert.ErrorIs(t, err, ErrInvalidOptions)
	_, err = UnpackAnnulus(make([]float64, AnnulusPackedLen), 1)
	assert.ErrorIs(t, err, ErrInvalidOptions)
}
