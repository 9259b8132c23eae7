// Copyright 2026 The SensorShape Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package shape provides parametric solid-geometry tessellators for
// sensor volumes and primitive shapes: given a flat record of scalar
// options, each builder deterministically produces vertex buffers,
// an index buffer, and a bounding sphere.
//
// All builders share the same contract: vertex and index counts are
// computed closed-form from the options before any buffer is
// allocated, buffers are filled by index (never grown), and the
// returned MeshData is owned by the caller. A degenerate but valid
// shape (nothing to draw) yields (nil, nil); invalid options yield an
// error wrapping ErrInvalidOptions.
package shape

import (
	"errors"

	"cogentcore.org/core/math32"
	"gonum.org/v1/gonum/spatial/r3"
)

// ErrInvalidOptions is wrapped by all errors reporting malformed
// builder options (segment counts below minimum, inverted radii,
// out-of-range angles, bad packed arrays).
var ErrInvalidOptions = errors.New("shape: invalid options")

// Topology is the primitive topology of a mesh's index buffer.
type Topology int32

const (
	// Triangles indexes triangle lists; index count is a multiple of 3.
	Triangles Topology = iota

	// Lines indexes line-segment lists; index count is a multiple of 2.
	Lines
)

func (t Topology) String() string {
	switch t {
	case Triangles:
		return "Triangles"
	case Lines:
		return "Lines"
	}
	return "Unknown"
}

// VertexFormat is a bitset selecting which per-vertex attribute
// channels a builder emits. Channel buffers are all-or-nothing per
// bit, decided once at build time.
type VertexFormat uint32

const (
	// Position selects the float64 position channel (always required).
	Position VertexFormat = 1 << iota

	// Normal selects the float32 surface normal channel.
	Normal

	// Tangent selects the float32 tangent channel.
	Tangent

	// Bitangent selects the float32 bitangent channel.
	Bitangent

	// TexCoord selects the float32 texture coordinate channel.
	TexCoord
)

// PositionNormal is the default vertex format.
const PositionNormal = Position | Normal

// AllChannels selects every attribute channel.
const AllChannels = Position | Normal | Tangent | Bitangent | TexCoord

// Has reports whether all channels in f2 are selected in f.
func (f VertexFormat) Has(f2 VertexFormat) bool {
	return f&f2 == f2
}

// OffsetAttribute selects whether the host renderer applies its
// world-space offset to this mesh's vertices. It is optional: Unset
// emits no ApplyOffset array and packs as the -1 sentinel.
type OffsetAttribute int8

const (
	// OffsetUnset means no offset attribute is emitted.
	OffsetUnset OffsetAttribute = -1

	// OffsetNone emits an all-zero ApplyOffset array.
	OffsetNone OffsetAttribute = 0

	// OffsetAll emits an all-one ApplyOffset array.
	OffsetAll OffsetAttribute = 1
)

// BoundingSphere is the coarse enclosing sphere used by the host
// renderer for visibility culling.
type BoundingSphere struct {
	Center r3.Vec
	Radius float64
}

// IndexArray is an index buffer backed by uint16 when the vertex
// count allows it, uint32 otherwise.
type IndexArray struct {
	u16 []uint16
	u32 []uint32
}

// maxUint16Vertices is the largest vertex count addressable by a
// uint16 index buffer.
const maxUint16Vertices = 1 << 16

// NewIndexArray allocates an index buffer of n entries addressing
// numVertex vertices, choosing the narrowest index type that fits.
func NewIndexArray(n, numVertex int) IndexArray {
	if numVertex < maxUint16Vertices {
		return IndexArray{u16: make([]uint16, n)}
	}
	return IndexArray{u32: make([]uint32, n)}
}

// Len returns the number of indices.
func (a IndexArray) Len() int {
	if a.u16 != nil {
		return len(a.u16)
	}
	return len(a.u32)
}

// Is16 reports whether the buffer is uint16 backed.
func (a IndexArray) Is16() bool { return a.u16 != nil }

// At returns the index at position i.
func (a IndexArray) At(i int) uint32 {
	if a.u16 != nil {
		return uint32(a.u16[i])
	}
	return a.u32[i]
}

// Set writes vs starting at position i.
func (a IndexArray) Set(i int, vs ...uint32) {
	if a.u16 != nil {
		for j, v := range vs {
			a.u16[i+j] = uint16(v)
		}
		return
	}
	copy(a.u32[i:], vs)
}

// U16 returns the uint16 backing slice, nil if uint32 backed.
func (a IndexArray) U16() []uint16 { return a.u16 }

// U32 returns the uint32 backing slice, nil if uint16 backed.
func (a IndexArray) U32() []uint32 { return a.u32 }

// MeshData is the single output type across all builders: flat
// per-vertex attribute buffers, an index buffer, and a bounding
// sphere. Attribute buffers are exactly 3N floats (2N for TexCoords)
// when present. Produced once by Build and never mutated afterward.
type MeshData struct {
	// Positions holds x,y,z per vertex (3N float64).
	Positions []float64

	// Normals, Tangents, Bitangents hold 3N float32 each when their
	// channel is selected, nil otherwise.
	Normals    math32.ArrayF32
	Tangents   math32.ArrayF32
	Bitangents math32.ArrayF32

	// TexCoords holds u,v per vertex (2N float32) when selected.
	TexCoords math32.ArrayF32

	// ApplyOffset holds one flag byte per vertex (1 = host applies its
	// world-space offset), set uniformly from the OffsetAttribute
	// option; nil when the option is unset.
	ApplyOffset []uint8

	Indices  IndexArray
	Topology Topology
	Bounds   BoundingSphere
}

// NumVertex returns the number of vertices.
func (m *MeshData) NumVertex() int { return len(m.Positions) / 3 }

// Builder is the common three-operation contract implemented by every
// shape options type: serialize to and from a fixed-width flat float
// array, and tessellate into a MeshData.
type Builder interface {
	// PackedLen returns the fixed packed length in floats.
	PackedLen() int

	// Pack writes exactly PackedLen floats into dst starting at start,
	// growing dst if needed, and returns dst.
	Pack(dst []float64, start int) []float64

	// Build tessellates the shape. A degenerate shape returns
	// (nil, nil); invalid options return an error.
	Build() (*MeshData, error)
}

// newMeshData allocates a MeshData for numVertex vertices and numIndex
// indices with the channels selected by vf.
func newMeshData(numVertex, numIndex int, vf VertexFormat, topo Topology, off OffsetAttribute) *MeshData {
	m := &MeshData{
		Positions: make([]float64, numVertex*3),
		Indices:   NewIndexArray(numIndex, numVertex),
		Topology:  topo,
	}
	if vf.Has(Normal) {
		m.Normals = math32.NewArrayF32(numVertex*3, numVertex*3)
	}
	if vf.Has(Tangent) {
		m.Tangents = math32.NewArrayF32(numVertex*3, numVertex*3)
	}
	if vf.Has(Bitangent) {
		m.Bitangents = math32.NewArrayF32(numVertex*3, numVertex*3)
	}
	if vf.Has(TexCoord) {
		m.TexCoords = math32.NewArrayF32(numVertex*2, numVertex*2)
	}
	if off != OffsetUnset {
		m.ApplyOffset = make([]uint8, numVertex)
		if off == OffsetAll {
			for i := range m.ApplyOffset {
				m.ApplyOffset[i] = 1
			}
		}
	}
	return m
}

// vertexWriter tracks the write cursor while filling a MeshData.
// All scratch state is call-local so builders are freely reentrant.
type vertexWriter struct {
	m   *MeshData
	vtx int
}

// add writes one vertex: float64 position, float32 normal and tangent,
// uv. Channels absent from the mesh are skipped. The bitangent is
// normal cross tangent.
func (w *vertexWriter) add(px, py, pz float64, norm, tan math32.Vector3, u, v float32) {
	i := w.vtx
	w.m.Positions[i*3] = px
	w.m.Positions[i*3+1] = py
	w.m.Positions[i*3+2] = pz
	if w.m.Normals != nil {
		w.m.Normals.SetVector3(i*3, norm)
	}
	if w.m.Tangents != nil {
		w.m.Tangents.SetVector3(i*3, tan)
	}
	if w.m.Bitangents != nil {
		w.m.Bitangents.SetVector3(i*3, norm.Cross(tan))
	}
	if w.m.TexCoords != nil {
		w.m.TexCoords.Set(i*2, u, v)
	}
	w.vtx++
}

// indexWriter tracks the write cursor into an index buffer.
type indexWriter struct {
	m   *MeshData
	idx int
}

// quad emits the two triangles (a,b,d) and (b,c,d), the one
// quad-splitting convention used by every grid in this package.
func (w *indexWriter) quad(a, b, c, d uint32) {
	w.m.Indices.Set(w.idx, a, b, d, b, c, d)
	w.idx += 6
}

// tri emits one triangle.
func (w *indexWriter) tri(a, b, c uint32) {
	w.m.Indices.Set(w.idx, a, b, c)
	w.idx += 3
}

// line emits one line segment.
func (w *indexWriter) line(a, b uint32) {
	w.m.Indices.Set(w.idx, a, b)
	w.idx += 2
}

// fullCircleEps is the tolerance under which an angular sweep counts
// as a full circle, closing the shape instead of emitting end caps.
const fullCircleEps = 1e-9
