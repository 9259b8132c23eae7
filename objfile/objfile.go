// Copyright 2026 The SensorShape Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package objfile writes MeshData as Wavefront OBJ, the quickest way
// to inspect a tessellation in any mesh viewer. Triangle meshes become
// f records, outline meshes become l records.
package objfile

import (
	"bufio"
	"fmt"
	"io"

	"github.com/solidgeo/sensorshape/shape"
)

// Write emits m to w. Vertex references are 1-based per the format;
// normal and texture indices are emitted only when the mesh carries
// those channels.
func Write(w io.Writer, m *shape.MeshData) error {
	if m == nil {
		return fmt.Errorf("objfile: nil mesh")
	}
	bw := bufio.NewWriter(w)

	n := m.NumVertex()
	for i := 0; i < n; i++ {
		fmt.Fprintf(bw, "v %g %g %g\n", m.Positions[i*3], m.Positions[i*3+1], m.Positions[i*3+2])
	}
	hasNorm := m.Normals != nil
	hasTex := m.TexCoords != nil
	if hasNorm {
		for i := 0; i < n; i++ {
			fmt.Fprintf(bw, "vn %g %g %g\n", m.Normals[i*3], m.Normals[i*3+1], m.Normals[i*3+2])
		}
	}
	if hasTex {
		for i := 0; i < n; i++ {
			fmt.Fprintf(bw, "vt %g %g\n", m.TexCoords[i*2], m.TexCoords[i*2+1])
		}
	}

	switch m.Topology {
	case shape.Triangles:
		for i := 0; i+2 < m.Indices.Len(); i += 3 {
			a, b, c := m.Indices.At(i)+1, m.Indices.At(i+1)+1, m.Indices.At(i+2)+1
			switch {
			case hasNorm && hasTex:
				fmt.Fprintf(bw, "f %d/%d/%d %d/%d/%d %d/%d/%d\n", a, a, a, b, b, b, c, c, c)
			case hasNorm:
				fmt.Fprintf(bw, "f %d//%d %d//%d %d//%d\n", a, a, b, b, c, c)
			case hasTex:
				fmt.Fprintf(bw, "f %d/%d %d/%d %d/%d\n", a, a, b, b, c, c)
			default:
				fmt.Fprintf(bw, "f %d %d %d\n", a, b, c)
			}
		}
	case shape.Lines:
		for i := 0; i+1 < m.Indices.Len(); i += 2 {
			fmt.Fprintf(bw, "l %d %d\n", m.Indices.At(i)+1, m.Indices.At(i+1)+1)
		}
	default:
		return fmt.Errorf("objfile: unsupported topology %v", m.Topology)
	}

	return bw.Flush()
}
