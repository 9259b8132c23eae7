// Copyright 2026 The SensorShape Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dispatch routes packed tessellation requests to the right
// shape builder and runs them on a bounded worker pool. The packed
// form is the wire contract: a shape kind plus the fixed-length float
// array produced by the shape's Pack method.
package dispatch

import (
	"fmt"

	"github.com/solidgeo/sensorshape/shape"
)

// Kind identifies a shape builder on the wire.
type Kind int

const (
	KindConeFrustum Kind = iota
	KindConeFrustumOutline
	KindRectPyramid
	KindRectPyramidOutline
	KindDualTrapezoid
	KindDualTrapezoidOutline
	KindAnnulus
	KindAnnulusOutline
	KindEllipsoidShell
	kindN
)

var kindNames = [kindN]string{
	"cone-frustum",
	"cone-frustum-outline",
	"rect-pyramid",
	"rect-pyramid-outline",
	"dual-trapezoid",
	"dual-trapezoid-outline",
	"annulus",
	"annulus-outline",
	"ellipsoid-shell",
}

func (k Kind) String() string {
	if k < 0 || k >= kindN {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// KindByName returns the Kind with the given wire name.
func KindByName(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("dispatch: unknown shape kind %q", name)
}

var packedLens = [kindN]int{
	shape.ConeFrustumPackedLen,
	shape.ConeFrustumOutlinePackedLen,
	shape.RectPyramidPackedLen,
	shape.RectPyramidOutlinePackedLen,
	shape.DualTrapezoidPackedLen,
	shape.DualTrapezoidOutlinePackedLen,
	shape.AnnulusPackedLen,
	shape.AnnulusOutlinePackedLen,
	shape.EllipsoidShellPackedLen,
}

// PackedLen returns the fixed packed length of the kind's options,
// or 0 for an unknown kind.
func (k Kind) PackedLen() int {
	if k < 0 || k >= kindN {
		return 0
	}
	return packedLens[k]
}

// Unpack decodes the packed options for the kind starting at start,
// returning the builder ready to run.
func Unpack(k Kind, src []float64, start int) (shape.Builder, error) {
	switch k {
	case KindConeFrustum:
		return shape.UnpackConeFrustum(src, start)
	case KindConeFrustumOutline:
		return shape.UnpackConeFrustumOutline(src, start)
	case KindRectPyramid:
		return shape.UnpackRectPyramid(src, start)
	case KindRectPyramidOutline:
		return shape.UnpackRectPyramidOutline(src, start)
	case KindDualTrapezoid:
		return shape.UnpackDualTrapezoid(src, start)
	case KindDualTrapezoidOutline:
		return shape.UnpackDualTrapezoidOutline(src, start)
	case KindAnnulus:
		return shape.UnpackAnnulus(src, start)
	case KindAnnulusOutline:
		return shape.UnpackAnnulusOutline(src, start)
	case KindEllipsoidShell:
		return shape.UnpackEllipsoidShell(src, start)
	default:
		return nil, fmt.Errorf("dispatch: unknown shape kind %d", int(k))
	}
}
