// Copyright 2026 The SensorShape Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import "fmt"

// Packed options arrays are the wire format used to hand options
// across the worker boundary: one float per scalar field in a fixed
// per-shape order, with a trailing -1 sentinel for absent optional
// enum fields. Field order and sentinel convention must stay stable
// per shape.

// PackedAbsent is the sentinel packed for absent optional fields.
const PackedAbsent = -1.0

// packEnsure grows dst so that n floats can be written at start and
// returns the grown slice.
func packEnsure(dst []float64, start, n int) []float64 {
	need := start + n
	if cap(dst) < need {
		grown := make([]float64, need)
		copy(grown, dst)
		return grown
	}
	return dst[:need]
}

// unpackCheck validates that n floats can be read from src at start.
func unpackCheck(src []float64, start, n int, shape string) error {
	if start < 0 || len(src)-start < n {
		return fmt.Errorf("%w: packed %s array needs %d floats at offset %d, have %d",
			ErrInvalidOptions, shape, n, start, len(src))
	}
	return nil
}

// packOffset converts an OffsetAttribute to its packed float.
func packOffset(off OffsetAttribute) float64 {
	if off == OffsetUnset {
		return PackedAbsent
	}
	return float64(off)
}

// unpackOffset converts a packed float back to an OffsetAttribute.
func unpackOffset(v float64) OffsetAttribute {
	if v < 0 {
		return OffsetUnset
	}
	return OffsetAttribute(v)
}
