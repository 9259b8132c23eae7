// Copyright 2026 The SensorShape Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hilbert maps 2D grid coordinates to positions along a
// Hilbert space-filling curve and back. The curve preserves locality:
// coordinates that are close on the grid tend to be close along the
// curve, which makes the index useful as a spatial sort key for
// sensor-volume tiles.
package hilbert

import (
	"errors"
	"fmt"
)

// ErrOutOfRange is returned when a coordinate or curve index does not
// fit in the grid implied by the level.
var ErrOutOfRange = errors.New("hilbert: out of range")

// MaxLevel is the largest supported curve level. At level 31 the
// curve index spans 62 bits and each coordinate spans 31, so all
// values stay within uint64 and uint32 respectively.
const MaxLevel = 31

func checkLevel(level int) error {
	if level < 1 || level > MaxLevel {
		return fmt.Errorf("%w: level %d must be in [1, %d]", ErrOutOfRange, level, MaxLevel)
	}
	return nil
}

// rot rotates and flips a quadrant-local coordinate pair per the
// standard Hilbert recursion step for quadrant size s.
func rot(s, x, y uint32, rx, ry uint64) (uint32, uint32) {
	if ry == 0 {
		if rx == 1 {
			x = s - 1 - x
			y = s - 1 - y
		}
		x, y = y, x
	}
	return x, y
}

// Encode2D returns the position along the level-n Hilbert curve of the
// grid cell (x, y). Both coordinates must be below 2^level.
func Encode2D(level int, x, y uint32) (uint64, error) {
	if err := checkLevel(level); err != nil {
		return 0, err
	}
	side := uint32(1) << level
	if x >= side || y >= side {
		return 0, fmt.Errorf("%w: coordinates (%d, %d) must be below %d at level %d",
			ErrOutOfRange, x, y, side, level)
	}
	var d uint64
	for s := side / 2; s > 0; s /= 2 {
		var rx, ry uint64
		if x&s > 0 {
			rx = 1
		}
		if y&s > 0 {
			ry = 1
		}
		d += uint64(s) * uint64(s) * ((3 * rx) ^ ry)
		x, y = rot(s, x, y, rx, ry)
	}
	return d, nil
}

// Decode2D returns the grid cell (x, y) at position index along the
// level-n Hilbert curve. The index must be below 4^level.
func Decode2D(level int, index uint64) (uint32, uint32, error) {
	if err := checkLevel(level); err != nil {
		return 0, 0, err
	}
	side := uint32(1) << level
	if index >= uint64(side)*uint64(side) {
		return 0, 0, fmt.Errorf("%w: index %d must be below %d at level %d",
			ErrOutOfRange, index, uint64(side)*uint64(side), level)
	}
	var x, y uint32
	for s := uint32(1); s < side; s *= 2 {
		rx := (index / 2) & 1
		ry := (index ^ rx) & 1
		x, y = rot(s, x, y, rx, ry)
		x += uint32(rx) * s
		y += uint32(ry) * s
		index /= 4
	}
	return x, y, nil
}
