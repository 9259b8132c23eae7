// Copyright 2026 The SensorShape Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command sensormesh tessellates one sensor-volume shape and writes
// it as a Wavefront OBJ file. Options flow the same path a host
// renderer would use: packed to the flat float form, routed through
// the dispatch pool, and unpacked by the worker that builds the mesh.
//
// Usage:
//
//	sensormesh -shape cone-frustum -length 10 -bottom-outer 4 -out cone.obj
//	sensormesh -shape rect-pyramid -outline -length 5 -left 0.4 -right 0.4 -front 0.3 -back 0.3
package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	"strings"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/solidgeo/sensorshape/config"
	"github.com/solidgeo/sensorshape/dispatch"
	"github.com/solidgeo/sensorshape/logger"
	"github.com/solidgeo/sensorshape/objfile"
	"github.com/solidgeo/sensorshape/shape"
)

type flags struct {
	configPath string
	out        string
	shapeName  string
	outline    bool
	format     string
	offset     int

	length                               float64
	topInner, topOuter                   float64
	bottomInner, bottomOuter             float64
	inner, outer                         float64
	theta, phi                           int
	thetaStart, thetaLength              float64
	left, right, front, back             float64
	leftMin, leftMax, leftWidth          float64
	rightMin, rightMax, rightWidth       float64
	radii, innerRadii                    string
	stack, slice                         int
	minClock, maxClock, minCone, maxCone float64
}

func parseFlags() *flags {
	f := &flags{}
	flag.StringVar(&f.configPath, "config", "", "YAML config file (optional)")
	flag.StringVar(&f.out, "out", "-", "output OBJ path, - for stdout")
	flag.StringVar(&f.shapeName, "shape", "", "shape kind: cone-frustum, rect-pyramid, dual-trapezoid, annulus, ellipsoid-shell")
	flag.BoolVar(&f.outline, "outline", false, "build the line outline instead of the solid")
	flag.StringVar(&f.format, "format", "pn", "vertex channels: p, pn, or all")
	flag.IntVar(&f.offset, "offset", -1, "apply-offset attribute: -1 unset, 0 none, 1 all")

	flag.Float64Var(&f.length, "length", 0, "volume depth along z")
	flag.Float64Var(&f.topInner, "top-inner", 0, "cone frustum top inner radius")
	flag.Float64Var(&f.topOuter, "top-outer", 0, "cone frustum top outer radius")
	flag.Float64Var(&f.bottomInner, "bottom-inner", 0, "cone frustum bottom inner radius")
	flag.Float64Var(&f.bottomOuter, "bottom-outer", 0, "cone frustum bottom outer radius")
	flag.Float64Var(&f.inner, "inner", 0, "annulus inner radius")
	flag.Float64Var(&f.outer, "outer", 0, "annulus outer radius")
	flag.IntVar(&f.theta, "theta", 0, "theta segments (default from config)")
	flag.IntVar(&f.phi, "phi", 0, "phi segments (default from config)")
	flag.Float64Var(&f.thetaStart, "theta-start", 0, "angular sweep start, radians")
	flag.Float64Var(&f.thetaLength, "theta-length", 2*math.Pi, "angular sweep length, radians")
	flag.Float64Var(&f.left, "left", 0, "rect pyramid left half-angle, radians")
	flag.Float64Var(&f.right, "right", 0, "rect pyramid right half-angle, radians")
	flag.Float64Var(&f.front, "front", 0, "rect pyramid front half-angle, radians")
	flag.Float64Var(&f.back, "back", 0, "rect pyramid back half-angle, radians")
	flag.Float64Var(&f.leftMin, "left-min", 0, "dual trapezoid left lobe min angle")
	flag.Float64Var(&f.leftMax, "left-max", 0, "dual trapezoid left lobe max angle")
	flag.Float64Var(&f.leftWidth, "left-width", 0, "dual trapezoid left lobe width")
	flag.Float64Var(&f.rightMin, "right-min", 0, "dual trapezoid right lobe min angle")
	flag.Float64Var(&f.rightMax, "right-max", 0, "dual trapezoid right lobe max angle")
	flag.Float64Var(&f.rightWidth, "right-width", 0, "dual trapezoid right lobe width")
	flag.StringVar(&f.radii, "radii", "", "ellipsoid semi-axes as x,y,z")
	flag.StringVar(&f.innerRadii, "inner-radii", "", "ellipsoid inner semi-axes as x,y,z (default radii)")
	flag.IntVar(&f.stack, "stack", 0, "ellipsoid stack partitions (default from config)")
	flag.IntVar(&f.slice, "slice", 0, "ellipsoid slice partitions (default from config)")
	flag.Float64Var(&f.minClock, "min-clock", 0, "ellipsoid clock sweep start, radians")
	flag.Float64Var(&f.maxClock, "max-clock", 2*math.Pi, "ellipsoid clock sweep end, radians")
	flag.Float64Var(&f.minCone, "min-cone", 0, "ellipsoid cone sweep start, radians")
	flag.Float64Var(&f.maxCone, "max-cone", math.Pi, "ellipsoid cone sweep end, radians")
	flag.Parse()
	return f
}

func parseVec(s string) (r3.Vec, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return r3.Vec{}, fmt.Errorf("want x,y,z, got %q", s)
	}
	var v [3]float64
	for i, p := range parts {
		if _, err := fmt.Sscanf(strings.TrimSpace(p), "%g", &v[i]); err != nil {
			return r3.Vec{}, fmt.Errorf("bad component %q in %q", p, s)
		}
	}
	return r3.Vec{X: v[0], Y: v[1], Z: v[2]}, nil
}

func (f *flags) vertexFormat() (shape.VertexFormat, error) {
	switch f.format {
	case "p":
		return shape.Position, nil
	case "pn":
		return shape.PositionNormal, nil
	case "all":
		return shape.AllChannels, nil
	}
	return 0, fmt.Errorf("unknown vertex format %q", f.format)
}

// builder assembles the shape options from the flags, filling zero
// segment counts from the config defaults.
func (f *flags) builder(def config.Defaults) (dispatch.Kind, shape.Builder, error) {
	vf, err := f.vertexFormat()
	if err != nil {
		return 0, nil, err
	}
	off := shape.OffsetAttribute(f.offset)
	theta := f.theta
	if theta == 0 {
		theta = def.ThetaSegments
	}
	phi := f.phi
	if phi == 0 {
		phi = def.PhiSegments
	}

	switch f.shapeName {
	case "cone-frustum":
		if f.outline {
			return dispatch.KindConeFrustumOutline, &shape.ConeFrustumOutline{
				Length:            f.length,
				TopInnerRadius:    f.topInner,
				TopOuterRadius:    f.topOuter,
				BottomInnerRadius: f.bottomInner,
				BottomOuterRadius: f.bottomOuter,
				ThetaSegments:     theta,
				PhiSegments:       phi,
				ThetaStart:        f.thetaStart,
				ThetaLength:       f.thetaLength,
				Offset:            off,
			}, nil
		}
		return dispatch.KindConeFrustum, &shape.ConeFrustum{
			Length:            f.length,
			TopInnerRadius:    f.topInner,
			TopOuterRadius:    f.topOuter,
			BottomInnerRadius: f.bottomInner,
			BottomOuterRadius: f.bottomOuter,
			ThetaSegments:     theta,
			PhiSegments:       phi,
			ThetaStart:        f.thetaStart,
			ThetaLength:       f.thetaLength,
			Format:            vf,
			Offset:            off,
		}, nil

	case "rect-pyramid":
		if f.outline {
			return dispatch.KindRectPyramidOutline, &shape.RectPyramidOutline{
				Length:         f.length,
				LeftHalfAngle:  f.left,
				RightHalfAngle: f.right,
				FrontHalfAngle: f.front,
				BackHalfAngle:  f.back,
				Offset:         off,
			}, nil
		}
		return dispatch.KindRectPyramid, &shape.RectPyramid{
			Length:         f.length,
			LeftHalfAngle:  f.left,
			RightHalfAngle: f.right,
			FrontHalfAngle: f.front,
			BackHalfAngle:  f.back,
			Format:         vf,
			Offset:         off,
		}, nil

	case "dual-trapezoid":
		if f.outline {
			return dispatch.KindDualTrapezoidOutline, &shape.DualTrapezoidOutline{
				Length:        f.length,
				LeftMinAngle:  f.leftMin,
				LeftMaxAngle:  f.leftMax,
				LeftWidth:     f.leftWidth,
				RightMinAngle: f.rightMin,
				RightMaxAngle: f.rightMax,
				RightWidth:    f.rightWidth,
				Offset:        off,
			}, nil
		}
		return dispatch.KindDualTrapezoid, &shape.DualTrapezoid{
			Length:        f.length,
			LeftMinAngle:  f.leftMin,
			LeftMaxAngle:  f.leftMax,
			LeftWidth:     f.leftWidth,
			RightMinAngle: f.rightMin,
			RightMaxAngle: f.rightMax,
			RightWidth:    f.rightWidth,
			Format:        vf,
			Offset:        off,
		}, nil

	case "annulus":
		if f.outline {
			return dispatch.KindAnnulusOutline, &shape.AnnulusOutline{
				InnerRadius:   f.inner,
				OuterRadius:   f.outer,
				ThetaSegments: theta,
				PhiSegments:   phi,
				ThetaStart:    f.thetaStart,
				ThetaLength:   f.thetaLength,
				Offset:        off,
			}, nil
		}
		return dispatch.KindAnnulus, &shape.Annulus{
			InnerRadius:   f.inner,
			OuterRadius:   f.outer,
			ThetaSegments: theta,
			PhiSegments:   phi,
			ThetaStart:    f.thetaStart,
			ThetaLength:   f.thetaLength,
			Format:        vf,
			Offset:        off,
		}, nil

	case "ellipsoid-shell":
		if f.outline {
			return 0, nil, fmt.Errorf("ellipsoid-shell has no outline variant")
		}
		radii, err := parseVec(f.radii)
		if err != nil {
			return 0, nil, fmt.Errorf("-radii: %w", err)
		}
		innerRadii := radii
		if f.innerRadii != "" {
			innerRadii, err = parseVec(f.innerRadii)
			if err != nil {
				return 0, nil, fmt.Errorf("-inner-radii: %w", err)
			}
		}
		stack := f.stack
		if stack == 0 {
			stack = def.StackPartitions
		}
		slice := f.slice
		if slice == 0 {
			slice = def.SlicePartitions
		}
		return dispatch.KindEllipsoidShell, &shape.EllipsoidShell{
			Radii:           radii,
			InnerRadii:      innerRadii,
			StackPartitions: stack,
			SlicePartitions: slice,
			MinimumClock:    f.minClock,
			MaximumClock:    f.maxClock,
			MinimumCone:     f.minCone,
			MaximumCone:     f.maxCone,
			Format:          vf,
			Offset:          off,
		}, nil
	}
	return 0, nil, fmt.Errorf("unknown or missing -shape %q", f.shapeName)
}

func run() error {
	f := parseFlags()

	cfg := config.Default()
	if f.configPath != "" {
		var err error
		if cfg, err = config.Load(f.configPath); err != nil {
			return err
		}
	}
	if err := logger.Init(cfg.Log); err != nil {
		return err
	}
	defer logger.Sync()
	log := logger.L()

	kind, b, err := f.builder(cfg.Defaults)
	if err != nil {
		return err
	}

	pool := dispatch.NewPool(cfg.Workers, log)
	defer pool.Close()
	mesh, err := pool.Build(context.Background(), dispatch.Job{
		ID:     1,
		Kind:   kind,
		Packed: b.Pack(nil, 0),
	})
	if err != nil {
		return err
	}
	if mesh == nil {
		log.Info("degenerate shape, nothing to draw", zap.Stringer("kind", kind))
		return nil
	}
	log.Info("built mesh",
		zap.Stringer("kind", kind),
		zap.Int("vertices", mesh.NumVertex()),
		zap.Int("indices", mesh.Indices.Len()),
		zap.Float64("bounding_radius", mesh.Bounds.Radius))

	out := os.Stdout
	if f.out != "-" {
		out, err = os.Create(f.out)
		if err != nil {
			return err
		}
		defer out.Close()
	}
	return objfile.Write(out, mesh)
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "sensormesh:", err)
		os.Exit(1)
	}
}
