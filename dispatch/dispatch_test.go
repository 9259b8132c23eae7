// Copyright 2026 The SensorShape Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dispatch

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/solidgeo/sensorshape/shape"
)

func TestKindNamesRoundTrip(t *testing.T) {
	for k := Kind(0); k < kindN; k++ {
		got, err := KindByName(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	_, err := KindByName("torus")
	assert.Error(t, err)
}

func TestKindPackedLens(t *testing.T) {
	assert.Equal(t, shape.ConeFrustumPackedLen, KindConeFrustum.PackedLen())
	assert.Equal(t, shape.EllipsoidShellPackedLen, KindEllipsoidShell.PackedLen())
	assert.Equal(t, 0, Kind(-1).PackedLen())
	assert.Equal(t, 0, kindN.PackedLen())
}

func TestUnpackDispatches(t *testing.T) {
	cone := shape.NewConeFrustum()
	cone.Length = 5
	cone.BottomOuterRadius = 2
	packed := cone.Pack(nil, 0)

	b, err := Unpack(KindConeFrustum, packed, 0)
	require.NoError(t, err)
	got, ok := b.(*shape.ConeFrustum)
	require.True(t, ok)
	assert.Equal(t, cone, got)

	_, err = Unpack(kindN, packed, 0)
	assert.Error(t, err)
	_, err = Unpack(KindConeFrustum, packed[:3], 0)
	assert.ErrorIs(t, err, shape.ErrInvalidOptions)
}

func TestPoolBuildsAllKinds(t *testing.T) {
	cone := shape.NewConeFrustum()
	cone.Length = 10
	cone.BottomOuterRadius = 4

	pyr := shape.NewRectPyramid()
	pyr.Length = 3
	pyr.LeftHalfAngle = 0.4
	pyr.RightHalfAngle = 0.4
	pyr.FrontHalfAngle = 0.3
	pyr.BackHalfAngle = 0.3

	ann := shape.NewAnnulus()
	ann.InnerRadius = 1
	ann.OuterRadius = 2

	jobs := []Job{
		{ID: 1, Kind: KindConeFrustum, Packed: cone.Pack(nil, 0)},
		{ID: 2, Kind: KindRectPyramid, Packed: pyr.Pack(nil, 0)},
		{ID: 3, Kind: KindAnnulus, Packed: ann.Pack(nil, 0)},
	}

	p := NewPool(2, zap.NewNop())
	ctx := context.Background()
	for _, j := range jobs {
		require.NoError(t, p.Submit(ctx, j))
	}
	p.Close()

	got := map[uint64]Result{}
	for r := range p.Results() {
		got[r.ID] = r
	}
	require.Len(t, got, len(jobs))
	for id, r := range got {
		require.NoError(t, r.Err, "job %d", id)
		require.NotNil(t, r.Mesh, "job %d", id)
		assert.Positive(t, r.Mesh.NumVertex())
	}
	assert.Equal(t, 10, got[2].Mesh.NumVertex())
}

func TestPoolBuildMatchesDirect(t *testing.T) {
	o := shape.NewAnnulus()
	o.InnerRadius = 1
	o.OuterRadius = 2
	direct, err := o.Build()
	require.NoError(t, err)

	p := NewPool(2, zap.NewNop())
	defer p.Close()
	got, err := p.Build(context.Background(), Job{Kind: KindAnnulus, Packed: o.Pack(nil, 0)})
	require.NoError(t, err)
	assert.Equal(t, direct, got)
}

func TestRun(t *testing.T) {
	o := shape.NewAnnulus()
	o.OuterRadius = 2
	res := Run(Job{ID: 7, Kind: KindAnnulus, Packed: o.Pack(nil, 0)})
	require.NoError(t, res.Err)
	assert.Equal(t, uint64(7), res.ID)
	assert.NotNil(t, res.Mesh)

	res = Run(Job{Kind: KindAnnulus, Packed: nil})
	assert.ErrorIs(t, res.Err, shape.ErrInvalidOptions)
}

func TestPoolDegenerateAndInvalid(t *testing.T) {
	degen := shape.NewConeFrustum() // zero length
	bad := shape.NewAnnulus()
	bad.InnerRadius = 3
	bad.OuterRadius = 1

	p := NewPool(1, zap.NewNop())
	ctx := context.Background()
	require.NoError(t, p.Submit(ctx, Job{ID: 1, Kind: KindConeFrustum, Packed: degen.Pack(nil, 0)}))
	require.NoError(t, p.Submit(ctx, Job{ID: 2, Kind: KindAnnulus, Packed: bad.Pack(nil, 0)}))
	p.Close()

	got := map[uint64]Result{}
	for r := range p.Results() {
		got[r.ID] = r
	}
	require.Len(t, got, 2)
	assert.NoError(t, got[1].Err)
	assert.Nil(t, got[1].Mesh)
	assert.ErrorIs(t, got[2].Err, shape.ErrInvalidOptions)
	assert.Nil(t, got[2].Mesh)
}

func TestSubmitHonorsContext(t *testing.T) {
	p := NewPool(1, zap.NewNop())
	defer p.Close()

	// Nothing drains results, so the pipeline stalls after a few jobs
	// and Submit must fall through to the context.
	degen := shape.NewConeFrustum()
	packed := degen.Pack(nil, 0)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	var err error
	for i := 0; i < 100; i++ {
		if err = p.Submit(ctx, Job{ID: uint64(i), Kind: KindConeFrustum, Packed: packed}); err != nil {
			break
		}
	}
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	go func() {
		for range p.Results() {
		}
	}()
}
