// Copyright 2026 The SensorShape Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dispatch

import (
	"context"
	"runtime"
	"sync"

	"go.uber.org/zap"

	"github.com/solidgeo/sensorshape/shape"
)

// Job is one packed tessellation request. ID is caller-assigned and
// carried through to the matching Result unchanged.
type Job struct {
	ID     uint64
	Kind   Kind
	Packed []float64
}

// Result is the outcome of one Job. A degenerate shape yields a nil
// Mesh and nil Err; malformed options yield a non-nil Err.
type Result struct {
	ID   uint64
	Kind Kind
	Mesh *shape.MeshData
	Err  error
}

// Run unpacks and builds one job synchronously, without a pool.
func Run(job Job) Result {
	res := Result{ID: job.ID, Kind: job.Kind}
	b, err := Unpack(job.Kind, job.Packed, 0)
	if err == nil {
		res.Mesh, err = b.Build()
	}
	res.Err = err
	return res
}

type request struct {
	job   Job
	reply chan<- Result
}

// Pool runs tessellation jobs on a fixed set of worker goroutines.
// Builders keep all scratch state call-local, so any number of jobs
// may run concurrently. Submit, Build, and Results may be used from
// multiple goroutines; Close must be called exactly once, after all
// Submit and Build calls have returned.
type Pool struct {
	requests chan request
	results  chan Result
	wg       sync.WaitGroup
	log      *zap.Logger
}

// NewPool starts workers goroutines (GOMAXPROCS when workers <= 0).
// The pool owns the results channel and closes it after Close.
func NewPool(workers int, log *zap.Logger) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if log == nil {
		log = zap.NewNop()
	}
	p := &Pool{
		requests: make(chan request, workers),
		results:  make(chan Result, workers),
		log:      log,
	}
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker(i)
	}
	return p
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()
	log := p.log.With(zap.Int("worker", id))
	for req := range p.requests {
		res := Run(req.job)
		switch {
		case res.Err != nil:
			log.Warn("tessellation failed",
				zap.Uint64("job", req.job.ID),
				zap.Stringer("kind", req.job.Kind),
				zap.Error(res.Err))
		case res.Mesh == nil:
			log.Debug("degenerate shape, no geometry",
				zap.Uint64("job", req.job.ID),
				zap.Stringer("kind", req.job.Kind))
		default:
			log.Debug("tessellated",
				zap.Uint64("job", req.job.ID),
				zap.Stringer("kind", req.job.Kind),
				zap.Int("vertices", res.Mesh.NumVertex()),
				zap.Int("indices", res.Mesh.Indices.Len()))
		}
		req.reply <- res
	}
}

// Submit queues a job whose result will be delivered on Results,
// blocking until a worker slot frees up or ctx is done.
func (p *Pool) Submit(ctx context.Context, job Job) error {
	select {
	case p.requests <- request{job: job, reply: p.results}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Build runs one job through the pool and waits for its result. The
// context covers queueing only; an in-flight build is never cancelled.
func (p *Pool) Build(ctx context.Context, job Job) (*shape.MeshData, error) {
	reply := make(chan Result, 1)
	select {
	case p.requests <- request{job: job, reply: reply}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	res := <-reply
	return res.Mesh, res.Err
}

// Results returns the channel Submit results are delivered on. It is
// closed once Close has been called and all in-flight jobs have
// finished.
func (p *Pool) Results() <-chan Result {
	return p.results
}

// Close stops accepting jobs, waits for in-flight work, and closes
// the results channel.
func (p *Pool) Close() {
	close(p.requests)
	p.wg.Wait()
	close(p.results)
}
