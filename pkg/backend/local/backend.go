// Copyright Quantalab Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package local provides an in-process statevector backend.  It executes
// circuits exactly (no noise model) and samples measurement outcomes from the
// resulting distribution, which makes it suitable both for testing and for
// factoring small moduli end-to-end without quantum hardware.
package local

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/quantalab/go-shor/pkg/backend"
	"github.com/quantalab/go-shor/pkg/circuit"
)

// job tracks one submitted circuit through its lifecycle.
type job struct {
	status backend.JobStatus
	result *backend.Result
	err    error
	// cancel aborts the executing goroutine.
	cancel context.CancelFunc
}

// Backend is an in-process statevector simulator implementing the
// backend.Backend interface.  Jobs execute asynchronously on their own
// goroutine, so concurrent submissions are supported.  The zero value is not
// usable; construct with New.
type Backend struct {
	qubits uint
	// Sampling seed; jobs derive their own generators from this so that
	// results are reproducible when the seed is fixed.
	seed uint64
	// Number of jobs submitted so far, used to derive per-job seeds.
	submitted uint64
	//
	mu   sync.Mutex
	jobs map[backend.Handle]*job
}

// New constructs a local backend with the given qubit capacity.  Sampling is
// seeded arbitrarily; use Seeded for reproducible histograms.
func New(qubits uint) *Backend {
	return Seeded(qubits, rand.Uint64())
}

// Seeded constructs a local backend with the given qubit capacity whose
// measurement sampling is deterministic for a given seed.  The capacity is
// clamped to MaxQubits, since larger statevectors cannot be allocated;
// circuits beyond the clamp are refused at Submit.
func Seeded(qubits uint, seed uint64) *Backend {
	return &Backend{
		qubits: min(qubits, MaxQubits),
		seed:   seed,
		jobs:   make(map[backend.Handle]*job),
	}
}

// Name implementation for the backend.Backend interface.
func (p *Backend) Name() string {
	return "local-statevector"
}

// Qubits implementation for the backend.Backend interface.
func (p *Backend) Qubits() uint {
	return p.qubits
}

// Submit implementation for the backend.Backend interface.  The circuit must
// fit within this backend's qubit capacity and must measure at least one
// qubit.
func (p *Backend) Submit(_ context.Context, qc *circuit.Circuit, shots uint) (backend.Handle, error) {
	if qc.Qubits() > p.qubits {
		return "", fmt.Errorf("circuit needs %d qubits but backend has %d", qc.Qubits(), p.qubits)
	} else if len(qc.Measured()) == 0 {
		return "", fmt.Errorf("circuit measures nothing")
	} else if shots == 0 {
		return "", fmt.Errorf("shot count must be positive")
	}
	// Job lifetime is governed by Cancel, not by the submission context.
	ctx, cancel := context.WithCancel(context.Background())
	handle := backend.Handle(uuid.NewString())
	//
	p.mu.Lock()
	p.submitted++
	rng := rand.New(rand.NewPCG(p.seed, p.submitted))
	p.jobs[handle] = &job{status: backend.QUEUED, cancel: cancel}
	p.mu.Unlock()
	//
	log.Debugf("job %s: %d qubits, %d gates, %d shots", handle, qc.Qubits(), len(qc.Gates()), shots)
	//
	go p.execute(ctx, handle, qc, shots, rng)

	return handle, nil
}

// Status implementation for the backend.Backend interface.
func (p *Backend) Status(_ context.Context, handle backend.Handle) (backend.JobStatus, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	//
	j, ok := p.jobs[handle]
	if !ok {
		return backend.FAILED, fmt.Errorf("unknown job %s", handle)
	}

	return j.status, nil
}

// Result implementation for the backend.Backend interface.
func (p *Backend) Result(_ context.Context, handle backend.Handle) (*backend.Result, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	//
	j, ok := p.jobs[handle]
	//
	switch {
	case !ok:
		return nil, fmt.Errorf("unknown job %s", handle)
	case j.status == backend.FAILED:
		return nil, j.err
	case j.status != backend.DONE:
		return nil, fmt.Errorf("job %s not finished (%s)", handle, j.status)
	}

	return j.result, nil
}

// Cancel implementation for the backend.Backend interface.  Cancelling an
// already finished job has no effect.
func (p *Backend) Cancel(_ context.Context, handle backend.Handle) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	//
	j, ok := p.jobs[handle]
	if !ok {
		return fmt.Errorf("unknown job %s", handle)
	}
	//
	j.cancel()
	// Mark the job failed now so pollers observe the cancellation
	// immediately, rather than whenever the goroutine next checks.
	if !j.status.Finished() {
		j.status, j.err = backend.FAILED, context.Canceled
	}

	return nil
}

// execute runs a job to completion on its own goroutine.
func (p *Backend) execute(ctx context.Context, handle backend.Handle, qc *circuit.Circuit, shots uint, rng *rand.Rand) {
	p.setStatus(handle, backend.RUNNING, nil, nil)
	//
	state := newStatevector(qc.Qubits())
	//
	if err := state.run(ctx, qc); err != nil {
		log.Debugf("job %s failed: %v", handle, err)
		p.setStatus(handle, backend.FAILED, nil, err)

		return
	}
	//
	result := &backend.Result{
		Counts: state.sample(qc, shots, rng),
		Width:  uint(len(qc.Measured())),
		Shots:  shots,
	}
	//
	p.setStatus(handle, backend.DONE, result, nil)
}

func (p *Backend) setStatus(handle backend.Handle, status backend.JobStatus, result *backend.Result, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	//
	j := p.jobs[handle]
	// Never resurrect a cancelled job.
	if j.status.Finished() {
		return
	}
	//
	j.status, j.result, j.err = status, result, err
}
