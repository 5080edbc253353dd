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
package backend

import (
	"context"
	"fmt"

	"github.com/quantalab/go-shor/pkg/circuit"
)

// Handle identifies a submitted job within a given backend.  Handles are
// opaque: callers obtain them from Submit and pass them back unchanged.
type Handle string

// JobStatus captures the lifecycle stage of a submitted job.
type JobStatus struct {
	status uint8
}

var (
	// QUEUED signals a job accepted by the backend but not yet running.
	QUEUED = JobStatus{uint8(0)}
	// RUNNING signals a job currently executing.
	RUNNING = JobStatus{uint8(1)}
	// DONE signals a job which completed successfully and has a result.
	DONE = JobStatus{uint8(2)}
	// FAILED signals a job which terminated without producing a result.
	FAILED = JobStatus{uint8(3)}
)

// Finished determines whether this status is terminal (done or failed).
func (p JobStatus) Finished() bool {
	return p == DONE || p == FAILED
}

// String returns a human-readable name for this status.
func (p JobStatus) String() string {
	switch p.status {
	case 0:
		return "queued"
	case 1:
		return "running"
	case 2:
		return "done"
	case 3:
		return "failed"
	default:
		panic(fmt.Sprintf("unknown job status (%d)", p.status))
	}
}

// Backend abstracts an execution environment capable of running circuits,
// such as a local simulator or a remote quantum device.  Submission is
// asynchronous: Submit returns a handle which is then polled via Status until
// it reports a terminal state, at which point Result (or the failure) can be
// collected.  Implementations must support concurrent submissions.
type Backend interface {
	// Name returns a human-readable identifier for this backend.
	Name() string
	// Qubits returns the number of qubits this backend provides.
	Qubits() uint
	// Submit schedules a circuit for execution with a given number of shots,
	// returning a handle for polling.
	Submit(ctx context.Context, qc *circuit.Circuit, shots uint) (Handle, error)
	// Status reports the current lifecycle stage of a submitted job.
	Status(ctx context.Context, handle Handle) (JobStatus, error)
	// Result returns the outcome histogram of a finished job.  Calling this
	// on an unfinished or failed job is an error.
	Result(ctx context.Context, handle Handle) (*Result, error)
	// Cancel requests cancellation of an outstanding job.  Backends which
	// cannot cancel in-flight work may ignore the request.
	Cancel(ctx context.Context, handle Handle) error
}
