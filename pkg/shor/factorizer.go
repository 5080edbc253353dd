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

// Package shor orchestrates hybrid classical/quantum integer factorisation.
// A factorisation attempt reduces the problem classically where possible,
// delegates period finding to quantum phase estimation via a pluggable
// execution backend, and reconstructs factors from the recovered period.
package shor

import (
	"context"
	"fmt"
	"math/big"
	"math/rand"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/quantalab/go-shor/pkg/backend"
	"github.com/quantalab/go-shor/pkg/circuit"
	"github.com/quantalab/go-shor/pkg/util/math"
)

// Stage identifies a step of the factorisation state machine, as reported to
// the injected Reporter.
type Stage struct {
	stage uint8
}

var (
	// REDUCING signals the classical reduction step.
	REDUCING = Stage{uint8(0)}
	// BUILDING_CIRCUIT signals phase-estimation circuit construction.
	BUILDING_CIRCUIT = Stage{uint8(1)}
	// AWAITING_EXECUTION signals submission to, and polling of, the backend.
	AWAITING_EXECUTION = Stage{uint8(2)}
	// DECODING signals interpretation of the outcome histogram.
	DECODING = Stage{uint8(3)}
	// VALIDATING signals period validation and factor reconstruction.
	VALIDATING = Stage{uint8(4)}
	// RETRYING signals that an attempt produced an unusable period and a
	// fresh one is starting.
	RETRYING = Stage{uint8(5)}
)

// String returns a human-readable name for this stage.
func (p Stage) String() string {
	names := []string{"reducing", "building circuit", "awaiting execution",
		"decoding", "validating", "retrying"}
	//
	return names[p.stage]
}

// Factorization is the successful result of a run, together with enough
// bookkeeping for the caller to judge it.
type Factorization struct {
	// P, Q are the recovered factors, with P <= Q and P*Q equal to the
	// modulus.
	P, Q *big.Int
	// Attempts made before success (1-based).
	Attempts uint
	// Elapsed wall-clock time for the whole run.
	Elapsed time.Duration
	// QubitsUsed by the circuit, or zero when classical reduction succeeded
	// outright.
	QubitsUsed uint
}

// baseSource serialises base draws.  Value copies of a Factorizer share the
// underlying generator, and big.Int.Rand mutates it, so concurrent runs must
// take the lock for each draw.
type baseSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func (p *baseSource) reduce(n *big.Int) Reduction {
	p.mu.Lock()
	defer p.mu.Unlock()

	return reduce(n, p.rng)
}

// Factorizer drives the period-finding loop against a given backend.  It
// follows the builder pattern: construct a default with NewFactorizer, then
// customise via the chaining setters.  A Factorizer is a value; customised
// copies are independent and one Factorizer may run concurrent factorisations
// of different moduli.
type Factorizer struct {
	// Backend circuits are submitted to.
	backend backend.Backend
	// Shots per circuit execution.
	shots uint
	// Attempt ceiling before giving up.
	attempts uint
	// Interval between status polls.
	interval time.Duration
	// Source of randomness for base selection.  Injectable so that the state
	// machine is deterministically testable.
	rng *baseSource
	// Sink for progress updates.
	reporter Reporter
}

// NewFactorizer constructs a factorizer with the default configuration: 1024
// shots, 8 attempts, a 500ms poll interval, time-seeded randomness and no
// progress reporting.
func NewFactorizer(b backend.Backend) Factorizer {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	//
	return Factorizer{b, 1024, 8, 500 * time.Millisecond, &baseSource{rng: rng}, NopReporter{}}
}

// Shots updates a given factorizer configuration to execute a given number of
// shots per circuit.
func (p Factorizer) Shots(shots uint) Factorizer {
	np := p
	np.shots = shots
	//
	return np
}

// Attempts updates a given factorizer configuration to retry up to a given
// number of times.  The ceiling must be at least one.
func (p Factorizer) Attempts(attempts uint) Factorizer {
	np := p
	np.attempts = max(attempts, 1)
	//
	return np
}

// PollInterval updates a given factorizer configuration to wait a given
// duration between status polls.
func (p Factorizer) PollInterval(interval time.Duration) Factorizer {
	np := p
	np.interval = interval
	//
	return np
}

// Rand updates a given factorizer configuration to draw bases from a given
// source of randomness.
func (p Factorizer) Rand(rng *rand.Rand) Factorizer {
	np := p
	np.rng = &baseSource{rng: rng}
	//
	return np
}

// Reporter updates a given factorizer configuration to send progress updates
// to a given sink.
func (p Factorizer) Reporter(r Reporter) Factorizer {
	np := p
	np.reporter = r
	//
	return np
}

// Factorize attempts to split a composite modulus into a non-trivial factor
// pair.  Attempts are made until one succeeds, the attempt ceiling is
// reached, or a fatal error arises (invalid input, insufficient qubits,
// backend failure, cancellation).  The returned factors always satisfy
// P*Q == N with 1 < P <= Q < N.
func (p Factorizer) Factorize(ctx context.Context, n *big.Int) (Factorization, error) {
	start := time.Now()
	//
	if err := validate(n); err != nil {
		return Factorization{}, err
	}
	//
	for attempt := uint(1); attempt <= p.attempts; attempt++ {
		result, retry, err := p.attempt(ctx, n, attempt)
		//
		switch {
		case err != nil:
			return Factorization{}, p.annotate(err, attempt, start)
		case retry:
			p.reporter.Report(RETRYING, fmt.Sprintf("attempt %d produced no usable period", attempt))
			continue
		}
		//
		result.Attempts = attempt
		result.Elapsed = time.Since(start)
		// Final arithmetic verification.  Decoded periods can be spurious
		// under measurement noise, so the product is always checked before
		// the result is trusted.
		check := new(big.Int).Mul(result.P, result.Q)
		if check.Cmp(n) != 0 {
			return Factorization{}, &VerificationError{n, result.P, result.Q, attempt, result.Elapsed}
		}
		//
		if result.P.Cmp(result.Q) > 0 {
			result.P, result.Q = result.Q, result.P
		}

		return result, nil
	}

	return Factorization{}, &RetryError{p.attempts, time.Since(start)}
}

// attempt executes one pass of the state machine.  It yields either a result,
// a retry indication (unusable period), or a fatal error.
func (p Factorizer) attempt(ctx context.Context, n *big.Int, attempt uint) (Factorization, bool, error) {
	if err := ctx.Err(); err != nil {
		return Factorization{}, false, err
	}
	// Classical reduction: even moduli and lucky draws need no circuit.
	p.reporter.Report(REDUCING, fmt.Sprintf("attempt %d: classical reduction", attempt))
	//
	red := p.rng.reduce(n)
	if red.Terminal() {
		log.Debugf("classical reduction split %s as %s * %s", n, red.P, red.Q)
		return Factorization{P: red.P, Q: red.Q}, false, nil
	}
	// Quantum period finding for the drawn base.
	p.reporter.Report(BUILDING_CIRCUIT, fmt.Sprintf("phase estimation for base %s", red.Base))
	//
	qc, err := circuit.NewPhaseEstimation(red.Base, n, p.backend.Qubits())
	if err != nil {
		// Capacity failures are fatal: N's size is fixed, so no retry can
		// help.
		return Factorization{}, false, err
	}
	//
	result, err := p.execute(ctx, qc)
	if err != nil {
		return Factorization{}, false, err
	}
	//
	p.reporter.Report(DECODING, "interpreting measurement histogram")
	period := p.decode(qc, result, n)
	//
	p.reporter.Report(VALIDATING, fmt.Sprintf("candidate period %s", period))
	factors, ok := reconstruct(red.Base, period, n)
	if !ok {
		return Factorization{}, true, nil
	}
	//
	factors.QubitsUsed = qc.Qubits()

	return factors, false, nil
}

// execute submits a circuit and polls the backend until the job finishes.
// Polling is cancellable: on cancellation the outstanding job is told to
// cancel (best effort) and the attempt fails with the cancellation reason.
func (p Factorizer) execute(ctx context.Context, qc *circuit.Circuit) (*backend.Result, error) {
	handle, err := p.backend.Submit(ctx, qc, p.shots)
	if err != nil {
		return nil, err
	}
	//
	p.reporter.Report(AWAITING_EXECUTION, fmt.Sprintf("job %s submitted (%d shots)", handle, p.shots))
	//
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	//
	for {
		status, err := p.backend.Status(ctx, handle)
		//
		switch {
		case err != nil:
			return nil, err
		case status == backend.DONE:
			return p.backend.Result(ctx, handle)
		case status == backend.FAILED:
			if _, err := p.backend.Result(ctx, handle); err != nil {
				return nil, err
			}
			//
			return nil, fmt.Errorf("job %s failed", handle)
		}
		//
		p.reporter.Report(AWAITING_EXECUTION, fmt.Sprintf("job %s %s", handle, status))
		//
		select {
		case <-ctx.Done():
			// Best effort: the backend may not support cancellation.
			if err := p.backend.Cancel(context.Background(), handle); err != nil {
				log.Debugf("cancelling job %s: %v", handle, err)
			}
			//
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// decode turns an outcome histogram into a candidate period.  The most
// frequent bitstring, read as an integer v over the counting register of
// width 2n, estimates the phase v / 2^(2n); the period candidate is the
// denominator of the best rational approximation to that phase with
// denominator at most N.
func (p Factorizer) decode(qc *circuit.Circuit, result *backend.Result, n *big.Int) *big.Int {
	var (
		outcome  = result.MostFrequent()
		counting = qc.Measured()
		phase    = new(big.Rat).SetFrac(outcome.Value(), bound(uint(len(counting))))
	)
	//
	log.Debugf("peak outcome %s (%d/%d shots), phase %s", outcome.Bitstring,
		outcome.Count, result.Shots, phase.RatString())
	//
	return math.BestApproximation(phase, n).Denom()
}

// reconstruct derives a factor pair from a period candidate r, rejecting
// unusable candidates.  A period is unusable when it is odd, or when
// x = a^(r/2) mod N is congruent to -1 (in which case only trivial factors
// fall out).  Otherwise gcd(x+1, N) and gcd(x-1, N) are candidate factors;
// they are still rejected if either is trivial.
func reconstruct(a, r, n *big.Int) (Factorization, bool) {
	var (
		one = big.NewInt(1)
		nm1 = new(big.Int).Sub(n, one)
	)
	//
	if r.Sign() == 0 || r.Bit(0) == 1 {
		return Factorization{}, false
	}
	//
	x := new(big.Int).Exp(a, new(big.Int).Rsh(r, 1), n)
	if x.Cmp(nm1) == 0 {
		return Factorization{}, false
	}
	//
	fp := new(big.Int).GCD(nil, nil, new(big.Int).Add(x, one), n)
	fq := new(big.Int).GCD(nil, nil, new(big.Int).Sub(x, one), n)
	// Either factor being 1 or N means the pair is trivial.
	if fp.Cmp(one) <= 0 || fq.Cmp(one) <= 0 || fp.Cmp(n) == 0 || fq.Cmp(n) == 0 {
		return Factorization{}, false
	}

	return Factorization{P: fp, Q: fq}, true
}

// annotate wraps non-terminal errors with attempt and timing context.  Errors
// already carrying context (capacity, input) pass through unchanged.
func (p Factorizer) annotate(err error, attempt uint, start time.Time) error {
	switch err.(type) {
	case *circuit.CapacityError, *InputError:
		return err
	default:
		return &ExecutionError{attempt, time.Since(start), err}
	}
}

// bound computes 2^width, the number of distinct outcomes of a register.
func bound(width uint) *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), width)
}
