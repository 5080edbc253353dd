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
package shor

import (
	"fmt"
	"math/big"
	"time"
)

// InputError signals that a modulus violates the input contract: it is
// either below two or (probably) prime.  Factorisation requires a composite
// input, and the caller is expected to have validated this already.
type InputError struct {
	// Modulus which was rejected.
	Modulus *big.Int
	// Reason for rejection.
	Reason string
}

// Error implementation for the error interface.
func (p *InputError) Error() string {
	return fmt.Sprintf("invalid modulus %s: %s", p.Modulus, p.Reason)
}

// ExecutionError signals that the execution backend reported failure, or
// that an in-flight attempt was cancelled.  The underlying cause is wrapped.
type ExecutionError struct {
	// Attempt during which execution failed (1-based).
	Attempt uint
	// Elapsed time across the whole run so far.
	Elapsed time.Duration
	// Underlying failure.
	Err error
}

// Error implementation for the error interface.
func (p *ExecutionError) Error() string {
	return fmt.Sprintf("execution failed on attempt %d after %s: %v", p.Attempt, p.Elapsed, p.Err)
}

// Unwrap exposes the underlying failure, so callers can test for
// context.Canceled and friends.
func (p *ExecutionError) Unwrap() error {
	return p.Err
}

// RetryError signals that every attempt produced an unusable period and the
// retry budget is spent.
type RetryError struct {
	// Attempts made in total.
	Attempts uint
	// Elapsed time across the whole run.
	Elapsed time.Duration
}

// Error implementation for the error interface.
func (p *RetryError) Error() string {
	return fmt.Sprintf("no usable period found in %d attempts (%s elapsed)", p.Attempts, p.Elapsed)
}

// VerificationError signals that a recovered factor pair failed the final
// arithmetic check p*q == N.  Decoded periods can be spurious under
// measurement noise, so this check is mandatory before a result is trusted.
type VerificationError struct {
	// Modulus being factored.
	Modulus *big.Int
	// Factors which failed verification.
	P, Q *big.Int
	// Attempts made in total.
	Attempts uint
	// Elapsed time across the whole run.
	Elapsed time.Duration
}

// Error implementation for the error interface.
func (p *VerificationError) Error() string {
	return fmt.Sprintf("factors %s * %s do not multiply to %s (%d attempts, %s elapsed)",
		p.P, p.Q, p.Modulus, p.Attempts, p.Elapsed)
}
