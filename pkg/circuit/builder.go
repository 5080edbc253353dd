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
package circuit

import (
	"fmt"
	"math/big"

	log "github.com/sirupsen/logrus"

	"github.com/quantalab/go-shor/pkg/util/math"
)

// CapacityError signals that a circuit requires more qubits than the
// execution environment provides.  This is fatal for the modulus in question,
// since its bit-length (and hence the register sizes) is fixed.
type CapacityError struct {
	// Modulus whose circuit could not be built.
	Modulus *big.Int
	// Number of qubits the circuit requires.
	Required uint
	// Number of qubits actually available.
	Available uint
}

// Error implementation for the error interface.
func (p *CapacityError) Error() string {
	return fmt.Sprintf("modulus %s requires %d qubits but only %d available",
		p.Modulus, p.Required, p.Available)
}

// NewPhaseEstimation constructs the phase-estimation circuit which finds the
// period of a^x mod N.  The circuit uses three registers: a counting register
// of 2n qubits (where n is the bit-width of N), a work register of n qubits
// and a single ancilla, for 3n+1 qubits in total.  The counting register is
// placed into uniform superposition, the work register is initialised to one,
// and each counting qubit q then controls a modular multiplication of the
// work register by a^(2^q) mod N.  Finally the inverse Fourier transform is
// applied to the counting register and it is measured.  A CapacityError is
// returned if 3n+1 exceeds the given qubit capacity.
func NewPhaseEstimation(a *big.Int, n *big.Int, capacity uint) (*Circuit, error) {
	var (
		// Bit-width of the modulus.  N is odd here (even moduli are factored
		// classically), so this coincides with ceil(log2 N).
		width    = uint(n.BitLen())
		required = 3*width + 1
	)
	//
	if required > capacity {
		return nil, &CapacityError{n, required, capacity}
	}
	//
	log.Debugf("phase estimation for %s: %d counting / %d work qubits", n, 2*width, width)
	//
	qc := New()
	counting := qc.Allocate(COUNTING_REGISTER, "up", 2*width)
	work := qc.Allocate(WORK_REGISTER, "down", width)
	aux := qc.Allocate(ANCILLA_REGISTER, "aux", 1)
	// Uniform superposition over the counting register.
	for _, q := range counting.Qubits() {
		qc.Append(Hadamard{q})
	}
	// Work register starts at |1>.
	qc.Append(PauliX{work.Qubit(0)})
	// One controlled modular multiplication per counting qubit, by the
	// precomputed multiplier a^(2^q) mod N.
	for q := uint(0); q < counting.Width; q++ {
		qc.Append(ControlledModMul{
			Control:    counting.Qubit(q),
			Targets:    work.Qubits(),
			Ancilla:    aux.Qubit(0),
			Multiplier: math.ModExp2k(a, q, n),
			Modulus:    new(big.Int).Set(n),
		})
	}
	//
	qc.Append(InverseQFT{counting.Qubits()})
	qc.Append(Measure{counting.Qubits()})

	return qc, nil
}
